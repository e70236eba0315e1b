// Package users implements account registration and login.
package users

import (
	"context"

	"github.com/qianzhu/lifeplanner/internal/server/models"
)

type Repository interface {
	// GetByUserName returns the user with the given username, or
	// common.ErrorNotFound.
	GetByUserName(ctx context.Context, username string) (*models.User, error)

	// Add inserts a new user row, returning common.ErrUsernameTaken when
	// the name is already present.
	Add(ctx context.Context, user *models.User) error
}
