package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/qianzhu/lifeplanner/internal/common"
	"github.com/qianzhu/lifeplanner/internal/dbx"
	"github.com/qianzhu/lifeplanner/internal/server/models"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByUserName(ctx context.Context, username string) (*models.User, error) {
	query := `SELECT id, username, email, password, created_at FROM users WHERE username = $1`

	var user models.User
	err := r.db.QueryRowContext(ctx, query, username).Scan(
		&user.ID, &user.UserName, &user.Email, &user.PasswordHash, &user.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &user, nil
}

// Add inserts the user inside a transaction, re-checking name uniqueness so
// two concurrent registrations cannot both succeed.
func (r *PostgresRepository) Add(ctx context.Context, user *models.User) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var exists bool
		checkQuery := `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`
		if err := tx.QueryRowContext(ctx, checkQuery, user.UserName).Scan(&exists); err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		if exists {
			return common.ErrUsernameTaken
		}

		insertQuery := `INSERT INTO users (id, username, email, password, created_at) VALUES ($1, $2, $3, $4, $5)`
		_, err := tx.ExecContext(ctx, insertQuery,
			user.ID, user.UserName, user.Email, user.PasswordHash, user.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		return nil
	})
}
