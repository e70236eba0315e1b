package users

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/qianzhu/lifeplanner/internal/common"
	"github.com/qianzhu/lifeplanner/internal/logging"
	"github.com/qianzhu/lifeplanner/internal/server/auth"
	"github.com/qianzhu/lifeplanner/internal/server/models"
)

// Service handles registration and login. Passwords are stored as
// unsalted sha256 hex digests; existing rows were written that way and the
// users table is shared with deployments that still expect it.
type Service struct {
	repo             Repository
	logger           logging.Logger
	secretKey        []byte
	validityDuration time.Duration
	now              func() time.Time
}

func NewService(repo Repository, logger logging.Logger, secretKey []byte, validityDuration time.Duration) *Service {
	return &Service{
		repo:             repo,
		logger:           logger,
		secretKey:        secretKey,
		validityDuration: validityDuration,
		now:              time.Now,
	}
}

func hashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// Register creates a new account. Usernames are unique; a taken name
// yields common.ErrUsernameTaken.
func (s *Service) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	_, err := s.repo.GetByUserName(ctx, username)
	if err == nil {
		return nil, common.ErrUsernameTaken
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("user lookup: %w", err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		UserName:     username,
		Email:        email,
		PasswordHash: hashPassword(password),
		CreatedAt:    s.now(),
	}
	if err := s.repo.Add(ctx, user); err != nil {
		return nil, fmt.Errorf("user insert: %w", err)
	}

	s.logger.Info(ctx, "user registered", "user_id", user.ID, "username", username)
	return user, nil
}

// Login verifies the credentials and returns a signed access token plus the
// user id. Unknown usernames and wrong passwords are indistinguishable to
// the caller.
func (s *Service) Login(ctx context.Context, username, password string) (token string, userID string, err error) {
	user, err := s.repo.GetByUserName(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", "", common.ErrInvalidCredentials
		}
		return "", "", fmt.Errorf("user lookup: %w", err)
	}

	hashed := hashPassword(password)
	if subtle.ConstantTimeCompare([]byte(hashed), []byte(user.PasswordHash)) != 1 {
		return "", "", common.ErrInvalidCredentials
	}

	token, err = auth.GenerateToken(user.ID, s.secretKey, s.validityDuration)
	if err != nil {
		return "", "", fmt.Errorf("token generation: %w", err)
	}

	return token, user.ID, nil
}
