package users

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qianzhu/lifeplanner/internal/common"
	"github.com/qianzhu/lifeplanner/internal/server/models"
)

func TestPostgresRepositoryGetByUserName(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	created := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "username", "email", "password", "created_at"}).
		AddRow("u1", "alice", "alice@example.com", "hash", created)
	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT id, username, email, password, created_at FROM users WHERE username = $1`,
	)).WithArgs("alice").WillReturnRows(rows)

	repo := NewPostgresRepository(db)
	user, err := repo.GetByUserName(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, "hash", user.PasswordHash)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepositoryGetByUserName_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT id, username").
		WithArgs("nobody").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "password", "created_at"}))

	repo := NewPostgresRepository(db)
	_, err = repo.GetByUserName(context.Background(), "nobody")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestPostgresRepositoryAdd(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	created := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`,
	)).WithArgs("alice").WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec(regexp.QuoteMeta(
		`INSERT INTO users (id, username, email, password, created_at) VALUES ($1, $2, $3, $4, $5)`,
	)).WithArgs("u1", "alice", "alice@example.com", "hash", created).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	repo := NewPostgresRepository(db)
	err = repo.Add(context.Background(), &models.User{
		ID:           "u1",
		UserName:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "hash",
		CreatedAt:    created,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepositoryAdd_TakenNameRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`,
	)).WithArgs("alice").WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectRollback()

	repo := NewPostgresRepository(db)
	err = repo.Add(context.Background(), &models.User{ID: "u1", UserName: "alice"})
	assert.ErrorIs(t, err, common.ErrUsernameTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}
