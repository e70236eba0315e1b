package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qianzhu/lifeplanner/internal/common"
	"github.com/qianzhu/lifeplanner/internal/server/auth"
	"github.com/qianzhu/lifeplanner/internal/server/models"
	"github.com/qianzhu/lifeplanner/internal/server/users"
)

type memoryUserRepo struct {
	byName map[string]*models.User
}

func (m *memoryUserRepo) GetByUserName(ctx context.Context, username string) (*models.User, error) {
	if u, ok := m.byName[username]; ok {
		return u, nil
	}
	return nil, common.ErrorNotFound
}

func (m *memoryUserRepo) Add(ctx context.Context, user *models.User) error {
	if m.byName == nil {
		m.byName = map[string]*models.User{}
	}
	m.byName[user.UserName] = user
	return nil
}

func newAccountsRouter(repo *memoryUserRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	svc := users.NewService(repo, testLogger(), testSecret, time.Hour)
	NewAccountsController(svc, testLogger()).RegisterRoutes(router)
	return router
}

func TestRegisterEndpoint(t *testing.T) {
	repo := &memoryUserRepo{}
	router := newAccountsRouter(repo)

	w := doRequest(router, http.MethodPost, "/api/register", "",
		`{"username": "alice", "email": "alice@example.com", "password": "secret"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, repo.byName["alice"])

	// duplicate username
	w = doRequest(router, http.MethodPost, "/api/register", "",
		`{"username": "alice", "password": "other"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	// missing password
	w = doRequest(router, http.MethodPost, "/api/register", "", `{"username": "bob"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginEndpoint(t *testing.T) {
	repo := &memoryUserRepo{}
	router := newAccountsRouter(repo)

	w := doRequest(router, http.MethodPost, "/api/register", "",
		`{"username": "alice", "password": "secret"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(router, http.MethodPost, "/api/login", "",
		`{"username": "alice", "password": "secret"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token  string `json:"token"`
		UserID string `json:"user_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)

	claimedID, err := auth.GetUserIDFromToken(resp.Token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, resp.UserID, claimedID)

	w = doRequest(router, http.MethodPost, "/api/login",
		"", `{"username": "alice", "password": "wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
