package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qianzhu/lifeplanner/internal/common"
	"github.com/qianzhu/lifeplanner/internal/logging"
	"github.com/qianzhu/lifeplanner/internal/server/auth"
	"github.com/qianzhu/lifeplanner/internal/server/records"
)

var testSecret = []byte("test-secret")

type memoryRepo struct {
	rows map[string]records.Fields
	err  error
}

func (m *memoryRepo) Get(ctx context.Context, userID string) (records.Fields, error) {
	if m.err != nil {
		return nil, m.err
	}
	row, ok := m.rows[userID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return row, nil
}

func (m *memoryRepo) Exists(ctx context.Context, userID string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	_, ok := m.rows[userID]
	return ok, nil
}

func (m *memoryRepo) Insert(ctx context.Context, row records.Fields) error {
	if m.rows == nil {
		m.rows = map[string]records.Fields{}
	}
	m.rows[row["user_id"].(string)] = row
	return nil
}

func (m *memoryRepo) Update(ctx context.Context, userID string, row records.Fields) error {
	existing := m.rows[userID]
	for k, v := range row {
		existing[k] = v
	}
	return nil
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newRecordsRouter(repo *memoryRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	svc := records.NewService(repo, testLogger())
	NewRecordsController(svc, testSecret, testLogger()).RegisterRoutes(router)
	return router
}

func bearerToken(t *testing.T, userID string) string {
	t.Helper()
	token, err := auth.GenerateToken(userID, testSecret, time.Hour)
	require.NoError(t, err)
	return "Bearer " + token
}

func doRequest(router *gin.Engine, method, path, authHeader, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if authHeader != "" {
		req.Header.Set(common.AccessTokenHeaderName, authHeader)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGetRecord_RequiresToken(t *testing.T) {
	router := newRecordsRouter(&memoryRepo{})

	w := doRequest(router, http.MethodGet, "/api/record", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(router, http.MethodGet, "/api/record", "Bearer not-a-token", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetRecord_DefaultsForNewUser(t *testing.T) {
	router := newRecordsRouter(&memoryRepo{})

	w := doRequest(router, http.MethodGet, "/api/record", bearerToken(t, "u1"), "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Record map[string]any `json:"record"`
		Origin string         `json:"origin"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "default", resp.Origin)
	assert.Equal(t, "平衡", resp.Record["risk_level"])
}

func TestGetRecord_FailsOpenOnStorageError(t *testing.T) {
	router := newRecordsRouter(&memoryRepo{err: assert.AnError})

	w := doRequest(router, http.MethodGet, "/api/record", bearerToken(t, "u1"), "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Origin string `json:"origin"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "fallback", resp.Origin)
}

func TestSaveFinancialForm(t *testing.T) {
	repo := &memoryRepo{}
	router := newRecordsRouter(repo)

	body := `{"total_assets": 120.5, "stock_percentage": 33, "bond_percentage": 33,
		"property_percentage": 33, "cash_percentage": 33, "risk_level": "进取"}`
	w := doRequest(router, http.MethodPut, "/api/record/financial", bearerToken(t, "u1"), body)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"ok":true`)

	row := repo.rows["u1"]
	require.NotNil(t, row)
	assert.Equal(t, "进取", row["risk_level"])
	assert.Equal(t, 25, row["stock_percentage"])
}

func TestSaveHealthForm_ComputesScore(t *testing.T) {
	repo := &memoryRepo{}
	router := newRecordsRouter(repo)

	body := `{"age": 30, "height": 170, "weight": 65, "exercise_freq": "每周3-4次",
		"sleep_hours": 7.5, "smoke": false, "drink": "不饮酒"}`
	w := doRequest(router, http.MethodPut, "/api/record/health", bearerToken(t, "u1"), body)
	require.Equal(t, http.StatusOK, w.Code)

	row := repo.rows["u1"]
	require.NotNil(t, row)
	assert.Equal(t, 22.5, row["bmi"])
	assert.Equal(t, 100, row["health_score"])
	assert.Equal(t, 170.0, row["height_cm"])
	assert.Equal(t, false, row["is_smoker"])
}

func TestSaveLifePlan_DerivesLifeScore(t *testing.T) {
	repo := &memoryRepo{rows: map[string]records.Fields{
		"u1": {
			"user_id":            "u1",
			"health_score":       int64(85),
			"education_progress": int64(75),
			"total_assets":       "300",
		},
	}}
	router := newRecordsRouter(repo)

	body := `{"life_stage": "财富积累期", "priorities": ["家庭和谐"]}`
	w := doRequest(router, http.MethodPut, "/api/record/lifeplan", bearerToken(t, "u1"), body)
	require.Equal(t, http.StatusOK, w.Code)

	row := repo.rows["u1"]
	// 0.4*70 + 0.3*85 + 0.3*75 = 76
	assert.Equal(t, 76, row["life_score"])
	assert.Equal(t, "财富积累期", row["life_stage"])
}

func TestSaveForm_InvalidBody(t *testing.T) {
	router := newRecordsRouter(&memoryRepo{})

	w := doRequest(router, http.MethodPut, "/api/record/profile", bearerToken(t, "u1"), "{not json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSaveForm_StorageFailureAnswersOKFalse(t *testing.T) {
	router := newRecordsRouter(&memoryRepo{err: assert.AnError})

	w := doRequest(router, http.MethodPut, "/api/record/preferences", bearerToken(t, "u1"),
		`{"daily_news": true}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"ok":false`)
}
