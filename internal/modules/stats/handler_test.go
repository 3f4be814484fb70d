package stats

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shadowknight55/social-dashboard/internal/middleware"
	"github.com/shadowknight55/social-dashboard/internal/pkg/jwt"
)

type stubCharts struct {
	charts []string
}

func (s stubCharts) ActiveCharts(context.Context, string) ([]string, error) {
	return s.charts, nil
}

func newTestRouter(svc *Service, charts ActiveChartsProvider) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group("/api/v1")
	api.Use(middleware.OptionalAuth())
	NewHandler(svc, charts).RegisterRoutes(api, middleware.Auth())
	return r
}

func authHeader(t *testing.T) string {
	t.Helper()
	token, err := jwt.Sign("user-1", time.Hour)
	require.NoError(t, err)
	return "Bearer " + token
}

type seriesBody struct {
	Platform string `json:"platform"`
	Range    string `json:"range"`
	Data     []struct {
		Date  time.Time `json:"date"`
		Stats struct {
			Followers int64 `json:"followers"`
			Views     int64 `json:"views"`
			Likes     int64 `json:"likes"`
			Shares    int64 `json:"shares"`
		} `json:"stats"`
	} `json:"data"`
}

func TestStatsEndpointRequiresPlatform(t *testing.T) {
	store := &memStore{}
	r := newTestRouter(newTestService(store, time.Now(), unitJitter), stubCharts{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, store.upsertCount(), "a rejected request must not write")

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body["message"], "platform")
}

func TestStatsEndpointUnknownRangeFallsBack(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	r := newTestRouter(newTestService(&memStore{}, now, unitJitter), stubCharts{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/stats?platform=youtube&range=fortnight", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body seriesBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	// Unknown tokens behave as the default 30-day window.
	assert.Len(t, body.Data, 31)
	assert.Equal(t, "youtube", body.Platform)
}

func TestStatsEndpointReturnsOrderedSeries(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	r := newTestRouter(newTestService(&memStore{}, now, unitJitter), stubCharts{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/stats?platform=twitch&range=7days", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body seriesBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data, 8)
	assert.Equal(t, "7days", body.Range)
	for i := 1; i < len(body.Data); i++ {
		assert.True(t, body.Data[i-1].Date.Before(body.Data[i].Date))
	}
}

func TestOverrideEndpointRequiresAuth(t *testing.T) {
	r := newTestRouter(newTestService(&memStore{}, time.Now(), unitJitter), stubCharts{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/stats",
		strings.NewReader(`{"platform":"youtube","stats":{"followers":1}}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOverrideEndpointUpserts(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	store := &memStore{}
	r := newTestRouter(newTestService(store, now, unitJitter), stubCharts{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/stats",
		strings.NewReader(`{"platform":"youtube","stats":{"followers":42,"views":100,"likes":5,"shares":1}}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", authHeader(t))
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	records, err := store.FindRange(context.Background(), "youtube", now.AddDate(0, 0, -1), now)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, int64(42), records[0].Stats.Followers)
}

func TestOverrideEndpointRejectsMissingPlatform(t *testing.T) {
	r := newTestRouter(newTestService(&memStore{}, time.Now(), unitJitter), stubCharts{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/stats",
		strings.NewReader(`{"stats":{"followers":1}}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", authHeader(t))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPurgeEndpointDeletesPlatformHistory(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	store := &memStore{}
	svc := newTestService(store, now, unitJitter)
	r := newTestRouter(svc, stubCharts{})

	_, err := svc.Series(context.Background(), "youtube", Range7Days, false)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/stats/youtube", nil)
	req.Header.Set("Authorization", authHeader(t))
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.EqualValues(t, 8, body["deleted"])

	records, err := store.FindRange(context.Background(), "youtube", now.AddDate(-2, 0, 0), now)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestLatestEndpointDefaultsToStockPlatforms(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	r := newTestRouter(newTestService(&memStore{}, now, unitJitter), stubCharts{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/stats/latest", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]struct {
		Followers int64 `json:"followers"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body, "youtube")
	assert.Contains(t, body, "twitch")
}

func TestLatestEndpointSkipsBlankTokens(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	r := newTestRouter(newTestService(&memStore{}, now, unitJitter), stubCharts{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/stats/latest?platforms=,,youtube,", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body, 1)
	assert.Contains(t, body, "youtube")
}
