package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/killallgit/subarr/api/types"
	"github.com/killallgit/subarr/internal/models"
	"github.com/killallgit/subarr/internal/services/subscriptions"
	"github.com/killallgit/subarr/pkg/config"
	"github.com/killallgit/subarr/pkg/logger"
)

type stubSubscriptions struct{}

func (stubSubscriptions) Create(context.Context, subscriptions.CreateRequest) (*models.Subscription, error) {
	return &models.Subscription{Title: "Show"}, nil
}

func (stubSubscriptions) DeleteWithCleanup(context.Context, *models.Subscription, bool) error {
	return nil
}

func (stubSubscriptions) Delete(context.Context, uint, bool) error { return nil }

func (stubSubscriptions) Get(context.Context, uint) (*models.Subscription, error) {
	return &models.Subscription{Title: "Show"}, nil
}

func (stubSubscriptions) List(context.Context, subscriptions.ListFilter) ([]models.Subscription, int64, error) {
	return []models.Subscription{{Title: "Show"}}, 1, nil
}

func newTestServer(t *testing.T, opts Options) *Server {
	t.Helper()
	srv := NewServer(opts, &types.Dependencies{
		Subscriptions: stubSubscriptions{},
		Logger:        logger.Discard(),
	})
	srv.Initialize()
	t.Cleanup(func() { srv.rateLimiters.Stop() })
	return srv
}

func get(srv *Server, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	srv.Engine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestServer_Routes(t *testing.T) {
	srv := newTestServer(t, Options{EnableRequestID: true, EnableCORS: true})

	w := get(srv, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	assert.Equal(t, http.StatusOK, get(srv, "/version").Code)
	assert.Equal(t, http.StatusOK, get(srv, "/api/v1/subscriptions").Code)
	assert.Equal(t, http.StatusMovedPermanently, get(srv, "/docs").Code)

	// Profiles are not wired in this server
	w = get(srv, "/api/v1/profiles")
	assert.Equal(t, http.StatusNotFound, w.Code)
	var resp types.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "NOT_FOUND", resp.Error)
}

func TestServer_RateLimitsAPIOnly(t *testing.T) {
	srv := newTestServer(t, Options{RateLimitEnabled: true, RateLimitRPS: 0.001, RateLimitBurst: 1})

	assert.Equal(t, http.StatusOK, get(srv, "/api/v1/subscriptions").Code)
	assert.Equal(t, http.StatusTooManyRequests, get(srv, "/api/v1/subscriptions").Code)

	// Health checks are never limited
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, get(srv, "/health").Code)
	}
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := &config.Config{}
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = 8989
	cfg.Server.MaxBodyBytes = 4096
	cfg.RateLimiting.Enabled = true
	cfg.RateLimiting.RPS = 2.5
	cfg.RateLimiting.Burst = 4
	cfg.Security.CORSOrigins = []string{"https://ui.local"}

	opts := OptionsFromConfig(cfg)

	assert.Equal(t, "127.0.0.1:8989", opts.Address)
	assert.Equal(t, int64(4096), opts.MaxBodyBytes)
	assert.True(t, opts.RateLimitEnabled)
	assert.InDelta(t, 2.5, opts.RateLimitRPS, 0.0001)
	assert.Equal(t, []string{"https://ui.local"}, opts.CORS.Origins)
}
