package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/killallgit/subarr/api/types"
	"github.com/killallgit/subarr/internal/database"
	"github.com/killallgit/subarr/pkg/logger"
)

type fakeProbe struct {
	version string
	err     error
}

func (f fakeProbe) Version(context.Context) (string, error) { return f.version, f.err }

func openDB(t *testing.T) *database.DB {
	t.Helper()
	db, err := database.Initialize(database.Options{Path: ":memory:"}, logger.Discard())
	require.NoError(t, err)
	return db
}

func TestGet(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name             string
		setupDeps        func(t *testing.T) *types.Dependencies
		expectedCode     int
		expectedStatus   string
		expectedDatabase string
		expectedDownload string
	}{
		{
			name: "healthy",
			setupDeps: func(t *testing.T) *types.Dependencies {
				db := openDB(t)
				t.Cleanup(func() { _ = db.Close() })
				return &types.Dependencies{DB: db, Downloads: fakeProbe{version: "v4.6.2"}}
			},
			expectedCode:     http.StatusOK,
			expectedStatus:   "ok",
			expectedDatabase: "healthy",
			expectedDownload: "healthy",
		},
		{
			name: "nothing configured",
			setupDeps: func(t *testing.T) *types.Dependencies {
				return &types.Dependencies{}
			},
			expectedCode:     http.StatusOK,
			expectedStatus:   "ok",
			expectedDatabase: "not configured",
			expectedDownload: "not configured",
		},
		{
			name: "download client unreachable",
			setupDeps: func(t *testing.T) *types.Dependencies {
				db := openDB(t)
				t.Cleanup(func() { _ = db.Close() })
				return &types.Dependencies{DB: db, Downloads: fakeProbe{err: errors.New("connection refused")}}
			},
			expectedCode:     http.StatusOK,
			expectedStatus:   "degraded",
			expectedDatabase: "healthy",
			expectedDownload: "unhealthy",
		},
		{
			name: "closed database",
			setupDeps: func(t *testing.T) *types.Dependencies {
				db := openDB(t)
				require.NoError(t, db.Close())
				return &types.Dependencies{DB: db}
			},
			expectedCode:     http.StatusServiceUnavailable,
			expectedStatus:   "unhealthy",
			expectedDatabase: "unhealthy",
			expectedDownload: "not configured",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			RegisterRoutes(router, tt.setupDeps(t))

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.expectedCode, w.Code)
			var resp types.HealthResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.expectedStatus, resp.Status)
			assert.Equal(t, tt.expectedDatabase, resp.Database.Status)
			assert.Equal(t, tt.expectedDownload, resp.Downloader.Status)
			assert.NotEmpty(t, resp.Timestamp)
		})
	}
}
