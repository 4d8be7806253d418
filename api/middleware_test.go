package api

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(middleware ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware...)
	router.Any("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "success"})
	})
	return router
}

func TestCORS(t *testing.T) {
	tests := []struct {
		name           string
		opts           CORSOptions
		method         string
		origin         string
		expectedStatus int
		expectedOrigin string
	}{
		{
			name:           "preflight request",
			method:         http.MethodOptions,
			origin:         "https://example.com",
			expectedStatus: http.StatusNoContent,
			expectedOrigin: "*",
		},
		{
			name:           "wildcard origin",
			opts:           CORSOptions{Origins: []string{"*"}},
			method:         http.MethodGet,
			origin:         "https://example.com",
			expectedStatus: http.StatusOK,
			expectedOrigin: "*",
		},
		{
			name:           "allowed origin is echoed",
			opts:           CORSOptions{Origins: []string{"https://ui.local"}},
			method:         http.MethodGet,
			origin:         "https://ui.local",
			expectedStatus: http.StatusOK,
			expectedOrigin: "https://ui.local",
		},
		{
			name:           "unknown origin gets no allow header",
			opts:           CORSOptions{Origins: []string{"https://ui.local"}},
			method:         http.MethodPost,
			origin:         "https://evil.example",
			expectedStatus: http.StatusOK,
			expectedOrigin: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(CORS(tt.opts))

			req := httptest.NewRequest(tt.method, "/test", nil)
			req.Header.Set("Origin", tt.origin)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedOrigin, w.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, "GET, POST, DELETE, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
		})
	}
}

func TestRequestID(t *testing.T) {
	router := newTestRouter(RequestID())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
	_, err := uuid.Parse(w.Header().Get(RequestIDHeader))
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(RequestIDHeader, "caller-id")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "caller-id", w.Header().Get(RequestIDHeader))
}

func TestRequestLogger(t *testing.T) {
	log, hook := logtest.NewNullLogger()
	router := newTestRouter(RequestID(), RequestLogger(log))
	router.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/test", nil))
	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.InfoLevel, entry.Level)
	assert.Equal(t, 200, entry.Data["status"])
	assert.Equal(t, "/test", entry.Data["path"])
	assert.NotEmpty(t, entry.Data["request_id"])

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
}

func TestRequestSizeLimit(t *testing.T) {
	tests := []struct {
		name           string
		limit          int64
		bodySize       int
		expectedStatus int
	}{
		{"under limit", 512, 100, http.StatusOK},
		{"at limit", 512, 512, http.StatusOK},
		{"over limit", 512, 513, http.StatusRequestEntityTooLarge},
		{"default limit", 0, 2 << 20, http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			router := gin.New()
			router.Use(RequestSizeLimit(tt.limit))
			router.POST("/test", func(c *gin.Context) {
				body, err := io.ReadAll(c.Request.Body)
				if err != nil {
					c.Status(http.StatusInternalServerError)
					return
				}
				c.JSON(http.StatusOK, gin.H{"received": len(body)})
			})

			req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(strings.Repeat("a", tt.bodySize)))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestPerClientRateLimit(t *testing.T) {
	limiters := NewRateLimiters()
	defer limiters.Stop()
	router := newTestRouter(limiters.PerClientRateLimit(0.001, 2))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	// A different client has its own bucket
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimiters_EvictIdle(t *testing.T) {
	limiters := NewRateLimiters()
	defer limiters.Stop()
	router := newTestRouter(limiters.PerClientRateLimit(1, 1))

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	router.ServeHTTP(httptest.NewRecorder(), req)

	limiters.evictIdle(time.Now())
	_, ok := limiters.limiters.Load("10.0.0.1")
	assert.True(t, ok)

	limiters.evictIdle(time.Now().Add(time.Hour))
	_, ok = limiters.limiters.Load("10.0.0.1")
	assert.False(t, ok)

	limiters.Stop()
	limiters.Stop()
}
