package api

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/killallgit/subarr/api/types"
	apperrors "github.com/killallgit/subarr/pkg/errors"
)

// RequestIDHeader carries the per-request correlation id
const RequestIDHeader = "X-Request-ID"

const requestIDKey = "request_id"

// defaultMaxBodyBytes bounds request bodies when no limit is configured
const defaultMaxBodyBytes int64 = 1 << 20

// clientLimiter holds a rate limiter and its last accessed time
type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
	mu       sync.Mutex
}

// CORSOptions configures the CORS middleware
type CORSOptions struct {
	Origins []string
	Methods []string
	Headers []string
}

// CORS answers preflight requests and sets the allow headers. An empty
// origin list or a "*" entry allows any origin.
func CORS(opts CORSOptions) gin.HandlerFunc {
	methods := opts.Methods
	if len(methods) == 0 {
		methods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	}
	headers := opts.Headers
	if len(headers) == 0 {
		headers = []string{"Origin", "Content-Type", "Authorization", RequestIDHeader}
	}
	allowAll := len(opts.Origins) == 0
	allowed := make(map[string]struct{}, len(opts.Origins))
	for _, origin := range opts.Origins {
		if origin == "*" {
			allowAll = true
		}
		allowed[origin] = struct{}{}
	}
	allowMethods := strings.Join(methods, ", ")
	allowHeaders := strings.Join(headers, ", ")

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		switch {
		case allowAll:
			c.Header("Access-Control-Allow-Origin", "*")
		case origin != "":
			if _, ok := allowed[origin]; ok {
				c.Header("Access-Control-Allow-Origin", origin)
				c.Header("Vary", "Origin")
			}
		}
		c.Header("Access-Control-Allow-Methods", allowMethods)
		c.Header("Access-Control-Allow-Headers", allowHeaders)
		c.Header("Access-Control-Max-Age", "86400")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// RequestID tags every request with an id, reusing the caller's header when present
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(RequestIDHeader))
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// RequestLogger logs one line per request
func RequestLogger(log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := logrus.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"latency_ms": time.Since(start).Milliseconds(),
			"client_ip":  c.ClientIP(),
		}
		if id, ok := c.Get(requestIDKey); ok {
			fields["request_id"] = id
		}
		entry := log.WithFields(fields)

		switch status := c.Writer.Status(); {
		case status >= http.StatusInternalServerError:
			entry.Error("Request failed")
		case status >= http.StatusBadRequest:
			entry.Warn("Request rejected")
		default:
			entry.Info("Request handled")
		}
	}
}

// RequestSizeLimit rejects bodies larger than maxBytes on write methods
func RequestSizeLimit(maxBytes int64) gin.HandlerFunc {
	if maxBytes <= 0 {
		maxBytes = defaultMaxBodyBytes
	}
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
		default:
			c.Next()
			return
		}

		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, types.ErrorResponse{
				Status:  types.StatusError,
				Message: "Request body too large (max " + strconv.FormatInt(maxBytes, 10) + " bytes)",
				Error:   string(apperrors.ErrCodeValidation),
			})
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// RateLimiters tracks one token bucket per client IP
type RateLimiters struct {
	limiters sync.Map
	stop     chan struct{}
	once     sync.Once
	idle     time.Duration
}

// NewRateLimiters creates the limiter set; call Stop to end its janitor
func NewRateLimiters() *RateLimiters {
	return &RateLimiters{stop: make(chan struct{}), idle: 10 * time.Minute}
}

// Stop ends the cleanup goroutine
func (r *RateLimiters) Stop() {
	select {
	case <-r.stop:
	default:
		close(r.stop)
	}
}

// PerClientRateLimit allows rps requests per second per client with the given burst
func (r *RateLimiters) PerClientRateLimit(rps float64, burst int) gin.HandlerFunc {
	r.once.Do(func() {
		go r.cleanup(5 * time.Minute)
	})
	if burst <= 0 {
		burst = 1
	}

	return func(c *gin.Context) {
		clientIP := c.ClientIP()

		value, _ := r.limiters.LoadOrStore(clientIP, &clientLimiter{
			limiter:  rate.NewLimiter(rate.Limit(rps), burst),
			lastSeen: time.Now(),
		})
		cl := value.(*clientLimiter)
		cl.mu.Lock()
		cl.lastSeen = time.Now()
		cl.mu.Unlock()

		if !cl.limiter.Allow() {
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, types.ErrorResponse{
				Status:  types.StatusError,
				Message: "Rate limit exceeded. Please slow down your requests.",
				Error:   string(apperrors.ErrCodeRateLimit),
			})
			return
		}
		c.Next()
	}
}

func (r *RateLimiters) cleanup(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.evictIdle(time.Now())
		case <-r.stop:
			return
		}
	}
}

func (r *RateLimiters) evictIdle(now time.Time) {
	r.limiters.Range(func(key, value any) bool {
		cl := value.(*clientLimiter)
		cl.mu.Lock()
		idle := now.Sub(cl.lastSeen) > r.idle
		cl.mu.Unlock()
		if idle {
			r.limiters.Delete(key)
		}
		return true
	})
}

// NotFoundHandler handles 404 errors
func NotFoundHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusNotFound, types.ErrorResponse{
			Status:  types.StatusError,
			Message: "The requested endpoint was not found",
			Error:   string(apperrors.ErrCodeNotFound),
			Details: map[string]string{"path": c.Request.URL.Path},
		})
	}
}
