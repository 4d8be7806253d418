package api

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/killallgit/subarr/api/types"
	"github.com/killallgit/subarr/pkg/config"
)

// Options configures the HTTP server
type Options struct {
	Address        string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	MaxHeaderBytes int
	MaxBodyBytes   int64

	EnableCORS      bool
	CORS            CORSOptions
	EnableRequestID bool

	RateLimitEnabled bool
	RateLimitRPS     float64
	RateLimitBurst   int
}

// OptionsFromConfig maps application configuration onto server options
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Address:          net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		ReadTimeout:      cfg.Server.ReadTimeout,
		WriteTimeout:     cfg.Server.WriteTimeout,
		MaxHeaderBytes:   cfg.Server.MaxHeaderBytes,
		MaxBodyBytes:     cfg.Server.MaxBodyBytes,
		EnableCORS:       cfg.Security.EnableCORS,
		EnableRequestID:  cfg.Security.EnableRequestID,
		RateLimitEnabled: cfg.RateLimiting.Enabled,
		RateLimitRPS:     cfg.RateLimiting.RPS,
		RateLimitBurst:   cfg.RateLimiting.Burst,
		CORS: CORSOptions{
			Origins: cfg.Security.CORSOrigins,
			Methods: cfg.Security.CORSMethods,
			Headers: cfg.Security.CORSHeaders,
		},
	}
}

// Server represents the HTTP server
type Server struct {
	engine       *gin.Engine
	httpServer   *http.Server
	opts         Options
	rateLimiters *RateLimiters

	// Dependencies for handlers
	dependencies *types.Dependencies
}

// NewServer creates a new HTTP server
func NewServer(opts Options, deps *types.Dependencies) *Server {
	if opts.ReadTimeout <= 0 {
		opts.ReadTimeout = 30 * time.Second
	}
	if opts.WriteTimeout <= 0 {
		opts.WriteTimeout = 30 * time.Second
	}
	if opts.MaxHeaderBytes <= 0 {
		opts.MaxHeaderBytes = 1 << 20 // 1 MB
	}
	if deps == nil {
		deps = &types.Dependencies{}
	}

	// Create Gin engine with recovery middleware only
	engine := gin.New()
	engine.Use(gin.Recovery())

	return &Server{
		engine:       engine,
		opts:         opts,
		rateLimiters: NewRateLimiters(),
		dependencies: deps,
		httpServer: &http.Server{
			Addr:           opts.Address,
			Handler:        engine,
			ReadTimeout:    opts.ReadTimeout,
			WriteTimeout:   opts.WriteTimeout,
			IdleTimeout:    60 * time.Second,
			MaxHeaderBytes: opts.MaxHeaderBytes,
		},
	}
}

// Engine returns the Gin engine for testing
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Initialize sets up middleware and routes
func (s *Server) Initialize() {
	s.setupMiddleware()

	var limit gin.HandlerFunc
	if s.opts.RateLimitEnabled && s.opts.RateLimitRPS > 0 {
		limit = s.rateLimiters.PerClientRateLimit(s.opts.RateLimitRPS, s.opts.RateLimitBurst)
	}
	RegisterRoutes(s.engine, s.dependencies, limit)
}

// setupMiddleware configures global middleware
func (s *Server) setupMiddleware() {
	if s.opts.EnableRequestID {
		s.engine.Use(RequestID())
	}
	s.engine.Use(RequestLogger(s.dependencies.Log()))
	if s.opts.EnableCORS {
		s.engine.Use(CORS(s.opts.CORS))
	}
	s.engine.Use(RequestSizeLimit(s.opts.MaxBodyBytes))
}

// Start serves until Shutdown is called
func (s *Server) Start() error {
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.rateLimiters.Stop()
	return s.httpServer.Shutdown(ctx)
}
