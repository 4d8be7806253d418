package config

import "time"

// Config represents the complete application configuration
type Config struct {
	Environment  string            `mapstructure:"environment"`
	Server       ServerConfig      `mapstructure:"server"`
	Database     DatabaseConfig    `mapstructure:"database"`
	TMDB         TMDBConfig        `mapstructure:"tmdb"`
	Bangumi      BangumiConfig     `mapstructure:"bangumi"`
	QBittorrent  QBittorrentConfig `mapstructure:"qbittorrent"`
	Media        MediaConfig       `mapstructure:"media"`
	Cache        CacheConfig       `mapstructure:"cache"`
	RateLimiting RateLimitConfig   `mapstructure:"rate_limiting"`
	Security     SecurityConfig    `mapstructure:"security"`
	Logging      LoggingConfig     `mapstructure:"logging"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxHeaderBytes  int           `mapstructure:"max_header_bytes"`
	MaxBodyBytes    int64         `mapstructure:"max_body_bytes"`
}

// DatabaseConfig contains database settings
type DatabaseConfig struct {
	Path           string        `mapstructure:"path"`
	MaxConnections int           `mapstructure:"max_connections"`
	SlowThreshold  time.Duration `mapstructure:"slow_threshold"`
	Verbose        bool          `mapstructure:"verbose"`
}

// TMDBConfig contains The Movie Database API settings
type TMDBConfig struct {
	APIKey    string        `mapstructure:"api_key"`
	BaseURL   string        `mapstructure:"base_url"`
	Language  string        `mapstructure:"language"`
	Timeout   time.Duration `mapstructure:"timeout"`
	RateLimit float64       `mapstructure:"rate_limit"`
	Burst     int           `mapstructure:"burst"`
}

// BangumiConfig contains Bangumi API settings
type BangumiConfig struct {
	BaseURL     string        `mapstructure:"base_url"`
	UserAgent   string        `mapstructure:"user_agent"`
	AccessToken string        `mapstructure:"access_token"`
	Timeout     time.Duration `mapstructure:"timeout"`
	RateLimit   float64       `mapstructure:"rate_limit"`
	Burst       int           `mapstructure:"burst"`
	PageSize    int           `mapstructure:"page_size"`
}

// QBittorrentConfig contains download client settings. An empty URL disables it.
type QBittorrentConfig struct {
	URL         string        `mapstructure:"url"`
	Username    string        `mapstructure:"username"`
	Password    string        `mapstructure:"password"`
	Timeout     time.Duration `mapstructure:"timeout"`
	DeleteFiles bool          `mapstructure:"delete_files"`
}

// MediaConfig contains the library roots folders are created under
type MediaConfig struct {
	TVPath    string `mapstructure:"tv_path"`
	MoviePath string `mapstructure:"movie_path"`
	AnimePath string `mapstructure:"anime_path"`
	DirMode   uint32 `mapstructure:"dir_mode"`
}

// CacheConfig contains metadata cache settings
type CacheConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	TTL             time.Duration `mapstructure:"ttl"`
	MaxEntries      int           `mapstructure:"max_entries"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

// RateLimitConfig contains API rate limiting settings
type RateLimitConfig struct {
	Enabled bool    `mapstructure:"enabled"`
	RPS     float64 `mapstructure:"rps"`
	Burst   int     `mapstructure:"burst"`
}

// SecurityConfig contains security settings
type SecurityConfig struct {
	EnableCORS      bool     `mapstructure:"enable_cors"`
	CORSOrigins     []string `mapstructure:"cors_origins"`
	CORSMethods     []string `mapstructure:"cors_methods"`
	CORSHeaders     []string `mapstructure:"cors_headers"`
	EnableRequestID bool     `mapstructure:"enable_request_id"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}
