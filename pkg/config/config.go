package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	apperrors "github.com/killallgit/subarr/pkg/errors"
)

// DefaultConfigFile is read by Init when present
const DefaultConfigFile = "./config/settings.yaml"

// EnvPrefix prefixes every environment override, e.g. SUBARR_TMDB_API_KEY
const EnvPrefix = "SUBARR"

var (
	once    sync.Once
	initErr error
)

// Init initializes the global configuration.
// This should be called once at application startup
func Init() error {
	once.Do(func() {
		initErr = Load(viper.GetViper(), DefaultConfigFile)
	})
	return initErr
}

// Load applies defaults, environment overrides and the optional config file
// to v, then validates the result. A missing file is not an error.
func Load(v *viper.Viper, configFile string) error {
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		configPath := filepath.Clean(configFile)
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("error reading config file %s: %w", configPath, err)
		}
	}

	cfg, err := Decode(v)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// GetConfig returns the global configuration as a struct.
// Init() must be called before using this
func GetConfig() (*Config, error) {
	return Decode(viper.GetViper())
}

// Decode unmarshals v into a Config
func Decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &cfg, nil
}

// IsProduction reports whether placeholder secrets must be rejected
func (c *Config) IsProduction() bool {
	return c.Environment == "production" || c.Environment == "prod"
}

var placeholders = []string{
	"YOUR_KEY_HERE",
	"YOUR_API_KEY",
	"changeme",
	"CHANGEME",
	"",
}

// Validate checks the configuration for values the server cannot run with
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return apperrors.ConfigError("server.port", fmt.Sprintf("invalid server port: %d", c.Server.Port))
	}
	if c.Database.Path == "" {
		return apperrors.ConfigError("database.path", "database path is not configured")
	}
	if _, err := logrus.ParseLevel(c.Logging.Level); err != nil {
		return apperrors.ConfigError("logging.level", fmt.Sprintf("invalid log level %q", c.Logging.Level))
	}
	if c.Logging.Format != "json" && c.Logging.Format != "text" {
		return apperrors.ConfigError("logging.format", fmt.Sprintf("invalid log format %q, expected json or text", c.Logging.Format))
	}

	for name, root := range map[string]string{
		"media.tv_path":    c.Media.TVPath,
		"media.movie_path": c.Media.MoviePath,
		"media.anime_path": c.Media.AnimePath,
	} {
		if strings.TrimSpace(root) == "" {
			return apperrors.ConfigError(name, "must not be empty")
		}
	}

	for _, placeholder := range placeholders {
		if c.TMDB.APIKey == placeholder {
			if c.IsProduction() {
				return apperrors.ConfigError("tmdb.api_key", "invalid TMDB API key: cannot use placeholder values in production")
			}
			logrus.Warn("TMDB API key is not set; tv and movie subscriptions will fail")
			break
		}
	}

	if c.Bangumi.UserAgent == "" {
		return apperrors.ConfigError("bangumi.user_agent", "must not be empty")
	}
	return nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")

	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8989)
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.max_header_bytes", 1048576)
	v.SetDefault("server.max_body_bytes", 1048576)

	// Database defaults
	v.SetDefault("database.path", "./data/subarr.db")
	v.SetDefault("database.max_connections", 10)
	v.SetDefault("database.slow_threshold", 500*time.Millisecond)
	v.SetDefault("database.verbose", false)

	// Metadata provider defaults
	v.SetDefault("tmdb.api_key", "")
	v.SetDefault("tmdb.base_url", "https://api.themoviedb.org/3")
	v.SetDefault("tmdb.language", "en-US")
	v.SetDefault("tmdb.timeout", 10*time.Second)
	v.SetDefault("tmdb.rate_limit", 20)
	v.SetDefault("tmdb.burst", 5)

	v.SetDefault("bangumi.base_url", "https://api.bgm.tv")
	v.SetDefault("bangumi.user_agent", "subarr/1.0 (https://github.com/killallgit/subarr)")
	v.SetDefault("bangumi.access_token", "")
	v.SetDefault("bangumi.timeout", 10*time.Second)
	v.SetDefault("bangumi.rate_limit", 5)
	v.SetDefault("bangumi.burst", 2)
	v.SetDefault("bangumi.page_size", 100)

	// Download client defaults
	v.SetDefault("qbittorrent.url", "")
	v.SetDefault("qbittorrent.username", "admin")
	v.SetDefault("qbittorrent.password", "")
	v.SetDefault("qbittorrent.timeout", 10*time.Second)
	v.SetDefault("qbittorrent.delete_files", false)

	// Media library defaults
	v.SetDefault("media.tv_path", "./media/tv")
	v.SetDefault("media.movie_path", "./media/movies")
	v.SetDefault("media.anime_path", "./media/anime")
	v.SetDefault("media.dir_mode", 0o755)

	// Cache defaults
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.ttl", 6*time.Hour)
	v.SetDefault("cache.max_entries", 1000)
	v.SetDefault("cache.cleanup_interval", 5*time.Minute)

	// Rate limiting defaults
	v.SetDefault("rate_limiting.enabled", true)
	v.SetDefault("rate_limiting.rps", 10)
	v.SetDefault("rate_limiting.burst", 20)

	// Security defaults
	v.SetDefault("security.enable_cors", true)
	v.SetDefault("security.cors_origins", []string{"*"})
	v.SetDefault("security.cors_methods", []string{"GET", "POST", "DELETE", "OPTIONS"})
	v.SetDefault("security.cors_headers", []string{"Content-Type", "Authorization", "X-Request-ID"})
	v.SetDefault("security.enable_request_id", true)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}
