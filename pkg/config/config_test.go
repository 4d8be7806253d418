package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/killallgit/subarr/pkg/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	v := viper.New()
	require.NoError(t, Load(v, filepath.Join(t.TempDir(), "missing.yaml")))

	cfg, err := Decode(v)
	require.NoError(t, err)
	assert.Equal(t, 8989, cfg.Server.Port)
	assert.Equal(t, "./data/subarr.db", cfg.Database.Path)
	assert.Equal(t, "https://api.themoviedb.org/3", cfg.TMDB.BaseURL)
	assert.Equal(t, "https://api.bgm.tv", cfg.Bangumi.BaseURL)
	assert.Equal(t, 100, cfg.Bangumi.PageSize)
	assert.Equal(t, uint32(0o755), cfg.Media.DirMode)
	assert.Equal(t, 6*time.Hour, cfg.Cache.TTL)
	assert.Empty(t, cfg.QBittorrent.URL)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_FileAndEnvironment(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9000
tmdb:
  api_key: "abc123"
  timeout: 3s
qbittorrent:
  url: "http://localhost:8080"
media:
  tv_path: /srv/tv
`)
	t.Setenv("SUBARR_SERVER_PORT", "9090")
	t.Setenv("SUBARR_BANGUMI_ACCESS_TOKEN", "token")

	v := viper.New()
	require.NoError(t, Load(v, path))

	cfg, err := Decode(v)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port, "environment wins over file")
	assert.Equal(t, "abc123", cfg.TMDB.APIKey)
	assert.Equal(t, 3*time.Second, cfg.TMDB.Timeout)
	assert.Equal(t, "http://localhost:8080", cfg.QBittorrent.URL)
	assert.Equal(t, "/srv/tv", cfg.Media.TVPath)
	assert.Equal(t, "./media/movies", cfg.Media.MoviePath)
	assert.Equal(t, "token", cfg.Bangumi.AccessToken)
}

func TestLoad_InvalidFile(t *testing.T) {
	path := writeConfig(t, "server: [unterminated")

	err := Load(viper.New(), path)
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		v := viper.New()
		setDefaults(v)
		cfg, err := Decode(v)
		require.NoError(t, err)
		cfg.TMDB.APIKey = "real-key"
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"defaults", func(c *Config) {}, ""},
		{"port out of range", func(c *Config) { c.Server.Port = 70000 }, "invalid server port"},
		{"no database path", func(c *Config) { c.Database.Path = "" }, "database path"},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, "invalid log level"},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, "invalid log format"},
		{"empty media root", func(c *Config) { c.Media.AnimePath = " " }, "media.anime_path"},
		{"empty user agent", func(c *Config) { c.Bangumi.UserAgent = "" }, "user_agent"},
		{"placeholder key in development", func(c *Config) { c.TMDB.APIKey = "changeme" }, ""},
		{"placeholder key in production", func(c *Config) {
			c.Environment = "production"
			c.TMDB.APIKey = "YOUR_API_KEY"
		}, "placeholder"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.True(t, apperrors.Is(err, apperrors.ErrCodeConfig))
		})
	}
}
