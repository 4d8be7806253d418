package cmd

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/killallgit/subarr/api/types"
	"github.com/killallgit/subarr/internal/database"
	"github.com/killallgit/subarr/internal/models"
	"github.com/killallgit/subarr/internal/services/bangumi"
	"github.com/killallgit/subarr/internal/services/cache"
	"github.com/killallgit/subarr/internal/services/folders"
	"github.com/killallgit/subarr/internal/services/metadata"
	"github.com/killallgit/subarr/internal/services/qbittorrent"
	"github.com/killallgit/subarr/internal/services/subscriptions"
	"github.com/killallgit/subarr/internal/services/tmdb"
	"github.com/killallgit/subarr/pkg/config"
)

// app is the wired object graph shared by serve and the management commands
type app struct {
	db            *database.DB
	repo          *subscriptions.Repository
	subscriptions *subscriptions.Service
	downloads     *qbittorrent.Client
	metaCache     *cache.MemoryCache
	deleteFiles   bool
}

// connectDatabase connects to the configured database without touching the schema
func connectDatabase(cfg *config.Config, log logrus.FieldLogger) (*database.DB, error) {
	return database.Initialize(database.Options{
		Path:          cfg.Database.Path,
		Verbose:       cfg.Database.Verbose,
		MaxOpenConns:  cfg.Database.MaxConnections,
		SlowThreshold: cfg.Database.SlowThreshold,
	}, log)
}

// openDatabase connects to the configured database and migrates the schema
func openDatabase(cfg *config.Config, log logrus.FieldLogger) (*database.DB, error) {
	db, err := connectDatabase(cfg, log)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// newApp wires storage, metadata providers, the folder manager and the
// optional download client into a subscription service
func newApp(cfg *config.Config, log logrus.FieldLogger) (*app, error) {
	db, err := openDatabase(cfg, log)
	if err != nil {
		return nil, err
	}

	a := &app{
		db:          db,
		repo:        subscriptions.NewRepository(db.DB),
		deleteFiles: cfg.QBittorrent.DeleteFiles,
	}
	if cfg.Cache.Enabled {
		a.metaCache = cache.NewMemoryCache(
			cache.WithMaxEntries(cfg.Cache.MaxEntries),
			cache.WithDefaultTTL(cfg.Cache.TTL),
			cache.WithCleanupInterval(cfg.Cache.CleanupInterval),
		)
	}

	registry := metadata.NewRegistry()
	if tmdbClient, err := newTMDBClient(cfg); err != nil {
		log.WithError(err).Warn("TMDB provider disabled")
	} else {
		registry.Register(models.SourceTMDB, a.cached(tmdbClient, cfg, log))
	}
	registry.Register(models.SourceBangumi, a.cached(bangumi.NewClient(bangumi.Config{
		BaseURL:     cfg.Bangumi.BaseURL,
		UserAgent:   cfg.Bangumi.UserAgent,
		AccessToken: cfg.Bangumi.AccessToken,
		Timeout:     cfg.Bangumi.Timeout,
		RateLimit:   cfg.Bangumi.RateLimit,
		Burst:       cfg.Bangumi.Burst,
		PageSize:    cfg.Bangumi.PageSize,
	}), cfg, log))

	folderManager := folders.NewOSManager(folders.Roots{
		TV:    cfg.Media.TVPath,
		Movie: cfg.Media.MoviePath,
		Anime: cfg.Media.AnimePath,
	}, os.FileMode(cfg.Media.DirMode))

	var downloads subscriptions.DownloadClient
	if cfg.QBittorrent.URL != "" {
		client, err := qbittorrent.NewClient(qbittorrent.Config{
			URL:      cfg.QBittorrent.URL,
			Username: cfg.QBittorrent.Username,
			Password: cfg.QBittorrent.Password,
			Timeout:  cfg.QBittorrent.Timeout,
		})
		if err != nil {
			_ = a.Close()
			return nil, err
		}
		a.downloads = client
		downloads = client
	} else {
		log.Info("qBittorrent URL not set, torrents will not be released on unsubscribe")
	}

	a.subscriptions = subscriptions.NewService(a.repo, registry, folderManager, downloads,
		subscriptions.WithLogger(log))
	return a, nil
}

func newTMDBClient(cfg *config.Config) (*tmdb.Client, error) {
	return tmdb.NewClient(tmdb.Config{
		APIKey:    cfg.TMDB.APIKey,
		BaseURL:   cfg.TMDB.BaseURL,
		Language:  cfg.TMDB.Language,
		Timeout:   cfg.TMDB.Timeout,
		RateLimit: cfg.TMDB.RateLimit,
		Burst:     cfg.TMDB.Burst,
	})
}

func (a *app) cached(p metadata.Provider, cfg *config.Config, log logrus.FieldLogger) metadata.Provider {
	if a.metaCache == nil {
		return p
	}
	return metadata.NewCachedProvider(p, a.metaCache, cfg.Cache.TTL, log)
}

// dependencies exposes the app to HTTP handlers
func (a *app) dependencies(log logrus.FieldLogger) *types.Dependencies {
	deps := &types.Dependencies{
		DB:            a.db,
		Subscriptions: a.subscriptions,
		Profiles:      a.repo,
		Logger:        log,
		DeleteFiles:   a.deleteFiles,
		Build:         types.BuildInfo{Version: Version, GitCommit: GitCommit, BuildTime: BuildTime},
	}
	if a.downloads != nil {
		deps.Downloads = a.downloads
	}
	return deps
}

// Close releases the cache janitor and the database
func (a *app) Close() error {
	if a.metaCache != nil {
		a.metaCache.Stop()
	}
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}
