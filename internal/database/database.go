package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/killallgit/subarr/internal/models"
)

type DB struct {
	*gorm.DB
	log logrus.FieldLogger
}

// Options configure Initialize
type Options struct {
	Path          string
	Verbose       bool
	MaxOpenConns  int
	SlowThreshold time.Duration
}

// TableStatus reports whether a model's table exists
type TableStatus struct {
	Model  string
	Table  string
	Exists bool
}

// Initialize opens the sqlite database at opts.Path. Constraint violations are
// translated into gorm sentinel errors such as gorm.ErrDuplicatedKey.
func Initialize(opts Options, log logrus.FieldLogger) (*DB, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}

	// Ensure the database directory exists
	dir := filepath.Dir(opts.Path)
	if opts.Path != "" && opts.Path != ":memory:" && dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	logLevel := logger.Warn
	if opts.Verbose {
		logLevel = logger.Info
	}
	slow := opts.SlowThreshold
	if slow <= 0 {
		slow = 500 * time.Millisecond
	}

	gormConfig := &gorm.Config{
		Logger: logger.New(log, logger.Config{
			SlowThreshold:             slow,
			LogLevel:                  logLevel,
			IgnoreRecordNotFoundError: true,
		}),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	db, err := gorm.Open(sqlite.Open(opts.Path), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying SQL database: %w", err)
	}

	// Every connection to ":memory:" is a separate database
	maxOpen := opts.MaxOpenConns
	if opts.Path == "" || opts.Path == ":memory:" {
		maxOpen = 1
	}
	if maxOpen <= 0 {
		maxOpen = 10
	}
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxOpen)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return &DB{DB: db, log: log}, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying SQL database: %w", err)
	}
	return sqlDB.Close()
}

// HealthCheck verifies the database connection is working
func (db *DB) HealthCheck(ctx context.Context) error {
	if db == nil || db.DB == nil {
		return fmt.Errorf("database not initialized")
	}

	sqlDB, err := db.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying SQL database: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

// Migrate creates or updates the schema for every persisted model
func (db *DB) Migrate() error {
	all := models.AllModels()
	if err := db.DB.AutoMigrate(all...); err != nil {
		return fmt.Errorf("auto migration failed: %w", err)
	}
	db.log.WithField("models", len(all)).Info("Database schema migrated")
	return nil
}

// MigrationStatus lists each model's table and whether it exists yet
func (db *DB) MigrationStatus() ([]TableStatus, error) {
	migrator := db.DB.Migrator()
	statuses := make([]TableStatus, 0, len(models.AllModels()))
	for _, model := range models.AllModels() {
		stmt := &gorm.Statement{DB: db.DB}
		if err := stmt.Parse(model); err != nil {
			return nil, fmt.Errorf("parsing model %T: %w", model, err)
		}
		statuses = append(statuses, TableStatus{
			Model:  stmt.Schema.Name,
			Table:  stmt.Schema.Table,
			Exists: migrator.HasTable(model),
		})
	}
	return statuses, nil
}
