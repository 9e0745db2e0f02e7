package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/techshop/internal/config"
)

const (
	// DefaultBusyTimeout bounds how long a statement waits on a locked database.
	DefaultBusyTimeout = 5 * time.Second

	// DefaultMaxOpenConns keeps a single writer connection, as SQLite allows.
	DefaultMaxOpenConns = 1
)

// Options configures a Store.
type Options struct {
	Path         string
	Driver       Driver
	BusyTimeout  time.Duration
	MaxOpenConns int
	Logger       logger.Interface
}

// FromConfig builds store options from the application configuration.
func FromConfig(cfg config.Database, log logger.Interface) Options {
	return Options{
		Path:         cfg.FilePath(),
		Driver:       Driver(cfg.Driver),
		BusyTimeout:  cfg.BusyTimeout,
		MaxOpenConns: cfg.MaxOpenConns,
		Logger:       log,
	}
}

// Store owns the single connection to the database file. The connection is
// opened on first use and released by Close.
type Store struct {
	opts Options
	log  logger.Interface

	mu     sync.Mutex
	db     *gorm.DB
	closed bool
	opens  int
}

// New creates a store for the given options without touching the file.
func New(opts Options) *Store {
	if opts.BusyTimeout <= 0 {
		opts.BusyTimeout = DefaultBusyTimeout
	}
	if opts.MaxOpenConns <= 0 {
		opts.MaxOpenConns = DefaultMaxOpenConns
	}
	log := opts.Logger
	if log == nil {
		log = logger.Default.LogMode(logger.Warn)
	}
	return &Store{opts: opts, log: log}
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.opts.Path
}

// Open eagerly opens the connection. Calling it is optional; every
// operation opens the connection on demand.
func (s *Store) Open(ctx context.Context) error {
	_, err := s.DB(ctx)
	return err
}

// DB returns the connection bound to ctx, opening it if needed.
func (s *Store) DB(ctx context.Context) (*gorm.DB, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	return db.WithContext(ctx), nil
}

// conn performs the guarded check-and-create of the shared connection.
// A failed open is not remembered, so the next caller retries.
func (s *Store) conn(ctx context.Context) (*gorm.DB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrClosed
	}
	if s.db != nil {
		return s.db, nil
	}

	db, err := s.open(ctx)
	if err != nil {
		return nil, err
	}
	s.db = db
	s.opens++
	return db, nil
}

func (s *Store) open(ctx context.Context) (*gorm.DB, error) {
	if s.opts.Path == "" {
		return nil, fmt.Errorf("failed to open database: empty path")
	}

	driverName, err := s.opts.Driver.driverName()
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	dsn, err := buildDSN(s.opts.Path, s.opts.Driver, s.opts.BusyTimeout)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.opts.Path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := gorm.Open(sqlite.New(sqlite.Config{
		DriverName: driverName,
		DSN:        dsn,
	}), &gorm.Config{
		Logger: s.log,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	sqlDB.SetMaxOpenConns(s.opts.MaxOpenConns)
	sqlDB.SetMaxIdleConns(s.opts.MaxOpenConns)

	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s.log.Info(ctx, "Database opened at %s (driver %s)", s.opts.Path, driverName)
	return db, nil
}

// Close releases the connection. It is safe to call more than once; any
// operation issued afterwards fails with ErrClosed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	if s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	s.db = nil
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
