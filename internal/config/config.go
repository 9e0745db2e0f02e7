package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		Database
		Log
	}

	Database struct {
		Dir          string // Application data directory holding the database file
		Name         string // Database file name inside Dir
		Path         string // Full path; overrides Dir and Name when set
		Driver       string // "mattn" (cgo) or "modernc" (pure Go)
		BusyTimeout  time.Duration
		MaxOpenConns int
		LogLevel     string // SQL log level: silent, error, warn, info
	}

	Log struct {
		Level  string // debug, info, warn, error
		Format string // console or json
	}
)

// FilePath returns the database file location, preferring an explicit Path.
func (d Database) FilePath() string {
	if d.Path != "" {
		return d.Path
	}
	return filepath.Join(d.Dir, d.Name)
}

// defaultDataDir returns the platform application data directory for the app
func defaultDataDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(dir, AppName)
}

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("database_dir", defaultDataDir())
	v.SetDefault("database_name", DefaultDatabaseName)
	v.SetDefault("database_path", "")
	v.SetDefault("database_driver", DefaultDatabaseDriver)
	v.SetDefault("database_busy_timeout", "5s")
	v.SetDefault("database_max_open_conns", 1) // SQLite has a single writer
	v.SetDefault("database_log_level", "warn")

	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")

	return &Config{
		Database: Database{
			Dir:          v.GetString("DATABASE_DIR"),
			Name:         v.GetString("DATABASE_NAME"),
			Path:         v.GetString("DATABASE_PATH"),
			Driver:       v.GetString("DATABASE_DRIVER"),
			BusyTimeout:  v.GetDuration("DATABASE_BUSY_TIMEOUT"),
			MaxOpenConns: v.GetInt("DATABASE_MAX_OPEN_CONNS"),
			LogLevel:     v.GetString("DATABASE_LOG_LEVEL"),
		},
		Log: Log{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
	}
}
