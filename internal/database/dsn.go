package database

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // registers the pure Go "sqlite" driver
)

// Driver selects the SQLite engine behind the store.
type Driver string

const (
	// DriverMattn is the cgo engine (github.com/mattn/go-sqlite3).
	DriverMattn Driver = "mattn"
	// DriverModernc is the pure Go engine (modernc.org/sqlite).
	DriverModernc Driver = "modernc"
)

// driverName returns the database/sql driver registered for d.
func (d Driver) driverName() (string, error) {
	switch d {
	case DriverMattn, "":
		return "sqlite3", nil
	case DriverModernc:
		return "sqlite", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDriver, string(d))
	}
}

// buildDSN renders a URI filename opened create-if-missing, read-write
// and in shared-cache mode. Pragmas use each driver's own parameter syntax.
// The path is made absolute and percent-encoded, so characters such as
// '?', '#' and '%' stay part of the file name.
func buildDSN(path string, d Driver, busyTimeout time.Duration) (string, error) {
	if _, err := d.driverName(); err != nil {
		return "", err
	}

	q := url.Values{}
	q.Set("cache", "shared")
	q.Set("mode", "rwc")

	ms := busyTimeout.Milliseconds()
	if d == DriverModernc {
		q.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", ms))
		q.Add("_pragma", "foreign_keys(1)")
	} else {
		q.Set("_busy_timeout", fmt.Sprintf("%d", ms))
		q.Set("_foreign_keys", "on")
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve database path: %w", err)
	}
	abs = filepath.ToSlash(abs)
	if !strings.HasPrefix(abs, "/") {
		abs = "/" + abs
	}

	u := url.URL{Scheme: "file", Path: abs, RawQuery: q.Encode()}
	return u.String(), nil
}
