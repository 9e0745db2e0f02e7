package database

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

var (
	// ErrClosed is returned by every operation once the store has been closed.
	ErrClosed = errors.New("record store is closed")

	// ErrNoPrimaryKey is returned for record types without a single
	// identifiable primary key field.
	ErrNoPrimaryKey = errors.New("record type has no primary key")

	// ErrInvalidRecordType is returned when T is not a struct type, e.g.
	// For[*Product] instead of For[Product].
	ErrInvalidRecordType = errors.New("record type must be a struct")

	// ErrNilRecord is returned when an operation is given a nil item.
	ErrNilRecord = errors.New("nil record")

	// ErrNotFound reports a missing record. It is GORM's own sentinel so
	// callers holding a raw *gorm.DB can match it too.
	ErrNotFound = gorm.ErrRecordNotFound

	// ErrDuplicateKey reports an insert that collided with an existing
	// primary key or unique index.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrUnknownDriver is returned when Options.Driver names no supported engine.
	ErrUnknownDriver = errors.New("unknown sqlite driver")
)

// classify tags driver constraint failures with ErrDuplicateKey while
// keeping the original error in the chain.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %w", ErrDuplicateKey, err)
	}
	return err
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code == sqlite3.ErrConstraint &&
			(sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey ||
				sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique)
	}
	// modernc reports the same condition through its own error type
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
