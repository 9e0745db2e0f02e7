package database

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"reflect"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"
)

// DefaultBatchSize is the number of rows fetched per round trip when
// streaming a table.
const DefaultBatchSize = 100

var errStopIteration = errors.New("iteration stopped")

// Table is a typed view of the store for record type T. It holds no state
// beyond the store reference, so creating one per call is cheap.
//
// Every operation first ensures the table for T exists. The check runs on
// each call rather than being cached.
type Table[T any] struct {
	store     *Store
	batchSize int
}

// For returns the table view of s for record type T.
func For[T any](s *Store) *Table[T] {
	return &Table[T]{store: s, batchSize: DefaultBatchSize}
}

// WithBatchSize returns a copy of t that streams n rows per batch.
func (t *Table[T]) WithBatchSize(n int) *Table[T] {
	if n <= 0 {
		n = DefaultBatchSize
	}
	return &Table[T]{store: t.store, batchSize: n}
}

// session is a connection bound to one call, with the parsed schema of T.
type session struct {
	db     *gorm.DB
	schema *schema.Schema
}

func (s session) primaryKey() *schema.Field {
	return s.schema.PrioritizedPrimaryField
}

// keyEquals builds "<table>.<pk> = key" for the record type.
func (s session) keyEquals(key any) clause.Expression {
	return clause.Eq{
		Column: clause.Column{Table: clause.CurrentTable, Name: s.primaryKey().DBName},
		Value:  key,
	}
}

// hasKey reports whether item carries a non-zero primary key.
func (s session) hasKey(ctx context.Context, item any) bool {
	_, zero := s.primaryKey().ValueOf(ctx, reflect.ValueOf(item))
	return !zero
}

// prepare opens the connection, validates T and makes sure its table exists.
func (t *Table[T]) prepare(ctx context.Context) (session, error) {
	db, err := t.store.DB(ctx)
	if err != nil {
		return session{}, err
	}

	if typ := reflect.TypeFor[T](); typ.Kind() != reflect.Struct {
		return session{}, fmt.Errorf("%w: %s", ErrInvalidRecordType, typ)
	}

	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(new(T)); err != nil {
		return session{}, fmt.Errorf("parse record type: %w", err)
	}
	sch := stmt.Schema
	if sch.PrioritizedPrimaryField == nil {
		return session{}, fmt.Errorf("%w: %s", ErrNoPrimaryKey, sch.Name)
	}

	if err := t.ensureTable(ctx, db, sch.Table); err != nil {
		return session{}, err
	}
	return session{db: db, schema: sch}, nil
}

// ensureTable creates the table for T if it is absent. Losing a creation
// race to another caller is not an error.
func (t *Table[T]) ensureTable(ctx context.Context, db *gorm.DB, name string) error {
	m := db.Migrator()
	if m.HasTable(new(T)) {
		return nil
	}
	if err := m.CreateTable(new(T)); err != nil {
		if m.HasTable(new(T)) {
			return nil
		}
		return fmt.Errorf("ensure table %s: %w", name, err)
	}
	t.store.log.Info(ctx, "Created table %s", name)
	return nil
}

// GetAll returns every record of type T. An empty table yields an empty,
// non-nil slice.
func (t *Table[T]) GetAll(ctx context.Context) ([]T, error) {
	s, err := t.prepare(ctx)
	if err != nil {
		return nil, err
	}

	records := make([]T, 0)
	if err := s.db.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("get all %s: %w", s.schema.Table, err)
	}
	return records, nil
}

// Each streams the records of type T in primary key order, fetching
// batchSize rows at a time. A setup or query failure is yielded once as
// the error of a zero record, after which the sequence ends.
func (t *Table[T]) Each(ctx context.Context) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var zero T

		s, err := t.prepare(ctx)
		if err != nil {
			yield(zero, err)
			return
		}

		var batch []T
		res := s.db.FindInBatches(&batch, t.batchSize, func(_ *gorm.DB, _ int) error {
			for _, record := range batch {
				if !yield(record, nil) {
					return errStopIteration
				}
			}
			return nil
		})
		if res.Error != nil && !errors.Is(res.Error, errStopIteration) {
			yield(zero, fmt.Errorf("scan %s: %w", s.schema.Table, res.Error))
		}
	}
}

// GetFiltered returns the records for which pred holds. The predicate runs
// in memory over a full streamed scan; use GetWhere to filter in SQL.
func (t *Table[T]) GetFiltered(ctx context.Context, pred Predicate[T]) ([]T, error) {
	matched := make([]T, 0)
	for record, err := range t.Each(ctx) {
		if err != nil {
			return nil, err
		}
		ok, err := pred(record)
		if err != nil {
			return nil, fmt.Errorf("evaluate predicate: %w", err)
		}
		if ok {
			matched = append(matched, record)
		}
	}
	return matched, nil
}

// GetWhere returns the records matching cond, evaluated by the engine.
func (t *Table[T]) GetWhere(ctx context.Context, cond Condition) ([]T, error) {
	s, err := t.prepare(ctx)
	if err != nil {
		return nil, err
	}

	records := make([]T, 0)
	if err := cond.apply(s.db).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("get %s where %s: %w", s.schema.Table, cond, err)
	}
	return records, nil
}

// Find returns the record with the given primary key. A missing record
// yields ErrNotFound; storage failures are returned as they are.
func (t *Table[T]) Find(ctx context.Context, key any) (T, error) {
	var record T

	s, err := t.prepare(ctx)
	if err != nil {
		return record, err
	}

	if err := s.db.Where(s.keyEquals(key)).Take(&record).Error; err != nil {
		var zero T
		return zero, fmt.Errorf("find %s %v: %w", s.schema.Table, key, err)
	}
	return record, nil
}

// GetByKey returns the record with the given primary key and true, or the
// zero value and false. Failures are logged and reported as absence.
func (t *Table[T]) GetByKey(ctx context.Context, key any) (T, bool) {
	record, err := t.Find(ctx, key)
	if err == nil {
		return record, true
	}

	if errors.Is(err, ErrNotFound) {
		t.store.log.Info(ctx, "Record not found: %v", err)
	} else {
		t.store.log.Error(ctx, "Error retrieving item by key: %v", err)
	}
	var zero T
	return zero, false
}

// Add inserts item and reports whether exactly one row was written.
// Generated keys and timestamps are written back into item.
func (t *Table[T]) Add(ctx context.Context, item *T) (bool, error) {
	if item == nil {
		return false, ErrNilRecord
	}
	s, err := t.prepare(ctx)
	if err != nil {
		return false, err
	}

	res := s.db.Create(item)
	if res.Error != nil {
		return false, fmt.Errorf("add %s: %w", s.schema.Table, classify(res.Error))
	}
	return res.RowsAffected == 1, nil
}

// Update overwrites every column of the row identified by item's primary
// key. An item without a key, or whose key is not stored, yields false.
// A nil item fails with ErrNilRecord.
func (t *Table[T]) Update(ctx context.Context, item *T) (bool, error) {
	if item == nil {
		return false, ErrNilRecord
	}
	s, err := t.prepare(ctx)
	if err != nil {
		return false, err
	}
	if !s.hasKey(ctx, item) {
		return false, nil
	}

	q := s.db.Model(item).Select("*")
	for _, f := range s.schema.Fields {
		if f.AutoCreateTime > 0 && f.DBName != "" {
			q = q.Omit(f.DBName)
		}
	}

	res := q.Updates(item)
	if res.Error != nil {
		return false, fmt.Errorf("update %s: %w", s.schema.Table, classify(res.Error))
	}
	return res.RowsAffected == 1, nil
}

// Delete removes the row identified by item's primary key.
func (t *Table[T]) Delete(ctx context.Context, item *T) (bool, error) {
	if item == nil {
		return false, ErrNilRecord
	}
	s, err := t.prepare(ctx)
	if err != nil {
		return false, err
	}
	if !s.hasKey(ctx, item) {
		return false, nil
	}

	res := s.db.Unscoped().Delete(item)
	if res.Error != nil {
		return false, fmt.Errorf("delete %s: %w", s.schema.Table, res.Error)
	}
	return res.RowsAffected == 1, nil
}

// DeleteByKey removes the row with the given primary key.
func (t *Table[T]) DeleteByKey(ctx context.Context, key any) (bool, error) {
	s, err := t.prepare(ctx)
	if err != nil {
		return false, err
	}

	res := s.db.Unscoped().Where(s.keyEquals(key)).Delete(new(T))
	if res.Error != nil {
		return false, fmt.Errorf("delete %s %v: %w", s.schema.Table, key, res.Error)
	}
	return res.RowsAffected > 0, nil
}

// DeleteAll empties the table and reports whether anything was removed.
func (t *Table[T]) DeleteAll(ctx context.Context) (bool, error) {
	s, err := t.prepare(ctx)
	if err != nil {
		return false, err
	}

	res := s.db.Unscoped().Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(new(T))
	if res.Error != nil {
		return false, fmt.Errorf("delete all %s: %w", s.schema.Table, res.Error)
	}
	return res.RowsAffected > 0, nil
}

// Count returns the number of stored records of type T.
func (t *Table[T]) Count(ctx context.Context) (int64, error) {
	s, err := t.prepare(ctx)
	if err != nil {
		return 0, err
	}

	var n int64
	if err := s.db.Model(new(T)).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count %s: %w", s.schema.Table, err)
	}
	return n, nil
}
