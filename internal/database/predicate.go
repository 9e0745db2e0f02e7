package database

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Predicate decides whether a record belongs to a filtered result. A
// returned error aborts the query and is passed to the caller.
type Predicate[T any] func(T) (bool, error)

// Match adapts a plain boolean function into a Predicate.
func Match[T any](fn func(T) bool) Predicate[T] {
	return func(record T) (bool, error) {
		return fn(record), nil
	}
}

// Condition is a filter evaluated by the database engine instead of in
// memory. It covers the predicate shapes that translate directly to SQL.
type Condition struct {
	query any
	args  []any
	desc  string
}

// Where filters with a raw SQL fragment and bind arguments, e.g.
// Where("price_cents < ?", 1000).
func Where(query string, args ...any) Condition {
	return Condition{query: query, args: args, desc: query}
}

// Eq filters on column = value.
func Eq(column string, value any) Condition {
	return Condition{
		query: clause.Eq{Column: clause.Column{Name: column}, Value: value},
		desc:  fmt.Sprintf("%s = %v", column, value),
	}
}

// And combines conditions so that all must hold.
func And(conds ...Condition) Condition {
	exprs := make([]clause.Expression, 0, len(conds))
	desc := ""
	for i, c := range conds {
		exprs = append(exprs, c.expression())
		if i > 0 {
			desc += " AND "
		}
		desc += c.desc
	}
	return Condition{query: clause.And(exprs...), desc: desc}
}

func (c Condition) expression() clause.Expression {
	if expr, ok := c.query.(clause.Expression); ok {
		return expr
	}
	return clause.Expr{SQL: fmt.Sprint(c.query), Vars: c.args}
}

func (c Condition) apply(db *gorm.DB) *gorm.DB {
	if c.query == nil {
		return db
	}
	if expr, ok := c.query.(clause.Expression); ok {
		return db.Where(expr)
	}
	return db.Where(c.query, c.args...)
}

func (c Condition) String() string {
	if c.desc == "" {
		return "true"
	}
	return c.desc
}
