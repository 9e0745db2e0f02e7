// Package database provides the record store: generic CRUD access to an
// embedded SQLite file for any GORM-mappable record type.
//
// # Architecture
//
//	database/
//	├── store.go      # Store: lazily opened shared connection, Close
//	├── dsn.go        # Driver selection and URI filename (rwc, shared cache)
//	├── table.go      # Table[T]: typed CRUD and filtered reads
//	├── predicate.go  # In-memory predicates and SQL conditions
//	└── errors.go     # Sentinel errors and driver error classification
//
// # Usage
//
//	store := database.New(database.Options{Path: "./techShop.db3"})
//	defer store.Close()
//
//	products := database.For[entities.Product](store)
//	ok, err := products.Add(ctx, &entities.Product{Name: "Laptop", PriceCents: 99900})
//	p, found := products.GetByKey(ctx, uint(1))
//	cheap, err := products.GetFiltered(ctx, database.Match(func(p entities.Product) bool {
//		return p.PriceCents < 10000
//	}))
//
// # Tables
//
// A record type needs a single primary key: a field tagged
// `gorm:"primaryKey"` or a field named ID. Its table is created the first
// time any operation touches the type; each operation re-checks that the
// table exists before running.
//
// # Errors
//
// Operations return storage errors wrapped with context. GetByKey is the
// exception: it logs the failure and reports absence, like a missing row.
// Use Find when the caller needs to tell the two apart.
//
// # Filtering
//
// GetFiltered evaluates a Go predicate over a full scan streamed in
// batches, so it reads every row. GetWhere pushes a Condition down to
// SQLite and should be preferred for equality and range filters on large
// tables.
package database
