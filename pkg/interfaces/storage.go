package interfaces

import "context"

// StorageProvider encapsulates the operations the generator and repositories
// route artifact and record access through. Implementations interpret the
// operation string; SQL-backed providers treat it as a query, while artifact
// providers dispatch on well-known operation identifiers.
type StorageProvider interface {
	Query(ctx context.Context, op string, args ...any) (Rows, error)
	Exec(ctx context.Context, op string, args ...any) (Result, error)
	Transaction(ctx context.Context, fn func(tx Transaction) error) error
}

// Rows iterates over the result set of a Query call.
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Close() error
}

// Result reports the outcome of an Exec call.
type Result interface {
	RowsAffected() (int64, error)
	LastInsertId() (int64, error)
}

// Transaction scopes a group of operations that commit or roll back together.
type Transaction interface {
	StorageProvider
	Commit() error
	Rollback() error
}
