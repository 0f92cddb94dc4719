package repositories

import (
	"context"
	"database/sql"
)

// TransactionManager exposes the atomic-unit boundary of the backing store.
// Every multi-step mutation in the engine runs inside one of these units;
// a returned error rolls the whole unit back.
type TransactionManager interface {
	// WithTx begins a store transaction, runs fn, and commits on nil error.
	// Any error from fn (or a panic) rolls the transaction back.
	WithTx(ctx context.Context, fn func(tx *sql.Tx) error) error
}
