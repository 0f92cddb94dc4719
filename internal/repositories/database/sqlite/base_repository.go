package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-sqlite3"

	"github.com/cashbook-app/cashbook/internal/apperrors"
)

// querier is satisfied by both *sql.DB and *sql.Tx so repository bodies can
// run standalone or inside an atomic unit.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// BaseRepository provides common database functionality for SQLite repositories.
type BaseRepository struct {
	DB *sql.DB
}

// NewBaseRepository creates a new base repository instance.
func NewBaseRepository(db *sql.DB) BaseRepository {
	return BaseRepository{DB: db}
}

// WithTx begins a store transaction, runs fn, and commits on nil error.
// Errors and panics roll the transaction back.
func (r *BaseRepository) WithTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// mapSQLiteError translates driver errors into the engine's error taxonomy.
// Unique constraint violations become duplicates, other constraint failures
// become validation errors.
func mapSQLiteError(err error, entity string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.NewNotFoundError(entity + " not found")
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
		switch sqliteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return fmt.Errorf("%s already exists: %w", entity, apperrors.ErrDuplicate)
		default:
			return fmt.Errorf("%s constraint violated: %w", entity, apperrors.ErrValidation)
		}
	}
	return err
}

// placeholders returns "?, ?, ..., ?" with n slots for IN clauses.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// toArgs widens a string slice for variadic query arguments.
func toArgs(ids []string) []any {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}

// prefixColumns qualifies each column of a comma-separated list with a table
// alias, for joined queries.
func prefixColumns(alias, columns string) string {
	parts := strings.Split(columns, ", ")
	for i, p := range parts {
		parts[i] = alias + "." + p
	}
	return strings.Join(parts, ", ")
}

// nullString maps the empty string to SQL NULL, used for optional foreign
// key columns.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
