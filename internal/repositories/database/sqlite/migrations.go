package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/cashbook-app/cashbook/internal/platform/logging"
)

// migrations is the ordered schema history of a book file. The index of the
// last applied entry is stored in PRAGMA user_version; opening an older book
// applies only the missing tail. Entries are append-only: never edit a
// shipped migration.
var migrations = []string{
	// v1: initial schema.
	`
	CREATE TABLE commodities (
		commodity_uid     TEXT PRIMARY KEY,
		namespace         TEXT NOT NULL,
		mnemonic          TEXT NOT NULL,
		full_name         TEXT NOT NULL DEFAULT '',
		local_symbol      TEXT NOT NULL DEFAULT '',
		cusip             TEXT NOT NULL DEFAULT '',
		smallest_fraction INTEGER NOT NULL,
		quote_flag        INTEGER NOT NULL DEFAULT 0,
		created_at        TIMESTAMP NOT NULL,
		last_updated_at   TIMESTAMP NOT NULL,
		UNIQUE (namespace, mnemonic)
	);

	CREATE TABLE accounts (
		account_uid                  TEXT PRIMARY KEY,
		name                         TEXT NOT NULL,
		description                  TEXT NOT NULL DEFAULT '',
		account_type                 TEXT NOT NULL,
		commodity_uid                TEXT NOT NULL REFERENCES commodities (commodity_uid),
		parent_uid                   TEXT REFERENCES accounts (account_uid),
		full_name                    TEXT NOT NULL,
		placeholder                  INTEGER NOT NULL DEFAULT 0,
		hidden                       INTEGER NOT NULL DEFAULT 0,
		favorite                     INTEGER NOT NULL DEFAULT 0,
		color                        TEXT NOT NULL DEFAULT '',
		default_transfer_account_uid TEXT,
		created_at                   TIMESTAMP NOT NULL,
		last_updated_at              TIMESTAMP NOT NULL
	);
	CREATE UNIQUE INDEX idx_accounts_single_root ON accounts (account_type) WHERE account_type = 'ROOT';
	CREATE INDEX idx_accounts_parent_uid ON accounts (parent_uid);
	CREATE INDEX idx_accounts_full_name ON accounts (full_name);

	CREATE TABLE transactions (
		transaction_uid      TEXT PRIMARY KEY,
		description          TEXT NOT NULL DEFAULT '',
		notes                TEXT NOT NULL DEFAULT '',
		post_date            TIMESTAMP NOT NULL,
		entered_date         TIMESTAMP NOT NULL,
		commodity_uid        TEXT NOT NULL REFERENCES commodities (commodity_uid),
		exported             INTEGER NOT NULL DEFAULT 0,
		template             INTEGER NOT NULL DEFAULT 0,
		scheduled_action_uid TEXT NOT NULL DEFAULT '',
		created_at           TIMESTAMP NOT NULL,
		last_updated_at      TIMESTAMP NOT NULL
	);
	CREATE INDEX idx_transactions_post_date ON transactions (post_date);
	CREATE INDEX idx_transactions_scheduled_action ON transactions (scheduled_action_uid);

	CREATE TABLE splits (
		split_uid       TEXT PRIMARY KEY,
		transaction_uid TEXT NOT NULL REFERENCES transactions (transaction_uid) ON DELETE CASCADE,
		account_uid     TEXT NOT NULL REFERENCES accounts (account_uid),
		split_type      TEXT NOT NULL,
		value_num       INTEGER NOT NULL,
		value_denom     INTEGER NOT NULL,
		quantity_num    INTEGER NOT NULL,
		quantity_denom  INTEGER NOT NULL,
		memo            TEXT NOT NULL DEFAULT '',
		reconcile_state TEXT NOT NULL DEFAULT 'n',
		reconcile_date  TIMESTAMP NOT NULL,
		created_at      TIMESTAMP NOT NULL,
		last_updated_at TIMESTAMP NOT NULL
	);
	CREATE INDEX idx_splits_transaction_uid ON splits (transaction_uid);
	CREATE INDEX idx_splits_account_uid ON splits (account_uid);

	CREATE TABLE prices (
		price_uid       TEXT PRIMARY KEY,
		commodity_uid   TEXT NOT NULL REFERENCES commodities (commodity_uid),
		currency_uid    TEXT NOT NULL REFERENCES commodities (commodity_uid),
		date            TIMESTAMP NOT NULL,
		source          TEXT NOT NULL DEFAULT '',
		price_type      TEXT NOT NULL DEFAULT '',
		value_num       INTEGER NOT NULL,
		value_denom     INTEGER NOT NULL,
		created_at      TIMESTAMP NOT NULL,
		last_updated_at TIMESTAMP NOT NULL
	);
	CREATE INDEX idx_prices_pair_date ON prices (commodity_uid, currency_uid, date);

	CREATE TABLE scheduled_actions (
		scheduled_action_uid   TEXT PRIMARY KEY,
		action_uid             TEXT NOT NULL,
		recurrence_multiplier  INTEGER NOT NULL,
		recurrence_period_type TEXT NOT NULL,
		recurrence_by_days     TEXT NOT NULL DEFAULT '',
		start_time             TIMESTAMP NOT NULL,
		end_time               TIMESTAMP NOT NULL,
		enabled                INTEGER NOT NULL DEFAULT 1,
		auto_create            INTEGER NOT NULL DEFAULT 0,
		auto_notify            INTEGER NOT NULL DEFAULT 0,
		advance_create_days    INTEGER NOT NULL DEFAULT 0,
		advance_notify_days    INTEGER NOT NULL DEFAULT 0,
		total_frequency        INTEGER NOT NULL DEFAULT 0,
		execution_count        INTEGER NOT NULL DEFAULT 0,
		last_run_time          TIMESTAMP NOT NULL,
		template_account_uid   TEXT NOT NULL DEFAULT '',
		created_at             TIMESTAMP NOT NULL,
		last_updated_at        TIMESTAMP NOT NULL
	);
	CREATE INDEX idx_scheduled_actions_action_uid ON scheduled_actions (action_uid);
	`,
}

// Migrate brings the book schema up to the current version.
func Migrate(ctx context.Context, db *sql.DB) error {
	logger := logging.FromCtx(ctx)

	var version int
	if err := db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if version > len(migrations) {
		return fmt.Errorf("book schema version %d is newer than this build supports (%d)", version, len(migrations))
	}
	if version == len(migrations) {
		return nil
	}

	for i := version; i < len(migrations); i++ {
		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin migration %d: %w", i+1, err)
		}
		if _, err := tx.ExecContext(ctx, migrations[i]); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", i+1)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", i+1, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", i+1, err)
		}
		logger.Info("applied book migration", "version", i+1)
	}
	return nil
}
