package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/cashbook-app/cashbook/internal/apperrors"
	"github.com/cashbook-app/cashbook/internal/core/domain"
	portsrepo "github.com/cashbook-app/cashbook/internal/core/ports/repositories"
	"github.com/cashbook-app/cashbook/internal/models"
	"github.com/cashbook-app/cashbook/internal/utils/mapping"
)

const transactionColumns = `transaction_uid, description, notes, post_date, entered_date, commodity_uid, exported, template, scheduled_action_uid, created_at, last_updated_at`

const splitColumns = `split_uid, transaction_uid, account_uid, split_type, value_num, value_denom, quantity_num, quantity_denom, memo, reconcile_state, reconcile_date, created_at, last_updated_at`

// SQLiteTransactionRepository implements the transaction repository facade using SQLite.
type SQLiteTransactionRepository struct {
	BaseRepository
}

// NewSQLiteTransactionRepository creates a new transaction repository.
func NewSQLiteTransactionRepository(db *sql.DB) *SQLiteTransactionRepository {
	return &SQLiteTransactionRepository{BaseRepository: NewBaseRepository(db)}
}

func scanTransaction(row interface{ Scan(dest ...any) error }) (models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionUID, &m.Description, &m.Notes, &m.PostDate, &m.EnteredDate,
		&m.CommodityUID, &m.Exported, &m.Template, &m.ScheduledActionUID,
		&m.CreatedAt, &m.LastUpdatedAt,
	)
	return m, err
}

func scanSplit(row interface{ Scan(dest ...any) error }) (models.Split, error) {
	var m models.Split
	err := row.Scan(
		&m.SplitUID, &m.TransactionUID, &m.AccountUID, &m.SplitType,
		&m.ValueNum, &m.ValueDenom, &m.QuantityNum, &m.QuantityDenom,
		&m.Memo, &m.ReconcileState, &m.ReconcileDate, &m.CreatedAt, &m.LastUpdatedAt,
	)
	return m, err
}

func querySplits(ctx context.Context, q querier, query string, args ...any) ([]domain.Split, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ms []models.Split
	for rows.Next() {
		m, err := scanSplit(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan split: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return mapping.ToDomainSplitSlice(ms), nil
}

// FindTransactionByUID retrieves a transaction with its splits loaded.
func (r *SQLiteTransactionRepository) FindTransactionByUID(ctx context.Context, transactionUID string) (*domain.Transaction, error) {
	query := fmt.Sprintf(`SELECT %s FROM transactions WHERE transaction_uid = ?`, transactionColumns)
	m, err := scanTransaction(r.DB.QueryRowContext(ctx, query, transactionUID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, mapSQLiteError(err, "transaction")
		}
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionUID, err)
	}

	splits, err := r.FindSplitsForTransaction(ctx, transactionUID)
	if err != nil {
		return nil, err
	}
	d := mapping.ToDomainTransaction(m)
	d.Splits = splits
	return &d, nil
}

// FindSplitsForTransaction retrieves the ordered splits of a transaction.
func (r *SQLiteTransactionRepository) FindSplitsForTransaction(ctx context.Context, transactionUID string) ([]domain.Split, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM splits WHERE transaction_uid = ? ORDER BY created_at, split_uid`, splitColumns)
	splits, err := querySplits(ctx, r.DB, query, transactionUID)
	if err != nil {
		return nil, fmt.Errorf("failed to find splits for transaction %s: %w", transactionUID, err)
	}
	return splits, nil
}

func (r *SQLiteTransactionRepository) listTransactions(ctx context.Context, accountUID string, template bool) ([]domain.Transaction, error) {
	query := fmt.Sprintf(`
		SELECT DISTINCT %s FROM transactions t
		JOIN splits s ON s.transaction_uid = t.transaction_uid
		WHERE s.account_uid = ? AND t.template = ?
		ORDER BY t.post_date DESC, t.entered_date DESC`, prefixColumns("t", transactionColumns))
	rows, err := r.DB.QueryContext(ctx, query, accountUID, template)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions for account %s: %w", accountUID, err)
	}
	defer rows.Close()

	var txns []domain.Transaction
	var uids []string
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txns = append(txns, mapping.ToDomainTransaction(m))
		uids = append(uids, m.TransactionUID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(txns) == 0 {
		return nil, nil
	}

	// One batch query for all splits, then group in memory.
	splitQuery := fmt.Sprintf(
		`SELECT %s FROM splits WHERE transaction_uid IN (%s) ORDER BY created_at, split_uid`,
		splitColumns, placeholders(len(uids)))
	splits, err := querySplits(ctx, r.DB, splitQuery, toArgs(uids)...)
	if err != nil {
		return nil, fmt.Errorf("failed to load splits for account %s listing: %w", accountUID, err)
	}
	byTxn := make(map[string][]domain.Split)
	for _, s := range splits {
		byTxn[s.TransactionUID] = append(byTxn[s.TransactionUID], s)
	}
	for i := range txns {
		txns[i].Splits = byTxn[txns[i].TransactionUID]
	}
	return txns, nil
}

// ListTransactionsForAccount lists non-template transactions having at least
// one split in the account, newest post date first.
func (r *SQLiteTransactionRepository) ListTransactionsForAccount(ctx context.Context, accountUID string) ([]domain.Transaction, error) {
	return r.listTransactions(ctx, accountUID, false)
}

// ListTemplateTransactionsForAccount lists template transactions having a
// split in the account.
func (r *SQLiteTransactionRepository) ListTemplateTransactionsForAccount(ctx context.Context, accountUID string) ([]domain.Transaction, error) {
	return r.listTransactions(ctx, accountUID, true)
}

func (r *SQLiteTransactionRepository) findPostDateExtreme(ctx context.Context, agg string, accountType domain.AccountType, commodityUID string) (time.Time, error) {
	query := fmt.Sprintf(`
		SELECT %s(t.post_date) FROM transactions t
		JOIN splits s ON s.transaction_uid = t.transaction_uid
		JOIN accounts a ON a.account_uid = s.account_uid
		WHERE t.template = 0 AND a.account_type = ? AND a.commodity_uid = ?`, agg)
	var extreme sql.NullTime
	if err := r.DB.QueryRowContext(ctx, query, string(accountType), commodityUID).Scan(&extreme); err != nil {
		return time.Time{}, fmt.Errorf("failed to find %s post date: %w", agg, err)
	}
	if !extreme.Valid {
		return time.Time{}, apperrors.NewNotFoundError("no transactions for account type " + string(accountType))
	}
	return extreme.Time, nil
}

// FindEarliestPostDate returns the earliest post date among non-template
// transactions touching accounts of the given type and commodity.
func (r *SQLiteTransactionRepository) FindEarliestPostDate(ctx context.Context, accountType domain.AccountType, commodityUID string) (time.Time, error) {
	return r.findPostDateExtreme(ctx, "MIN", accountType, commodityUID)
}

// FindLatestPostDate is the MAX counterpart of FindEarliestPostDate.
func (r *SQLiteTransactionRepository) FindLatestPostDate(ctx context.Context, accountType domain.AccountType, commodityUID string) (time.Time, error) {
	return r.findPostDateExtreme(ctx, "MAX", accountType, commodityUID)
}

// AutocompleteDescriptions returns distinct transaction descriptions starting
// with prefix, drawn from templates and from transactions touching the account.
func (r *SQLiteTransactionRepository) AutocompleteDescriptions(ctx context.Context, accountUID, prefix string, limit int) ([]string, error) {
	query := `
		SELECT DISTINCT t.description FROM transactions t
		LEFT JOIN splits s ON s.transaction_uid = t.transaction_uid
		WHERE t.description != '' AND t.description LIKE ?
		  AND (t.template = 1 OR s.account_uid = ?)
		ORDER BY t.description
		LIMIT ?`
	rows, err := r.DB.QueryContext(ctx, query, prefix+"%", accountUID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to autocomplete descriptions: %w", err)
	}
	defer rows.Close()

	var descriptions []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		descriptions = append(descriptions, d)
	}
	return descriptions, rows.Err()
}

// CountTransactionsForScheduledAction counts realized transactions carrying
// the scheduled-action link.
func (r *SQLiteTransactionRepository) CountTransactionsForScheduledAction(ctx context.Context, scheduledActionUID string) (int64, error) {
	var count int64
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM transactions WHERE scheduled_action_uid = ? AND template = 0`,
		scheduledActionUID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count transactions for scheduled action %s: %w", scheduledActionUID, err)
	}
	return count, nil
}

// SumSplitQuantities aggregates signed quantity sums for non-template splits
// in the given accounts, grouped by account commodity and quantity
// denominator. Summing numerators per denominator keeps the arithmetic exact;
// the caller reduces the grouped rows.
func (r *SQLiteTransactionRepository) SumSplitQuantities(ctx context.Context, accountUIDs []string, window portsrepo.TimeWindow) ([]portsrepo.SplitSum, error) {
	if len(accountUIDs) == 0 {
		return nil, nil
	}
	query := fmt.Sprintf(`
		SELECT a.commodity_uid, s.quantity_denom,
		       COALESCE(SUM(CASE WHEN s.split_type = ? THEN -s.quantity_num ELSE s.quantity_num END), 0)
		FROM splits s
		JOIN transactions t ON t.transaction_uid = s.transaction_uid
		JOIN accounts a ON a.account_uid = s.account_uid
		WHERE t.template = 0 AND s.account_uid IN (%s)`, placeholders(len(accountUIDs)))
	args := append([]any{string(domain.TransactionTypeCredit)}, toArgs(accountUIDs)...)
	if window.Start != nil {
		query += ` AND t.post_date >= ?`
		args = append(args, *window.Start)
	}
	if window.End != nil {
		query += ` AND t.post_date <= ?`
		args = append(args, *window.End)
	}
	query += ` GROUP BY a.commodity_uid, s.quantity_denom`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to sum split quantities: %w", err)
	}
	defer rows.Close()

	var sums []portsrepo.SplitSum
	for rows.Next() {
		var s portsrepo.SplitSum
		if err := rows.Scan(&s.CommodityUID, &s.Denom, &s.SignedNum); err != nil {
			return nil, err
		}
		sums = append(sums, s)
	}
	return sums, rows.Err()
}

// SaveTransaction upserts the transaction and all its splits atomically.
func (r *SQLiteTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	return r.WithTx(ctx, func(tx *sql.Tx) error {
		return r.SaveTransactionInTx(ctx, tx, txn)
	})
}

// SaveTransactionInTx is SaveTransaction scoped to an existing atomic unit.
// Previously stored splits absent from the new set are deleted.
func (r *SQLiteTransactionRepository) SaveTransactionInTx(ctx context.Context, tx *sql.Tx, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	txnQuery := `
		INSERT INTO transactions (transaction_uid, description, notes, post_date, entered_date, commodity_uid, exported, template, scheduled_action_uid, created_at, last_updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (transaction_uid) DO UPDATE SET
			description = excluded.description,
			notes = excluded.notes,
			post_date = excluded.post_date,
			entered_date = excluded.entered_date,
			commodity_uid = excluded.commodity_uid,
			exported = excluded.exported,
			template = excluded.template,
			scheduled_action_uid = excluded.scheduled_action_uid,
			last_updated_at = excluded.last_updated_at`
	_, err := tx.ExecContext(ctx, txnQuery,
		m.TransactionUID, m.Description, m.Notes, m.PostDate, m.EnteredDate,
		m.CommodityUID, m.Exported, m.Template, m.ScheduledActionUID,
		m.CreatedAt, m.LastUpdatedAt,
	)
	if err != nil {
		return mapSQLiteError(err, "transaction")
	}

	// Prune splits dropped from the new set.
	keep := make([]string, len(txn.Splits))
	for i, s := range txn.Splits {
		keep[i] = s.SplitUID
	}
	if len(keep) == 0 {
		if _, err := tx.ExecContext(ctx, `DELETE FROM splits WHERE transaction_uid = ?`, txn.TransactionUID); err != nil {
			return fmt.Errorf("failed to prune splits for %s: %w", txn.TransactionUID, err)
		}
	} else {
		pruneQuery := fmt.Sprintf(
			`DELETE FROM splits WHERE transaction_uid = ? AND split_uid NOT IN (%s)`, placeholders(len(keep)))
		args := append([]any{txn.TransactionUID}, toArgs(keep)...)
		if _, err := tx.ExecContext(ctx, pruneQuery, args...); err != nil {
			return fmt.Errorf("failed to prune splits for %s: %w", txn.TransactionUID, err)
		}
	}

	splitQuery := `
		INSERT INTO splits (split_uid, transaction_uid, account_uid, split_type, value_num, value_denom, quantity_num, quantity_denom, memo, reconcile_state, reconcile_date, created_at, last_updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (split_uid) DO UPDATE SET
			transaction_uid = excluded.transaction_uid,
			account_uid = excluded.account_uid,
			split_type = excluded.split_type,
			value_num = excluded.value_num,
			value_denom = excluded.value_denom,
			quantity_num = excluded.quantity_num,
			quantity_denom = excluded.quantity_denom,
			memo = excluded.memo,
			reconcile_state = excluded.reconcile_state,
			reconcile_date = excluded.reconcile_date,
			last_updated_at = excluded.last_updated_at`
	for _, s := range txn.Splits {
		sm := mapping.ToModelSplit(s)
		_, err := tx.ExecContext(ctx, splitQuery,
			sm.SplitUID, sm.TransactionUID, sm.AccountUID, sm.SplitType,
			sm.ValueNum, sm.ValueDenom, sm.QuantityNum, sm.QuantityDenom,
			sm.Memo, sm.ReconcileState, sm.ReconcileDate, sm.CreatedAt, sm.LastUpdatedAt,
		)
		if err != nil {
			return mapSQLiteError(err, "split")
		}
	}
	return nil
}

// DeleteTransaction removes a transaction; splits cascade.
func (r *SQLiteTransactionRepository) DeleteTransaction(ctx context.Context, transactionUID string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM transactions WHERE transaction_uid = ?`, transactionUID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", transactionUID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperrors.NewNotFoundError("transaction not found")
	}
	return nil
}

// DeleteTransactionsForAccount removes every transaction having at least one
// split in the account. Returns the count removed.
func (r *SQLiteTransactionRepository) DeleteTransactionsForAccount(ctx context.Context, accountUID string) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `
		DELETE FROM transactions WHERE transaction_uid IN (
			SELECT DISTINCT transaction_uid FROM splits WHERE account_uid = ?
		)`, accountUID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete transactions for account %s: %w", accountUID, err)
	}
	return res.RowsAffected()
}

// PurgeSplitlessTransactions removes transactions with zero remaining splits.
func (r *SQLiteTransactionRepository) PurgeSplitlessTransactions(ctx context.Context) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `
		DELETE FROM transactions WHERE transaction_uid NOT IN (
			SELECT DISTINCT transaction_uid FROM splits
		)`)
	if err != nil {
		return 0, fmt.Errorf("failed to purge splitless transactions: %w", err)
	}
	return res.RowsAffected()
}

// MoveSplits reassigns every split of the transaction currently in
// fromAccountUID to toAccountUID. Returns the count moved.
func (r *SQLiteTransactionRepository) MoveSplits(ctx context.Context, transactionUID, fromAccountUID, toAccountUID string) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE splits SET account_uid = ?, last_updated_at = CURRENT_TIMESTAMP
		WHERE transaction_uid = ? AND account_uid = ?`,
		toAccountUID, transactionUID, fromAccountUID)
	if err != nil {
		return 0, fmt.Errorf("failed to move splits of %s: %w", transactionUID, err)
	}
	return res.RowsAffected()
}
