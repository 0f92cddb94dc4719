package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/cashbook-app/cashbook/internal/apperrors"
	"github.com/cashbook-app/cashbook/internal/core/domain"
	"github.com/cashbook-app/cashbook/internal/models"
	"github.com/cashbook-app/cashbook/internal/utils/mapping"
)

const accountColumns = `account_uid, name, description, account_type, commodity_uid, parent_uid, full_name, placeholder, hidden, favorite, color, default_transfer_account_uid, created_at, last_updated_at`

// SQLiteAccountRepository implements the account repository facade using SQLite.
type SQLiteAccountRepository struct {
	BaseRepository
}

// NewSQLiteAccountRepository creates a new account repository.
func NewSQLiteAccountRepository(db *sql.DB) *SQLiteAccountRepository {
	return &SQLiteAccountRepository{BaseRepository: NewBaseRepository(db)}
}

func scanAccount(row interface{ Scan(dest ...any) error }) (models.Account, error) {
	var m models.Account
	var parentUID, defaultTransferUID sql.NullString
	err := row.Scan(
		&m.AccountUID, &m.Name, &m.Description, &m.AccountType, &m.CommodityUID,
		&parentUID, &m.FullName, &m.Placeholder, &m.Hidden, &m.Favorite,
		&m.Color, &defaultTransferUID, &m.CreatedAt, &m.LastUpdatedAt,
	)
	m.ParentUID = parentUID.String
	m.DefaultTransferAccountUID = defaultTransferUID.String
	return m, err
}

func queryAccounts(ctx context.Context, q querier, query string, args ...any) ([]domain.Account, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ms []models.Account
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return mapping.ToDomainAccountSlice(ms), nil
}

// FindAccountByUID retrieves a specific account by its unique identifier.
func (r *SQLiteAccountRepository) FindAccountByUID(ctx context.Context, accountUID string) (*domain.Account, error) {
	query := fmt.Sprintf(`SELECT %s FROM accounts WHERE account_uid = ?`, accountColumns)
	m, err := scanAccount(r.DB.QueryRowContext(ctx, query, accountUID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, mapSQLiteError(err, "account")
		}
		return nil, fmt.Errorf("failed to find account %s: %w", accountUID, err)
	}
	d := mapping.ToDomainAccount(m)
	return &d, nil
}

// FindAccountsByUIDs retrieves multiple accounts by their UIDs.
func (r *SQLiteAccountRepository) FindAccountsByUIDs(ctx context.Context, accountUIDs []string) (map[string]domain.Account, error) {
	result := make(map[string]domain.Account, len(accountUIDs))
	if len(accountUIDs) == 0 {
		return result, nil
	}
	query := fmt.Sprintf(`SELECT %s FROM accounts WHERE account_uid IN (%s)`, accountColumns, placeholders(len(accountUIDs)))
	accounts, err := queryAccounts(ctx, r.DB, query, toArgs(accountUIDs)...)
	if err != nil {
		return nil, fmt.Errorf("failed to find accounts by UIDs: %w", err)
	}
	for _, a := range accounts {
		result[a.AccountUID] = a
	}
	return result, nil
}

// FindAccountByFullName retrieves an account by its materialized full name.
func (r *SQLiteAccountRepository) FindAccountByFullName(ctx context.Context, fullName string) (*domain.Account, error) {
	return findAccountByFullName(ctx, r.DB, fullName)
}

// FindAccountByFullNameInTx is FindAccountByFullName scoped to an existing
// atomic unit.
func (r *SQLiteAccountRepository) FindAccountByFullNameInTx(ctx context.Context, tx *sql.Tx, fullName string) (*domain.Account, error) {
	return findAccountByFullName(ctx, tx, fullName)
}

func findAccountByFullName(ctx context.Context, q querier, fullName string) (*domain.Account, error) {
	query := fmt.Sprintf(`SELECT %s FROM accounts WHERE full_name = ? LIMIT 1`, accountColumns)
	m, err := scanAccount(q.QueryRowContext(ctx, query, fullName))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, mapSQLiteError(err, "account")
		}
		return nil, fmt.Errorf("failed to find account by full name %q: %w", fullName, err)
	}
	d := mapping.ToDomainAccount(m)
	return &d, nil
}

// FindRootAccount retrieves the book's unique ROOT account, if any.
func (r *SQLiteAccountRepository) FindRootAccount(ctx context.Context) (*domain.Account, error) {
	return findRootAccount(ctx, r.DB)
}

// FindRootAccountInTx is FindRootAccount scoped to an existing atomic unit.
func (r *SQLiteAccountRepository) FindRootAccountInTx(ctx context.Context, tx *sql.Tx) (*domain.Account, error) {
	return findRootAccount(ctx, tx)
}

func findRootAccount(ctx context.Context, q querier) (*domain.Account, error) {
	query := fmt.Sprintf(`SELECT %s FROM accounts WHERE account_type = ? LIMIT 1`, accountColumns)
	m, err := scanAccount(q.QueryRowContext(ctx, query, string(domain.Root)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, mapSQLiteError(err, "root account")
		}
		return nil, fmt.Errorf("failed to find root account: %w", err)
	}
	d := mapping.ToDomainAccount(m)
	return &d, nil
}

// FindChildAccounts retrieves every account whose parent is one of the given UIDs.
func (r *SQLiteAccountRepository) FindChildAccounts(ctx context.Context, parentUIDs []string) ([]domain.Account, error) {
	return findChildAccounts(ctx, r.DB, parentUIDs)
}

// FindChildAccountsInTx is FindChildAccounts scoped to an existing atomic unit.
func (r *SQLiteAccountRepository) FindChildAccountsInTx(ctx context.Context, tx *sql.Tx, parentUIDs []string) ([]domain.Account, error) {
	return findChildAccounts(ctx, tx, parentUIDs)
}

func findChildAccounts(ctx context.Context, q querier, parentUIDs []string) ([]domain.Account, error) {
	if len(parentUIDs) == 0 {
		return nil, nil
	}
	query := fmt.Sprintf(`SELECT %s FROM accounts WHERE parent_uid IN (%s) ORDER BY name`, accountColumns, placeholders(len(parentUIDs)))
	accounts, err := queryAccounts(ctx, q, query, toArgs(parentUIDs)...)
	if err != nil {
		return nil, fmt.Errorf("failed to find child accounts: %w", err)
	}
	return accounts, nil
}

// ListTopLevelAccounts lists the direct children of ROOT, ordered by name.
func (r *SQLiteAccountRepository) ListTopLevelAccounts(ctx context.Context) ([]domain.Account, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM accounts
		WHERE parent_uid = (SELECT account_uid FROM accounts WHERE account_type = ?)
		ORDER BY name`, accountColumns)
	accounts, err := queryAccounts(ctx, r.DB, query, string(domain.Root))
	if err != nil {
		return nil, fmt.Errorf("failed to list top-level accounts: %w", err)
	}
	return accounts, nil
}

// ListFavoriteAccounts lists accounts flagged as favorites, ordered by name.
func (r *SQLiteAccountRepository) ListFavoriteAccounts(ctx context.Context) ([]domain.Account, error) {
	query := fmt.Sprintf(`SELECT %s FROM accounts WHERE favorite = 1 AND hidden = 0 ORDER BY name`, accountColumns)
	accounts, err := queryAccounts(ctx, r.DB, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorite accounts: %w", err)
	}
	return accounts, nil
}

// ListRecentAccounts lists accounts by most recent transaction activity.
func (r *SQLiteAccountRepository) ListRecentAccounts(ctx context.Context, limit int) ([]domain.Account, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM accounts a
		WHERE a.hidden = 0 AND a.account_type != ?
		  AND EXISTS (SELECT 1 FROM splits s WHERE s.account_uid = a.account_uid)
		ORDER BY (
			SELECT MAX(t.entered_date) FROM splits s
			JOIN transactions t ON t.transaction_uid = s.transaction_uid
			WHERE s.account_uid = a.account_uid AND t.template = 0
		) DESC
		LIMIT ?`, prefixColumns("a", accountColumns))
	accounts, err := queryAccounts(ctx, r.DB, query, string(domain.Root), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent accounts: %w", err)
	}
	return accounts, nil
}

// ListAccounts lists all non-hidden, non-ROOT accounts.
func (r *SQLiteAccountRepository) ListAccounts(ctx context.Context, orderByFullName bool) ([]domain.Account, error) {
	orderBy := "name"
	if orderByFullName {
		orderBy = "full_name"
	}
	query := fmt.Sprintf(`SELECT %s FROM accounts WHERE hidden = 0 AND account_type != ? ORDER BY %s`, accountColumns, orderBy)
	accounts, err := queryAccounts(ctx, r.DB, query, string(domain.Root))
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// SaveAccount upserts an account by UID, including its materialized full name.
func (r *SQLiteAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	return saveAccount(ctx, r.DB, account)
}

// SaveAccountInTx is SaveAccount scoped to an existing atomic unit.
func (r *SQLiteAccountRepository) SaveAccountInTx(ctx context.Context, tx *sql.Tx, account domain.Account) error {
	return saveAccount(ctx, tx, account)
}

func saveAccount(ctx context.Context, q querier, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		INSERT INTO accounts (account_uid, name, description, account_type, commodity_uid, parent_uid, full_name, placeholder, hidden, favorite, color, default_transfer_account_uid, created_at, last_updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (account_uid) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			account_type = excluded.account_type,
			commodity_uid = excluded.commodity_uid,
			parent_uid = excluded.parent_uid,
			full_name = excluded.full_name,
			placeholder = excluded.placeholder,
			hidden = excluded.hidden,
			favorite = excluded.favorite,
			color = excluded.color,
			default_transfer_account_uid = excluded.default_transfer_account_uid,
			last_updated_at = excluded.last_updated_at`
	_, err := q.ExecContext(ctx, query,
		m.AccountUID, m.Name, m.Description, m.AccountType, m.CommodityUID,
		nullString(m.ParentUID), m.FullName, m.Placeholder, m.Hidden, m.Favorite,
		m.Color, nullString(m.DefaultTransferAccountUID), m.CreatedAt, m.LastUpdatedAt,
	)
	if err != nil {
		return mapSQLiteError(err, "account")
	}
	return nil
}

// UpdateFullNamesInTx persists recomputed full names for many accounts inside
// an existing atomic unit.
func (r *SQLiteAccountRepository) UpdateFullNamesInTx(ctx context.Context, tx *sql.Tx, fullNames map[string]string) error {
	return updateFullNames(ctx, tx, fullNames)
}

func updateFullNames(ctx context.Context, q querier, fullNames map[string]string) error {
	for uid, fullName := range fullNames {
		res, err := q.ExecContext(ctx,
			`UPDATE accounts SET full_name = ?, last_updated_at = CURRENT_TIMESTAMP WHERE account_uid = ?`,
			fullName, uid,
		)
		if err != nil {
			return fmt.Errorf("failed to update full name for %s: %w", uid, err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return apperrors.NewNotFoundError("account " + uid + " not found")
		}
	}
	return nil
}

// EnsureRootAccount inserts the given ROOT account unless one already exists,
// and returns the UID of the winner. The partial unique index on account_type
// makes the insert race-safe; losers fall through to the re-select.
func (r *SQLiteAccountRepository) EnsureRootAccount(ctx context.Context, root domain.Account) (string, error) {
	return ensureRootAccount(ctx, r.DB, root)
}

// EnsureRootAccountInTx is EnsureRootAccount scoped to an existing atomic unit.
func (r *SQLiteAccountRepository) EnsureRootAccountInTx(ctx context.Context, tx *sql.Tx, root domain.Account) (string, error) {
	return ensureRootAccount(ctx, tx, root)
}

func ensureRootAccount(ctx context.Context, q querier, root domain.Account) (string, error) {
	m := mapping.ToModelAccount(root)
	query := `
		INSERT OR IGNORE INTO accounts (account_uid, name, description, account_type, commodity_uid, parent_uid, full_name, placeholder, hidden, favorite, color, default_transfer_account_uid, created_at, last_updated_at)
		VALUES (?, ?, ?, ?, ?, NULL, ?, ?, ?, ?, ?, NULL, ?, ?)`
	_, err := q.ExecContext(ctx, query,
		m.AccountUID, m.Name, m.Description, m.AccountType, m.CommodityUID,
		m.FullName, m.Placeholder, m.Hidden, m.Favorite, m.Color, m.CreatedAt, m.LastUpdatedAt,
	)
	if err != nil {
		return "", mapSQLiteError(err, "root account")
	}

	var uid string
	err = q.QueryRowContext(ctx, `SELECT account_uid FROM accounts WHERE account_type = ?`, string(domain.Root)).Scan(&uid)
	if err != nil {
		return "", fmt.Errorf("failed to resolve root account: %w", err)
	}
	return uid, nil
}

// ReassignDescendants moves every direct child of accountUID under
// newParentUID and rewrites full names for the affected subtree atomically.
func (r *SQLiteAccountRepository) ReassignDescendants(ctx context.Context, accountUID, newParentUID string) error {
	return r.WithTx(ctx, func(tx *sql.Tx) error {
		newParentQuery := fmt.Sprintf(`SELECT %s FROM accounts WHERE account_uid = ?`, accountColumns)
		parentModel, err := scanAccount(tx.QueryRowContext(ctx, newParentQuery, newParentUID))
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return mapSQLiteError(err, "new parent account")
			}
			return fmt.Errorf("failed to load new parent %s: %w", newParentUID, err)
		}
		newParent := mapping.ToDomainAccount(parentModel)

		children, err := findChildAccounts(ctx, tx, []string{accountUID})
		if err != nil {
			return err
		}
		if len(children) == 0 {
			return nil
		}

		childUIDs := make([]string, len(children))
		for i, c := range children {
			childUIDs[i] = c.AccountUID
		}
		query := fmt.Sprintf(
			`UPDATE accounts SET parent_uid = ?, last_updated_at = CURRENT_TIMESTAMP WHERE account_uid IN (%s)`,
			placeholders(len(childUIDs)),
		)
		args := append([]any{nullString(newParentUID)}, toArgs(childUIDs)...)
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to reassign children of %s: %w", accountUID, err)
		}

		// Rewrite full names level by level starting from the moved children.
		fullNames := make(map[string]string)
		parentFullName := make(map[string]string)
		for _, c := range children {
			fn := domain.ChildFullName(newParent.FullName, c.Name)
			fullNames[c.AccountUID] = fn
			parentFullName[c.AccountUID] = fn
		}
		frontier := childUIDs
		for len(frontier) > 0 {
			next, err := findChildAccounts(ctx, tx, frontier)
			if err != nil {
				return err
			}
			frontier = frontier[:0]
			for _, c := range next {
				fn := domain.ChildFullName(parentFullName[c.ParentUID], c.Name)
				fullNames[c.AccountUID] = fn
				parentFullName[c.AccountUID] = fn
				frontier = append(frontier, c.AccountUID)
			}
		}
		return updateFullNames(ctx, tx, fullNames)
	})
}

// DeleteAccountSubtree deletes the account, its subtree, and every
// transaction touching a deleted account. Returns false for ROOT.
func (r *SQLiteAccountRepository) DeleteAccountSubtree(ctx context.Context, accountUID string) (bool, error) {
	var deleted bool
	err := r.WithTx(ctx, func(tx *sql.Tx) error {
		var err error
		deleted, err = r.DeleteAccountSubtreeInTx(ctx, tx, accountUID)
		return err
	})
	return deleted, err
}

// DeleteAccountSubtreeInTx is DeleteAccountSubtree scoped to an existing
// atomic unit.
func (r *SQLiteAccountRepository) DeleteAccountSubtreeInTx(ctx context.Context, tx *sql.Tx, accountUID string) (bool, error) {
	query := fmt.Sprintf(`SELECT %s FROM accounts WHERE account_uid = ?`, accountColumns)
	m, err := scanAccount(tx.QueryRowContext(ctx, query, accountUID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, mapSQLiteError(err, "account")
		}
		return false, fmt.Errorf("failed to load account %s: %w", accountUID, err)
	}
	if domain.AccountType(m.AccountType) == domain.Root {
		return false, nil
	}

	// Collect the whole subtree breadth-first.
	subtree := []string{accountUID}
	frontier := []string{accountUID}
	for len(frontier) > 0 {
		children, err := findChildAccounts(ctx, tx, frontier)
		if err != nil {
			return false, err
		}
		frontier = frontier[:0]
		for _, c := range children {
			subtree = append(subtree, c.AccountUID)
			frontier = append(frontier, c.AccountUID)
		}
	}

	in := placeholders(len(subtree))
	args := toArgs(subtree)

	// Splits cascade when their transaction goes.
	txnQuery := fmt.Sprintf(`
		DELETE FROM transactions WHERE transaction_uid IN (
			SELECT DISTINCT transaction_uid FROM splits WHERE account_uid IN (%s)
		)`, in)
	if _, err := tx.ExecContext(ctx, txnQuery, args...); err != nil {
		return false, fmt.Errorf("failed to delete transactions for subtree of %s: %w", accountUID, err)
	}

	clearQuery := fmt.Sprintf(
		`UPDATE accounts SET default_transfer_account_uid = NULL WHERE default_transfer_account_uid IN (%s)`, in)
	if _, err := tx.ExecContext(ctx, clearQuery, args...); err != nil {
		return false, fmt.Errorf("failed to clear transfer references for subtree of %s: %w", accountUID, err)
	}

	deleteQuery := fmt.Sprintf(`DELETE FROM accounts WHERE account_uid IN (%s)`, in)
	if _, err := tx.ExecContext(ctx, deleteQuery, args...); err != nil {
		return false, fmt.Errorf("failed to delete subtree of %s: %w", accountUID, err)
	}
	return true, nil
}
