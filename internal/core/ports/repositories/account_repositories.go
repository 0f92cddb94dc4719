package repositories

import (
	"context"
	"database/sql"

	"github.com/cashbook-app/cashbook/internal/core/domain"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByUID retrieves a specific account by its unique identifier.
	FindAccountByUID(ctx context.Context, accountUID string) (*domain.Account, error)

	// FindAccountsByUIDs retrieves multiple accounts by their UIDs.
	FindAccountsByUIDs(ctx context.Context, accountUIDs []string) (map[string]domain.Account, error)

	// FindAccountByFullName retrieves an account by its materialized full name.
	FindAccountByFullName(ctx context.Context, fullName string) (*domain.Account, error)

	// FindAccountByFullNameInTx is FindAccountByFullName scoped to an existing
	// atomic unit.
	FindAccountByFullNameInTx(ctx context.Context, tx *sql.Tx, fullName string) (*domain.Account, error)

	// FindRootAccount retrieves the book's unique ROOT account, if any.
	FindRootAccount(ctx context.Context) (*domain.Account, error)

	// FindRootAccountInTx is FindRootAccount scoped to an existing atomic unit.
	FindRootAccountInTx(ctx context.Context, tx *sql.Tx) (*domain.Account, error)

	// FindChildAccounts retrieves every account whose parent is one of the
	// given UIDs. This is one level of the breadth-first descendant walk.
	FindChildAccounts(ctx context.Context, parentUIDs []string) ([]domain.Account, error)

	// FindChildAccountsInTx is FindChildAccounts scoped to an existing atomic
	// unit, so descendant walks read the tree state they are about to rewrite.
	FindChildAccountsInTx(ctx context.Context, tx *sql.Tx, parentUIDs []string) ([]domain.Account, error)

	// ListTopLevelAccounts lists the direct children of ROOT, ordered by name.
	ListTopLevelAccounts(ctx context.Context) ([]domain.Account, error)

	// ListFavoriteAccounts lists accounts flagged as favorites, ordered by name.
	ListFavoriteAccounts(ctx context.Context) ([]domain.Account, error)

	// ListRecentAccounts lists accounts by most recent transaction activity,
	// at most limit entries.
	ListRecentAccounts(ctx context.Context, limit int) ([]domain.Account, error)

	// ListAccounts lists all non-hidden, non-ROOT accounts. Ordered by full
	// name when orderByFullName is set, by name otherwise.
	ListAccounts(ctx context.Context, orderByFullName bool) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount upserts an account by UID, including its materialized full name.
	SaveAccount(ctx context.Context, account domain.Account) error

	// SaveAccountInTx is SaveAccount scoped to an existing atomic unit.
	SaveAccountInTx(ctx context.Context, tx *sql.Tx, account domain.Account) error

	// UpdateFullNamesInTx persists recomputed full names for many accounts
	// inside an existing atomic unit.
	UpdateFullNamesInTx(ctx context.Context, tx *sql.Tx, fullNames map[string]string) error

	// EnsureRootAccount inserts the given ROOT account unless one already
	// exists, and returns the UID of the winner. Safe to call concurrently.
	EnsureRootAccount(ctx context.Context, root domain.Account) (string, error)

	// EnsureRootAccountInTx is EnsureRootAccount scoped to an existing atomic
	// unit.
	EnsureRootAccountInTx(ctx context.Context, tx *sql.Tx, root domain.Account) (string, error)

	// ReassignDescendants moves every direct child of accountUID under
	// newParentUID and rewrites full names for the whole affected subtree in
	// one atomic unit.
	ReassignDescendants(ctx context.Context, accountUID, newParentUID string) error

	// DeleteAccountSubtree deletes the account, its entire subtree, and every
	// transaction with a split in any deleted account, then clears dangling
	// default-transfer references. Returns false (and does nothing) for ROOT.
	DeleteAccountSubtree(ctx context.Context, accountUID string) (bool, error)

	// DeleteAccountSubtreeInTx is DeleteAccountSubtree scoped to an existing
	// atomic unit.
	DeleteAccountSubtreeInTx(ctx context.Context, tx *sql.Tx, accountUID string) (bool, error)
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}

// AccountRepositoryWithTx extends AccountRepositoryFacade with transaction capabilities
type AccountRepositoryWithTx interface {
	AccountRepositoryFacade
	TransactionManager
}
