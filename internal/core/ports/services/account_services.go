package services

import (
	"context"
	"database/sql"

	"github.com/cashbook-app/cashbook/internal/core/domain"
	"github.com/cashbook-app/cashbook/internal/dto"
)

// AccountSvcFacade is the hierarchical account store.
type AccountSvcFacade interface {
	// CreateOrReplaceAccount upserts an account, defaulting the parent to the
	// book's root and recomputing materialized full names (cascading to
	// descendants on rename or reparent).
	CreateOrReplaceAccount(ctx context.Context, req dto.SaveAccountRequest) (*domain.Account, error)

	// GetAccountByUID retrieves an account.
	GetAccountByUID(ctx context.Context, accountUID string) (*domain.Account, error)

	// GetOrCreateRootUID returns the unique ROOT account's UID, creating it
	// on demand. Idempotent and safe under concurrent mutation.
	GetOrCreateRootUID(ctx context.Context) (string, error)

	// GetOrCreateImbalanceAccount returns the per-currency imbalance account,
	// creating it under ROOT when absent.
	GetOrCreateImbalanceAccount(ctx context.Context, currency domain.Commodity) (*domain.Account, error)

	// GetOrCreateImbalanceAccountInTx is GetOrCreateImbalanceAccount scoped to
	// an existing atomic unit, so a freshly created account commits or rolls
	// back together with the caller's writes.
	GetOrCreateImbalanceAccountInTx(ctx context.Context, tx *sql.Tx, currency domain.Commodity) (*domain.Account, error)

	// ReassignDescendants moves every child of accountUID under newParentUID,
	// rewriting descendant full names in one atomic unit.
	ReassignDescendants(ctx context.Context, accountUID, newParentUID string) error

	// DeleteSubtree removes the account, its subtree, and every transaction
	// touching any account in the subtree. Returns false for ROOT.
	DeleteSubtree(ctx context.Context, accountUID string) (bool, error)

	// DescendantUIDs expands the subtree breadth-first, level by level,
	// pruning at accounts rejected by the optional filter.
	DescendantUIDs(ctx context.Context, accountUID string, filter *dto.DescendantFilter) ([]string, error)

	// FullName resolves the colon-joined path of an account, composing it on
	// the fly for accounts not yet persisted.
	FullName(ctx context.Context, accountUID string) (string, error)

	// Query helpers for pickers and listings.
	ListTopLevelAccounts(ctx context.Context) ([]domain.Account, error)
	ListFavoriteAccounts(ctx context.Context) ([]domain.Account, error)
	ListRecentAccounts(ctx context.Context, limit int) ([]domain.Account, error)
	ListSubAccounts(ctx context.Context, parentUID string) ([]domain.Account, error)
	ListAccounts(ctx context.Context, orderByFullName bool) ([]domain.Account, error)
}
