package repositories

import (
	"context"
	"database/sql"
	"time"

	"github.com/cashbook-app/cashbook/internal/core/domain"
)

// SplitSum is one aggregation row of the split summation primitive: the sum
// of signed quantity numerators for splits sharing an account commodity and
// quantity denominator.
type SplitSum struct {
	CommodityUID string
	Denom        int64
	SignedNum    int64
}

// TimeWindow optionally restricts a summation to post dates in [Start, End].
// Nil bounds are open.
type TimeWindow struct {
	Start *time.Time
	End   *time.Time
}

// TransactionReader defines read operations for transaction and split data
type TransactionReader interface {
	// FindTransactionByUID retrieves a transaction with its splits loaded,
	// splits ordered by creation time.
	FindTransactionByUID(ctx context.Context, transactionUID string) (*domain.Transaction, error)

	// FindSplitsForTransaction retrieves the ordered splits of a transaction.
	FindSplitsForTransaction(ctx context.Context, transactionUID string) ([]domain.Split, error)

	// ListTransactionsForAccount lists non-template transactions having at
	// least one split in the account, newest post date first.
	ListTransactionsForAccount(ctx context.Context, accountUID string) ([]domain.Transaction, error)

	// ListTemplateTransactionsForAccount lists template transactions having a
	// split in the account.
	ListTemplateTransactionsForAccount(ctx context.Context, accountUID string) ([]domain.Transaction, error)

	// FindEarliestPostDate returns the earliest post date among non-template
	// transactions touching accounts of the given type and commodity.
	FindEarliestPostDate(ctx context.Context, accountType domain.AccountType, commodityUID string) (time.Time, error)

	// FindLatestPostDate is the MAX counterpart of FindEarliestPostDate.
	FindLatestPostDate(ctx context.Context, accountType domain.AccountType, commodityUID string) (time.Time, error)

	// AutocompleteDescriptions returns distinct transaction descriptions
	// starting with prefix, drawn from templates and from transactions
	// touching the account, at most limit entries.
	AutocompleteDescriptions(ctx context.Context, accountUID, prefix string, limit int) ([]string, error)

	// CountTransactionsForScheduledAction counts realized (non-template)
	// transactions carrying the scheduled-action link.
	CountTransactionsForScheduledAction(ctx context.Context, scheduledActionUID string) (int64, error)

	// SumSplitQuantities aggregates signed quantity sums for non-template
	// splits in the given accounts, grouped by account commodity and quantity
	// denominator, optionally restricted to a post-date window.
	SumSplitQuantities(ctx context.Context, accountUIDs []string, window TimeWindow) ([]SplitSum, error)
}

// TransactionWriter defines write operations for transaction and split data
type TransactionWriter interface {
	// SaveTransaction upserts the transaction and all its splits, and deletes
	// any previously stored split absent from the new set, in one atomic unit.
	SaveTransaction(ctx context.Context, txn domain.Transaction) error

	// SaveTransactionInTx is SaveTransaction scoped to an existing atomic
	// unit; bulk importers use it to commit many transactions together.
	SaveTransactionInTx(ctx context.Context, tx *sql.Tx, txn domain.Transaction) error

	// DeleteTransaction removes a transaction and its splits.
	DeleteTransaction(ctx context.Context, transactionUID string) error

	// DeleteTransactionsForAccount removes every transaction having at least
	// one split in the account, splits included. Returns the count removed.
	DeleteTransactionsForAccount(ctx context.Context, accountUID string) (int64, error)

	// PurgeSplitlessTransactions removes transactions with zero remaining
	// splits. Returns the count removed.
	PurgeSplitlessTransactions(ctx context.Context) (int64, error)

	// MoveSplits reassigns every split of the transaction currently in
	// fromAccountUID to toAccountUID. Returns the count moved.
	MoveSplits(ctx context.Context, transactionUID, fromAccountUID, toAccountUID string) (int64, error)
}

// TransactionRepositoryFacade combines all transaction repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}

// TransactionRepositoryWithTx extends TransactionRepositoryFacade with
// transaction capabilities
type TransactionRepositoryWithTx interface {
	TransactionRepositoryFacade
	TransactionManager
}
