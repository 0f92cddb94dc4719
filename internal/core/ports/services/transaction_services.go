package services

import (
	"context"

	"github.com/cashbook-app/cashbook/internal/core/domain"
	"github.com/cashbook-app/cashbook/internal/dto"
)

// TransactionSvcFacade is the double-entry transaction and split store.
type TransactionSvcFacade interface {
	// SaveTransaction persists the transaction and its splits atomically,
	// injecting an imbalance split when the splits do not sum to zero
	// (unless disabled via options, in which case the save fails).
	// The returned transaction includes any synthesized split.
	SaveTransaction(ctx context.Context, txn domain.Transaction, opts dto.SaveTransactionOptions) (*domain.Transaction, error)

	// GetTransactionByUID retrieves a transaction with splits.
	GetTransactionByUID(ctx context.Context, transactionUID string) (*domain.Transaction, error)

	// DeleteTransaction removes one transaction and its splits.
	DeleteTransaction(ctx context.Context, transactionUID string) error

	// DeleteTransactionsForAccount removes every transaction with a split in
	// the account. Whole transactions, never single legs.
	DeleteTransactionsForAccount(ctx context.Context, accountUID string) (int64, error)

	// PurgeSplitlessTransactions removes transactions left with no splits.
	PurgeSplitlessTransactions(ctx context.Context) (int64, error)

	// BalanceOf sums the splits of one transaction that belong to one
	// account, debit-minus-credit signed, in the transaction's commodity.
	BalanceOf(ctx context.Context, transactionUID, accountUID string) (domain.Money, error)

	// MoveSplits reassigns the transaction's splits from one account to
	// another, returning the number moved.
	MoveSplits(ctx context.Context, transactionUID, fromAccountUID, toAccountUID string) (int64, error)

	// Query helpers.
	ListTransactionsForAccount(ctx context.Context, accountUID string) ([]domain.Transaction, error)
	ListTemplateTransactionsForAccount(ctx context.Context, accountUID string) ([]domain.Transaction, error)
	TimestampBounds(ctx context.Context, accountType domain.AccountType, commodityUID string) (dto.TimestampBounds, error)
	AutocompleteDescriptions(ctx context.Context, accountUID, prefix string, limit int) ([]string, error)
}
