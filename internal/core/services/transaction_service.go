package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/cashbook-app/cashbook/internal/apperrors"
	"github.com/cashbook-app/cashbook/internal/core/domain"
	portsrepo "github.com/cashbook-app/cashbook/internal/core/ports/repositories"
	portssvc "github.com/cashbook-app/cashbook/internal/core/ports/services"
	"github.com/cashbook-app/cashbook/internal/dto"
	"github.com/cashbook-app/cashbook/internal/platform/logging"
	"github.com/cashbook-app/cashbook/internal/utils/accounting"
)

// transactionService implements portssvc.TransactionSvcFacade.
type transactionService struct {
	txnRepo       portsrepo.TransactionRepositoryWithTx
	commodityRepo portsrepo.CommodityRepositoryFacade
	accountSvc    portssvc.AccountSvcFacade
}

// NewTransactionService creates a new transaction service.
func NewTransactionService(
	txnRepo portsrepo.TransactionRepositoryWithTx,
	commodityRepo portsrepo.CommodityRepositoryFacade,
	accountSvc portssvc.AccountSvcFacade,
) portssvc.TransactionSvcFacade {
	return &transactionService{
		txnRepo:       txnRepo,
		commodityRepo: commodityRepo,
		accountSvc:    accountSvc,
	}
}

// SaveTransaction persists the transaction and its splits atomically,
// injecting an imbalance split when the splits do not sum to zero.
func (s *transactionService) SaveTransaction(ctx context.Context, txn domain.Transaction, opts dto.SaveTransactionOptions) (*domain.Transaction, error) {
	logger := logging.FromCtx(ctx)

	if len(txn.Splits) == 0 {
		return nil, fmt.Errorf("%w: transaction needs at least one split", apperrors.ErrValidation)
	}
	if txn.CommodityUID == "" {
		return nil, fmt.Errorf("%w: transaction commodity is required", apperrors.ErrValidation)
	}
	commodity, err := s.commodityRepo.FindCommodityByUID(ctx, txn.CommodityUID)
	if err != nil {
		return nil, fmt.Errorf("transaction commodity %s: %w", txn.CommodityUID, err)
	}

	now := time.Now().UTC()
	if txn.TransactionUID == "" {
		txn.TransactionUID = uuid.NewString()
	}
	if txn.PostDate.IsZero() {
		txn.PostDate = now
	}
	if txn.EnteredDate.IsZero() {
		txn.EnteredDate = now
	}
	if txn.CreatedAt.IsZero() {
		txn.CreatedAt = now
	}
	txn.LastUpdatedAt = now

	for i := range txn.Splits {
		sp := &txn.Splits[i]
		if sp.SplitUID == "" {
			sp.SplitUID = uuid.NewString()
		}
		sp.TransactionUID = txn.TransactionUID
		if sp.Type != domain.TransactionTypeDebit && sp.Type != domain.TransactionTypeCredit {
			return nil, fmt.Errorf("%w: split %s has invalid type %q", apperrors.ErrValidation, sp.SplitUID, sp.Type)
		}
		if sp.ValueDenom <= 0 || sp.QuantityDenom <= 0 {
			return nil, fmt.Errorf("%w: split %s has non-positive denominator", apperrors.ErrValidation, sp.SplitUID)
		}
		if sp.ReconcileState == "" {
			sp.ReconcileState = domain.NotReconciled
		}
		if sp.CreatedAt.IsZero() {
			sp.CreatedAt = now
		}
		sp.LastUpdatedAt = now
	}

	// Template transactions are recipes, not postings; they may stay unbalanced.
	if !txn.Template {
		remainder, err := txn.Imbalance(*commodity)
		if err != nil {
			return nil, err
		}
		if !remainder.IsZero() {
			if opts.DisableAutoBalance {
				return nil, fmt.Errorf("splits sum to %s: %w", remainder, apperrors.ErrUnbalanced)
			}
			// The imbalance account and the transaction commit or roll back
			// together.
			err := s.txnRepo.WithTx(ctx, func(tx *sql.Tx) error {
				imbalance, err := s.accountSvc.GetOrCreateImbalanceAccountInTx(ctx, tx, *commodity)
				if err != nil {
					return err
				}
				txn.Splits = append(txn.Splits, buildImbalanceSplit(txn.TransactionUID, imbalance.AccountUID, remainder, now))
				return s.txnRepo.SaveTransactionInTx(ctx, tx, txn)
			})
			if err != nil {
				return nil, err
			}
			logger.Info("injected imbalance split",
				"transactionUID", txn.TransactionUID, "amount", remainder.String())
			return &txn, nil
		}
	}

	if err := s.txnRepo.SaveTransaction(ctx, txn); err != nil {
		return nil, err
	}
	return &txn, nil
}

// buildImbalanceSplit synthesizes the split that cancels the remainder. It
// always carries a fresh UID so edits never silently reuse a stale leg.
func buildImbalanceSplit(transactionUID, accountUID string, remainder domain.Money, now time.Time) domain.Split {
	// The balancing split's signed value is the negated remainder.
	splitType := domain.TransactionTypeCredit
	if remainder.IsNegative() {
		splitType = domain.TransactionTypeDebit
	}
	abs := remainder.Abs()
	return domain.Split{
		SplitUID:       uuid.NewString(),
		TransactionUID: transactionUID,
		AccountUID:     accountUID,
		Type:           splitType,
		ValueNum:       abs.Num,
		ValueDenom:     abs.Denom,
		QuantityNum:    abs.Num,
		QuantityDenom:  abs.Denom,
		ReconcileState: domain.NotReconciled,
		AuditFields:    domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}
}

// GetTransactionByUID retrieves a transaction with splits.
func (s *transactionService) GetTransactionByUID(ctx context.Context, transactionUID string) (*domain.Transaction, error) {
	return s.txnRepo.FindTransactionByUID(ctx, transactionUID)
}

// DeleteTransaction removes one transaction and its splits.
func (s *transactionService) DeleteTransaction(ctx context.Context, transactionUID string) error {
	return s.txnRepo.DeleteTransaction(ctx, transactionUID)
}

// DeleteTransactionsForAccount removes every transaction with a split in the
// account. Whole transactions, never single legs.
func (s *transactionService) DeleteTransactionsForAccount(ctx context.Context, accountUID string) (int64, error) {
	count, err := s.txnRepo.DeleteTransactionsForAccount(ctx, accountUID)
	if err != nil {
		return 0, err
	}
	logging.FromCtx(ctx).Info("deleted transactions for account", "accountUID", accountUID, "count", count)
	return count, nil
}

// PurgeSplitlessTransactions removes transactions left with no splits.
func (s *transactionService) PurgeSplitlessTransactions(ctx context.Context) (int64, error) {
	return s.txnRepo.PurgeSplitlessTransactions(ctx)
}

// BalanceOf sums the splits of one transaction that belong to one account,
// debit-minus-credit signed, in the transaction's commodity.
func (s *transactionService) BalanceOf(ctx context.Context, transactionUID, accountUID string) (domain.Money, error) {
	txn, err := s.txnRepo.FindTransactionByUID(ctx, transactionUID)
	if err != nil {
		return domain.Money{}, err
	}
	commodity, err := s.commodityRepo.FindCommodityByUID(ctx, txn.CommodityUID)
	if err != nil {
		return domain.Money{}, err
	}

	var matching []domain.Split
	for _, sp := range txn.Splits {
		if sp.AccountUID == accountUID {
			matching = append(matching, sp)
		}
	}
	return accounting.SumSignedValues(matching, *commodity)
}

// MoveSplits reassigns the transaction's splits from one account to another.
func (s *transactionService) MoveSplits(ctx context.Context, transactionUID, fromAccountUID, toAccountUID string) (int64, error) {
	if fromAccountUID == toAccountUID {
		return 0, fmt.Errorf("%w: source and destination accounts are the same", apperrors.ErrValidation)
	}
	if _, err := s.txnRepo.FindTransactionByUID(ctx, transactionUID); err != nil {
		return 0, err
	}
	return s.txnRepo.MoveSplits(ctx, transactionUID, fromAccountUID, toAccountUID)
}

// ListTransactionsForAccount lists non-template transactions touching the account.
func (s *transactionService) ListTransactionsForAccount(ctx context.Context, accountUID string) ([]domain.Transaction, error) {
	return s.txnRepo.ListTransactionsForAccount(ctx, accountUID)
}

// ListTemplateTransactionsForAccount lists template transactions touching the account.
func (s *transactionService) ListTemplateTransactionsForAccount(ctx context.Context, accountUID string) ([]domain.Transaction, error) {
	return s.txnRepo.ListTemplateTransactionsForAccount(ctx, accountUID)
}

// TimestampBounds reports the post-date range of matching transactions.
// Zero bounds mean no transaction matched.
func (s *transactionService) TimestampBounds(ctx context.Context, accountType domain.AccountType, commodityUID string) (dto.TimestampBounds, error) {
	earliest, err := s.txnRepo.FindEarliestPostDate(ctx, accountType, commodityUID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return dto.TimestampBounds{}, nil
		}
		return dto.TimestampBounds{}, err
	}
	latest, err := s.txnRepo.FindLatestPostDate(ctx, accountType, commodityUID)
	if err != nil {
		return dto.TimestampBounds{}, err
	}
	return dto.TimestampBounds{Earliest: earliest, Latest: latest}, nil
}

// AutocompleteDescriptions returns distinct matching descriptions.
func (s *transactionService) AutocompleteDescriptions(ctx context.Context, accountUID, prefix string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.txnRepo.AutocompleteDescriptions(ctx, accountUID, prefix, limit)
}
