package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/cashbook-app/cashbook/internal/core/domain"
	portsrepo "github.com/cashbook-app/cashbook/internal/core/ports/repositories"
	portssvc "github.com/cashbook-app/cashbook/internal/core/ports/services"
	"github.com/cashbook-app/cashbook/internal/dto"
	"github.com/cashbook-app/cashbook/internal/platform/logging"
)

// balanceService implements portssvc.BalanceSvcFacade. All totals are
// debit-minus-credit signed; display-side flips for credit-normal account
// types belong to the caller via AccountType.HasDebitNormalBalance.
type balanceService struct {
	accountSvc    portssvc.AccountSvcFacade
	priceSvc      portssvc.PriceSvcFacade
	txnRepo       portsrepo.TransactionRepositoryWithTx
	accountRepo   portsrepo.AccountRepositoryWithTx
	commodityRepo portsrepo.CommodityRepositoryFacade
}

// NewBalanceService creates a new balance service.
func NewBalanceService(
	accountSvc portssvc.AccountSvcFacade,
	priceSvc portssvc.PriceSvcFacade,
	txnRepo portsrepo.TransactionRepositoryWithTx,
	accountRepo portsrepo.AccountRepositoryWithTx,
	commodityRepo portsrepo.CommodityRepositoryFacade,
) portssvc.BalanceSvcFacade {
	return &balanceService{
		accountSvc:    accountSvc,
		priceSvc:      priceSvc,
		txnRepo:       txnRepo,
		accountRepo:   accountRepo,
		commodityRepo: commodityRepo,
	}
}

// AccountBalance computes the balance of the account plus all descendants
// sharing its commodity. Descendants holding a different commodity are pruned
// together with their subtrees, so no cross-currency amounts leak in.
func (s *balanceService) AccountBalance(ctx context.Context, accountUID string, window portsrepo.TimeWindow) (dto.BalanceResult, error) {
	account, err := s.accountRepo.FindAccountByUID(ctx, accountUID)
	if err != nil {
		return dto.BalanceResult{}, err
	}
	commodity, err := s.commodityRepo.FindCommodityByUID(ctx, account.CommodityUID)
	if err != nil {
		return dto.BalanceResult{}, err
	}

	uids, err := s.accountSvc.DescendantUIDs(ctx, accountUID, &dto.DescendantFilter{SameCommodityAsUID: accountUID})
	if err != nil {
		return dto.BalanceResult{}, err
	}

	sums, err := s.txnRepo.SumSplitQuantities(ctx, uids, window)
	if err != nil {
		return dto.BalanceResult{}, err
	}

	total := domain.ZeroMoney(*commodity)
	for _, sum := range sums {
		part, err := domain.NewMoney(sum.SignedNum, sum.Denom, *commodity)
		if err != nil {
			return dto.BalanceResult{}, err
		}
		total, err = total.Add(part)
		if err != nil {
			return dto.BalanceResult{}, err
		}
	}
	return dto.BalanceResult{Total: total}, nil
}

// AccountsBalance computes the combined balance of an explicit account set in
// the target currency. Each commodity group converts through the latest
// recorded price; groups with no price are dropped and reported instead of
// failing the whole aggregation.
func (s *balanceService) AccountsBalance(ctx context.Context, accountUIDs []string, currencyCode string, window portsrepo.TimeWindow) (dto.BalanceResult, error) {
	logger := logging.FromCtx(ctx)

	target, err := s.commodityRepo.FindCurrencyByMnemonic(ctx, currencyCode)
	if err != nil {
		return dto.BalanceResult{}, fmt.Errorf("target currency %s: %w", currencyCode, err)
	}

	sums, err := s.txnRepo.SumSplitQuantities(ctx, accountUIDs, window)
	if err != nil {
		return dto.BalanceResult{}, err
	}

	// Reduce grouped rows to one Money per commodity.
	perCommodity := make(map[string]domain.Money)
	for _, sum := range sums {
		commodity, err := s.commodityRepo.FindCommodityByUID(ctx, sum.CommodityUID)
		if err != nil {
			return dto.BalanceResult{}, err
		}
		part, err := domain.NewMoney(sum.SignedNum, sum.Denom, *commodity)
		if err != nil {
			return dto.BalanceResult{}, err
		}
		if acc, ok := perCommodity[sum.CommodityUID]; ok {
			part, err = acc.Add(part)
			if err != nil {
				return dto.BalanceResult{}, err
			}
		}
		perCommodity[sum.CommodityUID] = part
	}

	total := domain.ZeroMoney(*target)
	var skipped []string
	for commodityUID, amount := range perCommodity {
		if commodityUID == target.CommodityUID {
			converted, err := total.Add(amount)
			if err != nil {
				return dto.BalanceResult{}, err
			}
			total = converted
			continue
		}

		ratio, err := s.priceSvc.GetLatestRatio(ctx, commodityUID, target.CommodityUID)
		if err != nil {
			return dto.BalanceResult{}, err
		}
		if ratio.IsZero() {
			skipped = append(skipped, amount.Commodity.Mnemonic)
			logger.Warn("no price for commodity, skipping from total",
				"mnemonic", amount.Commodity.Mnemonic, "target", target.Mnemonic)
			continue
		}

		converted, err := amount.ConvertTo(*target, ratio.Num, ratio.Denom)
		if err != nil {
			return dto.BalanceResult{}, err
		}
		total, err = total.Add(converted)
		if err != nil {
			return dto.BalanceResult{}, err
		}
	}

	sort.Strings(skipped)
	return dto.BalanceResult{Total: total, SkippedCurrencies: skipped}, nil
}
