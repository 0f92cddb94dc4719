package services

import (
	"context"

	portsrepo "github.com/cashbook-app/cashbook/internal/core/ports/repositories"
	"github.com/cashbook-app/cashbook/internal/dto"
)

// BalanceSvcFacade is the balance aggregation engine. Template transactions
// never contribute to any total.
type BalanceSvcFacade interface {
	// AccountBalance computes the balance of the account plus all descendants
	// sharing its commodity, optionally restricted to a post-date window.
	// The result is debit-minus-credit signed in the account's commodity.
	AccountBalance(ctx context.Context, accountUID string, window portsrepo.TimeWindow) (dto.BalanceResult, error)

	// AccountsBalance computes the combined balance of an explicit account
	// set in the target currency, converting each commodity group through the
	// price table. Groups with no recorded price are dropped and reported in
	// the result's SkippedCurrencies.
	AccountsBalance(ctx context.Context, accountUIDs []string, currencyCode string, window portsrepo.TimeWindow) (dto.BalanceResult, error)
}
