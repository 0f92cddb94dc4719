package services

import (
	"context"

	"github.com/cashbook-app/cashbook/internal/core/domain"
)

// PriceSvcFacade is the exchange-rate time series.
type PriceSvcFacade interface {
	// UpsertPrice records a price, replacing any row for the same unordered
	// commodity pair and date.
	UpsertPrice(ctx context.Context, price domain.Price) error

	// GetLatestRatio returns the most recent exchange ratio from commodityUID
	// to currencyUID: (1,1) when they match, the inverted ratio when only the
	// opposite orientation is stored, and the zero Ratio sentinel when no
	// price exists at all.
	GetLatestRatio(ctx context.Context, commodityUID, currencyUID string) (domain.Ratio, error)

	// ListPricesForCommodity lists the recorded series, newest first.
	ListPricesForCommodity(ctx context.Context, commodityUID string) ([]domain.Price, error)
}
