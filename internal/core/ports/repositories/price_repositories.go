package repositories

import (
	"context"

	"github.com/cashbook-app/cashbook/internal/core/domain"
)

// PriceReader defines read operations for the price table
type PriceReader interface {
	// FindPriceByUID retrieves a price row by UID.
	FindPriceByUID(ctx context.Context, priceUID string) (*domain.Price, error)

	// FindLatestPrice retrieves the most recent price between the two
	// commodities, searching both storage orderings. The returned price keeps
	// its stored orientation; callers invert when needed.
	FindLatestPrice(ctx context.Context, commodityUID, currencyUID string) (*domain.Price, error)

	// ListPricesForCommodity lists the price time series quoting the
	// commodity, newest first.
	ListPricesForCommodity(ctx context.Context, commodityUID string) ([]domain.Price, error)
}

// PriceWriter defines write operations for the price table
type PriceWriter interface {
	// UpsertPrice replaces any existing price for the same unordered commodity
	// pair and date, then inserts the new row.
	UpsertPrice(ctx context.Context, price domain.Price) error

	// DeletePrice removes a price row by UID.
	DeletePrice(ctx context.Context, priceUID string) error
}

// PriceRepositoryFacade combines all price repository interfaces
type PriceRepositoryFacade interface {
	PriceReader
	PriceWriter
}
