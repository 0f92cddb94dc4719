package repositories

import (
	"context"

	"github.com/cashbook-app/cashbook/internal/core/domain"
)

// CommodityReader defines read operations for commodity data
type CommodityReader interface {
	// FindCommodityByUID retrieves a commodity by its storage key.
	FindCommodityByUID(ctx context.Context, commodityUID string) (*domain.Commodity, error)

	// FindCommodity retrieves a commodity by its logical identity.
	FindCommodity(ctx context.Context, namespace, mnemonic string) (*domain.Commodity, error)

	// FindCurrencyByMnemonic retrieves an ISO-4217 currency by code.
	FindCurrencyByMnemonic(ctx context.Context, mnemonic string) (*domain.Commodity, error)

	// ListCommodities lists all commodities in a namespace, ordered by mnemonic.
	ListCommodities(ctx context.Context, namespace string) ([]domain.Commodity, error)

	// CountCommodities returns the number of stored commodities.
	CountCommodities(ctx context.Context) (int64, error)
}

// CommodityWriter defines write operations for commodity data
type CommodityWriter interface {
	// SaveCommodity upserts a commodity by UID. (Namespace, Mnemonic) stays unique.
	SaveCommodity(ctx context.Context, commodity domain.Commodity) error
}

// CommodityRepositoryFacade combines all commodity repository interfaces
type CommodityRepositoryFacade interface {
	CommodityReader
	CommodityWriter
}
