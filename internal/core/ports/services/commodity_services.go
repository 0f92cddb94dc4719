package services

import (
	"context"

	"github.com/cashbook-app/cashbook/internal/core/domain"
	"github.com/cashbook-app/cashbook/internal/dto"
)

// CommoditySvcFacade is the canonical catalog of tradable units.
type CommoditySvcFacade interface {
	// EnsureSeeded loads the bundled ISO-4217 catalog into an empty book and
	// resolves the well-known currency singletons. Idempotent.
	EnsureSeeded(ctx context.Context) error

	// GetByMnemonic resolves an ISO currency by code.
	GetByMnemonic(ctx context.Context, mnemonic string) (*domain.Commodity, error)

	// GetByUID resolves a commodity by storage key.
	GetByUID(ctx context.Context, commodityUID string) (*domain.Commodity, error)

	// Register adds a new commodity (currency or custom security).
	Register(ctx context.Context, req dto.RegisterCommodityRequest) (*domain.Commodity, error)

	// DefaultCommodity returns the book's configured default currency.
	DefaultCommodity(ctx context.Context) (*domain.Commodity, error)
}
