package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/google/uuid"

	"github.com/cashbook-app/cashbook/internal/apperrors"
	"github.com/cashbook-app/cashbook/internal/core/domain"
	portsrepo "github.com/cashbook-app/cashbook/internal/core/ports/repositories"
	portssvc "github.com/cashbook-app/cashbook/internal/core/ports/services"
	"github.com/cashbook-app/cashbook/internal/platform/logging"
)

// priceService implements portssvc.PriceSvcFacade. Latest-ratio lookups are
// cached; both pair orientations share one invalidation.
type priceService struct {
	repo  portsrepo.PriceRepositoryFacade
	cache *gocache.Cache
}

// NewPriceService creates a new price service. cacheTTL bounds how stale a
// cached latest-ratio may be.
func NewPriceService(repo portsrepo.PriceRepositoryFacade, cacheTTL time.Duration) portssvc.PriceSvcFacade {
	return &priceService{
		repo:  repo,
		cache: gocache.New(cacheTTL, 2*cacheTTL),
	}
}

func ratioCacheKey(commodityUID, currencyUID string) string {
	return commodityUID + "|" + currencyUID
}

// UpsertPrice records a price, replacing any row for the same unordered
// commodity pair and date.
func (s *priceService) UpsertPrice(ctx context.Context, price domain.Price) error {
	if price.CommodityUID == "" || price.CurrencyUID == "" {
		return fmt.Errorf("%w: price needs both commodities", apperrors.ErrValidation)
	}
	if price.CommodityUID == price.CurrencyUID {
		return fmt.Errorf("%w: price cannot quote a commodity against itself", apperrors.ErrValidation)
	}
	if price.ValueDenom <= 0 {
		return fmt.Errorf("%w: price denominator must be positive", apperrors.ErrValidation)
	}
	if price.ValueNum <= 0 {
		return fmt.Errorf("%w: price must be positive", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	if price.PriceUID == "" {
		price.PriceUID = uuid.NewString()
	}
	if price.Date.IsZero() {
		price.Date = now
	}
	if price.CreatedAt.IsZero() {
		price.CreatedAt = now
	}
	price.LastUpdatedAt = now

	if err := s.repo.UpsertPrice(ctx, price); err != nil {
		return err
	}

	s.cache.Delete(ratioCacheKey(price.CommodityUID, price.CurrencyUID))
	s.cache.Delete(ratioCacheKey(price.CurrencyUID, price.CommodityUID))

	logging.FromCtx(ctx).Info("recorded price",
		"commodityUID", price.CommodityUID, "currencyUID", price.CurrencyUID,
		"value", fmt.Sprintf("%d/%d", price.ValueNum, price.ValueDenom))
	return nil
}

// GetLatestRatio returns the most recent exchange ratio from commodityUID to
// currencyUID. The zero Ratio is the "no price recorded" sentinel and is
// cached like any other answer.
func (s *priceService) GetLatestRatio(ctx context.Context, commodityUID, currencyUID string) (domain.Ratio, error) {
	if commodityUID == currencyUID {
		return domain.UnityRatio, nil
	}

	key := ratioCacheKey(commodityUID, currencyUID)
	if cached, ok := s.cache.Get(key); ok {
		return cached.(domain.Ratio), nil
	}

	price, err := s.repo.FindLatestPrice(ctx, commodityUID, currencyUID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.cache.SetDefault(key, domain.Ratio{})
			return domain.Ratio{}, nil
		}
		return domain.Ratio{}, err
	}

	ratio := domain.Ratio{Num: price.ValueNum, Denom: price.ValueDenom}
	if price.CommodityUID != commodityUID {
		// Stored in the opposite orientation.
		ratio = ratio.Invert()
	}
	s.cache.SetDefault(key, ratio)
	return ratio, nil
}

// ListPricesForCommodity lists the recorded series, newest first.
func (s *priceService) ListPricesForCommodity(ctx context.Context, commodityUID string) ([]domain.Price, error) {
	return s.repo.ListPricesForCommodity(ctx, commodityUID)
}
