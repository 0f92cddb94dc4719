package services

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/cashbook-app/cashbook/internal/apperrors"
	"github.com/cashbook-app/cashbook/internal/core/domain"
	portsrepo "github.com/cashbook-app/cashbook/internal/core/ports/repositories"
	portssvc "github.com/cashbook-app/cashbook/internal/core/ports/services"
	"github.com/cashbook-app/cashbook/internal/dto"
	"github.com/cashbook-app/cashbook/internal/platform/logging"
)

//go:embed data/iso4217.yaml
var iso4217YAML []byte

type seedCurrency struct {
	Mnemonic         string `yaml:"mnemonic"`
	FullName         string `yaml:"full_name"`
	LocalSymbol      string `yaml:"local_symbol"`
	SmallestFraction int64  `yaml:"smallest_fraction"`
}

type seedCatalog struct {
	Currencies []seedCurrency `yaml:"currencies"`
}

// wellKnownCodes are resolved once after seeding and kept as singletons so
// hot paths (root creation, imbalance accounts) skip the store.
var wellKnownCodes = []string{"USD", "EUR", "GBP"}

// commodityService implements portssvc.CommoditySvcFacade.
type commodityService struct {
	repo            portsrepo.CommodityRepositoryFacade
	validate        *validator.Validate
	defaultCurrency string

	mu        sync.RWMutex
	wellKnown map[string]domain.Commodity
}

// NewCommodityService creates a new commodity service.
func NewCommodityService(repo portsrepo.CommodityRepositoryFacade, validate *validator.Validate, defaultCurrency string) portssvc.CommoditySvcFacade {
	return &commodityService{
		repo:            repo,
		validate:        validate,
		defaultCurrency: defaultCurrency,
		wellKnown:       make(map[string]domain.Commodity),
	}
}

// EnsureSeeded loads the bundled ISO-4217 catalog into an empty book.
func (s *commodityService) EnsureSeeded(ctx context.Context) error {
	logger := logging.FromCtx(ctx)

	count, err := s.repo.CountCommodities(ctx)
	if err != nil {
		return fmt.Errorf("failed to check commodity catalog: %w", err)
	}
	if count > 0 {
		return s.resolveWellKnown(ctx)
	}

	var catalog seedCatalog
	if err := yaml.Unmarshal(iso4217YAML, &catalog); err != nil {
		return fmt.Errorf("failed to parse bundled currency catalog: %w", err)
	}

	now := time.Now().UTC()
	for _, c := range catalog.Currencies {
		commodity := domain.Commodity{
			CommodityUID:     uuid.NewString(),
			Namespace:        domain.NamespaceCurrency,
			Mnemonic:         c.Mnemonic,
			FullName:         c.FullName,
			LocalSymbol:      c.LocalSymbol,
			SmallestFraction: c.SmallestFraction,
			QuoteFlag:        false,
			AuditFields:      domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
		}
		if err := s.repo.SaveCommodity(ctx, commodity); err != nil {
			return fmt.Errorf("failed to seed currency %s: %w", c.Mnemonic, err)
		}
	}
	logger.Info("seeded currency catalog", "currencies", len(catalog.Currencies))
	return s.resolveWellKnown(ctx)
}

func (s *commodityService) resolveWellKnown(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, code := range wellKnownCodes {
		c, err := s.repo.FindCurrencyByMnemonic(ctx, code)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				continue
			}
			return err
		}
		s.wellKnown[code] = *c
	}
	return nil
}

// GetByMnemonic resolves an ISO currency by code.
func (s *commodityService) GetByMnemonic(ctx context.Context, mnemonic string) (*domain.Commodity, error) {
	s.mu.RLock()
	if c, ok := s.wellKnown[mnemonic]; ok {
		s.mu.RUnlock()
		return &c, nil
	}
	s.mu.RUnlock()
	return s.repo.FindCurrencyByMnemonic(ctx, mnemonic)
}

// GetByUID resolves a commodity by storage key.
func (s *commodityService) GetByUID(ctx context.Context, commodityUID string) (*domain.Commodity, error) {
	return s.repo.FindCommodityByUID(ctx, commodityUID)
}

// Register adds a new commodity (currency or custom security).
func (s *commodityService) Register(ctx context.Context, req dto.RegisterCommodityRequest) (*domain.Commodity, error) {
	logger := logging.FromCtx(ctx)

	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	existing, err := s.repo.FindCommodity(ctx, req.Namespace, req.Mnemonic)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("commodity %s/%s already registered: %w", req.Namespace, req.Mnemonic, apperrors.ErrDuplicate)
	}

	now := time.Now().UTC()
	commodity := domain.Commodity{
		CommodityUID:     uuid.NewString(),
		Namespace:        req.Namespace,
		Mnemonic:         req.Mnemonic,
		FullName:         req.FullName,
		LocalSymbol:      req.LocalSymbol,
		CUSIP:            req.CUSIP,
		SmallestFraction: req.SmallestFraction,
		QuoteFlag:        req.QuoteFlag,
		AuditFields:      domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}
	if err := s.repo.SaveCommodity(ctx, commodity); err != nil {
		return nil, err
	}
	logger.Info("registered commodity", "namespace", commodity.Namespace, "mnemonic", commodity.Mnemonic)
	return &commodity, nil
}

// DefaultCommodity returns the book's configured default currency.
func (s *commodityService) DefaultCommodity(ctx context.Context) (*domain.Commodity, error) {
	return s.repo.FindCurrencyByMnemonic(ctx, s.defaultCurrency)
}
