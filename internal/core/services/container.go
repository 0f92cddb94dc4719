package services

import (
	"github.com/go-playground/validator/v10"

	portsrepo "github.com/cashbook-app/cashbook/internal/core/ports/repositories"
	portssvc "github.com/cashbook-app/cashbook/internal/core/ports/services"
	"github.com/cashbook-app/cashbook/internal/platform/config"
)

// NewContainer wires every engine service over the given repositories.
func NewContainer(repos *portsrepo.RepositoryProvider, cfg *config.Config) *portssvc.ServiceProvider {
	validate := validator.New()

	commoditySvc := NewCommodityService(repos.CommodityRepo, validate, cfg.DefaultCurrency)
	accountSvc := NewAccountService(repos.AccountRepo, repos.CommodityRepo, validate, cfg.DefaultCurrency)
	transactionSvc := NewTransactionService(repos.TransactionRepo, repos.CommodityRepo, accountSvc)
	priceSvc := NewPriceService(repos.PriceRepo, cfg.PriceCacheTTL)
	balanceSvc := NewBalanceService(accountSvc, priceSvc, repos.TransactionRepo, repos.AccountRepo, repos.CommodityRepo)
	scheduleSvc := NewScheduleService(repos.ScheduledActionRepo, repos.TransactionRepo)

	return &portssvc.ServiceProvider{
		Commodity:   commoditySvc,
		Account:     accountSvc,
		Transaction: transactionSvc,
		Price:       priceSvc,
		Balance:     balanceSvc,
		Schedule:    scheduleSvc,
	}
}
