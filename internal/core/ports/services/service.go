package services

// ServiceProvider bundles every engine facade handed to collaborators
// (importers, schedulers, reporting/UI layers).
type ServiceProvider struct {
	Commodity   CommoditySvcFacade
	Account     AccountSvcFacade
	Transaction TransactionSvcFacade
	Price       PriceSvcFacade
	Balance     BalanceSvcFacade
	Schedule    ScheduleSvcFacade
}
