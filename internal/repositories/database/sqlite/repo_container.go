package sqlite

import (
	"database/sql"

	portsrepo "github.com/cashbook-app/cashbook/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every SQLite repository over one book database.
func NewRepositoryProvider(db *sql.DB) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		CommodityRepo:       NewSQLiteCommodityRepository(db),
		AccountRepo:         NewSQLiteAccountRepository(db),
		TransactionRepo:     NewSQLiteTransactionRepository(db),
		PriceRepo:           NewSQLitePriceRepository(db),
		ScheduledActionRepo: NewSQLiteScheduledActionRepository(db),
	}
}
