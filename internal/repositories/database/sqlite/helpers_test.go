package sqlite_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/cashbook-app/cashbook/internal/core/domain"
	"github.com/cashbook-app/cashbook/internal/repositories/database/sqlite"
	"github.com/cashbook-app/cashbook/pkg/database"
)

// newTestDB opens a migrated in-memory book for one test.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.OpenMemoryBook()
	require.NoError(t, err)
	t.Cleanup(func() { database.CloseBook(db) })
	require.NoError(t, sqlite.Migrate(context.Background(), db))
	return db
}

func testTime() time.Time {
	return time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
}

func newTestCommodity(mnemonic string, fraction int64) domain.Commodity {
	now := testTime()
	return domain.Commodity{
		CommodityUID:     uuid.NewString(),
		Namespace:        domain.NamespaceCurrency,
		Mnemonic:         mnemonic,
		FullName:         mnemonic,
		SmallestFraction: fraction,
		AuditFields:      domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}
}

func seedCommodity(t *testing.T, db *sql.DB, mnemonic string, fraction int64) domain.Commodity {
	t.Helper()
	repo := sqlite.NewSQLiteCommodityRepository(db)
	c := newTestCommodity(mnemonic, fraction)
	require.NoError(t, repo.SaveCommodity(context.Background(), c))
	return c
}

func newTestAccount(name string, accountType domain.AccountType, commodityUID, parentUID, fullName string) domain.Account {
	now := testTime()
	return domain.Account{
		AccountUID:   uuid.NewString(),
		Name:         name,
		Type:         accountType,
		CommodityUID: commodityUID,
		ParentUID:    parentUID,
		FullName:     fullName,
		AuditFields:  domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}
}

func seedRoot(t *testing.T, db *sql.DB, commodityUID string) domain.Account {
	t.Helper()
	repo := sqlite.NewSQLiteAccountRepository(db)
	root := newTestAccount("Root Account", domain.Root, commodityUID, "", domain.RootFullName)
	uid, err := repo.EnsureRootAccount(context.Background(), root)
	require.NoError(t, err)
	root.AccountUID = uid
	return root
}

func seedAccount(t *testing.T, db *sql.DB, account domain.Account) domain.Account {
	t.Helper()
	repo := sqlite.NewSQLiteAccountRepository(db)
	require.NoError(t, repo.SaveAccount(context.Background(), account))
	return account
}

// newBalancedTransaction debits debitAccount and credits creditAccount by the
// same amount in the given commodity.
func newBalancedTransaction(commodityUID, debitAccountUID, creditAccountUID string, num, denom int64, postDate time.Time) domain.Transaction {
	now := testTime()
	txnUID := uuid.NewString()
	return domain.Transaction{
		TransactionUID: txnUID,
		Description:    "test transaction",
		PostDate:       postDate,
		EnteredDate:    now,
		CommodityUID:   commodityUID,
		Splits: []domain.Split{
			{
				SplitUID:       uuid.NewString(),
				TransactionUID: txnUID,
				AccountUID:     debitAccountUID,
				Type:           domain.TransactionTypeDebit,
				ValueNum:       num,
				ValueDenom:     denom,
				QuantityNum:    num,
				QuantityDenom:  denom,
				ReconcileState: domain.NotReconciled,
				AuditFields:    domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
			},
			{
				SplitUID:       uuid.NewString(),
				TransactionUID: txnUID,
				AccountUID:     creditAccountUID,
				Type:           domain.TransactionTypeCredit,
				ValueNum:       num,
				ValueDenom:     denom,
				QuantityNum:    num,
				QuantityDenom:  denom,
				ReconcileState: domain.NotReconciled,
				AuditFields:    domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
			},
		},
		AuditFields: domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}
}
