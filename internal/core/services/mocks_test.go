package services_test

import (
	"context"
	"database/sql"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/cashbook-app/cashbook/internal/core/domain"
	portsrepo "github.com/cashbook-app/cashbook/internal/core/ports/repositories"
	"github.com/cashbook-app/cashbook/internal/dto"
)

// MockCommodityRepository mocks repositories.CommodityRepositoryFacade.
type MockCommodityRepository struct {
	mock.Mock
}

func (m *MockCommodityRepository) FindCommodityByUID(ctx context.Context, commodityUID string) (*domain.Commodity, error) {
	args := m.Called(ctx, commodityUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Commodity), args.Error(1)
}

func (m *MockCommodityRepository) FindCommodity(ctx context.Context, namespace, mnemonic string) (*domain.Commodity, error) {
	args := m.Called(ctx, namespace, mnemonic)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Commodity), args.Error(1)
}

func (m *MockCommodityRepository) FindCurrencyByMnemonic(ctx context.Context, mnemonic string) (*domain.Commodity, error) {
	args := m.Called(ctx, mnemonic)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Commodity), args.Error(1)
}

func (m *MockCommodityRepository) ListCommodities(ctx context.Context, namespace string) ([]domain.Commodity, error) {
	args := m.Called(ctx, namespace)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Commodity), args.Error(1)
}

func (m *MockCommodityRepository) CountCommodities(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCommodityRepository) SaveCommodity(ctx context.Context, commodity domain.Commodity) error {
	args := m.Called(ctx, commodity)
	return args.Error(0)
}

// MockAccountRepository mocks repositories.AccountRepositoryWithTx.
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindAccountByUID(ctx context.Context, accountUID string) (*domain.Account, error) {
	args := m.Called(ctx, accountUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByUIDs(ctx context.Context, accountUIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountUIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByFullName(ctx context.Context, fullName string) (*domain.Account, error) {
	args := m.Called(ctx, fullName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByFullNameInTx(ctx context.Context, tx *sql.Tx, fullName string) (*domain.Account, error) {
	args := m.Called(ctx, tx, fullName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindRootAccount(ctx context.Context) (*domain.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindRootAccountInTx(ctx context.Context, tx *sql.Tx) (*domain.Account, error) {
	args := m.Called(ctx, tx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindChildAccounts(ctx context.Context, parentUIDs []string) ([]domain.Account, error) {
	args := m.Called(ctx, parentUIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindChildAccountsInTx(ctx context.Context, tx *sql.Tx, parentUIDs []string) ([]domain.Account, error) {
	args := m.Called(ctx, tx, parentUIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListTopLevelAccounts(ctx context.Context) ([]domain.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListFavoriteAccounts(ctx context.Context) ([]domain.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListRecentAccounts(ctx context.Context, limit int) ([]domain.Account, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, orderByFullName bool) ([]domain.Account, error) {
	args := m.Called(ctx, orderByFullName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) SaveAccountInTx(ctx context.Context, tx *sql.Tx, account domain.Account) error {
	args := m.Called(ctx, tx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateFullNamesInTx(ctx context.Context, tx *sql.Tx, fullNames map[string]string) error {
	args := m.Called(ctx, tx, fullNames)
	return args.Error(0)
}

func (m *MockAccountRepository) EnsureRootAccount(ctx context.Context, root domain.Account) (string, error) {
	args := m.Called(ctx, root)
	return args.String(0), args.Error(1)
}

func (m *MockAccountRepository) EnsureRootAccountInTx(ctx context.Context, tx *sql.Tx, root domain.Account) (string, error) {
	args := m.Called(ctx, tx, root)
	return args.String(0), args.Error(1)
}

func (m *MockAccountRepository) ReassignDescendants(ctx context.Context, accountUID, newParentUID string) error {
	args := m.Called(ctx, accountUID, newParentUID)
	return args.Error(0)
}

func (m *MockAccountRepository) DeleteAccountSubtree(ctx context.Context, accountUID string) (bool, error) {
	args := m.Called(ctx, accountUID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepository) DeleteAccountSubtreeInTx(ctx context.Context, tx *sql.Tx, accountUID string) (bool, error) {
	args := m.Called(ctx, tx, accountUID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepository) WithTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	args := m.Called(ctx, fn)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(nil)
}

// MockTransactionRepository mocks repositories.TransactionRepositoryWithTx.
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) FindTransactionByUID(ctx context.Context, transactionUID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindSplitsForTransaction(ctx context.Context, transactionUID string) ([]domain.Split, error) {
	args := m.Called(ctx, transactionUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Split), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactionsForAccount(ctx context.Context, accountUID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, accountUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTemplateTransactionsForAccount(ctx context.Context, accountUID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, accountUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindEarliestPostDate(ctx context.Context, accountType domain.AccountType, commodityUID string) (time.Time, error) {
	args := m.Called(ctx, accountType, commodityUID)
	return args.Get(0).(time.Time), args.Error(1)
}

func (m *MockTransactionRepository) FindLatestPostDate(ctx context.Context, accountType domain.AccountType, commodityUID string) (time.Time, error) {
	args := m.Called(ctx, accountType, commodityUID)
	return args.Get(0).(time.Time), args.Error(1)
}

func (m *MockTransactionRepository) AutocompleteDescriptions(ctx context.Context, accountUID, prefix string, limit int) ([]string, error) {
	args := m.Called(ctx, accountUID, prefix, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockTransactionRepository) CountTransactionsForScheduledAction(ctx context.Context, scheduledActionUID string) (int64, error) {
	args := m.Called(ctx, scheduledActionUID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTransactionRepository) SumSplitQuantities(ctx context.Context, accountUIDs []string, window portsrepo.TimeWindow) ([]portsrepo.SplitSum, error) {
	args := m.Called(ctx, accountUIDs, window)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]portsrepo.SplitSum), args.Error(1)
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) SaveTransactionInTx(ctx context.Context, tx *sql.Tx, txn domain.Transaction) error {
	args := m.Called(ctx, tx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) DeleteTransaction(ctx context.Context, transactionUID string) error {
	args := m.Called(ctx, transactionUID)
	return args.Error(0)
}

func (m *MockTransactionRepository) DeleteTransactionsForAccount(ctx context.Context, accountUID string) (int64, error) {
	args := m.Called(ctx, accountUID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTransactionRepository) PurgeSplitlessTransactions(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTransactionRepository) MoveSplits(ctx context.Context, transactionUID, fromAccountUID, toAccountUID string) (int64, error) {
	args := m.Called(ctx, transactionUID, fromAccountUID, toAccountUID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTransactionRepository) WithTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	args := m.Called(ctx, fn)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(nil)
}

// MockPriceRepository mocks repositories.PriceRepositoryFacade.
type MockPriceRepository struct {
	mock.Mock
}

func (m *MockPriceRepository) FindPriceByUID(ctx context.Context, priceUID string) (*domain.Price, error) {
	args := m.Called(ctx, priceUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Price), args.Error(1)
}

func (m *MockPriceRepository) FindLatestPrice(ctx context.Context, commodityUID, currencyUID string) (*domain.Price, error) {
	args := m.Called(ctx, commodityUID, currencyUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Price), args.Error(1)
}

func (m *MockPriceRepository) ListPricesForCommodity(ctx context.Context, commodityUID string) ([]domain.Price, error) {
	args := m.Called(ctx, commodityUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Price), args.Error(1)
}

func (m *MockPriceRepository) UpsertPrice(ctx context.Context, price domain.Price) error {
	args := m.Called(ctx, price)
	return args.Error(0)
}

func (m *MockPriceRepository) DeletePrice(ctx context.Context, priceUID string) error {
	args := m.Called(ctx, priceUID)
	return args.Error(0)
}

// MockScheduledActionRepository mocks repositories.ScheduledActionRepositoryFacade.
type MockScheduledActionRepository struct {
	mock.Mock
}

func (m *MockScheduledActionRepository) FindScheduledActionByUID(ctx context.Context, scheduledActionUID string) (*domain.ScheduledAction, error) {
	args := m.Called(ctx, scheduledActionUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ScheduledAction), args.Error(1)
}

func (m *MockScheduledActionRepository) FindScheduledActionsByActionUID(ctx context.Context, actionUID string) ([]domain.ScheduledAction, error) {
	args := m.Called(ctx, actionUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ScheduledAction), args.Error(1)
}

func (m *MockScheduledActionRepository) ListEnabledScheduledActions(ctx context.Context) ([]domain.ScheduledAction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ScheduledAction), args.Error(1)
}

func (m *MockScheduledActionRepository) SaveScheduledAction(ctx context.Context, action domain.ScheduledAction) error {
	args := m.Called(ctx, action)
	return args.Error(0)
}

func (m *MockScheduledActionRepository) RecordExecution(ctx context.Context, scheduledActionUID string, ranAt time.Time) error {
	args := m.Called(ctx, scheduledActionUID, ranAt)
	return args.Error(0)
}

func (m *MockScheduledActionRepository) DeleteScheduledAction(ctx context.Context, scheduledActionUID string) error {
	args := m.Called(ctx, scheduledActionUID)
	return args.Error(0)
}

// MockAccountService mocks services.AccountSvcFacade.
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) CreateOrReplaceAccount(ctx context.Context, req dto.SaveAccountRequest) (*domain.Account, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountByUID(ctx context.Context, accountUID string) (*domain.Account, error) {
	args := m.Called(ctx, accountUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetOrCreateRootUID(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockAccountService) GetOrCreateImbalanceAccount(ctx context.Context, currency domain.Commodity) (*domain.Account, error) {
	args := m.Called(ctx, currency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetOrCreateImbalanceAccountInTx(ctx context.Context, tx *sql.Tx, currency domain.Commodity) (*domain.Account, error) {
	args := m.Called(ctx, tx, currency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) ReassignDescendants(ctx context.Context, accountUID, newParentUID string) error {
	args := m.Called(ctx, accountUID, newParentUID)
	return args.Error(0)
}

func (m *MockAccountService) DeleteSubtree(ctx context.Context, accountUID string) (bool, error) {
	args := m.Called(ctx, accountUID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountService) DescendantUIDs(ctx context.Context, accountUID string, filter *dto.DescendantFilter) ([]string, error) {
	args := m.Called(ctx, accountUID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockAccountService) FullName(ctx context.Context, accountUID string) (string, error) {
	args := m.Called(ctx, accountUID)
	return args.String(0), args.Error(1)
}

func (m *MockAccountService) ListTopLevelAccounts(ctx context.Context) ([]domain.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) ListFavoriteAccounts(ctx context.Context) ([]domain.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) ListRecentAccounts(ctx context.Context, limit int) ([]domain.Account, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) ListSubAccounts(ctx context.Context, parentUID string) ([]domain.Account, error) {
	args := m.Called(ctx, parentUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, orderByFullName bool) ([]domain.Account, error) {
	args := m.Called(ctx, orderByFullName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

// MockPriceService mocks services.PriceSvcFacade.
type MockPriceService struct {
	mock.Mock
}

func (m *MockPriceService) UpsertPrice(ctx context.Context, price domain.Price) error {
	args := m.Called(ctx, price)
	return args.Error(0)
}

func (m *MockPriceService) GetLatestRatio(ctx context.Context, commodityUID, currencyUID string) (domain.Ratio, error) {
	args := m.Called(ctx, commodityUID, currencyUID)
	return args.Get(0).(domain.Ratio), args.Error(1)
}

func (m *MockPriceService) ListPricesForCommodity(ctx context.Context, commodityUID string) ([]domain.Price, error) {
	args := m.Called(ctx, commodityUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Price), args.Error(1)
}
