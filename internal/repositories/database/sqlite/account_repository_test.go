package sqlite_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/cashbook-app/cashbook/internal/apperrors"
	"github.com/cashbook-app/cashbook/internal/core/domain"
	"github.com/cashbook-app/cashbook/internal/repositories/database/sqlite"
)

type AccountRepositorySuite struct {
	suite.Suite
	ctx  context.Context
	db   *sql.DB
	repo *sqlite.SQLiteAccountRepository
	usd  domain.Commodity
	root domain.Account
}

func (s *AccountRepositorySuite) SetupTest() {
	s.ctx = context.Background()
	s.db = newTestDB(s.T())
	s.repo = sqlite.NewSQLiteAccountRepository(s.db)
	s.usd = seedCommodity(s.T(), s.db, "USD", 100)
	s.root = seedRoot(s.T(), s.db, s.usd.CommodityUID)
}

func TestAccountRepositorySuite(t *testing.T) {
	suite.Run(t, new(AccountRepositorySuite))
}

func (s *AccountRepositorySuite) TestSaveAndFindAccount() {
	account := newTestAccount("Checking", domain.Bank, s.usd.CommodityUID, s.root.AccountUID, "Checking")
	account.Color = "#AABBCC"
	account.Favorite = true
	s.Require().NoError(s.repo.SaveAccount(s.ctx, account))

	found, err := s.repo.FindAccountByUID(s.ctx, account.AccountUID)
	s.Require().NoError(err)
	s.Equal("Checking", found.Name)
	s.Equal(domain.Bank, found.Type)
	s.Equal("#AABBCC", found.Color)
	s.True(found.Favorite)
	s.Equal(s.root.AccountUID, found.ParentUID)
}

func (s *AccountRepositorySuite) TestSaveAccountUpsert() {
	account := newTestAccount("Checking", domain.Bank, s.usd.CommodityUID, s.root.AccountUID, "Checking")
	s.Require().NoError(s.repo.SaveAccount(s.ctx, account))

	account.Name = "Daily Checking"
	account.FullName = "Daily Checking"
	s.Require().NoError(s.repo.SaveAccount(s.ctx, account))

	found, err := s.repo.FindAccountByUID(s.ctx, account.AccountUID)
	s.Require().NoError(err)
	s.Equal("Daily Checking", found.Name)
}

func (s *AccountRepositorySuite) TestFindAccountNotFound() {
	_, err := s.repo.FindAccountByUID(s.ctx, "no-such-uid")
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *AccountRepositorySuite) TestFindAccountByFullName() {
	assets := seedAccount(s.T(), s.db, newTestAccount("Assets", domain.Asset, s.usd.CommodityUID, s.root.AccountUID, "Assets"))
	seedAccount(s.T(), s.db, newTestAccount("Checking", domain.Bank, s.usd.CommodityUID, assets.AccountUID, "Assets:Checking"))

	found, err := s.repo.FindAccountByFullName(s.ctx, "Assets:Checking")
	s.Require().NoError(err)
	s.Equal("Checking", found.Name)

	_, err = s.repo.FindAccountByFullName(s.ctx, "Assets:Savings")
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *AccountRepositorySuite) TestEnsureRootAccountIsIdempotent() {
	// Fixture already created one root; a second candidate must lose.
	candidate := newTestAccount("Another Root", domain.Root, s.usd.CommodityUID, "", domain.RootFullName)
	uid, err := s.repo.EnsureRootAccount(s.ctx, candidate)
	s.Require().NoError(err)
	s.Equal(s.root.AccountUID, uid)

	root, err := s.repo.FindRootAccount(s.ctx)
	s.Require().NoError(err)
	s.Equal(s.root.AccountUID, root.AccountUID)
}

func (s *AccountRepositorySuite) TestSecondRootInsertRejected() {
	dup := newTestAccount("Shadow Root", domain.Root, s.usd.CommodityUID, "", domain.RootFullName)
	err := s.repo.SaveAccount(s.ctx, dup)
	s.Require().Error(err)
	s.True(errors.Is(err, apperrors.ErrDuplicate))
}

func (s *AccountRepositorySuite) TestFindChildAccountsLevels() {
	assets := seedAccount(s.T(), s.db, newTestAccount("Assets", domain.Asset, s.usd.CommodityUID, s.root.AccountUID, "Assets"))
	checking := seedAccount(s.T(), s.db, newTestAccount("Checking", domain.Bank, s.usd.CommodityUID, assets.AccountUID, "Assets:Checking"))
	savings := seedAccount(s.T(), s.db, newTestAccount("Savings", domain.Bank, s.usd.CommodityUID, assets.AccountUID, "Assets:Savings"))
	seedAccount(s.T(), s.db, newTestAccount("Shared", domain.Bank, s.usd.CommodityUID, checking.AccountUID, "Assets:Checking:Shared"))

	level1, err := s.repo.FindChildAccounts(s.ctx, []string{assets.AccountUID})
	s.Require().NoError(err)
	s.Len(level1, 2)
	s.Equal("Checking", level1[0].Name)
	s.Equal("Savings", level1[1].Name)

	level2, err := s.repo.FindChildAccounts(s.ctx, []string{checking.AccountUID, savings.AccountUID})
	s.Require().NoError(err)
	s.Len(level2, 1)
	s.Equal("Shared", level2[0].Name)

	empty, err := s.repo.FindChildAccounts(s.ctx, nil)
	s.Require().NoError(err)
	s.Empty(empty)
}

func (s *AccountRepositorySuite) TestUpdateFullNamesInTx() {
	assets := seedAccount(s.T(), s.db, newTestAccount("Assets", domain.Asset, s.usd.CommodityUID, s.root.AccountUID, "Assets"))

	err := s.repo.WithTx(s.ctx, func(tx *sql.Tx) error {
		return s.repo.UpdateFullNamesInTx(s.ctx, tx, map[string]string{assets.AccountUID: "Property"})
	})
	s.Require().NoError(err)

	found, err := s.repo.FindAccountByUID(s.ctx, assets.AccountUID)
	s.Require().NoError(err)
	s.Equal("Property", found.FullName)
}

func (s *AccountRepositorySuite) TestUpdateFullNamesRollsBackOnError() {
	assets := seedAccount(s.T(), s.db, newTestAccount("Assets", domain.Asset, s.usd.CommodityUID, s.root.AccountUID, "Assets"))

	err := s.repo.WithTx(s.ctx, func(tx *sql.Tx) error {
		if err := s.repo.UpdateFullNamesInTx(s.ctx, tx, map[string]string{assets.AccountUID: "Property"}); err != nil {
			return err
		}
		return errors.New("forced failure")
	})
	s.Require().Error(err)

	found, err := s.repo.FindAccountByUID(s.ctx, assets.AccountUID)
	s.Require().NoError(err)
	s.Equal("Assets", found.FullName)
}

func (s *AccountRepositorySuite) TestReassignDescendants() {
	old := seedAccount(s.T(), s.db, newTestAccount("Old", domain.Asset, s.usd.CommodityUID, s.root.AccountUID, "Old"))
	dst := seedAccount(s.T(), s.db, newTestAccount("New", domain.Asset, s.usd.CommodityUID, s.root.AccountUID, "New"))
	child := seedAccount(s.T(), s.db, newTestAccount("Child", domain.Bank, s.usd.CommodityUID, old.AccountUID, "Old:Child"))
	grandchild := seedAccount(s.T(), s.db, newTestAccount("Grandchild", domain.Bank, s.usd.CommodityUID, child.AccountUID, "Old:Child:Grandchild"))

	s.Require().NoError(s.repo.ReassignDescendants(s.ctx, old.AccountUID, dst.AccountUID))

	movedChild, err := s.repo.FindAccountByUID(s.ctx, child.AccountUID)
	s.Require().NoError(err)
	s.Equal(dst.AccountUID, movedChild.ParentUID)
	s.Equal("New:Child", movedChild.FullName)

	movedGrandchild, err := s.repo.FindAccountByUID(s.ctx, grandchild.AccountUID)
	s.Require().NoError(err)
	s.Equal(child.AccountUID, movedGrandchild.ParentUID)
	s.Equal("New:Child:Grandchild", movedGrandchild.FullName)
}

func (s *AccountRepositorySuite) TestDeleteAccountSubtree() {
	txnRepo := sqlite.NewSQLiteTransactionRepository(s.db)

	assets := seedAccount(s.T(), s.db, newTestAccount("Assets", domain.Asset, s.usd.CommodityUID, s.root.AccountUID, "Assets"))
	checking := seedAccount(s.T(), s.db, newTestAccount("Checking", domain.Bank, s.usd.CommodityUID, assets.AccountUID, "Assets:Checking"))
	income := seedAccount(s.T(), s.db, newTestAccount("Income", domain.Income, s.usd.CommodityUID, s.root.AccountUID, "Income"))

	txn := newBalancedTransaction(s.usd.CommodityUID, checking.AccountUID, income.AccountUID, 1000, 100, testTime())
	s.Require().NoError(txnRepo.SaveTransaction(s.ctx, txn))

	deleted, err := s.repo.DeleteAccountSubtree(s.ctx, assets.AccountUID)
	s.Require().NoError(err)
	s.True(deleted)

	_, err = s.repo.FindAccountByUID(s.ctx, checking.AccountUID)
	s.ErrorIs(err, apperrors.ErrNotFound)

	// The whole transaction goes, not just the splits in the subtree.
	_, err = txnRepo.FindTransactionByUID(s.ctx, txn.TransactionUID)
	s.ErrorIs(err, apperrors.ErrNotFound)

	// Income survives.
	_, err = s.repo.FindAccountByUID(s.ctx, income.AccountUID)
	s.NoError(err)
}

func (s *AccountRepositorySuite) TestDeleteAccountSubtreeRefusesRoot() {
	deleted, err := s.repo.DeleteAccountSubtree(s.ctx, s.root.AccountUID)
	s.Require().NoError(err)
	s.False(deleted)

	_, err = s.repo.FindRootAccount(s.ctx)
	s.NoError(err)
}

func (s *AccountRepositorySuite) TestDeleteAccountSubtreeClearsTransferRefs() {
	doomed := seedAccount(s.T(), s.db, newTestAccount("Doomed", domain.Bank, s.usd.CommodityUID, s.root.AccountUID, "Doomed"))
	survivor := newTestAccount("Survivor", domain.Bank, s.usd.CommodityUID, s.root.AccountUID, "Survivor")
	survivor.DefaultTransferAccountUID = doomed.AccountUID
	seedAccount(s.T(), s.db, survivor)

	deleted, err := s.repo.DeleteAccountSubtree(s.ctx, doomed.AccountUID)
	s.Require().NoError(err)
	s.True(deleted)

	found, err := s.repo.FindAccountByUID(s.ctx, survivor.AccountUID)
	s.Require().NoError(err)
	s.Empty(found.DefaultTransferAccountUID)
}

func (s *AccountRepositorySuite) TestDeleteAccountSubtreeInTxRollsBack() {
	doomed := seedAccount(s.T(), s.db, newTestAccount("Doomed", domain.Bank, s.usd.CommodityUID, s.root.AccountUID, "Doomed"))

	err := s.repo.WithTx(s.ctx, func(tx *sql.Tx) error {
		deleted, err := s.repo.DeleteAccountSubtreeInTx(s.ctx, tx, doomed.AccountUID)
		s.Require().NoError(err)
		s.Require().True(deleted)
		return errors.New("forced failure")
	})
	s.Require().Error(err)

	// Rolled back: the account is still there.
	_, err = s.repo.FindAccountByUID(s.ctx, doomed.AccountUID)
	s.NoError(err)
}

func (s *AccountRepositorySuite) TestListTopLevelAndAll() {
	seedAccount(s.T(), s.db, newTestAccount("Banking", domain.Asset, s.usd.CommodityUID, s.root.AccountUID, "Banking"))
	seedAccount(s.T(), s.db, newTestAccount("Auto", domain.Expense, s.usd.CommodityUID, s.root.AccountUID, "Auto"))
	hidden := newTestAccount("Hidden", domain.Bank, s.usd.CommodityUID, s.root.AccountUID, "Hidden")
	hidden.Hidden = true
	seedAccount(s.T(), s.db, hidden)

	top, err := s.repo.ListTopLevelAccounts(s.ctx)
	s.Require().NoError(err)
	s.Len(top, 3)
	s.Equal("Auto", top[0].Name)

	all, err := s.repo.ListAccounts(s.ctx, true)
	s.Require().NoError(err)
	s.Len(all, 2) // hidden and ROOT excluded
	s.Equal("Auto", all[0].Name)
}

func (s *AccountRepositorySuite) TestListFavoriteAccounts() {
	fav := newTestAccount("Wallet", domain.Cash, s.usd.CommodityUID, s.root.AccountUID, "Wallet")
	fav.Favorite = true
	seedAccount(s.T(), s.db, fav)
	seedAccount(s.T(), s.db, newTestAccount("Other", domain.Cash, s.usd.CommodityUID, s.root.AccountUID, "Other"))

	favorites, err := s.repo.ListFavoriteAccounts(s.ctx)
	s.Require().NoError(err)
	s.Len(favorites, 1)
	s.Equal("Wallet", favorites[0].Name)
}

func (s *AccountRepositorySuite) TestListRecentAccounts() {
	txnRepo := sqlite.NewSQLiteTransactionRepository(s.db)

	a := seedAccount(s.T(), s.db, newTestAccount("A", domain.Bank, s.usd.CommodityUID, s.root.AccountUID, "A"))
	b := seedAccount(s.T(), s.db, newTestAccount("B", domain.Income, s.usd.CommodityUID, s.root.AccountUID, "B"))
	seedAccount(s.T(), s.db, newTestAccount("Quiet", domain.Bank, s.usd.CommodityUID, s.root.AccountUID, "Quiet"))

	txn := newBalancedTransaction(s.usd.CommodityUID, a.AccountUID, b.AccountUID, 500, 100, testTime())
	s.Require().NoError(txnRepo.SaveTransaction(s.ctx, txn))

	recent, err := s.repo.ListRecentAccounts(s.ctx, 10)
	s.Require().NoError(err)
	s.Len(recent, 2)
	names := []string{recent[0].Name, recent[1].Name}
	s.ElementsMatch([]string{"A", "B"}, names)
}

func (s *AccountRepositorySuite) TestFindAccountsByUIDs() {
	a := seedAccount(s.T(), s.db, newTestAccount("A", domain.Bank, s.usd.CommodityUID, s.root.AccountUID, "A"))
	b := seedAccount(s.T(), s.db, newTestAccount("B", domain.Bank, s.usd.CommodityUID, s.root.AccountUID, "B"))

	found, err := s.repo.FindAccountsByUIDs(s.ctx, []string{a.AccountUID, b.AccountUID, "missing"})
	s.Require().NoError(err)
	s.Len(found, 2)
	s.Equal("A", found[a.AccountUID].Name)
	s.Equal("B", found[b.AccountUID].Name)

	empty, err := s.repo.FindAccountsByUIDs(s.ctx, nil)
	s.Require().NoError(err)
	s.Empty(empty)
}
