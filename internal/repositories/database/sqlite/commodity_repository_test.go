package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/cashbook-app/cashbook/internal/apperrors"
	"github.com/cashbook-app/cashbook/internal/core/domain"
	"github.com/cashbook-app/cashbook/internal/repositories/database/sqlite"
)

type CommodityRepositorySuite struct {
	suite.Suite
	ctx  context.Context
	db   *sql.DB
	repo *sqlite.SQLiteCommodityRepository
}

func (s *CommodityRepositorySuite) SetupTest() {
	s.ctx = context.Background()
	s.db = newTestDB(s.T())
	s.repo = sqlite.NewSQLiteCommodityRepository(s.db)
}

func TestCommodityRepositorySuite(t *testing.T) {
	suite.Run(t, new(CommodityRepositorySuite))
}

func (s *CommodityRepositorySuite) TestSaveAndFind() {
	usd := newTestCommodity("USD", 100)
	usd.FullName = "US Dollar"
	usd.LocalSymbol = "$"
	s.Require().NoError(s.repo.SaveCommodity(s.ctx, usd))

	byUID, err := s.repo.FindCommodityByUID(s.ctx, usd.CommodityUID)
	s.Require().NoError(err)
	s.Equal("US Dollar", byUID.FullName)
	s.Equal(int64(100), byUID.SmallestFraction)

	byMnemonic, err := s.repo.FindCurrencyByMnemonic(s.ctx, "USD")
	s.Require().NoError(err)
	s.Equal(usd.CommodityUID, byMnemonic.CommodityUID)

	_, err = s.repo.FindCurrencyByMnemonic(s.ctx, "XXX")
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *CommodityRepositorySuite) TestLogicalIdentityUnique() {
	first := newTestCommodity("USD", 100)
	s.Require().NoError(s.repo.SaveCommodity(s.ctx, first))

	dup := newTestCommodity("USD", 100) // fresh UID, same (namespace, mnemonic)
	err := s.repo.SaveCommodity(s.ctx, dup)
	s.ErrorIs(err, apperrors.ErrDuplicate)
}

func (s *CommodityRepositorySuite) TestListAndCount() {
	s.Require().NoError(s.repo.SaveCommodity(s.ctx, newTestCommodity("USD", 100)))
	s.Require().NoError(s.repo.SaveCommodity(s.ctx, newTestCommodity("EUR", 100)))
	security := newTestCommodity("VTI", 1)
	security.Namespace = "NYSE"
	s.Require().NoError(s.repo.SaveCommodity(s.ctx, security))

	currencies, err := s.repo.ListCommodities(s.ctx, domain.NamespaceCurrency)
	s.Require().NoError(err)
	s.Require().Len(currencies, 2)
	s.Equal("EUR", currencies[0].Mnemonic)
	s.Equal("USD", currencies[1].Mnemonic)

	count, err := s.repo.CountCommodities(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(3), count)
}
