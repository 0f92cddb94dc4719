package mapping

import (
	"github.com/cashbook-app/cashbook/internal/core/domain"
	"github.com/cashbook-app/cashbook/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountUID:                d.AccountUID,
		Name:                      d.Name,
		Description:               d.Description,
		AccountType:               string(d.Type),
		CommodityUID:              d.CommodityUID,
		ParentUID:                 d.ParentUID,
		FullName:                  d.FullName,
		Placeholder:               d.Placeholder,
		Hidden:                    d.Hidden,
		Favorite:                  d.Favorite,
		Color:                     d.Color,
		DefaultTransferAccountUID: d.DefaultTransferAccountUID,
		AuditFields:               ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountUID:                m.AccountUID,
		Name:                      m.Name,
		Description:               m.Description,
		Type:                      domain.AccountType(m.AccountType),
		CommodityUID:              m.CommodityUID,
		ParentUID:                 m.ParentUID,
		FullName:                  m.FullName,
		Placeholder:               m.Placeholder,
		Hidden:                    m.Hidden,
		Favorite:                  m.Favorite,
		Color:                     m.Color,
		DefaultTransferAccountUID: m.DefaultTransferAccountUID,
		AuditFields:               ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccountSlice converts a slice of model Accounts to a slice of domain Accounts
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
