package mapping

import (
	"github.com/cashbook-app/cashbook/internal/core/domain"
	"github.com/cashbook-app/cashbook/internal/models"
)

// ToModelPrice converts a domain Price to a model Price
func ToModelPrice(d domain.Price) models.Price {
	return models.Price{
		PriceUID:     d.PriceUID,
		CommodityUID: d.CommodityUID,
		CurrencyUID:  d.CurrencyUID,
		Date:         d.Date,
		Source:       d.Source,
		PriceType:    d.Type,
		ValueNum:     d.ValueNum,
		ValueDenom:   d.ValueDenom,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPrice converts a model Price to a domain Price
func ToDomainPrice(m models.Price) domain.Price {
	return domain.Price{
		PriceUID:     m.PriceUID,
		CommodityUID: m.CommodityUID,
		CurrencyUID:  m.CurrencyUID,
		Date:         m.Date,
		Source:       m.Source,
		Type:         m.PriceType,
		ValueNum:     m.ValueNum,
		ValueDenom:   m.ValueDenom,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}
