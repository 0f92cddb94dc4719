package mapping

import (
	"github.com/cashbook-app/cashbook/internal/core/domain"
	"github.com/cashbook-app/cashbook/internal/models"
)

// ToModelCommodity converts a domain Commodity to a model Commodity
func ToModelCommodity(d domain.Commodity) models.Commodity {
	return models.Commodity{
		CommodityUID:     d.CommodityUID,
		Namespace:        d.Namespace,
		Mnemonic:         d.Mnemonic,
		FullName:         d.FullName,
		LocalSymbol:      d.LocalSymbol,
		CUSIP:            d.CUSIP,
		SmallestFraction: d.SmallestFraction,
		QuoteFlag:        d.QuoteFlag,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCommodity converts a model Commodity to a domain Commodity
func ToDomainCommodity(m models.Commodity) domain.Commodity {
	return domain.Commodity{
		CommodityUID:     m.CommodityUID,
		Namespace:        m.Namespace,
		Mnemonic:         m.Mnemonic,
		FullName:         m.FullName,
		LocalSymbol:      m.LocalSymbol,
		CUSIP:            m.CUSIP,
		SmallestFraction: m.SmallestFraction,
		QuoteFlag:        m.QuoteFlag,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}
