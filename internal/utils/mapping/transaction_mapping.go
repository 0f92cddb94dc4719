package mapping

import (
	"github.com/cashbook-app/cashbook/internal/core/domain"
	"github.com/cashbook-app/cashbook/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction.
// Splits are mapped separately; the transactions table has no split columns.
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionUID:     d.TransactionUID,
		Description:        d.Description,
		Notes:              d.Notes,
		PostDate:           d.PostDate,
		EnteredDate:        d.EnteredDate,
		CommodityUID:       d.CommodityUID,
		Exported:           d.Exported,
		Template:           d.Template,
		ScheduledActionUID: d.ScheduledActionUID,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionUID:     m.TransactionUID,
		Description:        m.Description,
		Notes:              m.Notes,
		PostDate:           m.PostDate,
		EnteredDate:        m.EnteredDate,
		CommodityUID:       m.CommodityUID,
		Exported:           m.Exported,
		Template:           m.Template,
		ScheduledActionUID: m.ScheduledActionUID,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelSplit converts a domain Split to a model Split
func ToModelSplit(d domain.Split) models.Split {
	return models.Split{
		SplitUID:       d.SplitUID,
		TransactionUID: d.TransactionUID,
		AccountUID:     d.AccountUID,
		SplitType:      string(d.Type),
		ValueNum:       d.ValueNum,
		ValueDenom:     d.ValueDenom,
		QuantityNum:    d.QuantityNum,
		QuantityDenom:  d.QuantityDenom,
		Memo:           d.Memo,
		ReconcileState: string(d.ReconcileState),
		ReconcileDate:  d.ReconcileDate,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainSplit converts a model Split to a domain Split
func ToDomainSplit(m models.Split) domain.Split {
	return domain.Split{
		SplitUID:       m.SplitUID,
		TransactionUID: m.TransactionUID,
		AccountUID:     m.AccountUID,
		Type:           domain.TransactionType(m.SplitType),
		ValueNum:       m.ValueNum,
		ValueDenom:     m.ValueDenom,
		QuantityNum:    m.QuantityNum,
		QuantityDenom:  m.QuantityDenom,
		Memo:           m.Memo,
		ReconcileState: domain.ReconcileState(m.ReconcileState),
		ReconcileDate:  m.ReconcileDate,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainSplitSlice converts a slice of model Splits to a slice of domain Splits
func ToDomainSplitSlice(ms []models.Split) []domain.Split {
	ds := make([]domain.Split, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainSplit(m)
	}
	return ds
}
