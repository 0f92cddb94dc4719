package mapping

import (
	"github.com/cashbook-app/cashbook/internal/core/domain"
	"github.com/cashbook-app/cashbook/internal/models"
)

// ToModelScheduledAction converts a domain ScheduledAction to a model ScheduledAction
func ToModelScheduledAction(d domain.ScheduledAction) models.ScheduledAction {
	return models.ScheduledAction{
		ScheduledActionUID: d.ScheduledActionUID,
		ActionUID:          d.ActionUID,
		Multiplier:         d.Recurrence.Multiplier,
		PeriodType:         string(d.Recurrence.PeriodType),
		ByDays:             d.Recurrence.ByDays,
		StartTime:          d.Recurrence.StartTime,
		EndTime:            d.Recurrence.EndTime,
		Enabled:            d.Enabled,
		AutoCreate:         d.AutoCreate,
		AutoNotify:         d.AutoNotify,
		AdvanceCreateDays:  d.AdvanceCreateDays,
		AdvanceNotifyDays:  d.AdvanceNotifyDays,
		TotalFrequency:     d.TotalFrequency,
		ExecutionCount:     d.ExecutionCount,
		LastRunTime:        d.LastRunTime,
		TemplateAccountUID: d.TemplateAccountUID,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainScheduledAction converts a model ScheduledAction to a domain ScheduledAction
func ToDomainScheduledAction(m models.ScheduledAction) domain.ScheduledAction {
	return domain.ScheduledAction{
		ScheduledActionUID: m.ScheduledActionUID,
		ActionUID:          m.ActionUID,
		Recurrence: domain.Recurrence{
			Multiplier: m.Multiplier,
			PeriodType: domain.PeriodType(m.PeriodType),
			ByDays:     m.ByDays,
			StartTime:  m.StartTime,
			EndTime:    m.EndTime,
		},
		Enabled:            m.Enabled,
		AutoCreate:         m.AutoCreate,
		AutoNotify:         m.AutoNotify,
		AdvanceCreateDays:  m.AdvanceCreateDays,
		AdvanceNotifyDays:  m.AdvanceNotifyDays,
		TotalFrequency:     m.TotalFrequency,
		ExecutionCount:     m.ExecutionCount,
		LastRunTime:        m.LastRunTime,
		TemplateAccountUID: m.TemplateAccountUID,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}
