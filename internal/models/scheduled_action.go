package models

import "time"

// ScheduledAction mirrors one row of the scheduled_actions table. The
// recurrence rule is flattened into columns for the scheduler collaborator.
type ScheduledAction struct {
	ScheduledActionUID string    `db:"scheduled_action_uid"`
	ActionUID          string    `db:"action_uid"`
	Multiplier         int       `db:"recurrence_multiplier"`
	PeriodType         string    `db:"recurrence_period_type"`
	ByDays             string    `db:"recurrence_by_days"`
	StartTime          time.Time `db:"start_time"`
	EndTime            time.Time `db:"end_time"`
	Enabled            bool      `db:"enabled"`
	AutoCreate         bool      `db:"auto_create"`
	AutoNotify         bool      `db:"auto_notify"`
	AdvanceCreateDays  int       `db:"advance_create_days"`
	AdvanceNotifyDays  int       `db:"advance_notify_days"`
	TotalFrequency     int       `db:"total_frequency"`
	ExecutionCount     int       `db:"execution_count"`
	LastRunTime        time.Time `db:"last_run_time"`
	TemplateAccountUID string    `db:"template_account_uid"`
	AuditFields
}
