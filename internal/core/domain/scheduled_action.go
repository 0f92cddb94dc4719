package domain

import "time"

// PeriodType is the unit of a recurrence period.
type PeriodType string

const (
	PeriodHour  PeriodType = "HOUR"
	PeriodDay   PeriodType = "DAY"
	PeriodWeek  PeriodType = "WEEK"
	PeriodMonth PeriodType = "MONTH"
	PeriodYear  PeriodType = "YEAR"
)

// Recurrence describes how often a scheduled action repeats. Occurrence-date
// math is owned by the scheduler collaborator; the engine stores the rule
// verbatim.
type Recurrence struct {
	Multiplier int        `json:"multiplier"` // every N periods
	PeriodType PeriodType `json:"periodType"`
	ByDays     string     `json:"byDays"` // comma-separated weekday list, optional
	StartTime  time.Time  `json:"startTime"`
	EndTime    time.Time  `json:"endTime"` // zero when open-ended
}

// ScheduledAction is a recurring-action template. ActionUID links to the
// entity the scheduler instantiates (typically a template transaction).
type ScheduledAction struct {
	ScheduledActionUID string     `json:"scheduledActionUID"`
	ActionUID          string     `json:"actionUID"`
	Recurrence         Recurrence `json:"recurrence"`
	Enabled            bool       `json:"enabled"`
	AutoCreate         bool       `json:"autoCreate"`
	AutoNotify         bool       `json:"autoNotify"`
	AdvanceCreateDays  int        `json:"advanceCreateDays"`
	AdvanceNotifyDays  int        `json:"advanceNotifyDays"`
	TotalFrequency     int        `json:"totalFrequency"` // 0 means uncapped
	ExecutionCount     int        `json:"executionCount"`
	LastRunTime        time.Time  `json:"lastRunTime"`
	TemplateAccountUID string     `json:"templateAccountUID"`
	AuditFields
}

// CanExecute reports whether the action is enabled and below its total
// frequency cap.
func (s ScheduledAction) CanExecute() bool {
	if !s.Enabled {
		return false
	}
	if s.TotalFrequency > 0 && s.ExecutionCount >= s.TotalFrequency {
		return false
	}
	return true
}
