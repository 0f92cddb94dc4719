package services

import (
	"context"
	"time"

	"github.com/cashbook-app/cashbook/internal/core/domain"
)

// ScheduleSvcFacade is the scheduled-action registrar. Recurrence-date math
// belongs to the scheduler collaborator; this facade only stores and reports.
type ScheduleSvcFacade interface {
	// Upsert stores a scheduled action, validating its recurrence fields.
	Upsert(ctx context.Context, action domain.ScheduledAction) (*domain.ScheduledAction, error)

	// GetByUID retrieves a scheduled action.
	GetByUID(ctx context.Context, scheduledActionUID string) (*domain.ScheduledAction, error)

	// GetByActionUID retrieves the scheduled actions linked to an action UID.
	GetByActionUID(ctx context.Context, actionUID string) ([]domain.ScheduledAction, error)

	// AllEnabled lists every enabled scheduled action.
	AllEnabled(ctx context.Context) ([]domain.ScheduledAction, error)

	// InstanceCount counts realized transactions carrying the action's link.
	InstanceCount(ctx context.Context, scheduledActionUID string) (int64, error)

	// RecordExecution bumps execution bookkeeping after the scheduler
	// materializes an occurrence.
	RecordExecution(ctx context.Context, scheduledActionUID string, ranAt time.Time) error
}
