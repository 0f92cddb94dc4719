package repositories

import (
	"context"
	"time"

	"github.com/cashbook-app/cashbook/internal/core/domain"
)

// ScheduledActionReader defines read operations for scheduled actions
type ScheduledActionReader interface {
	// FindScheduledActionByUID retrieves a scheduled action by UID.
	FindScheduledActionByUID(ctx context.Context, scheduledActionUID string) (*domain.ScheduledAction, error)

	// FindScheduledActionsByActionUID retrieves the scheduled actions linked
	// to a given action (template transaction) UID.
	FindScheduledActionsByActionUID(ctx context.Context, actionUID string) ([]domain.ScheduledAction, error)

	// ListEnabledScheduledActions lists all enabled scheduled actions.
	ListEnabledScheduledActions(ctx context.Context) ([]domain.ScheduledAction, error)
}

// ScheduledActionWriter defines write operations for scheduled actions
type ScheduledActionWriter interface {
	// SaveScheduledAction upserts a scheduled action by UID.
	SaveScheduledAction(ctx context.Context, action domain.ScheduledAction) error

	// RecordExecution bumps the execution count and last-run time of an
	// action, refusing once the total-frequency cap is reached.
	RecordExecution(ctx context.Context, scheduledActionUID string, ranAt time.Time) error

	// DeleteScheduledAction removes a scheduled action by UID.
	DeleteScheduledAction(ctx context.Context, scheduledActionUID string) error
}

// ScheduledActionRepositoryFacade combines all scheduled action repository interfaces
type ScheduledActionRepositoryFacade interface {
	ScheduledActionReader
	ScheduledActionWriter
}
