package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/cashbook-app/cashbook/internal/apperrors"
	"github.com/cashbook-app/cashbook/internal/core/domain"
	portsrepo "github.com/cashbook-app/cashbook/internal/core/ports/repositories"
	portssvc "github.com/cashbook-app/cashbook/internal/core/ports/services"
	"github.com/cashbook-app/cashbook/internal/platform/logging"
)

// scheduleService implements portssvc.ScheduleSvcFacade. It stores recurrence
// rules verbatim; occurrence-date math lives in the scheduler collaborator.
type scheduleService struct {
	repo    portsrepo.ScheduledActionRepositoryFacade
	txnRepo portsrepo.TransactionRepositoryWithTx
}

// NewScheduleService creates a new schedule service.
func NewScheduleService(repo portsrepo.ScheduledActionRepositoryFacade, txnRepo portsrepo.TransactionRepositoryWithTx) portssvc.ScheduleSvcFacade {
	return &scheduleService{repo: repo, txnRepo: txnRepo}
}

func validPeriodType(p domain.PeriodType) bool {
	switch p {
	case domain.PeriodHour, domain.PeriodDay, domain.PeriodWeek, domain.PeriodMonth, domain.PeriodYear:
		return true
	default:
		return false
	}
}

// Upsert stores a scheduled action, validating its recurrence fields.
func (s *scheduleService) Upsert(ctx context.Context, action domain.ScheduledAction) (*domain.ScheduledAction, error) {
	if action.ActionUID == "" {
		return nil, fmt.Errorf("%w: scheduled action needs an action UID", apperrors.ErrValidation)
	}
	if action.Recurrence.Multiplier < 1 {
		return nil, fmt.Errorf("%w: recurrence multiplier must be at least 1", apperrors.ErrValidation)
	}
	if !validPeriodType(action.Recurrence.PeriodType) {
		return nil, fmt.Errorf("%w: unknown period type %q", apperrors.ErrValidation, action.Recurrence.PeriodType)
	}
	if action.Recurrence.StartTime.IsZero() {
		return nil, fmt.Errorf("%w: recurrence start time is required", apperrors.ErrValidation)
	}
	if !action.Recurrence.EndTime.IsZero() && action.Recurrence.EndTime.Before(action.Recurrence.StartTime) {
		return nil, fmt.Errorf("%w: recurrence ends before it starts", apperrors.ErrValidation)
	}
	if action.TotalFrequency < 0 || action.ExecutionCount < 0 {
		return nil, fmt.Errorf("%w: execution counters cannot be negative", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	if action.ScheduledActionUID == "" {
		action.ScheduledActionUID = uuid.NewString()
	}
	if action.CreatedAt.IsZero() {
		action.CreatedAt = now
	}
	action.LastUpdatedAt = now

	if err := s.repo.SaveScheduledAction(ctx, action); err != nil {
		return nil, err
	}
	logging.FromCtx(ctx).Info("saved scheduled action",
		"scheduledActionUID", action.ScheduledActionUID, "actionUID", action.ActionUID)
	return &action, nil
}

// GetByUID retrieves a scheduled action.
func (s *scheduleService) GetByUID(ctx context.Context, scheduledActionUID string) (*domain.ScheduledAction, error) {
	return s.repo.FindScheduledActionByUID(ctx, scheduledActionUID)
}

// GetByActionUID retrieves the scheduled actions linked to an action UID.
func (s *scheduleService) GetByActionUID(ctx context.Context, actionUID string) ([]domain.ScheduledAction, error) {
	return s.repo.FindScheduledActionsByActionUID(ctx, actionUID)
}

// AllEnabled lists every enabled scheduled action.
func (s *scheduleService) AllEnabled(ctx context.Context) ([]domain.ScheduledAction, error) {
	return s.repo.ListEnabledScheduledActions(ctx)
}

// InstanceCount counts realized transactions carrying the action's link.
func (s *scheduleService) InstanceCount(ctx context.Context, scheduledActionUID string) (int64, error) {
	return s.txnRepo.CountTransactionsForScheduledAction(ctx, scheduledActionUID)
}

// RecordExecution bumps execution bookkeeping after the scheduler
// materializes an occurrence.
func (s *scheduleService) RecordExecution(ctx context.Context, scheduledActionUID string, ranAt time.Time) error {
	return s.repo.RecordExecution(ctx, scheduledActionUID, ranAt)
}
