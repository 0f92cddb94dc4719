package sqlite_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/cashbook-app/cashbook/internal/apperrors"
	"github.com/cashbook-app/cashbook/internal/core/domain"
	"github.com/cashbook-app/cashbook/internal/repositories/database/sqlite"
)

type ScheduledActionRepositorySuite struct {
	suite.Suite
	ctx  context.Context
	db   *sql.DB
	repo *sqlite.SQLiteScheduledActionRepository
}

func (s *ScheduledActionRepositorySuite) SetupTest() {
	s.ctx = context.Background()
	s.db = newTestDB(s.T())
	s.repo = sqlite.NewSQLiteScheduledActionRepository(s.db)
}

func TestScheduledActionRepositorySuite(t *testing.T) {
	suite.Run(t, new(ScheduledActionRepositorySuite))
}

func (s *ScheduledActionRepositorySuite) newAction(enabled bool, totalFrequency int) domain.ScheduledAction {
	now := testTime()
	return domain.ScheduledAction{
		ScheduledActionUID: uuid.NewString(),
		ActionUID:          uuid.NewString(),
		Recurrence: domain.Recurrence{
			Multiplier: 1,
			PeriodType: domain.PeriodMonth,
			StartTime:  now,
		},
		Enabled:        enabled,
		AutoCreate:     true,
		TotalFrequency: totalFrequency,
		AuditFields:    domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}
}

func (s *ScheduledActionRepositorySuite) TestSaveAndFind() {
	action := s.newAction(true, 0)
	action.Recurrence.ByDays = "MO,FR"
	s.Require().NoError(s.repo.SaveScheduledAction(s.ctx, action))

	found, err := s.repo.FindScheduledActionByUID(s.ctx, action.ScheduledActionUID)
	s.Require().NoError(err)
	s.Equal(action.ActionUID, found.ActionUID)
	s.Equal(domain.PeriodMonth, found.Recurrence.PeriodType)
	s.Equal("MO,FR", found.Recurrence.ByDays)
	s.True(found.AutoCreate)

	byAction, err := s.repo.FindScheduledActionsByActionUID(s.ctx, action.ActionUID)
	s.Require().NoError(err)
	s.Len(byAction, 1)
}

func (s *ScheduledActionRepositorySuite) TestListEnabled() {
	enabled := s.newAction(true, 0)
	disabled := s.newAction(false, 0)
	s.Require().NoError(s.repo.SaveScheduledAction(s.ctx, enabled))
	s.Require().NoError(s.repo.SaveScheduledAction(s.ctx, disabled))

	actions, err := s.repo.ListEnabledScheduledActions(s.ctx)
	s.Require().NoError(err)
	s.Len(actions, 1)
	s.Equal(enabled.ScheduledActionUID, actions[0].ScheduledActionUID)
}

func (s *ScheduledActionRepositorySuite) TestRecordExecution() {
	action := s.newAction(true, 2)
	s.Require().NoError(s.repo.SaveScheduledAction(s.ctx, action))

	ranAt := testTime().Add(time.Hour)
	s.Require().NoError(s.repo.RecordExecution(s.ctx, action.ScheduledActionUID, ranAt))
	s.Require().NoError(s.repo.RecordExecution(s.ctx, action.ScheduledActionUID, ranAt.Add(time.Hour)))

	// Cap of 2 reached.
	err := s.repo.RecordExecution(s.ctx, action.ScheduledActionUID, ranAt.Add(2*time.Hour))
	s.ErrorIs(err, apperrors.ErrConflict)

	found, err := s.repo.FindScheduledActionByUID(s.ctx, action.ScheduledActionUID)
	s.Require().NoError(err)
	s.Equal(2, found.ExecutionCount)
	s.False(found.CanExecute())
}

func (s *ScheduledActionRepositorySuite) TestRecordExecutionUncapped() {
	action := s.newAction(true, 0)
	s.Require().NoError(s.repo.SaveScheduledAction(s.ctx, action))

	for i := 0; i < 5; i++ {
		s.Require().NoError(s.repo.RecordExecution(s.ctx, action.ScheduledActionUID, testTime()))
	}

	found, err := s.repo.FindScheduledActionByUID(s.ctx, action.ScheduledActionUID)
	s.Require().NoError(err)
	s.Equal(5, found.ExecutionCount)
}

func (s *ScheduledActionRepositorySuite) TestRecordExecutionNotFound() {
	err := s.repo.RecordExecution(s.ctx, "no-such-action", testTime())
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *ScheduledActionRepositorySuite) TestDelete() {
	action := s.newAction(true, 0)
	s.Require().NoError(s.repo.SaveScheduledAction(s.ctx, action))

	s.Require().NoError(s.repo.DeleteScheduledAction(s.ctx, action.ScheduledActionUID))
	s.ErrorIs(s.repo.DeleteScheduledAction(s.ctx, action.ScheduledActionUID), apperrors.ErrNotFound)
}
