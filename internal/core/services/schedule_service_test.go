package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/cashbook-app/cashbook/internal/apperrors"
	"github.com/cashbook-app/cashbook/internal/core/domain"
	portssvc "github.com/cashbook-app/cashbook/internal/core/ports/services"
	"github.com/cashbook-app/cashbook/internal/core/services"
)

type ScheduleServiceSuite struct {
	suite.Suite
	ctx     context.Context
	repo    *MockScheduledActionRepository
	txnRepo *MockTransactionRepository
	svc     portssvc.ScheduleSvcFacade
}

func (s *ScheduleServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.repo = new(MockScheduledActionRepository)
	s.txnRepo = new(MockTransactionRepository)
	s.svc = services.NewScheduleService(s.repo, s.txnRepo)
}

func TestScheduleServiceSuite(t *testing.T) {
	suite.Run(t, new(ScheduleServiceSuite))
}

func (s *ScheduleServiceSuite) validAction() domain.ScheduledAction {
	return domain.ScheduledAction{
		ActionUID: "template-1",
		Recurrence: domain.Recurrence{
			Multiplier: 1,
			PeriodType: domain.PeriodMonth,
			StartTime:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		Enabled: true,
	}
}

func (s *ScheduleServiceSuite) TestUpsertFillsDefaults() {
	var saved domain.ScheduledAction
	s.repo.On("SaveScheduledAction", mock.Anything, mock.AnythingOfType("domain.ScheduledAction")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.ScheduledAction) }).
		Return(nil)

	got, err := s.svc.Upsert(s.ctx, s.validAction())
	s.Require().NoError(err)
	s.NotEmpty(got.ScheduledActionUID)
	s.Equal(got.ScheduledActionUID, saved.ScheduledActionUID)
	s.False(saved.CreatedAt.IsZero())
}

func (s *ScheduleServiceSuite) TestUpsertValidation() {
	cases := []struct {
		name   string
		mutate func(*domain.ScheduledAction)
	}{
		{"missing action UID", func(a *domain.ScheduledAction) { a.ActionUID = "" }},
		{"zero multiplier", func(a *domain.ScheduledAction) { a.Recurrence.Multiplier = 0 }},
		{"unknown period", func(a *domain.ScheduledAction) { a.Recurrence.PeriodType = "FORTNIGHT" }},
		{"missing start", func(a *domain.ScheduledAction) { a.Recurrence.StartTime = time.Time{} }},
		{"end before start", func(a *domain.ScheduledAction) {
			a.Recurrence.EndTime = a.Recurrence.StartTime.Add(-time.Hour)
		}},
		{"negative cap", func(a *domain.ScheduledAction) { a.TotalFrequency = -1 }},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			action := s.validAction()
			tc.mutate(&action)
			_, err := s.svc.Upsert(s.ctx, action)
			s.ErrorIs(err, apperrors.ErrValidation)
		})
	}
	s.repo.AssertNotCalled(s.T(), "SaveScheduledAction", mock.Anything, mock.Anything)
}

func (s *ScheduleServiceSuite) TestInstanceCount() {
	s.txnRepo.On("CountTransactionsForScheduledAction", mock.Anything, "sa-1").Return(int64(4), nil)

	count, err := s.svc.InstanceCount(s.ctx, "sa-1")
	s.Require().NoError(err)
	s.Equal(int64(4), count)
}

func (s *ScheduleServiceSuite) TestRecordExecution() {
	ranAt := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	s.repo.On("RecordExecution", mock.Anything, "sa-1", ranAt).Return(nil)

	s.NoError(s.svc.RecordExecution(s.ctx, "sa-1", ranAt))
}
