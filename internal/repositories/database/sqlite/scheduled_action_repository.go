package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/cashbook-app/cashbook/internal/apperrors"
	"github.com/cashbook-app/cashbook/internal/core/domain"
	"github.com/cashbook-app/cashbook/internal/models"
	"github.com/cashbook-app/cashbook/internal/utils/mapping"
)

const scheduledActionColumns = `scheduled_action_uid, action_uid, recurrence_multiplier, recurrence_period_type, recurrence_by_days, start_time, end_time, enabled, auto_create, auto_notify, advance_create_days, advance_notify_days, total_frequency, execution_count, last_run_time, template_account_uid, created_at, last_updated_at`

// SQLiteScheduledActionRepository implements the scheduled action repository
// facade using SQLite.
type SQLiteScheduledActionRepository struct {
	BaseRepository
}

// NewSQLiteScheduledActionRepository creates a new scheduled action repository.
func NewSQLiteScheduledActionRepository(db *sql.DB) *SQLiteScheduledActionRepository {
	return &SQLiteScheduledActionRepository{BaseRepository: NewBaseRepository(db)}
}

func scanScheduledAction(row interface{ Scan(dest ...any) error }) (models.ScheduledAction, error) {
	var m models.ScheduledAction
	err := row.Scan(
		&m.ScheduledActionUID, &m.ActionUID, &m.Multiplier, &m.PeriodType, &m.ByDays,
		&m.StartTime, &m.EndTime, &m.Enabled, &m.AutoCreate, &m.AutoNotify,
		&m.AdvanceCreateDays, &m.AdvanceNotifyDays, &m.TotalFrequency, &m.ExecutionCount,
		&m.LastRunTime, &m.TemplateAccountUID, &m.CreatedAt, &m.LastUpdatedAt,
	)
	return m, err
}

func (r *SQLiteScheduledActionRepository) queryScheduledActions(ctx context.Context, query string, args ...any) ([]domain.ScheduledAction, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var actions []domain.ScheduledAction
	for rows.Next() {
		m, err := scanScheduledAction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan scheduled action: %w", err)
		}
		actions = append(actions, mapping.ToDomainScheduledAction(m))
	}
	return actions, rows.Err()
}

// FindScheduledActionByUID retrieves a scheduled action by UID.
func (r *SQLiteScheduledActionRepository) FindScheduledActionByUID(ctx context.Context, scheduledActionUID string) (*domain.ScheduledAction, error) {
	query := fmt.Sprintf(`SELECT %s FROM scheduled_actions WHERE scheduled_action_uid = ?`, scheduledActionColumns)
	m, err := scanScheduledAction(r.DB.QueryRowContext(ctx, query, scheduledActionUID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, mapSQLiteError(err, "scheduled action")
		}
		return nil, fmt.Errorf("failed to find scheduled action %s: %w", scheduledActionUID, err)
	}
	d := mapping.ToDomainScheduledAction(m)
	return &d, nil
}

// FindScheduledActionsByActionUID retrieves the scheduled actions linked to
// a given action UID.
func (r *SQLiteScheduledActionRepository) FindScheduledActionsByActionUID(ctx context.Context, actionUID string) ([]domain.ScheduledAction, error) {
	query := fmt.Sprintf(`SELECT %s FROM scheduled_actions WHERE action_uid = ? ORDER BY created_at`, scheduledActionColumns)
	actions, err := r.queryScheduledActions(ctx, query, actionUID)
	if err != nil {
		return nil, fmt.Errorf("failed to find scheduled actions for action %s: %w", actionUID, err)
	}
	return actions, nil
}

// ListEnabledScheduledActions lists all enabled scheduled actions.
func (r *SQLiteScheduledActionRepository) ListEnabledScheduledActions(ctx context.Context) ([]domain.ScheduledAction, error) {
	query := fmt.Sprintf(`SELECT %s FROM scheduled_actions WHERE enabled = 1 ORDER BY created_at`, scheduledActionColumns)
	actions, err := r.queryScheduledActions(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list enabled scheduled actions: %w", err)
	}
	return actions, nil
}

// SaveScheduledAction upserts a scheduled action by UID.
func (r *SQLiteScheduledActionRepository) SaveScheduledAction(ctx context.Context, action domain.ScheduledAction) error {
	m := mapping.ToModelScheduledAction(action)
	query := `
		INSERT INTO scheduled_actions (scheduled_action_uid, action_uid, recurrence_multiplier, recurrence_period_type, recurrence_by_days, start_time, end_time, enabled, auto_create, auto_notify, advance_create_days, advance_notify_days, total_frequency, execution_count, last_run_time, template_account_uid, created_at, last_updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (scheduled_action_uid) DO UPDATE SET
			action_uid = excluded.action_uid,
			recurrence_multiplier = excluded.recurrence_multiplier,
			recurrence_period_type = excluded.recurrence_period_type,
			recurrence_by_days = excluded.recurrence_by_days,
			start_time = excluded.start_time,
			end_time = excluded.end_time,
			enabled = excluded.enabled,
			auto_create = excluded.auto_create,
			auto_notify = excluded.auto_notify,
			advance_create_days = excluded.advance_create_days,
			advance_notify_days = excluded.advance_notify_days,
			total_frequency = excluded.total_frequency,
			execution_count = excluded.execution_count,
			last_run_time = excluded.last_run_time,
			template_account_uid = excluded.template_account_uid,
			last_updated_at = excluded.last_updated_at`
	_, err := r.DB.ExecContext(ctx, query,
		m.ScheduledActionUID, m.ActionUID, m.Multiplier, m.PeriodType, m.ByDays,
		m.StartTime, m.EndTime, m.Enabled, m.AutoCreate, m.AutoNotify,
		m.AdvanceCreateDays, m.AdvanceNotifyDays, m.TotalFrequency, m.ExecutionCount,
		m.LastRunTime, m.TemplateAccountUID, m.CreatedAt, m.LastUpdatedAt,
	)
	if err != nil {
		return mapSQLiteError(err, "scheduled action")
	}
	return nil
}

// RecordExecution bumps the execution count and last-run time, refusing once
// the total-frequency cap is reached. A zero cap means unlimited.
func (r *SQLiteScheduledActionRepository) RecordExecution(ctx context.Context, scheduledActionUID string, ranAt time.Time) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE scheduled_actions
		SET execution_count = execution_count + 1,
		    last_run_time = ?,
		    last_updated_at = CURRENT_TIMESTAMP
		WHERE scheduled_action_uid = ?
		  AND (total_frequency = 0 OR execution_count < total_frequency)`,
		ranAt, scheduledActionUID)
	if err != nil {
		return fmt.Errorf("failed to record execution of %s: %w", scheduledActionUID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		var exists bool
		checkErr := r.DB.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM scheduled_actions WHERE scheduled_action_uid = ?)`,
			scheduledActionUID,
		).Scan(&exists)
		if checkErr != nil {
			return checkErr
		}
		if !exists {
			return apperrors.NewNotFoundError("scheduled action not found")
		}
		return fmt.Errorf("scheduled action %s reached its execution cap: %w", scheduledActionUID, apperrors.ErrConflict)
	}
	return nil
}

// DeleteScheduledAction removes a scheduled action by UID.
func (r *SQLiteScheduledActionRepository) DeleteScheduledAction(ctx context.Context, scheduledActionUID string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM scheduled_actions WHERE scheduled_action_uid = ?`, scheduledActionUID)
	if err != nil {
		return fmt.Errorf("failed to delete scheduled action %s: %w", scheduledActionUID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperrors.NewNotFoundError("scheduled action not found")
	}
	return nil
}
