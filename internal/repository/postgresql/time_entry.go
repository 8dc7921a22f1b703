package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/timeentry"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const timeEntrySelect = `
	SELECT t.id, t.employee_id, t.date, t.clock_in, t.clock_out, t.break_duration,
		   t.total_hours, t.overtime_hours, t.notes, t.status, t.created_at, t.updated_at,
		   e.user_id
	FROM time_entries t
	JOIN employees e ON e.id = t.employee_id`

var timeEntryConstraints = map[string]error{
	"uq_time_entries_active_per_day": timeentry.ErrAlreadyClockedIn,
}

type timeEntryRepositoryImpl struct {
	db *database.DB
}

func NewTimeEntryRepository(db *database.DB) timeentry.TimeEntryRepository {
	return &timeEntryRepositoryImpl{db: db}
}

func scanTimeEntry(row pgx.Row) (timeentry.TimeEntry, error) {
	var t timeentry.TimeEntry
	err := row.Scan(
		&t.ID, &t.EmployeeID, &t.Date, &t.ClockIn, &t.ClockOut, &t.BreakDuration,
		&t.TotalHours, &t.OvertimeHours, &t.Notes, &t.Status, &t.CreatedAt, &t.UpdatedAt,
		&t.EmployeeUserID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timeentry.TimeEntry{}, timeentry.ErrTimeEntryNotFound
		}
		return timeentry.TimeEntry{}, err
	}
	return t, nil
}

// Create implements timeentry.TimeEntryRepository.
func (r *timeEntryRepositoryImpl) Create(ctx context.Context, e timeentry.TimeEntry) (timeentry.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return timeentry.TimeEntry{}, fmt.Errorf("generate time entry id: %w", err)
	}

	query := `
		INSERT INTO time_entries (
			id, employee_id, date, clock_in, clock_out, break_duration,
			total_hours, overtime_hours, notes, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())`

	_, err = q.Exec(ctx, query,
		id.String(), e.EmployeeID, e.Date, e.ClockIn, e.ClockOut, e.BreakDuration,
		e.TotalHours, e.OvertimeHours, e.Notes, string(e.Status),
	)
	if err != nil {
		return timeentry.TimeEntry{}, translateConstraint(err, timeEntryConstraints)
	}
	return r.GetByID(ctx, id.String())
}

// GetByID implements timeentry.TimeEntryRepository.
func (r *timeEntryRepositoryImpl) GetByID(ctx context.Context, id string) (timeentry.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)
	return scanTimeEntry(q.QueryRow(ctx, timeEntrySelect+` WHERE t.id = $1`, id))
}

// HasActiveEntry implements timeentry.TimeEntryRepository.
func (r *timeEntryRepositoryImpl) HasActiveEntry(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM time_entries WHERE employee_id = $1 AND date = $2 AND status = 'active')`,
		employeeID, date,
	).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// List implements timeentry.TimeEntryRepository.
func (r *timeEntryRepositoryImpl) List(ctx context.Context, filter timeentry.TimeEntryFilter) ([]timeentry.TimeEntry, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := ` WHERE 1=1`
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil {
		where += fmt.Sprintf(" AND t.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.From != nil {
		where += fmt.Sprintf(" AND t.date >= $%d", argIdx)
		args = append(args, *filter.From)
		argIdx++
	}
	if filter.To != nil {
		where += fmt.Sprintf(" AND t.date <= $%d", argIdx)
		args = append(args, *filter.To)
		argIdx++
	}
	if filter.Status != nil {
		where += fmt.Sprintf(" AND t.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM time_entries t`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count time entries: %w", err)
	}

	query := timeEntrySelect + where + fmt.Sprintf(" ORDER BY t.date DESC, t.clock_in DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	entries, err := r.query(ctx, q, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

// ListByEmployee implements timeentry.TimeEntryRepository.
func (r *timeEntryRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, from, to *time.Time) ([]timeentry.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := timeEntrySelect + ` WHERE t.employee_id = $1`
	args := []interface{}{employeeID}
	if from != nil {
		args = append(args, *from)
		query += fmt.Sprintf(" AND t.date >= $%d", len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += fmt.Sprintf(" AND t.date <= $%d", len(args))
	}
	query += ` ORDER BY t.date`

	return r.query(ctx, q, query, args...)
}

func (r *timeEntryRepositoryImpl) query(ctx context.Context, q database.Querier, query string, args ...interface{}) ([]timeentry.TimeEntry, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query time entries: %w", err)
	}
	defer rows.Close()

	entries := make([]timeentry.TimeEntry, 0)
	for rows.Next() {
		e, err := scanTimeEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// SumApproved implements timeentry.TimeEntryRepository.
func (r *timeEntryRepositoryImpl) SumApproved(ctx context.Context, employeeID string, start, end time.Time) (timeentry.ApprovedHours, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(SUM(total_hours), 0), COALESCE(SUM(overtime_hours), 0)
		FROM time_entries
		WHERE employee_id = $1 AND status = 'approved' AND date >= $2 AND date <= $3`

	var sum timeentry.ApprovedHours
	if err := q.QueryRow(ctx, query, employeeID, start, end).Scan(&sum.TotalHours, &sum.OvertimeHours); err != nil {
		return timeentry.ApprovedHours{}, fmt.Errorf("failed to sum approved hours: %w", err)
	}
	return sum, nil
}

// Update implements timeentry.TimeEntryRepository.
func (r *timeEntryRepositoryImpl) Update(ctx context.Context, e timeentry.TimeEntry) (timeentry.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE time_entries
		SET clock_out = $2, break_duration = $3, total_hours = $4, overtime_hours = $5,
			notes = $6, status = $7, updated_at = NOW()
		WHERE id = $1`

	tag, err := q.Exec(ctx, query,
		e.ID, e.ClockOut, e.BreakDuration, e.TotalHours, e.OvertimeHours, e.Notes, string(e.Status),
	)
	if err != nil {
		return timeentry.TimeEntry{}, translateConstraint(err, timeEntryConstraints)
	}
	if tag.RowsAffected() != 1 {
		return timeentry.TimeEntry{}, timeentry.ErrTimeEntryNotFound
	}
	return r.GetByID(ctx, e.ID)
}

// Delete implements timeentry.TimeEntryRepository.
func (r *timeEntryRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM time_entries WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return timeentry.ErrTimeEntryNotFound
	}
	return nil
}
