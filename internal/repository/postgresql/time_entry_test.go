package postgresql

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/timeentry"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var timeEntryRowColumns = []string{
	"id", "employee_id", "date", "clock_in", "clock_out", "break_duration",
	"total_hours", "overtime_hours", "notes", "status", "created_at", "updated_at", "user_id",
}

func TestTimeEntryRepository_CreateDuplicateActive(t *testing.T) {
	mock, db := newMockDB(t)
	repo := NewTimeEntryRepository(db)
	day := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

	mock.ExpectExec("INSERT INTO time_entries").
		WithArgs(append([]interface{}{pgxmock.AnyArg(), "emp-1", day, day.Add(9 * time.Hour)}, anyArgs(6)...)...).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "uq_time_entries_active_per_day"})

	_, err := repo.Create(context.Background(), timeentry.TimeEntry{
		EmployeeID: "emp-1", Date: day, ClockIn: day.Add(9 * time.Hour), Status: timeentry.StatusActive,
	})
	assert.ErrorIs(t, err, timeentry.ErrAlreadyClockedIn)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTimeEntryRepository_Create(t *testing.T) {
	mock, db := newMockDB(t)
	repo := NewTimeEntryRepository(db)
	day := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	clockIn := day.Add(9 * time.Hour)

	mock.ExpectExec("INSERT INTO time_entries").
		WithArgs(pgxmock.AnyArg(), "emp-1", day, clockIn, pgxmock.AnyArg(), 15,
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), "active").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectQuery(regexp.QuoteMeta("WHERE t.id = $1")).
		WithArgs(pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows(timeEntryRowColumns).
			AddRow("te-1", "emp-1", day, clockIn, nil, 15, nil, "0", nil, timeentry.StatusActive, clockIn, clockIn, "user-1"))

	created, err := repo.Create(context.Background(), timeentry.TimeEntry{
		EmployeeID: "emp-1", Date: day, ClockIn: clockIn, BreakDuration: 15,
		Status: timeentry.StatusActive, OvertimeHours: decimal.Zero,
	})
	require.NoError(t, err)
	assert.Equal(t, "te-1", created.ID)
	assert.Equal(t, "user-1", created.EmployeeUserID)
	assert.Nil(t, created.ClockOut)
	assert.Nil(t, created.TotalHours)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTimeEntryRepository_HasActiveEntry(t *testing.T) {
	mock, db := newMockDB(t)
	repo := NewTimeEntryRepository(db)
	day := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("status = 'active'")).
		WithArgs("emp-1", day).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.HasActiveEntry(context.Background(), "emp-1", day)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTimeEntryRepository_ListFilters(t *testing.T) {
	mock, db := newMockDB(t)
	repo := NewTimeEntryRepository(db)
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	status := "approved"
	emp := "emp-1"

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM time_entries t WHERE 1=1 AND t.employee_id = $1 AND t.date >= $2 AND t.status = $3")).
		WithArgs(emp, from, status).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(0)))
	mock.ExpectQuery(regexp.QuoteMeta("LIMIT $4 OFFSET $5")).
		WithArgs(emp, from, status, 20, 0).
		WillReturnRows(pgxmock.NewRows(timeEntryRowColumns))

	entries, total, err := repo.List(context.Background(), timeentry.TimeEntryFilter{
		EmployeeID: &emp, From: &from, Status: &status, Page: 1, Limit: 20,
	})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, entries)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTimeEntryRepository_DeleteNotFound(t *testing.T) {
	mock, db := newMockDB(t)
	repo := NewTimeEntryRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM time_entries")).
		WithArgs("te-404").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), "te-404"), timeentry.ErrTimeEntryNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
