package postgresql

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePayrollRecord() payroll.PayrollRecord {
	return payroll.NewRecord("emp-1", "user-1",
		time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC),
		payroll.Breakdown{
			HoursWorked:     decimal.NewFromInt(40),
			GrossPay:        decimal.NewFromInt(1000),
			TaxDeductions:   decimal.NewFromInt(250),
			OtherDeductions: decimal.NewFromInt(50),
			NetPay:          decimal.NewFromInt(700),
		})
}

// payrollInsertArgsFor matches the 13 insert parameters: a generated id,
// the owner columns and the period, then the amounts and status.
func payrollInsertArgsFor(rec payroll.PayrollRecord) []interface{} {
	args := []interface{}{pgxmock.AnyArg(), rec.EmployeeID, rec.EmployeeUserID, rec.PayPeriodStart, rec.PayPeriodEnd}
	args = append(args, anyArgs(6)...)
	return append(args, string(payroll.StatusPending), pgxmock.AnyArg())
}

func TestPayrollRepository_CreateIfAbsent_Inserted(t *testing.T) {
	mock, db := newMockDB(t)
	repo := NewPayrollRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("ON CONFLICT ON CONSTRAINT uq_payroll_records_employee_period DO NOTHING")).
		WithArgs(payrollInsertArgsFor(samplePayrollRecord())...).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow("pr-1"))

	rec, created, err := repo.CreateIfAbsent(context.Background(), samplePayrollRecord())
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "pr-1", rec.ID)
	assert.Equal(t, payroll.StatusPending, rec.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPayrollRepository_CreateIfAbsent_Skipped(t *testing.T) {
	mock, db := newMockDB(t)
	repo := NewPayrollRepository(db)

	mock.ExpectQuery("ON CONFLICT").
		WithArgs(payrollInsertArgsFor(samplePayrollRecord())...).
		WillReturnError(pgx.ErrNoRows)

	_, created, err := repo.CreateIfAbsent(context.Background(), samplePayrollRecord())
	require.NoError(t, err)
	assert.False(t, created)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPayrollRepository_CreateDuplicate(t *testing.T) {
	mock, db := newMockDB(t)
	repo := NewPayrollRepository(db)

	mock.ExpectExec("INSERT INTO payroll_records").
		WithArgs(payrollInsertArgsFor(samplePayrollRecord())...).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "uq_payroll_records_employee_period"})

	_, err := repo.Create(context.Background(), samplePayrollRecord())
	assert.ErrorIs(t, err, payroll.ErrRecordExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPayrollRepository_ExistsForPeriod(t *testing.T) {
	mock, db := newMockDB(t)
	repo := NewPayrollRepository(db)
	rec := samplePayrollRecord()

	mock.ExpectQuery(regexp.QuoteMeta("pay_period_start = $2 AND pay_period_end = $3")).
		WithArgs("emp-1", rec.PayPeriodStart, rec.PayPeriodEnd).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))

	exists, err := repo.ExistsForPeriod(context.Background(), "emp-1", rec.PayPeriodStart, rec.PayPeriodEnd)
	require.NoError(t, err)
	assert.False(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPayrollRepository_ListScopedToUser(t *testing.T) {
	mock, db := newMockDB(t)
	repo := NewPayrollRepository(db)
	userID := "user-1"

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM payroll_records pr WHERE 1=1 AND pr.employee_user_id = $1")).
		WithArgs(userID).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(0)))
	mock.ExpectQuery(regexp.QuoteMeta("LIMIT $2 OFFSET $3")).
		WithArgs(userID, 20, 0).
		WillReturnRows(pgxmock.NewRows([]string{"id"}))

	records, total, err := repo.List(context.Background(), payroll.PayrollFilter{UserID: &userID, Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, records)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPayrollRepository_UpdateNotFound(t *testing.T) {
	mock, db := newMockDB(t)
	repo := NewPayrollRepository(db)
	rec := samplePayrollRecord()
	rec.ID = "pr-404"

	mock.ExpectExec("UPDATE payroll_records").
		WithArgs(append([]interface{}{"pr-404"}, anyArgs(8)...)...).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	_, err := repo.Update(context.Background(), rec)
	assert.ErrorIs(t, err, payroll.ErrPayrollRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
