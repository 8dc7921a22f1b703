package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const payrollRecordSelect = `
	SELECT pr.id, pr.employee_id, pr.employee_user_id, pr.pay_period_start, pr.pay_period_end,
		   pr.gross_pay, pr.tax_deductions, pr.other_deductions, pr.net_pay,
		   pr.hours_worked, pr.overtime_hours, pr.status, pr.processed_at,
		   pr.created_at, pr.updated_at,
		   e.employee_code, u.full_name
	FROM payroll_records pr
	LEFT JOIN employees e ON e.id = pr.employee_id
	LEFT JOIN users u ON u.id = pr.employee_user_id`

var payrollConstraints = map[string]error{
	"uq_payroll_records_employee_period":    payroll.ErrRecordExists,
	"chk_payroll_records_period":            payroll.ErrInvalidPeriod,
	"payroll_records_employee_id_fkey":      payroll.ErrEmployeeNotFound,
	"payroll_records_employee_user_id_fkey": payroll.ErrEmployeeNotFound,
}

type payrollRepositoryImpl struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepositoryImpl{db: db}
}

func scanPayrollRecord(row pgx.Row) (payroll.PayrollRecord, error) {
	var r payroll.PayrollRecord
	err := row.Scan(
		&r.ID, &r.EmployeeID, &r.EmployeeUserID, &r.PayPeriodStart, &r.PayPeriodEnd,
		&r.GrossPay, &r.TaxDeductions, &r.OtherDeductions, &r.NetPay,
		&r.HoursWorked, &r.OvertimeHours, &r.Status, &r.ProcessedAt,
		&r.CreatedAt, &r.UpdatedAt,
		&r.EmployeeCode, &r.EmployeeName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.PayrollRecord{}, err
	}
	return r, nil
}

const insertPayrollRecord = `
	INSERT INTO payroll_records (
		id, employee_id, employee_user_id, pay_period_start, pay_period_end,
		gross_pay, tax_deductions, other_deductions, net_pay,
		hours_worked, overtime_hours, status, processed_at, created_at, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW())`

func payrollInsertArgs(id string, r payroll.PayrollRecord) []interface{} {
	return []interface{}{
		id, r.EmployeeID, r.EmployeeUserID, r.PayPeriodStart, r.PayPeriodEnd,
		r.GrossPay, r.TaxDeductions, r.OtherDeductions, r.NetPay,
		r.HoursWorked, r.OvertimeHours, string(r.Status), r.ProcessedAt,
	}
}

// Create implements payroll.PayrollRepository.
func (p *payrollRepositoryImpl) Create(ctx context.Context, r payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, p.db)

	id, err := uuid.NewV7()
	if err != nil {
		return payroll.PayrollRecord{}, fmt.Errorf("generate payroll record id: %w", err)
	}

	if _, err := q.Exec(ctx, insertPayrollRecord, payrollInsertArgs(id.String(), r)...); err != nil {
		return payroll.PayrollRecord{}, translateConstraint(err, payrollConstraints)
	}
	return p.GetByID(ctx, id.String())
}

// CreateIfAbsent implements payroll.PayrollRepository.
func (p *payrollRepositoryImpl) CreateIfAbsent(ctx context.Context, r payroll.PayrollRecord) (payroll.PayrollRecord, bool, error) {
	q := GetQuerier(ctx, p.db)

	id, err := uuid.NewV7()
	if err != nil {
		return payroll.PayrollRecord{}, false, fmt.Errorf("generate payroll record id: %w", err)
	}

	query := insertPayrollRecord + `
		ON CONFLICT ON CONSTRAINT uq_payroll_records_employee_period DO NOTHING
		RETURNING id`

	var insertedID string
	err = q.QueryRow(ctx, query, payrollInsertArgs(id.String(), r)...).Scan(&insertedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollRecord{}, false, nil
		}
		return payroll.PayrollRecord{}, false, translateConstraint(err, payrollConstraints)
	}

	r.ID = insertedID
	return r, true, nil
}

// GetByID implements payroll.PayrollRepository.
func (p *payrollRepositoryImpl) GetByID(ctx context.Context, id string) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, p.db)
	return scanPayrollRecord(q.QueryRow(ctx, payrollRecordSelect+` WHERE pr.id = $1`, id))
}

// ExistsForPeriod implements payroll.PayrollRepository.
func (p *payrollRepositoryImpl) ExistsForPeriod(ctx context.Context, employeeID string, start, end time.Time) (bool, error) {
	q := GetQuerier(ctx, p.db)

	var exists bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM payroll_records WHERE employee_id = $1 AND pay_period_start = $2 AND pay_period_end = $3)`,
		employeeID, start, end,
	).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// List implements payroll.PayrollRepository.
func (p *payrollRepositoryImpl) List(ctx context.Context, filter payroll.PayrollFilter) ([]payroll.PayrollRecord, int64, error) {
	q := GetQuerier(ctx, p.db)

	where := ` WHERE 1=1`
	args := []interface{}{}
	argIdx := 1

	if filter.UserID != nil {
		where += fmt.Sprintf(" AND pr.employee_user_id = $%d", argIdx)
		args = append(args, *filter.UserID)
		argIdx++
	}
	if filter.EmployeeID != nil {
		where += fmt.Sprintf(" AND pr.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Status != nil {
		where += fmt.Sprintf(" AND pr.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM payroll_records pr`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count payroll records: %w", err)
	}

	query := payrollRecordSelect + where +
		fmt.Sprintf(" ORDER BY pr.pay_period_start DESC, pr.created_at DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payroll records: %w", err)
	}
	defer rows.Close()

	records := make([]payroll.PayrollRecord, 0)
	for rows.Next() {
		r, err := scanPayrollRecord(rows)
		if err != nil {
			return nil, 0, err
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// Update implements payroll.PayrollRepository.
func (p *payrollRepositoryImpl) Update(ctx context.Context, r payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		UPDATE payroll_records
		SET gross_pay = $2, tax_deductions = $3, other_deductions = $4, net_pay = $5,
			hours_worked = $6, overtime_hours = $7, status = $8, processed_at = $9, updated_at = NOW()
		WHERE id = $1`

	tag, err := q.Exec(ctx, query,
		r.ID, r.GrossPay, r.TaxDeductions, r.OtherDeductions, r.NetPay,
		r.HoursWorked, r.OvertimeHours, string(r.Status), r.ProcessedAt,
	)
	if err != nil {
		return payroll.PayrollRecord{}, translateConstraint(err, payrollConstraints)
	}
	if tag.RowsAffected() != 1 {
		return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
	}
	return p.GetByID(ctx, r.ID)
}

// Summary implements payroll.PayrollRepository.
func (p *payrollRepositoryImpl) Summary(ctx context.Context, from, to *time.Time) (payroll.PayrollSummary, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT COUNT(DISTINCT employee_id),
			   COALESCE(SUM(gross_pay), 0),
			   COALESCE(SUM(net_pay), 0),
			   COUNT(*) FILTER (WHERE status = 'pending'),
			   COUNT(*) FILTER (WHERE status = 'approved'),
			   COUNT(*) FILTER (WHERE status = 'paid')
		FROM payroll_records
		WHERE ($1::date IS NULL OR pay_period_start >= $1)
		  AND ($2::date IS NULL OR pay_period_end <= $2)`

	var s payroll.PayrollSummary
	err := q.QueryRow(ctx, query, from, to).Scan(
		&s.TotalEmployees, &s.TotalGrossPay, &s.TotalNetPay,
		&s.PendingRecords, &s.ApprovedRecords, &s.PaidRecords,
	)
	if err != nil {
		return payroll.PayrollSummary{}, fmt.Errorf("failed to summarize payroll: %w", err)
	}
	return s, nil
}
