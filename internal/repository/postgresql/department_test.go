package postgresql

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/department"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var departmentRowColumns = []string{"id", "name", "description", "manager_id", "budget", "is_active", "created_at"}

func TestDepartmentRepository_Create(t *testing.T) {
	mock, db := newMockDB(t)
	repo := NewDepartmentRepository(db)
	now := time.Now().UTC()
	budget := decimal.NewFromInt(50000)

	mock.ExpectQuery("INSERT INTO departments").
		WithArgs(pgxmock.AnyArg(), "Engineering", (*string)(nil), (*string)(nil), &budget, true).
		WillReturnRows(pgxmock.NewRows(departmentRowColumns).
			AddRow("d-1", "Engineering", nil, nil, &budget, true, now))

	created, err := repo.Create(context.Background(), department.Department{
		Name: "Engineering", Budget: &budget, IsActive: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "d-1", created.ID)
	require.NotNil(t, created.Budget)
	assert.True(t, budget.Equal(*created.Budget))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDepartmentRepository_CreateDuplicateName(t *testing.T) {
	mock, db := newMockDB(t)
	repo := NewDepartmentRepository(db)

	mock.ExpectQuery("INSERT INTO departments").
		WithArgs(append([]interface{}{pgxmock.AnyArg(), "Engineering"}, anyArgs(4)...)...).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "uq_departments_name"})

	_, err := repo.Create(context.Background(), department.Department{Name: "Engineering"})
	assert.ErrorIs(t, err, department.ErrDepartmentExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDepartmentRepository_GetByNameNotFound(t *testing.T) {
	mock, db := newMockDB(t)
	repo := NewDepartmentRepository(db)

	mock.ExpectQuery("FROM departments WHERE name = \\$1").
		WithArgs("Legal").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetByName(context.Background(), "Legal")
	assert.ErrorIs(t, err, department.ErrDepartmentNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDepartmentRepository_ListActiveOnly(t *testing.T) {
	mock, db := newMockDB(t)
	repo := NewDepartmentRepository(db)
	now := time.Now().UTC()

	mock.ExpectQuery("FROM departments WHERE is_active = TRUE ORDER BY name").
		WillReturnRows(pgxmock.NewRows(departmentRowColumns).
			AddRow("d-1", "Engineering", nil, nil, nil, true, now).
			AddRow("d-2", "Sales", nil, nil, nil, true, now))

	departments, err := repo.List(context.Background(), true)
	require.NoError(t, err)
	assert.Len(t, departments, 2)
	assert.Equal(t, "Sales", departments[1].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDepartmentRepository_DeleteNotFound(t *testing.T) {
	mock, db := newMockDB(t)
	repo := NewDepartmentRepository(db)

	mock.ExpectExec("DELETE FROM departments").
		WithArgs("missing").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repo.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, department.ErrDepartmentNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
