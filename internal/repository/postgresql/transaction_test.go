package postgresql

import (
	"context"
	"errors"
	"testing"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/timeentry"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (pgxmock.PgxPoolIface, *database.DB) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock, database.New(mock)
}

// anyArgs matches n bound parameters without checking their values.
func anyArgs(n int) []interface{} {
	args := make([]interface{}, n)
	for i := range args {
		args[i] = pgxmock.AnyArg()
	}
	return args
}

func TestTxManager_Commit(t *testing.T) {
	mock, db := newMockDB(t)
	tm := NewTxManager(db)

	mock.ExpectBegin()
	mock.ExpectCommit()

	err := tm.WithinTransaction(context.Background(), func(ctx context.Context) error {
		_, ok := GetQuerier(ctx, db).(pgx.Tx)
		assert.True(t, ok, "querier should be the transaction")
		return nil
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTxManager_RollbackOnError(t *testing.T) {
	mock, db := newMockDB(t)
	tm := NewTxManager(db)

	mock.ExpectBegin()
	mock.ExpectRollback()

	expected := errors.New("service error")
	err := tm.WithinTransaction(context.Background(), func(ctx context.Context) error {
		return expected
	})
	assert.ErrorIs(t, err, expected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTxManager_NestedReusesTransaction(t *testing.T) {
	mock, db := newMockDB(t)
	tm := NewTxManager(db)

	mock.ExpectBegin()
	mock.ExpectCommit()

	err := tm.WithinTransaction(context.Background(), func(ctx context.Context) error {
		outer := GetQuerier(ctx, db)
		return tm.WithinTransaction(ctx, func(inner context.Context) error {
			assert.Equal(t, outer, GetQuerier(inner, db))
			return nil
		})
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetQuerier_WithoutTransaction(t *testing.T) {
	mock, db := newMockDB(t)
	assert.Equal(t, mock, GetQuerier(context.Background(), db))
}

func TestTranslateConstraint(t *testing.T) {
	byName := map[string]error{"uq_time_entries_active_per_day": timeentry.ErrAlreadyClockedIn}

	err := translateConstraint(&pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "uq_time_entries_active_per_day"}, byName)
	assert.ErrorIs(t, err, timeentry.ErrAlreadyClockedIn)

	err = translateConstraint(&pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "other"}, byName)
	assert.ErrorIs(t, err, apperror.ErrConflict)

	err = translateConstraint(&pgconn.PgError{Code: pgForeignKeyViolation}, byName)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	err = translateConstraint(&pgconn.PgError{Code: pgCheckViolation}, byName)
	assert.ErrorIs(t, err, apperror.ErrInvalidRange)

	plain := errors.New("boom")
	assert.Equal(t, plain, translateConstraint(plain, byName))
}
