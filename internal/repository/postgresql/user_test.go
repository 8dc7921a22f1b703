package postgresql

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/user"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userRowColumns = []string{"id", "email", "username", "password_hash", "full_name", "is_active", "is_admin", "created_at", "updated_at"}

func TestUserRepository_Create(t *testing.T) {
	mock, db := newMockDB(t)
	repo := NewUserRepository(db)
	now := time.Now().UTC()

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(pgxmock.AnyArg(), "john@example.com", "john", "hash", "John Doe", true, false).
		WillReturnRows(pgxmock.NewRows(userRowColumns).
			AddRow("u-1", "john@example.com", "john", "hash", "John Doe", true, false, now, now))

	created, err := repo.Create(context.Background(), user.User{
		Email: "john@example.com", Username: "john", PasswordHash: "hash", FullName: "John Doe", IsActive: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "u-1", created.ID)
	assert.Equal(t, now, created.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_CreateDuplicateEmail(t *testing.T) {
	mock, db := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(append([]interface{}{pgxmock.AnyArg(), "john@example.com", "john"}, anyArgs(4)...)...).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "uq_users_email"})

	_, err := repo.Create(context.Background(), user.User{Email: "john@example.com", Username: "john"})
	assert.ErrorIs(t, err, user.ErrEmailExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByIDNotFound(t *testing.T) {
	mock, db := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery("FROM users WHERE id = \\$1").
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByLogin(t *testing.T) {
	mock, db := newMockDB(t)
	repo := NewUserRepository(db)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE username = $1 OR email = LOWER($1)")).
		WithArgs("jane@example.com").
		WillReturnRows(pgxmock.NewRows(userRowColumns).
			AddRow("u-2", "jane@example.com", "jane", "hash", "Jane", true, true, now, now))

	u, err := repo.GetByLogin(context.Background(), "jane@example.com")
	require.NoError(t, err)
	assert.True(t, u.IsAdmin)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_ListWithFilters(t *testing.T) {
	mock, db := newMockDB(t)
	repo := NewUserRepository(db)
	now := time.Now().UTC()
	search := "jo"
	active := true

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM users WHERE 1=1 AND (username ILIKE $1")).
		WithArgs("%jo%", true).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(1)))
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at DESC LIMIT $3 OFFSET $4")).
		WithArgs("%jo%", true, 10, 10).
		WillReturnRows(pgxmock.NewRows(userRowColumns).
			AddRow("u-1", "john@example.com", "john", "hash", "John Doe", true, false, now, now))

	users, total, err := repo.List(context.Background(), user.UserFilter{Search: &search, IsActive: &active, Page: 2, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, users, 1)
	assert.Equal(t, "john", users[0].Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_DeleteNotFound(t *testing.T) {
	mock, db := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM users WHERE id = $1")).
		WithArgs("u-9").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repo.Delete(context.Background(), "u-9")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
