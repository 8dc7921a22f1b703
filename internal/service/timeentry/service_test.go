package timeentry

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/access"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/timeentry"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTx struct{ calls int }

func (f *fakeTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fakeEmployeeRepository struct {
	employee.EmployeeRepository
	byUser map[string]employee.Employee
}

func (f *fakeEmployeeRepository) GetByUserID(_ context.Context, userID string) (employee.Employee, error) {
	e, ok := f.byUser[userID]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

type fakeTimeEntryRepository struct {
	timeentry.TimeEntryRepository
	entries map[string]timeentry.TimeEntry
	owners  map[string]string // employee id -> user id
	seq     int
}

func (f *fakeTimeEntryRepository) Create(_ context.Context, e timeentry.TimeEntry) (timeentry.TimeEntry, error) {
	f.seq++
	e.ID = fmt.Sprintf("entry-%d", f.seq)
	e.EmployeeUserID = f.owners[e.EmployeeID]
	f.entries[e.ID] = e
	return e, nil
}

func (f *fakeTimeEntryRepository) GetByID(_ context.Context, id string) (timeentry.TimeEntry, error) {
	e, ok := f.entries[id]
	if !ok {
		return timeentry.TimeEntry{}, timeentry.ErrTimeEntryNotFound
	}
	return e, nil
}

func (f *fakeTimeEntryRepository) HasActiveEntry(_ context.Context, employeeID string, date time.Time) (bool, error) {
	for _, e := range f.entries {
		if e.EmployeeID == employeeID && e.Date.Equal(date) && e.Status == timeentry.StatusActive {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeTimeEntryRepository) List(_ context.Context, filter timeentry.TimeEntryFilter) ([]timeentry.TimeEntry, int64, error) {
	var out []timeentry.TimeEntry
	for _, e := range f.entries {
		if filter.EmployeeID != nil && e.EmployeeID != *filter.EmployeeID {
			continue
		}
		out = append(out, e)
	}
	return out, int64(len(out)), nil
}

func (f *fakeTimeEntryRepository) ListByEmployee(_ context.Context, employeeID string, _, _ *time.Time) ([]timeentry.TimeEntry, error) {
	var out []timeentry.TimeEntry
	for _, e := range f.entries {
		if e.EmployeeID == employeeID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeTimeEntryRepository) Update(_ context.Context, e timeentry.TimeEntry) (timeentry.TimeEntry, error) {
	f.entries[e.ID] = e
	return e, nil
}

func (f *fakeTimeEntryRepository) Delete(_ context.Context, id string) error {
	if _, ok := f.entries[id]; !ok {
		return timeentry.ErrTimeEntryNotFound
	}
	delete(f.entries, id)
	return nil
}

const (
	johnUserID  = "user-john"
	janeUserID  = "user-jane"
	adminUserID = "user-admin"
)

type fixture struct {
	svc     *TimeEntryServiceImpl
	entries *fakeTimeEntryRepository
	tx      *fakeTx
}

func newFixture() fixture {
	employees := &fakeEmployeeRepository{byUser: map[string]employee.Employee{
		johnUserID:  {ID: "emp-john", UserID: johnUserID},
		janeUserID:  {ID: "emp-jane", UserID: janeUserID},
		adminUserID: {ID: "emp-admin", UserID: adminUserID},
	}}
	entries := &fakeTimeEntryRepository{
		entries: map[string]timeentry.TimeEntry{},
		owners:  map[string]string{"emp-john": johnUserID, "emp-jane": janeUserID, "emp-admin": adminUserID},
	}
	tx := &fakeTx{}
	svc := NewTimeEntryService(tx, entries, employees, decimal.NewFromInt(8)).(*TimeEntryServiceImpl)
	return fixture{svc: svc, entries: entries, tx: tx}
}

func as(userID string, admin bool) context.Context {
	return auth.NewContext(context.Background(), auth.Principal{UserID: userID, IsAdmin: admin})
}

func clockInReq(t *testing.T, clockIn string) timeentry.ClockInRequest {
	t.Helper()
	req := timeentry.ClockInRequest{ClockIn: clockIn}
	require.NoError(t, req.Validate())
	return req
}

func clockOutReq(t *testing.T, clockOut string, breakMinutes *int) timeentry.ClockOutRequest {
	t.Helper()
	req := timeentry.ClockOutRequest{ClockOut: clockOut, BreakDuration: breakMinutes}
	require.NoError(t, req.Validate())
	return req
}

func intPtr(v int) *int { return &v }

func TestClockIn_RejectsSecondActiveEntry(t *testing.T) {
	f := newFixture()
	ctx := as(johnUserID, false)

	entry, err := f.svc.ClockIn(ctx, clockInReq(t, "2024-03-04T09:00:00Z"))
	require.NoError(t, err)
	assert.Equal(t, "active", entry.Status)
	assert.Equal(t, "2024-03-04", entry.Date)

	_, err = f.svc.ClockIn(ctx, clockInReq(t, "2024-03-04T13:00:00Z"))
	assert.ErrorIs(t, err, timeentry.ErrAlreadyClockedIn)
	assert.Len(t, f.entries.entries, 1)
	assert.Equal(t, 2, f.tx.calls)

	// another day is fine
	_, err = f.svc.ClockIn(ctx, clockInReq(t, "2024-03-05T09:00:00Z"))
	assert.NoError(t, err)
}

func TestClockIn_WithoutProfile(t *testing.T) {
	f := newFixture()

	_, err := f.svc.ClockIn(as("user-nobody", false), clockInReq(t, "2024-03-04T09:00:00Z"))
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestClockOut_ComputesHours(t *testing.T) {
	f := newFixture()
	ctx := as(johnUserID, false)

	entry, err := f.svc.ClockIn(ctx, clockInReq(t, "2024-03-04T09:00:00Z"))
	require.NoError(t, err)

	out, err := f.svc.ClockOut(ctx, entry.ID, clockOutReq(t, "2024-03-04T18:30:00Z", intPtr(30)))
	require.NoError(t, err)
	assert.Equal(t, "completed", out.Status)
	assert.True(t, decimal.NewFromInt(9).Equal(*out.TotalHours))
	assert.True(t, decimal.NewFromInt(1).Equal(out.OvertimeHours))

	_, err = f.svc.ClockOut(ctx, entry.ID, clockOutReq(t, "2024-03-04T19:00:00Z", nil))
	assert.ErrorIs(t, err, timeentry.ErrAlreadyClockedOut)

	// after clocking out the same day may be opened again
	_, err = f.svc.ClockIn(ctx, clockInReq(t, "2024-03-04T20:00:00Z"))
	assert.NoError(t, err)
}

func TestClockOut_InvalidTimes(t *testing.T) {
	f := newFixture()
	ctx := as(johnUserID, false)
	entry, err := f.svc.ClockIn(ctx, clockInReq(t, "2024-03-04T09:00:00Z"))
	require.NoError(t, err)

	_, err = f.svc.ClockOut(ctx, entry.ID, clockOutReq(t, "2024-03-04T08:00:00Z", nil))
	assert.ErrorIs(t, err, timeentry.ErrClockOutBeforeClockIn)

	_, err = f.svc.ClockOut(ctx, entry.ID, clockOutReq(t, "2024-03-04T10:00:00Z", intPtr(90)))
	assert.ErrorIs(t, err, timeentry.ErrBreakExceedsShift)

	assert.Nil(t, f.entries.entries[entry.ID].ClockOut)
}

func TestClockOut_OtherEmployeesEntry(t *testing.T) {
	f := newFixture()
	entry, err := f.svc.ClockIn(as(johnUserID, false), clockInReq(t, "2024-03-04T09:00:00Z"))
	require.NoError(t, err)

	_, err = f.svc.ClockOut(as(janeUserID, false), entry.ID, clockOutReq(t, "2024-03-04T17:00:00Z", nil))
	assert.ErrorIs(t, err, timeentry.ErrTimeEntryNotFound)
}

func completedEntry(t *testing.T, f fixture, userID string) timeentry.TimeEntryResponse {
	t.Helper()
	ctx := as(userID, false)
	entry, err := f.svc.ClockIn(ctx, clockInReq(t, "2024-03-04T09:00:00Z"))
	require.NoError(t, err)
	out, err := f.svc.ClockOut(ctx, entry.ID, clockOutReq(t, "2024-03-04T17:00:00Z", nil))
	require.NoError(t, err)
	return out
}

func approve() timeentry.UpdateTimeEntryRequest {
	status := string(timeentry.StatusApproved)
	return timeentry.UpdateTimeEntryRequest{Status: &status}
}

func TestUpdateEntry_Approval(t *testing.T) {
	f := newFixture()
	johnEntry := completedEntry(t, f, johnUserID)
	adminEntry := completedEntry(t, f, adminUserID)

	_, err := f.svc.UpdateEntry(as(johnUserID, false), johnEntry.ID, approve())
	assert.ErrorIs(t, err, access.ErrAdminRequired)

	_, err = f.svc.UpdateEntry(as(janeUserID, false), johnEntry.ID, approve())
	assert.ErrorIs(t, err, access.ErrNotOwner)

	_, err = f.svc.UpdateEntry(as(adminUserID, true), adminEntry.ID, approve())
	assert.ErrorIs(t, err, access.ErrSelfApproval)

	approved, err := f.svc.UpdateEntry(as(adminUserID, true), johnEntry.ID, approve())
	require.NoError(t, err)
	assert.Equal(t, "approved", approved.Status)

	notes := "forgot lunch"
	_, err = f.svc.UpdateEntry(as(johnUserID, false), johnEntry.ID, timeentry.UpdateTimeEntryRequest{Notes: &notes})
	assert.ErrorIs(t, err, timeentry.ErrEntryLocked)
}

func TestUpdateEntry_ApproveActiveEntry(t *testing.T) {
	f := newFixture()
	entry, err := f.svc.ClockIn(as(johnUserID, false), clockInReq(t, "2024-03-04T09:00:00Z"))
	require.NoError(t, err)

	_, err = f.svc.UpdateEntry(as(adminUserID, true), entry.ID, approve())
	assert.ErrorIs(t, err, timeentry.ErrEntryNotCompleted)
}

func TestUpdateEntry_OwnerRecomputesHours(t *testing.T) {
	f := newFixture()
	entry := completedEntry(t, f, johnUserID)

	req := timeentry.UpdateTimeEntryRequest{BreakDuration: intPtr(60)}
	require.NoError(t, req.Validate())
	updated, err := f.svc.UpdateEntry(as(johnUserID, false), entry.ID, req)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(7).Equal(*updated.TotalHours))
}

func TestUpdateEntry_CannotReopenCompletedEntry(t *testing.T) {
	f := newFixture()
	entry := completedEntry(t, f, johnUserID)

	active := string(timeentry.StatusActive)
	_, err := f.svc.UpdateEntry(as(johnUserID, false), entry.ID, timeentry.UpdateTimeEntryRequest{Status: &active})
	assert.ErrorIs(t, err, timeentry.ErrStatusMismatch)
	assert.Equal(t, timeentry.StatusCompleted, f.entries.entries[entry.ID].Status)

	_, err = f.svc.ClockIn(as(johnUserID, false), clockInReq(t, "2024-03-04T19:00:00Z"))
	assert.NoError(t, err)
}

func TestUpdateEntry_ClockOutThroughUpdateCompletesEntry(t *testing.T) {
	f := newFixture()
	ctx := as(johnUserID, false)
	entry, err := f.svc.ClockIn(ctx, clockInReq(t, "2024-03-04T09:00:00Z"))
	require.NoError(t, err)

	out := "2024-03-04T18:00:00Z"
	req := timeentry.UpdateTimeEntryRequest{ClockOut: &out}
	require.NoError(t, req.Validate())
	updated, err := f.svc.UpdateEntry(ctx, entry.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "completed", updated.Status)

	_, err = f.svc.ClockIn(ctx, clockInReq(t, "2024-03-04T19:00:00Z"))
	assert.NoError(t, err)
}

func TestGetListDelete(t *testing.T) {
	f := newFixture()
	entry := completedEntry(t, f, johnUserID)
	completedEntry(t, f, janeUserID)

	_, err := f.svc.GetEntry(as(janeUserID, false), entry.ID)
	assert.ErrorIs(t, err, access.ErrNotOwner)
	_, err = f.svc.GetEntry(as(johnUserID, false), entry.ID)
	assert.NoError(t, err)

	mine, err := f.svc.ListMyEntries(as(johnUserID, false), timeentry.TimeEntryFilter{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(1), mine.TotalCount)

	_, err = f.svc.ListEntries(as(johnUserID, false), timeentry.TimeEntryFilter{Page: 1, Limit: 20})
	assert.ErrorIs(t, err, access.ErrAdminRequired)
	all, err := f.svc.ListEntries(as(adminUserID, true), timeentry.TimeEntryFilter{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(2), all.TotalCount)

	assert.ErrorIs(t, f.svc.DeleteEntry(as(johnUserID, false), entry.ID), access.ErrAdminRequired)
	require.NoError(t, f.svc.DeleteEntry(as(adminUserID, true), entry.ID))
	assert.ErrorIs(t, f.svc.DeleteEntry(as(adminUserID, true), entry.ID), timeentry.ErrTimeEntryNotFound)
}

func TestMySummary(t *testing.T) {
	f := newFixture()
	completedEntry(t, f, johnUserID)

	summary, err := f.svc.MySummary(as(johnUserID, false), timeentry.SummaryRequest{})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(8).Equal(summary.TotalHours))
	assert.Equal(t, 1, summary.TotalDaysWorked)
}
