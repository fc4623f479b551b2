package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/pharmacy-shift-go/internal/domain/employee"
	"github.com/cmlabs-hris/pharmacy-shift-go/internal/domain/schedule"
	"github.com/cmlabs-hris/pharmacy-shift-go/internal/domain/shift"
	"github.com/cmlabs-hris/pharmacy-shift-go/internal/pkg/validator"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	empSari = "0199a1b2-0000-7000-8000-000000000001"
	empBudi = "0199a1b2-0000-7000-8000-000000000002"
	asgID   = "0199a1b2-0000-7000-8000-0000000000a1"
)

type fakeAssignmentRepo struct {
	items     []schedule.Assignment
	createErr error
	created   []schedule.Assignment
}

func (f *fakeAssignmentRepo) Create(ctx context.Context, a schedule.Assignment) (schedule.Assignment, error) {
	if f.createErr != nil {
		return schedule.Assignment{}, f.createErr
	}
	a.ID = asgID
	f.created = append(f.created, a)
	return a, nil
}

func (f *fakeAssignmentRepo) GetByID(ctx context.Context, id string) (schedule.Assignment, error) {
	for _, a := range f.items {
		if a.ID == id {
			return a, nil
		}
	}
	return schedule.Assignment{}, pgx.ErrNoRows
}

func (f *fakeAssignmentRepo) List(ctx context.Context, filter schedule.AssignmentFilter) ([]schedule.Assignment, error) {
	return f.items, nil
}

func (f *fakeAssignmentRepo) ListOvertime(ctx context.Context, start, end time.Time) ([]schedule.Assignment, error) {
	var out []schedule.Assignment
	for _, a := range f.items {
		if a.IsOvertime() {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAssignmentRepo) UpdateLeaveType(ctx context.Context, id string, lt *schedule.LeaveType) (schedule.Assignment, error) {
	for i := range f.items {
		if f.items[i].ID == id {
			f.items[i].LeaveType = lt
			return f.items[i], nil
		}
	}
	return schedule.Assignment{}, pgx.ErrNoRows
}

func (f *fakeAssignmentRepo) Delete(ctx context.Context, id string) error {
	for i := range f.items {
		if f.items[i].ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

type fakeShiftService struct {
	shift.ShiftService
	times shift.TimesMap
	err   error
}

func (f *fakeShiftService) GetTimes(ctx context.Context) (shift.TimesMap, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.times == nil {
		return shift.DefaultTimes(), nil
	}
	return f.times, nil
}

type fakeDirectory struct {
	employees map[string]employee.Employee
	lookups   int
}

func (f *fakeDirectory) Lookup(ctx context.Context, ids []string) (map[string]employee.Employee, error) {
	f.lookups++
	out := make(map[string]employee.Employee)
	for _, id := range ids {
		if e, ok := f.employees[id]; ok {
			out[id] = e
		}
	}
	return out, nil
}

func (f *fakeDirectory) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	if e, ok := f.employees[id]; ok {
		return e, nil
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func newTestService(repo *fakeAssignmentRepo) (schedule.ScheduleService, *fakeDirectory) {
	dir := &fakeDirectory{employees: map[string]employee.Employee{
		empSari: {ID: empSari, Name: "Sari", Position: "Pharmacist"},
		empBudi: {ID: empBudi, Name: "Budi", Position: "Cashier"},
	}}
	return NewScheduleService(repo, &fakeShiftService{}, dir, discardLogger), dir
}

func TestScheduleService_Assign(t *testing.T) {
	repo := &fakeAssignmentRepo{}
	svc, _ := newTestService(repo)
	overtime := "overtime"

	resp, err := svc.Assign(context.Background(), schedule.CreateAssignmentRequest{
		EmployeeID: empSari,
		Date:       "2025-03-04",
		Shift:      "evening",
		LeaveType:  &overtime,
	})

	require.NoError(t, err)
	assert.Equal(t, asgID, resp.ID)
	assert.Equal(t, empSari, resp.EmployeeID)
	assert.Equal(t, "Sari", resp.EmployeeName)
	assert.Equal(t, "2025-03-04", resp.Date)
	assert.Equal(t, "1.5", resp.Hours.String())
	require.NotNil(t, resp.LeaveType)
	assert.Equal(t, "overtime", *resp.LeaveType)
	require.Len(t, repo.created, 1)
	assert.True(t, repo.created[0].IsOvertime())
}

func TestScheduleService_Assign_Errors(t *testing.T) {
	t.Run("duplicate", func(t *testing.T) {
		svc, _ := newTestService(&fakeAssignmentRepo{createErr: &pgconn.PgError{Code: "23505"}})
		_, err := svc.Assign(context.Background(), schedule.CreateAssignmentRequest{
			EmployeeID: empSari, Date: "2025-03-04", Shift: "morning",
		})
		assert.ErrorIs(t, err, schedule.ErrAssignmentExists)
	})

	t.Run("unknown employee", func(t *testing.T) {
		svc, _ := newTestService(&fakeAssignmentRepo{})
		_, err := svc.Assign(context.Background(), schedule.CreateAssignmentRequest{
			EmployeeID: "0199a1b2-0000-7000-8000-0000000000ff", Date: "2025-03-04", Shift: "morning",
		})
		assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	})

	t.Run("invalid request", func(t *testing.T) {
		svc, _ := newTestService(&fakeAssignmentRepo{})
		bad := "vacation"
		_, err := svc.Assign(context.Background(), schedule.CreateAssignmentRequest{
			EmployeeID: "nope", Date: "04-03-2025", Shift: "night", LeaveType: &bad,
		})
		var verrs validator.ValidationErrors
		require.True(t, errors.As(err, &verrs))
		m := verrs.ToMap()
		assert.Contains(t, m, "employee_id")
		assert.Contains(t, m, "date")
		assert.Contains(t, m, "shift")
		assert.Contains(t, m, "leave_type")
	})
}

func TestScheduleService_WritesSucceedWhenShiftTimesUnavailable(t *testing.T) {
	repo := &fakeAssignmentRepo{items: []schedule.Assignment{
		assignment("0199a1b2-0000-7000-8000-0000000000a2", empBudi, day(3), shift.Morning, nil),
	}}
	dir := &fakeDirectory{employees: map[string]employee.Employee{
		empSari: {ID: empSari, Name: "Sari"},
	}}
	svc := NewScheduleService(repo, &fakeShiftService{err: shift.ErrShiftTimesUnavailable}, dir, discardLogger)

	resp, err := svc.Assign(context.Background(), schedule.CreateAssignmentRequest{
		EmployeeID: empSari, Date: "2025-03-04", Shift: "evening",
	})
	require.NoError(t, err)
	require.Len(t, repo.created, 1)
	assert.Equal(t, asgID, resp.ID)
	assert.Equal(t, "1.5", resp.Hours.String())

	sick := "sick"
	resp, err = svc.SetLeaveType(context.Background(), schedule.UpdateLeaveTypeRequest{
		ID: "0199a1b2-0000-7000-8000-0000000000a2", LeaveType: &sick,
	})
	require.NoError(t, err)
	require.NotNil(t, resp.LeaveType)
	assert.Equal(t, "sick", *resp.LeaveType)
	assert.Equal(t, "3.5", resp.Hours.String())
	require.NotNil(t, repo.items[0].LeaveType)
	assert.Equal(t, schedule.LeaveSick, *repo.items[0].LeaveType)
}

func TestScheduleService_SetLeaveTypeAndUnassign(t *testing.T) {
	repo := &fakeAssignmentRepo{items: []schedule.Assignment{
		assignment(asgID, empSari, day(3), shift.Morning, nil),
	}}
	svc, _ := newTestService(repo)
	sick := "sick"

	resp, err := svc.SetLeaveType(context.Background(), schedule.UpdateLeaveTypeRequest{ID: asgID, LeaveType: &sick})
	require.NoError(t, err)
	require.NotNil(t, resp.LeaveType)
	assert.Equal(t, "sick", *resp.LeaveType)

	resp, err = svc.SetLeaveType(context.Background(), schedule.UpdateLeaveTypeRequest{ID: asgID})
	require.NoError(t, err)
	assert.Nil(t, resp.LeaveType)

	require.NoError(t, svc.Unassign(context.Background(), asgID))
	assert.ErrorIs(t, svc.Unassign(context.Background(), asgID), schedule.ErrAssignmentNotFound)
	assert.ErrorIs(t, svc.Unassign(context.Background(), "not-a-uuid"), schedule.ErrAssignmentNotFound)

	_, err = svc.SetLeaveType(context.Background(), schedule.UpdateLeaveTypeRequest{ID: asgID, LeaveType: &sick})
	assert.ErrorIs(t, err, schedule.ErrAssignmentNotFound)
}

func TestScheduleService_Daily(t *testing.T) {
	unnamed := assignment("a3", empBudi, day(4), shift.Afternoon, leave(schedule.LeavePersonal))
	unnamed.EmployeeName = ""
	repo := &fakeAssignmentRepo{items: []schedule.Assignment{
		assignment("a1", empSari, day(3), shift.Morning, nil),
		assignment("a2", empSari, day(3), shift.Morning, leave(schedule.LeaveSick)),
		unnamed,
	}}
	svc, dir := newTestService(repo)

	resp, err := svc.Daily(context.Background(), schedule.AssignmentFilter{StartDate: "2025-03-01", EndDate: "2025-03-31"})
	require.NoError(t, err)

	assert.Equal(t, "2025-03-01", resp.StartDate)
	require.Len(t, resp.Days, 2)
	assert.Equal(t, "2025-03-03", resp.Days[0].Date)
	morning := resp.Days[0].Shifts[0]
	assert.Equal(t, "08:30", morning.StartTime)
	assert.Equal(t, "12:00", morning.EndTime)
	assert.Len(t, morning.Regular, 1)
	assert.Len(t, morning.Sick, 1)

	require.Len(t, resp.Employees, 2)
	assert.Equal(t, "7", resp.Employees[0].TotalHours.String())
	assert.Equal(t, 1, resp.Employees[0].SickOccurrences)
	assert.Equal(t, "Budi", resp.Employees[1].EmployeeName)
	assert.Equal(t, "Budi", resp.Days[1].Shifts[1].Personal[0].EmployeeName)
	assert.Equal(t, 1, dir.lookups)
}

func TestScheduleService_Daily_InvalidFilter(t *testing.T) {
	svc, _ := newTestService(&fakeAssignmentRepo{})

	_, err := svc.Daily(context.Background(), schedule.AssignmentFilter{StartDate: "2025-03-31", EndDate: "2025-03-01"})
	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Contains(t, verrs.ToMap(), "end_date")
}

func TestScheduleService_List_ShiftTimesUnavailable(t *testing.T) {
	svc := NewScheduleService(&fakeAssignmentRepo{}, &fakeShiftService{err: shift.ErrShiftTimesUnavailable}, &fakeDirectory{}, discardLogger)

	_, err := svc.List(context.Background(), schedule.AssignmentFilter{StartDate: "2025-03-01", EndDate: "2025-03-31"})
	assert.ErrorIs(t, err, shift.ErrShiftTimesUnavailable)
}
