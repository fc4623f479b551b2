package schedule

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/pharmacy-shift-go/internal/domain/employee"
	"github.com/cmlabs-hris/pharmacy-shift-go/internal/domain/schedule"
	"github.com/cmlabs-hris/pharmacy-shift-go/internal/domain/shift"
	"github.com/cmlabs-hris/pharmacy-shift-go/internal/pkg/validator"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

type scheduleServiceImpl struct {
	assignmentRepo schedule.AssignmentRepository
	shiftService   shift.ShiftService
	directory      employee.Directory
	logger         *slog.Logger
}

func NewScheduleService(
	assignmentRepo schedule.AssignmentRepository,
	shiftService shift.ShiftService,
	directory employee.Directory,
	logger *slog.Logger,
) schedule.ScheduleService {
	return &scheduleServiceImpl{
		assignmentRepo: assignmentRepo,
		shiftService:   shiftService,
		directory:      directory,
		logger:         logger,
	}
}

// Assign implements schedule.ScheduleService.
func (s *scheduleServiceImpl) Assign(ctx context.Context, req schedule.CreateAssignmentRequest) (schedule.AssignmentResponse, error) {
	if err := req.Validate(); err != nil {
		return schedule.AssignmentResponse{}, err
	}

	emp, err := s.directory.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return schedule.AssignmentResponse{}, err
	}

	var leaveType *schedule.LeaveType
	if req.LeaveType != nil {
		lt := schedule.LeaveType(*req.LeaveType)
		leaveType = &lt
	}

	created, err := s.assignmentRepo.Create(ctx, schedule.Assignment{
		Employee:     schedule.RefFromID(emp.ID),
		EmployeeName: emp.Name,
		Date:         req.WorkDate,
		Shift:        shift.Shift(req.Shift),
		LeaveType:    leaveType,
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505": // unique_violation
				return schedule.AssignmentResponse{}, schedule.ErrAssignmentExists
			case "23503": // foreign_key_violation
				return schedule.AssignmentResponse{}, employee.ErrEmployeeNotFound
			}
		}
		return schedule.AssignmentResponse{}, fmt.Errorf("failed to create assignment: %w", err)
	}
	if created.EmployeeName == "" {
		created.EmployeeName = emp.Name
	}

	return toAssignmentResponse(created, s.responseTimes(ctx)), nil
}

// Unassign implements schedule.ScheduleService.
func (s *scheduleServiceImpl) Unassign(ctx context.Context, id string) error {
	if !validator.IsValidUUID(id) {
		return schedule.ErrAssignmentNotFound
	}
	if err := s.assignmentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.ErrAssignmentNotFound
		}
		return fmt.Errorf("failed to delete assignment: %w", err)
	}
	return nil
}

// SetLeaveType implements schedule.ScheduleService.
func (s *scheduleServiceImpl) SetLeaveType(ctx context.Context, req schedule.UpdateLeaveTypeRequest) (schedule.AssignmentResponse, error) {
	if err := req.Validate(); err != nil {
		return schedule.AssignmentResponse{}, err
	}

	var leaveType *schedule.LeaveType
	if req.LeaveType != nil {
		lt := schedule.LeaveType(*req.LeaveType)
		leaveType = &lt
	}

	updated, err := s.assignmentRepo.UpdateLeaveType(ctx, req.ID, leaveType)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.AssignmentResponse{}, schedule.ErrAssignmentNotFound
		}
		return schedule.AssignmentResponse{}, fmt.Errorf("failed to update leave type: %w", err)
	}

	return toAssignmentResponse(updated, s.responseTimes(ctx)), nil
}

// responseTimes returns the shift windows used to describe a row that is already written.
// A failed lookup falls back to the defaults so the caller still sees the saved state.
func (s *scheduleServiceImpl) responseTimes(ctx context.Context) shift.TimesMap {
	times, err := s.shiftService.GetTimes(ctx)
	if err != nil {
		s.logger.Warn("shift times unavailable, describing assignment with defaults", slog.String("error", err.Error()))
		return shift.DefaultTimes()
	}
	return times
}

// List implements schedule.ScheduleService.
func (s *scheduleServiceImpl) List(ctx context.Context, filter schedule.AssignmentFilter) ([]schedule.AssignmentResponse, error) {
	assignments, times, err := s.fetch(ctx, &filter)
	if err != nil {
		return nil, err
	}

	responses := make([]schedule.AssignmentResponse, 0, len(assignments))
	for _, a := range assignments {
		responses = append(responses, toAssignmentResponse(a, times))
	}
	return responses, nil
}

// Daily implements schedule.ScheduleService.
func (s *scheduleServiceImpl) Daily(ctx context.Context, filter schedule.AssignmentFilter) (schedule.DailyScheduleResponse, error) {
	assignments, times, err := s.fetch(ctx, &filter)
	if err != nil {
		return schedule.DailyScheduleResponse{}, err
	}

	agg := Aggregate(assignments, times, s.logger)
	s.fillNames(ctx, &agg)

	resp := schedule.DailyScheduleResponse{
		StartDate: filter.Start.Format(dateKeyLayout),
		EndDate:   filter.End.Format(dateKeyLayout),
		Days:      make([]schedule.DayScheduleResponse, 0, len(agg.Days)),
		Employees: make([]schedule.EmployeeHoursResponse, 0, len(agg.Employees)),
	}
	for _, day := range agg.Days {
		dr := schedule.DayScheduleResponse{
			Date:   day.Date.Format(dateKeyLayout),
			Shifts: make([]schedule.ShiftBucketResponse, 0, len(day.Shifts)),
		}
		for _, b := range day.Shifts {
			window := times.For(b.Shift)
			dr.Shifts = append(dr.Shifts, schedule.ShiftBucketResponse{
				Shift:     string(b.Shift),
				StartTime: window.Start,
				EndTime:   window.End,
				Hours:     b.Hours,
				Regular:   toEntryResponses(b.Regular),
				Overtime:  toEntryResponses(b.Overtime),
				Personal:  toEntryResponses(b.Personal),
				Sick:      toEntryResponses(b.Sick),
			})
		}
		resp.Days = append(resp.Days, dr)
	}
	for _, e := range agg.Employees {
		resp.Employees = append(resp.Employees, schedule.EmployeeHoursResponse{
			EmployeeID:      e.EmployeeID,
			EmployeeName:    e.EmployeeName,
			RegularHours:    e.Regular,
			OvertimeHours:   e.Overtime,
			PersonalLeave:   e.PersonalLeave,
			SickLeave:       e.SickLeave,
			SickOccurrences: e.SickOccurrences,
			TotalHours:      e.Total(),
		})
	}
	for _, sk := range agg.Skipped {
		resp.Skipped = append(resp.Skipped, schedule.SkippedRecordResponse{
			AssignmentID: sk.AssignmentID,
			Reason:       sk.Reason,
		})
	}
	return resp, nil
}

// fetch loads the assignments of the period and the effective shift windows concurrently.
func (s *scheduleServiceImpl) fetch(ctx context.Context, filter *schedule.AssignmentFilter) ([]schedule.Assignment, shift.TimesMap, error) {
	if err := filter.Validate(); err != nil {
		return nil, nil, err
	}

	var (
		assignments []schedule.Assignment
		times       shift.TimesMap
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		assignments, err = s.assignmentRepo.List(gctx, *filter)
		if err != nil {
			return fmt.Errorf("failed to list assignments: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		times, err = s.shiftService.GetTimes(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return assignments, times, nil
}

// fillNames labels employees whose name did not come with the assignment rows.
// Directory failures leave the ids unlabeled.
func (s *scheduleServiceImpl) fillNames(ctx context.Context, agg *schedule.Aggregation) {
	var missing []string
	for _, e := range agg.Employees {
		if e.EmployeeName == "" {
			missing = append(missing, e.EmployeeID)
		}
	}
	if len(missing) == 0 {
		return
	}

	found, err := s.directory.Lookup(ctx, missing)
	if err != nil {
		s.logger.Warn("employee directory lookup failed", slog.String("error", err.Error()))
		return
	}
	for i := range agg.Employees {
		if emp, ok := found[agg.Employees[i].EmployeeID]; ok && agg.Employees[i].EmployeeName == "" {
			agg.Employees[i].EmployeeName = emp.Name
		}
	}
	for d := range agg.Days {
		for sh := range agg.Days[d].Shifts {
			b := &agg.Days[d].Shifts[sh]
			for _, entries := range [][]schedule.BucketEntry{b.Regular, b.Overtime, b.Personal, b.Sick} {
				for i := range entries {
					if emp, ok := found[entries[i].EmployeeID]; ok && entries[i].EmployeeName == "" {
						entries[i].EmployeeName = emp.Name
					}
				}
			}
		}
	}
}

func toAssignmentResponse(a schedule.Assignment, times shift.TimesMap) schedule.AssignmentResponse {
	employeeID, _ := schedule.NormalizeEmployeeID(a.Employee)
	hours, err := times.Hours(a.Shift)
	if err != nil {
		hours = decimal.Zero
	}

	var leaveType *string
	if a.LeaveType != nil {
		lt := string(*a.LeaveType)
		leaveType = &lt
	}

	return schedule.AssignmentResponse{
		ID:           a.ID,
		EmployeeID:   employeeID,
		EmployeeName: a.EmployeeName,
		Date:         a.Date.Format(dateKeyLayout),
		Shift:        string(a.Shift),
		LeaveType:    leaveType,
		Hours:        hours,
		CreatedAt:    a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    a.UpdatedAt.Format(time.RFC3339),
	}
}

func toEntryResponses(entries []schedule.BucketEntry) []schedule.BucketEntryResponse {
	out := make([]schedule.BucketEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, schedule.BucketEntryResponse{
			AssignmentID: e.AssignmentID,
			EmployeeID:   e.EmployeeID,
			EmployeeName: e.EmployeeName,
			Hours:        e.Hours,
		})
	}
	return out
}
