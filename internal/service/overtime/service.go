package overtime

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/pharmacy-shift-go/internal/domain/employee"
	"github.com/cmlabs-hris/pharmacy-shift-go/internal/domain/overtime"
	"github.com/cmlabs-hris/pharmacy-shift-go/internal/domain/schedule"
	"github.com/cmlabs-hris/pharmacy-shift-go/internal/domain/shift"
	"github.com/cmlabs-hris/pharmacy-shift-go/internal/domain/user"
	"github.com/cmlabs-hris/pharmacy-shift-go/internal/pkg/database"
	"github.com/cmlabs-hris/pharmacy-shift-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/pharmacy-shift-go/internal/pkg/validator"
	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/errgroup"
)

const dateLayout = "2006-01-02"

type overtimeServiceImpl struct {
	txRunner       database.TxRunner
	recordRepo     overtime.RecordRepository
	totalsRepo     overtime.TotalsRepository
	assignmentRepo schedule.AssignmentRepository
	shiftService   shift.ShiftService
	directory      employee.Directory
	logger         *slog.Logger
	location       *time.Location
	now            func() time.Time
}

func NewOvertimeService(
	txRunner database.TxRunner,
	recordRepo overtime.RecordRepository,
	totalsRepo overtime.TotalsRepository,
	assignmentRepo schedule.AssignmentRepository,
	shiftService shift.ShiftService,
	directory employee.Directory,
	logger *slog.Logger,
	location *time.Location,
) overtime.OvertimeService {
	if location == nil {
		location = time.Local
	}
	return &overtimeServiceImpl{
		txRunner:       txRunner,
		recordRepo:     recordRepo,
		totalsRepo:     totalsRepo,
		assignmentRepo: assignmentRepo,
		shiftService:   shiftService,
		directory:      directory,
		logger:         logger,
		location:       location,
		now:            time.Now,
	}
}

// Estimate implements overtime.OvertimeService.
func (s *overtimeServiceImpl) Estimate(ctx context.Context, at string) (overtime.Estimate, error) {
	if at == "" {
		at = s.now().In(s.location).Format("15:04")
	}
	if _, err := shift.ParseClock(at); err != nil {
		return overtime.Estimate{}, err
	}

	times, err := s.shiftService.GetTimes(ctx)
	if err != nil {
		s.logger.Warn("shift times unavailable, returning fallback estimate", slog.String("error", err.Error()))
		return FallbackEstimate(at), nil
	}
	return CalculateOvertimeHours(at, times)
}

// Create implements overtime.OvertimeService.
func (s *overtimeServiceImpl) Create(ctx context.Context, req overtime.CreateRecordRequest) (overtime.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return overtime.RecordResponse{}, err
	}

	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return overtime.RecordResponse{}, err
	}
	if req.EmployeeID == "" {
		if claims.EmployeeID == "" {
			return overtime.RecordResponse{}, overtime.ErrEmployeeIDRequired
		}
		req.EmployeeID = claims.EmployeeID
	}
	if err := checkOwnership(claims, req.EmployeeID); err != nil {
		return overtime.RecordResponse{}, err
	}

	emp, err := s.directory.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return overtime.RecordResponse{}, err
	}

	created, err := s.recordRepo.Create(ctx, overtime.Record{
		EmployeeID:  req.EmployeeID,
		Date:        req.WorkDate,
		Hours:       req.Hours,
		Description: req.Description,
		Status:      overtime.StatusPending,
		Source:      overtime.Source(req.Source),
	})
	if err != nil {
		return overtime.RecordResponse{}, fmt.Errorf("failed to create overtime record: %w", err)
	}
	created.EmployeeName = emp.Name
	return toRecordResponse(created), nil
}

// Update implements overtime.OvertimeService.
func (s *overtimeServiceImpl) Update(ctx context.Context, req overtime.UpdateRecordRequest) (overtime.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return overtime.RecordResponse{}, err
	}

	var updated overtime.Record
	err := s.txRunner.RunInTx(ctx, func(txCtx context.Context) error {
		record, err := s.pendingRecord(txCtx, req.ID)
		if err != nil {
			return err
		}

		if req.WorkDate != nil {
			record.Date = *req.WorkDate
		}
		if req.Hours != nil {
			record.Hours = *req.Hours
		}
		if req.Description != nil {
			record.Description = *req.Description
		}

		updated, err = s.recordRepo.Update(txCtx, record)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return overtime.ErrRecordNotPending
			}
			return fmt.Errorf("failed to update overtime record: %w", err)
		}
		return nil
	})
	if err != nil {
		return overtime.RecordResponse{}, err
	}
	return toRecordResponse(updated), nil
}

// Approve implements overtime.OvertimeService.
func (s *overtimeServiceImpl) Approve(ctx context.Context, id string) (overtime.RecordResponse, error) {
	return s.review(ctx, id, overtime.StatusApproved)
}

// Reject implements overtime.OvertimeService.
func (s *overtimeServiceImpl) Reject(ctx context.Context, id string) (overtime.RecordResponse, error) {
	return s.review(ctx, id, overtime.StatusRejected)
}

func (s *overtimeServiceImpl) review(ctx context.Context, id string, status overtime.Status) (overtime.RecordResponse, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return overtime.RecordResponse{}, err
	}
	if !user.HasPermission(claims.Role, user.PermissionOvertimeApprove) {
		return overtime.RecordResponse{}, user.ErrInsufficientPermissions
	}

	var reviewed overtime.Record
	err = s.txRunner.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.pendingRecord(txCtx, id); err != nil {
			return err
		}

		var err error
		reviewed, err = s.recordRepo.UpdateStatus(txCtx, id, status, claims.UserID, s.now())
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				// reviewed concurrently
				return overtime.ErrRecordNotPending
			}
			return fmt.Errorf("failed to review overtime record: %w", err)
		}
		return nil
	})
	if err != nil {
		return overtime.RecordResponse{}, err
	}

	s.logger.Info("overtime record reviewed",
		slog.String("record_id", id),
		slog.String("status", string(status)),
		slog.String("reviewed_by", claims.UserID),
	)
	return toRecordResponse(reviewed), nil
}

// Delete implements overtime.OvertimeService.
func (s *overtimeServiceImpl) Delete(ctx context.Context, id string) error {
	return s.txRunner.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.pendingRecord(txCtx, id); err != nil {
			return err
		}
		if err := s.recordRepo.Delete(txCtx, id); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return overtime.ErrRecordNotPending
			}
			return fmt.Errorf("failed to delete overtime record: %w", err)
		}
		return nil
	})
}

// List implements overtime.OvertimeService.
func (s *overtimeServiceImpl) List(ctx context.Context, filter overtime.RecordFilter) ([]overtime.RecordResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	employeeID, err := scopeEmployee(ctx, filter.EmployeeID)
	if err != nil {
		return nil, err
	}
	filter.EmployeeID = employeeID

	records, err := s.recordRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list overtime records: %w", err)
	}

	responses := make([]overtime.RecordResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, toRecordResponse(r))
	}
	return responses, nil
}

// Summary implements overtime.OvertimeService. The three record streams are fetched
// concurrently, merged, then reconciled against the database totals for the month.
func (s *overtimeServiceImpl) Summary(ctx context.Context, req overtime.SummaryRequest) (overtime.SummaryResponse, error) {
	if err := req.Validate(); err != nil {
		return overtime.SummaryResponse{}, err
	}
	employeeID, err := scopeEmployee(ctx, "")
	if err != nil {
		return overtime.SummaryResponse{}, err
	}

	start := time.Date(req.Year, time.Month(req.Month), 1, 0, 0, 0, 0, s.location)
	end := start.AddDate(0, 1, -1)

	var (
		records     []overtime.Record
		assignments []schedule.Assignment
		totals      overtime.Totals
		times       shift.TimesMap
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		records, err = s.recordRepo.List(gctx, overtime.RecordFilter{Start: start, End: end, EmployeeID: employeeID})
		if err != nil {
			return fmt.Errorf("failed to list overtime records: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		assignments, err = s.assignmentRepo.ListOvertime(gctx, start, end)
		if err != nil {
			return fmt.Errorf("failed to list overtime assignments: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		totals, err = s.totalsRepo.Totals(gctx, start, end)
		if err != nil {
			return fmt.Errorf("failed to compute overtime totals: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		times = s.timesOrDefaults(gctx)
		return nil
	})
	if err := g.Wait(); err != nil {
		return overtime.SummaryResponse{}, err
	}

	result := MergeOvertime(overtime.MergeInput{
		Records:         records,
		ScheduleRecords: assignments,
		Times:           times,
	}, s.logger)
	result = ReconcileAll(result, totals)

	if employeeID != "" {
		var own []overtime.EmployeeGroup
		for _, grp := range result.Groups {
			if grp.EmployeeID == employeeID {
				own = append(own, grp)
			}
		}
		result.Groups = own
	}

	resp := s.toSummaryResponse(ctx, result, times)
	resp.PeriodStart = start.Format(dateLayout)
	resp.PeriodEnd = end.Format(dateLayout)
	return resp, nil
}

// Merge implements overtime.OvertimeService.
func (s *overtimeServiceImpl) Merge(ctx context.Context, req overtime.MergeRequest) (overtime.SummaryResponse, error) {
	if err := req.Validate(); err != nil {
		return overtime.SummaryResponse{}, err
	}

	input := overtime.MergeInput{Times: s.timesOrDefaults(ctx)}
	for _, r := range req.Records {
		date, _ := validator.IsValidDate(r.Date)
		status := overtime.Status(r.Status)
		if status == "" {
			status = overtime.StatusPending
		}
		input.Records = append(input.Records, overtime.Record{
			ID:          r.ID,
			EmployeeID:  r.EmployeeID,
			Date:        date,
			Hours:       r.Hours,
			Description: r.Description,
			Status:      status,
			Source:      overtime.SourceManual,
		})
	}
	for _, r := range req.ScheduleRecords {
		date, _ := validator.IsValidDate(r.Date)
		var leaveType *schedule.LeaveType
		if r.LeaveType != nil {
			lt := schedule.LeaveType(*r.LeaveType)
			leaveType = &lt
		}
		input.ScheduleRecords = append(input.ScheduleRecords, schedule.Assignment{
			ID:        r.ID,
			Employee:  r.Employee,
			Date:      date,
			Shift:     shift.Shift(r.Shift),
			LeaveType: leaveType,
		})
	}

	result := ReconcileAll(MergeOvertime(input, s.logger), overtime.Totals(req.Stats))
	return s.toSummaryResponse(ctx, result, input.Times), nil
}

// timesOrDefaults degrades to the built-in windows when configuration cannot be read, so a
// merge never blocks on missing configuration.
func (s *overtimeServiceImpl) timesOrDefaults(ctx context.Context) shift.TimesMap {
	times, err := s.shiftService.GetTimes(ctx)
	if err != nil {
		s.logger.Warn("shift times unavailable, using defaults", slog.String("error", err.Error()))
		return shift.DefaultTimes()
	}
	return times
}

// pendingRecord loads a record the caller may modify and ensures it is still pending.
func (s *overtimeServiceImpl) pendingRecord(ctx context.Context, id string) (overtime.Record, error) {
	if !validator.IsValidUUID(id) {
		return overtime.Record{}, overtime.ErrRecordNotFound
	}
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return overtime.Record{}, err
	}

	record, err := s.recordRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return overtime.Record{}, overtime.ErrRecordNotFound
		}
		return overtime.Record{}, fmt.Errorf("failed to get overtime record: %w", err)
	}
	if err := checkOwnership(claims, record.EmployeeID); err != nil {
		return overtime.Record{}, err
	}
	if !record.IsPending() {
		return overtime.Record{}, overtime.ErrRecordNotPending
	}
	return record, nil
}

func (s *overtimeServiceImpl) toSummaryResponse(ctx context.Context, result overtime.MergeResult, times shift.TimesMap) overtime.SummaryResponse {
	ids := make([]string, 0, len(result.Groups))
	for _, g := range result.Groups {
		ids = append(ids, g.EmployeeID)
	}
	var directory map[string]employee.Employee
	if len(ids) > 0 {
		found, err := s.directory.Lookup(ctx, ids)
		if err != nil {
			s.logger.Warn("employee directory lookup failed", slog.String("error", err.Error()))
		}
		directory = found
	}

	resp := overtime.SummaryResponse{
		Employees: make([]overtime.EmployeeGroupResponse, 0, len(result.Groups)),
	}
	for _, g := range result.Groups {
		gr := overtime.EmployeeGroupResponse{
			EmployeeID:       g.EmployeeID,
			EmployeeName:     g.EmployeeName,
			IndependentHours: g.IndependentHours,
			ScheduleHours:    g.ScheduleHours,
			TotalHours:       g.TotalHours,
			Reconciled:       g.Reconciled,
			Records:          make([]overtime.RecordResponse, 0, len(g.Records)),
			ScheduleRecords:  make([]overtime.ScheduleRecordResponse, 0, len(g.ScheduleRecords)),
			Entries:          make([]overtime.EntryResponse, 0, len(g.Entries)),
		}
		if !g.LatestDate.IsZero() {
			gr.LatestDate = g.LatestDate.Format(dateLayout)
		}
		if emp, ok := directory[g.EmployeeID]; ok {
			if gr.EmployeeName == "" {
				gr.EmployeeName = emp.Name
			}
			gr.Position = emp.Position
		}
		for _, r := range g.Records {
			gr.Records = append(gr.Records, toRecordResponse(r))
		}
		for _, a := range g.ScheduleRecords {
			hours, _ := times.Hours(a.Shift)
			gr.ScheduleRecords = append(gr.ScheduleRecords, overtime.ScheduleRecordResponse{
				AssignmentID: a.ID,
				Date:         a.Date.Format(dateLayout),
				Shift:        string(a.Shift),
				Hours:        hours,
			})
		}
		for _, e := range g.Entries {
			gr.Entries = append(gr.Entries, overtime.EntryResponse{
				ID:          e.ID,
				Source:      string(e.Source),
				Date:        e.Date.Format(dateLayout),
				Hours:       e.Hours,
				Status:      string(e.Status),
				Description: e.Description,
				Shift:       string(e.Shift),
			})
		}
		resp.Employees = append(resp.Employees, gr)
	}
	for _, sk := range result.Skipped {
		resp.Skipped = append(resp.Skipped, overtime.SkippedRecordResponse{
			AssignmentID: sk.AssignmentID,
			Reason:       sk.Reason,
		})
	}
	return resp
}

// scopeEmployee returns the employee a listing must be restricted to. Callers allowed to
// see everyone get requested back unchanged.
func scopeEmployee(ctx context.Context, requested string) (string, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return "", err
	}
	if user.HasPermission(claims.Role, user.PermissionOvertimeViewAll) {
		return requested, nil
	}
	if claims.EmployeeID == "" {
		return "", user.ErrEmployeeLinkRequired
	}
	if requested != "" && requested != claims.EmployeeID {
		return "", overtime.ErrForbiddenEmployee
	}
	return claims.EmployeeID, nil
}

func checkOwnership(claims jwt.Claims, employeeID string) error {
	if user.HasPermission(claims.Role, user.PermissionOvertimeViewAll) {
		return nil
	}
	if claims.EmployeeID == "" || claims.EmployeeID != employeeID {
		return overtime.ErrForbiddenEmployee
	}
	return nil
}

func toRecordResponse(r overtime.Record) overtime.RecordResponse {
	resp := overtime.RecordResponse{
		ID:           r.ID,
		EmployeeID:   r.EmployeeID,
		EmployeeName: r.EmployeeName,
		Date:         r.Date.Format(dateLayout),
		Hours:        r.Hours,
		Description:  r.Description,
		Status:       string(r.Status),
		Source:       string(r.Source),
		ReviewedBy:   r.ReviewedBy,
	}
	if r.ReviewedAt != nil {
		at := r.ReviewedAt.Format(time.RFC3339)
		resp.ReviewedAt = &at
	}
	if !r.CreatedAt.IsZero() {
		resp.CreatedAt = r.CreatedAt.Format(time.RFC3339)
		resp.UpdatedAt = r.UpdatedAt.Format(time.RFC3339)
	}
	return resp
}
