package report

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/pharmacy-shift-go/internal/domain/employee"
	"github.com/cmlabs-hris/pharmacy-shift-go/internal/domain/report"
	"github.com/cmlabs-hris/pharmacy-shift-go/internal/domain/schedule"
	"github.com/cmlabs-hris/pharmacy-shift-go/internal/domain/shift"
	"github.com/cmlabs-hris/pharmacy-shift-go/internal/pkg/storage"
	scheduleservice "github.com/cmlabs-hris/pharmacy-shift-go/internal/service/schedule"
	"golang.org/x/sync/errgroup"
)

const (
	dateLayout   = "2006-01-02"
	xlsxMimeType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type ReportServiceImpl struct {
	assignmentRepo schedule.AssignmentRepository
	shiftService   shift.ShiftService
	directory      employee.Directory
	fileStorage    storage.FileStorage
	logger         *slog.Logger
	location       *time.Location
	now            func() time.Time
}

func NewReportService(
	assignmentRepo schedule.AssignmentRepository,
	shiftService shift.ShiftService,
	directory employee.Directory,
	fileStorage storage.FileStorage,
	logger *slog.Logger,
	location *time.Location,
) report.ReportService {
	if location == nil {
		location = time.Local
	}
	return &ReportServiceImpl{
		assignmentRepo: assignmentRepo,
		shiftService:   shiftService,
		directory:      directory,
		fileStorage:    fileStorage,
		logger:         logger,
		location:       location,
		now:            time.Now,
	}
}

// MonthlyHours implements report.ReportService.
func (s *ReportServiceImpl) MonthlyHours(ctx context.Context, req report.MonthlyHoursRequest) (report.MonthlyHoursReport, error) {
	if err := req.Validate(); err != nil {
		return report.MonthlyHoursReport{}, err
	}
	start, end := req.Period(s.location)

	var (
		assignments []schedule.Assignment
		times       shift.TimesMap
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		assignments, err = s.assignmentRepo.List(gctx, schedule.AssignmentFilter{Start: start, End: end})
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
		return report.MonthlyHoursReport{}, err
	}

	agg := scheduleservice.Aggregate(assignments, times, s.logger)
	rows := FoldMonthlyHours(agg.Days)
	s.fillNames(ctx, rows)

	return report.MonthlyHoursReport{
		PeriodMonth: req.Month,
		PeriodYear:  req.Year,
		PeriodStart: start.Format(dateLayout),
		PeriodEnd:   end.Format(dateLayout),
		GeneratedAt: s.now().In(s.location).Format(time.RFC3339),
		Rows:        rows,
	}, nil
}

// ExportMonthlyHours implements report.ReportService.
func (s *ReportServiceImpl) ExportMonthlyHours(ctx context.Context, req report.MonthlyHoursRequest) (report.ExportFile, error) {
	r, err := s.MonthlyHours(ctx, req)
	if err != nil {
		return report.ExportFile{}, err
	}

	content, err := BuildMonthlyHoursWorkbook(r)
	if err != nil {
		return report.ExportFile{}, err
	}
	return report.ExportFile{
		FileName:    workbookName(req),
		ContentType: xlsxMimeType,
		Content:     content,
	}, nil
}

// ArchiveMonthlyHours implements report.ReportService.
func (s *ReportServiceImpl) ArchiveMonthlyHours(ctx context.Context, req report.MonthlyHoursRequest) (string, bool, error) {
	if err := req.Validate(); err != nil {
		return "", false, err
	}
	path := "reports/" + workbookName(req)

	exists, err := s.fileStorage.Exists(ctx, path)
	if err != nil {
		return "", false, fmt.Errorf("failed to check archived report: %w", err)
	}
	if exists {
		return path, false, nil
	}

	file, err := s.ExportMonthlyHours(ctx, req)
	if err != nil {
		return "", false, err
	}
	if _, err := s.fileStorage.Save(ctx, bytes.NewReader(file.Content), path); err != nil {
		return "", false, fmt.Errorf("failed to archive report: %w", err)
	}
	return path, true, nil
}

func (s *ReportServiceImpl) fillNames(ctx context.Context, rows []report.EmployeeMonthlyHours) {
	var missing []string
	for _, r := range rows {
		if r.Name == "" {
			missing = append(missing, r.EmployeeID)
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
	for i := range rows {
		if emp, ok := found[rows[i].EmployeeID]; ok && rows[i].Name == "" {
			rows[i].Name = emp.Name
		}
	}
}

func workbookName(req report.MonthlyHoursRequest) string {
	return fmt.Sprintf("monthly-hours-%04d-%02d.xlsx", req.Year, req.Month)
}
