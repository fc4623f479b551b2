package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/pharmacy-shift-go/internal/domain/report"
)

const monthlyHoursExportJob = "monthly-hours-export"

// ReportJobs archives finished months of the hours report.
type ReportJobs struct {
	reportService report.ReportService
	logger        *slog.Logger
	location      *time.Location
	now           func() time.Time
}

func NewReportJobs(reportService report.ReportService, logger *slog.Logger, location *time.Location) *ReportJobs {
	if location == nil {
		location = time.Local
	}
	return &ReportJobs{
		reportService: reportService,
		logger:        logger,
		location:      location,
		now:           time.Now,
	}
}

// RegisterJobs registers the export job; interval is how often the previous month is checked.
func (j *ReportJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	scheduler.AddJob(monthlyHoursExportJob, interval, j.ExportPreviousMonth)
}

// ExportPreviousMonth writes last month's workbook to storage unless it already exists.
func (j *ReportJobs) ExportPreviousMonth(ctx context.Context) error {
	now := j.now().In(j.location)
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, j.location)
	prev := firstOfMonth.AddDate(0, -1, 0)

	req := report.MonthlyHoursRequest{Year: prev.Year(), Month: int(prev.Month())}
	path, created, err := j.reportService.ArchiveMonthlyHours(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to archive monthly hours for %04d-%02d: %w", req.Year, req.Month, err)
	}
	if created {
		j.logger.Info("monthly hours report archived", slog.String("path", path))
	}
	return nil
}
