package report

import "context"

type ReportService interface {
	MonthlyHours(ctx context.Context, req MonthlyHoursRequest) (MonthlyHoursReport, error)
	ExportMonthlyHours(ctx context.Context, req MonthlyHoursRequest) (ExportFile, error)

	// ArchiveMonthlyHours stores the month's workbook unless it already exists and returns
	// its storage path and whether it was written by this call.
	ArchiveMonthlyHours(ctx context.Context, req MonthlyHoursRequest) (path string, created bool, err error)
}
