package http

import (
	"net/http"

	"github.com/cmlabs-hris/pharmacy-shift-go/internal/domain/report"
	"github.com/cmlabs-hris/pharmacy-shift-go/internal/handler/http/response"
)

type ReportHandler interface {
	// Monthly hours per employee
	GetMonthlyHoursReport(w http.ResponseWriter, r *http.Request)
	ExportMonthlyHoursReport(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

// GetMonthlyHoursReport handles GET /reports/monthly-hours
func (h *reportHandlerImpl) GetMonthlyHoursReport(w http.ResponseWriter, r *http.Request) {
	year, month, ok := parseYearMonth(w, r)
	if !ok {
		return
	}

	result, err := h.reportService.MonthlyHours(r.Context(), report.MonthlyHoursRequest{Year: year, Month: month})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ExportMonthlyHoursReport handles GET /reports/monthly-hours/export
func (h *reportHandlerImpl) ExportMonthlyHoursReport(w http.ResponseWriter, r *http.Request) {
	year, month, ok := parseYearMonth(w, r)
	if !ok {
		return
	}

	file, err := h.reportService.ExportMonthlyHours(r.Context(), report.MonthlyHoursRequest{Year: year, Month: month})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.File(w, file.FileName, file.ContentType, file.Content)
}
