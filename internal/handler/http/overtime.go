package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/pharmacy-shift-go/internal/domain/overtime"
	"github.com/cmlabs-hris/pharmacy-shift-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type OvertimeHandler interface {
	Estimate(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Summary(w http.ResponseWriter, r *http.Request)
	Merge(w http.ResponseWriter, r *http.Request)
}

type overtimeHandlerImpl struct {
	overtimeService overtime.OvertimeService
}

func NewOvertimeHandler(overtimeService overtime.OvertimeService) OvertimeHandler {
	return &overtimeHandlerImpl{
		overtimeService: overtimeService,
	}
}

// Estimate handles GET /overtime/estimate
func (h *overtimeHandlerImpl) Estimate(w http.ResponseWriter, r *http.Request) {
	estimate, err := h.overtimeService.Estimate(r.Context(), r.URL.Query().Get("time"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, estimate)
}

// List handles GET /overtime
func (h *overtimeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := overtime.RecordFilter{
		StartDate:  q.Get("start_date"),
		EndDate:    q.Get("end_date"),
		EmployeeID: q.Get("employee_id"),
		Status:     q.Get("status"),
	}

	records, err := h.overtimeService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, records, &response.Meta{TotalItems: len(records)})
}

// Create handles POST /overtime
func (h *overtimeHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req overtime.CreateRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create overtime decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	record, err := h.overtimeService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Overtime recorded successfully", record)
}

// Update handles PUT /overtime/{id}
func (h *overtimeHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req overtime.UpdateRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update overtime decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	record, err := h.overtimeService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Overtime updated successfully", record)
}

// Approve handles POST /overtime/{id}/approve
func (h *overtimeHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	record, err := h.overtimeService.Approve(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Overtime approved successfully", record)
}

// Reject handles POST /overtime/{id}/reject
func (h *overtimeHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	record, err := h.overtimeService.Reject(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Overtime rejected successfully", record)
}

// Delete handles DELETE /overtime/{id}
func (h *overtimeHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.overtimeService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Overtime deleted successfully", nil)
}

// Summary handles GET /overtime/summary?year&month
func (h *overtimeHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	year, month, ok := parseYearMonth(w, r)
	if !ok {
		return
	}

	summary, err := h.overtimeService.Summary(r.Context(), overtime.SummaryRequest{Year: year, Month: month})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}

// Merge handles POST /overtime/merge
func (h *overtimeHandlerImpl) Merge(w http.ResponseWriter, r *http.Request) {
	var req overtime.MergeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Merge decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	merged, err := h.overtimeService.Merge(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, merged)
}

// parseYearMonth reads the year and month query parameters, writing a 400 when either is
// not an integer.
func parseYearMonth(w http.ResponseWriter, r *http.Request) (year, month int, ok bool) {
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil {
		response.BadRequest(w, "invalid month parameter", nil)
		return 0, 0, false
	}

	year, err = strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		response.BadRequest(w, "invalid year parameter", nil)
		return 0, 0, false
	}

	return year, month, true
}
