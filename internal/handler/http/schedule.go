package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/pharmacy-shift-go/internal/domain/schedule"
	"github.com/cmlabs-hris/pharmacy-shift-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type ScheduleHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Daily(w http.ResponseWriter, r *http.Request)
	Assign(w http.ResponseWriter, r *http.Request)
	SetLeaveType(w http.ResponseWriter, r *http.Request)
	Unassign(w http.ResponseWriter, r *http.Request)
}

type scheduleHandlerImpl struct {
	scheduleService schedule.ScheduleService
}

func NewScheduleHandler(scheduleService schedule.ScheduleService) ScheduleHandler {
	return &scheduleHandlerImpl{
		scheduleService: scheduleService,
	}
}

func assignmentFilterFromQuery(r *http.Request) schedule.AssignmentFilter {
	q := r.URL.Query()
	return schedule.AssignmentFilter{
		StartDate:  q.Get("start_date"),
		EndDate:    q.Get("end_date"),
		EmployeeID: q.Get("employee_id"),
	}
}

// List handles GET /schedules
func (h *scheduleHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	assignments, err := h.scheduleService.List(r.Context(), assignmentFilterFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, assignments, &response.Meta{TotalItems: len(assignments)})
}

// Daily handles GET /schedules/daily
func (h *scheduleHandlerImpl) Daily(w http.ResponseWriter, r *http.Request) {
	daily, err := h.scheduleService.Daily(r.Context(), assignmentFilterFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, daily)
}

// Assign handles POST /schedules
func (h *scheduleHandlerImpl) Assign(w http.ResponseWriter, r *http.Request) {
	var req schedule.CreateAssignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Assign decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	assignment, err := h.scheduleService.Assign(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Employee assigned successfully", assignment)
}

// SetLeaveType handles PATCH /schedules/{id}/leave-type
func (h *scheduleHandlerImpl) SetLeaveType(w http.ResponseWriter, r *http.Request) {
	var req schedule.UpdateLeaveTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("SetLeaveType decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	assignment, err := h.scheduleService.SetLeaveType(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave type updated successfully", assignment)
}

// Unassign handles DELETE /schedules/{id}
func (h *scheduleHandlerImpl) Unassign(w http.ResponseWriter, r *http.Request) {
	if err := h.scheduleService.Unassign(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Assignment removed successfully", nil)
}
