package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/pharmacy-shift-go/internal/domain/shift"
	"github.com/cmlabs-hris/pharmacy-shift-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type ShiftHandler interface {
	Times(w http.ResponseWriter, r *http.Request)
	ListConfigs(w http.ResponseWriter, r *http.Request)
	UpsertConfig(w http.ResponseWriter, r *http.Request)
	DeactivateConfig(w http.ResponseWriter, r *http.Request)
	Hours(w http.ResponseWriter, r *http.Request)
}

type shiftHandlerImpl struct {
	shiftService shift.ShiftService
}

func NewShiftHandler(shiftService shift.ShiftService) ShiftHandler {
	return &shiftHandlerImpl{
		shiftService: shiftService,
	}
}

// Times handles GET /shifts/times
func (h *shiftHandlerImpl) Times(w http.ResponseWriter, r *http.Request) {
	times, err := h.shiftService.ListEffectiveTimes(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, times)
}

// ListConfigs handles GET /shifts/configs
func (h *shiftHandlerImpl) ListConfigs(w http.ResponseWriter, r *http.Request) {
	configs, err := h.shiftService.ListConfigs(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, configs, &response.Meta{TotalItems: len(configs)})
}

// UpsertConfig handles PUT /shifts/configs/{shift}
func (h *shiftHandlerImpl) UpsertConfig(w http.ResponseWriter, r *http.Request) {
	var req shift.UpsertShiftTimeConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpsertConfig decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.Shift = chi.URLParam(r, "shift")

	config, err := h.shiftService.UpsertConfig(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shift time config saved successfully", config)
}

// DeactivateConfig handles DELETE /shifts/configs/{shift}
func (h *shiftHandlerImpl) DeactivateConfig(w http.ResponseWriter, r *http.Request) {
	s := shift.Shift(chi.URLParam(r, "shift"))

	if err := h.shiftService.DeactivateConfig(r.Context(), s); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shift time config deactivated, default times apply", nil)
}

// Hours handles GET /shifts/hours?start=HH:MM&end=HH:MM
func (h *shiftHandlerImpl) Hours(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("start") == "" || q.Get("end") == "" {
		response.BadRequest(w, "start and end query parameters are required", nil)
		return
	}

	hours, err := h.shiftService.ComputeHours(r.Context(), q.Get("start"), q.Get("end"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, hours)
}
