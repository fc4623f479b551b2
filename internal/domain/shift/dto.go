package shift

import (
	"strings"

	"github.com/cmlabs-hris/pharmacy-shift-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type UpsertShiftTimeConfigRequest struct {
	Shift     string `json:"-"`
	StartTime string `json:"start_time"` // HH:MM format
	EndTime   string `json:"end_time"`   // HH:MM format
}

// Validate checks field formats. Ordering of the two times is left to the service so it
// surfaces as ErrInvalidTimeRange rather than a field error.
func (r *UpsertShiftTimeConfigRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(r.Shift, ShiftValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "shift",
			Message: "shift must be one of: " + strings.Join(ShiftValues, ", "),
		})
	}
	if validator.IsEmpty(r.StartTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time is required",
		})
	} else if !validator.IsValidClock(r.StartTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time must be a valid time in HH:MM format",
		})
	}
	if validator.IsEmpty(r.EndTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time is required",
		})
	} else if !validator.IsValidClock(r.EndTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time must be a valid time in HH:MM format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ShiftTimeConfigResponse struct {
	ID        string `json:"id"`
	Shift     string `json:"shift"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type EffectiveShiftTimes struct {
	Shift     string          `json:"shift"`
	StartTime string          `json:"start_time"`
	EndTime   string          `json:"end_time"`
	Hours     decimal.Decimal `json:"hours"`
	IsDefault bool            `json:"is_default"`
}

type ShiftHoursResponse struct {
	StartTime string          `json:"start_time"`
	EndTime   string          `json:"end_time"`
	Hours     decimal.Decimal `json:"hours"`
}
