package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/pharmacy-shift-go/internal/domain/auth"
	"github.com/cmlabs-hris/pharmacy-shift-go/internal/domain/employee"
	"github.com/cmlabs-hris/pharmacy-shift-go/internal/domain/overtime"
	"github.com/cmlabs-hris/pharmacy-shift-go/internal/domain/report"
	"github.com/cmlabs-hris/pharmacy-shift-go/internal/domain/schedule"
	"github.com/cmlabs-hris/pharmacy-shift-go/internal/domain/shift"
	"github.com/cmlabs-hris/pharmacy-shift-go/internal/domain/user"
	"github.com/cmlabs-hris/pharmacy-shift-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/pharmacy-shift-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, jwt.ErrMissingClaims):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, err.Error())
	case errors.Is(err, user.ErrEmployeeLinkRequired):
		Forbidden(w, err.Error())

	// Shift times
	case errors.Is(err, shift.ErrInvalidTimeFormat),
		errors.Is(err, shift.ErrInvalidTimeRange),
		errors.Is(err, shift.ErrInvalidShift):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, shift.ErrShiftConfigNotFound):
		NotFound(w, "Shift time config not found")
	case errors.Is(err, shift.ErrShiftTimesUnavailable):
		ServiceUnavailable(w, "Shift times are temporarily unavailable")

	// Schedule
	case errors.Is(err, schedule.ErrAssignmentNotFound):
		NotFound(w, "Schedule assignment not found")
	case errors.Is(err, schedule.ErrAssignmentExists):
		Conflict(w, err.Error())
	case errors.Is(err, schedule.ErrInvalidLeaveType),
		errors.Is(err, schedule.ErrInvalidDateRange),
		errors.Is(err, schedule.ErrEmployeeIDNormalization):
		BadRequest(w, err.Error(), nil)

	// Overtime
	case errors.Is(err, overtime.ErrRecordNotFound):
		NotFound(w, "Overtime record not found")
	case errors.Is(err, overtime.ErrRecordNotPending):
		Conflict(w, err.Error())
	case errors.Is(err, overtime.ErrInvalidHours), errors.Is(err, overtime.ErrEmployeeIDRequired):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, overtime.ErrForbiddenEmployee):
		Forbidden(w, err.Error())

	// Employee directory
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrDirectoryUnavailable):
		ServiceUnavailable(w, "Employee directory is temporarily unavailable")

	// Reports
	case errors.Is(err, report.ErrExportFailed):
		slog.Error("report export failed", slog.String("error", err.Error()))
		InternalServerError(w, "Failed to build report file")

	// Default
	default:
		slog.Error("unhandled error", slog.String("error", err.Error()))
		InternalServerError(w, "An unexpected error occurred")
	}
}
