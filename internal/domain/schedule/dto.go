package schedule

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/pharmacy-shift-go/internal/domain/shift"
	"github.com/cmlabs-hris/pharmacy-shift-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateAssignmentRequest struct {
	EmployeeID string  `json:"employee_id"`
	Date       string  `json:"date"` // YYYY-MM-DD
	Shift      string  `json:"shift"`
	LeaveType  *string `json:"leave_type,omitempty"`

	// Parsed by Validate
	WorkDate time.Time `json:"-"`
}

func (r *CreateAssignmentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	} else if !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must be a valid UUID",
		})
	}
	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	} else if d, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	} else {
		r.WorkDate = d
	}
	if !validator.IsInSlice(r.Shift, shift.ShiftValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "shift",
			Message: "shift must be one of: " + strings.Join(shift.ShiftValues, ", "),
		})
	}
	if r.LeaveType != nil && !validator.IsInSlice(*r.LeaveType, LeaveTypeValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: ErrInvalidLeaveType.Error(),
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateLeaveTypeRequest sets or, with a null leave_type, clears the tag of an assignment.
type UpdateLeaveTypeRequest struct {
	ID        string  `json:"-"`
	LeaveType *string `json:"leave_type"`
}

func (r *UpdateLeaveTypeRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id must be a valid UUID",
		})
	}
	if r.LeaveType != nil && !validator.IsInSlice(*r.LeaveType, LeaveTypeValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: ErrInvalidLeaveType.Error(),
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AssignmentFilter struct {
	StartDate  string
	EndDate    string
	EmployeeID string

	// Parsed by Validate
	Start time.Time
	End   time.Time
}

func (f *AssignmentFilter) Validate() error {
	var errs validator.ValidationErrors

	start, okStart := validator.IsValidDate(f.StartDate)
	if !okStart {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}
	end, okEnd := validator.IsValidDate(f.EndDate)
	if !okEnd {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}
	if okStart && okEnd && start.After(end) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: ErrInvalidDateRange.Error(),
		})
	}
	if f.EmployeeID != "" && !validator.IsValidUUID(f.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must be a valid UUID",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	f.Start, f.End = start, end
	return nil
}

type AssignmentResponse struct {
	ID           string          `json:"id"`
	EmployeeID   string          `json:"employee_id"`
	EmployeeName string          `json:"employee_name"`
	Date         string          `json:"date"`
	Shift        string          `json:"shift"`
	LeaveType    *string         `json:"leave_type"`
	Hours        decimal.Decimal `json:"hours"`
	CreatedAt    string          `json:"created_at"`
	UpdatedAt    string          `json:"updated_at"`
}

type BucketEntryResponse struct {
	AssignmentID string          `json:"assignment_id"`
	EmployeeID   string          `json:"employee_id"`
	EmployeeName string          `json:"employee_name"`
	Hours        decimal.Decimal `json:"hours"`
}

type ShiftBucketResponse struct {
	Shift     string                `json:"shift"`
	StartTime string                `json:"start_time"`
	EndTime   string                `json:"end_time"`
	Hours     decimal.Decimal       `json:"hours"`
	Regular   []BucketEntryResponse `json:"regular"`
	Overtime  []BucketEntryResponse `json:"overtime"`
	Personal  []BucketEntryResponse `json:"personal"`
	Sick      []BucketEntryResponse `json:"sick"`
}

type DayScheduleResponse struct {
	Date   string                `json:"date"`
	Shifts []ShiftBucketResponse `json:"shifts"`
}

type EmployeeHoursResponse struct {
	EmployeeID      string          `json:"employee_id"`
	EmployeeName    string          `json:"employee_name"`
	RegularHours    decimal.Decimal `json:"regular_hours"`
	OvertimeHours   decimal.Decimal `json:"overtime_hours"`
	PersonalLeave   decimal.Decimal `json:"personal_leave_hours"`
	SickLeave       decimal.Decimal `json:"sick_leave_hours"`
	SickOccurrences int             `json:"sick_occurrences"`
	TotalHours      decimal.Decimal `json:"total_hours"`
}

type SkippedRecordResponse struct {
	AssignmentID string `json:"assignment_id"`
	Reason       string `json:"reason"`
}

type DailyScheduleResponse struct {
	StartDate string                  `json:"start_date"`
	EndDate   string                  `json:"end_date"`
	Days      []DayScheduleResponse   `json:"days"`
	Employees []EmployeeHoursResponse `json:"employees"`
	Skipped   []SkippedRecordResponse `json:"skipped,omitempty"`
}
