package overtime

import (
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/pharmacy-shift-go/internal/domain/schedule"
	"github.com/cmlabs-hris/pharmacy-shift-go/internal/domain/shift"
	"github.com/cmlabs-hris/pharmacy-shift-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateRecordRequest struct {
	// EmployeeID may be omitted by employees filing their own overtime.
	EmployeeID  string          `json:"employee_id"`
	Date        string          `json:"date"`
	Hours       decimal.Decimal `json:"hours"`
	Description string          `json:"description"`
	Source      string          `json:"source"`

	// Parsed by Validate
	WorkDate time.Time `json:"-"`
}

func (r *CreateRecordRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeID != "" && !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must be a valid UUID",
		})
	}
	if d, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	} else {
		r.WorkDate = d
	}
	if !ValidHours(r.Hours) {
		errs = append(errs, validator.ValidationError{
			Field:   "hours",
			Message: ErrInvalidHours.Error(),
		})
	}
	if len(r.Description) > 500 {
		errs = append(errs, validator.ValidationError{
			Field:   "description",
			Message: "description must be at most 500 characters",
		})
	}
	if r.Source == "" {
		r.Source = string(SourceManual)
	} else if !validator.IsInSlice(r.Source, SourceValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "source",
			Message: "source must be one of: " + strings.Join(SourceValues, ", "),
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateRecordRequest edits a pending record. Nil fields are left unchanged.
type UpdateRecordRequest struct {
	ID          string           `json:"-"`
	Date        *string          `json:"date,omitempty"`
	Hours       *decimal.Decimal `json:"hours,omitempty"`
	Description *string          `json:"description,omitempty"`

	// Parsed by Validate
	WorkDate *time.Time `json:"-"`
}

func (r *UpdateRecordRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id must be a valid UUID",
		})
	}
	if r.Date != nil {
		if d, ok := validator.IsValidDate(*r.Date); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		} else {
			r.WorkDate = &d
		}
	}
	if r.Hours != nil && !ValidHours(*r.Hours) {
		errs = append(errs, validator.ValidationError{
			Field:   "hours",
			Message: ErrInvalidHours.Error(),
		})
	}
	if r.Description != nil && len(*r.Description) > 500 {
		errs = append(errs, validator.ValidationError{
			Field:   "description",
			Message: "description must be at most 500 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RecordFilter struct {
	StartDate  string
	EndDate    string
	EmployeeID string
	Status     string

	// Parsed by Validate
	Start time.Time
	End   time.Time
}

func (f *RecordFilter) Validate() error {
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
			Message: "start_date must not be after end_date",
		})
	}
	if f.EmployeeID != "" && !validator.IsValidUUID(f.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must be a valid UUID",
		})
	}
	if f.Status != "" && !validator.IsInSlice(f.Status, StatusValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: " + strings.Join(StatusValues, ", "),
		})
	}

	if len(errs) > 0 {
		return errs
	}

	f.Start, f.End = start, end
	return nil
}

type SummaryRequest struct {
	Year  int
	Month int
}

func (r *SummaryRequest) Validate() error {
	if !validator.IsValidMonth(r.Year, r.Month) {
		return validator.ValidationErrors{{
			Field:   "month",
			Message: "year and month must form a valid calendar month",
		}}
	}
	return nil
}

// MergeRequest feeds caller-fetched records straight into the merge. Schedule records may
// reference employees by plain id, populated object or {"$oid": ...} wrapper.
type MergeRequest struct {
	Records         []MergeRecordInput         `json:"records"`
	ScheduleRecords []MergeScheduleRecordInput `json:"schedule_records"`
	Stats           map[string]decimal.Decimal `json:"stats,omitempty"`
}

type MergeRecordInput struct {
	ID          string          `json:"id"`
	EmployeeID  string          `json:"employee_id"`
	Date        string          `json:"date"`
	Hours       decimal.Decimal `json:"hours"`
	Description string          `json:"description"`
	Status      string          `json:"status"`
}

type MergeScheduleRecordInput struct {
	ID        string               `json:"id"`
	Employee  schedule.EmployeeRef `json:"employee_id"`
	Date      string               `json:"date"`
	Shift     string               `json:"shift"`
	LeaveType *string              `json:"leave_type"`
}

func (r *MergeRequest) Validate() error {
	var errs validator.ValidationErrors

	for i, rec := range r.Records {
		if validator.IsEmpty(rec.EmployeeID) {
			errs = append(errs, validator.ValidationError{
				Field:   fieldAt("records", i, "employee_id"),
				Message: ErrEmployeeIDRequired.Error(),
			})
		}
		if _, ok := validator.IsValidDate(rec.Date); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   fieldAt("records", i, "date"),
				Message: "date must be in YYYY-MM-DD format",
			})
		}
		if !ValidHours(rec.Hours) {
			errs = append(errs, validator.ValidationError{
				Field:   fieldAt("records", i, "hours"),
				Message: ErrInvalidHours.Error(),
			})
		}
		if rec.Status != "" && !validator.IsInSlice(rec.Status, StatusValues) {
			errs = append(errs, validator.ValidationError{
				Field:   fieldAt("records", i, "status"),
				Message: "status must be one of: " + strings.Join(StatusValues, ", "),
			})
		}
	}
	for i, rec := range r.ScheduleRecords {
		if _, ok := validator.IsValidDate(rec.Date); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   fieldAt("schedule_records", i, "date"),
				Message: "date must be in YYYY-MM-DD format",
			})
		}
		if !validator.IsInSlice(rec.Shift, shift.ShiftValues) {
			errs = append(errs, validator.ValidationError{
				Field:   fieldAt("schedule_records", i, "shift"),
				Message: "shift must be one of: " + strings.Join(shift.ShiftValues, ", "),
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func fieldAt(list string, i int, field string) string {
	return fmt.Sprintf("%s[%d].%s", list, i, field)
}

type RecordResponse struct {
	ID           string          `json:"id"`
	EmployeeID   string          `json:"employee_id"`
	EmployeeName string          `json:"employee_name,omitempty"`
	Date         string          `json:"date"`
	Hours        decimal.Decimal `json:"hours"`
	Description  string          `json:"description"`
	Status       string          `json:"status"`
	Source       string          `json:"source"`
	ReviewedBy   *string         `json:"reviewed_by,omitempty"`
	ReviewedAt   *string         `json:"reviewed_at,omitempty"`
	CreatedAt    string          `json:"created_at,omitempty"`
	UpdatedAt    string          `json:"updated_at,omitempty"`
}

type ScheduleRecordResponse struct {
	AssignmentID string          `json:"assignment_id"`
	Date         string          `json:"date"`
	Shift        string          `json:"shift"`
	Hours        decimal.Decimal `json:"hours"`
}

type EntryResponse struct {
	ID          string          `json:"id"`
	Source      string          `json:"source"`
	Date        string          `json:"date"`
	Hours       decimal.Decimal `json:"hours"`
	Status      string          `json:"status"`
	Description string          `json:"description,omitempty"`
	Shift       string          `json:"shift,omitempty"`
}

type EmployeeGroupResponse struct {
	EmployeeID       string                   `json:"employee_id"`
	EmployeeName     string                   `json:"employee_name"`
	Position         string                   `json:"position,omitempty"`
	IndependentHours decimal.Decimal          `json:"independent_hours"`
	ScheduleHours    decimal.Decimal          `json:"schedule_hours"`
	TotalHours       decimal.Decimal          `json:"total_hours"`
	LatestDate       string                   `json:"latest_date"`
	Reconciled       bool                     `json:"reconciled"`
	Records          []RecordResponse         `json:"records"`
	ScheduleRecords  []ScheduleRecordResponse `json:"schedule_records"`
	Entries          []EntryResponse          `json:"entries"`
}

type SkippedRecordResponse struct {
	AssignmentID string `json:"assignment_id"`
	Reason       string `json:"reason"`
}

type SummaryResponse struct {
	PeriodStart string                  `json:"period_start,omitempty"`
	PeriodEnd   string                  `json:"period_end,omitempty"`
	Employees   []EmployeeGroupResponse `json:"employees"`
	Skipped     []SkippedRecordResponse `json:"skipped,omitempty"`
}
