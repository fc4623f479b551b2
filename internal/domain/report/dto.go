package report

import (
	"time"

	"github.com/cmlabs-hris/pharmacy-shift-go/internal/pkg/validator"
)

type MonthlyHoursRequest struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

func (r *MonthlyHoursRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}
	if !validator.IsValidMonth(r.Year, 1) {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be between 2000 and 2100",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Period returns the first and last day of the requested month in loc.
func (r MonthlyHoursRequest) Period(loc *time.Location) (time.Time, time.Time) {
	start := time.Date(r.Year, time.Month(r.Month), 1, 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 1, -1)
}

// EmployeeMonthlyHours is one report row. Every total is rendered with exactly one decimal digit.
type EmployeeMonthlyHours struct {
	EmployeeID         string `json:"employee_id"`
	Name               string `json:"name"`
	Hours              string `json:"hours"`
	OvertimeHours      string `json:"overtime_hours"`
	PersonalLeaveHours string `json:"personal_leave_hours"`
	SickLeaveHours     string `json:"sick_leave_hours"`
}

type MonthlyHoursReport struct {
	PeriodMonth int                    `json:"period_month"`
	PeriodYear  int                    `json:"period_year"`
	PeriodStart string                 `json:"period_start"`
	PeriodEnd   string                 `json:"period_end"`
	GeneratedAt string                 `json:"generated_at"`
	Rows        []EmployeeMonthlyHours `json:"rows"`
}

type ExportFile struct {
	FileName    string
	ContentType string
	Content     []byte
}
