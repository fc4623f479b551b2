package overtime

import (
	"time"

	"github.com/cmlabs-hris/pharmacy-shift-go/internal/domain/schedule"
	"github.com/cmlabs-hris/pharmacy-shift-go/internal/domain/shift"
	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"

	// StatusConfirmed marks schedule-derived entries. They come from an assignment, not a
	// review workflow, and are never stored with this status.
	StatusConfirmed Status = "confirmed"
)

var StatusValues = []string{
	string(StatusPending),
	string(StatusApproved),
	string(StatusRejected),
}

type Source string

const (
	SourceManual     Source = "manual"
	SourceCalculated Source = "calculated"
)

var SourceValues = []string{
	string(SourceManual),
	string(SourceCalculated),
}

var (
	MinHours = decimal.Zero
	MaxHours = decimal.NewFromInt(24)
)

// HoursPlaces is the precision overtime_records stores hours at. Totals from different
// sources are compared at this scale.
const HoursPlaces = 2

// ValidHours reports whether h lies in (0, 24].
func ValidHours(h decimal.Decimal) bool {
	return h.GreaterThan(MinHours) && h.LessThanOrEqual(MaxHours)
}

// Record is an independently entered overtime entry, not tied to a schedule assignment.
type Record struct {
	ID           string
	EmployeeID   string
	EmployeeName string
	Date         time.Time
	Hours        decimal.Decimal
	Description  string
	Status       Status
	Source       Source
	ReviewedBy   *string
	ReviewedAt   *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (r Record) IsPending() bool {
	return r.Status == StatusPending
}

// Estimate is a proposed overtime duration measured from the nearest preceding shift end.
type Estimate struct {
	Hours              decimal.Decimal `json:"hours"`
	Minutes            int             `json:"minutes"`
	NearestShift       shift.Shift     `json:"nearest_shift"`
	ShiftEndTime       string          `json:"shift_end_time"`
	CurrentTime        string          `json:"current_time"`
	CalculationDetails string          `json:"calculation_details"`
	IsFallback         bool            `json:"is_fallback"`
}

type EntrySource string

const (
	EntryManual   EntrySource = "manual"
	EntrySchedule EntrySource = "schedule"
)

// Entry is one line of an employee's merged overtime history.
type Entry struct {
	ID          string
	Source      EntrySource
	Date        time.Time
	Hours       decimal.Decimal
	Status      Status
	Description string
	Shift       shift.Shift // schedule entries only
}

// EmployeeGroup is the merged overtime view of one employee over a period.
type EmployeeGroup struct {
	EmployeeID       string
	EmployeeName     string
	Records          []Record
	ScheduleRecords  []schedule.Assignment
	IndependentHours decimal.Decimal
	ScheduleHours    decimal.Decimal
	TotalHours       decimal.Decimal
	LatestDate       time.Time
	Entries          []Entry
	// Reconciled is set when ScheduleHours was taken from the authoritative totals.
	Reconciled bool
}

// MergeInput carries the two record streams and the shift windows used to price
// schedule-derived overtime.
type MergeInput struct {
	Records         []Record
	ScheduleRecords []schedule.Assignment
	Times           shift.TimesMap
}

type MergeResult struct {
	Groups  []EmployeeGroup
	Skipped []schedule.SkippedRecord
}

// Totals holds authoritative overtime hours per employee id, computed independently of a merge.
type Totals map[string]decimal.Decimal
