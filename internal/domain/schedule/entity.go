package schedule

import (
	"time"

	"github.com/cmlabs-hris/pharmacy-shift-go/internal/domain/shift"
	"github.com/shopspring/decimal"
)

type LeaveType string

const (
	LeaveSick     LeaveType = "sick"
	LeavePersonal LeaveType = "personal"
	LeaveOvertime LeaveType = "overtime"
)

var LeaveTypeValues = []string{
	string(LeaveSick),
	string(LeavePersonal),
	string(LeaveOvertime),
}

// Assignment is one employee working one shift on one date. A nil LeaveType means
// regular work.
type Assignment struct {
	ID           string
	Employee     EmployeeRef
	EmployeeName string
	Date         time.Time
	Shift        shift.Shift
	LeaveType    *LeaveType
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (a Assignment) IsOvertime() bool {
	return a.LeaveType != nil && *a.LeaveType == LeaveOvertime
}

// Category is the hours bucket an assignment is counted in.
type Category string

const (
	CategoryRegular  Category = "regular"
	CategoryOvertime Category = "overtime"
	CategoryPersonal Category = "personal"
	CategorySick     Category = "sick"
)

// CategoryOf classifies a leave tag. Unknown tags are treated as regular work.
func CategoryOf(lt *LeaveType) Category {
	if lt == nil {
		return CategoryRegular
	}
	switch *lt {
	case LeaveOvertime:
		return CategoryOvertime
	case LeavePersonal:
		return CategoryPersonal
	case LeaveSick:
		return CategorySick
	default:
		return CategoryRegular
	}
}

// BucketEntry is an assignment placed in a bucket together with the hours it counts for.
type BucketEntry struct {
	AssignmentID string
	EmployeeID   string
	EmployeeName string
	Date         time.Time
	Shift        shift.Shift
	Hours        decimal.Decimal
}

// DailyShiftBucket holds the assignments of one shift on one date, split by category.
type DailyShiftBucket struct {
	Date     time.Time
	Shift    shift.Shift
	Hours    decimal.Decimal
	Regular  []BucketEntry
	Overtime []BucketEntry
	Personal []BucketEntry
	Sick     []BucketEntry
}

func (b *DailyShiftBucket) Add(c Category, e BucketEntry) {
	switch c {
	case CategoryOvertime:
		b.Overtime = append(b.Overtime, e)
	case CategoryPersonal:
		b.Personal = append(b.Personal, e)
	case CategorySick:
		b.Sick = append(b.Sick, e)
	default:
		b.Regular = append(b.Regular, e)
	}
}

func (b DailyShiftBucket) Entries(c Category) []BucketEntry {
	switch c {
	case CategoryOvertime:
		return b.Overtime
	case CategoryPersonal:
		return b.Personal
	case CategorySick:
		return b.Sick
	default:
		return b.Regular
	}
}

// DaySchedule lists the three shift buckets of one date in working-day order.
type DaySchedule struct {
	Date   time.Time
	Shifts []DailyShiftBucket
}

// EmployeeHours accumulates one employee's hours per category over a period.
type EmployeeHours struct {
	EmployeeID      string
	EmployeeName    string
	Regular         decimal.Decimal
	Overtime        decimal.Decimal
	PersonalLeave   decimal.Decimal
	SickLeave       decimal.Decimal
	SickOccurrences int
}

func (h *EmployeeHours) Add(c Category, hours decimal.Decimal) {
	switch c {
	case CategoryOvertime:
		h.Overtime = h.Overtime.Add(hours)
	case CategoryPersonal:
		h.PersonalLeave = h.PersonalLeave.Add(hours)
	case CategorySick:
		h.SickLeave = h.SickLeave.Add(hours)
		h.SickOccurrences++
	default:
		h.Regular = h.Regular.Add(hours)
	}
}

func (h EmployeeHours) Total() decimal.Decimal {
	return h.Regular.Add(h.Overtime).Add(h.PersonalLeave).Add(h.SickLeave)
}

// SkippedRecord is an input record left out of a computation, with the reason.
type SkippedRecord struct {
	AssignmentID string
	Reason       string
}

// Aggregation is the grouped and classified view of a set of assignments.
type Aggregation struct {
	Days      []DaySchedule
	Employees []EmployeeHours // first-seen order
	Skipped   []SkippedRecord
}
