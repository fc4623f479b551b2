package schedule

import (
	"log/slog"
	"sort"
	"time"

	"github.com/cmlabs-hris/pharmacy-shift-go/internal/domain/schedule"
	"github.com/cmlabs-hris/pharmacy-shift-go/internal/domain/shift"
	"github.com/shopspring/decimal"
)

const dateKeyLayout = "2006-01-02"

// Aggregate groups assignments by date and shift, classifies each one by its leave tag and
// totals every employee's hours per category. Shift hours are resolved once per shift for
// the whole batch. Duplicate assignments are counted once each.
//
// Records whose employee reference cannot be resolved, or whose shift is unknown, are
// logged and reported in Skipped; the rest of the batch is still aggregated.
func Aggregate(assignments []schedule.Assignment, times shift.TimesMap, logger *slog.Logger) schedule.Aggregation {
	if logger == nil {
		logger = slog.Default()
	}

	hoursCache := make(map[shift.Shift]decimal.Decimal, len(shift.Shifts))
	shiftHours := func(s shift.Shift) (decimal.Decimal, error) {
		if h, ok := hoursCache[s]; ok {
			return h, nil
		}
		h, err := times.Hours(s)
		if err != nil {
			return decimal.Zero, err
		}
		hoursCache[s] = h
		return h, nil
	}

	days := make(map[string]*schedule.DaySchedule)
	var dayKeys []string
	employees := make(map[string]*schedule.EmployeeHours)
	var employeeOrder []string
	var skipped []schedule.SkippedRecord

	for _, a := range assignments {
		employeeID, err := schedule.NormalizeEmployeeID(a.Employee)
		if err != nil {
			logger.Warn("skipping assignment with unrecognized employee reference",
				slog.String("assignment_id", a.ID),
				slog.String("error", err.Error()),
			)
			skipped = append(skipped, schedule.SkippedRecord{AssignmentID: a.ID, Reason: err.Error()})
			continue
		}
		hours, err := shiftHours(a.Shift)
		if err != nil {
			logger.Warn("skipping assignment with unusable shift",
				slog.String("assignment_id", a.ID),
				slog.String("shift", string(a.Shift)),
				slog.String("error", err.Error()),
			)
			skipped = append(skipped, schedule.SkippedRecord{AssignmentID: a.ID, Reason: err.Error()})
			continue
		}

		date := dateOnly(a.Date)
		key := date.Format(dateKeyLayout)
		day, ok := days[key]
		if !ok {
			day = newDaySchedule(date, times, shiftHours)
			days[key] = day
			dayKeys = append(dayKeys, key)
		}

		name := a.EmployeeName
		if name == "" {
			name = a.Employee.DisplayName()
		}
		category := schedule.CategoryOf(a.LeaveType)

		day.Shifts[a.Shift.Order()].Add(category, schedule.BucketEntry{
			AssignmentID: a.ID,
			EmployeeID:   employeeID,
			EmployeeName: name,
			Date:         date,
			Shift:        a.Shift,
			Hours:        hours,
		})

		acc, ok := employees[employeeID]
		if !ok {
			acc = &schedule.EmployeeHours{EmployeeID: employeeID, EmployeeName: name}
			employees[employeeID] = acc
			employeeOrder = append(employeeOrder, employeeID)
		} else if acc.EmployeeName == "" {
			acc.EmployeeName = name
		}
		acc.Add(category, hours)
	}

	sort.Strings(dayKeys)
	result := schedule.Aggregation{
		Days:      make([]schedule.DaySchedule, 0, len(dayKeys)),
		Employees: make([]schedule.EmployeeHours, 0, len(employeeOrder)),
		Skipped:   skipped,
	}
	for _, k := range dayKeys {
		result.Days = append(result.Days, *days[k])
	}
	for _, id := range employeeOrder {
		result.Employees = append(result.Employees, *employees[id])
	}
	return result
}

func newDaySchedule(date time.Time, times shift.TimesMap, shiftHours func(shift.Shift) (decimal.Decimal, error)) *schedule.DaySchedule {
	day := &schedule.DaySchedule{Date: date, Shifts: make([]schedule.DailyShiftBucket, len(shift.Shifts))}
	for i, s := range shift.Shifts {
		// Known shifts always have a computable duration under an effective map.
		h, _ := shiftHours(s)
		day.Shifts[i] = schedule.DailyShiftBucket{Date: date, Shift: s, Hours: h}
	}
	return day
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
