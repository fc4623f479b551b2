package overtime

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/cmlabs-hris/pharmacy-shift-go/internal/domain/overtime"
	"github.com/cmlabs-hris/pharmacy-shift-go/internal/domain/schedule"
	"github.com/cmlabs-hris/pharmacy-shift-go/internal/domain/shift"
	"github.com/shopspring/decimal"
)

// MergeOvertime groups independent records and overtime-tagged assignments by employee and
// sums each source. Assignments without the overtime tag are ignored. An assignment whose
// employee reference cannot be normalized is logged and skipped; the batch continues.
//
// Entries of a group are in chronological order. Groups are ordered by latest overtime
// date, most recent first, ties keeping first-seen order.
func MergeOvertime(input overtime.MergeInput, logger *slog.Logger) overtime.MergeResult {
	if logger == nil {
		logger = slog.Default()
	}

	groups := make(map[string]*overtime.EmployeeGroup)
	var order []string
	groupFor := func(id string) *overtime.EmployeeGroup {
		g, ok := groups[id]
		if !ok {
			g = &overtime.EmployeeGroup{
				EmployeeID:       id,
				IndependentHours: decimal.Zero,
				ScheduleHours:    decimal.Zero,
			}
			groups[id] = g
			order = append(order, id)
		}
		return g
	}

	for _, r := range input.Records {
		id := strings.TrimSpace(r.EmployeeID)
		if id == "" {
			logger.Warn("skipping overtime record without employee", slog.String("record_id", r.ID))
			continue
		}
		status := r.Status
		if status == "" {
			status = overtime.StatusPending
		}

		g := groupFor(id)
		if g.EmployeeName == "" {
			g.EmployeeName = r.EmployeeName
		}
		g.Records = append(g.Records, r)
		g.IndependentHours = g.IndependentHours.Add(r.Hours)
		g.Entries = append(g.Entries, overtime.Entry{
			ID:          r.ID,
			Source:      overtime.EntryManual,
			Date:        r.Date,
			Hours:       r.Hours,
			Status:      status,
			Description: r.Description,
		})
		if r.Date.After(g.LatestDate) {
			g.LatestDate = r.Date
		}
	}

	times := input.Times
	if times == nil {
		times = shift.DefaultTimes()
	}
	hoursCache := make(map[shift.Shift]decimal.Decimal, len(shift.Shifts))
	var skipped []schedule.SkippedRecord

	for _, a := range input.ScheduleRecords {
		if !a.IsOvertime() {
			continue
		}
		id, err := schedule.NormalizeEmployeeID(a.Employee)
		if err != nil {
			logger.Warn("skipping overtime assignment with unrecognized employee reference",
				slog.String("assignment_id", a.ID),
				slog.String("error", err.Error()),
			)
			skipped = append(skipped, schedule.SkippedRecord{AssignmentID: a.ID, Reason: err.Error()})
			continue
		}
		hours, ok := hoursCache[a.Shift]
		if !ok {
			hours, err = times.Hours(a.Shift)
			if err != nil {
				logger.Warn("skipping overtime assignment with unusable shift",
					slog.String("assignment_id", a.ID),
					slog.String("error", err.Error()),
				)
				skipped = append(skipped, schedule.SkippedRecord{AssignmentID: a.ID, Reason: err.Error()})
				continue
			}
			hoursCache[a.Shift] = hours
		}

		g := groupFor(id)
		if g.EmployeeName == "" {
			g.EmployeeName = a.EmployeeName
		}
		if g.EmployeeName == "" {
			g.EmployeeName = a.Employee.DisplayName()
		}
		g.ScheduleRecords = append(g.ScheduleRecords, a)
		g.ScheduleHours = g.ScheduleHours.Add(hours)
		g.Entries = append(g.Entries, overtime.Entry{
			ID:     a.ID,
			Source: overtime.EntrySchedule,
			Date:   a.Date,
			Hours:  hours,
			Status: overtime.StatusConfirmed,
			Shift:  a.Shift,
		})
		if a.Date.After(g.LatestDate) {
			g.LatestDate = a.Date
		}
	}

	result := overtime.MergeResult{
		Groups:  make([]overtime.EmployeeGroup, 0, len(order)),
		Skipped: skipped,
	}
	for _, id := range order {
		g := groups[id]
		g.TotalHours = g.IndependentHours.Add(g.ScheduleHours)
		sort.SliceStable(g.Entries, func(i, j int) bool {
			return g.Entries[i].Date.Before(g.Entries[j].Date)
		})
		result.Groups = append(result.Groups, *g)
	}
	sort.SliceStable(result.Groups, func(i, j int) bool {
		return result.Groups[i].LatestDate.After(result.Groups[j].LatestDate)
	})
	return result
}

// ReconcileScheduleHours lets an authoritative total override the locally derived schedule
// hours: scheduleHours = total - independentHours, floored at zero. The values are compared
// at overtime.HoursPlaces, so a total that only differs in division digits keeps the local
// hours. Groups without an authoritative total are returned unchanged.
func ReconcileScheduleHours(g overtime.EmployeeGroup, totals overtime.Totals) overtime.EmployeeGroup {
	total, ok := totals[g.EmployeeID]
	if !ok {
		return g
	}

	scheduleHours := total.Sub(g.IndependentHours)
	if scheduleHours.IsNegative() {
		scheduleHours = decimal.Zero
	}
	if !scheduleHours.Round(overtime.HoursPlaces).Equal(g.ScheduleHours.Round(overtime.HoursPlaces)) {
		g.ScheduleHours = scheduleHours
		g.Reconciled = true
	}
	g.TotalHours = g.IndependentHours.Add(g.ScheduleHours)
	return g
}

// ReconcileAll applies ReconcileScheduleHours to every group of result.
func ReconcileAll(result overtime.MergeResult, totals overtime.Totals) overtime.MergeResult {
	if len(totals) == 0 {
		return result
	}
	for i := range result.Groups {
		result.Groups[i] = ReconcileScheduleHours(result.Groups[i], totals)
	}
	return result
}
