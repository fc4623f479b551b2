package report

import (
	"sort"

	"github.com/cmlabs-hris/pharmacy-shift-go/internal/domain/report"
	"github.com/cmlabs-hris/pharmacy-shift-go/internal/domain/schedule"
	"github.com/shopspring/decimal"
)

var categories = []schedule.Category{
	schedule.CategoryRegular,
	schedule.CategoryOvertime,
	schedule.CategoryPersonal,
	schedule.CategorySick,
}

// FoldMonthlyHours folds classified day buckets into one row per employee. Rows are sorted
// by regular hours, highest first; ties keep the order in which employees were first seen.
func FoldMonthlyHours(days []schedule.DaySchedule) []report.EmployeeMonthlyHours {
	acc := make(map[string]*schedule.EmployeeHours)
	var order []string

	for _, day := range days {
		for _, bucket := range day.Shifts {
			for _, c := range categories {
				for _, e := range bucket.Entries(c) {
					h, ok := acc[e.EmployeeID]
					if !ok {
						h = &schedule.EmployeeHours{EmployeeID: e.EmployeeID, EmployeeName: e.EmployeeName}
						acc[e.EmployeeID] = h
						order = append(order, e.EmployeeID)
					}
					h.Add(c, e.Hours)
				}
			}
		}
	}

	totals := make([]schedule.EmployeeHours, 0, len(order))
	for _, id := range order {
		totals = append(totals, *acc[id])
	}
	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].Regular.GreaterThan(totals[j].Regular)
	})

	rows := make([]report.EmployeeMonthlyHours, 0, len(totals))
	for _, t := range totals {
		rows = append(rows, report.EmployeeMonthlyHours{
			EmployeeID:         t.EmployeeID,
			Name:               t.EmployeeName,
			Hours:              oneDecimal(t.Regular),
			OvertimeHours:      oneDecimal(t.Overtime),
			PersonalLeaveHours: oneDecimal(t.PersonalLeave),
			SickLeaveHours:     oneDecimal(t.SickLeave),
		})
	}
	return rows
}

func oneDecimal(d decimal.Decimal) string {
	return d.StringFixed(1)
}
