package overtime

import (
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/cmlabs-hris/pharmacy-shift-go/internal/domain/overtime"
	"github.com/cmlabs-hris/pharmacy-shift-go/internal/domain/schedule"
	"github.com/cmlabs-hris/pharmacy-shift-go/internal/domain/shift"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func date(d int) time.Time {
	return time.Date(2025, time.March, d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func record(id, employeeID string, d int, hours string, status overtime.Status) overtime.Record {
	return overtime.Record{
		ID:         id,
		EmployeeID: employeeID,
		Date:       date(d),
		Hours:      dec(hours),
		Status:     status,
		Source:     overtime.SourceManual,
	}
}

func overtimeAssignment(id string, ref schedule.EmployeeRef, d int, s shift.Shift) schedule.Assignment {
	lt := schedule.LeaveOvertime
	return schedule.Assignment{ID: id, Employee: ref, Date: date(d), Shift: s, LeaveType: &lt}
}

func TestMergeOvertime_SumsBothSources(t *testing.T) {
	result := MergeOvertime(overtime.MergeInput{
		Records: []overtime.Record{
			record("r1", "emp-x", 3, "1.5", overtime.StatusApproved),
			record("r2", "emp-x", 10, "2.0", overtime.StatusPending),
		},
		ScheduleRecords: []schedule.Assignment{
			overtimeAssignment("s1", schedule.RefFromID("emp-x"), 7, shift.Evening),
		},
		Times: shift.DefaultTimes(),
	}, discardLogger)

	require.Len(t, result.Groups, 1)
	g := result.Groups[0]
	assert.Equal(t, "emp-x", g.EmployeeID)
	assert.True(t, dec("3.5").Equal(g.IndependentHours))
	assert.True(t, dec("1.5").Equal(g.ScheduleHours))
	assert.True(t, dec("5.0").Equal(g.TotalHours))
	assert.Equal(t, date(10), g.LatestDate)
	assert.Len(t, g.Records, 2)
	assert.Len(t, g.ScheduleRecords, 1)

	require.Len(t, g.Entries, 3)
	assert.Equal(t, "r1", g.Entries[0].ID)
	assert.Equal(t, "s1", g.Entries[1].ID)
	assert.Equal(t, overtime.EntrySchedule, g.Entries[1].Source)
	assert.Equal(t, overtime.StatusConfirmed, g.Entries[1].Status)
	assert.Equal(t, shift.Evening, g.Entries[1].Shift)
	assert.Equal(t, "r2", g.Entries[2].ID)
	assert.Equal(t, overtime.StatusPending, g.Entries[2].Status)
}

func TestMergeOvertime_Empty(t *testing.T) {
	result := MergeOvertime(overtime.MergeInput{}, discardLogger)

	assert.Empty(t, result.Groups)
	assert.Empty(t, result.Skipped)
}

func TestMergeOvertime_IgnoresNonOvertimeAssignments(t *testing.T) {
	sick := schedule.LeaveSick
	result := MergeOvertime(overtime.MergeInput{
		ScheduleRecords: []schedule.Assignment{
			{ID: "regular", Employee: schedule.RefFromID("emp-1"), Date: date(1), Shift: shift.Morning},
			{ID: "sick", Employee: schedule.RefFromID("emp-1"), Date: date(2), Shift: shift.Morning, LeaveType: &sick},
		},
		Times: shift.DefaultTimes(),
	}, discardLogger)

	assert.Empty(t, result.Groups)
}

func TestMergeOvertime_NormalizesReferencesAndSkipsMalformed(t *testing.T) {
	const oid = "507f1f77bcf86cd799439011"
	result := MergeOvertime(overtime.MergeInput{
		Records: []overtime.Record{
			record("r1", oid, 2, "1", overtime.StatusApproved),
		},
		ScheduleRecords: []schedule.Assignment{
			overtimeAssignment("s1", schedule.EmployeeRef(`{"$oid":"`+oid+`"}`), 4, shift.Morning),
			overtimeAssignment("s2", schedule.EmployeeRef(`{"_id":"`+oid+`","name":"Sari"}`), 5, shift.Afternoon),
			overtimeAssignment("s3", schedule.EmployeeRef(`{"_id":{"$oid":"`+oid+`"}}`), 6, shift.Evening),
			overtimeAssignment("bad", schedule.EmployeeRef(`[1,2]`), 6, shift.Evening),
		},
		Times: shift.DefaultTimes(),
	}, discardLogger)

	require.Len(t, result.Groups, 1)
	g := result.Groups[0]
	assert.Equal(t, "Sari", g.EmployeeName)
	assert.True(t, dec("8").Equal(g.ScheduleHours), g.ScheduleHours.String())
	assert.True(t, dec("9").Equal(g.TotalHours))

	require.Len(t, result.Skipped, 1)
	assert.Equal(t, "bad", result.Skipped[0].AssignmentID)
	assert.Contains(t, result.Skipped[0].Reason, schedule.ErrEmployeeIDNormalization.Error())
}

func TestMergeOvertime_GroupOrder(t *testing.T) {
	result := MergeOvertime(overtime.MergeInput{
		Records: []overtime.Record{
			record("r1", "old", 2, "1", overtime.StatusApproved),
			record("r2", "tie-a", 9, "1", overtime.StatusApproved),
			record("r3", "tie-b", 9, "1", overtime.StatusApproved),
		},
		ScheduleRecords: []schedule.Assignment{
			overtimeAssignment("s1", schedule.RefFromID("recent"), 20, shift.Evening),
		},
	}, discardLogger)

	var ids []string
	for _, g := range result.Groups {
		ids = append(ids, g.EmployeeID)
	}
	assert.Equal(t, []string{"recent", "tie-a", "tie-b", "old"}, ids)
}

func TestMergeOvertime_TotalIsSumOfSources(t *testing.T) {
	var input overtime.MergeInput
	input.Times = shift.DefaultTimes()
	for i := 0; i < 60; i++ {
		emp := fmt.Sprintf("emp-%d", i%6)
		if i%2 == 0 {
			input.Records = append(input.Records, record(fmt.Sprintf("r%d", i), emp, 1+i%28, "0.75", overtime.StatusPending))
		}
		if i%3 == 0 {
			input.ScheduleRecords = append(input.ScheduleRecords,
				overtimeAssignment(fmt.Sprintf("s%d", i), schedule.RefFromID(emp), 1+i%28, shift.Shifts[i%3]))
		}
	}

	result := MergeOvertime(input, discardLogger)

	require.NotEmpty(t, result.Groups)
	for _, g := range result.Groups {
		assert.True(t, g.TotalHours.Equal(g.IndependentHours.Add(g.ScheduleHours)), g.EmployeeID)
		for i := 1; i < len(g.Entries); i++ {
			assert.False(t, g.Entries[i].Date.Before(g.Entries[i-1].Date), "entries out of order for %s", g.EmployeeID)
		}
	}
}

func TestReconcileScheduleHours(t *testing.T) {
	base := overtime.EmployeeGroup{
		EmployeeID:       "emp-x",
		IndependentHours: dec("3.5"),
		ScheduleHours:    dec("1.5"),
		TotalHours:       dec("5"),
	}

	t.Run("authoritative total wins", func(t *testing.T) {
		g := ReconcileScheduleHours(base, overtime.Totals{"emp-x": dec("8")})
		assert.True(t, dec("4.5").Equal(g.ScheduleHours))
		assert.True(t, dec("8").Equal(g.TotalHours))
		assert.True(t, g.Reconciled)
	})

	t.Run("agreeing total", func(t *testing.T) {
		g := ReconcileScheduleHours(base, overtime.Totals{"emp-x": dec("5")})
		assert.True(t, dec("1.5").Equal(g.ScheduleHours))
		assert.False(t, g.Reconciled)
	})

	t.Run("total differing only in division digits", func(t *testing.T) {
		// 08:20-09:00 twice: 40/60 carried at different scales by the two sources.
		local, err := shift.ComputeShiftHours("08:20", "09:00")
		require.NoError(t, err)
		g := base
		g.ScheduleHours = local.Add(local)
		g.TotalHours = g.IndependentHours.Add(g.ScheduleHours)

		fromDB := dec("3.5").Add(dec("1.33333333333333333334"))
		out := ReconcileScheduleHours(g, overtime.Totals{"emp-x": fromDB})
		assert.False(t, out.Reconciled)
		assert.True(t, g.ScheduleHours.Equal(out.ScheduleHours))
	})

	t.Run("no total for employee", func(t *testing.T) {
		g := ReconcileScheduleHours(base, overtime.Totals{"emp-y": dec("8")})
		assert.Equal(t, base, g)
	})

	t.Run("total below independent hours", func(t *testing.T) {
		g := ReconcileScheduleHours(base, overtime.Totals{"emp-x": dec("2")})
		assert.True(t, g.ScheduleHours.IsZero())
		assert.True(t, dec("3.5").Equal(g.TotalHours))
		assert.True(t, g.Reconciled)
	})
}

func TestReconcileAll(t *testing.T) {
	result := overtime.MergeResult{Groups: []overtime.EmployeeGroup{
		{EmployeeID: "a", IndependentHours: dec("1"), ScheduleHours: dec("0"), TotalHours: dec("1")},
		{EmployeeID: "b", IndependentHours: dec("2"), ScheduleHours: dec("1.5"), TotalHours: dec("3.5")},
	}}

	out := ReconcileAll(result, overtime.Totals{"a": dec("4")})

	assert.True(t, dec("3").Equal(out.Groups[0].ScheduleHours))
	assert.True(t, dec("4").Equal(out.Groups[0].TotalHours))
	assert.True(t, dec("3.5").Equal(out.Groups[1].TotalHours))
	assert.False(t, out.Groups[1].Reconciled)
}
