package overtime

import (
	"fmt"

	"github.com/cmlabs-hris/pharmacy-shift-go/internal/domain/overtime"
	"github.com/cmlabs-hris/pharmacy-shift-go/internal/domain/shift"
	"github.com/shopspring/decimal"
)

var minutesPerHour = decimal.NewFromInt(60)

// CalculateOvertimeHours measures how far at lies past the nearest shift end that is not
// after it. A time before the first shift end yields zero minutes against the morning
// shift. The result depends only on its inputs.
func CalculateOvertimeHours(at string, times shift.TimesMap) (overtime.Estimate, error) {
	atMinutes, err := shift.ParseClock(at)
	if err != nil {
		return overtime.Estimate{}, err
	}

	nearest := shift.Shift("")
	nearestEnd := -1
	for _, s := range shift.Shifts {
		endMinutes, err := shift.ParseClock(times.For(s).End)
		if err != nil {
			continue
		}
		if endMinutes <= atMinutes && endMinutes > nearestEnd {
			nearest, nearestEnd = s, endMinutes
		}
	}

	if nearest == "" {
		window := times.For(shift.Morning)
		return overtime.Estimate{
			Hours:        decimal.Zero,
			Minutes:      0,
			NearestShift: shift.Morning,
			ShiftEndTime: window.End,
			CurrentTime:  shift.FormatClock(atMinutes),
			CalculationDetails: fmt.Sprintf(
				"%s is before the end of the morning shift (%s-%s); no overtime yet",
				shift.FormatClock(atMinutes), window.Start, window.End,
			),
		}, nil
	}

	window := times.For(nearest)
	minutes := atMinutes - nearestEnd
	hours := decimal.NewFromInt(int64(minutes)).Div(minutesPerHour).Round(2)

	return overtime.Estimate{
		Hours:        hours,
		Minutes:      minutes,
		NearestShift: nearest,
		ShiftEndTime: window.End,
		CurrentTime:  shift.FormatClock(atMinutes),
		CalculationDetails: fmt.Sprintf(
			"%s is %d minutes past the end of the %s shift (%s-%s) = %s hours",
			shift.FormatClock(atMinutes), minutes, nearest, window.Start, window.End, hours.StringFixed(2),
		),
	}, nil
}

// FallbackEstimate is returned when the shift windows cannot be loaded. The user is
// expected to enter the hours by hand.
func FallbackEstimate(at string) overtime.Estimate {
	if canonical, err := shift.CanonicalClock(at); err == nil {
		at = canonical
	}
	return overtime.Estimate{
		Hours:              decimal.Zero,
		Minutes:            0,
		NearestShift:       shift.Evening,
		ShiftEndTime:       shift.DefaultsFor(shift.Evening).End,
		CurrentTime:        at,
		CalculationDetails: "Shift times are unavailable; enter the overtime hours manually",
		IsFallback:         true,
	}
}
