package shift

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cmlabs-hris/pharmacy-shift-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

var minutesPerHour = decimal.NewFromInt(60)

// DefaultsFor returns the built-in window used when a shift has no active config.
func DefaultsFor(s Shift) Times {
	switch s {
	case Morning:
		return Times{Start: "08:30", End: "12:00"}
	case Afternoon:
		return Times{Start: "15:00", End: "18:00"}
	default:
		return Times{Start: "19:00", End: "20:30"}
	}
}

// DefaultTimes returns a fresh map holding the defaults of every shift.
func DefaultTimes() TimesMap {
	m := make(TimesMap, len(Shifts))
	for _, s := range Shifts {
		m[s] = DefaultsFor(s)
	}
	return m
}

// EffectiveTimes merges configs over the defaults. Inactive configs and configs with an
// unusable window are ignored, so the result always holds all three shifts.
func EffectiveTimes(configs []ShiftTimeConfig) TimesMap {
	m := DefaultTimes()
	for _, c := range configs {
		if !c.IsActive || !c.Shift.IsValid() {
			continue
		}
		if !IsValidRange(c.StartTime, c.EndTime) {
			continue
		}
		m[c.Shift] = Times{Start: c.StartTime, End: c.EndTime}
	}
	return m
}

// ParseClock converts HH:MM to minutes since midnight.
func ParseClock(s string) (int, error) {
	if !validator.IsValidClock(s) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	hh, mm, _ := strings.Cut(s, ":")
	h, _ := strconv.Atoi(hh)
	m, _ := strconv.Atoi(mm)
	return h*60 + m, nil
}

// FormatClock renders minutes since midnight as zero-padded HH:MM.
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// CanonicalClock rewrites a valid clock string in zero-padded HH:MM form.
func CanonicalClock(s string) (string, error) {
	minutes, err := ParseClock(s)
	if err != nil {
		return "", err
	}
	return FormatClock(minutes), nil
}

// ComputeShiftHours returns (end - start) / 60 in hours without rounding.
func ComputeShiftHours(start, end string) (decimal.Decimal, error) {
	startMinutes, err := ParseClock(start)
	if err != nil {
		return decimal.Zero, err
	}
	endMinutes, err := ParseClock(end)
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromInt(int64(endMinutes - startMinutes)).Div(minutesPerHour), nil
}

// IsValidRange reports whether both times parse and start is strictly before end.
// Windows crossing midnight are rejected, not wrapped.
func IsValidRange(start, end string) bool {
	startMinutes, err := ParseClock(start)
	if err != nil {
		return false
	}
	endMinutes, err := ParseClock(end)
	if err != nil {
		return false
	}
	return startMinutes < endMinutes
}

// For returns the window of s, falling back to the default when m lacks it.
func (m TimesMap) For(s Shift) Times {
	if t, ok := m[s]; ok {
		return t
	}
	return DefaultsFor(s)
}

// Hours returns the duration of shift s under m.
func (m TimesMap) Hours(s Shift) (decimal.Decimal, error) {
	if !s.IsValid() {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidShift, s)
	}
	t := m.For(s)
	return ComputeShiftHours(t.Start, t.End)
}
