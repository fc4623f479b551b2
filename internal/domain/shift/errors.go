package shift

import "errors"

var (
	ErrInvalidTimeFormat     = errors.New("invalid time format, use HH:MM (24-hour)")
	ErrInvalidTimeRange      = errors.New("shift start time must be before end time on the same day")
	ErrInvalidShift          = errors.New("shift must be one of: morning, afternoon, evening")
	ErrShiftConfigNotFound   = errors.New("shift time config not found")
	ErrShiftTimesUnavailable = errors.New("shift times unavailable")
)
