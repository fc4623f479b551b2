package shift

import "time"

type Shift string

const (
	Morning   Shift = "morning"
	Afternoon Shift = "afternoon"
	Evening   Shift = "evening"
)

// Shifts lists the shifts in chronological order of the working day.
var Shifts = []Shift{Morning, Afternoon, Evening}

var ShiftValues = []string{
	string(Morning),
	string(Afternoon),
	string(Evening),
}

func (s Shift) IsValid() bool {
	switch s {
	case Morning, Afternoon, Evening:
		return true
	}
	return false
}

// Order returns the position of s within the working day, or -1 if unknown.
func (s Shift) Order() int {
	for i, v := range Shifts {
		if v == s {
			return i
		}
	}
	return -1
}

// ShiftTimeConfig is the administrator-maintained window for one shift.
// Inactive configs are kept for history and fall back to the defaults.
type ShiftTimeConfig struct {
	ID        string
	Shift     Shift
	StartTime string // HH:MM
	EndTime   string // HH:MM
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Times is a same-day window expressed as HH:MM strings.
type Times struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// TimesMap holds the effective window of every shift for one computation.
type TimesMap map[Shift]Times
