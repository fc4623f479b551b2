package schedule

import "errors"

var (
	ErrAssignmentNotFound      = errors.New("schedule assignment not found")
	ErrAssignmentExists        = errors.New("employee is already assigned to this shift on this date")
	ErrInvalidLeaveType        = errors.New("leave type must be one of: sick, personal, overtime")
	ErrInvalidDateRange        = errors.New("start_date must not be after end_date")
	ErrEmployeeIDNormalization = errors.New("unrecognized employee reference")
)
