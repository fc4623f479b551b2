package overtime

import "errors"

var (
	ErrRecordNotFound     = errors.New("overtime record not found")
	ErrRecordNotPending   = errors.New("overtime record has already been reviewed")
	ErrInvalidHours       = errors.New("hours must be greater than 0 and at most 24")
	ErrForbiddenEmployee  = errors.New("cannot access overtime of another employee")
	ErrEmployeeIDRequired = errors.New("employee_id is required")
)
