package employee

import "errors"

var (
	ErrEmployeeNotFound     = errors.New("employee not found")
	ErrDirectoryUnavailable = errors.New("employee directory unavailable")
)
