package user

import "errors"

var (
	ErrInsufficientPermissions = errors.New("insufficient permissions")
	ErrEmployeeLinkRequired    = errors.New("account is not linked to an employee")
)
