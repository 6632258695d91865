package user

import "errors"

var (
	ErrInvalidToken            = errors.New("invalid or missing access token")
	ErrUnknownRole             = errors.New("unknown role")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
	ErrEmployeeIDRequired      = errors.New("employee_id claim is required for this role")
	ErrDepartmentIDRequired    = errors.New("department_id claim is required for this role")
	ErrAdminPrivilegeRequired  = errors.New("admin privilege required")
)
