package user

type Permission string

const (
	// Shift times
	PermissionShiftView   Permission = "shift.view"
	PermissionShiftManage Permission = "shift.manage"

	// Schedule
	PermissionScheduleView   Permission = "schedule.view"
	PermissionScheduleManage Permission = "schedule.manage"

	// Overtime
	PermissionOvertimeViewOwn Permission = "overtime.view_own"
	PermissionOvertimeViewAll Permission = "overtime.view_all"
	PermissionOvertimeCreate  Permission = "overtime.create"
	PermissionOvertimeApprove Permission = "overtime.approve"

	// Reports
	PermissionReportsView Permission = "reports.view"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleOwner: {
		PermissionShiftView,
		PermissionShiftManage,
		PermissionScheduleView,
		PermissionScheduleManage,
		PermissionOvertimeViewOwn,
		PermissionOvertimeViewAll,
		PermissionOvertimeCreate,
		PermissionOvertimeApprove,
		PermissionReportsView,
	},
	RoleManager: {
		PermissionShiftView,
		PermissionScheduleView,
		PermissionScheduleManage,
		PermissionOvertimeViewOwn,
		PermissionOvertimeViewAll,
		PermissionOvertimeCreate,
		PermissionOvertimeApprove,
		PermissionReportsView,
	},
	RoleEmployee: {
		PermissionShiftView,
		PermissionScheduleView,
		PermissionOvertimeViewOwn,
		PermissionOvertimeCreate,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}
