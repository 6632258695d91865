package user

type Permission string

const (
	// Self service
	PermissionAttendanceViewOwn Permission = "attendance.view_own"

	// Reports
	PermissionReportsView     Permission = "reports.view"
	PermissionReportsViewAll  Permission = "reports.view_all"
	PermissionReportsExport   Permission = "reports.export"
	PermissionSnapshotsManage Permission = "snapshots.manage"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		// Admin has all permissions
		PermissionAttendanceViewOwn,
		PermissionReportsView,
		PermissionReportsViewAll,
		PermissionReportsExport,
		PermissionSnapshotsManage,
	},
	RoleHR: {
		PermissionAttendanceViewOwn,
		PermissionReportsView,
		PermissionReportsViewAll,
		PermissionReportsExport,
	},
	RoleDirector: {
		PermissionAttendanceViewOwn,
		PermissionReportsView,
		PermissionReportsViewAll,
		PermissionReportsExport,
	},
	RoleManager: {
		// Manager sees and prints their own department
		PermissionAttendanceViewOwn,
		PermissionReportsView,
		PermissionReportsExport,
	},
	RoleEmployee: {
		PermissionAttendanceViewOwn,
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
