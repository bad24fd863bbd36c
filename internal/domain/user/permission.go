package user

type Permission string

const (
	// Departments
	PermissionDepartmentView   Permission = "department.view"
	PermissionDepartmentManage Permission = "department.manage"

	// Employees
	PermissionEmployeeView   Permission = "employee.view"
	PermissionEmployeeManage Permission = "employee.manage"

	// Attendance
	PermissionAttendanceScan    Permission = "attendance.scan"
	PermissionAttendanceViewAll Permission = "attendance.view_all"
	PermissionAttendanceSeed    Permission = "attendance.seed"

	// Reports
	PermissionReportsView Permission = "reports.view"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionDepartmentView,
		PermissionDepartmentManage,
		PermissionEmployeeView,
		PermissionEmployeeManage,
		PermissionAttendanceScan,
		PermissionAttendanceViewAll,
		PermissionAttendanceSeed,
		PermissionReportsView,
	},
	RoleSupervisor: {
		PermissionDepartmentView,
		PermissionEmployeeView,
		PermissionAttendanceScan,
		PermissionAttendanceViewAll,
		PermissionReportsView,
	},
	RoleUser: {
		PermissionDepartmentView,
		PermissionEmployeeView,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	for _, p := range RolePermissions[role] {
		if p == permission {
			return true
		}
	}
	return false
}
