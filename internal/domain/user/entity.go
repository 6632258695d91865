package user

type Role string

const (
	RoleAdmin    Role = "admin"    // System administrator - full access
	RoleHR       Role = "hr"       // Human resources - all departments
	RoleDirector Role = "director" // Hospital director - all departments, read only
	RoleManager  Role = "manager"  // Department head - own department
	RoleEmployee Role = "employee" // Staff - own records
)

var RoleValues = []string{
	string(RoleAdmin),
	string(RoleHR),
	string(RoleDirector),
	string(RoleManager),
	string(RoleEmployee),
}

// Principal is the authenticated caller as described by the access token claims.
type Principal struct {
	UserID       string
	EmployeeID   string
	DepartmentID string
	Role         Role
}

// PrincipalFromClaims reads the caller from verified access token claims.
// Optional claims may be absent or null.
func PrincipalFromClaims(claims map[string]interface{}) (Principal, error) {
	role, _ := claims["role"].(string)
	if role == "" {
		return Principal{}, ErrInvalidToken
	}
	if _, ok := RolePermissions[Role(role)]; !ok {
		return Principal{}, ErrUnknownRole
	}

	userID, _ := claims["user_id"].(string)
	employeeID, _ := claims["employee_id"].(string)
	departmentID, _ := claims["department_id"].(string)

	return Principal{
		UserID:       userID,
		EmployeeID:   employeeID,
		DepartmentID: departmentID,
		Role:         Role(role),
	}, nil
}
