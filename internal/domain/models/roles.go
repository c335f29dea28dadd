// internal/domain/models/roles.go
package models

import "strings"

// Role is an employee's role in the attendance system.
type Role string

const (
	RoleEmployee Role = "EMPLOYEE"
	RoleAdmin    Role = "ADMIN"
)

// RoleOption represents a role choice for the UI.
type RoleOption struct {
	Value Role   // The value sent to the API
	Label string // The display label in the UI
}

// AllRoles lists the roles offered in employee forms.
var AllRoles = []RoleOption{
	{Value: RoleEmployee, Label: "Employee"},
	{Value: RoleAdmin, Label: "Admin"},
}

// ParseRole normalizes form input to a Role. Unknown values fall back to EMPLOYEE.
func ParseRole(s string) Role {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin
	default:
		return RoleEmployee
	}
}
