package models

import "fmt"

// Role is the closed set of account roles. Values match the seeded
// rows in the roles table and must not be reordered.
type Role int64

const (
	RoleAdmin           Role = 1
	RoleStudent         Role = 2
	RoleStaff           Role = 3
	RoleDepartmentAdmin Role = 4
	RoleRepresentative  Role = 5
)

// Valid reports whether r is one of the seeded roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleStudent, RoleStaff, RoleDepartmentAdmin, RoleRepresentative:
		return true
	}
	return false
}

// String returns the seeded role name.
func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "Admin"
	case RoleStudent:
		return "Student"
	case RoleStaff:
		return "Staff"
	case RoleDepartmentAdmin:
		return "Department"
	case RoleRepresentative:
		return "Representative"
	}
	return fmt.Sprintf("Role(%d)", int64(r))
}

// In reports whether r is a member of roles. An empty set admits every
// valid role.
func (r Role) In(roles ...Role) bool {
	if len(roles) == 0 {
		return true
	}
	for _, candidate := range roles {
		if r == candidate {
			return true
		}
	}
	return false
}
