package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleValid(t *testing.T) {
	for _, r := range []Role{RoleAdmin, RoleStudent, RoleStaff, RoleDepartmentAdmin, RoleRepresentative} {
		assert.True(t, r.Valid(), "role %d should be valid", r)
	}
	assert.False(t, Role(0).Valid())
	assert.False(t, Role(6).Valid())
	assert.False(t, Role(-1).Valid())
}

func TestRoleString(t *testing.T) {
	assert.Equal(t, "Admin", RoleAdmin.String())
	assert.Equal(t, "Student", RoleStudent.String())
	assert.Equal(t, "Staff", RoleStaff.String())
	assert.Equal(t, "Department", RoleDepartmentAdmin.String())
	assert.Equal(t, "Representative", RoleRepresentative.String())
	assert.Equal(t, "Role(42)", Role(42).String())
}

func TestRoleIn(t *testing.T) {
	assert.True(t, RoleStaff.In(RoleAdmin, RoleStaff))
	assert.False(t, RoleStudent.In(RoleAdmin, RoleStaff))

	// An empty set admits everyone.
	assert.True(t, RoleStudent.In())
}
