// Copyright (c) 2026 MineVale. All rights reserved.
// Author: contato@minevale.com.br

package sec

// # User Roles

// Role represents the authorization level granted to a community profile.
type Role string

const (
	// Unrestricted system access
	RoleAdmin Role = "admin"

	// Can moderate the forum and handle support tickets
	RoleMod Role = "mod"

	// Default role for standard registered players
	RoleUser Role = "user"
)

// Roles lists every valid role value, in validation order.
func Roles() []string {
	return []string{string(RoleUser), string(RoleMod), string(RoleAdmin)}
}

// IsValid reports whether r is one of the closed set of roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleMod, RoleUser:
		return true
	}
	return false
}

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r Role) AtLeast(target Role) bool {
	return r.level() >= target.level()
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r Role) level() int {

	// Linear scale (10-30) allows for future intermediate roles
	switch r {
	case RoleAdmin:
		return 30
	case RoleMod:
		return 20
	case RoleUser:
		return 10
	default:
		return 0
	}
}
