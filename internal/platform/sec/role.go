// Copyright (c) 2026 Tale of Talents. All rights reserved.
// Author: dev@taleoftalents.app

package sec

// # User Roles

// UserRole represents the authorization level granted to an account.
type UserRole string

const (
	// Unrestricted system access
	RoleAdmin UserRole = "admin"

	// Staff account that reviews submissions and can see non-public profiles
	RoleModerator UserRole = "moderator"

	// Default role for registered performers (individuals and groups)
	RoleTalent UserRole = "talent"
)

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

// IsStaff reports whether the role is permitted to moderate and to view
// profiles that are not publicly visible.
func (r UserRole) IsStaff() bool {
	return r.AtLeast(RoleModerator)
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r UserRole) level() int {

	// Linear scale (10-40) allows for future intermediate roles
	switch r {
	case RoleAdmin:
		return 40
	case RoleModerator:
		return 30
	case RoleTalent:
		return 10
	default:
		return 0
	}
}
