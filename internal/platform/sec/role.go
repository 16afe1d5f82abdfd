// Copyright (c) 2026 Artdex. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// # Editor Roles

// EditorRole represents the authorization level granted to an editor account.
type EditorRole string

const (
	// Unrestricted system access
	RoleAdmin EditorRole = "admin"

	// Can ban/unban artists and soft-delete entries
	RoleModerator EditorRole = "moderator"

	// Default role: can create and edit artist entries
	RoleEditor EditorRole = "editor"
)

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r EditorRole) AtLeast(target EditorRole) bool {
	return r.level() >= target.level()
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r EditorRole) level() int {

	// Linear scale (10-30) allows for future intermediate roles
	switch r {
	case RoleAdmin:
		return 30
	case RoleModerator:
		return 20
	case RoleEditor:
		return 10
	default:
		return 0
	}
}
