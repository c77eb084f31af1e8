// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import "strings"

// # User Roles

// UserRole represents the authorization level granted to an account.
//
// The set is closed: Shelfmark recognizes exactly ADMIN and USER. Role names
// are stored and transmitted in upper case.
type UserRole string

const (
	// Unrestricted system access, including catalog writes and user management
	RoleAdmin UserRole = "ADMIN"

	// Default role for standard registered users
	RoleUser UserRole = "USER"
)

// IsValid reports whether the role is one of the recognized values.
func (r UserRole) IsValid() bool {
	return r == RoleAdmin || r == RoleUser
}

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r UserRole) level() int {

	// Linear scale (10-40) allows for future intermediate roles
	switch r {
	case RoleAdmin:
		return 40
	case RoleUser:
		return 10
	default:
		return 0
	}
}

// # Role Set Parsing

// ParseRoleSet parses a comma-separated role string ("USER,ADMIN") into a
// deduplicated slice of recognized roles.
//
// Matching is case-insensitive and whitespace-tolerant. Unrecognized names
// are silently skipped. When no recognized role remains, the result falls
// back to [RoleUser] and defaulted reports true so callers can log the
// substitution.
func ParseRoleSet(raw string) (roles []UserRole, defaulted bool) {
	seen := map[UserRole]bool{}

	for _, part := range strings.Split(raw, ",") {
		candidate := UserRole(strings.ToUpper(strings.TrimSpace(part)))
		if !candidate.IsValid() || seen[candidate] {
			continue
		}
		seen[candidate] = true
		roles = append(roles, candidate)
	}

	if len(roles) == 0 {
		return []UserRole{RoleUser}, true
	}
	return roles, false
}

// Highest returns the most privileged role in the set, or [RoleUser] for an
// empty set. It backs the single "rol" claim in access tokens.
func Highest(roles []UserRole) UserRole {
	best := RoleUser
	for _, r := range roles {
		if r.level() > best.level() {
			best = r
		}
	}
	return best
}
