// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package user implements account management: registration, profile updates,
and role assignment.

# Architecture

  - Entities: User with its resolved role set.
  - Roles: Stored relationally (users.role / users.accountrole) and exposed
    as a [sec.UserRole] slice; the closed set is ADMIN and USER.
  - Security: ADMIN can only be granted by an existing admin, never
    self-assigned at registration.
*/
package user

import (
	"time"

	"github.com/taibuivan/shelfmark/internal/platform/sec"
)

// User represents a registered member of the Shelfmark platform.
type User struct {
	ID           int64          `json:"id"`
	Username     string         `json:"username"`
	Email        string         `json:"email"`
	PasswordHash string         `json:"-"` // Explicitly omitted from JSON for security.
	Roles        []sec.UserRole `json:"roles"`
	IsActive     bool           `json:"is_active"`
	LastLoginAt  *time.Time     `json:"last_login_at"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// HighestRole returns the most privileged role held by the user.
func (u *User) HighestRole() sec.UserRole {
	return sec.Highest(u.Roles)
}

// Role is a users.role row: one member of the closed role set, carrying its
// human-readable description.
type Role struct {
	ID          int64        `json:"id"`
	Name        sec.UserRole `json:"name"`
	Description *string      `json:"description"`
}

// # Field Identifiers

// Global field names for validation in the account domain.
const (
	FieldUsername = "username"
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldRoles    = "roles"
)
