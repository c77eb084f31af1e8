// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/shelfmark/internal/platform/sec"
)

/*
TestParseRoleSet covers comma-separated parsing, case folding, deduplication,
and the USER fallback for unrecognized input.
*/
func TestParseRoleSet(t *testing.T) {
	tests := []struct {
		name          string
		raw           string
		wantRoles     []sec.UserRole
		wantDefaulted bool
	}{
		{"single_user", "USER", []sec.UserRole{sec.RoleUser}, false},
		{"both_roles", "USER,ADMIN", []sec.UserRole{sec.RoleUser, sec.RoleAdmin}, false},
		{"case_insensitive", "admin", []sec.UserRole{sec.RoleAdmin}, false},
		{"whitespace_tolerant", " user , admin ", []sec.UserRole{sec.RoleUser, sec.RoleAdmin}, false},
		{"unknown_skipped", "USER,SUPERVISOR", []sec.UserRole{sec.RoleUser}, false},
		{"duplicates_collapsed", "USER,user,USER", []sec.UserRole{sec.RoleUser}, false},
		{"all_unknown_falls_back", "SUPERVISOR,ROOT", []sec.UserRole{sec.RoleUser}, true},
		{"empty_falls_back", "", []sec.UserRole{sec.RoleUser}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roles, defaulted := sec.ParseRoleSet(tt.raw)

			assert.Equal(t, tt.wantRoles, roles)
			assert.Equal(t, tt.wantDefaulted, defaulted)
		})
	}
}

/*
TestUserRole_AtLeast verifies the role hierarchy comparison.
*/
func TestUserRole_AtLeast(t *testing.T) {
	assert.True(t, sec.RoleAdmin.AtLeast(sec.RoleUser))
	assert.True(t, sec.RoleAdmin.AtLeast(sec.RoleAdmin))
	assert.True(t, sec.RoleUser.AtLeast(sec.RoleUser))
	assert.False(t, sec.RoleUser.AtLeast(sec.RoleAdmin))
}

/*
TestHighest verifies the single-claim reduction used for access tokens.
*/
func TestHighest(t *testing.T) {
	assert.Equal(t, sec.RoleAdmin, sec.Highest([]sec.UserRole{sec.RoleUser, sec.RoleAdmin}))
	assert.Equal(t, sec.RoleUser, sec.Highest([]sec.UserRole{sec.RoleUser}))
	assert.Equal(t, sec.RoleUser, sec.Highest(nil))
}

/*
TestHashToken verifies determinism and hex encoding of session token hashes.
*/
func TestHashToken(t *testing.T) {
	first := sec.HashToken("opaque-refresh-token")
	second := sec.HashToken("opaque-refresh-token")

	assert.Equal(t, first, second)
	assert.Len(t, first, 64) // sha256 hex
	assert.NotEqual(t, first, sec.HashToken("different-token"))
}
