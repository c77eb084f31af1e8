// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package unique implements the advisory uniqueness check shared by every
service that enforces a natural-key constraint (book ISBN, author email,
category name, account username/email).

# Semantics

A value is acceptable when no row owns it, or when the only owner is the row
being updated. Services pass the owning row's ID as excludingID on updates
and nil on creates.

# Advisory, not authoritative

These checks run before the write and produce friendly 409 responses naming
the offending field. Concurrent writers can still race past them; the
database unique index is the authoritative backstop, surfaced through
[dberr.Wrap]'s SQLSTATE 23505 mapping.
*/
package unique

import (
	"github.com/taibuivan/shelfmark/internal/platform/apperr"
)

// Check evaluates an advisory uniqueness probe result.
//
// existingID is the ID of the row currently owning the value, or nil when the
// value is free. excludingID is the ID of the row being updated, or nil on
// creates. It returns a CONFLICT [apperr.AppError] naming field and value
// when another row owns the value.
func Check(resource, field, value string, existingID, excludingID *int64) error {
	if existingID == nil {
		return nil
	}
	if excludingID != nil && *existingID == *excludingID {
		return nil
	}
	return apperr.Conflictf("%s with %s %q already exists", resource, field, value)
}
