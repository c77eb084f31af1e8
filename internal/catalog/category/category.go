// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package category

import "time"

// Category is a catalog classification bucket ("Science Fiction", "Go").
// Slug is derived from the name on every write and used in browse URLs.
type Category struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Global field names for validation
const (
	FieldName        = "name"
	FieldDescription = "description"
)
