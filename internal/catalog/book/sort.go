// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"strings"

	"github.com/taibuivan/shelfmark/internal/platform/apperr"
	"github.com/taibuivan/shelfmark/internal/platform/database/schema"
)

// SortSpec is a resolved, injection-safe ordering instruction. Column is
// always taken from the whitelist below, never from client input.
type SortSpec struct {
	Column string
	Desc   bool
}

// sortableColumns whitelists the client-facing sort keys and maps them to
// physical column names. Anything outside this map is rejected.
var sortableColumns = map[string]string{
	"id":            schema.CatalogBook.ID,
	"title":         schema.CatalogBook.Title,
	"isbn":          schema.CatalogBook.ISBN,
	"publishedDate": schema.CatalogBook.PublishedDate,
	"rating":        schema.CatalogBook.Rating,
	"createdAt":     schema.CatalogBook.CreatedAt,
	"updatedAt":     schema.CatalogBook.UpdatedAt,
}

// DefaultSort orders by primary key ascending for stable pagination.
var DefaultSort = SortSpec{Column: schema.CatalogBook.ID}

// ResolveSort parses a client sort expression of the form "field" or
// "field,direction" (e.g. "publishedDate,desc") into a [SortSpec].
//
// Field matching is exact; direction matching is case-insensitive and only
// "desc" flips the order, every other direction token means ascending.
// An empty expression resolves to [DefaultSort]. Unknown fields return a
// VALIDATION_ERROR so typos fail loudly instead of silently reordering.
func ResolveSort(raw string) (SortSpec, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultSort, nil
	}

	field, direction, _ := strings.Cut(raw, ",")
	field = strings.TrimSpace(field)

	column, ok := sortableColumns[field]
	if !ok {
		return SortSpec{}, apperr.ValidationError("Unsupported sort field: " + field)
	}

	return SortSpec{
		Column: column,
		Desc:   strings.EqualFold(strings.TrimSpace(direction), "desc"),
	}, nil
}

// OrderBy renders the resolved sort as a SQL ORDER BY clause body ("b.publisheddate DESC").
// A secondary id tiebreaker keeps pagination stable when the primary sort
// column has duplicates.
func (s SortSpec) OrderBy() string {
	direction := "ASC"
	if s.Desc {
		direction = "DESC"
	}
	if s.Column == schema.CatalogBook.ID {
		return "b." + s.Column + " " + direction
	}
	return "b." + s.Column + " " + direction + ", b." + schema.CatalogBook.ID + " ASC"
}
