// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination provides shared types and helpers for API list endpoints.
//
// # Overview
//
// It standardizes how page-based navigation is requested via query parameters
// and how the resulting metadata is delivered in the API response envelope.
// Pages are 0-indexed: page 0 with size 20 covers rows 0-19.
package pagination

import (
	"net/http"
	"strconv"
)

const (
	// DefaultSize is the number of items per page if not specified.
	DefaultSize = 20
	// MaxSize is the upper bound for items per page to prevent system abuse.
	MaxSize = 100
	// DefaultPage is the starting page (0-indexed).
	DefaultPage = 0
)

// Params holds the normalized page and size of a list request.
type Params struct {
	Page int
	Size int
}

// Offset returns the SQL OFFSET value derived from Page and Size.
func (p Params) Offset() int {
	return p.Page * p.Size
}

// Normalize clamps raw page/size values into a bounded, deterministic request.
//
// # Clamping Policy
//
// A negative page becomes 0. A size below 1 falls back to [DefaultSize];
// a size above [MaxSize] is capped at [MaxSize]. The result always yields
// a non-negative offset and a limit in [1, MaxSize].
func Normalize(page, size int) Params {
	if page < 0 {
		page = DefaultPage
	}

	if size < 1 {
		size = DefaultSize
	} else if size > MaxSize {
		size = MaxSize
	}

	return Params{Page: page, Size: size}
}

// Meta is the pagination metadata included in API list responses.
type Meta struct {
	Page       int `json:"page"`
	Size       int `json:"size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewMeta constructs pagination metadata for a response.
//
// It automatically calculates the TotalPages based on the total count and size.
func NewMeta(page, size, total int) Meta {
	totalPages := 0
	if size > 0 {
		totalPages = (total + size - 1) / size
	}

	return Meta{
		Page:       page,
		Size:       size,
		Total:      total,
		TotalPages: totalPages,
	}
}

// FromRequest parses "page" and "size" query parameters from an HTTP request.
//
// Missing or unparsable values fall back to the defaults before the
// standard [Normalize] clamping is applied.
func FromRequest(r *http.Request) Params {
	page := parseIntParam(r, "page", DefaultPage)
	size := parseIntParam(r, "size", DefaultSize)

	return Normalize(page, size)
}

// parseIntParam parses a single integer query parameter with a fallback default.
func parseIntParam(r *http.Request, key string, defaultVal int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return defaultVal
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return defaultVal
	}

	return n
}
