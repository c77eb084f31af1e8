// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package book implements the catalog's central aggregate: the book record,
// its category assignments, and the filtered, sorted, paginated listing that
// powers the public browse endpoint.
package book

import "time"

// Book represents a single catalog entry.
//
// Rating is denormalized: it holds the arithmetic mean of all review ratings
// and is recomputed by the review service on every review mutation.
type Book struct {
	ID            int64      `json:"id"`
	Title         string     `json:"title"`
	ISBN          string     `json:"isbn"`
	PublishedDate *time.Time `json:"published_date"`
	AuthorID      int64      `json:"author_id"`
	CategoryIDs   []int64    `json:"category_ids"`
	Rating        float64    `json:"rating"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// Filter holds the optional predicates for a paginated book search.
// Nil fields do not constrain the result; all bounds are inclusive.
type Filter struct {
	AuthorID       *int64
	CategoryID     *int64
	RatingMin      *float64
	RatingMax      *float64
	PublishedStart *time.Time
	PublishedEnd   *time.Time
}

// Global field names for validation
const (
	FieldTitle         = "title"
	FieldISBN          = "isbn"
	FieldPublishedDate = "published_date"
	FieldAuthorID      = "author_id"
	FieldCategoryIDs   = "category_ids"
)
