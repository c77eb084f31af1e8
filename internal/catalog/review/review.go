// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package review implements reader reviews and the denormalized book rating
// they feed. Every review mutation recomputes the owning book's average.
package review

import "time"

// Review is a single reader's rating of a book, with an optional comment.
// Rating is an integer score from 1 to 5 inclusive.
type Review struct {
	ID        int64     `json:"id"`
	BookID    int64     `json:"book_id"`
	UserID    int64     `json:"user_id"`
	Rating    int       `json:"rating"`
	Comment   *string   `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Global field names for validation
const (
	FieldRating  = "rating"
	FieldComment = "comment"
)

// AverageRating returns the arithmetic mean of the given scores, or 0.0 for
// an empty slice. A book with no reviews is unrated, not rated zero-of-five;
// clients distinguish the two by the review count.
func AverageRating(scores []int) float64 {
	if len(scores) == 0 {
		return 0.0
	}

	sum := 0
	for _, score := range scores {
		sum += score
	}
	return float64(sum) / float64(len(scores))
}
