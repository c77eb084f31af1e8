// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import "context"

type Repository interface {
	ListByBook(context context.Context, bookID int64, limit, offset int) ([]*Review, int, error)
	GetReview(context context.Context, id int64) (*Review, error)
	CreateReview(context context.Context, r *Review) error
	UpdateReview(context context.Context, r *Review) error
	DeleteReview(context context.Context, id int64) error
	ListRatings(context context.Context, bookID int64) ([]int, error)
}

// BookStore is the slice of the book domain the review service needs:
// existence checks before accepting a review, and the denormalized rating
// write-back after every mutation.
type BookStore interface {
	BookExists(context context.Context, id int64) (bool, error)
	UpdateRating(context context.Context, id int64, rating float64) error
}
