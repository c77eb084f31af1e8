// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"context"
	"log/slog"

	"github.com/taibuivan/shelfmark/internal/platform/apperr"
	"github.com/taibuivan/shelfmark/internal/platform/sec"
	"github.com/taibuivan/shelfmark/internal/platform/validate"
)

type Service struct {
	repo   Repository
	books  BookStore
	logger *slog.Logger
}

func NewService(repo Repository, books BookStore, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		books:  books,
		logger: logger,
	}
}

func (service *Service) ListByBook(context context.Context, bookID int64, limit, offset int) ([]*Review, int, error) {
	exists, err := service.books.BookExists(context, bookID)
	if err != nil {
		return nil, 0, err
	}
	if !exists {
		return nil, 0, apperr.NotFound("Book")
	}

	return service.repo.ListByBook(context, bookID, limit, offset)
}

func (service *Service) GetReview(context context.Context, id int64) (*Review, error) {
	return service.repo.GetReview(context, id)
}

// CreateReview stores a review on behalf of the authenticated user and
// refreshes the book's denormalized rating. The author is always the caller,
// never a field of the payload.
func (service *Service) CreateReview(context context.Context, bookID, userID int64, review *Review) error {
	review.BookID = bookID
	review.UserID = userID

	if err := validateReview(review); err != nil {
		return err
	}

	exists, err := service.books.BookExists(context, bookID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound("Book")
	}

	if err := service.repo.CreateReview(context, review); err != nil {
		return err
	}

	if err := service.refreshRating(context, bookID); err != nil {
		return err
	}

	service.logger.Info("review_created",
		slog.Int64("review_id", review.ID),
		slog.Int64("book_id", bookID),
		slog.Int("rating", review.Rating),
	)
	return nil
}

// UpdateReview modifies a review if the actor owns it or is an admin,
// then refreshes the book rating.
func (service *Service) UpdateReview(context context.Context, id int64, actor *sec.AuthClaims, review *Review) error {
	existing, err := service.repo.GetReview(context, id)
	if err != nil {
		return err
	}
	if err := authorizeActor(existing, actor); err != nil {
		return err
	}

	review.ID = id
	review.BookID = existing.BookID
	review.UserID = existing.UserID

	if err := validateReview(review); err != nil {
		return err
	}

	if err := service.repo.UpdateReview(context, review); err != nil {
		return err
	}

	if err := service.refreshRating(context, review.BookID); err != nil {
		return err
	}

	service.logger.Info("review_updated", slog.Int64("review_id", id))
	return nil
}

// DeleteReview removes a review if the actor owns it or is an admin,
// then refreshes the book rating.
func (service *Service) DeleteReview(context context.Context, id int64, actor *sec.AuthClaims) error {
	existing, err := service.repo.GetReview(context, id)
	if err != nil {
		return err
	}
	if err := authorizeActor(existing, actor); err != nil {
		return err
	}

	if err := service.repo.DeleteReview(context, id); err != nil {
		return err
	}

	if err := service.refreshRating(context, existing.BookID); err != nil {
		return err
	}

	service.logger.Warn("review_deleted", slog.Int64("review_id", id))
	return nil
}

// refreshRating recomputes and persists the book's review average.
func (service *Service) refreshRating(context context.Context, bookID int64) error {
	scores, err := service.repo.ListRatings(context, bookID)
	if err != nil {
		return err
	}
	return service.books.UpdateRating(context, bookID, AverageRating(scores))
}

func authorizeActor(existing *Review, actor *sec.AuthClaims) error {
	if actor == nil {
		return apperr.Unauthorized("Authentication required")
	}
	if existing.UserID != actor.UserID && !actor.Role.AtLeast(sec.RoleAdmin) {
		return apperr.Forbidden("You can only modify your own reviews")
	}
	return nil
}

func validateReview(review *Review) error {
	validator := &validate.Validator{}

	validator.Range(FieldRating, review.Rating, 1, 5)
	if review.Comment != nil {
		validator.MaxLen(FieldComment, *review.Comment, 2000)
	}

	return validator.Err()
}
