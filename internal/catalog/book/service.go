// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"context"
	"log/slog"

	"github.com/taibuivan/shelfmark/internal/platform/apperr"
	"github.com/taibuivan/shelfmark/internal/platform/unique"
	"github.com/taibuivan/shelfmark/internal/platform/validate"
	"github.com/taibuivan/shelfmark/pkg/slice"
)

// AuthorDirectory is the minimal view of the author domain the book service
// needs to enforce referential integrity on writes.
type AuthorDirectory interface {
	AuthorExists(context context.Context, id int64) (bool, error)
}

// CategoryDirectory reports how many of the given category IDs exist.
type CategoryDirectory interface {
	CountExisting(context context.Context, ids []int64) (int, error)
}

type Service struct {
	repo       Repository
	authors    AuthorDirectory
	categories CategoryDirectory
	logger     *slog.Logger
}

func NewService(repo Repository, authors AuthorDirectory, categories CategoryDirectory, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		authors:    authors,
		categories: categories,
		logger:     logger,
	}
}

// ListBooks resolves the sort expression and runs the filtered catalog query.
// It returns the page of books plus the total number of rows matching the
// filter (before pagination).
func (service *Service) ListBooks(context context.Context, filter Filter, sortExpr string, limit, offset int) ([]*Book, int, error) {
	sortSpec, err := ResolveSort(sortExpr)
	if err != nil {
		return nil, 0, err
	}
	return service.repo.ListBooks(context, filter, sortSpec, limit, offset)
}

func (service *Service) GetBook(context context.Context, id int64) (*Book, error) {
	return service.repo.GetBook(context, id)
}

func (service *Service) CreateBook(context context.Context, book *Book) error {
	if err := service.validateBook(context, book); err != nil {
		return err
	}

	// Advisory ISBN uniqueness probe; the unique index is the backstop.
	existingID, err := service.repo.FindIDByISBN(context, book.ISBN)
	if err != nil {
		return err
	}
	if err := unique.Check("Book", FieldISBN, book.ISBN, existingID, nil); err != nil {
		return err
	}

	if err := service.repo.CreateBook(context, book); err != nil {
		return err
	}

	service.logger.Info("book_created",
		slog.Int64("book_id", book.ID),
		slog.String("isbn", book.ISBN),
	)
	return nil
}

func (service *Service) UpdateBook(context context.Context, id int64, book *Book) error {
	book.ID = id

	if err := service.validateBook(context, book); err != nil {
		return err
	}

	existingID, err := service.repo.FindIDByISBN(context, book.ISBN)
	if err != nil {
		return err
	}
	if err := unique.Check("Book", FieldISBN, book.ISBN, existingID, &id); err != nil {
		return err
	}

	if err := service.repo.UpdateBook(context, book); err != nil {
		return err
	}

	service.logger.Info("book_updated", slog.Int64("book_id", book.ID))
	return nil
}

func (service *Service) DeleteBook(context context.Context, id int64) error {
	// Reviews cascade at the database level; no guard needed here.
	if err := service.repo.DeleteBook(context, id); err != nil {
		return err
	}

	service.logger.Warn("book_deleted", slog.Int64("book_id", id))
	return nil
}

// validateBook enforces field rules and referential integrity shared by
// create and update.
func (service *Service) validateBook(context context.Context, book *Book) error {
	book.CategoryIDs = slice.Dedupe(book.CategoryIDs)

	validator := &validate.Validator{}

	validator.Required(FieldTitle, book.Title).MaxLen(FieldTitle, book.Title, 255)
	validator.Required(FieldISBN, book.ISBN).ISBN(FieldISBN, book.ISBN)
	validator.Custom(FieldAuthorID, book.AuthorID < 1, "A valid author is required")
	validator.Custom(FieldCategoryIDs, len(book.CategoryIDs) == 0, "At least one category is required")

	if err := validator.Err(); err != nil {
		return err
	}

	exists, err := service.authors.AuthorExists(context, book.AuthorID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound("Author")
	}

	found, err := service.categories.CountExisting(context, book.CategoryIDs)
	if err != nil {
		return err
	}
	if found != len(book.CategoryIDs) {
		return apperr.NotFound("Category")
	}

	return nil
}
