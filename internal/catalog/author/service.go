// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package author

import (
	"context"
	"log/slog"

	"github.com/taibuivan/shelfmark/internal/platform/apperr"
	"github.com/taibuivan/shelfmark/internal/platform/unique"
	"github.com/taibuivan/shelfmark/internal/platform/validate"
)

// BookCounter reports how many books reference a given author. The author
// service refuses to delete an author that still has books.
type BookCounter interface {
	CountByAuthor(context context.Context, authorID int64) (int, error)
}

type Service struct {
	repo   Repository
	books  BookCounter
	logger *slog.Logger
}

func NewService(repo Repository, books BookCounter, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		books:  books,
		logger: logger,
	}
}

func (service *Service) ListAuthors(context context.Context, limit, offset int) ([]*Author, int, error) {
	return service.repo.ListAuthors(context, limit, offset)
}

func (service *Service) GetAuthor(context context.Context, id int64) (*Author, error) {
	return service.repo.GetAuthor(context, id)
}

func (service *Service) CreateAuthor(context context.Context, author *Author) error {
	if err := validateAuthor(author); err != nil {
		return err
	}

	existingID, err := service.repo.FindIDByEmail(context, author.Email)
	if err != nil {
		return err
	}
	if err := unique.Check("Author", FieldEmail, author.Email, existingID, nil); err != nil {
		return err
	}

	if err := service.repo.CreateAuthor(context, author); err != nil {
		return err
	}

	service.logger.Info("author_created",
		slog.Int64("author_id", author.ID),
		slog.String("name", author.Name),
	)
	return nil
}

func (service *Service) UpdateAuthor(context context.Context, id int64, author *Author) error {
	author.ID = id

	if err := validateAuthor(author); err != nil {
		return err
	}

	existingID, err := service.repo.FindIDByEmail(context, author.Email)
	if err != nil {
		return err
	}
	if err := unique.Check("Author", FieldEmail, author.Email, existingID, &id); err != nil {
		return err
	}

	if err := service.repo.UpdateAuthor(context, author); err != nil {
		return err
	}

	service.logger.Info("author_updated", slog.Int64("author_id", author.ID))
	return nil
}

// DeleteAuthor removes an author unless books still reference them.
func (service *Service) DeleteAuthor(context context.Context, id int64) error {
	inUse, err := service.books.CountByAuthor(context, id)
	if err != nil {
		return err
	}
	if inUse > 0 {
		return apperr.Conflictf("Author is referenced by %d book(s) and cannot be deleted", inUse)
	}

	if err := service.repo.DeleteAuthor(context, id); err != nil {
		return err
	}

	service.logger.Warn("author_deleted", slog.Int64("author_id", id))
	return nil
}

func validateAuthor(author *Author) error {
	validator := &validate.Validator{}

	validator.Required(FieldName, author.Name).MaxLen(FieldName, author.Name, 200)
	validator.Required(FieldEmail, author.Email).Email(FieldEmail, author.Email)
	if author.Biography != nil {
		validator.MaxLen(FieldBiography, *author.Biography, 4000)
	}

	return validator.Err()
}
