// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package category

import (
	"context"
	"log/slog"

	"github.com/taibuivan/shelfmark/internal/platform/apperr"
	"github.com/taibuivan/shelfmark/internal/platform/unique"
	"github.com/taibuivan/shelfmark/internal/platform/validate"
	"github.com/taibuivan/shelfmark/pkg/slug"
)

// BookCounter reports how many books are assigned to a given category. The
// category service refuses to delete a category that is still in use.
type BookCounter interface {
	CountByCategory(context context.Context, categoryID int64) (int, error)
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

func (service *Service) ListCategories(context context.Context, limit, offset int) ([]*Category, int, error) {
	return service.repo.ListCategories(context, limit, offset)
}

func (service *Service) GetCategory(context context.Context, id int64) (*Category, error) {
	return service.repo.GetCategory(context, id)
}

func (service *Service) CreateCategory(context context.Context, category *Category) error {
	if err := validateCategory(category); err != nil {
		return err
	}

	existingID, err := service.repo.FindIDByName(context, category.Name)
	if err != nil {
		return err
	}
	if err := unique.Check("Category", FieldName, category.Name, existingID, nil); err != nil {
		return err
	}

	category.Slug = slug.From(category.Name)

	if err := service.repo.CreateCategory(context, category); err != nil {
		return err
	}

	service.logger.Info("category_created",
		slog.Int64("category_id", category.ID),
		slog.String("slug", category.Slug),
	)
	return nil
}

func (service *Service) UpdateCategory(context context.Context, id int64, category *Category) error {
	category.ID = id

	if err := validateCategory(category); err != nil {
		return err
	}

	existingID, err := service.repo.FindIDByName(context, category.Name)
	if err != nil {
		return err
	}
	if err := unique.Check("Category", FieldName, category.Name, existingID, &id); err != nil {
		return err
	}

	category.Slug = slug.From(category.Name)

	if err := service.repo.UpdateCategory(context, category); err != nil {
		return err
	}

	service.logger.Info("category_updated", slog.Int64("category_id", category.ID))
	return nil
}

// DeleteCategory removes a category unless books are still assigned to it.
func (service *Service) DeleteCategory(context context.Context, id int64) error {
	inUse, err := service.books.CountByCategory(context, id)
	if err != nil {
		return err
	}
	if inUse > 0 {
		return apperr.Conflictf("Category is assigned to %d book(s) and cannot be deleted", inUse)
	}

	if err := service.repo.DeleteCategory(context, id); err != nil {
		return err
	}

	service.logger.Warn("category_deleted", slog.Int64("category_id", id))
	return nil
}

func validateCategory(category *Category) error {
	validator := &validate.Validator{}

	validator.Required(FieldName, category.Name).MaxLen(FieldName, category.Name, 100)
	if category.Description != nil {
		validator.MaxLen(FieldDescription, *category.Description, 1000)
	}

	return validator.Err()
}
