// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package category_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/shelfmark/internal/catalog/category"
	"github.com/taibuivan/shelfmark/internal/platform/apperr"
)

type fakeRepository struct {
	categories map[int64]*category.Category
	nameOwner  map[string]int64
	nextID     int64
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		categories: map[int64]*category.Category{},
		nameOwner:  map[string]int64{},
		nextID:     1,
	}
}

func (f *fakeRepository) ListCategories(_ context.Context, _, _ int) ([]*category.Category, int, error) {
	var out []*category.Category
	for _, c := range f.categories {
		out = append(out, c)
	}
	return out, len(out), nil
}

func (f *fakeRepository) GetCategory(_ context.Context, id int64) (*category.Category, error) {
	c, ok := f.categories[id]
	if !ok {
		return nil, apperr.NotFound("Category")
	}
	return c, nil
}

func (f *fakeRepository) FindIDByName(_ context.Context, name string) (*int64, error) {
	id, ok := f.nameOwner[name]
	if !ok {
		return nil, nil
	}
	return &id, nil
}

func (f *fakeRepository) CreateCategory(_ context.Context, c *category.Category) error {
	c.ID = f.nextID
	f.nextID++
	f.categories[c.ID] = c
	f.nameOwner[c.Name] = c.ID
	return nil
}

func (f *fakeRepository) UpdateCategory(_ context.Context, c *category.Category) error {
	existing, ok := f.categories[c.ID]
	if !ok {
		return apperr.NotFound("Category")
	}
	delete(f.nameOwner, existing.Name)
	f.categories[c.ID] = c
	f.nameOwner[c.Name] = c.ID
	return nil
}

func (f *fakeRepository) DeleteCategory(_ context.Context, id int64) error {
	c, ok := f.categories[id]
	if !ok {
		return apperr.NotFound("Category")
	}
	delete(f.nameOwner, c.Name)
	delete(f.categories, id)
	return nil
}

func (f *fakeRepository) CountExisting(_ context.Context, ids []int64) (int, error) {
	count := 0
	for _, id := range ids {
		if _, ok := f.categories[id]; ok {
			count++
		}
	}
	return count, nil
}

type fakeBooks struct {
	counts map[int64]int
}

func (f fakeBooks) CountByCategory(_ context.Context, categoryID int64) (int, error) {
	return f.counts[categoryID], nil
}

/*
TestService_CreateCategory covers slug derivation and the name uniqueness guard.
*/
func TestService_CreateCategory(t *testing.T) {
	t.Run("slug_derived_from_name", func(t *testing.T) {
		service := category.NewService(newFakeRepository(), fakeBooks{}, slog.Default())

		input := &category.Category{Name: "Science Fiction"}
		require.NoError(t, service.CreateCategory(context.Background(), input))

		assert.Equal(t, "science-fiction", input.Slug)
		assert.NotZero(t, input.ID)
	})

	t.Run("duplicate_name_conflicts", func(t *testing.T) {
		repo := newFakeRepository()
		service := category.NewService(repo, fakeBooks{}, slog.Default())

		require.NoError(t, service.CreateCategory(context.Background(), &category.Category{Name: "Go"}))

		err := service.CreateCategory(context.Background(), &category.Category{Name: "Go"})
		require.Error(t, err)
		assert.Equal(t, "CONFLICT", apperr.As(err).Code)
	})

	t.Run("empty_name_rejected", func(t *testing.T) {
		service := category.NewService(newFakeRepository(), fakeBooks{}, slog.Default())

		err := service.CreateCategory(context.Background(), &category.Category{Name: "  "})
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})
}

/*
TestService_DeleteCategory verifies the assignment delete guard.
*/
func TestService_DeleteCategory(t *testing.T) {
	repo := newFakeRepository()
	used := &category.Category{Name: "Go"}
	unused := &category.Category{Name: "Rust"}
	require.NoError(t, repo.CreateCategory(context.Background(), used))
	require.NoError(t, repo.CreateCategory(context.Background(), unused))

	books := fakeBooks{counts: map[int64]int{used.ID: 3}}
	service := category.NewService(repo, books, slog.Default())

	t.Run("assigned_category_refused", func(t *testing.T) {
		err := service.DeleteCategory(context.Background(), used.ID)
		require.Error(t, err)
		assert.Equal(t, "CONFLICT", apperr.As(err).Code)
	})

	t.Run("unassigned_category_deleted", func(t *testing.T) {
		require.NoError(t, service.DeleteCategory(context.Background(), unused.ID))
	})
}
