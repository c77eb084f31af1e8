// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package author_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/shelfmark/internal/catalog/author"
	"github.com/taibuivan/shelfmark/internal/platform/apperr"
)

type fakeRepository struct {
	authors    map[int64]*author.Author
	emailOwner map[string]int64
	nextID     int64
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		authors:    map[int64]*author.Author{},
		emailOwner: map[string]int64{},
		nextID:     1,
	}
}

func (f *fakeRepository) ListAuthors(_ context.Context, _, _ int) ([]*author.Author, int, error) {
	var out []*author.Author
	for _, a := range f.authors {
		out = append(out, a)
	}
	return out, len(out), nil
}

func (f *fakeRepository) GetAuthor(_ context.Context, id int64) (*author.Author, error) {
	a, ok := f.authors[id]
	if !ok {
		return nil, apperr.NotFound("Author")
	}
	return a, nil
}

func (f *fakeRepository) FindIDByEmail(_ context.Context, email string) (*int64, error) {
	id, ok := f.emailOwner[email]
	if !ok {
		return nil, nil
	}
	return &id, nil
}

func (f *fakeRepository) CreateAuthor(_ context.Context, a *author.Author) error {
	a.ID = f.nextID
	f.nextID++
	f.authors[a.ID] = a
	f.emailOwner[a.Email] = a.ID
	return nil
}

func (f *fakeRepository) UpdateAuthor(_ context.Context, a *author.Author) error {
	existing, ok := f.authors[a.ID]
	if !ok {
		return apperr.NotFound("Author")
	}
	delete(f.emailOwner, existing.Email)
	f.authors[a.ID] = a
	f.emailOwner[a.Email] = a.ID
	return nil
}

func (f *fakeRepository) DeleteAuthor(_ context.Context, id int64) error {
	a, ok := f.authors[id]
	if !ok {
		return apperr.NotFound("Author")
	}
	delete(f.emailOwner, a.Email)
	delete(f.authors, id)
	return nil
}

func (f *fakeRepository) AuthorExists(_ context.Context, id int64) (bool, error) {
	_, ok := f.authors[id]
	return ok, nil
}

// fakeBooks returns a fixed book count per author ID.
type fakeBooks struct {
	counts map[int64]int
}

func (f fakeBooks) CountByAuthor(_ context.Context, authorID int64) (int, error) {
	return f.counts[authorID], nil
}

/*
TestService_CreateAuthor covers validation and the email uniqueness guard.
*/
func TestService_CreateAuthor(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		service := author.NewService(newFakeRepository(), fakeBooks{}, slog.Default())

		input := &author.Author{Name: "Andy Hunt", Email: "andy@example.com"}
		require.NoError(t, service.CreateAuthor(context.Background(), input))
		assert.NotZero(t, input.ID)
	})

	t.Run("invalid_email_rejected", func(t *testing.T) {
		service := author.NewService(newFakeRepository(), fakeBooks{}, slog.Default())

		input := &author.Author{Name: "Andy Hunt", Email: "not-an-email"}
		err := service.CreateAuthor(context.Background(), input)
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})

	t.Run("duplicate_email_conflicts", func(t *testing.T) {
		repo := newFakeRepository()
		service := author.NewService(repo, fakeBooks{}, slog.Default())

		require.NoError(t, service.CreateAuthor(context.Background(), &author.Author{Name: "Andy Hunt", Email: "andy@example.com"}))

		err := service.CreateAuthor(context.Background(), &author.Author{Name: "Impostor", Email: "andy@example.com"})
		require.Error(t, err)
		assert.Equal(t, "CONFLICT", apperr.As(err).Code)
	})
}

/*
TestService_DeleteAuthor verifies the referential delete guard.
*/
func TestService_DeleteAuthor(t *testing.T) {
	repo := newFakeRepository()
	first := &author.Author{Name: "Andy Hunt", Email: "andy@example.com"}
	second := &author.Author{Name: "Dave Thomas", Email: "dave@example.com"}
	require.NoError(t, repo.CreateAuthor(context.Background(), first))
	require.NoError(t, repo.CreateAuthor(context.Background(), second))

	books := fakeBooks{counts: map[int64]int{first.ID: 2}}
	service := author.NewService(repo, books, slog.Default())

	t.Run("referenced_author_refused", func(t *testing.T) {
		err := service.DeleteAuthor(context.Background(), first.ID)
		require.Error(t, err)

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "CONFLICT", ae.Code)
	})

	t.Run("unreferenced_author_deleted", func(t *testing.T) {
		require.NoError(t, service.DeleteAuthor(context.Background(), second.ID))

		_, err := repo.GetAuthor(context.Background(), second.ID)
		assert.Error(t, err)
	})
}
