// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/shelfmark/internal/catalog/book"
	"github.com/taibuivan/shelfmark/internal/platform/apperr"
)

// fakeRepository is an in-memory Repository double that records the query
// parameters it receives.
type fakeRepository struct {
	books      map[int64]*book.Book
	isbnOwner  map[string]int64
	nextID     int64
	listedSort book.SortSpec
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		books:     map[int64]*book.Book{},
		isbnOwner: map[string]int64{},
		nextID:    1,
	}
}

func (f *fakeRepository) ListBooks(_ context.Context, _ book.Filter, sort book.SortSpec, _, _ int) ([]*book.Book, int, error) {
	f.listedSort = sort
	var out []*book.Book
	for _, b := range f.books {
		out = append(out, b)
	}
	return out, len(out), nil
}

func (f *fakeRepository) GetBook(_ context.Context, id int64) (*book.Book, error) {
	b, ok := f.books[id]
	if !ok {
		return nil, apperr.NotFound("Book")
	}
	return b, nil
}

func (f *fakeRepository) FindIDByISBN(_ context.Context, isbn string) (*int64, error) {
	id, ok := f.isbnOwner[isbn]
	if !ok {
		return nil, nil
	}
	return &id, nil
}

func (f *fakeRepository) CreateBook(_ context.Context, b *book.Book) error {
	b.ID = f.nextID
	f.nextID++
	f.books[b.ID] = b
	f.isbnOwner[b.ISBN] = b.ID
	return nil
}

func (f *fakeRepository) UpdateBook(_ context.Context, b *book.Book) error {
	existing, ok := f.books[b.ID]
	if !ok {
		return apperr.NotFound("Book")
	}
	delete(f.isbnOwner, existing.ISBN)
	f.books[b.ID] = b
	f.isbnOwner[b.ISBN] = b.ID
	return nil
}

func (f *fakeRepository) DeleteBook(_ context.Context, id int64) error {
	b, ok := f.books[id]
	if !ok {
		return apperr.NotFound("Book")
	}
	delete(f.isbnOwner, b.ISBN)
	delete(f.books, id)
	return nil
}

func (f *fakeRepository) BookExists(_ context.Context, id int64) (bool, error) {
	_, ok := f.books[id]
	return ok, nil
}

func (f *fakeRepository) UpdateRating(_ context.Context, id int64, rating float64) error {
	b, ok := f.books[id]
	if !ok {
		return apperr.NotFound("Book")
	}
	b.Rating = rating
	return nil
}

func (f *fakeRepository) CountByAuthor(_ context.Context, authorID int64) (int, error) {
	count := 0
	for _, b := range f.books {
		if b.AuthorID == authorID {
			count++
		}
	}
	return count, nil
}

func (f *fakeRepository) CountByCategory(_ context.Context, categoryID int64) (int, error) {
	count := 0
	for _, b := range f.books {
		for _, c := range b.CategoryIDs {
			if c == categoryID {
				count++
			}
		}
	}
	return count, nil
}

// fakeAuthors treats every ID below 100 as an existing author.
type fakeAuthors struct{}

func (fakeAuthors) AuthorExists(_ context.Context, id int64) (bool, error) {
	return id < 100, nil
}

// fakeCategories treats every ID below 100 as an existing category.
type fakeCategories struct{}

func (fakeCategories) CountExisting(_ context.Context, ids []int64) (int, error) {
	count := 0
	for _, id := range ids {
		if id < 100 {
			count++
		}
	}
	return count, nil
}

func newTestService(repo *fakeRepository) *book.Service {
	return book.NewService(repo, fakeAuthors{}, fakeCategories{}, slog.Default())
}

func validBook() *book.Book {
	return &book.Book{
		Title:       "The Pragmatic Programmer",
		ISBN:        "9780132350884",
		AuthorID:    1,
		CategoryIDs: []int64{1, 2},
	}
}

/*
TestService_CreateBook covers the write-path guards: field validation,
referential checks, and ISBN uniqueness.
*/
func TestService_CreateBook(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo := newFakeRepository()
		service := newTestService(repo)

		input := validBook()
		require.NoError(t, service.CreateBook(context.Background(), input))
		assert.NotZero(t, input.ID)
	})

	t.Run("duplicate_category_ids_collapsed", func(t *testing.T) {
		repo := newFakeRepository()
		service := newTestService(repo)

		input := validBook()
		input.CategoryIDs = []int64{1, 1, 2}
		require.NoError(t, service.CreateBook(context.Background(), input))
		assert.Equal(t, []int64{1, 2}, input.CategoryIDs)
	})

	t.Run("invalid_isbn_rejected", func(t *testing.T) {
		service := newTestService(newFakeRepository())

		input := validBook()
		input.ISBN = "9780132350885" // bad check digit

		err := service.CreateBook(context.Background(), input)
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})

	t.Run("no_categories_rejected", func(t *testing.T) {
		service := newTestService(newFakeRepository())

		input := validBook()
		input.CategoryIDs = nil

		err := service.CreateBook(context.Background(), input)
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})

	t.Run("missing_author_rejected", func(t *testing.T) {
		service := newTestService(newFakeRepository())

		input := validBook()
		input.AuthorID = 999

		err := service.CreateBook(context.Background(), input)
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	})

	t.Run("duplicate_isbn_conflicts", func(t *testing.T) {
		repo := newFakeRepository()
		service := newTestService(repo)

		require.NoError(t, service.CreateBook(context.Background(), validBook()))

		duplicate := validBook()
		err := service.CreateBook(context.Background(), duplicate)
		require.Error(t, err)

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "CONFLICT", ae.Code)
		assert.Contains(t, ae.Message, "isbn")
	})
}

/*
TestService_UpdateBook verifies that a row may keep its own ISBN on update
but cannot take another row's.
*/
func TestService_UpdateBook(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	first := validBook()
	require.NoError(t, service.CreateBook(context.Background(), first))

	second := validBook()
	second.ISBN = "9783161484100"
	require.NoError(t, service.CreateBook(context.Background(), second))

	t.Run("keeping_own_isbn_is_allowed", func(t *testing.T) {
		update := validBook()
		update.Title = "The Pragmatic Programmer, 2nd Edition"
		require.NoError(t, service.UpdateBook(context.Background(), first.ID, update))
	})

	t.Run("taking_anothers_isbn_conflicts", func(t *testing.T) {
		update := validBook()
		update.ISBN = second.ISBN

		err := service.UpdateBook(context.Background(), first.ID, update)
		require.Error(t, err)
		assert.Equal(t, "CONFLICT", apperr.As(err).Code)
	})
}

/*
TestService_ListBooks verifies the sort expression is resolved before the
repository is consulted and that invalid sorts never reach storage.
*/
func TestService_ListBooks(t *testing.T) {
	t.Run("sort_resolved_and_forwarded", func(t *testing.T) {
		repo := newFakeRepository()
		service := newTestService(repo)

		_, _, err := service.ListBooks(context.Background(), book.Filter{}, "publishedDate,desc", 20, 0)
		require.NoError(t, err)

		assert.Equal(t, "publisheddate", repo.listedSort.Column)
		assert.True(t, repo.listedSort.Desc)
	})

	t.Run("invalid_sort_rejected", func(t *testing.T) {
		service := newTestService(newFakeRepository())

		_, _, err := service.ListBooks(context.Background(), book.Filter{}, "publisher,desc", 20, 0)
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})
}
