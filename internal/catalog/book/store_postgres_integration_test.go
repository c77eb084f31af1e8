//go:build integration
// +build integration

// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/taibuivan/shelfmark/internal/catalog/book"
	"github.com/taibuivan/shelfmark/internal/platform/migration"
	"github.com/taibuivan/shelfmark/pkg/pointer"
)

// setupStore starts a disposable Postgres, applies the real migrations, and
// returns a repository bound to it.
func setupStore(t *testing.T) (*book.PostgresRepository, *pgxpool.Pool) {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:alpine",
		postgres.WithDatabase("shelfmark_test"),
		postgres.WithUsername("shelfmark"),
		postgres.WithPassword("shelfmark"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if terr := pgContainer.Terminate(ctx); terr != nil {
			t.Logf("container terminate: %v", terr)
		}
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	require.NoError(t, migration.RunUp(connStr, "../../../data/migrations", slog.Default()))

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return book.NewPostgresRepository(pool), pool
}

type fixture struct {
	authorA    int64
	authorB    int64
	categoryID int64
	bookIDs    map[string]int64 // title -> id
}

// seedFixture loads five books: four by author A, one by author B, with
// ratings and publication dates chosen to exercise the filter bounds.
func seedFixture(t *testing.T, repo *book.PostgresRepository, pool *pgxpool.Pool) fixture {
	t.Helper()
	ctx := context.Background()

	var fx fixture
	fx.bookIDs = map[string]int64{}

	insertAuthor := `INSERT INTO catalog.author (name, email, createdat, updatedat)
		VALUES ($1, $2, NOW(), NOW()) RETURNING id`
	require.NoError(t, pool.QueryRow(ctx, insertAuthor, "Ursula Vernon", "ursula@example.com").Scan(&fx.authorA))
	require.NoError(t, pool.QueryRow(ctx, insertAuthor, "Martha Wells", "martha@example.com").Scan(&fx.authorB))

	insertCategory := `INSERT INTO catalog.category (name, slug, createdat, updatedat)
		VALUES ($1, $2, NOW(), NOW()) RETURNING id`
	require.NoError(t, pool.QueryRow(ctx, insertCategory, "Fantasy", "fantasy").Scan(&fx.categoryID))

	date := func(value string) *time.Time {
		parsed, perr := time.Parse("2006-01-02", value)
		require.NoError(t, perr)
		return &parsed
	}

	rows := []struct {
		title     string
		isbn      string
		authorID  int64
		published string
		rating    float64
	}{
		{"Nettle and Bone", "9780132350884", 0, "2020-01-15", 4.5},
		{"Thornhedge", "9780306406157", 0, "2021-06-01", 3.5},
		{"Swordheart", "9791234567896", 0, "2019-03-10", 2.0},
		{"All Systems Red", "9780132350891", 0, "2022-02-02", 5.0},
		{"Paladin's Grace", "9780306406164", 0, "2018-11-11", 4.0},
	}
	rows[0].authorID = fx.authorA
	rows[1].authorID = fx.authorA
	rows[2].authorID = fx.authorA
	rows[3].authorID = fx.authorB
	rows[4].authorID = fx.authorA

	for _, row := range rows {
		b := &book.Book{
			Title:         row.title,
			ISBN:          row.isbn,
			PublishedDate: date(row.published),
			AuthorID:      row.authorID,
			CategoryIDs:   []int64{fx.categoryID},
		}
		require.NoError(t, repo.CreateBook(ctx, b))
		require.NoError(t, repo.UpdateRating(ctx, b.ID, row.rating))
		fx.bookIDs[row.title] = b.ID
	}

	return fx
}

func titles(books []*book.Book) []string {
	out := make([]string, len(books))
	for i, b := range books {
		out[i] = b.Title
	}
	return out
}

/*
TestPostgresRepository_ListBooks drives the filtered catalog query against
real data: combined predicates, inclusive bounds, sorted page windows, and
the total count when paging past the last match.
*/
func TestPostgresRepository_ListBooks(t *testing.T) {
	repo, pool := setupStore(t)
	fx := seedFixture(t, repo, pool)
	ctx := context.Background()

	byAuthorMinFour := book.Filter{
		AuthorID:  pointer.To(fx.authorA),
		RatingMin: pointer.To(4.0),
	}
	byPublishedDesc, err := book.ResolveSort("publishedDate,desc")
	require.NoError(t, err)

	t.Run("combined_filter_sorted_window", func(t *testing.T) {
		// Author A with rating >= 4: Nettle and Bone (4.5, 2020) and
		// Paladin's Grace (4.0, 2018).
		first, total, err := repo.ListBooks(ctx, byAuthorMinFour, byPublishedDesc, 1, 0)
		require.NoError(t, err)
		assert.Equal(t, 2, total)
		assert.Equal(t, []string{"Nettle and Bone"}, titles(first))

		second, total, err := repo.ListBooks(ctx, byAuthorMinFour, byPublishedDesc, 1, 1)
		require.NoError(t, err)
		assert.Equal(t, 2, total)
		assert.Equal(t, []string{"Paladin's Grace"}, titles(second))
	})

	t.Run("rating_bounds_inclusive", func(t *testing.T) {
		// min=3 max=4 keeps 3.5 and exactly 4.0, excludes 4.5 and above.
		bounded := book.Filter{
			RatingMin: pointer.To(3.0),
			RatingMax: pointer.To(4.0),
		}
		books, total, err := repo.ListBooks(ctx, bounded, book.DefaultSort, 20, 0)
		require.NoError(t, err)
		assert.Equal(t, 2, total)
		assert.ElementsMatch(t, []string{"Thornhedge", "Paladin's Grace"}, titles(books))
	})

	t.Run("date_bounds_inclusive", func(t *testing.T) {
		start, err := time.Parse("2006-01-02", "2019-03-10")
		require.NoError(t, err)
		end, err := time.Parse("2006-01-02", "2021-06-01")
		require.NoError(t, err)

		windowed := book.Filter{PublishedStart: &start, PublishedEnd: &end}
		books, total, err := repo.ListBooks(ctx, windowed, book.DefaultSort, 20, 0)
		require.NoError(t, err)
		assert.Equal(t, 3, total)
		assert.ElementsMatch(t, []string{"Swordheart", "Nettle and Bone", "Thornhedge"}, titles(books))
	})

	t.Run("category_filter", func(t *testing.T) {
		books, total, err := repo.ListBooks(ctx, book.Filter{CategoryID: pointer.To(fx.categoryID)}, book.DefaultSort, 20, 0)
		require.NoError(t, err)
		assert.Equal(t, 5, total)
		assert.Len(t, books, 5)
	})

	t.Run("page_past_end_keeps_total", func(t *testing.T) {
		// A window far beyond the last match returns an empty page but must
		// still report how many rows the filter matches.
		books, total, err := repo.ListBooks(ctx, byAuthorMinFour, byPublishedDesc, 20, 40)
		require.NoError(t, err)
		assert.Empty(t, books)
		assert.Equal(t, 2, total)
	})

	t.Run("unfiltered_past_end_keeps_total", func(t *testing.T) {
		books, total, err := repo.ListBooks(ctx, book.Filter{}, book.DefaultSort, 20, 100)
		require.NoError(t, err)
		assert.Empty(t, books)
		assert.Equal(t, 5, total)
	})
}
