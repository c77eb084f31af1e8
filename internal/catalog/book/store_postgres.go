// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/taibuivan/shelfmark/internal/platform/database/schema"
	"github.com/taibuivan/shelfmark/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// bookSelectColumns is the projection shared by ListBooks and GetBook.
// Category IDs are aggregated via a correlated subquery so the outer query
// stays one-row-per-book regardless of how many categories are assigned.
func bookSelectColumns() string {
	return fmt.Sprintf(`b.%s, b.%s, b.%s, b.%s, b.%s, b.%s, b.%s, b.%s,
		(SELECT COALESCE(array_agg(bc.%s ORDER BY bc.%s), '{}')
		   FROM %s bc WHERE bc.%s = b.%s) AS categoryids`,
		schema.CatalogBook.ID, schema.CatalogBook.Title, schema.CatalogBook.ISBN,
		schema.CatalogBook.PublishedDate, schema.CatalogBook.AuthorID, schema.CatalogBook.Rating,
		schema.CatalogBook.CreatedAt, schema.CatalogBook.UpdatedAt,
		schema.BookCategory.CategoryID, schema.BookCategory.CategoryID,
		schema.BookCategory.Table, schema.BookCategory.BookID, schema.CatalogBook.ID,
	)
}

/*
ListBooks executes the filtered catalog query.

The filter criteria are conjoined into the WHERE clause with renumbered
positional arguments, and COUNT(*) OVER() carries the pre-pagination total
in every row so listing and counting stay a single round trip. When the
requested window lands past the last matching row no rows come back to
carry the total, so an explicit count over the same predicate restores it.

Parameters:
  - f: Filter predicates (nil fields are skipped)
  - sort: Resolved whitelist sort
  - limit, offset: Page window

Returns:
  - []*Book: The requested page
  - int: Total rows matching the filter
  - error: Wrapped storage error
*/
func (repository *PostgresRepository) ListBooks(context context.Context, f Filter, sort SortSpec, limit, offset int) ([]*Book, int, error) {
	var builder strings.Builder

	builder.WriteString("SELECT ")
	builder.WriteString(bookSelectColumns())
	builder.WriteString(", COUNT(*) OVER() AS totalcount FROM ")
	builder.WriteString(schema.CatalogBook.Table)
	builder.WriteString(" b")

	where, args := Conjoin(f.Criteria(), 1)
	if where != "" {
		builder.WriteString(" WHERE ")
		builder.WriteString(where)
	}

	builder.WriteString(" ORDER BY ")
	builder.WriteString(sort.OrderBy())
	builder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2))
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, builder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_books")
	}
	defer rows.Close()

	var (
		books []*Book
		total int
	)
	for rows.Next() {
		b := &Book{}
		if err := rows.Scan(
			&b.ID, &b.Title, &b.ISBN, &b.PublishedDate, &b.AuthorID, &b.Rating,
			&b.CreatedAt, &b.UpdatedAt, &b.CategoryIDs, &total,
		); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_book")
		}
		books = append(books, b)
	}

	if len(books) == 0 {
		total, err = repository.countBooks(context, where, args[:len(args)-2])
		if err != nil {
			return nil, 0, err
		}
	}

	return books, total, nil
}

// countBooks counts the rows matching an already-conjoined predicate.
func (repository *PostgresRepository) countBooks(context context.Context, where string, args []any) (int, error) {
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s b", schema.CatalogBook.Table)
	if where != "" {
		query += " WHERE " + where
	}

	var total int
	if err := repository.db.QueryRow(context, query, args...).Scan(&total); err != nil {
		return 0, dberr.Wrap(err, "count_books")
	}

	return total, nil
}

func (repository *PostgresRepository) GetBook(context context.Context, id int64) (*Book, error) {
	query := fmt.Sprintf("SELECT %s FROM %s b WHERE b.%s = $1",
		bookSelectColumns(), schema.CatalogBook.Table, schema.CatalogBook.ID,
	)

	b := &Book{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&b.ID, &b.Title, &b.ISBN, &b.PublishedDate, &b.AuthorID, &b.Rating,
		&b.CreatedAt, &b.UpdatedAt, &b.CategoryIDs,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_book")
	}

	return b, nil
}

/*
FindIDByISBN probes the ISBN unique key.

Returns:
  - *int64: ID of the owning row, or nil when the ISBN is free
  - error: Wrapped storage error
*/
func (repository *PostgresRepository) FindIDByISBN(context context.Context, isbn string) (*int64, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1",
		schema.CatalogBook.ID, schema.CatalogBook.Table, schema.CatalogBook.ISBN,
	)

	var id int64
	err := repository.db.QueryRow(context, query, isbn).Scan(&id)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, dberr.Wrap(err, "find_book_by_isbn")
	}

	return &id, nil
}

func (repository *PostgresRepository) CreateBook(context context.Context, b *Book) error {
	tx, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "create_book_begin")
	}
	defer func() { _ = tx.Rollback(context) }()

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, 0, NOW(), NOW())
		RETURNING %s, %s, %s, %s
	`,
		schema.CatalogBook.Table, schema.CatalogBook.Title, schema.CatalogBook.ISBN,
		schema.CatalogBook.PublishedDate, schema.CatalogBook.AuthorID, schema.CatalogBook.Rating,
		schema.CatalogBook.CreatedAt, schema.CatalogBook.UpdatedAt,
		schema.CatalogBook.ID, schema.CatalogBook.Rating, schema.CatalogBook.CreatedAt, schema.CatalogBook.UpdatedAt,
	)

	err = tx.QueryRow(context, query, b.Title, b.ISBN, b.PublishedDate, b.AuthorID).
		Scan(&b.ID, &b.Rating, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_book")
	}

	if err := replaceCategories(context, tx, b.ID, b.CategoryIDs); err != nil {
		return err
	}

	if err := tx.Commit(context); err != nil {
		return dberr.Wrap(err, "create_book_commit")
	}
	return nil
}

func (repository *PostgresRepository) UpdateBook(context context.Context, b *Book) error {
	tx, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "update_book_begin")
	}
	defer func() { _ = tx.Rollback(context) }()

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = NOW()
		WHERE %s = $1
		RETURNING %s, %s
	`,
		schema.CatalogBook.Table,
		schema.CatalogBook.Title, schema.CatalogBook.ISBN, schema.CatalogBook.PublishedDate,
		schema.CatalogBook.AuthorID, schema.CatalogBook.UpdatedAt,
		schema.CatalogBook.ID,
		schema.CatalogBook.Rating, schema.CatalogBook.UpdatedAt,
	)

	err = tx.QueryRow(context, query, b.ID, b.Title, b.ISBN, b.PublishedDate, b.AuthorID).
		Scan(&b.Rating, &b.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "update_book")
	}

	if err := replaceCategories(context, tx, b.ID, b.CategoryIDs); err != nil {
		return err
	}

	if err := tx.Commit(context); err != nil {
		return dberr.Wrap(err, "update_book_commit")
	}
	return nil
}

func (repository *PostgresRepository) DeleteBook(context context.Context, id int64) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1",
		schema.CatalogBook.Table, schema.CatalogBook.ID,
	)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_book")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) BookExists(context context.Context, id int64) (bool, error) {
	query := fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)",
		schema.CatalogBook.Table, schema.CatalogBook.ID,
	)

	var exists bool
	if err := repository.db.QueryRow(context, query, id).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "book_exists")
	}
	return exists, nil
}

// UpdateRating persists the denormalized review average for a book.
func (repository *PostgresRepository) UpdateRating(context context.Context, id int64, rating float64) error {
	query := fmt.Sprintf("UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1",
		schema.CatalogBook.Table, schema.CatalogBook.Rating,
		schema.CatalogBook.UpdatedAt, schema.CatalogBook.ID,
	)

	cmd, err := repository.db.Exec(context, query, id, rating)
	if err != nil {
		return dberr.Wrap(err, "update_book_rating")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) CountByAuthor(context context.Context, authorID int64) (int, error) {
	query := fmt.Sprintf("SELECT count(*) FROM %s WHERE %s = $1",
		schema.CatalogBook.Table, schema.CatalogBook.AuthorID,
	)

	var total int
	if err := repository.db.QueryRow(context, query, authorID).Scan(&total); err != nil {
		return 0, dberr.Wrap(err, "count_books_by_author")
	}
	return total, nil
}

func (repository *PostgresRepository) CountByCategory(context context.Context, categoryID int64) (int, error) {
	query := fmt.Sprintf("SELECT count(*) FROM %s WHERE %s = $1",
		schema.BookCategory.Table, schema.BookCategory.CategoryID,
	)

	var total int
	if err := repository.db.QueryRow(context, query, categoryID).Scan(&total); err != nil {
		return 0, dberr.Wrap(err, "count_books_by_category")
	}
	return total, nil
}

// replaceCategories rewrites the category assignments for a book inside the
// caller's transaction.
func replaceCategories(context context.Context, tx pgx.Tx, bookID int64, categoryIDs []int64) error {
	deleteQuery := fmt.Sprintf("DELETE FROM %s WHERE %s = $1",
		schema.BookCategory.Table, schema.BookCategory.BookID,
	)
	if _, err := tx.Exec(context, deleteQuery, bookID); err != nil {
		return dberr.Wrap(err, "clear_book_categories")
	}

	insertQuery := fmt.Sprintf("INSERT INTO %s (%s, %s) SELECT $1, unnest($2::bigint[])",
		schema.BookCategory.Table, schema.BookCategory.BookID, schema.BookCategory.CategoryID,
	)
	if _, err := tx.Exec(context, insertQuery, bookID, categoryIDs); err != nil {
		return dberr.Wrap(err, "assign_book_categories")
	}

	return nil
}
