// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"context"
	"fmt"

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

func (repository *PostgresRepository) ListByBook(context context.Context, bookID int64, limit, offset int) ([]*Review, int, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, COUNT(*) OVER() AS totalcount
		FROM %s
		WHERE %s = $1
		ORDER BY %s DESC
		LIMIT $2 OFFSET $3
	`,
		schema.CatalogReview.ID, schema.CatalogReview.BookID, schema.CatalogReview.UserID,
		schema.CatalogReview.Rating, schema.CatalogReview.Comment,
		schema.CatalogReview.CreatedAt, schema.CatalogReview.UpdatedAt,
		schema.CatalogReview.Table, schema.CatalogReview.BookID, schema.CatalogReview.CreatedAt,
	)

	rows, err := repository.db.Query(context, query, bookID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_reviews")
	}
	defer rows.Close()

	var (
		reviews []*Review
		total   int
	)
	for rows.Next() {
		r := &Review{}
		if err := rows.Scan(&r.ID, &r.BookID, &r.UserID, &r.Rating, &r.Comment, &r.CreatedAt, &r.UpdatedAt, &total); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_review")
		}
		reviews = append(reviews, r)
	}

	return reviews, total, nil
}

func (repository *PostgresRepository) GetReview(context context.Context, id int64) (*Review, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.CatalogReview.ID, schema.CatalogReview.BookID, schema.CatalogReview.UserID,
		schema.CatalogReview.Rating, schema.CatalogReview.Comment,
		schema.CatalogReview.CreatedAt, schema.CatalogReview.UpdatedAt,
		schema.CatalogReview.Table, schema.CatalogReview.ID,
	)

	r := &Review{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&r.ID, &r.BookID, &r.UserID, &r.Rating, &r.Comment, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_review")
	}

	return r, nil
}

func (repository *PostgresRepository) CreateReview(context context.Context, r *Review) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING %s, %s, %s
	`,
		schema.CatalogReview.Table, schema.CatalogReview.BookID, schema.CatalogReview.UserID,
		schema.CatalogReview.Rating, schema.CatalogReview.Comment,
		schema.CatalogReview.CreatedAt, schema.CatalogReview.UpdatedAt,
		schema.CatalogReview.ID, schema.CatalogReview.CreatedAt, schema.CatalogReview.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query, r.BookID, r.UserID, r.Rating, r.Comment).
		Scan(&r.ID, &r.CreatedAt, &r.UpdatedAt)
	return dberr.Wrap(err, "create_review")
}

func (repository *PostgresRepository) UpdateReview(context context.Context, r *Review) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = NOW()
		WHERE %s = $1
		RETURNING %s
	`,
		schema.CatalogReview.Table,
		schema.CatalogReview.Rating, schema.CatalogReview.Comment, schema.CatalogReview.UpdatedAt,
		schema.CatalogReview.ID, schema.CatalogReview.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query, r.ID, r.Rating, r.Comment).Scan(&r.UpdatedAt)
	return dberr.Wrap(err, "update_review")
}

func (repository *PostgresRepository) DeleteReview(context context.Context, id int64) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1",
		schema.CatalogReview.Table, schema.CatalogReview.ID,
	)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_review")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// ListRatings returns every rating score for a book, feeding the average
// recomputation.
func (repository *PostgresRepository) ListRatings(context context.Context, bookID int64) ([]int, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1",
		schema.CatalogReview.Rating, schema.CatalogReview.Table, schema.CatalogReview.BookID,
	)

	rows, err := repository.db.Query(context, query, bookID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_review_ratings")
	}
	defer rows.Close()

	var scores []int
	for rows.Next() {
		var score int
		if err := rows.Scan(&score); err != nil {
			return nil, dberr.Wrap(err, "scan_review_rating")
		}
		scores = append(scores, score)
	}

	return scores, nil
}
