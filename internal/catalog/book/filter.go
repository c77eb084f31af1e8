// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"fmt"
	"strings"

	"github.com/taibuivan/shelfmark/internal/platform/database/schema"
)

// Criterion is a single SQL predicate with '?' placeholders and its bound
// arguments. Criteria are position-independent: placeholders are renumbered
// when the set is conjoined, so individual predicates never hardcode $n.
type Criterion struct {
	Expr string
	Args []any
}

// Criteria converts the populated filter fields into an ordered predicate
// list. An empty filter yields an empty list (match everything). The order
// is fixed so generated SQL is deterministic and cache-friendly.
func (f Filter) Criteria() []Criterion {
	var criteria []Criterion

	if f.AuthorID != nil {
		criteria = append(criteria, Criterion{
			Expr: fmt.Sprintf("b.%s = ?", schema.CatalogBook.AuthorID),
			Args: []any{*f.AuthorID},
		})
	}

	if f.CategoryID != nil {
		criteria = append(criteria, Criterion{
			Expr: fmt.Sprintf("EXISTS (SELECT 1 FROM %s bc WHERE bc.%s = b.%s AND bc.%s = ?)",
				schema.BookCategory.Table, schema.BookCategory.BookID,
				schema.CatalogBook.ID, schema.BookCategory.CategoryID),
			Args: []any{*f.CategoryID},
		})
	}

	if f.RatingMin != nil {
		criteria = append(criteria, Criterion{
			Expr: fmt.Sprintf("b.%s >= ?", schema.CatalogBook.Rating),
			Args: []any{*f.RatingMin},
		})
	}

	if f.RatingMax != nil {
		criteria = append(criteria, Criterion{
			Expr: fmt.Sprintf("b.%s <= ?", schema.CatalogBook.Rating),
			Args: []any{*f.RatingMax},
		})
	}

	if f.PublishedStart != nil {
		criteria = append(criteria, Criterion{
			Expr: fmt.Sprintf("b.%s >= ?", schema.CatalogBook.PublishedDate),
			Args: []any{*f.PublishedStart},
		})
	}

	if f.PublishedEnd != nil {
		criteria = append(criteria, Criterion{
			Expr: fmt.Sprintf("b.%s <= ?", schema.CatalogBook.PublishedDate),
			Args: []any{*f.PublishedEnd},
		})
	}

	return criteria
}

// Conjoin folds criteria into a single " AND "-joined SQL fragment, replacing
// each '?' with a positional $n placeholder starting at startArg. It returns
// the fragment (without a leading WHERE) and the flattened argument list.
// An empty criteria set yields ("", nil).
func Conjoin(criteria []Criterion, startArg int) (string, []any) {
	if len(criteria) == 0 {
		return "", nil
	}

	var (
		parts []string
		args  []any
		n     = startArg
	)

	for _, criterion := range criteria {
		expr := criterion.Expr
		for range criterion.Args {
			expr = strings.Replace(expr, "?", fmt.Sprintf("$%d", n), 1)
			n++
		}
		parts = append(parts, expr)
		args = append(args, criterion.Args...)
	}

	return strings.Join(parts, " AND "), args
}
