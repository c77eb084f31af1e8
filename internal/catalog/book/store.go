// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import "context"

type Repository interface {
	ListBooks(context context.Context, f Filter, sort SortSpec, limit, offset int) ([]*Book, int, error)
	GetBook(context context.Context, id int64) (*Book, error)
	FindIDByISBN(context context.Context, isbn string) (*int64, error)
	CreateBook(context context.Context, b *Book) error
	UpdateBook(context context.Context, b *Book) error
	DeleteBook(context context.Context, id int64) error
	BookExists(context context.Context, id int64) (bool, error)
	UpdateRating(context context.Context, id int64, rating float64) error
	CountByAuthor(context context.Context, authorID int64) (int, error)
	CountByCategory(context context.Context, categoryID int64) (int, error)
}
