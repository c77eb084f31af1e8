// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package author

import "context"

type Repository interface {
	ListAuthors(context context.Context, limit, offset int) ([]*Author, int, error)
	GetAuthor(context context.Context, id int64) (*Author, error)
	FindIDByEmail(context context.Context, email string) (*int64, error)
	CreateAuthor(context context.Context, a *Author) error
	UpdateAuthor(context context.Context, a *Author) error
	DeleteAuthor(context context.Context, id int64) error
	AuthorExists(context context.Context, id int64) (bool, error)
}
