// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package category

import "context"

type Repository interface {
	ListCategories(context context.Context, limit, offset int) ([]*Category, int, error)
	GetCategory(context context.Context, id int64) (*Category, error)
	FindIDByName(context context.Context, name string) (*int64, error)
	CreateCategory(context context.Context, c *Category) error
	UpdateCategory(context context.Context, c *Category) error
	DeleteCategory(context context.Context, id int64) error
	CountExisting(context context.Context, ids []int64) (int, error)
}
