package schema

// BookCategoryTable represents the 'catalog.bookcategory' table
type BookCategoryTable struct {
	Table      string
	BookID     string
	CategoryID string
}

// BookCategory is the schema definition for catalog.bookcategory
var BookCategory = BookCategoryTable{
	Table:      "catalog.bookcategory",
	BookID:     "bookid",
	CategoryID: "categoryid",
}
