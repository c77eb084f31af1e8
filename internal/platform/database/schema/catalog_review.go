package schema

// CatalogReviewTable represents the 'catalog.review' table
type CatalogReviewTable struct {
	Table     string
	ID        string
	BookID    string
	UserID    string
	Rating    string
	Comment   string
	CreatedAt string
	UpdatedAt string
}

// CatalogReview is the schema definition for catalog.review
var CatalogReview = CatalogReviewTable{
	Table:     "catalog.review",
	ID:        "id",
	BookID:    "bookid",
	UserID:    "userid",
	Rating:    "rating",
	Comment:   "comment",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

// Columns returns all standard column names
func (t CatalogReviewTable) Columns() []string {
	return []string{
		t.ID, t.BookID, t.UserID, t.Rating, t.Comment, t.CreatedAt, t.UpdatedAt,
	}
}
