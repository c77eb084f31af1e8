package schema

// CatalogBookTable represents the 'catalog.book' table
type CatalogBookTable struct {
	Table         string
	ID            string
	Title         string
	ISBN          string
	PublishedDate string
	AuthorID      string
	Rating        string
	CreatedAt     string
	UpdatedAt     string
}

// CatalogBook is the schema definition for catalog.book
var CatalogBook = CatalogBookTable{
	Table:         "catalog.book",
	ID:            "id",
	Title:         "title",
	ISBN:          "isbn",
	PublishedDate: "publisheddate",
	AuthorID:      "authorid",
	Rating:        "rating",
	CreatedAt:     "createdat",
	UpdatedAt:     "updatedat",
}

// Columns returns all standard column names
func (t CatalogBookTable) Columns() []string {
	return []string{
		t.ID, t.Title, t.ISBN, t.PublishedDate, t.AuthorID, t.Rating,
		t.CreatedAt, t.UpdatedAt,
	}
}
