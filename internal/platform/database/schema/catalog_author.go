package schema

// CatalogAuthorTable represents the 'catalog.author' table
type CatalogAuthorTable struct {
	Table     string
	ID        string
	Name      string
	Email     string
	Biography string
	CreatedAt string
	UpdatedAt string
}

// CatalogAuthor is the schema definition for catalog.author
var CatalogAuthor = CatalogAuthorTable{
	Table:     "catalog.author",
	ID:        "id",
	Name:      "name",
	Email:     "email",
	Biography: "biography",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

// Columns returns all standard column names
func (t CatalogAuthorTable) Columns() []string {
	return []string{
		t.ID, t.Name, t.Email, t.Biography, t.CreatedAt, t.UpdatedAt,
	}
}
