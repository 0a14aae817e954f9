package domain

// Book is a catalog item. Price is in pounds.
type Book struct {
	ID    int64
	Name  string
	Price float64
}

// BookSort is a whitelisted ordering column for catalog queries.
type BookSort string

const (
	BookSortID    BookSort = "id"
	BookSortName  BookSort = "name"
	BookSortPrice BookSort = "price"
)

// BookFilter narrows a catalog query. Search is a case-insensitive substring of the name.
type BookFilter struct {
	Search   string
	MinPrice float64
	MaxPrice float64
	Sort     BookSort
}
