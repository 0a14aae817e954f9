package dto

// BookForm is the form body for POST /books/bookadded. Price stays a string
// so that validation messages come from the service, not the binder.
type BookForm struct {
	Name  string `form:"name"`
	Price string `form:"price"`
}

// SearchForm carries the keyword for both the GET and POST search routes.
type SearchForm struct {
	Keyword string `form:"keyword"`
}

// BookListQuery is the query string accepted by GET /api/books.
type BookListQuery struct {
	Search   string `form:"search"`
	Q        string `form:"q"`
	MinPrice string `form:"minprice"`
	MaxPrice string `form:"maxprice"`
	Sort     string `form:"sort"`
}

// BookResponse is a single catalog item.
type BookResponse struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// BookListMetadata echoes the effective filter of a list request.
type BookListMetadata struct {
	Count    int     `json:"count"`
	Search   string  `json:"search"`
	MinPrice float64 `json:"minPrice"`
	MaxPrice float64 `json:"maxPrice"`
	Sort     string  `json:"sort"`
}

// BookListResponse is returned by GET /api/books.
type BookListResponse struct {
	Data     []BookResponse   `json:"data"`
	Metadata BookListMetadata `json:"metadata"`
}

// ErrorResponse is the JSON error body of the api.
type ErrorResponse struct {
	Error string `json:"error"`
}
