package handlers

import (
	"errors"
	"net/http"
	"net/url"

	dom "Bookshop/internal/domain"
	"Bookshop/internal/dto"
	"Bookshop/internal/service"

	"github.com/gin-gonic/gin"
)

// BookHandler serves the HTML catalog pages.
type BookHandler struct {
	books *service.BookService
	pages Pages
}

// NewBookHandler returns a new BookHandler.
func NewBookHandler(books *service.BookService, pages Pages) *BookHandler {
	return &BookHandler{books: books, pages: pages}
}

// List shows every book by name. After an add it carries ?added=1&name=.
func (h *BookHandler) List(c *gin.Context) {
	list, err := h.books.List(c.Request.Context())
	if err != nil {
		h.pages.serverError(c, "list books", err)
		return
	}
	data := gin.H{"Heading": "All Books", "Books": list}
	if c.Query("added") == "1" {
		data["Added"] = c.Query("name")
	}
	h.pages.render(c, http.StatusOK, "list.tmpl", "Books", data)
}

// Bargains lists books priced under the bargain threshold.
func (h *BookHandler) Bargains(c *gin.Context) {
	list, err := h.books.Bargains(c.Request.Context())
	if err != nil {
		h.pages.serverError(c, "list bargain books", err)
		return
	}
	h.pages.render(c, http.StatusOK, "list.tmpl", "Bargain Books", gin.H{
		"Heading": "Bargain Books (under £20)",
		"Books":   list,
	})
}

// SearchForm renders the keyword search form.
func (h *BookHandler) SearchForm(c *gin.Context) {
	h.pages.render(c, http.StatusOK, "search.tmpl", "Search Books", nil)
}

// Search handles both GET /books/search-result and POST /books/search; the
// keyword binds from the query string or the form body.
func (h *BookHandler) Search(c *gin.Context) {
	var form dto.SearchForm
	if err := c.ShouldBind(&form); err != nil {
		h.pages.errorPage(c, http.StatusBadRequest, "Bad Request", "The search form could not be read.")
		return
	}

	list, err := h.books.Search(c.Request.Context(), form.Keyword)
	if err != nil {
		h.pages.serverError(c, "search books", err)
		return
	}
	h.pages.render(c, http.StatusOK, "searchresults.tmpl", "Search Results", gin.H{
		"Keyword": form.Keyword,
		"Books":   list,
	})
}

// AddForm renders the add-book form.
func (h *BookHandler) AddForm(c *gin.Context) {
	h.pages.render(c, http.StatusOK, "addbook.tmpl", "Add New Book", gin.H{"Form": dto.BookForm{}})
}

// Add stores the posted book and redirects to the list with a banner.
func (h *BookHandler) Add(c *gin.Context) {
	var form dto.BookForm
	if err := c.ShouldBind(&form); err != nil {
		h.pages.errorPage(c, http.StatusBadRequest, "Bad Request", "The book form could not be read.")
		return
	}

	b, err := h.books.Add(c.Request.Context(), form.Name, form.Price)
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		h.pages.render(c, http.StatusBadRequest, "addbook.tmpl", "Add New Book", gin.H{"Form": form, "Errors": ve.Messages})
		return
	case err != nil:
		h.pages.serverError(c, "add book", err)
		return
	}
	c.Redirect(http.StatusFound, h.pages.URL(addedURL(b)))
}

func addedURL(b dom.Book) string {
	q := url.Values{}
	q.Set("added", "1")
	q.Set("name", b.Name)
	return "/books/list?" + q.Encode()
}
