package handlers

import (
	"errors"
	"net/http"
	"strconv"

	dom "Bookshop/internal/domain"
	"Bookshop/internal/dto"
	"Bookshop/internal/logger"
	"Bookshop/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// APIHandler serves the JSON catalog under /api.
type APIHandler struct {
	books *service.BookService
	log   *zap.Logger
}

// NewAPIHandler returns a new APIHandler.
func NewAPIHandler(books *service.BookService, log *zap.Logger) *APIHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &APIHandler{books: books, log: log}
}

// ListBooks godoc
// @Summary      List books
// @Description  Filters by name substring and price range, sorted by a whitelisted column.
// @Tags         books
// @Produce      json
// @Param        search    query     string  false  "Name contains (alias: q)"
// @Param        q         query     string  false  "Alias of search"
// @Param        minprice  query     number  false  "Minimum price"  default(0)
// @Param        maxprice  query     number  false  "Maximum price"  default(9999.99)
// @Param        sort      query     string  false  "Sort column"    Enums(id, name, price)
// @Success      200       {object}  dto.BookListResponse
// @Failure      500       {object}  dto.ErrorResponse
// @Router       /api/books [get]
func (h *APIHandler) ListBooks(c *gin.Context) {
	var q dto.BookListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	search := q.Search
	if search == "" {
		search = q.Q
	}
	f := service.ParseBookFilter(search, q.MinPrice, q.MaxPrice, q.Sort)

	list, err := h.books.Find(c.Request.Context(), f)
	if err != nil {
		logger.WithContext(c.Request.Context(), h.log).Error("api list books", zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "failed to list books"})
		return
	}

	c.JSON(http.StatusOK, dto.BookListResponse{
		Data: booksToResponses(list),
		Metadata: dto.BookListMetadata{
			Count:    len(list),
			Search:   f.Search,
			MinPrice: f.MinPrice,
			MaxPrice: f.MaxPrice,
			Sort:     string(f.Sort),
		},
	})
}

// GetBook godoc
// @Summary      Get a book by ID
// @Tags         books
// @Produce      json
// @Param        id   path      int  true  "Book ID"
// @Success      200  {object}  dto.BookResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/books/{id} [get]
func (h *APIHandler) GetBook(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid book id"})
		return
	}

	b, err := h.books.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Book not found"})
			return
		}
		logger.WithContext(c.Request.Context(), h.log).Error("api get book", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "failed to get book"})
		return
	}
	c.JSON(http.StatusOK, bookToResponse(b))
}

func bookToResponse(b dom.Book) dto.BookResponse {
	return dto.BookResponse{ID: b.ID, Name: b.Name, Price: b.Price}
}

func booksToResponses(list []dom.Book) []dto.BookResponse {
	out := make([]dto.BookResponse, 0, len(list))
	for _, b := range list {
		out = append(out, bookToResponse(b))
	}
	return out
}
