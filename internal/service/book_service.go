package service

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	dom "Bookshop/internal/domain"
	"Bookshop/internal/repo"
	"Bookshop/internal/utils"
)

const (
	// BargainThreshold is the exclusive upper price bound for bargain books.
	BargainThreshold = 20.0

	MaxBookPrice   = 999.99
	maxBookNameLen = 100

	defaultMinPrice = 0
	defaultMaxPrice = 9999.99
)

// BookService lists, searches and adds books.
type BookService struct {
	repo repo.BookRepo
}

// NewBookService returns a new BookService.
func NewBookService(r repo.BookRepo) *BookService {
	return &BookService{repo: r}
}

func (s *BookService) List(ctx context.Context) ([]dom.Book, error) {
	return s.repo.List(ctx)
}

func (s *BookService) Bargains(ctx context.Context) ([]dom.Book, error) {
	return s.repo.ListCheaperThan(ctx, BargainThreshold)
}

// Search returns books whose name contains keyword. A blank keyword matches nothing.
func (s *BookService) Search(ctx context.Context, keyword string) ([]dom.Book, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, nil
	}
	return s.repo.SearchByName(ctx, keyword)
}

func (s *BookService) Find(ctx context.Context, f dom.BookFilter) ([]dom.Book, error) {
	return s.repo.Find(ctx, f)
}

func (s *BookService) GetByID(ctx context.Context, id int64) (dom.Book, error) {
	b, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return dom.Book{}, ErrNotFound
	}
	return b, err
}

// Add normalises and validates the raw form values, then inserts the book.
func (s *BookService) Add(ctx context.Context, name, price string) (dom.Book, error) {
	name = utils.CollapseSpaces(name)

	var messages []string
	if name == "" {
		messages = append(messages, "Book name is required")
	} else if utf8.RuneCountInString(name) > maxBookNameLen {
		messages = append(messages, "Book name must be 100 characters or fewer")
	}
	p, err := strconv.ParseFloat(strings.TrimSpace(price), 64)
	if err != nil || math.IsNaN(p) || math.IsInf(p, 0) || p < 0 || p > MaxBookPrice {
		messages = append(messages, "Price must be a number between 0 and 999.99")
	}
	if len(messages) > 0 {
		return dom.Book{}, &ValidationError{Messages: messages}
	}

	return s.repo.Create(ctx, name, math.Round(p*100)/100)
}

// ParseBookFilter builds a catalog filter from raw query values. Unparseable
// prices fall back to the defaults and unknown sort keys to id order.
func ParseBookFilter(search, minPrice, maxPrice, sort string) dom.BookFilter {
	f := dom.BookFilter{
		Search:   strings.TrimSpace(search),
		MinPrice: parsePrice(minPrice, defaultMinPrice),
		MaxPrice: parsePrice(maxPrice, defaultMaxPrice),
		Sort:     dom.BookSortID,
	}
	switch s := dom.BookSort(strings.ToLower(strings.TrimSpace(sort))); s {
	case dom.BookSortName, dom.BookSortPrice:
		f.Sort = s
	}
	return f
}

func parsePrice(raw string, def float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return def
	}
	return v
}
