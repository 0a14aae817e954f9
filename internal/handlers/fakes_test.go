package handlers

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	dom "Bookshop/internal/domain"
	"Bookshop/internal/repo"
)

type memUsers struct {
	mu    sync.Mutex
	users []dom.User
}

func (r *memUsers) Create(_ context.Context, nu dom.NewUser) (dom.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == nu.Username {
			return dom.User{}, repo.ErrDuplicateUsername
		}
	}
	u := dom.User{
		ID:             int64(len(r.users) + 1),
		Username:       nu.Username,
		FirstName:      nu.FirstName,
		LastName:       nu.LastName,
		Email:          nu.Email,
		HashedPassword: nu.HashedPassword,
		CreatedAt:      time.Now(),
	}
	r.users = append(r.users, u)
	return u, nil
}

func (r *memUsers) GetByUsername(_ context.Context, username string) (dom.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return dom.User{}, repo.ErrNotFound
}

func (r *memUsers) List(_ context.Context) ([]dom.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]dom.User(nil), r.users...), nil
}

type memAudit struct {
	mu      sync.Mutex
	entries []dom.AuditEntry
}

func (r *memAudit) Insert(_ context.Context, username string, success bool, ip string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, dom.AuditEntry{
		ID:        int64(len(r.entries) + 1),
		Username:  username,
		Success:   success,
		IPAddress: ip,
		LoginTime: time.Now(),
	})
	return nil
}

func (r *memAudit) List(_ context.Context) ([]dom.AuditEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]dom.AuditEntry, 0, len(r.entries))
	for i := len(r.entries) - 1; i >= 0; i-- {
		out = append(out, r.entries[i])
	}
	return out, nil
}

type memBooks struct {
	books []dom.Book
	fail  bool
}

var errStorage = errors.New("storage unavailable")

func (r *memBooks) List(context.Context) ([]dom.Book, error) {
	if r.fail {
		return nil, errStorage
	}
	return r.books, nil
}

func (r *memBooks) ListCheaperThan(_ context.Context, limit float64) ([]dom.Book, error) {
	var out []dom.Book
	for _, b := range r.books {
		if b.Price < limit {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *memBooks) SearchByName(_ context.Context, term string) ([]dom.Book, error) {
	var out []dom.Book
	for _, b := range r.books {
		if strings.Contains(strings.ToLower(b.Name), strings.ToLower(term)) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *memBooks) Find(_ context.Context, f dom.BookFilter) ([]dom.Book, error) {
	if r.fail {
		return nil, errStorage
	}
	var out []dom.Book
	for _, b := range r.books {
		if f.Search != "" && !strings.Contains(strings.ToLower(b.Name), strings.ToLower(f.Search)) {
			continue
		}
		if b.Price >= f.MinPrice && b.Price <= f.MaxPrice {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *memBooks) GetByID(_ context.Context, id int64) (dom.Book, error) {
	for _, b := range r.books {
		if b.ID == id {
			return b, nil
		}
	}
	return dom.Book{}, repo.ErrNotFound
}

func (r *memBooks) Create(_ context.Context, name string, price float64) (dom.Book, error) {
	b := dom.Book{ID: int64(len(r.books) + 1), Name: name, Price: price}
	r.books = append(r.books, b)
	return b, nil
}

type stubWeather struct {
	w   dom.Weather
	err error
}

func (s stubWeather) Current(_ context.Context, city string) (dom.Weather, error) {
	if s.err != nil {
		return dom.Weather{}, s.err
	}
	w := s.w
	w.City = city
	return w, nil
}
