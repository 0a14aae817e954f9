package service

import (
	"context"
	"sync"
	"time"

	dom "Bookshop/internal/domain"
	"Bookshop/internal/repo"
)

type fakeUserRepo struct {
	mu     sync.Mutex
	users  []dom.User
	getErr error
}

func (r *fakeUserRepo) Create(_ context.Context, nu dom.NewUser) (dom.User, error) {
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

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (dom.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return dom.User{}, r.getErr
	}
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return dom.User{}, repo.ErrNotFound
}

func (r *fakeUserRepo) List(_ context.Context) ([]dom.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]dom.User, 0, len(r.users))
	for i := len(r.users) - 1; i >= 0; i-- {
		out = append(out, r.users[i])
	}
	return out, nil
}

func (r *fakeUserRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users)
}

// fakeAuditRepo keeps entries in insertion order. If block is set, Insert
// waits for the context to end and reports its error.
type fakeAuditRepo struct {
	mu        sync.Mutex
	entries   []dom.AuditEntry
	insertErr error
	block     bool
	ctxErrs   []error
}

func (r *fakeAuditRepo) Insert(ctx context.Context, username string, success bool, ip string) error {
	if r.block {
		<-ctx.Done()
		return ctx.Err()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ctxErrs = append(r.ctxErrs, ctx.Err())
	if r.insertErr != nil {
		return r.insertErr
	}
	r.entries = append(r.entries, dom.AuditEntry{
		ID:        int64(len(r.entries) + 1),
		Username:  username,
		Success:   success,
		IPAddress: ip,
		LoginTime: time.Now(),
	})
	return nil
}

func (r *fakeAuditRepo) List(_ context.Context) ([]dom.AuditEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]dom.AuditEntry, 0, len(r.entries))
	for i := len(r.entries) - 1; i >= 0; i-- {
		out = append(out, r.entries[i])
	}
	return out, nil
}

type fakeBookRepo struct {
	books      []dom.Book
	lastLimit  float64
	lastTerm   string
	lastFilter dom.BookFilter
	created    []dom.Book
}

func (r *fakeBookRepo) List(context.Context) ([]dom.Book, error) { return r.books, nil }

func (r *fakeBookRepo) ListCheaperThan(_ context.Context, limit float64) ([]dom.Book, error) {
	r.lastLimit = limit
	var out []dom.Book
	for _, b := range r.books {
		if b.Price < limit {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBookRepo) SearchByName(_ context.Context, term string) ([]dom.Book, error) {
	r.lastTerm = term
	return r.books, nil
}

func (r *fakeBookRepo) Find(_ context.Context, f dom.BookFilter) ([]dom.Book, error) {
	r.lastFilter = f
	return r.books, nil
}

func (r *fakeBookRepo) GetByID(_ context.Context, id int64) (dom.Book, error) {
	for _, b := range r.books {
		if b.ID == id {
			return b, nil
		}
	}
	return dom.Book{}, repo.ErrNotFound
}

func (r *fakeBookRepo) Create(_ context.Context, name string, price float64) (dom.Book, error) {
	b := dom.Book{ID: int64(len(r.books) + 1), Name: name, Price: price}
	r.books = append(r.books, b)
	r.created = append(r.created, b)
	return b, nil
}
