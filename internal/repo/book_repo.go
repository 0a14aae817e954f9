package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	dom "Bookshop/internal/domain"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

// BookRepo provides catalog persistence.
type BookRepo interface {
	List(ctx context.Context) ([]dom.Book, error)
	ListCheaperThan(ctx context.Context, limit float64) ([]dom.Book, error)
	SearchByName(ctx context.Context, term string) ([]dom.Book, error)
	Find(ctx context.Context, f dom.BookFilter) ([]dom.Book, error)
	GetByID(ctx context.Context, id int64) (dom.Book, error)
	Create(ctx context.Context, name string, price float64) (dom.Book, error)
}

// PGBookRepo implements BookRepo with Postgres.
type PGBookRepo struct {
	db      DB
	builder sq.StatementBuilderType
}

// NewPGBookRepo returns a new PGBookRepo.
func NewPGBookRepo(db DB) *PGBookRepo {
	return &PGBookRepo{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *PGBookRepo) List(ctx context.Context) ([]dom.Book, error) {
	return r.query(ctx, `SELECT id, name, price FROM books ORDER BY name ASC, id ASC`)
}

func (r *PGBookRepo) ListCheaperThan(ctx context.Context, limit float64) ([]dom.Book, error) {
	return r.query(ctx, `SELECT id, name, price FROM books WHERE price < $1 ORDER BY price ASC, id ASC`, limit)
}

func (r *PGBookRepo) SearchByName(ctx context.Context, term string) ([]dom.Book, error) {
	return r.query(ctx,
		`SELECT id, name, price FROM books WHERE name ILIKE $1 ORDER BY name ASC, id ASC`,
		likePattern(term),
	)
}

// Find runs the filtered catalog query behind the JSON api.
func (r *PGBookRepo) Find(ctx context.Context, f dom.BookFilter) ([]dom.Book, error) {
	q := r.builder.
		Select("id", "name", "price").
		From("books").
		Where(sq.Expr("price BETWEEN ? AND ?", f.MinPrice, f.MaxPrice))
	if f.Search != "" {
		q = q.Where(sq.ILike{"name": likePattern(f.Search)})
	}
	q = q.OrderBy(sortColumn(f.Sort) + " ASC")

	stmt, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build find books sql: %w", err)
	}
	return r.query(ctx, stmt, args...)
}

func (r *PGBookRepo) GetByID(ctx context.Context, id int64) (dom.Book, error) {
	var b dom.Book
	err := r.db.QueryRow(ctx, `SELECT id, name, price FROM books WHERE id = $1`, id).
		Scan(&b.ID, &b.Name, &b.Price)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Book{}, ErrNotFound
		}
		return dom.Book{}, fmt.Errorf("select book: %w", err)
	}
	return b, nil
}

func (r *PGBookRepo) Create(ctx context.Context, name string, price float64) (dom.Book, error) {
	var b dom.Book
	err := r.db.QueryRow(ctx,
		`INSERT INTO books (name, price) VALUES ($1, $2) RETURNING id, name, price`,
		name, price,
	).Scan(&b.ID, &b.Name, &b.Price)
	if err != nil {
		return dom.Book{}, fmt.Errorf("insert book: %w", err)
	}
	return b, nil
}

func (r *PGBookRepo) query(ctx context.Context, query string, args ...any) ([]dom.Book, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query books: %w", err)
	}
	defer rows.Close()
	var list []dom.Book
	for rows.Next() {
		var b dom.Book
		if err := rows.Scan(&b.ID, &b.Name, &b.Price); err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

func sortColumn(s dom.BookSort) string {
	switch s {
	case dom.BookSortName, dom.BookSortPrice:
		return string(s)
	default:
		return string(dom.BookSortID)
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern wraps term for a substring match, escaping LIKE wildcards.
func likePattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}
