package repo

import (
	"context"
	"errors"
	"fmt"

	dom "Bookshop/internal/domain"
	"Bookshop/internal/utils"

	"github.com/jackc/pgx/v5"
)

// UserRepo provides user persistence.
type UserRepo interface {
	Create(ctx context.Context, u dom.NewUser) (dom.User, error)
	GetByUsername(ctx context.Context, username string) (dom.User, error)
	List(ctx context.Context) ([]dom.User, error)
}

// PGUserRepo implements UserRepo with Postgres.
type PGUserRepo struct {
	db DB
}

// NewPGUserRepo returns a new PGUserRepo.
func NewPGUserRepo(db DB) *PGUserRepo {
	return &PGUserRepo{db: db}
}

// Create inserts a new user and returns it. ErrDuplicateUsername is returned
// when the username is taken; the existing row is left untouched.
func (r *PGUserRepo) Create(ctx context.Context, nu dom.NewUser) (dom.User, error) {
	query := `
		INSERT INTO users (username, first_name, last_name, email, hashed_password)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, username, first_name, last_name, email, hashed_password, created_at`
	var u dom.User
	err := r.db.QueryRow(ctx, query, nu.Username, nu.FirstName, nu.LastName, nu.Email, nu.HashedPassword).Scan(
		&u.ID, &u.Username, &u.FirstName, &u.LastName, &u.Email, &u.HashedPassword, &u.CreatedAt,
	)
	if err != nil {
		if utils.IsPGUniqueViolation(err) {
			return dom.User{}, ErrDuplicateUsername
		}
		return dom.User{}, fmt.Errorf("insert user: %w", err)
	}
	return u, nil
}

// GetByUsername returns the user by username.
func (r *PGUserRepo) GetByUsername(ctx context.Context, username string) (dom.User, error) {
	var u dom.User
	err := r.db.QueryRow(ctx,
		`SELECT id, username, first_name, last_name, email, hashed_password, created_at
		FROM users WHERE username = $1`,
		username,
	).Scan(&u.ID, &u.Username, &u.FirstName, &u.LastName, &u.Email, &u.HashedPassword, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.User{}, ErrNotFound
		}
		return dom.User{}, fmt.Errorf("select user: %w", err)
	}
	return u, nil
}

// List returns all users, newest first. Password hashes are not loaded.
func (r *PGUserRepo) List(ctx context.Context) ([]dom.User, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, username, first_name, last_name, email, created_at
		FROM users ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	var list []dom.User
	for rows.Next() {
		var u dom.User
		if err := rows.Scan(&u.ID, &u.Username, &u.FirstName, &u.LastName, &u.Email, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}
