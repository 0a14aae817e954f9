package repo

import (
	"context"
	"fmt"

	dom "Bookshop/internal/domain"
)

// AuditRepo is the append-only store of login attempts.
type AuditRepo interface {
	Insert(ctx context.Context, username string, success bool, ipAddress string) error
	List(ctx context.Context) ([]dom.AuditEntry, error)
}

// PGAuditRepo implements AuditRepo with Postgres.
type PGAuditRepo struct {
	db DB
}

// NewPGAuditRepo returns a new PGAuditRepo.
func NewPGAuditRepo(db DB) *PGAuditRepo {
	return &PGAuditRepo{db: db}
}

// Insert appends one login attempt. login_time is set by the database.
func (r *PGAuditRepo) Insert(ctx context.Context, username string, success bool, ipAddress string) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO audit_log (username, success, ip_address) VALUES ($1, $2, $3)`,
		username, success, ipAddress,
	)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

// List returns every login attempt, most recent first.
func (r *PGAuditRepo) List(ctx context.Context) ([]dom.AuditEntry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, username, success, ip_address, login_time
		FROM audit_log ORDER BY login_time DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list audit log: %w", err)
	}
	defer rows.Close()
	var list []dom.AuditEntry
	for rows.Next() {
		var e dom.AuditEntry
		if err := rows.Scan(&e.ID, &e.Username, &e.Success, &e.IPAddress, &e.LoginTime); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}
