package service

import (
	"context"
	"time"

	dom "Bookshop/internal/domain"
	"Bookshop/internal/metrics"
	"Bookshop/internal/repo"

	"go.uber.org/zap"
)

const defaultAuditTimeout = 2 * time.Second

// AuditService records login attempts. Recording is best-effort: a failed or
// slow append is logged and counted but never surfaces to the caller.
type AuditService struct {
	repo    repo.AuditRepo
	timeout time.Duration
	log     *zap.Logger
	metrics *metrics.Auth
}

// NewAuditService returns an AuditService whose writes are bounded by timeout.
func NewAuditService(r repo.AuditRepo, timeout time.Duration, log *zap.Logger, m *metrics.Auth) *AuditService {
	if timeout <= 0 {
		timeout = defaultAuditTimeout
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &AuditService{repo: r, timeout: timeout, log: log, metrics: m}
}

// Record appends one audit entry. The write outlives request cancellation but
// not the configured timeout.
func (s *AuditService) Record(ctx context.Context, username string, success bool, origin string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	defer cancel()

	if err := s.repo.Insert(ctx, username, success, origin); err != nil {
		s.metrics.AuditWriteFailed()
		s.log.Error("failed to log login attempt",
			zap.String("username", username),
			zap.Bool("success", success),
			zap.Error(err),
		)
	}
}

// List returns all audit entries, most recent first.
func (s *AuditService) List(ctx context.Context) ([]dom.AuditEntry, error) {
	return s.repo.List(ctx)
}
