package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Login outcomes used as the "outcome" label.
const (
	OutcomeSuccess            = "success"
	OutcomeInvalidCredentials = "invalid_credentials"
	OutcomeError              = "error"
)

// Auth holds counters for the login and audit flow. A nil *Auth is a no-op.
type Auth struct {
	LoginAttempts *prometheus.CounterVec
	AuditFailures prometheus.Counter
}

// NewAuth registers the auth collectors with reg (DefaultRegisterer if nil).
func NewAuth(reg prometheus.Registerer) (*Auth, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	attempts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bookshop",
		Name:      "login_attempts_total",
		Help:      "Login attempts partitioned by outcome.",
	}, []string{"outcome"})
	if err := reg.Register(attempts); err != nil {
		return nil, fmt.Errorf("register login attempts collector: %w", err)
	}

	failures := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "bookshop",
		Name:      "audit_write_failures_total",
		Help:      "Audit log appends that failed or timed out.",
	})
	if err := reg.Register(failures); err != nil {
		return nil, fmt.Errorf("register audit failures collector: %w", err)
	}

	return &Auth{LoginAttempts: attempts, AuditFailures: failures}, nil
}

// LoginAttempt counts one login attempt with the given outcome.
func (m *Auth) LoginAttempt(outcome string) {
	if m == nil {
		return
	}
	m.LoginAttempts.WithLabelValues(outcome).Inc()
}

// AuditWriteFailed counts one failed audit append.
func (m *Auth) AuditWriteFailed() {
	if m == nil {
		return
	}
	m.AuditFailures.Inc()
}
