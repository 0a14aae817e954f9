package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	dom "Bookshop/internal/domain"
	"Bookshop/internal/metrics"
	"Bookshop/internal/repo"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// maxPasswordBytes is the bcrypt input limit.
const maxPasswordBytes = 72

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
}

// SessionCreator issues session tokens for verified users.
type SessionCreator interface {
	Create(ctx context.Context, username string) (string, error)
}

// AuditRecorder appends login attempts to the audit log.
type AuditRecorder interface {
	Record(ctx context.Context, username string, success bool, origin string)
}

// RegisterInput is the raw registration form.
type RegisterInput struct {
	Username  string `validate:"min=4,max=20"`
	FirstName string `validate:"max=100"`
	LastName  string `validate:"max=100"`
	Email     string `validate:"required,email,max=254"`
	Password  string `validate:"min=6"`
}

// UserService handles registration and login.
type UserService struct {
	repo     repo.UserRepo
	hasher   PasswordHasher
	sessions SessionCreator
	audit    AuditRecorder
	validate *validator.Validate
	log      *zap.Logger
	metrics  *metrics.Auth

	// timingDigest is verified against when the user does not exist so that
	// unknown usernames cost the same as wrong passwords.
	timingDigest string
}

// NewUserService returns a new UserService.
func NewUserService(r repo.UserRepo, h PasswordHasher, sessions SessionCreator, audit AuditRecorder, log *zap.Logger, m *metrics.Auth) (*UserService, error) {
	if log == nil {
		log = zap.NewNop()
	}
	digest, err := h.Hash("bookshop-timing-guard")
	if err != nil {
		return nil, fmt.Errorf("prepare timing digest: %w", err)
	}
	return &UserService{
		repo:         r,
		hasher:       h,
		sessions:     sessions,
		audit:        audit,
		validate:     validator.New(validator.WithRequiredStructEnabled()),
		log:          log,
		metrics:      m,
		timingDigest: digest,
	}, nil
}

// Register validates in, hashes the password and creates the user.
// Validation failures return *ValidationError without touching storage.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (dom.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = strings.TrimSpace(in.Email)

	if err := s.validateRegistration(in); err != nil {
		return dom.User{}, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return dom.User{}, err
	}
	u, err := s.repo.Create(ctx, dom.NewUser{
		Username:       in.Username,
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		Email:          in.Email,
		HashedPassword: hash,
	})
	if err != nil {
		if errors.Is(err, repo.ErrDuplicateUsername) {
			return dom.User{}, ErrUsernameTaken
		}
		return dom.User{}, err
	}
	s.log.Info("user registered", zap.Int64("user_id", u.ID), zap.String("username", u.Username))
	return u, nil
}

// Login checks the credentials and opens a session. Every call records
// exactly one audit entry, carrying the submitted username, whose success
// flag matches the returned outcome. Unknown users and wrong passwords both
// yield ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, username, password, origin string) (dom.User, string, error) {
	u, token, err := s.login(ctx, strings.TrimSpace(username), password)
	s.audit.Record(ctx, storableText(username), err == nil, origin)

	switch {
	case err == nil:
		s.metrics.LoginAttempt(metrics.OutcomeSuccess)
	case errors.Is(err, ErrInvalidCredentials):
		s.metrics.LoginAttempt(metrics.OutcomeInvalidCredentials)
	default:
		s.metrics.LoginAttempt(metrics.OutcomeError)
	}
	return u, token, err
}

func (s *UserService) login(ctx context.Context, username, password string) (dom.User, string, error) {
	if username == "" || password == "" {
		return dom.User{}, "", ErrInvalidCredentials
	}
	if username != storableText(username) {
		// Postgres TEXT rejects it, so no stored user can match.
		s.hasher.Verify(password, s.timingDigest)
		return dom.User{}, "", ErrInvalidCredentials
	}
	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			s.hasher.Verify(password, s.timingDigest)
			return dom.User{}, "", ErrInvalidCredentials
		}
		return dom.User{}, "", fmt.Errorf("lookup user: %w", err)
	}
	if !s.hasher.Verify(password, u.HashedPassword) {
		return dom.User{}, "", ErrInvalidCredentials
	}
	token, err := s.sessions.Create(ctx, u.Username)
	if err != nil {
		return dom.User{}, "", fmt.Errorf("create session: %w", err)
	}
	return u, token, nil
}

// storableText replaces invalid UTF-8 and NUL bytes with U+FFFD.
func storableText(s string) string {
	if utf8.ValidString(s) && !strings.ContainsRune(s, 0) {
		return s
	}
	return strings.ReplaceAll(strings.ToValidUTF8(s, "\uFFFD"), "\x00", "\uFFFD")
}

// ListUsers returns all users, newest first.
func (s *UserService) ListUsers(ctx context.Context) ([]dom.User, error) {
	return s.repo.List(ctx)
}

func (s *UserService) validateRegistration(in RegisterInput) error {
	var messages []string
	seen := make(map[string]bool)
	add := func(field, msg string) {
		if !seen[field] {
			seen[field] = true
			messages = append(messages, msg)
		}
	}

	if err := s.validate.Struct(in); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return err
		}
		for _, fe := range fieldErrs {
			add(fe.Field(), registrationMessage(fe.Field()))
		}
	}
	if len(in.Password) > maxPasswordBytes {
		add("PasswordLength", "Password must be at most 72 bytes")
	}

	if len(messages) > 0 {
		return &ValidationError{Messages: messages}
	}
	return nil
}

func registrationMessage(field string) string {
	switch field {
	case "Username":
		return "Username must be between 4-20 characters"
	case "Email":
		return "Please enter a valid email address"
	case "Password":
		return "Password must be at least 6 characters"
	case "FirstName":
		return "First name must be 100 characters or fewer"
	case "LastName":
		return "Last name must be 100 characters or fewer"
	default:
		return field + " is invalid"
	}
}
