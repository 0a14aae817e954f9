package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	dom "Bookshop/internal/domain"

	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix = "session:"
	sessionTTL       = 24 * time.Hour
	tokenBytes       = 32
)

// Store manages sessions in Redis. Each token maps to one immutable session.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
	now func() time.Time
}

// NewStore returns a new session store.
func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = sessionTTL
	}
	return &Store{rdb: rdb, ttl: ttl, now: time.Now}
}

// TTL is the lifetime of newly created sessions.
func (s *Store) TTL() time.Duration {
	return s.ttl
}

// Create stores a new session for username and returns its token.
func (s *Store) Create(ctx context.Context, username string) (string, error) {
	if username == "" {
		return "", errors.New("session: username is required")
	}
	token, err := newToken()
	if err != nil {
		return "", err
	}
	now := s.now().UTC()
	payload, err := json.Marshal(dom.Session{
		Username:  username,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	})
	if err != nil {
		return "", err
	}
	if err := s.rdb.Set(ctx, sessionKeyPrefix+token, payload, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("redis set session: %w", err)
	}
	return token, nil
}

// Resolve returns the session for token. ok is false when the token is
// malformed, unknown or expired.
func (s *Store) Resolve(ctx context.Context, token string) (dom.Session, bool, error) {
	if !validToken(token) {
		return dom.Session{}, false, nil
	}
	data, err := s.rdb.Get(ctx, sessionKeyPrefix+token).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return dom.Session{}, false, nil
		}
		return dom.Session{}, false, fmt.Errorf("redis get session: %w", err)
	}
	var sess dom.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return dom.Session{}, false, fmt.Errorf("decode session: %w", err)
	}
	if sess.Username == "" || !s.now().Before(sess.ExpiresAt) {
		return dom.Session{}, false, nil
	}
	sess.Token = token
	return sess, true, nil
}

// Destroy removes a session by token. Unknown tokens are not an error.
func (s *Store) Destroy(ctx context.Context, token string) error {
	if !validToken(token) {
		return nil
	}
	if err := s.rdb.Del(ctx, sessionKeyPrefix+token).Err(); err != nil {
		return fmt.Errorf("redis del session: %w", err)
	}
	return nil
}

func newToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("rand: %w", err)
	}
	return hex.EncodeToString(b), nil
}

func validToken(token string) bool {
	if len(token) != tokenBytes*2 {
		return false
	}
	_, err := hex.DecodeString(token)
	return err == nil
}
