package auth

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestStore(t *testing.T, ttl time.Duration) (*Store, *miniredis.Miniredis) {
	t.Helper()

	server, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() {
		_ = client.Close()
		server.Close()
	})
	return NewStore(client, ttl), server
}

func TestStore_CreateResolveDestroy(t *testing.T) {
	store, server := newTestStore(t, time.Hour)
	ctx := context.Background()

	token, err := store.Create(ctx, "alice1")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if len(token) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(token))
	}

	remaining := server.TTL(sessionKeyPrefix + token)
	if remaining <= 0 || remaining > time.Hour {
		t.Fatalf("expected ttl within (0, 1h], got %v", remaining)
	}

	sess, ok, err := store.Resolve(ctx, token)
	if err != nil || !ok {
		t.Fatalf("Resolve = ok:%v err:%v", ok, err)
	}
	if sess.Username != "alice1" || sess.Token != token {
		t.Fatalf("unexpected session: %+v", sess)
	}
	if got := sess.ExpiresAt.Sub(sess.CreatedAt); got != time.Hour {
		t.Fatalf("expected expiry one hour after creation, got %v", got)
	}

	if err := store.Destroy(ctx, token); err != nil {
		t.Fatalf("Destroy returned error: %v", err)
	}
	if _, ok, _ := store.Resolve(ctx, token); ok {
		t.Fatal("expected destroyed session to be absent")
	}
	if err := store.Destroy(ctx, token); err != nil {
		t.Fatalf("second Destroy must be a no-op, got %v", err)
	}
}

func TestStore_TokensAreUnique(t *testing.T) {
	store, _ := newTestStore(t, time.Hour)
	ctx := context.Background()

	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		token, err := store.Create(ctx, "alice1")
		if err != nil {
			t.Fatalf("Create returned error: %v", err)
		}
		if _, dup := seen[token]; dup {
			t.Fatalf("duplicate token %s", token)
		}
		seen[token] = struct{}{}
	}
}

func TestStore_ExpiredSessionIsAbsent(t *testing.T) {
	store, server := newTestStore(t, 10*time.Minute)
	ctx := context.Background()

	token, err := store.Create(ctx, "alice1")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	server.FastForward(11 * time.Minute)

	if _, ok, err := store.Resolve(ctx, token); ok || err != nil {
		t.Fatalf("expected expired session to be absent, ok=%v err=%v", ok, err)
	}
}

func TestStore_ExpiryCheckedAgainstClock(t *testing.T) {
	store, _ := newTestStore(t, time.Minute)
	ctx := context.Background()

	token, err := store.Create(ctx, "alice1")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	store.now = func() time.Time { return time.Now().Add(2 * time.Minute) }

	if _, ok, _ := store.Resolve(ctx, token); ok {
		t.Fatal("expected session past ExpiresAt to be absent")
	}
}

func TestStore_MalformedTokens(t *testing.T) {
	store, _ := newTestStore(t, time.Hour)
	ctx := context.Background()

	for _, token := range []string{"", "abc", "session:*", "zz" + string(make([]byte, 62))} {
		if _, ok, err := store.Resolve(ctx, token); ok || err != nil {
			t.Fatalf("Resolve(%q) = ok:%v err:%v", token, ok, err)
		}
		if err := store.Destroy(ctx, token); err != nil {
			t.Fatalf("Destroy(%q) returned error: %v", token, err)
		}
	}

	if _, err := store.Create(ctx, ""); err == nil {
		t.Fatal("expected error for empty username")
	}
}

func TestStore_RedisDown(t *testing.T) {
	store, server := newTestStore(t, time.Hour)
	ctx := context.Background()

	token, err := store.Create(ctx, "alice1")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	server.Close()

	if _, ok, err := store.Resolve(ctx, token); ok || err == nil {
		t.Fatalf("expected error when redis is unavailable, ok=%v err=%v", ok, err)
	}
}
