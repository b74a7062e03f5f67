package auth

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"safemap/internal/model"
)

type memoryTokenStore struct {
	mu       sync.Mutex
	sessions map[string]Claims
	expires  map[string]time.Time
}

func newMemoryTokenStore() *memoryTokenStore {
	return &memoryTokenStore{
		sessions: make(map[string]Claims),
		expires:  make(map[string]time.Time),
	}
}

func (s *memoryTokenStore) Save(ctx context.Context, token string, claims Claims, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = claims
	s.expires[token] = time.Now().Add(ttl)
	return nil
}

func (s *memoryTokenStore) Load(ctx context.Context, token string) (Claims, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	claims, ok := s.sessions[token]
	if !ok || time.Now().After(s.expires[token]) {
		return Claims{}, model.ErrInvalidToken
	}
	return claims, nil
}

func (s *memoryTokenStore) Revoke(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("S3cret!pass")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "S3cret!pass" {
		t.Fatal("hash must not equal the raw password")
	}
	if !CheckPassword("S3cret!pass", hash) {
		t.Error("expected matching password to verify")
	}
	if CheckPassword("wrong", hash) {
		t.Error("expected non-matching password to fail")
	}
}

func TestTokenLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := New(newMemoryTokenStore(), time.Hour)

	token, err := svc.IssueToken(ctx, Claims{UserID: "u1", Role: "admin"})
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	claims, err := svc.VerifyToken(ctx, token)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if claims.UserID != "u1" || claims.Role != "admin" {
		t.Errorf("unexpected claims %+v", claims)
	}

	if err := svc.RevokeToken(ctx, token); err != nil {
		t.Fatalf("RevokeToken: %v", err)
	}
	if _, err := svc.VerifyToken(ctx, token); !errors.Is(err, model.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken after revoke, got %v", err)
	}
}

func TestVerifyRejectsEmptyAndUnknownTokens(t *testing.T) {
	ctx := context.Background()
	svc := New(newMemoryTokenStore(), time.Hour)

	if _, err := svc.VerifyToken(ctx, ""); !errors.Is(err, model.ErrInvalidToken) {
		t.Fatalf("empty token: expected ErrInvalidToken, got %v", err)
	}
	if _, err := svc.VerifyToken(ctx, "forged"); !errors.Is(err, model.ErrInvalidToken) {
		t.Fatalf("unknown token: expected ErrInvalidToken, got %v", err)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	ctx := context.Background()
	svc := New(newMemoryTokenStore(), -time.Second)

	token, err := svc.IssueToken(ctx, Claims{UserID: "u1", Role: "user"})
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	if _, err := svc.VerifyToken(ctx, token); !errors.Is(err, model.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired session, got %v", err)
	}
}
