// Package auth covers credential hashing and token verification. Tokens are
// opaque session ids backed by Redis with a TTL; claims travel with the
// token, never inside it.
package auth

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"safemap/internal/model"
	"safemap/internal/util"
)

const bcryptCost = 10

// Claims is what a verified token resolves to.
type Claims struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
}

// TokenStore persists issued sessions. Load returns model.ErrInvalidToken
// for unknown or expired tokens.
type TokenStore interface {
	Save(ctx context.Context, token string, claims Claims, ttl time.Duration) error
	Load(ctx context.Context, token string) (Claims, error)
	Revoke(ctx context.Context, token string) error
}

// HashPassword returns the bcrypt hash stored on the user record.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether the password matches the stored hash.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Service issues and verifies session tokens.
type Service struct {
	tokens TokenStore
	ttl    time.Duration
}

func New(tokens TokenStore, ttl time.Duration) *Service {
	return &Service{tokens: tokens, ttl: ttl}
}

// IssueToken mints an opaque token for the claims and stores it with the
// configured TTL.
func (s *Service) IssueToken(ctx context.Context, claims Claims) (string, error) {
	token := util.ShortUUID() + util.ShortUUID()
	if err := s.tokens.Save(ctx, token, claims, s.ttl); err != nil {
		return "", err
	}
	return token, nil
}

// VerifyToken resolves a token back to its claims.
func (s *Service) VerifyToken(ctx context.Context, token string) (Claims, error) {
	if token == "" {
		return Claims{}, model.ErrInvalidToken
	}
	return s.tokens.Load(ctx, token)
}

// RevokeToken invalidates a session (logout).
func (s *Service) RevokeToken(ctx context.Context, token string) error {
	return s.tokens.Revoke(ctx, token)
}
