package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"safemap/internal/model"
)

const sessionKeyPrefix = "session:"

// RedisTokenStore keeps sessions in Redis; expiry is delegated to the key
// TTL.
type RedisTokenStore struct {
	client *redis.Client
}

func NewRedisTokenStore(client *redis.Client) *RedisTokenStore {
	return &RedisTokenStore{client: client}
}

func (s *RedisTokenStore) Save(ctx context.Context, token string, claims Claims, ttl time.Duration) error {
	raw, err := json.Marshal(claims)
	if err != nil {
		return fmt.Errorf("marshal claims: %w", err)
	}
	if err := s.client.Set(ctx, sessionKeyPrefix+token, raw, ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *RedisTokenStore) Load(ctx context.Context, token string) (Claims, error) {
	raw, err := s.client.Get(ctx, sessionKeyPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return Claims{}, model.ErrInvalidToken
	}
	if err != nil {
		return Claims{}, fmt.Errorf("load session: %w", err)
	}

	var claims Claims
	if err := json.Unmarshal([]byte(raw), &claims); err != nil {
		return Claims{}, model.ErrInvalidToken
	}
	return claims, nil
}

func (s *RedisTokenStore) Revoke(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, sessionKeyPrefix+token).Err(); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}
