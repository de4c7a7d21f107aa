package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

var ErrTokenNotFound = errors.New("refresh token not found")

// TokenStore keeps opaque refresh tokens mapped to the user they were issued to.
type TokenStore interface {
	Save(ctx context.Context, token, userID string, ttl time.Duration) error
	// Take returns the user the token was issued to and removes it in one
	// step, so a token is redeemed at most once.
	Take(ctx context.Context, token string) (string, error)
	Delete(ctx context.Context, token string) error
}

// NewRefreshToken returns a fresh random refresh token.
func NewRefreshToken() string {
	return uuid.NewString()
}

const refreshKeyPrefix = "refresh:"

// RedisTokenStore stores refresh tokens in Redis with a TTL.
type RedisTokenStore struct {
	rdb *redis.Client
}

func NewRedisTokenStore(rdb *redis.Client) *RedisTokenStore {
	return &RedisTokenStore{rdb: rdb}
}

func (s *RedisTokenStore) Save(ctx context.Context, token, userID string, ttl time.Duration) error {
	return s.rdb.Set(ctx, refreshKeyPrefix+token, userID, ttl).Err()
}

func (s *RedisTokenStore) Take(ctx context.Context, token string) (string, error) {
	userID, err := s.rdb.GetDel(ctx, refreshKeyPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrTokenNotFound
	}
	if err != nil {
		return "", err
	}
	return userID, nil
}

func (s *RedisTokenStore) Delete(ctx context.Context, token string) error {
	return s.rdb.Del(ctx, refreshKeyPrefix+token).Err()
}

// MemoryTokenStore keeps refresh tokens in process memory. Tokens do not
// survive a restart and are not shared between replicas.
type MemoryTokenStore struct {
	mu sync.Mutex
	c  *cache.Cache
}

func NewMemoryTokenStore(defaultTTL time.Duration) *MemoryTokenStore {
	return &MemoryTokenStore{c: cache.New(defaultTTL, 10*time.Minute)}
}

func (s *MemoryTokenStore) Save(_ context.Context, token, userID string, ttl time.Duration) error {
	s.c.Set(token, userID, ttl)
	return nil
}

func (s *MemoryTokenStore) Take(_ context.Context, token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.c.Get(token)
	if !ok {
		return "", ErrTokenNotFound
	}
	s.c.Delete(token)
	return v.(string), nil
}

func (s *MemoryTokenStore) Delete(_ context.Context, token string) error {
	s.c.Delete(token)
	return nil
}
