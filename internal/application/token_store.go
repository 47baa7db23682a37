package application

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenStore persists short-lived purpose tokens. Put overwrites any
// previous token under the same key, which is what keeps "one active token
// per (user, purpose)" true.
type TokenStore interface {
	Put(ctx context.Context, key, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error) // empty string on miss
	Del(ctx context.Context, key string) error
}

// RedisTokenStore stores tokens as plain keys with TTLs.
type RedisTokenStore struct {
	RDB *redis.Client
}

func NewRedisTokenStore(rdb *redis.Client) *RedisTokenStore {
	return &RedisTokenStore{RDB: rdb}
}

func (s *RedisTokenStore) Put(ctx context.Context, key, value string, ttl time.Duration) error {
	return s.RDB.Set(ctx, key, value, ttl).Err()
}

func (s *RedisTokenStore) Get(ctx context.Context, key string) (string, error) {
	v, err := s.RDB.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return v, nil
}

func (s *RedisTokenStore) Del(ctx context.Context, key string) error {
	return s.RDB.Del(ctx, key).Err()
}

// MemoryTokenStore is an in-process TokenStore used in tests and when Redis
// is not configured.
type MemoryTokenStore struct {
	mu      sync.Mutex
	entries map[string]memoryToken
	now     func() time.Time
}

type memoryToken struct {
	value   string
	expires time.Time
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{entries: make(map[string]memoryToken), now: time.Now}
}

func (s *MemoryTokenStore) Put(_ context.Context, key, value string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var exp time.Time
	if ttl > 0 {
		exp = s.now().Add(ttl)
	}
	s.entries[key] = memoryToken{value: value, expires: exp}
	return nil
}

func (s *MemoryTokenStore) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok {
		return "", nil
	}
	if !e.expires.IsZero() && s.now().After(e.expires) {
		delete(s.entries, key)
		return "", nil
	}
	return e.value, nil
}

func (s *MemoryTokenStore) Del(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}
