package admin

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// RevocationStore remembers closed sessions until their tokens expire
type RevocationStore interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

const revokedKeyPrefix = "admin:session:revoked:"

// RedisRevocationStore shares logouts between API instances
type RedisRevocationStore struct {
	client *redis.Client
}

// NewRedisRevocationStore creates a Redis-backed store
func NewRedisRevocationStore(client *redis.Client) *RedisRevocationStore {
	return &RedisRevocationStore{client: client}
}

func (s *RedisRevocationStore) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return s.client.Set(ctx, revokedKeyPrefix+jti, "1", ttl).Err()
}

func (s *RedisRevocationStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := s.client.Exists(ctx, revokedKeyPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// MemoryRevocationStore keeps closed sessions in process memory
type MemoryRevocationStore struct {
	mu      sync.Mutex
	now     func() time.Time
	revoked map[string]time.Time
}

// NewMemoryRevocationStore creates an in-process store
func NewMemoryRevocationStore() *MemoryRevocationStore {
	return &MemoryRevocationStore{now: time.Now, revoked: make(map[string]time.Time)}
}

func (s *MemoryRevocationStore) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for k, exp := range s.revoked {
		if !now.Before(exp) {
			delete(s.revoked, k)
		}
	}
	if ttl > 0 {
		s.revoked[jti] = now.Add(ttl)
	}
	return nil
}

func (s *MemoryRevocationStore) IsRevoked(_ context.Context, jti string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	exp, ok := s.revoked[jti]
	return ok && s.now().Before(exp), nil
}
