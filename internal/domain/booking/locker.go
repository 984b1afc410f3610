package booking

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// SlotLocker serializes check-then-create for one date+time slot.
// Acquire hands out a token; Release only drops the lock while that token still holds it.
type SlotLocker interface {
	Acquire(ctx context.Context, date, t string) (token string, ok bool, err error)
	Release(ctx context.Context, date, t, token string) error
}

const slotLockTTL = 10 * time.Second

// releaseScript deletes the key only if it still carries the caller's token
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisSlotLocker holds slot locks in Redis so every API instance sees them
type RedisSlotLocker struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSlotLocker creates a Redis-backed locker
func NewRedisSlotLocker(client *redis.Client) *RedisSlotLocker {
	return &RedisSlotLocker{client: client, ttl: slotLockTTL}
}

func (l *RedisSlotLocker) Acquire(ctx context.Context, date, t string) (string, bool, error) {
	token := uuid.NewString()
	ok, err := l.client.SetNX(ctx, slotLockKey(date, t), token, l.ttl).Result()
	if err != nil || !ok {
		return "", false, err
	}
	return token, true, nil
}

func (l *RedisSlotLocker) Release(ctx context.Context, date, t, token string) error {
	return releaseScript.Run(ctx, l.client, []string{slotLockKey(date, t)}, token).Err()
}

// LocalSlotLocker holds slot locks in process memory
type LocalSlotLocker struct {
	mu   sync.Mutex
	held map[string]string
}

// NewLocalSlotLocker creates an in-process locker
func NewLocalSlotLocker() *LocalSlotLocker {
	return &LocalSlotLocker{held: make(map[string]string)}
}

func (l *LocalSlotLocker) Acquire(_ context.Context, date, t string) (string, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	key := slotLockKey(date, t)
	if _, ok := l.held[key]; ok {
		return "", false, nil
	}
	token := uuid.NewString()
	l.held[key] = token
	return token, true, nil
}

func (l *LocalSlotLocker) Release(_ context.Context, date, t, token string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	key := slotLockKey(date, t)
	if l.held[key] == token {
		delete(l.held, key)
	}
	return nil
}

func slotLockKey(date, t string) string {
	return fmt.Sprintf("lock:booking:%s:%s", date, t)
}
