package lock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix    = "leadform:lock:"
	retryDelay   = 50 * time.Millisecond
	releaseGrace = 2 * time.Second
)

var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker holds keys with SET NX PX so several server instances
// serialize on the same lead. Keys expire after ttl if the holder dies.
type RedisLocker struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewRedisLocker(client redis.UniversalClient, ttl time.Duration) *RedisLocker {
	return &RedisLocker{client: client, ttl: ttl}
}

func (l *RedisLocker) Lock(ctx context.Context, keys ...string) (func(), error) {
	keys = normalizeKeys(keys)
	token := uuid.NewString()
	acquired := make([]string, 0, len(keys))

	for _, key := range keys {
		if err := l.lockKey(ctx, keyPrefix+key, token); err != nil {
			l.unlockKeys(acquired, token)
			return nil, err
		}
		acquired = append(acquired, keyPrefix+key)
	}

	var once sync.Once
	return func() {
		once.Do(func() { l.unlockKeys(acquired, token) })
	}, nil
}

func (l *RedisLocker) lockKey(ctx context.Context, key, token string) error {
	ticker := time.NewTicker(retryDelay)
	defer ticker.Stop()

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			return fmt.Errorf("failed to acquire lock %s: %w", key, err)
		}
		if ok {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// unlockKeys only deletes keys still carrying token, so an expired lock
// re-acquired by someone else is left alone. Keys whose release fails are
// reclaimed by their ttl.
func (l *RedisLocker) unlockKeys(keys []string, token string) {
	ctx, cancel := context.WithTimeout(context.Background(), releaseGrace)
	defer cancel()

	for _, key := range keys {
		_ = releaseScript.Run(ctx, l.client, []string{key}, token).Err()
	}
}
