package distlock

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"review-server/internal/observability"

	"github.com/redis/go-redis/v9"
)

// ErrNotAcquired is returned when another process holds the lock
var ErrNotAcquired = errors.New("lock held by another process")

var releaseScript = redis.NewScript(`
	if redis.call("get", KEYS[1]) == ARGV[1] then
		return redis.call("del", KEYS[1])
	else
		return 0
	end
`)

// Locker hands out SET NX locks with a random ownership value, so a holder
// whose TTL lapsed cannot release a lock someone else acquired since.
type Locker struct {
	client redis.Cmdable
	logger *observability.Logger
}

func New(client redis.Cmdable, logger *observability.Logger) *Locker {
	return &Locker{
		client: client,
		logger: logger,
	}
}

// WithLock runs fn while holding key. It returns ErrNotAcquired without
// running fn when the key is already held.
func (l *Locker) WithLock(ctx context.Context, key string, ttl time.Duration, fn func(ctx context.Context) error) error {
	lockKey := fmt.Sprintf("lock:%s", key)
	ctx = observability.WithFields(ctx, observability.Field{Key: "lock_key", Value: lockKey})

	value, err := ownerValue()
	if err != nil {
		return err
	}

	ok, err := l.client.SetNX(ctx, lockKey, value, ttl).Result()
	if err != nil {
		l.logger.Error(ctx, "failed to acquire lock", err)
		return fmt.Errorf("failed to acquire lock %s: %w", lockKey, err)
	}
	if !ok {
		return ErrNotAcquired
	}

	defer func() {
		// release on a fresh context so a cancelled run still frees the key
		releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 3*time.Second)
		defer cancel()
		if err := releaseScript.Run(releaseCtx, l.client, []string{lockKey}, value).Err(); err != nil {
			l.logger.Error(ctx, "failed to release lock", err)
		}
	}()

	return fn(ctx)
}

func ownerValue() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate lock owner value: %w", err)
	}
	return hex.EncodeToString(b), nil
}
