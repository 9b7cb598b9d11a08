package lock

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v8"
)

// RedsyncLocker serializes callers per key across service instances using a
// redis-backed distributed mutex.
type RedsyncLocker struct {
	sync   *redsync.Redsync
	expiry time.Duration
}

func NewRedsyncLocker(client *redis.Client, expiry time.Duration) *RedsyncLocker {
	if expiry <= 0 {
		expiry = 30 * time.Second
	}
	return &RedsyncLocker{
		sync:   redsync.New(goredis.NewPool(client)),
		expiry: expiry,
	}
}

func (l *RedsyncLocker) Acquire(ctx context.Context, key string) (func(), error) {
	mutex := l.sync.NewMutex("lock:"+key, redsync.WithExpiry(l.expiry))
	if err := mutex.LockContext(ctx); err != nil {
		return nil, fmt.Errorf("acquire lock %s: %w", key, err)
	}
	release := func() {
		if ok, err := mutex.Unlock(); !ok || err != nil {
			log.Printf("[lock] failed to unlock %s: %v", key, err)
		}
	}
	return release, nil
}
