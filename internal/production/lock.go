package production

import (
	"context"
	"sync"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Locker serializes order completions per factory. The store has no
// multi-key transactions, so the stock-sufficiency check and the write
// sequence must run inside one critical section to keep two concurrent
// completions from jointly overdrawing a material.
type Locker interface {
	Lock(ctx context.Context, factoryID string) (release func(), err error)
}

// MemoryLocker serves single-instance deployments (postgres and memory
// store drivers).
type MemoryLocker struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewMemoryLocker() *MemoryLocker {
	return &MemoryLocker{locks: make(map[string]*sync.Mutex)}
}

func (l *MemoryLocker) Lock(_ context.Context, factoryID string) (func(), error) {
	l.mu.Lock()
	m, ok := l.locks[factoryID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[factoryID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock, nil
}

// RedisLocker serializes completions across instances sharing a redis
// store.
type RedisLocker struct {
	client *redislock.Client
	ttl    time.Duration
}

func NewRedisLocker(rdb *redis.Client) *RedisLocker {
	return &RedisLocker{client: redislock.New(rdb), ttl: 30 * time.Second}
}

func (l *RedisLocker) Lock(ctx context.Context, factoryID string) (func(), error) {
	lock, err := l.client.Obtain(ctx, "completion_lock:"+factoryID, l.ttl, &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(100*time.Millisecond), 50),
	})
	if err != nil {
		return nil, err
	}
	return func() {
		if err := lock.Release(context.Background()); err != nil {
			logrus.WithError(err).Warn("failed to release completion lock")
		}
	}, nil
}
