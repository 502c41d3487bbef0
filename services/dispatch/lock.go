package dispatch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// GroupLocker serializes acceptance attempts within one sibling group. The
// per-record conditional update remains the commit point; the lock only
// orders contenders so the loser observes the winner's cancellations.
type GroupLocker interface {
	// Lock blocks until the group lock is held or ctx expires, and returns
	// the release function.
	Lock(ctx context.Context, groupID string) (func(), error)
}

// LocalGroupLocker serializes groups within a single process.
type LocalGroupLocker struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewLocalGroupLocker() *LocalGroupLocker {
	return &LocalGroupLocker{locks: make(map[string]*sync.Mutex)}
}

func (l *LocalGroupLocker) Lock(ctx context.Context, groupID string) (func(), error) {
	l.mu.Lock()
	m, ok := l.locks[groupID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[groupID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock, nil
}

// RedisGroupLocker implements the group lock as a Redis advisory lock with a
// TTL, so a crashed holder cannot wedge the group.
type RedisGroupLocker struct {
	Client        *redis.Client
	TTL           time.Duration
	RetryInterval time.Duration
}

func NewRedisGroupLocker(client *redis.Client) *RedisGroupLocker {
	return &RedisGroupLocker{
		Client:        client,
		TTL:           5 * time.Second,
		RetryInterval: 25 * time.Millisecond,
	}
}

func (l *RedisGroupLocker) Lock(ctx context.Context, groupID string) (func(), error) {
	key := "dispatch:group-lock:" + groupID
	token := uuid.New().String()

	for {
		acquired, err := l.Client.SetNX(ctx, key, token, l.TTL).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to acquire group lock %s: %w", groupID, err)
		}
		if acquired {
			release := func() {
				// Only the holder's token may release the lock.
				current, err := l.Client.Get(context.Background(), key).Result()
				if err == nil && current == token {
					l.Client.Del(context.Background(), key)
				}
			}
			return release, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(l.RetryInterval):
		}
	}
}
