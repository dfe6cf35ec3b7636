package redis

import (
	"context"
	"time"
)

const runLockKeyPrefix = "rescueops:runlock:"

// RunLock is a best-effort distributed lock for scheduled jobs. It prevents
// two service instances from dispatching reminders for the same cycle, closing
// the check-then-act window between concurrent batch runs. Redis SET NX EX is
// the atomic claim; the TTL releases a lock held by a crashed instance.
type RunLock struct {
	client *Client
}

// NewRunLock constructs a RunLock. A nil client yields a lock that always
// acquires, for single-instance deployments without Redis.
func NewRunLock(client *Client) *RunLock {
	return &RunLock{client: client}
}

// Acquire attempts to claim the named lock for ttl. It returns true when this
// caller holds the lock. Errors from Redis are surfaced so the scheduler can
// decide whether to proceed without coordination.
func (l *RunLock) Acquire(ctx context.Context, name string, ttl time.Duration) (bool, error) {
	if l.client == nil {
		return true, nil
	}
	return l.client.SetNX(ctx, runLockKeyPrefix+name, "1", ttl).Result()
}

// Release drops the named lock early. Safe to call when the lock has already
// expired.
func (l *RunLock) Release(ctx context.Context, name string) error {
	if l.client == nil {
		return nil
	}
	return l.client.Del(ctx, runLockKeyPrefix+name).Err()
}
