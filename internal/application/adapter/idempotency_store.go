// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"
)

// IdempotencyStore defines the interface for short-lived idempotency
// markers guarding reconciliation operations. The ledger's unique index is
// the durable authority; this store is the fast path that lets repeated
// requests short-circuit before touching the database.
type IdempotencyStore interface {
	// Acquire attempts to record the key. It returns true when the key was
	// newly recorded and false when it already existed.
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Release removes the key so a failed operation can be retried.
	Release(ctx context.Context, key string) error
}
