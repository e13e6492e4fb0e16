// Package ratelimit implements fixed-window request limiting keyed by client
// identity. Counters live either in process memory (single instance) or in
// Redis (shared across instances).
package ratelimit

import (
	"context"
	"time"
)

// Decision is the outcome of counting one request against a key's window.
// Remaining is the quota left after this request.
type Decision struct {
	Allowed   bool
	Limit     int
	Remaining int
	Reset     time.Time
}

// Store checks and increments the counter for key in one step.
//
// A store error must not be translated into an allow: callers treat any error
// as a deny (fail closed), since the limiter exists for abuse protection.
type Store interface {
	Check(ctx context.Context, key string) (Decision, error)
}
