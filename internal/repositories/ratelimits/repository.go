// Package ratelimits declares the attempt store the rate limiter counts
// against, with a PostgreSQL implementation and an in-memory one for the
// flat-file backend.
package ratelimits

import (
	"context"
	"time"
)

// Repository tracks attempts of an action from an IP. Attempts older than the
// limiter's window are pruned before counting.
type Repository interface {
	// Prune removes attempts for (ip, action) older than cutoff.
	Prune(ctx context.Context, ip, action string, cutoff time.Time) error

	// Count returns the number of recorded attempts for (ip, action).
	Count(ctx context.Context, ip, action string) (int, error)

	// Record stores one attempt of action from ip at the given instant.
	Record(ctx context.Context, ip, action string, at time.Time) error
}
