// Package security hosts the brute-force rate limiter and the activity audit
// log that defend the auth service.
package security

import (
	"context"
	"errors"
	"time"

	"github.com/shindearyan179/notesnap/internal/common"
	"github.com/shindearyan179/notesnap/internal/logging"
	"github.com/shindearyan179/notesnap/internal/repositories/ratelimits"
)

// Limiter counts attempts of an action per source IP inside a sliding window
// and rejects once the limit is reached. This is the one fail-closed path in
// the system: a limited or unverifiable request is refused outright.
type Limiter struct {
	repo   ratelimits.Repository
	logger logging.Logger
	max    int
	window time.Duration
	now    func() time.Time
}

// NewLimiter constructs a limiter admitting max attempts per window.
func NewLimiter(repo ratelimits.Repository, logger logging.Logger, max int, window time.Duration) *Limiter {
	return &Limiter{
		repo:   repo,
		logger: logger,
		max:    max,
		window: window,
		now:    time.Now,
	}
}

// txRepository is implemented by attempt stores that can run one limiter
// decision inside a transaction.
type txRepository interface {
	InTx(ctx context.Context, fn func(ratelimits.Repository) error) error
}

// Allow records an attempt of action from ip and returns ErrorRateLimited
// when the window already holds the maximum. Storage failures also reject.
// When the store supports transactions, the prune-count-record sequence runs
// in one.
func (l *Limiter) Allow(ctx context.Context, ip, action string) error {
	txr, ok := l.repo.(txRepository)
	if !ok {
		return l.decide(ctx, l.repo, ip, action)
	}

	err := txr.InTx(ctx, func(repo ratelimits.Repository) error {
		return l.decide(ctx, repo, ip, action)
	})
	if err != nil && !errors.Is(err, common.ErrorRateLimited) {
		l.logger.Error(ctx, "rate limit transaction failed", "ip", ip, "action", action, "error", err)
		return common.ErrorRateLimited
	}
	return err
}

func (l *Limiter) decide(ctx context.Context, repo ratelimits.Repository, ip, action string) error {
	now := l.now()

	if err := repo.Prune(ctx, ip, action, now.Add(-l.window)); err != nil {
		l.logger.Error(ctx, "rate limit prune failed", "ip", ip, "action", action, "error", err)
		return common.ErrorRateLimited
	}

	count, err := repo.Count(ctx, ip, action)
	if err != nil {
		l.logger.Error(ctx, "rate limit count failed", "ip", ip, "action", action, "error", err)
		return common.ErrorRateLimited
	}

	if count >= l.max {
		l.logger.Warn(ctx, "rate limit exceeded", "ip", ip, "action", action, "attempts", count)
		return common.ErrorRateLimited
	}

	if err := repo.Record(ctx, ip, action, now); err != nil {
		l.logger.Error(ctx, "rate limit record failed", "ip", ip, "action", action, "error", err)
		return common.ErrorRateLimited
	}

	return nil
}
