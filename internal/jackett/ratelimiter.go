// Copyright (c) 2025, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package jackett

import (
	"context"
	"sync"
	"time"
)

// RateLimiter serializes requests and enforces a minimum interval between
// request starts. All searches share one limiter, so the spacing guarantee
// holds across the whole scan.
type RateLimiter struct {
	mu          sync.Mutex
	minInterval time.Duration
	lastRequest time.Duration // offset from startTime, -1 before first request
	startTime   time.Time
}

// NewRateLimiter creates a limiter with the given minimum interval. A zero
// or negative interval disables the wait but still serializes callers.
func NewRateLimiter(minInterval time.Duration) *RateLimiter {
	if minInterval < 0 {
		minInterval = 0
	}
	return &RateLimiter{
		minInterval: minInterval,
		lastRequest: -1,
		startTime:   time.Now(),
	}
}

// Wait blocks until at least the configured interval has elapsed since the
// previous request's start, then records the current request's start. It
// returns early with ctx.Err() if the context is cancelled while waiting.
func (r *RateLimiter) Wait(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for {
		now := time.Since(r.startTime)
		wait := r.waitLocked(now)
		if wait <= 0 {
			r.lastRequest = now
			return nil
		}

		timer := time.NewTimer(wait)
		r.mu.Unlock()
		select {
		case <-ctx.Done():
			if !timer.Stop() {
				<-timer.C
			}
			r.mu.Lock()
			return ctx.Err()
		case <-timer.C:
			r.mu.Lock()
		}
	}
}

func (r *RateLimiter) waitLocked(now time.Duration) time.Duration {
	if r.minInterval <= 0 || r.lastRequest < 0 {
		return 0
	}
	next := r.lastRequest + r.minInterval
	if next > now {
		return next - now
	}
	return 0
}

// Penalize permanently raises the minimum interval. Used after a search
// needed retries so the rest of the scan backs off the indexer.
func (r *RateLimiter) Penalize(d time.Duration) {
	if d <= 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.minInterval += d
}

// SetInterval replaces the minimum interval, dropping any accumulated
// penalty. Used when the configured delay changes mid-scan.
func (r *RateLimiter) SetInterval(d time.Duration) {
	if d < 0 {
		d = 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.minInterval = d
}

// Interval returns the current minimum interval.
func (r *RateLimiter) Interval() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.minInterval
}
