package ratelimit

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/mozjobs/mojo/internal/model"
)

// HostRateLimiter enforces a minimum delay between requests to the same host.
type HostRateLimiter struct {
	mu       sync.Mutex
	lastCall map[string]time.Time // key: host
	minDelay time.Duration
}

// NewHostRateLimiter creates a rate limiter that enforces minDelay between
// consecutive requests to the same host.
func NewHostRateLimiter(minDelay time.Duration) *HostRateLimiter {
	return &HostRateLimiter{
		lastCall: make(map[string]time.Time),
		minDelay: minDelay,
	}
}

// Wait blocks until enough time has passed since the last request to the given host.
// Returns an error if the context is cancelled while waiting.
func (r *HostRateLimiter) Wait(ctx context.Context, host string) error {
	r.mu.Lock()
	last, ok := r.lastCall[host]
	now := time.Now()

	if !ok {
		// First request for this host — no wait needed.
		r.lastCall[host] = now
		r.mu.Unlock()
		return nil
	}

	elapsed := now.Sub(last)
	if elapsed >= r.minDelay {
		// Enough time has passed — proceed immediately.
		r.lastCall[host] = now
		r.mu.Unlock()
		return nil
	}

	// Need to wait for the remainder.
	remaining := r.minDelay - elapsed
	r.mu.Unlock()

	select {
	case <-ctx.Done():
		return fmt.Errorf("rate limiter wait for %s: %w", host, ctx.Err())
	case <-time.After(remaining):
	}

	// Record the actual time after waiting.
	r.mu.Lock()
	r.lastCall[host] = time.Now()
	r.mu.Unlock()

	return nil
}

// PoliteDetailFetcher is a decorator that spaces out detail-page fetches to
// the same host before delegating to the wrapped DetailFetcher.
type PoliteDetailFetcher struct {
	inner   model.DetailFetcher
	limiter *HostRateLimiter
}

// NewPoliteDetailFetcher wraps a DetailFetcher with host-level rate limiting.
// All fetchers hitting the same hosts should share the same limiter instance.
func NewPoliteDetailFetcher(inner model.DetailFetcher, limiter *HostRateLimiter) *PoliteDetailFetcher {
	return &PoliteDetailFetcher{
		inner:   inner,
		limiter: limiter,
	}
}

// FetchDetail waits for the rate limiter to allow a request to the offer's
// host, then delegates to the wrapped fetcher.
func (f *PoliteDetailFetcher) FetchDetail(ctx context.Context, offer model.JobOffer) (model.JobOffer, error) {
	if err := f.limiter.Wait(ctx, hostOf(offer.Link)); err != nil {
		return offer, err
	}
	return f.inner.FetchDetail(ctx, offer)
}

// hostOf extracts the host from a link, falling back to the raw link when
// it does not parse. The limiter only needs a stable key.
func hostOf(link string) string {
	u, err := url.Parse(link)
	if err != nil || u.Host == "" {
		return link
	}
	return u.Host
}
