// Package ratelimit throttles calls that reach the backend auth service.
package ratelimit

import (
	"context"
	"time"
)

// Limits caps requests per sliding window; a zero field disables that window.
type Limits struct {
	PerMinute int
	PerHour   int
}

func (l Limits) windows() []window {
	return []window{
		{duration: time.Minute, limit: l.PerMinute},
		{duration: time.Hour, limit: l.PerHour},
	}
}

type window struct {
	duration time.Duration
	limit    int
}

type RateLimiter interface {
	// Allow records one request for key and reports whether it fits every window.
	Allow(ctx context.Context, key string, limits Limits) (bool, error)
	Reset(ctx context.Context, key string) error
}
