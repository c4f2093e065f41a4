package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryRateLimiter is the single-instance fallback used when no Redis
// address is configured.
type MemoryRateLimiter struct {
	mu   sync.Mutex
	hits map[string][]time.Time
	now  func() time.Time
}

func NewMemoryRateLimiter() *MemoryRateLimiter {
	return &MemoryRateLimiter{hits: make(map[string][]time.Time), now: time.Now}
}

func (l *MemoryRateLimiter) Allow(_ context.Context, key string, limits Limits) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	var longest time.Duration
	for _, w := range limits.windows() {
		if w.limit > 0 && w.duration > longest {
			longest = w.duration
		}
	}
	if longest == 0 {
		return true, nil
	}

	// drop instants older than the longest window
	hits := l.hits[key]
	cut := 0
	for cut < len(hits) && now.Sub(hits[cut]) >= longest {
		cut++
	}
	hits = hits[cut:]

	allowed := true
	for _, w := range limits.windows() {
		if w.limit <= 0 {
			continue
		}
		if countSince(hits, now.Add(-w.duration)) >= w.limit {
			allowed = false
		}
	}

	l.hits[key] = append(hits, now)
	return allowed, nil
}

func (l *MemoryRateLimiter) Reset(_ context.Context, key string) error {
	l.mu.Lock()
	delete(l.hits, key)
	l.mu.Unlock()
	return nil
}

func countSince(hits []time.Time, since time.Time) int {
	n := 0
	for i := len(hits) - 1; i >= 0 && hits[i].After(since); i-- {
		n++
	}
	return n
}
