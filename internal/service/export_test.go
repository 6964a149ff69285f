package service

import "time"

// SetClock swaps the limiter's time source for tests.
func (tb *TokenBucket) SetClock(now func() time.Time) {
	tb.mu.Lock()
	tb.now = now
	tb.mu.Unlock()
}

func (tb *TokenBucket) EvictIdle(idle time.Duration) { tb.evictIdle(idle) }

func (tb *TokenBucket) Len() int {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	return len(tb.buckets)
}
