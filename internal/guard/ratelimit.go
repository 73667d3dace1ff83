package guard

import (
	"context"
	"time"
)

// Limiter counts requests per hashed-IP-prefix in an expiring window.
// Because the store refreshes the TTL on every hit, the window slides with
// traffic: sustained requests keep the counter alive until the visitor
// backs off for a full window.
type Limiter struct {
	store     Store
	threshold int64
	window    time.Duration
}

func NewLimiter(store Store, threshold int, window time.Duration) *Limiter {
	return &Limiter{
		store:     store,
		threshold: int64(threshold),
		window:    window,
	}
}

// Hit records one request for the key and reports whether the visitor is
// over the limit. A store failure fails open: an infrastructure outage must
// not become a full-site outage. The error is returned for logging only.
func (l *Limiter) Hit(ctx context.Context, key string) (bool, error) {
	count, err := l.store.IncrWindow(ctx, key, l.window)
	if err != nil {
		return false, err
	}
	return count > l.threshold, nil
}

// Window returns the configured window length, used for Retry-After.
func (l *Limiter) Window() time.Duration {
	return l.window
}
