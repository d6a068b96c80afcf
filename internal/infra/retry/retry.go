package retry

// Exponential backoff with full jitter for establishing database connections.
// Only transient connection failures are retried (bad pooled connection, network
// timeouts, refused dials); authentication and DSN errors fail immediately.

import (
	"context"
	"database/sql/driver"
	"errors"
	"math/rand"
	"net"
	"sync"
	"syscall"
	"time"
)

type Options struct {
	MaxRetries int
	BaseDelay  time.Duration
	MaxDelay   time.Duration
}

func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) {
		return true
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return true
	}
	return false
}

var (
	rngOnce sync.Once
	rngMu   sync.Mutex
	rng     *rand.Rand
)

func int63n(n int64) int64 {
	rngOnce.Do(func() { rng = rand.New(rand.NewSource(time.Now().UnixNano())) })
	rngMu.Lock()
	defer rngMu.Unlock()
	return rng.Int63n(n)
}

func clamp(d, max time.Duration) time.Duration {
	if max > 0 && d > max {
		return max
	}
	return d
}

// FullJitterSleep returns a random delay in [0, min(baseDelay*2^attempt, maxDelay)].
func FullJitterSleep(attempt int, baseDelay, maxDelay time.Duration) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	if baseDelay <= 0 {
		return 0
	}
	maxForAttempt := clamp(baseDelay<<attempt, maxDelay)
	if maxForAttempt <= 0 {
		return 0
	}
	return time.Duration(int63n(int64(maxForAttempt) + 1))
}

// Do calls fn until it succeeds, returns a non-retryable error or runs out of attempts.
// MaxRetries 0 means a single attempt.
func Do(ctx context.Context, opts Options, fn func() error) error {
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}
	if opts.BaseDelay <= 0 {
		opts.BaseDelay = 300 * time.Millisecond
	}

	totalAttempts := 1 + opts.MaxRetries
	var lastErr error

	for attempt := 0; attempt < totalAttempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err

		if !IsRetryable(err) || attempt == totalAttempts-1 {
			return lastErr
		}

		t := time.NewTimer(FullJitterSleep(attempt, opts.BaseDelay, opts.MaxDelay))
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
	}

	return lastErr
}
