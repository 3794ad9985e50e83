package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

var (
	// ErrInvalidConfig indicates a non-positive capacity, rate or interval.
	ErrInvalidConfig = errors.New("ratelimit: invalid configuration")

	// ErrInvalidTokenCount indicates a non-positive token request.
	ErrInvalidTokenCount = errors.New("ratelimit: invalid token count")
)

// Config defines the token bucket shape. The defaults mirror a
// conversational workload: a short burst allowance refilled once a
// minute.
type Config struct {
	Capacity       int           `env:"RATE_LIMIT_CAPACITY" envDefault:"30"`
	RefillRate     int           `env:"RATE_LIMIT_REFILL" envDefault:"30"`
	RefillInterval time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"1m"`
}

func (c Config) validate() error {
	if c.Capacity <= 0 {
		return fmt.Errorf("%w: capacity %d", ErrInvalidConfig, c.Capacity)
	}
	if c.RefillRate <= 0 {
		return fmt.Errorf("%w: refill rate %d", ErrInvalidConfig, c.RefillRate)
	}
	if c.RefillInterval <= 0 {
		return fmt.Errorf("%w: refill interval %v", ErrInvalidConfig, c.RefillInterval)
	}
	return nil
}

// Result reports the bucket state after a check.
type Result struct {
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// Allowed reports whether the checked request may proceed.
func (r Result) Allowed() bool { return r.Remaining >= 0 }

// RetryAfter reports how long the caller should wait, zero if allowed.
func (r Result) RetryAfter() time.Duration {
	if r.Allowed() {
		return 0
	}
	return time.Until(r.ResetAt)
}

// bucket is the per-key state.
type bucket struct {
	tokens     int
	lastRefill time.Time
	lastAccess time.Time
}

// Limiter is a token bucket limiter over an in-memory key space.
type Limiter struct {
	config Config
	now    func() time.Time

	mu      sync.Mutex
	buckets map[string]*bucket

	sweepEvery time.Duration
	stopSweep  chan struct{}
	stopOnce   sync.Once
}

// Option configures a Limiter.
type Option func(*Limiter)

// WithClock injects a time source for tests.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) {
		if now != nil {
			l.now = now
		}
	}
}

// WithSweepInterval sets how often stale buckets are evicted. Zero
// disables the sweeper.
func WithSweepInterval(d time.Duration) Option {
	return func(l *Limiter) { l.sweepEvery = d }
}

// New creates a Limiter and starts its sweeper.
func New(config Config, opts ...Option) (*Limiter, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}
	l := &Limiter{
		config:     config,
		now:        time.Now,
		buckets:    make(map[string]*bucket),
		sweepEvery: 5 * time.Minute,
		stopSweep:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.sweepEvery > 0 {
		go l.sweep()
	}
	return l, nil
}

// Allow consumes one token for key.
func (l *Limiter) Allow(ctx context.Context, key string) (Result, error) {
	return l.AllowN(ctx, key, 1)
}

// AllowN consumes n tokens for key. A negative Remaining in the result
// means the request must be denied; the tokens are still recorded so
// repeated over-limit calls do not reset the window.
func (l *Limiter) AllowN(_ context.Context, key string, n int) (Result, error) {
	if n <= 0 {
		return Result{}, fmt.Errorf("%w: %d", ErrInvalidTokenCount, n)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{tokens: l.config.Capacity, lastRefill: now}
		l.buckets[key] = b
	}

	// Refill whole intervals only, capped so a long-idle bucket cannot
	// overflow the token counter.
	elapsed := now.Sub(b.lastRefill)
	maxIntervals := int64(l.config.Capacity/l.config.RefillRate + 1)
	intervals := min(int64(elapsed/l.config.RefillInterval), maxIntervals)
	if intervals > 0 {
		b.tokens = min(b.tokens+int(intervals)*l.config.RefillRate, l.config.Capacity)
		b.lastRefill = now
	}

	b.tokens -= n
	b.lastAccess = now

	return Result{
		Limit:     l.config.Capacity,
		Remaining: b.tokens,
		ResetAt:   b.lastRefill.Add(l.config.RefillInterval),
	}, nil
}

// Reset clears the state for key.
func (l *Limiter) Reset(_ context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.buckets, key)
	return nil
}

func (l *Limiter) sweep() {
	ticker := time.NewTicker(l.sweepEvery)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.evictStale()
		case <-l.stopSweep:
			return
		}
	}
}

func (l *Limiter) evictStale() {
	const staleAfter = time.Hour
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	for key, b := range l.buckets {
		if now.Sub(b.lastAccess) > staleAfter {
			delete(l.buckets, key)
		}
	}
}

// Close stops the sweeper. Safe to call more than once.
func (l *Limiter) Close() {
	l.stopOnce.Do(func() { close(l.stopSweep) })
}
