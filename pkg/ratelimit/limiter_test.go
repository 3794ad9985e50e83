package ratelimit_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/voicegate/pkg/ratelimit"
)

func newLimiter(t *testing.T, cfg ratelimit.Config, opts ...ratelimit.Option) *ratelimit.Limiter {
	t.Helper()
	opts = append(opts, ratelimit.WithSweepInterval(0))
	l, err := ratelimit.New(cfg, opts...)
	require.NoError(t, err)
	t.Cleanup(l.Close)
	return l
}

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  ratelimit.Config
	}{
		{"zero capacity", ratelimit.Config{Capacity: 0, RefillRate: 1, RefillInterval: time.Second}},
		{"zero refill rate", ratelimit.Config{Capacity: 1, RefillRate: 0, RefillInterval: time.Second}},
		{"zero interval", ratelimit.Config{Capacity: 1, RefillRate: 1, RefillInterval: 0}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ratelimit.New(tt.cfg)
			assert.ErrorIs(t, err, ratelimit.ErrInvalidConfig)
		})
	}
}

func TestAllow(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("burst then deny", func(t *testing.T) {
		t.Parallel()
		l := newLimiter(t, ratelimit.Config{Capacity: 3, RefillRate: 3, RefillInterval: time.Minute})

		for i := 0; i < 3; i++ {
			res, err := l.Allow(ctx, "buddy")
			require.NoError(t, err)
			assert.True(t, res.Allowed())
		}

		res, err := l.Allow(ctx, "buddy")
		require.NoError(t, err)
		assert.False(t, res.Allowed())
	})

	t.Run("keys are independent", func(t *testing.T) {
		t.Parallel()
		l := newLimiter(t, ratelimit.Config{Capacity: 1, RefillRate: 1, RefillInterval: time.Minute})

		res, err := l.Allow(ctx, "alice")
		require.NoError(t, err)
		assert.True(t, res.Allowed())

		res, err = l.Allow(ctx, "bob")
		require.NoError(t, err)
		assert.True(t, res.Allowed())
	})

	t.Run("refills after interval", func(t *testing.T) {
		t.Parallel()
		now := time.Now()
		l := newLimiter(t,
			ratelimit.Config{Capacity: 2, RefillRate: 2, RefillInterval: time.Minute},
			ratelimit.WithClock(func() time.Time { return now }),
		)

		for i := 0; i < 3; i++ {
			_, err := l.Allow(ctx, "buddy")
			require.NoError(t, err)
		}

		now = now.Add(61 * time.Second)
		res, err := l.Allow(ctx, "buddy")
		require.NoError(t, err)
		assert.True(t, res.Allowed())
	})

	t.Run("refill never exceeds capacity", func(t *testing.T) {
		t.Parallel()
		now := time.Now()
		l := newLimiter(t,
			ratelimit.Config{Capacity: 2, RefillRate: 2, RefillInterval: time.Minute},
			ratelimit.WithClock(func() time.Time { return now }),
		)

		_, err := l.Allow(ctx, "buddy")
		require.NoError(t, err)

		now = now.Add(24 * time.Hour)
		res, err := l.Allow(ctx, "buddy")
		require.NoError(t, err)
		assert.Equal(t, 1, res.Remaining)
	})

	t.Run("invalid token count", func(t *testing.T) {
		t.Parallel()
		l := newLimiter(t, ratelimit.Config{Capacity: 1, RefillRate: 1, RefillInterval: time.Minute})
		_, err := l.AllowN(ctx, "buddy", 0)
		assert.ErrorIs(t, err, ratelimit.ErrInvalidTokenCount)
	})

	t.Run("reset restores the bucket", func(t *testing.T) {
		t.Parallel()
		l := newLimiter(t, ratelimit.Config{Capacity: 1, RefillRate: 1, RefillInterval: time.Minute})

		_, err := l.Allow(ctx, "buddy")
		require.NoError(t, err)
		require.NoError(t, l.Reset(ctx, "buddy"))

		res, err := l.Allow(ctx, "buddy")
		require.NoError(t, err)
		assert.True(t, res.Allowed())
	})
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	l := newLimiter(t, ratelimit.Config{Capacity: 2, RefillRate: 2, RefillInterval: time.Minute})
	handler := ratelimit.Middleware(l, ratelimit.ByHeader("X-User-ID"))(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		}),
	)

	do := func(user string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/chat", nil)
		req.Header.Set("X-User-ID", user)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	first := do("buddy")
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "2", first.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Remaining"))

	do("buddy")
	third := do("buddy")
	assert.Equal(t, http.StatusTooManyRequests, third.Code)
	assert.Equal(t, "0", third.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, third.Header().Get("Retry-After"))

	// A different caller is unaffected.
	other := do("guest")
	assert.Equal(t, http.StatusOK, other.Code)
}

func TestByClientIP(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.7:52114"
	assert.Equal(t, "10.0.0.7", ratelimit.ByClientIP(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.9")
	assert.Equal(t, "203.0.113.9", ratelimit.ByClientIP(req))
}
