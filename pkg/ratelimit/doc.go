// Package ratelimit throttles chat traffic per caller with a token
// bucket. Each distinct key (normally the resolved user id, falling
// back to the client address) owns a bucket that refills on a fixed
// interval; a request that finds the bucket empty is rejected with 429
// and a Retry-After hint.
//
// State lives in process memory. Stale buckets are swept by a
// background goroutine so a parade of one-off guest callers cannot grow
// the map without bound.
//
//	limiter, _ := ratelimit.New(ratelimit.Config{
//		Capacity:       30,
//		RefillRate:     30,
//		RefillInterval: time.Minute,
//	})
//	r.Use(ratelimit.Middleware(limiter, ratelimit.ByClientIP))
package ratelimit
