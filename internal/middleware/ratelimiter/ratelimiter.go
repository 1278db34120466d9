// Package ratelimiter provides a per-key token bucket limiter. Buckets are
// created on first use and expire after a period of inactivity so the map
// does not grow with every client ever seen.
package ratelimiter

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type KeyedLimiter struct {
	mu       sync.Mutex
	entries  map[string]*entry
	rps      rate.Limit
	burst    int
	lifetime time.Duration
}

func New(rps float64, burst int, lifetime time.Duration) *KeyedLimiter {
	return &KeyedLimiter{
		entries:  make(map[string]*entry),
		rps:      rate.Limit(rps),
		burst:    burst,
		lifetime: lifetime,
	}
}

// Allow reports whether the request identified by key may proceed, and
// opportunistically evicts expired buckets.
func (k *KeyedLimiter) Allow(key string) bool {
	now := time.Now()

	k.mu.Lock()
	defer k.mu.Unlock()

	for id, e := range k.entries {
		if now.Sub(e.lastSeen) > k.lifetime {
			delete(k.entries, id)
		}
	}

	e, ok := k.entries[key]
	if !ok {
		e = &entry{limiter: rate.NewLimiter(k.rps, k.burst)}
		k.entries[key] = e
	}
	e.lastSeen = now

	return e.limiter.Allow()
}

// Common presets

func OnceInSecond() *KeyedLimiter {
	return New(1, 1, time.Hour)
}

func Rps10() *KeyedLimiter {
	return New(10, 10, time.Hour)
}

func Rps100() *KeyedLimiter {
	return New(100, 100, time.Hour)
}
