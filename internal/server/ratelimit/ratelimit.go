// Package ratelimit provides per-client token bucket rate limiting.
package ratelimit

import (
	"sync"
	"time"
)

type bucket struct {
	mu         sync.Mutex
	capacity   float64
	refillRate float64 // tokens per second
	tokens     float64
	lastRefill time.Time
	lastUsed   time.Time
}

func newBucket(capacity int, refillRate float64, now time.Time) *bucket {
	return &bucket{
		capacity:   float64(capacity),
		refillRate: refillRate,
		tokens:     float64(capacity),
		lastRefill: now,
		lastUsed:   now,
	}
}

// take refills the bucket, consumes a token if one is available and reports
// the state afterwards.
func (b *bucket) take(now time.Time) (allowed bool, remaining int, reset time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.tokens = min(b.capacity, b.tokens+now.Sub(b.lastRefill).Seconds()*b.refillRate)
	b.lastRefill = now
	b.lastUsed = now

	if b.tokens >= 1 {
		b.tokens--
		allowed = true
	}

	reset = now
	if missing := b.capacity - b.tokens; missing > 0 {
		reset = now.Add(time.Duration(missing / b.refillRate * float64(time.Second)))
	}
	return allowed, int(b.tokens), reset
}

func (b *bucket) idleSince(cutoff time.Time) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastUsed.Before(cutoff)
}

// Info describes the outcome of one Allow call.
type Info struct {
	Allowed    bool
	Limit      int // 0 when the request was not subject to a limit
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// Limiter tracks one bucket per client and route rule.
type Limiter struct {
	config  *Config
	now     func() time.Time
	mu      sync.Mutex
	buckets map[string]*bucket
	stop    chan struct{}
	once    sync.Once
}

// NewLimiter creates a limiter. A nil config disables limiting. When enabled
// with a cleanup interval a background goroutine drops idle buckets until
// Stop is called.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = &Config{}
	}

	l := &Limiter{
		config:  config,
		now:     time.Now,
		buckets: make(map[string]*bucket),
		stop:    make(chan struct{}),
	}

	if config.Enabled && config.CleanupInterval > 0 {
		go l.cleanupLoop(config.CleanupInterval)
	}
	return l
}

// Allow consumes a token for clientID on the route matching path and method.
func (l *Limiter) Allow(clientID, path, method string) Info {
	if !l.config.Enabled || l.config.Whitelist[clientID] {
		return Info{Allowed: true}
	}
	if l.config.Blacklist[clientID] {
		return Info{Allowed: false}
	}

	rule, ok := MatchEndpoint(path, method, l.config.EndpointConfigs)
	if !ok {
		rule = EndpointConfig{
			Path:   "*",
			Method: method,
			Limit:  l.config.DefaultLimit,
			Window: l.config.DefaultWindow,
		}
	}
	if rule.Limit <= 0 || rule.Window <= 0 {
		return Info{Allowed: true}
	}

	now := l.now()
	b := l.bucketFor(clientID+"|"+rule.Method+"|"+rule.Path, rule, now)
	allowed, remaining, reset := b.take(now)

	info := Info{
		Allowed:   allowed,
		Limit:     rule.Limit,
		Remaining: remaining,
		ResetTime: reset,
	}
	if !allowed {
		// Time until one token is back.
		info.RetryAfter = time.Duration(float64(time.Second) / b.refillRate)
	}
	return info
}

func (l *Limiter) bucketFor(key string, rule EndpointConfig, now time.Time) *bucket {
	l.mu.Lock()
	defer l.mu.Unlock()

	if b, ok := l.buckets[key]; ok {
		return b
	}

	capacity := rule.Burst
	if capacity <= 0 {
		capacity = rule.Limit
	}
	b := newBucket(capacity, float64(rule.Limit)/rule.Window.Seconds(), now)
	l.buckets[key] = b
	return b
}

func (l *Limiter) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.cleanup()
		case <-l.stop:
			return
		}
	}
}

// cleanup removes buckets that have been idle longer than IdleTTL.
func (l *Limiter) cleanup() {
	ttl := l.config.IdleTTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	cutoff := l.now().Add(-ttl)

	l.mu.Lock()
	defer l.mu.Unlock()
	for key, b := range l.buckets {
		if b.idleSince(cutoff) {
			delete(l.buckets, key)
		}
	}
}

// Size returns the number of live buckets.
func (l *Limiter) Size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

// Stop ends the cleanup goroutine. It is safe to call more than once.
func (l *Limiter) Stop() {
	l.once.Do(func() { close(l.stop) })
}
