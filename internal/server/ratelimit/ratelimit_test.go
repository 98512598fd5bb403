package ratelimit

import (
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newTestLimiter(cfg *Config) (*Limiter, *fakeClock) {
	cfg.CleanupInterval = 0
	l := NewLimiter(cfg)
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	l.now = clock.Now
	return l, clock
}

func TestBucket_TakeAndRefill(t *testing.T) {
	start := time.Now()
	b := newBucket(3, 1.0, start)

	for i := 0; i < 3; i++ {
		allowed, remaining, _ := b.take(start)
		require.True(t, allowed, "request %d", i+1)
		assert.Equal(t, 2-i, remaining)
	}

	allowed, remaining, reset := b.take(start)
	assert.False(t, allowed)
	assert.Equal(t, 0, remaining)
	assert.Equal(t, start.Add(3*time.Second), reset)

	allowed, _, _ = b.take(start.Add(time.Second))
	assert.True(t, allowed)
}

func TestLimiter_DefaultLimit(t *testing.T) {
	l, _ := newTestLimiter(&Config{Enabled: true, DefaultLimit: 10, DefaultWindow: time.Minute})
	defer l.Stop()

	for i := 0; i < 10; i++ {
		info := l.Allow("127.0.0.1", "/templates", http.MethodGet)
		require.True(t, info.Allowed, "request %d", i+1)
		assert.Equal(t, 10, info.Limit)
		assert.Equal(t, 9-i, info.Remaining)
	}

	info := l.Allow("127.0.0.1", "/templates", http.MethodGet)
	assert.False(t, info.Allowed)
	assert.Equal(t, 0, info.Remaining)
	assert.InDelta(t, 6.0, info.RetryAfter.Seconds(), 0.01)
}

func TestLimiter_Refills(t *testing.T) {
	l, clock := newTestLimiter(&Config{Enabled: true, DefaultLimit: 60, DefaultWindow: time.Minute})
	defer l.Stop()

	for i := 0; i < 60; i++ {
		l.Allow("c", "/x", http.MethodGet)
	}
	require.False(t, l.Allow("c", "/x", http.MethodGet).Allowed)

	clock.Advance(time.Second)
	assert.True(t, l.Allow("c", "/x", http.MethodGet).Allowed)
	assert.False(t, l.Allow("c", "/x", http.MethodGet).Allowed)
}

func TestLimiter_ClientsAreIndependent(t *testing.T) {
	l, _ := newTestLimiter(&Config{Enabled: true, DefaultLimit: 1, DefaultWindow: time.Minute})
	defer l.Stop()

	assert.True(t, l.Allow("a", "/x", http.MethodGet).Allowed)
	assert.False(t, l.Allow("a", "/x", http.MethodGet).Allowed)
	assert.True(t, l.Allow("b", "/x", http.MethodGet).Allowed)
}

func TestLimiter_WhitelistAndBlacklist(t *testing.T) {
	l, _ := newTestLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Minute,
		Whitelist:     map[string]bool{"10.0.0.1": true},
		Blacklist:     map[string]bool{"10.0.0.2": true},
	})
	defer l.Stop()

	for i := 0; i < 20; i++ {
		info := l.Allow("10.0.0.1", "/x", http.MethodGet)
		require.True(t, info.Allowed)
		assert.Equal(t, 0, info.Limit)
	}
	assert.False(t, l.Allow("10.0.0.2", "/x", http.MethodGet).Allowed)
}

func TestLimiter_Disabled(t *testing.T) {
	l := NewLimiter(nil)
	defer l.Stop()

	for i := 0; i < 100; i++ {
		info := l.Allow("127.0.0.1", "/resumes/generate", http.MethodPost)
		require.True(t, info.Allowed)
		assert.Equal(t, 0, info.Limit)
	}
	assert.Equal(t, 0, l.Size())
}

func TestLimiter_StrictTierForModelCalls(t *testing.T) {
	l, _ := newTestLimiter(NewConfig(1000, 3, nil, nil))
	defer l.Stop()

	for i := 0; i < 3; i++ {
		info := l.Allow("c", "/resumes/generate", http.MethodPost)
		require.True(t, info.Allowed, "request %d", i+1)
		assert.Equal(t, 3, info.Limit)
	}
	assert.False(t, l.Allow("c", "/resumes/generate", http.MethodPost).Allowed)

	// Feedback has its own bucket; reads fall back to the default.
	assert.True(t, l.Allow("c", "/resumes/feedback", http.MethodPost).Allowed)
	assert.Equal(t, 1000, l.Allow("c", "/history", http.MethodGet).Limit)
}

func TestLimiter_PrefixRulesShareBucket(t *testing.T) {
	l, _ := newTestLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1000,
		DefaultWindow: time.Minute,
		EndpointConfigs: []EndpointConfig{
			{Path: "/history/", Method: http.MethodDelete, Limit: 2, Window: time.Minute},
		},
	})
	defer l.Stop()

	assert.True(t, l.Allow("c", "/history/a", http.MethodDelete).Allowed)
	assert.True(t, l.Allow("c", "/history/b", http.MethodDelete).Allowed)
	assert.False(t, l.Allow("c", "/history/c", http.MethodDelete).Allowed)
	assert.Equal(t, 1, l.Size())
}

func TestLimiter_HealthAndPreflightUnlimited(t *testing.T) {
	l, _ := newTestLimiter(&Config{Enabled: true, DefaultLimit: 1, DefaultWindow: time.Minute})
	defer l.Stop()

	for i := 0; i < 10; i++ {
		assert.True(t, l.Allow("c", "/health", http.MethodGet).Allowed)
		assert.True(t, l.Allow("c", "/resumes/generate", http.MethodOptions).Allowed)
	}
	assert.Equal(t, 0, l.Size())
}

func TestLimiter_CleanupDropsIdleBuckets(t *testing.T) {
	l, clock := newTestLimiter(&Config{Enabled: true, DefaultLimit: 5, DefaultWindow: time.Minute, IdleTTL: time.Minute})
	defer l.Stop()

	l.Allow("old", "/x", http.MethodGet)
	clock.Advance(2 * time.Minute)
	l.Allow("new", "/x", http.MethodGet)
	require.Equal(t, 2, l.Size())

	l.cleanup()
	assert.Equal(t, 1, l.Size())
}

func TestLimiter_Concurrent(t *testing.T) {
	l, _ := newTestLimiter(&Config{Enabled: true, DefaultLimit: 50, DefaultWindow: time.Hour})
	defer l.Stop()

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if l.Allow("c", "/x", http.MethodGet).Allowed {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, allowed)
}

func TestLimiter_StopTwice(t *testing.T) {
	l := NewLimiter(NewConfig(10, 1, nil, nil))
	l.Stop()
	assert.NotPanics(t, l.Stop)
}

func TestMatchEndpoint(t *testing.T) {
	configs := DefaultEndpointConfigs(20)

	tests := []struct {
		path, method string
		wantOK       bool
		wantPath     string
		wantLimit    int
	}{
		{"/health", http.MethodGet, true, "", 0},
		{"/anything", http.MethodOptions, true, "", 0},
		{"/resumes/generate", http.MethodPost, true, "/resumes/generate", 20},
		{"/resumes/export/pdf", http.MethodPost, true, "/resumes/export/", 60},
		{"/history", http.MethodDelete, true, "/history", 30},
		{"/history/abc", http.MethodDelete, true, "/history/", 60},
		{"/history/abc", http.MethodGet, false, "", 0},
		{"/resumes/generate", http.MethodGet, false, "", 0},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s %s", tt.method, tt.path), func(t *testing.T) {
			got, ok := MatchEndpoint(tt.path, tt.method, configs)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantPath, got.Path)
			assert.Equal(t, tt.wantLimit, got.Limit)
		})
	}
}

func TestNewConfig(t *testing.T) {
	cfg := NewConfig(100, 7, []string{"1.1.1.1", ""}, []string{"2.2.2.2"})
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 100, cfg.DefaultLimit)
	assert.Equal(t, map[string]bool{"1.1.1.1": true}, cfg.Whitelist)
	assert.True(t, cfg.Blacklist["2.2.2.2"])
	assert.NotEmpty(t, cfg.EndpointConfigs)
}
