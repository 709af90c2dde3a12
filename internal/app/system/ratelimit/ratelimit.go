// internal/app/system/ratelimit/ratelimit.go
package ratelimit

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Limiter counts requests per key in fixed windows.
// It is safe for concurrent use.
type Limiter struct {
	mu       sync.Mutex
	windows  map[string]*window
	limit    int           // max requests per window
	duration time.Duration // window duration
	now      func() time.Time

	stop     chan struct{}
	stopOnce sync.Once
}

type window struct {
	count     int
	expiresAt time.Time
}

// New creates a rate limiter allowing limit requests per key every duration.
// Expired entries are swept every 2x duration until Close is called.
func New(limit int, duration time.Duration) *Limiter {
	l := &Limiter{
		windows:  make(map[string]*window),
		limit:    limit,
		duration: duration,
		now:      time.Now,
		stop:     make(chan struct{}),
	}
	go l.cleanupLoop(duration * 2)
	return l
}

// Allow records a request for key and reports whether it is within the limit.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, exists := l.windows[key]
	if !exists || now.After(w.expiresAt) {
		l.windows[key] = &window{count: 1, expiresAt: now.Add(l.duration)}
		return true
	}
	if w.count >= l.limit {
		return false
	}
	w.count++
	return true
}

// RetryAfter returns how long until key's window resets, or 0 when key
// is not currently limited.
func (l *Limiter) RetryAfter(key string) time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()

	w, exists := l.windows[key]
	if !exists || w.count < l.limit {
		return 0
	}
	if d := w.expiresAt.Sub(l.now()); d > 0 {
		return d
	}
	return 0
}

// Close stops the cleanup goroutine. It is safe to call more than once.
func (l *Limiter) Close() {
	l.stopOnce.Do(func() { close(l.stop) })
}

func (l *Limiter) cleanupLoop(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-l.stop:
			return
		case <-ticker.C:
			l.sweep()
		}
	}
}

func (l *Limiter) sweep() {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	for key, w := range l.windows {
		if now.After(w.expiresAt) {
			delete(l.windows, key)
		}
	}
}

// ClientIP extracts the client IP from an HTTP request.
// It checks X-Forwarded-For and X-Real-IP headers first (for proxied requests),
// then falls back to RemoteAddr.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// Feedback defaults: 5 reports per client IP every 10 minutes.
const (
	FeedbackLimit  = 5
	FeedbackWindow = 10 * time.Minute
)

// FeedbackLimiter throttles link-problem reports per client IP.
type FeedbackLimiter struct {
	ip *Limiter
}

// NewFeedbackLimiter creates a limiter with the feedback defaults.
func NewFeedbackLimiter() *FeedbackLimiter {
	return NewFeedbackLimiterWithConfig(FeedbackLimit, FeedbackWindow)
}

// NewFeedbackLimiterWithConfig creates a feedback limiter with custom limits.
func NewFeedbackLimiterWithConfig(limit int, window time.Duration) *FeedbackLimiter {
	return &FeedbackLimiter{ip: New(limit, window)}
}

// Check records a report from r's client and reports whether it may proceed.
// When it may not, retryAfter says how long the client should wait.
func (fl *FeedbackLimiter) Check(r *http.Request) (allowed bool, retryAfter time.Duration) {
	ip := ClientIP(r)
	if fl.ip.Allow(ip) {
		return true, 0
	}
	return false, fl.ip.RetryAfter(ip)
}

// Close stops the underlying limiter's cleanup goroutine.
func (fl *FeedbackLimiter) Close() {
	fl.ip.Close()
}
