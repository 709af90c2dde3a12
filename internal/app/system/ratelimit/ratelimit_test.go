package ratelimit

import (
	"net/http/httptest"
	"testing"
	"time"
)

func newTestLimiter(t *testing.T, limit int, d time.Duration) (*Limiter, *time.Time) {
	t.Helper()
	l := New(limit, d)
	t.Cleanup(l.Close)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }
	return l, &now
}

func TestLimiter_AllowUpToLimit(t *testing.T) {
	l, _ := newTestLimiter(t, 3, time.Minute)

	for i := 0; i < 3; i++ {
		if !l.Allow("a") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if l.Allow("a") {
		t.Error("fourth request should be limited")
	}
	if !l.Allow("b") {
		t.Error("other keys have their own window")
	}
}

func TestLimiter_WindowExpires(t *testing.T) {
	l, now := newTestLimiter(t, 1, time.Minute)

	l.Allow("a")
	if l.Allow("a") {
		t.Fatal("second request should be limited")
	}
	if got := l.RetryAfter("a"); got != time.Minute {
		t.Errorf("RetryAfter = %v, want 1m", got)
	}

	*now = now.Add(time.Minute + time.Second)
	if !l.Allow("a") {
		t.Error("request after the window should be allowed")
	}
}

func TestLimiter_Sweep(t *testing.T) {
	l, now := newTestLimiter(t, 1, time.Minute)

	l.Allow("a")
	*now = now.Add(2 * time.Minute)
	l.sweep()
	l.mu.Lock()
	n := len(l.windows)
	l.mu.Unlock()
	if n != 0 {
		t.Errorf("expected expired windows swept, %d left", n)
	}
}

func TestLimiter_CloseTwice(t *testing.T) {
	l := New(1, time.Minute)
	l.Close()
	l.Close()
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		xff        string
		xri        string
		remoteAddr string
		want       string
	}{
		{"forwarded for", "203.0.113.7, 10.0.0.1", "", "10.0.0.2:1234", "203.0.113.7"},
		{"real ip", "", "198.51.100.4", "10.0.0.2:1234", "198.51.100.4"},
		{"remote addr", "", "", "192.0.2.1:5555", "192.0.2.1"},
		{"remote addr no port", "", "", "192.0.2.1", "192.0.2.1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.xri != "" {
				req.Header.Set("X-Real-IP", tt.xri)
			}
			if got := ClientIP(req); got != tt.want {
				t.Errorf("ClientIP = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFeedbackLimiter_Check(t *testing.T) {
	fl := NewFeedbackLimiterWithConfig(2, time.Minute)
	t.Cleanup(fl.Close)

	req := httptest.NewRequest("POST", "/game/g1/feedback", nil)
	req.RemoteAddr = "192.0.2.9:4000"

	for i := 0; i < 2; i++ {
		if ok, _ := fl.Check(req); !ok {
			t.Fatalf("report %d should be allowed", i+1)
		}
	}
	ok, retry := fl.Check(req)
	if ok {
		t.Fatal("third report should be limited")
	}
	if retry <= 0 || retry > time.Minute {
		t.Errorf("retryAfter = %v, want within (0, 1m]", retry)
	}
}
