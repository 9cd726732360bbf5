package tripkit

import (
	"testing"
	"time"
)

func TestFetchLimiterAllowsUnderLimit(t *testing.T) {
	l := NewFetchLimiter(3, time.Minute)
	for i := 0; i < 3; i++ {
		if !l.Allow("192.0.2.1") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if l.Allow("192.0.2.1") {
		t.Error("request over the limit should be denied")
	}
}

func TestFetchLimiterPerIP(t *testing.T) {
	l := NewFetchLimiter(1, time.Minute)
	if !l.Allow("192.0.2.1") {
		t.Fatal("first IP should be allowed")
	}
	if !l.Allow("192.0.2.2") {
		t.Error("a different IP has its own budget")
	}
	if l.Allow("192.0.2.1") {
		t.Error("first IP is exhausted")
	}
}

func TestFetchLimiterWindowExpiry(t *testing.T) {
	l := NewFetchLimiter(1, 30*time.Millisecond)
	if !l.Allow("192.0.2.1") {
		t.Fatal("first request should be allowed")
	}
	if l.Allow("192.0.2.1") {
		t.Fatal("second request inside the window should be denied")
	}
	time.Sleep(50 * time.Millisecond)
	if !l.Allow("192.0.2.1") {
		t.Error("request after the window should be allowed again")
	}
}
