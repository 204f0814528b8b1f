package middleware

import (
	"testing"
	"time"
)

func TestRateLimiter_AllowsUpToMax(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{
		Max:    5,
		Window: time.Minute,
	})

	for i := 0; i < 5; i++ {
		if !rl.Allow("caller") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
}

func TestRateLimiter_BlocksAfterMax(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{
		Max:    3,
		Window: time.Minute,
	})

	for i := 0; i < 3; i++ {
		rl.Allow("caller")
	}

	if rl.Allow("caller") {
		t.Fatal("4th request should be blocked")
	}
}

func TestRateLimiter_DifferentKeysIndependent(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{
		Max:    2,
		Window: time.Minute,
	})

	rl.Allow("caller-a")
	rl.Allow("caller-a")

	// caller-a is exhausted
	if rl.Allow("caller-a") {
		t.Fatal("caller-a should be blocked")
	}

	// caller-b should still be allowed
	if !rl.Allow("caller-b") {
		t.Fatal("caller-b should be allowed (independent key)")
	}
}

func TestRateLimiter_WindowResets(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{
		Max:    2,
		Window: 50 * time.Millisecond,
	})

	rl.Allow("caller")
	rl.Allow("caller")

	if rl.Allow("caller") {
		t.Fatal("should be blocked within window")
	}

	// Wait for window to expire
	time.Sleep(60 * time.Millisecond)

	if !rl.Allow("caller") {
		t.Fatal("should be allowed after window reset")
	}
}

func TestReportLimiterConfig(t *testing.T) {
	rl := NewReportLimiter()

	for i := 0; i < 10; i++ {
		if !rl.Allow("reporter") {
			t.Fatalf("report %d should be allowed", i+1)
		}
	}
	if rl.Allow("reporter") {
		t.Fatal("11th report in a minute should be blocked")
	}
}
