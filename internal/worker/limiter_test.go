package worker

import (
	"context"
	"testing"
	"time"
)

func TestLimiter_New(t *testing.T) {
	limiter := NewLimiter(10, 5)
	if limiter.defaultBurst != 5 {
		t.Errorf("expected burst 5, got %d", limiter.defaultBurst)
	}

	l2 := NewLimiter(10, -1)
	if l2.defaultBurst != 1 {
		t.Errorf("expected default burst 1 for negative input, got %d", l2.defaultBurst)
	}
}

func TestLimiter_Wait(t *testing.T) {
	limiter := NewLimiter(100, 1)
	ctx := context.Background()

	if err := limiter.Wait(ctx, "http://oracle.example.com/sector_13_waste.yaml"); err != nil {
		t.Errorf("wait failed: %v", err)
	}

	// A different host has its own budget
	if err := limiter.Wait(ctx, "http://mirror.example.org/sector_13_waste.yaml"); err != nil {
		t.Errorf("wait failed: %v", err)
	}
}

func TestLimiter_AllowExhaustsBurst(t *testing.T) {
	limiter := NewLimiter(0.001, 1)
	url := "http://oracle.example.com/doc.yaml"

	if !limiter.Allow(url) {
		t.Fatal("first request should be allowed")
	}
	if limiter.Allow(url) {
		t.Error("second request should exceed the burst")
	}
}

func TestLimiter_WaitBlocksByRate(t *testing.T) {
	limiter := NewLimiter(20, 1) // 50ms between requests after the burst
	ctx := context.Background()
	url := "http://oracle.example.com/doc.yaml"

	if err := limiter.Wait(ctx, url); err != nil {
		t.Fatalf("first wait failed: %v", err)
	}

	start := time.Now()
	if err := limiter.Wait(ctx, url); err != nil {
		t.Fatalf("second wait failed: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 25*time.Millisecond {
		t.Errorf("expected rate limiting delay, second wait returned after %v", elapsed)
	}
}

func TestLimiter_CancelledContext(t *testing.T) {
	limiter := NewLimiter(0.001, 1)
	url := "http://oracle.example.com/doc.yaml"

	// Exhaust the burst
	if !limiter.Allow(url) {
		t.Fatal("first request should be allowed")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := limiter.Wait(ctx, url); err == nil {
		t.Error("expected context error while rate limited")
	}
}

func TestLimiter_SetHostRate(t *testing.T) {
	limiter := NewLimiter(0.001, 1)
	limiter.SetHostRate("oracle.example.com", 1000, 10)

	url := "http://oracle.example.com/doc.yaml"
	for i := 0; i < 5; i++ {
		if !limiter.Allow(url) {
			t.Fatalf("request %d rejected despite host override", i)
		}
	}
}

func TestLimiter_BadURL(t *testing.T) {
	limiter := NewLimiter(10, 1)
	if limiter.Allow("://not-a-url") {
		t.Error("expected unparsable URL to be rejected")
	}
}
