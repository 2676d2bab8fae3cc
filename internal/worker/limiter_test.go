package worker

import (
	"context"
	"testing"
	"time"
)

func TestLimiter_SharedHostBudget(t *testing.T) {
	limiter := NewLimiter(100, 1)

	ctx := context.Background()
	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := limiter.Wait(ctx, "https://ld.bs.ch/query/"); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
	}
	// 100 rps with burst 1: the second and third call each wait ~10ms.
	if elapsed := time.Since(start); elapsed < 15*time.Millisecond {
		t.Errorf("Expected rate limiting to slow requests, elapsed %v", elapsed)
	}
}

func TestLimiter_SeparateHosts(t *testing.T) {
	limiter := NewLimiter(1, 1)

	ctx := context.Background()
	start := time.Now()
	if err := limiter.Wait(ctx, "https://ld.bs.ch/query/"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if err := limiter.Wait(ctx, "https://example.org/other"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	// Different hosts have independent budgets; no waiting expected.
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Errorf("Expected independent host budgets, elapsed %v", elapsed)
	}
}

func TestLimiter_CancelledContext(t *testing.T) {
	limiter := NewLimiter(0.001, 1)

	ctx := context.Background()
	_ = limiter.Wait(ctx, "https://ld.bs.ch/query/") // Consume the burst

	cancelled, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if err := limiter.Wait(cancelled, "https://ld.bs.ch/query/"); err == nil {
		t.Error("Expected error when the context expires before clearance")
	}
}
