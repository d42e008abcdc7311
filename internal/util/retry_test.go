// ABOUTME: Tests for retry backoff calculation
// ABOUTME: Verifies exponential growth, jitter bounds, and the cap

package util

import (
	"testing"
	"time"
)

func TestCalculateBackoff_FirstAttemptImmediate(t *testing.T) {
	if d := CalculateBackoff(time.Second, 0); d != 0 {
		t.Errorf("Backoff(0) = %v, want 0", d)
	}
	if d := CalculateBackoff(time.Second, -1); d != 0 {
		t.Errorf("Backoff(-1) = %v, want 0", d)
	}
}

func TestCalculateBackoff_GrowsWithAttempts(t *testing.T) {
	base := 100 * time.Millisecond

	for attempt := 1; attempt <= 5; attempt++ {
		expected := base * time.Duration(1<<uint(attempt))
		lower := expected - expected/4
		upper := expected + expected/4

		// Jitter is random, so sample a few times.
		for i := 0; i < 20; i++ {
			d := CalculateBackoff(base, attempt)
			if d < lower || d > upper {
				t.Errorf("Backoff(%d) = %v, want within [%v, %v]", attempt, d, lower, upper)
			}
		}
	}
}

func TestCalculateBackoff_Capped(t *testing.T) {
	maxBackoff := 30 * time.Second
	upper := maxBackoff + maxBackoff/4

	for _, attempt := range []int{20, 30, 100} {
		d := CalculateBackoff(2*time.Second, attempt)
		if d > upper {
			t.Errorf("Backoff(%d) = %v, exceeds cap with jitter %v", attempt, d, upper)
		}
	}
}
