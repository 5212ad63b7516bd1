package backoff

import (
	"testing"
	"time"
)

func TestExponential_Ranges(t *testing.T) {
	tests := []struct {
		attempt  int
		min, max time.Duration
	}{
		{1, 200 * time.Millisecond, 240 * time.Millisecond},
		{2, 400 * time.Millisecond, 480 * time.Millisecond},
		{3, 800 * time.Millisecond, 960 * time.Millisecond},
		{6, 6400 * time.Millisecond, 7680 * time.Millisecond},
	}

	for _, tt := range tests {
		for i := 0; i < 200; i++ {
			got := Exponential(tt.attempt)
			if got < tt.min || got >= tt.max {
				t.Fatalf("Exponential(%d) = %v, want in [%v, %v)", tt.attempt, got, tt.min, tt.max)
			}
		}
	}
}

func TestExponential_ClampsLowAttempts(t *testing.T) {
	for _, attempt := range []int{0, -3} {
		got := Exponential(attempt)
		if got < 200*time.Millisecond || got >= 240*time.Millisecond {
			t.Errorf("Exponential(%d) = %v, want attempt 1 range", attempt, got)
		}
	}
}

func TestConstant(t *testing.T) {
	f := Constant(5 * time.Millisecond)
	for attempt := 1; attempt < 4; attempt++ {
		if got := f(attempt); got != 5*time.Millisecond {
			t.Errorf("Constant(5ms)(%d) = %v", attempt, got)
		}
	}
}
