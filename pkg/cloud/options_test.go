package cloud

import (
	"math"
	"testing"

	"github.com/matzehuels/feedscope/pkg/geom"
)

func TestAutoAttempts(t *testing.T) {
	s := geom.DefaultSpiral()

	if got := AutoAttempts(100, 100, s); got != 709 {
		t.Errorf("AutoAttempts(100, 100) = %d, want 709", got)
	}
	if got := AutoAttempts(0, 100, s); got != 0 {
		t.Errorf("AutoAttempts(0, 100) = %d, want 0", got)
	}

	if got := AutoAttempts(1e12, 1e12, s); got != MaxAttemptsLimit {
		t.Errorf("AutoAttempts(1e12, 1e12) = %d, want %d", got, MaxAttemptsLimit)
	}
	if got := AutoAttempts(math.Inf(1), 100, s); got != MaxAttemptsLimit {
		t.Errorf("AutoAttempts(+Inf, 100) = %d, want %d", got, MaxAttemptsLimit)
	}
	if got := AutoAttempts(math.NaN(), 100, s); got != 0 {
		t.Errorf("AutoAttempts(NaN, 100) = %d, want 0", got)
	}

	k := AutoAttempts(640, 480, s)
	if k <= 0 {
		t.Fatalf("AutoAttempts(640, 480) = %d", k)
	}
	if s.Radius(k-1) < 400-1e-9 {
		t.Errorf("radius at last attempt = %v, want >= half-diagonal 400", s.Radius(k-1))
	}
}

func TestDefaultFontSize(t *testing.T) {
	tests := []struct {
		weight int
		want   float64
	}{
		{0, 10},
		{1, 20},
		{4, 30},
		{25, 60},
		{-3, 10},
	}
	for _, tt := range tests {
		if got := DefaultFontSize(tt.weight); got != tt.want {
			t.Errorf("DefaultFontSize(%d) = %v, want %v", tt.weight, got, tt.want)
		}
	}

	prev := DefaultFontSize(0)
	for w := 1; w < 200; w++ {
		if got := DefaultFontSize(w); got < prev {
			t.Fatalf("DefaultFontSize not monotonic at %d", w)
		}
		prev = DefaultFontSize(w)
	}
}

func TestDefaultOptionsValid(t *testing.T) {
	opts := DefaultOptions(800, 600)
	if err := opts.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
	if opts.Padding != DefaultPadding || !opts.EnforceBounds {
		t.Errorf("DefaultOptions = %+v", opts)
	}
}
