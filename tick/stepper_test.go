package tick

import (
	"math"
	"testing"
)

func TestStepperRunsWholeTicks(t *testing.T) {
	s := NewStepper(40)
	cases := []struct {
		dt       float64
		want     int
		wantFrac float64
	}{
		{0.01, 0, 0.4},
		{0.01, 0, 0.8},
		{0.01, 1, 0.2},
		{0.05, 2, 0.2},
	}
	for i, c := range cases {
		got := s.Advance(c.dt, nil)
		if got != c.want {
			t.Fatalf("step %d: Advance(%v) = %d; want %d", i, c.dt, got, c.want)
		}
		if math.Abs(s.Fraction()-c.wantFrac) > 1e-9 {
			t.Fatalf("step %d: Fraction() = %v; want %v", i, s.Fraction(), c.wantFrac)
		}
	}
}

func TestStepperCapsBacklog(t *testing.T) {
	s := NewStepper(40)
	calls := 0
	n := s.Advance(10, func() { calls++ })
	if n != DefaultMaxSteps || calls != DefaultMaxSteps {
		t.Fatalf("ran %d ticks (%d calls); want %d", n, calls, DefaultMaxSteps)
	}
	if f := s.Fraction(); f < 0 || f >= 1 {
		t.Fatalf("Fraction() = %v; want [0,1)", f)
	}
}

func TestStepperIgnoresNegativeDelta(t *testing.T) {
	s := NewStepper(40)
	if n := s.Advance(-1, nil); n != 0 {
		t.Fatalf("Advance(-1) = %d; want 0", n)
	}
	if s.Fraction() != 0 {
		t.Fatalf("Fraction() = %v; want 0", s.Fraction())
	}
}
