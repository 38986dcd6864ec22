package tick

// DefaultRate is the logic rate of the HUD in ticks per second.
const DefaultRate = 40

// DefaultMaxSteps bounds how many ticks a single Advance may run so a long
// stall (window drag, breakpoint) does not replay seconds of animation.
const DefaultMaxSteps = 8

// Stepper converts variable frame times into fixed logic ticks. The leftover
// accumulator is the interpolation factor handed to render code.
type Stepper struct {
	Rate     float64
	MaxSteps int

	acc float64
}

// NewStepper returns a Stepper running at rate ticks per second.
func NewStepper(rate float64) *Stepper {
	if rate <= 0 {
		rate = DefaultRate
	}
	return &Stepper{Rate: rate, MaxSteps: DefaultMaxSteps}
}

// Advance adds dt seconds to the accumulator and calls step once per whole
// tick. It returns the number of ticks run.
func (s *Stepper) Advance(dt float64, step func()) int {
	if dt < 0 {
		dt = 0
	}
	rate := s.Rate
	if rate <= 0 {
		rate = DefaultRate
	}
	s.acc += dt * rate
	n := 0
	for s.acc >= 1 {
		if s.MaxSteps > 0 && n >= s.MaxSteps {
			// Drop the backlog but keep the fractional part.
			s.acc -= float64(int(s.acc))
			break
		}
		s.acc--
		n++
		if step != nil {
			step()
		}
	}
	return n
}

// Fraction reports the position between the last tick and the next, in [0,1).
func (s *Stepper) Fraction() float64 {
	if s.acc < 0 {
		return 0
	}
	if s.acc >= 1 {
		return 1
	}
	return s.acc
}

// Reset discards any accumulated time.
func (s *Stepper) Reset() {
	s.acc = 0
}
