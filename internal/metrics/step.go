package metrics

import "github.com/san-kum/mira/internal/dynamo"

// StepSize is the mean distance between consecutive retained points. A
// value near zero means the orbit has collapsed onto a fixed point.
type StepSize struct {
	name    string
	prev    dynamo.Point
	samples int
	total   float64
}

func NewStepSize() *StepSize {
	return &StepSize{name: "mean_step"}
}

func (s *StepSize) Name() string { return s.name }

func (s *StepSize) Observe(p dynamo.Point, _ int) {
	if s.samples > 0 {
		s.total += p.Sub(s.prev).Norm()
	}
	s.prev = p
	s.samples++
}

func (s *StepSize) Value() float64 {
	if s.samples < 2 {
		return 0
	}
	return s.total / float64(s.samples-1)
}

func (s *StepSize) Reset() {
	s.prev = dynamo.Point{}
	s.samples = 0
	s.total = 0
}
