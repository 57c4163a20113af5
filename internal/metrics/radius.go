package metrics

import (
	"math"

	"github.com/san-kum/mira/internal/dynamo"
)

// MeanRadius is the mean distance of the orbit from the origin.
type MeanRadius struct {
	name    string
	samples int
	total   float64
}

func NewMeanRadius() *MeanRadius {
	return &MeanRadius{name: "mean_radius"}
}

func (m *MeanRadius) Name() string { return m.name }

func (m *MeanRadius) Observe(p dynamo.Point, _ int) {
	m.total += p.Norm()
	m.samples++
}

func (m *MeanRadius) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.total / float64(m.samples)
}

func (m *MeanRadius) Reset() {
	m.total = 0
	m.samples = 0
}

// MaxRadius is the largest distance from the origin seen so far.
type MaxRadius struct {
	name string
	max  float64
}

func NewMaxRadius() *MaxRadius {
	return &MaxRadius{name: "max_radius"}
}

func (m *MaxRadius) Name() string { return m.name }

func (m *MaxRadius) Observe(p dynamo.Point, _ int) {
	m.max = math.Max(m.max, p.Norm())
}

func (m *MaxRadius) Value() float64 { return m.max }

func (m *MaxRadius) Reset() { m.max = 0 }
