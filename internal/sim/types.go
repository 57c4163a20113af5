package sim

import "github.com/san-kum/mira/internal/dynamo"

// Metric accumulates a scalar summary over the retained points of a run.
type Metric interface {
	Name() string
	Observe(p dynamo.Point, step int)
	Value() float64
	Reset()
}

// Observer is notified of every retained point.
type Observer interface {
	OnStep(p dynamo.Point, step int)
}

type Config struct {
	P0  dynamo.Point
	Pre int
	Rep int

	// ValidateState aborts the run on the first non-finite coordinate.
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		P0:            dynamo.Point{X: 5, Y: 0},
		Pre:           1000,
		Rep:           1000000,
		ValidateState: true,
	}
}

// ConfigFromParams extracts the iteration settings from render parameters.
func ConfigFromParams(p dynamo.Params) Config {
	return Config{P0: p.P0, Pre: p.Pre, Rep: p.Rep, ValidateState: true}
}

type Result struct {
	Orbit   dynamo.Orbit
	Last    dynamo.Point
	Metrics map[string]float64
}
