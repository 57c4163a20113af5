package dynamo

import (
	"fmt"
	"math"
)

type Point struct {
	X, Y float64
}

func (p Point) IsValid() bool {
	return isFinite(p.X) && isFinite(p.Y)
}

func (p Point) Norm() float64 {
	return math.Hypot(p.X, p.Y)
}

func (p Point) Sub(o Point) Point {
	return Point{p.X - o.X, p.Y - o.Y}
}

func (p Point) Add(o Point) Point {
	return Point{p.X + o.X, p.Y + o.Y}
}

func (p Point) Scale(f float64) Point {
	return Point{p.X * f, p.Y * f}
}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

// Orbit is the sequence of retained iterates in arrival order.
type Orbit []Point

// Map advances a point by one iteration of a planar recurrence.
type Map interface {
	Step(p Point) Point
}

type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}

// Params bundles everything needed to render one attractor image.
// W is the side of the square grid, Pre the number of discarded warm-up
// iterations and Rep the number of retained samples.
type Params struct {
	W   int
	P0  Point
	Pre int
	Rep int
	A   float64
	S   float64
	Mu  float64
	Pow float64
}

// Validate reports the first parameter that makes a run undefined.
func (p Params) Validate() error {
	switch {
	case p.Rep <= 0:
		return &ConfigError{Field: "rep", Value: float64(p.Rep), Reason: "sample count must be positive"}
	case p.W <= 0:
		return &ConfigError{Field: "w", Value: float64(p.W), Reason: "grid width must be positive"}
	case p.Pre < 0:
		return &ConfigError{Field: "pre", Value: float64(p.Pre), Reason: "warm-up count must not be negative"}
	case !isFinite(p.A):
		return &ConfigError{Field: "alpha", Value: p.A, Reason: "coefficient must be finite"}
	case !isFinite(p.S):
		return &ConfigError{Field: "sigma", Value: p.S, Reason: "coefficient must be finite"}
	case !isFinite(p.Mu):
		return &ConfigError{Field: "mu", Value: p.Mu, Reason: "coefficient must be finite"}
	case !p.P0.IsValid():
		return &ConfigError{Field: "p0", Value: p.P0.X + p.P0.Y, Reason: "initial point must be finite"}
	case !isFinite(p.Pow) || p.Pow <= 0:
		return &ConfigError{Field: "pow", Value: p.Pow, Reason: "tone exponent must be finite and positive"}
	}
	return nil
}

func (p Params) String() string {
	return fmt.Sprintf("w=%d p0=%v pre=%d rep=%d a=%g s=%g mu=%g pow=%g",
		p.W, p.P0, p.Pre, p.Rep, p.A, p.S, p.Mu, p.Pow)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
