package physics

import (
	"fmt"

	"github.com/san-kum/mira/internal/dynamo"
)

// GumowskiMira is the two-dimensional recurrence
//
//	x' = y + a·y·(1 − s·y²) + f(x)
//	y' = −x + f(x')
//
// with f(x) = mu·x + 2·(1−mu)·x²/(1+x²).
type GumowskiMira struct {
	A, S, Mu float64
}

func NewGumowskiMira(a, s, mu float64) *GumowskiMira {
	return &GumowskiMira{A: a, S: s, Mu: mu}
}

func NewGumowskiMiraFromParams(p dynamo.Params) *GumowskiMira {
	return &GumowskiMira{A: p.A, S: p.S, Mu: p.Mu}
}

func (g *GumowskiMira) f(x float64) float64 {
	x2 := x * x
	return g.Mu*x + 2*(1-g.Mu)*x2/(1+x2)
}

// Step advances p by one iteration.
func (g *GumowskiMira) Step(p dynamo.Point) dynamo.Point {
	x, y := p.X, p.Y
	xx := y + g.A*y*(1-g.S*y*y) + g.f(x)
	return dynamo.Point{X: xx, Y: -x + g.f(xx)}
}

func (g *GumowskiMira) DefaultPoint() dynamo.Point { return dynamo.Point{X: 5, Y: 0} }

func (g *GumowskiMira) GetParams() map[string]float64 {
	return map[string]float64{"alpha": g.A, "sigma": g.S, "mu": g.Mu}
}

func (g *GumowskiMira) SetParam(n string, v float64) error {
	switch n {
	case "alpha":
		g.A = v
	case "sigma":
		g.S = v
	case "mu":
		g.Mu = v
	default:
		return fmt.Errorf("gumowski-mira: unknown parameter %q", n)
	}
	return nil
}
