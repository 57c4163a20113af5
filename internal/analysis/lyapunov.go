package analysis

import (
	"math"

	"github.com/san-kum/mira/internal/dynamo"
)

// seriesPoints caps the length of the running-estimate series.
const seriesPoints = 200

type LyapunovEstimate struct {
	Value float64
	// Series holds the running estimate sampled evenly over the run.
	Series []float64
	Steps  int
}

// LyapunovExponent estimates the largest Lyapunov exponent of m using the
// orbit separation method, in nats per iteration.
//
// Algorithm:
// 1. Iterate pre times to settle onto the attractor
// 2. Follow a companion orbit displaced by perturbation along x
// 3. Accumulate ln(d/d0) each step and pull the companion back to d0
func LyapunovExponent(m dynamo.Map, p0 dynamo.Point, pre, n int, perturbation float64) (*LyapunovEstimate, error) {
	if n <= 0 {
		return nil, &dynamo.ConfigError{Field: "steps", Value: float64(n), Reason: "step count must be positive"}
	}
	if !(perturbation > 0) || math.IsInf(perturbation, 0) {
		return nil, &dynamo.ConfigError{Field: "perturbation", Value: perturbation, Reason: "perturbation must be finite and positive"}
	}

	p := p0
	for i := 0; i < pre; i++ {
		p = m.Step(p)
		if !p.IsValid() {
			return nil, &dynamo.IterationError{Step: i, Point: p, Wrapped: dynamo.ErrNumericDivergence}
		}
	}

	d0 := perturbation
	q := p.Add(dynamo.Point{X: d0})

	every := n / seriesPoints
	if every < 1 {
		every = 1
	}
	est := &LyapunovEstimate{Series: make([]float64, 0, n/every+1)}

	sumLog := 0.0
	count := 0

	for i := 0; i < n; i++ {
		p = m.Step(p)
		q = m.Step(q)
		if !p.IsValid() || !q.IsValid() {
			return nil, &dynamo.IterationError{Step: pre + i, Point: p, Wrapped: dynamo.ErrNumericDivergence}
		}

		delta := q.Sub(p)
		d := delta.Norm()
		if d == 0 {
			// Orbits merged; restart the companion.
			q = p.Add(dynamo.Point{X: d0})
			continue
		}

		sumLog += math.Log(d / d0)
		count++

		// Renormalize to keep the separation in the linear regime.
		q = p.Add(delta.Scale(d0 / d))

		if (i+1)%every == 0 {
			est.Series = append(est.Series, sumLog/float64(count))
		}
	}

	est.Steps = count
	if count > 0 {
		est.Value = sumLog / float64(count)
	}
	return est, nil
}
