package density

import (
	"fmt"

	"github.com/san-kum/mira/internal/dynamo"
)

// minChunk keeps small orbits on a single goroutine.
const minChunk = 1 << 16

type Options struct {
	Policy Policy
	// Margin scales the viewport relative to the orbit's largest extent.
	Margin float64
	// Workers > 1 partitions the orbit and merges per-partition grids.
	Workers int
}

func DefaultOptions() Options {
	return Options{Policy: Bilinear, Margin: DefaultMargin, Workers: 1}
}

// Accumulator deposits points into a grid through a fixed viewport.
type Accumulator struct {
	view   Viewport
	policy Policy
	grid   *Grid
}

// NewAccumulator prepares an empty grid for a run of rep samples.
func NewAccumulator(view Viewport, policy Policy, rep int) (*Accumulator, error) {
	if policy != Bilinear && policy != Nearest {
		return nil, &dynamo.ConfigError{Field: "deposit", Value: float64(policy), Reason: "unknown deposit policy"}
	}
	return &Accumulator{
		view:   view,
		policy: policy,
		grid:   NewGrid(view.W, policy.Unit(rep)),
	}, nil
}

func (a *Accumulator) Add(p dynamo.Point) {
	gx, gy := a.view.ToGrid(p)
	if a.policy == Nearest {
		depositNearest(a.grid, gx, gy)
		return
	}
	depositBilinear(a.grid, gx, gy)
}

func (a *Accumulator) AddAll(orbit dynamo.Orbit) {
	for _, p := range orbit {
		a.Add(p)
	}
}

func (a *Accumulator) Grid() *Grid        { return a.grid }
func (a *Accumulator) Viewport() Viewport { return a.view }

// Accumulate computes the orbit's viewport and deposits every point into a
// w×w grid.
func Accumulate(orbit dynamo.Orbit, w int, opts Options) (*Grid, Viewport, error) {
	if len(orbit) == 0 {
		return nil, Viewport{}, &dynamo.ConfigError{Field: "rep", Value: 0, Reason: "sample count must be positive"}
	}

	bounds := ComputeBounds(orbit, opts.Workers)
	view, err := NewViewport(bounds, w, opts.Margin)
	if err != nil {
		return nil, Viewport{}, err
	}

	n := len(orbit)
	parts := make([]*Accumulator, dynamo.Chunks(n, opts.Workers, minChunk))
	for i := range parts {
		if parts[i], err = NewAccumulator(view, opts.Policy, n); err != nil {
			return nil, Viewport{}, err
		}
	}

	dynamo.ParallelFor(n, opts.Workers, minChunk, func(chunk, start, end int) {
		parts[chunk].AddAll(orbit[start:end])
	})

	grid := parts[0].Grid()
	for _, acc := range parts[1:] {
		if err := grid.Merge(acc.Grid()); err != nil {
			return nil, Viewport{}, fmt.Errorf("merging partial grids: %w", err)
		}
	}

	return grid, view, nil
}
