package density

import (
	"math"

	"github.com/san-kum/mira/internal/dynamo"
)

// Bounds is the axis-aligned bounding box of a set of points.
type Bounds struct {
	XLo, XHi float64
	YLo, YHi float64
	N        int
}

// EmptyBounds returns a box that any point will replace on Extend.
func EmptyBounds() Bounds {
	return Bounds{
		XLo: math.Inf(1), XHi: math.Inf(-1),
		YLo: math.Inf(1), YHi: math.Inf(-1),
	}
}

func (b *Bounds) Extend(p dynamo.Point) {
	if p.X < b.XLo {
		b.XLo = p.X
	}
	if p.X > b.XHi {
		b.XHi = p.X
	}
	if p.Y < b.YLo {
		b.YLo = p.Y
	}
	if p.Y > b.YHi {
		b.YHi = p.Y
	}
	b.N++
}

// Union merges two boxes. Min and max are associative, so the order of
// partial reductions does not matter.
func (b Bounds) Union(o Bounds) Bounds {
	return Bounds{
		XLo: math.Min(b.XLo, o.XLo),
		XHi: math.Max(b.XHi, o.XHi),
		YLo: math.Min(b.YLo, o.YLo),
		YHi: math.Max(b.YHi, o.YHi),
		N:   b.N + o.N,
	}
}

func (b Bounds) Empty() bool { return b.N == 0 }

func (b Bounds) Width() float64  { return b.XHi - b.XLo }
func (b Bounds) Height() float64 { return b.YHi - b.YLo }

// Degenerate reports whether the box has no extent on either axis.
func (b Bounds) Degenerate() bool {
	return b.Empty() || (b.XHi == b.XLo && b.YHi == b.YLo)
}

// ComputeBounds reduces the orbit to its bounding box, splitting the work
// across workers goroutines when the orbit is large enough.
func ComputeBounds(orbit dynamo.Orbit, workers int) Bounds {
	n := len(orbit)
	parts := make([]Bounds, dynamo.Chunks(n, workers, minChunk))

	dynamo.ParallelFor(n, workers, minChunk, func(chunk, start, end int) {
		b := EmptyBounds()
		for _, p := range orbit[start:end] {
			b.Extend(p)
		}
		parts[chunk] = b
	})

	total := EmptyBounds()
	for _, b := range parts {
		total = total.Union(b)
	}
	return total
}
