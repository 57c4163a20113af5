package density

import (
	"math"

	"github.com/san-kum/mira/internal/dynamo"
)

// DefaultMargin pads the viewport by 10% so the orbit extremes land
// strictly inside the grid.
const DefaultMargin = 1.1

// Viewport is a square window in orbit coordinates mapped onto a w×w grid
// with one uniform scale for both axes.
type Viewport struct {
	CX, CY float64
	// HalfWidth is half the side of the square window.
	HalfWidth float64
	// Scale is grid cells per unit of orbit coordinate.
	Scale float64
	W     int
	// Bounds is the orbit box the viewport was built from.
	Bounds Bounds
}

func NewViewport(b Bounds, w int, margin float64) (Viewport, error) {
	if w <= 0 {
		return Viewport{}, &dynamo.ConfigError{Field: "w", Value: float64(w), Reason: "grid width must be positive"}
	}
	if math.IsNaN(margin) || math.IsInf(margin, 0) || margin < 1 {
		return Viewport{}, &dynamo.ConfigError{Field: "margin", Value: margin, Reason: "margin factor must be finite and at least 1"}
	}
	if b.Degenerate() {
		return Viewport{}, dynamo.ErrDegenerateOrbit
	}

	xyw := math.Max(b.Width(), b.Height()) * margin / 2
	return Viewport{
		CX:        (b.XHi + b.XLo) / 2,
		CY:        (b.YHi + b.YLo) / 2,
		HalfWidth: xyw,
		Scale:     float64(w) / (2 * xyw),
		W:         w,
		Bounds:    b,
	}, nil
}

// ToGrid maps a point to continuous grid coordinates.
func (v Viewport) ToGrid(p dynamo.Point) (gx, gy float64) {
	gx = (p.X - (v.CX - v.HalfWidth)) * v.Scale
	gy = (p.Y - (v.CY - v.HalfWidth)) * v.Scale
	return gx, gy
}
