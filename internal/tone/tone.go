// Package tone converts accumulated density into 8-bit intensities.
//
// Each cell is normalized by the grid maximum and remapped through a power
// curve v = (cell/max)^pow. Exponents below one lift sparse regions of the
// attractor that a linear ramp would crush to black.
package tone

import (
	"math"

	"github.com/san-kum/mira/internal/density"
	"github.com/san-kum/mira/internal/dynamo"
)

// Intensity is a w×w row-major grid of 8-bit values with the same
// indexing as the density grid it was derived from.
type Intensity struct {
	W   int
	Pix []uint8
}

func (in *Intensity) At(row, col int) uint8 {
	return in.Pix[row*in.W+col]
}

// Curve maps normalized density in [0,1] to an 8-bit value.
type Curve struct {
	pow float64
}

func NewCurve(pow float64) (Curve, error) {
	if math.IsNaN(pow) || math.IsInf(pow, 0) || pow <= 0 {
		return Curve{}, &dynamo.ConfigError{Field: "pow", Value: pow, Reason: "tone exponent must be finite and positive"}
	}
	return Curve{pow: pow}, nil
}

func (c Curve) Apply(v0 float64) uint8 {
	v := math.Round(math.Pow(v0, c.pow) * 255)
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}

// Map normalizes g by its maximum and applies the power curve to every cell.
func Map(g *density.Grid, pow float64) (*Intensity, error) {
	curve, err := NewCurve(pow)
	if err != nil {
		return nil, err
	}

	max := g.Max()
	if max == 0 {
		return nil, dynamo.ErrEmptyGrid
	}
	fmax := float64(max)

	out := &Intensity{W: g.W, Pix: make([]uint8, len(g.Cells))}
	for i, v := range g.Cells {
		if v == 0 {
			continue
		}
		out.Pix[i] = curve.Apply(float64(v) / fmax)
	}
	return out, nil
}

// Histogram counts cells per intensity value.
func (in *Intensity) Histogram() [256]int {
	var h [256]int
	for _, v := range in.Pix {
		h[v]++
	}
	return h
}
