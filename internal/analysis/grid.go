package analysis

import (
	"math"

	"github.com/san-kum/mira/internal/density"
)

// Coverage returns the fraction of cells holding any mass.
func Coverage(g *density.Grid) float64 {
	if len(g.Cells) == 0 {
		return 0
	}
	return float64(g.Occupied()) / float64(len(g.Cells))
}

// Entropy returns the Shannon entropy, in bits, of the grid's mass
// distribution. A uniform spread over k cells scores log2(k).
func Entropy(g *density.Grid) float64 {
	total := float64(g.Mass())
	if total == 0 {
		return 0
	}
	h := 0.0
	for _, v := range g.Cells {
		if v == 0 {
			continue
		}
		p := float64(v) / total
		h -= p * math.Log2(p)
	}
	return h
}

// HistogramSeries folds a 256-entry intensity histogram into bins buckets,
// skipping the zero bucket, which is dominated by empty background cells.
func HistogramSeries(h [256]int, bins int) []float64 {
	if bins < 1 {
		bins = 1
	}
	if bins > 255 {
		bins = 255
	}
	out := make([]float64, bins)
	for v := 1; v < 256; v++ {
		b := (v - 1) * bins / 255
		out[b] += float64(h[v])
	}
	return out
}
