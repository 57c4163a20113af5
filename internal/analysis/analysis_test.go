package analysis

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/mira/internal/density"
	"github.com/san-kum/mira/internal/dynamo"
)

// linearMap stretches x by sx and y by sy.
type linearMap struct{ sx, sy float64 }

func (l linearMap) Step(p dynamo.Point) dynamo.Point {
	return dynamo.Point{X: p.X * l.sx, Y: p.Y * l.sy}
}

func TestLyapunovExponent_Linear(t *testing.T) {
	tests := []struct {
		name     string
		m        linearMap
		expected float64
	}{
		{"expanding", linearMap{2, 0.5}, math.Log(2)},
		{"contracting", linearMap{0.5, 0.25}, math.Log(0.5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			est, err := LyapunovExponent(tt.m, dynamo.Point{}, 0, 50, 1e-6)
			if err != nil {
				t.Fatalf("lyapunov failed: %v", err)
			}
			if math.Abs(est.Value-tt.expected) > 1e-6 {
				t.Errorf("lambda = %v, want %v", est.Value, tt.expected)
			}
			if est.Steps != 50 {
				t.Errorf("steps = %d, want 50", est.Steps)
			}
			if len(est.Series) == 0 {
				t.Error("expected a running-estimate series")
			}
		})
	}
}

func TestLyapunovExponent_Errors(t *testing.T) {
	m := linearMap{2, 2}
	if _, err := LyapunovExponent(m, dynamo.Point{X: 1}, 0, 0, 1e-6); !errors.Is(err, dynamo.ErrConfiguration) {
		t.Errorf("expected ErrConfiguration for zero steps, got %v", err)
	}
	if _, err := LyapunovExponent(m, dynamo.Point{X: 1}, 0, 10, 0); !errors.Is(err, dynamo.ErrConfiguration) {
		t.Errorf("expected ErrConfiguration for zero perturbation, got %v", err)
	}

	blowup := linearMap{1e200, 1}
	if _, err := LyapunovExponent(blowup, dynamo.Point{X: 1}, 5, 10, 1e-6); !errors.Is(err, dynamo.ErrNumericDivergence) {
		t.Errorf("expected ErrNumericDivergence, got %v", err)
	}
}

func TestCoverageAndEntropy(t *testing.T) {
	g := density.NewGrid(2, 1)
	if Coverage(g) != 0 || Entropy(g) != 0 {
		t.Error("empty grid should have zero coverage and entropy")
	}

	copy(g.Cells, []uint64{5, 5, 5, 5})
	if Coverage(g) != 1 {
		t.Errorf("coverage = %v, want 1", Coverage(g))
	}
	if math.Abs(Entropy(g)-2) > 1e-12 {
		t.Errorf("entropy = %v, want 2 bits", Entropy(g))
	}

	copy(g.Cells, []uint64{0, 9, 0, 0})
	if Coverage(g) != 0.25 {
		t.Errorf("coverage = %v, want 0.25", Coverage(g))
	}
	if Entropy(g) != 0 {
		t.Errorf("entropy = %v, want 0", Entropy(g))
	}
}

func TestHistogramSeries(t *testing.T) {
	var h [256]int
	h[0] = 1000
	h[1] = 3
	h[255] = 7

	series := HistogramSeries(h, 5)
	if len(series) != 5 {
		t.Fatalf("len = %d, want 5", len(series))
	}
	if series[0] != 3 || series[4] != 7 {
		t.Errorf("unexpected series %v", series)
	}

	total := 0.0
	for _, v := range series {
		total += v
	}
	if total != 10 {
		t.Errorf("series total = %v, want 10 (zero bucket excluded)", total)
	}
}
