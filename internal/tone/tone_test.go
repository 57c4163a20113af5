package tone

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/mira/internal/density"
	"github.com/san-kum/mira/internal/dynamo"
)

func gridOf(w int, cells ...uint64) *density.Grid {
	g := density.NewGrid(w, 1)
	copy(g.Cells, cells)
	return g
}

func TestMap_Boundedness(t *testing.T) {
	g := gridOf(3, 0, 1, 2, 5, 10, 100, 1000, 999, 7)

	for _, pow := range []float64{0.1, 0.2, 0.5, 1, 2} {
		in, err := Map(g, pow)
		if err != nil {
			t.Fatalf("pow=%v: map failed: %v", pow, err)
		}
		if in.At(2, 0) != 255 {
			t.Errorf("pow=%v: max cell maps to %d, want 255", pow, in.At(2, 0))
		}
		if in.At(0, 0) != 0 {
			t.Errorf("pow=%v: empty cell maps to %d, want 0", pow, in.At(0, 0))
		}
	}
}

func TestMap_Values(t *testing.T) {
	g := gridOf(2, 0, 25, 50, 100)
	in, err := Map(g, 0.5)
	if err != nil {
		t.Fatalf("map failed: %v", err)
	}

	want := []uint8{0, uint8(math.Round(0.5 * 255)), uint8(math.Round(math.Sqrt(0.5) * 255)), 255}
	for i, w := range want {
		if in.Pix[i] != w {
			t.Errorf("pix[%d] = %d, want %d", i, in.Pix[i], w)
		}
	}
}

func TestCurve_Monotonic(t *testing.T) {
	for _, pow := range []float64{0.1, 0.2, 1, 3} {
		c, err := NewCurve(pow)
		if err != nil {
			t.Fatalf("curve failed: %v", err)
		}
		prev := c.Apply(0)
		for i := 1; i <= 10000; i++ {
			v := c.Apply(float64(i) / 10000)
			if v < prev {
				t.Fatalf("pow=%v: curve decreases at %d: %d < %d", pow, i, v, prev)
			}
			prev = v
		}
		if prev != 255 {
			t.Errorf("pow=%v: curve ends at %d, want 255", pow, prev)
		}
	}
}

func TestMap_EmptyGrid(t *testing.T) {
	_, err := Map(density.NewGrid(4, 1), 0.2)
	if !errors.Is(err, dynamo.ErrEmptyGrid) {
		t.Errorf("expected ErrEmptyGrid, got %v", err)
	}
}

func TestNewCurve_Invalid(t *testing.T) {
	for _, pow := range []float64{0, -0.5, math.NaN(), math.Inf(1)} {
		if _, err := NewCurve(pow); !errors.Is(err, dynamo.ErrConfiguration) {
			t.Errorf("pow=%v: expected ErrConfiguration, got %v", pow, err)
		}
	}
}

func TestHistogram(t *testing.T) {
	g := gridOf(2, 0, 0, 10, 10)
	in, err := Map(g, 1)
	if err != nil {
		t.Fatalf("map failed: %v", err)
	}
	h := in.Histogram()
	if h[0] != 2 || h[255] != 2 {
		t.Errorf("histogram[0]=%d histogram[255]=%d, want 2 and 2", h[0], h[255])
	}
}
