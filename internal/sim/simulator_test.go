package sim

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/mira/internal/dynamo"
	"github.com/san-kum/mira/internal/physics"
)

// shiftMap moves every point one unit along x.
type shiftMap struct{}

func (shiftMap) Step(p dynamo.Point) dynamo.Point { return dynamo.Point{X: p.X + 1, Y: p.Y} }

// blowupMap doubles x, overflowing to +Inf after enough steps.
type blowupMap struct{}

func (blowupMap) Step(p dynamo.Point) dynamo.Point { return dynamo.Point{X: p.X * 1e100, Y: p.Y} }

func TestGeneratorRun(t *testing.T) {
	gen := New(shiftMap{})

	result, err := gen.Run(context.Background(), Config{P0: dynamo.Point{}, Pre: 3, Rep: 5, ValidateState: true})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(result.Orbit) != 5 {
		t.Fatalf("expected 5 points, got %d", len(result.Orbit))
	}

	// Warm-up consumes three steps, so the first retained point is x=4.
	for i, p := range result.Orbit {
		if want := float64(i + 4); p.X != want {
			t.Errorf("point %d: x = %v, want %v", i, p.X, want)
		}
	}
	if result.Last != result.Orbit[4] {
		t.Errorf("Last = %v, want %v", result.Last, result.Orbit[4])
	}
}

func TestGeneratorOrbitLength(t *testing.T) {
	m := physics.NewGumowskiMira(0.008, 0.05, -0.496)
	for _, pre := range []int{0, 1, 100, 1000} {
		result, err := New(m).Run(context.Background(), Config{P0: m.DefaultPoint(), Pre: pre, Rep: 777, ValidateState: true})
		if err != nil {
			t.Fatalf("pre=%d: run failed: %v", pre, err)
		}
		if len(result.Orbit) != 777 {
			t.Errorf("pre=%d: expected 777 points, got %d", pre, len(result.Orbit))
		}
	}
}

func TestGeneratorDeterministic(t *testing.T) {
	m := physics.NewGumowskiMira(0.008, 0.05, -0.496)
	cfg := Config{P0: dynamo.Point{X: 5}, Pre: 100, Rep: 5000, ValidateState: true}

	r1, err := New(m).Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	r2, err := New(m).Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	for i := range r1.Orbit {
		if math.Float64bits(r1.Orbit[i].X) != math.Float64bits(r2.Orbit[i].X) ||
			math.Float64bits(r1.Orbit[i].Y) != math.Float64bits(r2.Orbit[i].Y) {
			t.Fatalf("orbits differ at %d: %v vs %v", i, r1.Orbit[i], r2.Orbit[i])
		}
	}
}

func TestGeneratorInvalidConfig(t *testing.T) {
	gen := New(shiftMap{})

	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero rep", Config{Rep: 0}},
		{"negative rep", Config{Rep: -1}},
		{"negative pre", Config{Pre: -1, Rep: 10}},
		{"NaN start", Config{P0: dynamo.Point{X: math.NaN()}, Rep: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := gen.Run(context.Background(), tt.cfg)
			if !errors.Is(err, dynamo.ErrConfiguration) {
				t.Errorf("expected ErrConfiguration, got %v", err)
			}
		})
	}
}

func TestGeneratorDivergence(t *testing.T) {
	gen := New(blowupMap{})

	_, err := gen.Run(context.Background(), Config{P0: dynamo.Point{X: 1}, Rep: 100, ValidateState: true})
	if !errors.Is(err, dynamo.ErrNumericDivergence) {
		t.Fatalf("expected ErrNumericDivergence, got %v", err)
	}

	var ie *dynamo.IterationError
	if !errors.As(err, &ie) {
		t.Fatalf("expected *IterationError, got %T", err)
	}
	// 1e100^4 overflows float64.
	if ie.Step != 3 {
		t.Errorf("diverged at step %d, want 3", ie.Step)
	}
}

func TestGeneratorCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(shiftMap{}).Run(ctx, Config{Rep: 10})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestGeneratorCallbackStops(t *testing.T) {
	count := 0
	last, err := New(shiftMap{}).RunWithCallback(context.Background(), Config{Rep: 100}, func(_ dynamo.Point, step int) bool {
		count++
		return step < 9
	})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if count != 10 {
		t.Errorf("callback ran %d times, want 10", count)
	}
	if last.X != 10 {
		t.Errorf("last x = %v, want 10", last.X)
	}
}

type countMetric struct {
	count int
	sum   float64
}

func (c *countMetric) Name() string { return "count" }
func (c *countMetric) Observe(p dynamo.Point, _ int) {
	c.count++
	c.sum += p.X
}
func (c *countMetric) Value() float64 { return float64(c.count) }
func (c *countMetric) Reset() {
	c.count = 0
	c.sum = 0
}

type stepRecorder struct{ steps []int }

func (s *stepRecorder) OnStep(_ dynamo.Point, step int) { s.steps = append(s.steps, step) }

func TestGeneratorMetricsAndObservers(t *testing.T) {
	gen := New(shiftMap{})
	metric := &countMetric{}
	rec := &stepRecorder{}
	gen.AddMetric(metric)
	gen.AddObserver(rec)

	result, err := gen.Run(context.Background(), Config{Pre: 5, Rep: 10})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if result.Metrics["count"] != 10 {
		t.Errorf("expected 10 observations, got %v", result.Metrics["count"])
	}
	if len(rec.steps) != 10 || rec.steps[0] != 0 || rec.steps[9] != 9 {
		t.Errorf("observer saw steps %v", rec.steps)
	}
}
