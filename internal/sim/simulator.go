package sim

import (
	"context"

	"github.com/san-kum/mira/internal/dynamo"
)

// ctxCheckInterval is how many iterations run between context checks.
const ctxCheckInterval = 4096

type Generator struct {
	m         dynamo.Map
	metrics   []Metric
	observers []Observer
}

func New(m dynamo.Map) *Generator {
	return &Generator{
		m:         m,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (g *Generator) AddMetric(m Metric)     { g.metrics = append(g.metrics, m) }
func (g *Generator) AddObserver(o Observer) { g.observers = append(g.observers, o) }

// Run iterates from cfg.P0, discards cfg.Pre iterates and returns the
// next cfg.Rep points in arrival order.
func (g *Generator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	result := &Result{
		Orbit: make(dynamo.Orbit, 0, cfg.Rep),
	}

	last, err := g.RunWithCallback(ctx, cfg, func(p dynamo.Point, _ int) bool {
		result.Orbit = append(result.Orbit, p)
		return true
	})
	if err != nil {
		return nil, err
	}
	result.Last = last

	result.Metrics = g.MetricValues()

	return result, nil
}

// MetricValues reports the current value of every registered metric.
func (g *Generator) MetricValues() map[string]float64 {
	values := make(map[string]float64, len(g.metrics))
	for _, m := range g.metrics {
		values[m.Name()] = m.Value()
	}
	return values
}

// RunWithCallback iterates like Run but hands each retained point to
// callback instead of storing it. Returning false from callback stops the
// run early without error. It returns the last point produced.
func (g *Generator) RunWithCallback(ctx context.Context, cfg Config, callback func(dynamo.Point, int) bool) (dynamo.Point, error) {
	if err := validateConfig(cfg); err != nil {
		return cfg.P0, err
	}

	for _, m := range g.metrics {
		m.Reset()
	}

	p := cfg.P0
	total := cfg.Pre + cfg.Rep

	for i := 0; i < total; i++ {
		if i%ctxCheckInterval == 0 {
			select {
			case <-ctx.Done():
				return p, ctx.Err()
			default:
			}
		}

		p = g.m.Step(p)

		if cfg.ValidateState && !p.IsValid() {
			return p, &dynamo.IterationError{Step: i, Point: p, Wrapped: dynamo.ErrNumericDivergence}
		}

		if i < cfg.Pre {
			continue
		}

		step := i - cfg.Pre
		for _, m := range g.metrics {
			m.Observe(p, step)
		}
		for _, obs := range g.observers {
			obs.OnStep(p, step)
		}

		if !callback(p, step) {
			return p, nil
		}
	}

	return p, nil
}

func validateConfig(cfg Config) error {
	if cfg.Rep <= 0 {
		return &dynamo.ConfigError{Field: "rep", Value: float64(cfg.Rep), Reason: "sample count must be positive"}
	}
	if cfg.Pre < 0 {
		return &dynamo.ConfigError{Field: "pre", Value: float64(cfg.Pre), Reason: "warm-up count must not be negative"}
	}
	if !cfg.P0.IsValid() {
		return &dynamo.ConfigError{Field: "p0", Value: cfg.P0.X + cfg.P0.Y, Reason: "initial point must be finite"}
	}
	return nil
}
