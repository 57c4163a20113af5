package experiment

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/san-kum/mira/internal/analysis"
	"github.com/san-kum/mira/internal/density"
	"github.com/san-kum/mira/internal/dynamo"
	"github.com/san-kum/mira/internal/physics"
	"github.com/san-kum/mira/internal/raster"
	"github.com/san-kum/mira/internal/sim"
	"github.com/san-kum/mira/internal/tone"
)

type Options struct {
	Density density.Options
	// Streaming regenerates the orbit for the deposit pass instead of
	// storing it, trading a second iteration pass for O(1) orbit memory.
	Streaming bool
}

func DefaultOptions() Options {
	return Options{Density: density.DefaultOptions()}
}

type Result struct {
	Params    dynamo.Params
	Bounds    density.Bounds
	Viewport  density.Viewport
	Grid      *density.Grid
	Intensity *tone.Intensity
	Image     *image.Gray
	Metrics   map[string]float64
	Elapsed   time.Duration
}

type Experiment struct {
	params    dynamo.Params
	opts      Options
	generator *sim.Generator
}

func New(p dynamo.Params, opts Options) *Experiment {
	return &Experiment{params: p, opts: opts}
}

func (e *Experiment) Setup(m dynamo.Map, metrics []sim.Metric) error {
	if m == nil {
		return fmt.Errorf("experiment: nil map")
	}
	e.generator = sim.New(m)
	for _, mt := range metrics {
		e.generator.AddMetric(mt)
	}
	return nil
}

// GetGenerator returns the underlying generator for adding observers.
func (e *Experiment) GetGenerator() *sim.Generator {
	return e.generator
}

// Passes reports how many times the orbit is iterated per run.
func (e *Experiment) Passes() int {
	if e.opts.Streaming {
		return 2
	}
	return 1
}

// Run executes the full pipeline: orbit, density, tone map and image.
// Nothing is returned on error, so callers never see a partial image.
func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	if e.generator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	if err := e.params.Validate(); err != nil {
		return nil, err
	}

	log := Logger()
	log.Info("render started", "params", e.params.String(),
		"deposit", e.opts.Density.Policy.String(), "margin", e.opts.Density.Margin, "streaming", e.opts.Streaming)

	start := time.Now()
	res := &Result{Params: e.params}

	var err error
	if e.opts.Streaming {
		err = e.accumulateStreaming(ctx, res)
	} else {
		err = e.accumulateBatch(ctx, res)
	}
	if err != nil {
		return nil, err
	}

	log.Debug("density accumulated",
		"xlo", res.Bounds.XLo, "xhi", res.Bounds.XHi, "ylo", res.Bounds.YLo, "yhi", res.Bounds.YHi,
		"scale", res.Viewport.Scale, "max", res.Grid.Max(), "occupied", res.Grid.Occupied())

	stage := time.Now()
	res.Intensity, err = tone.Map(res.Grid, e.params.Pow)
	if err != nil {
		return nil, err
	}
	res.Image = raster.Assemble(res.Intensity)
	log.Debug("tone mapped", "pow", e.params.Pow, "elapsed", time.Since(stage))

	res.Metrics["coverage"] = analysis.Coverage(res.Grid)
	res.Metrics["entropy_bits"] = analysis.Entropy(res.Grid)
	res.Elapsed = time.Since(start)

	log.Info("render finished", "elapsed", res.Elapsed)
	return res, nil
}

func (e *Experiment) accumulateBatch(ctx context.Context, res *Result) error {
	stage := time.Now()
	orbit, err := e.generator.Run(ctx, sim.ConfigFromParams(e.params))
	if err != nil {
		return err
	}
	Logger().Debug("orbit generated", "points", len(orbit.Orbit), "last", orbit.Last.String(), "elapsed", time.Since(stage))

	stage = time.Now()
	res.Grid, res.Viewport, err = density.Accumulate(orbit.Orbit, e.params.W, e.opts.Density)
	if err != nil {
		return err
	}
	res.Bounds = res.Viewport.Bounds
	res.Metrics = orbit.Metrics
	Logger().Debug("orbit deposited", "workers", e.opts.Density.Workers, "elapsed", time.Since(stage))
	return nil
}

func (e *Experiment) accumulateStreaming(ctx context.Context, res *Result) error {
	if e.opts.Density.Workers > 1 {
		Logger().Warn("workers ignored in streaming mode", "workers", e.opts.Density.Workers)
	}
	cfg := sim.ConfigFromParams(e.params)

	stage := time.Now()
	bounds := density.EmptyBounds()
	if _, err := e.generator.RunWithCallback(ctx, cfg, func(p dynamo.Point, _ int) bool {
		bounds.Extend(p)
		return true
	}); err != nil {
		return err
	}
	Logger().Debug("bounds pass finished", "points", bounds.N, "elapsed", time.Since(stage))

	view, err := density.NewViewport(bounds, e.params.W, e.opts.Density.Margin)
	if err != nil {
		return err
	}
	acc, err := density.NewAccumulator(view, e.opts.Density.Policy, e.params.Rep)
	if err != nil {
		return err
	}

	stage = time.Now()
	if _, err := e.generator.RunWithCallback(ctx, cfg, func(p dynamo.Point, _ int) bool {
		acc.Add(p)
		return true
	}); err != nil {
		return err
	}
	Logger().Debug("deposit pass finished", "elapsed", time.Since(stage))

	res.Bounds = bounds
	res.Viewport = view
	res.Grid = acc.Grid()
	res.Metrics = e.generator.MetricValues()
	return nil
}

// Render runs the Gumowski–Mira pipeline for p with the default metrics.
func Render(ctx context.Context, p dynamo.Params, opts Options) (*Result, error) {
	exp := New(p, opts)
	if err := exp.Setup(physics.NewGumowskiMiraFromParams(p), NewRegistry().DefaultMetrics()); err != nil {
		return nil, err
	}
	return exp.Run(ctx)
}
