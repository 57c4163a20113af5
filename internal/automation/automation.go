package automation

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/mira/internal/config"
	"github.com/san-kum/mira/internal/density"
	"github.com/san-kum/mira/internal/dynamo"
	"github.com/san-kum/mira/internal/experiment"
	"github.com/san-kum/mira/internal/physics"
	"github.com/san-kum/mira/internal/raster"
	"github.com/san-kum/mira/internal/sim"
)

// Scenario is a scripted batch of renders.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is one render. Values are layered as defaults, preset,
// config file, then Params.
type ScenarioStep struct {
	Name      string             `yaml:"name"`
	Preset    string             `yaml:"preset"`
	Config    string             `yaml:"config"`
	Deposit   string             `yaml:"deposit"`
	Streaming *bool              `yaml:"streaming"`
	Params    map[string]float64 `yaml:"params"`
	Output    string             `yaml:"output"`
}

type StepResult struct {
	Name   string
	Output string
	Result *experiment.Result
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}

	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %s has no steps", path)
	}
	return &scenario, nil
}

// StepConfig resolves the full render configuration of a step.
func StepConfig(step ScenarioStep) (*config.Config, error) {
	cfg, err := config.Resolve(step.Preset, step.Config)
	if err != nil {
		return nil, err
	}
	if step.Deposit != "" {
		cfg.Deposit = step.Deposit
	}
	if step.Streaming != nil {
		cfg.Streaming = *step.Streaming
	}
	for k, v := range step.Params {
		if err := cfg.Set(k, v); err != nil {
			return nil, err
		}
	}
	return cfg, cfg.Validate()
}

// RunScenario renders every step in order, writing images under outDir.
// It stops at the first failing step and returns the results so far.
func RunScenario(ctx context.Context, scenario *Scenario, outDir string) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))
	log := experiment.Logger()

	for i, step := range scenario.Steps {
		name := step.Name
		if name == "" {
			name = fmt.Sprintf("step%02d", i+1)
		}
		log.Info("scenario step", "scenario", scenario.Name, "step", i+1, "of", len(scenario.Steps), "name", name)

		cfg, err := StepConfig(step)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		dopts, err := cfg.Density()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		out := step.Output
		if out == "" {
			out = name + ".png"
		}
		if !filepath.IsAbs(out) {
			out = filepath.Join(outDir, out)
		}
		format, err := raster.FormatFromPath(out)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		result, err := experiment.Render(ctx, cfg.Params(), experiment.Options{Density: dopts, Streaming: cfg.Streaming})
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		if err := raster.Save(out, result.Image, format); err != nil {
			return results, fmt.Errorf("step %d write: %w", i+1, err)
		}

		results = append(results, StepResult{Name: name, Output: out, Result: result})
	}

	return results, nil
}

// escapeRadius marks an orbit as unbounded.
const escapeRadius = 1e6

type MonteCarloConfig struct {
	Params       dynamo.Params
	Perturbation float64
	NumTrials    int
	Seed         int64
}

// MonteCarloResult describes one orbit started from a perturbed point.
type MonteCarloResult struct {
	TrialID int
	Start   dynamo.Point
	Last    dynamo.Point
	Bounds  density.Bounds
	Stable  bool
	Err     error
}

// RunMonteCarlo iterates the map from randomly perturbed start points and
// records whether each orbit stays bounded.
func RunMonteCarlo(ctx context.Context, cfg *MonteCarloConfig) ([]MonteCarloResult, error) {
	if cfg.NumTrials <= 0 {
		return nil, &dynamo.ConfigError{Field: "trials", Value: float64(cfg.NumTrials), Reason: "trial count must be positive"}
	}
	if err := cfg.Params.Validate(); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	if cfg.Seed == 0 {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	gen := sim.New(physics.NewGumowskiMiraFromParams(cfg.Params))
	results := make([]MonteCarloResult, 0, cfg.NumTrials)

	for trial := 0; trial < cfg.NumTrials; trial++ {
		start := cfg.Params.P0.Add(dynamo.Point{
			X: (rng.Float64() - 0.5) * 2 * cfg.Perturbation,
			Y: (rng.Float64() - 0.5) * 2 * cfg.Perturbation,
		})

		simCfg := sim.ConfigFromParams(cfg.Params)
		simCfg.P0 = start

		bounds := density.EmptyBounds()
		last, err := gen.RunWithCallback(ctx, simCfg, func(p dynamo.Point, _ int) bool {
			bounds.Extend(p)
			return p.Norm() < escapeRadius
		})
		if ctx.Err() != nil {
			return results, ctx.Err()
		}

		results = append(results, MonteCarloResult{
			TrialID: trial,
			Start:   start,
			Last:    last,
			Bounds:  bounds,
			Stable:  err == nil && last.Norm() < escapeRadius,
			Err:     err,
		})

		if (trial+1)%10 == 0 {
			experiment.Logger().Debug("monte carlo progress", "done", trial+1, "of", cfg.NumTrials)
		}
	}

	return results, nil
}

// MonteCarloStats counts stable and unstable trials and returns the union
// of the stable trials' bounding boxes.
func MonteCarloStats(results []MonteCarloResult) (stableCount int, unstableCount int, envelope density.Bounds) {
	envelope = density.EmptyBounds()
	for _, r := range results {
		if r.Stable {
			stableCount++
			envelope = envelope.Union(r.Bounds)
		} else {
			unstableCount++
		}
	}
	return
}

// Spread returns the largest side of a bounding box, or NaN when empty.
func Spread(b density.Bounds) float64 {
	if b.Empty() {
		return math.NaN()
	}
	return math.Max(b.Width(), b.Height())
}
