package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/mira/internal/metrics"
	"github.com/san-kum/mira/internal/sim"
)

type Registry struct {
	metrics map[string]func() sim.Metric
}

func NewRegistry() *Registry {
	r := &Registry{
		metrics: make(map[string]func() sim.Metric),
	}

	r.metrics["mean_radius"] = func() sim.Metric { return metrics.NewMeanRadius() }
	r.metrics["max_radius"] = func() sim.Metric { return metrics.NewMaxRadius() }
	r.metrics["mean_step"] = func() sim.Metric { return metrics.NewStepSize() }

	return r
}

func (r *Registry) GetMetric(name string) (sim.Metric, error) {
	fn, ok := r.metrics[name]
	if !ok {
		return nil, fmt.Errorf("unknown metric: %s", name)
	}
	return fn(), nil
}

// GetMetrics resolves a list of names, failing on the first unknown one.
func (r *Registry) GetMetrics(names []string) ([]sim.Metric, error) {
	out := make([]sim.Metric, 0, len(names))
	for _, name := range names {
		m, err := r.GetMetric(name)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func (r *Registry) ListMetrics() []string {
	names := make([]string, 0, len(r.metrics))
	for name := range r.metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) DefaultMetrics() []sim.Metric {
	return []sim.Metric{
		metrics.NewMeanRadius(),
		metrics.NewMaxRadius(),
	}
}
