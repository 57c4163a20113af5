package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/mira/internal/density"
	"github.com/san-kum/mira/internal/dynamo"
)

const (
	DefaultW       = 2000
	DefaultP0X     = 5.0
	DefaultP0Y     = 0.0
	DefaultPre     = 1000
	DefaultRep     = 1000 * 1000
	DefaultAlpha   = 0.008
	DefaultSigma   = 0.05
	DefaultMu      = -0.496
	DefaultPow     = 0.2
	DefaultDeposit = "bilinear"
)

// Config is the on-disk form of a render. Keys missing from a file keep
// their defaults.
type Config struct {
	W     int     `json:"w" yaml:"w"`
	P0X   float64 `json:"p0x" yaml:"p0x"`
	P0Y   float64 `json:"p0y" yaml:"p0y"`
	Pre   int     `json:"pre" yaml:"pre"`
	Rep   int     `json:"rep" yaml:"rep"`
	Alpha float64 `json:"alpha" yaml:"alpha"`
	Sigma float64 `json:"sigma" yaml:"sigma"`
	Mu    float64 `json:"mu" yaml:"mu"`
	Pow   float64 `json:"pow" yaml:"pow"`

	Margin    float64 `json:"margin" yaml:"margin"`
	Deposit   string  `json:"deposit" yaml:"deposit"`
	Workers   int     `json:"workers" yaml:"workers"`
	Streaming bool    `json:"streaming" yaml:"streaming"`
}

func DefaultConfig() *Config {
	return &Config{
		W:       DefaultW,
		P0X:     DefaultP0X,
		P0Y:     DefaultP0Y,
		Pre:     DefaultPre,
		Rep:     DefaultRep,
		Alpha:   DefaultAlpha,
		Sigma:   DefaultSigma,
		Mu:      DefaultMu,
		Pow:     DefaultPow,
		Margin:  density.DefaultMargin,
		Deposit: DefaultDeposit,
		Workers: 1,
	}
}

// Load reads a JSON or YAML file on top of the defaults. The format is
// chosen by extension; anything other than .yaml/.yml is read as JSON.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := LoadInto(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadInto decodes a file onto cfg. Keys missing from the file keep the
// values cfg already holds.
func LoadInto(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if isYAML(path) {
		err = yaml.Unmarshal(data, cfg)
	} else {
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

// Resolve layers the defaults, the named preset and the file at path, in
// that order. Empty preset or path skip their layer.
func Resolve(preset, path string) (*Config, error) {
	cfg := DefaultConfig()
	if preset != "" {
		cfg = GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, ListPresets())
		}
	}
	if path != "" {
		if err := LoadInto(path, cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(cfg)
	} else {
		data, err = json.MarshalIndent(cfg, "", "  ")
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// Params converts the file form into core render parameters.
func (c *Config) Params() dynamo.Params {
	return dynamo.Params{
		W:   c.W,
		P0:  dynamo.Point{X: c.P0X, Y: c.P0Y},
		Pre: c.Pre,
		Rep: c.Rep,
		A:   c.Alpha,
		S:   c.Sigma,
		Mu:  c.Mu,
		Pow: c.Pow,
	}
}

// Density returns the accumulation options.
func (c *Config) Density() (density.Options, error) {
	policy, err := density.ParsePolicy(c.Deposit)
	if err != nil {
		return density.Options{}, &dynamo.ConfigError{Field: "deposit", Value: 0, Reason: err.Error()}
	}
	workers := c.Workers
	if workers < 1 {
		workers = 1
	}
	return density.Options{Policy: policy, Margin: c.Margin, Workers: workers}, nil
}

func (c *Config) Validate() error {
	if err := c.Params().Validate(); err != nil {
		return err
	}
	opts, err := c.Density()
	if err != nil {
		return err
	}
	if math.IsNaN(opts.Margin) || math.IsInf(opts.Margin, 0) || opts.Margin < 1 {
		return &dynamo.ConfigError{Field: "margin", Value: opts.Margin, Reason: "margin factor must be at least 1"}
	}
	return nil
}

// Set assigns a numeric field by its file key. Integer fields reject
// fractional or out-of-range values.
func (c *Config) Set(key string, v float64) error {
	switch key {
	case "w", "pre", "rep", "workers":
		n, err := toInt(key, v)
		if err != nil {
			return err
		}
		switch key {
		case "w":
			c.W = n
		case "pre":
			c.Pre = n
		case "rep":
			c.Rep = n
		case "workers":
			c.Workers = n
		}
	case "p0x":
		c.P0X = v
	case "p0y":
		c.P0Y = v
	case "alpha":
		c.Alpha = v
	case "sigma":
		c.Sigma = v
	case "mu":
		c.Mu = v
	case "pow":
		c.Pow = v
	case "margin":
		c.Margin = v
	default:
		return fmt.Errorf("config: unknown numeric key %q", key)
	}
	return nil
}

func toInt(key string, v float64) (int, error) {
	if v != math.Trunc(v) || math.IsInf(v, 0) {
		return 0, &dynamo.ConfigError{Field: key, Value: v, Reason: "value must be an integer"}
	}
	if v < math.MinInt32 || v > math.MaxInt32 {
		return 0, &dynamo.ConfigError{Field: key, Value: v, Reason: "value out of range"}
	}
	return int(v), nil
}
