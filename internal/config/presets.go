package config

import "sort"

var Presets = map[string]*Config{
	// Full-size poster render.
	"classic": {
		W: 2500, P0X: 5, P0Y: 0, Pre: 1000, Rep: 100000000,
		Alpha: 0.008, Sigma: 0.05, Mu: -0.496, Pow: 0.2,
		Margin: 1.1, Deposit: "bilinear", Workers: 1, Streaming: true,
	},
	"json": {
		W: 2000, P0X: 5, P0Y: 0, Pre: 1000, Rep: 1000000,
		Alpha: 0.008, Sigma: 0.05, Mu: -0.496, Pow: 0.2,
		Margin: 1.1, Deposit: "bilinear", Workers: 1,
	},
	"preview": {
		W: 500, P0X: 5, P0Y: 0, Pre: 100, Rep: 1000000,
		Alpha: 0.008, Sigma: 0.05, Mu: -0.496, Pow: 0.1,
		Margin: 1.1, Deposit: "bilinear", Workers: 1,
	},
	"soft": {
		W: 1500, P0X: 5, P0Y: 0, Pre: 1000, Rep: 10000000,
		Alpha: 0.008, Sigma: 0.05, Mu: -0.496, Pow: 0.1,
		Margin: 1.1, Deposit: "bilinear", Workers: 1,
	},
	"nearest": {
		W: 1000, P0X: 5, P0Y: 0, Pre: 1000, Rep: 10000000,
		Alpha: 0.008, Sigma: 0.05, Mu: -0.496, Pow: 0.2,
		Margin: 1.0, Deposit: "nearest", Workers: 1,
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
