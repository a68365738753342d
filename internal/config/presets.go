package config

import "sort"

// Presets are ready-made solve requests for common problems, written in the
// solver service's implicit equation language: the left-hand side of
// F(u, ut, utt, ux, uy, uxx, uyy) = 0.
var Presets = map[string]*Config{
	"heat": {
		Equation: "ut - uxx - uyy",
		IC:       "sin(x)*sin(y)",
		Domain:   DomainConfig{XMax: 3.14159, YMax: 3.14159, TMax: 1.0, NX: 20, NY: 20, Dt: 0.001},
	},
	"heat-fine": {
		Equation: "ut - uxx - uyy",
		IC:       "sin(x)*sin(y)",
		Domain:   DomainConfig{XMax: 3.14159, YMax: 3.14159, TMax: 1.0, NX: 40, NY: 40, Dt: 0.0005},
	},
	"wave": {
		Equation: "utt - uxx - uyy",
		IC:       "sin(x)*sin(y)",
		Domain:   DomainConfig{XMax: 3.14159, YMax: 3.14159, TMax: 2.0, NX: 20, NY: 20, Dt: 0.001},
	},
	"wave-damped": {
		Equation: "utt - uxx - uyy + 0.5*ut",
		IC:       "sin(x)*sin(y)",
		Domain:   DomainConfig{XMax: 3.14159, YMax: 3.14159, TMax: 4.0, NX: 20, NY: 20, Dt: 0.001},
	},
	"pulse": {
		Equation: "ut - uxx - uyy",
		IC:       "exp(-4*((x-1.57)**2 + (y-1.57)**2))",
		Domain:   DomainConfig{XMax: 3.14159, YMax: 3.14159, TMax: 0.5, NX: 30, NY: 30, Dt: 0.0005},
	},
}

// GetPreset returns a copy of the named preset with defaults filled in, or
// nil when the name is unknown.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	if cfg.Server == "" {
		cfg.Server = DefaultServer
	}
	if cfg.IC == "" {
		cfg.IC = DefaultIC
	}
	return &cfg
}

// ListPresets returns the preset names, sorted.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
