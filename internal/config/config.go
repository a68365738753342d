package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sebastiengilbert73/auto-pde/internal/solver"
)

const (
	DefaultServer   = "http://localhost:5000"
	DefaultEquation = "ut - uxx - uyy"
	DefaultIC       = "sin(x)*sin(y)"
	DefaultXMax     = 3.14159
	DefaultYMax     = 3.14159
	DefaultTMax     = 1.0
	DefaultNX       = 20
	DefaultNY       = 20
	DefaultDt       = 0.001
)

type Config struct {
	Server   string       `yaml:"server"`
	Equation string       `yaml:"equation"`
	IC       string       `yaml:"ic"`
	Domain   DomainConfig `yaml:"domain"`
}

type DomainConfig struct {
	XMin float64 `yaml:"x_min"`
	XMax float64 `yaml:"x_max"`
	YMin float64 `yaml:"y_min"`
	YMax float64 `yaml:"y_max"`
	TMax float64 `yaml:"t_max"`
	NX   int     `yaml:"nx"`
	NY   int     `yaml:"ny"`
	Dt   float64 `yaml:"dt"`
}

func DefaultConfig() *Config {
	return &Config{
		Server:   DefaultServer,
		Equation: DefaultEquation,
		IC:       DefaultIC,
		Domain: DomainConfig{
			XMax: DefaultXMax,
			YMax: DefaultYMax,
			TMax: DefaultTMax,
			NX:   DefaultNX,
			NY:   DefaultNY,
			Dt:   DefaultDt,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Request maps the config onto the solver's wire format.
func (c *Config) Request() solver.Request {
	return solver.Request{
		Equation: c.Equation,
		IC:       c.IC,
		Domain: solver.Domain{
			XMin: c.Domain.XMin,
			XMax: c.Domain.XMax,
			YMin: c.Domain.YMin,
			YMax: c.Domain.YMax,
			TMax: c.Domain.TMax,
			NX:   c.Domain.NX,
			NY:   c.Domain.NY,
			Dt:   c.Domain.Dt,
		},
	}
}
