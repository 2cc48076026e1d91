package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/odestep/internal/ode"
)

const (
	DefaultProblem  = "cubic_forced"
	DefaultMethod   = "rk4"
	DefaultStart    = 0.0
	DefaultStop     = 5.0
	DefaultPoints   = 10
	DefaultLogLevel = "info"
)

type Config struct {
	Problem  string  `yaml:"problem"`
	Method   string  `yaml:"method"`
	Start    float64 `yaml:"start"`
	Stop     float64 `yaml:"stop"`
	Points   int     `yaml:"points"`
	X0       float64 `yaml:"x0"`
	LogLevel string  `yaml:"log_level"`
}

func DefaultConfig() *Config {
	return &Config{
		Problem:  DefaultProblem,
		Method:   DefaultMethod,
		Start:    DefaultStart,
		Stop:     DefaultStop,
		Points:   DefaultPoints,
		LogLevel: DefaultLogLevel,
	}
}

func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads path on top of a copy of base, so keys missing from the
// file keep the values of base.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := *base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the method name and that the grid yields at least one step.
func (c *Config) Validate() error {
	if _, err := ode.Lookup(c.Method); err != nil {
		return err
	}
	if c.Points < 2 {
		return fmt.Errorf("points must be at least 2, got %d: %w", c.Points, ode.ErrShortGrid)
	}
	if c.Stop <= c.Start {
		return fmt.Errorf("stop (%g) must be greater than start (%g)", c.Stop, c.Start)
	}
	return nil
}

// Grid returns the uniform time grid described by the config.
func (c *Config) Grid() []float64 {
	return ode.Linspace(c.Start, c.Stop, c.Points)
}
