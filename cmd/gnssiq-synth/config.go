package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is gnssiq-synth's run configuration, loadable from a YAML file
// and overridable by command-line flags.
type Config struct {
	Scenario   string  `yaml:"scenario"`
	Output     string  `yaml:"output"`
	OutputRate float64 `yaml:"output_rate"`
	Duration   float64 `yaml:"duration"`
	K          int     `yaml:"oversample_ratio"`
	FilterOrder int    `yaml:"filter_order"`
	Alpha      float64 `yaml:"alpha"`
	Format     string  `yaml:"format"` // "int16" or "float32"
	ScaleDB    float64 `yaml:"scale_db"`
	Compress   bool    `yaml:"compress"`
	MetricsAddr string `yaml:"metrics_addr"`
	Seed       uint64  `yaml:"seed"`
}

// LoadConfig reads a YAML configuration file at path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("gnssiq-synth: reading config %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("gnssiq-synth: parsing config %s: %w", path, err)
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.OutputRate == 0 {
		c.OutputRate = 4.092e6
	}
	if c.K == 0 {
		c.K = 4
	}
	if c.FilterOrder == 0 {
		c.FilterOrder = 60
	}
	if c.Alpha == 0 {
		c.Alpha = 1.0
	}
	if c.Format == "" {
		c.Format = "int16"
	}
	if c.Duration == 0 {
		c.Duration = 1.0
	}
}

func (c *Config) validate() error {
	if c.Scenario == "" {
		return fmt.Errorf("gnssiq-synth: --scenario is required")
	}
	if c.Output == "" {
		return fmt.Errorf("gnssiq-synth: --output is required")
	}
	if c.Format != "int16" && c.Format != "float32" {
		return fmt.Errorf("gnssiq-synth: format must be int16 or float32, got %q", c.Format)
	}
	return nil
}
