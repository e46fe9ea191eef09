// Package config loads skew search parameters from a YAML file for the
// command-line tool. Omitted fields keep their defaults.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/scandoc/deskew/internal/skew"
)

// Params is the on-disk form of a search configuration. A zero value for
// any field other than sweep_center means "use the default".
type Params struct {
	SweepReduction  int     `yaml:"sweep_reduction"`
	SearchReduction int     `yaml:"search_reduction"`
	SweepCenter     float64 `yaml:"sweep_center"`
	SweepRange      float64 `yaml:"sweep_range"`
	SweepDelta      float64 `yaml:"sweep_delta"`
	MinRefineDelta  float64 `yaml:"min_refine_delta"`
}

// Load reads a YAML parameter file and returns a validated search
// configuration, with defaults filled in for omitted fields.
func Load(path string) (skew.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return skew.Config{}, fmt.Errorf("config file not found: %s", path)
		}
		return skew.Config{}, fmt.Errorf("reading config file: %w", err)
	}

	var p Params
	if err := yaml.Unmarshal(data, &p); err != nil {
		return skew.Config{}, fmt.Errorf("parsing config YAML: %w", err)
	}
	return p.ToConfig()
}

// ToConfig applies defaults to unset fields and validates the result.
func (p Params) ToConfig() (skew.Config, error) {
	cfg := skew.DefaultConfig()
	if p.SweepReduction != 0 {
		cfg.SweepReduction = p.SweepReduction
	}
	if p.SearchReduction != 0 {
		cfg.SearchReduction = p.SearchReduction
	}
	cfg.SweepCenter = p.SweepCenter
	if p.SweepRange != 0 {
		cfg.SweepRange = p.SweepRange
	}
	if p.SweepDelta != 0 {
		cfg.SweepDelta = p.SweepDelta
	}
	if p.MinRefineDelta != 0 {
		cfg.MinRefineDelta = p.MinRefineDelta
	}
	if err := cfg.Validate(); err != nil {
		return skew.Config{}, err
	}
	return cfg, nil
}
