// Package config loads the YAML run configuration consumed by the engine
// (spec.md §6 "Configuration flags").
package config

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"

	"loadsim/internal/profile"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	CatalogFile string  `yaml:"catalog_file"`
	NumProfiles int     `yaml:"num_profiles"`
	DayType     []int   `yaml:"day_type"`
	PeakEnlarge float64 `yaml:"peak_enlarge"`
	Parallel    bool    `yaml:"parallel"`
	Seed        int64   `yaml:"seed"`
	Rounds      int     `yaml:"rounds"`
}

// Load reads path, defaults zero-valued fields, and validates the result.
func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if c.PeakEnlarge == 0 {
		c.PeakEnlarge = profile.DefaultPeakEnlarge
	}
	if c.Rounds == 0 {
		c.Rounds = 1
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads c from path without defaulting or validating it.
// Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate reports structural problems that make c unusable.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.CatalogFile == "" {
		return errors.New("catalog_file is required")
	}
	if c.NumProfiles <= 0 {
		return errors.New("num_profiles must be >= 1")
	}
	if len(c.DayType) == 0 {
		return errors.New("day_type is required")
	}
	if len(c.DayType) != 1 && len(c.DayType) != c.NumProfiles {
		return errors.New("day_type must have length 1 or num_profiles")
	}
	for _, dt := range c.DayType {
		if dt != 0 && dt != 1 {
			return errors.New("day_type entries must be 0 (weekday) or 1 (weekend)")
		}
	}
	if c.PeakEnlarge < 0 {
		return errors.New("peak_enlarge must be >= 0")
	}
	if c.Rounds < 0 {
		return errors.New("rounds must be >= 0")
	}
	return nil
}
