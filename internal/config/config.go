// Package config loads the on-disk YAML configuration for a pipeline
// run.
package config

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration shape for one pipeline run.
type Config struct {
	House       HouseConfig  `yaml:"house"`
	TariffFile  string       `yaml:"tariff_file"`
	TariffName  string       `yaml:"tariff_name"`
	Constraints string       `yaml:"constraints_file"`
	Output      OutputConfig `yaml:"output"`
}

// HouseConfig locates a house's power-matrix and appliance-label
// inputs.
type HouseConfig struct {
	Name            string `yaml:"name"`
	PowerMatrixFile string `yaml:"power_matrix_file"`
	LabelsFile      string `yaml:"labels_file"`
}

// OutputConfig names the directory a pipeline run writes its CSV/JSON
// artifacts into.
type OutputConfig struct {
	Dir string `yaml:"dir"`
}

// Load reads and validates a pipeline config file.
func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads config without validating it. Useful for
// debugging or printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	if c.Output.Dir == "" {
		c.Output.Dir = "."
	}
	return &c, nil
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.House.PowerMatrixFile == "" {
		return errors.New("house.power_matrix_file is required")
	}
	if c.House.LabelsFile == "" {
		return errors.New("house.labels_file is required")
	}
	if c.TariffFile == "" {
		return errors.New("tariff_file is required")
	}
	if c.TariffName == "" {
		return errors.New("tariff_name is required")
	}
	if c.Constraints == "" {
		return errors.New("constraints_file is required")
	}
	return nil
}
