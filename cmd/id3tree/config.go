package main

import (
	"os"

	yaml "gopkg.in/yaml.v2"

	"github.com/YuminosukeSato/id3tree/pkg/errors"
	"github.com/YuminosukeSato/id3tree/pkg/log"
	"github.com/YuminosukeSato/id3tree/preprocessing"
)

// Config is the YAML configuration shared by grow and gains.
type Config struct {
	Data        string      `yaml:"data"`
	Table       string      `yaml:"table"`
	IndexColumn bool        `yaml:"index_column"`
	Label       string      `yaml:"label"`
	Drop        []string    `yaml:"drop"`
	Bins        []BinConfig `yaml:"bins"`
	Split       SplitConfig `yaml:"split"`
	Tree        TreeConfig  `yaml:"tree"`
	LogLevel    string      `yaml:"log_level"`
}

// BinConfig bins one numeric column, either with fixed edges or with edges
// learned from the training rows.
type BinConfig struct {
	Column   string    `yaml:"column"`
	Edges    []float64 `yaml:"edges"`
	Labels   []string  `yaml:"labels"`
	Right    bool      `yaml:"right"`
	NBins    int       `yaml:"n_bins"`
	Strategy string    `yaml:"strategy"`
}

// SplitConfig controls the holdout set. A zero TestSize trains on every row.
type SplitConfig struct {
	TestSize float64 `yaml:"test_size"`
	Seed     int64   `yaml:"seed"`
}

// TreeConfig holds the classifier hyperparameters.
type TreeConfig struct {
	AttributeReuse bool `yaml:"attribute_reuse"`
	NJobs          int  `yaml:"n_jobs"`
}

func defaultConfig() *Config {
	return &Config{
		Split: SplitConfig{Seed: 42},
		Tree:  TreeConfig{NJobs: 1},
	}
}

// LoadConfig reads and validates the YAML file at path.
func LoadConfig(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading config %s", path)
	}
	return ParseConfig(raw)
}

// ParseConfig parses and validates YAML configuration.
func ParseConfig(raw []byte) (*Config, error) {
	cfg := defaultConfig()
	if err := yaml.UnmarshalStrict(raw, cfg); err != nil {
		return nil, errors.Wrap(err, "parsing config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting as a ValidationError.
func (c *Config) Validate() error {
	if c.Label == "" {
		return errors.NewValidationError("label", "is required", c.Label)
	}
	for _, d := range c.Drop {
		if d == c.Label {
			return errors.NewValidationError("drop", "cannot drop the label column", d)
		}
	}
	seen := map[string]bool{}
	for _, b := range c.Bins {
		if b.Column == "" {
			return errors.NewValidationError("bins.column", "is required", b.Column)
		}
		if seen[b.Column] {
			return errors.NewValidationError("bins.column", "binned twice", b.Column)
		}
		seen[b.Column] = true
		switch {
		case len(b.Edges) > 0 && b.NBins > 0:
			return errors.NewValidationError("bins", "set either edges or n_bins, not both", b.Column)
		case len(b.Edges) > 0:
			if err := b.fixed().Validate(); err != nil {
				return err
			}
		case b.NBins < 2:
			return errors.NewValidationError("bins.n_bins", "must be at least 2 when no edges are given", b.NBins)
		}
	}
	if c.Split.TestSize < 0 || c.Split.TestSize >= 1 {
		return errors.NewValidationError("split.test_size", "must be in [0, 1)", c.Split.TestSize)
	}
	if _, err := log.ToLogLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

func (b BinConfig) fixed() preprocessing.Bins {
	return preprocessing.Bins{Edges: b.Edges, Labels: b.Labels, Right: b.Right}
}
