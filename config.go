package argcore

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/dialectic-ai/argcore/dung"
	"github.com/dialectic-ai/argcore/graph"
)

// Config represents a reasoner.yaml configuration file. Every field is
// optional; unset fields fall back to the documented defaults. Loaded
// configs are applied through Options().
type Config struct {
	// Semantics selects the extension semantics:
	// grounded, complete, preferred, or stable.
	Semantics string `yaml:"semantics,omitempty" json:"semantics,omitempty"`

	// BundleAggregation selects how crossing relation weights fold into a
	// bundle-level relation: sum-clamp, mean, max, or softmax.
	BundleAggregation string `yaml:"bundle_aggregation,omitempty" json:"bundle_aggregation,omitempty"`

	// GateThreshold is the warrant score above which a gate input counts
	// as satisfied.
	GateThreshold *float64 `yaml:"gate_threshold,omitempty" json:"gate_threshold,omitempty"`

	// Lambda scales the evidence term of the credibility update.
	Lambda *float64 `yaml:"lambda,omitempty" json:"lambda,omitempty"`

	// MaxIterations caps credibility update rounds.
	MaxIterations *int `yaml:"max_iterations,omitempty" json:"max_iterations,omitempty"`

	// ConvergenceEpsilon is the score delta below which propagation stops.
	ConvergenceEpsilon *float64 `yaml:"convergence_epsilon,omitempty" json:"convergence_epsilon,omitempty"`

	// DisputeMaxDepth bounds dispute tree expansion.
	DisputeMaxDepth *int `yaml:"dispute_max_depth,omitempty" json:"dispute_max_depth,omitempty"`

	// Workers sets the goroutine count for the parallel extension search.
	Workers *int `yaml:"workers,omitempty" json:"workers,omitempty"`
}

// LoadConfig reads and parses a reasoner.yaml file from the given path.
// If the path is a directory, it looks for reasoner.yaml or reasoner.yml
// in that directory.
func LoadConfig(path string) (*Config, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, NewConfigurationError("Config.Load", fmt.Errorf("stat path: %w", err))
	}

	configPath := path
	if info.IsDir() {
		yamlPath := filepath.Join(path, "reasoner.yaml")
		if _, err := os.Stat(yamlPath); err == nil {
			configPath = yamlPath
		} else {
			ymlPath := filepath.Join(path, "reasoner.yml")
			if _, err := os.Stat(ymlPath); err == nil {
				configPath = ymlPath
			} else {
				return nil, NewConfigurationError("Config.Load",
					fmt.Errorf("no reasoner.yaml or reasoner.yml found in %s", path))
			}
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, NewConfigurationError("Config.Load", fmt.Errorf("read config file: %w", err))
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, NewConfigurationError("Config.Load", fmt.Errorf("parse config file: %w", err))
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate rejects unrecognized enum values. Range checks on numeric
// fields happen when the config is applied to a Reasoner.
func (c *Config) Validate() error {
	if c.Semantics != "" && !dung.Semantics(c.Semantics).Valid() {
		return NewConfigurationError("Config.Validate",
			fmt.Errorf("semantics %q: %w", c.Semantics, ErrInvalidOption))
	}
	if c.BundleAggregation != "" && !graph.Aggregation(c.BundleAggregation).Valid() {
		return NewConfigurationError("Config.Validate",
			fmt.Errorf("bundle aggregation %q: %w", c.BundleAggregation, ErrInvalidOption))
	}
	return nil
}

// Options converts the config into functional options, skipping unset
// fields so defaults and earlier options survive.
func (c *Config) Options() []Option {
	var opts []Option
	if c.Semantics != "" {
		opts = append(opts, WithSemantics(dung.Semantics(c.Semantics)))
	}
	if c.BundleAggregation != "" {
		opts = append(opts, WithBundleAggregation(graph.Aggregation(c.BundleAggregation)))
	}
	if c.GateThreshold != nil {
		opts = append(opts, WithGateThreshold(*c.GateThreshold))
	}
	if c.Lambda != nil {
		opts = append(opts, WithLambda(*c.Lambda))
	}
	if c.MaxIterations != nil {
		opts = append(opts, WithMaxIterations(*c.MaxIterations))
	}
	if c.ConvergenceEpsilon != nil {
		opts = append(opts, WithConvergenceEpsilon(*c.ConvergenceEpsilon))
	}
	if c.DisputeMaxDepth != nil {
		opts = append(opts, WithDisputeMaxDepth(*c.DisputeMaxDepth))
	}
	if c.Workers != nil {
		opts = append(opts, WithWorkers(*c.Workers))
	}
	return opts
}
