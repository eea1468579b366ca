// Package config provides configuration loading and management for bdrdq.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the complete bdrdq configuration
type Config struct {
	Assessment AssessmentConfig `yaml:"assessment"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Output     OutputConfig     `yaml:"output"`
	NATS       NATSConfig       `yaml:"nats"`
}

// AssessmentConfig configures the assessment run
type AssessmentConfig struct {
	// RecencyWindowYears is the rolling window separating recent from
	// outdated observation dates (default: 20)
	RecencyWindowYears int `yaml:"recency_window_years"`
	// BoundariesPath is the GeoJSON file with state boundary polygons
	// (empty = skip the state-location dimension)
	BoundariesPath string `yaml:"boundaries_path"`
}

// ScoringConfig configures use-case evaluation and scoring
type ScoringConfig struct {
	// UseCasesPath is the YAML file defining data use cases (optional)
	UseCasesPath string `yaml:"use_cases_path"`
	// MethodsPath is the YAML file defining scoring methods (optional)
	MethodsPath string `yaml:"methods_path"`
}

// OutputConfig configures where and how results are written
type OutputConfig struct {
	// Dir is the directory results are written into (default: ".")
	Dir string `yaml:"dir"`
	// Format is the RDF serialization: turtle, ntriples, or jsonld
	Format string `yaml:"format"`
}

// NATSConfig configures the optional knowledge-graph publishing
type NATSConfig struct {
	// URL is the NATS server URL (empty = publishing disabled)
	URL string `yaml:"url"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Assessment: AssessmentConfig{
			RecencyWindowYears: 20,
			BoundariesPath:     "",
		},
		Scoring: ScoringConfig{},
		Output: OutputConfig{
			Dir:    ".",
			Format: "turtle",
		},
		NATS: NATSConfig{
			URL: "", // Publishing disabled
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Assessment.RecencyWindowYears <= 0 {
		return fmt.Errorf("assessment.recency_window_years must be positive")
	}
	switch c.Output.Format {
	case "turtle", "ntriples", "jsonld":
	default:
		return fmt.Errorf("output.format must be turtle, ntriples, or jsonld")
	}
	if c.Output.Dir == "" {
		return fmt.Errorf("output.dir is required")
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	// Ensure parent directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	// Assessment
	if other.Assessment.RecencyWindowYears != 0 {
		c.Assessment.RecencyWindowYears = other.Assessment.RecencyWindowYears
	}
	if other.Assessment.BoundariesPath != "" {
		c.Assessment.BoundariesPath = other.Assessment.BoundariesPath
	}

	// Scoring
	if other.Scoring.UseCasesPath != "" {
		c.Scoring.UseCasesPath = other.Scoring.UseCasesPath
	}
	if other.Scoring.MethodsPath != "" {
		c.Scoring.MethodsPath = other.Scoring.MethodsPath
	}

	// Output
	if other.Output.Dir != "" {
		c.Output.Dir = other.Output.Dir
	}
	if other.Output.Format != "" {
		c.Output.Format = other.Output.Format
	}

	// NATS
	if other.NATS.URL != "" {
		c.NATS.URL = other.NATS.URL
	}
}
