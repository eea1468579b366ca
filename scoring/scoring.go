// Package scoring turns assessment matrices into numeric quality
// scores and fitness-for-purpose tiers.
package scoring

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bdr-au/dataquality/vocabulary/dqaf"
)

// Tier labels assigned from the normalized score.
const (
	TierHigh   = "FFP1"
	TierMedium = "FFP2"
	TierLow    = "FFP3"
)

// Tier thresholds on the normalized score, inclusive lower bounds.
const (
	HighThreshold   = 0.8
	MediumThreshold = 0.5
)

// TierFor maps a normalized score to its tier label.
func TierFor(normalized float64) string {
	switch {
	case normalized >= HighThreshold:
		return TierHigh
	case normalized >= MediumThreshold:
		return TierMedium
	default:
		return TierLow
	}
}

// TierName returns the human-readable name of a tier label.
func TierName(tier string) string {
	switch tier {
	case TierHigh:
		return "High"
	case TierMedium:
		return "Medium"
	case TierLow:
		return "Low"
	}
	return tier
}

// ConfigurationError marks a scoring method whose definition does not
// line up with the assessment matrix or whose scores cannot be
// normalized. The engine aborts that method and continues with its
// siblings.
type ConfigurationError struct {
	Method string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("scoring method %q: %s", e.Method, e.Reason)
}

// Method is one scoring method: a weight per dimension label.
type Method struct {
	Name string `yaml:"name"`

	// IRI identifies the method on result nodes. Defaults to the
	// framework namespace plus the name.
	IRI string `yaml:"iri,omitempty"`

	// Weights maps dimension name to label to weight. Labels absent
	// from the map contribute nothing.
	Weights map[string]map[string]float64 `yaml:"weights"`
}

// ResolvedIRI returns the IRI to stamp on result nodes.
func (m Method) ResolvedIRI() string {
	if m.IRI != "" {
		return m.IRI
	}
	return dqaf.Namespace + "scoring/" + m.Name
}

// Columns returns the matrix columns the method references with their
// weights, sorted by column key for deterministic evaluation.
func (m Method) Columns() []WeightedColumn {
	var cols []WeightedColumn
	for dim, labels := range m.Weights {
		for label, weight := range labels {
			cols = append(cols, WeightedColumn{
				Column: dqaf.Dimension(dim).Column(label),
				Weight: weight,
			})
		}
	}
	sort.Slice(cols, func(i, j int) bool { return cols[i].Column < cols[j].Column })
	return cols
}

// WeightedColumn pairs a matrix column with its weight.
type WeightedColumn struct {
	Column string
	Weight float64
}

type methodFile struct {
	Methods []Method `yaml:"methods"`
}

// Load reads scoring methods from a YAML file.
func Load(path string) ([]Method, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scoring methods: %w", err)
	}

	var file methodFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse scoring methods: %w", err)
	}
	if len(file.Methods) == 0 {
		return nil, fmt.Errorf("scoring methods: %s defines none", path)
	}

	seen := make(map[string]bool)
	for i, m := range file.Methods {
		if strings.TrimSpace(m.Name) == "" {
			return nil, fmt.Errorf("scoring methods: entry %d has no name", i)
		}
		if seen[m.Name] {
			return nil, fmt.Errorf("scoring methods: duplicate name %q", m.Name)
		}
		seen[m.Name] = true
		if len(m.Weights) == 0 {
			return nil, fmt.Errorf("scoring method %q has no weights", m.Name)
		}
	}
	return file.Methods, nil
}
