// Package usecase evaluates whether assessed observations satisfy
// named data use cases.
//
// A use case names, per dimension, the labels it accepts. An
// observation satisfies the use case when every constrained dimension
// produced one of the accepted labels.
package usecase

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bdr-au/dataquality/vocabulary/dqaf"
)

// ConfigurationError marks a use case whose definition does not line
// up with the assessment matrix. The evaluator aborts that use case
// and continues with its siblings.
type ConfigurationError struct {
	UseCase string
	Reason  string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("use case %q: %s", e.UseCase, e.Reason)
}

// Definition is one use case: the accepted labels per dimension.
type Definition struct {
	Name string `yaml:"name"`

	// IRI identifies the use case on result nodes. Defaults to the
	// framework namespace plus the name.
	IRI string `yaml:"iri,omitempty"`

	// Required maps dimension names to accepted labels. A dimension
	// absent from the map is unconstrained.
	Required map[string][]string `yaml:"required"`
}

// Columns returns the matrix columns the definition references, in
// sorted order.
func (d Definition) Columns() []string {
	var cols []string
	for dim, labels := range d.Required {
		for _, label := range labels {
			cols = append(cols, dqaf.Dimension(dim).Column(label))
		}
	}
	sort.Strings(cols)
	return cols
}

// ResolvedIRI returns the IRI to stamp on result nodes.
func (d Definition) ResolvedIRI() string {
	if d.IRI != "" {
		return d.IRI
	}
	return dqaf.Namespace + "usecase/" + d.Name
}

type definitionFile struct {
	UseCases []Definition `yaml:"use_cases"`
}

// Load reads use-case definitions from a YAML file.
func Load(path string) ([]Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read use cases: %w", err)
	}

	var file definitionFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse use cases: %w", err)
	}
	if len(file.UseCases) == 0 {
		return nil, fmt.Errorf("use cases: %s defines none", path)
	}

	seen := make(map[string]bool)
	for i, def := range file.UseCases {
		if strings.TrimSpace(def.Name) == "" {
			return nil, fmt.Errorf("use cases: entry %d has no name", i)
		}
		if seen[def.Name] {
			return nil, fmt.Errorf("use cases: duplicate name %q", def.Name)
		}
		seen[def.Name] = true
		if len(def.Required) == 0 {
			return nil, fmt.Errorf("use case %q constrains no dimensions", def.Name)
		}
	}
	return file.UseCases, nil
}
