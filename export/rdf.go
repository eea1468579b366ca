// Package export serializes triple graphs to Turtle, N-Triples, and
// JSON-LD, and renders the assessment vocabulary as SKOS.
package export

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/c360studio/semstreams/message"

	"github.com/bdr-au/dataquality/vocabulary/dqaf"
)

// Format specifies the output serialization format.
type Format string

const (
	// FormatTurtle produces Turtle (.ttl) output.
	FormatTurtle Format = "turtle"

	// FormatNTriples produces N-Triples (.nt) output.
	FormatNTriples Format = "ntriples"

	// FormatJSONLD produces JSON-LD (.jsonld) output.
	FormatJSONLD Format = "jsonld"
)

// RDFExporter serializes triples, grouping them by subject in
// first-seen order.
type RDFExporter struct {
	triples  []message.Triple
	prefixes map[string]string
}

// NewRDFExporter creates an exporter with the default prefixes.
func NewRDFExporter() *RDFExporter {
	return &RDFExporter{
		prefixes: defaultPrefixes(),
	}
}

// defaultPrefixes returns the standard namespace prefixes for RDF export.
func defaultPrefixes() map[string]string {
	return map[string]string{
		"rdf":    "http://www.w3.org/1999/02/22-rdf-syntax-ns#",
		"rdfs":   "http://www.w3.org/2000/01/rdf-schema#",
		"xsd":    "http://www.w3.org/2001/XMLSchema#",
		"skos":   "http://www.w3.org/2004/02/skos/core#",
		"sosa":   "http://www.w3.org/ns/sosa/",
		"geo":    "http://www.opengis.net/ont/geosparql#",
		"schema": "https://schema.org/",
		"dwc":    "http://rs.tdwg.org/dwc/terms/",
		"tern":   "https://w3id.org/tern/ontologies/tern/",
		"dqaf":   dqaf.Namespace,
	}
}

// SetPrefix sets a namespace prefix.
func (e *RDFExporter) SetPrefix(prefix, iri string) {
	e.prefixes[prefix] = iri
}

// AddTriples appends triples to be exported.
func (e *RDFExporter) AddTriples(triples []message.Triple) {
	e.triples = append(e.triples, triples...)
}

// Export serializes all triples to the specified format.
func (e *RDFExporter) Export(format Format) (string, error) {
	switch format {
	case FormatTurtle:
		return e.toTurtle(), nil
	case FormatNTriples:
		return e.toNTriples(), nil
	case FormatJSONLD:
		return e.toJSONLD(), nil
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

// subjectGroups returns subjects in first-seen order with their triples
// in insertion order.
func (e *RDFExporter) subjectGroups() ([]string, map[string][]message.Triple) {
	var order []string
	groups := make(map[string][]message.Triple)
	for _, t := range e.triples {
		if _, ok := groups[t.Subject]; !ok {
			order = append(order, t.Subject)
		}
		groups[t.Subject] = append(groups[t.Subject], t)
	}
	return order, groups
}

// toTurtle serializes to Turtle format.
func (e *RDFExporter) toTurtle() string {
	var sb strings.Builder

	// Sort prefixes for consistent output
	keys := make([]string, 0, len(e.prefixes))
	for k := range e.prefixes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, prefix := range keys {
		sb.WriteString(fmt.Sprintf("@prefix %s: <%s> .\n", prefix, e.prefixes[prefix]))
	}
	sb.WriteString("\n")

	order, groups := e.subjectGroups()
	for _, subject := range order {
		triples := groups[subject]
		sb.WriteString(fmt.Sprintf("<%s>\n", subject))
		for i, t := range triples {
			sb.WriteString(fmt.Sprintf("    <%s> %s", dqaf.IRIFor(t.Predicate), formatObject(t.Object)))
			if i < len(triples)-1 {
				sb.WriteString(" ;\n")
			} else {
				sb.WriteString(" .\n")
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// toNTriples serializes to N-Triples format.
func (e *RDFExporter) toNTriples() string {
	var sb strings.Builder
	for _, t := range e.triples {
		sb.WriteString(fmt.Sprintf("<%s> <%s> %s .\n",
			t.Subject, dqaf.IRIFor(t.Predicate), formatObjectNTriples(t.Object)))
	}
	return sb.String()
}

// toJSONLD serializes to JSON-LD format.
func (e *RDFExporter) toJSONLD() string {
	var sb strings.Builder

	sb.WriteString("{\n")
	sb.WriteString("  \"@context\": {\n")

	keys := make([]string, 0, len(e.prefixes))
	for k := range e.prefixes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for i, prefix := range keys {
		sb.WriteString(fmt.Sprintf("    %q: %q", prefix, e.prefixes[prefix]))
		if i < len(keys)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("  },\n")
	sb.WriteString("  \"@graph\": [\n")

	order, groups := e.subjectGroups()
	for i, subject := range order {
		sb.WriteString("    {\n")
		sb.WriteString(fmt.Sprintf("      \"@id\": %q", subject))
		for _, t := range groups[subject] {
			sb.WriteString(",\n")
			sb.WriteString(fmt.Sprintf("      %q: %s", dqaf.IRIFor(t.Predicate), formatObjectJSONLD(t.Object)))
		}
		sb.WriteString("\n    }")
		if i < len(order)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}

	sb.WriteString("  ]\n")
	sb.WriteString("}\n")

	return sb.String()
}

// formatObject formats an object value for Turtle output.
func formatObject(obj any) string {
	switch v := obj.(type) {
	case string:
		if strings.HasPrefix(v, "http://") || strings.HasPrefix(v, "https://") {
			return fmt.Sprintf("<%s>", v)
		}
		if _, err := time.Parse(time.RFC3339, v); err == nil {
			return fmt.Sprintf("\"%s\"^^xsd:dateTime", v)
		}
		return fmt.Sprintf("\"%s\"", escapeString(v))
	case int, int32, int64:
		return fmt.Sprintf("\"%d\"^^xsd:integer", v)
	case float32, float64:
		return fmt.Sprintf("\"%v\"^^xsd:decimal", v)
	case bool:
		return fmt.Sprintf("\"%t\"^^xsd:boolean", v)
	default:
		return fmt.Sprintf("\"%v\"", v)
	}
}

// formatObjectNTriples formats an object value for N-Triples output.
func formatObjectNTriples(obj any) string {
	switch v := obj.(type) {
	case string:
		if strings.HasPrefix(v, "http://") || strings.HasPrefix(v, "https://") {
			return fmt.Sprintf("<%s>", v)
		}
		if _, err := time.Parse(time.RFC3339, v); err == nil {
			return fmt.Sprintf("\"%s\"^^<http://www.w3.org/2001/XMLSchema#dateTime>", v)
		}
		return fmt.Sprintf("\"%s\"", escapeString(v))
	case int, int32, int64:
		return fmt.Sprintf("\"%d\"^^<http://www.w3.org/2001/XMLSchema#integer>", v)
	case float32, float64:
		return fmt.Sprintf("\"%v\"^^<http://www.w3.org/2001/XMLSchema#decimal>", v)
	case bool:
		return fmt.Sprintf("\"%t\"^^<http://www.w3.org/2001/XMLSchema#boolean>", v)
	default:
		return fmt.Sprintf("\"%v\"", v)
	}
}

// formatObjectJSONLD formats an object value for JSON-LD output.
func formatObjectJSONLD(obj any) string {
	switch v := obj.(type) {
	case string:
		if strings.HasPrefix(v, "http://") || strings.HasPrefix(v, "https://") {
			return fmt.Sprintf("{\"@id\": %q}", v)
		}
		if _, err := time.Parse(time.RFC3339, v); err == nil {
			return fmt.Sprintf("{\"@value\": %q, \"@type\": \"xsd:dateTime\"}", v)
		}
		return fmt.Sprintf("\"%s\"", escapeString(v))
	case int, int32, int64:
		return fmt.Sprintf("%d", v)
	case float32, float64:
		return fmt.Sprintf("%v", v)
	case bool:
		return fmt.Sprintf("%t", v)
	default:
		return fmt.Sprintf("%q", fmt.Sprintf("%v", v))
	}
}

// escapeString escapes special characters in strings for RDF serialization.
func escapeString(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	s = strings.ReplaceAll(s, "\n", "\\n")
	s = strings.ReplaceAll(s, "\r", "\\r")
	s = strings.ReplaceAll(s, "\t", "\\t")
	return s
}
