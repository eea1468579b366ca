package export

import (
	"time"

	"github.com/c360studio/semstreams/message"

	"github.com/bdr-au/dataquality/vocabulary/dqaf"
)

// VocabSource tags triples produced by the vocabulary export.
const VocabSource = "bdrdq.vocab"

// VocabTriples renders the assessment vocabulary as SKOS triples. Each
// dimension becomes a concept scheme and each label a concept inside
// it, carrying its prefLabel and definition.
func VocabTriples(reg *dqaf.Registry) []message.Triple {
	now := time.Now()
	add := func(out []message.Triple, s, p string, o any) []message.Triple {
		return append(out, message.Triple{
			Subject:    s,
			Predicate:  p,
			Object:     o,
			Source:     VocabSource,
			Timestamp:  now,
			Confidence: 1.0,
		})
	}

	var out []message.Triple
	for _, dim := range reg.Dimensions() {
		scheme := dim.Namespace
		out = add(out, scheme, dqaf.ObsMetaType, dqaf.SkosConceptScheme)
		out = add(out, scheme, dqaf.SkosPrefLabel, string(dim.Name))

		for _, label := range dim.Labels {
			concept := dim.Namespace + label.Name
			out = add(out, concept, dqaf.ObsMetaType, dqaf.SkosConcept)
			out = add(out, concept, dqaf.SkosPrefLabel, label.Name)
			out = add(out, concept, dqaf.SkosDefinition, label.Definition)
			out = add(out, concept, dqaf.SkosInScheme, scheme)
		}
	}
	return out
}

// ExportVocab serializes the assessment vocabulary in the given format.
func ExportVocab(reg *dqaf.Registry, format Format) (string, error) {
	exp := NewRDFExporter()
	exp.AddTriples(VocabTriples(reg))
	return exp.Export(format)
}
