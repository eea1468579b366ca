package dqaf

import (
	"strings"

	"github.com/c360studio/semstreams/vocabulary"
)

// Observation input predicates. These are the dotted names the graph
// loader maps input IRIs onto; classifiers read them, never raw IRIs.
const (
	// ObsGeometryWKT is the well-known-text point literal of an observation.
	ObsGeometryWKT = "obs.geometry.wkt"

	// ObsGeometryDatum is the spatial-reference-system link of the geometry.
	ObsGeometryDatum = "obs.geometry.datum"

	// ObsGeometryNode links an observation to a separate geometry node.
	ObsGeometryNode = "obs.geometry.node"

	// ObsFeatureOfInterest links an observation to its sampled feature.
	ObsFeatureOfInterest = "obs.sample.feature_of_interest"

	// ObsSampleResultOf links a sample to its sampling procedure, which
	// carries the geometry in TERN-shaped inputs.
	ObsSampleResultOf = "obs.sample.result_of"

	// ObsTimePhenomenon is the phenomenon-time literal of an observation.
	ObsTimePhenomenon = "obs.time.phenomenon"

	// ObsTaxonName is the scientific name recorded for an observation.
	ObsTaxonName = "obs.taxon.scientific_name"

	// ObsMetaType marks a subject as an observation entity.
	ObsMetaType = "obs.meta.type"
)

// Result predicates for the uniform assessment result shape. Every
// result node hangs off its observation via ResultHasResult and carries
// exactly one observed property, one value, and one result time.
const (
	// ResultHasResult links an observation to a result node.
	ResultHasResult = "dq.result.has_result"

	// ResultObservedProperty is the assessment dimension IRI of a result.
	ResultObservedProperty = "dq.result.observed_property"

	// ResultValuePred is the outcome: a vocabulary label IRI, a boolean for
	// use-case results, or a numeric score for scoring results.
	ResultValuePred = "dq.result.value"

	// ResultTime is the RFC3339 timestamp the assessment ran.
	ResultTime = "dq.result.time"

	// ResultTier is the quality tier a scoring result falls into.
	ResultTier = "dq.result.tier"
)

func init() {
	// Observation input predicates
	vocabulary.Register(ObsGeometryWKT,
		vocabulary.WithDescription("Well-known-text point literal of an observation geometry"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(GeoAsWKT))

	vocabulary.Register(ObsGeometryDatum,
		vocabulary.WithDescription("Spatial reference system link of an observation geometry"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(GeoInSRS))

	vocabulary.Register(ObsGeometryNode,
		vocabulary.WithDescription("Links an observation to its geometry node"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(GeoHasGeometry))

	vocabulary.Register(ObsFeatureOfInterest,
		vocabulary.WithDescription("Links an observation to its sampled feature"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(SosaHasFeatureOfInterest))

	vocabulary.Register(ObsSampleResultOf,
		vocabulary.WithDescription("Links a sample to the sampling procedure that produced it"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(SosaIsResultOf))

	vocabulary.Register(ObsTimePhenomenon,
		vocabulary.WithDescription("Phenomenon time literal of an observation"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(SosaPhenomenonTime))

	vocabulary.Register(ObsTaxonName,
		vocabulary.WithDescription("Scientific name recorded for an observation"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(DwcScientificName))

	vocabulary.Register(ObsMetaType,
		vocabulary.WithDescription("Entity type marker for observation subjects"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(RdfType))

	// Result-shape predicates
	vocabulary.Register(ResultHasResult,
		vocabulary.WithDescription("Links an observation to a data-quality assessment result node"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(PropHasResult))

	vocabulary.Register(ResultObservedProperty,
		vocabulary.WithDescription("Assessment dimension a result was produced by"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(SosaObservedProperty))

	vocabulary.Register(ResultValuePred,
		vocabulary.WithDescription("Assessment outcome: label IRI, boolean, or numeric score"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(SchemaValue))

	vocabulary.Register(ResultTime,
		vocabulary.WithDescription("Timestamp the assessment ran (RFC3339)"),
		vocabulary.WithDataType("datetime"),
		vocabulary.WithIRI(SosaResultTime))

	vocabulary.Register(ResultTier,
		vocabulary.WithDescription("Quality tier of a scoring result: FFP1, FFP2, FFP3"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"tier"))
}

// predicateIRIs maps dotted predicate names to their export IRIs.
// Kept in sync with the registrations above; the export package uses it
// to serialize result graphs without consulting global state.
var predicateIRIs = map[string]string{
	ObsGeometryWKT:         GeoAsWKT,
	ObsGeometryDatum:       GeoInSRS,
	ObsGeometryNode:        GeoHasGeometry,
	ObsFeatureOfInterest:   SosaHasFeatureOfInterest,
	ObsSampleResultOf:      SosaIsResultOf,
	ObsTimePhenomenon:      SosaPhenomenonTime,
	ObsTaxonName:           DwcScientificName,
	ObsMetaType:            RdfType,
	ResultHasResult:        PropHasResult,
	ResultObservedProperty: SosaObservedProperty,
	ResultValuePred:        SchemaValue,
	ResultTime:             SosaResultTime,
	ResultTier:             Namespace + "tier",
}

// IRIFor resolves a dotted predicate name to its IRI. Predicates that
// are already IRIs pass through, and unknown dotted names fall back to
// the framework namespace so serialization never drops a triple.
func IRIFor(predicate string) string {
	if iri, ok := predicateIRIs[predicate]; ok {
		return iri
	}
	if strings.HasPrefix(predicate, "http://") || strings.HasPrefix(predicate, "https://") {
		return predicate
	}
	return Namespace + predicate
}

// PredicateForIRI resolves a known IRI back to its dotted predicate
// name. Used by the graph loader when ingesting RDF inputs.
func PredicateForIRI(iri string) (string, bool) {
	for name, candidate := range predicateIRIs {
		if candidate == iri {
			return name, true
		}
	}
	return "", false
}
