package dqaf

// Namespace is the base IRI prefix for the assessment framework terms.
const Namespace = "https://linked.data.gov.au/def/bdr/dqaf/"

// VocabNamespace is the base IRI under which per-dimension label
// vocabularies live. A label IRI is VocabNamespace + dimension + "/" + label.
const VocabNamespace = "https://linked.data.gov.au/def/bdr/dqaf/vocab/"

// AssessNamespace is the base IRI for assessment (observed-property)
// identifiers, one per dimension.
const AssessNamespace = "https://linked.data.gov.au/def/bdr/dqaf/assess/"

// ResultNamespace is the base IRI for result node identifiers.
const ResultNamespace = "https://linked.data.gov.au/def/bdr/dqaf/result/"

// Framework IRIs for the result shape.
const (
	// PropHasResult links an observation to one of its assessment results.
	PropHasResult = Namespace + "hasDQAFResult"

	// PropAssessmentDate records the date an assessment batch ran.
	PropAssessmentDate = Namespace + "assessmentDate"
)

// Standard ontology IRIs consumed from input graphs and emitted on results.
const (
	// SosaPhenomenonTime is the SOSA observation time property.
	SosaPhenomenonTime = "http://www.w3.org/ns/sosa/phenomenonTime"

	// SosaObservedProperty identifies which assessment a result carries.
	SosaObservedProperty = "http://www.w3.org/ns/sosa/observedProperty"

	// SosaResultTime is the SOSA result timestamp property.
	SosaResultTime = "http://www.w3.org/ns/sosa/resultTime"

	// SosaHasFeatureOfInterest links an observation to its sampled feature.
	SosaHasFeatureOfInterest = "http://www.w3.org/ns/sosa/hasFeatureOfInterest"

	// SosaIsResultOf links a sample to the sampling procedure that
	// produced it.
	SosaIsResultOf = "http://www.w3.org/ns/sosa/isResultOf"

	// GeoHasGeometry links a feature to its geometry node.
	GeoHasGeometry = "http://www.opengis.net/ont/geosparql#hasGeometry"

	// GeoAsWKT carries the well-known-text serialization of a geometry.
	GeoAsWKT = "http://www.opengis.net/ont/geosparql#asWKT"

	// GeoInSRS links a geometry to its spatial reference system.
	GeoInSRS = "http://www.opengis.net/ont/geosparql#inSRS"

	// SchemaValue is the schema.org value property used on result nodes.
	SchemaValue = "https://schema.org/value"

	// DwcScientificName is the Darwin Core scientific name term.
	DwcScientificName = "http://rs.tdwg.org/dwc/terms/scientificName"

	// TernObservation is the TERN observation class.
	TernObservation = "https://w3id.org/tern/ontologies/tern/Observation"

	// RdfType is rdf:type.
	RdfType = "http://www.w3.org/1999/02/22-rdf-syntax-ns#type"
)

// SKOS IRIs used when serializing the label vocabulary definitions.
const (
	SkosConceptScheme = "http://www.w3.org/2004/02/skos/core#ConceptScheme"
	SkosConcept       = "http://www.w3.org/2004/02/skos/core#Concept"
	SkosPrefLabel     = "http://www.w3.org/2004/02/skos/core#prefLabel"
	SkosDefinition    = "http://www.w3.org/2004/02/skos/core#definition"
	SkosInScheme      = "http://www.w3.org/2004/02/skos/core#inScheme"
)

// EPSGNamespace is the OGC registry prefix for spatial reference systems.
// Datum links in input graphs are expected under this base.
const EPSGNamespace = "http://www.opengis.net/def/crs/EPSG/0/"
