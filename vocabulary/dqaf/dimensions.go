package dqaf

import (
	"fmt"
	"strings"
)

// Dimension names one data-quality aspect of an observation.
type Dimension string

// The assessed dimensions. Names double as the dimension part of
// matrix column keys ("{dimension}:{label}").
const (
	CoordinatePrecision      Dimension = "coordinate_precision"
	CoordinateCompleteness   Dimension = "coordinate_completeness"
	CoordinateUnusual        Dimension = "coordinate_unusual"
	CoordinateInAustralia    Dimension = "coordinate_in_australia_state"
	CoordinateOutlierIQR     Dimension = "coordinate_outlier_irq"
	CoordinateOutlierZScore  Dimension = "coordinate_outlier_zscore"
	DateRecency              Dimension = "date_recency"
	DateCompleteness         Dimension = "date_completeness"
	DateFormatValidation     Dimension = "date_format_validation"
	DateOutlierIQR           Dimension = "date_outlier_irq"
	DateOutlierKMeans        Dimension = "date_outlier_kmeans"
	ScientificNameComplete   Dimension = "scientific_name_completeness"
	ScientificNameValidation Dimension = "scientific_name_validation"
	DatumCompleteness        Dimension = "datum_completeness"
	DatumValidation          Dimension = "datum_validation"
	DatumType                Dimension = "datum_type"
)

// String returns the dimension name.
func (d Dimension) String() string { return string(d) }

// Column returns the matrix column key for a label of this dimension.
func (d Dimension) Column(label string) string {
	return string(d) + ":" + label
}

// ResultValue is the outcome written onto a result node: either a
// controlled-vocabulary IRI or a plain literal. Exactly one side is set;
// the variant is resolved at the registry boundary, never at write time.
type ResultValue struct {
	IRI     string
	Literal any
}

// IRIValue returns a ResultValue carrying a vocabulary IRI.
func IRIValue(iri string) ResultValue { return ResultValue{IRI: iri} }

// LiteralValue returns a ResultValue carrying a plain literal.
func LiteralValue(v any) ResultValue { return ResultValue{Literal: v} }

// IsIRI reports whether the value is a vocabulary IRI.
func (v ResultValue) IsIRI() bool { return v.IRI != "" }

// Object returns the value as a triple object.
func (v ResultValue) Object() any {
	if v.IsIRI() {
		return v.IRI
	}
	return v.Literal
}

// LabelDef is one controlled label and its SKOS definition.
type LabelDef struct {
	Name       string
	Definition string
}

// DimensionDef declares the static configuration of one assessment
// dimension: its label set, the input field it reads, and the IRIs its
// results map to.
type DimensionDef struct {
	Name       Dimension
	Category   string
	InputField string
	Labels     []LabelDef

	// Namespace is the vocabulary base IRI for this dimension's labels.
	Namespace string

	// AssessIRI is the observed-property IRI stamped on results.
	AssessIRI string
}

// HasLabel reports whether name is in this dimension's label set.
func (d DimensionDef) HasLabel(name string) bool {
	for _, l := range d.Labels {
		if l.Name == name {
			return true
		}
	}
	return false
}

// LabelNames returns the declared labels in declaration order.
func (d DimensionDef) LabelNames() []string {
	names := make([]string, len(d.Labels))
	for i, l := range d.Labels {
		names[i] = l.Name
	}
	return names
}

// Value resolves a label to its ResultValue. Labels always resolve to
// vocabulary IRIs; emitting a label outside the declared set is a
// programming error surfaced here rather than at serialization.
func (d DimensionDef) Value(label string) (ResultValue, error) {
	if !d.HasLabel(label) {
		return ResultValue{}, fmt.Errorf("label %q not declared for dimension %s", label, d.Name)
	}
	return IRIValue(d.Namespace + label), nil
}

// Registry is the immutable dimension catalogue handed to the runner.
type Registry struct {
	dims   []DimensionDef
	byName map[Dimension]DimensionDef
}

// NewRegistry builds the registry with the full dimension catalogue.
func NewRegistry() *Registry {
	dims := catalogue()
	byName := make(map[Dimension]DimensionDef, len(dims))
	for _, d := range dims {
		byName[d.Name] = d
	}
	return &Registry{dims: dims, byName: byName}
}

// Dimension looks up one dimension definition.
func (r *Registry) Dimension(name Dimension) (DimensionDef, bool) {
	d, ok := r.byName[name]
	return d, ok
}

// Dimensions returns all definitions in catalogue order.
func (r *Registry) Dimensions() []DimensionDef {
	out := make([]DimensionDef, len(r.dims))
	copy(out, r.dims)
	return out
}

// AllColumns returns every "{dimension}:{label}" key the catalogue can
// produce, in catalogue order.
func (r *Registry) AllColumns() []string {
	var cols []string
	for _, d := range r.dims {
		for _, l := range d.Labels {
			cols = append(cols, d.Name.Column(l.Name))
		}
	}
	return cols
}

// HasColumn reports whether a "{dimension}:{label}" key belongs to the
// catalogue. Use-case and scoring configurations validate their column
// references here.
func (r *Registry) HasColumn(col string) bool {
	dim, label, ok := strings.Cut(col, ":")
	if !ok {
		return false
	}
	d, found := r.byName[Dimension(dim)]
	return found && d.HasLabel(label)
}

func def(name Dimension, category, inputField string, labels ...LabelDef) DimensionDef {
	return DimensionDef{
		Name:       name,
		Category:   category,
		InputField: inputField,
		Labels:     labels,
		Namespace:  VocabNamespace + string(name) + "/",
		AssessIRI:  AssessNamespace + string(name) + "/",
	}
}

func catalogue() []DimensionDef {
	return []DimensionDef{
		def(CoordinatePrecision, "coordinate", ObsGeometryWKT,
			LabelDef{"Low", "Either axis of the coordinate has fewer than 2 decimal places, indicating a broad, general area rather than a specific location."},
			LabelDef{"Medium", "Either axis of the coordinate has between 2 and 4 decimal places, pinpointing a more specific location but not with the highest accuracy."},
			LabelDef{"High", "Both axes of the coordinate have more than 4 decimal places, indicating a very specific location."},
		),
		def(CoordinateCompleteness, "coordinate", ObsGeometryWKT,
			LabelDef{"empty", "No geographic coordinate data is provided for the observation."},
			LabelDef{"non_empty", "Valid geographic coordinate data is present for the observation."},
		),
		def(CoordinateUnusual, "coordinate", ObsGeometryWKT,
			LabelDef{"usual", "Neither axis shows a repeating pattern in its decimal part; the coordinate appears normal."},
			LabelDef{"unusual", "An axis shows a repeating pattern in its decimal part, suggesting the coordinate may be fabricated or atypical."},
		),
		def(CoordinateInAustralia, "coordinate", ObsGeometryWKT,
			LabelDef{"New_South_Wales", "The coordinate is in New South Wales, a state on the east coast of Australia."},
			LabelDef{"Victoria", "The coordinate is in Victoria, a state in southeast Australia."},
			LabelDef{"Queensland", "The coordinate is in Queensland, a state in northeast Australia."},
			LabelDef{"Western_Australia", "The coordinate is in Western Australia, a state occupying the western third of Australia."},
			LabelDef{"South_Australia", "The coordinate is in South Australia, a state in the southern central part of Australia."},
			LabelDef{"Tasmania", "The coordinate is in Tasmania, an island state off the southern coast of Australia."},
			LabelDef{"Northern_Territory", "The coordinate is in the Northern Territory, in the center and central north of Australia."},
			LabelDef{"Australian_Capital_Territory", "The coordinate is in the Australian Capital Territory, in the southeast of the country."},
			LabelDef{"Outside_Australia", "The coordinate is outside the geographical bounds of Australia."},
		),
		def(CoordinateOutlierIQR, "coordinate", ObsGeometryWKT,
			LabelDef{"outlier_coordinate", "The coordinate falls outside the interquartile-range fences on at least one axis, suggesting an anomaly."},
			LabelDef{"normal_coordinate", "The coordinate falls within the interquartile-range fences on both axes."},
		),
		def(CoordinateOutlierZScore, "coordinate", ObsGeometryWKT,
			LabelDef{"outlier_coordinate", "The coordinate's z-score exceeds the threshold on at least one axis, suggesting an anomaly."},
			LabelDef{"normal_coordinate", "The coordinate's z-score is within the threshold on both axes."},
		),
		def(DateRecency, "date", ObsTimePhenomenon,
			LabelDef{"recent_20_years", "The observation date is within the last 20 years, making it more relevant to current contexts and studies."},
			LabelDef{"outdated_20_years", "The observation date is more than 20 years ago and may not reflect current conditions."},
		),
		def(DateCompleteness, "date", ObsTimePhenomenon,
			LabelDef{"empty", "No date information is provided for the observation."},
			LabelDef{"non_empty", "Date information is present for the observation."},
		),
		def(DateFormatValidation, "date", ObsTimePhenomenon,
			LabelDef{"valid", "The date format is valid and recognized."},
			LabelDef{"invalid", "The date format is invalid or unrecognized."},
		),
		def(DateOutlierIQR, "date", ObsTimePhenomenon,
			LabelDef{"outlier_date", "The observation date falls outside the interquartile-range fences, suggesting an anomaly."},
			LabelDef{"normal_date", "The observation date falls within the interquartile-range fences."},
		),
		def(DateOutlierKMeans, "date", ObsTimePhenomenon,
			LabelDef{"outlier_date", "The observation date falls into the smallest k-means cluster, deviating notably from typical date values."},
			LabelDef{"normal_date", "The observation date falls into a larger k-means cluster, aligning with common patterns in the batch."},
		),
		def(ScientificNameComplete, "scientific_name", ObsTaxonName,
			LabelDef{"empty_name", "The scientific name field is missing or contains no data."},
			LabelDef{"non_empty_name", "A scientific name is provided for the observation."},
		),
		def(ScientificNameValidation, "scientific_name", ObsTaxonName,
			LabelDef{"valid_name", "The scientific name follows accepted binomial naming conventions."},
			LabelDef{"invalid_name", "The scientific name does not conform to accepted naming conventions."},
		),
		def(DatumCompleteness, "datum", ObsGeometryDatum,
			LabelDef{"empty", "The datum link reference is empty."},
			LabelDef{"not_empty", "The datum link reference is present."},
		),
		def(DatumValidation, "datum", ObsGeometryDatum,
			LabelDef{"valid", "The datum link reference resolves to a recognized geodetic datum."},
			LabelDef{"invalid", "The datum link reference is unrecognized."},
		),
		def(DatumType, "datum", ObsGeometryDatum,
			LabelDef{"AGD84", "The datum is the Australian Geodetic Datum 1984."},
			LabelDef{"GDA2020", "The datum is the Geocentric Datum of Australia 2020."},
			LabelDef{"GDA94", "The datum is the Geocentric Datum of Australia 1994."},
			LabelDef{"WGS84", "The datum is the World Geodetic System 1984."},
			LabelDef{"None", "The datum is not one of the recognized types."},
		),
	}
}
