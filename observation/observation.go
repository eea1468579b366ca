// Package observation extracts assessable records from a loaded
// observation graph.
package observation

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/bdr-au/dataquality/graph"
	"github.com/bdr-au/dataquality/vocabulary/dqaf"
)

// Record is the flat view of one observation the classifiers work on.
// Coordinate axes stay textual: precision and repeating-fraction checks
// read the digits as written, and numeric forms are derived on demand.
type Record struct {
	ID           string
	RecordNumber int

	// WKT is the raw geometry literal; Lon and Lat its textual axes.
	WKT string
	Lon string
	Lat string

	// Datum is the spatial reference system link of the geometry.
	Datum string

	// Date is the raw phenomenon time literal.
	Date string

	// ScientificName is the recorded taxon name.
	ScientificName string
}

// HasCoordinate reports whether both axes were extracted.
func (r Record) HasCoordinate() bool {
	return r.Lon != "" && r.Lat != ""
}

// LonLat returns the numeric coordinate. ok is false when either axis
// is missing or unparseable.
func (r Record) LonLat() (lon, lat float64, ok bool) {
	if !r.HasCoordinate() {
		return 0, 0, false
	}
	lon, err1 := strconv.ParseFloat(r.Lon, 64)
	lat, err2 := strconv.ParseFloat(r.Lat, 64)
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return lon, lat, true
}

var pointPattern = regexp.MustCompile(`(?i)POINT\s*\(\s*([-+]?[0-9.]+)\s+([-+]?[0-9.]+)\s*\)`)

// ParsePoint splits a WKT point literal into its textual axes.
func ParsePoint(wkt string) (lon, lat string, ok bool) {
	m := pointPattern.FindStringSubmatch(wkt)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

var recordNumberPattern = regexp.MustCompile(`/(\d+)/?$`)

// RecordNumber pulls the trailing numeric path segment out of an
// observation IRI. Observations without one get 0 and sort first.
func RecordNumber(iri string) int {
	m := recordNumberPattern.FindStringSubmatch(strings.TrimSuffix(iri, "/"))
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}

// Extract builds records for every observation subject in the store,
// in graph order. Geometry nodes are followed one hop when the WKT and
// datum hang off a separate geometry subject.
func Extract(store *graph.Store) []Record {
	subjects := store.Observations()
	records := make([]Record, 0, len(subjects))
	for _, subject := range subjects {
		records = append(records, extractOne(store, subject))
	}
	return records
}

func extractOne(store *graph.Store, subject string) Record {
	rec := Record{
		ID:             subject,
		RecordNumber:   RecordNumber(subject),
		Date:           store.FirstString(subject, dqaf.ObsTimePhenomenon),
		ScientificName: store.FirstString(subject, dqaf.ObsTaxonName),
	}

	rec.WKT, rec.Datum = extractGeometry(store, subject)
	if lon, lat, ok := ParsePoint(rec.WKT); ok {
		rec.Lon = lon
		rec.Lat = lat
	}
	return rec
}

// extractGeometry finds the WKT and datum of an observation. The WKT
// may sit on the observation itself, on a geometry node one hop away,
// or at the end of the TERN sample chain
// (observation -> feature of interest -> sampling procedure -> geometry).
func extractGeometry(store *graph.Store, subject string) (wkt, datumLink string) {
	wkt = store.FirstString(subject, dqaf.ObsGeometryWKT)
	datumLink = store.FirstString(subject, dqaf.ObsGeometryDatum)
	if wkt != "" {
		return wkt, datumLink
	}

	geomNode := store.FirstString(subject, dqaf.ObsGeometryNode)
	if geomNode == "" {
		if sample := store.FirstString(subject, dqaf.ObsFeatureOfInterest); sample != "" {
			if procedure := store.FirstString(sample, dqaf.ObsSampleResultOf); procedure != "" {
				geomNode = store.FirstString(procedure, dqaf.ObsGeometryNode)
			}
		}
	}
	if geomNode != "" {
		wkt = store.FirstString(geomNode, dqaf.ObsGeometryWKT)
		if datumLink == "" {
			datumLink = store.FirstString(geomNode, dqaf.ObsGeometryDatum)
		}
	}
	return wkt, datumLink
}
