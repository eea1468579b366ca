// Package datum classifies the spatial reference system links attached
// to observation geometries.
package datum

import (
	"strings"

	"github.com/bdr-au/dataquality/vocabulary/dqaf"
)

// Recognized geodetic datums, keyed by EPSG code.
var epsgNames = map[string]string{
	"4203": "AGD84",
	"4283": "GDA94",
	"7844": "GDA2020",
	"4326": "WGS84",
}

// IsPresent reports whether a datum link was recorded at all.
func IsPresent(link string) bool {
	return strings.TrimSpace(link) != ""
}

// Code extracts the EPSG code from a datum link. Links are expected
// under the OGC EPSG registry base; anything else yields "".
func Code(link string) string {
	link = strings.TrimSpace(link)
	if !strings.HasPrefix(link, dqaf.EPSGNamespace) {
		return ""
	}
	return strings.TrimSuffix(link[len(dqaf.EPSGNamespace):], "/")
}

// IsValid reports whether the link resolves to a recognized datum.
func IsValid(link string) bool {
	_, ok := epsgNames[Code(link)]
	return ok
}

// Classify returns the datum type label for a link: one of AGD84,
// GDA94, GDA2020, WGS84, or None.
func Classify(link string) string {
	if name, ok := epsgNames[Code(link)]; ok {
		return name
	}
	return "None"
}
