package geo

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// OutsideAustralia is the location label for points no state polygon
// contains.
const OutsideAustralia = "Outside_Australia"

// Ring is a closed polygon ring of lon/lat vertices.
type Ring [][2]float64

// Polygon is an outer ring plus any holes.
type Polygon struct {
	Outer Ring
	Holes []Ring
}

// Region is a named set of polygons, typically one state.
type Region struct {
	Name     string
	Polygons []Polygon
}

// Boundaries answers point-in-region queries against a fixed set of
// named regions. Regions are checked in load order and the first hit
// wins.
type Boundaries struct {
	regions []Region
}

// Regions returns the region names in load order.
func (b *Boundaries) Regions() []string {
	names := make([]string, len(b.regions))
	for i, r := range b.regions {
		names[i] = r.Name
	}
	return names
}

// Locate returns the label of the region containing the point, or
// OutsideAustralia when none does. Points on an edge count as inside.
func (b *Boundaries) Locate(lon, lat float64) string {
	for _, region := range b.regions {
		for _, poly := range region.Polygons {
			if poly.contains(lon, lat) {
				return region.Name
			}
		}
	}
	return OutsideAustralia
}

func (p Polygon) contains(lon, lat float64) bool {
	if !ringContains(p.Outer, lon, lat) {
		return false
	}
	for _, hole := range p.Holes {
		if ringContains(hole, lon, lat) {
			return false
		}
	}
	return true
}

// ringContains runs the even-odd ray casting test with a horizontal
// ray toward +lon.
func ringContains(ring Ring, lon, lat float64) bool {
	inside := false
	n := len(ring)
	for i := 0; i < n; i++ {
		x1, y1 := ring[i][0], ring[i][1]
		x2, y2 := ring[(i+1)%n][0], ring[(i+1)%n][1]
		if (y1 > lat) == (y2 > lat) {
			continue
		}
		cross := (x2-x1)*(lat-y1)/(y2-y1) + x1
		if lon < cross {
			inside = !inside
		} else if lon == cross {
			return true
		}
	}
	return inside
}

// geojson structures cover the subset the boundary files use:
// FeatureCollection of Polygon and MultiPolygon features.
type geojsonFile struct {
	Type     string           `json:"type"`
	Features []geojsonFeature `json:"features"`
}

type geojsonFeature struct {
	Properties map[string]any  `json:"properties"`
	Geometry   geojsonGeometry `json:"geometry"`
}

type geojsonGeometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

// LoadBoundaries reads state polygons from a GeoJSON file. Feature
// names come from the "name" property (falling back to "STATE_NAME"),
// with spaces normalized to underscores to match the label vocabulary.
func LoadBoundaries(path string) (*Boundaries, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read boundaries: %w", err)
	}

	var file geojsonFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse boundaries: %w", err)
	}
	if file.Type != "FeatureCollection" {
		return nil, fmt.Errorf("boundaries: expected FeatureCollection, got %q", file.Type)
	}

	b := &Boundaries{}
	for i, feat := range file.Features {
		name := featureName(feat.Properties)
		if name == "" {
			return nil, fmt.Errorf("boundaries: feature %d has no name property", i)
		}

		var polys []Polygon
		switch feat.Geometry.Type {
		case "Polygon":
			var rings [][][2]float64
			if err := json.Unmarshal(feat.Geometry.Coordinates, &rings); err != nil {
				return nil, fmt.Errorf("boundaries: feature %q: %w", name, err)
			}
			polys = append(polys, toPolygon(rings))
		case "MultiPolygon":
			var multi [][][][2]float64
			if err := json.Unmarshal(feat.Geometry.Coordinates, &multi); err != nil {
				return nil, fmt.Errorf("boundaries: feature %q: %w", name, err)
			}
			for _, rings := range multi {
				polys = append(polys, toPolygon(rings))
			}
		default:
			return nil, fmt.Errorf("boundaries: feature %q: unsupported geometry %q", name, feat.Geometry.Type)
		}

		b.regions = append(b.regions, Region{Name: name, Polygons: polys})
	}
	return b, nil
}

func featureName(props map[string]any) string {
	for _, key := range []string{"name", "STATE_NAME"} {
		if v, ok := props[key].(string); ok && v != "" {
			return strings.ReplaceAll(v, " ", "_")
		}
	}
	return ""
}

func toPolygon(rings [][][2]float64) Polygon {
	var p Polygon
	for i, ring := range rings {
		if i == 0 {
			p.Outer = Ring(ring)
		} else {
			p.Holes = append(p.Holes, Ring(ring))
		}
	}
	return p
}
