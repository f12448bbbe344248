package s57

import (
	"github.com/jamessvoss/XNautical-sub006/internal/parser"
)

// Feature represents a navigational object from an S-57 chart: a depth
// contour, buoy, light, hazard, restricted area, or any other object of
// the S-57 Object Catalogue.
type Feature struct {
	id          int64
	objectCode  int
	objectClass string
	geometry    Geometry
	attributes  map[int]string
	national    map[int]string
}

// ID returns the feature's record identifier, unique within its chart.
func (f *Feature) ID() int64 {
	return f.id
}

// ObjectClass returns the S-57 object class acronym.
//
// Common examples:
//   - "DEPCNT": depth contour
//   - "DEPARE": depth area
//   - "BOYCAR": buoy, cardinal
//   - "LIGHTS": light
//   - "SOUNDG": sounding cluster
//
// Object classes outside the catalogue come back as "OBJL_<code>".
func (f *Feature) ObjectClass() string {
	return f.objectClass
}

// ObjectCode returns the numeric OBJL object class code.
func (f *Feature) ObjectCode() int {
	return f.objectCode
}

// Geometry returns the spatial representation of the feature.
func (f *Feature) Geometry() Geometry {
	return f.geometry
}

// Attributes returns all feature attributes keyed by S-57 attribute
// code. Values stay as encoded strings; their interpretation (float,
// enum, list) is defined per-attribute by the S-57 Attribute Catalogue.
//
// Common codes: 87 = DRVAL1 (minimum depth), 88 = DRVAL2 (maximum
// depth), 116 = OBJNAM (object name).
func (f *Feature) Attributes() map[int]string {
	return f.attributes
}

// Attribute returns a specific attribute value by code.
func (f *Feature) Attribute(code int) (string, bool) {
	v, ok := f.attributes[code]
	return v, ok
}

// NationalAttributes returns the feature's national-language attributes
// keyed by S-57 attribute code.
func (f *Feature) NationalAttributes() map[int]string {
	return f.national
}

// Position is one geographic coordinate in WGS-84 decimal degrees, with
// the sounding depth for 3-D points.
type Position struct {
	Lon      float64
	Lat      float64
	Depth    float64
	HasDepth bool
}

// GeometryType represents the kind of geometry a feature carries.
type GeometryType int

const (
	// GeometryTypeNone marks meta and collection features without
	// spatial representation.
	GeometryTypeNone GeometryType = iota
	GeometryTypePoint
	GeometryTypeLineString
	GeometryTypePolygon
)

func (g GeometryType) String() string {
	switch g {
	case GeometryTypeNone:
		return "None"
	case GeometryTypePoint:
		return "Point"
	case GeometryTypeLineString:
		return "LineString"
	case GeometryTypePolygon:
		return "Polygon"
	}
	return "Unknown"
}

// Geometry is the resolved spatial representation of a feature. Exactly
// the member matching Type is populated: Points for point features
// (several entries for sounding clusters), Line for polylines, and
// Exterior/Interiors rings for polygons. Rings are closed: first and
// last position coincide.
type Geometry struct {
	Type      GeometryType
	Points    []Position
	Line      []Position
	Exterior  [][]Position
	Interiors [][]Position
}

func convertGeometry(g parser.Geometry) Geometry {
	out := Geometry{}
	switch g.Type {
	case parser.GeometryPoint:
		out.Type = GeometryTypePoint
		out.Points = convertPositions(g.Points)
	case parser.GeometryLine:
		out.Type = GeometryTypeLineString
		out.Line = convertPositions(g.Line)
	case parser.GeometryArea:
		out.Type = GeometryTypePolygon
		out.Exterior = convertRings(g.Exterior)
		out.Interiors = convertRings(g.Interiors)
	}
	return out
}

func convertPositions(in []parser.Position) []Position {
	if in == nil {
		return nil
	}
	out := make([]Position, len(in))
	for i, p := range in {
		out[i] = Position{Lon: p.Lon, Lat: p.Lat, Depth: p.Depth, HasDepth: p.HasDepth}
	}
	return out
}

func convertRings(in [][]parser.Position) [][]Position {
	if in == nil {
		return nil
	}
	out := make([][]Position, len(in))
	for i, ring := range in {
		out[i] = convertPositions(ring)
	}
	return out
}
