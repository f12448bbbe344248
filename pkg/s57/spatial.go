package s57

import (
	"github.com/dhconnelly/rtreego"
)

// Bounds is a geographic bounding box in decimal degrees.
type Bounds struct {
	MinLon float64 // western edge
	MaxLon float64 // eastern edge
	MinLat float64 // southern edge
	MaxLat float64 // northern edge
}

// Contains reports whether the point (lon, lat) is within the bounds.
func (b Bounds) Contains(lon, lat float64) bool {
	return lon >= b.MinLon && lon <= b.MaxLon &&
		lat >= b.MinLat && lat <= b.MaxLat
}

// Intersects reports whether the two bounds overlap.
func (b Bounds) Intersects(other Bounds) bool {
	return !(other.MaxLon < b.MinLon ||
		other.MinLon > b.MaxLon ||
		other.MaxLat < b.MinLat ||
		other.MinLat > b.MaxLat)
}

// Expand returns the bounds grown by margin decimal degrees in every
// direction.
func (b Bounds) Expand(margin float64) Bounds {
	return Bounds{
		MinLon: b.MinLon - margin,
		MaxLon: b.MaxLon + margin,
		MinLat: b.MinLat - margin,
		MaxLat: b.MaxLat + margin,
	}
}

func (b Bounds) union(other Bounds) Bounds {
	if other.MinLon < b.MinLon {
		b.MinLon = other.MinLon
	}
	if other.MaxLon > b.MaxLon {
		b.MaxLon = other.MaxLon
	}
	if other.MinLat < b.MinLat {
		b.MinLat = other.MinLat
	}
	if other.MaxLat > b.MaxLat {
		b.MaxLat = other.MaxLat
	}
	return b
}

// rect converts to an R-tree rectangle. Point features get a small
// epsilon extent (~11 meters at the equator) because rtreego requires
// non-zero dimensions.
func (b Bounds) rect() rtreego.Rect {
	const epsilon = 0.0001
	lonLength := b.MaxLon - b.MinLon
	latLength := b.MaxLat - b.MinLat
	if lonLength < epsilon {
		lonLength = epsilon
	}
	if latLength < epsilon {
		latLength = epsilon
	}
	rect, _ := rtreego.NewRect(rtreego.Point{b.MinLon, b.MinLat}, []float64{lonLength, latLength})
	return rect
}

// featureBounds computes the bounding box of a feature's geometry.
// Features without geometry report ok=false and are not indexed.
func featureBounds(f *Feature) (Bounds, bool) {
	var positions [][]Position
	switch f.geometry.Type {
	case GeometryTypePoint:
		positions = [][]Position{f.geometry.Points}
	case GeometryTypeLineString:
		positions = [][]Position{f.geometry.Line}
	case GeometryTypePolygon:
		positions = append(positions, f.geometry.Exterior...)
		positions = append(positions, f.geometry.Interiors...)
	default:
		return Bounds{}, false
	}

	var bounds Bounds
	first := true
	for _, run := range positions {
		for _, p := range run {
			pb := Bounds{MinLon: p.Lon, MaxLon: p.Lon, MinLat: p.Lat, MaxLat: p.Lat}
			if first {
				bounds = pb
				first = false
			} else {
				bounds = bounds.union(pb)
			}
		}
	}
	return bounds, !first
}

// spatialIndex provides O(log n) bounding-box queries over features.
type spatialIndex struct {
	rtree *rtreego.Rtree
}

// indexedFeature wraps a feature for R-tree storage.
type indexedFeature struct {
	feature *Feature
	bounds  Bounds
}

func (f *indexedFeature) Bounds() rtreego.Rect {
	return f.bounds.rect()
}

// buildSpatialIndex indexes every feature with geometry and derives the
// chart bounds. M_COVR meta coverage features define the official
// coverage area when present; otherwise the union of all feature bounds
// serves.
func (c *Chart) buildSpatialIndex() {
	if len(c.features) == 0 {
		return
	}

	rtree := rtreego.NewTree(2, 25, 50)

	var coverage *Bounds
	for i := range c.features {
		f := &c.features[i]
		if f.objectClass != "M_COVR" {
			continue
		}
		if fb, ok := featureBounds(f); ok {
			if coverage == nil {
				coverage = &fb
			} else {
				u := coverage.union(fb)
				coverage = &u
			}
		}
	}

	var fallback *Bounds
	for i := range c.features {
		f := &c.features[i]
		fb, ok := featureBounds(f)
		if !ok {
			continue
		}
		rtree.Insert(&indexedFeature{feature: f, bounds: fb})
		if fallback == nil {
			b := fb
			fallback = &b
		} else {
			u := fallback.union(fb)
			fallback = &u
		}
	}

	c.index = &spatialIndex{rtree: rtree}
	if coverage != nil {
		c.bounds = *coverage
	} else if fallback != nil {
		c.bounds = *fallback
	}
}

// FeaturesInBounds returns all features whose geometry intersects the
// given bounding box. This is the primary method for viewport-based
// rendering: only features that could be visible are returned.
//
// Example:
//
//	viewport := s57.Bounds{
//	    MinLon: -71.5, MaxLon: -71.0,
//	    MinLat: 42.0, MaxLat: 42.5,
//	}
//	for _, feature := range chart.FeaturesInBounds(viewport) {
//	    render(feature)
//	}
func (c *Chart) FeaturesInBounds(bounds Bounds) []Feature {
	if c.index == nil || c.index.rtree == nil {
		return c.featuresInBoundsLinear(bounds)
	}

	spatials := c.index.rtree.SearchIntersect(bounds.rect())
	result := make([]Feature, 0, len(spatials))
	for _, spatial := range spatials {
		indexed := spatial.(*indexedFeature)
		// The R-tree pads point entries; re-check the true bounds.
		if bounds.Intersects(indexed.bounds) {
			result = append(result, *indexed.feature)
		}
	}
	return result
}

func (c *Chart) featuresInBoundsLinear(bounds Bounds) []Feature {
	var result []Feature
	for i := range c.features {
		if fb, ok := featureBounds(&c.features[i]); ok && bounds.Intersects(fb) {
			result = append(result, c.features[i])
		}
	}
	return result
}
