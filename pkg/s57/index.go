package s57

import (
	"sort"

	"github.com/dhconnelly/rtreego"
)

// ChartIndex provides fast spatial queries over a collection of charts.
//
// The index stores lightweight metadata per chart (bounds, scale,
// usage band) in an R-tree, so a regional viewer can find and load only
// the cells that intersect its area of interest.
//
// Example:
//
//	idx, errs := s57.BuildIndexFromDir("/charts/ENC_ROOT")
//	entries := idx.Query(s57.Bounds{
//	    MinLon: -87.0, MaxLon: -80.0,
//	    MinLat: 24.0, MaxLat: 31.0,
//	}, s57.QueryOptions{})
type ChartIndex struct {
	entries []ChartEntry
	rtree   *rtreego.Rtree
}

// ChartEntry is the indexed metadata of a single chart.
type ChartEntry struct {
	Path             string
	Name             string
	GeoBounds        Bounds
	CompilationScale int
	Edition          int
	UpdateNumber     int
	UsageBand        UsageBand
}

// Bounds implements rtreego.Spatial.
func (e ChartEntry) Bounds() rtreego.Rect {
	return e.GeoBounds.rect()
}

// QueryOptions filters spatial query results.
type QueryOptions struct {
	// MinScale excludes charts compiled at a smaller scale (larger
	// denominator). Zero disables the filter.
	MinScale int

	// MaxScale excludes charts compiled at a larger scale (smaller
	// denominator). Zero disables the filter.
	MaxScale int

	// UsageBands restricts results to the listed bands. Empty means
	// all bands.
	UsageBands []UsageBand
}

// NewChartIndex builds an index over the given chart metadata.
func NewChartIndex(charts []*ChartMetadata) *ChartIndex {
	idx := &ChartIndex{rtree: rtreego.NewTree(2, 25, 50)}
	for _, meta := range charts {
		entry := ChartEntry{
			Path:             meta.Path,
			Name:             meta.Name,
			GeoBounds:        meta.Bounds,
			CompilationScale: meta.CompilationScale,
			Edition:          meta.Edition,
			UpdateNumber:     meta.UpdateNumber,
			UsageBand:        meta.UsageBand,
		}
		idx.entries = append(idx.entries, entry)
		idx.rtree.Insert(entry)
	}
	return idx
}

// BuildIndexFromDir scans a directory tree for base cells and indexes
// them. Unreadable cells are reported and skipped.
func BuildIndexFromDir(root string) (*ChartIndex, []error) {
	charts, errs := ExtractMetadataFromDir(root)
	return NewChartIndex(charts), errs
}

// Len returns the number of indexed charts.
func (idx *ChartIndex) Len() int {
	return len(idx.entries)
}

// Entries returns all indexed charts.
func (idx *ChartIndex) Entries() []ChartEntry {
	return idx.entries
}

// Query returns the charts intersecting bounds that pass the filters,
// ordered from largest compilation scale (most detail) to smallest.
func (idx *ChartIndex) Query(bounds Bounds, opts QueryOptions) []ChartEntry {
	var bands map[UsageBand]bool
	if len(opts.UsageBands) > 0 {
		bands = make(map[UsageBand]bool, len(opts.UsageBands))
		for _, b := range opts.UsageBands {
			bands[b] = true
		}
	}

	var result []ChartEntry
	for _, spatial := range idx.rtree.SearchIntersect(bounds.rect()) {
		entry := spatial.(ChartEntry)
		if !bounds.Intersects(entry.GeoBounds) {
			continue
		}
		if opts.MinScale > 0 && entry.CompilationScale > opts.MinScale {
			continue
		}
		if opts.MaxScale > 0 && entry.CompilationScale < opts.MaxScale {
			continue
		}
		if bands != nil && !bands[entry.UsageBand] {
			continue
		}
		result = append(result, entry)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].CompilationScale != result[j].CompilationScale {
			return result[i].CompilationScale < result[j].CompilationScale
		}
		return result[i].Name < result[j].Name
	})
	return result
}
