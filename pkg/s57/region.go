package s57

import (
	"context"
)

// Region specifies a geographic area and loading parameters for
// regional chart loading.
type Region struct {
	// Bounds defines the area to load; charts intersecting it are
	// selected.
	Bounds Bounds

	// MinScale and MaxScale filter by compilation scale denominator;
	// zero disables a filter.
	MinScale int
	MaxScale int

	// UsageBands restricts loading to the listed bands. Empty means
	// all bands.
	UsageBands []UsageBand

	// Load configures the parallel loading pass.
	Load LoadOptions
}

// LoadRegion discovers the charts under root, selects those covering
// the region, and loads them in parallel. It is the high-level entry
// point for viewers that render a geographic area rather than a single
// named cell.
//
// Example:
//
//	charts, errs := s57.LoadRegion(ctx, "/charts/ENC_ROOT", s57.NewParser(), s57.Region{
//	    Bounds: s57.Bounds{
//	        MinLon: -122.5, MaxLon: -122.0,
//	        MinLat: 37.6, MaxLat: 38.0,
//	    },
//	    UsageBands: []s57.UsageBand{s57.UsageBandApproach, s57.UsageBandHarbour},
//	    Load:       s57.DefaultLoadOptions(),
//	})
func LoadRegion(ctx context.Context, root string, p Parser, region Region) ([]*Chart, []error) {
	idx, errs := BuildIndexFromDir(root)

	entries := idx.Query(region.Bounds, QueryOptions{
		MinScale:   region.MinScale,
		MaxScale:   region.MaxScale,
		UsageBands: region.UsageBands,
	})
	if len(entries) == 0 {
		return nil, errs
	}

	paths := make([]string, len(entries))
	for i, entry := range entries {
		paths[i] = entry.Path
	}

	charts, loadErrs := LoadCellsParallel(ctx, p, paths, region.Load)
	errs = append(errs, loadErrs...)

	// Failed slots are nil; compact them out so callers can range
	// directly.
	loaded := charts[:0]
	for _, chart := range charts {
		if chart != nil {
			loaded = append(loaded, chart)
		}
	}
	return loaded, errs
}
