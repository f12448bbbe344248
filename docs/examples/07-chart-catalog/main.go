package main

import (
	"fmt"
	"log"

	"github.com/jamessvoss/XNautical-sub006/pkg/s57"
)

func main() {
	// Index every base cell under the ENC root. Metadata extraction
	// skips geometry resolution, so this stays fast for large trees.
	idx, errs := s57.BuildIndexFromDir("ENC_ROOT")
	for _, err := range errs {
		log.Printf("skipped: %v", err)
	}

	fmt.Printf("Catalog contains %d charts\n\n", idx.Len())

	for _, entry := range idx.Entries() {
		fmt.Printf("Chart: %s\n", entry.Name)
		fmt.Printf("  Path: %s\n", entry.Path)
		fmt.Printf("  Scale: 1:%d (%s band)\n", entry.CompilationScale, entry.UsageBand)
		fmt.Printf("  Bounds: [%.4f,%.4f] to [%.4f,%.4f]\n",
			entry.GeoBounds.MinLon, entry.GeoBounds.MinLat,
			entry.GeoBounds.MaxLon, entry.GeoBounds.MaxLat)
	}

	// Find charts covering a location, most detailed first.
	lon, lat := -71.05, 42.35
	point := s57.Bounds{MinLon: lon, MaxLon: lon, MinLat: lat, MaxLat: lat}
	matches := idx.Query(point, s57.QueryOptions{})
	fmt.Printf("\nCharts containing location %.4f, %.4f: %d\n", lon, lat, len(matches))
}
