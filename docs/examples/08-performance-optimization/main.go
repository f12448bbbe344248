package main

import (
	"context"
	"fmt"
	"log"

	"github.com/jamessvoss/XNautical-sub006/pkg/s57"
)

// Parse only specific features for faster loading
func parseDepthDataOnly(path string) (*s57.Chart, error) {
	parser := s57.NewParser()

	opts := s57.DefaultParseOptions()
	opts.ObjectClassFilter = []string{
		"DEPCNT", // Depth contours
		"DEPARE", // Depth areas
		"SOUNDG", // Soundings
	}

	return parser.ParseWithOptions(path, opts)
}

// Load a whole chart set with a worker pool
func loadChartSet(paths []string) []*s57.Chart {
	charts, errs := s57.LoadCellsParallel(context.Background(), s57.NewParser(), paths,
		s57.LoadOptions{
			Workers:    8,
			Parse:      s57.DefaultParseOptions(),
			SkipErrors: true,
			Progress: func(loaded, total int) {
				fmt.Printf("\rLoading: %d/%d", loaded, total)
			},
		})
	fmt.Println()
	for _, err := range errs {
		log.Printf("skipped: %v", err)
	}
	return charts
}

func main() {
	// Parse only depth-related features
	fmt.Println("=== Parsing depth data only ===")
	chart, err := parseDepthDataOnly("US5MA22M.000")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Features loaded: %d\n", chart.FeatureCount())

	// Parallel loading
	fmt.Println("\n=== Parallel loading ===")
	charts := loadChartSet([]string{"US5MA22M.000", "US5MA23M.000"})
	fmt.Printf("Charts loaded: %d\n", len(charts))
}
