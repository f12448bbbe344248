package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log"

	"github.com/jamessvoss/XNautical-sub006/pkg/iso8211"
	"github.com/jamessvoss/XNautical-sub006/pkg/s57"
)

func safeParseChart(path string) (*s57.Chart, error) {
	parser := s57.NewParser()

	chart, err := parser.Parse(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("chart file not found: %s", path)
		}

		// Structural errors carry the offending record's location.
		var leaderErr *iso8211.ErrMalformedLeader
		if errors.As(err, &leaderErr) {
			return nil, fmt.Errorf("not a valid ISO 8211 file (offset %d): %s",
				leaderErr.Offset, leaderErr.Reason)
		}
		var lengthErr *iso8211.ErrFieldLengthMismatch
		if errors.As(err, &lengthErr) {
			return nil, fmt.Errorf("corrupt field %s in record %d: declared %d, consumed %d",
				lengthErr.Tag, lengthErr.RecordID, lengthErr.Declared, lengthErr.Consumed)
		}

		return nil, err
	}

	// Non-fatal findings (skipped records, unresolvable geometry) are
	// collected, not raised.
	for _, d := range chart.Diagnostics() {
		log.Printf("Warning: %s: %s", path, d.Message)
	}

	return chart, nil
}

func main() {
	// Try to parse a chart
	chart, err := safeParseChart("US5MA22M.000")
	if err != nil {
		log.Printf("Error: %v", err)
		return
	}

	fmt.Printf("Successfully loaded chart: %s\n", chart.DatasetName())
	fmt.Printf("Features: %d\n", chart.FeatureCount())

	// Try to parse a non-existent chart
	_, err = safeParseChart("NONEXISTENT.000")
	if err != nil {
		log.Printf("Expected error: %v", err)
	}
}
