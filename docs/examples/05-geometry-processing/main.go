package main

import (
	"fmt"
	"log"
	"math"

	"github.com/jamessvoss/XNautical-sub006/pkg/s57"
)

func processGeometry(feature s57.Feature) {
	geom := feature.Geometry()

	switch geom.Type {
	case s57.GeometryTypePoint:
		for _, p := range geom.Points {
			fmt.Printf("Point: %.6f, %.6f\n", p.Lon, p.Lat)
		}

	case s57.GeometryTypeLineString:
		fmt.Printf("LineString with %d points:\n", len(geom.Line))
		for i, p := range geom.Line {
			fmt.Printf("  %d: %.6f, %.6f\n", i, p.Lon, p.Lat)
		}

	case s57.GeometryTypePolygon:
		// Rings are closed: first position equals the last.
		for r, ring := range geom.Exterior {
			fmt.Printf("Exterior ring %d with %d vertices:\n", r, len(ring)-1)
			for i, p := range ring {
				fmt.Printf("  %d: %.6f, %.6f\n", i, p.Lon, p.Lat)
			}
		}
		for r, ring := range geom.Interiors {
			fmt.Printf("Interior ring %d with %d vertices\n", r, len(ring)-1)
		}
	}
}

// Calculate line length (simplified, assumes small distances)
func lineLength(line []s57.Position) float64 {
	length := 0.0
	for i := 1; i < len(line); i++ {
		dx := line[i].Lon - line[i-1].Lon
		dy := line[i].Lat - line[i-1].Lat
		length += math.Sqrt(dx*dx + dy*dy)
	}
	return length
}

func main() {
	parser := s57.NewParser()
	chart, err := parser.Parse("US5MA22M.000")
	if err != nil {
		log.Fatal(err)
	}

	// Process first few features
	count := 0
	for _, f := range chart.Features() {
		fmt.Printf("\n%s:\n", f.ObjectClass())
		processGeometry(f)

		geom := f.Geometry()
		if geom.Type == s57.GeometryTypeLineString {
			fmt.Printf("Length: %.6f degrees\n", lineLength(geom.Line))
		}

		count++
		if count >= 3 {
			break
		}
	}
}
