package main

import (
	"fmt"
	"log"

	"github.com/jamessvoss/XNautical-sub006/pkg/s57"
)

// S-57 attribute codes used below. The full catalogue is IHO S-57
// Appendix A chapter 2.
const (
	attrColour  = 75  // COLOUR
	attrHeight  = 86  // HEIGHT
	attrObjName = 116 // OBJNAM
	attrValDco  = 174 // VALDCO, depth contour value
	attrValSou  = 179 // VALSOU, sounding value
)

func printFeatureDetails(feature s57.Feature) {
	fmt.Printf("Feature: %s (ID %d)\n", feature.ObjectClass(), feature.ID())

	// Object name (if present)
	if name, ok := feature.Attribute(attrObjName); ok {
		fmt.Printf("  Name: %s\n", name)
	}

	// Depth value for depth contours
	if feature.ObjectClass() == "DEPCNT" {
		if depth, ok := feature.Attribute(attrValDco); ok {
			fmt.Printf("  Depth: %s meters\n", depth)
		}
	}

	// Light characteristics
	if feature.ObjectClass() == "LIGHTS" {
		if colour, ok := feature.Attribute(attrColour); ok {
			fmt.Printf("  Color codes: %s\n", colour)
		}
		if height, ok := feature.Attribute(attrHeight); ok {
			fmt.Printf("  Height: %s meters\n", height)
		}
	}

	// Sounding clusters carry depths on the geometry itself
	if feature.ObjectClass() == "SOUNDG" {
		for _, p := range feature.Geometry().Points {
			if p.HasDepth {
				fmt.Printf("  Sounding: %.1f meters at %.5f,%.5f\n", p.Depth, p.Lon, p.Lat)
			}
		}
	}
}

func main() {
	parser := s57.NewParser()
	chart, err := parser.Parse("US5MA22M.000")
	if err != nil {
		log.Fatal(err)
	}

	// Print details for first few features
	count := 0
	for _, f := range chart.Features() {
		printFeatureDetails(f)
		count++
		if count >= 5 {
			break
		}
	}
}
