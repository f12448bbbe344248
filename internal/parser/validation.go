package parser

import (
	"fmt"
)

// ValidateCoordinate checks geographic bounds. Depth is deliberately
// unchecked: drying heights are negative and deep soundings large.
func ValidateCoordinate(lat, lon float64) error {
	if lat < -90.0 || lat > 90.0 {
		return &ErrInvalidCoordinate{Lat: lat, Lon: lon}
	}
	if lon < -180.0 || lon > 180.0 {
		return &ErrInvalidCoordinate{Lat: lat, Lon: lon}
	}
	return nil
}

// ValidateGeometry checks every coordinate of a resolved geometry
// against geographic bounds.
func ValidateGeometry(geom *Geometry) error {
	check := func(positions []Position, what string) error {
		for i, p := range positions {
			if err := ValidateCoordinate(p.Lat, p.Lon); err != nil {
				return fmt.Errorf("%s coordinate %d: %w", what, i, err)
			}
		}
		return nil
	}

	if err := check(geom.Points, "point"); err != nil {
		return err
	}
	if err := check(geom.Line, "line"); err != nil {
		return err
	}
	for r, ring := range geom.Exterior {
		if err := check(ring, fmt.Sprintf("exterior ring %d", r)); err != nil {
			return err
		}
	}
	for r, ring := range geom.Interiors {
		if err := check(ring, fmt.Sprintf("interior ring %d", r)); err != nil {
			return err
		}
	}
	return nil
}
