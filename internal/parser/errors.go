package parser

import (
	"fmt"
)

// ErrDanglingReference indicates a spatial reference whose target rcid
// is absent from the dataset's node or edge collections.
type ErrDanglingReference struct {
	FeatureRCID int64
	Target      RecordName
	TargetRCID  int64
}

func (e *ErrDanglingReference) Error() string {
	return fmt.Sprintf("feature %d references missing %s record %d",
		e.FeatureRCID, e.Target, e.TargetRCID)
}

// ErrDisconnectedChain indicates a line or ring whose consecutive edges
// do not share an endpoint node, or a ring that does not close. The
// break is surfaced, never auto-repaired.
type ErrDisconnectedChain struct {
	FeatureRCID int64
	EdgeRCID    int64
	Reason      string
}

func (e *ErrDisconnectedChain) Error() string {
	if e.EdgeRCID != 0 {
		return fmt.Sprintf("feature %d: disconnected chain at edge %d: %s",
			e.FeatureRCID, e.EdgeRCID, e.Reason)
	}
	return fmt.Sprintf("feature %d: disconnected chain: %s", e.FeatureRCID, e.Reason)
}

// ErrInvalidGeometry indicates a feature whose spatial references cannot
// form a geometry of its declared primitive.
type ErrInvalidGeometry struct {
	FeatureRCID int64
	Primitive   Primitive
	Reason      string
}

func (e *ErrInvalidGeometry) Error() string {
	return fmt.Sprintf("feature %d: invalid %s geometry: %s",
		e.FeatureRCID, e.Primitive, e.Reason)
}

// ErrInvalidCoordinate indicates a coordinate outside geographic bounds.
type ErrInvalidCoordinate struct {
	Lat, Lon float64
}

func (e *ErrInvalidCoordinate) Error() string {
	return fmt.Sprintf("invalid coordinate: lat=%f lon=%f (lat must be ±90, lon must be ±180)",
		e.Lat, e.Lon)
}
