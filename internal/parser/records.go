package parser

// Record-level vocabulary shared by the whole S-57 layer.
//
// Reference: S-57 Part 3 §2.2 table 2.2 (record names) and §7.6.1 /
// §7.7.1 (feature and vector record identifiers).

// RecordName is the S-57 RCNM code identifying a record's kind. Together
// with RCID it forms the unique key of any chart object.
type RecordName int

const (
	RecordNameDataset       RecordName = 10  // DS - dataset general information
	RecordNameDatasetParams RecordName = 20  // DP - dataset geographic parameters
	RecordNameFeature       RecordName = 100 // FE - feature record
	RecordNameIsolatedNode  RecordName = 110 // VI - isolated node
	RecordNameConnectedNode RecordName = 120 // VC - connected node
	RecordNameEdge          RecordName = 130 // VE - edge
	RecordNameFace          RecordName = 140 // VF - face (full topology only)
)

func (n RecordName) String() string {
	switch n {
	case RecordNameDataset:
		return "DS"
	case RecordNameDatasetParams:
		return "DP"
	case RecordNameFeature:
		return "FE"
	case RecordNameIsolatedNode:
		return "VI"
	case RecordNameConnectedNode:
		return "VC"
	case RecordNameEdge:
		return "VE"
	case RecordNameFace:
		return "VF"
	}
	return "unknown"
}

// Primitive is the FRID PRIM code: the geometric kind of a feature.
type Primitive int

const (
	PrimitivePoint Primitive = 1
	PrimitiveLine  Primitive = 2
	PrimitiveArea  Primitive = 3
	PrimitiveNone  Primitive = 255 // meta/collection objects carry no geometry
)

func (p Primitive) String() string {
	switch p {
	case PrimitivePoint:
		return "point"
	case PrimitiveLine:
		return "line"
	case PrimitiveArea:
		return "area"
	case PrimitiveNone:
		return "none"
	}
	return "unknown"
}

// Orientation is the ORNT code on a spatial reference.
type Orientation int

const (
	OrientationForward Orientation = 1
	OrientationReverse Orientation = 2
	OrientationNull    Orientation = 255
)

// Usage is the USAG code on a spatial reference, partitioning area
// boundaries into exterior and interior rings.
type Usage int

const (
	UsageExterior          Usage = 1
	UsageInterior          Usage = 2
	UsageExteriorTruncated Usage = 3
	UsageNull              Usage = 255
)

// Mask is the MASK code on a spatial reference.
type Mask int

const (
	MaskMask Mask = 1
	MaskShow Mask = 2
	MaskNull Mask = 255
)

// TopologyIndicator is the TOPI code on a vector record pointer.
type TopologyIndicator int

const (
	TopologyBegin TopologyIndicator = 1
	TopologyEnd   TopologyIndicator = 2
	TopologyLeft  TopologyIndicator = 3
	TopologyRight TopologyIndicator = 4
	TopologyNull  TopologyIndicator = 255
)

// SpatialRef is one entry of a feature's FSPT list: a non-owning,
// oriented reference into the node/edge collections. Reference order is
// geometry-construction order and is preserved exactly as read.
type SpatialRef struct {
	Target      RecordName
	RCID        int64
	Orientation Orientation
	Usage       Usage
	Mask        Mask
}

// Position is one resolved coordinate: decimal degrees, plus the
// sounding value for 3-D points.
type Position struct {
	Lon      float64
	Lat      float64
	Depth    float64
	HasDepth bool
}

// Equal reports horizontal coincidence; depth is ignored because ring
// closure is a 2-D property.
func (p Position) Equal(other Position) bool {
	return p.Lon == other.Lon && p.Lat == other.Lat
}
