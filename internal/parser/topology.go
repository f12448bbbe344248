package parser

// Topology resolution: turning a feature's ordered spatial references
// into concrete geometry by walking the dataset's node and edge tables.
// Resolution is a pure function of the immutable dataset; nothing is
// cached on the model, and the resolver is safe for concurrent callers.
//
// Reference: S-57 Part 3 §4.7 (vector model), §5.1.3 (chain-node
// topology).

// GeometryType is the concrete shape of a resolved feature.
type GeometryType int

const (
	// GeometryNone marks meta/collection features (PRIM=255) that pass
	// through unresolved.
	GeometryNone GeometryType = iota
	GeometryPoint
	GeometryLine
	GeometryArea
)

func (t GeometryType) String() string {
	switch t {
	case GeometryNone:
		return "none"
	case GeometryPoint:
		return "point"
	case GeometryLine:
		return "line"
	case GeometryArea:
		return "area"
	}
	return "unknown"
}

// Geometry is a feature's resolved shape. Exactly the member matching
// Type is populated: Points for point features (several for sounding
// clusters), Line for polylines, Exterior/Interiors rings for areas.
type Geometry struct {
	Type      GeometryType
	Points    []Position
	Line      []Position
	Exterior  [][]Position
	Interiors [][]Position
}

// ResolveGeometry computes a feature's concrete geometry on demand from
// the dataset's node and edge collections, honoring reference order,
// orientation and usage semantics. Topology failures are per-feature:
// a dangling reference or broken chain is returned as an error and
// never repaired silently.
func ResolveGeometry(ds *Dataset, f *Feature) (Geometry, error) {
	switch f.Primitive {
	case PrimitiveNone:
		return Geometry{Type: GeometryNone}, nil
	case PrimitivePoint:
		return resolvePoint(ds, f)
	case PrimitiveLine:
		return resolveLine(ds, f)
	case PrimitiveArea:
		return resolveArea(ds, f)
	}
	return Geometry{}, &ErrInvalidGeometry{
		FeatureRCID: f.RCID,
		Primitive:   f.Primitive,
		Reason:      "unknown geometric primitive",
	}
}

// resolvePoint maps node references to positions. A single reference is
// the norm; sounding clusters expand to every 3-D point their node
// carries.
func resolvePoint(ds *Dataset, f *Feature) (Geometry, error) {
	if len(f.SpatialRefs) == 0 {
		return Geometry{}, &ErrInvalidGeometry{
			FeatureRCID: f.RCID,
			Primitive:   f.Primitive,
			Reason:      "point feature has no spatial references",
		}
	}

	geom := Geometry{Type: GeometryPoint}
	for _, ref := range f.SpatialRefs {
		node := lookupNode(ds, ref)
		if node == nil {
			return Geometry{}, &ErrDanglingReference{
				FeatureRCID: f.RCID,
				Target:      ref.Target,
				TargetRCID:  ref.RCID,
			}
		}
		geom.Points = append(geom.Points, node.Points...)
	}
	return geom, nil
}

// resolveLine concatenates referenced edges in FSPT order. Consecutive
// edges must share their junction node; a break surfaces as a
// disconnected chain.
func resolveLine(ds *Dataset, f *Feature) (Geometry, error) {
	if len(f.SpatialRefs) == 0 {
		return Geometry{}, &ErrInvalidGeometry{
			FeatureRCID: f.RCID,
			Primitive:   f.Primitive,
			Reason:      "line feature has no spatial references",
		}
	}

	var line []Position
	var prevEnd int64
	for i, ref := range f.SpatialRefs {
		seq, start, end, err := edgeSequence(ds, f, ref)
		if err != nil {
			return Geometry{}, err
		}
		if i > 0 && start != prevEnd {
			return Geometry{}, &ErrDisconnectedChain{
				FeatureRCID: f.RCID,
				EdgeRCID:    ref.RCID,
				Reason:      "edge does not continue from the previous edge's end node",
			}
		}
		if i > 0 {
			seq = seq[1:] // junction node already contributed
		}
		line = append(line, seq...)
		prevEnd = end
	}

	return Geometry{Type: GeometryLine, Line: line}, nil
}

// resolveArea partitions references by usage indicator into exterior
// and interior rings, builds each ring the same way as a line, and
// requires every ring to close on its starting node. An unclosed ring
// is an error, not a best-effort open polygon.
func resolveArea(ds *Dataset, f *Feature) (Geometry, error) {
	var exterior, interior []SpatialRef
	for _, ref := range f.SpatialRefs {
		if ref.Usage == UsageInterior {
			interior = append(interior, ref)
		} else {
			exterior = append(exterior, ref)
		}
	}
	if len(exterior) == 0 {
		return Geometry{}, &ErrInvalidGeometry{
			FeatureRCID: f.RCID,
			Primitive:   f.Primitive,
			Reason:      "area feature has no exterior boundary references",
		}
	}

	geom := Geometry{Type: GeometryArea}
	var err error
	if geom.Exterior, err = assembleRings(ds, f, exterior); err != nil {
		return Geometry{}, err
	}
	if len(interior) > 0 {
		if geom.Interiors, err = assembleRings(ds, f, interior); err != nil {
			return Geometry{}, err
		}
	}
	return geom, nil
}

// assembleRings chains edge references into closed rings. A ring closes
// when the running chain returns to its starting node; remaining
// references then open the next ring. A chain left open at the end is
// a disconnected chain.
func assembleRings(ds *Dataset, f *Feature, refs []SpatialRef) ([][]Position, error) {
	var rings [][]Position
	var ring []Position
	var ringStart, prevEnd int64

	for _, ref := range refs {
		seq, start, end, err := edgeSequence(ds, f, ref)
		if err != nil {
			return nil, err
		}

		if len(ring) == 0 {
			ringStart = start
			ring = seq
		} else {
			if start != prevEnd {
				return nil, &ErrDisconnectedChain{
					FeatureRCID: f.RCID,
					EdgeRCID:    ref.RCID,
					Reason:      "ring edge does not continue from the previous edge's end node",
				}
			}
			ring = append(ring, seq[1:]...)
		}
		prevEnd = end

		if end == ringStart {
			if len(ring) > 1 && !ring[0].Equal(ring[len(ring)-1]) {
				return nil, &ErrDisconnectedChain{
					FeatureRCID: f.RCID,
					EdgeRCID:    ref.RCID,
					Reason:      "ring returned to its start node with mismatched coordinates",
				}
			}
			rings = append(rings, ring)
			ring = nil
		}
	}

	if len(ring) > 0 {
		return nil, &ErrDisconnectedChain{
			FeatureRCID: f.RCID,
			Reason:      "ring does not close: last coordinate differs from the first",
		}
	}
	return rings, nil
}

// edgeSequence resolves one edge reference to its full coordinate run
// (start node, intermediate vertices, end node) with orientation
// applied, and returns the effective start/end node rcids after any
// reversal.
func edgeSequence(ds *Dataset, f *Feature, ref SpatialRef) ([]Position, int64, int64, error) {
	edge, ok := ds.Edges[ref.RCID]
	if !ok {
		return nil, 0, 0, &ErrDanglingReference{
			FeatureRCID: f.RCID,
			Target:      RecordNameEdge,
			TargetRCID:  ref.RCID,
		}
	}

	startNode := lookupNode(ds, SpatialRef{Target: RecordNameConnectedNode, RCID: edge.StartNode})
	endNode := lookupNode(ds, SpatialRef{Target: RecordNameConnectedNode, RCID: edge.EndNode})
	if startNode == nil || endNode == nil {
		missing := edge.StartNode
		if startNode != nil {
			missing = edge.EndNode
		}
		return nil, 0, 0, &ErrDanglingReference{
			FeatureRCID: f.RCID,
			Target:      RecordNameConnectedNode,
			TargetRCID:  missing,
		}
	}

	seq := make([]Position, 0, len(edge.Vertices)+2)
	seq = append(seq, startNode.Position())
	seq = append(seq, edge.Vertices...)
	seq = append(seq, endNode.Position())

	start, end := edge.StartNode, edge.EndNode
	if ref.Orientation == OrientationReverse {
		for i, j := 0, len(seq)-1; i < j; i, j = i+1, j-1 {
			seq[i], seq[j] = seq[j], seq[i]
		}
		start, end = end, start
	}
	return seq, start, end, nil
}

// lookupNode finds a node by reference. Connected nodes are tried
// first for edge endpoints; point features may reference either kind,
// so the other table serves as fallback.
func lookupNode(ds *Dataset, ref SpatialRef) *Node {
	switch ref.Target {
	case RecordNameIsolatedNode:
		if n, ok := ds.IsolatedNodes[ref.RCID]; ok {
			return n
		}
		if n, ok := ds.ConnectedNodes[ref.RCID]; ok {
			return n
		}
	default:
		if n, ok := ds.ConnectedNodes[ref.RCID]; ok {
			return n
		}
		if n, ok := ds.IsolatedNodes[ref.RCID]; ok {
			return n
		}
	}
	return nil
}
