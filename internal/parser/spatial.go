package parser

import (
	"github.com/jamessvoss/XNautical-sub006/pkg/iso8211"
)

// Node is an isolated or connected node: one position, or several for
// multi-point sounding clusters (SG3D). Connected nodes additionally
// serve as edge endpoints.
//
// Reference: S-57 Part 3 §7.7.1 (vector records), §4.7 (geometry).
type Node struct {
	RCID    int64
	Kind    RecordName // RecordNameIsolatedNode or RecordNameConnectedNode
	Version int
	Points  []Position
}

// Position returns the node's primary position.
func (n *Node) Position() Position {
	if len(n.Points) == 0 {
		return Position{}
	}
	return n.Points[0]
}

// Edge is one edge record: endpoint node rcids from its VRPT field and
// intermediate vertices from SG2D, exclusive of the endpoints. Per
// S-57 §5.1.4.4 the endpoint geometry belongs to the nodes, not the
// edge.
type Edge struct {
	RCID      int64
	Version   int
	StartNode int64
	EndNode   int64
	Vertices  []Position
}

// vectorRecord is the intermediate result of mapping a VRID record:
// exactly one of node/edge is set.
type vectorRecord struct {
	node *Node
	edge *Edge
}

// mapVector builds a node or edge from a record whose primary field is
// VRID, scaling raw integer coordinates by the dataset's COMF/SOMF
// factors.
func mapVector(record *iso8211.DataRecord, params DatasetParameters) (vectorRecord, bool) {
	vrid := record.Field("VRID")
	if vrid == nil {
		return vectorRecord{}, false
	}

	kind := RecordName(0)
	if v, ok := intSubfield(vrid, "RCNM"); ok {
		kind = RecordName(v)
	}
	rcid, _ := intSubfield(vrid, "RCID")
	version := 0
	if v, ok := intSubfield(vrid, "RVER"); ok {
		version = int(v)
	}

	switch kind {
	case RecordNameIsolatedNode, RecordNameConnectedNode:
		node := &Node{RCID: rcid, Kind: kind, Version: version}
		if sg3d := record.Field("SG3D"); sg3d != nil {
			node.Points = mapCoordinates(sg3d, params, true)
		} else if sg2d := record.Field("SG2D"); sg2d != nil {
			node.Points = mapCoordinates(sg2d, params, false)
		}
		return vectorRecord{node: node}, true

	case RecordNameEdge:
		edge := &Edge{RCID: rcid, Version: version}
		if vrpt := record.Field("VRPT"); vrpt != nil {
			edge.StartNode, edge.EndNode = mapEdgeEndpoints(vrpt)
		}
		if sg2d := record.Field("SG2D"); sg2d != nil {
			edge.Vertices = mapCoordinates(sg2d, params, false)
		}
		return vectorRecord{edge: edge}, true
	}

	return vectorRecord{}, false
}

// mapCoordinates converts the repeated YCOO/XCOO(/VE3D) groups of an
// SG2D or SG3D field into positions: raw integer ÷ COMF = decimal
// degrees, raw sounding ÷ SOMF = depth.
func mapCoordinates(field *iso8211.Field, params DatasetParameters, threeD bool) []Position {
	comf := float64(params.COMF)
	somf := float64(params.SOMF)

	var points []Position
	var current Position
	for _, sub := range field.Subfields {
		v, ok := coerceInt(sub.Value)
		if !ok {
			continue
		}
		switch sub.Label {
		case "YCOO":
			current = Position{Lat: float64(v) / comf}
		case "XCOO":
			current.Lon = float64(v) / comf
			if !threeD {
				points = append(points, current)
			}
		case "VE3D":
			current.Depth = float64(v) / somf
			current.HasDepth = true
			points = append(points, current)
		}
	}
	return points
}

// mapEdgeEndpoints extracts the beginning and end node rcids from the
// edge's VRPT groups. Topology indicators are authoritative; edges
// lacking them fall back to reference order, which is how producers
// emit them in practice.
func mapEdgeEndpoints(field *iso8211.Field) (start, end int64) {
	var target RecordName
	var rcid int64
	nodeRefs := 0
	for _, sub := range field.Subfields {
		switch sub.Label {
		case "NAME":
			if t, id, ok := splitName(sub.Value); ok {
				target, rcid = t, id
			}
		case "TOPI":
			if target != RecordNameIsolatedNode && target != RecordNameConnectedNode {
				continue
			}
			topi, _ := coerceInt(sub.Value)
			switch TopologyIndicator(topi) {
			case TopologyBegin:
				start = rcid
			case TopologyEnd:
				end = rcid
			default:
				if nodeRefs == 0 && start == 0 {
					start = rcid
				} else if end == 0 {
					end = rcid
				}
			}
			nodeRefs++
		}
	}
	return start, end
}
