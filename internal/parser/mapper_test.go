package parser

import (
	"context"
	"encoding/binary"
	"testing"

	"github.com/jamessvoss/XNautical-sub006/pkg/iso8211"
)

// Test fixtures build decoded ISO 8211 records directly; the byte-level
// decode has its own tests in pkg/iso8211.

func name(rcnm RecordName, rcid uint32) []byte {
	b := make([]byte, 5)
	b[0] = byte(rcnm)
	binary.LittleEndian.PutUint32(b[1:], rcid)
	return b
}

func subs(pairs ...any) []iso8211.Subfield {
	out := make([]iso8211.Subfield, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, iso8211.Subfield{Label: pairs[i].(string), Value: pairs[i+1]})
	}
	return out
}

func dataRecord(index int, leaderID byte, fields ...iso8211.Field) *iso8211.DataRecord {
	record := &iso8211.DataRecord{
		Index:  index,
		ID:     int64(index + 1),
		Leader: iso8211.Leader{Identifier: leaderID},
	}
	record.Fields = append([]iso8211.Field{
		{Tag: "0001", Subfields: subs("", uint64(index+1))},
	}, fields...)
	return record
}

func vridField(kind RecordName, rcid uint32) iso8211.Field {
	return iso8211.Field{Tag: "VRID", Subfields: subs(
		"RCNM", uint64(kind), "RCID", uint64(rcid), "RVER", uint64(1), "RUIN", uint64(1),
	)}
}

func sg2dField(coords ...int64) iso8211.Field {
	var s []iso8211.Subfield
	for i := 0; i+1 < len(coords); i += 2 {
		s = append(s,
			iso8211.Subfield{Label: "YCOO", Value: coords[i]},
			iso8211.Subfield{Label: "XCOO", Value: coords[i+1]},
		)
	}
	return iso8211.Field{Tag: "SG2D", Subfields: s}
}

func vrptField(entries ...[2]any) iso8211.Field {
	var s []iso8211.Subfield
	for _, e := range entries {
		s = append(s,
			iso8211.Subfield{Label: "NAME", Value: e[0]},
			iso8211.Subfield{Label: "ORNT", Value: uint64(OrientationNull)},
			iso8211.Subfield{Label: "USAG", Value: uint64(UsageNull)},
			iso8211.Subfield{Label: "TOPI", Value: e[1]},
			iso8211.Subfield{Label: "MASK", Value: uint64(MaskNull)},
		)
	}
	return iso8211.Field{Tag: "VRPT", Subfields: s}
}

func fsptField(refs ...SpatialRef) iso8211.Field {
	var s []iso8211.Subfield
	for _, r := range refs {
		s = append(s,
			iso8211.Subfield{Label: "NAME", Value: name(r.Target, uint32(r.RCID))},
			iso8211.Subfield{Label: "ORNT", Value: uint64(r.Orientation)},
			iso8211.Subfield{Label: "USAG", Value: uint64(r.Usage)},
			iso8211.Subfield{Label: "MASK", Value: uint64(r.Mask)},
		)
	}
	return iso8211.Field{Tag: "FSPT", Subfields: s}
}

func TestBuildDatasetIdentification(t *testing.T) {
	file := &iso8211.File{Records: []*iso8211.DataRecord{
		dataRecord(0, 'D', iso8211.Field{Tag: "DSID", Subfields: subs(
			"RCNM", uint64(10), "RCID", uint64(1), "EXPP", uint64(1), "INTU", uint64(5),
			"DSNM", "US5MA22M", "EDTN", "12", "UPDN", "0",
			"UADT", "20250107", "ISDT", "20240101", "STED", "03.1",
			"PRSP", uint64(1), "PSDN", "", "PRED", "2.0", "PROF", uint64(1),
			"AGEN", uint64(550), "COMT", "",
		)}),
		dataRecord(1, 'D', iso8211.Field{Tag: "DSPM", Subfields: subs(
			"RCNM", uint64(20), "RCID", uint64(1), "HDAT", uint64(2),
			"VDAT", uint64(23), "SDAT", uint64(23), "CSCL", uint64(25000),
			"DUNI", uint64(1), "HUNI", uint64(1), "PUNI", uint64(1), "COUN", uint64(1),
			"COMF", uint64(10000000), "SOMF", uint64(10),
		)}),
	}}

	ds := BuildDataset(context.Background(), file)

	if ds.ID.DatasetName != "US5MA22M" {
		t.Errorf("DatasetName = %q, want US5MA22M", ds.ID.DatasetName)
	}
	if ds.ID.Agency != 550 {
		t.Errorf("Agency = %d, want 550", ds.ID.Agency)
	}
	if ds.Params.CompilationScale != 25000 {
		t.Errorf("CompilationScale = %d, want 25000", ds.Params.CompilationScale)
	}
	if ds.Params.COMF != 10000000 || ds.Params.SOMF != 10 {
		t.Errorf("factors = %d/%d, want 10000000/10", ds.Params.COMF, ds.Params.SOMF)
	}
	if len(ds.Diagnostics) != 0 {
		t.Errorf("unexpected diagnostics: %v", ds.Diagnostics)
	}
}

func TestBuildDatasetDuplicateDSID(t *testing.T) {
	file := &iso8211.File{Records: []*iso8211.DataRecord{
		dataRecord(0, 'D', iso8211.Field{Tag: "DSID", Subfields: subs("DSNM", "FIRST")}),
		dataRecord(1, 'D', iso8211.Field{Tag: "DSID", Subfields: subs("DSNM", "SECOND")}),
	}}

	ds := BuildDataset(context.Background(), file)

	if ds.ID.DatasetName != "FIRST" {
		t.Errorf("DatasetName = %q: duplicate DSID must keep the first", ds.ID.DatasetName)
	}
	if len(ds.Diagnostics) != 1 || ds.Diagnostics[0].Code != DiagDuplicateRecord {
		t.Errorf("diagnostics = %v, want one DiagDuplicateRecord", ds.Diagnostics)
	}
}

func TestBuildDatasetFeature(t *testing.T) {
	file := &iso8211.File{Records: []*iso8211.DataRecord{
		dataRecord(0, 'D',
			iso8211.Field{Tag: "FRID", Subfields: subs(
				"RCNM", uint64(100), "RCID", uint64(7), "PRIM", uint64(PrimitiveArea),
				"GRUP", uint64(1), "OBJL", uint64(42), "RVER", uint64(1), "RUIN", uint64(1),
			)},
			iso8211.Field{Tag: "FOID", Subfields: subs(
				"AGEN", uint64(550), "FIDN", uint64(123456), "FIDS", uint64(2),
			)},
			iso8211.Field{Tag: "ATTF", Subfields: subs(
				"ATTL", uint64(87), "ATVL", "2.5",
				"ATTL", uint64(88), "ATVL", "10",
			)},
			fsptField(
				SpatialRef{Target: RecordNameEdge, RCID: 1, Orientation: OrientationForward, Usage: UsageExterior, Mask: MaskShow},
				SpatialRef{Target: RecordNameEdge, RCID: 2, Orientation: OrientationReverse, Usage: UsageExterior, Mask: MaskShow},
			),
		),
	}}

	ds := BuildDataset(context.Background(), file)

	feature, ok := ds.Features[7]
	if !ok {
		t.Fatalf("feature 7 missing; features = %v", ds.Features)
	}
	if feature.ObjectClass != 42 || ObjectClassAcronym(feature.ObjectClass) != "DEPARE" {
		t.Errorf("ObjectClass = %d (%s), want 42 (DEPARE)",
			feature.ObjectClass, ObjectClassAcronym(feature.ObjectClass))
	}
	if feature.Primitive != PrimitiveArea {
		t.Errorf("Primitive = %v, want area", feature.Primitive)
	}
	if feature.Agency != 550 || feature.FIDN != 123456 || feature.FIDS != 2 {
		t.Errorf("FOID = %d/%d/%d", feature.Agency, feature.FIDN, feature.FIDS)
	}
	if feature.Attributes[87] != "2.5" || feature.Attributes[88] != "10" {
		t.Errorf("Attributes = %v", feature.Attributes)
	}

	// FSPT order is geometry-construction order and must be preserved.
	if len(feature.SpatialRefs) != 2 {
		t.Fatalf("SpatialRefs = %v, want 2 entries", feature.SpatialRefs)
	}
	if feature.SpatialRefs[0].RCID != 1 || feature.SpatialRefs[1].RCID != 2 {
		t.Errorf("spatial reference order not preserved: %v", feature.SpatialRefs)
	}
	if feature.SpatialRefs[1].Orientation != OrientationReverse {
		t.Errorf("orientation = %v, want reverse", feature.SpatialRefs[1].Orientation)
	}
}

func TestBuildDatasetVectors(t *testing.T) {
	file := &iso8211.File{Records: []*iso8211.DataRecord{
		// Isolated node with a 3-D sounding cluster.
		dataRecord(0, 'D',
			vridField(RecordNameIsolatedNode, 11),
			iso8211.Field{Tag: "SG3D", Subfields: subs(
				"YCOO", int64(420000000), "XCOO", int64(-710000000), "VE3D", int64(52),
				"YCOO", int64(420000010), "XCOO", int64(-710000010), "VE3D", int64(104),
			)},
		),
		// Connected nodes.
		dataRecord(1, 'D', vridField(RecordNameConnectedNode, 21), sg2dField(10000000, 20000000)),
		dataRecord(2, 'D', vridField(RecordNameConnectedNode, 22), sg2dField(10000000, 30000000)),
		// Edge from node 21 to node 22 with one intermediate vertex.
		dataRecord(3, 'D',
			vridField(RecordNameEdge, 31),
			vrptField(
				[2]any{name(RecordNameConnectedNode, 21), uint64(TopologyBegin)},
				[2]any{name(RecordNameConnectedNode, 22), uint64(TopologyEnd)},
			),
			sg2dField(15000000, 25000000),
		),
	}}

	ds := BuildDataset(context.Background(), file)

	node := ds.IsolatedNodes[11]
	if node == nil {
		t.Fatal("isolated node 11 missing")
	}
	if len(node.Points) != 2 {
		t.Fatalf("sounding cluster decoded %d points, want 2", len(node.Points))
	}
	if node.Points[0].Lat != 42.0 || node.Points[0].Lon != -71.0 {
		t.Errorf("point 0 = %+v, want lat 42 lon -71", node.Points[0])
	}
	if !node.Points[0].HasDepth || node.Points[0].Depth != 5.2 {
		t.Errorf("point 0 depth = %+v, want 5.2", node.Points[0])
	}

	edge := ds.Edges[31]
	if edge == nil {
		t.Fatal("edge 31 missing")
	}
	if edge.StartNode != 21 || edge.EndNode != 22 {
		t.Errorf("edge endpoints = %d/%d, want 21/22", edge.StartNode, edge.EndNode)
	}
	if len(edge.Vertices) != 1 || edge.Vertices[0].Lat != 1.5 {
		t.Errorf("edge vertices = %v", edge.Vertices)
	}
}

func TestBuildDatasetUnsupportedRecords(t *testing.T) {
	file := &iso8211.File{Records: []*iso8211.DataRecord{
		// Unknown primary field: reported once, present in no collection.
		dataRecord(0, 'D', iso8211.Field{Tag: "XYZW", Subfields: subs("A", "b")}),
		// Update record: leader identifier 'R'.
		dataRecord(1, 'R', iso8211.Field{Tag: "FRID", Subfields: subs(
			"RCNM", uint64(100), "RCID", uint64(9), "PRIM", uint64(1),
		)}),
	}}

	ds := BuildDataset(context.Background(), file)

	if len(ds.Features)+len(ds.IsolatedNodes)+len(ds.ConnectedNodes)+len(ds.Edges) != 0 {
		t.Error("unsupported records must not appear in any dataset collection")
	}
	if len(ds.Diagnostics) != 2 {
		t.Fatalf("diagnostics = %v, want 2", ds.Diagnostics)
	}
	for _, d := range ds.Diagnostics {
		if d.Code != DiagUnsupportedRecordType {
			t.Errorf("diagnostic %v, want DiagUnsupportedRecordType", d)
		}
	}
}
