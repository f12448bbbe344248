package parser

import (
	"context"
	"fmt"

	"github.com/jamessvoss/XNautical-sub006/internal/logctx"
	"github.com/jamessvoss/XNautical-sub006/pkg/iso8211"
)

// Tags of the primary fields that classify a data record.
const (
	tagDSID = "DSID"
	tagDSPM = "DSPM"
	tagFRID = "FRID"
	tagVRID = "VRID"
)

// updateLeaderIdentifier marks a DR belonging to an update cell (ER
// profile). Update merge semantics are not supported; such records are
// reported and skipped rather than guessed at.
const updateLeaderIdentifier = 'R'

// BuildDataset runs the domain-mapping state machine over a decoded
// ISO 8211 file, classifying each data record by its primary field and
// aggregating the results into an immutable dataset.
//
// Classification problems are collected as diagnostics on the returned
// dataset rather than aborting: a single bad record must not discard an
// otherwise valid chart. Structural errors belong to the iso8211 layer
// and never reach this function.
func BuildDataset(ctx context.Context, file *iso8211.File) *Dataset {
	logger := logctx.From(ctx)
	ds := newDataset()

	for _, record := range file.Records {
		if record.Leader.Identifier == updateLeaderIdentifier {
			ds.diagnose(Diagnostic{
				Code:     DiagUnsupportedRecordType,
				Record:   record.Index,
				RecordID: record.ID,
				Message:  "update record (leader identifier 'R'); update merging is not supported",
			})
			continue
		}

		switch tag, field := primaryField(record); tag {
		case tagDSID:
			if ds.hasID {
				ds.diagnose(Diagnostic{
					Code:     DiagDuplicateRecord,
					Record:   record.Index,
					RecordID: record.ID,
					Tag:      tagDSID,
					Message:  "second DSID record; keeping the first",
				})
				continue
			}
			ds.ID = mapDSID(field)
			ds.hasID = true

		case tagDSPM:
			if ds.hasParams {
				ds.diagnose(Diagnostic{
					Code:     DiagDuplicateRecord,
					Record:   record.Index,
					RecordID: record.ID,
					Tag:      tagDSPM,
					Message:  "second DSPM record; keeping the first",
				})
				continue
			}
			ds.Params = mapDSPM(field)
			ds.hasParams = true

		case tagFRID:
			feature, ok := mapFeature(record)
			if !ok {
				ds.diagnose(Diagnostic{
					Code:     DiagMalformedRecord,
					Record:   record.Index,
					RecordID: record.ID,
					Tag:      tagFRID,
					Message:  "feature record with unusable FRID field",
				})
				continue
			}
			ds.Features[feature.RCID] = feature

		case tagVRID:
			vector, ok := mapVector(record, ds.Params)
			if !ok {
				ds.diagnose(Diagnostic{
					Code:     DiagUnsupportedRecordType,
					Record:   record.Index,
					RecordID: record.ID,
					Tag:      tagVRID,
					Message:  "vector record with unrecognized RCNM",
				})
				continue
			}
			switch {
			case vector.node != nil && vector.node.Kind == RecordNameIsolatedNode:
				ds.IsolatedNodes[vector.node.RCID] = vector.node
			case vector.node != nil:
				ds.ConnectedNodes[vector.node.RCID] = vector.node
			case vector.edge != nil:
				ds.Edges[vector.edge.RCID] = vector.edge
			}

		default:
			ds.diagnose(Diagnostic{
				Code:     DiagUnsupportedRecordType,
				Record:   record.Index,
				RecordID: record.ID,
				Tag:      tag,
				Message:  fmt.Sprintf("primary field %q is not a supported record type", tag),
			})
		}
	}

	for _, d := range ds.Diagnostics {
		logger.Warn().
			Int("record", d.Record).
			Int64("record_id", d.RecordID).
			Str("tag", d.Tag).
			Str("code", d.Code.String()).
			Msg(d.Message)
	}
	logger.Debug().
		Str("cell", ds.ID.DatasetName).
		Int("features", len(ds.Features)).
		Int("isolated_nodes", len(ds.IsolatedNodes)).
		Int("connected_nodes", len(ds.ConnectedNodes)).
		Int("edges", len(ds.Edges)).
		Msg("dataset mapped")

	return ds
}

func (ds *Dataset) diagnose(d Diagnostic) {
	ds.Diagnostics = append(ds.Diagnostics, d)
}

// primaryField returns the record's first field after the 0001 record
// identifier; its tag decides how the record is mapped.
func primaryField(record *iso8211.DataRecord) (string, *iso8211.Field) {
	for i := range record.Fields {
		if record.Fields[i].Tag == "0001" {
			continue
		}
		return record.Fields[i].Tag, &record.Fields[i]
	}
	return "", nil
}
