// Package s57 provides a clean public API for parsing IHO S-57 Electronic
// Navigational Charts.
package s57

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/rs/zerolog"

	"github.com/jamessvoss/XNautical-sub006/internal/logctx"
	"github.com/jamessvoss/XNautical-sub006/internal/parser"
	"github.com/jamessvoss/XNautical-sub006/pkg/iso8211"
)

// Parser parses S-57 Electronic Navigational Chart files.
//
// Create a parser with NewParser and use Parse or ParseWithOptions to read
// charts.
type Parser interface {
	// Parse reads an S-57 base cell (.000) and returns the parsed chart.
	Parse(filename string) (*Chart, error)

	// ParseWithOptions parses an S-57 file with custom options.
	//
	// Use ParseOptions to control validation, error handling, and feature
	// filtering.
	ParseWithOptions(filename string, opts ParseOptions) (*Chart, error)

	// ParseBytes parses an in-memory S-57 cell. The transport that
	// produced the bytes (file, object store, archive member) is the
	// caller's business.
	ParseBytes(data []byte) (*Chart, error)

	// ParseBytesWithOptions parses an in-memory S-57 cell with custom
	// options.
	ParseBytesWithOptions(data []byte, opts ParseOptions) (*Chart, error)
}

// NewParser creates a new S-57 parser with default settings.
//
// Example:
//
//	parser := s57.NewParser()
//	chart, err := parser.Parse("US5MA22M.000")
func NewParser() Parser {
	return &chartParser{logger: logctx.Default()}
}

// NewParserWithLogger creates a parser that reports non-fatal parse
// diagnostics through the given logger.
func NewParserWithLogger(logger zerolog.Logger) Parser {
	return &chartParser{logger: logger}
}

type chartParser struct {
	logger zerolog.Logger
}

func (p *chartParser) Parse(filename string) (*Chart, error) {
	return p.ParseWithOptions(filename, DefaultParseOptions())
}

func (p *chartParser) ParseWithOptions(filename string, opts ParseOptions) (*Chart, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read chart file: %w", err)
	}
	return p.ParseBytesWithOptions(data, opts)
}

func (p *chartParser) ParseBytes(data []byte) (*Chart, error) {
	return p.ParseBytesWithOptions(data, DefaultParseOptions())
}

func (p *chartParser) ParseBytesWithOptions(data []byte, opts ParseOptions) (*Chart, error) {
	file, err := iso8211.Decode(data)
	if err != nil {
		return nil, err
	}
	ctx := logctx.With(context.Background(), p.logger)
	return buildChart(parser.BuildDataset(ctx, file), opts)
}

// Diagnostic is one non-fatal finding from parsing: an unsupported or
// duplicate record, or a feature whose geometry could not be resolved.
type Diagnostic struct {
	Record   int   // zero-based data record index, -1 if not applicable
	RecordID int64 // 0001 record identifier, or feature rcid
	Tag      string
	Message  string
}

// Chart represents a parsed S-57 Electronic Navigational Chart.
//
// A chart contains metadata (cell name, edition, dates) and a collection of
// navigational features (depth contours, buoys, lights, hazards). Access
// metadata via methods like DatasetName, Edition, IssueDate; access features
// via Features, FeaturesInBounds, or FeatureCount.
type Chart struct {
	features []Feature
	index    *spatialIndex
	bounds   Bounds

	id          parser.DatasetIdentification
	params      parser.DatasetParameters
	diagnostics []Diagnostic
}

// buildChart resolves each feature's geometry against the dataset and
// assembles the public chart with its spatial index.
func buildChart(ds *parser.Dataset, opts ParseOptions) (*Chart, error) {
	chart := &Chart{id: ds.ID, params: ds.Params}
	for _, d := range ds.Diagnostics {
		chart.diagnostics = append(chart.diagnostics, Diagnostic{
			Record:   d.Record,
			RecordID: d.RecordID,
			Tag:      d.Tag,
			Message:  fmt.Sprintf("%s: %s", d.Code, d.Message),
		})
	}

	var filter map[string]bool
	if len(opts.ObjectClassFilter) > 0 {
		filter = make(map[string]bool, len(opts.ObjectClassFilter))
		for _, acronym := range opts.ObjectClassFilter {
			filter[acronym] = true
		}
	}

	// Map iteration order is not deterministic; feature order is part of
	// the API surface, so sort by rcid.
	rcids := make([]int64, 0, len(ds.Features))
	for rcid := range ds.Features {
		rcids = append(rcids, rcid)
	}
	sort.Slice(rcids, func(i, j int) bool { return rcids[i] < rcids[j] })

	for _, rcid := range rcids {
		f := ds.Features[rcid]
		acronym := parser.ObjectClassAcronym(f.ObjectClass)
		if filter != nil && !filter[acronym] {
			continue
		}

		geom, err := parser.ResolveGeometry(ds, f)
		if err == nil && opts.ValidateGeometry {
			err = parser.ValidateGeometry(&geom)
		}
		if err != nil {
			if !opts.SkipBrokenGeometry {
				return nil, err
			}
			chart.diagnostics = append(chart.diagnostics, Diagnostic{
				Record:   -1,
				RecordID: f.RCID,
				Tag:      "FRID",
				Message:  err.Error(),
			})
			geom = parser.Geometry{}
		}

		chart.features = append(chart.features, Feature{
			id:          f.RCID,
			objectCode:  f.ObjectClass,
			objectClass: acronym,
			geometry:    convertGeometry(geom),
			attributes:  f.Attributes,
			national:    f.NationalAttributes,
		})
	}

	chart.buildSpatialIndex()
	return chart, nil
}

// Features returns all features in the chart, ordered by record
// identifier.
func (c *Chart) Features() []Feature {
	return c.features
}

// FeatureCount returns the number of features in the chart.
func (c *Chart) FeatureCount() int {
	return len(c.features)
}

// Diagnostics returns the non-fatal findings collected while parsing:
// skipped records and features whose geometry could not be resolved.
func (c *Chart) Diagnostics() []Diagnostic {
	return c.diagnostics
}

// Bounds returns the geographic coverage area of the chart.
//
// When the cell carries M_COVR meta coverage features their union is
// authoritative; otherwise this is the minimum bounding box of all
// feature geometry.
func (c *Chart) Bounds() Bounds {
	return c.bounds
}

// DatasetName returns the chart's dataset name (cell identifier).
//
// Example: "US5MA22M", "GB5X01NE"
func (c *Chart) DatasetName() string { return c.id.DatasetName }

// Edition returns the chart's edition number.
func (c *Chart) Edition() string { return c.id.Edition }

// UpdateNumber returns the chart's update number.
//
// "0" indicates a base cell, higher numbers indicate applied updates.
func (c *Chart) UpdateNumber() string { return c.id.UpdateNumber }

// UpdateDate returns the update application date in YYYYMMDD format.
func (c *Chart) UpdateDate() string { return c.id.UpdateDate }

// IssueDate returns the chart issue date in YYYYMMDD format.
func (c *Chart) IssueDate() string { return c.id.IssueDate }

// S57Edition returns the S-57 standard edition used, e.g. "03.1".
func (c *Chart) S57Edition() string { return c.id.S57Edition }

// ProducingAgency returns the producing agency code.
//
// Example: 550 = NOAA (United States). The full agency list is in IHO
// S-57 Appendix A.
func (c *Chart) ProducingAgency() int { return c.id.Agency }

// Comment returns the metadata comment field.
func (c *Chart) Comment() string { return c.id.Comment }

// ExchangePurpose returns a human-readable exchange purpose: "New" for
// new datasets, "Revision" for updates.
func (c *Chart) ExchangePurpose() string {
	switch c.id.ExchangePurpose {
	case 1:
		return "New"
	case 2:
		return "Revision"
	}
	return "Unknown"
}

// UsageBand returns the ENC usage band of this chart.
func (c *Chart) UsageBand() UsageBand { return UsageBand(c.id.IntendedUsage) }

// HorizontalDatum returns the horizontal geodetic datum code.
//
// 2 = WGS-84, the norm for modern ENCs; other values are defined in
// S-57 Part 3 table 3.1.
func (c *Chart) HorizontalDatum() int { return c.params.HorizontalDatum }

// CompilationScale returns the compilation scale denominator, e.g.
// 50000 for a cell compiled at 1:50,000. Zero when unspecified.
func (c *Chart) CompilationScale() int32 { return c.params.CompilationScale }

// UsageBand defines the ENC usage band (navigational purpose) of a
// chart. Cells are organized by band; applications load the band
// matching the current display scale.
//
// Reference: S-57 Part 3 §7.3.1.1 (INTU field).
type UsageBand int

const (
	UsageBandUnknown  UsageBand = 0
	UsageBandOverview UsageBand = 1 // >= 1:1,500,000, route planning
	UsageBandGeneral  UsageBand = 2 // open ocean
	UsageBandCoastal  UsageBand = 3 // coastal navigation
	UsageBandApproach UsageBand = 4 // port approaches
	UsageBandHarbour  UsageBand = 5 // harbours and restricted waters
	UsageBandBerthing UsageBand = 6 // <= 1:4,000, final approach to berth
)

func (ub UsageBand) String() string {
	switch ub {
	case UsageBandOverview:
		return "Overview"
	case UsageBandGeneral:
		return "General"
	case UsageBandCoastal:
		return "Coastal"
	case UsageBandApproach:
		return "Approach"
	case UsageBandHarbour:
		return "Harbour"
	case UsageBandBerthing:
		return "Berthing"
	}
	return "Unknown"
}

// ScaleRange returns the recommended compilation scale denominators for
// this band as (min, max); zero marks an open end.
func (ub UsageBand) ScaleRange() (min, max int) {
	switch ub {
	case UsageBandOverview:
		return 1500000, 0
	case UsageBandGeneral:
		return 350000, 1500000
	case UsageBandCoastal:
		return 90000, 350000
	case UsageBandApproach:
		return 22000, 90000
	case UsageBandHarbour:
		return 4000, 22000
	case UsageBandBerthing:
		return 0, 4000
	}
	return 0, 0
}
