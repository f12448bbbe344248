package parser

import (
	"fmt"

	"github.com/jamessvoss/XNautical-sub006/pkg/iso8211"
)

// DatasetIdentification is the decoded DSID field: the cell's identity
// and edition bookkeeping.
//
// Reference: S-57 Part 3 §7.3.1.1 table 7.4 (DSID field structure).
type DatasetIdentification struct {
	RCID               int64
	ExchangePurpose    int    // EXPP: 1=new dataset, 2=revision
	IntendedUsage      int    // INTU: navigational purpose band 1-6
	DatasetName        string // DSNM, cell name such as "US5MA22M"
	Edition            string // EDTN
	UpdateNumber       string // UPDN
	UpdateDate         string // UADT, YYYYMMDD
	IssueDate          string // ISDT, YYYYMMDD
	S57Edition         string // STED, e.g. "03.1"
	ProductSpec        int    // PRSP: 1=ENC, 2=ODD
	ProductSpecDesc    string // PSDN
	ProductSpecEdition string // PRED
	ApplicationProfile int    // PROF: 1=EN, 2=ER, 3=DD
	Agency             int    // AGEN, producing agency code
	Comment            string // COMT
}

// DatasetParameters is the decoded DSPM field. COMF and SOMF are the
// multiplication factors that turn raw integer coordinates and
// soundings into decimal degrees and depth units.
//
// Reference: S-57 Part 3 §7.3.2.1 (DSPM field structure).
type DatasetParameters struct {
	RCID             int64
	HorizontalDatum  int   // HDAT, 2=WGS-84
	VerticalDatum    int   // VDAT
	SoundingDatum    int   // SDAT
	CompilationScale int32 // CSCL, scale denominator
	DepthUnits       int   // DUNI
	HeightUnits      int   // HUNI
	PositionUnits    int   // PUNI
	CoordinateUnits  int   // COUN: 1=lat/lon, 2=eastings/northings
	COMF             int32 // coordinate multiplication factor
	SOMF             int32 // sounding multiplication factor
	Comment          string
}

// defaultParameters is used when a cell omits DSPM or declares
// non-positive factors: 10^7 for coordinates in 10^-7 degrees, 10 for
// depths in decimeters.
func defaultParameters() DatasetParameters {
	return DatasetParameters{COMF: 10000000, SOMF: 10}
}

// DiagnosticCode classifies non-fatal findings collected during the
// domain-mapping pass.
type DiagnosticCode int

const (
	// DiagUnsupportedRecordType marks a record whose primary field (or
	// leader identifier) is not one of DSID/DSPM/FRID/VRID. The record
	// is skipped, never guessed at.
	DiagUnsupportedRecordType DiagnosticCode = iota + 1

	// DiagDuplicateRecord marks a second DSID or DSPM; the first wins.
	DiagDuplicateRecord

	// DiagMalformedRecord marks a record that classified correctly but
	// carried an incomplete primary field.
	DiagMalformedRecord
)

func (c DiagnosticCode) String() string {
	switch c {
	case DiagUnsupportedRecordType:
		return "unsupported record type"
	case DiagDuplicateRecord:
		return "duplicate record"
	case DiagMalformedRecord:
		return "malformed record"
	}
	return "unknown"
}

// Diagnostic is one non-fatal finding, carrying enough context to
// locate the record in the input.
type Diagnostic struct {
	Code     DiagnosticCode
	Record   int   // zero-based data record index
	RecordID int64 // 0001 field value, -1 if unknown
	Tag      string
	Message  string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("record %d (id %d) %s: %s: %s", d.Record, d.RecordID, d.Tag, d.Code, d.Message)
}

// Dataset is one fully parsed S-57 cell: identification, parameters,
// and rcid-keyed collections of features, nodes and edges. It is built
// once per file and immutable thereafter; spatial references inside
// features are resolved lazily against the collections by the topology
// resolver.
type Dataset struct {
	ID     DatasetIdentification
	Params DatasetParameters

	Features       map[int64]*Feature
	IsolatedNodes  map[int64]*Node
	ConnectedNodes map[int64]*Node
	Edges          map[int64]*Edge

	// Diagnostics are the non-fatal findings from the mapping pass, in
	// record order.
	Diagnostics []Diagnostic

	hasID     bool
	hasParams bool
}

func newDataset() *Dataset {
	return &Dataset{
		Params:         defaultParameters(),
		Features:       make(map[int64]*Feature),
		IsolatedNodes:  make(map[int64]*Node),
		ConnectedNodes: make(map[int64]*Node),
		Edges:          make(map[int64]*Edge),
	}
}

// mapDSID populates the dataset identification from a decoded DSID field.
func mapDSID(field *iso8211.Field) DatasetIdentification {
	id := DatasetIdentification{}
	id.RCID, _ = intSubfield(field, "RCID")
	if v, ok := intSubfield(field, "EXPP"); ok {
		id.ExchangePurpose = int(v)
	}
	if v, ok := intSubfield(field, "INTU"); ok {
		id.IntendedUsage = int(v)
	}
	id.DatasetName = stringSubfield(field, "DSNM")
	id.Edition = stringSubfield(field, "EDTN")
	id.UpdateNumber = stringSubfield(field, "UPDN")
	id.UpdateDate = stringSubfield(field, "UADT")
	id.IssueDate = stringSubfield(field, "ISDT")
	id.S57Edition = stringSubfield(field, "STED")
	if v, ok := intSubfield(field, "PRSP"); ok {
		id.ProductSpec = int(v)
	}
	id.ProductSpecDesc = stringSubfield(field, "PSDN")
	id.ProductSpecEdition = stringSubfield(field, "PRED")
	if v, ok := intSubfield(field, "PROF"); ok {
		id.ApplicationProfile = int(v)
	}
	if v, ok := intSubfield(field, "AGEN"); ok {
		id.Agency = int(v)
	}
	id.Comment = stringSubfield(field, "COMT")
	return id
}

// mapDSPM populates dataset parameters from a decoded DSPM field,
// falling back to defaults for missing or non-positive factors.
func mapDSPM(field *iso8211.Field) DatasetParameters {
	p := defaultParameters()
	p.RCID, _ = intSubfield(field, "RCID")
	if v, ok := intSubfield(field, "HDAT"); ok {
		p.HorizontalDatum = int(v)
	}
	if v, ok := intSubfield(field, "VDAT"); ok {
		p.VerticalDatum = int(v)
	}
	if v, ok := intSubfield(field, "SDAT"); ok {
		p.SoundingDatum = int(v)
	}
	if v, ok := intSubfield(field, "CSCL"); ok {
		p.CompilationScale = int32(v)
	}
	if v, ok := intSubfield(field, "DUNI"); ok {
		p.DepthUnits = int(v)
	}
	if v, ok := intSubfield(field, "HUNI"); ok {
		p.HeightUnits = int(v)
	}
	if v, ok := intSubfield(field, "PUNI"); ok {
		p.PositionUnits = int(v)
	}
	if v, ok := intSubfield(field, "COUN"); ok {
		p.CoordinateUnits = int(v)
	}
	if v, ok := intSubfield(field, "COMF"); ok && v > 0 {
		p.COMF = int32(v)
	}
	if v, ok := intSubfield(field, "SOMF"); ok && v > 0 {
		p.SOMF = int32(v)
	}
	p.Comment = stringSubfield(field, "COMT")
	return p
}
