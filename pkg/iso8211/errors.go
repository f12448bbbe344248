package iso8211

import (
	"fmt"
)

// ErrMalformedLeader indicates a record leader that does not conform to
// ISO 8211: non-digit content in a numeric leader field, a truncated
// leader, or a declared record length of zero.
type ErrMalformedLeader struct {
	Offset int    // byte offset of the record start within the file
	Reason string
}

func (e *ErrMalformedLeader) Error() string {
	return fmt.Sprintf("malformed leader at offset %d: %s", e.Offset, e.Reason)
}

// ErrMalformedDirectory indicates a directory whose byte count does not
// divide evenly by the entry width, or that runs past the record without
// a field terminator.
type ErrMalformedDirectory struct {
	Offset int // byte offset of the record start within the file
	Reason string
}

func (e *ErrMalformedDirectory) Error() string {
	return fmt.Sprintf("malformed directory at offset %d: %s", e.Offset, e.Reason)
}

// ErrUnsupportedFieldFormat indicates a DDR format-controls string that
// could not be parsed, or a data record field with no DDR definition.
type ErrUnsupportedFieldFormat struct {
	Tag    string
	Format string
	Reason string
}

func (e *ErrUnsupportedFieldFormat) Error() string {
	if e.Format != "" {
		return fmt.Sprintf("unsupported field format for tag %s: %q: %s", e.Tag, e.Format, e.Reason)
	}
	return fmt.Sprintf("unsupported field format for tag %s: %s", e.Tag, e.Reason)
}

// ErrMalformedSubfield indicates subfield content that does not match its
// declared format, e.g. non-numeric bytes in an I or R subfield.
type ErrMalformedSubfield struct {
	Tag   string
	Label string
	Value string
}

func (e *ErrMalformedSubfield) Error() string {
	return fmt.Sprintf("malformed subfield %s/%s: %q is not valid for its declared format",
		e.Tag, e.Label, e.Value)
}

// ErrFieldLengthMismatch indicates that decoding a field occurrence
// consumed a byte count different from the length declared in the
// record's directory. This signals either a corrupt file or a field
// definition that does not match the data.
type ErrFieldLengthMismatch struct {
	Record   int    // zero-based data record index within the file
	RecordID int64  // value of the record's 0001 field, -1 if unknown
	Tag      string
	Declared int
	Consumed int
}

func (e *ErrFieldLengthMismatch) Error() string {
	return fmt.Sprintf("field length mismatch in record %d (id %d), tag %s: declared %d bytes, consumed %d",
		e.Record, e.RecordID, e.Tag, e.Declared, e.Consumed)
}
