// Package iso8211 decodes the ISO/IEC 8211 generic record format used
// as the physical encoding of S-57 Electronic Navigational Charts.
//
// An ISO 8211 file opens with a Data Descriptive Record (DDR) whose
// field definitions describe how every later Data Record (DR) is laid
// out. Decoding is therefore two-phase: Decode first builds an immutable
// format table from the DDR, then applies it as a pure function over
// each DR's raw field bytes to produce ordered, typed subfield values.
//
// The package is transport-agnostic: Decode takes a byte buffer and
// performs no I/O. Interpretation of the decoded records (chart
// features, spatial topology) belongs to the S-57 layer above.
//
// Reference: ISO/IEC 8211:1994, S-57 Part 3 §2 (record structure).
package iso8211
