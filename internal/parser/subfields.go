package parser

import (
	"encoding/binary"
	"strconv"
	"strings"

	"github.com/jamessvoss/XNautical-sub006/pkg/iso8211"
)

// Coercion helpers over decoded ISO 8211 subfields. DDRs in the wild
// declare the same S-57 subfield as binary in one producer's cells and
// ASCII in another's, so every accessor accepts both.

func intSubfield(f *iso8211.Field, label string) (int64, bool) {
	v, ok := f.Get(label)
	if !ok {
		return 0, false
	}
	return coerceInt(v)
}

func coerceInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case uint64:
		return int64(n), true
	case float64:
		return int64(n), true
	case string:
		parsed, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	}
	return 0, false
}

func stringSubfield(f *iso8211.Field, label string) string {
	v, ok := f.Get(label)
	if !ok {
		return ""
	}
	return coerceString(v)
}

func coerceString(v any) string {
	switch s := v.(type) {
	case string:
		return strings.TrimRight(s, "\x00 ")
	case int64:
		return strconv.FormatInt(s, 10)
	case uint64:
		return strconv.FormatUint(s, 10)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case []byte:
		return string(s)
	}
	return ""
}

// splitName unpacks the 5-byte NAME bit field of FSPT/VRPT entries:
// one RCNM byte followed by a 4-byte little-endian RCID.
//
// Reference: S-57 Part 3 §2.2 (NAME encoding).
func splitName(v any) (RecordName, int64, bool) {
	b, ok := v.([]byte)
	if !ok || len(b) < 5 {
		return 0, 0, false
	}
	return RecordName(b[0]), int64(binary.LittleEndian.Uint32(b[1:5])), true
}
