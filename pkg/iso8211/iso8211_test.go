package iso8211

import (
	"fmt"
)

// Test helpers for building synthetic ISO 8211 files in memory.
// Directory entries use 4-byte tags, 4-digit lengths and 4-digit
// positions throughout, matching common S-57 cell layout.

const testFieldControls = "1600;&   " // 9-byte field controls prefix

// ddrField describes one DDR field definition for test files.
type ddrField struct {
	tag    string
	name   string
	labels string
	format string
}

// drField is one raw field occurrence inside a test data record.
type drField struct {
	tag  string
	data []byte
}

// buildDDR encodes a DDR declaring the given field layouts.
func buildDDR(fields []ddrField) []byte {
	raw := make([]drField, 0, len(fields)+1)
	raw = append(raw, drField{tag: "0000", data: []byte("0000;&" + "   " + "TEST FILE")})
	for _, f := range fields {
		data := []byte(testFieldControls + f.name)
		data = append(data, UnitTerminator)
		data = append(data, f.labels...)
		data = append(data, UnitTerminator)
		data = append(data, f.format...)
		raw = append(raw, drField{tag: f.tag, data: data})
	}
	return buildRecord('L', "09", "4404", raw)
}

// buildDR encodes a data record. DR leaders leave the field control
// length and entry sizes blank, as real S-57 cells do.
func buildDR(fields []drField) []byte {
	return buildRecord('D', "  ", "    ", fields)
}

// buildRecord assembles leader + directory + field area. sizes is the
// four leader bytes 20-23 (length, position, reserved, tag).
func buildRecord(identifier byte, controlLength, sizes string, fields []drField) []byte {
	var dir, area []byte
	for _, f := range fields {
		data := append(append([]byte{}, f.data...), FieldTerminator)
		dir = append(dir, fmt.Sprintf("%-4s%04d%04d", f.tag, len(data), len(area))...)
		area = append(area, data...)
	}
	dir = append(dir, FieldTerminator)

	base := leaderSize + len(dir)
	total := base + len(area)

	leader := fmt.Sprintf("%05d3%cE1 %s%05d ! %s", total, identifier, controlLength, base, sizes)
	buf := append([]byte(leader), dir...)
	return append(buf, area...)
}

// le16 and le32 encode little-endian binary subfield values.
func le16(v uint16) []byte { return []byte{byte(v), byte(v >> 8)} }

func le32(v uint32) []byte {
	return []byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)}
}
