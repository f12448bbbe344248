package iso8211

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"
)

// Subfield is one decoded {label, value} pair from a field occurrence.
// Value holds string for A/I-less text, int64 for I and signed binary,
// uint64 for unsigned binary, float64 for R, and []byte for B bit fields.
type Subfield struct {
	Label string
	Value any
}

// Field is one decoded field occurrence within a data record: its tag
// and ordered subfield values. Repeating groups are flattened into the
// subfield sequence in occurrence order.
type Field struct {
	Tag       string
	Subfields []Subfield
}

// Get returns the first subfield value with the given label.
func (f *Field) Get(label string) (any, bool) {
	for _, s := range f.Subfields {
		if s.Label == label {
			return s.Value, true
		}
	}
	return nil, false
}

// DataRecord is one decoded data record (DR): its leader, the value of
// its 0001 record identifier field, and every field in directory order.
type DataRecord struct {
	Index  int // zero-based position among the file's data records
	Offset int // byte offset of the record within the file
	Leader Leader
	ID     int64 // value of the 0001 field, -1 when absent
	Fields []Field
}

// Field returns the first field with the given tag, or nil.
func (r *DataRecord) Field(tag string) *Field {
	for i := range r.Fields {
		if r.Fields[i].Tag == tag {
			return &r.Fields[i]
		}
	}
	return nil
}

// File is a fully decoded ISO 8211 file: the DDR's field definitions and
// every data record in file order.
type File struct {
	Leader      Leader // the DDR leader
	Definitions map[string]*FieldDefinition
	Records     []*DataRecord
}

// recordIDTag is the ISO 8211 record identifier field present in every DR.
const recordIDTag = "0001"

// Decode parses a complete ISO 8211 file from an in-memory buffer.
//
// The decode is strictly sequential: the DDR at the head of the buffer
// establishes the directory entry sizes and field layouts that every
// later record depends on. Structural errors (leader, directory, field
// definitions, subfield layout) abort the decode; Decode performs no
// file I/O and never mutates the input.
func Decode(buf []byte) (*File, error) {
	ddrLeader, err := parseLeader(buf, 0)
	if err != nil {
		return nil, err
	}
	if ddrLeader.Identifier != 'L' {
		return nil, &ErrMalformedLeader{
			Offset: 0,
			Reason: fmt.Sprintf("first record has leader identifier %q, expected DDR ('L')", ddrLeader.Identifier),
		}
	}

	// The DDR declares the directory layout once; it applies to every
	// subsequent record since DR leaders leave these fields blank.
	sizes := entrySizes{
		length:   ddrLeader.SizeFieldLength,
		position: ddrLeader.SizeFieldPosition,
		tag:      ddrLeader.SizeFieldTag,
	}
	if sizes.length == 0 || sizes.position == 0 || sizes.tag == 0 {
		return nil, &ErrMalformedLeader{Offset: 0, Reason: "DDR leader declares zero directory entry sizes"}
	}

	file := &File{
		Leader:      ddrLeader,
		Definitions: make(map[string]*FieldDefinition),
	}

	if err := decodeDDRFields(buf, ddrLeader, sizes, file); err != nil {
		return nil, err
	}

	offset := ddrLeader.RecordLength
	for index := 0; offset < len(buf); index++ {
		record, err := decodeDataRecord(buf, offset, index, sizes, file.Definitions)
		if err != nil {
			return nil, err
		}
		file.Records = append(file.Records, record)
		offset += record.Leader.RecordLength
	}

	return file, nil
}

// decodeDDRFields builds the field definition table from the DDR's
// directory and field area.
func decodeDDRFields(buf []byte, leader Leader, sizes entrySizes, file *File) error {
	entries, err := parseDirectory(buf, 0, leader, sizes)
	if err != nil {
		return err
	}
	area, err := fieldArea(buf, 0, leader)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		raw, err := fieldBytes(area, entry, 0)
		if err != nil {
			return err
		}
		def, err := parseFieldDefinition(entry.Tag, raw, leader.FieldControlLength)
		if err != nil {
			return err
		}
		file.Definitions[entry.Tag] = def
	}
	return nil
}

// decodeDataRecord decodes one DR at buf[offset] using the DDR's entry
// sizes and field definitions.
func decodeDataRecord(buf []byte, offset, index int, sizes entrySizes, defs map[string]*FieldDefinition) (*DataRecord, error) {
	leader, err := parseLeader(buf, offset)
	if err != nil {
		return nil, err
	}
	if offset+leader.RecordLength > len(buf) {
		return nil, &ErrMalformedLeader{
			Offset: offset,
			Reason: fmt.Sprintf("declared record length %d runs past end of file", leader.RecordLength),
		}
	}

	entries, err := parseDirectory(buf, offset, leader, sizes)
	if err != nil {
		return nil, err
	}
	area, err := fieldArea(buf, offset, leader)
	if err != nil {
		return nil, err
	}

	record := &DataRecord{
		Index:  index,
		Offset: offset,
		Leader: leader,
		ID:     -1,
		Fields: make([]Field, 0, len(entries)),
	}

	for _, entry := range entries {
		def, ok := defs[entry.Tag]
		if !ok {
			return nil, &ErrUnsupportedFieldFormat{
				Tag:    entry.Tag,
				Reason: fmt.Sprintf("record %d references a tag with no DDR definition", index),
			}
		}
		raw, err := fieldBytes(area, entry, offset)
		if err != nil {
			return nil, err
		}
		subfields, err := decodeFieldData(def, raw, record)
		if err != nil {
			return nil, err
		}
		record.Fields = append(record.Fields, Field{Tag: entry.Tag, Subfields: subfields})

		// The 0001 field leads every DR; keep its value for error
		// reporting on later fields.
		if entry.Tag == recordIDTag && len(subfields) > 0 {
			record.ID = numericValue(subfields[0].Value)
		}
	}

	return record, nil
}

// fieldArea returns the record's field area slice.
func fieldArea(buf []byte, offset int, leader Leader) ([]byte, error) {
	start := offset + leader.FieldAreaBase
	end := offset + leader.RecordLength
	if start > end || end > len(buf) {
		return nil, &ErrMalformedDirectory{Offset: offset, Reason: "field area extends past the record"}
	}
	return buf[start:end], nil
}

// fieldBytes slices one field occurrence out of the field area, checking
// the partition invariant: entries must lie inside the area.
func fieldBytes(area []byte, entry DirectoryEntry, offset int) ([]byte, error) {
	if entry.Position+entry.Length > len(area) {
		return nil, &ErrMalformedDirectory{
			Offset: offset,
			Reason: fmt.Sprintf("entry %s (pos %d, len %d) overflows the field area (%d bytes)",
				entry.Tag, entry.Position, entry.Length, len(area)),
		}
	}
	return area[entry.Position : entry.Position+entry.Length], nil
}

// decodeFieldData splits one field occurrence's raw bytes into ordered
// subfield values per the DDR definition. The consumed byte count must
// exactly equal the directory's declared length; anything else reports
// a field length mismatch with the record's id and tag for diagnosis.
func decodeFieldData(def *FieldDefinition, raw []byte, record *DataRecord) ([]Subfield, error) {
	declared := len(raw)
	body := raw
	terminated := false
	if len(body) > 0 && body[len(body)-1] == FieldTerminator {
		body = body[:len(body)-1]
		terminated = true
	}

	mismatch := func(consumed int) error {
		return &ErrFieldLengthMismatch{
			Record:   record.Index,
			RecordID: record.ID,
			Tag:      def.Tag,
			Declared: declared,
			Consumed: consumed,
		}
	}

	var subfields []Subfield
	pos := 0
	for {
		start := pos
		for _, sf := range def.Subfields {
			value, next, err := decodeSubfield(def.Tag, sf, body, pos)
			if err != nil {
				return nil, err
			}
			if next > len(body) {
				return nil, mismatch(pos)
			}
			subfields = append(subfields, Subfield{Label: sf.Label, Value: value})
			pos = next
		}
		if !def.Repeating || pos >= len(body) {
			break
		}
		if pos == start {
			// A cycle that consumes nothing would loop forever.
			return nil, mismatch(pos)
		}
	}

	consumed := pos
	if terminated {
		consumed++
	}
	if consumed != declared {
		return nil, mismatch(consumed)
	}

	return subfields, nil
}

// decodeSubfield decodes a single subfield at body[pos], returning the
// value and the position after it.
func decodeSubfield(tag string, sf SubfieldFormat, body []byte, pos int) (any, int, error) {
	switch sf.Kind {
	case KindString:
		if sf.Width > 0 {
			end := pos + sf.Width
			if end > len(body) {
				return nil, end, nil // length mismatch, caught by caller
			}
			return string(body[pos:end]), end, nil
		}
		text, next := delimitedText(body, pos)
		return text, next, nil

	case KindInt:
		end := pos + sf.Width
		if end > len(body) {
			return nil, end, nil
		}
		text := strings.TrimSpace(string(body[pos:end]))
		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return nil, 0, &ErrMalformedSubfield{Tag: tag, Label: sf.Label, Value: text}
		}
		return n, end, nil

	case KindReal:
		var text string
		var end int
		if sf.Width > 0 {
			end = pos + sf.Width
			if end > len(body) {
				return nil, end, nil
			}
			text = string(body[pos:end])
		} else {
			text, end = delimitedText(body, pos)
		}
		text = strings.TrimSpace(text)
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, 0, &ErrMalformedSubfield{Tag: tag, Label: sf.Label, Value: text}
		}
		return f, end, nil

	case KindBits:
		end := pos + sf.Width
		if end > len(body) {
			return nil, end, nil
		}
		value := make([]byte, sf.Width)
		copy(value, body[pos:end])
		return value, end, nil

	case KindBinary:
		end := pos + sf.Width
		if end > len(body) {
			return nil, end, nil
		}
		var u uint64
		switch sf.Width {
		case 1:
			u = uint64(body[pos])
		case 2:
			u = uint64(binary.LittleEndian.Uint16(body[pos:end]))
		case 4:
			u = uint64(binary.LittleEndian.Uint32(body[pos:end]))
		}
		if sf.Signed {
			switch sf.Width {
			case 1:
				return int64(int8(u)), end, nil
			case 2:
				return int64(int16(u)), end, nil
			case 4:
				return int64(int32(u)), end, nil
			}
		}
		return u, end, nil
	}

	return nil, 0, &ErrUnsupportedFieldFormat{Tag: tag, Reason: "unknown subfield kind"}
}

// delimitedText reads a variable-length text subfield: bytes up to the
// next unit terminator (or end of body for the field's last subfield).
// The terminator itself is consumed but not part of the value.
func delimitedText(body []byte, pos int) (string, int) {
	end := pos
	for end < len(body) && body[end] != UnitTerminator {
		end++
	}
	text := string(body[pos:end])
	if end < len(body) && body[end] == UnitTerminator {
		end++
	}
	return text, end
}

// numericValue coerces a decoded subfield value to int64 for record ids.
func numericValue(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case uint64:
		return int64(n)
	case float64:
		return int64(n)
	case string:
		parsed, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		if err != nil {
			return -1
		}
		return parsed
	}
	return -1
}
