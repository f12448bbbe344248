package iso8211

import (
	"fmt"
)

// Terminator bytes defined by ISO/IEC 8211.
const (
	// FieldTerminator marks the end of a directory and of every field's
	// data area.
	FieldTerminator = 0x1E

	// UnitTerminator separates variable-length subfields within a field.
	UnitTerminator = 0x1F
)

// leaderSize is the fixed size of every record leader.
const leaderSize = 24

// Leader is the fixed 24-byte header at the start of every ISO 8211
// record. The three entry-size fields are only populated in the DDR
// leader; data record leaders leave them blank and inherit the DDR's
// values.
//
// Reference: ISO/IEC 8211 §6.1.1, S-57 Part 3 §2.2 (record structure).
type Leader struct {
	RecordLength         int  // bytes 0-4, total length of this record
	InterchangeLevel     byte // byte 5
	Identifier           byte // byte 6: 'L' = DDR, 'D' or ' ' = DR, 'R' = update DR
	CodeExtension        byte // byte 7
	Version              byte // byte 8
	ApplicationIndicator byte // byte 9
	FieldControlLength   int  // bytes 10-11
	FieldAreaBase        int  // bytes 12-16, offset of the field area from record start
	ExtendedCharset      [3]byte
	SizeFieldLength      int // byte 20
	SizeFieldPosition    int // byte 21
	SizeFieldTag         int // byte 23
}

// entrySizes is the directory layout declared by the DDR leader. It is
// constant for a file and applies to every subsequent record's directory.
type entrySizes struct {
	length   int
	position int
	tag      int
}

func (s entrySizes) width() int {
	return s.tag + s.length + s.position
}

// DirectoryEntry locates one field occurrence within a record's field
// area. Entries partition the field area without gaps or overlaps.
type DirectoryEntry struct {
	Tag      string
	Length   int // byte count, including the trailing field terminator
	Position int // offset from the field-area base
}

// parseLeader decodes the fixed 24-byte leader starting at buf[offset].
// The entry-size fields are left zero when blank (DR leaders).
func parseLeader(buf []byte, offset int) (Leader, error) {
	if offset+leaderSize > len(buf) {
		return Leader{}, &ErrMalformedLeader{Offset: offset, Reason: "record truncated before end of leader"}
	}
	b := buf[offset : offset+leaderSize]

	recordLength, err := asciiInt(b[0:5])
	if err != nil {
		return Leader{}, &ErrMalformedLeader{Offset: offset, Reason: fmt.Sprintf("record length: %v", err)}
	}
	if recordLength == 0 {
		return Leader{}, &ErrMalformedLeader{Offset: offset, Reason: "record length is zero"}
	}

	leader := Leader{
		RecordLength:         recordLength,
		InterchangeLevel:     b[5],
		Identifier:           b[6],
		CodeExtension:        b[7],
		Version:              b[8],
		ApplicationIndicator: b[9],
		ExtendedCharset:      [3]byte{b[17], b[18], b[19]},
	}

	leader.FieldControlLength, err = asciiIntOrBlank(b[10:12])
	if err != nil {
		return Leader{}, &ErrMalformedLeader{Offset: offset, Reason: fmt.Sprintf("field control length: %v", err)}
	}

	leader.FieldAreaBase, err = asciiInt(b[12:17])
	if err != nil {
		return Leader{}, &ErrMalformedLeader{Offset: offset, Reason: fmt.Sprintf("field area base: %v", err)}
	}

	// Entry sizes are single digits. DR leaders carry spaces here; the
	// DDR's sizes are reused for them.
	leader.SizeFieldLength, err = asciiIntOrBlank(b[20:21])
	if err != nil {
		return Leader{}, &ErrMalformedLeader{Offset: offset, Reason: fmt.Sprintf("size of field length: %v", err)}
	}
	leader.SizeFieldPosition, err = asciiIntOrBlank(b[21:22])
	if err != nil {
		return Leader{}, &ErrMalformedLeader{Offset: offset, Reason: fmt.Sprintf("size of field position: %v", err)}
	}
	leader.SizeFieldTag, err = asciiIntOrBlank(b[23:24])
	if err != nil {
		return Leader{}, &ErrMalformedLeader{Offset: offset, Reason: fmt.Sprintf("size of field tag: %v", err)}
	}

	return leader, nil
}

// parseDirectory decodes the directory entries between the leader and the
// first field terminator. Entries are packed with no separators; the
// entry width comes from the DDR's entry sizes.
func parseDirectory(buf []byte, offset int, leader Leader, sizes entrySizes) ([]DirectoryEntry, error) {
	dirStart := offset + leaderSize
	dirEnd := offset + leader.FieldAreaBase - 1 // field terminator closes the directory
	if dirEnd < dirStart || dirEnd >= len(buf) {
		return nil, &ErrMalformedDirectory{Offset: offset, Reason: "field area base points outside the record"}
	}
	if buf[dirEnd] != FieldTerminator {
		return nil, &ErrMalformedDirectory{Offset: offset, Reason: "directory is not closed by a field terminator"}
	}

	width := sizes.width()
	if width <= 0 {
		return nil, &ErrMalformedDirectory{Offset: offset, Reason: "entry sizes are zero; DDR leader missing or blank"}
	}
	dirLen := dirEnd - dirStart
	if dirLen%width != 0 {
		return nil, &ErrMalformedDirectory{
			Offset: offset,
			Reason: fmt.Sprintf("directory length %d is not a multiple of entry width %d", dirLen, width),
		}
	}

	entries := make([]DirectoryEntry, 0, dirLen/width)
	for pos := dirStart; pos < dirEnd; pos += width {
		entry := buf[pos : pos+width]
		tag := string(entry[:sizes.tag])
		length, err := asciiInt(entry[sizes.tag : sizes.tag+sizes.length])
		if err != nil {
			return nil, &ErrMalformedDirectory{Offset: offset, Reason: fmt.Sprintf("entry %s length: %v", tag, err)}
		}
		position, err := asciiInt(entry[sizes.tag+sizes.length:])
		if err != nil {
			return nil, &ErrMalformedDirectory{Offset: offset, Reason: fmt.Sprintf("entry %s position: %v", tag, err)}
		}
		entries = append(entries, DirectoryEntry{Tag: tag, Length: length, Position: position})
	}

	return entries, nil
}

// asciiInt parses a fixed-width ASCII decimal field. Leading zeros are
// the norm in ISO 8211 leaders ("00241").
func asciiInt(b []byte) (int, error) {
	n := 0
	for _, c := range b {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("non-digit byte %q", c)
		}
		n = n*10 + int(c-'0')
	}
	return n, nil
}

// asciiIntOrBlank parses an ASCII decimal field that may be all spaces,
// as in the size fields of a DR leader. Blank yields zero.
func asciiIntOrBlank(b []byte) (int, error) {
	blank := true
	for _, c := range b {
		if c != ' ' {
			blank = false
			break
		}
	}
	if blank {
		return 0, nil
	}
	return asciiInt(b)
}
