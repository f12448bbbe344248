package iso8211

import (
	"fmt"
	"strings"
)

// SubfieldKind classifies how a subfield's bytes are decoded.
type SubfieldKind int

const (
	// KindString is ASCII text: fixed width, or delimited by the unit
	// terminator when width is zero.
	KindString SubfieldKind = iota

	// KindInt is a fixed-width ASCII decimal integer, format I(w).
	KindInt

	// KindReal is an ASCII decimal real number, format R or R(w).
	KindReal

	// KindBits is a raw bit field, format B(w) with w in bits. Decoded
	// as raw bytes; interpretation is left to the caller.
	KindBits

	// KindBinary is a fixed-width little-endian binary integer, formats
	// b11/b12/b14 (unsigned) and b21/b22/b24 (signed).
	KindBinary
)

// SubfieldFormat describes one subfield within a field definition: its
// label from the array descriptor and its format-control token.
type SubfieldFormat struct {
	Label  string
	Kind   SubfieldKind
	Width  int  // chars for A/I/R, bytes for B and b; 0 = variable length
	Signed bool // binary integers only
}

// FieldDefinition is the decoded layout of one field tag, built from the
// DDR and shared by every data record in the file.
//
// Reference: ISO/IEC 8211 §6.2 (data descriptive fields), S-57 Part 3
// §7.2.2 (field content and format controls).
type FieldDefinition struct {
	Tag  string
	Name string

	// ArrayDescriptor is the raw label list from the DDR, e.g.
	// "RCNM!RCID" or "*YCOO!XCOO". A leading '*' marks a repeating
	// subfield group.
	ArrayDescriptor string

	// Repeating reports whether the subfield cycle repeats until the
	// field's bytes are exhausted (ATTF, FSPT, VRPT, SG2D, SG3D).
	Repeating bool

	// Subfields is one cycle of the field's subfields, in the order
	// they appear in every occurrence of this field.
	Subfields []SubfieldFormat
}

// fieldControlTag is the DDR's field control field. It enumerates tag
// pairs and the file title but carries no subfield layout of its own.
const fieldControlTag = "0000"

// parseFieldDefinition decodes one DDR field area into a field
// definition. The area is: field controls, then unit-terminator
// separated name / array descriptor / format controls.
func parseFieldDefinition(tag string, raw []byte, controlLength int) (*FieldDefinition, error) {
	if len(raw) > 0 && raw[len(raw)-1] == FieldTerminator {
		raw = raw[:len(raw)-1]
	}
	if controlLength > len(raw) {
		return nil, &ErrUnsupportedFieldFormat{Tag: tag, Reason: "field area shorter than field controls"}
	}

	def := &FieldDefinition{Tag: tag}
	if tag == fieldControlTag {
		// Metadata only: the remainder is the file title and the
		// tag-pair list, not a decodable field.
		return def, nil
	}

	parts := strings.SplitN(string(raw[controlLength:]), string(rune(UnitTerminator)), 3)
	def.Name = parts[0]
	if len(parts) > 1 {
		def.ArrayDescriptor = parts[1]
	}

	var formats string
	if len(parts) > 2 {
		formats = parts[2]
	}
	if formats == "" {
		// Fields like 0001 may omit format controls; they decode as a
		// single variable-length string.
		def.Subfields = []SubfieldFormat{{Kind: KindString}}
		return def, nil
	}

	subfields, err := parseFormatControls(tag, formats)
	if err != nil {
		return nil, err
	}

	labels := def.ArrayDescriptor
	if strings.HasPrefix(labels, "*") {
		def.Repeating = true
		labels = labels[1:]
	}
	if labels != "" {
		names := strings.Split(labels, "!")
		if len(names) != len(subfields) {
			return nil, &ErrUnsupportedFieldFormat{
				Tag:    tag,
				Format: formats,
				Reason: fmt.Sprintf("%d labels for %d format tokens", len(names), len(subfields)),
			}
		}
		for i := range subfields {
			subfields[i].Label = names[i]
		}
	}
	def.Subfields = subfields

	return def, nil
}

// parseFormatControls expands a parenthesized format-controls string,
// e.g. "(b12,A)" or "(A(2),I(10),3A)" or "(2b24)", into a flat ordered
// list of subfield formats. Repetition counts and nested groups are
// expanded in place.
func parseFormatControls(tag, s string) ([]SubfieldFormat, error) {
	p := &formatParser{tag: tag, input: s}
	if !p.consume('(') {
		return nil, p.fail("format controls must start with '('")
	}
	formats, err := p.parseList()
	if err != nil {
		return nil, err
	}
	if !p.consume(')') || p.pos != len(p.input) {
		return nil, p.fail("unbalanced parentheses")
	}
	if len(formats) == 0 {
		return nil, p.fail("empty format list")
	}
	return formats, nil
}

type formatParser struct {
	tag   string
	input string
	pos   int
}

func (p *formatParser) fail(reason string) error {
	return &ErrUnsupportedFieldFormat{Tag: p.tag, Format: p.input, Reason: reason}
}

func (p *formatParser) peek() byte {
	if p.pos >= len(p.input) {
		return 0
	}
	return p.input[p.pos]
}

func (p *formatParser) consume(c byte) bool {
	if p.peek() != c {
		return false
	}
	p.pos++
	return true
}

// parseList parses a comma-separated sequence of items up to the closing
// parenthesis of the current group.
func (p *formatParser) parseList() ([]SubfieldFormat, error) {
	var formats []SubfieldFormat
	for {
		items, err := p.parseItem()
		if err != nil {
			return nil, err
		}
		formats = append(formats, items...)
		if !p.consume(',') {
			return formats, nil
		}
	}
}

// parseItem parses one item: an optional repetition count followed by a
// single format token or a parenthesized group.
func (p *formatParser) parseItem() ([]SubfieldFormat, error) {
	count := 1
	if c := p.peek(); c >= '0' && c <= '9' {
		count = 0
		for {
			c := p.peek()
			if c < '0' || c > '9' {
				break
			}
			count = count*10 + int(c-'0')
			p.pos++
		}
		if count == 0 {
			return nil, p.fail("zero repetition count")
		}
	}

	var cycle []SubfieldFormat
	if p.consume('(') {
		group, err := p.parseList()
		if err != nil {
			return nil, err
		}
		if !p.consume(')') {
			return nil, p.fail("unterminated group")
		}
		cycle = group
	} else {
		format, err := p.parseToken()
		if err != nil {
			return nil, err
		}
		cycle = []SubfieldFormat{format}
	}

	formats := make([]SubfieldFormat, 0, count*len(cycle))
	for i := 0; i < count; i++ {
		formats = append(formats, cycle...)
	}
	return formats, nil
}

// parseToken parses a single typed token: A, I, R, B or b with their
// width variants.
func (p *formatParser) parseToken() (SubfieldFormat, error) {
	switch c := p.peek(); c {
	case 'A', 'I', 'R':
		p.pos++
		width, has, err := p.parseParenWidth()
		if err != nil {
			return SubfieldFormat{}, err
		}
		var kind SubfieldKind
		switch c {
		case 'A':
			kind = KindString
		case 'I':
			kind = KindInt
			if !has {
				return SubfieldFormat{}, p.fail("I token requires an explicit width")
			}
		case 'R':
			kind = KindReal
		}
		return SubfieldFormat{Kind: kind, Width: width}, nil

	case 'B':
		p.pos++
		bits, has, err := p.parseParenWidth()
		if err != nil {
			return SubfieldFormat{}, err
		}
		if !has || bits == 0 || bits%8 != 0 {
			return SubfieldFormat{}, p.fail(fmt.Sprintf("bit field width %d is not a positive multiple of 8", bits))
		}
		return SubfieldFormat{Kind: KindBits, Width: bits / 8}, nil

	case 'b':
		// b followed by two digits: class (1=unsigned, 2=signed) and
		// byte width (1, 2 or 4). Per S-57 Part 3 §2.3 these are the
		// only classes in use.
		p.pos++
		if p.pos+2 > len(p.input) {
			return SubfieldFormat{}, p.fail("truncated binary token")
		}
		class := p.input[p.pos]
		width := p.input[p.pos+1]
		p.pos += 2
		if class != '1' && class != '2' {
			return SubfieldFormat{}, p.fail(fmt.Sprintf("binary class %q is not 1 or 2", class))
		}
		if width != '1' && width != '2' && width != '4' {
			return SubfieldFormat{}, p.fail(fmt.Sprintf("binary width %q is not 1, 2 or 4", width))
		}
		return SubfieldFormat{Kind: KindBinary, Width: int(width - '0'), Signed: class == '2'}, nil

	default:
		return SubfieldFormat{}, p.fail(fmt.Sprintf("unexpected byte %q in format controls", c))
	}
}

// parseParenWidth parses an optional "(width)" suffix.
func (p *formatParser) parseParenWidth() (width int, present bool, err error) {
	if !p.consume('(') {
		return 0, false, nil
	}
	for {
		c := p.peek()
		if c < '0' || c > '9' {
			break
		}
		width = width*10 + int(c-'0')
		p.pos++
		present = true
	}
	if !p.consume(')') || !present {
		return 0, false, p.fail("malformed width suffix")
	}
	return width, true, nil
}
