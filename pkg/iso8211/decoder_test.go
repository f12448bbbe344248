package iso8211

import (
	"errors"
	"reflect"
	"testing"
)

// testDSIDFile builds a minimal file: a DDR declaring DSID with ASCII
// integer subfields and one DR carrying DSID data.
func testDSIDFile() []byte {
	ddr := buildDDR([]ddrField{
		{tag: "0001", name: "ISO 8211 Record Identifier", labels: "", format: "(I(5))"},
		{tag: "DSID", name: "Data set identification", labels: "RCNM!RCID!DSNM", format: "(I(3),I(10),A)"},
	})
	dr := buildDR([]drField{
		{tag: "0001", data: []byte("00001")},
		{tag: "DSID", data: []byte(" 10" + "0000000001" + "GB5X01NE")},
	})
	return append(ddr, dr...)
}

func TestDecodeDSID(t *testing.T) {
	file, err := Decode(testDSIDFile())
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if len(file.Records) != 1 {
		t.Fatalf("decoded %d records, want 1", len(file.Records))
	}
	record := file.Records[0]
	if record.ID != 1 {
		t.Errorf("record ID = %d, want 1", record.ID)
	}

	dsid := record.Field("DSID")
	if dsid == nil {
		t.Fatal("DSID field missing from record")
	}
	if v, _ := dsid.Get("RCNM"); v != int64(10) {
		t.Errorf("RCNM = %v, want 10", v)
	}
	if v, _ := dsid.Get("RCID"); v != int64(1) {
		t.Errorf("RCID = %v, want 1", v)
	}
	if v, _ := dsid.Get("DSNM"); v != "GB5X01NE" {
		t.Errorf("DSNM = %v, want GB5X01NE", v)
	}
}

func TestDecodeIdempotent(t *testing.T) {
	buf := testDSIDFile()
	first, err := Decode(buf)
	if err != nil {
		t.Fatalf("first decode failed: %v", err)
	}
	second, err := Decode(buf)
	if err != nil {
		t.Fatalf("second decode failed: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("decoding the same buffer twice produced different results")
	}
}

func TestDecodeBinarySubfields(t *testing.T) {
	ddr := buildDDR([]ddrField{
		{tag: "0001", name: "", labels: "", format: "(b12)"},
		{tag: "VRID", name: "Vector record identifier", labels: "RCNM!RCID!RVER!RUIN", format: "(b11,b14,b12,b11)"},
		{tag: "SG2D", name: "2-D coordinate", labels: "*YCOO!XCOO", format: "(2b24)"},
	})

	vrid := []byte{110}
	vrid = append(vrid, le32(42)...)
	vrid = append(vrid, le16(1)...)
	vrid = append(vrid, 1)

	// Two coordinate pairs; the first longitude is negative.
	sg2d := le32(420000000)
	sg2d = append(sg2d, le32(0xFFFFFFFF)...) // -1 as int32
	sg2d = append(sg2d, le32(100)...)
	sg2d = append(sg2d, le32(200)...)

	dr := buildDR([]drField{
		{tag: "0001", data: le16(7)},
		{tag: "VRID", data: vrid},
		{tag: "SG2D", data: sg2d},
	})

	file, err := Decode(append(ddr, dr...))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	record := file.Records[0]
	if record.ID != 7 {
		t.Errorf("record ID = %d, want 7", record.ID)
	}

	field := record.Field("VRID")
	if v, _ := field.Get("RCNM"); v != uint64(110) {
		t.Errorf("RCNM = %v (%T), want uint64(110)", v, v)
	}
	if v, _ := field.Get("RCID"); v != uint64(42) {
		t.Errorf("RCID = %v, want 42", v)
	}

	coords := record.Field("SG2D")
	if len(coords.Subfields) != 4 {
		t.Fatalf("SG2D decoded %d subfields, want 4 (two repeated pairs)", len(coords.Subfields))
	}
	want := []struct {
		label string
		value int64
	}{
		{"YCOO", 420000000},
		{"XCOO", -1},
		{"YCOO", 100},
		{"XCOO", 200},
	}
	for i, w := range want {
		s := coords.Subfields[i]
		if s.Label != w.label || s.Value != w.value {
			t.Errorf("SG2D subfield %d = %s=%v, want %s=%d", i, s.Label, s.Value, w.label, w.value)
		}
	}
}

func TestDecodeRepeatingTextGroup(t *testing.T) {
	ddr := buildDDR([]ddrField{
		{tag: "0001", name: "", labels: "", format: "(b12)"},
		{tag: "ATTF", name: "Feature record attribute", labels: "*ATTL!ATVL", format: "(b12,A)"},
	})

	attf := le16(87) // DRVAL1
	attf = append(attf, "2.5"...)
	attf = append(attf, UnitTerminator)
	attf = append(attf, le16(113)...) // OBJNAM
	attf = append(attf, "South Channel"...)

	dr := buildDR([]drField{
		{tag: "0001", data: le16(1)},
		{tag: "ATTF", data: attf},
	})

	file, err := Decode(append(ddr, dr...))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	field := file.Records[0].Field("ATTF")
	want := []Subfield{
		{Label: "ATTL", Value: uint64(87)},
		{Label: "ATVL", Value: "2.5"},
		{Label: "ATTL", Value: uint64(113)},
		{Label: "ATVL", Value: "South Channel"},
	}
	if !reflect.DeepEqual(field.Subfields, want) {
		t.Errorf("ATTF subfields = %+v, want %+v", field.Subfields, want)
	}
}

func TestDecodeFieldLengthMismatch(t *testing.T) {
	ddr := buildDDR([]ddrField{
		{tag: "0001", name: "", labels: "", format: "(b12)"},
		{tag: "VRID", name: "Vector record identifier", labels: "RCNM!RCID!RVER!RUIN", format: "(b11,b14,b12,b11)"},
	})

	// VRID body is 3 bytes short of its declared subfield widths.
	dr := buildDR([]drField{
		{tag: "0001", data: le16(9)},
		{tag: "VRID", data: []byte{110, 1, 0, 0, 0}},
	})

	_, err := Decode(append(ddr, dr...))
	var mismatch *ErrFieldLengthMismatch
	if !errors.As(err, &mismatch) {
		t.Fatalf("got %v, want ErrFieldLengthMismatch", err)
	}
	if mismatch.Tag != "VRID" {
		t.Errorf("mismatch names tag %q, want VRID", mismatch.Tag)
	}
	if mismatch.RecordID != 9 {
		t.Errorf("mismatch names record id %d, want 9", mismatch.RecordID)
	}
}

func TestDecodeTrailingBytesMismatch(t *testing.T) {
	ddr := buildDDR([]ddrField{
		{tag: "0001", name: "", labels: "", format: "(b12)"},
		{tag: "FOID", name: "Feature object identifier", labels: "AGEN!FIDN!FIDS", format: "(b12,b14,b12)"},
	})

	// Non-repeating FOID with 4 extra bytes after one subfield cycle.
	foid := le16(550)
	foid = append(foid, le32(123456)...)
	foid = append(foid, le16(1)...)
	foid = append(foid, le32(99)...)

	dr := buildDR([]drField{
		{tag: "0001", data: le16(2)},
		{tag: "FOID", data: foid},
	})

	_, err := Decode(append(ddr, dr...))
	var mismatch *ErrFieldLengthMismatch
	if !errors.As(err, &mismatch) {
		t.Fatalf("got %v, want ErrFieldLengthMismatch", err)
	}
	if mismatch.Consumed >= mismatch.Declared {
		t.Errorf("consumed %d, declared %d: expected under-consumption", mismatch.Consumed, mismatch.Declared)
	}
}

func TestDecodeMalformedSubfield(t *testing.T) {
	ddr := buildDDR([]ddrField{
		{tag: "0001", name: "", labels: "", format: "(I(5))"},
		{tag: "DSID", name: "Data set identification", labels: "RCNM", format: "(I(3))"},
	})
	dr := buildDR([]drField{
		{tag: "0001", data: []byte("00001")},
		{tag: "DSID", data: []byte("1x0")},
	})

	_, err := Decode(append(ddr, dr...))
	var malformed *ErrMalformedSubfield
	if !errors.As(err, &malformed) {
		t.Fatalf("got %v, want ErrMalformedSubfield", err)
	}
	if malformed.Label != "RCNM" {
		t.Errorf("error names label %q, want RCNM", malformed.Label)
	}
}

func TestDecodeRejectsNonDDRHead(t *testing.T) {
	dr := buildDR([]drField{{tag: "0001", data: le16(1)}})
	_, err := Decode(dr)
	var malformed *ErrMalformedLeader
	if !errors.As(err, &malformed) {
		t.Fatalf("got %v, want ErrMalformedLeader", err)
	}
}

func TestDecodeUpdateLeaderIdentifier(t *testing.T) {
	// Records flagged as updates ('R' leader identifier) decode
	// structurally; classification is the S-57 layer's concern.
	ddr := buildDDR([]ddrField{
		{tag: "0001", name: "", labels: "", format: "(b12)"},
	})
	dr := buildRecord('R', "  ", "    ", []drField{
		{tag: "0001", data: le16(3)},
	})

	file, err := Decode(append(ddr, dr...))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if file.Records[0].Leader.Identifier != 'R' {
		t.Errorf("leader identifier = %q, want 'R'", file.Records[0].Leader.Identifier)
	}
}
