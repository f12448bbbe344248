package parser

import (
	"github.com/jamessvoss/XNautical-sub006/pkg/iso8211"
)

// Feature is one S-57 feature record: identity, classification,
// attributes and the ordered spatial references its geometry is built
// from. Attribute values stay strings even when semantically numeric;
// interpretation belongs to the attribute catalogue's consumer.
//
// Reference: S-57 Part 3 §7.6 (feature record structure).
type Feature struct {
	RCID int64

	// FOID composite key: (Agency, FIDN, FIDS) is the feature's
	// world-wide unique identifier, RCID only its file-local one.
	Agency uint16
	FIDN   uint32
	FIDS   uint16

	ObjectClass int       // OBJL code, see ObjectClassAcronym
	Primitive   Primitive // PRIM
	Group       int       // GRUP
	Version     int       // RVER

	Attributes         map[int]string // ATTF: attribute code -> value
	NationalAttributes map[int]string // NATF

	// SpatialRefs preserves FSPT group order exactly as read; that
	// order is geometry-construction order.
	SpatialRefs []SpatialRef
}

// mapFeature builds a Feature from a record whose primary field is
// FRID, merging FOID, ATTF, NATF and FSPT from the same physical
// record.
func mapFeature(record *iso8211.DataRecord) (*Feature, bool) {
	frid := record.Field("FRID")
	if frid == nil {
		return nil, false
	}

	f := &Feature{
		Primitive:          PrimitiveNone,
		Attributes:         make(map[int]string),
		NationalAttributes: make(map[int]string),
	}
	if v, ok := intSubfield(frid, "RCID"); ok {
		f.RCID = v
	}
	if v, ok := intSubfield(frid, "PRIM"); ok {
		f.Primitive = Primitive(v)
	}
	if v, ok := intSubfield(frid, "GRUP"); ok {
		f.Group = int(v)
	}
	if v, ok := intSubfield(frid, "OBJL"); ok {
		f.ObjectClass = int(v)
	}
	if v, ok := intSubfield(frid, "RVER"); ok {
		f.Version = int(v)
	}

	if foid := record.Field("FOID"); foid != nil {
		if v, ok := intSubfield(foid, "AGEN"); ok {
			f.Agency = uint16(v)
		}
		if v, ok := intSubfield(foid, "FIDN"); ok {
			f.FIDN = uint32(v)
		}
		if v, ok := intSubfield(foid, "FIDS"); ok {
			f.FIDS = uint16(v)
		}
	}

	if attf := record.Field("ATTF"); attf != nil {
		mapAttributes(attf, f.Attributes)
	}
	if natf := record.Field("NATF"); natf != nil {
		mapAttributes(natf, f.NationalAttributes)
	}
	if fspt := record.Field("FSPT"); fspt != nil {
		f.SpatialRefs = mapSpatialRefs(fspt)
	}

	return f, true
}

// mapAttributes walks the repeated (ATTL, ATVL) pairs of an ATTF or
// NATF field into a code-keyed value map.
func mapAttributes(field *iso8211.Field, into map[int]string) {
	var code int64
	haveCode := false
	for _, sub := range field.Subfields {
		switch sub.Label {
		case "ATTL":
			code, haveCode = coerceInt(sub.Value)
		case "ATVL":
			if haveCode {
				into[int(code)] = coerceString(sub.Value)
				haveCode = false
			}
		}
	}
}

// mapSpatialRefs walks the repeated FSPT groups into an ordered
// reference list. Each group is NAME (5-byte rcnm+rcid), ORNT, USAG,
// MASK.
func mapSpatialRefs(field *iso8211.Field) []SpatialRef {
	var refs []SpatialRef
	var current SpatialRef
	for _, sub := range field.Subfields {
		switch sub.Label {
		case "NAME":
			if target, rcid, ok := splitName(sub.Value); ok {
				current = SpatialRef{
					Target:      target,
					RCID:        rcid,
					Orientation: OrientationNull,
					Usage:       UsageNull,
					Mask:        MaskNull,
				}
			}
		case "ORNT":
			if v, ok := coerceInt(sub.Value); ok {
				current.Orientation = Orientation(v)
			}
		case "USAG":
			if v, ok := coerceInt(sub.Value); ok {
				current.Usage = Usage(v)
			}
		case "MASK":
			if v, ok := coerceInt(sub.Value); ok {
				current.Mask = Mask(v)
			}
			refs = append(refs, current)
		}
	}
	return refs
}
