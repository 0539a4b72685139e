package rowdecode

import (
	"github.com/ssargent/trackvault/pkg/byteio"
	"github.com/ssargent/trackvault/pkg/dbmetrics"
)

const artistMinLen = 0x0C

// DecodeArtist decodes an artist row (type 2). The name offset is
// polymorphic: bit 2 of the subtype field selects a near (1-byte) or long
// (2-byte) offset form.
func DecodeArtist(src *byteio.Source, rowBase int, diag *dbmetrics.Diagnostics) (NamedEntity, bool) {
	if !src.InBounds(rowBase, artistMinLen) {
		return NamedEntity{}, false
	}

	subtype, err := src.U16LEAt(rowBase)
	if err != nil {
		return NamedEntity{}, false
	}
	id, err := src.U32LEAt(rowBase + 4)
	if err != nil {
		return NamedEntity{}, false
	}

	nameOfs, ok := resolveNameOffset(src, rowBase, subtype, 0x0A, 9)
	if !ok {
		return NamedEntity{}, false
	}

	name := decodeDeviceString(src, rowBase+nameOfs, diag)
	if id == 0 || name == "" {
		return NamedEntity{}, false
	}
	return NamedEntity{ID: id, Name: name}, true
}

// resolveNameOffset picks the long (u16 at rowBase+longFieldOfs) or near
// (u8 at rowBase+nearFieldOfs) name offset field depending on subtype bit
// 0x04, shared between artist and album rows.
func resolveNameOffset(src *byteio.Source, rowBase int, subtype uint16, longFieldOfs, nearFieldOfs int) (int, bool) {
	if subtype&0x04 != 0 {
		v, err := src.U16LEAt(rowBase + longFieldOfs)
		if err != nil {
			return 0, false
		}
		return int(v), true
	}
	v, err := src.U8At(rowBase + nearFieldOfs)
	if err != nil {
		return 0, false
	}
	return int(v), true
}
