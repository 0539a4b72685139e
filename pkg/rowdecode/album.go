package rowdecode

import (
	"github.com/ssargent/trackvault/pkg/byteio"
	"github.com/ssargent/trackvault/pkg/dbmetrics"
)

const albumMinLen = 0x18

// DecodeAlbum decodes an album row (type 3). Same polymorphic name-offset
// shape as DecodeArtist, at different field offsets.
func DecodeAlbum(src *byteio.Source, rowBase int, diag *dbmetrics.Diagnostics) (NamedEntity, bool) {
	if !src.InBounds(rowBase, albumMinLen) {
		return NamedEntity{}, false
	}

	subtype, err := src.U16LEAt(rowBase)
	if err != nil {
		return NamedEntity{}, false
	}
	id, err := src.U32LEAt(rowBase + 12)
	if err != nil {
		return NamedEntity{}, false
	}

	nameOfs, ok := resolveNameOffset(src, rowBase, subtype, 0x16, 17)
	if !ok {
		return NamedEntity{}, false
	}

	name := decodeDeviceString(src, rowBase+nameOfs, diag)
	if id == 0 || name == "" {
		return NamedEntity{}, false
	}
	return NamedEntity{ID: id, Name: name}, true
}
