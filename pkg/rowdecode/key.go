package rowdecode

import (
	"github.com/ssargent/trackvault/pkg/byteio"
	"github.com/ssargent/trackvault/pkg/dbmetrics"
)

const keyMinLen = 8

// DecodeKey decodes a key row (type 5): id @0, an unused second id @4
// (never read; only covered by the minimum-length gate), name @8.
func DecodeKey(src *byteio.Source, rowBase int, diag *dbmetrics.Diagnostics) (NamedEntity, bool) {
	if !src.InBounds(rowBase, keyMinLen) {
		return NamedEntity{}, false
	}
	id, err := src.U32LEAt(rowBase)
	if err != nil {
		return NamedEntity{}, false
	}
	name := decodeDeviceString(src, rowBase+8, diag)
	if id == 0 || name == "" {
		return NamedEntity{}, false
	}
	return NamedEntity{ID: id, Name: name}, true
}
