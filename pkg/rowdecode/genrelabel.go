package rowdecode

import (
	"github.com/ssargent/trackvault/pkg/byteio"
	"github.com/ssargent/trackvault/pkg/dbmetrics"
)

const genreLabelMinLen = 4

// DecodeGenreOrLabel decodes a genre (type 1) or label (type 4) row; both
// share the same (id @0, name @4) layout.
func DecodeGenreOrLabel(src *byteio.Source, rowBase int, diag *dbmetrics.Diagnostics) (NamedEntity, bool) {
	if !src.InBounds(rowBase, genreLabelMinLen) {
		return NamedEntity{}, false
	}
	id, err := src.U32LEAt(rowBase)
	if err != nil {
		return NamedEntity{}, false
	}
	name := decodeDeviceString(src, rowBase+4, diag)
	if id == 0 || name == "" {
		return NamedEntity{}, false
	}
	return NamedEntity{ID: id, Name: name}, true
}
