package rowdecode

import (
	"github.com/ssargent/trackvault/pkg/byteio"
	"github.com/ssargent/trackvault/pkg/dbmetrics"
	"github.com/ssargent/trackvault/pkg/devstring"
)

// decodeDeviceString is a thin adapter kept local to this package so every
// row decoder reaches devstring through one call site. A corrupt string
// (unknown tag, inconsistent length, out-of-bounds payload) is counted
// against diag and still yields "" rather than failing the caller.
func decodeDeviceString(src *byteio.Source, off int, diag *dbmetrics.Diagnostics) string {
	s, ok := devstring.DecodeOk(src, off)
	if !ok {
		diag.IncInvalidString()
	}
	return s
}
