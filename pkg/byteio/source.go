// Package byteio provides a bounds-checked, read-only view over an
// in-memory buffer. It is the single place that enforces bounds safety
// against untrusted input; every other package reads through it instead
// of indexing byte slices directly.
package byteio

import (
	"encoding/binary"

	"github.com/cockroachdb/errors"
)

// ErrShortRead is returned when a read would run past the end of the
// underlying buffer.
var ErrShortRead = errors.New("byteio: short read")

// Source is an immutable, bounds-checked view over a byte buffer.
type Source struct {
	buf  []byte
	hint string
}

// New wraps buf for bounds-checked access. hint names the buffer's origin
// (e.g. a file path) and is folded into error messages only; it does not
// affect decoding.
func New(buf []byte, hint string) *Source {
	return &Source{buf: buf, hint: hint}
}

// Len returns the total size of the underlying buffer.
func (s *Source) Len() int {
	return len(s.buf)
}

// Hint returns the source's origin hint.
func (s *Source) Hint() string {
	return s.hint
}

// U8At returns the byte at off.
func (s *Source) U8At(off int) (byte, error) {
	if off < 0 || off+1 > len(s.buf) {
		return 0, errors.Wrapf(ErrShortRead, "%s: u8 at %d (len %d)", s.hint, off, len(s.buf))
	}
	return s.buf[off], nil
}

// U16LEAt returns the little-endian uint16 at off.
func (s *Source) U16LEAt(off int) (uint16, error) {
	if off < 0 || off+2 > len(s.buf) {
		return 0, errors.Wrapf(ErrShortRead, "%s: u16 at %d (len %d)", s.hint, off, len(s.buf))
	}
	return binary.LittleEndian.Uint16(s.buf[off : off+2]), nil
}

// U32LEAt returns the little-endian uint32 at off.
func (s *Source) U32LEAt(off int) (uint32, error) {
	if off < 0 || off+4 > len(s.buf) {
		return 0, errors.Wrapf(ErrShortRead, "%s: u32 at %d (len %d)", s.hint, off, len(s.buf))
	}
	return binary.LittleEndian.Uint32(s.buf[off : off+4]), nil
}

// Slice borrows a contiguous byte range [off, off+n). The returned slice
// aliases the underlying buffer and must not be mutated.
func (s *Source) Slice(off, n int) ([]byte, error) {
	if off < 0 || n < 0 || off+n > len(s.buf) {
		return nil, errors.Wrapf(ErrShortRead, "%s: slice [%d:%d) (len %d)", s.hint, off, off+n, len(s.buf))
	}
	return s.buf[off : off+n], nil
}

// InBounds reports whether the half-open range [off, off+n) lies entirely
// within the buffer.
func (s *Source) InBounds(off, n int) bool {
	return off >= 0 && n >= 0 && off+n <= len(s.buf)
}
