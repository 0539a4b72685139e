// Package devstring decodes the device database's variable-length string
// encoding ("device string"): three incompatible encodings multiplexed by
// a one-byte tag. Any malformed encoding decodes to the empty string
// rather than failing — a corrupt string must never taint the record
// that contains it.
package devstring

import (
	"unicode/utf16"

	"github.com/ssargent/trackvault/pkg/byteio"
)

const (
	tagLongASCII = 0x40
	tagUTF16LE   = 0x90
)

// Decode reads a device string starting at offset off in src. It never
// returns an error: any tag, length, or bounds problem yields "".
func Decode(src *byteio.Source, off int) string {
	s, _ := DecodeOk(src, off)
	return s
}

// DecodeOk is Decode's counted form: ok reports whether off named a
// recognized tag with an internally consistent length and in-bounds
// payload. ok=false still yields "" — a corrupt string must never taint
// the record that contains it, but callers that want to count corruption
// (rather than silently swallow it) can inspect ok.
func DecodeOk(src *byteio.Source, off int) (string, bool) {
	tag, err := src.U8At(off)
	if err != nil {
		return "", false
	}

	switch {
	case tag == tagLongASCII:
		return decodeLong(src, off, false)
	case tag == tagUTF16LE:
		return decodeLong(src, off, true)
	case tag&0x01 != 0:
		return decodeShort(src, off, tag)
	default:
		return "", false
	}
}

// decodeLong handles both the long-ASCII and UTF-16LE forms: a u16 length
// at off+1, one padding byte, then length-4 payload bytes at off+4.
func decodeLong(src *byteio.Source, off int, wide bool) (string, bool) {
	length, err := src.U16LEAt(off + 1)
	if err != nil {
		return "", false
	}
	if length < 4 || length > 65535 {
		return "", false
	}
	payloadLen := int(length) - 4
	payload, err := src.Slice(off+4, payloadLen)
	if err != nil {
		return "", false
	}
	if !wide {
		return asciiText(payload), true
	}
	return utf16leText(payload), true
}

// decodeShort handles the short-ASCII form: length packed into the tag
// byte's upper bits, length-1 payload bytes starting right after the tag.
func decodeShort(src *byteio.Source, off int, tag byte) (string, bool) {
	length := int(tag >> 1)
	if length < 1 || length > 127 {
		return "", false
	}
	payloadLen := length - 1
	payload, err := src.Slice(off+1, payloadLen)
	if err != nil {
		return "", false
	}
	return asciiText(payload), true
}

func asciiText(b []byte) string {
	return string(b)
}

// utf16leText decodes little-endian UTF-16 code units. An odd trailing
// byte (an incomplete final code unit) is dropped rather than rejected.
func utf16leText(b []byte) string {
	n := len(b) / 2
	units := make([]uint16, n)
	for i := 0; i < n; i++ {
		units[i] = uint16(b[2*i]) | uint16(b[2*i+1])<<8
	}
	return string(utf16.Decode(units))
}
