package devstring_test

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ssargent/trackvault/pkg/byteio"
	"github.com/ssargent/trackvault/pkg/devstring"
)

func shortASCII(text string) []byte {
	length := len(text) + 1
	buf := make([]byte, 1+len(text))
	buf[0] = byte(length<<1) | 0x01
	copy(buf[1:], text)
	return buf
}

func longASCII(text string) []byte {
	length := uint16(len(text) + 4)
	buf := make([]byte, 4+len(text))
	buf[0] = 0x40
	binary.LittleEndian.PutUint16(buf[1:], length)
	copy(buf[4:], text)
	return buf
}

func utf16LE(text string) []byte {
	var units []uint16
	for _, r := range text {
		if r > 0xFFFF {
			continue
		}
		units = append(units, uint16(r))
	}
	length := uint16(4 + 2*len(units))
	buf := make([]byte, 4+2*len(units))
	buf[0] = 0x90
	binary.LittleEndian.PutUint16(buf[1:], length)
	for i, u := range units {
		binary.LittleEndian.PutUint16(buf[4+2*i:], u)
	}
	return buf
}

func TestDecode_ShortASCII(t *testing.T) {
	buf := shortASCII("DJ A")
	src := byteio.New(buf, "test")
	assert.Equal(t, "DJ A", devstring.Decode(src, 0))
}

func TestDecode_LongASCII(t *testing.T) {
	buf := longASCII("Intro Track")
	src := byteio.New(buf, "test")
	assert.Equal(t, "Intro Track", devstring.Decode(src, 0))
}

func TestDecode_UTF16(t *testing.T) {
	buf := utf16LE("night")
	src := byteio.New(buf, "test")
	assert.Equal(t, "night", devstring.Decode(src, 0))
}

func TestDecode_UnknownTagIsEmpty(t *testing.T) {
	src := byteio.New([]byte{0x02, 0, 0, 0, 0}, "test")
	assert.Equal(t, "", devstring.Decode(src, 0))
}

func TestDecode_ShortASCII_LengthOneIsEmpty(t *testing.T) {
	// tag = (1<<1)|1 = 0x03 -> length=1, payload 0 bytes
	src := byteio.New([]byte{0x03}, "test")
	assert.Equal(t, "", devstring.Decode(src, 0))
}

func TestDecode_LongASCII_LengthExactlyFourIsEmpty(t *testing.T) {
	buf := make([]byte, 4)
	buf[0] = 0x40
	binary.LittleEndian.PutUint16(buf[1:], 4)
	src := byteio.New(buf, "test")
	assert.Equal(t, "", devstring.Decode(src, 0))
}

func TestDecode_UTF16_OddByteCountTruncates(t *testing.T) {
	// length says 5 payload bytes (odd) -> last half code unit dropped
	buf := make([]byte, 4+5)
	buf[0] = 0x90
	binary.LittleEndian.PutUint16(buf[1:], uint16(4+5))
	binary.LittleEndian.PutUint16(buf[4:], uint16('h'))
	binary.LittleEndian.PutUint16(buf[6:], uint16('i'))
	buf[8] = 0xFF // dangling odd byte
	src := byteio.New(buf, "test")
	assert.Equal(t, "hi", devstring.Decode(src, 0))
}

func TestDecode_OutOfBoundsIsEmpty(t *testing.T) {
	buf := longASCII("x")
	src := byteio.New(buf[:len(buf)-1], "test") // truncate the payload
	assert.Equal(t, "", devstring.Decode(src, 0))
}

func TestDecode_LongASCII_LengthBelowMinimumIsEmpty(t *testing.T) {
	buf := make([]byte, 4)
	buf[0] = 0x40
	binary.LittleEndian.PutUint16(buf[1:], 3) // below minimum of 4
	src := byteio.New(buf, "test")
	assert.Equal(t, "", devstring.Decode(src, 0))
}

func TestDecode_ShortASCII_LengthZeroIsEmpty(t *testing.T) {
	// tag with low bit set but encodes length 0 -> invalid (tag>>1 == 0)
	src := byteio.New([]byte{0x01}, "test")
	assert.Equal(t, "", devstring.Decode(src, 0))
}

func TestDecode_MissingTagByteIsEmpty(t *testing.T) {
	src := byteio.New([]byte{}, "test")
	assert.Equal(t, "", devstring.Decode(src, 0))
}
