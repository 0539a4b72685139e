package page_test

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssargent/trackvault/pkg/byteio"
	"github.com/ssargent/trackvault/pkg/page"
)

const testPageLen = 256

// buildPage writes a single page's 40-byte header at pageOffset within buf.
func buildPage(buf []byte, pageOffset int, pageType, nextPage uint32, numRowOffsets int, isIndex bool) {
	binary.LittleEndian.PutUint32(buf[pageOffset+8:], pageType)
	binary.LittleEndian.PutUint32(buf[pageOffset+12:], nextPage)
	packed := uint32(numRowOffsets) & 0x1FFF
	binary.LittleEndian.PutUint32(buf[pageOffset+24:], packed)
	if isIndex {
		buf[pageOffset+27] = 0x40
	}
}

// putRow places row i of group 0 in the reverse-growing index, pointing at
// heapStart+relOffset.
func putRow(buf []byte, pageOffset, pageLen, groupBitmapVal uint16, i int, relOffset uint16) {
	groupBase := pageOffset + pageLen
	binary.LittleEndian.PutUint16(buf[groupBase-4:], groupBitmapVal)
	binary.LittleEndian.PutUint16(buf[groupBase-6-uint16(2*i):], relOffset)
}

func TestWalker_SinglePageTwoRows(t *testing.T) {
	buf := make([]byte, testPageLen)
	buildPage(buf, 0, 0, 0, 2, false)
	putRow(buf, 0, testPageLen, 0b011, 0, 0)
	putRow(buf, 0, testPageLen, 0b011, 1, 20)

	src := byteio.New(buf, "test")
	w := page.NewWalker(src, testPageLen, page.TableDescriptor{Type: 0, FirstPage: 0, LastPage: 0})

	var offsets []int
	for {
		row, ok := w.Next()
		if !ok {
			break
		}
		offsets = append(offsets, row.Offset)
	}
	require.Len(t, offsets, 2)
	assert.Equal(t, 40, offsets[0])
	assert.Equal(t, 60, offsets[1])
}

func TestWalker_IndexPageSkipped(t *testing.T) {
	buf := make([]byte, testPageLen*2)
	buildPage(buf, 0, 0, 1, 0, true) // index page, chains to page 1
	buildPage(buf, testPageLen, 0, 0, 1, false)
	putRow(buf, testPageLen, testPageLen, 0b1, 0, 5)

	src := byteio.New(buf, "test")
	w := page.NewWalker(src, testPageLen, page.TableDescriptor{Type: 0, FirstPage: 0, LastPage: 1})

	row, ok := w.Next()
	require.True(t, ok)
	assert.Equal(t, testPageLen+40+5, row.Offset)

	_, ok = w.Next()
	assert.False(t, ok)
}

func TestWalker_SelfReferencingCycleTerminatesAfterOnePage(t *testing.T) {
	// First page is page index 1 (not 0) so that next_page pointing back at
	// itself is distinguishable from the ordinary "next_page == 0 means
	// stop" termination rule.
	buf := make([]byte, testPageLen*2)
	buildPage(buf, testPageLen, 0, 1, 1, false) // next_page == current page (1)
	putRow(buf, testPageLen, testPageLen, 0b1, 0, 0)

	src := byteio.New(buf, "test")
	// last_page deliberately != 1 so the walk relies on cycle detection,
	// not the last-page stop condition, to terminate.
	w := page.NewWalker(src, testPageLen, page.TableDescriptor{Type: 0, FirstPage: 1, LastPage: 99})

	row, ok := w.Next()
	require.True(t, ok)
	assert.Equal(t, testPageLen+40, row.Offset)

	_, ok = w.Next()
	assert.False(t, ok, "walk must terminate at the first revisited page")
}

func TestWalker_RowOffsetOutOfBoundsSkipped(t *testing.T) {
	buf := make([]byte, testPageLen)
	buildPage(buf, 0, 0, 0, 1, false)
	// relOffset pushes rowBase past the page end.
	putRow(buf, 0, testPageLen, 0b1, 0, uint16(testPageLen))

	src := byteio.New(buf, "test")
	w := page.NewWalker(src, testPageLen, page.TableDescriptor{Type: 0, FirstPage: 0, LastPage: 0})

	_, ok := w.Next()
	assert.False(t, ok)
}

func TestWalker_MultiPageChain(t *testing.T) {
	buf := make([]byte, testPageLen*3)
	buildPage(buf, 0, 0, 1, 1, false)
	putRow(buf, 0, testPageLen, 0b1, 0, 1)
	buildPage(buf, testPageLen, 0, 2, 1, false)
	putRow(buf, testPageLen, testPageLen, 0b1, 0, 2)
	buildPage(buf, testPageLen*2, 0, 0, 1, false)
	putRow(buf, testPageLen*2, testPageLen, 0b1, 0, 3)

	src := byteio.New(buf, "test")
	w := page.NewWalker(src, testPageLen, page.TableDescriptor{Type: 0, FirstPage: 0, LastPage: 2})

	var offsets []int
	for {
		row, ok := w.Next()
		if !ok {
			break
		}
		offsets = append(offsets, row.Offset)
	}
	require.Len(t, offsets, 3)
	assert.Equal(t, 40+1, offsets[0])
	assert.Equal(t, testPageLen+40+2, offsets[1])
	assert.Equal(t, testPageLen*2+40+3, offsets[2])
}
