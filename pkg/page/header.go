package page

import "github.com/ssargent/trackvault/pkg/byteio"

// header is the decoded portion of a page's 40-byte fixed header that the
// walker cares about.
type header struct {
	pageType      uint32
	nextPage      uint32
	numRowOffsets int
	isIndex       bool
}

// readHeader decodes the page header at pageOffset. It returns ok=false if
// the page frame itself doesn't fit in the buffer, or if num_row_offsets
// exceeds maxRowsPerPage (treated as a malformed page: skipped, never a
// hard failure). In the latter case nextPage is still filled in, so the
// walker can follow the chain past the malformed page.
func readHeader(src *byteio.Source, pageOffset, pageLen, maxRowsPerPage int) (header, bool) {
	if !src.InBounds(pageOffset, pageLen) {
		return header{}, false
	}

	pageType, err := src.U32LEAt(pageOffset + 8)
	if err != nil {
		return header{}, false
	}
	nextPage, err := src.U32LEAt(pageOffset + 12)
	if err != nil {
		return header{}, false
	}
	packed, err := src.U32LEAt(pageOffset + 24)
	if err != nil {
		return header{}, false
	}
	flags, err := src.U8At(pageOffset + 27)
	if err != nil {
		return header{}, false
	}

	numRowOffsets := int(packed & rowOffsetsMask)
	if numRowOffsets > maxRowsPerPage {
		return header{nextPage: nextPage}, false
	}

	return header{
		pageType:      pageType,
		nextPage:      nextPage,
		numRowOffsets: numRowOffsets,
		isIndex:       flags&flagIndexPage != 0,
	}, true
}
