// Package page implements page-chain traversal and per-page row-offset
// decoding for the device database: following a table's next_page chain,
// skipping index pages, and enumerating live rows via the reverse-growing
// row-offset index described in the file format.
package page

import "github.com/ssargent/trackvault/pkg/byteio"

// Walker lazily enumerates live rows across a table's data-page chain, in
// file order: ascending row index within ascending group index within a
// page, pages in next_page order. It never returns an error; malformed
// pages and rows are silently skipped so a single corrupt page cannot
// abort the whole walk.
type Walker struct {
	src     *byteio.Source
	pageLen int
	desc    TableDescriptor
	limits  Limits

	visited     map[uint32]bool
	pagesWalked int
	stopped     bool

	curPage    uint32
	haveCur    bool
	pendingRow []int // row offsets (relative to page start) remaining in the current page
	curType    uint32

	cycleDetected   bool
	pageCapExceeded bool
}

// NewWalker constructs a Walker over src for the given table descriptor and
// page size, using DefaultLimits.
func NewWalker(src *byteio.Source, pageLen int, desc TableDescriptor) *Walker {
	return NewWalkerWithLimits(src, pageLen, desc, DefaultLimits())
}

// NewWalkerWithLimits is NewWalker with caller-supplied bounds; a zero
// field in limits falls back to its DefaultLimits value.
func NewWalkerWithLimits(src *byteio.Source, pageLen int, desc TableDescriptor, limits Limits) *Walker {
	return &Walker{
		src:     src,
		pageLen: pageLen,
		desc:    desc,
		limits:  limits.withDefaults(),
		visited: make(map[uint32]bool),
		curPage: desc.FirstPage,
		haveCur: true,
	}
}

// Next returns the next live row, or ok=false once the walk is exhausted.
func (w *Walker) Next() (Row, bool) {
	for {
		if len(w.pendingRow) > 0 {
			off := w.pendingRow[0]
			w.pendingRow = w.pendingRow[1:]
			return Row{Offset: off, PageType: w.curType}, true
		}
		if !w.advancePage() {
			return Row{}, false
		}
	}
}

// advancePage loads the next data page's rows into pendingRow. It returns
// false once the chain is exhausted (terminal conditions below).
func (w *Walker) advancePage() bool {
	for {
		if w.stopped {
			return false
		}
		if !w.haveCur {
			w.stopped = true
			return false
		}
		if w.pagesWalked >= w.limits.MaxPagesPerWalk {
			w.pageCapExceeded = true
			w.stopped = true
			return false
		}
		if w.visited[w.curPage] {
			w.cycleDetected = true
			w.stopped = true
			return false
		}
		w.visited[w.curPage] = true
		w.pagesWalked++

		pageOffset := int(w.curPage) * w.pageLen
		hdr, ok := readHeader(w.src, pageOffset, w.pageLen, w.limits.MaxRowsPerPage)

		isLastPage := w.curPage == w.desc.LastPage
		nextPage := hdr.nextPage

		if !ok || hdr.isIndex {
			// Malformed or index page: no rows, but keep walking the chain.
			if isLastPage || nextPage == 0 || !w.pageInRange(nextPage) {
				w.stopped = true
				return false
			}
			w.curPage = nextPage
			continue
		}

		w.curType = hdr.pageType
		w.pendingRow = w.collectRowOffsets(pageOffset, hdr)

		if isLastPage || nextPage == 0 || !w.pageInRange(nextPage) {
			w.haveCur = false
		} else {
			w.curPage = nextPage
		}

		if len(w.pendingRow) > 0 {
			return true
		}
		if !w.haveCur {
			w.stopped = true
			return false
		}
	}
}

// PagesWalked returns the number of pages visited so far.
func (w *Walker) PagesWalked() int {
	return w.pagesWalked
}

// CycleDetected reports whether the walk terminated because it revisited
// an already-visited page.
func (w *Walker) CycleDetected() bool {
	return w.cycleDetected
}

// PageCapExceeded reports whether the walk terminated because it hit the
// per-table page cap.
func (w *Walker) PageCapExceeded() bool {
	return w.pageCapExceeded
}

func (w *Walker) pageInRange(idx uint32) bool {
	pageOffset := int(idx) * w.pageLen
	return pageOffset >= 0 && pageOffset+w.pageLen <= w.src.Len()
}

// collectRowOffsets decodes the reverse-growing row-offset index: groups
// of up to 16 rows, each with a packed presence bitmap, growing backward
// from the page tail.
func (w *Walker) collectRowOffsets(pageOffset int, hdr header) []int {
	heapStart := pageOffset + pageHeaderSize
	heapEnd := pageOffset + w.pageLen

	numGroups := (hdr.numRowOffsets + 15) / 16
	var offsets []int

	for g := 0; g < numGroups; g++ {
		groupBase := pageOffset + w.pageLen - g*rowGroupStride
		bitmap, err := w.src.U16LEAt(groupBase - 4)
		if err != nil {
			continue
		}
		for i := 0; i < 16; i++ {
			if bitmap&(1<<uint(i)) == 0 {
				continue
			}
			rowOffsetField, err := w.src.U16LEAt(groupBase - 6 - 2*i)
			if err != nil {
				continue
			}
			rowBase := heapStart + int(rowOffsetField)
			if rowBase < heapStart || rowBase >= heapEnd {
				continue
			}
			offsets = append(offsets, rowBase)
		}
	}
	return offsets
}
