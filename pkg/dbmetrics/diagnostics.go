// Package dbmetrics holds the decoder's diagnostic counters: how many
// malformed records, invalid strings, detected cycles, and page-cap trips
// were swallowed during a decode: these are local, non-fatal conditions
// that never reach the caller as errors. Counting them is
// optional instrumentation, not part of the decoded result.
package dbmetrics

// Diagnostics accumulates counts for one decode run. The zero value is
// ready to use; a nil *Diagnostics is also safe to pass everywhere in
// this package's API (all methods are nil-receiver safe), so callers who
// don't care about diagnostics can pass nil.
type Diagnostics struct {
	MalformedRecords  int
	InvalidStrings    int
	CyclesDetected    int
	PageCapExceeded   int
	PagesWalked       int
	TracksDecoded     int
	DuplicateTrackIDs int
	LargeInput        bool
}

// New returns a ready-to-use, zeroed Diagnostics.
func New() *Diagnostics {
	return &Diagnostics{}
}

func (d *Diagnostics) IncMalformedRecord() {
	if d != nil {
		d.MalformedRecords++
	}
}

func (d *Diagnostics) IncInvalidString() {
	if d != nil {
		d.InvalidStrings++
	}
}

func (d *Diagnostics) IncCycleDetected() {
	if d != nil {
		d.CyclesDetected++
	}
}

func (d *Diagnostics) IncPageCapExceeded() {
	if d != nil {
		d.PageCapExceeded++
	}
}

func (d *Diagnostics) AddPagesWalked(n int) {
	if d != nil {
		d.PagesWalked += n
	}
}

func (d *Diagnostics) IncTrackDecoded() {
	if d != nil {
		d.TracksDecoded++
	}
}

func (d *Diagnostics) IncDuplicateTrackID() {
	if d != nil {
		d.DuplicateTrackIDs++
	}
}

// IncLargeInput flags that the input crossed the soft warning threshold.
// Unlike the other counters this is a one-shot flag, not a count.
func (d *Diagnostics) IncLargeInput() {
	if d != nil {
		d.LargeInput = true
	}
}
