package dbmetrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PromExporter mirrors a Diagnostics snapshot into Prometheus counters. It
// is opt-in: nothing in this package registers metrics unless a caller
// constructs one.
type PromExporter struct {
	malformedRecords  prometheus.Counter
	invalidStrings    prometheus.Counter
	cyclesDetected    prometheus.Counter
	pageCapExceeded   prometheus.Counter
	pagesWalked       prometheus.Counter
	tracksDecoded     prometheus.Counter
	duplicateTrackIDs prometheus.Counter
}

// NewPromExporter registers a fresh set of trackvault decode counters
// against reg. Passing nil registers against the default Prometheus
// registry, the way promauto.NewCounter does by default.
func NewPromExporter(reg prometheus.Registerer) *PromExporter {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &PromExporter{
		malformedRecords: factory.NewCounter(prometheus.CounterOpts{
			Name: "trackvault_malformed_records_total",
			Help: "Rows dropped for failing a bounds or sanity check.",
		}),
		invalidStrings: factory.NewCounter(prometheus.CounterOpts{
			Name: "trackvault_invalid_strings_total",
			Help: "Device strings that decoded to empty due to an unknown tag or bad length.",
		}),
		cyclesDetected: factory.NewCounter(prometheus.CounterOpts{
			Name: "trackvault_page_cycles_total",
			Help: "Page chains that terminated early because a page was revisited.",
		}),
		pageCapExceeded: factory.NewCounter(prometheus.CounterOpts{
			Name: "trackvault_page_cap_exceeded_total",
			Help: "Page chains that terminated early after hitting the per-table page cap.",
		}),
		pagesWalked: factory.NewCounter(prometheus.CounterOpts{
			Name: "trackvault_pages_walked_total",
			Help: "Total pages visited across all table walks.",
		}),
		tracksDecoded: factory.NewCounter(prometheus.CounterOpts{
			Name: "trackvault_tracks_decoded_total",
			Help: "Track rows successfully decoded, including later-overwritten duplicates.",
		}),
		duplicateTrackIDs: factory.NewCounter(prometheus.CounterOpts{
			Name: "trackvault_duplicate_track_ids_total",
			Help: "Track ids seen more than once; the later row wins.",
		}),
	}
}

// Observe adds diag's current totals to the exported series. It keeps no
// record of earlier calls, so observing the same Diagnostics twice counts
// it twice. Callers typically invoke this once per Decode with a fresh
// Diagnostics, so add is equivalent to set for a single decode's totals.
func (p *PromExporter) Observe(diag *Diagnostics) {
	if diag == nil {
		return
	}
	p.malformedRecords.Add(float64(diag.MalformedRecords))
	p.invalidStrings.Add(float64(diag.InvalidStrings))
	p.cyclesDetected.Add(float64(diag.CyclesDetected))
	p.pageCapExceeded.Add(float64(diag.PageCapExceeded))
	p.pagesWalked.Add(float64(diag.PagesWalked))
	p.tracksDecoded.Add(float64(diag.TracksDecoded))
	p.duplicateTrackIDs.Add(float64(diag.DuplicateTrackIDs))
}
