package catalog

import (
	"github.com/cockroachdb/errors"

	"github.com/ssargent/trackvault/pkg/byteio"
	"github.com/ssargent/trackvault/pkg/dbmetrics"
	"github.com/ssargent/trackvault/pkg/page"
)

const (
	defaultMaxInputBytes  = 500 << 20 // 500 MiB
	defaultWarnInputBytes = 100 << 20 // 100 MiB
)

// ErrTooLarge is returned when the input exceeds the configured size cap,
// before any page or row is touched.
var ErrTooLarge = errors.New("pdb: input exceeds maximum size")

// decodeConfig holds Decode's tunable thresholds. The zero value is never
// used directly; defaults() fills it in before Option application.
type decodeConfig struct {
	maxInputBytes  int
	warnInputBytes int
	limits         page.Limits
	fkDef          FKDefaults
}

func defaults() decodeConfig {
	return decodeConfig{
		maxInputBytes:  defaultMaxInputBytes,
		warnInputBytes: defaultWarnInputBytes,
		limits:         page.DefaultLimits(),
		fkDef:          defaultFKDefaults(),
	}
}

// Option tunes a single Decode call.
type Option func(*decodeConfig)

// WithMaxInputBytes overrides the hard size cap (500 MiB by default).
func WithMaxInputBytes(n int) Option {
	return func(c *decodeConfig) { c.maxInputBytes = n }
}

// WithWarnInputBytes overrides the soft warning threshold (100 MiB by
// default). Crossing it does not fail decode; it is surfaced only via
// Diagnostics.LargeInput.
func WithWarnInputBytes(n int) Option {
	return func(c *decodeConfig) { c.warnInputBytes = n }
}

// WithMaxPagesPerTable overrides how many pages a single table's chain may
// visit before the walk gives up (10000 by default). Hitting the cap is
// non-fatal; it is counted in Diagnostics.PageCapExceeded.
func WithMaxPagesPerTable(n int) Option {
	return func(c *decodeConfig) { c.limits.MaxPagesPerWalk = n }
}

// WithMaxRowsPerPage overrides how many row offsets a single page header
// may claim before the page is treated as malformed (2000 by default).
func WithMaxRowsPerPage(n int) Option {
	return func(c *decodeConfig) { c.limits.MaxRowsPerPage = n }
}

// WithDefaultArtist overrides the fallback text used when a track's
// artist lookup is missing or empty ("Unknown Artist" by default).
func WithDefaultArtist(s string) Option {
	return func(c *decodeConfig) { c.fkDef.Artist = s }
}

// WithDefaultAlbum overrides the fallback text used when a track's album
// lookup is missing or empty ("Unknown Album" by default).
func WithDefaultAlbum(s string) Option {
	return func(c *decodeConfig) { c.fkDef.Album = s }
}

// WithDefaultTitle overrides the fallback text used when a track's own
// title field is empty ("Unknown Title" by default).
func WithDefaultTitle(s string) Option {
	return func(c *decodeConfig) { c.fkDef.Title = s }
}

// Decode parses buf as a device database and returns the normalized
// library it describes. sourceHint names the input (a file path or
// similar) for error context only; Decode never opens a file itself.
//
// Decode is this package's top-level entry point: fatal conditions
// (input too large, header too short or invalid) are returned as errors
// wrapping ErrTooLarge, page.ErrTooSmall, or page.ErrInvalidHeader. Every
// other malformed condition — a bad row, a cyclic page chain, a blown
// page cap — is swallowed and counted in the returned Diagnostics instead
// of failing the whole decode.
func Decode(buf []byte, sourceHint string, opts ...Option) (*Library, *dbmetrics.Diagnostics, error) {
	cfg := defaults()
	for _, opt := range opts {
		opt(&cfg)
	}

	if len(buf) > cfg.maxInputBytes {
		return nil, nil, errors.Wrapf(ErrTooLarge, "%s: %d bytes (max %d)", sourceHint, len(buf), cfg.maxInputBytes)
	}

	diag := dbmetrics.New()
	if len(buf) > cfg.warnInputBytes {
		diag.IncLargeInput()
	}

	src := byteio.New(buf, sourceHint)

	hdr, err := page.ReadFileHeader(src)
	if err != nil {
		return nil, nil, err
	}

	descs := page.ReadTableDescriptors(src, hdr)

	lib := NewBuilder(src, hdr.PageLen, descs, diag, cfg.limits, cfg.fkDef).Build()
	return lib, diag, nil
}
