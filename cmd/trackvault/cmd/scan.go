package cmd

import (
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/ssargent/trackvault/pkg/catalog"
	"github.com/ssargent/trackvault/pkg/dbconfig"
	"github.com/ssargent/trackvault/pkg/dbmetrics"
	"github.com/ssargent/trackvault/pkg/devcache"
	"github.com/ssargent/trackvault/pkg/merge"
)

var (
	scanMetricsAddr string
	scanExtPath     string
	scanCacheDir    string
)

var scanCmd = &cobra.Command{
	Use:   "scan <file>",
	Short: "Decode a device database and print a summary",
	Long: `Scan decodes a device database file and reports how many tracks
and playlists it contains, along with any non-fatal decode diagnostics.

Example:
  trackvault scan export.pdb
  trackvault scan --ext exportExt.pdb export.pdb
  trackvault scan --cache ~/.cache/trackvault export.pdb
  trackvault scan --metrics-addr :9101 export.pdb`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := configFromContext(cmd)
		path := args[0]

		buf, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		var cache *devcache.Cache
		if scanCacheDir != "" {
			cache, err = devcache.Open(scanCacheDir)
			if err != nil {
				return fmt.Errorf("failed to open cache at %s: %w", scanCacheDir, err)
			}
			defer cache.Close()
		}

		lib, diag, fromCache, err := decodeWithCache(cfg, path, buf, cache)
		if err != nil {
			return err
		}

		if scanExtPath != "" {
			extBuf, err := os.ReadFile(scanExtPath)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", scanExtPath, err)
			}
			extLib, _, _, err := decodeWithCache(cfg, scanExtPath, extBuf, cache)
			if err != nil {
				return err
			}
			lib = merge.Merge(lib, extLib)
		}

		fmt.Printf("%s: %d tracks, %d root playlists", path, len(lib.Tracks), len(lib.Playlists))
		if fromCache {
			fmt.Print(" (from cache)")
		}
		fmt.Println()

		if diag != nil {
			if diag.MalformedRecords > 0 {
				fmt.Printf("  %d malformed records skipped\n", diag.MalformedRecords)
			}
			if diag.InvalidStrings > 0 {
				fmt.Printf("  %d corrupt strings dropped\n", diag.InvalidStrings)
			}
			if diag.CyclesDetected > 0 {
				fmt.Printf("  %d page-chain cycles detected\n", diag.CyclesDetected)
			}
			if diag.PageCapExceeded > 0 {
				fmt.Printf("  %d tables hit the page cap\n", diag.PageCapExceeded)
			}
			if diag.DuplicateTrackIDs > 0 {
				fmt.Printf("  %d duplicate track ids overwritten\n", diag.DuplicateTrackIDs)
			}
			if diag.LargeInput {
				fmt.Printf("  input exceeds the %d byte warning threshold\n", cfg.Decoder.WarnInputBytes)
			}
		}

		if scanMetricsAddr != "" {
			return serveMetrics(scanMetricsAddr, diag)
		}
		return nil
	},
}

// decodeWithCache checks cache (if non-nil) before falling back to
// catalog.Decode, and populates cache with the freshly decoded library.
// diag is nil on a cache hit, since no decode ran to produce one.
func decodeWithCache(cfg *dbconfig.Config, hint string, buf []byte, cache *devcache.Cache) (*catalog.Library, *dbmetrics.Diagnostics, bool, error) {
	if cache != nil {
		if lib, ok, err := cache.Get(buf); err != nil {
			return nil, nil, false, fmt.Errorf("cache lookup for %s: %w", hint, err)
		} else if ok {
			return lib, nil, true, nil
		}
	}

	lib, diag, err := catalog.Decode(buf, hint,
		catalog.WithMaxInputBytes(cfg.Decoder.MaxInputBytes),
		catalog.WithWarnInputBytes(cfg.Decoder.WarnInputBytes),
		catalog.WithMaxPagesPerTable(cfg.Decoder.MaxPagesPerTable),
		catalog.WithMaxRowsPerPage(cfg.Decoder.MaxRowsPerPage),
		catalog.WithDefaultArtist(cfg.Decoder.DefaultArtist),
		catalog.WithDefaultAlbum(cfg.Decoder.DefaultAlbum),
		catalog.WithDefaultTitle(cfg.Decoder.DefaultTitle),
	)
	if err != nil {
		return nil, nil, false, fmt.Errorf("failed to decode %s: %w", hint, err)
	}

	if cache != nil {
		if _, err := cache.Put(buf, lib); err != nil {
			return nil, nil, false, fmt.Errorf("cache write for %s: %w", hint, err)
		}
	}

	return lib, diag, false, nil
}

// serveMetrics exports diag as Prometheus counters on addr and blocks,
// serving /metrics until the process is killed. Intended for a scan run
// left up as a scrape target rather than a fire-and-forget batch job.
func serveMetrics(addr string, diag *dbmetrics.Diagnostics) error {
	reg := prometheus.NewRegistry()
	dbmetrics.NewPromExporter(reg).Observe(diag)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	fmt.Printf("serving metrics on %s/metrics\n", addr)
	return http.ListenAndServe(addr, mux)
}

func init() {
	scanCmd.Flags().StringVar(&scanExtPath, "ext", "", "path to a companion exportExt.pdb to decode and merge in (backfills BPM/genre)")
	scanCmd.Flags().StringVar(&scanCacheDir, "cache", "", "if set, cache decoded libraries in this directory keyed by content hash")
	scanCmd.Flags().StringVar(&scanMetricsAddr, "metrics-addr", "", "if set, serve decode diagnostics as Prometheus metrics on this address (e.g. :9101) and block")
	rootCmd.AddCommand(scanCmd)
}
