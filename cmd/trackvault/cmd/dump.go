package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ssargent/trackvault/pkg/catalog"
)

var dumpFormat string

var dumpCmd = &cobra.Command{
	Use:   "dump <file>",
	Short: "Decode a device database and print its library",
	Long: `Dump decodes a device database file and writes its full track
list and playlist forest to stdout, as JSON or as a plain table.

Example:
  trackvault dump export.pdb > library.json
  trackvault dump --format=table export.pdb`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := configFromContext(cmd)
		path := args[0]

		buf, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		lib, _, err := catalog.Decode(buf, path,
			catalog.WithMaxInputBytes(cfg.Decoder.MaxInputBytes),
			catalog.WithWarnInputBytes(cfg.Decoder.WarnInputBytes),
			catalog.WithMaxPagesPerTable(cfg.Decoder.MaxPagesPerTable),
			catalog.WithMaxRowsPerPage(cfg.Decoder.MaxRowsPerPage),
			catalog.WithDefaultArtist(cfg.Decoder.DefaultArtist),
			catalog.WithDefaultAlbum(cfg.Decoder.DefaultAlbum),
			catalog.WithDefaultTitle(cfg.Decoder.DefaultTitle),
		)
		if err != nil {
			return fmt.Errorf("failed to decode %s: %w", path, err)
		}

		switch dumpFormat {
		case "", "json":
			return dumpJSON(lib)
		case "table":
			return dumpTable(lib)
		default:
			return fmt.Errorf("unknown --format %q: want json or table", dumpFormat)
		}
	},
}

func dumpJSON(lib *catalog.Library) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(lib)
}

func dumpTable(lib *catalog.Library) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tARTIST\tALBUM\tBPM\tDURATION")
	for _, tr := range lib.Tracks {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%.2f\t%ds\n", tr.ID, tr.Title, tr.Artist, tr.Album, tr.BPM, tr.DurationS)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(lib.Playlists) == 0 {
		return nil
	}
	fmt.Println()
	fmt.Println("PLAYLISTS")
	for _, root := range lib.Playlists {
		dumpPlaylistTable(root, 0)
	}
	return nil
}

func dumpPlaylistTable(p *catalog.Playlist, depth int) {
	indent := ""
	for i := 0; i < depth; i++ {
		indent += "  "
	}
	kind := "playlist"
	if p.IsFolder {
		kind = "folder"
	}
	fmt.Printf("%s- %s [%s, %d tracks]\n", indent, p.Name, kind, len(p.TrackIDs))
	for _, child := range p.Children {
		dumpPlaylistTable(child, depth+1)
	}
}

func init() {
	dumpCmd.Flags().StringVar(&dumpFormat, "format", "json", "output format: json or table")
	rootCmd.AddCommand(dumpCmd)
}
