// Package rowdecode implements the per-row field layouts for the device
// database's eight table kinds. Each decoder receives a row's absolute
// byte offset and decodes it into a typed value, or reports that the row
// should be dropped (malformed header, failed sanity gate, or empty
// required text) without returning an error — a bad row never aborts the
// page or table it came from.
package rowdecode

// Page/table kind discriminants, as carried in the file header's table
// descriptors and each data page's header.
const (
	TypeTrack          = 0
	TypeGenre          = 1
	TypeArtist         = 2
	TypeAlbum          = 3
	TypeLabel          = 4
	TypeKey            = 5
	TypePlaylistTree   = 7
	TypePlaylistEntry  = 8
)

// NamedEntity covers Artist, Album, Genre, Key, and Label rows, which all
// reduce to the same (id, name) shape after decoding.
type NamedEntity struct {
	ID   uint32
	Name string
}

// PlaylistTreeRow is one playlist or folder node.
type PlaylistTreeRow struct {
	ID        uint32
	ParentID  uint32
	SortOrder uint32
	IsFolder  bool
	Name      string
}

// PlaylistEntryRow links a track into a playlist at a given position.
type PlaylistEntryRow struct {
	PlaylistID uint32
	TrackID    uint32
	Position   uint32
}

// TrackRow is a fully decoded track record.
type TrackRow struct {
	ID            uint32
	Title         string
	ArtistID      uint32
	AlbumID       uint32
	GenreID       uint32
	KeyID         uint32
	DurationS     uint16
	TempoCentiBPM uint32
	Rating        uint8
	BitrateKbps   uint32
	FilePath      string
	DateAdded     string
}
