package rowdecode

import (
	"github.com/ssargent/trackvault/pkg/byteio"
	"github.com/ssargent/trackvault/pkg/dbmetrics"
)

const (
	playlistTreeMinLen  = 0x14
	playlistEntryMinLen = 0x0C
)

// DecodePlaylistTree decodes a playlist-tree row (type 7).
func DecodePlaylistTree(src *byteio.Source, rowBase int, diag *dbmetrics.Diagnostics) (PlaylistTreeRow, bool) {
	if !src.InBounds(rowBase, playlistTreeMinLen) {
		return PlaylistTreeRow{}, false
	}
	parentID, err := src.U32LEAt(rowBase)
	if err != nil {
		return PlaylistTreeRow{}, false
	}
	sortOrder, err := src.U32LEAt(rowBase + 8)
	if err != nil {
		return PlaylistTreeRow{}, false
	}
	id, err := src.U32LEAt(rowBase + 12)
	if err != nil {
		return PlaylistTreeRow{}, false
	}
	rawIsFolder, err := src.U32LEAt(rowBase + 16)
	if err != nil {
		return PlaylistTreeRow{}, false
	}

	name := decodeDeviceString(src, rowBase+20, diag)
	if id == 0 || name == "" {
		return PlaylistTreeRow{}, false
	}

	return PlaylistTreeRow{
		ID:        id,
		ParentID:  parentID,
		SortOrder: sortOrder,
		IsFolder:  rawIsFolder != 0,
		Name:      name,
	}, true
}

// DecodePlaylistEntry decodes a playlist-entry row (type 8).
func DecodePlaylistEntry(src *byteio.Source, rowBase int) (PlaylistEntryRow, bool) {
	if !src.InBounds(rowBase, playlistEntryMinLen) {
		return PlaylistEntryRow{}, false
	}
	position, err := src.U32LEAt(rowBase)
	if err != nil {
		return PlaylistEntryRow{}, false
	}
	trackID, err := src.U32LEAt(rowBase + 4)
	if err != nil {
		return PlaylistEntryRow{}, false
	}
	playlistID, err := src.U32LEAt(rowBase + 8)
	if err != nil {
		return PlaylistEntryRow{}, false
	}

	if trackID == 0 || playlistID == 0 {
		return PlaylistEntryRow{}, false
	}

	return PlaylistEntryRow{PlaylistID: playlistID, TrackID: trackID, Position: position}, true
}
