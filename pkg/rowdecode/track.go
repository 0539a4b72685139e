package rowdecode

import (
	"github.com/ssargent/trackvault/pkg/byteio"
	"github.com/ssargent/trackvault/pkg/dbmetrics"
)

const (
	trackMinLen = 0x86

	ofsKeyID    = 0x20
	ofsBitrate  = 0x30
	ofsTempo    = 0x38
	ofsGenreID  = 0x3C
	ofsAlbumID  = 0x40
	ofsArtistID = 0x44
	ofsID       = 0x48
	ofsDuration = 0x54
	ofsRating   = 0x59

	stringOffsetTableBase = 0x5E
	slotDateAdded         = 10
	slotTitle             = 17
	slotFilePath          = 20

	maxPlausibleStringOffset = 10000
	maxTempoCentiBPM         = 50000
	maxDurationS             = 36000
	maxBitrateKbps           = 10000
)

// DecodeTrack decodes a track row (type 0).
func DecodeTrack(src *byteio.Source, rowBase int, diag *dbmetrics.Diagnostics) (TrackRow, bool) {
	if !src.InBounds(rowBase, trackMinLen) {
		return TrackRow{}, false
	}

	bitrate, err := src.U32LEAt(rowBase + ofsBitrate)
	if err != nil {
		return TrackRow{}, false
	}
	tempo, err := src.U32LEAt(rowBase + ofsTempo)
	if err != nil {
		return TrackRow{}, false
	}
	genreID, err := src.U32LEAt(rowBase + ofsGenreID)
	if err != nil {
		return TrackRow{}, false
	}
	albumID, err := src.U32LEAt(rowBase + ofsAlbumID)
	if err != nil {
		return TrackRow{}, false
	}
	artistID, err := src.U32LEAt(rowBase + ofsArtistID)
	if err != nil {
		return TrackRow{}, false
	}
	id, err := src.U32LEAt(rowBase + ofsID)
	if err != nil {
		return TrackRow{}, false
	}
	duration, err := src.U16LEAt(rowBase + ofsDuration)
	if err != nil {
		return TrackRow{}, false
	}
	rating, err := src.U8At(rowBase + ofsRating)
	if err != nil {
		return TrackRow{}, false
	}
	keyID, err := src.U32LEAt(rowBase + ofsKeyID)
	if err != nil {
		return TrackRow{}, false
	}

	if id == 0 || tempo > maxTempoCentiBPM || uint32(duration) > maxDurationS || bitrate > maxBitrateKbps {
		return TrackRow{}, false
	}

	return TrackRow{
		ID:            id,
		Title:         decodeSlotString(src, rowBase, slotTitle, diag),
		ArtistID:      artistID,
		AlbumID:       albumID,
		GenreID:       genreID,
		KeyID:         keyID,
		DurationS:     duration,
		TempoCentiBPM: tempo,
		Rating:        rating,
		BitrateKbps:   bitrate,
		FilePath:      decodeSlotString(src, rowBase, slotFilePath, diag),
		DateAdded:     decodeSlotString(src, rowBase, slotDateAdded, diag),
	}, true
}

// decodeSlotString reads the slot'th entry of the track row's string-offset
// table and, if it names a plausible offset, decodes the device string
// there. A slot value of 0 ("no string") or an implausible offset
// (> maxPlausibleStringOffset) yields "" without touching diag — there is
// no string to have been corrupted. A plausible offset that fails to
// decode is counted as an invalid string; the track row itself survives.
func decodeSlotString(src *byteio.Source, rowBase, slot int, diag *dbmetrics.Diagnostics) string {
	v, err := src.U16LEAt(rowBase + stringOffsetTableBase + slot*2)
	if err != nil || v == 0 || int(v) > maxPlausibleStringOffset {
		return ""
	}
	return decodeDeviceString(src, rowBase+int(v), diag)
}
