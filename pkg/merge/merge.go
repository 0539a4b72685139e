// Package merge combines a primary decoded library with a secondary one,
// by track id, to fill in fields the primary left blank (typically bpm
// and genre from a companion export). Playlists are never merged: they
// come exclusively from the primary.
package merge

import "github.com/ssargent/trackvault/pkg/catalog"

// Merge returns a new Library equal to primary, except that for every
// track also present in secondary (matched by id): bpm is taken from
// secondary when primary's bpm is <= 0, and genre is taken from
// secondary when primary's genre is empty. Tracks present only in
// secondary are ignored. Merging a library with itself is the identity,
// since every field preference already favors the primary side.
func Merge(primary, secondary *catalog.Library) *catalog.Library {
	if primary == nil {
		return nil
	}
	if secondary == nil {
		return primary
	}

	bySecondaryID := make(map[uint32]catalog.Track, len(secondary.Tracks))
	for _, tr := range secondary.Tracks {
		bySecondaryID[tr.ID] = tr
	}

	tracks := make([]catalog.Track, len(primary.Tracks))
	for i, tr := range primary.Tracks {
		other, ok := bySecondaryID[tr.ID]
		if !ok {
			tracks[i] = tr
			continue
		}
		if tr.BPM <= 0 {
			tr.BPM = other.BPM
		}
		if tr.Genre == "" {
			tr.Genre = other.Genre
		}
		tracks[i] = tr
	}

	return &catalog.Library{
		Tracks:    tracks,
		Playlists: primary.Playlists,
	}
}
