package merge_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssargent/trackvault/pkg/catalog"
	"github.com/ssargent/trackvault/pkg/merge"
)

func TestMerge_S6_FillsBPMAndGenre(t *testing.T) {
	primary := &catalog.Library{
		Tracks: []catalog.Track{{ID: 7, BPM: 0, Genre: "", Title: "Track Seven"}},
	}
	secondary := &catalog.Library{
		Tracks: []catalog.Track{{ID: 7, BPM: 124.0, Genre: "House"}},
	}

	merged := merge.Merge(primary, secondary)
	require.Len(t, merged.Tracks, 1)

	tr := merged.Tracks[0]
	assert.Equal(t, 124.0, tr.BPM)
	assert.Equal(t, "House", tr.Genre)
	assert.Equal(t, "Track Seven", tr.Title)
}

func TestMerge_PrefersPrimaryWhenAlreadySet(t *testing.T) {
	primary := &catalog.Library{
		Tracks: []catalog.Track{{ID: 1, BPM: 128.0, Genre: "Techno"}},
	}
	secondary := &catalog.Library{
		Tracks: []catalog.Track{{ID: 1, BPM: 90.0, Genre: "House"}},
	}

	merged := merge.Merge(primary, secondary)
	assert.Equal(t, 128.0, merged.Tracks[0].BPM)
	assert.Equal(t, "Techno", merged.Tracks[0].Genre)
}

func TestMerge_SecondaryOnlyTrackIgnored(t *testing.T) {
	primary := &catalog.Library{Tracks: []catalog.Track{{ID: 1}}}
	secondary := &catalog.Library{Tracks: []catalog.Track{{ID: 1}, {ID: 2, BPM: 140}}}

	merged := merge.Merge(primary, secondary)
	require.Len(t, merged.Tracks, 1)
	assert.Equal(t, uint32(1), merged.Tracks[0].ID)
}

func TestMerge_P9_MergeWithSelfIsIdentity(t *testing.T) {
	lib := &catalog.Library{
		Tracks: []catalog.Track{
			{ID: 1, BPM: 128.0, Genre: "Techno"},
			{ID: 2, BPM: 0, Genre: ""},
		},
		Playlists: []*catalog.Playlist{{ID: 1, Name: "Root"}},
	}

	merged := merge.Merge(lib, lib)
	assert.Equal(t, lib.Tracks, merged.Tracks)
	assert.Equal(t, lib.Playlists, merged.Playlists)
}

func TestMerge_NilSecondaryReturnsPrimaryUnchanged(t *testing.T) {
	lib := &catalog.Library{Tracks: []catalog.Track{{ID: 1, BPM: 100}}}
	assert.Same(t, lib, merge.Merge(lib, nil))
}
