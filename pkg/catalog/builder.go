package catalog

import (
	"sort"

	"github.com/ssargent/trackvault/pkg/dbmetrics"
	"github.com/ssargent/trackvault/pkg/page"
	"github.com/ssargent/trackvault/pkg/rowdecode"

	"github.com/ssargent/trackvault/pkg/byteio"
)

// playlistEntry is an intermediate (track_id, position) pair awaiting sort
// before it becomes part of a Playlist's TrackIDs.
type playlistEntry struct {
	trackID  uint32
	position uint32
}

// Builder orchestrates the four sequential decode passes over a table
// list: lookups, playlist tree, playlist entries, tracks. Passes run in
// that fixed order so foreign-key targets exist by the time tracks are
// resolved.
type Builder struct {
	src     *byteio.Source
	pageLen int
	descs   []page.TableDescriptor
	diag    *dbmetrics.Diagnostics
	limits  page.Limits
	fkDef   FKDefaults

	artists map[uint32]string
	albums  map[uint32]string
	genres  map[uint32]string
	keys    map[uint32]string
	labels  map[uint32]string

	nodesInOrder []*Playlist
	nodesByID    map[uint32]*Playlist

	entriesByPlaylist map[uint32][]playlistEntry

	trackOrder []uint32
	trackByID  map[uint32]Track
}

// NewBuilder constructs a Builder over src's decoded table list, applying
// limits to every table walk and fkDef as the fallback text for missing
// track titles/artists/albums.
func NewBuilder(src *byteio.Source, pageLen int, descs []page.TableDescriptor, diag *dbmetrics.Diagnostics, limits page.Limits, fkDef FKDefaults) *Builder {
	return &Builder{
		src:               src,
		pageLen:           pageLen,
		descs:             descs,
		diag:              diag,
		limits:            limits,
		fkDef:             fkDef,
		artists:           make(map[uint32]string),
		albums:            make(map[uint32]string),
		genres:            make(map[uint32]string),
		keys:              make(map[uint32]string),
		labels:            make(map[uint32]string),
		nodesByID:         make(map[uint32]*Playlist),
		entriesByPlaylist: make(map[uint32][]playlistEntry),
		trackByID:         make(map[uint32]Track),
	}
}

// Build runs all four passes and assembles the resulting Library.
func (b *Builder) Build() *Library {
	b.loadLookups()
	b.loadPlaylistTree()
	b.loadPlaylistEntries()
	b.loadTracks()

	return &Library{
		Tracks:    b.assembleTracks(),
		Playlists: b.assembleForest(),
	}
}

func (b *Builder) walk(desc page.TableDescriptor) *page.Walker {
	return page.NewWalkerWithLimits(b.src, b.pageLen, desc, b.limits)
}

func (b *Builder) finishWalk(w *page.Walker) {
	b.diag.AddPagesWalked(w.PagesWalked())
	if w.CycleDetected() {
		b.diag.IncCycleDetected()
	}
	if w.PageCapExceeded() {
		b.diag.IncPageCapExceeded()
	}
}

// pass 1: lookups
func (b *Builder) loadLookups() {
	for _, desc := range b.descs {
		switch desc.Type {
		case rowdecode.TypeArtist:
			b.loadNamedEntities(desc, b.artists, rowdecode.DecodeArtist)
		case rowdecode.TypeAlbum:
			b.loadNamedEntities(desc, b.albums, rowdecode.DecodeAlbum)
		case rowdecode.TypeGenre:
			b.loadNamedEntities(desc, b.genres, rowdecode.DecodeGenreOrLabel)
		case rowdecode.TypeKey:
			b.loadNamedEntities(desc, b.keys, rowdecode.DecodeKey)
		case rowdecode.TypeLabel:
			b.loadNamedEntities(desc, b.labels, rowdecode.DecodeGenreOrLabel)
		}
	}
}

func (b *Builder) loadNamedEntities(desc page.TableDescriptor, into map[uint32]string, decode func(*byteio.Source, int, *dbmetrics.Diagnostics) (rowdecode.NamedEntity, bool)) {
	w := b.walk(desc)
	for {
		row, ok := w.Next()
		if !ok {
			break
		}
		entity, ok := decode(b.src, row.Offset, b.diag)
		if !ok {
			b.diag.IncMalformedRecord()
			continue
		}
		into[entity.ID] = entity.Name
	}
	b.finishWalk(w)
}

// pass 2: playlist tree
func (b *Builder) loadPlaylistTree() {
	for _, desc := range b.descs {
		if desc.Type != rowdecode.TypePlaylistTree {
			continue
		}
		w := b.walk(desc)
		for {
			row, ok := w.Next()
			if !ok {
				break
			}
			node, ok := rowdecode.DecodePlaylistTree(b.src, row.Offset, b.diag)
			if !ok {
				b.diag.IncMalformedRecord()
				continue
			}
			pl := &Playlist{
				ID:        node.ID,
				Name:      node.Name,
				ParentID:  node.ParentID,
				IsFolder:  node.IsFolder,
				sortOrder: node.SortOrder,
			}
			b.nodesInOrder = append(b.nodesInOrder, pl)
			b.nodesByID[pl.ID] = pl
		}
		b.finishWalk(w)
	}
}

// pass 3: playlist entries
func (b *Builder) loadPlaylistEntries() {
	for _, desc := range b.descs {
		if desc.Type != rowdecode.TypePlaylistEntry {
			continue
		}
		w := b.walk(desc)
		for {
			row, ok := w.Next()
			if !ok {
				break
			}
			entry, ok := rowdecode.DecodePlaylistEntry(b.src, row.Offset)
			if !ok {
				b.diag.IncMalformedRecord()
				continue
			}
			b.entriesByPlaylist[entry.PlaylistID] = append(b.entriesByPlaylist[entry.PlaylistID], playlistEntry{
				trackID:  entry.TrackID,
				position: entry.Position,
			})
		}
		b.finishWalk(w)
	}
}

// pass 4: tracks
func (b *Builder) loadTracks() {
	for _, desc := range b.descs {
		if desc.Type != rowdecode.TypeTrack {
			continue
		}
		w := b.walk(desc)
		for {
			row, ok := w.Next()
			if !ok {
				break
			}
			tr, ok := rowdecode.DecodeTrack(b.src, row.Offset, b.diag)
			if !ok {
				b.diag.IncMalformedRecord()
				continue
			}
			b.addTrack(tr)
		}
		b.finishWalk(w)
	}
}

func (b *Builder) addTrack(tr rowdecode.TrackRow) {
	if _, exists := b.trackByID[tr.ID]; exists {
		b.diag.IncDuplicateTrackID()
	} else {
		b.trackOrder = append(b.trackOrder, tr.ID)
	}
	b.diag.IncTrackDecoded()

	title := tr.Title
	if title == "" {
		title = b.fkDef.Title
	}
	artist := b.artists[tr.ArtistID]
	if artist == "" {
		artist = b.fkDef.Artist
	}
	album := b.albums[tr.AlbumID]
	if album == "" {
		album = b.fkDef.Album
	}

	b.trackByID[tr.ID] = Track{
		ID:        tr.ID,
		Title:     title,
		Artist:    artist,
		Album:     album,
		Genre:     b.genres[tr.GenreID],
		Key:       b.keys[tr.KeyID],
		DurationS: tr.DurationS,
		BPM:       float64(tr.TempoCentiBPM) / 100.0,
		Rating:    tr.Rating,
		Bitrate:   tr.BitrateKbps,
		FilePath:  tr.FilePath,
		DateAdded: tr.DateAdded,
	}
}

func (b *Builder) assembleTracks() []Track {
	tracks := make([]Track, 0, len(b.trackOrder))
	for _, id := range b.trackOrder {
		tracks = append(tracks, b.trackByID[id])
	}
	return tracks
}

func (b *Builder) assembleForest() []*Playlist {
	var roots []*Playlist

	for _, node := range b.nodesInOrder {
		parent, hasParent := b.nodesByID[node.ParentID]
		if node.ParentID == 0 || !hasParent {
			roots = append(roots, node)
			continue
		}
		parent.Children = append(parent.Children, node)
	}

	for _, node := range b.nodesInOrder {
		entries := b.entriesByPlaylist[node.ID]
		if len(entries) == 0 {
			continue
		}
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].position < entries[j].position
		})
		ids := make([]uint32, len(entries))
		for i, e := range entries {
			ids[i] = e.trackID
		}
		node.TrackIDs = ids
	}

	sort.SliceStable(roots, func(i, j int) bool {
		return roots[i].sortOrder < roots[j].sortOrder
	})

	return roots
}
