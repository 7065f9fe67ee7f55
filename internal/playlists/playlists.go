// package playlists normalizes provider playlist JSON into one shared model
// and tracks per-provider selection state.
//
// Each provider owns an independent collection; nothing here ever merges or
// cross-contaminates them.
package playlists

import (
	"encoding/json"
	"fmt"

	"github.com/sarasvatiZen/replaylist/internal/shared"
)

// Track is a provider-normalized track. ISRC is empty when the provider did
// not report one.
type Track struct {
	Title  string
	Artist string
	ISRC   string
}

// Playlist is the normalized playlist model. TrackCount is provider-reported
// metadata and is independent of len(Tracks): providers may report a count
// without full track detail.
type Playlist struct {
	ID         string
	Name       string
	CoverURL   string
	TrackCount int
	Selected   bool
	Tracks     []Track
}

// WireTrack is the track shape on the backend wire.
type WireTrack struct {
	Title  string  `json:"title"`
	Artist string  `json:"artist"`
	ISRC   *string `json:"isrc"`
}

// WirePlaylist is the playlist shape on the backend wire. Field names differ
// from the normalized model (cover vs CoverURL, track_count vs TrackCount);
// the mapping is explicit in normalize and ToWire.
type WirePlaylist struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Cover      string      `json:"cover"`
	TrackCount int         `json:"track_count"`
	Tracks     []WireTrack `json:"tracks"`
}

// normalize validates a wire record and maps it into the shared model. A
// missing required field fails the record, which fails the whole parse.
func (w WirePlaylist) normalize() (Playlist, error) {
	if w.ID == "" {
		return Playlist{}, fmt.Errorf("%w: playlist missing id", shared.ErrDecodeFailed)
	}
	if w.Name == "" {
		return Playlist{}, fmt.Errorf("%w: playlist %s missing name", shared.ErrDecodeFailed, w.ID)
	}

	tracks := make([]Track, 0, len(w.Tracks))
	for i, wt := range w.Tracks {
		if wt.Title == "" || wt.Artist == "" {
			return Playlist{}, fmt.Errorf("%w: playlist %s track %d missing title or artist", shared.ErrDecodeFailed, w.ID, i)
		}
		track := Track{Title: wt.Title, Artist: wt.Artist}
		if wt.ISRC != nil {
			track.ISRC = *wt.ISRC
		}
		tracks = append(tracks, track)
	}

	return Playlist{
		ID:         w.ID,
		Name:       w.Name,
		CoverURL:   w.Cover,
		TrackCount: w.TrackCount,
		Tracks:     tracks,
	}, nil
}

// ToWire maps a normalized playlist back to the wire shape used by transfer
// payloads.
func ToWire(p Playlist) WirePlaylist {
	tracks := make([]WireTrack, len(p.Tracks))
	for i, t := range p.Tracks {
		wt := WireTrack{Title: t.Title, Artist: t.Artist}
		if t.ISRC != "" {
			isrc := t.ISRC
			wt.ISRC = &isrc
		}
		tracks[i] = wt
	}
	return WirePlaylist{
		ID:         p.ID,
		Name:       p.Name,
		Cover:      p.CoverURL,
		TrackCount: p.TrackCount,
		Tracks:     tracks,
	}
}

// decodeList parses a provider's playlist array. Any invalid record fails the
// whole parse; there are no partial lists.
func decodeList(data []byte) ([]Playlist, error) {
	var wire []WirePlaylist
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrDecodeFailed, err)
	}

	items := make([]Playlist, 0, len(wire))
	for _, w := range wire {
		item, err := w.normalize()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
