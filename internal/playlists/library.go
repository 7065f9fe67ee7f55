package playlists

import "github.com/sarasvatiZen/replaylist/internal/providers"

// Library holds one playlist collection per provider, plus the loading flag
// and retained diagnostic the UI binds to. It is owned by the event loop:
// fetch goroutines hand results back through Commit rather than mutating
// collections directly.
//
// Commit is generation-guarded: only the fetch issued for a provider's
// current generation may commit to that provider's collection, so a stale
// fetch completing after rapid navigation is discarded instead of
// overwriting fresher state.
type Library struct {
	collections map[providers.Provider][]Playlist
	generations map[providers.Provider]uint64
	loading     map[providers.Provider]bool
	diagnostics map[providers.Provider]string
}

// NewLibrary creates an empty Library.
func NewLibrary() *Library {
	return &Library{
		collections: map[providers.Provider][]Playlist{},
		generations: map[providers.Provider]uint64{},
		loading:     map[providers.Provider]bool{},
		diagnostics: map[providers.Provider]string{},
	}
}

// BeginFetch marks the provider as loading and returns the generation token
// the eventual Commit must present.
func (l *Library) BeginFetch(p providers.Provider) uint64 {
	l.generations[p]++
	l.loading[p] = true
	return l.generations[p]
}

// Commit applies a fetch result to the provider's collection. Failed results
// degrade to an empty collection with the diagnostic retained; either way
// the loading flag clears. A stale generation is discarded and reports
// false.
func (l *Library) Commit(p providers.Provider, generation uint64, result FetchResult) bool {
	if generation != l.generations[p] {
		return false
	}

	l.loading[p] = false
	if result.Err != nil {
		l.collections[p] = []Playlist{}
		l.diagnostics[p] = result.Diagnostic
		return true
	}

	l.collections[p] = result.Items
	l.diagnostics[p] = ""
	return true
}

// Items returns the provider's collection.
func (l *Library) Items(p providers.Provider) []Playlist {
	return l.collections[p]
}

// Loading reports whether a fetch for the provider is outstanding.
func (l *Library) Loading(p providers.Provider) bool {
	return l.loading[p]
}

// Diagnostic returns the retained raw-error string from the provider's last
// failed fetch, empty after a successful one.
func (l *Library) Diagnostic(p providers.Provider) string {
	return l.diagnostics[p]
}

// ToggleAll sets the selected flag on every item in the provider's
// collection. Other providers' collections are untouched even though they
// are not visible.
func (l *Library) ToggleAll(p providers.Provider, on bool) {
	items := l.collections[p]
	for i := range items {
		items[i].Selected = on
	}
}

// Toggle sets the selected flag on the single matching item in the
// provider's collection. Unknown ids are a no-op; the return value reports
// whether anything matched.
func (l *Library) Toggle(p providers.Provider, id string, on bool) bool {
	items := l.collections[p]
	for i := range items {
		if items[i].ID == id {
			items[i].Selected = on
			return true
		}
	}
	return false
}

// Selected returns the provider's selected items in collection order.
func (l *Library) Selected(p providers.Provider) []Playlist {
	var out []Playlist
	for _, item := range l.collections[p] {
		if item.Selected {
			out = append(out, item)
		}
	}
	return out
}
