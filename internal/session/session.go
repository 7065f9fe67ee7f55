// package session models the migration session: the ordered source and
// destination candidate lists plus the active source index, serialized to and
// from the address-bar query string.
//
// The query string is the sole source of truth for which provider pair is in
// play. Sessions are values; navigation and swap return a replacement rather
// than patching in place.
package session

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/sarasvatiZen/replaylist/internal/providers"
)

const (
	paramSources = "left"
	paramDests   = "right"
	paramActive  = "li"
)

// Session is the full navigable state of a migration: two disjoint ordered
// provider lists and an index into the source list. Destinations is
// conventionally a singleton but only index 0 is ever read.
type Session struct {
	Sources      []providers.Provider
	Destinations []providers.Provider
	Active       int
}

// Default returns the session produced by an empty query string.
func Default() Session {
	return Session{
		Sources:      []providers.Provider{providers.YouTube, providers.Apple, providers.Amazon},
		Destinations: []providers.Provider{providers.Spotify},
		Active:       1,
	}
}

// Decode parses a raw query string (with or without a leading "?") into a
// Session. Unknown wire keys are dropped silently, as are keys already
// claimed by the other list, so the disjointness invariant holds by
// construction. A missing or non-numeric active index defaults to 1 and is
// always clamped into range. Malformed queries degrade to the default
// session rather than erroring.
func Decode(rawQuery string) Session {
	rawQuery = strings.TrimPrefix(rawQuery, "?")
	values, err := url.ParseQuery(rawQuery)
	if err != nil {
		return Default()
	}
	return DecodeValues(values)
}

// DecodeValues decodes an already-parsed query. The destination list is
// claimed first so that a provider named in both lists stays a destination.
// A destination list claiming every provider is trimmed to its first entry;
// the source list is never empty.
func DecodeValues(values url.Values) Session {
	def := Default()

	claimed := make(map[providers.Provider]bool)
	dests := parseList(values.Get(paramDests), claimed)
	if len(dests) == 0 {
		dests = def.Destinations
		for _, p := range dests {
			claimed[p] = true
		}
	}

	sources := parseList(values.Get(paramSources), claimed)
	if len(sources) == 0 {
		sources = defaultSources(claimed, def.Sources)
	}
	if len(sources) == 0 {
		// The destination list claimed every provider. Cede everything but
		// the active destination back to the source side so the active index
		// always has something to point at.
		dests = dests[:1]
		sources = defaultSources(map[providers.Provider]bool{dests[0]: true}, def.Sources)
	}

	active := def.Active
	if raw := values.Get(paramActive); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			active = n
		}
	}

	return Session{
		Sources:      sources,
		Destinations: dests,
		Active:       clampIndex(active, len(sources)),
	}
}

// parseList splits a comma list of wire keys, filtering unknown tokens and
// providers already claimed by the other list or earlier in this one.
func parseList(csv string, claimed map[providers.Provider]bool) []providers.Provider {
	if csv == "" {
		return nil
	}
	var out []providers.Provider
	for _, token := range strings.Split(csv, ",") {
		p, ok := providers.FromKey(strings.TrimSpace(token))
		if !ok || claimed[p] {
			continue
		}
		claimed[p] = true
		out = append(out, p)
	}
	return out
}

// defaultSources returns the default source order minus any provider the
// destination list already holds. An empty source list would leave the
// active index with nothing to point at.
func defaultSources(claimed map[providers.Provider]bool, def []providers.Provider) []providers.Provider {
	var out []providers.Provider
	for _, p := range def {
		if !claimed[p] {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		for _, p := range providers.All() {
			if !claimed[p] {
				out = append(out, p)
			}
		}
	}
	return out
}

func clampIndex(i, length int) int {
	if i < 0 {
		return 0
	}
	if i > length-1 {
		return length - 1
	}
	return i
}

// Encode serializes the session back into the address-bar query string.
// Decode(Encode(s)) == s for every session reachable through navigation and
// swap.
func (s Session) Encode() string {
	var b strings.Builder
	b.WriteString(paramSources)
	b.WriteByte('=')
	b.WriteString(joinKeys(s.Sources))
	b.WriteByte('&')
	b.WriteString(paramDests)
	b.WriteByte('=')
	b.WriteString(joinKeys(s.Destinations))
	b.WriteByte('&')
	b.WriteString(paramActive)
	b.WriteByte('=')
	b.WriteString(strconv.Itoa(s.Active))
	return b.String()
}

// OAuthState builds the value handed to the OAuth state parameter: the same
// triple as Encode, pre-percent-encoding. Every provider's authorize URL
// percent-encodes this value exactly once; the backend callback decodes it
// and redirects to "/?<state>" to restore the session.
func (s Session) OAuthState() string {
	return s.Encode()
}

func joinKeys(list []providers.Provider) string {
	keys := make([]string, len(list))
	for i, p := range list {
		keys[i] = p.Key()
	}
	return strings.Join(keys, ",")
}

// ActiveSource returns the provider playlists are read from.
func (s Session) ActiveSource() providers.Provider {
	return s.Sources[clampIndex(s.Active, len(s.Sources))]
}

// ActiveDestination returns the provider playlists are written to.
func (s Session) ActiveDestination() providers.Provider {
	return s.Destinations[0]
}

// Next moves the active index toward the end of the source list. At the last
// candidate it is a no-op.
func (s Session) Next() Session {
	s.Active = clampIndex(s.Active+1, len(s.Sources))
	return s
}

// Prev moves the active index toward the start of the source list. At index 0
// it is a no-op.
func (s Session) Prev() Session {
	s.Active = clampIndex(s.Active-1, len(s.Sources))
	return s
}

// Swap exchanges the active source with the active destination: the provider
// at destination index 0 takes the active source slot and vice versa. The
// lists stay disjoint and the active index does not move.
func (s Session) Swap() Session {
	sources := make([]providers.Provider, len(s.Sources))
	copy(sources, s.Sources)
	dests := make([]providers.Provider, len(s.Destinations))
	copy(dests, s.Destinations)

	i := clampIndex(s.Active, len(sources))
	sources[i], dests[0] = dests[0], sources[i]

	s.Sources = sources
	s.Destinations = dests
	s.Active = i
	return s
}

// Equal reports whether two sessions carry the same lists and index.
func (s Session) Equal(other Session) bool {
	if s.Active != other.Active ||
		len(s.Sources) != len(other.Sources) ||
		len(s.Destinations) != len(other.Destinations) {
		return false
	}
	for i, p := range s.Sources {
		if other.Sources[i] != p {
			return false
		}
	}
	for i, p := range s.Destinations {
		if other.Destinations[i] != p {
			return false
		}
	}
	return true
}
