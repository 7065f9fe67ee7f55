// package providers defines the closed set of music streaming providers and their static metadata.
package providers

// Provider identifies one of the supported music streaming services.
type Provider int

const (
	Apple Provider = iota
	Spotify
	YouTube
	Amazon
)

// Metadata carries the display and wire-format attributes of a provider.
type Metadata struct {
	Name       string // Human-readable display name
	Icon       string // Icon asset path
	LoginLabel string // Label for the provider's login button
	Key        string // Wire-format key used in URLs and API paths
}

var directory = map[Provider]Metadata{
	Apple:   {Name: "Apple Music", Icon: "img/apple.svg", LoginLabel: "Sign in with Apple", Key: "apple"},
	Spotify: {Name: "Spotify", Icon: "img/spotify.svg", LoginLabel: "Log in to Spotify", Key: "spotify"},
	YouTube: {Name: "YouTube Music", Icon: "img/youtube.svg", LoginLabel: "Sign in with Google", Key: "youtube"},
	Amazon:  {Name: "Amazon Music", Icon: "img/amazon.svg", LoginLabel: "Log in to Amazon", Key: "amazon"},
}

// All returns every provider in canonical order.
func All() []Provider {
	return []Provider{Apple, Spotify, YouTube, Amazon}
}

// Lookup returns the metadata for p. The mapping is total over the closed provider set.
func Lookup(p Provider) Metadata {
	return directory[p]
}

// FromKey resolves a wire key to its provider. Unrecognized keys report false rather than panicking.
func FromKey(key string) (Provider, bool) {
	for _, p := range All() {
		if directory[p].Key == key {
			return p, true
		}
	}
	return 0, false
}

func (p Provider) String() string {
	return directory[p].Key
}

// Name returns the provider's display name.
func (p Provider) Name() string {
	return directory[p].Name
}

// Key returns the provider's wire-format key.
func (p Provider) Key() string {
	return directory[p].Key
}
