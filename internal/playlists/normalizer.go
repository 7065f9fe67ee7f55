package playlists

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/sarasvatiZen/replaylist/internal/backend"
	"github.com/sarasvatiZen/replaylist/internal/providers"
	"github.com/sarasvatiZen/replaylist/internal/shared"
)

// FetchResult is the typed outcome of one playlist fetch. Failures keep
// their reason here; the Library degrades them to an empty collection at the
// binding boundary so the UI never sees an error.
type FetchResult struct {
	Provider providers.Provider
	Items    []Playlist
	Err      error
	// Diagnostic retains the raw backend error string for failed fetches.
	Diagnostic string
}

// Normalizer fetches and parses provider playlist JSON into the shared model.
type Normalizer struct {
	client *backend.Client
	logger *log.Logger
}

// NewNormalizer creates a Normalizer backed by the given client.
func NewNormalizer(client *backend.Client, logger *log.Logger) *Normalizer {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Normalizer{client: client, logger: logger}
}

// Fetch retrieves the provider's playlists. Amazon has no playlist endpoint
// and resolves to the normalized unsupported failure. Transport and decode
// failures are equivalent: both yield a FetchResult carrying the error and a
// diagnostic, with no items.
func (n *Normalizer) Fetch(ctx context.Context, p providers.Provider) FetchResult {
	if p == providers.Amazon {
		return FetchResult{
			Provider:   p,
			Err:        shared.ErrUnsupported,
			Diagnostic: shared.ErrUnsupported.Error(),
		}
	}

	resp, err := n.client.Get(ctx, "/api/"+p.Key()+"/playlists")
	if err != nil {
		n.logger.Debug("playlist fetch failed", "provider", p.Key(), "err", err)
		return FetchResult{
			Provider:   p,
			Err:        fmt.Errorf("%w: %v", shared.ErrFetchFailed, err),
			Diagnostic: err.Error(),
		}
	}
	if !resp.OK() {
		n.logger.Debug("playlist fetch failed", "provider", p.Key(), "status", resp.StatusCode)
		return FetchResult{
			Provider:   p,
			Err:        fmt.Errorf("%w: status %d", shared.ErrFetchFailed, resp.StatusCode),
			Diagnostic: fmt.Sprintf("status %d: %s", resp.StatusCode, resp.Body),
		}
	}

	items, err := decodeList(resp.Body)
	if err != nil {
		n.logger.Debug("playlist decode failed", "provider", p.Key(), "err", err)
		return FetchResult{
			Provider:   p,
			Err:        err,
			Diagnostic: err.Error(),
		}
	}

	return FetchResult{Provider: p, Items: items}
}
