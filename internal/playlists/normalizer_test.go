package playlists

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sarasvatiZen/replaylist/internal/backend"
	"github.com/sarasvatiZen/replaylist/internal/providers"
	"github.com/sarasvatiZen/replaylist/internal/shared"
)

const samplePayload = `[
	{
		"id": "p1",
		"name": "Chill",
		"cover": "https://img/1.jpg",
		"track_count": 2,
		"tracks": [
			{"title": "Song A", "artist": "Artist A", "isrc": "US1234567890"},
			{"title": "Song B", "artist": "Artist B", "isrc": null}
		]
	}
]`

func newPlaylistServer(body string, status int) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
}

func TestNormalizer(t *testing.T) {
	t.Run("Normalizes Provider Payload", func(t *testing.T) {
		server := newPlaylistServer(samplePayload, http.StatusOK)
		defer server.Close()

		n := NewNormalizer(backend.NewClient(server.URL, nil), nil)
		result := n.Fetch(context.Background(), providers.Spotify)
		if result.Err != nil {
			t.Fatalf("expected no error, got %v", result.Err)
		}
		if len(result.Items) != 1 {
			t.Fatalf("expected 1 playlist, got %d", len(result.Items))
		}

		item := result.Items[0]
		if item.ID != "p1" || item.Name != "Chill" || item.CoverURL != "https://img/1.jpg" {
			t.Errorf("unexpected playlist: %+v", item)
		}
		if item.TrackCount != 2 || len(item.Tracks) != 2 {
			t.Errorf("unexpected track shape: count=%d len=%d", item.TrackCount, len(item.Tracks))
		}
		if item.Selected {
			t.Error("expected fresh items to start unselected")
		}
		if item.Tracks[0].ISRC != "US1234567890" {
			t.Errorf("expected ISRC preserved, got %q", item.Tracks[0].ISRC)
		}
		if item.Tracks[1].ISRC != "" {
			t.Errorf("expected null ISRC to normalize to empty, got %q", item.Tracks[1].ISRC)
		}
	})

	t.Run("Reported Count May Disagree With Track Detail", func(t *testing.T) {
		body := `[{"id": "p2", "name": "Big", "cover": "", "track_count": 500, "tracks": []}]`
		server := newPlaylistServer(body, http.StatusOK)
		defer server.Close()

		n := NewNormalizer(backend.NewClient(server.URL, nil), nil)
		result := n.Fetch(context.Background(), providers.YouTube)
		if result.Err != nil {
			t.Fatalf("expected no error, got %v", result.Err)
		}
		if result.Items[0].TrackCount != 500 || len(result.Items[0].Tracks) != 0 {
			t.Errorf("expected count kept independent of detail, got %+v", result.Items[0])
		}
	})

	t.Run("Missing Required Field Fails The Whole Parse", func(t *testing.T) {
		body := `[
			{"id": "p1", "name": "Fine", "cover": "", "track_count": 0, "tracks": []},
			{"id": "", "name": "Broken", "cover": "", "track_count": 0, "tracks": []}
		]`
		server := newPlaylistServer(body, http.StatusOK)
		defer server.Close()

		n := NewNormalizer(backend.NewClient(server.URL, nil), nil)
		result := n.Fetch(context.Background(), providers.Spotify)
		if !errors.Is(result.Err, shared.ErrDecodeFailed) {
			t.Errorf("expected ErrDecodeFailed, got %v", result.Err)
		}
		if len(result.Items) != 0 {
			t.Errorf("expected no partial list, got %d items", len(result.Items))
		}
		if result.Diagnostic == "" {
			t.Error("expected diagnostic retained")
		}
	})

	t.Run("Track Missing Artist Fails The Whole Parse", func(t *testing.T) {
		body := `[{"id": "p1", "name": "Chill", "cover": "", "track_count": 1, "tracks": [{"title": "Song", "artist": "", "isrc": null}]}]`
		server := newPlaylistServer(body, http.StatusOK)
		defer server.Close()

		n := NewNormalizer(backend.NewClient(server.URL, nil), nil)
		if result := n.Fetch(context.Background(), providers.Spotify); !errors.Is(result.Err, shared.ErrDecodeFailed) {
			t.Errorf("expected ErrDecodeFailed, got %v", result.Err)
		}
	})

	t.Run("Backend Error Status", func(t *testing.T) {
		server := newPlaylistServer(`{"error": "boom"}`, http.StatusBadGateway)
		defer server.Close()

		n := NewNormalizer(backend.NewClient(server.URL, nil), nil)
		result := n.Fetch(context.Background(), providers.Spotify)
		if !errors.Is(result.Err, shared.ErrFetchFailed) {
			t.Errorf("expected ErrFetchFailed, got %v", result.Err)
		}
		if result.Diagnostic == "" {
			t.Error("expected diagnostic retained")
		}
	})

	t.Run("Transport Failure", func(t *testing.T) {
		n := NewNormalizer(backend.NewClient("http://localhost:0", nil), nil)
		if result := n.Fetch(context.Background(), providers.Spotify); !errors.Is(result.Err, shared.ErrFetchFailed) {
			t.Errorf("expected ErrFetchFailed, got %v", result.Err)
		}
	})

	t.Run("Amazon Is Unsupported", func(t *testing.T) {
		n := NewNormalizer(backend.NewClient("http://localhost:0", nil), nil)
		if result := n.Fetch(context.Background(), providers.Amazon); !errors.Is(result.Err, shared.ErrUnsupported) {
			t.Errorf("expected ErrUnsupported, got %v", result.Err)
		}
	})
}
