package repositories

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/sarasvatiZen/replaylist/internal/playlists"
	"github.com/sarasvatiZen/replaylist/internal/providers"
	"github.com/sarasvatiZen/replaylist/internal/shared"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	return db
}

func TestSnapshotRepository(t *testing.T) {
	t.Run("Save And List Snapshots", func(t *testing.T) {
		repo := NewSnapshotRepository(newTestDB(t))

		items := []playlists.Playlist{
			{ID: "p1", Name: "Chill", CoverURL: "https://img/1.jpg", TrackCount: 12},
			{ID: "p2", Name: "Focus", TrackCount: 30},
		}
		if err := repo.SaveSnapshot(providers.Spotify, items); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if err := repo.SaveSnapshot(providers.YouTube, []playlists.Playlist{{ID: "y1", Name: "Mix", TrackCount: 5}}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		all, err := repo.ListSnapshots("")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(all) != 3 {
			t.Errorf("expected 3 snapshots, got %d", len(all))
		}

		spotify, err := repo.ListSnapshots("spotify")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(spotify) != 2 {
			t.Errorf("expected 2 spotify snapshots, got %d", len(spotify))
		}
		for _, s := range spotify {
			if s.Provider != "spotify" {
				t.Errorf("filter leaked provider %s", s.Provider)
			}
		}
	})

	t.Run("Fetch Log Retains Diagnostics", func(t *testing.T) {
		repo := NewSnapshotRepository(newTestDB(t))

		if err := repo.LogFetch(playlists.FetchResult{
			Provider: providers.Spotify,
			Items:    []playlists.Playlist{{ID: "p1", Name: "Chill"}},
		}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if err := repo.LogFetch(playlists.FetchResult{
			Provider:   providers.YouTube,
			Err:        errors.New("status 502"),
			Diagnostic: "status 502: bad gateway",
		}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		records, err := repo.ListFetchLog(10)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(records) != 2 {
			t.Fatalf("expected 2 records, got %d", len(records))
		}

		byProvider := map[string]FetchRecord{}
		for _, rec := range records {
			byProvider[rec.Provider] = rec
		}
		if rec := byProvider["spotify"]; !rec.OK || rec.ItemCount != 1 || rec.Detail != "" {
			t.Errorf("unexpected spotify record: %+v", rec)
		}
		if rec := byProvider["youtube"]; rec.OK || rec.Detail != "status 502: bad gateway" {
			t.Errorf("unexpected youtube record: %+v", rec)
		}
	})

	t.Run("Fetch Log Limit", func(t *testing.T) {
		repo := NewSnapshotRepository(newTestDB(t))

		for i := 0; i < 5; i++ {
			if err := repo.LogFetch(playlists.FetchResult{Provider: providers.Spotify}); err != nil {
				t.Fatal(err)
			}
		}

		records, err := repo.ListFetchLog(3)
		if err != nil {
			t.Fatal(err)
		}
		if len(records) != 3 {
			t.Errorf("expected 3 records, got %d", len(records))
		}
	})
}
