// package repositories contains the SQLite-backed local diagnostics cache:
// playlist snapshots saved on request and the fetch log that retains raw
// error strings from degraded fetches. The session core never reads from
// here.
package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/sarasvatiZen/replaylist/internal/playlists"
	"github.com/sarasvatiZen/replaylist/internal/providers"
	"github.com/sarasvatiZen/replaylist/internal/shared"
)

// Snapshot is one cached playlist row.
type Snapshot struct {
	ID         string
	Provider   string
	PlaylistID string
	Name       string
	CoverURL   string
	TrackCount int
	FetchedAt  time.Time
}

// FetchRecord is one row of the fetch diagnostics log.
type FetchRecord struct {
	ID        string
	Provider  string
	OK        bool
	ItemCount int
	Detail    string
	CreatedAt time.Time
}

// SnapshotRepository persists snapshots and fetch diagnostics.
type SnapshotRepository struct {
	db *sql.DB
}

// NewSnapshotRepository creates a SnapshotRepository with the given database connection.
func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// SaveSnapshot inserts one row per playlist in the provider's fetched
// collection.
func (r *SnapshotRepository) SaveSnapshot(p providers.Provider, items []playlists.Playlist) error {
	now := time.Now()
	for _, item := range items {
		_, err := r.db.Exec(`
			INSERT INTO snapshots (id, provider, playlist_id, name, cover_url, track_count, fetched_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, shared.GenerateID(), p.Key(), item.ID, item.Name, item.CoverURL, item.TrackCount, now)
		if err != nil {
			return fmt.Errorf("failed to insert snapshot: %w", err)
		}
	}
	return nil
}

// LogFetch records the outcome of one playlist fetch, keeping the diagnostic
// string for failures.
func (r *SnapshotRepository) LogFetch(result playlists.FetchResult) error {
	_, err := r.db.Exec(`
		INSERT INTO fetch_log (id, provider, ok, item_count, detail, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, shared.GenerateID(), result.Provider.Key(), result.Err == nil, len(result.Items), result.Diagnostic, time.Now())
	if err != nil {
		return fmt.Errorf("failed to insert fetch record: %w", err)
	}
	return nil
}

// ListSnapshots returns cached playlists, newest first, optionally filtered
// by provider wire key.
func (r *SnapshotRepository) ListSnapshots(providerKey string) ([]Snapshot, error) {
	query := `
		SELECT id, provider, playlist_id, name, cover_url, track_count, fetched_at
		FROM snapshots
	`
	args := []any{}
	if providerKey != "" {
		query += " WHERE provider = ?"
		args = append(args, providerKey)
	}
	query += " ORDER BY fetched_at DESC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer rows.Close()

	var out []Snapshot
	for rows.Next() {
		var s Snapshot
		if err := rows.Scan(&s.ID, &s.Provider, &s.PlaylistID, &s.Name, &s.CoverURL, &s.TrackCount, &s.FetchedAt); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		out = append(out, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return out, nil
}

// ListFetchLog returns the most recent fetch records, newest first.
func (r *SnapshotRepository) ListFetchLog(limit int) ([]FetchRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.Query(`
		SELECT id, provider, ok, item_count, detail, created_at
		FROM fetch_log
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query fetch log: %w", err)
	}
	defer rows.Close()

	var out []FetchRecord
	for rows.Next() {
		var rec FetchRecord
		if err := rows.Scan(&rec.ID, &rec.Provider, &rec.OK, &rec.ItemCount, &rec.Detail, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan fetch record: %w", err)
		}
		out = append(out, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return out, nil
}
