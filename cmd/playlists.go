package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sarasvatiZen/replaylist/internal/playlists"
	"github.com/sarasvatiZen/replaylist/internal/repositories"
	"github.com/sarasvatiZen/replaylist/internal/shared"
	"github.com/urfave/cli/v3"
)

// Playlists fetches and prints a service's playlists in the shared normalized
// shape. A failed fetch degrades to an empty listing with the reason shown as
// a diagnostic, matching the in-app behavior.
func (r *Runner) Playlists(ctx context.Context, cmd *cli.Command) error {
	p, err := resolveProvider(cmd.StringArg("provider"))
	if err != nil {
		return err
	}

	generation := r.library.BeginFetch(p)
	result := r.normalizer.Fetch(ctx, p)
	r.library.Commit(p, generation, result)

	if cmd.Bool("save") {
		if err := r.saveFetch(result); err != nil {
			return err
		}
	}

	items := r.library.Items(p)
	if cmd.Bool("json") {
		return r.writeJSON(items, cmd.Bool("pretty"))
	}

	if len(items) == 0 {
		r.writePlain("No playlists found for %s.\n", p.Name())
		if diag := r.library.Diagnostic(p); diag != "" {
			r.writePlain("  %s\n", diag)
		}
		return nil
	}

	for _, item := range items {
		r.writePlain("%s  %s (%d tracks)\n", item.ID, item.Name, item.TrackCount)
	}
	return nil
}

func (r *Runner) saveFetch(result playlists.FetchResult) error {
	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	repo := repositories.NewSnapshotRepository(db)
	if err := repo.LogFetch(result); err != nil {
		return err
	}
	if result.Err == nil {
		if err := repo.SaveSnapshot(result.Provider, result.Items); err != nil {
			return err
		}
	}

	r.logger.Info("fetch saved", "provider", result.Provider.Key(), "items", len(result.Items))
	return nil
}

func (r *Runner) openDatabase() (*sql.DB, error) {
	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)
	return db, nil
}

// playlistsCommand handles normalized playlist listings.
func playlistsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "playlists",
		Aliases: []string{"pl"},
		Usage:   "List a service's playlists in the normalized shape",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "provider"},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
				Value: true,
			},
			&cli.BoolFlag{
				Name:  "save",
				Usage: "Save the snapshot and fetch record locally",
			},
		},
		Action: r.Playlists,
	}
}
