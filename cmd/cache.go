package main

import (
	"context"

	"github.com/sarasvatiZen/replaylist/internal/repositories"
	"github.com/urfave/cli/v3"
)

// CacheSnapshots lists locally cached playlist snapshots, newest first.
func (r *Runner) CacheSnapshots(ctx context.Context, cmd *cli.Command) error {
	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	repo := repositories.NewSnapshotRepository(db)
	snapshots, err := repo.ListSnapshots(cmd.String("provider"))
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(snapshots, cmd.Bool("pretty"))
	}

	if len(snapshots) == 0 {
		return r.writePlain("No snapshots cached.\n")
	}
	for _, s := range snapshots {
		r.writePlain("%s  %-8s  %s (%d tracks)  %s\n", s.PlaylistID, s.Provider, s.Name, s.TrackCount, s.FetchedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

// CacheLog lists recent fetch records, including the retained diagnostics
// from degraded fetches.
func (r *Runner) CacheLog(ctx context.Context, cmd *cli.Command) error {
	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	repo := repositories.NewSnapshotRepository(db)
	records, err := repo.ListFetchLog(cmd.Int("limit"))
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(records, cmd.Bool("pretty"))
	}

	if len(records) == 0 {
		return r.writePlain("No fetches logged.\n")
	}
	for _, rec := range records {
		mark := "✓"
		if !rec.OK {
			mark = "✗"
		}
		r.writePlain("%s %-8s %d item(s)  %s\n", mark, rec.Provider, rec.ItemCount, rec.CreatedAt.Format("2006-01-02 15:04"))
		if rec.Detail != "" {
			r.writePlain("    %s\n", rec.Detail)
		}
	}
	return nil
}

// cacheCommand handles the local snapshot cache and fetch log.
func cacheCommand(r *Runner) *cli.Command {
	jsonFlags := []cli.Flag{
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Output JSON",
		},
		&cli.BoolFlag{
			Name:  "pretty",
			Usage: "Pretty-print output",
			Value: true,
		},
	}

	return &cli.Command{
		Name:  "cache",
		Usage: "Inspect locally cached snapshots and fetch diagnostics",
		Commands: []*cli.Command{
			{
				Name:  "snapshots",
				Usage: "List cached playlist snapshots",
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:  "provider",
						Usage: "Filter by service wire key",
					},
				}, jsonFlags...),
				Action: r.CacheSnapshots,
			},
			{
				Name:  "log",
				Usage: "List recent fetch records",
				Flags: append([]cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of records",
						Value: 50,
					},
				}, jsonFlags...),
				Action: r.CacheLog,
			},
		},
	}
}
