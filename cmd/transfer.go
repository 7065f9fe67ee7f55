package main

import (
	"context"
	"fmt"

	"github.com/sarasvatiZen/replaylist/internal/session"
	"github.com/sarasvatiZen/replaylist/internal/shared"
	"github.com/urfave/cli/v3"
)

// TransferRun fetches the active source's playlists, selects the requested
// ones, and fires the transfer fan-out toward the destination. By default the
// command returns as soon as the batch is dispatched; --wait drains the
// per-item outcomes for diagnostics.
func (r *Runner) TransferRun(ctx context.Context, cmd *cli.Command) error {
	s := session.Decode(cmd.String("query"))
	source := s.ActiveSource()
	dest := s.ActiveDestination()

	if err := r.gate.Refresh(ctx); err != nil {
		r.logger.Warn("status refresh failed, using cached state", "err", err)
	}
	if !r.gate.BothAuthenticated(s) {
		return fmt.Errorf("%w: log in to both %s and %s first", shared.ErrNotAuthenticated, source.Name(), dest.Name())
	}

	generation := r.library.BeginFetch(source)
	r.library.Commit(source, generation, r.normalizer.Fetch(ctx, source))

	if diag := r.library.Diagnostic(source); diag != "" {
		return fmt.Errorf("%w: %s", shared.ErrFetchFailed, diag)
	}

	if cmd.Bool("all") {
		r.library.ToggleAll(source, true)
	} else {
		ids := cmd.StringSlice("id")
		if len(ids) == 0 {
			return fmt.Errorf("%w: pass --id or --all", shared.ErrMissingArgument)
		}
		for _, id := range ids {
			if !r.library.Toggle(source, id, true) {
				return fmt.Errorf("%w: no playlist %q on %s", shared.ErrInvalidArgument, id, source.Name())
			}
		}
	}

	selected := r.library.Selected(source)
	if len(selected) == 0 {
		return fmt.Errorf("%w: nothing selected", shared.ErrMissingArgument)
	}

	receipt := r.dispatcher.Dispatch(ctx, dest, selected)
	r.writePlain("Dispatched %d playlist(s) to %s (receipt %s).\n", receipt.Count, dest.Name(), receipt.ID)

	if !cmd.Bool("wait") {
		return nil
	}

	failed := 0
	for outcome := range receipt.Outcomes() {
		switch {
		case outcome.Err != nil:
			failed++
			r.writePlain("  ✗ %s: %v\n", outcome.PlaylistID, outcome.Err)
		default:
			r.writePlain("  ✓ %s: status %d\n", outcome.PlaylistID, outcome.StatusCode)
		}
	}
	r.writePlainln("Done: %d/%d requests delivered.", receipt.Count-failed, receipt.Count)
	return nil
}

// transferCommand handles the playlist transfer fan-out.
func transferCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "transfer",
		Usage: "Transfer playlists between services",
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "Dispatch selected playlists to the destination",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "query",
						Aliases: []string{"q"},
						Usage:   "Session query string (left=..&right=..&li=n)",
					},
					&cli.StringSliceFlag{
						Name:  "id",
						Usage: "Playlist ID to transfer (repeatable)",
					},
					&cli.BoolFlag{
						Name:  "all",
						Usage: "Transfer every playlist on the source",
					},
					&cli.BoolFlag{
						Name:  "wait",
						Usage: "Wait for per-item outcomes instead of returning after dispatch",
					},
				},
				Action: r.TransferRun,
			},
		},
	}
}
