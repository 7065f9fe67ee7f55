package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sarasvatiZen/replaylist/internal/session"
	"github.com/sarasvatiZen/replaylist/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive migration flow.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	s := session.Decode(cmd.String("query"))

	model := ui.NewModel(ctx, s, r.gate, r.normalizer, r.library, r.dispatcher, r.handshake)
	program := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// tuiCommand returns the top-level TUI command for the interactive flow.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive migration flow",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "query",
				Aliases: []string{"q"},
				Usage:   "Session query string to restore",
			},
		},
		Action: r.TUI,
	}
}
