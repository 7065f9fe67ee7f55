package main

import (
	"context"

	"github.com/sarasvatiZen/replaylist/internal/providers"
	"github.com/sarasvatiZen/replaylist/internal/session"
	"github.com/urfave/cli/v3"
)

// sessionView is the JSON shape printed by session commands.
type sessionView struct {
	Sources           []string `json:"sources"`
	Destinations      []string `json:"destinations"`
	Active            int      `json:"active"`
	ActiveSource      string   `json:"active_source"`
	ActiveDestination string   `json:"active_destination"`
	Query             string   `json:"query"`
}

func newSessionView(s session.Session) sessionView {
	return sessionView{
		Sources:           keys(s.Sources),
		Destinations:      keys(s.Destinations),
		Active:            s.Active,
		ActiveSource:      s.ActiveSource().Key(),
		ActiveDestination: s.ActiveDestination().Key(),
		Query:             s.Encode(),
	}
}

func keys(list []providers.Provider) []string {
	out := make([]string, len(list))
	for i, p := range list {
		out[i] = p.Key()
	}
	return out
}

// SessionShow decodes a query string and prints the resulting session.
func (r *Runner) SessionShow(ctx context.Context, cmd *cli.Command) error {
	s := session.Decode(cmd.String("query"))

	if cmd.Bool("json") {
		return r.writeJSON(newSessionView(s), cmd.Bool("pretty"))
	}

	r.writePlain("From: ")
	for i, p := range s.Sources {
		if i > 0 {
			r.writePlain(", ")
		}
		if i == s.Active {
			r.writePlain("[%s]", p.Name())
		} else {
			r.writePlain("%s", p.Name())
		}
	}
	r.writePlain("\nTo:   %s\n", s.ActiveDestination().Name())
	r.writePlain("Query: %s\n", s.Encode())
	return nil
}

// SessionNext advances the active source and prints the replacement query.
func (r *Runner) SessionNext(ctx context.Context, cmd *cli.Command) error {
	s := session.Decode(cmd.String("query")).Next()
	return r.writePlain("%s\n", s.Encode())
}

// SessionPrev steps the active source back and prints the replacement query.
func (r *Runner) SessionPrev(ctx context.Context, cmd *cli.Command) error {
	s := session.Decode(cmd.String("query")).Prev()
	return r.writePlain("%s\n", s.Encode())
}

// SessionSwap exchanges the active source and destination and prints the
// replacement query.
func (r *Runner) SessionSwap(ctx context.Context, cmd *cli.Command) error {
	s := session.Decode(cmd.String("query")).Swap()
	return r.writePlain("%s\n", s.Encode())
}

// sessionCommand handles session decoding and navigation.
func sessionCommand(r *Runner) *cli.Command {
	queryFlag := &cli.StringFlag{
		Name:    "query",
		Aliases: []string{"q"},
		Usage:   "Session query string (left=..&right=..&li=n)",
	}

	return &cli.Command{
		Name:  "session",
		Usage: "Decode, navigate and swap the migration session",
		Commands: []*cli.Command{
			{
				Name:  "show",
				Usage: "Decode a session query string",
				Flags: []cli.Flag{
					queryFlag,
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.SessionShow,
			},
			{
				Name:   "next",
				Usage:  "Advance the active source",
				Flags:  []cli.Flag{queryFlag},
				Action: r.SessionNext,
			},
			{
				Name:   "prev",
				Usage:  "Step the active source back",
				Flags:  []cli.Flag{queryFlag},
				Action: r.SessionPrev,
			},
			{
				Name:   "swap",
				Usage:  "Swap the active source with the destination",
				Flags:  []cli.Flag{queryFlag},
				Action: r.SessionSwap,
			},
		},
	}
}
