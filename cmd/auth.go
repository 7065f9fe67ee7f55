package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/sarasvatiZen/replaylist/internal/auth"
	"github.com/sarasvatiZen/replaylist/internal/providers"
	"github.com/sarasvatiZen/replaylist/internal/session"
	"github.com/sarasvatiZen/replaylist/internal/shared"
	"github.com/urfave/cli/v3"
)

// AuthStatus refreshes the login map from the backend and prints it. A
// refresh failure is a soft fail: the stale map is still printed.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	if err := r.gate.Refresh(ctx); err != nil {
		r.logger.Warn("status refresh failed, showing cached state", "err", err)
	}

	status := r.gate.Status()
	if cmd.Bool("json") {
		return r.writeJSON(status, cmd.Bool("pretty"))
	}

	for _, p := range providers.All() {
		mark := "✗"
		if status[p.Key()] {
			mark = "✓"
		}
		r.writePlain("%s %s\n", mark, p.Name())
	}
	return nil
}

// AuthLogin prints the authorize URL for a provider, carrying the session in
// the state parameter. Apple sign-in goes through the native bridge instead.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	p, err := resolveProvider(cmd.StringArg("provider"))
	if err != nil {
		return err
	}

	s := session.Decode(cmd.String("query"))
	loginURL, err := auth.LoginURL(r.config, s, p)
	if err != nil {
		if errors.Is(err, shared.ErrInvalidArgument) {
			r.writePlain("Apple sign-in uses the native bridge; run 'replaylist apple login'.\n")
			return nil
		}
		return err
	}

	return r.writePlain("%s\n", loginURL)
}

// AuthLogout logs out one provider, or every provider with --all. The local
// map clears immediately; the backend request is not waited on.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	if cmd.Bool("all") {
		r.gate.LogoutAll(ctx)
		return r.writePlain("Logged out of all services.\n")
	}

	p, err := resolveProvider(cmd.StringArg("provider"))
	if err != nil {
		return err
	}

	r.gate.Logout(ctx, p)
	return r.writePlain("Logged out of %s.\n", p.Name())
}

func resolveProvider(key string) (providers.Provider, error) {
	p, ok := providers.FromKey(key)
	if !ok {
		return 0, fmt.Errorf("%w: unknown service %q", shared.ErrInvalidArgument, key)
	}
	return p, nil
}

// authCommand handles authentication operations.
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage authentication",
		Commands: []*cli.Command{
			{
				Name:  "status",
				Usage: "Show per-service login state",
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
				},
				Action: r.AuthStatus,
			},
			{
				Name:  "login",
				Usage: "Print the authorize URL for a service",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "provider"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "query",
						Aliases: []string{"q"},
						Usage:   "Session query string carried in the state parameter",
					},
				},
				Action: r.AuthLogin,
			},
			{
				Name:  "logout",
				Usage: "Log out of one service, or all of them",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "provider"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "all",
						Usage: "Log out of every service",
					},
				},
				Action: r.AuthLogout,
			},
		},
	}
}
