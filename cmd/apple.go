package main

import (
	"context"
	"fmt"

	"github.com/sarasvatiZen/replaylist/internal/providers"
	"github.com/sarasvatiZen/replaylist/internal/shared"
	"github.com/urfave/cli/v3"
)

// AppleLogin triggers the native Apple Music sign-in. Without a native bridge
// attached this only logs a warning; tokens still arrive via 'apple token'.
func (r *Runner) AppleLogin(ctx context.Context, cmd *cli.Command) error {
	r.handshake.Begin()
	return r.writePlain("Handshake state: %s\n", r.handshake.State())
}

// AppleToken registers a user token delivered by the native bridge, then
// refreshes the login map.
func (r *Runner) AppleToken(ctx context.Context, cmd *cli.Command) error {
	token := cmd.StringArg("token")
	if token == "" {
		return fmt.Errorf("%w: token", shared.ErrMissingArgument)
	}

	r.handshake.Deliver(ctx, token)

	if r.gate.IsAuthenticated(providers.Apple) {
		return r.writePlain("✓ Apple Music connected.\n")
	}
	return r.writePlain("Token registered; Apple Music still shows as logged out.\n")
}

// AppleStatus prints the current handshake state.
func (r *Runner) AppleStatus(ctx context.Context, cmd *cli.Command) error {
	return r.writePlain("%s\n", r.handshake.State())
}

// appleCommand handles the Apple native-bridge token handshake.
func appleCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "apple",
		Usage: "Apple Music native-bridge handshake",
		Commands: []*cli.Command{
			{
				Name:   "login",
				Usage:  "Trigger the native Apple Music sign-in",
				Action: r.AppleLogin,
			},
			{
				Name:  "token",
				Usage: "Register a user token delivered by the native bridge",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "token"},
				},
				Action: r.AppleToken,
			},
			{
				Name:   "status",
				Usage:  "Show the handshake state",
				Action: r.AppleStatus,
			},
		},
	}
}
