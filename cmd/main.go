package main

import (
	"context"
	"errors"
	"os"

	"github.com/sarasvatiZen/replaylist/internal/backend"
	"github.com/sarasvatiZen/replaylist/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	runner := NewRunner(RunnerOpts{
		Config: config,
		Client: backend.NewClient(config.Backend.BaseURL, nil),
		Logger: logger,
	})

	app := &cli.Command{
		Name:     "replaylist",
		Usage:    "Move playlists between streaming services",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		if errors.Is(err, shared.ErrUnsupported) {
			logger.Warn("operation not supported", "err", err)
			os.Exit(0)
		}
		logger.Fatalf("application error: %v", err)
	}
}
