package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/sarasvatiZen/replaylist/internal/auth"
	"github.com/sarasvatiZen/replaylist/internal/backend"
	"github.com/sarasvatiZen/replaylist/internal/playlists"
	"github.com/sarasvatiZen/replaylist/internal/shared"
	"github.com/sarasvatiZen/replaylist/internal/transfer"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	client     *backend.Client
	gate       *auth.Gate
	normalizer *playlists.Normalizer
	library    *playlists.Library
	dispatcher *transfer.Dispatcher
	handshake  *auth.Handshake
	logger     *log.Logger
	output     io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config *shared.Config
	Client *backend.Client
	Bridge auth.Bridge
	Logger *log.Logger
	Output io.Writer
}

// NewRunner creates a new Runner with the provided configuration.
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Client == nil {
		opts.Client = backend.NewClient(opts.Config.Backend.BaseURL, nil)
	}

	gate := auth.NewGate(opts.Client, opts.Logger)
	retryDelay := time.Duration(opts.Config.Handshake.RetryDelayMS) * time.Millisecond

	return &Runner{
		config:     opts.Config,
		client:     opts.Client,
		gate:       gate,
		normalizer: playlists.NewNormalizer(opts.Client, opts.Logger),
		library:    playlists.NewLibrary(),
		dispatcher: transfer.NewDispatcher(opts.Client, opts.Logger, transfer.Options{
			Workers:   opts.Config.Transfer.Workers,
			RateLimit: opts.Config.Transfer.RateLimit,
		}),
		handshake: auth.NewHandshake(opts.Client, gate, opts.Bridge, retryDelay, opts.Logger),
		logger:    opts.Logger,
		output:    opts.Output,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		sessionCommand, authCommand, appleCommand, playlistsCommand, transferCommand, setupCommand, cacheCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
