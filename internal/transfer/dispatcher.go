// package transfer implements the fire-and-forget transfer fan-out.
//
// Dispatch issues one independent request per selected playlist to the
// destination provider's endpoint and returns without waiting on any
// response. Outcomes are recorded on a Receipt for diagnostics; nothing
// downstream depends on them.
package transfer

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/sarasvatiZen/replaylist/internal/backend"
	"github.com/sarasvatiZen/replaylist/internal/playlists"
	"github.com/sarasvatiZen/replaylist/internal/providers"
	"github.com/sarasvatiZen/replaylist/internal/shared"
	"golang.org/x/time/rate"
)

// Outcome is the internally observed result of one transfer request.
type Outcome struct {
	PlaylistID string
	StatusCode int
	Err        error
}

// Receipt identifies one dispatched batch. Outcomes delivers one entry per
// issued request and is closed when the batch has drained; callers are free
// to ignore it, which is the default UX.
type Receipt struct {
	ID       string
	Dest     providers.Provider
	Count    int
	outcomes chan Outcome
}

// Outcomes returns the channel of per-item results.
func (r *Receipt) Outcomes() <-chan Outcome {
	return r.outcomes
}

// Options caps the fan-out. Zero values preserve the observable contract:
// every request issued immediately, no throttling.
type Options struct {
	Workers   int     // Concurrent requests; <= 0 means one goroutine per item
	RateLimit float64 // Requests per second; <= 0 disables the limiter
}

// Dispatcher issues transfer batches against the backend.
type Dispatcher struct {
	client *backend.Client
	logger *log.Logger
	opts   Options
}

// NewDispatcher creates a Dispatcher.
func NewDispatcher(client *backend.Client, logger *log.Logger, opts Options) *Dispatcher {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Dispatcher{client: client, logger: logger, opts: opts}
}

// Dispatch fans out one POST per item to the destination's transfer endpoint
// and returns immediately. The item snapshot is captured at call time;
// selection changes after dispatch do not affect in-flight requests, and
// navigation does not cancel them.
func (d *Dispatcher) Dispatch(ctx context.Context, dest providers.Provider, items []playlists.Playlist) *Receipt {
	snapshot := make([]playlists.Playlist, len(items))
	copy(snapshot, items)

	receipt := &Receipt{
		ID:       shared.GenerateID(),
		Dest:     dest,
		Count:    len(snapshot),
		outcomes: make(chan Outcome, len(snapshot)),
	}

	// Requests outlive the caller's navigation context.
	ctx = context.WithoutCancel(ctx)

	var limiter *rate.Limiter
	if d.opts.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(d.opts.RateLimit), 1)
	}

	path := "/api/transfer/to/" + dest.Key()
	d.logger.Info("dispatching transfer batch", "dest", dest.Key(), "items", len(snapshot), "receipt", receipt.ID)

	var wg sync.WaitGroup
	if d.opts.Workers > 0 {
		jobs := make(chan playlists.Playlist, len(snapshot))
		for i := 0; i < d.opts.Workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for item := range jobs {
					receipt.outcomes <- d.send(ctx, limiter, path, item)
				}
			}()
		}
		for _, item := range snapshot {
			jobs <- item
		}
		close(jobs)
	} else {
		for _, item := range snapshot {
			wg.Add(1)
			go func(item playlists.Playlist) {
				defer wg.Done()
				receipt.outcomes <- d.send(ctx, limiter, path, item)
			}(item)
		}
	}

	go func() {
		wg.Wait()
		close(receipt.outcomes)
	}()

	return receipt
}

func (d *Dispatcher) send(ctx context.Context, limiter *rate.Limiter, path string, item playlists.Playlist) Outcome {
	if limiter != nil {
		if err := limiter.Wait(ctx); err != nil {
			return Outcome{PlaylistID: item.ID, Err: err}
		}
	}

	body := map[string]playlists.WirePlaylist{"playlist": playlists.ToWire(item)}
	resp, err := d.client.PostJSON(ctx, path, body)
	if err != nil {
		d.logger.Debug("transfer request failed", "playlist", item.ID, "err", err)
		return Outcome{PlaylistID: item.ID, Err: err}
	}

	return Outcome{PlaylistID: item.ID, StatusCode: resp.StatusCode}
}
