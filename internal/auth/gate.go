// package auth tracks per-provider login state and the Apple native-bridge
// token handshake.
//
// The Gate holds the per-provider authentication map the UI gates on. It is
// owned by the event loop: refreshes replace the map wholesale, failures
// leave it untouched, and nothing here ever surfaces a backend error to the
// user.
package auth

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/sarasvatiZen/replaylist/internal/backend"
	"github.com/sarasvatiZen/replaylist/internal/providers"
	"github.com/sarasvatiZen/replaylist/internal/session"
	"github.com/sarasvatiZen/replaylist/internal/shared"
)

// Status maps provider wire keys to "is currently authenticated".
type Status map[string]bool

// Gate fetches and caches login status from the backend.
type Gate struct {
	client *backend.Client
	logger *log.Logger
	status Status
}

// NewGate creates a Gate with an empty status map.
func NewGate(client *backend.Client, logger *log.Logger) *Gate {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Gate{
		client: client,
		logger: logger,
		status: Status{},
	}
}

// Refresh fetches /api/login/status and replaces the entire map on success.
// On any transport or decode failure the previous map is kept and the error
// is returned for diagnostics only; callers treat it as a soft fail.
func (g *Gate) Refresh(ctx context.Context) error {
	resp, err := g.client.Get(ctx, "/api/login/status")
	if err != nil {
		g.logger.Debug("login status refresh failed, keeping stale map", "err", err)
		return fmt.Errorf("%w: %v", shared.ErrStatusFetch, err)
	}
	if !resp.OK() {
		g.logger.Debug("login status refresh failed, keeping stale map", "status", resp.StatusCode)
		return fmt.Errorf("%w: status %d", shared.ErrStatusFetch, resp.StatusCode)
	}

	var next Status
	if err := json.Unmarshal(resp.Body, &next); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrStatusFetch, err)
	}

	g.status = next
	return nil
}

// LogoutAll clears the local map immediately and fires the backend logout
// without waiting on its response.
func (g *Gate) LogoutAll(ctx context.Context) {
	g.status = Status{}

	go func(ctx context.Context) {
		if _, err := g.client.Post(ctx, "/api/logout_all", nil); err != nil {
			g.logger.Debug("logout_all request failed", "err", err)
		}
	}(context.WithoutCancel(ctx))
}

// Logout clears a single provider locally and fires the backend logout for
// it, optimistically like LogoutAll.
func (g *Gate) Logout(ctx context.Context, p providers.Provider) {
	delete(g.status, p.Key())

	go func(ctx context.Context) {
		if _, err := g.client.Post(ctx, "/api/logout/"+p.Key(), nil); err != nil {
			g.logger.Debug("logout request failed", "provider", p.Key(), "err", err)
		}
	}(context.WithoutCancel(ctx))
}

// IsAuthenticated reports the cached login state for p. Absent keys are
// unauthenticated.
func (g *Gate) IsAuthenticated(p providers.Provider) bool {
	return g.status[p.Key()]
}

// BothAuthenticated reports whether the session's active source and active
// destination are both logged in. This is the sole gate for the Home to List
// transition.
func (g *Gate) BothAuthenticated(s session.Session) bool {
	return g.IsAuthenticated(s.ActiveSource()) && g.IsAuthenticated(s.ActiveDestination())
}

// Status returns a copy of the cached map.
func (g *Gate) Status() Status {
	out := make(Status, len(g.status))
	for k, v := range g.status {
		out[k] = v
	}
	return out
}
