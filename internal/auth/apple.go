package auth

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/sarasvatiZen/replaylist/internal/backend"
	"github.com/sarasvatiZen/replaylist/internal/shared"
)

// HandshakeState tracks where the Apple token handshake currently is.
type HandshakeState int

const (
	HandshakeIdle HandshakeState = iota
	HandshakeAwaitingToken
	HandshakeRegistering
)

func (s HandshakeState) String() string {
	switch s {
	case HandshakeAwaitingToken:
		return "awaiting_token"
	case HandshakeRegistering:
		return "registering"
	default:
		return "idle"
	}
}

// Bridge is the native login surface. TriggerLogin starts the platform's
// Apple Music sign-in; a token arrives later through Handshake.Deliver at
// the bridge's discretion.
type Bridge interface {
	TriggerLogin()
}

// DefaultRetryDelay is the observed window after which a first trigger that
// failed to surface the native prompt is retried.
const DefaultRetryDelay = 100 * time.Millisecond

// Handshake receives the asynchronously delivered Apple user token, registers
// it with the backend, and re-polls the authentication gate.
//
// The bridge may deliver the same token more than once (the blind retry makes
// duplicates plausible); registration is idempotent per token.
type Handshake struct {
	client     *backend.Client
	gate       *Gate
	bridge     Bridge
	logger     *log.Logger
	retryDelay time.Duration

	mu         sync.Mutex
	state      HandshakeState
	registered map[string]bool
	timer      *time.Timer
}

// NewHandshake creates a Handshake. A zero retryDelay falls back to
// DefaultRetryDelay.
func NewHandshake(client *backend.Client, gate *Gate, bridge Bridge, retryDelay time.Duration, logger *log.Logger) *Handshake {
	if retryDelay <= 0 {
		retryDelay = DefaultRetryDelay
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Handshake{
		client:     client,
		gate:       gate,
		bridge:     bridge,
		logger:     logger,
		retryDelay: retryDelay,
		state:      HandshakeIdle,
		registered: map[string]bool{},
	}
}

// State returns the current handshake state.
func (h *Handshake) State() HandshakeState {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// Begin invokes the native login trigger and arms the retry timer. The first
// invocation sometimes fails to surface the native prompt, so the trigger is
// blindly re-invoked once after the retry delay unless a token has arrived.
func (h *Handshake) Begin() {
	if h.bridge == nil {
		h.logger.Warn("apple login requested without a native bridge")
		return
	}

	h.mu.Lock()
	h.state = HandshakeAwaitingToken
	if h.timer != nil {
		h.timer.Stop()
	}
	h.timer = time.AfterFunc(h.retryDelay, h.retrigger)
	h.mu.Unlock()

	h.bridge.TriggerLogin()
}

func (h *Handshake) retrigger() {
	h.mu.Lock()
	waiting := h.state == HandshakeAwaitingToken
	h.mu.Unlock()

	if waiting {
		h.logger.Debug("re-invoking native login trigger")
		h.bridge.TriggerLogin()
	}
}

// Deliver accepts a token from the native bridge, registers it with the
// backend, and refreshes the gate. Registration success and failure are
// treated identically; a token already registered in this process is not
// re-posted. Afterwards the handshake returns to idle.
func (h *Handshake) Deliver(ctx context.Context, token string) {
	h.mu.Lock()
	if h.timer != nil {
		h.timer.Stop()
		h.timer = nil
	}
	if h.registered[token] {
		h.state = HandshakeIdle
		h.mu.Unlock()
		h.logger.Debug("duplicate apple token delivery ignored")
		return
	}
	h.state = HandshakeRegistering
	h.mu.Unlock()

	if _, err := h.client.PostJSON(ctx, "/api/apple/usertoken", map[string]string{"token": token}); err != nil {
		h.logger.Debug("apple token registration failed", "err", err)
	}

	h.mu.Lock()
	h.registered[token] = true
	h.state = HandshakeIdle
	h.mu.Unlock()

	if err := h.gate.Refresh(ctx); err != nil {
		h.logger.Debug("auth refresh after token registration failed", "err", err)
	}
}

// Cancel stops a pending retry timer and resets the handshake to idle.
func (h *Handshake) Cancel() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.timer != nil {
		h.timer.Stop()
		h.timer = nil
	}
	h.state = HandshakeIdle
}
