// package ui renders the migration session as a terminal UI: the home screen
// with the source/destination picker and login gate, the playlist selection
// list, and the post-dispatch screen.
package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sarasvatiZen/replaylist/internal/auth"
	"github.com/sarasvatiZen/replaylist/internal/playlists"
	"github.com/sarasvatiZen/replaylist/internal/providers"
	"github.com/sarasvatiZen/replaylist/internal/session"
	"github.com/sarasvatiZen/replaylist/internal/transfer"
)

// Model represents the TUI application state. The session, gate and library
// are only mutated inside Update; fetches hand their results back as
// messages.
type Model struct {
	ctx        context.Context
	sess       session.Session
	stage      session.Stage
	gate       *auth.Gate
	normalizer *playlists.Normalizer
	library    *playlists.Library
	dispatcher *transfer.Dispatcher
	handshake  *auth.Handshake
	receipt    *transfer.Receipt
	cursor     int
	width      int
	height     int
	help       help.Model
	keys       keyMap
}

type statusRefreshedMsg struct {
	err error
}

type fetchDoneMsg struct {
	provider   providers.Provider
	generation uint64
	result     playlists.FetchResult
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, sess session.Session, gate *auth.Gate, normalizer *playlists.Normalizer, library *playlists.Library, dispatcher *transfer.Dispatcher, handshake *auth.Handshake) *Model {
	return &Model{
		ctx:        ctx,
		sess:       sess,
		stage:      session.StageHome,
		gate:       gate,
		normalizer: normalizer,
		library:    library,
		dispatcher: dispatcher,
		handshake:  handshake,
		help:       help.New(),
		keys:       newKeyMap(),
	}
}

// Init refreshes the login status map.
func (m *Model) Init() tea.Cmd {
	return m.refreshStatus()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch m.stage {
		case session.StageHome:
			return m.handleHomeKeys(msg)
		case session.StageList:
			return m.handleListKeys(msg)
		case session.StageDone:
			return m.handleDoneKeys(msg)
		}

	case statusRefreshedMsg:
		// Soft fail: a refresh error keeps the stale map, nothing to show.
		return m, nil

	case fetchDoneMsg:
		m.library.Commit(msg.provider, msg.generation, msg.result)
		return m, nil
	}

	return m, nil
}

// View renders the UI based on the current stage.
func (m *Model) View() string {
	switch m.stage {
	case session.StageHome:
		return m.renderHome()
	case session.StageList:
		return m.renderList()
	case session.StageDone:
		return m.renderDone()
	default:
		return ""
	}
}

func (m *Model) handleHomeKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.prev):
		m.sess = m.sess.Prev()
		return m, nil
	case key.Matches(msg, m.keys.next):
		m.sess = m.sess.Next()
		return m, nil
	case key.Matches(msg, m.keys.swap):
		m.sess = m.sess.Swap()
		return m, nil
	case key.Matches(msg, m.keys.apple):
		if !m.gate.IsAuthenticated(providers.Apple) {
			m.handshake.Begin()
		}
		return m, nil
	case key.Matches(msg, m.keys.refresh):
		return m, m.refreshStatus()
	case key.Matches(msg, m.keys.proceed):
		if !m.gate.BothAuthenticated(m.sess) {
			return m, nil
		}
		m.stage = session.StageList
		m.cursor = 0
		return m, m.fetchPlaylists(m.sess.ActiveSource())
	}
	return m, nil
}

func (m *Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	source := m.sess.ActiveSource()
	items := m.library.Items(source)

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.stage = session.StageHome
		return m, nil
	case key.Matches(msg, m.keys.up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case key.Matches(msg, m.keys.down):
		if m.cursor < len(items)-1 {
			m.cursor++
		}
		return m, nil
	case key.Matches(msg, m.keys.toggle):
		if m.cursor < len(items) {
			item := items[m.cursor]
			m.library.Toggle(source, item.ID, !item.Selected)
		}
		return m, nil
	case key.Matches(msg, m.keys.toggleAll):
		m.library.ToggleAll(source, true)
		return m, nil
	case key.Matches(msg, m.keys.clearAll):
		m.library.ToggleAll(source, false)
		return m, nil
	case key.Matches(msg, m.keys.transfer):
		selected := m.library.Selected(source)
		if len(selected) == 0 {
			return m, nil
		}
		m.receipt = m.dispatcher.Dispatch(m.ctx, m.sess.ActiveDestination(), selected)
		m.stage = session.StageDone
		return m, nil
	}
	return m, nil
}

func (m *Model) handleDoneKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.restart):
		m.stage = session.StageHome
		m.receipt = nil
		m.cursor = 0
		return m, m.refreshStatus()
	}
	return m, nil
}

func (m *Model) refreshStatus() tea.Cmd {
	return func() tea.Msg {
		return statusRefreshedMsg{err: m.gate.Refresh(m.ctx)}
	}
}

func (m *Model) fetchPlaylists(p providers.Provider) tea.Cmd {
	generation := m.library.BeginFetch(p)
	return func() tea.Msg {
		return fetchDoneMsg{
			provider:   p,
			generation: generation,
			result:     m.normalizer.Fetch(m.ctx, p),
		}
	}
}

func (m *Model) renderHome() string {
	var b strings.Builder
	b.WriteString(styles.title.Render("replaylist"))
	b.WriteString("\n\nFrom:\n")

	for i, p := range m.sess.Sources {
		line := fmt.Sprintf("  %s %s %s", providers.Lookup(p).Icon, p.Name(), m.badge(p))
		if i == m.sess.Active {
			line = styles.active.Render(line)
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}

	dest := m.sess.ActiveDestination()
	b.WriteString("\nTo:\n")
	b.WriteString(fmt.Sprintf("  %s %s %s\n", providers.Lookup(dest).Icon, dest.Name(), m.badge(dest)))

	if state := m.handshake.State(); state != auth.HandshakeIdle {
		b.WriteString("\n" + styles.warn.Render(fmt.Sprintf("Apple handshake: %s", state)) + "\n")
	}
	if !m.gate.BothAuthenticated(m.sess) {
		b.WriteString("\n" + styles.warn.Render("Log in to both services to continue.") + "\n")
	}

	helpKeys := []key.Binding{m.keys.prev, m.keys.next, m.keys.swap, m.keys.apple, m.keys.refresh, m.keys.proceed, m.keys.quit}
	b.WriteString("\n" + m.help.ShortHelpView(helpKeys))
	return b.String()
}

func (m *Model) renderList() string {
	source := m.sess.ActiveSource()

	var b strings.Builder
	b.WriteString(styles.title.Render(fmt.Sprintf("%s Playlists", source.Name())))
	b.WriteByte('\n')

	switch {
	case m.library.Loading(source):
		b.WriteString("\nLoading...\n")
	case len(m.library.Items(source)) == 0:
		b.WriteString("\nNo playlists found.\n")
		if diag := m.library.Diagnostic(source); diag != "" {
			b.WriteString(styles.help.Render(diag) + "\n")
		}
	default:
		b.WriteByte('\n')
		for i, item := range m.library.Items(source) {
			check := "[ ]"
			if item.Selected {
				check = styles.ok.Render("[x]")
			}
			line := fmt.Sprintf("%s %s (%d tracks)", check, item.Name, item.TrackCount)
			if i == m.cursor {
				line = "> " + line
			} else {
				line = "  " + line
			}
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}

	helpKeys := []key.Binding{m.keys.up, m.keys.down, m.keys.toggle, m.keys.toggleAll, m.keys.transfer, m.keys.back, m.keys.quit}
	b.WriteString("\n" + m.help.ShortHelpView(helpKeys))
	return b.String()
}

func (m *Model) renderDone() string {
	var b strings.Builder
	b.WriteString(styles.ok.Render("✓ Transfer dispatched"))
	if m.receipt != nil {
		b.WriteString(fmt.Sprintf("\n\n%d playlist(s) sent to %s.\n", m.receipt.Count, m.receipt.Dest.Name()))
	}
	b.WriteString(styles.help.Render("Requests run in the background; check the destination service shortly.") + "\n")

	helpKeys := []key.Binding{m.keys.restart, m.keys.quit}
	b.WriteString("\n" + m.help.ShortHelpView(helpKeys))
	return b.String()
}

func (m *Model) badge(p providers.Provider) string {
	if m.gate.IsAuthenticated(p) {
		return styles.ok.Render("(logged in)")
	}
	return styles.help.Render("(logged out)")
}
