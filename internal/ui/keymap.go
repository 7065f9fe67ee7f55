package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

// keyMap defines the key bindings for the TUI.
type keyMap struct {
	prev      key.Binding
	next      key.Binding
	swap      key.Binding
	apple     key.Binding
	refresh   key.Binding
	proceed   key.Binding
	up        key.Binding
	down      key.Binding
	toggle    key.Binding
	toggleAll key.Binding
	clearAll  key.Binding
	transfer  key.Binding
	back      key.Binding
	restart   key.Binding
	quit      key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		prev: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "previous source"),
		),
		next: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next source"),
		),
		swap: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "swap source/destination"),
		),
		apple: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "apple sign-in"),
		),
		refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh login status"),
		),
		proceed: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "proceed"),
		),
		up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "toggle"),
		),
		toggleAll: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "select all"),
		),
		clearAll: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "select none"),
		),
		transfer: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "transfer selected"),
		),
		back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "start over"),
		),
		quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.prev, k.next, k.swap, k.proceed},
		{k.apple, k.up, k.down, k.toggle, k.toggleAll},
		{k.transfer, k.back, k.restart, k.quit},
	}
}
