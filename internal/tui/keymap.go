package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	quit        key.Binding
	add         key.Binding
	up          key.Binding
	down        key.Binding
	advance     key.Binding
	retreat     key.Binding
	toggleDone  key.Binding
	edit        key.Binding
	refresh     key.Binding
	previewDown key.Binding
	previewUp   key.Binding
	toggleHelp  key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		quit:        key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
		add:         key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add task")),
		up:          key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
		down:        key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
		advance:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next status")),
		retreat:     key.NewBinding(key.WithKeys("N"), key.WithHelp("N", "previous status")),
		toggleDone:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "toggle done")),
		edit:        key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e/enter", "edit")),
		refresh:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		previewDown: key.NewBinding(key.WithKeys("ctrl+d", "pgdown"), key.WithHelp("ctrl+d", "scroll preview")),
		previewUp:   key.NewBinding(key.WithKeys("ctrl+u", "pgup"), key.WithHelp("ctrl+u", "scroll preview up")),
		toggleHelp:  key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.add, k.advance, k.toggleDone, k.edit, k.toggleHelp, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.add, k.edit},
		{k.advance, k.retreat, k.toggleDone, k.refresh},
		{k.previewDown, k.previewUp},
		{k.toggleHelp, k.quit},
	}
}

// draftKeyMap is the help shown while typing a new task name.
type draftKeyMap struct {
	commit key.Binding
	cancel key.Binding
}

func newDraftKeyMap() draftKeyMap {
	return draftKeyMap{
		commit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "create")),
		cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

func (k draftKeyMap) ShortHelp() []key.Binding { return []key.Binding{k.commit, k.cancel} }

func (k draftKeyMap) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }
