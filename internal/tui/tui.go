// Package tui is the terminal front end: a bubbletea program that turns key events
// into app.State operations and renders the task lists beside a markdown preview.
package tui

import (
	"rem-cli/internal/app"
	"rem-cli/internal/editor"

	tea "github.com/charmbracelet/bubbletea"
)

type Options struct {
	// EditorCommand overrides $VISUAL/$EDITOR when non-empty.
	EditorCommand string
	// MarkdownStyle is auto, dark or light.
	MarkdownStyle string
	Logger        Logger
}

type Logger interface {
	Debug(msg string, keyvals ...any)
	Info(msg string, keyvals ...any)
	Warn(msg string, keyvals ...any)
	Error(msg string, keyvals ...any)
}

// Run blocks until the user quits. The terminal is restored on return.
func Run(st *app.State, opts Options) error {
	applyColorProfilePreference()
	bridge := editor.NewBridge(opts.EditorCommand, opts.Logger)
	m := newAppModel(st, bridge, resolveMarkdownStyle(opts.MarkdownStyle), opts.Logger)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
