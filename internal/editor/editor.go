// Package editor hands a task file to the user's external editor while the TUI
// has released the terminal.
package editor

import (
	"errors"
	"os"
	"os/exec"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

const fallbackEditor = "vi"

// ErrNoEditor is returned when the editor command resolves to no words.
var ErrNoEditor = errors.New("no editor command")

// DoneMsg is delivered to the program once the editor exits (or failed to start).
type DoneMsg struct {
	Path string
	Err  error
}

type Logger interface {
	Debug(msg string, keyvals ...any)
	Warn(msg string, keyvals ...any)
}

// Bridge resolves the editor command and runs it through tea.ExecProcess, which
// suspends the program and restores the terminal on every exit path.
type Bridge struct {
	command string
	log     Logger
	getenv  func(string) string
}

// NewBridge uses command when set and otherwise falls back to $VISUAL, $EDITOR, vi.
func NewBridge(command string, log Logger) *Bridge {
	return &Bridge{command: command, log: log, getenv: os.Getenv}
}

// Name is the command line the bridge will run, before splitting.
func (b *Bridge) Name() string {
	if v := strings.TrimSpace(b.command); v != "" {
		return v
	}
	getenv := b.getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	if v := strings.TrimSpace(getenv("VISUAL")); v != "" {
		return v
	}
	if v := strings.TrimSpace(getenv("EDITOR")); v != "" {
		return v
	}
	return fallbackEditor
}

// Command builds the editor process for path. The path is always the last argument.
func (b *Bridge) Command(path string) (*exec.Cmd, error) {
	args := splitShellWords(b.Name())
	if len(args) == 0 {
		return nil, ErrNoEditor
	}
	return exec.Command(args[0], append(args[1:], path)...), nil
}

// Open returns the command that runs the editor on path and reports a DoneMsg.
func (b *Bridge) Open(path string) tea.Cmd {
	cmd, err := b.Command(path)
	if err != nil {
		return func() tea.Msg { return DoneMsg{Path: path, Err: err} }
	}
	if b.log != nil {
		b.log.Debug("launching editor", "cmd", cmd.Args, "path", path)
	}
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		if err != nil && b.log != nil {
			b.log.Warn("editor exited with error", "path", path, "err", err)
		}
		return DoneMsg{Path: path, Err: err}
	})
}
