package tui

import (
	"rem-cli/internal/app"
	"rem-cli/internal/editor"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// editorOpener runs the external editor; *editor.Bridge in production.
type editorOpener interface {
	Open(path string) tea.Cmd
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

type appModel struct {
	state  *app.State
	editor editorOpener
	log    Logger

	keys      keyMap
	draftKeys draftKeyMap
	help      help.Model
	input     textinput.Model

	mdStyle  string
	preview  previewCache
	viewport viewport.Model

	width  int
	height int
}

func newAppModel(st *app.State, ed editorOpener, mdStyle string, log Logger) appModel {
	if log == nil {
		log = nopLogger{}
	}
	in := textinput.New()
	in.Prompt = "New task: "
	in.Placeholder = "task name"
	in.Focus()

	m := appModel{
		state:     st,
		editor:    ed,
		log:       log,
		keys:      newKeyMap(),
		draftKeys: newDraftKeyMap(),
		help:      help.New(),
		input:     in,
		mdStyle:   mdStyle,
		preview:   previewCache{rev: -1},
		viewport:  viewport.New(0, 0),
		width:     80,
		height:    24,
	}
	m.syncPreview()
	return m
}

func (m appModel) Init() tea.Cmd { return nil }

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.syncPreview()
		return m, nil

	case editor.DoneMsg:
		// The terminal is ours again whether or not the editor succeeded.
		if msg.Err != nil {
			m.log.Warn("external edit failed", "path", msg.Path, "err", msg.Err)
		}
		m.state.AfterExternalEdit()
		m.syncPreview()
		return m, nil

	case tea.KeyMsg:
		if m.state.Mode() == app.ModeEditing {
			m.updateDraft(msg)
		} else {
			m.updateNormal(msg)
		}
		cmd := m.afterKey()
		m.syncPreview()
		return m, cmd
	}
	return m, nil
}

func (m *appModel) updateNormal(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.quit):
		m.state.Quit()
	case key.Matches(msg, m.keys.add):
		m.state.StartDraft()
	case key.Matches(msg, m.keys.up):
		m.state.Navigate(app.Up)
	case key.Matches(msg, m.keys.down):
		m.state.Navigate(app.Down)
	case key.Matches(msg, m.keys.advance):
		m.state.AdvanceStatus()
	case key.Matches(msg, m.keys.retreat):
		m.state.RetreatStatus()
	case key.Matches(msg, m.keys.toggleDone):
		m.state.ToggleDoneVisibility()
	case key.Matches(msg, m.keys.edit):
		m.state.RequestExternalEdit()
	case key.Matches(msg, m.keys.refresh):
		m.state.Refresh()
	case key.Matches(msg, m.keys.previewDown):
		m.viewport.HalfViewDown()
	case key.Matches(msg, m.keys.previewUp):
		m.viewport.HalfViewUp()
	case key.Matches(msg, m.keys.toggleHelp):
		m.help.ShowAll = !m.help.ShowAll
	}
}

func (m *appModel) updateDraft(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.state.CancelDraft()
		m.state.Quit()
	case tea.KeyEnter:
		m.state.CommitDraft()
	case tea.KeyEsc:
		m.state.CancelDraft()
	case tea.KeyBackspace:
		m.state.DeleteBackward()
	case tea.KeySpace:
		m.state.InsertRunes([]rune{' '})
	case tea.KeyRunes:
		if !msg.Paste {
			m.state.InsertRunes(msg.Runes)
			return
		}
		// Pasted text may carry newlines; keep the name on one line.
		rs := make([]rune, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			if r == '\n' || r == '\r' || r == '\t' {
				r = ' '
			}
			rs = append(rs, r)
		}
		m.state.InsertRunes(rs)
	}
}

// afterKey hands a pending editor request to the bridge and turns a quit request
// into tea.Quit.
func (m *appModel) afterKey() tea.Cmd {
	if m.state.Quitting() {
		return tea.Quit
	}
	if path, ok := m.state.TakeEditorRequest(); ok {
		m.log.Debug("editor requested", "path", path)
		return m.editor.Open(path)
	}
	return nil
}
