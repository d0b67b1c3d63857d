// Package app holds the in-memory application state: the task lists per status,
// the cursor, the input mode and the Done visibility toggle. Every user operation
// enters here. Store failures are absorbed: they are logged and kept in LastError,
// and the state is left as it was.
//
// State performs no terminal or process control. A request to open the external
// editor is recorded as a pending path that the outer loop takes and acts on.
package app

import (
	"strings"
	"unicode/utf8"

	"rem-cli/internal/model"
	"rem-cli/internal/store"
)

type Mode int

const (
	ModeNormal Mode = iota
	ModeEditing
)

func (m Mode) String() string {
	if m == ModeEditing {
		return "editing"
	}
	return "normal"
}

type Direction int

const (
	Up   Direction = -1
	Down Direction = 1
)

// TaskStore is the subset of store.Store the state machine drives.
type TaskStore interface {
	List(status model.Status) ([]store.Task, error)
	Load(path string, status model.Status) (store.Task, error)
	Create(name string) (store.Task, error)
	MoveStatus(t *store.Task, to model.Status) error
}

type Logger interface {
	Debug(msg string, keyvals ...any)
	Info(msg string, keyvals ...any)
	Warn(msg string, keyvals ...any)
	Error(msg string, keyvals ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

type Option func(*State)

func WithLogger(l Logger) Option {
	return func(s *State) {
		if l != nil {
			s.log = l
		}
	}
}

// WithShowDone starts with the Done list visible (and loaded).
func WithShowDone(show bool) Option {
	return func(s *State) { s.showDoneAtStart = show }
}

type State struct {
	store TaskStore
	log   Logger

	tasks      [3][]store.Task
	doneLoaded bool
	showDone   bool

	// selected indexes the visible list; -1 means nothing is selected.
	selected int

	mode  Mode
	draft []rune

	pendingEdit string
	lastErr     error
	previewRev  int
	quitting    bool

	showDoneAtStart bool
}

// New loads Todo and Doing (and Done when requested) and selects the first task.
func New(st TaskStore, opts ...Option) *State {
	s := &State{
		store:    st,
		log:      nopLogger{},
		selected: -1,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.tasks[model.StatusTodo] = s.list(model.StatusTodo)
	s.tasks[model.StatusDoing] = s.list(model.StatusDoing)
	if s.showDoneAtStart {
		s.ToggleDoneVisibility()
	}
	if len(s.Visible()) > 0 {
		s.selected = 0
	}
	return s
}

// Read-only accessors for the renderer.

func (s *State) Mode() Mode { return s.mode }

func (s *State) Draft() string { return string(s.draft) }

func (s *State) ShowDone() bool { return s.showDone }

func (s *State) DoneLoaded() bool { return s.doneLoaded }

func (s *State) Quitting() bool { return s.quitting }

// LastError is the most recent absorbed store failure, or nil.
func (s *State) LastError() error { return s.lastErr }

// PreviewRevision changes whenever the preview of the selected task must be recomputed.
func (s *State) PreviewRevision() int { return s.previewRev }

// PendingEditorRequest is the file path awaiting the editor, or "".
func (s *State) PendingEditorRequest() string { return s.pendingEdit }

// Tasks returns a copy of one status list.
func (s *State) Tasks(status model.Status) []store.Task {
	if !status.Valid() {
		return nil
	}
	return append([]store.Task(nil), s.tasks[status]...)
}

// VisibleStatuses lists the statuses shown, in order.
func (s *State) VisibleStatuses() []model.Status {
	if s.showDone {
		return []model.Status{model.StatusTodo, model.StatusDoing, model.StatusDone}
	}
	return []model.Status{model.StatusTodo, model.StatusDoing}
}

// Visible is the flattened list the cursor moves over.
func (s *State) Visible() []store.Task {
	var out []store.Task
	for _, st := range s.VisibleStatuses() {
		out = append(out, s.tasks[st]...)
	}
	return out
}

func (s *State) SelectedIndex() int { return s.selected }

func (s *State) Selected() (store.Task, bool) {
	st, i, ok := s.locate(s.selected)
	if !ok {
		return store.Task{}, false
	}
	return s.tasks[st][i], true
}

// locate maps a visible index to its status list and position.
func (s *State) locate(idx int) (model.Status, int, bool) {
	if idx < 0 {
		return 0, 0, false
	}
	for _, st := range s.VisibleStatuses() {
		if idx < len(s.tasks[st]) {
			return st, idx, true
		}
		idx -= len(s.tasks[st])
	}
	return 0, 0, false
}

func (s *State) visibleIndexOf(id string) int {
	idx := 0
	for _, st := range s.VisibleStatuses() {
		for _, t := range s.tasks[st] {
			if t.ID == id {
				return idx
			}
			idx++
		}
	}
	return -1
}

// reselect keeps the cursor on the task with id when it is still visible, else
// keeps the previous index clamped to the visible list.
func (s *State) reselect(id string, fallback int) {
	if id != "" {
		if idx := s.visibleIndexOf(id); idx >= 0 {
			s.setSelected(idx)
			return
		}
	}
	n := len(s.Visible())
	switch {
	case n == 0:
		s.setSelected(-1)
	case fallback < 0:
		s.setSelected(0)
	case fallback >= n:
		s.setSelected(n - 1)
	default:
		s.setSelected(fallback)
	}
}

func (s *State) setSelected(idx int) {
	if idx != s.selected {
		s.previewRev++
	}
	s.selected = idx
}

func (s *State) selectedID() string {
	if t, ok := s.Selected(); ok {
		return t.ID
	}
	return ""
}

func (s *State) fail(msg string, err error, keyvals ...any) {
	s.lastErr = err
	s.log.Warn(msg, append(keyvals, "err", err)...)
}

func (s *State) list(status model.Status) []store.Task {
	tasks, err := s.store.List(status)
	if err != nil {
		s.fail("list tasks failed", err, "status", status)
		return nil
	}
	return tasks
}

// Normal-mode operations.

// Navigate moves the cursor one step, clamping at both ends.
func (s *State) Navigate(dir Direction) {
	if s.mode != ModeNormal {
		return
	}
	n := len(s.Visible())
	if n == 0 {
		s.setSelected(-1)
		return
	}
	next := s.selected + int(dir)
	if s.selected < 0 {
		next = 0
	}
	if next < 0 {
		next = 0
	}
	if next >= n {
		next = n - 1
	}
	s.setSelected(next)
}

// AdvanceStatus moves the selected task one step forward. Done tasks stay put.
func (s *State) AdvanceStatus() {
	t, ok := s.Selected()
	if !ok || s.mode != ModeNormal {
		return
	}
	to, ok := t.Status().Next()
	if !ok {
		return
	}
	s.moveSelected(to)
}

// RetreatStatus moves the selected task one step back. Todo tasks stay put.
func (s *State) RetreatStatus() {
	t, ok := s.Selected()
	if !ok || s.mode != ModeNormal {
		return
	}
	to, ok := t.Status().Prev()
	if !ok {
		return
	}
	s.moveSelected(to)
}

func (s *State) moveSelected(to model.Status) {
	from, i, ok := s.locate(s.selected)
	if !ok {
		return
	}
	moved := s.tasks[from][i]
	if err := s.store.MoveStatus(&moved, to); err != nil {
		s.fail("move task failed", err, "id", moved.ID, "from", from, "to", to)
		return
	}
	s.log.Info("task moved", "id", moved.ID, "from", from, "to", to)

	prev := s.selected
	s.tasks[from] = append(s.tasks[from][:i:i], s.tasks[from][i+1:]...)
	// An unloaded Done list is replaced wholesale by its first load, which will
	// include this file again.
	s.tasks[to] = append(s.tasks[to], moved)
	s.reselect(moved.ID, prev)
	s.previewRev++
}

// ToggleDoneVisibility flips whether Done is shown. Done is read from disk only the
// first time it becomes visible.
func (s *State) ToggleDoneVisibility() {
	if s.mode != ModeNormal {
		return
	}
	id, prev := s.selectedID(), s.selected
	if !s.showDone && !s.doneLoaded {
		tasks, err := s.store.List(model.StatusDone)
		if err != nil {
			s.fail("load done tasks failed", err)
		} else {
			s.tasks[model.StatusDone] = tasks
			s.doneLoaded = true
		}
	}
	s.showDone = !s.showDone
	s.reselect(id, prev)
}

// RequestExternalEdit records the selected task's file as awaiting the editor.
func (s *State) RequestExternalEdit() {
	if s.mode != ModeNormal {
		return
	}
	if t, ok := s.Selected(); ok {
		s.pendingEdit = t.FilePath()
	}
}

// TakeEditorRequest returns the pending path and clears it.
func (s *State) TakeEditorRequest() (string, bool) {
	path := s.pendingEdit
	s.pendingEdit = ""
	return path, path != ""
}

// ReloadSelectedTask re-reads the selected task from disk. On failure the in-memory
// copy is kept.
func (s *State) ReloadSelectedTask() {
	st, i, ok := s.locate(s.selected)
	if !ok {
		return
	}
	cur := s.tasks[st][i]
	t, err := s.store.Load(cur.FilePath(), cur.Status())
	if err != nil {
		s.fail("reload task failed", err, "id", cur.ID, "path", cur.FilePath())
		return
	}
	s.tasks[st][i] = t
}

// AfterExternalEdit runs once the editor process has returned.
func (s *State) AfterExternalEdit() {
	s.ReloadSelectedTask()
	s.previewRev++
}

// Refresh re-reads every loaded status directory. Files that vanished drop out.
func (s *State) Refresh() {
	if s.mode != ModeNormal {
		return
	}
	id, prev := s.selectedID(), s.selected
	s.tasks[model.StatusTodo] = s.list(model.StatusTodo)
	s.tasks[model.StatusDoing] = s.list(model.StatusDoing)
	if s.doneLoaded {
		s.tasks[model.StatusDone] = s.list(model.StatusDone)
	}
	s.reselect(id, prev)
	s.previewRev++
}

func (s *State) Quit() { s.quitting = true }

// Editing mode.

// StartDraft enters Editing mode with an empty draft.
func (s *State) StartDraft() {
	if s.mode != ModeNormal {
		return
	}
	s.mode = ModeEditing
	s.draft = s.draft[:0]
}

func (s *State) InsertRunes(rs []rune) {
	if s.mode != ModeEditing {
		return
	}
	for _, r := range rs {
		if r == utf8.RuneError || r < ' ' || r == 0x7f {
			continue
		}
		s.draft = append(s.draft, r)
	}
}

func (s *State) DeleteBackward() {
	if s.mode != ModeEditing || len(s.draft) == 0 {
		return
	}
	s.draft = s.draft[:len(s.draft)-1]
}

// CommitDraft creates a task from the draft and returns to Normal mode. A blank
// draft creates nothing.
func (s *State) CommitDraft() {
	if s.mode != ModeEditing {
		return
	}
	name := strings.TrimSpace(string(s.draft))
	s.draft = s.draft[:0]
	s.mode = ModeNormal
	if name == "" {
		return
	}

	id, prev := s.selectedID(), s.selected
	t, err := s.store.Create(name)
	if err != nil {
		s.fail("create task failed", err, "name", name)
		return
	}
	s.log.Info("task created", "id", t.ID, "path", t.FilePath())
	s.tasks[model.StatusTodo] = append(s.tasks[model.StatusTodo], t)
	if id == "" {
		id = t.ID
	}
	s.reselect(id, prev)
}

// CancelDraft discards the draft.
func (s *State) CancelDraft() {
	if s.mode != ModeEditing {
		return
	}
	s.draft = s.draft[:0]
	s.mode = ModeNormal
}
