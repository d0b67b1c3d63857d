package store

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"rem-cli/internal/model"
)

const taskExt = ".md"

// Store reads and writes task files under Dir, one subdirectory per status:
//
//	<Dir>/todo/<id>.md
//	<Dir>/doing/<id>.md
//	<Dir>/done/<id>.md
type Store struct {
	Dir string

	// Now and NewID default to time.Now and a random UUID.
	Now   func() time.Time
	NewID func() string
}

func (s Store) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s Store) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return newTaskID()
}

// StatusDir is the directory that holds tasks of the given status.
func (s Store) StatusDir(status model.Status) string {
	return filepath.Join(s.Dir, status.Dir())
}

// Ensure creates the status directories.
func (s Store) Ensure() error {
	for _, st := range model.Statuses {
		dir := s.StatusDir(st)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return ioError("ensure", dir, err)
		}
	}
	return nil
}

// List parses every task file of one status in directory-listing order. Files that
// cannot be read or parsed are skipped. A missing directory lists as empty.
func (s Store) List(status model.Status) ([]Task, error) {
	dir := s.StatusDir(status)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, ioError("list", dir, err)
	}

	tasks := make([]Task, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") || filepath.Ext(name) != taskExt {
			continue
		}
		t, err := s.Load(filepath.Join(dir, name), status)
		if err != nil {
			continue
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

// Load parses one task file. The status comes from the directory the caller
// scanned; path is not inspected to re-derive it.
func (s Store) Load(path string, status model.Status) (Task, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Task{}, ioError("load", path, err)
	}
	t, err := decodeTask(b)
	if err != nil {
		return Task{}, parseError(path, err)
	}
	t.status = status
	t.path = path
	return t, nil
}

// Create writes a new task into the todo directory.
func (s Store) Create(name string) (Task, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Task{}, ErrEmptyName
	}

	dir := s.StatusDir(model.StatusTodo)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Task{}, ioError("create", dir, err)
	}

	now := s.now()
	id := s.newID()
	t := Task{
		ID:        id,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
		status:    model.StatusTodo,
		path:      filepath.Join(dir, id+taskExt),
	}
	b, err := encodeTask(t)
	if err != nil {
		return Task{}, parseError(t.path, err)
	}
	if _, err := os.Lstat(t.path); err == nil {
		return Task{}, &Error{Op: "create", Path: t.path, Kind: ErrIO, Err: fs.ErrExist}
	}
	if err := writeFileAtomic(dir, t.path, b, 0o644); err != nil {
		return Task{}, ioError("create", t.path, err)
	}
	return t, nil
}

// MoveStatus renames the task file into the directory of the target status. On
// any failure t is left untouched. Moving to the current status is a no-op.
//
// After the rename the header's updated_at is refreshed; if that rewrite fails the
// move still stands and t keeps its previous UpdatedAt, which matches the file.
func (s Store) MoveStatus(t *Task, to model.Status) error {
	if t == nil {
		return errors.New("move status: nil task")
	}
	if !to.Valid() {
		return &Error{Op: "move", Path: t.path, Kind: ErrIO, Err: errors.New("invalid status " + to.String())}
	}
	if t.status == to && t.path != "" {
		return nil
	}

	src := t.path
	dest := filepath.Join(s.StatusDir(to), filepath.Base(src))
	if _, err := os.Lstat(dest); err == nil {
		return &Error{Op: "move", Path: dest, Kind: ErrIO, Err: fs.ErrExist}
	}
	if err := os.Rename(src, dest); err != nil {
		return renameError(src, dest, err)
	}

	t.path = dest
	t.status = to
	if updated, err := s.touch(dest); err == nil {
		t.UpdatedAt = updated
	}
	return nil
}

// Find locates a task by id in any status directory.
func (s Store) Find(id string) (Task, error) {
	id = strings.TrimSpace(id)
	if id == "" || strings.ContainsAny(id, `/\`) {
		return Task{}, &Error{Op: "find", Path: id, Kind: ErrNotFound}
	}
	for _, st := range model.Statuses {
		path := filepath.Join(s.StatusDir(st), id+taskExt)
		if _, err := os.Lstat(path); err != nil {
			continue
		}
		return s.Load(path, st)
	}
	return Task{}, &Error{Op: "find", Path: id, Kind: ErrNotFound}
}

// touch rewrites updated_at in place and returns the new value.
func (s Store) touch(path string) (time.Time, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return time.Time{}, err
	}
	t, err := decodeTask(b)
	if err != nil {
		return time.Time{}, err
	}
	t.UpdatedAt = s.now()
	out, err := encodeTask(t)
	if err != nil {
		return time.Time{}, err
	}
	if err := writeFileAtomic(filepath.Dir(path), path, out, 0o644); err != nil {
		return time.Time{}, err
	}
	return t.UpdatedAt, nil
}
