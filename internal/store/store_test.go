package store

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"rem-cli/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) Store {
	t.Helper()
	s := Store{Dir: filepath.Join(t.TempDir(), "tasks")}
	require.NoError(t, s.Ensure())
	return s
}

func writeTaskFile(t *testing.T, s Store, status model.Status, id, name string) string {
	t.Helper()
	path := filepath.Join(s.StatusDir(status), id+".md")
	content := "---\nid: " + id + "\nname: " + name + "\ncreated_at: 2025-03-01T10:00:00Z\nupdated_at: 2025-03-02T11:30:00Z\n---\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCreateWritesTodoFile(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	s.Now = func() time.Time { return time.Date(2025, 5, 6, 7, 8, 9, 0, time.UTC) }

	task, err := s.Create("  Buy milk ")
	require.NoError(t, err)

	assert.Equal(t, "Buy milk", task.Name)
	assert.True(t, IsTaskID(task.ID), "id %q should be a uuid", task.ID)
	assert.Equal(t, model.StatusTodo, task.Status())
	assert.Equal(t, filepath.Join(s.StatusDir(model.StatusTodo), task.ID+".md"), task.FilePath())
	assert.True(t, task.CreatedAt.Equal(task.UpdatedAt))

	entries, err := os.ReadDir(s.StatusDir(model.StatusTodo))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, task.ID+".md", entries[0].Name())

	raw, err := os.ReadFile(task.FilePath())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "---\n"))
	assert.NotContains(t, string(raw), "status")
	assert.Contains(t, string(raw), "created_at: 2025-05-06T07:08:09Z")

	loaded, err := s.Load(task.FilePath(), model.StatusTodo)
	require.NoError(t, err)
	assert.Equal(t, task, loaded)
}

func TestCreateGeneratesUniqueIDs(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	a, err := s.Create("a")
	require.NoError(t, err)
	b, err := s.Create("b")
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestCreateRejectsBlankName(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	_, err := s.Create("   ")
	require.ErrorIs(t, err, ErrEmptyName)

	entries, err := os.ReadDir(s.StatusDir(model.StatusTodo))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCreateFailsOnUnwritableDir(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	blocker := filepath.Join(base, "tasks")
	require.NoError(t, os.WriteFile(blocker, []byte("not a dir"), 0o644))

	s := Store{Dir: blocker}
	_, err := s.Create("x")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIO)

	var se *Error
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "create", se.Op)
}

func TestListSkipsMalformedAndForeignFiles(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	writeTaskFile(t, s, model.StatusTodo, "a1", "Write report")
	writeTaskFile(t, s, model.StatusTodo, "c3", "Call mom")
	dir := s.StatusDir(model.StatusTodo)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b2.md"), []byte("no header here"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("---\nid: x\n---\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".rem-123.tmp"), []byte("partial"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.md"), 0o755))

	tasks, err := s.List(model.StatusTodo)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "a1", tasks[0].ID)
	assert.Equal(t, "c3", tasks[1].ID)
	for _, task := range tasks {
		assert.Equal(t, model.StatusTodo, task.Status())
	}
}

func TestListMissingDirIsEmpty(t *testing.T) {
	t.Parallel()

	s := Store{Dir: filepath.Join(t.TempDir(), "nope")}
	tasks, err := s.List(model.StatusDone)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestLoadErrorKinds(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	dir := s.StatusDir(model.StatusDoing)

	_, err := s.Load(filepath.Join(dir, "missing.md"), model.StatusDoing)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, err, fs.ErrNotExist)

	bad := map[string]string{
		"no-fence.md":     "id: x\nname: y\n",
		"unterminated.md": "---\nid: x\nname: y\n",
		"no-id.md":        "---\nname: y\ncreated_at: 2025-01-01T00:00:00Z\nupdated_at: 2025-01-01T00:00:00Z\n---\n",
		"bad-time.md":     "---\nid: x\nname: y\ncreated_at: yesterday\nupdated_at: 2025-01-01T00:00:00Z\n---\n",
		"bad-yaml.md":     "---\nid: [x\n---\n",
	}
	for name, content := range bad {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		_, err := s.Load(path, model.StatusDoing)
		assert.ErrorIs(t, err, ErrParse, name)
	}
}

func TestLoadKeepsBodyAndAcceptsQuotedTimestamps(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	path := filepath.Join(s.StatusDir(model.StatusTodo), "q1.md")
	content := "---\r\nid: q1\r\nname: \"Quoted: yes\"\r\ncreated_at: \"2025-01-01T00:00:00Z\"\r\nupdated_at: '2025-01-02T00:00:00.5+02:00'\r\n---\r\n# Notes\r\n\r\n- item\r\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	task, err := s.Load(path, model.StatusTodo)
	require.NoError(t, err)
	assert.Equal(t, "Quoted: yes", task.Name)
	assert.Equal(t, "# Notes\n\n- item\n", task.Body)
	assert.True(t, task.UpdatedAt.Equal(time.Date(2025, 1, 1, 22, 0, 0, 5e8, time.UTC)))
}

func TestMoveStatusRenamesFile(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	moved := time.Date(2025, 9, 9, 9, 9, 9, 0, time.UTC)
	s.Now = func() time.Time { return moved }
	src := writeTaskFile(t, s, model.StatusTodo, "a1", "Write report")
	require.NoError(t, os.WriteFile(src, append(mustRead(t, src), []byte("body stays\n")...), 0o644))

	task, err := s.Load(src, model.StatusTodo)
	require.NoError(t, err)

	require.NoError(t, s.MoveStatus(&task, model.StatusDoing))

	dest := filepath.Join(s.StatusDir(model.StatusDoing), "a1.md")
	assert.Equal(t, dest, task.FilePath())
	assert.Equal(t, model.StatusDoing, task.Status())
	assert.Equal(t, model.StatusDoing.Dir(), filepath.Base(filepath.Dir(task.FilePath())))
	assert.True(t, task.UpdatedAt.Equal(moved))
	assert.NoFileExists(t, src)
	assert.FileExists(t, dest)

	reloaded, err := s.Load(dest, model.StatusDoing)
	require.NoError(t, err)
	assert.Equal(t, "body stays\n", reloaded.Body)
	assert.True(t, reloaded.UpdatedAt.Equal(moved))
	assert.Equal(t, task.CreatedAt, reloaded.CreatedAt)
}

func TestMoveStatusFailureLeavesTaskUnchanged(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	src := writeTaskFile(t, s, model.StatusDoing, "b2", "Review PR")
	task, err := s.Load(src, model.StatusDoing)
	require.NoError(t, err)
	before := task

	require.NoError(t, os.Remove(s.StatusDir(model.StatusDone)))
	err = s.MoveStatus(&task, model.StatusDone)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIO)
	assert.Equal(t, before, task)
	assert.FileExists(t, src)

	require.NoError(t, os.Remove(src))
	require.NoError(t, os.Mkdir(s.StatusDir(model.StatusDone), 0o755))
	err = s.MoveStatus(&task, model.StatusDone)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, before, task)
}

func TestMoveStatusRefusesToOverwrite(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	src := writeTaskFile(t, s, model.StatusTodo, "dup", "one")
	writeTaskFile(t, s, model.StatusDoing, "dup", "two")
	task, err := s.Load(src, model.StatusTodo)
	require.NoError(t, err)

	err = s.MoveStatus(&task, model.StatusDoing)
	assert.ErrorIs(t, err, ErrIO)
	assert.Equal(t, model.StatusTodo, task.Status())
	assert.FileExists(t, src)
}

func TestFind(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	writeTaskFile(t, s, model.StatusDone, "d4", "Ship it")

	task, err := s.Find("d4")
	require.NoError(t, err)
	assert.Equal(t, "Ship it", task.Name)
	assert.Equal(t, model.StatusDone, task.Status())

	_, err = s.Find("zz")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.Find("../d4")
	assert.ErrorIs(t, err, ErrNotFound)
}

func mustRead(t *testing.T, path string) []byte {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return b
}
