package store

import (
	"os"
)

// writeFileAtomic writes b to a temp file in dir and renames it over path, so readers
// never observe a partially written task. The temp name starts with a dot and does
// not end in .md, which keeps it out of List.
func writeFileAtomic(dir, path string, b []byte, perm os.FileMode) error {
	f, err := os.CreateTemp(dir, ".rem-*.tmp")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	_ = os.Chmod(tmp, perm)
	return os.Rename(tmp, path)
}
