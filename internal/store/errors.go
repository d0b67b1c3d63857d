package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Error kinds. Match them with errors.Is.
var (
	ErrNotFound = errors.New("task file not found")
	ErrIO       = errors.New("task file i/o failure")
	ErrParse    = errors.New("task header malformed")
)

// ErrEmptyName is returned by Create when the name is blank.
var ErrEmptyName = errors.New("task name is required")

// Error is the failure type of every Store operation that touches disk.
type Error struct {
	Op   string
	Path string
	Kind error
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Kind)
	}
	return fmt.Sprintf("%s %s: %v: %v", e.Op, e.Path, e.Kind, e.Err)
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func ioError(op, path string, err error) error {
	kind := ErrIO
	if errors.Is(err, fs.ErrNotExist) {
		kind = ErrNotFound
	}
	return &Error{Op: op, Path: path, Kind: kind, Err: err}
}

func parseError(path string, err error) error {
	return &Error{Op: "parse", Path: path, Kind: ErrParse, Err: err}
}

// renameError classifies a failed rename. A missing source is NotFound; anything
// else (missing destination dir, permissions) is an I/O failure.
func renameError(src, dest string, err error) error {
	if _, statErr := os.Lstat(src); errors.Is(statErr, fs.ErrNotExist) {
		return &Error{Op: "move", Path: src, Kind: ErrNotFound, Err: err}
	}
	return &Error{Op: "move", Path: dest, Kind: ErrIO, Err: err}
}
