package model

import (
	"fmt"
	"strings"
)

// Status is the workflow position of a task. It is never persisted inside a task
// file: the directory holding the file is the status.
type Status int

const (
	StatusTodo Status = iota
	StatusDoing
	StatusDone
)

// Statuses lists every status in board order.
var Statuses = []Status{StatusTodo, StatusDoing, StatusDone}

func (s Status) String() string {
	switch s {
	case StatusTodo:
		return "todo"
	case StatusDoing:
		return "doing"
	case StatusDone:
		return "done"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Dir returns the directory name that holds files of this status.
func (s Status) Dir() string { return s.String() }

// Label is the uppercase panel title.
func (s Status) Label() string { return strings.ToUpper(s.String()) }

func (s Status) Valid() bool {
	return s >= StatusTodo && s <= StatusDone
}

// Next returns the following status in Todo -> Doing -> Done order.
// Done has no successor.
func (s Status) Next() (Status, bool) {
	switch s {
	case StatusTodo:
		return StatusDoing, true
	case StatusDoing:
		return StatusDone, true
	default:
		return s, false
	}
}

// Prev is the inverse of Next. Todo has no predecessor.
func (s Status) Prev() (Status, bool) {
	switch s {
	case StatusDoing:
		return StatusTodo, true
	case StatusDone:
		return StatusDoing, true
	default:
		return s, false
	}
}

// ParseStatus accepts the directory names (case-insensitive).
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "todo":
		return StatusTodo, nil
	case "doing":
		return StatusDoing, nil
	case "done":
		return StatusDone, nil
	default:
		return 0, fmt.Errorf("invalid status %q (expected todo|doing|done)", s)
	}
}

// StatusFromDir maps a status directory name back to its status.
func StatusFromDir(dir string) (Status, bool) {
	for _, s := range Statuses {
		if s.Dir() == dir {
			return s, true
		}
	}
	return 0, false
}
