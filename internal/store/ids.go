package store

import "github.com/google/uuid"

// newTaskID returns a random UUID. It doubles as the task's file base name.
func newTaskID() string {
	return uuid.NewString()
}

// IsTaskID reports whether s looks like an id produced by Create.
func IsTaskID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
