package cli

import "fmt"

type notFoundError struct {
	kind string
	id   string
}

func (e notFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.kind, e.id)
}

func errNotFound(kind, id string) error {
	return notFoundError{kind: kind, id: id}
}

type invalidFlagError struct {
	flag  string
	value string
	err   error
}

func (e invalidFlagError) Error() string {
	return fmt.Sprintf("invalid --%s %q: %v", e.flag, e.value, e.err)
}

func (e invalidFlagError) Unwrap() error { return e.err }
