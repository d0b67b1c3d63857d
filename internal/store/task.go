package store

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"rem-cli/internal/model"

	"gopkg.in/yaml.v3"
)

const headerFence = "---"

// Task is one task file. Its status and path are set only by the Store: the status
// always names the directory component of the path.
type Task struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
	// Body is the markdown after the header, kept verbatim.
	Body string

	status model.Status
	path   string
}

func (t Task) Status() model.Status { return t.status }

// FilePath is the absolute location of the task file.
func (t Task) FilePath() string { return t.path }

// fileHeader is what gets written. Timestamps encode as unquoted RFC 3339.
type fileHeader struct {
	ID        string    `yaml:"id"`
	Name      string    `yaml:"name"`
	CreatedAt time.Time `yaml:"created_at"`
	UpdatedAt time.Time `yaml:"updated_at"`
}

// rawHeader is what gets read. Hand-edited files may quote timestamps, so they are
// decoded as strings and parsed explicitly.
type rawHeader struct {
	ID        string `yaml:"id"`
	Name      string `yaml:"name"`
	CreatedAt string `yaml:"created_at"`
	UpdatedAt string `yaml:"updated_at"`
}

func encodeTask(t Task) ([]byte, error) {
	hdr, err := yaml.Marshal(fileHeader{
		ID:        t.ID,
		Name:      t.Name,
		CreatedAt: t.CreatedAt.UTC(),
		UpdatedAt: t.UpdatedAt.UTC(),
	})
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.WriteString(headerFence + "\n")
	buf.Write(hdr)
	buf.WriteString(headerFence + "\n")
	buf.WriteString(t.Body)
	return buf.Bytes(), nil
}

// decodeTask parses header and body. Status and path are filled in by the caller.
func decodeTask(content []byte) (Task, error) {
	text := strings.ReplaceAll(string(content), "\r\n", "\n")
	text = strings.TrimPrefix(text, "\ufeff")

	lines := strings.SplitAfter(text, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != headerFence {
		return Task{}, errors.New("missing header fence")
	}
	end := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == headerFence {
			end = i
			break
		}
	}
	if end < 0 {
		return Task{}, errors.New("unterminated header")
	}

	var raw rawHeader
	if err := yaml.Unmarshal([]byte(strings.Join(lines[1:end], "")), &raw); err != nil {
		return Task{}, fmt.Errorf("decode header: %w", err)
	}
	raw.ID = strings.TrimSpace(raw.ID)
	if raw.ID == "" {
		return Task{}, errors.New("header field id is required")
	}
	if strings.TrimSpace(raw.Name) == "" {
		return Task{}, errors.New("header field name is required")
	}
	created, err := parseTimestamp(raw.CreatedAt)
	if err != nil {
		return Task{}, fmt.Errorf("created_at: %w", err)
	}
	updated, err := parseTimestamp(raw.UpdatedAt)
	if err != nil {
		return Task{}, fmt.Errorf("updated_at: %w", err)
	}

	return Task{
		ID:        raw.ID,
		Name:      raw.Name,
		CreatedAt: created,
		UpdatedAt: updated,
		Body:      strings.Join(lines[end+1:], ""),
	}, nil
}

func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("missing timestamp")
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02 15:04:05Z07:00"} {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
}
