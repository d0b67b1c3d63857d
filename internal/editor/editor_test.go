package editor

import (
	"errors"
	"reflect"
	"testing"
)

func TestSplitShellWords(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"   ", nil},
		{"vim", []string{"vim"}},
		{"code --wait", []string{"code", "--wait"}},
		{"vim -u 'foo bar'", []string{"vim", "-u", "foo bar"}},
		{"vim -c \"set ft=markdown\"", []string{"vim", "-c", "set ft=markdown"}},
		{"vim\\ -u\\ foo", []string{"vim -u foo"}},
		{"ed ''", []string{"ed", ""}},
	}

	for _, tt := range tests {
		if got := splitShellWords(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Fatalf("splitShellWords(%q)=%v, want %v", tt.in, got, tt.want)
		}
	}
}

func fakeEnv(env map[string]string) func(string) string {
	return func(k string) string { return env[k] }
}

func TestBridgeNamePrecedence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		command string
		env     map[string]string
		want    string
	}{
		{"config wins", "hx", map[string]string{"VISUAL": "code --wait", "EDITOR": "nano"}, "hx"},
		{"visual", "", map[string]string{"VISUAL": "code --wait", "EDITOR": "nano"}, "code --wait"},
		{"editor", " ", map[string]string{"EDITOR": "nano"}, "nano"},
		{"fallback", "", nil, "vi"},
	}

	for _, tt := range tests {
		b := NewBridge(tt.command, nil)
		b.getenv = fakeEnv(tt.env)
		if got := b.Name(); got != tt.want {
			t.Fatalf("%s: Name()=%q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestBridgeCommandAppendsPath(t *testing.T) {
	t.Parallel()

	b := NewBridge("code --wait -n", nil)
	cmd, err := b.Command("/tmp/tasks/todo/a1.md")
	if err != nil {
		t.Fatalf("Command() error = %v", err)
	}
	want := []string{"code", "--wait", "-n", "/tmp/tasks/todo/a1.md"}
	if !reflect.DeepEqual(cmd.Args, want) {
		t.Fatalf("Args=%v, want %v", cmd.Args, want)
	}
}

func TestBridgeOpenReportsUnresolvableCommand(t *testing.T) {
	t.Parallel()

	b := NewBridge(`\`, nil)
	if _, err := b.Command("a1.md"); !errors.Is(err, ErrNoEditor) {
		t.Fatalf("Command() error = %v, want ErrNoEditor", err)
	}

	msg := b.Open("a1.md")()
	done, ok := msg.(DoneMsg)
	if !ok {
		t.Fatalf("expected DoneMsg, got %T", msg)
	}
	if done.Path != "a1.md" || !errors.Is(done.Err, ErrNoEditor) {
		t.Fatalf("unexpected DoneMsg %+v", done)
	}
}
