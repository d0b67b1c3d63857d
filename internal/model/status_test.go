package model

import "testing"

func TestStatusOrder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in       Status
		next     Status
		hasNext  bool
		prev     Status
		hasPrev  bool
		wantDir  string
		wantText string
	}{
		{StatusTodo, StatusDoing, true, StatusTodo, false, "todo", "TODO"},
		{StatusDoing, StatusDone, true, StatusTodo, true, "doing", "DOING"},
		{StatusDone, StatusDone, false, StatusDoing, true, "done", "DONE"},
	}

	for _, tt := range tests {
		next, ok := tt.in.Next()
		if next != tt.next || ok != tt.hasNext {
			t.Fatalf("%v.Next()=(%v,%v), want (%v,%v)", tt.in, next, ok, tt.next, tt.hasNext)
		}
		prev, ok := tt.in.Prev()
		if prev != tt.prev || ok != tt.hasPrev {
			t.Fatalf("%v.Prev()=(%v,%v), want (%v,%v)", tt.in, prev, ok, tt.prev, tt.hasPrev)
		}
		if got := tt.in.Dir(); got != tt.wantDir {
			t.Fatalf("%v.Dir()=%q, want %q", tt.in, got, tt.wantDir)
		}
		if got := tt.in.Label(); got != tt.wantText {
			t.Fatalf("%v.Label()=%q, want %q", tt.in, got, tt.wantText)
		}
	}
}

func TestParseStatus(t *testing.T) {
	t.Parallel()

	for _, s := range Statuses {
		got, err := ParseStatus(" " + s.Label() + " ")
		if err != nil {
			t.Fatalf("ParseStatus(%q): %v", s.Label(), err)
		}
		if got != s {
			t.Fatalf("ParseStatus(%q)=%v, want %v", s.Label(), got, s)
		}
		fromDir, ok := StatusFromDir(s.Dir())
		if !ok || fromDir != s {
			t.Fatalf("StatusFromDir(%q)=(%v,%v)", s.Dir(), fromDir, ok)
		}
	}

	if _, err := ParseStatus("blocked"); err == nil {
		t.Fatalf("expected error for unknown status")
	}
	if _, ok := StatusFromDir("archive"); ok {
		t.Fatalf("expected unknown dir to be rejected")
	}
	if Status(7).Valid() {
		t.Fatalf("expected out-of-range status to be invalid")
	}
}
