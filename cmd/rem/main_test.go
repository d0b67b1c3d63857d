package main

import (
	"reflect"
	"testing"
)

func TestRewriteTaskLookupArgs(t *testing.T) {
	t.Parallel()

	const id = "0f8fad5b-d9cb-469f-a165-70867728950e"

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "no args",
			in:   []string{"rem"},
			want: []string{"rem"},
		},
		{
			name: "task id first token",
			in:   []string{"rem", id},
			want: []string{"rem", "show", id},
		},
		{
			name: "task id after value flag",
			in:   []string{"rem", "--dir", "./tmp-rem", id},
			want: []string{"rem", "--dir", "./tmp-rem", "show", id},
		},
		{
			name: "task id after equals flag",
			in:   []string{"rem", "--dir=./tmp-rem", id},
			want: []string{"rem", "--dir=./tmp-rem", "show", id},
		},
		{
			name: "task id after bool flag",
			in:   []string{"rem", "--pretty", id},
			want: []string{"rem", "--pretty", "show", id},
		},
		{
			name: "task id after double dash",
			in:   []string{"rem", "--dir", "./tmp-rem", "--", id},
			want: []string{"rem", "--dir", "./tmp-rem", "show", "--", id},
		},
		{
			name: "flag value that looks like an id is not rewritten",
			in:   []string{"rem", "--dir", id},
			want: []string{"rem", "--dir", id},
		},
		{
			name: "normal subcommand not rewritten",
			in:   []string{"rem", "show", id},
			want: []string{"rem", "show", id},
		},
		{
			name: "unknown command not rewritten",
			in:   []string{"rem", "wat"},
			want: []string{"rem", "wat"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := rewriteTaskLookupArgs(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("rewriteTaskLookupArgs(%v)=%v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
