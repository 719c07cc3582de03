package title_test

import (
	"strings"
	"testing"

	"rtvk/internal/title"
)

func TestCompose(t *testing.T) {
	tests := []struct {
		name   string
		title  string
		tags   []string
		handle string
		want   string
	}{
		{
			name:  "title only",
			title: "Hello",
			want:  "Hello",
		},
		{
			name:   "tags with group handle",
			title:  "Hello",
			tags:   []string{"cats", "fun"},
			handle: "group",
			want:   "Hello\n\n#cats@group\n#fun@group",
		},
		{
			name: "everything empty",
			want: "",
		},
		{
			name:  "tags without handle",
			title: "Hello",
			tags:  []string{"cats"},
			want:  "Hello\n\n#cats",
		},
		{
			name:   "fields are trimmed",
			title:  "  Hello  ",
			tags:   []string{" cats "},
			handle: " group ",
			want:   "Hello\n\n#cats@group",
		},
		{
			name: "tags with empty title",
			tags: []string{"cats"},
			want: "\n\n#cats",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := title.Compose(tc.title, tc.tags, tc.handle)
			if got != tc.want {
				t.Errorf("Compose = %q, want %q", got, tc.want)
			}
			// Idempotent under re-trimming.
			if trimmed := strings.TrimRight(got, " \t\n"); trimmed != got {
				t.Errorf("result carries trailing whitespace: %q", got)
			}
		})
	}
}
