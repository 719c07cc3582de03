package queue

import (
	"fmt"
	"strings"
)

// fieldSeparator joins the three entry fields on disk. The surrounding
// spaces are part of the format.
const fieldSeparator = " | "

// Entry is one unit of work: a source post plus the operator-supplied
// tags and title for the destination wall post.
type Entry struct {
	URL   string
	Tags  []string
	Title string
}

// Line serializes the entry into its on-disk form.
func (e Entry) Line() string {
	return strings.Join([]string{e.URL, strings.Join(e.Tags, ","), e.Title}, fieldSeparator)
}

// ParseLine decodes one queue line. A line must split into exactly three
// pipe-separated fields; anything else fails with ErrFormat.
func ParseLine(line string) (Entry, error) {
	parts := strings.Split(line, "|")
	if len(parts) != 3 {
		return Entry{}, fmt.Errorf("%w: expected 3 fields, got %d in %q", ErrFormat, len(parts), line)
	}
	return Entry{
		URL:   strings.TrimSpace(parts[0]),
		Tags:  splitTags(parts[1]),
		Title: strings.TrimSpace(parts[2]),
	}, nil
}

func splitTags(field string) []string {
	field = strings.TrimSpace(field)
	if field == "" {
		return nil
	}
	parts := strings.Split(field, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// ParseTags splits a comma-separated CLI tags argument into a tag list.
func ParseTags(arg string) []string {
	return splitTags(arg)
}
