// Package title builds the wall-post message from the operator's title, the
// tag list, and the destination group's handle.
package title

import "strings"

// Compose merges the title with the tag lines. Each tag becomes "#tag", with
// "@handle" appended when a group handle is configured. Tags follow the
// title after one blank line; the result carries no trailing whitespace.
func Compose(postTitle string, tags []string, groupHandle string) string {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(postTitle))
	groupHandle = strings.TrimSpace(groupHandle)

	if len(tags) > 0 {
		b.WriteString("\n\n")
		for _, tag := range tags {
			tag = strings.TrimSpace(tag)
			if tag == "" {
				continue
			}
			b.WriteString("#")
			b.WriteString(tag)
			if groupHandle != "" {
				b.WriteString("@")
				b.WriteString(groupHandle)
			}
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), " \t\n")
}
