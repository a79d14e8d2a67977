package calc

import "strings"

// Section is one collapsible block of a calculation answer.
type Section struct {
	Title   string
	Details []string
}

// ParseSections splits an answer into titled sections. Chunks are separated
// by a blank line; the first line of a chunk is its title and the rest is
// split on "- " into trimmed detail lines. Empty chunks and empty details
// are dropped.
func ParseSections(text string) []Section {
	var sections []Section
	for _, chunk := range strings.Split(text, "\n\n") {
		chunk = strings.TrimLeft(chunk, "\n")
		if strings.TrimSpace(chunk) == "" {
			continue
		}

		title, body, _ := strings.Cut(chunk, "\n")
		sec := Section{Title: strings.TrimSpace(title)}
		for _, d := range strings.Split(body, "- ") {
			if d = strings.TrimSpace(d); d != "" {
				sec.Details = append(sec.Details, d)
			}
		}
		sections = append(sections, sec)
	}
	return sections
}
