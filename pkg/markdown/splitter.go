package markdown

import "strings"

// Section is a contiguous span of a document's text under one heading,
// or the whole document if it has no headings.
type Section struct {
	Header  string // heading line including markers, empty for headless text
	Content string
}

// SplitSections splits markdown content into sections based on heading
// lines. A line whose trimmed form starts with '#' closes the current
// section and opens a new one. Blank lines are kept inside an already
// open section to preserve paragraph structure, but never open one by
// themselves. Sections whose body is empty after trimming are dropped,
// so every returned section has searchable text. Never fails; malformed
// input just yields a degenerate section list.
func SplitSections(content string) []Section {
	var sections []Section
	var current []string
	currentHeader := ""

	flush := func() {
		body := strings.Join(current, "\n")
		if strings.TrimSpace(body) != "" {
			sections = append(sections, Section{
				Header:  currentHeader,
				Content: strings.TrimSpace(body),
			})
		}
		current = nil
	}

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") {
			flush()
			currentHeader = trimmed
			continue
		}
		if trimmed != "" || len(current) > 0 {
			current = append(current, line)
		}
	}
	flush()

	return sections
}
