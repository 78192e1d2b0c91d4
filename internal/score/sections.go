package score

import (
	"regexp"
	"strings"
)

// Section is one titled block of a daily log file.
type Section struct {
	Title string
	Body  string
}

var headingRe = regexp.MustCompile(`^#{2,3}\s+(.+)$`)

// ExtractSections splits markdown text into ordered H2/H3 sections.
// Text before the first heading is ignored; sections with empty bodies
// are dropped.
func ExtractSections(text string) []Section {
	var sections []Section
	var title string
	var lines []string

	flush := func() {
		if title == "" {
			return
		}
		body := strings.TrimSpace(strings.Join(lines, "\n"))
		if body != "" {
			sections = append(sections, Section{Title: title, Body: body})
		}
	}

	for _, line := range strings.Split(text, "\n") {
		if m := headingRe.FindStringSubmatch(line); m != nil {
			flush()
			title = strings.TrimSpace(m[1])
			lines = nil
			continue
		}
		if title != "" {
			lines = append(lines, line)
		}
	}
	flush()

	return sections
}
