package section

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/dgallion1/promptforge/internal/variable"
)

// DescriptionLimit is the maximum rune length of a section description.
const DescriptionLimit = 150

var (
	headingRe  = regexp.MustCompile(`(?m)^(#{1,6})\s+(.+)$`)
	numberedRe = regexp.MustCompile(`^\d+\.`)
)

// Section is one heading and the text up to the next heading of any level.
// Start is the offset of the heading line, End the offset of the next
// heading (or len(text)).
type Section struct {
	Name        string   `json:"name"`
	Level       int      `json:"level"`
	Body        string   `json:"content"`
	Description string   `json:"description"`
	Start       int      `json:"start"`
	End         int      `json:"end"`
	Variables   []string `json:"variables"`
}

// ExtractSections splits text at Markdown heading lines. Sections are flat:
// a level 3 heading ends a level 2 section just as another level 2 would.
func ExtractSections(text string) []Section {
	matches := headingRe.FindAllStringSubmatchIndex(text, -1)
	sections := make([]Section, 0, len(matches))

	for i, m := range matches {
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		body := strings.TrimSpace(text[m[1]:end])
		sections = append(sections, Section{
			Name:        strings.TrimSpace(text[m[4]:m[5]]),
			Level:       m[3] - m[2],
			Body:        body,
			Description: Describe(body),
			Start:       m[0],
			End:         end,
			Variables:   variable.BareNames(body),
		})
	}
	return sections
}

// Describe builds a short description from the first three lines of body,
// skipping blank lines and lines that look like headings, list items or
// link references.
func Describe(body string) string {
	lines := strings.Split(strings.TrimSpace(body), "\n")
	if len(lines) > 3 {
		lines = lines[:3]
	}

	var parts []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || isMarkerLine(line) {
			continue
		}
		parts = append(parts, line)
	}
	return Truncate(strings.Join(parts, " "), DescriptionLimit)
}

func isMarkerLine(line string) bool {
	switch line[0] {
	case '#', '-', '*', '[':
		return true
	}
	return numberedRe.MatchString(line)
}

// Truncate shortens s to limit runes, replacing the tail with "..." when it
// is longer than limit.
func Truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	r := []rune(s)
	return string(r[:limit-3]) + "..."
}
