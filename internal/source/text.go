package source

import (
	"bufio"
	"io"
	"strings"
)

// TextLoader handles plain text templates. Lines are kept as-is, so "#"
// prefixed lines still act as headings.
type TextLoader struct{}

func (l *TextLoader) Load(r io.Reader, filename string) (*Document, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var lines []string
	lead := ""
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		lines = append(lines, line)
		if lead == "" && strings.TrimSpace(line) != "" && !strings.HasPrefix(line, "#") {
			lead = strings.TrimSpace(line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return &Document{
		Filename:    filename,
		Title:       TitleFromFilename(filename),
		Description: lead,
		Content:     strings.Join(lines, "\n"),
	}, nil
}
