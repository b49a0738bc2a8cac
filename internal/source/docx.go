package source

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fumiama/go-docx"
)

// DOCXLoader converts Word documents to Markdown, mapping "Heading N"
// paragraph styles to ATX headings.
type DOCXLoader struct{}

func (l *DOCXLoader) Load(r io.Reader, filename string) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read docx: %w", err)
	}

	parsed, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}

	doc := &Document{
		Filename: filename,
		Title:    TitleFromFilename(filename),
	}

	var blocks []string
	for _, item := range parsed.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		text := docxParagraphText(para)
		if text == "" {
			continue
		}

		style := docxStyle(para)
		if strings.EqualFold(style, "Title") {
			doc.Title = text
			blocks = append(blocks, heading(1, text))
			continue
		}
		if level := docxHeadingLevel(style); level > 0 {
			blocks = append(blocks, heading(level, text))
			continue
		}
		if doc.Description == "" {
			doc.Description = text
		}
		blocks = append(blocks, text)
	}

	doc.Content = strings.Join(blocks, "\n\n")
	return doc, nil
}

func docxStyle(para *docx.Paragraph) string {
	if para.Properties == nil || para.Properties.Style == nil {
		return ""
	}
	return para.Properties.Style.Val
}

// docxHeadingLevel accepts both "Heading2" and "heading 2" style ids.
func docxHeadingLevel(style string) int {
	s := strings.ToLower(strings.ReplaceAll(style, " ", ""))
	if !strings.HasPrefix(s, "heading") {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimPrefix(s, "heading"))
	if err != nil || n < 1 || n > 6 {
		return 0
	}
	return n
}

func docxParagraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
