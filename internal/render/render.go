// Package render converts generated Markdown documents to HTML.
package render

import (
	"bytes"
	"fmt"
	"html"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
)

// ToHTML renders Markdown to an HTML fragment. Raw HTML in the input is
// dropped, since the renderer runs without html.WithUnsafe.
func ToHTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}

// Page wraps an HTML fragment in a minimal standalone document.
func Page(title, body string) string {
	var buf bytes.Buffer
	buf.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>")
	buf.WriteString(html.EscapeString(title))
	buf.WriteString("</title>\n</head>\n<body>\n")
	buf.WriteString(body)
	buf.WriteString("</body>\n</html>\n")
	return buf.String()
}
