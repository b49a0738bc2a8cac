package source

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// HTMLLoader converts HTML templates to Markdown: h1-h6 become ATX headings,
// block text becomes paragraphs and list items become "- " lines.
type HTMLLoader struct{}

func (l *HTMLLoader) Load(r io.Reader, filename string) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	doc := &Document{
		Filename: filename,
		Title:    TitleFromFilename(filename),
	}
	if title := findElementText(root, "title"); title != "" {
		doc.Title = title
	}

	var blocks []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if level := headingLevel(n.Data); level > 0 {
				if t := textContent(n); t != "" {
					blocks = append(blocks, heading(level, t))
				}
				return
			}
			switch n.Data {
			case "script", "style", "nav", "footer", "head":
				return
			case "li":
				if t := textContent(n); t != "" {
					blocks = append(blocks, "- "+t)
				}
				return
			case "p", "td", "blockquote", "pre":
				if t := textContent(n); t != "" {
					blocks = append(blocks, t)
					if doc.Description == "" {
						doc.Description = t
					}
				}
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	if body := findElement(root, "body"); body != nil {
		walk(body)
	} else {
		walk(root)
	}

	doc.Content = joinBlocks(blocks)
	return doc, nil
}

// joinBlocks separates paragraphs with a blank line but keeps consecutive
// list items together.
func joinBlocks(blocks []string) string {
	var b strings.Builder
	for i, blk := range blocks {
		if i > 0 {
			if strings.HasPrefix(blk, "- ") && strings.HasPrefix(blocks[i-1], "- ") {
				b.WriteString("\n")
			} else {
				b.WriteString("\n\n")
			}
		}
		b.WriteString(blk)
	}
	return b.String()
}

func headingLevel(tag string) int {
	if len(tag) == 2 && tag[0] == 'h' && tag[1] >= '1' && tag[1] <= '6' {
		return int(tag[1] - '0')
	}
	return 0
}

// textContent collects descendant text, collapsing runs of whitespace.
func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
			buf.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.Join(strings.Fields(buf.String()), " ")
}

func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func findElementText(n *html.Node, tag string) string {
	if el := findElement(n, tag); el != nil {
		return textContent(el)
	}
	return ""
}
