package source

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/dgallion1/promptforge/internal/section"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"
)

// MarkdownLoader handles Markdown templates with optional YAML front matter.
// The body is kept verbatim; goldmark is only used to find the title and
// lead paragraph.
type MarkdownLoader struct{}

func (l *MarkdownLoader) Load(r io.Reader, filename string) (*Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	meta, body, err := splitFrontMatter(src)
	if err != nil {
		return nil, fmt.Errorf("front matter in %s: %w", filename, err)
	}

	doc := &Document{
		Filename: filename,
		Meta:     meta,
		Content:  string(body),
	}

	title, lead := outline(body)
	doc.Title = firstNonEmpty(meta.Title, title, TitleFromFilename(filename))
	doc.Description = firstNonEmpty(meta.Description, section.Truncate(lead, section.DescriptionLimit))
	return doc, nil
}

var fence = []byte("---")

// frontMatterKeys are the FrontMatter yaml keys. A fenced block at the top of
// a file only counts as front matter if it sets at least one of them.
var frontMatterKeys = map[string]bool{
	"title":       true,
	"description": true,
	"role":        true,
	"roles":       true,
	"phase":       true,
	"tags":        true,
}

var knownKeyLineRe = regexp.MustCompile(`(?m)^(title|description|role|roles|phase|tags)\s*:`)

// splitFrontMatter separates a leading "---" delimited YAML block. A block
// that is not a mapping with a known key is a thematic break followed by
// prose, so src is returned unchanged.
func splitFrontMatter(src []byte) (FrontMatter, []byte, error) {
	var meta FrontMatter
	src = bytes.TrimPrefix(src, []byte("\uFEFF"))

	first, rest, ok := bytes.Cut(src, []byte("\n"))
	if !ok || !bytes.Equal(bytes.TrimSpace(first), fence) {
		return meta, src, nil
	}

	var header bytes.Buffer
	for len(rest) > 0 {
		var line []byte
		line, rest, _ = bytes.Cut(rest, []byte("\n"))
		if !bytes.Equal(bytes.TrimSpace(line), fence) {
			header.Write(line)
			header.WriteByte('\n')
			continue
		}

		var node yaml.Node
		if err := yaml.Unmarshal(header.Bytes(), &node); err != nil {
			if knownKeyLineRe.Match(header.Bytes()) {
				return FrontMatter{}, src, err
			}
			return meta, src, nil
		}
		if !hasFrontMatterKey(&node) {
			return meta, src, nil
		}
		if err := node.Decode(&meta); err != nil {
			return FrontMatter{}, src, err
		}
		return meta, rest, nil
	}
	// No closing fence: treat the whole file as body.
	return meta, src, nil
}

func hasFrontMatterKey(doc *yaml.Node) bool {
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return false
	}
	m := doc.Content[0]
	if m.Kind != yaml.MappingNode {
		return false
	}
	for i := 0; i+1 < len(m.Content); i += 2 {
		if frontMatterKeys[m.Content[i].Value] {
			return true
		}
	}
	return false
}

// outline returns the first level-1 heading and the first paragraph that
// precedes any heading.
func outline(src []byte) (title, lead string) {
	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	seenHeading := false
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			if node.Level == 1 && title == "" {
				title = inlineText(node, src)
			}
			seenHeading = true
		case *ast.Paragraph:
			if !seenHeading && lead == "" {
				lead = inlineText(node, src)
			}
		}
	}
	return title, lead
}

// inlineText flattens the inline children of a goldmark node.
func inlineText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(t.Value)
		default:
			buf.WriteString(inlineText(c, src))
		}
	}
	return strings.TrimSpace(buf.String())
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
