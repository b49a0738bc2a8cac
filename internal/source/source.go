// Package source turns template files of several formats into Markdown text
// that the template tooling can analyse.
package source

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode"
)

// FrontMatter holds the optional YAML header of a Markdown template.
type FrontMatter struct {
	Title       string   `yaml:"title" json:"title,omitempty"`
	Description string   `yaml:"description" json:"description,omitempty"`
	Role        string   `yaml:"role" json:"role,omitempty"`
	Roles       []string `yaml:"roles" json:"roles,omitempty"`
	Phase       string   `yaml:"phase" json:"phase,omitempty"`
	Tags        []string `yaml:"tags" json:"tags,omitempty"`
}

// Document is a loaded template. Content is Markdown with ATX headings.
type Document struct {
	Filename    string
	Title       string
	Description string
	Meta        FrontMatter
	Content     string
}

// Loader converts raw file bytes into a Document.
type Loader interface {
	Load(r io.Reader, filename string) (*Document, error)
}

// Options tune format-specific loaders.
type Options struct {
	PDFFallbackPdftotext bool
}

// SupportedExtensions lists file extensions that can be loaded.
var SupportedExtensions = map[string]bool{
	".md":       true,
	".markdown": true,
	".txt":      true,
	".html":     true,
	".htm":      true,
	".docx":     true,
	".pdf":      true,
}

// ForFile returns the loader for a filename's extension.
func ForFile(filename string, opts Options) (Loader, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".md", ".markdown":
		return &MarkdownLoader{}, nil
	case ".txt":
		return &TextLoader{}, nil
	case ".html", ".htm":
		return &HTMLLoader{}, nil
	case ".docx":
		return &DOCXLoader{}, nil
	case ".pdf":
		return &PDFLoader{FallbackPdftotext: opts.PDFFallbackPdftotext}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension can be loaded.
func IsSupportedExtension(filename string) bool {
	return SupportedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// TitleFromFilename turns "code_review-prompt.md" into "Code Review Prompt".
func TitleFromFilename(filename string) string {
	base := filepath.Base(filename)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	words := strings.FieldsFunc(base, func(r rune) bool {
		return r == '_' || r == '-' || r == ' '
	})
	for i, w := range words {
		r := []rune(strings.ToLower(w))
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

// heading renders an ATX heading line, clamping level to 1..6.
func heading(level int, text string) string {
	level = min(max(level, 1), 6)
	return strings.Repeat("#", level) + " " + text
}
