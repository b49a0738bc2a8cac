package source

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	pdflib "github.com/ledongthuc/pdf"
)

// PDFLoader extracts page text from PDF templates. Headings survive only if
// the text itself carries "#" markers. It tries the Go library first, then
// pdftotext when FallbackPdftotext is set.
type PDFLoader struct {
	FallbackPdftotext bool
}

func (l *PDFLoader) Load(r io.Reader, filename string) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read pdf: %w", err)
	}

	text, err := extractPDFText(data)
	if err != nil && l.FallbackPdftotext {
		text, err = extractPdftotext(data)
	}
	if err != nil {
		return nil, fmt.Errorf("extract pdf text: %w", err)
	}

	var pages []string
	for _, page := range strings.Split(text, "\f") {
		if page = strings.TrimSpace(page); page != "" {
			pages = append(pages, page)
		}
	}

	doc := &Document{
		Filename: filename,
		Title:    TitleFromFilename(filename),
		Content:  strings.Join(pages, "\n\n"),
	}
	if len(pages) > 0 {
		first, _, _ := strings.Cut(pages[0], "\n")
		doc.Description = strings.TrimSpace(first)
	}
	return doc, nil
}

func extractPDFText(data []byte) (string, error) {
	reader, err := pdflib.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var buf strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if i > 1 {
			buf.WriteString("\f")
		}
		buf.WriteString(text)
	}
	return buf.String(), nil
}

// extractPdftotext shells out to poppler's pdftotext, which needs a file path.
func extractPdftotext(data []byte) (string, error) {
	tmp, err := os.CreateTemp("", "promptforge-pdf-*.pdf")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	out, err := exec.Command("pdftotext", "-layout", tmpPath, "-").Output()
	if err != nil {
		return "", fmt.Errorf("pdftotext: %w", err)
	}
	return string(out), nil
}
