package source

import (
	"strings"
	"testing"
)

func TestForFile_Dispatch(t *testing.T) {
	cases := map[string]string{
		"a.md":       "*source.MarkdownLoader",
		"a.MARKDOWN": "*source.MarkdownLoader",
		"a.txt":      "*source.TextLoader",
		"a.htm":      "*source.HTMLLoader",
		"a.docx":     "*source.DOCXLoader",
		"a.pdf":      "*source.PDFLoader",
	}
	for name, want := range cases {
		l, err := ForFile(name, Options{})
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", name, err)
		}
		if got := typeName(l); got != want {
			t.Errorf("%s: expected %s, got %s", name, want, got)
		}
	}

	if _, err := ForFile("a.csv", Options{}); err == nil {
		t.Error("expected error for unsupported extension")
	}
	if IsSupportedExtension("notes.csv") {
		t.Error("csv should not be supported")
	}
	if !IsSupportedExtension("NOTES.MD") {
		t.Error("extension check should be case-insensitive")
	}
}

func typeName(l Loader) string {
	switch l.(type) {
	case *MarkdownLoader:
		return "*source.MarkdownLoader"
	case *TextLoader:
		return "*source.TextLoader"
	case *HTMLLoader:
		return "*source.HTMLLoader"
	case *DOCXLoader:
		return "*source.DOCXLoader"
	case *PDFLoader:
		return "*source.PDFLoader"
	}
	return "unknown"
}

func TestTitleFromFilename(t *testing.T) {
	cases := map[string]string{
		"code_review-prompt.md":   "Code Review Prompt",
		"dir/SPRINT_planning.txt": "Sprint Planning",
		"émigré notes.md":         "Émigré Notes",
		"plain":                   "Plain",
	}
	for in, want := range cases {
		if got := TitleFromFilename(in); got != want {
			t.Errorf("TitleFromFilename(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestHeading_ClampsLevel(t *testing.T) {
	if got := heading(0, "A"); got != "# A" {
		t.Errorf("got %q", got)
	}
	if got := heading(9, "A"); got != "###### A" {
		t.Errorf("got %q", got)
	}
}

func TestTextLoader(t *testing.T) {
	input := "# Role\r\nYou are a reviewer.\r\n\r\n# Input\r\n{{code}}"
	doc, err := (&TextLoader{}).Load(strings.NewReader(input), "review_prompt.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Title != "Review Prompt" {
		t.Errorf("expected title %q, got %q", "Review Prompt", doc.Title)
	}
	if doc.Description != "You are a reviewer." {
		t.Errorf("unexpected description %q", doc.Description)
	}
	if strings.Contains(doc.Content, "\r") {
		t.Error("carriage returns should be stripped")
	}
	if !strings.HasPrefix(doc.Content, "# Role\nYou are a reviewer.") {
		t.Errorf("unexpected content %q", doc.Content)
	}
}

func TestHTMLLoader(t *testing.T) {
	input := `<html><head><title>Bug Triage</title><style>p{}</style></head>
<body>
<nav>skip me</nav>
<h1>Role</h1>
<p>You triage   incoming
bugs.</p>
<h2>Input</h2>
<ul><li>{{bug_report}}</li><li>[severity]</li></ul>
<script>var x = 1;</script>
</body></html>`
	doc, err := (&HTMLLoader{}).Load(strings.NewReader(input), "triage.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Title != "Bug Triage" {
		t.Errorf("expected title from <title>, got %q", doc.Title)
	}
	want := "# Role\n\nYou triage incoming bugs.\n\n## Input\n\n- {{bug_report}}\n- [severity]"
	if doc.Content != want {
		t.Errorf("content mismatch:\n got: %q\nwant: %q", doc.Content, want)
	}
	if doc.Description != "You triage incoming bugs." {
		t.Errorf("unexpected description %q", doc.Description)
	}
	if strings.Contains(doc.Content, "skip me") || strings.Contains(doc.Content, "var x") {
		t.Error("nav and script text should be dropped")
	}
}

func TestHTMLLoader_NoTitleFallsBackToFilename(t *testing.T) {
	doc, err := (&HTMLLoader{}).Load(strings.NewReader("<p>hello</p>"), "daily-standup.htm")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Title != "Daily Standup" {
		t.Errorf("expected filename title, got %q", doc.Title)
	}
	if doc.Content != "hello" {
		t.Errorf("unexpected content %q", doc.Content)
	}
}

func TestDocxHeadingLevel(t *testing.T) {
	cases := map[string]int{
		"Heading1":  1,
		"heading 3": 3,
		"Heading 6": 6,
		"Heading7":  0,
		"Normal":    0,
		"Heading":   0,
	}
	for style, want := range cases {
		if got := docxHeadingLevel(style); got != want {
			t.Errorf("docxHeadingLevel(%q) = %d, want %d", style, got, want)
		}
	}
}

func TestDOCXLoader_InvalidInput(t *testing.T) {
	if _, err := (&DOCXLoader{}).Load(strings.NewReader("not a zip"), "x.docx"); err == nil {
		t.Error("expected error for non-docx input")
	}
}

func TestPDFLoader_InvalidInputWithoutFallback(t *testing.T) {
	if _, err := (&PDFLoader{}).Load(strings.NewReader("not a pdf"), "x.pdf"); err == nil {
		t.Error("expected error for non-pdf input")
	}
}
