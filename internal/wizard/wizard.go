// Package wizard turns a template's sections into guided fill-in steps and
// assembles the final document from the answers.
package wizard

import (
	"strings"
	"unicode"

	"github.com/dgallion1/promptforge/internal/section"
	"github.com/dgallion1/promptforge/internal/validate"
	"github.com/dgallion1/promptforge/internal/variable"
)

// PreviewLimit is the number of body runes shown in a step preview.
const PreviewLimit = 500

// QuestionType distinguishes variable prompts from the free-text body prompt.
type QuestionType string

const (
	QuestionVariable QuestionType = "variable"
	QuestionContent  QuestionType = "content"
)

// Question is one input prompt within a step.
type Question struct {
	Type        QuestionType `json:"type"`
	Name        string       `json:"name"`
	Label       string       `json:"label"`
	Placeholder string       `json:"placeholder"`
	Required    bool         `json:"required"`
	Multiline   bool         `json:"is_textarea,omitempty"`
}

// Step is one section of the guided workflow. Number starts at 1.
type Step struct {
	Number       int        `json:"step_number"`
	SectionName  string     `json:"section_name"`
	SectionLevel int        `json:"section_level"`
	Description  string     `json:"description"`
	Variables    []string   `json:"variables"`
	Questions    []Question `json:"questions"`
	Preview      string     `json:"original_content"`
}

// BuildSteps returns one step per section of text, in document order.
func BuildSteps(text string) []Step {
	sections := section.ExtractSections(text)
	steps := make([]Step, 0, len(sections))
	for i, s := range sections {
		steps = append(steps, Step{
			Number:       i + 1,
			SectionName:  s.Name,
			SectionLevel: s.Level,
			Description:  s.Description,
			Variables:    s.Variables,
			Questions:    Questions(s),
			Preview:      preview(s.Body),
		})
	}
	return steps
}

// Questions builds a required prompt per variable followed by one optional
// multi-line prompt for the section body.
func Questions(s section.Section) []Question {
	qs := make([]Question, 0, len(s.Variables)+1)
	for _, name := range s.Variables {
		qs = append(qs, Question{
			Type:        QuestionVariable,
			Name:        name,
			Label:       Label(name),
			Placeholder: "Enter value for " + name,
			Required:    true,
		})
	}

	placeholder := s.Description
	if placeholder == "" {
		placeholder = "Enter content for " + s.Name
	}
	qs = append(qs, Question{
		Type:        QuestionContent,
		Name:        ContentKey(s.Name),
		Label:       "Content for '" + s.Name + "'",
		Placeholder: placeholder,
		Multiline:   true,
	})
	return qs
}

// ContentKey is the form key for a section's free-text answer.
func ContentKey(sectionName string) string {
	return "section_" + strings.ReplaceAll(strings.ToLower(sectionName), " ", "_")
}

// Label turns a variable name such as "project_name" into "Project Name".
// Every letter that follows a non-letter is upper-cased, the rest lower-cased.
func Label(name string) string {
	var b strings.Builder
	prevLetter := false
	for _, r := range strings.ReplaceAll(name, "_", " ") {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToTitle(r))
			}
			prevLetter = true
			continue
		}
		prevLetter = false
		b.WriteRune(r)
	}
	return b.String()
}

func preview(body string) string {
	r := []rune(body)
	if len(r) <= PreviewLimit {
		return body
	}
	return string(r[:PreviewLimit]) + "..."
}

// DocumentSectionName tags the document-wide verdict emitted by
// GenerateDocument when variables remain after assembly.
const DocumentSectionName = "Document"

// GenerateDocument substitutes vars into text, appends each non-empty answer
// in sectionContent after its section's existing body and validates it.
// Sections without an original body are left unchanged. A trailing verdict
// named DocumentSectionName is added when the result still has variables.
func GenerateDocument(text string, sectionContent map[string]string, vars variable.Bindings) (string, []validate.Verdict) {
	result := variable.Substitute(text, vars)
	verdicts := []validate.Verdict{}

	for _, s := range section.ExtractSections(result) {
		content, ok := sectionContent[s.Name]
		if !ok || content == "" {
			continue
		}
		verdicts = append(verdicts, validate.ValidateSection(s.Name, content))

		if strings.TrimSpace(s.Body) != "" {
			result = strings.Replace(result, s.Body, s.Body+"\n\n"+content, 1)
		}
	}

	if remaining := variable.BareNames(result); len(remaining) > 0 {
		verdicts = append(verdicts, validate.UnreplacedVerdict(
			DocumentSectionName,
			remaining,
			"Document still contains unreplaced variables: "+strings.Join(remaining, ", "),
		))
	}
	return result, verdicts
}
