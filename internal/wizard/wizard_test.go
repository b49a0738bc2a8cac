package wizard

import (
	"strings"
	"testing"

	"github.com/dgallion1/promptforge/internal/section"
	"github.com/dgallion1/promptforge/internal/validate"
	"github.com/dgallion1/promptforge/internal/variable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const threeSections = `## Your Role
You are a {{role_title}}.

## Input
Task description for [project_name].

## Output Requirements
Format specifications.
`

func TestBuildSteps_OnePerSectionInOrder(t *testing.T) {
	steps := BuildSteps(threeSections)
	require.Len(t, steps, 3)

	for i, want := range []string{"Your Role", "Input", "Output Requirements"} {
		assert.Equal(t, i+1, steps[i].Number)
		assert.Equal(t, want, steps[i].SectionName)
		assert.Equal(t, 2, steps[i].SectionLevel)
		assert.NotEmpty(t, steps[i].Questions)
	}

	assert.Equal(t, []string{"role_title"}, steps[0].Variables)
	require.Len(t, steps[0].Questions, 2)
	assert.Equal(t, Question{
		Type:        QuestionVariable,
		Name:        "role_title",
		Label:       "Role Title",
		Placeholder: "Enter value for role_title",
		Required:    true,
	}, steps[0].Questions[0])

	content := steps[0].Questions[1]
	assert.Equal(t, QuestionContent, content.Type)
	assert.Equal(t, "section_your_role", content.Name)
	assert.Equal(t, "Content for 'Your Role'", content.Label)
	assert.Equal(t, "You are a {{role_title}}.", content.Placeholder)
	assert.False(t, content.Required)
	assert.True(t, content.Multiline)

	require.Len(t, steps[2].Questions, 1)
	assert.Equal(t, "section_output_requirements", steps[2].Questions[0].Name)
}

func TestBuildSteps_NoHeadings(t *testing.T) {
	assert.Empty(t, BuildSteps("plain text only"))
}

func TestBuildSteps_PreviewTruncated(t *testing.T) {
	body := strings.Repeat("x", PreviewLimit+20)
	steps := BuildSteps("# Big\n" + body)
	require.Len(t, steps, 1)
	assert.Equal(t, strings.Repeat("x", PreviewLimit)+"...", steps[0].Preview)

	steps = BuildSteps("# Small\nshort body")
	assert.Equal(t, "short body", steps[0].Preview)
}

func TestQuestions_EmptyBodyUsesGenericPlaceholder(t *testing.T) {
	qs := Questions(section.Section{Name: "Notes"})
	require.Len(t, qs, 1)
	assert.Equal(t, "Enter content for Notes", qs[0].Placeholder)
}

func TestLabel(t *testing.T) {
	tests := map[string]string{
		"project_name": "Project Name",
		"API_KEY":      "Api Key",
		"name":         "Name",
		"item2name":    "Item2Name",
		"__x":          "  X",
	}
	for in, want := range tests {
		assert.Equal(t, want, Label(in), "input %q", in)
	}
}

func TestContentKey(t *testing.T) {
	assert.Equal(t, "section_step-by-step_instructions", ContentKey("Step-by-Step Instructions"))
}

func TestGenerateDocument_SubstitutesAndAppends(t *testing.T) {
	sections := map[string]string{
		"Your Role": "Your goal is to review pull requests and flag risky changes quickly.",
		"Input":     "",
	}
	vars := variable.FromMap(map[string]string{"role_title": "reviewer", "project_name": "forge"})

	doc, verdicts := GenerateDocument(threeSections, sections, vars)

	assert.Contains(t, doc, "You are a reviewer.\n\nYour goal is to review pull requests")
	assert.Contains(t, doc, "Task description for forge.")
	require.Len(t, verdicts, 1)
	assert.Equal(t, "Your Role", verdicts[0].SectionName)
	assert.True(t, verdicts[0].Valid)
}

func TestGenerateDocument_EmptyBodySectionLeftAsIs(t *testing.T) {
	text := "## Notes\n\n## Input\nGiven data."
	doc, verdicts := GenerateDocument(text, map[string]string{"Notes": "Extra notes here."}, nil)
	assert.Equal(t, text, doc)
	require.Len(t, verdicts, 1)
	assert.Equal(t, "Notes", verdicts[0].SectionName)
}

func TestGenerateDocument_ReportsLeftoverVariables(t *testing.T) {
	sections := map[string]string{"Input": "Use {{source}} for this."}
	doc, verdicts := GenerateDocument(threeSections, sections, variable.Bindings{{Name: "role_title", Value: "dev"}})

	require.Len(t, verdicts, 2)
	assert.Equal(t, "Input", verdicts[0].SectionName)
	assert.False(t, verdicts[0].Valid)
	assert.Equal(t, []string{"source"}, verdicts[0].UnreplacedVariables)

	final := verdicts[1]
	assert.Equal(t, DocumentSectionName, final.SectionName)
	assert.False(t, final.Valid)
	assert.Equal(t, []string{"project_name", "source"}, final.UnreplacedVariables)
	assert.Equal(t, []string{"Document still contains unreplaced variables: project_name, source"}, final.Issues)
	assert.Contains(t, doc, "Use {{source}} for this.")
}

func TestGenerateDocument_NoInputs(t *testing.T) {
	doc, verdicts := GenerateDocument("## A\nplain", nil, nil)
	assert.Equal(t, "## A\nplain", doc)
	assert.Empty(t, verdicts)
}

func TestGenerateDocument_DefaultMarkersCountAsFilled(t *testing.T) {
	tmpl := "## Your Role\nYou are a {{role_title}} writing in a {{tone:formal}} voice.\n\n" +
		"## Input\nA change set for [project_name].\n\n" +
		"## Output Requirements\n" + strings.Repeat("Provide clear numbered findings. ", 12) + "\n"

	steps := BuildSteps(tmpl)
	require.Len(t, steps, 3)
	assert.Equal(t, []string{"role_title"}, steps[0].Variables)
	require.Len(t, steps[0].Questions, 2)
	assert.Equal(t, "role_title", steps[0].Questions[0].Name)

	doc, verdicts := GenerateDocument(tmpl, nil, variable.Bindings{
		{Name: "role_title", Value: "reviewer"},
		{Name: "project_name", Value: "forge"},
		{Name: "tone", Value: "casual"},
	})
	assert.Empty(t, verdicts)
	assert.Contains(t, doc, "{{tone:formal}}")

	report := validate.ScoreDocument(doc)
	assert.True(t, report.Compliant)
	assert.Equal(t, validate.MaxScore, report.Score)
	assert.Empty(t, report.UnreplacedVariables)
	assert.Equal(t, variable.FindUnreplaced(doc), report.UnreplacedVariables)
}
