package section

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullTemplate = `
## Your Role
You are a developer.

## Input
Some input for {{project}}.

## Output Requirements
Format output as [format].
`

func TestDetect_AllRequired(t *testing.T) {
	matches := Detect(fullTemplate)
	require.Len(t, matches, 3)
	assert.Equal(t, HeadingRole, matches[0].Heading)
	assert.Equal(t, HeadingInput, matches[1].Heading)
	assert.Equal(t, HeadingOutput, matches[2].Heading)
	for _, m := range matches {
		assert.Equal(t, m.Heading, fullTemplate[m.Start:m.End])
	}
}

func TestDetect_CaseInsensitiveAndSpanInOriginal(t *testing.T) {
	text := "intro\n## YOUR ROLE\nstuff"
	matches := Detect(text)
	require.Len(t, matches, 1)
	assert.Equal(t, HeadingRole, matches[0].Heading)
	assert.Equal(t, "## YOUR ROLE", text[matches[0].Start:matches[0].End])
}

func TestDetect_MatchesInsideParagraphs(t *testing.T) {
	// Substring detection is deliberate: the heading need not start a line.
	matches := Detect("See the ## Notes block below.")
	require.Len(t, matches, 1)
	assert.Equal(t, HeadingNotes, matches[0].Heading)
}

func TestDetect_FirstOccurrenceOnly(t *testing.T) {
	text := "## Context\nfirst\n## Context\nsecond"
	matches := Detect(text)
	require.Len(t, matches, 1)
	assert.Equal(t, 0, matches[0].Start)
}

func TestMissingRequired_OnlyRole(t *testing.T) {
	ok, missing := MissingRequired("## Your Role")
	assert.False(t, ok)
	assert.Equal(t, []string{HeadingInput, HeadingOutput}, missing)
}

func TestMissingRequired_AllPresent(t *testing.T) {
	ok, missing := MissingRequired(fullTemplate)
	assert.True(t, ok)
	assert.Empty(t, missing)
}

func TestMissingRequired_EmptyText(t *testing.T) {
	ok, missing := MissingRequired("")
	assert.False(t, ok)
	assert.Equal(t, Required(), missing)
}

func TestValidateTemplate_Valid(t *testing.T) {
	report := ValidateTemplate(fullTemplate)
	assert.True(t, report.Valid)
	assert.Empty(t, report.Errors)
	assert.Empty(t, report.Warnings)
	assert.Equal(t, []VariableSummary{
		{Name: "project", Syntax: "brace"},
		{Name: "format", Syntax: "bracket"},
	}, report.Variables)
	assert.Equal(t, Required(), report.Sections)
}

func TestValidateTemplate_MissingSectionsAndNoVariables(t *testing.T) {
	report := ValidateTemplate("# Just a title\n## Notes\nnothing")
	assert.False(t, report.Valid)
	assert.Equal(t, []string{"Missing required sections: ## Your Role, ## Input, ## Output Requirements"}, report.Errors)
	assert.Equal(t, []string{"No variables found in template"}, report.Warnings)
	assert.Equal(t, []string{HeadingNotes}, report.Sections)
	assert.NotNil(t, report.Variables)
}

func TestValidateTemplate_DefaultsReported(t *testing.T) {
	report := ValidateTemplate("{{tone:formal}}")
	require.Len(t, report.Variables, 1)
	assert.True(t, report.Variables[0].HasDefault)
}

func TestPolicy_Constants(t *testing.T) {
	assert.Equal(t, []string{"## Your Role", "## Input", "## Output Requirements"}, Required())
	assert.Equal(t, []string{
		"## Context", "## Constraints", "## Examples",
		"## Step-by-Step Instructions", "## Success Criteria", "## Notes",
	}, Optional())
	assert.Len(t, All(), 9)
	assert.True(t, IsRequired("## Input"))
	assert.False(t, IsRequired("## Notes"))
}

func TestPolicy_ReturnsFreshSlices(t *testing.T) {
	r := Required()
	r[0] = "mutated"
	assert.Equal(t, HeadingRole, Required()[0])
}
