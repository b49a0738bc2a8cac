// Package validate checks filled-in section content and whole documents
// against the template compliance policy.
package validate

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dgallion1/promptforge/internal/variable"
)

// Per-section content thresholds.
const (
	MinSectionWords     = 10
	MinMeaningfulLength = 20
)

// Verdict is the real-time validation result for one section's content.
// Valid is false exactly when UnreplacedVariables is non-empty.
type Verdict struct {
	Valid               bool     `json:"is_valid"`
	SectionName         string   `json:"section_name"`
	Issues              []string `json:"issues"`
	Warnings            []string `json:"warnings"`
	Suggestions         []string `json:"suggestions"`
	UnreplacedVariables []string `json:"unreplaced_variables"`
}

func newVerdict(name string) Verdict {
	return Verdict{
		Valid:               true,
		SectionName:         name,
		Issues:              []string{},
		Warnings:            []string{},
		Suggestions:         []string{},
		UnreplacedVariables: []string{},
	}
}

// UnreplacedVerdict builds a failing verdict for leftover variables.
func UnreplacedVerdict(name string, names []string, issue string) Verdict {
	v := newVerdict(name)
	v.Valid = false
	v.UnreplacedVariables = append(v.UnreplacedVariables, names...)
	v.Issues = append(v.Issues, issue)
	return v
}

// ValidateSection checks one section's content. Any variable marker left in
// content fails the section; length checks and suggestions are advisory.
func ValidateSection(name, content string) Verdict {
	v := newVerdict(name)

	if unreplaced := variable.BareNames(content); len(unreplaced) > 0 {
		v.Valid = false
		v.UnreplacedVariables = unreplaced
		v.Issues = append(v.Issues, "Unreplaced variables found: "+strings.Join(unreplaced, ", "))
	}

	if words := len(strings.Fields(content)); words < MinSectionWords {
		v.Warnings = append(v.Warnings, fmt.Sprintf(
			"Section content seems short (%d words). Consider adding more detail for clarity.", words))
	}

	if utf8.RuneCountInString(strings.TrimSpace(content)) < MinMeaningfulLength {
		v.Warnings = append(v.Warnings,
			"Section content appears to be minimal. Adding more context may improve document quality.")
	}

	v.Suggestions = append(v.Suggestions, suggest(name, content)...)
	return v
}

type suggestionRule struct {
	nameKeys []string
	signals  []string
	advice   string
}

var suggestionRules = []suggestionRule{
	{
		nameKeys: []string{"role"},
		signals:  []string{"responsibility", "task", "goal", "objective", "you will"},
		advice:   "Consider specifying clear responsibilities or objectives for this role.",
	},
	{
		nameKeys: []string{"input"},
		signals:  []string{"provide", "given", "receive", "include"},
		advice:   "Consider specifying what inputs or data will be provided.",
	},
	{
		nameKeys: []string{"output", "requirement"},
		signals:  []string{"format", "structure", "include", "return", "produce"},
		advice:   "Consider specifying the expected output format or structure.",
	},
}

func suggest(name, content string) []string {
	name = strings.ToLower(name)
	content = strings.ToLower(content)

	var out []string
	for _, rule := range suggestionRules {
		if !containsAny(name, rule.nameKeys) {
			continue
		}
		if !containsAny(content, rule.signals) {
			out = append(out, rule.advice)
		}
	}
	return out
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
