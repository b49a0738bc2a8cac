// Package section locates policy headings and splits Markdown text into
// heading-delimited sections.
package section

import (
	"regexp"
	"strings"

	"github.com/dgallion1/promptforge/internal/variable"
)

// Match is the first case-insensitive occurrence of a policy heading.
type Match struct {
	Heading string `json:"heading"`
	Start   int    `json:"start"`
	End     int    `json:"end"`
}

var headingPatterns = func() map[string]*regexp.Regexp {
	m := make(map[string]*regexp.Regexp)
	for _, h := range All() {
		m[h] = regexp.MustCompile(`(?i)` + regexp.QuoteMeta(h))
	}
	return m
}()

// Detect finds each policy heading anywhere in text, not only on heading
// lines. Results follow policy order; absent headings are omitted.
func Detect(text string) []Match {
	out := []Match{}
	for _, h := range All() {
		loc := headingPatterns[h].FindStringIndex(text)
		if loc == nil {
			continue
		}
		out = append(out, Match{Heading: h, Start: loc[0], End: loc[1]})
	}
	return out
}

// MissingRequired reports whether all required headings are present and
// lists the absent ones in policy order.
func MissingRequired(text string) (bool, []string) {
	found := make(map[string]bool)
	for _, m := range Detect(text) {
		found[m.Heading] = true
	}
	missing := []string{}
	for _, h := range Required() {
		if !found[h] {
			missing = append(missing, h)
		}
	}
	return len(missing) == 0, missing
}

// VariableSummary describes one variable occurrence in a template report.
type VariableSummary struct {
	Name       string          `json:"name"`
	Syntax     variable.Syntax `json:"syntax"`
	HasDefault bool            `json:"has_default"`
}

// TemplateReport is the result of ValidateTemplate.
type TemplateReport struct {
	Valid     bool              `json:"is_valid"`
	Errors    []string          `json:"errors"`
	Warnings  []string          `json:"warnings"`
	Variables []VariableSummary `json:"variables"`
	Sections  []string          `json:"sections"`
}

// ValidateTemplate checks a template for required headings and summarises its
// variables and detected policy headings.
func ValidateTemplate(text string) TemplateReport {
	report := TemplateReport{
		Valid:     true,
		Errors:    []string{},
		Warnings:  []string{},
		Variables: []VariableSummary{},
		Sections:  []string{},
	}

	if ok, missing := MissingRequired(text); !ok {
		report.Valid = false
		report.Errors = append(report.Errors, "Missing required sections: "+strings.Join(missing, ", "))
	}

	occ := variable.Extract(text)
	for _, o := range occ {
		report.Variables = append(report.Variables, VariableSummary{
			Name:       o.Name,
			Syntax:     o.Syntax,
			HasDefault: o.HasDefault,
		})
	}
	if len(occ) == 0 {
		report.Warnings = append(report.Warnings, "No variables found in template")
	}

	for _, m := range Detect(text) {
		report.Sections = append(report.Sections, m.Heading)
	}
	return report
}
