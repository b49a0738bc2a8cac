// Package variable finds and fills the two placeholder syntaxes used in templates:
// {{NAME}} / {{NAME:DEFAULT}} and [NAME] / [NAME:DEFAULT].
package variable

import (
	"regexp"
	"sort"
)

// Syntax identifies which marker form an occurrence was written in.
type Syntax string

const (
	SyntaxBrace   Syntax = "brace"
	SyntaxBracket Syntax = "bracket"
)

var (
	braceRe   = regexp.MustCompile(`\{\{(\w+)(?::([^}]+))?\}\}`)
	bracketRe = regexp.MustCompile(`\[(\w+)(?::([^\]]+))?\]`)

	bareRe = regexp.MustCompile(`\{\{(\w+)\}\}|\[(\w+)\]`)
)

// Occurrence is a single variable marker found in source text.
// Start and End are byte offsets, End exclusive.
type Occurrence struct {
	Name       string `json:"name"`
	Syntax     Syntax `json:"syntax"`
	Start      int    `json:"start"`
	End        int    `json:"end"`
	Default    string `json:"default,omitempty"`
	HasDefault bool   `json:"has_default"`
}

type occurrenceKey struct {
	name       string
	syntax     Syntax
	start, end int
}

// Extract returns every variable occurrence in text. Brace markers are
// reported first, then bracket markers, each in source order.
func Extract(text string) []Occurrence {
	out := []Occurrence{}
	seen := make(map[occurrenceKey]bool)
	scan := func(re *regexp.Regexp, syntax Syntax) {
		for _, m := range re.FindAllStringSubmatchIndex(text, -1) {
			occ := Occurrence{
				Name:   text[m[2]:m[3]],
				Syntax: syntax,
				Start:  m[0],
				End:    m[1],
			}
			if m[4] >= 0 {
				occ.Default = text[m[4]:m[5]]
				occ.HasDefault = true
			}
			key := occurrenceKey{occ.Name, occ.Syntax, occ.Start, occ.End}
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, occ)
		}
	}
	scan(braceRe, SyntaxBrace)
	scan(bracketRe, SyntaxBracket)
	return out
}

// ExtractNames returns the sorted set of variable names in text, across both
// syntaxes and regardless of defaults.
func ExtractNames(text string) []string {
	set := make(map[string]struct{})
	for _, re := range []*regexp.Regexp{braceRe, bracketRe} {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			set[m[1]] = struct{}{}
		}
	}
	names := make([]string, 0, len(set))
	for n := range set {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// BareNames returns the sorted set of names written without a default. A
// marker with a default is already filled, so it is not reported here.
func BareNames(text string) []string {
	set := make(map[string]struct{})
	for _, m := range bareRe.FindAllStringSubmatch(text, -1) {
		if m[1] != "" {
			set[m[1]] = struct{}{}
		} else {
			set[m[2]] = struct{}{}
		}
	}
	names := make([]string, 0, len(set))
	for n := range set {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
