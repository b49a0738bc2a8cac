package catalog

import (
	"path/filepath"
	"strings"
	"unicode"
)

// DefaultRole and DefaultPhase are used when nothing in a template hints at
// a role or workflow phase.
const (
	DefaultRole  = "general"
	DefaultPhase = "general"
)

type keywordSet struct {
	name     string
	keywords []string
}

// Roles are checked in this order; the first hit becomes the primary role.
var roleKeywords = []keywordSet{
	{"analyst", []string{"analyst", "analysis", "research", "brief"}},
	{"architect", []string{"architect", "architecture", "infrastructure"}},
	{"developer", []string{"developer", "dev", "code", "coding", "implement", "implementation"}},
	{"pm", []string{"pm", "product", "prd", "roadmap"}},
	{"qa", []string{"qa", "test", "tests", "testing", "quality"}},
	{"scrum_master", []string{"scrum", "sprint", "story", "stories", "retrospective"}},
	{"ux", []string{"ux", "ui", "usability", "wireframe", "frontend"}},
}

var phaseKeywords = []keywordSet{
	{"planning", []string{"planning", "plan", "brief", "prd", "roadmap", "requirements"}},
	{"development", []string{"development", "develop", "implementation", "implement", "code", "sprint"}},
	{"testing", []string{"testing", "test", "tests", "qa", "review"}},
	{"deployment", []string{"deployment", "deploy", "release", "rollout"}},
}

// detectRoles returns every known role named by the filename, or failing that by
// the content. Front matter wins when present.
func detectRoles(role string, roles []string, filename, content string) []string {
	var out []string
	seen := make(map[string]bool)
	add := func(r string) {
		r = normalizeKey(r)
		if r != "" && !seen[r] {
			seen[r] = true
			out = append(out, r)
		}
	}
	add(role)
	for _, r := range roles {
		add(r)
	}
	if len(out) > 0 {
		return out
	}

	for _, tokens := range []map[string]bool{filenameTokens(filename), contentTokens(content)} {
		for _, set := range roleKeywords {
			if hasAny(tokens, set.keywords) {
				add(set.name)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return []string{DefaultRole}
}

func detectPhase(phase, filename, content string) string {
	if p := normalizeKey(phase); p != "" {
		return p
	}
	for _, tokens := range []map[string]bool{filenameTokens(filename), contentTokens(content)} {
		for _, set := range phaseKeywords {
			if hasAny(tokens, set.keywords) {
				return set.name
			}
		}
	}
	return DefaultPhase
}

func normalizeKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Join(strings.Fields(strings.ReplaceAll(s, "-", " ")), "_")
}

func filenameTokens(filename string) map[string]bool {
	base := filepath.Base(filename)
	return tokenize(strings.TrimSuffix(base, filepath.Ext(base)))
}

func contentTokens(content string) map[string]bool {
	return tokenize(content)
}

func tokenize(s string) map[string]bool {
	words := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

func hasAny(tokens map[string]bool, keywords []string) bool {
	for _, k := range keywords {
		if tokens[k] {
			return true
		}
	}
	return false
}

// slug turns a filename into a URL-safe template id.
func slug(filename string) string {
	base := filepath.Base(filename)
	base = strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))
	var b strings.Builder
	dash := false
	for _, r := range base {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	id := strings.TrimSuffix(b.String(), "-")
	if id == "" {
		return "template"
	}
	return id
}
