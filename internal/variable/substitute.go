package variable

import (
	"fmt"
	"sort"
	"strings"
)

// Binding pairs a variable name with its replacement value.
type Binding struct {
	Name  string
	Value string
}

// Bindings is an ordered list of replacements. Order matters: a value that
// itself contains a marker can be rewritten by a later binding.
type Bindings []Binding

// FromMap converts an unordered map into Bindings sorted by name.
func FromMap(m map[string]string) Bindings {
	out := make(Bindings, 0, len(m))
	for k, v := range m {
		out = append(out, Binding{Name: k, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// FromAny is FromMap for decoded JSON objects; non-string values are
// rendered with fmt.Sprint.
func FromAny(m map[string]any) Bindings {
	s := make(map[string]string, len(m))
	for k, v := range m {
		switch t := v.(type) {
		case string:
			s[k] = t
		case nil:
			s[k] = ""
		default:
			s[k] = fmt.Sprint(t)
		}
	}
	return FromMap(s)
}

// Substitute replaces {{name}} and [name] for every binding, in order.
// Markers carrying a default, such as {{name:x}}, are left alone.
func Substitute(text string, values Bindings) string {
	result := text
	for _, b := range values {
		result = strings.ReplaceAll(result, "{{"+b.Name+"}}", b.Value)
		result = strings.ReplaceAll(result, "["+b.Name+"]", b.Value)
	}
	return result
}

// FindUnreplaced returns the sorted names whose bare marker ({{name}} or
// [name]) still appears in text.
func FindUnreplaced(text string) []string {
	return BareNames(text)
}
