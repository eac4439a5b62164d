// Package scripttemplate implements the shell script template
// interpolator: a pure left-to-right textual substitution of a fixed set
// of positional variables into a user-authored command template. The
// executor never sees template text — only the already-resolved string.
package scripttemplate

import (
	"fmt"
	"sort"
	"strings"
)

// Template wraps a raw script string awaiting interpolation.
type Template string

// Vars holds the resolved substitution values for one interpolation.
// Path supplies $key/$key1..$keyN; Value/OldValue/NewValue are optional —
// a nil pointer means that variable is not defined for this action kind
// and is left untouched if it appears in the template.
type Vars struct {
	Path     []string
	Value    *string
	OldValue *string
	NewValue *string
}

// Render performs the substitution and returns the resulting shell script.
// The template is scanned exactly once, left to right; at each "$" the
// longest matching variable name wins, so "$key10" is matched before
// "$key1" and "$key1" before "$key". Substituted output is never
// re-scanned: a value that itself contains "$key1" stays literal in the
// rendered script.
func (t Template) Render(v Vars) string {
	vars := buildVarMap(v)

	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	// Longest name first so "$key10" matches before "$key1".
	sort.Slice(names, func(i, j int) bool { return len(names[i]) > len(names[j]) })

	var out strings.Builder
	s := string(t)
	for i := 0; i < len(s); {
		if s[i] != '$' {
			out.WriteByte(s[i])
			i++
			continue
		}
		matched := false
		for _, name := range names {
			if strings.HasPrefix(s[i+1:], name) {
				out.WriteString(vars[name])
				i += 1 + len(name)
				matched = true
				break
			}
		}
		if !matched {
			out.WriteByte('$')
			i++
		}
	}
	return out.String()
}

func buildVarMap(v Vars) map[string]string {
	vars := map[string]string{}

	if len(v.Path) > 0 {
		vars["key1"] = v.Path[0]
		vars["key"] = v.Path[0]
		for i, seg := range v.Path {
			vars[fmt.Sprintf("key%d", i+1)] = seg
		}
	}
	if v.Value != nil {
		vars["value"] = *v.Value
	}
	if v.OldValue != nil {
		vars["old_value"] = *v.OldValue
	}
	if v.NewValue != nil {
		vars["new_value"] = *v.NewValue
	}
	return vars
}

