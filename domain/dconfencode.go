package domain

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/chrisskorka/sysconf/yamlvalue"
)

// EncodeDconf renders v as a dconf/gsettings GVariant-literal. Used
// wherever a value is nested inside a larger literal (sequence or mapping
// element): null -> "<@mb nothing>", bool -> "true"/"false", numbers ->
// their decimal form, strings -> double-quoted, sequences -> bracketed,
// mappings -> braced `"k": v` pairs.
func EncodeDconf(v yamlvalue.Value) string {
	return encodeDconf(v, true)
}

// EncodeDconfTopLevel renders v the way it is substituted directly into a
// `dconf write` / `gsettings set` command line: identical to EncodeDconf
// except a bare string is left unquoted, since the surrounding script
// template already supplies shell quoting (a plain
// string value "value" produces the command `gsettings set org.schema key
// 'value'`, not a doubly-quoted literal).
func EncodeDconfTopLevel(v yamlvalue.Value) string {
	return encodeDconf(v, false)
}

func encodeDconf(v yamlvalue.Value, quoteTopString bool) string {
	switch v.Kind() {
	case yamlvalue.KindNull:
		return "<@mb nothing>"
	case yamlvalue.KindBool:
		if v.Bool() {
			return "true"
		}
		return "false"
	case yamlvalue.KindInt:
		return strconv.FormatInt(v.Int(), 10)
	case yamlvalue.KindFloat:
		return strconv.FormatFloat(v.Float(), 'g', -1, 64)
	case yamlvalue.KindString:
		if quoteTopString {
			return strconv.Quote(v.Str())
		}
		return v.Str()
	case yamlvalue.KindSequence:
		items := make([]string, len(v.Sequence()))
		for i, item := range v.Sequence() {
			items[i] = encodeDconf(item, true)
		}
		return "[" + strings.Join(items, ", ") + "]"
	case yamlvalue.KindMapping:
		pairs := make([]string, len(v.Mapping()))
		for i, p := range v.Mapping() {
			pairs[i] = fmt.Sprintf("%q: %s", p.Key, encodeDconf(p.Value, true))
		}
		return "{ " + strings.Join(pairs, ", ") + " }"
	default:
		return ""
	}
}
