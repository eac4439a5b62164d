// Package yamlvalue implements the recursive value sum type used
// throughout sysconf: null, bool, integer, float, string, sequence, and
// ordered mapping. The tree is the long-lived representation, not a
// decoding intermediate: domain payloads, builtin dconf/gsettings
// values, and the document's config tasks are all Values.
package yamlvalue

import "fmt"

// Kind identifies which alternative of the YamlValue sum a Value holds.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindSequence
	KindMapping
)

// String returns a human-readable name for the kind, used in error messages.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "integer"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	default:
		return "unknown"
	}
}

// Pair is a single key/value entry of an ordered Mapping. Order is
// significant: document.Parse depends on mapping iteration order to
// establish entry order.
type Pair struct {
	Key   string
	Value Value
}

// Value is an immutable node of the YamlValue tree. The zero Value is Null.
type Value struct {
	kind    Kind
	boolV   bool
	intV    int64
	floatV  float64
	strV    string
	seqV    []Value
	mapping []Pair
}

// Null returns the null Value.
func Null() Value { return Value{kind: KindNull} }

// Bool returns a bool-kinded Value.
func Bool(b bool) Value { return Value{kind: KindBool, boolV: b} }

// Int returns an integer-kinded Value.
func Int(i int64) Value { return Value{kind: KindInt, intV: i} }

// Float returns a float-kinded Value.
func Float(f float64) Value { return Value{kind: KindFloat, floatV: f} }

// String returns a string-kinded Value.
func String(s string) Value { return Value{kind: KindString, strV: s} }

// Sequence returns a sequence-kinded Value. The slice is copied.
func Sequence(items ...Value) Value {
	cp := make([]Value, len(items))
	copy(cp, items)
	return Value{kind: KindSequence, seqV: cp}
}

// Mapping returns a mapping-kinded Value preserving the given pair order.
// Duplicate keys are a caller error; the first occurrence wins for Get.
func Mapping(pairs ...Pair) Value {
	cp := make([]Pair, len(pairs))
	copy(cp, pairs)
	return Value{kind: KindMapping, mapping: cp}
}

// Kind reports which alternative this Value holds.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is the null alternative.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Bool returns the bool payload; the zero value if v is not KindBool.
func (v Value) Bool() bool { return v.boolV }

// Int returns the integer payload; the zero value if v is not KindInt.
func (v Value) Int() int64 { return v.intV }

// Float returns the float payload; the zero value if v is not KindFloat.
func (v Value) Float() float64 { return v.floatV }

// Str returns the string payload; the zero value if v is not KindString.
func (v Value) Str() string { return v.strV }

// Sequence returns the sequence payload, or nil if v is not KindSequence.
func (v Value) Sequence() []Value { return v.seqV }

// Mapping returns the ordered mapping payload, or nil if v is not KindMapping.
func (v Value) Mapping() []Pair { return v.mapping }

// Get looks up key in a mapping Value, preserving first-match semantics.
func (v Value) Get(key string) (Value, bool) {
	for _, p := range v.mapping {
		if p.Key == key {
			return p.Value, true
		}
	}
	return Value{}, false
}

// AsDisplayString renders a scalar Value the way a shell command line
// would want to see it (used by the domain package's default encoder for
// $value/$old_value/$new_value substitution and for list-entry identity).
// Non-scalar values are formatted with fmt's %v verb; they do not get a
// dconf-literal encoding (see domain/dconfencode.go for the encoder used
// by the dconf/gsettings builtins).
func (v Value) AsDisplayString() string {
	switch v.kind {
	case KindNull:
		return ""
	case KindBool:
		if v.boolV {
			return "true"
		}
		return "false"
	case KindInt:
		return fmt.Sprintf("%d", v.intV)
	case KindFloat:
		return fmt.Sprintf("%g", v.floatV)
	case KindString:
		return v.strV
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Equal reports deep structural equality, preserving mapping key order
// as part of equality (two mappings with the same pairs in different
// order are NOT equal) since render-order stability depends on it.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNull:
		return true
	case KindBool:
		return a.boolV == b.boolV
	case KindInt:
		return a.intV == b.intV
	case KindFloat:
		return a.floatV == b.floatV
	case KindString:
		return a.strV == b.strV
	case KindSequence:
		if len(a.seqV) != len(b.seqV) {
			return false
		}
		for i := range a.seqV {
			if !Equal(a.seqV[i], b.seqV[i]) {
				return false
			}
		}
		return true
	case KindMapping:
		if len(a.mapping) != len(b.mapping) {
			return false
		}
		for i := range a.mapping {
			if a.mapping[i].Key != b.mapping[i].Key {
				return false
			}
			if !Equal(a.mapping[i].Value, b.mapping[i].Value) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
