// Package domain implements the Domain abstraction (parse/
// render/diff-action), the built-in domain table, and user-declared
// domains — all realized as shell-template pipelines over scripttemplate.
package domain

import (
	"fmt"

	"github.com/chrisskorka/sysconf/flatten"
	"github.com/chrisskorka/sysconf/scripttemplate"
	"github.com/chrisskorka/sysconf/yamlvalue"
)

// Kind distinguishes the two entry shapes a Domain can produce.
type Kind int

const (
	// ListKind entries carry the value as part of their identity; the
	// same (domain, path) may appear more than once as long as the value
	// differs, and list entries can never reach the Update action.
	ListKind Kind = iota
	// MapKind entries carry the value outside identity; a changed value
	// at the same (domain, path) is an Update.
	MapKind
)

func (k Kind) String() string {
	if k == ListKind {
		return "list"
	}
	return "map"
}

// EntryId uniquely identifies an entry within a SystemConfig. For map
// entries it is (domain_key, path); for list entries the value is part of
// the identity too.
type EntryId struct {
	DomainKey string
	Path      string
	Value     string
	IsList    bool
}

// Entry is a single flattened configuration leaf, tagged with the domain
// it belongs to and that domain's kind (so EntryId and equality can be
// computed without a registry round-trip).
type Entry struct {
	DomainKey string
	Kind      Kind
	Path      flatten.Path
	Value     yamlvalue.Value
}

// ID computes this entry's identity tuple.
func (e Entry) ID() EntryId {
	id := EntryId{DomainKey: e.DomainKey, Path: e.Path.String()}
	if e.Kind == ListKind {
		id.IsList = true
		id.Value = e.Value.AsDisplayString()
	}
	return id
}

// Equal reports whether two entries have identical domain, path, and
// value. Used by diff_action to distinguish Update from NoOp.
func Equal(a, b Entry) bool {
	return a.DomainKey == b.DomainKey &&
		a.Kind == b.Kind &&
		a.Path.Equal(b.Path) &&
		yamlvalue.Equal(a.Value, b.Value)
}

// ActionKind tags the four outcomes diff_action can produce.
type ActionKind int

const (
	NoOp ActionKind = iota
	Add
	Update
	Remove
)

func (k ActionKind) String() string {
	switch k {
	case Add:
		return "add"
	case Update:
		return "update"
	case Remove:
		return "remove"
	default:
		return "noop"
	}
}

// Action is the result of comparing at most one old and one new entry for
// the same identity. Script is the fully interpolated command ready to
// hand to an Executor; it is empty for NoOp.
type Action struct {
	Kind   ActionKind
	Old    *Entry
	New    *Entry
	Script string
}

// Domain presents the three capabilities every domain needs: parsing a
// subtree into entries, rendering entries back into a subtree, and
// producing the Action for one (old?, new?) entry pair.
type Domain interface {
	Key() string
	Kind() Kind
	PathDepth() int
	Parse(subtree yamlvalue.Value) ([]Entry, error)
	Render(entries []Entry) (yamlvalue.Value, error)
	DiffAction(old, newEntry *Entry) (Action, error)
}

// Encoder renders a YamlValue as the text substituted for $value/
// $old_value/$new_value. Builtin list/map domains other than dconf/
// gsettings use yamlvalue.Value.AsDisplayString; dconf/gsettings use the
// dconf literal grammar (domain/dconfencode.go).
type Encoder func(yamlvalue.Value) string

func defaultEncode(v yamlvalue.Value) string { return v.AsDisplayString() }

// ScriptDomain is the single concrete Domain implementation: every builtin
// and every user-declared domain is one of these, differing only in key,
// kind, depth, scripts, and value encoder.
type ScriptDomain struct {
	key          string
	kind         Kind
	depth        int
	addScript    scripttemplate.Template
	updateScript scripttemplate.Template
	removeScript scripttemplate.Template
	encode       Encoder
}

// NewListDomain builds a builtin or user list-domain. It takes no update
// script: list entries can never reach the Update action.
func NewListDomain(key string, depth int, add, remove scripttemplate.Template) *ScriptDomain {
	return &ScriptDomain{key: key, kind: ListKind, depth: depth, addScript: add, removeScript: remove, encode: defaultEncode}
}

// NewMapDomain builds a builtin or user map-domain using the default
// (plain display string) value encoder.
func NewMapDomain(key string, depth int, add, update, remove scripttemplate.Template) *ScriptDomain {
	return &ScriptDomain{key: key, kind: MapKind, depth: depth, addScript: add, updateScript: update, removeScript: remove, encode: defaultEncode}
}

// NewMapDomainWithEncoder builds a map-domain using a custom value
// encoder, used by the dconf and gsettings builtins.
func NewMapDomainWithEncoder(key string, depth int, add, update, remove scripttemplate.Template, enc Encoder) *ScriptDomain {
	return &ScriptDomain{key: key, kind: MapKind, depth: depth, addScript: add, updateScript: update, removeScript: remove, encode: enc}
}

func (d *ScriptDomain) Key() string    { return d.key }
func (d *ScriptDomain) Kind() Kind     { return d.kind }
func (d *ScriptDomain) PathDepth() int { return d.depth }

// Parse turns subtree into entries. List domains require each leaf to be
// a sequence, one entry per element; map domains take each leaf directly.
func (d *ScriptDomain) Parse(subtree yamlvalue.Value) ([]Entry, error) {
	leaves, err := flatten.Flatten(subtree, d.depth)
	if err != nil {
		return nil, fmt.Errorf("domain %q: %w", d.key, err)
	}

	var entries []Entry
	for _, leaf := range leaves {
		if d.kind == ListKind {
			if leaf.Leaf.Kind() != yamlvalue.KindSequence {
				return nil, fmt.Errorf("domain %q: expected a list at %s, found %s", d.key, leaf.Path.String(), leaf.Leaf.Kind())
			}
			for _, elem := range leaf.Leaf.Sequence() {
				entries = append(entries, Entry{DomainKey: d.key, Kind: ListKind, Path: leaf.Path.Clone(), Value: elem})
			}
			continue
		}
		entries = append(entries, Entry{DomainKey: d.key, Kind: MapKind, Path: leaf.Path.Clone(), Value: leaf.Leaf})
	}
	return entries, nil
}

// Render groups entries by path (in first-seen order) and rebuilds the
// subtree: a sequence per path for list domains, the payload directly for
// map domains.
func (d *ScriptDomain) Render(entries []Entry) (yamlvalue.Value, error) {
	if d.kind == MapKind {
		assignments := make([]flatten.Entry, len(entries))
		for i, e := range entries {
			assignments[i] = flatten.Entry{Path: e.Path, Leaf: e.Value}
		}
		return flatten.Build(assignments)
	}

	var order []string
	grouped := map[string][]yamlvalue.Value{}
	paths := map[string]flatten.Path{}
	for _, e := range entries {
		key := e.Path.String()
		if _, ok := grouped[key]; !ok {
			order = append(order, key)
			paths[key] = e.Path
		}
		grouped[key] = append(grouped[key], e.Value)
	}

	assignments := make([]flatten.Entry, 0, len(order))
	for _, key := range order {
		assignments = append(assignments, flatten.Entry{
			Path: paths[key],
			Leaf: yamlvalue.Sequence(grouped[key]...),
		})
	}
	return flatten.Build(assignments)
}

// DiffAction dispatches on the four (old?, new?) combinations.
func (d *ScriptDomain) DiffAction(old, newEntry *Entry) (Action, error) {
	switch {
	case old == nil && newEntry == nil:
		return Action{}, fmt.Errorf("domain %q: diff_action requires at least one of old, new", d.key)

	case old == nil:
		return Action{Kind: Add, New: newEntry, Script: d.renderScript(d.addScript, newEntry.Path, nil, newEntry)}, nil

	case newEntry == nil:
		return Action{Kind: Remove, Old: old, Script: d.renderScript(d.removeScript, old.Path, old, nil)}, nil

	case yamlvalue.Equal(old.Value, newEntry.Value):
		return Action{Kind: NoOp, Old: old, New: newEntry}, nil

	default:
		if d.kind == ListKind {
			return Action{}, fmt.Errorf("domain %q: list domain cannot reach Update (value is part of identity)", d.key)
		}
		return Action{Kind: Update, Old: old, New: newEntry, Script: d.renderScript(d.updateScript, newEntry.Path, old, newEntry)}, nil
	}
}

func (d *ScriptDomain) renderScript(tmpl scripttemplate.Template, path flatten.Path, old, newEntry *Entry) string {
	vars := scripttemplate.Vars{Path: []string(path)}
	if old != nil {
		ov := d.encode(old.Value)
		vars.OldValue = &ov
		if newEntry == nil {
			vars.Value = &ov
		}
	}
	if newEntry != nil {
		nv := d.encode(newEntry.Value)
		vars.NewValue = &nv
		vars.Value = &nv
	}
	return tmpl.Render(vars)
}
