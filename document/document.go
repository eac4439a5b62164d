// Package document implements the document parser and renderer:
// version-gated conversion between the structured configuration document
// and a SystemConfig aggregate.
package document

import (
	"fmt"

	"github.com/chrisskorka/sysconf/domain"
	"github.com/chrisskorka/sysconf/sysconferrors"
	"github.com/chrisskorka/sysconf/yamlvalue"
)

// SupportedVersion is the only document version this parser table
// recognizes. Unknown versions are rejected.
const SupportedVersion = "1"

// UserDomainDef pairs a declared domain key with its specification, in
// the order it appeared under `domains:`.
type UserDomainDef struct {
	Key  string
	Spec domain.UserDomainSpec
}

// SystemConfig is the parsed form of one document: ordered before/
// after scripts, an ordered set of entries (insertion order significant),
// and the user-domains declared or carried over from a prior document.
type SystemConfig struct {
	BeforeActions []string
	AfterActions  []string
	Entries       []domain.Entry
	UserDomains   []UserDomainDef
}

// Equal reports whether two SystemConfigs are identical in every
// order-significant field.
func Equal(a, b *SystemConfig) bool {
	if a == nil || b == nil {
		return a == b
	}
	if !stringsEqual(a.BeforeActions, b.BeforeActions) || !stringsEqual(a.AfterActions, b.AfterActions) {
		return false
	}
	if len(a.Entries) != len(b.Entries) {
		return false
	}
	for i := range a.Entries {
		if !domain.Equal(a.Entries[i], b.Entries[i]) {
			return false
		}
	}
	if len(a.UserDomains) != len(b.UserDomains) {
		return false
	}
	for i := range a.UserDomains {
		if a.UserDomains[i].Key != b.UserDomains[i].Key {
			return false
		}
		if !domain.SpecEqual(a.UserDomains[i].Spec, b.UserDomains[i].Spec) {
			return false
		}
	}
	return true
}

func stringsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// resolver looks up a domain by key, checking user-declared domains before
// falling back to the builtin registry. There is never an overlap by
// construction: a document that redeclares a builtin key is rejected at
// parse time.
type resolver struct {
	builtins *domain.Registry
	user     map[string]*domain.ScriptDomain
}

func (r *resolver) lookup(key string) (domain.Domain, bool) {
	if d, ok := r.user[key]; ok {
		return d, true
	}
	if d, ok := r.builtins.Builtin(key); ok {
		return d, true
	}
	return nil, false
}

// Parse decodes data as YAML/JSON via yamlvalue and converts it to a
// SystemConfig, using builtins for domain lookup in addition to any
// `domains:` the document itself declares.
func Parse(data []byte, builtins *domain.Registry) (*SystemConfig, error) {
	tree, err := yamlvalue.Decode(data)
	if err != nil {
		return nil, &sysconferrors.ParseError{Message: "invalid document", Cause: err}
	}
	return ParseValue(tree, builtins)
}

// ParseValue converts an already-decoded YamlValue tree into a SystemConfig.
func ParseValue(tree yamlvalue.Value, builtins *domain.Registry) (*SystemConfig, error) {
	if tree.Kind() != yamlvalue.KindMapping {
		return nil, &sysconferrors.ParseError{Message: "document must be a mapping"}
	}

	allowed := map[string]bool{"version": true, "domains": true, "before": true, "after": true, "config": true}
	for _, p := range tree.Mapping() {
		if !allowed[p.Key] {
			return nil, &sysconferrors.ParseError{Message: fmt.Sprintf("unknown top-level key %q", p.Key)}
		}
	}

	version, ok := tree.Get("version")
	if !ok || version.Kind() != yamlvalue.KindString {
		return nil, &sysconferrors.ParseError{Message: "missing or invalid \"version\" field"}
	}
	if version.Str() != SupportedVersion {
		return nil, &sysconferrors.ParseError{Message: fmt.Sprintf("unsupported document version %q", version.Str())}
	}

	userDefs, userDomains, err := parseDomains(tree, builtins)
	if err != nil {
		return nil, err
	}

	before, err := parseScriptList(tree, "before")
	if err != nil {
		return nil, err
	}
	after, err := parseScriptList(tree, "after")
	if err != nil {
		return nil, err
	}
	if dup := firstDuplicate(before); dup != "" {
		return nil, &sysconferrors.ParseError{Message: fmt.Sprintf("duplicate before-script: %q", dup)}
	}
	if dup := firstDuplicate(after); dup != "" {
		return nil, &sysconferrors.ParseError{Message: fmt.Sprintf("duplicate after-script: %q", dup)}
	}

	res := &resolver{builtins: builtins, user: userDomains}
	entries, err := parseConfig(tree, res)
	if err != nil {
		return nil, err
	}

	return &SystemConfig{
		BeforeActions: before,
		AfterActions:  after,
		Entries:       entries,
		UserDomains:   userDefs,
	}, nil
}

func parseScriptList(tree yamlvalue.Value, key string) ([]string, error) {
	v, ok := tree.Get(key)
	if !ok || v.IsNull() {
		return nil, nil
	}
	if v.Kind() != yamlvalue.KindSequence {
		return nil, &sysconferrors.ParseError{Message: fmt.Sprintf("%q must be a list of strings", key)}
	}
	out := make([]string, 0, len(v.Sequence()))
	for _, item := range v.Sequence() {
		if item.Kind() != yamlvalue.KindString {
			return nil, &sysconferrors.ParseError{Message: fmt.Sprintf("%q entries must be strings", key)}
		}
		out = append(out, item.Str())
	}
	return out, nil
}

func firstDuplicate(items []string) string {
	seen := map[string]bool{}
	for _, s := range items {
		if seen[s] {
			return s
		}
		seen[s] = true
	}
	return ""
}

func parseDomains(tree yamlvalue.Value, builtins *domain.Registry) ([]UserDomainDef, map[string]*domain.ScriptDomain, error) {
	v, ok := tree.Get("domains")
	if !ok || v.IsNull() {
		return nil, map[string]*domain.ScriptDomain{}, nil
	}
	if v.Kind() != yamlvalue.KindMapping {
		return nil, nil, &sysconferrors.ParseError{Message: "\"domains\" must be a mapping"}
	}

	var defs []UserDomainDef
	built := map[string]*domain.ScriptDomain{}
	for _, pair := range v.Mapping() {
		key := pair.Key
		if builtins.IsBuiltin(key) {
			return nil, nil, &sysconferrors.ParseError{Message: fmt.Sprintf("domain %q shadows a builtin", key)}
		}
		spec, err := parseDomainSpec(key, pair.Value)
		if err != nil {
			return nil, nil, err
		}
		d, err := domain.NewUserDomain(key, spec)
		if err != nil {
			return nil, nil, &sysconferrors.ParseError{Message: err.Error()}
		}
		defs = append(defs, UserDomainDef{Key: key, Spec: spec})
		built[key] = d
	}
	return defs, built, nil
}

func parseDomainSpec(key string, v yamlvalue.Value) (domain.UserDomainSpec, error) {
	if v.Kind() != yamlvalue.KindMapping {
		return domain.UserDomainSpec{}, &sysconferrors.ParseError{Message: fmt.Sprintf("domain %q spec must be a mapping", key)}
	}

	typeVal, ok := v.Get("type")
	if !ok || typeVal.Kind() != yamlvalue.KindString {
		return domain.UserDomainSpec{}, &sysconferrors.ParseError{Message: fmt.Sprintf("domain %q: \"type\" must be \"list\" or \"map\"", key)}
	}

	var kind domain.Kind
	defaultDepth := 0
	switch typeVal.Str() {
	case "list":
		kind = domain.ListKind
		defaultDepth = 0
	case "map":
		kind = domain.MapKind
		defaultDepth = 1
	default:
		return domain.UserDomainSpec{}, &sysconferrors.ParseError{Message: fmt.Sprintf("domain %q: unknown type %q", key, typeVal.Str())}
	}

	depth := defaultDepth
	if d, ok := v.Get("depth"); ok && !d.IsNull() {
		if d.Kind() != yamlvalue.KindInt {
			return domain.UserDomainSpec{}, &sysconferrors.ParseError{Message: fmt.Sprintf("domain %q: \"depth\" must be an integer", key)}
		}
		depth = int(d.Int())
	}

	add, err := requireString(v, key, "add")
	if err != nil {
		return domain.UserDomainSpec{}, err
	}
	remove, err := requireString(v, key, "remove")
	if err != nil {
		return domain.UserDomainSpec{}, err
	}

	spec := domain.UserDomainSpec{Type: kind, Depth: depth, Add: add, Remove: remove}
	if kind == domain.MapKind {
		update, err := requireString(v, key, "update")
		if err != nil {
			return domain.UserDomainSpec{}, err
		}
		spec.Update = &update
	}
	return spec, nil
}

func requireString(v yamlvalue.Value, domainKey, field string) (string, error) {
	f, ok := v.Get(field)
	if !ok || f.Kind() != yamlvalue.KindString || f.Str() == "" {
		return "", &sysconferrors.ParseError{Message: fmt.Sprintf("domain %q: %q is required", domainKey, field)}
	}
	return f.Str(), nil
}

func parseConfig(tree yamlvalue.Value, res *resolver) ([]domain.Entry, error) {
	v, ok := tree.Get("config")
	if !ok || v.IsNull() {
		return nil, nil
	}
	if v.Kind() != yamlvalue.KindSequence {
		return nil, &sysconferrors.ParseError{Message: "\"config\" must be a list of tasks"}
	}

	var entries []domain.Entry
	seen := map[domain.EntryId]bool{}
	for _, task := range v.Sequence() {
		if task.Kind() != yamlvalue.KindMapping {
			return nil, &sysconferrors.ParseError{Message: "each config task must be a mapping"}
		}
		for _, pair := range task.Mapping() {
			d, ok := res.lookup(pair.Key)
			if !ok {
				return nil, &sysconferrors.ParseError{Message: fmt.Sprintf("unknown domain key %q", pair.Key)}
			}
			parsed, err := d.Parse(pair.Value)
			if err != nil {
				return nil, &sysconferrors.ParseError{Message: err.Error()}
			}
			for _, e := range parsed {
				id := e.ID()
				if seen[id] {
					return nil, &sysconferrors.ParseError{Message: fmt.Sprintf("duplicate entry for domain %q at path %q", e.DomainKey, e.Path.String())}
				}
				seen[id] = true
				entries = append(entries, e)
			}
		}
	}
	return entries, nil
}

// Render converts cfg back to its serialized document form. Domain
// specifications not referenced by any surviving entry are suppressed.
func Render(cfg *SystemConfig, builtins *domain.Registry) ([]byte, error) {
	tree, err := RenderValue(cfg, builtins)
	if err != nil {
		return nil, err
	}
	return yamlvalue.Encode(tree)
}

// RenderValue is Render without the final YAML encoding step.
func RenderValue(cfg *SystemConfig, builtins *domain.Registry) (yamlvalue.Value, error) {
	res := &resolver{builtins: builtins, user: map[string]*domain.ScriptDomain{}}
	for _, def := range cfg.UserDomains {
		d, err := domain.NewUserDomain(def.Key, def.Spec)
		if err != nil {
			return yamlvalue.Value{}, err
		}
		res.user[def.Key] = d
	}

	configSeq, usedKeys, err := renderConfig(cfg.Entries, res)
	if err != nil {
		return yamlvalue.Value{}, err
	}

	pairs := []yamlvalue.Pair{
		{Key: "version", Value: yamlvalue.String(SupportedVersion)},
	}
	pairs = append(pairs, yamlvalue.Pair{Key: "before", Value: stringSeq(cfg.BeforeActions)})
	pairs = append(pairs, yamlvalue.Pair{Key: "after", Value: stringSeq(cfg.AfterActions)})
	pairs = append(pairs, yamlvalue.Pair{Key: "config", Value: yamlvalue.Sequence(configSeq...)})

	var domainPairs []yamlvalue.Pair
	for _, def := range cfg.UserDomains {
		if usedKeys[def.Key] {
			domainPairs = append(domainPairs, yamlvalue.Pair{Key: def.Key, Value: renderDomainSpec(def.Spec)})
		}
	}
	pairs = append(pairs, yamlvalue.Pair{Key: "domains", Value: yamlvalue.Mapping(domainPairs...)})

	return yamlvalue.Mapping(pairs...), nil
}

func stringSeq(items []string) yamlvalue.Value {
	vals := make([]yamlvalue.Value, len(items))
	for i, s := range items {
		vals[i] = yamlvalue.String(s)
	}
	return yamlvalue.Sequence(vals...)
}

func renderConfig(entries []domain.Entry, res *resolver) ([]yamlvalue.Value, map[string]bool, error) {
	used := map[string]bool{}
	var tasks []yamlvalue.Value

	i := 0
	for i < len(entries) {
		key := entries[i].DomainKey
		used[key] = true
		j := i
		var run []domain.Entry
		for j < len(entries) && entries[j].DomainKey == key {
			run = append(run, entries[j])
			j++
		}
		d, ok := res.lookup(key)
		if !ok {
			return nil, nil, &sysconferrors.ParseError{Message: fmt.Sprintf("unknown domain key %q while rendering", key)}
		}
		subtree, err := d.Render(run)
		if err != nil {
			return nil, nil, err
		}
		tasks = append(tasks, yamlvalue.Mapping(yamlvalue.Pair{Key: key, Value: subtree}))
		i = j
	}
	return tasks, used, nil
}

func renderDomainSpec(spec domain.UserDomainSpec) yamlvalue.Value {
	typeName := "list"
	if spec.Type == domain.MapKind {
		typeName = "map"
	}
	pairs := []yamlvalue.Pair{
		{Key: "type", Value: yamlvalue.String(typeName)},
		{Key: "depth", Value: yamlvalue.Int(int64(spec.Depth))},
		{Key: "add", Value: yamlvalue.String(spec.Add)},
	}
	if spec.Update != nil {
		pairs = append(pairs, yamlvalue.Pair{Key: "update", Value: yamlvalue.String(*spec.Update)})
	}
	pairs = append(pairs, yamlvalue.Pair{Key: "remove", Value: yamlvalue.String(spec.Remove)})
	return yamlvalue.Mapping(pairs...)
}
