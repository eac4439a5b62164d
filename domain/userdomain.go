package domain

import (
	"fmt"

	"github.com/chrisskorka/sysconf/internal/equalutil"
)

// UserDomainSpec is the document-level declaration of one entry under
// `domains:`. Update is nil for list domains (the field is meaningless
// there) and required for map domains.
type UserDomainSpec struct {
	Type   Kind
	Depth  int
	Add    string
	Update *string
	Remove string
}

// NewUserDomain builds the ScriptDomain a UserDomainSpec describes, using
// the default (plain display string) value encoder — user domains have
// no dconf/gsettings-style literal encoding, only the builtins do.
func NewUserDomain(key string, spec UserDomainSpec) (*ScriptDomain, error) {
	if spec.Add == "" {
		return nil, fmt.Errorf("domain %q: add script is required", key)
	}
	if spec.Remove == "" {
		return nil, fmt.Errorf("domain %q: remove script is required", key)
	}
	if spec.Type == MapKind {
		if spec.Update == nil || *spec.Update == "" {
			return nil, fmt.Errorf("domain %q: map domain requires an update script", key)
		}
		return NewMapDomain(key, spec.Depth, tmpl(spec.Add), tmpl(*spec.Update), tmpl(spec.Remove)), nil
	}
	return NewListDomain(key, spec.Depth, tmpl(spec.Add), tmpl(spec.Remove)), nil
}

// SpecEqual reports whether two UserDomainSpecs describe the same domain
// in every field, used when deciding whether a carried-over old-state
// domain definition may be dropped in favor of the new document's.
func SpecEqual(a, b UserDomainSpec) bool {
	return a.Type == b.Type &&
		a.Depth == b.Depth &&
		a.Add == b.Add &&
		a.Remove == b.Remove &&
		equalutil.EqualPtr(a.Update, b.Update)
}
