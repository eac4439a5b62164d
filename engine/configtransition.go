// Package engine implements the reconciliation engine and the config
// transitioner it drives, composing ordereddiff, transition, domain,
// sysexec, and errorhandler into a single apply/preview run.
package engine

import (
	"github.com/chrisskorka/sysconf/document"
	"github.com/chrisskorka/sysconf/domain"
	"github.com/chrisskorka/sysconf/sysconferrors"
	"github.com/chrisskorka/sysconf/transition"
)

// ConfigTransitioner composes three Sequence Transitioners (before-scripts,
// domain entries, after-scripts) plus the old and new user-domain
// declarations, so that CurrentSystemConfig can reconstruct the
// transitional SystemConfig after any prefix of the action plan has
// committed.
type ConfigTransitioner struct {
	before  *transition.Transitioner[string]
	after   *transition.Transitioner[string]
	entries *transition.Transitioner[domain.EntryId]

	entryByID map[domain.EntryId]domain.Entry

	oldUserDomains map[string]document.UserDomainDef
	newUserDomains map[string]document.UserDomainDef
	builtins       *domain.Registry
}

// NewConfigTransitioner seeds the three transitioners from old's before/
// after/entries, and records old's and new's user-domain declarations for
// use by CurrentSystemConfig.
func NewConfigTransitioner(old *document.SystemConfig, newDomains []document.UserDomainDef, builtins *domain.Registry) *ConfigTransitioner {
	ids := make([]domain.EntryId, len(old.Entries))
	entryByID := make(map[domain.EntryId]domain.Entry, len(old.Entries))
	for i, e := range old.Entries {
		id := e.ID()
		ids[i] = id
		entryByID[id] = e
	}

	oldDomains := make(map[string]document.UserDomainDef, len(old.UserDomains))
	for _, d := range old.UserDomains {
		oldDomains[d.Key] = d
	}
	newDomainsMap := make(map[string]document.UserDomainDef, len(newDomains))
	for _, d := range newDomains {
		newDomainsMap[d.Key] = d
	}

	return &ConfigTransitioner{
		before:         transition.New(old.BeforeActions),
		after:          transition.New(old.AfterActions),
		entries:        transition.New(ids),
		entryByID:      entryByID,
		oldUserDomains: oldDomains,
		newUserDomains: newDomainsMap,
		builtins:       builtins,
	}
}

// UpdateBeforeAction commits one before-script transition step.
func (ct *ConfigTransitioner) UpdateBeforeAction(old, new_ *string) error {
	if err := ct.before.Update(old, new_); err != nil {
		return &sysconferrors.TransitionerViolation{Message: "before action", Cause: err}
	}
	return nil
}

// UpdateAfterAction commits one after-script transition step.
func (ct *ConfigTransitioner) UpdateAfterAction(old, new_ *string) error {
	if err := ct.after.Update(old, new_); err != nil {
		return &sysconferrors.TransitionerViolation{Message: "after action", Cause: err}
	}
	return nil
}

// UpdateConfigEntry commits one domain-entry transition step. old and new
// are resolved to EntryIds for the underlying transitioner, and their full
// payloads are recorded so CurrentSystemConfig can reconstruct entries.
func (ct *ConfigTransitioner) UpdateConfigEntry(old, new_ *domain.Entry) error {
	var oldID, newID *domain.EntryId
	if old != nil {
		id := old.ID()
		oldID = &id
	}
	if new_ != nil {
		id := new_.ID()
		newID = &id
		ct.entryByID[id] = *new_
	}
	if err := ct.entries.Update(oldID, newID); err != nil {
		return &sysconferrors.TransitionerViolation{Message: "config entry", Cause: err}
	}
	return nil
}

// CurrentSystemConfig reconstructs the transitional SystemConfig from the
// three sequence transitioners' current projections. A key's new-side
// user-domain definition wins if present; otherwise its old-side
// definition is carried over, but only if it isn't shadowed by a builtin.
func (ct *ConfigTransitioner) CurrentSystemConfig() *document.SystemConfig {
	ids := ct.entries.Current()
	entries := make([]domain.Entry, len(ids))
	for i, id := range ids {
		entries[i] = ct.entryByID[id]
	}

	var userDomains []document.UserDomainDef
	seen := map[string]bool{}
	for _, e := range entries {
		key := e.DomainKey
		if seen[key] {
			continue
		}
		seen[key] = true

		if d, ok := ct.newUserDomains[key]; ok {
			userDomains = append(userDomains, d)
			continue
		}
		if ct.builtins.IsBuiltin(key) {
			continue
		}
		if d, ok := ct.oldUserDomains[key]; ok {
			userDomains = append(userDomains, d)
		}
	}

	return &document.SystemConfig{
		BeforeActions: ct.before.Current(),
		AfterActions:  ct.after.Current(),
		Entries:       entries,
		UserDomains:   userDomains,
	}
}
