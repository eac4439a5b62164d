package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/chrisskorka/sysconf"
	"github.com/chrisskorka/sysconf/document"
	"github.com/chrisskorka/sysconf/domain"
	"github.com/chrisskorka/sysconf/errorhandler"
	"github.com/chrisskorka/sysconf/ordereddiff"
	"github.com/chrisskorka/sysconf/sysconferrors"
	"github.com/chrisskorka/sysconf/sysexec"
)

// stepKind tags which transitioner projection a step belongs to, so Run's
// commit step can dispatch without a type switch on the step's payload.
type stepKind int

const (
	beforeStep stepKind = iota
	afterStep
	domainStep
)

// step is one entry of the action plan: at most one
// script to run (empty Script means nothing to run, but the step still
// commits) plus enough to call the matching ConfigTransitioner update.
type step struct {
	kind   stepKind
	script string

	oldScript *string
	newScript *string

	domainAction domain.Action
}

func (s step) hasScript() bool { return s.script != "" }

// Engine is the reconciliation engine: given old and new SystemConfigs
// it builds the action plan and drives it
// through an Executor and ErrorHandler, yielding the SystemConfig the host
// actually ends up in.
type Engine struct {
	old      *document.SystemConfig
	new_     *document.SystemConfig
	builtins *domain.Registry
	executor sysexec.Executor
	handler  errorhandler.ErrorHandler

	out    io.Writer
	logger sysconf.Logger
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithOut overrides where the engine prints user-facing progress text.
// Defaults to os.Stdout.
func WithOut(w io.Writer) Option {
	return func(e *Engine) { e.out = w }
}

// WithLogger attaches a structured logger for internal diagnostics.
// Defaults to sysconf.NopLogger.
func WithLogger(l sysconf.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// New builds an Engine over old and new SystemConfigs, resolving domains
// through builtins plus each config's own user-declared domains.
func New(old, new_ *document.SystemConfig, builtins *domain.Registry, executor sysexec.Executor, handler errorhandler.ErrorHandler, opts ...Option) *Engine {
	e := &Engine{
		old:      old,
		new_:     new_,
		builtins: builtins,
		executor: executor,
		handler:  handler,
		out:      os.Stdout,
		logger:   sysconf.NopLogger{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// plan builds the full ordered action sequence: before-script diff, then
// domain-entry actions (removals reversed, then adds/updates/noops in new
// order), then after-script diff.
func (e *Engine) plan() ([]step, ordereddiff.Diff[string], ordereddiff.Diff[string], error) {
	beforeDiff := ordereddiff.New(e.old.BeforeActions, e.new_.BeforeActions)
	afterDiff := ordereddiff.New(e.old.AfterActions, e.new_.AfterActions)

	oldResolver, err := buildResolver(e.old.UserDomains, e.builtins)
	if err != nil {
		return nil, beforeDiff, afterDiff, err
	}
	newResolver, err := buildResolver(e.new_.UserDomains, e.builtins)
	if err != nil {
		return nil, beforeDiff, afterDiff, err
	}

	oldByID := make(map[domain.EntryId]domain.Entry, len(e.old.Entries))
	oldIDOrder := make([]domain.EntryId, len(e.old.Entries))
	for i, entry := range e.old.Entries {
		id := entry.ID()
		oldByID[id] = entry
		oldIDOrder[i] = id
	}
	newIDOrder := make([]domain.EntryId, len(e.new_.Entries))
	for i, entry := range e.new_.Entries {
		newIDOrder[i] = entry.ID()
	}

	entryDiff := ordereddiff.New(oldIDOrder, newIDOrder)

	var steps []step
	for _, pair := range beforeDiff.PairStream {
		steps = append(steps, newShellStep(beforeStep, pair))
	}

	for i := len(entryDiff.ExclusiveOld) - 1; i >= 0; i-- {
		oldEntry := oldByID[entryDiff.ExclusiveOld[i]]
		d, ok := oldResolver[oldEntry.DomainKey]
		if !ok {
			return nil, beforeDiff, afterDiff, fmt.Errorf("engine: no domain registered for key %q", oldEntry.DomainKey)
		}
		action, err := d.DiffAction(&oldEntry, nil)
		if err != nil {
			return nil, beforeDiff, afterDiff, err
		}
		steps = append(steps, step{kind: domainStep, script: action.Script, domainAction: action})
	}

	for _, newEntry := range e.new_.Entries {
		id := newEntry.ID()
		d, ok := newResolver[newEntry.DomainKey]
		if !ok {
			return nil, beforeDiff, afterDiff, fmt.Errorf("engine: no domain registered for key %q", newEntry.DomainKey)
		}
		var oldPtr *domain.Entry
		if old, hasOld := oldByID[id]; hasOld {
			oldCopy := old
			oldPtr = &oldCopy
		}
		newCopy := newEntry
		action, err := d.DiffAction(oldPtr, &newCopy)
		if err != nil {
			return nil, beforeDiff, afterDiff, err
		}
		steps = append(steps, step{kind: domainStep, script: action.Script, domainAction: action})
	}

	for _, pair := range afterDiff.PairStream {
		steps = append(steps, newShellStep(afterStep, pair))
	}

	return steps, beforeDiff, afterDiff, nil
}

func newShellStep(kind stepKind, pair ordereddiff.Pair[string]) step {
	s := step{kind: kind}
	if pair.HasOld {
		old := pair.Old
		s.oldScript = &old
	}
	if pair.HasNew {
		new_ := pair.New
		s.newScript = &new_
		if !pair.HasOld {
			s.script = pair.New
		}
	}
	return s
}

func buildResolver(defs []document.UserDomainDef, builtins *domain.Registry) (map[string]domain.Domain, error) {
	resolved := map[string]domain.Domain{}
	for _, key := range builtins.Keys() {
		d, _ := builtins.Builtin(key)
		resolved[key] = d
	}
	for _, def := range defs {
		d, err := domain.NewUserDomain(def.Key, def.Spec)
		if err != nil {
			return nil, err
		}
		resolved[def.Key] = d
	}
	return resolved, nil
}

// Run executes the plan and returns the
// SystemConfig the host actually ends up in. A nil error means the loop
// completed or ended gracefully (user abort, interruption, or a generic
// step failure); only a TransitionerViolation (an internal bug) or a plan
// construction failure is returned as a Go error.
func (e *Engine) Run(ctx context.Context) (*document.SystemConfig, error) {
	steps, beforeDiff, afterDiff, err := e.plan()
	if err != nil {
		return nil, err
	}

	if !anyChange(steps, beforeDiff, afterDiff) {
		fmt.Fprintln(e.out, "# No changes required.")
		return e.new_, nil
	}

	e.logger.Info("running action plan", "steps", len(steps))
	ct := NewConfigTransitioner(e.old, e.new_.UserDomains, e.builtins)

	for _, s := range steps {
		if err := ctx.Err(); err != nil {
			fmt.Fprintln(e.out, "# Interrupted, persisting partial progress.")
			return ct.CurrentSystemConfig(), nil
		}

		if s.hasScript() {
			outcome, err := e.handler.TryRun(func() error {
				return e.executor.RunShell(ctx, s.script)
			})
			if err != nil {
				var violation *sysconferrors.TransitionerViolation
				if errors.As(err, &violation) {
					return nil, err
				}
				e.logger.Error("step aborted", "error", err)
				fmt.Fprintf(e.out, "# %v\n", err)
				return ct.CurrentSystemConfig(), nil
			}
			switch outcome {
			case errorhandler.Skipped:
				e.logger.Warn("step skipped", "script", s.script)
				continue
			case errorhandler.Failed:
				e.logger.Warn("step failed, ending run", "script", s.script)
				return ct.CurrentSystemConfig(), nil
			}
		}

		if err := e.commit(ct, s); err != nil {
			return nil, err
		}
	}

	return ct.CurrentSystemConfig(), nil
}

func (e *Engine) commit(ct *ConfigTransitioner, s step) error {
	switch s.kind {
	case beforeStep:
		return ct.UpdateBeforeAction(s.oldScript, s.newScript)
	case afterStep:
		return ct.UpdateAfterAction(s.oldScript, s.newScript)
	default:
		return ct.UpdateConfigEntry(s.domainAction.Old, s.domainAction.New)
	}
}

func anyChange(steps []step, beforeDiff, afterDiff ordereddiff.Diff[string]) bool {
	if len(beforeDiff.ExclusiveOld) > 0 || len(beforeDiff.ExclusiveNew) > 0 {
		return true
	}
	if len(afterDiff.ExclusiveOld) > 0 || len(afterDiff.ExclusiveNew) > 0 {
		return true
	}
	for _, s := range steps {
		if s.kind == domainStep && s.domainAction.Kind != domain.NoOp {
			return true
		}
	}
	return false
}
