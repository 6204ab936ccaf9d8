package rulectx

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"

	"github.com/smlang/smsolve/ir"
	"github.com/smlang/smsolve/rules"
)

// Sentinel errors returned by Compile. Compile aggregates every validation
// failure it finds via go-multierror rather than stopping at the first, so
// a caller checking with errors.Is may see any of these wrapped inside a
// *multierror.Error.
var (
	// ErrNoStates is returned when a StateMachine declares no states.
	ErrNoStates = errors.New("rulectx: state machine declares no states")

	// ErrMultipleStatefulDecls is returned when more than one Decl sets
	// HasState.
	ErrMultipleStatefulDecls = errors.New("rulectx: more than one decl marked stateful")

	// ErrUnreachableState is returned when a StateClause names a state
	// outside the computed reachable-state closure (spec.md §4.3).
	ErrUnreachableState = errors.New("rulectx: state clause names an unreachable state")

	// ErrUnknownDecl is returned when a CallPattern in a StateClause names a
	// Decl that is not present in the StateMachine's Decls.
	ErrUnknownDecl = errors.New("rulectx: unknown declaration")
)

// Context is a compiled rules.StateMachine: the validated, queryable form
// the solver (package explode) drives one exploded edge at a time. It
// implements rules.Env.
type Context struct {
	Name string

	// StateNames is the ordered list of declared states; StateNames[0] is
	// the default state.
	StateNames []string

	// Decls maps declaration name to Decl.
	Decls map[string]rules.Decl

	// StatefulDecl is the single declaration carrying tracked state, if
	// any was marked HasState.
	StatefulDecl *rules.Decl

	NamedPatterns map[string]rules.Pattern
	StateClauses  []rules.StateClause

	// ReachableStates is the closure over the default state plus every
	// state named in any rule outcome (spec.md §4.3).
	ReachableStates map[string]bool

	logger hclog.Logger
	tables map[string]map[string]bool
}

// DefaultState returns StateNames[0].
func (c *Context) DefaultState() string {
	if len(c.StateNames) == 0 {
		return ""
	}
	return c.StateNames[0]
}

// IsStatefulVar reports whether v is of a kind this context tracks state
// for: the default predicate is pointer-typed SSA names (spec.md §4.3),
// refined by StatefulDecl's matcher when one is declared.
func (c *Context) IsStatefulVar(v ir.Variable) bool {
	if v == nil {
		return false
	}
	if !v.IsPointer() {
		return false
	}
	if c.StatefulDecl != nil {
		return c.StatefulDecl.Matches(v)
	}
	return true
}

// LookupDecl implements rules.Env.
func (c *Context) LookupDecl(name string) (rules.Decl, bool) {
	d, ok := c.Decls[name]
	return d, ok
}

// LookupPattern implements rules.Env.
func (c *Context) LookupPattern(name string) (rules.Pattern, bool) {
	p, ok := c.NamedPatterns[name]
	return p, ok
}

// Lookup queries a declarative init table seeded at Compile time (spec.md
// §4.3, "Embedded initialisation scripts"; spec.md §9 chose a declarative
// subset over an embedded scripting runtime).
func (c *Context) Lookup(table, key string) bool {
	return c.tables[table][key]
}

// Logger returns the context's structured logger, never nil.
func (c *Context) Logger() hclog.Logger { return c.logger }

// Set writes a scratch-table entry at runtime, used by rules.ScriptOutcome
// (spec.md §4.3, "Embedded initialisation scripts"; writes here happen
// during solving, not only at Compile time, so a rule can record facts as
// it observes them).
func (c *Context) Set(table, key string, value bool) {
	tbl, ok := c.tables[table]
	if !ok {
		tbl = make(map[string]bool)
		c.tables[table] = tbl
	}
	tbl[key] = value
}

// Compile validates sm and builds a Context from it, aggregating every
// validation failure found via github.com/hashicorp/go-multierror instead
// of stopping at the first (spec.md §4.3 is the authority on what must
// hold; this is an [EXPANSION] of how failures are reported).
func Compile(sm rules.StateMachine, opts ...Option) (*Context, error) {
	cfg := defaultConfig()
	for _, o := range opts {
		o(cfg)
	}

	var errs *multierror.Error

	if len(sm.States) == 0 {
		errs = multierror.Append(errs, ErrNoStates)
	}

	ctx := &Context{
		Name:          sm.Name,
		StateNames:    append([]string(nil), sm.States...),
		Decls:         make(map[string]rules.Decl, len(sm.Decls)),
		NamedPatterns: make(map[string]rules.Pattern, len(sm.NamedPatterns)),
		StateClauses:  sm.StateClauses,
		logger:        cfg.logger,
		tables:        make(map[string]map[string]bool, len(sm.InitTables)),
	}

	for _, d := range sm.Decls {
		ctx.Decls[d.Name] = d
		if d.HasState {
			if ctx.StatefulDecl != nil {
				errs = multierror.Append(errs, fmt.Errorf("%w: %q and %q", ErrMultipleStatefulDecls, ctx.StatefulDecl.Name, d.Name))
				continue
			}
			dCopy := d
			ctx.StatefulDecl = &dCopy
		}
	}

	for _, np := range sm.NamedPatterns {
		ctx.NamedPatterns[np.Name] = np.Pattern
	}

	for _, t := range sm.InitTables {
		tbl := make(map[string]bool, len(t.Entries))
		for k, v := range t.Entries {
			tbl[k] = v
		}
		ctx.tables[t.Name] = tbl
	}

	ctx.ReachableStates = computeReachableStates(ctx.DefaultState(), sm.StateClauses)

	for _, sc := range sm.StateClauses {
		for _, st := range sc.States {
			if !ctx.ReachableStates[st] {
				errs = multierror.Append(errs, fmt.Errorf("%w: %q", ErrUnreachableState, st))
			}
		}
		for _, rule := range sc.Rules {
			if cp, ok := rule.Pattern.(rules.CallPattern); ok && cp.Decl != "" {
				if _, known := ctx.Decls[cp.Decl]; !known {
					errs = multierror.Append(errs, fmt.Errorf("%w: %q", ErrUnknownDecl, cp.Decl))
				}
			}
		}
	}

	ctx.logger.Debug("compiled state machine", "name", sm.Name, "states", len(sm.States), "clauses", len(sm.StateClauses))

	if errs.ErrorOrNil() != nil {
		return nil, errs
	}
	return ctx, nil
}

// computeReachableStates closes over the default state plus every state
// named in any TransitionOutcome across every clause (spec.md §4.3,
// "reachable_states").
func computeReachableStates(defaultState string, clauses []rules.StateClause) map[string]bool {
	reachable := map[string]bool{defaultState: true}
	for _, sc := range clauses {
		for _, rule := range sc.Rules {
			for _, o := range rule.Outcomes {
				for _, st := range o.IterReachableStates() {
					reachable[st] = true
				}
			}
		}
	}
	return reachable
}
