package rules

import "github.com/smlang/smsolve/ir"

// Outcome is a closed set of effects a firing PatternRule may apply to the
// exploded edge it fired on (spec.md §9, "Rule outcomes as closed variants").
// The solver (package explode) type-switches over the three concrete
// variants below rather than calling a virtual Apply method; that keeps
// rules free of any dependency on explode's ExplodedEdge/ExplodedNode
// types, which is what lets explode and rulectx depend on rules without a
// cycle.
//
// outcome is unexported so the variant set is closed to this package: no
// caller outside rules can add a fourth kind.
type Outcome interface {
	outcome()

	// IterReachableStates returns the states this outcome can transition
	// into, used by rulectx.Compile to compute the reachable-state closure
	// (spec.md §4.3, "reachable_states"). Most outcomes return nil; only
	// TransitionOutcome contributes a state.
	IterReachableStates() []string

	// Describe renders the outcome for tracing/logging, using env to
	// resolve names where needed.
	Describe(env Env) string
}

// TransitionOutcome moves the match's stateful variable to ToState. If
// ToState is the empty string the rule is a "guard" that fires without
// changing state (spec.md §4.4, "Pattern rules").
type TransitionOutcome struct {
	ToState string
}

func (TransitionOutcome) outcome() {}

func (o TransitionOutcome) IterReachableStates() []string {
	if o.ToState == "" {
		return nil
	}
	return []string{o.ToState}
}

func (o TransitionOutcome) Describe(env Env) string {
	if o.ToState == "" {
		return "no-op transition"
	}
	return "transition to " + o.ToState
}

// DiagnosticOutcome reports an error at the firing site without changing
// state (spec.md §4.4, "Diagnostics"). Msg is a format template with one
// verb (e.g. "%s"); the solver substitutes the match's stateful variable's
// name for it.
type DiagnosticOutcome struct {
	Msg string
}

func (DiagnosticOutcome) outcome() {}

func (DiagnosticOutcome) IterReachableStates() []string { return nil }

func (o DiagnosticOutcome) Describe(env Env) string { return "diagnostic: " + o.Msg }

// ScriptOutcome records an arbitrary side effect into one of the sm's
// declarative init tables rather than the shared program state (spec.md
// §4.3, "Embedded initialisation scripts"; spec.md §9 decided against an
// embedded scripting runtime, so this only ever writes one boolean entry).
type ScriptOutcome struct {
	Table string
	Key   func(stateful ir.Variable) string
	Value bool
}

func (ScriptOutcome) outcome() {}

func (ScriptOutcome) IterReachableStates() []string { return nil }

func (o ScriptOutcome) Describe(env Env) string { return "script: set " + o.Table + "[...]" }
