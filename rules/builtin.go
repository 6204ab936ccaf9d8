package rules

import "github.com/smlang/smsolve/ir"

// callMatch binds a call-site pattern's stateful variable: the l-value a
// tracked call assigns its result to.
type callMatch struct {
	callee string
	lval   ir.Variable
}

func (m callMatch) StatefulVar(env Env) ir.Variable { return m.lval }

func (m callMatch) Description(env Env) string {
	return "result of call to " + m.callee + " assigned to " + m.lval.String()
}

// CallPattern matches a call to a named function that assigns its result,
// binding the l-value as the stateful variable (spec.md §8, E1/E2/E3:
// `p = malloc(...)`). Decl, if non-empty, additionally requires the
// l-value to satisfy that Decl.
type CallPattern struct {
	Callee string
	Decl   string
}

func (p CallPattern) String() string { return "call(" + p.Callee + ")" }

func (p CallPattern) IterMatches(stmt ir.Statement, edge ir.Edge, env Env) []Match {
	name, _, lval, ok := stmt.Call()
	if !ok || name != p.Callee || lval == nil {
		return nil
	}
	if p.Decl != "" {
		d, ok := env.LookupDecl(p.Decl)
		if !ok || !d.Matches(lval) {
			return nil
		}
	}
	return []Match{callMatch{callee: p.Callee, lval: lval}}
}

func (p CallPattern) IterExpedgeMatches(view ExpEdgeView, env Env) []Match { return nil }

// derefMatch binds a dereference pattern's stateful variable: the pointer
// being dereferenced.
type derefMatch struct{ ptr ir.Variable }

func (m derefMatch) StatefulVar(env Env) ir.Variable { return m.ptr }

func (m derefMatch) Description(env Env) string {
	return "dereference of " + m.ptr.String()
}

// DerefPattern matches any statement dereferencing its stateful variable,
// binding the pointer as the match's stateful variable (spec.md §8, E1:
// use-after-free and dereference-of-freed detection).
type DerefPattern struct{}

func (DerefPattern) String() string { return "deref()" }

func (DerefPattern) IterMatches(stmt ir.Statement, edge ir.Edge, env Env) []Match {
	ptr, ok := stmt.Deref()
	if !ok {
		return nil
	}
	return []Match{derefMatch{ptr: ptr}}
}

func (DerefPattern) IterExpedgeMatches(view ExpEdgeView, env Env) []Match { return nil }

// freeCallMatch binds an ArgCallPattern's stateful variable: the argument
// passed to the call, e.g. p in `free(p)` (spec.md §8, E1/E2: double-free).
type freeCallMatch struct {
	callee string
	arg    ir.Variable
}

func (m freeCallMatch) StatefulVar(env Env) ir.Variable { return m.arg }

func (m freeCallMatch) Description(env Env) string {
	return "call to " + m.callee + " passing " + m.arg.String()
}

// ArgCallPattern matches a call to Callee whose argument at ArgIndex is
// bound as the stateful variable.
type ArgCallPattern struct {
	Callee   string
	ArgIndex int
}

func (p ArgCallPattern) String() string { return "call(" + p.Callee + ", arg)" }

func (p ArgCallPattern) IterMatches(stmt ir.Statement, edge ir.Edge, env Env) []Match {
	name, args, _, ok := stmt.Call()
	if !ok || name != p.Callee || p.ArgIndex >= len(args) || args[p.ArgIndex] == nil {
		return nil
	}
	return []Match{freeCallMatch{callee: p.Callee, arg: args[p.ArgIndex]}}
}

func (p ArgCallPattern) IterExpedgeMatches(view ExpEdgeView, env Env) []Match { return nil }

// branchMatch binds a non-null-branch pattern's stateful variable: the
// pointer being tested.
type branchMatch struct{ ptr ir.Variable }

func (m branchMatch) StatefulVar(env Env) ir.Variable { return m.ptr }

func (m branchMatch) Description(env Env) string {
	return "non-null branch on " + m.ptr.String()
}

// NonNullBranchPattern matches the taken arm of a `ptr != NULL` (or
// equivalent) conditional branch (spec.md §8, E6: branch-conditional
// transition). It only matches via IterExpedgeMatches, since the branch
// condition lives on the supergraph edge, not on a statement.
type NonNullBranchPattern struct{}

func (NonNullBranchPattern) String() string { return "branch(non-null)" }

func (NonNullBranchPattern) IterMatches(stmt ir.Statement, edge ir.Edge, env Env) []Match {
	return nil
}

func (NonNullBranchPattern) IterExpedgeMatches(view ExpEdgeView, env Env) []Match {
	ptr, isNonNil, ok := view.InnerEdge().BranchCond()
	if !ok || !isNonNil {
		return nil
	}
	return []Match{branchMatch{ptr: ptr}}
}
