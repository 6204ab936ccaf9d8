package ir

// Variable is a handle to an IR variable declaration: a local, a parameter,
// or an SSA name. Implementations must make Variable comparable with ==,
// since it is used as a map key throughout `state` and `explode`.
//
// Canonical returns the underlying declaration for an SSA name, or the
// receiver itself for a variable that is already a declaration. The engine
// canonicalises every Variable before it touches a Shape, so that SSA copies
// of the same declaration share one state cell (spec.md §3, "Variable").
type Variable interface {
	// String returns a stable, human-readable name used in diagnostics and
	// in the deterministic ordering required by Shape.IterAliases.
	String() string

	// Canonical returns the underlying declaration this Variable names.
	Canonical() Variable

	// IsPointer reports whether this variable's static type is a pointer.
	// Used by the default is_stateful_var predicate (spec.md §4.3).
	IsPointer() bool
}

// Location is a source position: file, line, column. The zero value is not
// a valid location; providers return nil where no location is available
// (e.g. synthetic nodes), and the engine falls back to the enclosing
// function's end location (spec.md §3, "Error").
type Location interface {
	File() string
	Line() int
	Column() int
}

// Less reports whether a is strictly before b in (file, line, column) order.
// A nil Location sorts after any non-nil Location.
func Less(a, b Location) bool {
	if a == nil {
		return false
	}
	if b == nil {
		return true
	}
	if a.File() != b.File() {
		return a.File() < b.File()
	}
	if a.Line() != b.Line() {
		return a.Line() < b.Line()
	}
	return a.Column() < b.Column()
}

// Func is a function declaration: its locals/parameters (for purge_locals)
// and its end location (the fallback for errors with no better location).
type Func interface {
	Name() string
	Locals() []Variable
	Params() []Variable
	EndLoc() Location
}

// StatementKind classifies a Statement for the transfer function table in
// spec.md §4.4.
type StatementKind int

const (
	// StmtOther is any statement the transfer table does not special-case;
	// it is routed through rule matching, falling through to the neutral
	// transfer if no rule fires.
	StmtOther StatementKind = iota
	// StmtAssignCopy is `x = y`, a direct variable-to-variable copy.
	StmtAssignCopy
	// StmtAssignField is `x = obj.field`, a field access.
	StmtAssignField
	// StmtPhi is an SSA phi node with a single predecessor in view.
	StmtPhi
)

// Statement is one IR instruction. LValue is only meaningful for
// StmtAssignCopy, StmtAssignField and StmtPhi, RValue only for
// StmtAssignCopy and StmtAssignField; callers must check Kind first.
type Statement interface {
	Kind() StatementKind

	// LValue returns the assigned variable for StmtAssignCopy/
	// StmtAssignField/StmtPhi.
	LValue() Variable

	// RValue returns the right-hand variable for StmtAssignCopy, or the
	// container variable (`obj` in `obj.field`) for StmtAssignField.
	RValue() Variable

	// PhiInput returns the single predecessor value for StmtPhi (may be a
	// constant, in which case IsStatefulVar on it is false).
	PhiInput() Variable

	Loc() Location

	// Call reports whether this statement is a call expression, and if so
	// the callee's name, its positional arguments, and the l-value it
	// assigns its result to (nil if discarded). Used by pattern matching
	// for call-site patterns (e.g. "p = malloc(...)"); independent of
	// Kind, since a call can itself be a StmtAssignCopy-shaped statement.
	Call() (name string, args []Variable, lvalue Variable, ok bool)

	// Deref reports whether this statement dereferences ptr (e.g. `*p`,
	// `p->field`, `p[i]`). Used by dereference patterns (spec.md §8, E1).
	Deref() (ptr Variable, ok bool)
}

// EdgeKind classifies a supergraph edge (spec.md §6).
type EdgeKind int

const (
	// EdgeIntraprocedural is an ordinary intraprocedural control-flow edge.
	EdgeIntraprocedural EdgeKind = iota
	// EdgeCallToReturnSite is the intraprocedural shortcut around a call;
	// the interprocedural path (EdgeCallToCalleeEntry + EdgeExitToReturnSite)
	// carries the real propagation, so this edge is always skipped.
	EdgeCallToReturnSite
	// EdgeCallToCalleeEntry connects a call site to the callee's entry node.
	EdgeCallToCalleeEntry
	// EdgeExitToReturnSite connects a callee's exit node back to the
	// caller's return site.
	EdgeExitToReturnSite
)

// Edge is one outgoing supergraph edge from a Node.
type Edge interface {
	Kind() EdgeKind
	Src() Node
	Dst() Node

	// CallArgs/CalleeParams are defined for EdgeCallToCalleeEntry: the
	// caller's argument expressions and the callee's formal parameters,
	// paired positionally.
	CallArgs() []Variable
	CalleeParams() []Variable

	// CallLValue/CalleeReturn are defined for EdgeExitToReturnSite: the
	// l-value the call site assigns to (nil if the call's result is
	// discarded), and the callee's returned variable (nil for a bare
	// `return;`).
	CallLValue() Variable
	CalleeReturn() Variable

	// CalleeFunc is the function being purged on EdgeExitToReturnSite.
	CalleeFunc() Func

	// BranchCond reports whether this edge is one arm of a conditional
	// branch testing ptr against NULL, and if so whether this arm is the
	// one taken when ptr is non-nil (spec.md §8, E6). ok is false for any
	// edge that is not a null-check branch.
	BranchCond() (ptr Variable, isNonNilBranch bool, ok bool)
}

// Node is one supergraph node: a basic block or statement-granular program
// point, depending on what the IR provider chooses to expose.
type Node interface {
	// ID uniquely and stably identifies this Node within its Supergraph.
	ID() string
	Stmt() Statement
	Succs() []Edge
	Func() Func
	Loc() Location
}

// Supergraph is the interprocedural control-flow graph the engine walks.
type Supergraph interface {
	EntryNodes() []Node
}
