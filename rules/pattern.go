package rules

import "github.com/smlang/smsolve/ir"

// Env is the slice of a compiled rule context a Pattern needs to evaluate
// matches. rulectx.Context implements Env; Pattern implementations never
// see more of the context than this.
type Env interface {
	// LookupDecl resolves a declaration name to its Decl.
	LookupDecl(name string) (Decl, bool)

	// LookupPattern resolves a named pattern.
	LookupPattern(name string) (Pattern, bool)

	// IsStatefulVar reports whether v is of a kind this sm tracks state
	// for at all (spec.md §4.3, "is_stateful_var").
	IsStatefulVar(v ir.Variable) bool

	// DefaultState is the sm's default state (States[0]).
	DefaultState() string

	// Lookup queries a declarative init table seeded at compile time
	// (spec.md §4.3, "Embedded initialisation scripts").
	Lookup(table, key string) bool
}

// ExpEdgeView is the read-only view of an exploded edge that edge-based
// patterns match against (spec.md §4.4, "Edge-based matching"): its inner
// edge and its source Shape. The solver passes a view whose destination
// node is not interned yet; explode.ExplodedEdge implements this too.
// rules never imports explode, so the dependency only runs one way.
type ExpEdgeView interface {
	InnerEdge() ir.Edge

	// SrcState returns the source exploded node's Shape state for v, or
	// defaultState if v is untracked there.
	SrcState(v ir.Variable, defaultState string) string
}

// Pattern is a rule's match predicate. A rule fires in a given state
// clause when Pattern yields at least one Match whose stateful variable is
// currently in one of the clause's states (spec.md §4.4, "Rule matching").
type Pattern interface {
	String() string

	// IterMatches finds matches of this pattern at stmt, reached via edge.
	// Most patterns only look at stmt; edge is available for patterns that
	// need the source/destination nodes (e.g. to read a call's arguments
	// directly rather than through the supergraph's dedicated call edges).
	IterMatches(stmt ir.Statement, edge ir.Edge, env Env) []Match

	// IterExpedgeMatches finds matches of this pattern against a view of
	// an exploded edge (spec.md §4.4, "Edge-based matching"), used
	// for transitions keyed on the inner edge itself rather than a
	// statement — e.g. a branch condition.
	IterExpedgeMatches(view ExpEdgeView, env Env) []Match
}

// Match binds a rule's stateful variable to a concrete ir.Variable for one
// firing, plus enough context to render a human-readable description in
// diagnostics (spec.md §3, "Match").
type Match interface {
	StatefulVar(env Env) ir.Variable
	Description(env Env) string
}
