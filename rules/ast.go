package rules

import "github.com/smlang/smsolve/ir"

// Decl is a named declaration from the rule file: a logical name ("ptr",
// "file", ...) bound to a predicate over IR variables, optionally marked as
// the sm's stateful declaration (spec.md §4.3, "decls", "stateful_decl").
type Decl struct {
	Name string

	// HasState marks the single declaration that carries the sm's tracked
	// state. At most one Decl in a StateMachine should set this.
	HasState bool

	// Matcher reports whether v satisfies this declaration. nil means
	// "matches anything" (rarely useful outside tests).
	Matcher func(v ir.Variable) bool
}

// Matches reports whether v satisfies this Decl.
func (d Decl) Matches(v ir.Variable) bool {
	if d.Matcher == nil {
		return true
	}
	return d.Matcher(v)
}

// NamedPattern binds a reusable Pattern to a name so StateClauses can refer
// to it without repeating its construction (spec.md §4.3, "named_patterns").
type NamedPattern struct {
	Name    string
	Pattern Pattern
}

// PatternRule pairs one Pattern with the Outcomes to apply when it matches
// in an eligible state.
type PatternRule struct {
	Pattern  Pattern
	Outcomes []Outcome
}

// StateClause groups a set of source states with the pattern rules that may
// fire while the stateful variable is in one of those states (spec.md §4.3,
// "state_clauses").
type StateClause struct {
	States []string
	Rules  []PatternRule
}

// Has reports whether state st is one of sc.States.
func (sc StateClause) Has(st string) bool {
	for _, s := range sc.States {
		if s == st {
			return true
		}
	}
	return false
}

// InitTable is a declarative initialisation fragment: a named lookup table
// seeded once when the rule file is compiled (spec.md §4.3, "Embedded
// initialisation scripts"; spec.md §9 chose option (a), declarative tables
// only, over an embedded scripting runtime).
type InitTable struct {
	Name    string
	Entries map[string]bool
}

// StateMachine is the parsed rule file: the declarative description a
// rule-file parser (out of scope) produces and rulectx.Compile consumes.
type StateMachine struct {
	Name string

	// States is the ordered list of declared state names; States[0] is the
	// default state (spec.md §3, "State").
	States []string

	Decls         []Decl
	NamedPatterns []NamedPattern
	StateClauses  []StateClause
	InitTables    []InitTable
}
