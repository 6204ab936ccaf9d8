// Package rulectx compiles a rules.StateMachine into a Context: the
// validated, queryable form the solver (package explode) drives one
// exploded edge at a time.
//
// Compile validates the state machine before returning it — at least one
// state must be declared, every state named in a StateClause must be
// reachable (the default state or the target of some transition), at most
// one Decl may carry HasState, and every Decl a CallPattern names must
// exist — aggregating every failure found via
// github.com/hashicorp/go-multierror rather than stopping at the first one,
// in the style of this engine's ambient validation layer. Named patterns
// are stored as given; no reference to a named pattern is checked.
package rulectx
