// Package rules declares the AST a rule-file parser (out of scope for this
// engine, per spec.md §1) hands the engine: state declarations, named
// declarations with optional matcher predicates, named patterns, state
// clauses, and initialisation tables.
//
// It also declares the Pattern/Match/Outcome contracts the solver drives,
// and a small built-in library of patterns (call, dereference, non-null
// branch) covering the shapes needed by the use-after-free/double-free/leak
// family of checkers from spec.md §8 — standing in for the pattern
// sub-language a real rule-file compiler would generate.
//
// Outcome is a closed set of variants (spec.md §9, "Rule outcomes as closed
// variants"): TransitionOutcome, DiagnosticOutcome, ScriptOutcome. The
// solver (package explode) type-switches over these rather than calling a
// virtual Apply method, so that rules never needs to import explode.
package rules
