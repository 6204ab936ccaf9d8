// smsolve is the dataflow core of a pluggable static checker: an
// exploded-graph solver over a product of (IR node, abstract Shape),
// driven by a declarative, per-variable state machine compiled from a rule
// file (packages rules/rulectx), in the style of GCC's sm-checker family.
//
// Package layout:
//
//	ir/        — the IR-provider contract (Variable, Node, Edge, Supergraph)
//	state/     — Shape: the per-variable state store, aliasing-aware
//	rules/     — rule-file AST, Pattern/Match/Outcome contracts, built-ins
//	rulectx/   — compiled, validated rule context the solver drives
//	explode/   — the worklist fixpoint building the exploded graph
//	diag/      — witness-path narration of diagnostics found while solving
//	render/    — DOT visualisation of a completed exploded graph
//	irfixture/ — test-only ir.Supergraph builder
//
// See SPEC_FULL.md for the full specification and DESIGN.md for the
// grounding behind every package's design.
package smsolve
