// Package state implements the Shape store: a per-node abstract-state
// mapping from ir.Variable to a named state, with aliasing cells shared
// between variables that were made to alias one another by assignment.
//
// This is the engine's equivalent of the teacher's core.Graph: a small,
// mutation-tracked value type meant to be interned as a map key. Unlike
// core.Graph, a Shape is single-threaded and carries no locks — the solver
// (package explode) owns exactly one Shape at a time while mutating it via
// a ShapeChange, and every interned Shape is immutable from then on
// (spec.md §3, §5).
//
// Shape equality and hashing are structural: two Shapes with the same
// (variable, state) pairs are equal regardless of cell identity or
// insertion order (spec.md §3, "Shape"). Hash is an XOR-fold of per-entry
// hashes, following the source's own XOR accumulator (spec.md §9).
package state
