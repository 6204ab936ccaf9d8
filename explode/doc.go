// Package explode builds the exploded graph: the product graph of
// (IR node, Shape) that the solver's worklist fixpoint discovers reachable
// states over (spec.md §4.4).
//
// Solve seeds one ExplodedNode per supergraph entry node with an empty
// Shape, then drives a LIFO worklist — matching the source's list.pop()
// behavior, since spec.md §4.4 explicitly leaves worklist order
// unconstrained — applying a per-edge-kind transfer function and, on every
// intraprocedural edge (after any copy, field or phi aliasing the transfer
// table applies), first-match-wins rule matching against the compiled
// rulectx.Context. Diagnostics discovered along the way are buffered on
// the returned ExplodedGraph for package diag to narrate with a witness
// path; explode itself never imports diag, so the dependency runs one way.
package explode
