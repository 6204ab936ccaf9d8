// Package ir declares the contract the engine expects from an intermediate
// representation provider: the supergraph of statements and basic blocks,
// interprocedural call/return edges, and the handles used to name variables.
//
// Nothing in this package performs analysis. It exists so that `explode` and
// `rulectx` can be written, compiled, and tested against a stable interface
// without depending on any specific compiler front end. A real IR provider
// (e.g. a wrapper around a compiler's gimple/SSA form) implements these
// interfaces; `irfixture` provides a tiny in-memory implementation used only
// by this module's own tests.
package ir
