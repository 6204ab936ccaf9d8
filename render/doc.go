// Package render renders a completed explode.ExplodedGraph as Graphviz DOT
// using github.com/emicklei/dot, for the spec.md §6 "dump_exploded_graph"
// visualisation hook.
//
// It registers itself with package explode on import via
// explode.RegisterDumper, the same driver-registration idiom
// database/sql uses, since explode cannot import render directly without
// creating a cycle (render needs explode's *ExplodedGraph to render it).
// Callers that want explode.WithDumpExplodedGraph must blank-import this
// package.
package render
