package diag

import (
	"fmt"
	"sort"

	"github.com/smlang/smsolve/explode"
	"github.com/smlang/smsolve/ir"
	"github.com/smlang/smsolve/rules"
)

// Reporter buffers Errors discovered while exploding a graph and narrates
// them with a witness path on EmitAll, or emits immediately without a
// witness when configured not to cache (spec.md §6, "cache_errors").
type Reporter struct {
	sink        Sink
	cacheErrors bool
	buffered    []Error
}

// NewReporter constructs a Reporter writing to sink. cacheErrors mirrors
// spec.md §6: true buffers errors for EmitAll's witness-path narration;
// false emits each error to sink immediately, without a witness.
func NewReporter(sink Sink, cacheErrors bool) *Reporter {
	return &Reporter{sink: sink, cacheErrors: cacheErrors}
}

// AddError records one diagnostic. When cacheErrors is false it is written
// to the sink immediately.
func (r *Reporter) AddError(node *explode.ExplodedNode, match rules.Match, msg string) {
	e := Error{ExpNode: node, Match: match, Msg: msg}
	if !r.cacheErrors {
		r.sink.Error(e.Loc(), msg)
		return
	}
	r.buffered = append(r.buffered, e)
}

// Collect buffers every diagnostic explode.Solve recorded on g (spec.md
// §4.4/§4.5: explode never imports diag, so the caller bridges the two
// after Solve returns).
func (r *Reporter) Collect(g *explode.ExplodedGraph) {
	for _, d := range g.Diagnostics {
		r.AddError(d.Node, d.Match, d.Msg)
	}
}

// EmitAll sorts buffered errors by (file, line, column), groups them by
// (function, file), and for each walks the shortest witness path from any
// of g's entrypoints before writing to the sink (spec.md §4.5). A no-op
// when cacheErrors is false, since those errors were already emitted.
func (r *Reporter) EmitAll(g *explode.ExplodedGraph) {
	if !r.cacheErrors || len(r.buffered) == 0 {
		return
	}

	sorted := append([]Error(nil), r.buffered...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return ir.Less(sorted[i].Loc(), sorted[j].Loc())
	})

	groups := groupByFuncAndFile(sorted)
	for _, group := range groups {
		for _, e := range group {
			e.Witness = shortestWitness(g.EntryNodes, e.ExpNode)
			r.sink.Error(e.Loc(), e.Msg)
			r.noteWitness(e)
		}
	}
}

// noteWitness emits a note at each witness-path edge whose source- and
// destination-state for the error's own stateful variable differ, using
// the firing edge's match to render the note text (spec.md §4.5). Edges
// with no match, or whose state for that variable didn't change, are
// skipped entirely — no note at all — mirroring the original's
// srcstate/dststate comparison rather than narrating every edge. Only the
// error's own stateful variable is compared: a state change carried by a
// different alias of the same cell (e.g. a callee parameter bound to it)
// produces no note.
func (r *Reporter) noteWitness(e Error) {
	if e.Match == nil {
		return
	}
	v := e.Match.StatefulVar(noopEnv{})
	if v == nil {
		return
	}

	step := 0
	for _, edge := range e.Witness {
		if edge.Match == nil {
			continue
		}
		srcState := edge.Src.Shape.GetState(noopEnv{}.DefaultState(), v)
		dstState := edge.Dst.Shape.GetState(noopEnv{}.DefaultState(), v)
		if srcState == dstState {
			continue
		}
		step++
		r.sink.Note(edge.Dst.Loc(), fmt.Sprintf("step %d: %s", step, edge.Match.Description(noopEnv{})))
	}
}

func groupByFuncAndFile(errs []Error) [][]Error {
	type key struct{ fn, file string }
	index := make(map[key]int)
	var groups [][]Error

	for _, e := range errs {
		k := key{fn: e.ExpNode.Func().Name(), file: e.Loc().File()}
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, nil)
		}
		groups[i] = append(groups[i], e)
	}
	return groups
}
