package explode

import (
	"fmt"

	"github.com/smlang/smsolve/ir"
	"github.com/smlang/smsolve/rules"
	"github.com/smlang/smsolve/state"
)

// ExplodedNode is one reachable (IR node, Shape) pair (spec.md §3, "Exploded
// graph").
type ExplodedNode struct {
	// ID is stable within one ExplodedGraph: the inner node's ID plus a
	// disambiguator for the Shape reached there.
	ID string

	Inner ir.Node
	Shape *state.Shape

	succs []*ExplodedEdge
}

// Succs returns the edges leaving this node, in the order they were
// discovered.
func (n *ExplodedNode) Succs() []*ExplodedEdge { return n.succs }

// Loc returns the inner node's location, falling back to the enclosing
// function's end location when the inner node has none of its own — the
// case for synthetic nodes such as a function's implicit exit (spec.md §3,
// "Error").
func (n *ExplodedNode) Loc() ir.Location {
	if loc := n.Inner.Loc(); loc != nil {
		return loc
	}
	if fn := n.Inner.Func(); fn != nil {
		return fn.EndLoc()
	}
	return nil
}

// Func delegates to the inner node's function.
func (n *ExplodedNode) Func() ir.Func { return n.Inner.Func() }

// ExplodedEdge is one transition between two ExplodedNodes, carrying the
// inner supergraph edge it was derived from and, if a rule fired while
// crossing it, the Match and Outcome responsible.
type ExplodedEdge struct {
	Src, Dst *ExplodedNode
	Inner    ir.Edge

	Match   rules.Match
	Outcome rules.Outcome
}

// InnerEdge implements rules.ExpEdgeView.
func (e *ExplodedEdge) InnerEdge() ir.Edge { return e.Inner }

// SrcState implements rules.ExpEdgeView.
func (e *ExplodedEdge) SrcState(v ir.Variable, defaultState string) string {
	return e.Src.Shape.GetState(defaultState, v)
}

// Diagnostic is one error discovered while exploding the graph: the node it
// fired at, the match that triggered it (never nil: a rule-fired
// diagnostic carries the firing Match, a leak diagnostic a match naming the
// leaked variable), and the rendered message (spec.md §4.5, "Error").
//
// explode never imports diag; diag imports explode and walks these to
// produce diag.Error values with a witness path attached.
type Diagnostic struct {
	Node  *ExplodedNode
	Match rules.Match
	Msg   string
}

// ExplodedGraph is the full product graph Solve discovers: every reachable
// (IR node, Shape) pair, their connecting edges, and any diagnostics fired
// along the way.
type ExplodedGraph struct {
	EntryNodes  []*ExplodedNode
	Nodes       []*ExplodedNode
	Edges       []*ExplodedEdge
	Diagnostics []Diagnostic

	byInnerID map[string][]*ExplodedNode
}

func newGraph() *ExplodedGraph {
	return &ExplodedGraph{byInnerID: make(map[string][]*ExplodedNode)}
}

// internNode returns the existing ExplodedNode for (inner, shape) if one
// with a structurally equal Shape already exists (spec.md §4.4,
// "Termination" relies on structural equality, not cell identity), or
// creates and registers a new one. The second return reports whether a new
// node was created (and should therefore be pushed onto the worklist).
func (g *ExplodedGraph) internNode(inner ir.Node, shape *state.Shape) (*ExplodedNode, bool) {
	for _, n := range g.byInnerID[inner.ID()] {
		if n.Shape.Equal(shape) {
			return n, false
		}
	}
	n := &ExplodedNode{
		ID:    fmt.Sprintf("%s#%d", inner.ID(), len(g.byInnerID[inner.ID()])),
		Inner: inner,
		Shape: shape,
	}
	g.byInnerID[inner.ID()] = append(g.byInnerID[inner.ID()], n)
	g.Nodes = append(g.Nodes, n)
	return n, true
}

func (g *ExplodedGraph) addEdge(e *ExplodedEdge) {
	e.Src.succs = append(e.Src.succs, e)
	g.Edges = append(g.Edges, e)
}

func (g *ExplodedGraph) addDiagnostic(d Diagnostic) {
	g.Diagnostics = append(g.Diagnostics, d)
}
