package irfixture

import "github.com/smlang/smsolve/ir"

// Node is a fixture-level ir.Node.
type Node struct {
	NodeID   string
	Statement ir.Statement
	NodeFunc ir.Func
	NodeLoc  ir.Location
	edges    []ir.Edge
}

func (n *Node) ID() string      { return n.NodeID }
func (n *Node) Stmt() ir.Statement { return n.Statement }
func (n *Node) Succs() []ir.Edge   { return n.edges }
func (n *Node) Func() ir.Func      { return n.NodeFunc }
func (n *Node) Loc() ir.Location   { return n.NodeLoc }

// Edge is a fixture-level ir.Edge.
type Edge struct {
	EdgeKind ir.EdgeKind
	EdgeSrc  *Node
	EdgeDst  *Node

	Args   []ir.Variable
	Params []ir.Variable

	Lval       ir.Variable
	Ret        ir.Variable
	Callee     ir.Func

	BranchPtr    ir.Variable
	BranchIsTrue bool
	hasBranch    bool
}

func (e *Edge) Kind() ir.EdgeKind           { return e.EdgeKind }
func (e *Edge) Src() ir.Node                { return e.EdgeSrc }
func (e *Edge) Dst() ir.Node                { return e.EdgeDst }
func (e *Edge) CallArgs() []ir.Variable     { return e.Args }
func (e *Edge) CalleeParams() []ir.Variable { return e.Params }
func (e *Edge) CallLValue() ir.Variable     { return e.Lval }
func (e *Edge) CalleeReturn() ir.Variable   { return e.Ret }
func (e *Edge) CalleeFunc() ir.Func         { return e.Callee }

func (e *Edge) BranchCond() (ir.Variable, bool, bool) {
	if !e.hasBranch {
		return nil, false, false
	}
	return e.BranchPtr, e.BranchIsTrue, true
}

// Graph is a fixture-level ir.Supergraph.
type Graph struct {
	entries []ir.Node
}

func (g *Graph) EntryNodes() []ir.Node { return g.entries }

// Builder assembles a Graph from Nodes connected by typed edges, in the
// style of the teacher's BuildGraph + Constructor closures.
type Builder struct {
	entries []*Node
}

// New starts a fresh fixture builder.
func New() *Builder { return &Builder{} }

// Node creates a node at id with the given function, location and
// statement, and returns it so edges can be attached. The builder keeps no
// record of it; only nodes passed to Entry are held.
func (b *Builder) Node(id string, fn ir.Func, loc ir.Location, stmt ir.Statement) *Node {
	return &Node{NodeID: id, Statement: stmt, NodeFunc: fn, NodeLoc: loc}
}

// Entry marks n as a supergraph entry node.
func (b *Builder) Entry(n *Node) *Builder {
	b.entries = append(b.entries, n)
	return b
}

// Build finalizes the fixture into an ir.Supergraph.
func (b *Builder) Build() ir.Supergraph {
	return &Graph{entries: toIRNodes(b.entries)}
}

func toIRNodes(ns []*Node) []ir.Node {
	out := make([]ir.Node, len(ns))
	for i, n := range ns {
		out[i] = n
	}
	return out
}

// Then connects src to dst with an ordinary intraprocedural edge.
func Then(src, dst *Node) *Edge {
	e := &Edge{EdgeKind: ir.EdgeIntraprocedural, EdgeSrc: src, EdgeDst: dst}
	src.edges = append(src.edges, e)
	return e
}

// CallEdge connects a call site to the callee's entry node, pairing args
// with params positionally.
func CallEdge(src, dst *Node, args, params []ir.Variable) *Edge {
	e := &Edge{EdgeKind: ir.EdgeCallToCalleeEntry, EdgeSrc: src, EdgeDst: dst, Args: args, Params: params}
	src.edges = append(src.edges, e)
	return e
}

// ReturnEdge connects a callee's exit node back to the caller's return
// site, purging calleeFunc's locals and assigning ret into lval (either
// may be nil).
func ReturnEdge(src, dst *Node, calleeFunc ir.Func, lval, ret ir.Variable) *Edge {
	e := &Edge{EdgeKind: ir.EdgeExitToReturnSite, EdgeSrc: src, EdgeDst: dst, Callee: calleeFunc, Lval: lval, Ret: ret}
	src.edges = append(src.edges, e)
	return e
}

// SkipEdge connects a call site directly to its return site, the
// intraprocedural shortcut the solver always skips.
func SkipEdge(src, dst *Node) *Edge {
	e := &Edge{EdgeKind: ir.EdgeCallToReturnSite, EdgeSrc: src, EdgeDst: dst}
	src.edges = append(src.edges, e)
	return e
}

// BranchEdge connects src to dst as one arm of a conditional branch
// testing ptr against NULL; isNonNilArm marks the arm taken when ptr is
// non-nil.
func BranchEdge(src, dst *Node, ptr ir.Variable, isNonNilArm bool) *Edge {
	e := &Edge{EdgeKind: ir.EdgeIntraprocedural, EdgeSrc: src, EdgeDst: dst, BranchPtr: ptr, BranchIsTrue: isNonNilArm, hasBranch: true}
	src.edges = append(src.edges, e)
	return e
}
