package render

import (
	"fmt"
	"io"

	"github.com/emicklei/dot"

	"github.com/smlang/smsolve/explode"
	"github.com/smlang/smsolve/ir"
	"github.com/smlang/smsolve/rules"
)

func init() {
	explode.RegisterDumper(WriteDOT)
}

// WriteDOT renders g as a Graphviz DOT graph: one node per ExplodedNode
// (labelled with the inner node's ID and the reached Shape), one edge per
// ExplodedEdge (labelled with the firing match's description, if any).
func WriteDOT(w io.Writer, g *explode.ExplodedGraph) error {
	gr := dot.NewGraph(dot.Directed)
	gr.Attr("rankdir", "LR")

	nodes := make(map[*explode.ExplodedNode]dot.Node, len(g.Nodes))
	for _, n := range g.Nodes {
		dn := gr.Node(n.ID).Label(fmt.Sprintf("%s\n%s", n.ID, shapeLabel(n)))
		nodes[n] = dn
	}

	for _, e := range g.Edges {
		src, ok := nodes[e.Src]
		if !ok {
			continue
		}
		dst, ok := nodes[e.Dst]
		if !ok {
			continue
		}
		edge := gr.Edge(src, dst)
		if e.Match != nil {
			edge.Label(e.Match.Description(matchEnv{}))
		}
	}

	_, err := io.WriteString(w, gr.String())
	return err
}

// matchEnv is a throwaway rules.Env for rendering match descriptions: DOT
// labels only need the match's own text, not context-dependent lookups.
type matchEnv struct{}

func (matchEnv) LookupDecl(name string) (rules.Decl, bool)       { return rules.Decl{}, false }
func (matchEnv) LookupPattern(name string) (rules.Pattern, bool) { return nil, false }
func (matchEnv) IsStatefulVar(v ir.Variable) bool                { return v != nil }
func (matchEnv) DefaultState() string                            { return "" }
func (matchEnv) Lookup(table, key string) bool                   { return false }

func shapeLabel(n *explode.ExplodedNode) string {
	if n.Shape == nil {
		return "<empty>"
	}
	return fmt.Sprintf("shape#%x", n.Shape.Hash())
}
