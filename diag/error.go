package diag

import (
	"github.com/smlang/smsolve/explode"
	"github.com/smlang/smsolve/ir"
	"github.com/smlang/smsolve/rules"
)

// Error is one narrated diagnostic: the exploded node it fired at, the
// match that triggered it, the rendered message, and — once EmitAll has
// run — the shortest witness path from an entrypoint (spec.md §3, "Error";
// §4.5).
type Error struct {
	ExpNode *explode.ExplodedNode
	Match   rules.Match
	Msg     string

	Witness []*explode.ExplodedEdge
}

// Loc returns the location errors are sorted and grouped by (spec.md §4.5:
// sort by (file, line, column), group by (function, file)). ExpNode.Loc
// already falls back to the enclosing function's end location when the
// inner node has none, so that behavior carries through here too.
func (e Error) Loc() ir.Location {
	return e.ExpNode.Loc()
}
