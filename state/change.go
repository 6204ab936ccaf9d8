package state

import "github.com/smlang/smsolve/ir"

// ShapeChange wraps Shape.Clone, capturing a (src, dst) pair plus the
// old-Cell→new-Cell mapping recorded during cloning. It is how the solver
// derives a successor Shape: Assign and PurgeLocals (and the solver's own
// SetState calls on Dst) touch only the destination half,
// leaving the source untouched and safe to keep interning elsewhere
// (spec.md §4.2).
type ShapeChange struct {
	Src       *Shape
	Dst       *Shape
	cellClone map[*Cell]*Cell

	defaultState string
}

// NewShapeChange clones src and returns a ShapeChange ready for Assign/
// PurgeLocals calls against its Dst. defaultState is needed because Assign
// may have to materialize a fresh Cell for a not-yet-tracked source
// variable (spec.md §4.1, "assign").
func NewShapeChange(src *Shape, defaultState string) *ShapeChange {
	dst, cellClone := src.Clone()
	return &ShapeChange{Src: src, Dst: dst, cellClone: cellClone, defaultState: defaultState}
}

// Assign aliases dst onto src's Cell within the destination Shape only.
func (sc *ShapeChange) Assign(dst, src ir.Variable) {
	sc.Dst.assign(dst, src, sc.defaultState)
}

// PurgeLocals removes fn's locals and parameters from the destination
// Shape only.
func (sc *ShapeChange) PurgeLocals(fn ir.Func) {
	sc.Dst.purgeLocals(fn)
}

// IterLeaks walks the original Shape's Cells and yields, for each Cell
// whose clone is no longer referenced anywhere in the destination Shape,
// every source-side alias of that Cell (spec.md §4.2, "iter_leaks"). A
// Cell "leaks" when the last variable that referenced it in Dst was
// reassigned elsewhere (e.g. PurgeLocals dropped the only local that still
// aliased it while it carried a non-default, resource-holding state).
func (sc *ShapeChange) IterLeaks() []ir.Variable {
	live := make(map[*Cell]struct{}, len(sc.Dst.cells))
	for _, c := range sc.Dst.cells {
		live[c] = struct{}{}
	}

	seen := make(map[*Cell]struct{})
	var leaked []ir.Variable
	for _, srcCell := range sc.Src.cells {
		if _, done := seen[srcCell]; done {
			continue
		}
		seen[srcCell] = struct{}{}

		dstCell := sc.cellClone[srcCell]
		if _, ok := live[dstCell]; ok {
			continue
		}
		leaked = append(leaked, sc.Src.IterAliases(srcCell)...)
	}
	return leaked
}
