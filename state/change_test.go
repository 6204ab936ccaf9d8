package state_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/smlang/smsolve/ir"
	"github.com/smlang/smsolve/state"
)

// TestIterLeaksYieldsDroppedAliasesOnce covers spec.md §8 invariant 7: a
// sequence of assigns that drops the last alias of a Cell from the
// destination Shape must surface every source-side alias of that Cell
// exactly once.
func TestIterLeaksYieldsDroppedAliasesOnce(t *testing.T) {
	src := state.New()
	p := &fakeVar{name: "p"}
	src.SetState(p, "allocated")

	sc := state.NewShapeChange(src, "start")
	// purge_locals drops p without ever re-assigning its cell elsewhere.
	sc.PurgeLocals(&fakeFunc{locals: []ir.Variable{p}})

	leaks := sc.IterLeaks()
	require.Len(t, leaks, 1)
	require.Equal(t, "p", leaks[0].String())
}

// TestIterLeaksNoneWhenAliasSurvives covers E5 at the Shape level: if an
// alias of the cell survives in the destination (e.g. `q = p` then only p
// is purged), no leak is reported.
func TestIterLeaksNoneWhenAliasSurvives(t *testing.T) {
	src := state.New()
	p := &fakeVar{name: "p"}
	src.SetState(p, "allocated")

	sc := state.NewShapeChange(src, "start")
	q := &fakeVar{name: "q"}
	sc.Assign(q, p) // q now aliases the clone of p's cell
	sc.PurgeLocals(&fakeFunc{locals: []ir.Variable{p}})

	require.Empty(t, sc.IterLeaks())
}
