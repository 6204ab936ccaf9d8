package state_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/smlang/smsolve/ir"
	"github.com/smlang/smsolve/state"
)

// fakeVar is a minimal ir.Variable for state package tests.
type fakeVar struct{ name string }

func (v *fakeVar) String() string        { return v.name }
func (v *fakeVar) Canonical() ir.Variable { return v }
func (v *fakeVar) IsPointer() bool        { return true }

func TestGetStateDefaultTransparency(t *testing.T) {
	s := state.New()
	p := &fakeVar{name: "p"}

	require.Equal(t, "start", s.GetState("start", p))
}

func TestSetStateThenGet(t *testing.T) {
	s := state.New()
	p := &fakeVar{name: "p"}

	s.SetState(p, "freed")
	require.Equal(t, "freed", s.GetState("start", p))
	require.True(t, s.VarHasState(p))
}

func TestEqualityIsStructuralNotByCellIdentity(t *testing.T) {
	a := state.New()
	b := state.New()
	p := &fakeVar{name: "p"}
	q := &fakeVar{name: "q"}

	a.SetState(p, "freed")
	b.SetState(q, "freed")

	// Different variable keys: not equal.
	require.False(t, a.Equal(b))

	c := state.New()
	c.SetState(p, "freed")
	require.True(t, a.Equal(c))
	require.Equal(t, a.Hash(), c.Hash())
}

func TestCloneDecouplesMutation(t *testing.T) {
	s := state.New()
	p := &fakeVar{name: "p"}
	s.SetState(p, "allocated")

	clone, _ := s.Clone()
	clone.SetState(p, "freed")

	require.Equal(t, "allocated", s.GetState("start", p))
	require.Equal(t, "freed", clone.GetState("start", p))
}

func TestClonePreservesAliasing(t *testing.T) {
	sc := state.NewShapeChange(state.New(), "start")
	p := &fakeVar{name: "p"}
	q := &fakeVar{name: "q"}
	sc.Dst.SetState(p, "allocated")
	sc.Assign(q, p) // q now aliases p's cell

	clone, _ := sc.Dst.Clone()
	cp, okP := clone.CellOf(p)
	cq, okQ := clone.CellOf(q)
	require.True(t, okP)
	require.True(t, okQ)
	require.Same(t, cp, cq, "aliasing must be preserved through clone")
}

func TestAssignMaterializesDefaultCellForUntrackedSource(t *testing.T) {
	s := state.New()
	p := &fakeVar{name: "p"}
	q := &fakeVar{name: "q"}

	sc := state.NewShapeChange(s, "start")
	sc.Assign(q, p)

	require.True(t, sc.Dst.VarHasState(p), "assign must install a cell on src too, so aliasing is observable")
	require.Equal(t, "start", sc.Dst.GetState("start", q))
}

func TestPurgeLocals(t *testing.T) {
	s := state.New()
	p := &fakeVar{name: "p"}
	g := &fakeVar{name: "g"}
	s.SetState(p, "allocated")
	s.SetState(g, "allocated")

	sc := state.NewShapeChange(s, "start")
	sc.PurgeLocals(&fakeFunc{locals: []ir.Variable{p}})

	require.False(t, sc.Dst.VarHasState(p))
	require.True(t, sc.Dst.VarHasState(g))
}

type fakeFunc struct{ locals []ir.Variable }

func (f *fakeFunc) Name() string          { return "f" }
func (f *fakeFunc) Locals() []ir.Variable { return f.locals }
func (f *fakeFunc) Params() []ir.Variable { return nil }
func (f *fakeFunc) EndLoc() ir.Location   { return nil }
