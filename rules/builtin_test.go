package rules_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/smlang/smsolve/ir"
	"github.com/smlang/smsolve/rules"
)

type fakeVar struct{ name string }

func (v *fakeVar) String() string        { return v.name }
func (v *fakeVar) Canonical() ir.Variable { return v }
func (v *fakeVar) IsPointer() bool        { return true }

type fakeEnv struct {
	decls    map[string]rules.Decl
	patterns map[string]rules.Pattern
	defState string
	tables   map[string]map[string]bool
}

func (e *fakeEnv) LookupDecl(name string) (rules.Decl, bool) {
	d, ok := e.decls[name]
	return d, ok
}

func (e *fakeEnv) LookupPattern(name string) (rules.Pattern, bool) {
	p, ok := e.patterns[name]
	return p, ok
}

func (e *fakeEnv) IsStatefulVar(v ir.Variable) bool { return v != nil }
func (e *fakeEnv) DefaultState() string             { return e.defState }

func (e *fakeEnv) Lookup(table, key string) bool {
	return e.tables[table][key]
}

// fakeCallStmt is a minimal ir.Statement exercising only Call/Deref, the
// accessors the builtin patterns care about.
type fakeCallStmt struct {
	callee string
	args   []ir.Variable
	lval   ir.Variable
	ptr    ir.Variable
	isDeref bool
}

func (s *fakeCallStmt) Kind() ir.StatementKind { return ir.StmtOther }
func (s *fakeCallStmt) LValue() ir.Variable    { return s.lval }
func (s *fakeCallStmt) RValue() ir.Variable    { return nil }
func (s *fakeCallStmt) PhiInput() ir.Variable  { return nil }
func (s *fakeCallStmt) Loc() ir.Location       { return nil }

func (s *fakeCallStmt) Call() (string, []ir.Variable, ir.Variable, bool) {
	if s.callee == "" {
		return "", nil, nil, false
	}
	return s.callee, s.args, s.lval, true
}

func (s *fakeCallStmt) Deref() (ir.Variable, bool) {
	if !s.isDeref {
		return nil, false
	}
	return s.ptr, true
}

func newEnv() *fakeEnv {
	return &fakeEnv{
		decls:    map[string]rules.Decl{},
		patterns: map[string]rules.Pattern{},
		defState: "start",
		tables:   map[string]map[string]bool{},
	}
}

func TestCallPatternMatchesAssignedResult(t *testing.T) {
	p := &fakeVar{name: "p"}
	stmt := &fakeCallStmt{callee: "malloc", lval: p}

	pat := rules.CallPattern{Callee: "malloc"}
	matches := pat.IterMatches(stmt, nil, newEnv())
	require.Len(t, matches, 1)
	require.Equal(t, p, matches[0].StatefulVar(newEnv()))
}

func TestCallPatternIgnoresUnrelatedCallee(t *testing.T) {
	p := &fakeVar{name: "p"}
	stmt := &fakeCallStmt{callee: "strdup", lval: p}

	pat := rules.CallPattern{Callee: "malloc"}
	require.Empty(t, pat.IterMatches(stmt, nil, newEnv()))
}

func TestCallPatternRequiresDeclWhenSet(t *testing.T) {
	p := &fakeVar{name: "p"}
	stmt := &fakeCallStmt{callee: "malloc", lval: p}

	env := newEnv()
	env.decls["ptr"] = rules.Decl{Name: "ptr", Matcher: func(v ir.Variable) bool { return false }}

	pat := rules.CallPattern{Callee: "malloc", Decl: "ptr"}
	require.Empty(t, pat.IterMatches(stmt, nil, env))
}

func TestDerefPatternBindsPointer(t *testing.T) {
	p := &fakeVar{name: "p"}
	stmt := &fakeCallStmt{isDeref: true, ptr: p}

	matches := rules.DerefPattern{}.IterMatches(stmt, nil, newEnv())
	require.Len(t, matches, 1)
	require.Equal(t, p, matches[0].StatefulVar(newEnv()))
}

func TestArgCallPatternBindsArgument(t *testing.T) {
	p := &fakeVar{name: "p"}
	stmt := &fakeCallStmt{callee: "free", args: []ir.Variable{p}}

	pat := rules.ArgCallPattern{Callee: "free", ArgIndex: 0}
	matches := pat.IterMatches(stmt, nil, newEnv())
	require.Len(t, matches, 1)
	require.Equal(t, p, matches[0].StatefulVar(newEnv()))
}

type fakeExpEdgeView struct {
	edge ir.Edge
}

func (v *fakeExpEdgeView) InnerEdge() ir.Edge { return v.edge }

func (v *fakeExpEdgeView) SrcState(x ir.Variable, defaultState string) string {
	return defaultState
}

type fakeBranchEdge struct {
	ptr      ir.Variable
	isNonNil bool
	ok       bool
}

func (e *fakeBranchEdge) Kind() ir.EdgeKind            { return ir.EdgeIntraprocedural }
func (e *fakeBranchEdge) Src() ir.Node                 { return nil }
func (e *fakeBranchEdge) Dst() ir.Node                 { return nil }
func (e *fakeBranchEdge) CallArgs() []ir.Variable      { return nil }
func (e *fakeBranchEdge) CalleeParams() []ir.Variable  { return nil }
func (e *fakeBranchEdge) CallLValue() ir.Variable      { return nil }
func (e *fakeBranchEdge) CalleeReturn() ir.Variable    { return nil }
func (e *fakeBranchEdge) CalleeFunc() ir.Func          { return nil }

func (e *fakeBranchEdge) BranchCond() (ir.Variable, bool, bool) {
	return e.ptr, e.isNonNil, e.ok
}

func TestNonNullBranchPatternMatchesTakenArm(t *testing.T) {
	p := &fakeVar{name: "p"}
	view := &fakeExpEdgeView{edge: &fakeBranchEdge{ptr: p, isNonNil: true, ok: true}}

	matches := rules.NonNullBranchPattern{}.IterExpedgeMatches(view, newEnv())
	require.Len(t, matches, 1)
	require.Equal(t, p, matches[0].StatefulVar(newEnv()))
}

func TestNonNullBranchPatternIgnoresNilArm(t *testing.T) {
	p := &fakeVar{name: "p"}
	view := &fakeExpEdgeView{edge: &fakeBranchEdge{ptr: p, isNonNil: false, ok: true}}

	require.Empty(t, rules.NonNullBranchPattern{}.IterExpedgeMatches(view, newEnv()))
}

func TestNonNullBranchPatternIgnoresNonBranchEdge(t *testing.T) {
	view := &fakeExpEdgeView{edge: &fakeBranchEdge{ok: false}}
	require.Empty(t, rules.NonNullBranchPattern{}.IterExpedgeMatches(view, newEnv()))
}
