package diag_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/smlang/smsolve/diag"
	"github.com/smlang/smsolve/explode"
	"github.com/smlang/smsolve/ir"
	"github.com/smlang/smsolve/irfixture"
	"github.com/smlang/smsolve/rulectx"
	"github.com/smlang/smsolve/rules"
)

type fakeSink struct {
	errors []string
	notes  []string
}

func (s *fakeSink) Error(loc ir.Location, msg string) { s.errors = append(s.errors, msg) }
func (s *fakeSink) Note(loc ir.Location, msg string)   { s.notes = append(s.notes, msg) }

func mallocFreeMachine() rules.StateMachine {
	return rules.StateMachine{
		Name:   "malloc",
		States: []string{"start", "allocated", "freed"},
		Decls: []rules.Decl{
			{Name: "ptr", HasState: true, Matcher: func(v ir.Variable) bool { return v != nil }},
		},
		StateClauses: []rules.StateClause{
			{
				States: []string{"start"},
				Rules: []rules.PatternRule{
					{Pattern: rules.CallPattern{Callee: "malloc"}, Outcomes: []rules.Outcome{rules.TransitionOutcome{ToState: "allocated"}}},
				},
			},
			{
				States: []string{"allocated"},
				Rules: []rules.PatternRule{
					{Pattern: rules.ArgCallPattern{Callee: "free", ArgIndex: 0}, Outcomes: []rules.Outcome{rules.TransitionOutcome{ToState: "freed"}}},
				},
			},
			{
				States: []string{"freed"},
				Rules: []rules.PatternRule{
					{Pattern: rules.ArgCallPattern{Callee: "free", ArgIndex: 0}, Outcomes: []rules.Outcome{rules.DiagnosticOutcome{Msg: "double free of %s"}}},
					{Pattern: rules.DerefPattern{}, Outcomes: []rules.Outcome{rules.DiagnosticOutcome{Msg: "use after free of %s"}}},
				},
			},
		},
	}
}

// buildDoubleFreeGraph encodes: p = malloc(); free(p); free(p); (E2).
func buildDoubleFreeGraph(t *testing.T) (*explode.ExplodedGraph, *rulectx.Context) {
	t.Helper()

	p := irfixture.NewVar("p")
	fn := irfixture.NewFunc("main", []ir.Variable{p}, 40)
	b := irfixture.New()

	n1 := b.Node("n1", fn, irfixture.At(10), irfixture.Call(irfixture.At(10), "malloc", nil, p))
	n2 := b.Node("n2", fn, irfixture.At(11), irfixture.Call(irfixture.At(11), "free", []ir.Variable{p}, nil))
	n3 := b.Node("n3", fn, irfixture.At(12), irfixture.Call(irfixture.At(12), "free", []ir.Variable{p}, nil))
	n4 := b.Node("n4", fn, irfixture.At(13), irfixture.Other(irfixture.At(13)))

	irfixture.Then(n1, n2)
	irfixture.Then(n2, n3)
	irfixture.Then(n3, n4)

	sg := b.Entry(n1).Build()

	ctx, err := rulectx.Compile(mallocFreeMachine())
	require.NoError(t, err)

	g, err := explode.Solve(ctx, sg)
	require.NoError(t, err)
	return g, ctx
}

func TestEmitAllNarratesDoubleFreeWithWitness(t *testing.T) {
	g, _ := buildDoubleFreeGraph(t)
	require.Len(t, g.Diagnostics, 1)
	require.Contains(t, g.Diagnostics[0].Msg, "double free")

	sink := &fakeSink{}
	r := diag.NewReporter(sink, true)
	r.Collect(g)
	r.EmitAll(g)

	require.Len(t, sink.errors, 1)
	require.Contains(t, sink.errors[0], "double free")
	require.NotEmpty(t, sink.notes, "witness path should narrate at least one step")
}

// TestEmitAllSkipsNeutralEdgesInWitness encodes: p = malloc(); <no-op>;
// free(p); free(p); — the no-op statement between the malloc and the first
// free fires no rule, so its edge must contribute no note, even though it
// lies on the shortest witness path to the double-free diagnostic.
func TestEmitAllSkipsNeutralEdgesInWitness(t *testing.T) {
	p := irfixture.NewVar("p")
	fn := irfixture.NewFunc("main", []ir.Variable{p}, 50)
	b := irfixture.New()

	n1 := b.Node("n1", fn, irfixture.At(10), irfixture.Call(irfixture.At(10), "malloc", nil, p))
	n2 := b.Node("n2", fn, irfixture.At(11), irfixture.Other(irfixture.At(11)))
	n3 := b.Node("n3", fn, irfixture.At(12), irfixture.Call(irfixture.At(12), "free", []ir.Variable{p}, nil))
	n4 := b.Node("n4", fn, irfixture.At(13), irfixture.Call(irfixture.At(13), "free", []ir.Variable{p}, nil))
	n5 := b.Node("n5", fn, irfixture.At(14), irfixture.Other(irfixture.At(14)))

	irfixture.Then(n1, n2)
	irfixture.Then(n2, n3)
	irfixture.Then(n3, n4)
	irfixture.Then(n4, n5)

	sg := b.Entry(n1).Build()

	ctx, err := rulectx.Compile(mallocFreeMachine())
	require.NoError(t, err)

	g, err := explode.Solve(ctx, sg)
	require.NoError(t, err)
	require.Len(t, g.Diagnostics, 1)

	sink := &fakeSink{}
	r := diag.NewReporter(sink, true)
	r.Collect(g)
	r.EmitAll(g)

	require.Len(t, sink.errors, 1)
	require.Len(t, sink.notes, 2, "the no-op edge between malloc and the first free must not generate a note")
	require.Contains(t, sink.notes[0], "step 1")
	require.Contains(t, sink.notes[1], "step 2")
}

func TestAddErrorEmitsImmediatelyWhenNotCaching(t *testing.T) {
	g, _ := buildDoubleFreeGraph(t)

	sink := &fakeSink{}
	r := diag.NewReporter(sink, false)
	r.Collect(g)

	require.Len(t, sink.errors, 1)
	r.EmitAll(g) // no-op, already emitted
	require.Len(t, sink.errors, 1)
}
