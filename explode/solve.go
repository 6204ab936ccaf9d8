package explode

import (
	"errors"
	"fmt"
	"io"

	"github.com/smlang/smsolve/ir"
	"github.com/smlang/smsolve/rulectx"
	"github.com/smlang/smsolve/rules"
	"github.com/smlang/smsolve/state"
)

// ErrNoDumper is returned when WithDumpExplodedGraph is set but no DOT
// renderer has been registered. Package render registers itself on import
// via RegisterDumper; explode cannot import render directly without
// creating an import cycle (render needs *ExplodedGraph), so callers that
// want WithDumpExplodedGraph must blank-import render — the same
// registration idiom database/sql uses for drivers.
var ErrNoDumper = errors.New("explode: WithDumpExplodedGraph set but no renderer registered; import github.com/smlang/smsolve/render")

var dumper func(io.Writer, *ExplodedGraph) error

// RegisterDumper installs the DOT renderer. Called from render's init.
func RegisterDumper(fn func(io.Writer, *ExplodedGraph) error) {
	dumper = fn
}

// pendingEdgeView implements rules.ExpEdgeView for an edge whose
// destination node has not been interned yet, letting edge-based patterns
// (e.g. NonNullBranchPattern) fire before the ExplodedEdge itself exists.
type pendingEdgeView struct {
	inner ir.Edge
	src   *state.Shape
}

func (v pendingEdgeView) InnerEdge() ir.Edge { return v.inner }

func (v pendingEdgeView) SrcState(x ir.Variable, defaultState string) string {
	return v.src.GetState(defaultState, x)
}

// leakMatch implements rules.Match for a leak diagnostic discovered by
// ShapeChange.IterLeaks rather than by a fired PatternRule: the "stateful
// variable" is simply the leaked variable itself. Giving leak diagnostics a
// Match lets diag's witness narration filter their path the same way it
// filters rule-fired diagnostics (spec.md §4.5).
type leakMatch struct{ v ir.Variable }

func (m leakMatch) StatefulVar(rules.Env) ir.Variable { return m.v }

func (m leakMatch) Description(rules.Env) string { return m.v.String() + " leaked" }

// solver holds the mutable state of one Solve call, mirroring the teacher's
// runner-struct idiom (cf. dijkstra.runner): a config, the work-in-progress
// result, and a worklist.
type solver struct {
	ctx   *rulectx.Context
	cfg   *config
	graph *ExplodedGraph

	worklist []*ExplodedNode
}

// Solve computes the exploded graph reachable from sg's entry nodes under
// ctx's compiled rule set (spec.md §4.4). The worklist is a LIFO stack —
// append/pop-last — matching the source's list.pop() behavior; spec.md
// explicitly leaves worklist order unconstrained.
func Solve(ctx *rulectx.Context, sg ir.Supergraph, opts ...Option) (g *ExplodedGraph, err error) {
	cfg := defaultConfig()
	for _, o := range opts {
		o(cfg)
	}

	defer func() {
		if r := recover(); r != nil {
			cause, ok := r.(error)
			if !ok {
				cause = fmt.Errorf("%v", r)
			}
			g = nil
			err = newInvariantError("Solve", cause)
		}
	}()

	s := &solver{ctx: ctx, cfg: cfg, graph: newGraph()}

	for _, entry := range sg.EntryNodes() {
		n, created := s.graph.internNode(entry, state.New())
		s.graph.EntryNodes = append(s.graph.EntryNodes, n)
		if created {
			s.worklist = append(s.worklist, n)
		}
	}

	for len(s.worklist) > 0 {
		last := len(s.worklist) - 1
		n := s.worklist[last]
		s.worklist = s.worklist[:last]

		for _, e := range n.Inner.Succs() {
			s.transfer(n, e)
		}
	}

	if cfg.dumpTo != nil {
		if dumper == nil {
			return nil, ErrNoDumper
		}
		if rerr := dumper(cfg.dumpTo, s.graph); rerr != nil {
			return nil, fmt.Errorf("explode: dumping exploded graph: %w", rerr)
		}
	}

	return s.graph, nil
}

// transfer applies the per-edge-kind transfer function for e out of n,
// interning the resulting destination node and pushing it onto the
// worklist if newly discovered (spec.md §4.4).
func (s *solver) transfer(n *ExplodedNode, e ir.Edge) {
	switch e.Kind() {
	case ir.EdgeCallToReturnSite:
		// The interprocedural path (call-to-callee-entry + exit-to-return)
		// carries the real propagation; this shortcut is always skipped.
		return
	case ir.EdgeCallToCalleeEntry:
		sc := state.NewShapeChange(n.Shape, s.ctx.DefaultState())
		args, params := e.CallArgs(), e.CalleeParams()
		for i := range params {
			if i < len(args) {
				sc.Assign(params[i], args[i])
			}
		}
		s.commit(n, e, sc, nil, nil)
		return
	case ir.EdgeExitToReturnSite:
		sc := state.NewShapeChange(n.Shape, s.ctx.DefaultState())
		fn := e.CalleeFunc()
		if fn != nil {
			sc.PurgeLocals(fn)
		}
		if lv, ret := e.CallLValue(), e.CalleeReturn(); lv != nil && ret != nil {
			sc.Assign(lv, ret)
		}
		dstNode := s.commit(n, e, sc, nil, nil)
		s.reportLeaks(n, dstNode, sc)
		return
	}

	sc := state.NewShapeChange(n.Shape, s.ctx.DefaultState())
	stmt := n.Inner.Stmt()
	if stmt != nil {
		switch stmt.Kind() {
		case ir.StmtAssignCopy:
			sc.Assign(stmt.LValue(), stmt.RValue())
		case ir.StmtAssignField:
			// Only alias the l-value onto the container's cell when the
			// container already carries an explicit state; otherwise fall
			// through to rule matching untouched (spec.md §4.4, "Assignment
			// `x = obj.field`").
			if n.Shape.VarHasState(stmt.RValue()) {
				sc.Assign(stmt.LValue(), stmt.RValue())
			}
		case ir.StmtPhi:
			sc.Assign(stmt.LValue(), stmt.PhiInput())
		}
	}

	match, outcome := s.matchRules(n, stmt, e, sc)
	s.commit(n, e, sc, match, outcome)
}

// matchRules walks the compiled state clauses in declared order, applying
// the first rule whose pattern matches and whose bound variable is
// currently in one of that clause's states (spec.md §4.4, "first-match-
// wins"; §4.3, "Tie-breaks / determinism": declared order).
func (s *solver) matchRules(n *ExplodedNode, stmt ir.Statement, e ir.Edge, sc *state.ShapeChange) (rules.Match, rules.Outcome) {
	view := pendingEdgeView{inner: e, src: n.Shape}

	for _, clause := range s.ctx.StateClauses {
		for _, rule := range clause.Rules {
			var matches []rules.Match
			if stmt != nil {
				matches = append(matches, rule.Pattern.IterMatches(stmt, e, s.ctx)...)
			}
			matches = append(matches, rule.Pattern.IterExpedgeMatches(view, s.ctx)...)

			for _, m := range matches {
				v := m.StatefulVar(s.ctx)
				if v == nil || !s.ctx.IsStatefulVar(v) {
					continue
				}
				cur := n.Shape.GetState(s.ctx.DefaultState(), v)
				if !clause.Has(cur) {
					continue
				}

				s.ctx.Logger().Debug("rule fired", "pattern", rule.Pattern.String(), "state", cur, "var", v.String())

				var lastOutcome rules.Outcome
				for _, outcome := range rule.Outcomes {
					s.applyOutcome(n, sc, m, outcome)
					lastOutcome = outcome
				}
				return m, lastOutcome
			}
		}
	}
	return nil, nil
}

// applyOutcome applies one rule outcome to sc, the in-flight ShapeChange
// for the edge currently being transferred (spec.md §9, "Rule outcomes as
// closed variants" — the solver type-switches rather than calling a
// virtual Apply so that package rules need not import explode).
func (s *solver) applyOutcome(n *ExplodedNode, sc *state.ShapeChange, m rules.Match, outcome rules.Outcome) {
	v := m.StatefulVar(s.ctx)
	switch o := outcome.(type) {
	case rules.TransitionOutcome:
		if o.ToState != "" {
			sc.Dst.SetState(v, o.ToState)
		}
	case rules.DiagnosticOutcome:
		s.graph.addDiagnostic(Diagnostic{
			Node:  n,
			Match: m,
			Msg:   fmt.Sprintf(o.Msg, v.String()),
		})
		if !s.cfg.cacheErrors {
			s.cfg.logger.Warn("diagnostic", "msg", o.Msg, "var", v.String())
		}
	case rules.ScriptOutcome:
		if o.Key != nil {
			s.ctx.Set(o.Table, o.Key(v), o.Value)
		}
	}
}

// commit interns the destination node for sc.Dst and records the exploded
// edge, pushing the destination onto the worklist if it is newly
// discovered. It returns the interned destination node.
func (s *solver) commit(n *ExplodedNode, e ir.Edge, sc *state.ShapeChange, match rules.Match, outcome rules.Outcome) *ExplodedNode {
	dstNode, created := s.graph.internNode(e.Dst(), sc.Dst)
	s.graph.addEdge(&ExplodedEdge{Src: n, Dst: dstNode, Inner: e, Match: match, Outcome: outcome})
	if created {
		s.worklist = append(s.worklist, dstNode)
	}
	return dstNode
}

// reportLeaks walks the cells sc's purge_locals dropped and emits a leak
// diagnostic for every one that was not in the default state when it
// vanished (spec.md §4.2 "iter_leaks"; §8, E3 — "leak via return"). The
// diagnostic is attached to dstNode so it sorts and narrates at the exit
// edge's destination, which for a function with no caller is a synthetic
// exit node whose Loc falls back to the function's end location.
func (s *solver) reportLeaks(n, dstNode *ExplodedNode, sc *state.ShapeChange) {
	def := s.ctx.DefaultState()
	for _, v := range sc.IterLeaks() {
		if n.Shape.GetState(def, v) == def {
			continue
		}
		s.graph.addDiagnostic(Diagnostic{
			Node:  dstNode,
			Match: leakMatch{v: v},
			Msg:   fmt.Sprintf("leak of %s", v.String()),
		})
		if !s.cfg.cacheErrors {
			s.cfg.logger.Warn("diagnostic", "msg", "leak of %s", "var", v.String())
		}
	}
}
