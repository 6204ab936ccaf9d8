package state

import (
	"sort"

	"github.com/smlang/smsolve/ir"
)

// GetState returns the state of v: defaultState if v has no explicit Cell,
// else the Cell's current value (spec.md §4.1, "get_state").
func (s *Shape) GetState(defaultState string, v ir.Variable) string {
	v = v.Canonical()
	if c, ok := s.cells[v]; ok {
		return c.State()
	}
	return defaultState
}

// SetState writes st into v's existing Cell if present (visible to every
// alias of that Cell), or installs a fresh private Cell holding st
// (spec.md §4.1, "set_state").
func (s *Shape) SetState(v ir.Variable, st string) {
	v = v.Canonical()
	if c, ok := s.cells[v]; ok {
		c.state = st
		return
	}
	s.cells[v] = &Cell{state: st}
}

// VarHasState reports whether v has an explicit Cell in this Shape
// (spec.md §4.1, "var_has_state").
func (s *Shape) VarHasState(v ir.Variable) bool {
	_, ok := s.cells[v.Canonical()]
	return ok
}

// IterAliases returns every variable in this Shape referencing c, sorted by
// Variable.String() for reproducible diagnostic output (spec.md §4.1,
// "iter_aliases").
func (s *Shape) IterAliases(c *Cell) []ir.Variable {
	var out []ir.Variable
	for v, vc := range s.cells {
		if vc == c {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}

// CellOf returns v's Cell and whether it exists explicitly in this Shape.
func (s *Shape) CellOf(v ir.Variable) (*Cell, bool) {
	c, ok := s.cells[v.Canonical()]
	return c, ok
}

// assign aliases dst onto src's Cell. If src has no Cell yet, one holding
// defaultState is installed first, so the aliasing becomes observable
// (spec.md §4.1, "assign").
func (s *Shape) assign(dst, src ir.Variable, defaultState string) {
	dst = dst.Canonical()
	src = src.Canonical()
	if _, ok := s.cells[src]; !ok {
		s.cells[src] = &Cell{state: defaultState}
	}
	s.cells[dst] = s.cells[src]
}

// purgeLocals removes every local and parameter of fn from the map
// (spec.md §4.1, "purge_locals"). Invoked on exit-to-return-site edges.
func (s *Shape) purgeLocals(fn ir.Func) {
	drop := make(map[ir.Variable]struct{}, len(fn.Locals())+len(fn.Params()))
	for _, v := range fn.Locals() {
		drop[v.Canonical()] = struct{}{}
	}
	for _, v := range fn.Params() {
		drop[v.Canonical()] = struct{}{}
	}
	for v := range drop {
		delete(s.cells, v)
	}
}

// Clone returns a deep copy of s: a fresh Shape whose Cells are new
// instances, plus the mapping from each original Cell to its clone. Two
// variables that aliased the same Cell in s alias the same (new) Cell in
// the clone (spec.md §4.1, "clone", key invariant).
func (s *Shape) Clone() (*Shape, map[*Cell]*Cell) {
	cloneOf := make(map[*Cell]*Cell, len(s.cells))
	for _, c := range s.cells {
		if _, done := cloneOf[c]; !done {
			cloneOf[c] = &Cell{state: c.state}
		}
	}
	clone := &Shape{cells: make(map[ir.Variable]*Cell, len(s.cells))}
	for v, c := range s.cells {
		clone.cells[v] = cloneOf[c]
	}
	return clone, cloneOf
}

// Equal reports structural equality: same explicit variables, each mapped
// to a Cell of equal state. Cell identity plays no part (spec.md §3,
// "Shape", invariant 1).
func (s *Shape) Equal(other *Shape) bool {
	if other == nil {
		return false
	}
	if len(s.cells) != len(other.cells) {
		return false
	}
	for v, c := range s.cells {
		oc, ok := other.cells[v]
		if !ok || oc.State() != c.State() {
			return false
		}
	}
	return true
}

// Hash returns a structural hash consistent with Equal: an XOR-fold of
// per-entry hashes, so it is independent of map iteration order
// (spec.md §9, "Shape as a hash-map key").
func (s *Shape) Hash() uint64 {
	var h uint64
	for v, c := range s.cells {
		h ^= fnv1a(v.String()) * 1099511628211 ^ fnv1a(c.State())
	}
	return h
}

// fnv1a is a small string hash; used only to build Shape.Hash, not exposed.
func fnv1a(str string) uint64 {
	const offset = 14695981039346656037
	const prime = 1099511628211
	h := uint64(offset)
	for i := 0; i < len(str); i++ {
		h ^= uint64(str[i])
		h *= prime
	}
	return h
}
