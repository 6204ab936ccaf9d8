package state

import "github.com/smlang/smsolve/ir"

// Cell is a mutable holder for one state value. A Cell has identity
// distinct from its current value: two Cells holding equal states are not
// the same Cell (spec.md §3, "StateCell"). Multiple variables within one
// Shape may reference the same Cell; writing through one alias is visible
// through every other alias of that Cell, until the Shape is cloned.
type Cell struct {
	state string
}

// State returns the Cell's current value.
func (c *Cell) State() string {
	return c.state
}

// Shape is a finite mapping from ir.Variable to *Cell. A variable absent
// from the map is conceptually in the default state, with its own private
// implicit Cell (spec.md §3, "Shape").
type Shape struct {
	cells map[ir.Variable]*Cell
}

// New returns an empty Shape (every variable implicitly in its default
// state).
func New() *Shape {
	return &Shape{cells: make(map[ir.Variable]*Cell)}
}
