package irfixture

import "github.com/smlang/smsolve/ir"

// Var is a fixture-level ir.Variable: a bare name with no SSA structure,
// since tests never need more than one declaration per logical variable.
type Var struct {
	Name   string
	Ptr    bool
}

func (v *Var) String() string        { return v.Name }
func (v *Var) Canonical() ir.Variable { return v }
func (v *Var) IsPointer() bool        { return v.Ptr }

// NewVar constructs a pointer-typed Var, the common case for these fixtures.
func NewVar(name string) *Var { return &Var{Name: name, Ptr: true} }

// NewNonPointerVar constructs a non-pointer Var, for scenarios exercising
// the default is_stateful_var predicate's pointer check.
func NewNonPointerVar(name string) *Var { return &Var{Name: name, Ptr: false} }

// Loc is a fixture-level ir.Location.
type Loc struct {
	FileName string
	LineNum  int
	ColNum   int
}

func (l Loc) File() string { return l.FileName }
func (l Loc) Line() int    { return l.LineNum }
func (l Loc) Column() int  { return l.ColNum }

// At constructs a Loc at the given line, column 1, in file "fixture.c".
func At(line int) Loc { return Loc{FileName: "fixture.c", LineNum: line, ColNum: 1} }

// Func is a fixture-level ir.Func.
type Func struct {
	FnName    string
	FnLocals  []ir.Variable
	FnParams  []ir.Variable
	FnEndLoc  ir.Location
}

func (f *Func) Name() string          { return f.FnName }
func (f *Func) Locals() []ir.Variable { return f.FnLocals }
func (f *Func) Params() []ir.Variable { return f.FnParams }
func (f *Func) EndLoc() ir.Location   { return f.FnEndLoc }

// NewFunc constructs a Func with the given locals, ending at the given line.
func NewFunc(name string, locals []ir.Variable, endLine int) *Func {
	return &Func{FnName: name, FnLocals: locals, FnEndLoc: At(endLine)}
}
