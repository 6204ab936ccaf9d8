package irfixture

import "github.com/smlang/smsolve/ir"

// Stmt is a fixture-level ir.Statement covering every accessor the engine
// and the built-in pattern library read: assignment/phi shape via Kind,
// plus the independent Call/Deref accessors.
type Stmt struct {
	StmtKind ir.StatementKind
	Lval     ir.Variable
	Rval     ir.Variable
	Phi      ir.Variable
	StmtLoc  ir.Location

	CallName string
	CallArgs []ir.Variable
	CallLval ir.Variable
	isCall   bool

	DerefPtr ir.Variable
	isDeref  bool
}

func (s *Stmt) Kind() ir.StatementKind { return s.StmtKind }
func (s *Stmt) LValue() ir.Variable    { return s.Lval }
func (s *Stmt) RValue() ir.Variable    { return s.Rval }
func (s *Stmt) PhiInput() ir.Variable  { return s.Phi }
func (s *Stmt) Loc() ir.Location       { return s.StmtLoc }

func (s *Stmt) Call() (string, []ir.Variable, ir.Variable, bool) {
	if !s.isCall {
		return "", nil, nil, false
	}
	return s.CallName, s.CallArgs, s.CallLval, true
}

func (s *Stmt) Deref() (ir.Variable, bool) {
	if !s.isDeref {
		return nil, false
	}
	return s.DerefPtr, true
}

// Assign builds an `lval = rval` statement (ir.StmtAssignCopy).
func Assign(loc ir.Location, lval, rval ir.Variable) *Stmt {
	return &Stmt{StmtKind: ir.StmtAssignCopy, Lval: lval, Rval: rval, StmtLoc: loc}
}

// FieldAssign builds an `lval = container.field` statement
// (ir.StmtAssignField); rval is the container.
func FieldAssign(loc ir.Location, lval, container ir.Variable) *Stmt {
	return &Stmt{StmtKind: ir.StmtAssignField, Lval: lval, Rval: container, StmtLoc: loc}
}

// Phi builds a single-predecessor phi statement.
func Phi(loc ir.Location, lval, input ir.Variable) *Stmt {
	return &Stmt{StmtKind: ir.StmtPhi, Lval: lval, Phi: input, StmtLoc: loc}
}

// Call builds a call statement assigning its result to lval (nil if
// discarded); Kind is StmtOther, since a call is not a plain copy.
func Call(loc ir.Location, name string, args []ir.Variable, lval ir.Variable) *Stmt {
	return &Stmt{StmtKind: ir.StmtOther, CallName: name, CallArgs: args, CallLval: lval, isCall: true, StmtLoc: loc}
}

// Deref builds a dereference statement, e.g. `*ptr` or `ptr->field`.
func Deref(loc ir.Location, ptr ir.Variable) *Stmt {
	return &Stmt{StmtKind: ir.StmtOther, DerefPtr: ptr, isDeref: true, StmtLoc: loc}
}

// Other builds a plain StmtOther with no special accessor set, for nodes
// that only exist to shape control flow (e.g. branch conditions).
func Other(loc ir.Location) *Stmt {
	return &Stmt{StmtKind: ir.StmtOther, StmtLoc: loc}
}
