package diag

import "github.com/smlang/smsolve/ir"

// Sink receives narrated diagnostics. No package in this module writes to
// stdout directly; a CLI front end supplies a Sink that does.
type Sink interface {
	Error(loc ir.Location, msg string)
	Note(loc ir.Location, msg string)
}
