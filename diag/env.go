package diag

import (
	"github.com/smlang/smsolve/ir"
	"github.com/smlang/smsolve/rules"
)

// noopEnv is a throwaway rules.Env for rendering witness step descriptions:
// Match.Description only needs its own bound text here, not live lookups
// against a compiled rulectx.Context.
type noopEnv struct{}

func (noopEnv) LookupDecl(name string) (rules.Decl, bool)       { return rules.Decl{}, false }
func (noopEnv) LookupPattern(name string) (rules.Pattern, bool) { return nil, false }
func (noopEnv) IsStatefulVar(v ir.Variable) bool                { return v != nil }
func (noopEnv) DefaultState() string                            { return "" }
func (noopEnv) Lookup(table, key string) bool                   { return false }
