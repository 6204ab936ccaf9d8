// Package irfixture is a small functional builder for constructing
// ir.Supergraph fixtures in tests, in the style of the teacher's
// builder.BuildGraph + Constructor closures. It exists solely to encode
// the use-after-free/double-free/leak scenarios of spec.md §8 (E1–E6)
// without a real compiler front end, and is imported only from _test.go
// files.
package irfixture
