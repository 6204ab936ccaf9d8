package explode

import "fmt"

// InvariantError reports a violation of an internal invariant Solve relies
// on — almost always a sign that an ir.Supergraph implementation violated
// its contract (e.g. an EdgeCallToCalleeEntry edge with a nil CalleeFunc).
// Solve recovers from a panicking IR provider and wraps it as an
// InvariantError rather than crashing the whole analysis run.
type InvariantError struct {
	Where string
	Cause error
}

func (e *InvariantError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("explode: invariant violated in %s: %v", e.Where, e.Cause)
	}
	return fmt.Sprintf("explode: invariant violated in %s", e.Where)
}

func (e *InvariantError) Unwrap() error { return e.Cause }

func newInvariantError(where string, cause error) *InvariantError {
	return &InvariantError{Where: where, Cause: cause}
}
