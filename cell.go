package opana

import "github.com/sirkon/opana/ir"

// Analysis is implemented by analyses constructible from any operation.
// Compute fills the receiver from the operation state; on error the value
// is discarded and nothing gets cached.
type Analysis interface {
	Compute(op ir.Operation) error
}

// TypedAnalysis is implemented by analyses that only make sense for a
// specific operation type and want a pre-narrowed handle. The narrowing
// itself is done by the manager, see GetTyped.
type TypedAnalysis[O ir.Operation] interface {
	ComputeTyped(op O) error
}

// Invalidatable lets an analysis override the default invalidation rule.
// The hook receives the whole preserved set, so an analysis may stay alive
// or die based on the preservation of analyses it was derived from, not
// just its own.
//
// The hook is not consulted when everything was preserved: invalidation
// short-circuits on PreservedAnalyses.IsAll before reaching cached values.
type Invalidatable interface {
	IsInvalidated(pa *PreservedAnalyses) bool
}

// analysisCell is the erased view of one cached analysis instance.
type analysisCell interface {
	// isInvalidated reports whether the instance must be dropped given
	// what the last pass preserved.
	isInvalidated(pa *PreservedAnalyses) bool
}

// cellOf holds a concrete analysis instance behind analysisCell.
type cellOf[T any] struct {
	analysis *T
}

func (c *cellOf[T]) isInvalidated(pa *PreservedAnalyses) bool {
	if custom, ok := any(c.analysis).(Invalidatable); ok {
		return custom.IsInvalidated(pa)
	}
	return !pa.IsPreservedID(TypeFor[T]())
}
