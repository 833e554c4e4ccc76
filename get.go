package opana

import (
	"fmt"

	"github.com/sirkon/opana/ir"
)

// Get returns the T instance of the handle's operation, computing and
// caching it on the first request. The requirement that T is constructible
// from a plain operation binds at compile time through the constraint. A
// Compute error aborts the request, caches nothing and comes back as is.
func Get[T any, PT interface {
	*T
	Analysis
}](am AnalysisManager) (*T, error) {
	return getAnalysis[T, PT](am.impl)
}

// GetTyped is Get for analyses declaring a constructor over a specific
// operation type: the handle's operation is narrowed to O first. An
// operation of any other type is a bug at the call site and panics.
func GetTyped[T any, O ir.Operation, PT interface {
	*T
	TypedAnalysis[O]
}](am AnalysisManager) (*T, error) {
	return getTypedAnalysis[T, O, PT](am.impl)
}

// GetCached returns the cached T instance of the handle's operation if
// there is one. It never computes anything and fires no instrumentation.
func GetCached[T any](am AnalysisManager) (*T, bool) {
	return cachedIn[T](&am.impl.analyses)
}

// GetChild resolves op, a descendant of the handle's operation, and
// returns its T, computing it if needed. Missing intermediate nodes are
// materialized exactly as with Nest.
func GetChild[T any, PT interface {
	*T
	Analysis
}](am AnalysisManager, op ir.Operation) (*T, error) {
	return getAnalysis[T, PT](am.Nest(op).impl)
}

// GetTypedChild is GetChild for analyses bound to a specific operation
// type.
func GetTypedChild[T any, O ir.Operation, PT interface {
	*T
	TypedAnalysis[O]
}](am AnalysisManager, op O) (*T, error) {
	return getTypedAnalysis[T, O, PT](am.Nest(op).impl)
}

// GetCachedChild returns the T cached on an immediate child operation of
// the handle, without materializing anything. A childOp that is not an
// immediate child is a bug at the call site and panics.
func GetCachedChild[T any](am AnalysisManager, childOp ir.Operation) (*T, bool) {
	if childOp.Parent() != am.impl.operation() {
		panic(fmt.Sprintf(
			"cached child analysis: %q is not an immediate child of %q",
			childOp.OpName(), am.impl.operation().OpName(),
		))
	}

	child, ok := am.impl.children[childOp]
	if !ok {
		return nil, false
	}
	return cachedIn[T](&child.analyses)
}

// GetCachedParent walks the materialized ancestor chain of the handle
// looking for ancestorOp and returns its cached T. It reports absence both
// when ancestorOp holds no T and when no node was ever materialized for it:
// a real ancestor nobody descended through still comes out absent.
func GetCachedParent[T any](am AnalysisManager, ancestorOp ir.Operation) (*T, bool) {
	for node := am.impl.parent(); node != nil; node = node.parent() {
		if node.operation() == ancestorOp {
			return cachedIn[T](&node.analyses)
		}
	}
	return nil, false
}

func getAnalysis[T any, PT interface {
	*T
	Analysis
}](node *nodeState) (*T, error) {
	return getOrComputeIn(&node.analyses, node.instrumentation(), func(v *T) error {
		return PT(v).Compute(node.operation())
	})
}

func getTypedAnalysis[T any, O ir.Operation, PT interface {
	*T
	TypedAnalysis[O]
}](node *nodeState) (*T, error) {
	op, ok := node.operation().(O)
	if !ok {
		panic(fmt.Sprintf(
			"analysis %s: operation %q is not a %s",
			TypeFor[T](), node.operation().OpName(), TypeFor[O](),
		))
	}

	return getOrComputeIn(&node.analyses, node.instrumentation(), func(v *T) error {
		return PT(v).ComputeTyped(op)
	})
}
