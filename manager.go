package opana

import (
	"fmt"

	"github.com/sirkon/opana/ir"
)

// AnalysisManager is a handle over one node of the analysis tree. This is
// what passes hold and use: cheap to copy, owns nothing, stays valid while
// the Root owning the referenced node is alive and the node was not pruned
// away by a Clear higher up.
//
// The manager does no locking. Handles may be used concurrently only over
// disjoint subtrees whose shared ancestor nodes were materialized
// beforehand (with Nest); everything else must be serialized by the caller.
type AnalysisManager struct {
	impl *nodeState
}

// Operation returns the operation this handle is anchored at.
func (am AnalysisManager) Operation() ir.Operation {
	return am.impl.operation()
}

// Instrumentation returns the process-wide instrumentation recorded at the
// root, nil if the Root was built without one.
func (am AnalysisManager) Instrumentation() Instrumentation {
	return am.impl.instrumentation()
}

// Nest returns a handle for op, which must be a proper descendant of the
// current handle's operation. Every missing node on the path down to op is
// materialized. A non-descendant op is a bug at the call site and panics.
func (am AnalysisManager) Nest(op ir.Operation) AnalysisManager {
	cur := am.impl.operation()
	if !ir.IsProperAncestor(cur, op) {
		panic(fmt.Sprintf("nest %q: not a descendant of %q", op.OpName(), cur.OpName()))
	}

	// The path from op up to, not including, the current operation.
	var path []ir.Operation
	for o := op; o != cur; o = o.Parent() {
		path = append(path, o)
	}

	node := am.impl
	for i := len(path) - 1; i >= 0; i-- {
		node = node.childFor(path[i])
	}

	return AnalysisManager{impl: node}
}

// Invalidate prunes analyses not covered by pa on this node and,
// recursively, on every materialized descendant. Descendants never touched
// by queries hold nothing and are skipped by construction.
func (am AnalysisManager) Invalidate(pa *PreservedAnalyses) {
	am.impl.invalidate(pa)
}

// Clear drops the node's cache and destroys every descendant node. This is
// deeper than Invalidate and irreversible: handles previously obtained for
// the destroyed descendants must not be used afterwards.
func (am AnalysisManager) Clear() {
	am.impl.clear()
}
