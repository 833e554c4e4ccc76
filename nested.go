package opana

import "github.com/sirkon/opana/ir"

// nodeState is one node of the analysis tree: the cache of its operation
// plus nodes of the child operations someone has already descended into.
// The tree mirrors only the visited subset of the operation tree, nothing
// is materialized eagerly.
type nodeState struct {
	analyses analysisMap

	// children holds a node per child operation touched so far. A node
	// owns its subtree: dropping the map here releases every descendant.
	children map[ir.Operation]*nodeState

	// origin is either a link to the parent node or, at the root, the
	// optional process-wide instrumentation.
	origin nodeOrigin
}

// nodeOrigin is the parent-or-instrumentation sum every node carries.
type nodeOrigin interface {
	isNodeOrigin()
}

type parentOrigin struct {
	parent *nodeState
}

func (parentOrigin) isNodeOrigin() {}

type rootOrigin struct {
	instr Instrumentation
}

func (rootOrigin) isNodeOrigin() {}

func (n *nodeState) operation() ir.Operation { return n.analyses.op }

// parent returns the parent node, nil at the root.
func (n *nodeState) parent() *nodeState {
	if p, ok := n.origin.(parentOrigin); ok {
		return p.parent
	}
	return nil
}

// instrumentation walks up to the root and returns what was recorded
// there. May be nil.
func (n *nodeState) instrumentation() Instrumentation {
	for {
		o, ok := n.origin.(parentOrigin)
		if !ok {
			return n.origin.(rootOrigin).instr
		}
		n = o.parent
	}
}

// childFor returns the node of childOp, materializing it on first touch.
func (n *nodeState) childFor(childOp ir.Operation) *nodeState {
	if child, ok := n.children[childOp]; ok {
		return child
	}

	child := &nodeState{
		analyses: analysisMap{op: childOp},
		origin:   parentOrigin{parent: n},
	}
	if n.children == nil {
		n.children = map[ir.Operation]*nodeState{}
	}
	n.children[childOp] = child

	return child
}

// invalidate prunes the node's own cache and cascades into every
// materialized child. With everything preserved it returns straight away
// and per-analysis hooks are not consulted, see PreservedAnalyses.
func (n *nodeState) invalidate(pa *PreservedAnalyses) {
	if pa.IsAll() {
		return
	}

	n.analyses.invalidate(pa)
	for _, child := range n.children {
		child.invalidate(pa)
	}
}

// clear drops the node's cache and destroys the whole subtree under it.
// Unlike invalidate this is unconditional and removes child nodes
// themselves, not just their caches. Descendants are emptied before being
// unlinked so that stale handles over them observe nothing.
func (n *nodeState) clear() {
	n.analyses.clear()
	for _, child := range n.children {
		child.clear()
	}
	n.children = nil
}
