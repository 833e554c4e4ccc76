package ir

// Operation is a single node of the hierarchical program representation
// analyses are computed for.
//
// Implementations must be pointer-shaped: two Operation values denote the
// same operation exactly when they compare equal with ==. Operations are
// used as map keys under this assumption.
type Operation interface {
	// OpName returns a human-readable name of the operation.
	OpName() string

	// Parent returns the operation this one is nested in, nil at the root.
	Parent() Operation
}

// Container marks operations that expose the operations nested in them.
// Analyses traversing a subtree downward rely on it.
type Container interface {
	Operation

	// Children returns the immediate nested operations. The slice must not
	// be mutated by the caller.
	Children() []Operation
}

// IsProperAncestor reports whether ancestor is strictly above op in the
// operation tree. An operation is not its own ancestor.
func IsProperAncestor(ancestor, op Operation) bool {
	for p := op.Parent(); p != nil; p = p.Parent() {
		if p == ancestor {
			return true
		}
	}
	return false
}
