package opana

import "github.com/sirkon/opana/ir"

// Root exclusively owns the analysis tree of one top-level operation. One
// is created at the start of processing a compilation unit and released,
// with the whole tree, at its end.
//
// A Root must not be copied. Manager is the only way to obtain the first
// handle over the tree.
type Root struct {
	noCopy noCopy

	analyses nodeState
}

// NewRoot anchors an analysis tree at op. instr may be nil.
func NewRoot(op ir.Operation, instr Instrumentation) *Root {
	return &Root{
		analyses: nodeState{
			analyses: analysisMap{op: op},
			origin:   rootOrigin{instr: instr},
		},
	}
}

// Manager returns a handle over the root node.
func (r *Root) Manager() AnalysisManager {
	return AnalysisManager{impl: &r.analyses}
}

// noCopy makes `go vet` report copies of the containing struct.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
