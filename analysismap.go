package opana

import "github.com/sirkon/opana/ir"

// analysisMap is the cache of analyses computed for a single operation,
// keyed by analysis type. At most one instance per type lives here.
type analysisMap struct {
	op    ir.Operation
	cells map[TypeID]analysisCell
}

// getOrComputeIn returns the cached T instance of m, building it with
// construct on a miss. Instrumentation hooks fire around an actual
// construction only, never on a hit. A failed construction leaves the map
// untouched and its error is returned as is; the next request for T will
// try again.
func getOrComputeIn[T any](m *analysisMap, instr Instrumentation, construct func(*T) error) (*T, error) {
	id := TypeFor[T]()
	if cell, ok := m.cells[id]; ok {
		return cell.(*cellOf[T]).analysis, nil
	}

	if instr != nil {
		instr.BeforeAnalysis(id.Name(), id, m.op)
	}

	analysis := new(T)
	if err := construct(analysis); err != nil {
		return nil, err
	}

	if m.cells == nil {
		m.cells = map[TypeID]analysisCell{}
	}
	m.cells[id] = &cellOf[T]{analysis: analysis}

	if instr != nil {
		instr.AfterAnalysis(id.Name(), id, m.op)
	}

	return analysis, nil
}

// cachedIn returns the T instance of m if there is one. Never constructs,
// never notifies instrumentation.
func cachedIn[T any](m *analysisMap) (*T, bool) {
	cell, ok := m.cells[TypeFor[T]()]
	if !ok {
		return nil, false
	}
	return cell.(*cellOf[T]).analysis, true
}

// invalidate drops every cached analysis reporting itself invalidated
// under pa. Removal order is unspecified.
func (m *analysisMap) invalidate(pa *PreservedAnalyses) {
	for id, cell := range m.cells {
		if cell.isInvalidated(pa) {
			delete(m.cells, id)
		}
	}
}

// clear drops everything, preserved or not.
func (m *analysisMap) clear() {
	m.cells = nil
}
