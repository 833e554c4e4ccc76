package opana

import (
	"fmt"
	"sync"

	"github.com/sirkon/opana/ir"
)

// Recorder is an Instrumentation collecting the log of analysis
// constructions. It is handy for run reports and as a counting observer in
// tests.
type Recorder struct {
	mu      sync.Mutex
	records []ConstructionRecord
}

var _ Instrumentation = (*Recorder)(nil)

// ConstructionRecord is a single construction event.
type ConstructionRecord struct {
	Phase ConstructionPhase
	Name  string
	ID    TypeID
	Op    ir.Operation
}

// ConstructionPhase marks which side of a construction a record belongs to.
type ConstructionPhase int

const (
	constructionPhaseInvalid ConstructionPhase = iota
	PhaseBefore
	PhaseAfter
)

func (p ConstructionPhase) String() string {
	switch p {
	case PhaseBefore:
		return "before"
	case PhaseAfter:
		return "after"
	default:
		return fmt.Sprintf("unknown-phase(%d)", p)
	}
}

func (r *Recorder) BeforeAnalysis(name string, id TypeID, op ir.Operation) {
	r.add(ConstructionRecord{Phase: PhaseBefore, Name: name, ID: id, Op: op})
}

func (r *Recorder) AfterAnalysis(name string, id TypeID, op ir.Operation) {
	r.add(ConstructionRecord{Phase: PhaseAfter, Name: name, ID: id, Op: op})
}

func (r *Recorder) add(rec ConstructionRecord) {
	r.mu.Lock()
	r.records = append(r.records, rec)
	r.mu.Unlock()
}

// Records returns a copy of everything collected so far.
func (r *Recorder) Records() []ConstructionRecord {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]ConstructionRecord(nil), r.records...)
}

// Constructions returns how many completed constructions were observed.
func (r *Recorder) Constructions() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int
	for _, rec := range r.records {
		if rec.Phase == PhaseAfter {
			n++
		}
	}
	return n
}
