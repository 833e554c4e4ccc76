package opana

import (
	"errors"
	"reflect"
	"testing"

	"github.com/sirkon/deepequal"

	"github.com/sirkon/opana/ir"
)

type testOp struct {
	kind   string
	parent ir.Operation
}

func (o *testOp) OpName() string       { return o.kind }
func (o *testOp) Parent() ir.Operation { return o.parent }

func newChildOp(parent ir.Operation, kind string) *testOp {
	return &testOp{kind: kind, parent: parent}
}

// regionOp is a distinct operation type for narrowing checks.
type regionOp struct {
	testOp
}

type opNameAnalysis struct {
	Name string
}

func (a *opNameAnalysis) Compute(op ir.Operation) error {
	a.Name = op.OpName()
	return nil
}

type sizeAnalysis struct {
	N int
}

func (a *sizeAnalysis) Compute(ir.Operation) error {
	a.N = 1
	return nil
}

type regionAnalysis struct {
	Kind string
}

func (a *regionAnalysis) ComputeTyped(op *regionOp) error {
	a.Kind = op.kind
	return nil
}

var errNoLuck = errors.New("no luck this time")

type failingAnalysis struct{}

func (a *failingAnalysis) Compute(ir.Operation) error {
	return errNoLuck
}

// flakyOp counts construction attempts made against it, so every test gets
// its own counter.
type flakyOp struct {
	testOp
	attempts int
}

type flakyAnalysis struct {
	Attempt int
}

func (a *flakyAnalysis) Compute(op ir.Operation) error {
	f := op.(*flakyOp)
	f.attempts++
	if f.attempts == 1 {
		return errNoLuck
	}

	a.Attempt = f.attempts
	return nil
}

// dependentAnalysis survives a pass only when opNameAnalysis does too.
type dependentAnalysis struct{}

func (a *dependentAnalysis) Compute(ir.Operation) error { return nil }

func (a *dependentAnalysis) IsInvalidated(pa *PreservedAnalyses) bool {
	return !IsPreserved[dependentAnalysis](pa) || !IsPreserved[opNameAnalysis](pa)
}

func TestGetComputesOnce(t *testing.T) {
	op := &testOp{kind: "unit"}
	rec := &Recorder{}
	am := NewRoot(op, rec).Manager()

	first, err := Get[opNameAnalysis](am)
	if err != nil {
		t.Fatal(err)
	}
	if first.Name != "unit" {
		t.Fatalf("analysis over %q was expected, got %q", "unit", first.Name)
	}

	second, err := Get[opNameAnalysis](am)
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Fatal("the same instance was expected on the second request")
	}

	if got := rec.Constructions(); got != 1 {
		t.Fatalf("exactly one construction was expected, got %d", got)
	}
	if got := len(rec.Records()); got != 2 {
		t.Fatalf("one before/after hook pair was expected, got %d records", got)
	}
}

func TestInvalidateKeepsPreserved(t *testing.T) {
	op := &testOp{kind: "unit"}
	am := NewRoot(op, nil).Manager()

	if _, err := Get[opNameAnalysis](am); err != nil {
		t.Fatal(err)
	}
	if _, err := Get[sizeAnalysis](am); err != nil {
		t.Fatal(err)
	}

	var pa PreservedAnalyses
	Preserve[opNameAnalysis](&pa)
	am.Invalidate(&pa)

	if _, ok := GetCached[opNameAnalysis](am); !ok {
		t.Fatal("the preserved analysis was expected to stay cached")
	}
	if _, ok := GetCached[sizeAnalysis](am); ok {
		t.Fatal("the unpreserved analysis was expected to be dropped")
	}
}

func TestPreserveAllSkipsCells(t *testing.T) {
	op := &testOp{kind: "unit"}
	am := NewRoot(op, nil).Manager()

	// The custom rule of dependentAnalysis would report invalidated here:
	// nothing is in per-id membership. PreserveAll must never reach it.
	if _, err := Get[dependentAnalysis](am); err != nil {
		t.Fatal(err)
	}

	var pa PreservedAnalyses
	pa.PreserveAll()
	if IsPreserved[dependentAnalysis](&pa) {
		t.Fatal("the all marker must not populate per-id membership")
	}

	am.Invalidate(&pa)
	if _, ok := GetCached[dependentAnalysis](am); !ok {
		t.Fatal("everything was expected to survive an all-preserving pass")
	}
}

func TestDependentInvalidation(t *testing.T) {
	op := &testOp{kind: "unit"}

	t.Run("dependency dropped", func(t *testing.T) {
		am := NewRoot(op, nil).Manager()
		if _, err := Get[dependentAnalysis](am); err != nil {
			t.Fatal(err)
		}

		var pa PreservedAnalyses
		Preserve[dependentAnalysis](&pa)
		am.Invalidate(&pa)

		if _, ok := GetCached[dependentAnalysis](am); ok {
			t.Fatal("preserving the analysis alone must not keep it: its dependency was dropped")
		}
	})

	t.Run("dependency preserved", func(t *testing.T) {
		am := NewRoot(op, nil).Manager()
		if _, err := Get[dependentAnalysis](am); err != nil {
			t.Fatal(err)
		}

		var pa PreservedAnalyses
		Preserve[dependentAnalysis](&pa)
		Preserve[opNameAnalysis](&pa)
		am.Invalidate(&pa)

		if _, ok := GetCached[dependentAnalysis](am); !ok {
			t.Fatal("the analysis was expected to survive with its dependency preserved")
		}
	})
}

func TestChildAnalysisMaterializesPath(t *testing.T) {
	root := &testOp{kind: "root"}
	child := newChildOp(root, "child")
	grand := newChildOp(child, "grand")

	am := NewRoot(root, nil).Manager()

	got, err := GetChild[opNameAnalysis](am, grand)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "grand" {
		t.Fatalf("analysis over %q was expected, got %q", "grand", got.Name)
	}

	// The intermediate node materialized on the way down, so the cached
	// lookup at the immediate-child level sees the grandchild's analysis.
	childAM := am.Nest(child)
	if _, ok := GetCachedChild[opNameAnalysis](childAM, grand); !ok {
		t.Fatal("the grandchild analysis was expected to be reachable through the child node")
	}

	// Nothing was computed on the intermediate node itself.
	if _, ok := GetCachedChild[opNameAnalysis](am, child); ok {
		t.Fatal("no analysis was computed on the intermediate node")
	}
}

func TestTypedAnalysis(t *testing.T) {
	root := &testOp{kind: "root"}
	region := &regionOp{testOp{kind: "region", parent: root}}

	am := NewRoot(root, nil).Manager()

	got, err := GetTypedChild[regionAnalysis](am, region)
	if err != nil {
		t.Fatal(err)
	}
	if got.Kind != "region" {
		t.Fatalf("analysis over %q was expected, got %q", "region", got.Kind)
	}

	cached, ok := GetCached[regionAnalysis](am.Nest(region))
	if !ok || cached != got {
		t.Fatal("the same instance was expected through the nested handle")
	}
}

func TestTypedMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("a narrowing mismatch was expected to panic")
		}
	}()

	am := NewRoot(&testOp{kind: "plain"}, nil).Manager()
	_, _ = GetTyped[regionAnalysis, *regionOp](am)
}

func TestNestNonDescendantPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("nesting into a non-descendant was expected to panic")
		}
	}()

	root := &testOp{kind: "root"}
	stranger := &testOp{kind: "stranger"}

	am := NewRoot(root, nil).Manager()
	am.Nest(stranger)
}

func TestCachedChildNonImmediatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("a non-immediate child was expected to panic")
		}
	}()

	root := &testOp{kind: "root"}
	child := newChildOp(root, "child")
	grand := newChildOp(child, "grand")

	am := NewRoot(root, nil).Manager()
	GetCachedChild[opNameAnalysis](am, grand)
}

func TestClearDestroysSubtree(t *testing.T) {
	root := &testOp{kind: "root"}
	child := newChildOp(root, "child")
	grand := newChildOp(child, "grand")

	am := NewRoot(root, nil).Manager()

	if _, err := Get[opNameAnalysis](am); err != nil {
		t.Fatal(err)
	}
	if _, err := GetChild[opNameAnalysis](am, grand); err != nil {
		t.Fatal(err)
	}
	gam := am.Nest(grand)

	am.Clear()

	if _, ok := GetCached[opNameAnalysis](am); ok {
		t.Fatal("the node's own cache was expected to be emptied")
	}
	// The stale handle observes an empty node.
	if _, ok := GetCached[opNameAnalysis](gam); ok {
		t.Fatal("the destroyed descendant was expected to hold nothing")
	}
	// Re-descending builds fresh, empty nodes.
	if _, ok := GetCached[opNameAnalysis](am.Nest(grand)); ok {
		t.Fatal("a fresh node was expected after clear")
	}
}

func TestCachedParentAnalysis(t *testing.T) {
	root := &testOp{kind: "root"}
	child := newChildOp(root, "child")
	grand := newChildOp(child, "grand")

	am := NewRoot(root, nil).Manager()
	if _, err := Get[opNameAnalysis](am); err != nil {
		t.Fatal(err)
	}

	gam := am.Nest(grand)
	got, ok := GetCachedParent[opNameAnalysis](gam, root)
	if !ok {
		t.Fatal("the root analysis was expected to be visible from the grandchild")
	}
	if got.Name != "root" {
		t.Fatalf("analysis over %q was expected, got %q", "root", got.Name)
	}

	if _, ok := GetCachedParent[sizeAnalysis](gam, root); ok {
		t.Fatal("nothing of this type was ever computed on the root")
	}
}

func TestCachedParentUnmaterializedAncestor(t *testing.T) {
	// The tree is anchored below upper: upper stays a real ancestor in the
	// operation tree, yet no node is ever materialized for it.
	upper := &testOp{kind: "upper"}
	mid := newChildOp(upper, "mid")
	leaf := newChildOp(mid, "leaf")

	am := NewRoot(mid, nil).Manager()
	if _, err := Get[opNameAnalysis](am); err != nil {
		t.Fatal(err)
	}

	lam := am.Nest(leaf)
	if _, ok := GetCachedParent[opNameAnalysis](lam, upper); ok {
		t.Fatal("an ancestor without a node was expected to come out absent")
	}
}

func TestConstructionFailure(t *testing.T) {
	op := &testOp{kind: "unit"}
	rec := &Recorder{}
	am := NewRoot(op, rec).Manager()

	_, err := Get[failingAnalysis](am)
	if err != errNoLuck {
		t.Fatalf("the construction error was expected unmodified, got %v", err)
	}

	if _, ok := GetCached[failingAnalysis](am); ok {
		t.Fatal("a failed construction must cache nothing")
	}

	recs := rec.Records()
	if len(recs) != 1 || recs[0].Phase != PhaseBefore {
		t.Fatalf("only the before hook was expected to fire, got %v", recs)
	}
}

func TestConstructionRetriesAfterFailure(t *testing.T) {
	op := &flakyOp{testOp: testOp{kind: "unit"}}
	am := NewRoot(op, nil).Manager()

	if _, err := Get[flakyAnalysis](am); err == nil {
		t.Fatal("a failure was expected on the first attempt")
	}

	got, err := Get[flakyAnalysis](am)
	if err != nil {
		t.Fatal(err)
	}
	if got.Attempt != 2 {
		t.Fatalf("the second attempt was expected to be cached, got attempt %d", got.Attempt)
	}
}

func TestEndToEnd(t *testing.T) {
	r := &testOp{kind: "R"}
	c1 := newChildOp(r, "C1")
	c2 := newChildOp(r, "C2")

	rec := &Recorder{}
	am := NewRoot(r, rec).Manager()

	first, err := GetChild[sizeAnalysis](am, c1)
	if err != nil {
		t.Fatal(err)
	}
	if first.N != 1 {
		t.Fatalf("a computed analysis was expected, got %v", first)
	}

	id := TypeFor[sizeAnalysis]()
	expected := []ConstructionRecord{
		{Phase: PhaseBefore, Name: id.Name(), ID: id, Op: c1},
		{Phase: PhaseAfter, Name: id.Name(), ID: id, Op: c1},
	}
	recs := rec.Records()
	if !reflect.DeepEqual(expected, recs) {
		deepequal.SideBySide(t, "construction records", expected, recs)
	}

	second, err := GetChild[sizeAnalysis](am, c1)
	if err != nil {
		t.Fatal(err)
	}
	if second != first {
		t.Fatal("a cache hit was expected on the repeated request")
	}
	if got := rec.Constructions(); got != 1 {
		t.Fatalf("no new construction was expected, got %d in total", got)
	}

	// An empty preserved set drops everything, cascading from the root.
	var pa PreservedAnalyses
	if !pa.IsNone() {
		t.Fatal("a fresh preserved set was expected to be empty")
	}
	am.Invalidate(&pa)

	if _, ok := GetCachedChild[sizeAnalysis](am, c1); ok {
		t.Fatal("the child analysis was expected to be gone")
	}
	if _, ok := GetCachedChild[sizeAnalysis](am, c2); ok {
		t.Fatal("nothing was ever computed for the second child")
	}
}
