package ir

import (
	"go/token"

	"github.com/sirkon/rbtree"
)

// NewSpanIndex returns an empty position index.
func NewSpanIndex() *SpanIndex {
	return &SpanIndex{tree: rbtree.New[*indexSpan]()}
}

// SpanIndex maps source positions to operations. A position covered by
// several nested operations resolves to the innermost one.
type SpanIndex struct {
	tree *rbtree.Tree[*indexSpan]
}

// Add registers op with the [s.Start, s.End] range it covers.
// Ranges of any two registered operations must be either disjoint or in a
// strict containment relation; a partial overlap breaks the tree model and
// panics.
func (x *SpanIndex) Add(op Operation, s Span) {
	placeSpan(x.tree, &indexSpan{start: s.Start, end: s.End, op: op})
}

// At returns the innermost operation covering pos, nil if no registered
// range covers it.
func (x *SpanIndex) At(pos token.Pos) Operation {
	probe := &indexSpan{start: pos, end: pos}
	found := x.tree.Search(probe)
	if found == nil {
		return nil
	}
	return narrowAt(found, pos)
}

// indexSpan stores a [start, end] range for one operation and, if needed, a
// nested RB-tree of ranges fully contained in this one.
type indexSpan struct {
	start token.Pos
	end   token.Pos

	op       Operation
	children *rbtree.Tree[*indexSpan]
}

// Cmp orders spans as "disjoint by position": any kind of overlap compares
// equal. The RB-tree then reports the overlapping resident back on
// insertion, and containment gets resolved outside of it.
func (s *indexSpan) Cmp(other *indexSpan) int {
	if s.end < other.start { // strictly before
		return -1
	}
	if s.start > other.end { // strictly after
		return 1
	}
	return 0 // overlapping (containment or equal boundaries)
}

func covers(a, b *indexSpan) bool {
	return a.start <= b.start && a.end >= b.end
}

// placeSpan inserts s into t with containment fix-up:
//   - no overlapping resident: s becomes a sibling, nothing else to do;
//   - s covers the resident r: s takes r's place in the tree and the old r
//     descends into its children, keeping r's own subtree intact;
//   - r covers s: s descends into r's children recursively.
//
// Under the no-partial-overlap invariant these are the only cases.
func placeSpan(t *rbtree.Tree[*indexSpan], s *indexSpan) {
	r := t.InsertReturn(s)
	if r == s {
		return
	}

	if covers(s, r) {
		old := *r
		*r = *s
		r.children = rbtree.New[*indexSpan]()
		placeSpan(r.children, &old)
		return
	}

	if covers(r, s) {
		if r.children == nil {
			r.children = rbtree.New[*indexSpan]()
		}
		placeSpan(r.children, s)
		return
	}

	panic("placeSpan: partially overlapping spans are not supported")
}

func narrowAt(s *indexSpan, pos token.Pos) Operation {
	if s.children == nil {
		return s.op
	}
	probe := &indexSpan{start: pos, end: pos}
	child := s.children.Search(probe)
	if child == nil {
		return s.op
	}
	if op := narrowAt(child, pos); op != nil {
		return op
	}
	return s.op
}
