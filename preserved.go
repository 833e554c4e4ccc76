package opana

// allAnalyses is the marker type whose TypeID stands for "every analysis".
type allAnalyses struct{}

// PreservedAnalyses records the analyses known to survive a transformation.
// A pass fills one in after running, the manager consumes it once in
// Invalidate; the value is not meant to be reused across pass invocations.
//
// The all-marker does not populate per-id membership: IsPreservedID is a
// plain set lookup and stays false for ids never preserved explicitly, even
// after PreserveAll. A caller that wants "all implies any given id" must
// check IsAll first. Invalidation does exactly that: with IsAll it returns
// without scanning cached analyses at all, so per-analysis invalidation
// hooks are not consulted in that case.
type PreservedAnalyses struct {
	ids map[TypeID]struct{}
}

// PreserveAll marks every analysis as preserved.
func (pa *PreservedAnalyses) PreserveAll() {
	pa.PreserveID(TypeFor[allAnalyses]())
}

// PreserveID marks the given analysis ids as preserved.
func (pa *PreservedAnalyses) PreserveID(ids ...TypeID) {
	if pa.ids == nil {
		pa.ids = make(map[TypeID]struct{}, len(ids))
	}
	for _, id := range ids {
		pa.ids[id] = struct{}{}
	}
}

// Preserve marks analysis type T as preserved.
func Preserve[T any](pa *PreservedAnalyses) {
	pa.PreserveID(TypeFor[T]())
}

// IsAll reports whether all analyses were marked preserved.
func (pa *PreservedAnalyses) IsAll() bool {
	_, ok := pa.ids[TypeFor[allAnalyses]()]
	return ok
}

// IsNone reports whether nothing was marked preserved.
func (pa *PreservedAnalyses) IsNone() bool {
	return len(pa.ids) == 0
}

// IsPreservedID reports whether the given id was preserved explicitly.
// It is a raw membership check, see the type comment before using it as a
// general preservation predicate.
func (pa *PreservedAnalyses) IsPreservedID(id TypeID) bool {
	_, ok := pa.ids[id]
	return ok
}

// IsPreserved reports whether analysis type T was preserved explicitly.
func IsPreserved[T any](pa *PreservedAnalyses) bool {
	return pa.IsPreservedID(TypeFor[T]())
}
