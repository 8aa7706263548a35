package analyze

// FieldGroupSplit is the partition of two overlapping groups into disjoint
// sub-groups. Both is always non-empty; OnlyA and OnlyB may be empty and
// callers must check before re-inserting them into a rule.
type FieldGroupSplit[T comparable] struct {
	Both  *FieldGroup[T]
	OnlyA *FieldGroup[T]
	OnlyB *FieldGroup[T]
}

// Split partitions a and b into intersection and differences. It returns
// nil when no refinement is possible: the groups are disjoint, or they
// contain exactly the same fields.
//
// Split is a pure set operation. It never mutates a or b; the returned
// groups are new objects even when their content coincides with an input.
func Split[T comparable](a, b *FieldGroup[T]) *FieldGroupSplit[T] {
	var both, onlyA, onlyB []T
	for _, f := range a.fields {
		if b.Contains(f) {
			both = append(both, f)
		} else {
			onlyA = append(onlyA, f)
		}
	}
	if len(both) == 0 {
		return nil // nothing in common
	}
	for _, f := range b.fields {
		if !a.Contains(f) {
			onlyB = append(onlyB, f)
		}
	}
	if len(onlyA) == 0 && len(onlyB) == 0 {
		return nil // same content, nothing to refine
	}
	return &FieldGroupSplit[T]{
		Both:  NewFieldGroup(both),
		OnlyA: NewFieldGroup(onlyA),
		OnlyB: NewFieldGroup(onlyB),
	}
}
