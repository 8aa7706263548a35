package analyze

import (
	"strconv"
	"strings"
)

// FieldRule is one linear constraint: group1 + group2 + ... = result.
//
// The group list is logically unordered but insertion order is preserved
// for deterministic rendering and iteration. The list is exclusively owned
// by the rule: CheckIntersection and Simplify mutate it through the rule's
// own methods only.
//
// INVARIANT: after every successful Simplify step, result stays within
// [0, sum of member group sizes]. A value outside that range is reported as
// a failure, never clamped.
type FieldRule[T comparable] struct {
	cause  *T
	groups []*FieldGroup[T]
	result int
}

// NewFieldRule creates a rule from raw fields and a target sum. A single
// new FieldGroup is created for the fields (duplicates dropped). The cause
// is an optional provenance token for diagnostics; it plays no part in
// arithmetic and may be nil.
func NewFieldRule[T comparable](cause *T, fields []T, result int) *FieldRule[T] {
	return NewFieldGroupRule(cause, NewFieldGroup(fields), result)
}

// NewFieldGroupRule creates a rule over an existing group. Used when the
// caller already holds a shared group and wants a second constraint linked
// to it.
func NewFieldGroupRule[T comparable](cause *T, group *FieldGroup[T], result int) *FieldRule[T] {
	return &FieldRule[T]{
		cause:  cause,
		groups: []*FieldGroup[T]{group},
		result: result,
	}
}

// Clone copies the rule. The group list is copied; the groups themselves
// are shared, which is safe because group content never changes. A
// downstream search clones rules before exploring a branch.
func (r *FieldRule[T]) Clone() *FieldRule[T] {
	groups := make([]*FieldGroup[T], len(r.groups))
	copy(groups, r.groups)
	return &FieldRule[T]{cause: r.cause, groups: groups, result: r.result}
}

// Cause returns the provenance token, or false if none was supplied.
func (r *FieldRule[T]) Cause() (T, bool) {
	if r.cause == nil {
		var zero T
		return zero, false
	}
	return *r.cause, true
}

// FieldGroups returns a copy of the member group list.
func (r *FieldRule[T]) FieldGroups() []*FieldGroup[T] {
	out := make([]*FieldGroup[T], len(r.groups))
	copy(out, r.groups)
	return out
}

// GroupCount returns the number of member groups.
func (r *FieldRule[T]) GroupCount() int {
	return len(r.groups)
}

// FieldCount returns the total number of fields across all member groups.
func (r *FieldRule[T]) FieldCount() int {
	n := 0
	for _, g := range r.groups {
		n += g.Size()
	}
	return n
}

// Result returns the rule's current right-hand side.
func (r *FieldRule[T]) Result() int {
	return r.result
}

// SmallestFieldGroup returns the member group with the fewest fields, or
// nil for an empty rule. A downstream search uses it to pick the cheapest
// variable to branch on.
func (r *FieldRule[T]) SmallestFieldGroup() *FieldGroup[T] {
	if len(r.groups) == 0 {
		return nil
	}
	smallest := r.groups[0]
	for _, g := range r.groups {
		if g.Size() < smallest.Size() {
			smallest = g
		}
	}
	return smallest
}

// IsEmpty reports whether the rule is fully resolved and contributes
// nothing: no groups and result zero.
func (r *FieldRule[T]) IsEmpty() bool {
	return len(r.groups) == 0 && r.result == 0
}

// CheckIntersection brings this rule and other into mutual consistency so
// their arithmetic can later be combined.
//
// For every pair of groups across the two rules that are not the same
// object, it attempts a Split. On the first pair with a real split, it
// replaces the overlapping groups: the shared Both group is inserted into
// BOTH rules (linking the constraints through a common sub-variable), and
// the non-empty differences go to their respective rules. It then stops and
// reports true.
//
// At most one split happens per call. Repeatedly calling this across all
// rule pairs until none reports a split is the driver's fixed-point loop;
// one split per call keeps each call cheap and leaves propagation order to
// the driver.
//
// Returns false when the rules are the same object or no pair overlaps in
// a splittable way. Mutates the group lists of both rules; never changes
// either result.
func (r *FieldRule[T]) CheckIntersection(other *FieldRule[T]) bool {
	if r == other {
		return false
	}

	// Iterate over copies: the group lists are edited once a split is found.
	groupsA := r.FieldGroups()
	groupsB := other.FieldGroups()

	for _, groupA := range groupsA {
		for _, groupB := range groupsB {
			if groupA == groupB {
				continue
			}
			split := Split(groupA, groupB)
			if split == nil {
				continue
			}

			r.replaceGroup(groupA, split.Both, split.OnlyA)
			other.replaceGroup(groupB, split.Both, split.OnlyB)
			return true
		}
	}
	return false
}

// replaceGroup swaps old for the shared intersection group plus the
// non-empty remainder. This is the only way a rule's group list changes
// during intersection resolution.
func (r *FieldRule[T]) replaceGroup(old, both, remainder *FieldGroup[T]) {
	for i, g := range r.groups {
		if g == old {
			r.groups = append(r.groups[:i], r.groups[i+1:]...)
			break
		}
	}
	r.groups = append(r.groups, both)
	if !remainder.IsEmpty() {
		r.groups = append(r.groups, remainder)
	}
}

// Simplify removes member groups whose value is already known, adjusts
// result accordingly, and records any newly forced values in known.
//
// Evaluation order:
//  1. An already-empty rule reports NoEffect.
//  2. Known groups are removed and subtracted from result; the sizes of the
//     remaining unknown groups accumulate into totalCount.
//  3. result < 0 reports FailedNegativeResult.
//  4. result > totalCount reports FailedTooBigResult.
//  5. Exactly one unknown group left: its value is forced to result; the
//     rule is cleared.
//  6. result == 0: every remaining group is forced to 0; the rule is
//     cleared.
//  7. totalCount == result: every remaining group is saturated to its own
//     size. The group list is deliberately NOT cleared: downstream
//     combinatorial counting still needs the rule's shape to weight this
//     configuration via NCr.
//  8. Otherwise NoEffect.
func (r *FieldRule[T]) Simplify(known KnownValues[T]) SimplifyResult {
	if r.IsEmpty() {
		return NoEffect
	}

	totalCount := 0
	unknown := r.groups[:0]
	for _, group := range r.groups {
		if value, ok := known[group]; ok {
			r.result -= value
		} else {
			unknown = append(unknown, group)
			totalCount += group.Size()
		}
	}
	r.groups = unknown

	// (a) + (b) = -2 is not a valid rule.
	if r.result < 0 {
		return FailedNegativeResult
	}

	// (a) + (b) = 42 is not a valid rule.
	if r.result > totalCount {
		return FailedTooBigResult
	}

	// A single remaining group gets the whole result.
	if len(r.groups) == 1 {
		known[r.groups[0]] = r.result
		r.clear()
		return Simplified
	}

	// (a + b) + (c + d) = 0 forces every group to zero.
	if r.result == 0 {
		for _, group := range r.groups {
			known[group] = 0
		}
		r.clear()
		return Simplified
	}

	// (a + b) + (c + d) = 4 saturates every group to its own size. Each
	// group's value is bounded by its size, so totalCount == result forces
	// value == size for every member; the proportional form below is exact.
	if totalCount == r.result {
		for _, group := range r.groups {
			known[group] = r.result * group.Size() / totalCount
		}
		return Simplified
	}

	return NoEffect
}

func (r *FieldRule[T]) clear() {
	r.groups = nil
	r.result = 0
}

// NCr returns the number of ways to place the rule's result among its
// fields, as a float (the value feeds probability weighting downstream).
//
// The rule must consist of exactly one remaining group; calling NCr on a
// multi-group rule is a driver bug and panics.
func (r *FieldRule[T]) NCr() float64 {
	if len(r.groups) != 1 {
		panic("analyze: NCr requires a rule with exactly one group")
	}
	return NCR(r.FieldCount(), r.result)
}

// String renders the rule as "(a + b) + (c) = 1". Debugging aid only.
func (r *FieldRule[T]) String() string {
	var sb strings.Builder
	for i, g := range r.groups {
		if i > 0 {
			sb.WriteString(" + ")
		}
		sb.WriteString(g.String())
	}
	sb.WriteString(" = ")
	sb.WriteString(strconv.Itoa(r.result))
	return sb.String()
}
