package analyze

import (
	"fmt"
	"strings"
)

// FieldGroup is a set of fields treated as one interchangeable counting
// unit. Once resolved, its integer value lies in [0, Size()].
//
// Construction deduplicates; insertion order is preserved so iteration and
// rendering are deterministic. A group is never mutated after construction.
//
// Identity matters: groups are map keys and rule members by pointer, not by
// content. Use Equals only for diagnostics.
type FieldGroup[T comparable] struct {
	fields []T
}

// KnownValues maps resolved groups to their forced value. It is owned by
// the propagation driver and passed into Simplify. Entries are append-only
// during a pass; a contradiction would indicate a driver bug, not puzzle
// data.
type KnownValues[T comparable] map[*FieldGroup[T]]int

// NewFieldGroup creates a group from fields, dropping duplicates while
// keeping first-occurrence order. The input slice is not retained.
func NewFieldGroup[T comparable](fields []T) *FieldGroup[T] {
	g := &FieldGroup[T]{fields: make([]T, 0, len(fields))}
	for _, f := range fields {
		if !g.Contains(f) {
			g.fields = append(g.fields, f)
		}
	}
	return g
}

// Size returns the number of distinct fields in the group.
func (g *FieldGroup[T]) Size() int {
	return len(g.fields)
}

// IsEmpty reports whether the group has no fields. An empty group is
// logically the value 0 and must not be added as a live rule member.
func (g *FieldGroup[T]) IsEmpty() bool {
	return len(g.fields) == 0
}

// Fields returns a copy of the member fields in deterministic order.
func (g *FieldGroup[T]) Fields() []T {
	out := make([]T, len(g.fields))
	copy(out, g.fields)
	return out
}

// Contains reports whether f is a member. Groups are small (a cell has few
// neighbors), so a linear scan is fine.
func (g *FieldGroup[T]) Contains(f T) bool {
	for _, existing := range g.fields {
		if existing == f {
			return true
		}
	}
	return false
}

// Equals reports content equality regardless of order. Diagnostic use only;
// rule membership and KnownValues keys use pointer identity.
func (g *FieldGroup[T]) Equals(other *FieldGroup[T]) bool {
	if g == other {
		return true
	}
	if other == nil || len(g.fields) != len(other.fields) {
		return false
	}
	for _, f := range g.fields {
		if !other.Contains(f) {
			return false
		}
	}
	return true
}

// String renders the group as "(a + b)". Debugging aid, not a
// compatibility surface.
func (g *FieldGroup[T]) String() string {
	var sb strings.Builder
	sb.WriteByte('(')
	for i, f := range g.fields {
		if i > 0 {
			sb.WriteString(" + ")
		}
		fmt.Fprintf(&sb, "%v", f)
	}
	sb.WriteByte(')')
	return sb.String()
}
