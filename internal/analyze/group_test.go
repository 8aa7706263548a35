package analyze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFieldGroup_Deduplicates(t *testing.T) {
	g := NewFieldGroup([]string{"a", "b", "a", "c", "b"})

	assert.Equal(t, 3, g.Size())
	assert.Equal(t, []string{"a", "b", "c"}, g.Fields(), "first-occurrence order is preserved")
}

func TestFieldGroup_Contains(t *testing.T) {
	g := NewFieldGroup([]string{"a", "b"})

	assert.True(t, g.Contains("a"))
	assert.True(t, g.Contains("b"))
	assert.False(t, g.Contains("c"))
}

func TestFieldGroup_FieldsReturnsCopy(t *testing.T) {
	g := NewFieldGroup([]string{"a", "b"})

	fields := g.Fields()
	fields[0] = "mutated"

	assert.Equal(t, []string{"a", "b"}, g.Fields(), "mutating the view must not affect the group")
}

func TestFieldGroup_Equals(t *testing.T) {
	a := NewFieldGroup([]string{"a", "b"})

	testCases := []struct {
		name  string
		other *FieldGroup[string]
		want  bool
	}{
		{"same object", a, true},
		{"same content", NewFieldGroup([]string{"a", "b"}), true},
		{"same content, different order", NewFieldGroup([]string{"b", "a"}), true},
		{"different content", NewFieldGroup([]string{"a", "c"}), false},
		{"subset", NewFieldGroup([]string{"a"}), false},
		{"nil", nil, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, a.Equals(tc.other))
		})
	}
}

func TestFieldGroup_EqualityIsNotIdentity(t *testing.T) {
	// Two groups with identical content are distinct entities: the known
	// values map is keyed by pointer, so they resolve independently.
	a := NewFieldGroup([]string{"a", "b"})
	b := NewFieldGroup([]string{"a", "b"})
	require.True(t, a.Equals(b))

	known := KnownValues[string]{}
	known[a] = 1

	_, ok := known[b]
	assert.False(t, ok)
}

func TestFieldGroup_String(t *testing.T) {
	assert.Equal(t, "(a + b)", NewFieldGroup([]string{"a", "b"}).String())
	assert.Equal(t, "(a)", NewFieldGroup([]string{"a"}).String())
	assert.Equal(t, "()", NewFieldGroup([]string{}).String())
}

func TestFieldGroup_Empty(t *testing.T) {
	g := NewFieldGroup([]string{})

	assert.True(t, g.IsEmpty())
	assert.Equal(t, 0, g.Size())
}
