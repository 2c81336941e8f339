package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sadanandam5592/orca/pkg/document"
)

func TestMergeDistinct(t *testing.T) {
	eq := func(a, b int) bool { return a == b }

	tests := []struct {
		name     string
		a, b     []int
		expected []int
	}{
		{"keeps order of both lists", []int{1, 2}, []int{3, 4}, []int{1, 2, 3, 4}},
		{"drops values already present", []int{1, 2}, []int{2, 3, 1}, []int{1, 2, 3}},
		{"drops duplicates inside the first list", []int{1, 1, 2}, nil, []int{1, 2}},
		{"nil second list is empty", []int{5}, nil, []int{5}},
		{"both empty", nil, nil, []int{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, MergeDistinct(tc.a, tc.b, eq))
		})
	}
}

func TestMergeDistinctMapsComparesContent(t *testing.T) {
	a := []document.Map{email("a@x.com")}
	b := []document.Map{email("a@x.com"), email("b@x.com")}

	merged := MergeDistinctMaps(a, b)

	require.Len(t, merged, 2)
	assert.True(t, merged[1].Equal(email("b@x.com")))
}

func TestMarkAsInherited(t *testing.T) {
	original := []document.Map{email("a@x.com"), nil}

	marked := MarkAsInherited(original)

	require.Len(t, marked, 2)
	for _, m := range marked {
		v, ok := m["inherited"].AsBool()
		assert.True(t, ok && v)
	}
	assert.False(t, original[0].Has("inherited"))
	assert.True(t, MarkAsInherited(marked)[0].Equal(marked[0]))
}
