package pipeline

import (
	"github.com/sadanandam5592/orca/pkg/document"
)

// MergeDistinct appends b to a, keeping the order of both, and skips every entry
// equal to one already in the result. A nil b is treated as empty.
func MergeDistinct[T any](a, b []T, equal func(x, y T) bool) []T {
	merged := make([]T, 0, len(a)+len(b))
	add := func(item T) {
		for _, existing := range merged {
			if equal(existing, item) {
				return
			}
		}
		merged = append(merged, item)
	}

	for _, item := range a {
		add(item)
	}
	for _, item := range b {
		add(item)
	}
	return merged
}

// MergeDistinctMaps merges lists of document maps by full content, the
// inherited marker included.
func MergeDistinctMaps(a, b []document.Map) []document.Map {
	return MergeDistinct(a, b, document.Map.Equal)
}

// MarkAsInherited returns copies of entries tagged with inherited = true. The
// entries passed in are left untouched, so a template can be shared between
// concurrent generations.
func MarkAsInherited(entries []document.Map) []document.Map {
	marked := make([]document.Map, len(entries))
	for i, entry := range entries {
		c := entry.Clone()
		if c == nil {
			c = make(document.Map, 1)
		}
		c[inheritedKey] = document.Bool(true)
		marked[i] = c
	}
	return marked
}
