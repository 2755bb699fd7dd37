package entities

import (
	"sort"
)

// IndexSet is a sorted, duplicate-free set of die positions.
// Every method returns a new set; the receiver is never modified.
type IndexSet []int

// NewIndexSet builds a set from indices in any order
func NewIndexSet(indices ...int) IndexSet {
	if len(indices) == 0 {
		return IndexSet{}
	}
	seen := make(map[int]struct{}, len(indices))
	out := make(IndexSet, 0, len(indices))
	for _, i := range indices {
		if _, ok := seen[i]; ok {
			continue
		}
		seen[i] = struct{}{}
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// RangeIndexSet returns {0, 1, ..., n-1}
func RangeIndexSet(n int) IndexSet {
	out := make(IndexSet, n)
	for i := range out {
		out[i] = i
	}
	return out
}

// Len returns the number of indices
func (s IndexSet) Len() int {
	return len(s)
}

// Contains reports whether i is in the set
func (s IndexSet) Contains(i int) bool {
	pos := sort.SearchInts(s, i)
	return pos < len(s) && s[pos] == i
}

// Union returns every index in s or other
func (s IndexSet) Union(other IndexSet) IndexSet {
	all := make([]int, 0, len(s)+len(other))
	all = append(all, s...)
	all = append(all, other...)
	return NewIndexSet(all...)
}

// Intersect returns the indices present in both sets
func (s IndexSet) Intersect(other IndexSet) IndexSet {
	out := IndexSet{}
	for _, i := range s {
		if other.Contains(i) {
			out = append(out, i)
		}
	}
	return out
}

// Slice returns the indices as a plain slice
func (s IndexSet) Slice() []int {
	out := make([]int, len(s))
	copy(out, s)
	return out
}
