// Copyright 2024 CUE Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package cset implements ComplementSet, a set of comparable members
// represented either by its elements (Included) or by its complement
// (Excluded).
package cset

import (
	"cmp"
	"slices"

	"github.com/mpvl/unique"
)

// Set is a ComplementSet over members of type M: either exactly the
// elements of S (Included) or everything except the elements of S
// (Excluded).
type Set[M cmp.Ordered] struct {
	members  []M
	excluded bool
}

// Included returns the ComplementSet containing exactly the elements of s.
func Included[M cmp.Ordered](s []M) Set[M] {
	return Set[M]{members: sortedUnique(s), excluded: false}
}

// Excluded returns the ComplementSet containing everything except the
// elements of s.
func Excluded[M cmp.Ordered](s []M) Set[M] {
	return Set[M]{members: sortedUnique(s), excluded: true}
}

// Member reports whether x is a member of c.
func (c Set[M]) Member(x M) bool {
	_, found := slices.BinarySearch(c.members, x)
	return found != c.excluded
}

// Members returns the explicit member list when c is Included, and nil
// when c is Excluded (the complement of a finite set is not enumerable
// here).
func (c Set[M]) Members() ([]M, bool) {
	if c.excluded {
		return nil, false
	}
	return c.members, true
}

// IsExcluded reports whether c was constructed via Excluded.
func (c Set[M]) IsExcluded() bool {
	return c.excluded
}

// Union returns the ComplementSet containing every element that is a
// member of a or b (or both).
func Union[M cmp.Ordered](a, b Set[M]) Set[M] {
	switch {
	case !a.excluded && !b.excluded:
		return Included(append(slices.Clone(a.members), b.members...))
	case a.excluded && b.excluded:
		return Excluded(intersectSorted(a.members, b.members))
	case a.excluded:
		return Excluded(differenceSorted(a.members, b.members))
	default: // b.excluded
		return Excluded(differenceSorted(b.members, a.members))
	}
}

// Intersection returns the ComplementSet containing every element that is
// a member of both a and b.
func Intersection[M cmp.Ordered](a, b Set[M]) Set[M] {
	switch {
	case !a.excluded && !b.excluded:
		return Included(intersectSorted(a.members, b.members))
	case a.excluded && b.excluded:
		return Excluded(append(slices.Clone(a.members), b.members...))
	case a.excluded:
		return Included(differenceSorted(b.members, a.members))
	default: // b.excluded
		return Included(differenceSorted(a.members, b.members))
	}
}

// sortedSlice adapts a []M to the mpvl/unique.Interface contract (sort
// plus in-place truncation), letting unique.Sort both sort and dedup the
// member list in one pass.
type sortedSlice[M cmp.Ordered] struct {
	data *[]M
}

func (s sortedSlice[M]) Len() int           { return len(*s.data) }
func (s sortedSlice[M]) Less(i, j int) bool { return (*s.data)[i] < (*s.data)[j] }
func (s sortedSlice[M]) Swap(i, j int)      { (*s.data)[i], (*s.data)[j] = (*s.data)[j], (*s.data)[i] }
func (s sortedSlice[M]) Truncate(n int)     { *s.data = (*s.data)[:n] }

func sortedUnique[M cmp.Ordered](in []M) []M {
	out := slices.Clone(in)
	unique.Sort(sortedSlice[M]{data: &out})
	return out
}

func intersectSorted[M cmp.Ordered](a, b []M) []M {
	var out []M
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			i++
		case a[i] > b[j]:
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	return out
}

func differenceSorted[M cmp.Ordered](a, b []M) []M {
	var out []M
	i, j := 0, 0
	for i < len(a) {
		switch {
		case j >= len(b) || a[i] < b[j]:
			out = append(out, a[i])
			i++
		case a[i] > b[j]:
			j++
		default:
			i++
			j++
		}
	}
	return out
}
