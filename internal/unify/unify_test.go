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

package unify_test

import (
	"fmt"
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/infersolve/engine/internal/cset"
	"github.com/infersolve/engine/internal/types"
	"github.com/infersolve/engine/internal/unify"
)

// intAtoms is a trivial AtomUnifier[int] used only to exercise the
// lifted unifier: two atoms unify under equality iff equal, and under
// asymmetric/LTE unification iff lo <= hi.
type intAtoms struct{}

func (intAtoms) UnifyEQ(a, b int) (int, error) {
	if a != b {
		return 0, fmt.Errorf("atom mismatch: %d != %d", a, b)
	}
	return a, nil
}

func (intAtoms) UnifyAsym(dir unify.Dir, lo, hi int) (int, error) {
	if lo > hi {
		return 0, fmt.Errorf("atom out of order: %d > %d", lo, hi)
	}
	if dir == unify.LTE {
		return hi, nil
	}
	return lo, nil
}

func (intAtoms) UnifyLTE(a, b int) (int, int, error) {
	if a > b {
		return 0, 0, fmt.Errorf("atom out of order: %d > %d", a, b)
	}
	return a, b, nil
}

func newUnifier() *unify.Unifier[string, int, string] {
	return unify.New[string, int, string](intAtoms{})
}

func TestUnifyEQAtomMatch(t *testing.T) {
	u := newUnifier()
	got, err := u.UnifyEQ(types.Atom[string, int, string]{Value: 3}, types.Atom[string, int, string]{Value: 3})
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.DeepEquals(got, types.Type[string, int, string](types.Atom[string, int, string]{Value: 3})))
}

func TestUnifyEQAtomMismatch(t *testing.T) {
	u := newUnifier()
	_, err := u.UnifyEQ(types.Atom[string, int, string]{Value: 3}, types.Atom[string, int, string]{Value: 4})
	qt.Assert(t, qt.IsNotNil(err))
}

func TestUnifyEQNilIsIdentity(t *testing.T) {
	u := newUnifier()
	atom := types.Atom[string, int, string]{Value: 1}
	got, err := u.UnifyEQ(nil, atom)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.DeepEquals(got, types.Type[string, int, string](atom)))
}

func TestUnifyEQShapeMismatch(t *testing.T) {
	u := newUnifier()
	_, err := u.UnifyEQ(types.Atom[string, int, string]{Value: 1}, types.Never[string, int, string]{})
	qt.Assert(t, qt.IsNotNil(err))
}

func TestUnifyEQNested(t *testing.T) {
	u := newUnifier()
	x := types.Tuple[string, int, string]{
		Bounds: types.NeutralBounds(),
		Fst:    types.Atom[string, int, string]{Value: 1},
		Snd:    nil,
	}
	y := types.Tuple[string, int, string]{
		Bounds: types.NeutralBounds(),
		Fst:    nil,
		Snd:    types.Atom[string, int, string]{Value: 2},
	}
	got, err := u.UnifyEQ(x, y)
	qt.Assert(t, qt.IsNil(err))
	tup := got.(types.Tuple[string, int, string])
	qt.Assert(t, qt.DeepEquals(tup.Fst, types.Type[string, int, string](types.Atom[string, int, string]{Value: 1})))
	qt.Assert(t, qt.DeepEquals(tup.Snd, types.Type[string, int, string](types.Atom[string, int, string]{Value: 2})))
}

func TestUnifyEQInteractionRowIntersectsHi(t *testing.T) {
	u := newUnifier()
	x := types.Interaction[string, int, string]{Row: types.InteractionRow[string, string]{
		Lo: map[string][]string{},
		Hi: cset.Excluded[string]([]string{"read"}),
	}}
	y := types.Interaction[string, int, string]{Row: types.InteractionRow[string, string]{
		Lo: map[string][]string{},
		Hi: cset.Excluded[string]([]string{"write"}),
	}}
	got, err := u.UnifyEQ(x, y)
	qt.Assert(t, qt.IsNil(err))
	row := got.(types.Interaction[string, int, string]).Row
	qt.Assert(t, qt.IsFalse(row.Hi.Member("read")))
	qt.Assert(t, qt.IsFalse(row.Hi.Member("write")))
	qt.Assert(t, qt.IsTrue(row.Hi.Member("open")))
}

func TestUnifyAsymWidensLo(t *testing.T) {
	u := newUnifier()
	lower := types.Interaction[string, int, string]{Row: types.InteractionRow[string, string]{
		Lo: map[string][]string{"open": {"p"}},
		Hi: cset.Excluded[string](nil),
	}}
	upper := types.Interaction[string, int, string]{Row: types.InteractionRow[string, string]{
		Lo: map[string][]string{},
		Hi: cset.Excluded[string](nil),
	}}
	got, err := u.UnifyAsym(unify.LTE, lower, upper)
	qt.Assert(t, qt.IsNil(err))
	row := got.(types.Interaction[string, int, string]).Row
	_, ok := row.Lo["open"]
	qt.Assert(t, qt.IsTrue(ok))
}

func TestUnifyAsymRejectsExcludedInteraction(t *testing.T) {
	u := newUnifier()
	lower := types.Interaction[string, int, string]{Row: types.InteractionRow[string, string]{
		Lo: map[string][]string{"open": {"p"}},
		Hi: cset.Excluded[string](nil),
	}}
	upper := types.Interaction[string, int, string]{Row: types.InteractionRow[string, string]{
		Lo: map[string][]string{},
		Hi: cset.Included[string]([]string{"close"}),
	}}
	_, err := u.UnifyAsym(unify.LTE, lower, upper)
	qt.Assert(t, qt.IsNotNil(err))
}

func TestUnifyLTEAtoms(t *testing.T) {
	u := newUnifier()
	newLower, newUpper, err := u.UnifyLTE(types.Atom[string, int, string]{Value: 1}, types.Atom[string, int, string]{Value: 2})
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(newLower.(types.Atom[string, int, string]).Value, 1))
	qt.Assert(t, qt.Equals(newUpper.(types.Atom[string, int, string]).Value, 2))
}

func TestUnifyLTEAtomsOutOfOrder(t *testing.T) {
	u := newUnifier()
	_, _, err := u.UnifyLTE(types.Atom[string, int, string]{Value: 5}, types.Atom[string, int, string]{Value: 2})
	qt.Assert(t, qt.IsNotNil(err))
}
