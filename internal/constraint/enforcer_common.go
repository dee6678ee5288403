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

package constraint

import (
	"github.com/infersolve/engine/internal/types"
	"github.com/infersolve/engine/internal/unify"
	"github.com/infersolve/engine/internal/worklist"
)

// val is the Val type the fixed-point driver solves for: an Option<Type>
// (nil means None), per spec §3's bound map.
type val[V types.Ordered, A any, I types.Ordered] = types.Type[V, A, I]

// query is the driver's bound-map accessor, specialized to this
// engine's Val.
type query[V types.Ordered, A any, I types.Ordered] = worklist.Query[V, val[V, A, I]]

// tracker remembers the generation an enforcer last observed for each
// variable it has queried, so it can derive the per-variable
// ChangeStatus spec §4.4's queryVar demands ("since last visit" is
// relative to this one enforcer's own visit schedule).
type tracker[V types.Ordered] struct {
	lastGen map[V]uint64
}

func newTracker[V types.Ordered]() *tracker[V] {
	return &tracker[V]{lastGen: map[V]uint64{}}
}

// visit records gen as the generation now observed for v and reports
// whether it differs from the generation this tracker last recorded
// for v. A variable never visited before is Changed only if the
// driver has already accepted a bound for it (gen > 0); an
// ever-unconstrained variable stays at generation 0 and so is
// correctly reported Unchanged on a first visit.
func (t *tracker[V]) visit(v V, gen uint64) worklist.ChangeStatus {
	last, ok := t.lastGen[v]
	t.lastGen[v] = gen
	if !ok {
		if gen == 0 {
			return worklist.Unchanged
		}
		return worklist.Changed
	}
	if gen == last {
		return worklist.Unchanged
	}
	return worklist.Changed
}

// sided pairs a bound with the ChangeStatus its variable carries this
// round, the unit enforceEQ and the individual enforcers operate on.
type sided[V types.Ordered, A any, I types.Ordered] struct {
	Val    val[V, A, I]
	Status worklist.ChangeStatus
}

// querySide reads v through q and classifies it against t's memory of
// v's last-seen generation, in one step.
func querySide[V types.Ordered, A any, I types.Ordered](q query[V, A, I], t *tracker[V], v V) sided[V, A, I] {
	bound, gen := q(v)
	return sided[V, A, I]{Val: bound, Status: t.visit(v, gen)}
}

// enforceEQ implements spec §4.4's shared helper: when both sides
// changed, unify them under equality; when only one changed, the
// changed side wins outright (no unification needed, since the other
// side is assumed to already agree or be unconstrained); when neither
// changed, there is nothing to propagate.
func enforceEQ[V types.Ordered, A any, I types.Ordered](
	u *unify.Unifier[V, A, I],
	a, b sided[V, A, I],
) (result val[V, A, I], changed bool, err error) {
	switch {
	case a.Status == worklist.Changed && b.Status == worklist.Changed:
		merged, err := u.UnifyEQ(a.Val, b.Val)
		if err != nil {
			return nil, false, err
		}
		return merged, true, nil
	case a.Status == worklist.Changed:
		return a.Val, true, nil
	case b.Status == worklist.Changed:
		return b.Val, true, nil
	default:
		return nil, false, nil
	}
}
