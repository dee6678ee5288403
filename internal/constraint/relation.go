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

// relationEnforcer enforces one consolidated Relation entry: pair.Lo Rel
// pair.Hi, where Rel was already canonicalized against the pair's
// variable order during consolidation (spec §4.1). Equality propagates
// either direction and unifies when both moved; LTE/GTE refine whichever
// side did not drive the change, treating GTE as LTE with the two
// variables swapped.
type relationEnforcer[V types.Ordered, A any, I types.Ordered] struct {
	u    *unify.Unifier[V, A, I]
	pair OrderedPair[V]
	rel  RelKind
	trk  *tracker[V]
}

func newRelationEnforcer[V types.Ordered, A any, I types.Ordered](
	u *unify.Unifier[V, A, I], pair OrderedPair[V], rel RelKind,
) *relationEnforcer[V, A, I] {
	return &relationEnforcer[V, A, I]{u: u, pair: pair, rel: rel, trk: newTracker[V]()}
}

func (e *relationEnforcer[V, A, I]) asRelation() Relation[V, A, I] {
	return Relation[V, A, I]{V1: e.pair.Lo, Rel: e.rel, V2: e.pair.Hi}
}

func (e *relationEnforcer[V, A, I]) Enforce(q query[V, A, I]) (map[V]val[V, A, I], worklist.ChangeStatus, error) {
	loSide := querySide(q, e.trk, e.pair.Lo)
	hiSide := querySide(q, e.trk, e.pair.Hi)
	if loSide.Status == worklist.Unchanged && hiSide.Status == worklist.Unchanged {
		return nil, worklist.Unchanged, nil
	}

	switch e.rel {
	case Equality:
		result, changed, err := enforceEQ(e.u, loSide, hiSide)
		if err != nil {
			return nil, worklist.Unchanged, &InferenceError[V, A, I]{Constraint: e.asRelation(), Cause: err}
		}
		if !changed {
			return nil, worklist.Unchanged, nil
		}
		return map[V]val[V, A, I]{e.pair.Lo: result, e.pair.Hi: result}, worklist.Changed, nil

	case LTE:
		return e.enforceLTE(loSide, hiSide, e.pair.Lo, e.pair.Hi)

	default: // GTE: pair.Hi <= pair.Lo
		return e.enforceLTE(hiSide, loSide, e.pair.Hi, e.pair.Lo)
	}
}

// enforceLTE refines the standing relation lowerVar <= upperVar, given
// the sides already queried for lowerVar and upperVar (in that order).
func (e *relationEnforcer[V, A, I]) enforceLTE(
	lowerSide, upperSide sided[V, A, I], lowerVar, upperVar V,
) (map[V]val[V, A, I], worklist.ChangeStatus, error) {
	switch {
	case lowerSide.Status == worklist.Changed && upperSide.Status == worklist.Changed:
		newLower, newUpper, err := e.u.UnifyLTE(lowerSide.Val, upperSide.Val)
		if err != nil {
			return nil, worklist.Unchanged, &InferenceError[V, A, I]{Constraint: e.asRelation(), Cause: err}
		}
		return map[V]val[V, A, I]{lowerVar: newLower, upperVar: newUpper}, worklist.Changed, nil

	case lowerSide.Status == worklist.Changed:
		newUpper, err := e.u.UnifyAsym(unify.LTE, lowerSide.Val, upperSide.Val)
		if err != nil {
			return nil, worklist.Unchanged, &InferenceError[V, A, I]{Constraint: e.asRelation(), Cause: err}
		}
		return map[V]val[V, A, I]{upperVar: newUpper}, worklist.Changed, nil

	case upperSide.Status == worklist.Changed:
		newLower, err := e.u.UnifyAsym(unify.GTE, lowerSide.Val, upperSide.Val)
		if err != nil {
			return nil, worklist.Unchanged, &InferenceError[V, A, I]{Constraint: e.asRelation(), Cause: err}
		}
		return map[V]val[V, A, I]{lowerVar: newLower}, worklist.Changed, nil

	default:
		return nil, worklist.Unchanged, nil
	}
}
