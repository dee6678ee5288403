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
	"github.com/infersolve/engine/internal/cset"
	"github.com/infersolve/engine/internal/types"
	"github.com/infersolve/engine/internal/unify"
	"github.com/infersolve/engine/internal/worklist"
)

// differenceEnforcer enforces Rest = Whole ∖ Inters, per spec §4.4. Rest
// must stay disjoint from Inters in both directions of propagation.
type differenceEnforcer[V types.Ordered, A any, I types.Ordered] struct {
	u *unify.Unifier[V, A, I]
	c InteractionDifference[V, A, I]

	trk *tracker[V]
}

func newDifferenceEnforcer[V types.Ordered, A any, I types.Ordered](
	u *unify.Unifier[V, A, I], c InteractionDifference[V, A, I],
) *differenceEnforcer[V, A, I] {
	return &differenceEnforcer[V, A, I]{u: u, c: c, trk: newTracker[V]()}
}

// checkDisjoint reports InteractionCantContain iff row mandates or
// permits any interaction named in inters.
func checkDisjoint[V types.Ordered, A any, I types.Ordered](v V, row types.InteractionRow[V, I], inters []I) error {
	for _, k := range inters {
		if _, ok := row.Lo[k]; ok {
			return &InteractionCantContain[V, A, I]{Var: v, Inters: inters, Bound: row}
		}
		if row.Hi.Member(k) {
			return &InteractionCantContain[V, A, I]{Var: v, Inters: inters, Bound: row}
		}
	}
	return nil
}

func (e *differenceEnforcer[V, A, I]) Enforce(q query[V, A, I]) (map[V]val[V, A, I], worklist.ChangeStatus, error) {
	wholeSide := querySide(q, e.trk, e.c.Whole)
	restSide := querySide(q, e.trk, e.c.Rest)
	if wholeSide.Status == worklist.Unchanged && restSide.Status == worklist.Unchanged {
		return nil, worklist.Unchanged, nil
	}

	wholeRow, ok := types.InteractionComponents(wholeSide.Val)
	if !ok {
		return nil, worklist.Unchanged, &NotInteraction[V, A, I]{Var: e.c.Whole, Bound: wholeSide.Val}
	}
	restRow, ok := types.InteractionComponents(restSide.Val)
	if !ok {
		return nil, worklist.Unchanged, &NotInteraction[V, A, I]{Var: e.c.Rest, Bound: restSide.Val}
	}

	switch {
	case wholeSide.Status == worklist.Changed && restSide.Status != worklist.Changed:
		rest := types.InteractionSubtract(e.c.Inters, wholeRow)
		return map[V]val[V, A, I]{e.c.Rest: types.Interaction[V, A, I]{Row: rest}}, worklist.Changed, nil

	case restSide.Status == worklist.Changed && wholeSide.Status != worklist.Changed:
		if err := checkDisjoint[V, A, I](e.c.Rest, restRow, e.c.Inters); err != nil {
			return nil, worklist.Unchanged, err
		}
		newWhole := types.CloneRow(wholeRow)
		types.TransferValues(restRow.Lo, newWhole.Lo)
		newWhole.Hi = cset.Union(wholeRow.Hi, restRow.Hi)
		return map[V]val[V, A, I]{e.c.Whole: types.Interaction[V, A, I]{Row: newWhole}}, worklist.Changed, nil

	default: // both changed
		wholeSub := types.InteractionSubtract(e.c.Inters, wholeRow)
		unifiedRest, err := e.u.UnifyEQ(
			types.Interaction[V, A, I]{Row: wholeSub},
			types.Interaction[V, A, I]{Row: restRow},
		)
		if err != nil {
			return nil, worklist.Unchanged, &InferenceError[V, A, I]{Constraint: e.c, Cause: err}
		}
		newRestRow := unifiedRest.(types.Interaction[V, A, I]).Row
		if err := checkDisjoint[V, A, I](e.c.Rest, newRestRow, e.c.Inters); err != nil {
			return nil, worklist.Unchanged, err
		}

		newWholeLo := make(map[I][]V, len(newRestRow.Lo)+len(wholeRow.Lo))
		for k, v := range newRestRow.Lo {
			newWholeLo[k] = v
		}
		for k, v := range wholeRow.Lo {
			newWholeLo[k] = v
		}
		newWholeHi := cset.Intersection(wholeRow.Hi, cset.Union(cset.Included[I](e.c.Inters), newRestRow.Hi))

		return map[V]val[V, A, I]{
			e.c.Rest:  types.Interaction[V, A, I]{Row: newRestRow},
			e.c.Whole: types.Interaction[V, A, I]{Row: types.InteractionRow[V, I]{Lo: newWholeLo, Hi: newWholeHi}},
		}, worklist.Changed, nil
	}
}
