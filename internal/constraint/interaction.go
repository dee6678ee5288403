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
	"slices"

	"github.com/infersolve/engine/internal/cset"
	"github.com/infersolve/engine/internal/types"
	"github.com/infersolve/engine/internal/unify"
	"github.com/infersolve/engine/internal/worklist"
)

// interactionEnforcer enforces that interaction c.Inter with parameters
// c.Params is a lower bound of c.Var, per spec §4.4. When another
// constraint already made c.Inter mandatory on c.Var (with its own
// parameter variables), this enforcer aliases its own params to that
// earlier registration's current bounds, so every site asserting the
// same interaction on the same variable converges on one parameter
// identity.
type interactionEnforcer[V types.Ordered, A any, I types.Ordered] struct {
	u *unify.Unifier[V, A, I]
	c Interaction[V, A, I]

	trk *tracker[V]
}

func newInteractionEnforcer[V types.Ordered, A any, I types.Ordered](
	u *unify.Unifier[V, A, I], c Interaction[V, A, I],
) *interactionEnforcer[V, A, I] {
	return &interactionEnforcer[V, A, I]{u: u, c: c, trk: newTracker[V]()}
}

func (e *interactionEnforcer[V, A, I]) Enforce(q query[V, A, I]) (map[V]val[V, A, I], worklist.ChangeStatus, error) {
	vSide := querySide(q, e.trk, e.c.Var)

	row, ok := types.InteractionComponents(vSide.Val)
	if !ok {
		return nil, worklist.Unchanged, &NotInteraction[V, A, I]{Var: e.c.Var, Bound: vSide.Val}
	}

	if vSide.Status == worklist.Unchanged {
		if existing, has := row.Lo[e.c.Inter]; has && slices.Equal(existing, e.c.Params) {
			return nil, worklist.Unchanged, nil
		}
		newRow := types.CloneRow(row)
		newRow.Lo[e.c.Inter] = e.c.Params
		return map[V]val[V, A, I]{e.c.Var: types.Interaction[V, A, I]{Row: newRow}}, worklist.Changed, nil
	}

	synthetic := types.Interaction[V, A, I]{Row: types.InteractionRow[V, I]{
		Lo: map[I][]V{e.c.Inter: e.c.Params},
		Hi: cset.Excluded[I](nil),
	}}
	_, refined, err := e.u.UnifyLTE(synthetic, vSide.Val)
	if err != nil {
		return nil, worklist.Unchanged, &InferenceError[V, A, I]{Constraint: e.c, Cause: err}
	}

	updates := map[V]val[V, A, I]{e.c.Var: refined}
	refinedRow := refined.(types.Interaction[V, A, I]).Row
	if winner, ok := refinedRow.Lo[e.c.Inter]; ok {
		for k, pv := range winner {
			if k >= len(e.c.Params) || pv == e.c.Params[k] {
				continue
			}
			if bound, _ := q(pv); bound != nil {
				updates[e.c.Params[k]] = bound
			}
		}
	}
	return updates, worklist.Changed, nil
}
