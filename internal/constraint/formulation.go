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

// formulationEnforcer enforces Whole = Form(PartA, PartB): it splits
// Whole's current bound into its two components when Whole changed, and
// rebuilds Whole when either component changed, per spec §4.4.
type formulationEnforcer[V types.Ordered, A any, I types.Ordered] struct {
	u *unify.Unifier[V, A, I]
	c Formulation[V, A, I]

	trk *tracker[V]
}

func newFormulationEnforcer[V types.Ordered, A any, I types.Ordered](
	u *unify.Unifier[V, A, I], c Formulation[V, A, I],
) *formulationEnforcer[V, A, I] {
	return &formulationEnforcer[V, A, I]{u: u, c: c, trk: newTracker[V]()}
}

func (e *formulationEnforcer[V, A, I]) Enforce(q query[V, A, I]) (map[V]val[V, A, I], worklist.ChangeStatus, error) {
	wholeSide := querySide(q, e.trk, e.c.Whole)
	aSide := querySide(q, e.trk, e.c.PartA)
	bSide := querySide(q, e.trk, e.c.PartB)
	if wholeSide.Status == worklist.Unchanged && aSide.Status == worklist.Unchanged && bSide.Status == worklist.Unchanged {
		return nil, worklist.Unchanged, nil
	}

	splitA, splitB, ok := types.SplitFormulation(wholeSide.Val, e.c.Form)
	if !ok {
		return nil, worklist.Unchanged, &FormMismatch[V, A, I]{Var: e.c.Whole, Form: e.c.Form, Bound: wholeSide.Val}
	}

	newA, aChanged, err := enforceEQ(e.u, sided[V, A, I]{Val: splitA, Status: wholeSide.Status}, aSide)
	if err != nil {
		return nil, worklist.Unchanged, &InferenceError[V, A, I]{Constraint: e.c, Cause: err}
	}
	newB, bChanged, err := enforceEQ(e.u, sided[V, A, I]{Val: splitB, Status: wholeSide.Status}, bSide)
	if err != nil {
		return nil, worklist.Unchanged, &InferenceError[V, A, I]{Constraint: e.c, Cause: err}
	}

	updates := map[V]val[V, A, I]{}
	if aChanged {
		updates[e.c.PartA] = newA
	}
	if bChanged {
		updates[e.c.PartB] = newB
	}
	if aSide.Status == worklist.Changed || bSide.Status == worklist.Changed {
		updates[e.c.Whole] = types.JoinFormulation(e.c.Form, newA, newB)
	}
	if len(updates) == 0 {
		return nil, worklist.Unchanged, nil
	}
	return updates, worklist.Changed, nil
}
