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

// funcEnforcer enforces F = Func(_, Arg, Inter, Ret): the symmetric
// three-way analogue of formulationEnforcer, per spec §4.4.
type funcEnforcer[V types.Ordered, A any, I types.Ordered] struct {
	u *unify.Unifier[V, A, I]
	c Func[V, A, I]

	trk *tracker[V]
}

func newFuncEnforcer[V types.Ordered, A any, I types.Ordered](
	u *unify.Unifier[V, A, I], c Func[V, A, I],
) *funcEnforcer[V, A, I] {
	return &funcEnforcer[V, A, I]{u: u, c: c, trk: newTracker[V]()}
}

func (e *funcEnforcer[V, A, I]) Enforce(q query[V, A, I]) (map[V]val[V, A, I], worklist.ChangeStatus, error) {
	fSide := querySide(q, e.trk, e.c.F)
	argSide := querySide(q, e.trk, e.c.Arg)
	interSide := querySide(q, e.trk, e.c.Inter)
	retSide := querySide(q, e.trk, e.c.Ret)
	if fSide.Status == worklist.Unchanged && argSide.Status == worklist.Unchanged &&
		interSide.Status == worklist.Unchanged && retSide.Status == worklist.Unchanged {
		return nil, worklist.Unchanged, nil
	}

	splitArg, splitInter, splitRet, ok := types.FuncComponents(fSide.Val)
	if !ok {
		return nil, worklist.Unchanged, &NotFunction[V, A, I]{Var: e.c.F, Bound: fSide.Val}
	}

	newArg, argChanged, err := enforceEQ(e.u, sided[V, A, I]{Val: splitArg, Status: fSide.Status}, argSide)
	if err != nil {
		return nil, worklist.Unchanged, &InferenceError[V, A, I]{Constraint: e.c, Cause: err}
	}
	newInter, interChanged, err := enforceEQ(e.u, sided[V, A, I]{Val: splitInter, Status: fSide.Status}, interSide)
	if err != nil {
		return nil, worklist.Unchanged, &InferenceError[V, A, I]{Constraint: e.c, Cause: err}
	}
	newRet, retChanged, err := enforceEQ(e.u, sided[V, A, I]{Val: splitRet, Status: fSide.Status}, retSide)
	if err != nil {
		return nil, worklist.Unchanged, &InferenceError[V, A, I]{Constraint: e.c, Cause: err}
	}

	updates := map[V]val[V, A, I]{}
	if argChanged {
		updates[e.c.Arg] = newArg
	}
	if interChanged {
		updates[e.c.Inter] = newInter
	}
	if retChanged {
		updates[e.c.Ret] = newRet
	}
	if argSide.Status == worklist.Changed || interSide.Status == worklist.Changed || retSide.Status == worklist.Changed {
		updates[e.c.F] = types.JoinFunc(newArg, newInter, newRet)
	}
	if len(updates) == 0 {
		return nil, worklist.Unchanged, nil
	}
	return updates, worklist.Changed, nil
}
