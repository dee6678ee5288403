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

package unify

import (
	"github.com/infersolve/engine/internal/cset"
	"github.com/infersolve/engine/internal/types"
)

// rowUnifyEQ unifies two interaction rows under equality: the lo maps
// must agree pointwise on shared keys (same arity; the parameter
// variables themselves are reconciled later by the Interaction
// enforcer, not here, since a row by itself cannot see the bound map),
// and the combined hi is the complement-set intersection of both, since
// a row equal to both x and y may only permit what both already permit.
func rowUnifyEQ[V types.Ordered, I types.Ordered](x, y types.InteractionRow[V, I]) (types.InteractionRow[V, I], error) {
	lo := make(map[I][]V, len(x.Lo)+len(y.Lo))
	for k, v := range x.Lo {
		lo[k] = v
	}
	for k, v := range y.Lo {
		if existing, ok := lo[k]; ok {
			if len(existing) != len(v) {
				return types.InteractionRow[V, I]{}, mismatch("interaction row: arity mismatch for interaction key")
			}
			continue
		}
		lo[k] = v
	}
	return types.InteractionRow[V, I]{Lo: lo, Hi: cset.Intersection(x.Hi, y.Hi)}, nil
}

// rowUnifyAsym refines one side of the standing relation lo ≤ hi. dir ==
// LTE refines hi: every interaction lo mandates must be permitted by
// hi's hi-set, and is folded into hi's lo (widening it); hi's hi-set is
// left as-is, since this step only raises the floor, never lowers the
// ceiling. dir == GTE refines lo: its mandatory interactions must still
// be permitted by hi's hi-set, and its own hi-set narrows to the
// intersection with hi's, since lo can never permit more than hi does.
func rowUnifyAsym[V types.Ordered, I types.Ordered](dir Dir, lo, hi types.InteractionRow[V, I]) (types.InteractionRow[V, I], error) {
	if dir == LTE {
		newLo := make(map[I][]V, len(hi.Lo)+len(lo.Lo))
		for k, v := range hi.Lo {
			newLo[k] = v
		}
		for k, v := range lo.Lo {
			if !hi.Hi.Member(k) {
				return types.InteractionRow[V, I]{}, mismatch("interaction row: interaction excluded by upper bound")
			}
			if existing, ok := newLo[k]; ok {
				if len(existing) != len(v) {
					return types.InteractionRow[V, I]{}, mismatch("interaction row: arity mismatch for interaction key")
				}
				continue
			}
			newLo[k] = v
		}
		return types.InteractionRow[V, I]{Lo: newLo, Hi: hi.Hi}, nil
	}

	for k := range lo.Lo {
		if !hi.Hi.Member(k) {
			return types.InteractionRow[V, I]{}, mismatch("interaction row: interaction excluded by upper bound")
		}
	}
	return types.InteractionRow[V, I]{Lo: lo.Lo, Hi: cset.Intersection(lo.Hi, hi.Hi)}, nil
}
