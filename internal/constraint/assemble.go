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

	"github.com/infersolve/engine/internal/types"
	"github.com/infersolve/engine/internal/unify"
	"github.com/infersolve/engine/internal/worklist"
)

// buildEnforcers constructs the union of all enforcers implied by c (spec
// §4.5, step 3), one per consolidated constraint. Relation entries are
// visited in a deterministic order for reproducible logging and tests;
// spec §8's invariant 1 guarantees the final fixed point does not depend
// on this order.
func buildEnforcers[V types.Ordered, A any, I types.Ordered](
	u *unify.Unifier[V, A, I], c *Consolidated[V, A, I],
) []worklist.Enforcer[V, types.Type[V, A, I]] {
	pairs := make([]OrderedPair[V], 0, len(c.Relations))
	for pair := range c.Relations {
		pairs = append(pairs, pair)
	}
	slices.SortFunc(pairs, func(a, b OrderedPair[V]) int {
		if a.Lo != b.Lo {
			if a.Lo < b.Lo {
				return -1
			}
			return 1
		}
		if a.Hi < b.Hi {
			return -1
		}
		if a.Hi > b.Hi {
			return 1
		}
		return 0
	})

	var out []worklist.Enforcer[V, types.Type[V, A, I]]
	for _, pair := range pairs {
		out = append(out, newRelationEnforcer(u, pair, c.Relations[pair]))
	}
	for _, f := range c.Formulations {
		out = append(out, newFormulationEnforcer(u, f))
	}
	for _, fn := range c.Funcs {
		out = append(out, newFuncEnforcer(u, fn))
	}
	for _, in := range c.Interactions {
		out = append(out, newInteractionEnforcer(u, in))
	}
	for _, d := range c.Differences {
		out = append(out, newDifferenceEnforcer(u, d))
	}
	return out
}

// Solve runs the propagation driver to a fixed point over c, per spec
// §4.5: bounds are seeded from c.Bounds, unmentioned variables default to
// None, and conflicting updates to the same variable are merged under
// unifyEQ.
func Solve[V types.Ordered, A any, I types.Ordered](
	u *unify.Unifier[V, A, I], c *Consolidated[V, A, I],
) (map[V]types.Type[V, A, I], error) {
	enforcers := buildEnforcers(u, c)

	known := make(map[V]struct{}, len(c.Vars))
	for _, v := range c.Vars {
		known[v] = struct{}{}
	}

	merge := func(v V, existing, proposed types.Type[V, A, I]) (types.Type[V, A, I], error) {
		_, ok := known[v]
		Assertf(ok, "merge called for variable %v absent from Consolidate's Vars", v)

		merged, err := u.UnifyEQ(existing, proposed)
		if err != nil {
			return nil, &InferenceError[V, A, I]{
				Constraint: Relation[V, A, I]{V1: v, Rel: Equality, V2: v},
				Cause:      err,
			}
		}
		return merged, nil
	}

	return worklist.Solve(c.Vars, c.Bounds, nil, enforcers, merge, types.Equal[V, A, I])
}
