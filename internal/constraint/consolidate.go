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
)

// Consolidated is the output of Consolidate (spec §4.1): a heterogeneous
// constraint list folded into per-shape buckets, with Bound and
// Relation constraints already merged.
type Consolidated[V types.Ordered, A any, I types.Ordered] struct {
	Vars      []V
	Bounds    map[V]types.Type[V, A, I]
	Relations map[OrderedPair[V]]RelKind

	Formulations []Formulation[V, A, I]
	Funcs        []Func[V, A, I]
	Interactions []Interaction[V, A, I]
	Differences  []InteractionDifference[V, A, I]
}

func combineRel(existing, incoming RelKind) RelKind {
	if existing == incoming {
		return existing
	}
	return Equality
}

// Consolidate normalizes a raw constraint list per spec §4.1. atomUnify
// is used to unify duplicate Bound constraints on the same variable
// under equality.
func Consolidate[V types.Ordered, A any, I types.Ordered](
	cs []Constraint[V, A, I],
	atomUnify *unify.Unifier[V, A, I],
) (*Consolidated[V, A, I], error) {
	out := &Consolidated[V, A, I]{
		Bounds:    map[V]types.Type[V, A, I]{},
		Relations: map[OrderedPair[V]]RelKind{},
	}
	seen := map[V]struct{}{}
	ensure := func(v V) {
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			out.Vars = append(out.Vars, v)
		}
	}

	for _, c := range cs {
		switch cc := c.(type) {
		case Bound[V, A, I]:
			ensure(cc.Var)
			if existing, ok := out.Bounds[cc.Var]; ok {
				merged, err := atomUnify.UnifyEQ(existing, cc.Bound)
				if err != nil {
					return nil, &InferenceError[V, A, I]{Constraint: cc, Cause: err}
				}
				out.Bounds[cc.Var] = merged
			} else {
				out.Bounds[cc.Var] = cc.Bound
			}

		case Relation[V, A, I]:
			ensure(cc.V1)
			ensure(cc.V2)
			pair := Canonicalize(cc.V1, cc.V2)
			rel := cc.Rel
			if pair.DidFlip {
				rel = rel.flip()
			}
			key := OrderedPair[V]{Lo: pair.Lo, Hi: pair.Hi}
			if existing, ok := out.Relations[key]; ok {
				out.Relations[key] = combineRel(existing, rel)
			} else {
				out.Relations[key] = rel
			}

		case Formulation[V, A, I]:
			ensure(cc.Whole)
			ensure(cc.PartA)
			ensure(cc.PartB)
			out.Formulations = append(out.Formulations, cc)

		case Func[V, A, I]:
			ensure(cc.F)
			ensure(cc.Arg)
			ensure(cc.Inter)
			ensure(cc.Ret)
			out.Funcs = append(out.Funcs, cc)

		case Interaction[V, A, I]:
			ensure(cc.Var)
			for _, p := range cc.Params {
				ensure(p)
			}
			out.Interactions = append(out.Interactions, cc)

		case InteractionDifference[V, A, I]:
			ensure(cc.Whole)
			ensure(cc.Rest)
			out.Differences = append(out.Differences, cc)
		}
	}

	return out, nil
}
