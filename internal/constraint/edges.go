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
	"github.com/infersolve/engine/internal/recur"
	"github.com/infersolve/engine/internal/types"
)

// edges enumerates the structural-larger-than relation of spec §4.2
// from a Consolidated constraint set. Bound and Relation constraints
// contribute nothing; the four structural kinds each contribute the
// edges listed in the spec's table.
func edges[V types.Ordered, A any, I types.Ordered](c *Consolidated[V, A, I]) []recur.Edge[V] {
	var out []recur.Edge[V]
	for _, f := range c.Formulations {
		out = append(out, recur.Edge[V]{Greater: f.Whole, Lesser: f.PartA})
		out = append(out, recur.Edge[V]{Greater: f.Whole, Lesser: f.PartB})
	}
	for _, fn := range c.Funcs {
		out = append(out, recur.Edge[V]{Greater: fn.F, Lesser: fn.Arg})
		out = append(out, recur.Edge[V]{Greater: fn.F, Lesser: fn.Inter})
		out = append(out, recur.Edge[V]{Greater: fn.F, Lesser: fn.Ret})
	}
	for _, in := range c.Interactions {
		for _, p := range in.Params {
			out = append(out, recur.Edge[V]{Greater: in.Var, Lesser: p})
		}
	}
	for _, d := range c.Differences {
		if len(d.Inters) > 0 {
			out = append(out, recur.Edge[V]{Greater: d.Whole, Lesser: d.Rest})
		}
	}
	return out
}

// CheckRecursion runs the recursion-safety check of spec §4.2 over c.
// It returns RecursiveType iff the structural-larger-than graph is
// cyclic.
func CheckRecursion[V types.Ordered, A any, I types.Ordered](c *Consolidated[V, A, I]) error {
	_, err := recur.Check(edges(c))
	return asRecursiveType(err)
}
