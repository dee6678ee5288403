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

// Package recur implements the recursion-safety check of spec §4.2: a
// set of type variables is recursion-safe iff the "is structurally
// larger than" relation it induces has no cycle.
//
// It deliberately takes only plain Edge values rather than importing
// internal/constraint's Constraint type: internal/constraint is this
// package's caller (it knows how to read its own Constraint values and
// enumerate the edges they imply), so depending on it here would invert
// the layering. This mirrors how internal/core/toposort takes caller-
// supplied node/edge values rather than reaching back into cue/ast.
package recur

import (
	"errors"

	"github.com/infersolve/engine/internal/graph"
	"github.com/infersolve/engine/internal/types"
)

// ErrRecursive is returned by Check when the edges describe a cyclic
// "structurally larger than" relation. Callers that want to attach
// additional context should wrap it with %w.
var ErrRecursive = errors.New("recur: recursive type detected")

// Edge records that Greater is structurally larger than Lesser, per one
// of the rules in spec §4.2 (Formulation, Func, Interaction,
// InteractionDifference each contribute edges; Bound and Relation
// contribute none).
type Edge[V types.Ordered] struct {
	Greater V
	Lesser  V
}

// Check builds the directed graph implied by edges and reports a
// topological order of the variables mentioned in it. It returns
// ErrRecursive iff that graph is cyclic.
func Check[V types.Ordered](edges []Edge[V]) (order []V, err error) {
	b := graph.NewBuilder[V]()
	for _, e := range edges {
		b.AddEdge(e.Greater, e.Lesser)
	}
	g := b.Build()

	order, ok := g.TopoSort()
	if !ok {
		return nil, ErrRecursive
	}
	return order, nil
}
