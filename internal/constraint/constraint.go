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

// Package constraint is the core of the engine: the six constraint
// kinds of spec §4.1, their consolidation into per-shape buckets, the
// structural-larger-than edges consumed by internal/recur, and the six
// enforcers of spec §4.4 that drive internal/worklist to a fixed point.
//
// The sum-of-structs-behind-a-marker-method shape mirrors
// internal/types' Type; the separation between "what a constraint says"
// (this file), "how to fold duplicates" (consolidate.go), and "how to
// refine bounds from it" (enforcer_common.go plus relation.go,
// formulation.go, func.go, interaction.go and difference.go) mirrors CUE's own
// split between internal/core/adt's Expr ASTs, its closed.go
// normalization passes, and its per-op evaluation in unify.go.
package constraint

import "github.com/infersolve/engine/internal/types"

// Constraint is the sum of the six constraint kinds a Problem may pose.
type Constraint[V types.Ordered, A any, I types.Ordered] interface {
	isConstraint()
}

// Bound asserts that Var must have type Bound.
type Bound[V types.Ordered, A any, I types.Ordered] struct {
	Var   V
	Bound types.Type[V, A, I]
}

func (Bound[V, A, I]) isConstraint() {}

// RelKind names the relation between the two sides of a Relation
// constraint.
type RelKind int

const (
	Equality RelKind = iota
	LTE
	GTE
)

func (r RelKind) String() string {
	switch r {
	case Equality:
		return "Equality"
	case LTE:
		return "LTE"
	case GTE:
		return "GTE"
	default:
		return "RelKind(?)"
	}
}

func (r RelKind) flip() RelKind {
	switch r {
	case LTE:
		return GTE
	case GTE:
		return LTE
	default:
		return Equality
	}
}

// Relation asserts V1 Rel V2.
type Relation[V types.Ordered, A any, I types.Ordered] struct {
	V1  V
	Rel RelKind
	V2  V
}

func (Relation[V, A, I]) isConstraint() {}

// Formulation asserts Whole = Form(PartA, PartB).
type Formulation[V types.Ordered, A any, I types.Ordered] struct {
	Whole V
	Form  types.FormKind
	PartA V
	PartB V
}

func (Formulation[V, A, I]) isConstraint() {}

// Func asserts F = Func(_, Arg, Inter, Ret).
type Func[V types.Ordered, A any, I types.Ordered] struct {
	F     V
	Arg   V
	Inter V
	Ret   V
}

func (Func[V, A, I]) isConstraint() {}

// Interaction asserts that interaction Inter with parameters Params is a
// lower bound of Var: Interaction({Inter: Params}, Excluded ∅) ≤ Var.
type Interaction[V types.Ordered, A any, I types.Ordered] struct {
	Var    V
	Inter  I
	Params []V
}

func (Interaction[V, A, I]) isConstraint() {}

// InteractionDifference asserts Rest = Whole ∖ Inters.
type InteractionDifference[V types.Ordered, A any, I types.Ordered] struct {
	Whole  V
	Inters []I
	Rest   V
}

func (InteractionDifference[V, A, I]) isConstraint() {}

// OrderedPair canonicalizes a symmetric pair of variables as (Lo, Hi)
// with Lo <= Hi, recording whether the inputs had to be swapped so a
// relation direction can be recovered (spec §3).
type OrderedPair[V types.Ordered] struct {
	Lo, Hi  V
	DidFlip bool
}

// Canonicalize orders (a, b) into an OrderedPair.
func Canonicalize[V types.Ordered](a, b V) OrderedPair[V] {
	if a <= b {
		return OrderedPair[V]{Lo: a, Hi: b}
	}
	return OrderedPair[V]{Lo: b, Hi: a, DidFlip: true}
}
