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

// Package infer is the public entry point to the constraint-based type
// inference engine: consolidation, recursion-safety checking, and
// fixed-point propagation (spec §§4.1-4.5), wired together behind the
// single Solve operation named in spec §6.
package infer

import (
	"github.com/infersolve/engine/internal/constraint"
	"github.com/infersolve/engine/internal/types"
	"github.com/infersolve/engine/internal/unify"
)

// Constraint is the sum of the six constraint kinds a Problem may pose;
// construct values of the concrete kinds below (Bound, Relation, ...).
type Constraint[V types.Ordered, A any, I types.Ordered] = constraint.Constraint[V, A, I]

// The six constraint constructors, re-exported so callers never need to
// import internal/constraint directly.
type (
	Bound[V types.Ordered, A any, I types.Ordered]                 = constraint.Bound[V, A, I]
	Relation[V types.Ordered, A any, I types.Ordered]              = constraint.Relation[V, A, I]
	Formulation[V types.Ordered, A any, I types.Ordered]           = constraint.Formulation[V, A, I]
	Func[V types.Ordered, A any, I types.Ordered]                  = constraint.Func[V, A, I]
	Interaction[V types.Ordered, A any, I types.Ordered]           = constraint.Interaction[V, A, I]
	InteractionDifference[V types.Ordered, A any, I types.Ordered] = constraint.InteractionDifference[V, A, I]
)

// RelKind and the Type sum are likewise re-exported.
type (
	RelKind                                        = constraint.RelKind
	Type[V types.Ordered, A any, I types.Ordered]  = types.Type[V, A, I]
)

const (
	Equality = constraint.Equality
	LTE      = constraint.LTE
	GTE      = constraint.GTE
)

// The Type sum's variant constructors.
type (
	Atom[V types.Ordered, A any, I types.Ordered]        = types.Atom[V, A, I]
	Never[V types.Ordered, A any, I types.Ordered]       = types.Never[V, A, I]
	App[V types.Ordered, A any, I types.Ordered]         = types.App[V, A, I]
	Tuple[V types.Ordered, A any, I types.Ordered]       = types.Tuple[V, A, I]
	FuncType[V types.Ordered, A any, I types.Ordered]    = types.Func[V, A, I]
	InteractionType[V types.Ordered, A any, I types.Ordered] = types.Interaction[V, A, I]
)

type (
	SpecialBounds   = types.SpecialBounds
	InteractionRow[V types.Ordered, I types.Ordered] = types.InteractionRow[V, I]
	FormKind        = types.FormKind
)

const (
	AppOf   = types.AppOf
	TupleOf = types.TupleOf
)

// The public error-kind vocabulary (spec §7).
type (
	RecursiveType                                                    = constraint.RecursiveType
	InferenceError[V types.Ordered, A any, I types.Ordered]          = constraint.InferenceError[V, A, I]
	FormMismatch[V types.Ordered, A any, I types.Ordered]            = constraint.FormMismatch[V, A, I]
	NotFunction[V types.Ordered, A any, I types.Ordered]             = constraint.NotFunction[V, A, I]
	NotInteraction[V types.Ordered, A any, I types.Ordered]          = constraint.NotInteraction[V, A, I]
	InteractionCantContain[V types.Ordered, A any, I types.Ordered]  = constraint.InteractionCantContain[V, A, I]
)

// AtomUnifier is the caller-supplied, domain-specific atomic unifier
// (spec §6).
type AtomUnifier[A any] = unify.AtomUnifier[A]

// Dir selects which side of an asymmetric atomic unification is being
// refined.
type Dir = unify.Dir

const (
	DirLTE = unify.LTE
	DirGTE = unify.GTE
)

// Problem is the engine's sole input: a constraint set plus the
// domain-specific atomic unifier that resolves its leaf Atom values.
type Problem[V types.Ordered, A any, I types.Ordered] struct {
	Constraints []Constraint[V, A, I]
	AtomUnifier AtomUnifier[A]
}

// Solve runs the three-stage pipeline of spec §§4.1-4.5 over p:
// consolidation, the recursion-safety check, and fixed-point
// propagation. On success it returns a total function from Var to
// Option<Type> (nil meaning None); on failure it returns one of the
// error kinds in the public vocabulary above.
func Solve[V types.Ordered, A any, I types.Ordered](p Problem[V, A, I]) (func(V) Type[V, A, I], error) {
	u := unify.New[V, A, I](p.AtomUnifier)

	consolidated, err := constraint.Consolidate(p.Constraints, u)
	if err != nil {
		return nil, err
	}

	if err := constraint.CheckRecursion(consolidated); err != nil {
		return nil, err
	}

	solution, err := constraint.Solve(u, consolidated)
	if err != nil {
		return nil, err
	}

	// The driver's own Val is already Option<Type>; a variable absent
	// from the map (never mentioned by any constraint) projects to None
	// as well, flattening the double-Option spec §4.5 describes.
	return func(v V) Type[V, A, I] {
		return solution[v]
	}, nil
}
