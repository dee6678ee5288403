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

// Package types implements the Type algebra: the sum of shapes a type
// variable can be bound to, and the structural helpers the enforcers use
// to split, join, and difference those shapes.
//
// A Type is represented the way internal/core/adt represents a CUE Value:
// a closed set of structs implementing a private marker method. Absence
// (spec's Option<Type> = None) is the Go nil interface value; there is no
// separate "unknown" variant.
package types

import (
	"reflect"

	"github.com/infersolve/engine/internal/cset"
)

// Ordered is the constraint satisfied by type variables and interaction
// labels: both must be totally ordered so that symmetric variable pairs
// can be canonicalized (spec §3, OrderedPair) and so that ComplementSet
// can keep a sorted member representation (see internal/cset).
type Ordered interface {
	~string | ~int | ~int32 | ~int64 | ~uint | ~uint32 | ~uint64
}

// Type is the sum of Atom, Never, App, Tuple, Func and Interaction. A nil
// Type value represents the spec's None (no bound known).
type Type[V Ordered, A any, I Ordered] interface {
	isType()
}

// Atom wraps a leaf value delegated to the caller-supplied atomic unifier.
type Atom[V Ordered, A any, I Ordered] struct {
	Value A
}

func (Atom[V, A, I]) isType() {}

// Never is the empty type: the bottom of the lattice.
type Never[V Ordered, A any, I Ordered] struct{}

func (Never[V, A, I]) isType() {}

// SpecialBounds tracks whether a structured type's bottom and top corners
// are admissible. NeutralBounds is the identity element used when
// reconstructing a type from components that are already fully resolved.
type SpecialBounds struct {
	CanBeNever bool
	CanBeTop   bool
}

// NeutralBounds returns the SpecialBounds value that imposes no
// additional restriction.
func NeutralBounds() SpecialBounds {
	return SpecialBounds{CanBeNever: true, CanBeTop: true}
}

// App is type application: Head applied to Param. Either component may
// be nil (unknown).
type App[V Ordered, A any, I Ordered] struct {
	Head  Type[V, A, I]
	Param Type[V, A, I]
}

func (App[V, A, I]) isType() {}

// Tuple is a pair of components with special-bound flags.
type Tuple[V Ordered, A any, I Ordered] struct {
	Bounds SpecialBounds
	Fst    Type[V, A, I]
	Snd    Type[V, A, I]
}

func (Tuple[V, A, I]) isType() {}

// Func is a function type: argument, effect/interaction row, and result.
type Func[V Ordered, A any, I Ordered] struct {
	Bounds SpecialBounds
	Arg    Type[V, A, I]
	Inter  Type[V, A, I]
	Ret    Type[V, A, I]
}

func (Func[V, A, I]) isType() {}

// InteractionRow is the (lo, hi) pair underlying an Interaction type: lo
// lists mandatory interactions with their parameter variables, hi bounds
// the set of permissible interactions from above.
type InteractionRow[V Ordered, I Ordered] struct {
	Lo map[I][]V
	Hi cset.Set[I]
}

// Interaction is an effect row type.
type Interaction[V Ordered, A any, I Ordered] struct {
	Row InteractionRow[V, I]
}

func (Interaction[V, A, I]) isType() {}

// Equal reports whether x and y are the same bound. A Type tree can
// carry maps (InteractionRow.Lo) and an opaque atom payload, so this
// uses reflect.DeepEqual rather than a hand-rolled structural walk; the
// corpus reserves go-cmp for test assertions, not runtime logic, so
// there is no third-party deep-equal available for this ambient
// concern and the standard library is the idiomatic choice.
func Equal[V Ordered, A any, I Ordered](x, y Type[V, A, I]) bool {
	return reflect.DeepEqual(x, y)
}
