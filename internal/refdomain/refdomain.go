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

// Package refdomain is a reference instantiation of the engine's two
// open type parameters: an atomic unifier over a small {Int, Bool, Num}
// domain, and an opaque UUID-backed Var, both used by the end-to-end
// scenario tests and suitable as a starting point for a caller's own
// domain.
package refdomain

import (
	"fmt"

	"github.com/cockroachdb/apd/v3"
	"github.com/google/uuid"

	"github.com/infersolve/engine/internal/unify"
)

// Kind names an Atom's payload.
type Kind int

const (
	Int Kind = iota
	Bool
	Num
)

func (k Kind) String() string {
	switch k {
	case Int:
		return "Int"
	case Bool:
		return "Bool"
	case Num:
		return "Num"
	default:
		return "Kind(?)"
	}
}

// Atom is a leaf value in the reference domain. Only one of IntVal,
// BoolVal, NumVal is meaningful, selected by Kind. Num is backed by
// apd.Decimal (mirroring adt.Num's arbitrary-precision payload) rather
// than a float, so equality is exact regardless of how the value was
// parsed.
type Atom struct {
	Kind    Kind
	IntVal  int64
	BoolVal bool
	NumVal  apd.Decimal
}

func (a Atom) String() string {
	switch a.Kind {
	case Int:
		return fmt.Sprintf("Int(%d)", a.IntVal)
	case Bool:
		return fmt.Sprintf("Bool(%t)", a.BoolVal)
	case Num:
		return fmt.Sprintf("Num(%s)", a.NumVal.String())
	default:
		return "Atom(?)"
	}
}

func (a Atom) equal(b Atom) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case Int:
		return a.IntVal == b.IntVal
	case Bool:
		return a.BoolVal == b.BoolVal
	case Num:
		return a.NumVal.Cmp(&b.NumVal) == 0
	default:
		return false
	}
}

// Unifier implements unify.AtomUnifier[Atom] with trivial equality
// unification (spec §8): the domain has no sub-atom refinement, so
// UnifyAsym and UnifyLTE both degrade to an equality check.
type Unifier struct{}

func (Unifier) UnifyEQ(a, b Atom) (Atom, error) {
	if !a.equal(b) {
		return Atom{}, fmt.Errorf("refdomain: atom mismatch: %v != %v", a, b)
	}
	return a, nil
}

func (Unifier) UnifyAsym(_ unify.Dir, lo, hi Atom) (Atom, error) {
	if !lo.equal(hi) {
		return Atom{}, fmt.Errorf("refdomain: atom mismatch: %v != %v", lo, hi)
	}
	return lo, nil
}

func (Unifier) UnifyLTE(a, b Atom) (Atom, Atom, error) {
	if !a.equal(b) {
		return Atom{}, Atom{}, fmt.Errorf("refdomain: atom mismatch: %v != %v", a, b)
	}
	return a, b, nil
}

// Var is an opaque, UUID-backed type variable identifier. Its
// lexicographic string order has no domain meaning; it exists purely to
// satisfy types.Ordered so symmetric pairs can be canonicalized.
type Var string

// NewVar returns a fresh Var.
func NewVar() Var {
	return Var(uuid.NewString())
}
