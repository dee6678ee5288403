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

// Package unify implements the lifted unifier (spec §4.3): it elevates a
// caller-supplied atomic unifier from plain atoms to Option<Type>, in
// both an equality mode and an asymmetric (LTE/GTE) mode.
//
// The recursive structural dispatch follows internal/core/adt/unify.go's
// type-switch-over-the-sum-type shape and internal/core/adt/equality.go's
// Equal dispatch; unlike CUE's Vertex-based unifier this one never
// mutates its operands; unlike CUE's occurs-check-driven Bind it has no
// unification *variables* inside Type at all (all variable-ness lives in
// the caller's bound map, not in the Type value), so there is no
// analogous cycle check here — that is the separate job of
// internal/recur.
package unify

import (
	"fmt"

	"github.com/infersolve/engine/internal/types"
)

// Dir selects which side of an asymmetric unification is being computed.
type Dir int

const (
	LTE Dir = iota
	GTE
)

// AtomUnifier is the caller-supplied atomic unifier contract from spec
// §6. Implementations must be reflexive and symmetric where implied, and
// monotone under refinement.
//
// UnifyAsym's arguments are always positionally (lo, hi) under the
// standing relation lo ≤ hi; dir only selects which one to refine and
// return: LTE refines hi (lo just moved), GTE refines lo (hi just
// moved). Most atom domains only need to check lo <= hi and echo back
// the requested side.
type AtomUnifier[A any] interface {
	UnifyEQ(a, b A) (A, error)
	UnifyAsym(dir Dir, lo, hi A) (A, error)
	UnifyLTE(a, b A) (A, A, error)
}

// TypeError reports a structural mismatch discovered while unifying two
// Type values (not a Var-level shape mismatch, which the enforcers report
// as FormMismatch/NotFunction/NotInteraction).
type TypeError struct {
	msg string
}

func (e *TypeError) Error() string { return e.msg }

func mismatch(format string, args ...any) error {
	return &TypeError{msg: fmt.Sprintf(format, args...)}
}

// Unifier is the lifted unifier, parameterized over the variable, atom,
// and interaction-label domains, per the "generic atomic unifier" design
// note (spec §9): the engine must be reusable for any atom domain.
type Unifier[V types.Ordered, A any, I types.Ordered] struct {
	Atom AtomUnifier[A]
}

// New constructs a Unifier from a caller-supplied atomic unifier.
func New[V types.Ordered, A any, I types.Ordered](atom AtomUnifier[A]) *Unifier[V, A, I] {
	return &Unifier[V, A, I]{Atom: atom}
}

// UnifyEQ computes a common bound for x and y. A nil operand (None) is
// the identity; two present operands of incompatible shape fail.
func (u *Unifier[V, A, I]) UnifyEQ(x, y types.Type[V, A, I]) (types.Type[V, A, I], error) {
	if x == nil {
		return y, nil
	}
	if y == nil {
		return x, nil
	}

	switch xv := x.(type) {
	case types.Atom[V, A, I]:
		yv, ok := y.(types.Atom[V, A, I])
		if !ok {
			return nil, mismatch("cannot unify Atom with %T", y)
		}
		v, err := u.Atom.UnifyEQ(xv.Value, yv.Value)
		if err != nil {
			return nil, err
		}
		return types.Atom[V, A, I]{Value: v}, nil

	case types.Never[V, A, I]:
		if _, ok := y.(types.Never[V, A, I]); ok {
			return x, nil
		}
		return nil, mismatch("cannot unify Never with %T", y)

	case types.App[V, A, I]:
		yv, ok := y.(types.App[V, A, I])
		if !ok {
			return nil, mismatch("cannot unify App with %T", y)
		}
		head, err := u.UnifyEQ(xv.Head, yv.Head)
		if err != nil {
			return nil, err
		}
		param, err := u.UnifyEQ(xv.Param, yv.Param)
		if err != nil {
			return nil, err
		}
		return types.App[V, A, I]{Head: head, Param: param}, nil

	case types.Tuple[V, A, I]:
		yv, ok := y.(types.Tuple[V, A, I])
		if !ok {
			return nil, mismatch("cannot unify Tuple with %T", y)
		}
		fst, err := u.UnifyEQ(xv.Fst, yv.Fst)
		if err != nil {
			return nil, err
		}
		snd, err := u.UnifyEQ(xv.Snd, yv.Snd)
		if err != nil {
			return nil, err
		}
		return types.Tuple[V, A, I]{Bounds: andBounds(xv.Bounds, yv.Bounds), Fst: fst, Snd: snd}, nil

	case types.Func[V, A, I]:
		yv, ok := y.(types.Func[V, A, I])
		if !ok {
			return nil, mismatch("cannot unify Func with %T", y)
		}
		arg, err := u.UnifyEQ(xv.Arg, yv.Arg)
		if err != nil {
			return nil, err
		}
		inter, err := u.UnifyEQ(xv.Inter, yv.Inter)
		if err != nil {
			return nil, err
		}
		ret, err := u.UnifyEQ(xv.Ret, yv.Ret)
		if err != nil {
			return nil, err
		}
		return types.Func[V, A, I]{Bounds: andBounds(xv.Bounds, yv.Bounds), Arg: arg, Inter: inter, Ret: ret}, nil

	case types.Interaction[V, A, I]:
		yv, ok := y.(types.Interaction[V, A, I])
		if !ok {
			return nil, mismatch("cannot unify Interaction with %T", y)
		}
		row, err := rowUnifyEQ(xv.Row, yv.Row)
		if err != nil {
			return nil, err
		}
		return types.Interaction[V, A, I]{Row: row}, nil

	default:
		return nil, mismatch("unify: unknown type kind %T", x)
	}
}

// UnifyAsym refines one side of the standing relation lo ≤ hi, knowing
// the other: dir == LTE refines and returns hi (called when lo is the
// side that moved); dir == GTE refines and returns lo (called when hi
// moved). The positions of lo and hi never swap: only which one gets
// refined-and-returned changes with dir. This is what lets
// relation-LTE's two "only one side changed" cases and UnifyLTE's two
// refinements share the same (lo, hi) argument pair.
func (u *Unifier[V, A, I]) UnifyAsym(dir Dir, lo, hi types.Type[V, A, I]) (types.Type[V, A, I], error) {
	if lo == nil {
		return hi, nil
	}
	if hi == nil {
		return lo, nil
	}

	switch lv := lo.(type) {
	case types.Atom[V, A, I]:
		hv, ok := hi.(types.Atom[V, A, I])
		if !ok {
			return nil, mismatch("cannot unify Atom with %T", hi)
		}
		v, err := u.Atom.UnifyAsym(dir, lv.Value, hv.Value)
		if err != nil {
			return nil, err
		}
		return types.Atom[V, A, I]{Value: v}, nil

	case types.Never[V, A, I]:
		// Never is the bottom of the lattice: it is ≤ anything, so
		// refining hi from it leaves hi unchanged; refining lo back
		// from hi leaves it Never.
		if dir == LTE {
			return hi, nil
		}
		return lo, nil

	case types.App[V, A, I]:
		hv, ok := hi.(types.App[V, A, I])
		if !ok {
			return nil, mismatch("cannot unify App with %T", hi)
		}
		head, err := u.UnifyAsym(dir, lv.Head, hv.Head)
		if err != nil {
			return nil, err
		}
		param, err := u.UnifyAsym(dir, lv.Param, hv.Param)
		if err != nil {
			return nil, err
		}
		return types.App[V, A, I]{Head: head, Param: param}, nil

	case types.Tuple[V, A, I]:
		hv, ok := hi.(types.Tuple[V, A, I])
		if !ok {
			return nil, mismatch("cannot unify Tuple with %T", hi)
		}
		fst, err := u.UnifyAsym(dir, lv.Fst, hv.Fst)
		if err != nil {
			return nil, err
		}
		snd, err := u.UnifyAsym(dir, lv.Snd, hv.Snd)
		if err != nil {
			return nil, err
		}
		return types.Tuple[V, A, I]{Bounds: andBounds(lv.Bounds, hv.Bounds), Fst: fst, Snd: snd}, nil

	case types.Func[V, A, I]:
		hv, ok := hi.(types.Func[V, A, I])
		if !ok {
			return nil, mismatch("cannot unify Func with %T", hi)
		}
		arg, err := u.UnifyAsym(dir, lv.Arg, hv.Arg)
		if err != nil {
			return nil, err
		}
		inter, err := u.UnifyAsym(dir, lv.Inter, hv.Inter)
		if err != nil {
			return nil, err
		}
		ret, err := u.UnifyAsym(dir, lv.Ret, hv.Ret)
		if err != nil {
			return nil, err
		}
		return types.Func[V, A, I]{Bounds: andBounds(lv.Bounds, hv.Bounds), Arg: arg, Inter: inter, Ret: ret}, nil

	case types.Interaction[V, A, I]:
		hv, ok := hi.(types.Interaction[V, A, I])
		if !ok {
			return nil, mismatch("cannot unify Interaction with %T", hi)
		}
		row, err := rowUnifyAsym(dir, lv.Row, hv.Row)
		if err != nil {
			return nil, err
		}
		return types.Interaction[V, A, I]{Row: row}, nil

	default:
		return nil, mismatch("unify: unknown type kind %T", lo)
	}
}

// UnifyLTE returns both refined sides of x ≤ y: the refined upper comes
// from the LTE computation, the refined lower from its GTE mirror, both
// starting from the same (x, y) pair so the two refinements are
// consistent with each other.
func (u *Unifier[V, A, I]) UnifyLTE(x, y types.Type[V, A, I]) (types.Type[V, A, I], types.Type[V, A, I], error) {
	newUpper, err := u.UnifyAsym(LTE, x, y)
	if err != nil {
		return nil, nil, err
	}
	newLower, err := u.UnifyAsym(GTE, x, y)
	if err != nil {
		return nil, nil, err
	}
	return newLower, newUpper, nil
}

func andBounds(a, b types.SpecialBounds) types.SpecialBounds {
	return types.SpecialBounds{
		CanBeNever: a.CanBeNever && b.CanBeNever,
		CanBeTop:   a.CanBeTop && b.CanBeTop,
	}
}
