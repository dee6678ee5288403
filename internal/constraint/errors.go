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
	"errors"
	"fmt"

	"github.com/infersolve/engine/internal/recur"
	"github.com/infersolve/engine/internal/types"
)

// ErrRecursive is returned when the structural-larger-than graph over
// the consolidated constraints has no topological order. It wraps
// internal/recur's own sentinel so callers can errors.Is against
// either.
var ErrRecursive = fmt.Errorf("constraint: recursive type: %w", recur.ErrRecursive)

// RecursiveType reports that a structural cycle was found before
// propagation began (spec §4.2).
type RecursiveType struct{}

func (RecursiveType) Error() string { return ErrRecursive.Error() }
func (RecursiveType) Unwrap() error { return ErrRecursive }

// asRecursiveType turns internal/recur's error into the public shape,
// per the error-kind vocabulary named in spec §7.
func asRecursiveType(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, recur.ErrRecursive) {
		return RecursiveType{}
	}
	return err
}

// InferenceError reports a unification failure while enforcing a named
// constraint, following cue/errors' pattern of pairing a message with
// the value that produced it rather than formatting eagerly.
type InferenceError[V types.Ordered, A any, I types.Ordered] struct {
	Constraint Constraint[V, A, I]
	Cause      error
}

func (e *InferenceError[V, A, I]) Error() string {
	return fmt.Sprintf("inference error on %T: %v", e.Constraint, e.Cause)
}

func (e *InferenceError[V, A, I]) Unwrap() error { return e.Cause }

// FormMismatch reports that Bound is not shaped as Form demands and is
// not Never or unknown.
type FormMismatch[V types.Ordered, A any, I types.Ordered] struct {
	Var   V
	Form  types.FormKind
	Bound types.Type[V, A, I]
}

func (e *FormMismatch[V, A, I]) Error() string {
	return fmt.Sprintf("variable bound is not shaped as %v: %T", e.Form, e.Bound)
}

// NotFunction reports that a Func-constrained variable holds a
// non-function concrete shape.
type NotFunction[V types.Ordered, A any, I types.Ordered] struct {
	Var   V
	Bound types.Type[V, A, I]
}

func (e *NotFunction[V, A, I]) Error() string {
	return fmt.Sprintf("variable bound is not a function: %T", e.Bound)
}

// NotInteraction reports that an interaction-constrained variable holds
// a non-interaction concrete shape.
type NotInteraction[V types.Ordered, A any, I types.Ordered] struct {
	Var   V
	Bound types.Type[V, A, I]
}

func (e *NotInteraction[V, A, I]) Error() string {
	return fmt.Sprintf("variable bound is not an interaction row: %T", e.Bound)
}

// InteractionCantContain reports that a rest variable in an
// InteractionDifference contains an interaction the difference forbids.
type InteractionCantContain[V types.Ordered, A any, I types.Ordered] struct {
	Var    V
	Inters []I
	Bound  types.InteractionRow[V, I]
}

func (e *InteractionCantContain[V, A, I]) Error() string {
	return fmt.Sprintf("interaction row contains a forbidden interaction from %v", e.Inters)
}
