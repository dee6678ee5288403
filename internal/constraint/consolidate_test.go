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

package constraint_test

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/infersolve/engine/internal/constraint"
	"github.com/infersolve/engine/internal/types"
)

func TestConsolidateMergesDuplicateBounds(t *testing.T) {
	cs := []constraint.Constraint[string, int, string]{
		constraint.Bound[string, int, string]{Var: "x", Bound: types.Atom[string, int, string]{Value: 3}},
		constraint.Bound[string, int, string]{Var: "x", Bound: types.Atom[string, int, string]{Value: 3}},
	}
	out, err := constraint.Consolidate(cs, newUnifier())
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.DeepEquals(out.Bounds["x"], types.Type[string, int, string](types.Atom[string, int, string]{Value: 3})))
}

func TestConsolidateConflictingBoundsFail(t *testing.T) {
	cs := []constraint.Constraint[string, int, string]{
		constraint.Bound[string, int, string]{Var: "x", Bound: types.Atom[string, int, string]{Value: 3}},
		constraint.Bound[string, int, string]{Var: "x", Bound: types.Atom[string, int, string]{Value: 4}},
	}
	_, err := constraint.Consolidate(cs, newUnifier())
	qt.Assert(t, qt.IsNotNil(err))
	qt.Assert(t, qt.ErrorAs(err, new(*constraint.InferenceError[string, int, string])))
}

func TestConsolidateCanonicalizesFlippedRelation(t *testing.T) {
	cs := []constraint.Constraint[string, int, string]{
		constraint.Relation[string, int, string]{V1: "y", Rel: constraint.LTE, V2: "x"},
	}
	out, err := constraint.Consolidate(cs, newUnifier())
	qt.Assert(t, qt.IsNil(err))
	rel, ok := out.Relations[constraint.OrderedPair[string]{Lo: "x", Hi: "y"}]
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(rel, constraint.GTE))
}

func TestConsolidateEqualityCollapse(t *testing.T) {
	cs := []constraint.Constraint[string, int, string]{
		constraint.Relation[string, int, string]{V1: "x", Rel: constraint.LTE, V2: "y"},
		constraint.Relation[string, int, string]{V1: "x", Rel: constraint.GTE, V2: "y"},
	}
	out, err := constraint.Consolidate(cs, newUnifier())
	qt.Assert(t, qt.IsNil(err))
	rel := out.Relations[constraint.OrderedPair[string]{Lo: "x", Hi: "y"}]
	qt.Assert(t, qt.Equals(rel, constraint.Equality))
}
