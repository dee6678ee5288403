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

func TestCheckRecursionAcyclicSucceeds(t *testing.T) {
	cs := []constraint.Constraint[string, int, string]{
		constraint.Formulation[string, int, string]{Whole: "w", Form: types.TupleOf, PartA: "a", PartB: "b"},
	}
	out, err := constraint.Consolidate(cs, newUnifier())
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsNil(constraint.CheckRecursion(out)))
}

func TestCheckRecursionDirectCycleFails(t *testing.T) {
	cs := []constraint.Constraint[string, int, string]{
		constraint.Formulation[string, int, string]{Whole: "x", Form: types.AppOf, PartA: "x", PartB: "y"},
	}
	out, err := constraint.Consolidate(cs, newUnifier())
	qt.Assert(t, qt.IsNil(err))
	rerr := constraint.CheckRecursion(out)
	qt.Assert(t, qt.ErrorIs(rerr, constraint.ErrRecursive))
}

func TestCheckRecursionDifferenceEdgeOnlyWhenIntersNonEmpty(t *testing.T) {
	// r > w via the Formulation; a w > r edge from the difference would
	// close a cycle, so the check fails exactly when that edge is added.
	cs := []constraint.Constraint[string, int, string]{
		constraint.InteractionDifference[string, int, string]{Whole: "w", Inters: nil, Rest: "r"},
		constraint.Formulation[string, int, string]{Whole: "r", Form: types.AppOf, PartA: "w", PartB: "y"},
	}
	out, err := constraint.Consolidate(cs, newUnifier())
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsNil(constraint.CheckRecursion(out)))

	cs = []constraint.Constraint[string, int, string]{
		constraint.InteractionDifference[string, int, string]{Whole: "w", Inters: []string{"Read"}, Rest: "r"},
		constraint.Formulation[string, int, string]{Whole: "r", Form: types.AppOf, PartA: "w", PartB: "y"},
	}
	out, err = constraint.Consolidate(cs, newUnifier())
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.ErrorIs(constraint.CheckRecursion(out), constraint.ErrRecursive))
}
