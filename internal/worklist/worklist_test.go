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

package worklist_test

import (
	"errors"
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/infersolve/engine/internal/worklist"
)

// copyEnforcer propagates from "from" to "to" whenever from's generation
// has moved since this enforcer's last visit, simulating a
// Relation-LTE style enforcer built on queryVar/ChangeStatus.
type copyEnforcer struct {
	from, to string
	lastSeen uint64
	seenOnce bool
}

func (e *copyEnforcer) Enforce(q worklist.Query[string, int]) (map[string]int, worklist.ChangeStatus, error) {
	val, gen := q(e.from)
	if e.seenOnce && gen == e.lastSeen {
		return nil, worklist.Unchanged, nil
	}
	e.seenOnce = true
	e.lastSeen = gen
	return map[string]int{e.to: val}, worklist.Changed, nil
}

func maxMerge(_ string, existing, proposed int) (int, error) {
	if proposed > existing {
		return proposed, nil
	}
	return existing, nil
}

func intEqual(a, b int) bool { return a == b }

func TestSolvePropagatesChain(t *testing.T) {
	vars := []string{"a", "b", "c"}
	initial := map[string]int{"a": 5}
	enforcers := []worklist.Enforcer[string, int]{
		&copyEnforcer{from: "a", to: "b"},
		&copyEnforcer{from: "b", to: "c"},
	}

	got, err := worklist.Solve(vars, initial, 0, enforcers, maxMerge, intEqual)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(got["a"], 5))
	qt.Assert(t, qt.Equals(got["b"], 5))
	qt.Assert(t, qt.Equals(got["c"], 5))
}

func TestSolveNoEnforcersReturnsDefaults(t *testing.T) {
	vars := []string{"x", "y"}
	got, err := worklist.Solve[string, int](vars, nil, 7, nil, maxMerge, intEqual)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(got["x"], 7))
	qt.Assert(t, qt.Equals(got["y"], 7))
}

var errMergeRejected = errors.New("merge rejected")

func TestSolvePropagatesMergeError(t *testing.T) {
	vars := []string{"a", "b"}
	initial := map[string]int{"a": 1}
	enforcers := []worklist.Enforcer[string, int]{
		&copyEnforcer{from: "a", to: "b"},
	}
	failingMerge := func(v string, existing, proposed int) (int, error) {
		return 0, errMergeRejected
	}

	_, err := worklist.Solve(vars, initial, 0, enforcers, failingMerge, intEqual)
	qt.Assert(t, qt.ErrorIs(err, errMergeRejected))
}
