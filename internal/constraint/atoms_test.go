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
	"fmt"

	"github.com/infersolve/engine/internal/unify"
)

// intAtoms is a trivially ordered atom domain shared by this package's
// enforcer tests: two atoms unify under equality iff equal, and under
// asymmetric/LTE unification iff lo <= hi.
type intAtoms struct{}

func (intAtoms) UnifyEQ(a, b int) (int, error) {
	if a != b {
		return 0, fmt.Errorf("atom mismatch: %d != %d", a, b)
	}
	return a, nil
}

func (intAtoms) UnifyAsym(dir unify.Dir, lo, hi int) (int, error) {
	if lo > hi {
		return 0, fmt.Errorf("atom out of order: %d > %d", lo, hi)
	}
	if dir == unify.LTE {
		return hi, nil
	}
	return lo, nil
}

func (intAtoms) UnifyLTE(a, b int) (int, int, error) {
	if a > b {
		return 0, 0, fmt.Errorf("atom out of order: %d > %d", a, b)
	}
	return a, b, nil
}

func newUnifier() *unify.Unifier[string, int, string] {
	return unify.New[string, int, string](intAtoms{})
}
