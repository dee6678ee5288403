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

import "fmt"

// debug gates Assertf, mirroring internal/worklist's own debug switch and
// internal/core/adt/log.go's Assertf: an internal invariant check that is
// silent by default and only panics with tracing enabled in tests, never
// via an environment variable.
var debug = false

// Assertf panics if cond is false while debug is enabled. It documents an
// invariant that should always hold; violating it means a bug in this
// package, not a malformed Problem, so it is not reported as an error.
func Assertf(cond bool, format string, args ...any) {
	if debug && !cond {
		panic(fmt.Sprintf("assertion failed: "+format, args...))
	}
}
