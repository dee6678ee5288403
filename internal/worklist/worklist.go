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

// Package worklist implements the generic fixed-point propagation driver
// of spec §5: an explicit worklist of enforcers is run to exhaustion,
// each pass reading the current bound map and proposing updates, until a
// full pass changes no bound.
//
// The shape is adapted from internal/core/adt's task scheduler
// (sched.go), which also drives a set of handlers to a fixed point by
// repeatedly running whichever are runnable and stopping once none are.
// This driver is simpler: it has no task priorities or dependency
// graph, since spec §5 only requires termination when no enforcer can
// still make progress, not optimal scheduling order.
package worklist

import (
	"cmp"
	"log"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// debug gates round/enforcer tracing. It is flippable only from within
// this package's own tests, never from an environment variable — the
// engine takes no configuration (spec's Non-goals).
var debug = false

func logf(format string, args ...any) {
	if debug {
		log.Printf(format, args...)
	}
}

func init() {
	log.SetFlags(0)
}

// ChangeStatus reports whether a variable's bound has moved since an
// enforcer last looked at it, matching spec §4.4's queryVar contract.
type ChangeStatus int

const (
	Unchanged ChangeStatus = iota
	Changed
)

// Query answers a variable's current bound together with a generation
// counter that increments every time the driver accepts a new bound for
// that variable. Enforcers are expected to remember the generation they
// last observed per variable and derive their own ChangeStatus from it;
// that bookkeeping is per-enforcer because "since last visit" is
// relative to each enforcer's own visit schedule, not a global clock.
type Query[Var cmp.Ordered, Val any] func(v Var) (bound Val, generation uint64)

// Enforcer is one constraint's contribution to the fixed-point driver.
// Enforce reads the current bound and generation of any variable it
// needs via q, and returns any refined bounds it can derive plus
// whether it derived anything new this round. Enforcers must be
// idempotent: invoked twice in a row with no generation change on any
// variable they watch, they must report Unchanged both times.
//
// A non-nil err (a structural mismatch the enforcer detected on its own,
// as opposed to a merge conflict) aborts Solve immediately with that
// error; updates and status are ignored in that case.
type Enforcer[Var cmp.Ordered, Val any] interface {
	Enforce(q Query[Var, Val]) (updates map[Var]Val, status ChangeStatus, err error)
}

// Merge combines a variable's existing bound with a proposed update,
// typically by delegating to the lifted unifier's UnifyEQ. An error here
// aborts Solve.
type Merge[Var cmp.Ordered, Val any] func(v Var, existing, proposed Val) (Val, error)

// Equal reports whether two bounds are the same value, so Solve can
// avoid bumping a variable's generation (and so looping forever) when a
// merge happens to reproduce the bound that was already there.
type Equal[Val any] func(a, b Val) bool

// Solve runs enforcers to a fixed point starting from the given initial
// bounds (any variable not present starts at defaultVal, generation 0;
// seeded variables start at generation 1 so enforcers see them as
// Changed on their first visit), and returns the final bound map. It
// terminates when one full pass over enforcers changes no variable's
// bound; a proposed update whose merge equals the existing bound does
// not count as a change.
func Solve[Var cmp.Ordered, Val any](
	vars []Var,
	initial map[Var]Val,
	defaultVal Val,
	enforcers []Enforcer[Var, Val],
	merge Merge[Var, Val],
	equal Equal[Val],
) (map[Var]Val, error) {
	bound := make(map[Var]Val, len(vars))
	gen := make(map[Var]uint64, len(vars))
	for _, v := range vars {
		bound[v] = defaultVal
	}
	for v, val := range initial {
		bound[v] = val
		gen[v] = 1
	}

	q := func(v Var) (Val, uint64) {
		if val, ok := bound[v]; ok {
			return val, gen[v]
		}
		return defaultVal, 0
	}

	for round := 1; ; round++ {
		anyChanged := false
		logf("worklist: round %d starting, %d enforcer(s)", round, len(enforcers))
		for i, e := range enforcers {
			updates, status, err := e.Enforce(q)
			if err != nil {
				return nil, err
			}
			if status == Unchanged {
				continue
			}
			logf("worklist: round %d enforcer %d proposed %d update(s)", round, i, len(updates))
			keys := maps.Keys(updates)
			slices.Sort(keys)
			for _, v := range keys {
				existing, _ := q(v)
				merged, err := merge(v, existing, updates[v])
				if err != nil {
					return nil, err
				}
				if equal(existing, merged) {
					continue
				}
				logf("worklist: round %d var %v advanced to generation %d", round, v, gen[v]+1)
				bound[v] = merged
				gen[v]++
				anyChanged = true
			}
		}
		if !anyChanged {
			logf("worklist: fixed point reached after %d round(s)", round)
			break
		}
	}

	return bound, nil
}
