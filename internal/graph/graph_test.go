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

package graph_test

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/infersolve/engine/internal/graph"
)

func TestTopoSortAcyclic(t *testing.T) {
	b := graph.NewBuilder[string]()
	b.AddEdge("w", "a")
	b.AddEdge("w", "b")
	b.AddEdge("b", "c")
	g := b.Build()

	order, ok := g.TopoSort()
	qt.Assert(t, qt.IsTrue(ok))

	pos := make(map[string]int, len(order))
	for i, k := range order {
		pos[k] = i
	}
	qt.Assert(t, qt.IsTrue(pos["w"] < pos["a"]))
	qt.Assert(t, qt.IsTrue(pos["w"] < pos["b"]))
	qt.Assert(t, qt.IsTrue(pos["b"] < pos["c"]))
}

func TestTopoSortIsolatedNode(t *testing.T) {
	b := graph.NewBuilder[string]()
	b.AddEdge("w", "a")
	b.EnsureNode("z")
	g := b.Build()

	order, ok := g.TopoSort()
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.HasLen(order, 3))
}

func TestTopoSortSelfCycle(t *testing.T) {
	b := graph.NewBuilder[string]()
	b.AddEdge("x", "x")
	g := b.Build()

	_, ok := g.TopoSort()
	qt.Assert(t, qt.IsFalse(ok))
}

func TestTopoSortLongerCycle(t *testing.T) {
	b := graph.NewBuilder[string]()
	b.AddEdge("a", "b")
	b.AddEdge("b", "c")
	b.AddEdge("c", "a")
	g := b.Build()

	_, ok := g.TopoSort()
	qt.Assert(t, qt.IsFalse(ok))
}

func TestAddEdgeIdempotent(t *testing.T) {
	b := graph.NewBuilder[string]()
	b.AddEdge("a", "b")
	b.AddEdge("a", "b")
	g := b.Build()

	qt.Assert(t, qt.HasLen(g.OutgoingEdges("a"), 1))
}
