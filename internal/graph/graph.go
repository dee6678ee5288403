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

// Package graph implements the directed-graph and topological-sort
// collaborator described in spec §6: buildDirectedGraph, outgoingEdges,
// and topoSort. It is deliberately generic and knows nothing about Type
// or Var; the recursion checker (internal/recur) is its only caller.
//
// The Builder/Node shape is adapted from internal/core/toposort's
// GraphBuilder, which CUE uses to order struct fields. That package's own
// Sort never fails: CUE needs a total order even across cycles, so it
// breaks them. This package has the opposite job — report whether an
// order exists at all — so it keeps the GraphBuilder/Node vocabulary but
// replaces the cycle-breaking sort with a failing Kahn's algorithm.
package graph

import (
	"cmp"
	"slices"

	"github.com/mpvl/unique"
)

// Node is an opaque graph vertex, identified by a caller-supplied key.
type Node[K cmp.Ordered] struct {
	Key      K
	outgoing []K
}

type edge[K cmp.Ordered] struct {
	from, to K
}

// Builder accumulates edges into a Graph. The zero value is not usable;
// construct with NewBuilder.
type Builder[K cmp.Ordered] struct {
	edgesSeen map[edge[K]]struct{}
	nodes     map[K]*Node[K]
	order     []K
}

// NewBuilder returns an empty Builder.
func NewBuilder[K cmp.Ordered]() *Builder[K] {
	return &Builder[K]{
		edgesSeen: make(map[edge[K]]struct{}),
		nodes:     make(map[K]*Node[K]),
	}
}

// EnsureNode registers k as a node even if it has no edges, so that
// isolated variables still appear in the final order.
func (b *Builder[K]) EnsureNode(k K) {
	if _, ok := b.nodes[k]; !ok {
		b.nodes[k] = &Node[K]{Key: k}
		b.order = append(b.order, k)
	}
}

// AddEdge adds a directed edge from > to (from is structurally larger
// than to). Idempotent: adding the same edge twice has no extra effect.
func (b *Builder[K]) AddEdge(from, to K) {
	b.EnsureNode(from)
	b.EnsureNode(to)

	e := edge[K]{from: from, to: to}
	if _, ok := b.edgesSeen[e]; ok {
		return
	}
	b.edgesSeen[e] = struct{}{}
	b.nodes[from].outgoing = append(b.nodes[from].outgoing, to)
}

// Build finalizes the graph. The Builder may continue to be used
// afterwards; Build takes a snapshot.
func (b *Builder[K]) Build() *Graph[K] {
	nodes := make(map[K]*Node[K], len(b.nodes))
	for k, n := range b.nodes {
		outgoing := slices.Clone(n.outgoing)
		sortDedup(&outgoing)
		nodes[k] = &Node[K]{Key: k, outgoing: outgoing}
	}
	order := slices.Clone(b.order)
	slices.Sort(order)
	return &Graph[K]{nodes: nodes, order: order}
}

// Graph is an immutable directed graph built from a Builder.
type Graph[K cmp.Ordered] struct {
	nodes map[K]*Node[K]
	order []K
}

// OutgoingEdges returns the destinations of k's outgoing edges, sorted
// and deduplicated.
func (g *Graph[K]) OutgoingEdges(k K) []K {
	n, ok := g.nodes[k]
	if !ok {
		return nil
	}
	return n.outgoing
}

// Nodes returns every node key in deterministic (sorted) order.
func (g *Graph[K]) Nodes() []K {
	return g.order
}

// TopoSort returns a topological order of the graph's nodes. ok is false
// iff the graph contains a cycle, matching spec §6's
// topoSort(Adjacency) → Option<[Node]>.
//
// Kahn's algorithm is used rather than the teacher's DFS-based
// StronglyConnectedComponents/ElementaryCycles machinery, since this
// caller only needs a yes/no cycle answer, not a cycle-tolerant total
// order; ties are broken by ascending key for determinism (spec §8,
// invariant 1).
func (g *Graph[K]) TopoSort() (order []K, ok bool) {
	indegree := make(map[K]int, len(g.nodes))
	for _, k := range g.order {
		indegree[k] = 0
	}
	for _, k := range g.order {
		for _, to := range g.nodes[k].outgoing {
			indegree[to]++
		}
	}

	var ready []K
	for _, k := range g.order {
		if indegree[k] == 0 {
			ready = append(ready, k)
		}
	}
	slices.Sort(ready)

	result := make([]K, 0, len(g.order))
	for len(ready) > 0 {
		k := ready[0]
		ready = ready[1:]
		result = append(result, k)

		var newlyReady []K
		for _, to := range g.nodes[k].outgoing {
			indegree[to]--
			if indegree[to] == 0 {
				newlyReady = append(newlyReady, to)
			}
		}
		if len(newlyReady) > 0 {
			slices.Sort(newlyReady)
			ready = mergeSorted(ready, newlyReady)
		}
	}

	if len(result) != len(g.order) {
		return nil, false
	}
	return result, true
}

func mergeSorted[K cmp.Ordered](a, b []K) []K {
	out := make([]K, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if a[i] <= b[j] {
			out = append(out, a[i])
			i++
		} else {
			out = append(out, b[j])
			j++
		}
	}
	out = append(out, a[i:]...)
	out = append(out, b[j:]...)
	return out
}

// sortedKeys adapts *[]K to mpvl/unique's Interface so outgoing-edge
// lists can be sorted and deduplicated in one pass, the same pattern
// internal/cset uses for ComplementSet members.
type sortedKeys[K cmp.Ordered] struct {
	data *[]K
}

func (s sortedKeys[K]) Len() int           { return len(*s.data) }
func (s sortedKeys[K]) Less(i, j int) bool { return (*s.data)[i] < (*s.data)[j] }
func (s sortedKeys[K]) Swap(i, j int)      { (*s.data)[i], (*s.data)[j] = (*s.data)[j], (*s.data)[i] }
func (s sortedKeys[K]) Truncate(n int)     { *s.data = (*s.data)[:n] }

func sortDedup[K cmp.Ordered](data *[]K) {
	unique.Sort(sortedKeys[K]{data: data})
}
