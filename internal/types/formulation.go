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

package types

import "github.com/infersolve/engine/internal/cset"

// FormKind names a structural split/join of a type: AppOf splits App(h,p)
// into (h,p), TupleOf splits Tuple(_,x,y) into (x,y).
type FormKind int

const (
	AppOf FormKind = iota
	TupleOf
)

func (f FormKind) String() string {
	switch f {
	case AppOf:
		return "AppOf"
	case TupleOf:
		return "TupleOf"
	default:
		return "FormKind(?)"
	}
}

// SplitFormulation splits whole into its two components under form. ok is
// false when whole is some concrete shape that form cannot split (the
// caller reports FormMismatch in that case).
func SplitFormulation[V Ordered, A any, I Ordered](whole Type[V, A, I], form FormKind) (a, b Type[V, A, I], ok bool) {
	if whole == nil {
		return nil, nil, true
	}
	switch form {
	case AppOf:
		switch w := whole.(type) {
		case App[V, A, I]:
			return w.Head, w.Param, true
		case Never[V, A, I]:
			return Never[V, A, I]{}, nil, true
		default:
			return nil, nil, false
		}
	case TupleOf:
		switch w := whole.(type) {
		case Tuple[V, A, I]:
			return w.Fst, w.Snd, true
		case Never[V, A, I]:
			return nil, nil, true
		default:
			return nil, nil, false
		}
	default:
		return nil, nil, false
	}
}

// JoinFormulation rebuilds a type from two components under form.
// AppOf rebuilds App(a,b); TupleOf rebuilds Tuple with NeutralBounds, the
// identity element for special bounds.
func JoinFormulation[V Ordered, A any, I Ordered](form FormKind, a, b Type[V, A, I]) Type[V, A, I] {
	switch form {
	case AppOf:
		return App[V, A, I]{Head: a, Param: b}
	case TupleOf:
		return Tuple[V, A, I]{Bounds: NeutralBounds(), Fst: a, Snd: b}
	default:
		panic("types: unknown FormKind")
	}
}

// FuncComponents splits whole into its argument, interaction, and result
// components. ok is false when whole is a concrete shape that is not
// Func (the caller reports NotFunction in that case).
func FuncComponents[V Ordered, A any, I Ordered](whole Type[V, A, I]) (arg, inter, ret Type[V, A, I], ok bool) {
	if whole == nil {
		return nil, nil, nil, true
	}
	switch w := whole.(type) {
	case Func[V, A, I]:
		return w.Arg, w.Inter, w.Ret, true
	default:
		return nil, nil, nil, false
	}
}

// JoinFunc rebuilds a Func type from its three components, using the
// neutral SpecialBounds (true, true) per spec §4.4.
func JoinFunc[V Ordered, A any, I Ordered](arg, inter, ret Type[V, A, I]) Type[V, A, I] {
	return Func[V, A, I]{Bounds: NeutralBounds(), Arg: arg, Inter: inter, Ret: ret}
}

// InteractionComponents extracts the (lo, hi) row underlying whole. A nil
// whole (no bound known) projects to the top row (no mandatory
// interactions, everything permitted): the neutral element of the
// interaction lattice. Never projects to the bottom row (no mandatory
// interactions, nothing permitted), matching "every structural projection
// of Never yields Never on all components" (spec §3). Any other concrete
// shape reports ok=false (the caller reports NotInteraction).
func InteractionComponents[V Ordered, A any, I Ordered](whole Type[V, A, I]) (row InteractionRow[V, I], ok bool) {
	if whole == nil {
		return TopRow[V, I](), true
	}
	switch w := whole.(type) {
	case Interaction[V, A, I]:
		return w.Row, true
	case Never[V, A, I]:
		return BottomRow[V, I](), true
	default:
		return InteractionRow[V, I]{}, false
	}
}

// TopRow is the neutral element of the interaction lattice: no mandatory
// interactions, every interaction permitted.
func TopRow[V Ordered, I Ordered]() InteractionRow[V, I] {
	return InteractionRow[V, I]{Lo: map[I][]V{}, Hi: cset.Excluded[I](nil)}
}

// BottomRow is the least element of the interaction lattice: no mandatory
// interactions, no interaction permitted.
func BottomRow[V Ordered, I Ordered]() InteractionRow[V, I] {
	return InteractionRow[V, I]{Lo: map[I][]V{}, Hi: cset.Included[I](nil)}
}

// CloneRow returns a shallow copy of row whose Lo map can be mutated
// independently of row's.
func CloneRow[V Ordered, I Ordered](row InteractionRow[V, I]) InteractionRow[V, I] {
	lo := make(map[I][]V, len(row.Lo))
	for k, v := range row.Lo {
		lo[k] = v
	}
	return InteractionRow[V, I]{Lo: lo, Hi: row.Hi}
}

// InteractionSubtract removes every key in inters from row.Lo and
// intersects row.Hi with the complement of inters, per spec §4.4.
func InteractionSubtract[V Ordered, I Ordered](inters []I, row InteractionRow[V, I]) InteractionRow[V, I] {
	out := CloneRow(row)
	for _, k := range inters {
		delete(out.Lo, k)
	}
	out.Hi = cset.Intersection(out.Hi, cset.Excluded[I](inters))
	return out
}

// TransferValues copies entries from src into dst for keys that already
// exist in dst, leaving dst's other keys and src's other entries
// untouched. It is used to refresh parameter bindings already present in
// a partially-known row from a more fully resolved one, without
// introducing new interaction keys that the destination did not already
// mention.
func TransferValues[I Ordered, T any](src, dst map[I]T) {
	for k := range dst {
		if v, ok := src[k]; ok {
			dst[k] = v
		}
	}
}
