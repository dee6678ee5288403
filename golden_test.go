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

package infer_test

import (
	"embed"
	"fmt"
	"testing"

	"github.com/go-quicktest/qt"
	"gopkg.in/yaml.v3"

	"github.com/infersolve/engine"
	"github.com/infersolve/engine/internal/refdomain"
)

//go:embed testdata/scenarios.yaml
var scenarioFixtures embed.FS

type yamlAtom struct {
	Kind string `yaml:"kind"`
	Int  int64  `yaml:"int"`
	Bool bool   `yaml:"bool"`
}

func (y yamlAtom) toAtom() refdomain.Atom {
	switch y.Kind {
	case "Int":
		return refdomain.Atom{Kind: refdomain.Int, IntVal: y.Int}
	case "Bool":
		return refdomain.Atom{Kind: refdomain.Bool, BoolVal: y.Bool}
	default:
		panic(fmt.Sprintf("golden_test: unknown atom kind %q", y.Kind))
	}
}

type yamlBound struct {
	Var  string   `yaml:"var"`
	Atom yamlAtom `yaml:"atom"`
}

type yamlRelation struct {
	V1  string `yaml:"v1"`
	Rel string `yaml:"rel"`
	V2  string `yaml:"v2"`
}

func (y yamlRelation) toRelKind() infer.RelKind {
	switch y.Rel {
	case "Equality":
		return infer.Equality
	case "LTE":
		return infer.LTE
	case "GTE":
		return infer.GTE
	default:
		panic(fmt.Sprintf("golden_test: unknown relation kind %q", y.Rel))
	}
}

type yamlScenario struct {
	Name      string              `yaml:"name"`
	Bounds    []yamlBound         `yaml:"bounds"`
	Relations []yamlRelation      `yaml:"relations"`
	Want      map[string]yamlAtom `yaml:"want"`
}

type yamlFixtures struct {
	Scenarios []yamlScenario `yaml:"scenarios"`
}

func loadFixtures(t *testing.T) yamlFixtures {
	t.Helper()
	raw, err := scenarioFixtures.ReadFile("testdata/scenarios.yaml")
	qt.Assert(t, qt.IsNil(err))
	var fx yamlFixtures
	qt.Assert(t, qt.IsNil(yaml.Unmarshal(raw, &fx)))
	return fx
}

func TestGoldenScenarios(t *testing.T) {
	fx := loadFixtures(t)
	for _, sc := range fx.Scenarios {
		t.Run(sc.Name, func(t *testing.T) {
			var cs []infer.Constraint[refdomain.Var, refdomain.Atom, string]
			for _, b := range sc.Bounds {
				cs = append(cs, infer.Bound[refdomain.Var, refdomain.Atom, string]{
					Var:   refdomain.Var(b.Var),
					Bound: infer.Atom[refdomain.Var, refdomain.Atom, string]{Value: b.Atom.toAtom()},
				})
			}
			for _, r := range sc.Relations {
				cs = append(cs, infer.Relation[refdomain.Var, refdomain.Atom, string]{
					V1:  refdomain.Var(r.V1),
					Rel: r.toRelKind(),
					V2:  refdomain.Var(r.V2),
				})
			}

			sol, err := infer.Solve(infer.Problem[refdomain.Var, refdomain.Atom, string]{
				Constraints: cs,
				AtomUnifier: refdomain.Unifier{},
			})
			qt.Assert(t, qt.IsNil(err))

			for v, want := range sc.Want {
				got := sol(refdomain.Var(v))
				wantType := infer.Type[refdomain.Var, refdomain.Atom, string](infer.Atom[refdomain.Var, refdomain.Atom, string]{Value: want.toAtom()})
				qt.Assert(t, qt.DeepEquals(got, wantType))
			}
		})
	}
}
