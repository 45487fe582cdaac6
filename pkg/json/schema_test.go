// Copyright 2022 Google Inc.
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

package json

import (
	"testing"

	"github.com/kylelemons/godebug/pretty"
)

func TestExtractSchema(t *testing.T) {
	infer := &SchemaOptions{InferArrayTypes: true}
	for _, tt := range []struct {
		line int
		in   string
		opts *SchemaOptions
		want *Schema
	}{
		{line: line(), in: `"x"`, want: &Schema{Kind: SchemaString}},
		{line: line(), in: `3.5`, want: &Schema{Kind: SchemaNumber}},
		{line: line(), in: `true`, want: &Schema{Kind: SchemaBoolean}},
		{line: line(), in: `null`, want: &Schema{Kind: SchemaNull}},

		// Without inference, array items are any.
		{line: line(), in: `[1,2]`, want: &Schema{Kind: SchemaArray}},

		// With inference, equal element schemas collapse.
		{line: line(), in: `[1,2,3]`, opts: infer,
			want: &Schema{Kind: SchemaArray, Items: &Schema{Kind: SchemaNumber}}},
		// Mixed element types degrade to any.
		{line: line(), in: `[1,"x"]`, opts: infer,
			want: &Schema{Kind: SchemaArray}},
		// Null elements mark the item schema nullable.
		{line: line(), in: `[1,null,2]`, opts: infer,
			want: &Schema{Kind: SchemaArray, Items: &Schema{Kind: SchemaNumber, Nullable: true}}},
		{line: line(), in: `[null,null]`, opts: infer,
			want: &Schema{Kind: SchemaArray, Items: &Schema{Kind: SchemaNull}}},

		{line: line(), in: `{"a":1,"b":{"c":"x"}}`, opts: infer,
			want: &Schema{
				Kind:  SchemaObject,
				Order: []string{"a", "b"},
				Properties: map[string]*Schema{
					"a": {Kind: SchemaNumber},
					"b": {
						Kind:       SchemaObject,
						Order:      []string{"c"},
						Properties: map[string]*Schema{"c": {Kind: SchemaString}},
					},
				},
			}},

		// Arrays of equal-shaped objects infer an object item schema.
		{line: line(), in: `[{"a":1},{"a":2}]`, opts: infer,
			want: &Schema{
				Kind: SchemaArray,
				Items: &Schema{
					Kind:       SchemaObject,
					Order:      []string{"a"},
					Properties: map[string]*Schema{"a": {Kind: SchemaNumber}},
				},
			}},
		// Differently-shaped objects do not.
		{line: line(), in: `[{"a":1},{"b":2}]`, opts: infer,
			want: &Schema{Kind: SchemaArray}},
	} {
		tree := mustParse(t, tt.in, nil)
		got := ExtractSchema(tree, tt.opts)
		if diff := pretty.Compare(got, tt.want); diff != "" {
			t.Errorf("%d: schema mismatch (-got +want):\n%s", tt.line, diff)
		}
	}
}

func TestExtractSchemaDepthCap(t *testing.T) {
	tree := mustParse(t, `{"a":{"b":{"c":1}}}`, nil)
	got := ExtractSchema(tree, &SchemaOptions{MaxSchemaDepth: 2})
	inner := got.Properties["a"].Properties["b"]
	if inner.Kind != SchemaObject {
		t.Fatalf("level-2 schema is %v, want object", inner.Kind)
	}
	if leaf := inner.Properties["c"]; leaf.Kind != SchemaAny {
		t.Errorf("past the depth cap: %v, want any", leaf.Kind)
	}
}

func TestExtractSchemaExamples(t *testing.T) {
	tree := mustParse(t, `["a","b","c"]`, nil)
	got := ExtractSchema(tree, &SchemaOptions{InferArrayTypes: true, MaxExamples: 2})
	if got.Items == nil {
		t.Fatal("no item schema inferred")
	}
	want := []string{`"a"`, `"b"`}
	if diff := pretty.Compare(got.Items.Examples, want); diff != "" {
		t.Errorf("examples (-got +want):\n%s", diff)
	}
}

// Structural anomalies degrade to any instead of failing.
func TestExtractSchemaErrorNodes(t *testing.T) {
	tree := lintParse(t, `[01]`, nil)
	got := ExtractSchema(tree, &SchemaOptions{InferArrayTypes: true})
	if got.Kind != SchemaArray {
		t.Fatalf("got %v, want array", got.Kind)
	}
	if got.Items == nil || got.Items.Kind != SchemaAny {
		t.Errorf("error element inferred %v, want any", got.Items)
	}
}
