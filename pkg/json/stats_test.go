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
	"math"
	"testing"

	"github.com/kylelemons/godebug/pretty"
)

func TestGenerateStatistics(t *testing.T) {
	source := `{"name":"Alice","tags":["a","b"],"n":3,"ok":true,"meta":{"x":null}}`
	tree := mustParse(t, source, nil)
	got := GenerateStatistics(tree)

	want := &Stats{
		Strings:  3, // "Alice", "a", "b"
		Numbers:  1,
		Booleans: 1,
		Nulls:    1,
		Objects:  2,
		Arrays:   1,
		MaxDepth: 2,
		Keys:     6,
		ByteSize: len(source),
	}
	want.Complexity = 2*2 + 1.5*2 + 1.2*1 + 0.5*6 + math.Log(float64(len(source)))

	if diff := pretty.Compare(got, want); diff != "" {
		t.Errorf("stats mismatch (-got +want):\n%s", diff)
	}
}

func TestGenerateStatisticsScalar(t *testing.T) {
	tree := mustParse(t, `42`, nil)
	got := GenerateStatistics(tree)
	if got.Numbers != 1 || got.MaxDepth != 0 || got.Objects != 0 {
		t.Errorf("unexpected stats: %+v", got)
	}
	if want := math.Log(2); math.Abs(got.Complexity-want) > 1e-9 {
		t.Errorf("complexity %v, want %v", got.Complexity, want)
	}
}
