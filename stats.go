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

package main

import (
	"fmt"
	"io"

	"github.com/ryanatkn/zz-sub002/pkg/json"
)

func init() {
	register(&formatter{
		name: "stats",
		f:    doStats,
		help: "display structural statistics",
	})
}

func doStats(w io.Writer, docs []*document) int {
	for _, doc := range docs {
		s := json.GenerateStatistics(doc.tree)
		if len(docs) > 1 {
			fmt.Fprintf(w, "%s:\n", doc.name)
		}
		fmt.Fprintf(w, "strings:    %d\n", s.Strings)
		fmt.Fprintf(w, "numbers:    %d\n", s.Numbers)
		fmt.Fprintf(w, "booleans:   %d\n", s.Booleans)
		fmt.Fprintf(w, "nulls:      %d\n", s.Nulls)
		fmt.Fprintf(w, "objects:    %d\n", s.Objects)
		fmt.Fprintf(w, "arrays:     %d\n", s.Arrays)
		fmt.Fprintf(w, "keys:       %d\n", s.Keys)
		fmt.Fprintf(w, "max depth:  %d\n", s.MaxDepth)
		fmt.Fprintf(w, "bytes:      %d\n", s.ByteSize)
		fmt.Fprintf(w, "complexity: %.2f\n", s.Complexity)
	}
	return 0
}
