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
	"strings"

	"github.com/pborman/getopt"

	"github.com/ryanatkn/zz-sub002/pkg/indent"
	"github.com/ryanatkn/zz-sub002/pkg/json"
)

var (
	schemaDepth    int
	schemaExamples int
	schemaNoInfer  bool
)

func init() {
	flags := getopt.New()
	register(&formatter{
		name:  "schema",
		f:     doSchema,
		help:  "display the inferred schema",
		flags: flags,
	})
	flags.IntVarLong(&schemaDepth, "schema_depth", 0, "maximum schema depth", "N")
	flags.IntVarLong(&schemaExamples, "schema_examples", 0, "example values to retain per leaf", "N")
	flags.BoolVarLong(&schemaNoInfer, "schema_no_infer", 0, "do not infer array element types")
}

func doSchema(w io.Writer, docs []*document) int {
	opts := &json.SchemaOptions{
		InferArrayTypes: !schemaNoInfer,
		MaxSchemaDepth:  schemaDepth,
		MaxExamples:     schemaExamples,
	}
	for _, doc := range docs {
		if len(docs) > 1 {
			fmt.Fprintf(w, "%s:\n", doc.name)
		}
		writeSchema(w, json.ExtractSchema(doc.tree, opts))
		fmt.Fprintln(w)
	}
	return 0
}

// writeSchema prints s without a trailing newline; containers recurse
// through an indenting writer.
func writeSchema(w io.Writer, s *json.Schema) {
	switch s.Kind {
	case json.SchemaObject:
		fmt.Fprint(w, "object {")
		if len(s.Order) == 0 {
			fmt.Fprint(w, "}")
			return
		}
		fmt.Fprintln(w)
		iw := indent.NewWriter(w, "  ")
		for _, key := range s.Order {
			fmt.Fprintf(iw, "%s: ", key)
			writeSchema(iw, s.Properties[key])
			fmt.Fprintln(iw)
		}
		fmt.Fprint(w, "}")
	case json.SchemaArray:
		if s.Items == nil {
			fmt.Fprint(w, "any[]")
			return
		}
		writeSchema(w, s.Items)
		fmt.Fprint(w, "[]")
	default:
		fmt.Fprint(w, s.Kind)
		if s.Nullable {
			fmt.Fprint(w, "?")
		}
		if len(s.Examples) > 0 {
			fmt.Fprintf(w, "  // e.g. %s", strings.Join(s.Examples, ", "))
		}
	}
}
