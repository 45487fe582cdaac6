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
	"io"
	"path/filepath"
	"strings"

	"github.com/pborman/getopt"

	"github.com/ryanatkn/zz-sub002/pkg/json"
)

var tsName string

func init() {
	flags := getopt.New()
	register(&formatter{
		name:  "ts",
		f:     doTSInterface,
		help:  "project the inferred schema as a TypeScript interface",
		flags: flags,
	})
	flags.StringVarLong(&tsName, "ts_name", 0, "interface name (default: derived from the file name)", "NAME")
}

func doTSInterface(w io.Writer, docs []*document) int {
	for i, doc := range docs {
		name := tsName
		if name == "" {
			base := filepath.Base(doc.name)
			name = strings.TrimSuffix(base, filepath.Ext(base))
			if name == "<STDIN>" {
				name = "Root"
			}
		}
		if i > 0 {
			io.WriteString(w, "\n")
		}
		io.WriteString(w, json.GenerateTypeScriptInterface(doc.tree, name, nil))
	}
	return 0
}
