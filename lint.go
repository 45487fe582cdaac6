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

	"github.com/pborman/getopt"

	"github.com/ryanatkn/zz-sub002/pkg/indent"
	"github.com/ryanatkn/zz-sub002/pkg/json"
)

var (
	lintWarnDepth int
	lintPrecision int
	lintDisabled  []string
)

func init() {
	flags := getopt.New()
	register(&formatter{
		name:  "lint",
		f:     doLint,
		help:  "report lint findings; exit status 1 when any are found",
		flags: flags,
	})
	flags.IntVarLong(&lintWarnDepth, "lint_warn_depth", 0, "nesting depth warning threshold", "N")
	flags.IntVarLong(&lintPrecision, "lint_precision", 0, "maximum decimal digits before warning", "N")
	flags.ListVarLong(&lintDisabled, "lint_disable", 0, "comma separated rule ids to disable", "RULE[,RULE...]")
}

func doLint(w io.Writer, docs []*document) int {
	rules := json.AllRules()
	for _, id := range lintDisabled {
		delete(rules, id)
	}
	opts := &json.LintOptions{
		MaxDepth:           flagMaxDepth,
		WarnDepth:          lintWarnDepth,
		MaxNumberPrecision: lintPrecision,
	}

	status := 0
	for _, doc := range docs {
		diags := json.Lint(doc.tree, rules, opts)
		if len(doc.diags) > 0 || len(diags) > 0 {
			status = 1
		}
		for _, d := range diags {
			fmt.Fprintf(w, "%s:%v\n", doc.name, d)
			if d.Fix != nil {
				fmt.Fprintf(indent.NewWriter(w, "    "), "fix: %s\n", d.Fix.Description)
			}
		}
	}
	return status
}
