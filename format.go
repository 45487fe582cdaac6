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
	"os"

	"github.com/pborman/getopt"

	"github.com/ryanatkn/zz-sub002/pkg/json"
)

var (
	fmtIndent    = 2
	fmtTabs      bool
	fmtWidth     = 80
	fmtCompact   bool
	fmtMultiline bool
	fmtSortKeys  bool
	fmtTrailing  bool
	fmtSingle    bool
	fmtTight     bool
	fmtStream    bool
)

func init() {
	flags := getopt.New()
	register(&formatter{
		name:  "fmt",
		f:     doFormat,
		help:  "pretty-print (or compact) the input",
		flags: flags,
	})
	flags.IntVarLong(&fmtIndent, "fmt_indent", 0, "indent size", "N")
	flags.BoolVarLong(&fmtTabs, "fmt_tabs", 0, "indent with tabs")
	flags.IntVarLong(&fmtWidth, "fmt_width", 0, "soft line width for layout decisions", "N")
	flags.BoolVarLong(&fmtCompact, "fmt_compact", 0, "force single-line output")
	flags.BoolVarLong(&fmtMultiline, "fmt_multiline", 0, "force multiline output")
	flags.BoolVarLong(&fmtSortKeys, "fmt_sort", 0, "sort object keys")
	flags.BoolVarLong(&fmtTrailing, "fmt_trailing_comma", 0, "emit trailing commas (JSON5 output)")
	flags.BoolVarLong(&fmtSingle, "fmt_single", 0, "single-quoted strings (JSON5 output)")
	flags.BoolVarLong(&fmtTight, "fmt_tight", 0, "no space after ':' and ','")
	flags.BoolVarLong(&fmtStream, "fmt_stream", 0, "format from the token stream without a tree")
}

func formatOptions() *json.FormatOptions {
	opts := json.DefaultFormatOptions()
	opts.IndentSize = uint32(fmtIndent)
	if fmtTabs {
		opts.IndentStyle = json.IndentTab
	}
	opts.LineWidth = uint32(fmtWidth)
	opts.ForceCompact = fmtCompact
	opts.ForceMultiline = fmtMultiline
	opts.SortKeys = fmtSortKeys
	opts.TrailingComma = fmtTrailing
	if fmtSingle {
		opts.QuoteStyle = json.QuoteSingle
	}
	if fmtTight {
		opts.SpaceAfterColon = false
		opts.SpaceAfterComma = false
	}
	return opts
}

func doFormat(w io.Writer, docs []*document) int {
	opts := formatOptions()
	status := 0
	for _, doc := range docs {
		var out []byte
		var err error
		if fmtStream {
			out, err = json.FormatTokens(doc.tokens, doc.source, opts)
		} else {
			out, err = json.Format(doc.tree, opts)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", doc.name, err)
			status = 1
			continue
		}
		w.Write(out)
		if len(out) > 0 && out[len(out)-1] != '\n' {
			fmt.Fprintln(w)
		}
	}
	return status
}
