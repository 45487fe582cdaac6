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

// Program zz parses JSON or JSON5 files, displays diagnostics, and
// writes a rendering of the input on output.
//
// Usage: zz [--json5] [--recover] [--format FORMAT] [FORMAT OPTIONS] [FILE ...]
//
// Each FILE is read and parsed; with no FILEs, standard input is
// parsed.  Parse diagnostics are written to standard error.
//
// FORMAT, which defaults to "fmt", selects what to write: the
// pretty-printed document, lint findings, statistics, an inferred
// schema, a TypeScript interface, or the raw token stream.  Use
// "zz --help" for the list of formats.
//
// FORMAT OPTIONS are flags belonging to a specific format.  They must
// follow --format.
package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/pborman/getopt"

	"github.com/ryanatkn/zz-sub002/pkg/indent"
	"github.com/ryanatkn/zz-sub002/pkg/json"
)

// A document is one parsed input, handed to the selected formatter.
type document struct {
	name   string
	source []byte
	tokens []json.Token
	tree   *json.Tree
	diags  []json.Diagnostic
}

// Each format registers a formatter.  The function f is called once
// with every parsed document and returns the process exit status it
// wants (0 when all is well).
type formatter struct {
	name  string
	f     func(io.Writer, []*document) int
	help  string
	flags *getopt.Set
}

var formatters = map[string]*formatter{}

func register(f *formatter) {
	formatters[f.name] = f
}

var stop = os.Exit

// Dialect flags shared by every format.
var (
	flagJSON5    bool
	flagRecover  bool
	flagMaxDepth int
)

func lexOptions() *json.LexOptions {
	opts := &json.LexOptions{Recover: flagRecover}
	if flagJSON5 {
		opts.AllowComments = true
		opts.AllowTrailingCommas = true
		opts.AllowSingleQuotes = true
	}
	return opts
}

func parseOptions() *json.ParseOptions {
	return &json.ParseOptions{Lex: *lexOptions(), MaxDepth: flagMaxDepth}
}

func main() {
	var format string
	var help bool
	formats := make([]string, 0, len(formatters))
	for k := range formatters {
		formats = append(formats, k)
	}
	sort.Strings(formats)

	getopt.StringVarLong(&format, "format", 0, "format to display: "+strings.Join(formats, ", "), "FORMAT")
	getopt.BoolVarLong(&flagJSON5, "json5", '5', "enable comments, trailing commas and single quotes")
	getopt.BoolVarLong(&flagRecover, "recover", 0, "continue past lexical errors as error tokens")
	getopt.IntVarLong(&flagMaxDepth, "max-depth", 0, "maximum nesting depth (default 100)", "DEPTH")
	getopt.BoolVarLong(&help, "help", '?', "display help")
	getopt.SetParameters("[FORMAT OPTIONS] [FILE ...]")

	if err := getopt.Getopt(func(o getopt.Option) bool {
		if o.Name() == "--format" {
			f, ok := formatters[format]
			if !ok {
				fmt.Fprintf(os.Stderr, "%s: invalid format.  Choices are %s\n", format, strings.Join(formats, ", "))
				stop(1)
			}
			if f.flags != nil {
				f.flags.VisitAll(func(o getopt.Option) {
					getopt.AddOption(o)
				})
			}
		}
		return true
	}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		getopt.PrintUsage(os.Stderr)
		stop(1)
	}

	if help {
		getopt.CommandLine.PrintUsage(os.Stderr)
		fmt.Fprintf(os.Stderr, "\nFormats:\n")
		for _, fn := range formats {
			f := formatters[fn]
			fmt.Fprintf(os.Stderr, "    %s - %s\n", f.name, f.help)
			if f.flags != nil {
				f.flags.PrintOptions(indent.NewWriter(os.Stderr, "   "))
			}
			fmt.Fprintln(os.Stderr)
		}
		stop(0)
	}

	if format == "" {
		format = "fmt"
	}
	if _, ok := formatters[format]; !ok {
		fmt.Fprintf(os.Stderr, "%s: invalid format.  Choices are %s\n", format, strings.Join(formats, ", "))
		stop(1)
	}

	files := getopt.Args()
	var docs []*document
	status := 0

	if len(files) == 0 {
		doc, err := readDocument("<STDIN>", os.Stdin)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			stop(1)
		}
		docs = append(docs, doc)
	}
	for _, name := range files {
		fp, err := os.Open(name)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			status = 1
			continue
		}
		doc, err := readDocument(name, fp)
		fp.Close()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			status = 1
			continue
		}
		docs = append(docs, doc)
	}

	for _, doc := range docs {
		for _, d := range doc.diags {
			fmt.Fprintf(os.Stderr, "%s:%v\n", doc.name, d)
		}
	}

	if s := formatters[format].f(os.Stdout, docs); s != 0 {
		status = s
	}
	stop(status)
}

// readDocument reads all of r, tokenizes it, and parses the tokens.
// The token vector is kept on the document for the formats that want
// it (tokens, fmt --fmt_stream).
func readDocument(name string, r io.Reader) (*document, error) {
	source, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %v", name, err)
	}
	tokens, err := json.Lex(source, lexOptions())
	if err != nil {
		return nil, fmt.Errorf("%s: %v", name, err)
	}
	tree, diags, err := json.Parse(tokens, source, parseOptions())
	if err != nil {
		return nil, fmt.Errorf("%s: %v", name, err)
	}
	return &document{
		name:   name,
		source: source,
		tokens: tokens,
		tree:   tree,
		diags:  diags,
	}, nil
}
