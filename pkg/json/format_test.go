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
	"strings"
	"testing"
)

func mustParse(t *testing.T, source string, opts *ParseOptions) *Tree {
	t.Helper()
	tree, diags, err := ParseSource([]byte(source), opts)
	if err != nil {
		t.Fatalf("parse %q: %v", source, err)
	}
	if len(diags) != 0 {
		t.Fatalf("parse %q: unexpected diagnostics %v", source, diags)
	}
	return tree
}

func TestFormat(t *testing.T) {
	json5 := &ParseOptions{Lex: *JSON5LexOptions()}
	for _, tt := range []struct {
		line  int
		in    string
		popts *ParseOptions
		opts  *FormatOptions
		want  string
	}{
		// Defaults: two-space indent, multiline, space after colon.
		{line: line(), in: `{"name":"Alice","age":30}`,
			want: "{\n  \"name\": \"Alice\",\n  \"age\": 30\n}\n"},
		{line: line(), in: `[1,2]`,
			want: "[\n  1,\n  2\n]\n"},

		// Empty containers format to themselves under all options.
		{line: line(), in: `{}`, want: `{}`},
		{line: line(), in: `[]`, want: `[]`},
		{line: line(), in: `{}`, opts: &FormatOptions{ForceMultiline: true}, want: `{}`},
		{line: line(), in: `[]`, opts: &FormatOptions{ForceCompact: true}, want: `[]`},

		// Scalar roots.
		{line: line(), in: `42`, want: `42`},
		{line: line(), in: `"x"`, want: `"x"`},

		// Key sorting plus forced compact layout.
		{line: line(), in: `{"zebra":1,"alpha":2,"beta":3}`,
			opts: &FormatOptions{SortKeys: true, ForceCompact: true},
			want: `{"alpha":2,"beta":3,"zebra":1}`},

		// The compact heuristic: small flat containers fit one line.
		{line: line(), in: `[1,2,3]`,
			opts: func() *FormatOptions {
				o := DefaultFormatOptions()
				o.CompactArrays = true
				return o
			}(),
			want: `[1, 2, 3]`},
		// A container child forces multiline on the parent.
		{line: line(), in: `[[1]]`,
			opts: func() *FormatOptions {
				o := DefaultFormatOptions()
				o.CompactArrays = true
				return o
			}(),
			want: "[\n  [1]\n]\n"},
		// Estimates beyond LineWidth/2 stay multiline.
		{line: line(), in: `{"key":"` + strings.Repeat("x", 50) + `"}`,
			opts: func() *FormatOptions {
				o := DefaultFormatOptions()
				o.CompactObjects = true
				return o
			}(),
			want: "{\n  \"key\": \"" + strings.Repeat("x", 50) + "\"\n}\n"},

		// Numbers are reproduced verbatim, never reformatted.
		{line: line(), in: `[1.50,2e3,1e01,-0]`,
			opts: &FormatOptions{ForceCompact: true},
			want: `[1.50,2e3,1e01,-0]`},

		// String re-escaping: short forms, \u00XX for other control
		// characters, raw UTF-8 untouched.
		{line: line(), in: "\"a\\u0001b\\nc\\t😀\"",
			want: "\"a\\u0001b\\nc\\t😀\""},

		// Quote styles.
		{line: line(), in: `"a'b\"c"`,
			opts: &FormatOptions{QuoteStyle: QuoteSingle},
			want: `'a\'b"c'`},
		{line: line(), in: `['a',"b"]`, popts: json5,
			opts: &FormatOptions{ForceCompact: true, QuoteStyle: QuotePreserve},
			want: `['a',"b"]`},

		// Trailing commas (JSON5 output).
		{line: line(), in: `[1,2]`,
			opts: func() *FormatOptions {
				o := DefaultFormatOptions()
				o.TrailingComma = true
				return o
			}(),
			want: "[\n  1,\n  2,\n]\n"},

		// Tab indentation.
		{line: line(), in: `[1]`,
			opts: &FormatOptions{IndentSize: 1, IndentStyle: IndentTab, SpaceAfterColon: true},
			want: "[\n\t1\n]\n"},
	} {
		tree := mustParse(t, tt.in, tt.popts)
		got, err := Format(tree, tt.opts)
		if err != nil {
			t.Errorf("%d: %v", tt.line, err)
			continue
		}
		if string(got) != tt.want {
			t.Errorf("%d: got %q, want %q", tt.line, got, tt.want)
		}
	}
}

// format(parse(format(parse(S)))) must equal format(parse(S)), for any
// option set.
func TestFormatIdempotent(t *testing.T) {
	inputs := []string{
		`{"name":"Alice","age":30}`,
		`[1, [2, {"a": null}], false, "x\ny"]`,
		`{"b":[1.50,2e3],"a":"x"}`,
		`{}`,
		`[]`,
	}
	options := []*FormatOptions{
		nil,
		{ForceCompact: true},
		{ForceCompact: true, SortKeys: true},
		func() *FormatOptions {
			o := DefaultFormatOptions()
			o.CompactObjects = true
			o.CompactArrays = true
			o.SortKeys = true
			return o
		}(),
	}
	for _, in := range inputs {
		for i, opts := range options {
			once, err := Format(mustParse(t, in, nil), opts)
			if err != nil {
				t.Fatalf("%q/%d: %v", in, i, err)
			}
			twice, err := Format(mustParse(t, string(once), nil), opts)
			if err != nil {
				t.Fatalf("%q/%d: reformat: %v", in, i, err)
			}
			if string(once) != string(twice) {
				t.Errorf("%q/%d: not idempotent:\nonce:  %q\ntwice: %q", in, i, once, twice)
			}
		}
	}
}

// Formatting must preserve value equality: decoded strings, number
// text, and property order (without sort_keys).
func TestFormatRoundTrip(t *testing.T) {
	inputs := []string{
		`{"a":"x\ny","b":[1.50,2e3],"c":true,"d":null}`,
		`{"z":1,"a":2}`,
		`"A😀"`,
		`[[],{},[{"k":[0.1]}]]`,
	}
	for _, in := range inputs {
		before := mustParse(t, in, nil)
		out, err := Format(before, nil)
		if err != nil {
			t.Fatalf("%q: %v", in, err)
		}
		after, diags, err := ParseSource(out, nil)
		if err != nil || len(diags) != 0 {
			t.Fatalf("%q: reparse %q: %v %v", in, out, err, diags)
		}
		if dump(before) != dump(after) {
			t.Errorf("%q: round trip changed the value:\nbefore: %s\nafter:  %s", in, dump(before), dump(after))
		}
	}
}

func TestFormatSortKeysIdempotent(t *testing.T) {
	opts := &FormatOptions{SortKeys: true, ForceCompact: true}
	once, err := FormatSource([]byte(`{"b":1,"a":{"d":2,"c":3}}`), opts, nil)
	if err != nil {
		t.Fatal(err)
	}
	twice, err := FormatSource(once, opts, nil)
	if err != nil {
		t.Fatal(err)
	}
	if want := `{"a":{"c":3,"d":2},"b":1}`; string(once) != want {
		t.Errorf("got %q, want %q", once, want)
	}
	if string(once) != string(twice) {
		t.Errorf("sort_keys not idempotent: %q then %q", once, twice)
	}
}
