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
	"bytes"
	"strings"
	"testing"

	"github.com/openconfig/gnmi/errdiff"
)

func TestFormatTokens(t *testing.T) {
	for _, tt := range []struct {
		line int
		in   string
		opts *FormatOptions
		want string
	}{
		{line: line(), in: `{"a":[1,2],"b":{}}`,
			want: "{\n  \"a\": [\n    1,\n    2\n  ],\n  \"b\": {}\n}\n"},
		{line: line(), in: `[]`, want: "[]\n"},
		{line: line(), in: `42`, want: "42\n"},
		{line: line(), in: `[true,null]`,
			want: "[\n  true,\n  null\n]\n"},
	} {
		source := []byte(tt.in)
		tokens, err := Lex(source, nil)
		if err != nil {
			t.Fatalf("%d: %v", tt.line, err)
		}
		got, err := FormatTokens(tokens, source, tt.opts)
		if err != nil {
			t.Errorf("%d: %v", tt.line, err)
			continue
		}
		if string(got) != tt.want {
			t.Errorf("%d: got %q, want %q", tt.line, got, tt.want)
		}
	}
}

// The streaming formatter drives straight from a streaming lexer: the
// combination re-indents a document without ever building a tree.
func TestStreamFormatterFromLexer(t *testing.T) {
	source := []byte(`{"name":"Alice","tags":["a","b"]}`)
	var out bytes.Buffer
	f := NewStreamFormatter(&out, nil)
	l := NewLexer(nil)

	// Deliver in awkward chunks, split inside the property name.
	for i, chunk := range []string{`{"na`, `me":"Alice","tags":["a"`, `,"b"]}`} {
		offset := 0
		for _, prev := range []string{`{"na`, `me":"Alice","tags":["a"`, `,"b"]}`}[:i] {
			offset += len(prev)
		}
		toks, err := l.Feed([]byte(chunk), offset)
		if err != nil {
			t.Fatal(err)
		}
		for _, tok := range toks {
			text := tok.Text(source)
			if tok.Has(FlagContinuation) {
				text = l.ContinuationText()
			}
			if err := f.WriteToken(tok, text); err != nil {
				t.Fatal(err)
			}
		}
	}
	toks, err := l.Finish()
	if err != nil {
		t.Fatal(err)
	}
	for _, tok := range toks {
		if err := f.WriteToken(tok, tok.Text(source)); err != nil {
			t.Fatal(err)
		}
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	want := "{\n  \"name\": \"Alice\",\n  \"tags\": [\n    \"a\",\n    \"b\"\n  ]\n}\n"
	if out.String() != want {
		t.Errorf("got %q, want %q", out.String(), want)
	}
}

func TestStreamFormatterErrors(t *testing.T) {
	feed := func(tokens []Token, source []byte) error {
		f := NewStreamFormatter(&bytes.Buffer{}, nil)
		for _, tok := range tokens {
			if err := f.WriteToken(tok, tok.Text(source)); err != nil {
				return err
			}
		}
		return f.Close()
	}

	// Unclosed container.
	source := []byte(`[1`)
	tokens, err := Lex(source, nil)
	if err != nil {
		t.Fatal(err)
	}
	if diff := errdiff.Substring(feed(tokens, source), "unclosed"); diff != "" {
		t.Error(diff)
	}

	// Mismatched closer: lex emits the tokens, the formatter rejects.
	source = []byte(`[1}`)
	tokens, err = Lex(source, nil)
	if err != nil {
		t.Fatal(err)
	}
	if diff := errdiff.Substring(feed(tokens, source), "mismatched"); diff != "" {
		t.Error(diff)
	}

	// Nesting beyond the fixed depth bound.
	deep := strings.Repeat("[", streamMaxDepth+1)
	tokens, err = Lex([]byte(deep), &LexOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if diff := errdiff.Substring(feed(tokens, []byte(deep)), "exceeds 256"); diff != "" {
		t.Error(diff)
	}
}
