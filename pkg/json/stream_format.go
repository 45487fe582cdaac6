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

// The streaming formatter consumes tokens, not a tree, and emits
// multiline text on the fly.  It keeps only a fixed amount of state: a
// depth counter bounded at streamMaxDepth, an in-array bit per level
// and a need-comma flag, so it can pretty-print inputs far larger than
// memory would allow a tree for.

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

// streamMaxDepth is the nesting bound of the streaming formatter.
const streamMaxDepth = 256

var errStreamDepth = errors.New("json: stream formatter: nesting exceeds 256")

// A StreamFormatter pretty-prints a token stream to w.  Feed every
// token (with its text) to WriteToken in order, then call Close;
// mismatched brackets at completion are a hard error.
type StreamFormatter struct {
	w    io.Writer
	opts FormatOptions
	unit string

	depth      int
	inArray    [streamMaxDepth]bool
	needComma  bool
	afterColon bool
	justOpened bool
	started    bool
	err        error
}

// NewStreamFormatter returns a streaming formatter writing to w.  A nil
// opts means DefaultFormatOptions.  Layout is always multiline; the
// compact heuristics need a tree and do not apply here.
func NewStreamFormatter(w io.Writer, opts *FormatOptions) *StreamFormatter {
	if opts == nil {
		opts = DefaultFormatOptions()
	}
	unit := " "
	if opts.IndentStyle == IndentTab {
		unit = "\t"
	}
	f := &StreamFormatter{w: w, opts: *opts}
	for i := uint32(0); i < opts.IndentSize; i++ {
		f.unit += unit
	}
	return f
}

// WriteToken emits the layout for one token.  text must be the token's
// bytes: a slice of the source, or Lexer.ContinuationText for tokens
// flagged FlagContinuation while streaming.
func (f *StreamFormatter) WriteToken(tok Token, text []byte) error {
	if f.err != nil {
		return f.err
	}
	switch tok.Kind() {
	case KindObjectStart, KindArrayStart:
		f.valuePrefix()
		if tok.Kind() == KindArrayStart {
			f.writeByte('[')
		} else {
			f.writeByte('{')
		}
		if f.depth >= streamMaxDepth {
			f.err = errStreamDepth
			return f.err
		}
		f.inArray[f.depth] = tok.Kind() == KindArrayStart
		f.depth++
		f.needComma = false
		f.justOpened = true

	case KindObjectEnd, KindArrayEnd:
		if f.depth == 0 {
			f.err = fmt.Errorf("json: stream formatter: unmatched %v", tok.Kind())
			return f.err
		}
		f.depth--
		wantArray := tok.Kind() == KindArrayEnd
		if f.inArray[f.depth] != wantArray {
			f.err = fmt.Errorf("json: stream formatter: mismatched %v at depth %d", tok.Kind(), f.depth)
			return f.err
		}
		if f.justOpened {
			f.justOpened = false
		} else {
			f.writeString("\n")
			f.writeIndent(f.depth)
		}
		if wantArray {
			f.writeByte(']')
		} else {
			f.writeByte('}')
		}
		f.needComma = true
		f.afterColon = false

	case KindPropertyName:
		f.valuePrefix()
		f.writeBytes(text)

	case KindColon:
		f.writeByte(':')
		if f.opts.SpaceAfterColon {
			f.writeByte(' ')
		}
		f.afterColon = true

	case KindStringValue, KindNumberValue, KindTrue, KindFalse, KindNull, KindError:
		f.valuePrefix()
		f.writeBytes(text)
		f.needComma = true

	case KindComment:
		// Comments go on their own line without affecting separators.
		needComma := f.needComma
		f.valuePrefix()
		f.writeBytes(text)
		f.needComma = needComma

	case KindComma, KindWhitespace, KindEOF:
		// Layout is ours to decide; input separators and spacing are
		// dropped.
	}
	return f.err
}

// Close finishes the output.  Unbalanced brackets are a hard error.
func (f *StreamFormatter) Close() error {
	if f.err != nil {
		return f.err
	}
	if f.depth != 0 {
		f.err = fmt.Errorf("json: stream formatter: %d unclosed containers", f.depth)
		return f.err
	}
	if f.started {
		f.writeString("\n")
	}
	return f.err
}

// valuePrefix writes whatever must precede a value in the current
// position: nothing after a colon, otherwise a separating comma and a
// fresh indented line.
func (f *StreamFormatter) valuePrefix() {
	if f.afterColon {
		f.afterColon = false
		f.justOpened = false
		return
	}
	if f.depth > 0 {
		if f.needComma {
			f.writeByte(',')
		}
		f.writeString("\n")
		f.writeIndent(f.depth)
	} else if f.started {
		f.writeString("\n")
	}
	f.needComma = false
	f.justOpened = false
}

func (f *StreamFormatter) writeIndent(depth int) {
	for i := 0; i < depth; i++ {
		f.writeString(f.unit)
	}
}

func (f *StreamFormatter) writeByte(c byte) {
	f.writeBytes([]byte{c})
}

func (f *StreamFormatter) writeString(s string) {
	f.writeBytes([]byte(s))
}

func (f *StreamFormatter) writeBytes(b []byte) {
	if f.err != nil {
		return
	}
	f.started = true
	_, f.err = f.w.Write(b)
}

// FormatTokens runs the streaming formatter over a complete token
// vector, taking token text from source.
func FormatTokens(tokens []Token, source []byte, opts *FormatOptions) ([]byte, error) {
	var buf bytes.Buffer
	f := NewStreamFormatter(&buf, opts)
	for _, tok := range tokens {
		if err := f.WriteToken(tok, tok.Text(source)); err != nil {
			return nil, err
		}
	}
	if err := f.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
