// Copyright 2021 Google Inc.
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

import "fmt"

// A Kind classifies a lexical token.
type Kind uint8

const (
	// KindError indicates a lexical error.  The token's span covers the
	// offending bytes.
	KindError Kind = iota

	// KindEOF marks the end of input.  Its span is empty and starts at
	// the length of the logical input.
	KindEOF

	KindObjectStart // {
	KindObjectEnd   // }
	KindArrayStart  // [
	KindArrayEnd    // ]
	KindComma       // ,
	KindColon       // :

	// KindStringValue is a quoted string occurring in value position.
	KindStringValue

	// KindPropertyName is a quoted string occurring in key position
	// inside an object.  The lexer distinguishes the two structurally
	// from the container it is inside; no look-ahead is required.
	KindPropertyName

	KindNumberValue

	KindTrue
	KindFalse
	KindNull

	// KindWhitespace is only emitted when LexOptions.KeepWhitespace is
	// set; by default whitespace runs are skipped in bulk.
	KindWhitespace

	// KindComment is a // or /* */ comment.  Comments are only legal
	// when LexOptions.AllowComments is set.
	KindComment
)

// String returns k in the form used by error messages and debug dumps.
func (k Kind) String() string {
	switch k {
	case KindError:
		return "error"
	case KindEOF:
		return "eof"
	case KindObjectStart:
		return "'{'"
	case KindObjectEnd:
		return "'}'"
	case KindArrayStart:
		return "'['"
	case KindArrayEnd:
		return "']'"
	case KindComma:
		return "','"
	case KindColon:
		return "':'"
	case KindStringValue:
		return "string"
	case KindPropertyName:
		return "property name"
	case KindNumberValue:
		return "number"
	case KindTrue:
		return "true"
	case KindFalse:
		return "false"
	case KindNull:
		return "null"
	case KindWhitespace:
		return "whitespace"
	case KindComment:
		return "comment"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Flags carry per-token facts recorded during scanning so consumers do
// not need to rescan the token's text.
type Flags uint16

const (
	// FlagHasEscapes is set on string tokens containing at least one
	// backslash sequence.  Escape-free strings decode to their raw
	// bytes without copying.
	FlagHasEscapes Flags = 1 << iota

	// FlagIsFloat is set on number tokens containing a decimal point.
	FlagIsFloat

	// FlagIsNegative is set on number tokens with a leading minus.
	FlagIsNegative

	// FlagIsScientific is set on number tokens with an exponent.
	FlagIsScientific

	// FlagMultilineComment is set on /* */ comment tokens.
	FlagMultilineComment

	// FlagContinuation is set on tokens whose bytes crossed a chunk
	// boundary.  A streaming consumer holding only the current chunk
	// must fetch the token's text from Lexer.ContinuationText; in batch
	// mode the span still indexes the joined input.
	FlagContinuation

	// FlagInlineInt is set on number tokens whose value was small
	// enough to store inline in the token's aux word.
	FlagInlineInt
)

// A Span is a half-open byte range into the source buffer.
type Span struct {
	Start uint32
	End   uint32
}

// Len returns the number of bytes covered by s.
func (s Span) Len() int { return int(s.End - s.Start) }

func (s Span) String() string { return fmt.Sprintf("%d:%d", s.Start, s.End) }

// packedSpan stores a span as start:32 | length:32 to keep the stored
// token at 16 bytes.
type packedSpan uint64

func packSpan(start, end uint32) packedSpan {
	return packedSpan(uint64(start) | uint64(end-start)<<32)
}

func (p packedSpan) span() Span {
	start := uint32(p)
	return Span{Start: start, End: start + uint32(p>>32)}
}

// A Token is one lexical unit of the input.  The layout is fixed at 16
// bytes: packed span (8), kind (1), depth (1), flags (2), aux word (4).
type Token struct {
	span  packedSpan
	kind  Kind
	depth uint8
	flags Flags
	aux   uint32
}

// Kind returns the token's classification.
func (t Token) Kind() Kind { return t.kind }

// Span returns the token's byte range in the logical input.
func (t Token) Span() Span { return t.span.span() }

// Depth returns the container nesting depth at the token's start.
// Depths beyond 255 saturate.
func (t Token) Depth() int { return int(t.depth) }

// Flags returns the token's flag set.
func (t Token) Flags() Flags { return t.flags }

// Has reports whether all bits in f are set on the token.
func (t Token) Has(f Flags) bool { return t.flags&f == f }

// Atom returns the token's string-table index and true when the lexer
// interned the token's text.  Index 0 is reserved to mean "not interned".
func (t Token) Atom() (uint32, bool) { return t.aux, t.aux != 0 && t.kind != KindNumberValue }

// InlineInt returns the small integer stored inline in the aux word and
// true when FlagInlineInt is set.
func (t Token) InlineInt() (int32, bool) {
	if !t.Has(FlagInlineInt) {
		return 0, false
	}
	return int32(t.aux), true
}

// Text returns the token's bytes from source.  source must be the
// logical input the token's span indexes.
func (t Token) Text(source []byte) []byte {
	s := t.span.span()
	return source[s.Start:s.End]
}

// String returns a debug form of t, e.g. "12:17 string".
func (t Token) String() string {
	s := t.span.span()
	return fmt.Sprintf("%v %v", s, t.kind)
}
