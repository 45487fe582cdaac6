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

// This file implements the tokenization of JSON and JSON5.  A single
// engine serves both entry points: Lex tokenizes a complete buffer in
// one call, and a Lexer fed chunk by chunk emits, over any partition of
// the input, exactly the token sequence the batch call would produce.
//
// The lexer is a pull-based state machine.  Between Feed calls the only
// live state is the scan context, its sub-state (escape hex count,
// number shape, literal prefix length) and a scratch buffer holding the
// bytes of the token in progress.  Nothing is asynchronous: Feed is a
// plain synchronous call returning the tokens the chunk completed.

import (
	"errors"
	"fmt"
)

// scanContext is the lexer's position in the token grammar.  It is
// retained across Feed calls so a token may span any number of chunks.
type scanContext uint8

const (
	ctxNormal scanContext = iota
	ctxString
	ctxEscape
	ctxUnicodeEscape
	ctxNumber
	ctxLiteral
	ctxSlash
	ctxLineComment
	ctxBlockComment
	ctxWhitespace
)

// Number shape bits, accumulated while scanning a number token.
const (
	numHasMinus = 1 << iota
	numHasDigit
	numHasDot
	numHasFrac
	numHasE
	numHasExpSign
	numHasExpDigit
)

var errLexerFinished = errors.New("json: lexer already finished")

// A Lexer incrementally tokenizes a logical input delivered as chunks.
// It is not safe for concurrent use.  The slice returned by Feed and
// Finish is reused by the next call.
type Lexer struct {
	opts LexOptions

	consumed int // bytes of the logical input accepted so far
	chunkOff int // logical offset of the most recent chunk
	finished bool
	err      error

	ctx       scanContext
	depth     int
	stack     []bool // container stack; true = object
	expectKey bool   // next string in an object is a property name

	tokStart int   // logical offset of the token in progress
	flags    Flags // flags accumulated for the token in progress
	quote    byte
	hexSeen  int
	num      uint8
	lit      string
	litIdx   int
	sawStar  bool

	scratch  []byte // partial token bytes carried between Feeds
	merge    []byte // scratch ++ chunk, rebuilt per Feed
	in       []byte // input being scanned (chunk or merge)
	base     int    // logical offset of in[0]
	contText []byte // text of the last continuation token emitted

	out []Token

	atoms    map[string]uint32
	atomText []string
}

// NewLexer returns a streaming lexer.  A nil opts means strict RFC 8259.
func NewLexer(opts *LexOptions) *Lexer {
	l := &Lexer{}
	if opts != nil {
		l.opts = *opts
	}
	return l
}

// Feed delivers the next chunk of the logical input.  offset must equal
// the total length of all previously fed chunks.  The returned slice is
// valid until the next Feed or Finish call.
//
// In strict mode a grammar violation fails the Feed call that detected
// it; in Recover mode it is emitted as an error token and scanning
// continues one byte later.
func (l *Lexer) Feed(chunk []byte, offset int) ([]Token, error) {
	if l.err != nil {
		return nil, l.err
	}
	if l.finished {
		return nil, errLexerFinished
	}
	if offset != l.consumed {
		return nil, fmt.Errorf("json: chunk offset %d, want %d", offset, l.consumed)
	}
	l.chunkOff = offset
	l.out = l.out[:0]

	resume := 0
	if len(l.scratch) > 0 {
		l.merge = append(l.merge[:0], l.scratch...)
		l.merge = append(l.merge, chunk...)
		l.in = l.merge
		l.base = l.scratchStart()
		resume = len(l.scratch)
	} else {
		l.in = chunk
		l.base = offset
	}
	l.consumed = offset + len(chunk)

	if err := l.scan(resume); err != nil {
		l.err = err
		l.scratch = l.scratch[:0]
		return l.out, err
	}

	// Retain the token in progress, if any, for the next chunk.  A
	// number flush with the chunk tail is always retained: whether it
	// is complete cannot be known until the next byte arrives, and
	// retention is what keeps the token stream independent of how the
	// input was partitioned.
	if l.ctx != ctxNormal {
		local := l.tokStart - l.base
		l.scratch = append(l.scratch[:0], l.in[local:]...)
	} else {
		l.scratch = l.scratch[:0]
	}
	return l.out, nil
}

// scratchStart returns the logical offset of scratch[0].  The scratch
// buffer always holds exactly the bytes from tokStart to the end of the
// previous chunk.
func (l *Lexer) scratchStart() int { return l.tokStart }

// Finish signals that no further input exists, resolving any token in
// progress and emitting the final eof token.
func (l *Lexer) Finish() ([]Token, error) {
	if l.err != nil {
		return nil, l.err
	}
	if l.finished {
		return nil, errLexerFinished
	}
	l.out = l.out[:0]
	l.in = l.scratch
	if len(l.scratch) > 0 {
		l.base = l.tokStart
	} else {
		l.base = l.consumed
	}
	end := len(l.in)

	var err error
	switch l.ctx {
	case ctxNormal:
	case ctxWhitespace:
		l.emitToken(KindWhitespace, 0, end, 0, 0)
	case ctxNumber:
		err = l.finishNumber(end)
	case ctxString, ctxEscape, ctxUnicodeEscape:
		err = l.invalid(ErrUnterminatedString, 0, end, "input ended inside string")
	case ctxLiteral:
		err = l.invalid(ErrInvalidLiteral, 0, end, "input ended inside %q", l.lit)
	case ctxSlash:
		err = l.invalid(ErrUnexpectedCharacter, 0, end, "'/' outside comment")
	case ctxLineComment:
		l.emitToken(KindComment, 0, end, 0, 0)
	case ctxBlockComment:
		err = l.invalid(ErrUnexpectedCharacter, 0, end, "unterminated block comment")
	}
	if err != nil {
		l.err = err
		return nil, err
	}
	l.ctx = ctxNormal
	l.base = l.consumed
	l.emitToken(KindEOF, 0, 0, 0, 0)
	l.finished = true
	l.scratch = l.scratch[:0]
	return l.out, nil
}

// ContinuationText returns the assembled bytes of the most recent token
// emitted with FlagContinuation.  The slice is valid until the next
// Feed or Finish call.
func (l *Lexer) ContinuationText() []byte { return l.contText }

// AtomText returns the interned string for a Token.Atom index.
func (l *Lexer) AtomText(idx uint32) string {
	if idx == 0 || int(idx) > len(l.atomText) {
		return ""
	}
	return l.atomText[idx-1]
}

// scan runs the state machine over l.in starting at local index i.
// Bytes before i were already processed in a previous call; the current
// context and its sub-state already reflect them.
func (l *Lexer) scan(i int) error {
	in := l.in
	for i < len(in) {
		c := in[i]
		switch l.ctx {

		case ctxNormal:
			switch {
			case c == ' ' || c == '\t' || c == '\n' || c == '\r':
				if l.opts.KeepWhitespace {
					l.startToken(i)
					l.ctx = ctxWhitespace
					i++
					break
				}
				// Bulk whitespace skip.
				j := i + 1
				for j < len(in) && isSpace(in[j]) {
					j++
				}
				i = j
			case c == '{':
				l.emitToken(KindObjectStart, i, i+1, 0, 0)
				l.push(true)
				i++
			case c == '}':
				l.pop()
				l.emitToken(KindObjectEnd, i, i+1, 0, 0)
				i++
			case c == '[':
				l.emitToken(KindArrayStart, i, i+1, 0, 0)
				l.push(false)
				i++
			case c == ']':
				l.pop()
				l.emitToken(KindArrayEnd, i, i+1, 0, 0)
				i++
			case c == ',':
				l.emitToken(KindComma, i, i+1, 0, 0)
				if l.inObject() {
					l.expectKey = true
				}
				i++
			case c == ':':
				l.emitToken(KindColon, i, i+1, 0, 0)
				l.expectKey = false
				i++
			case c == '"' || (c == '\'' && l.opts.AllowSingleQuotes):
				l.startToken(i)
				l.quote = c
				l.ctx = ctxString
				i++
			case c == '-' || isDigit(c):
				l.startToken(i)
				l.num = 0
				if c == '-' {
					l.num = numHasMinus
					l.flags |= FlagIsNegative
				} else {
					l.num = numHasDigit
				}
				l.ctx = ctxNumber
				i++
			case c == 't' || c == 'f' || c == 'n':
				l.startToken(i)
				switch c {
				case 't':
					l.lit = "true"
				case 'f':
					l.lit = "false"
				case 'n':
					l.lit = "null"
				}
				l.litIdx = 1
				l.ctx = ctxLiteral
				i++
			case c == '/' && l.opts.AllowComments:
				l.startToken(i)
				l.ctx = ctxSlash
				i++
			default:
				if err := l.invalid(ErrUnexpectedCharacter, i, i+1, "%q", c); err != nil {
					return err
				}
				i++
			}

		case ctxWhitespace:
			if isSpace(c) {
				i++
				break
			}
			l.emitToken(KindWhitespace, l.tokStart-l.base, i, 0, 0)
			l.ctx = ctxNormal

		case ctxString:
			switch c {
			case l.quote:
				l.finishString(i + 1)
				i++
			case '\\':
				l.flags |= FlagHasEscapes
				l.ctx = ctxEscape
				i++
			default:
				i++
			}

		case ctxEscape:
			if c == 'u' {
				l.ctx = ctxUnicodeEscape
				l.hexSeen = 0
			} else {
				// Unknown escapes are tolerated here; the parser
				// diagnoses them when it decodes the string.
				l.ctx = ctxString
			}
			i++

		case ctxUnicodeEscape:
			if isHex(c) && l.hexSeen < 4 {
				l.hexSeen++
				if l.hexSeen == 4 {
					l.ctx = ctxString
				}
				i++
			} else {
				// Short escape; let the string scan (and later the
				// parser's decoder) deal with this byte.
				l.ctx = ctxString
			}

		case ctxNumber:
			if l.advanceNumber(c) {
				i++
				break
			}
			if err := l.finishNumber(i); err != nil {
				return err
			}

		case ctxLiteral:
			if c == l.lit[l.litIdx] {
				l.litIdx++
				i++
				if l.litIdx == len(l.lit) {
					kind := KindNull
					switch l.lit[0] {
					case 't':
						kind = KindTrue
					case 'f':
						kind = KindFalse
					}
					l.emitToken(kind, l.tokStart-l.base, i, 0, 0)
					l.ctx = ctxNormal
				}
				break
			}
			if err := l.invalid(ErrInvalidLiteral, l.tokStart-l.base, i, "expected %q", l.lit); err != nil {
				return err
			}
			l.ctx = ctxNormal

		case ctxSlash:
			switch c {
			case '/':
				l.ctx = ctxLineComment
				i++
			case '*':
				l.ctx = ctxBlockComment
				l.sawStar = false
				i++
			default:
				if err := l.invalid(ErrUnexpectedCharacter, l.tokStart-l.base, i, "'/' outside comment"); err != nil {
					return err
				}
				l.ctx = ctxNormal
			}

		case ctxLineComment:
			if c == '\n' {
				l.emitToken(KindComment, l.tokStart-l.base, i, 0, 0)
				l.ctx = ctxNormal
				break
			}
			i++

		case ctxBlockComment:
			if l.sawStar && c == '/' {
				l.emitToken(KindComment, l.tokStart-l.base, i+1, FlagMultilineComment, 0)
				l.ctx = ctxNormal
				i++
				break
			}
			l.sawStar = c == '*'
			i++
		}
	}
	return nil
}

// startToken marks the beginning of a multi-byte token at local index i.
func (l *Lexer) startToken(i int) {
	l.tokStart = l.base + i
	l.flags = 0
}

// emitToken appends a token covering local indices [start, end).
func (l *Lexer) emitToken(kind Kind, start, end int, extra Flags, aux uint32) {
	gs, ge := l.base+start, l.base+end
	flags := l.flags | extra
	if gs < l.chunkOff {
		flags |= FlagContinuation
		l.contText = l.in[start:end]
	}
	d := l.depth
	if d > 255 {
		d = 255
	}
	l.out = append(l.out, Token{
		span:  packSpan(uint32(gs), uint32(ge)),
		kind:  kind,
		depth: uint8(d),
		flags: flags,
		aux:   aux,
	})
	l.flags = 0
}

// finishString emits the string token ending at local index end
// (one past the closing quote), classifying it as a property name when
// it sits in key position of an object.
func (l *Lexer) finishString(end int) {
	start := l.tokStart - l.base
	kind := KindStringValue
	if l.inObject() && l.expectKey {
		kind = KindPropertyName
	}
	var aux uint32
	if l.opts.InternStrings && l.flags&FlagHasEscapes == 0 {
		aux = l.intern(string(l.in[start+1 : end-1]))
	}
	l.emitToken(kind, start, end, 0, aux)
	l.ctx = ctxNormal
}

// advanceNumber reports whether c extends the number in progress,
// updating the shape bits when it does.
func (l *Lexer) advanceNumber(c byte) bool {
	switch {
	case isDigit(c):
		switch {
		case l.num&numHasE != 0:
			l.num |= numHasExpDigit
		case l.num&numHasDot != 0:
			l.num |= numHasFrac
		default:
			l.num |= numHasDigit
		}
		return true
	case c == '.':
		if l.num&(numHasDot|numHasE) != 0 || l.num&numHasDigit == 0 {
			return false
		}
		l.num |= numHasDot
		l.flags |= FlagIsFloat
		return true
	case c == 'e' || c == 'E':
		if l.num&numHasE != 0 || l.num&numHasDigit == 0 {
			return false
		}
		if l.num&numHasDot != 0 && l.num&numHasFrac == 0 {
			return false
		}
		l.num |= numHasE
		l.flags |= FlagIsScientific
		return true
	case c == '+' || c == '-':
		if l.num&numHasE == 0 || l.num&(numHasExpSign|numHasExpDigit) != 0 {
			return false
		}
		l.num |= numHasExpSign
		return true
	}
	return false
}

// finishNumber emits the number ending at local index end, or reports
// it invalid when the accumulated shape never became a complete number.
func (l *Lexer) finishNumber(end int) error {
	start := l.tokStart - l.base
	complete := l.num&numHasDigit != 0 &&
		(l.num&numHasDot == 0 || l.num&numHasFrac != 0) &&
		(l.num&numHasE == 0 || l.num&numHasExpDigit != 0)
	if !complete {
		return l.invalid(ErrInvalidNumber, start, end, "%q", l.in[start:end])
	}
	var aux uint32
	var extra Flags
	if v, ok := smallInt(l.in[start:end], l.flags); ok {
		aux = uint32(v)
		extra = FlagInlineInt
	}
	l.emitToken(KindNumberValue, start, end, extra, aux)
	l.ctx = ctxNormal
	return nil
}

// invalid handles a grammar violation covering local indices
// [start, end).  In Recover mode it becomes an error token; otherwise
// the typed error is returned and the lexer is poisoned by the caller.
func (l *Lexer) invalid(kind ErrorKind, start, end int, format string, args ...interface{}) error {
	if !l.opts.Recover {
		return errAt(kind, l.base+start, format, args...)
	}
	if end <= start {
		end = start + 1
	}
	if end > len(l.in) {
		end = len(l.in)
	}
	l.emitToken(KindError, start, end, 0, 0)
	l.ctx = ctxNormal
	return nil
}

func (l *Lexer) push(object bool) {
	l.stack = append(l.stack, object)
	l.depth++
	l.expectKey = object
}

func (l *Lexer) pop() {
	if n := len(l.stack); n > 0 {
		l.stack = l.stack[:n-1]
		l.depth--
	}
	l.expectKey = false
}

func (l *Lexer) inObject() bool {
	n := len(l.stack)
	return n > 0 && l.stack[n-1]
}

func (l *Lexer) intern(s string) uint32 {
	if l.atoms == nil {
		l.atoms = make(map[string]uint32)
	}
	if idx, ok := l.atoms[s]; ok {
		return idx
	}
	l.atomText = append(l.atomText, s)
	idx := uint32(len(l.atomText))
	l.atoms[s] = idx
	return idx
}

// smallInt parses raw as an inline int32 when the token is a plain
// integer short enough to fit the aux word.
func smallInt(raw []byte, flags Flags) (int32, bool) {
	if flags&(FlagIsFloat|FlagIsScientific) != 0 || len(raw) > 10 {
		return 0, false
	}
	var v int64
	neg := false
	for i, c := range raw {
		if i == 0 && c == '-' {
			neg = true
			continue
		}
		v = v*10 + int64(c-'0')
	}
	if neg {
		v = -v
	}
	if v < -1<<31 || v > 1<<31-1 {
		return 0, false
	}
	return int32(v), true
}

func isSpace(c byte) bool { return c == ' ' || c == '\t' || c == '\n' || c == '\r' }

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isHex(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// Lex tokenizes a complete source buffer.  It is the batch entry point;
// the emitted sequence is identical to feeding source through a Lexer
// in chunks, minus continuation flags.
func Lex(source []byte, opts *LexOptions) ([]Token, error) {
	l := NewLexer(opts)
	toks, err := l.Feed(source, 0)
	if err != nil {
		return nil, err
	}
	out := make([]Token, 0, len(toks)+1)
	out = append(out, toks...)
	toks, err = l.Finish()
	if err != nil {
		return nil, err
	}
	return append(out, toks...), nil
}
