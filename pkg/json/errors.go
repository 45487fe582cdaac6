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

// An ErrorKind identifies one failure mode of the lexer or parser.
type ErrorKind int

const (
	// ErrUnexpectedCharacter reports a byte outside the grammar.
	ErrUnexpectedCharacter ErrorKind = iota

	// ErrUnterminatedString reports end of input inside a string.
	ErrUnterminatedString

	// ErrInvalidNumber reports a number that never validated.
	ErrInvalidNumber

	// ErrInvalidLiteral reports a true/false/null prefix mismatch.
	ErrInvalidLiteral

	// ErrInvalidEscape reports an unknown or incomplete \ sequence.
	ErrInvalidEscape

	// ErrUnexpectedToken reports a parser-level token kind mismatch.
	ErrUnexpectedToken

	// ErrTrailingComma reports a comma before ] or } outside JSON5.
	ErrTrailingComma

	// ErrDepthExceeded reports nesting beyond the configured maximum.
	ErrDepthExceeded

	// ErrDuplicateKey reports the same key twice in one object.
	ErrDuplicateKey
)

// String returns the name of k as used in diagnostics.
func (k ErrorKind) String() string {
	switch k {
	case ErrUnexpectedCharacter:
		return "unexpected character"
	case ErrUnterminatedString:
		return "unterminated string"
	case ErrInvalidNumber:
		return "invalid number"
	case ErrInvalidLiteral:
		return "invalid literal"
	case ErrInvalidEscape:
		return "invalid escape sequence"
	case ErrUnexpectedToken:
		return "unexpected token"
	case ErrTrailingComma:
		return "trailing comma"
	case ErrDepthExceeded:
		return "maximum nesting depth exceeded"
	case ErrDuplicateKey:
		return "duplicate object key"
	}
	return fmt.Sprintf("error(%d)", int(k))
}

// An Error is a failure detected by the lexer or parser, located by byte
// offset into the logical input.
type Error struct {
	Kind   ErrorKind
	Offset int
	Detail string
}

// Error implements the error interface, e.g.
// "offset 12: unexpected character: '@'".
func (e *Error) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("offset %d: %v", e.Offset, e.Kind)
	}
	return fmt.Sprintf("offset %d: %v: %s", e.Offset, e.Kind, e.Detail)
}

func errAt(kind ErrorKind, offset int, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Offset: offset, Detail: fmt.Sprintf(format, args...)}
}
