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

// Package json is the JSON processing core of the toolkit: a resumable
// streaming lexer, a recursive-descent parser producing an
// arena-allocated syntax tree, a configurable formatter, a rule-driven
// linter, and a schema/statistics analyzer.
//
// The stages compose linearly and each is independently invocable:
//
//	source bytes -> Lex/Lexer -> Parse -> Format | Lint | ExtractSchema
//
// Lex tokenizes a complete buffer; a Lexer fed arbitrary chunks emits
// the identical token sequence, surviving chunk boundaries anywhere,
// including inside escape sequences and numbers.  Parse always returns
// a tree plus diagnostics (error nodes stand in for unparseable
// regions); only exceeding the nesting limit is fatal.  All tokens and
// tree nodes reference the caller's source buffer, which must outlive
// them.
//
// JSON5 extensions (comments, trailing commas, single-quoted strings)
// are enabled per instance through LexOptions; there is no global
// configuration.
package json
