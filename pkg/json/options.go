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

// LexOptions configures a Lexer.  The zero value is strict RFC 8259.
// Every recognized field is listed here; there is no hidden
// configuration and no global state.
type LexOptions struct {
	// AllowComments enables // and /* */ comments (JSON5).  Comments
	// are emitted as tokens so downstream consumers may preserve them.
	AllowComments bool

	// AllowTrailingCommas permits a comma before } or ] (JSON5).  The
	// lexer itself emits commas either way; the parser consults the flag
	// to decide whether a trailing comma is diagnosed.
	AllowTrailingCommas bool

	// AllowSingleQuotes permits '-delimited strings (JSON5).
	AllowSingleQuotes bool

	// Recover makes the lexer emit an error token and continue on bytes
	// outside the grammar instead of failing the Feed call.
	Recover bool

	// KeepWhitespace emits whitespace runs as tokens instead of
	// skipping them.
	KeepWhitespace bool

	// InternStrings assigns string-table indices to escape-free string
	// and property-name tokens, retrievable via Token.Atom and
	// Lexer.AtomText.
	InternStrings bool
}

// JSON5 reports whether any of the JSON5 extensions are enabled.
func (o *LexOptions) JSON5() bool {
	return o != nil && (o.AllowComments || o.AllowTrailingCommas || o.AllowSingleQuotes)
}

// JSON5LexOptions returns LexOptions with all JSON5 extensions enabled.
func JSON5LexOptions() *LexOptions {
	return &LexOptions{
		AllowComments:       true,
		AllowTrailingCommas: true,
		AllowSingleQuotes:   true,
	}
}

// DefaultMaxDepth is the parser's nesting limit when ParseOptions does
// not override it.
const DefaultMaxDepth = 100

// ParseOptions configures Parse and ParseSource.  A nil *ParseOptions
// means strict RFC 8259 with DefaultMaxDepth.
type ParseOptions struct {
	// Lex carries the dialect flags.  ParseSource also hands them to
	// the lexer it runs.
	Lex LexOptions

	// MaxDepth is the container nesting limit.  Zero means
	// DefaultMaxDepth.  Exceeding it aborts the parse; it is the only
	// fatal parser condition.
	MaxDepth int
}

func (o *ParseOptions) maxDepth() int {
	if o == nil || o.MaxDepth == 0 {
		return DefaultMaxDepth
	}
	return o.MaxDepth
}

func (o *ParseOptions) lex() *LexOptions {
	if o == nil {
		return nil
	}
	return &o.Lex
}

// IndentStyle selects the byte used for one indent level.
type IndentStyle int

const (
	IndentSpace IndentStyle = iota
	IndentTab
)

// QuoteStyle selects string delimiters in formatter output.
type QuoteStyle int

const (
	// QuoteDouble always emits "-delimited strings (RFC 8259).
	QuoteDouble QuoteStyle = iota

	// QuoteSingle emits '-delimited strings; only valid for JSON5
	// output.
	QuoteSingle

	// QuotePreserve re-emits whichever delimiter the source used.
	QuotePreserve
)

// FormatOptions configures Format, FormatSource and the streaming
// formatter.  The zero value lays every non-empty container out over
// multiple lines with no indentation and no space after ':' or ','; use
// DefaultFormatOptions for the conventional pretty-printer settings.
type FormatOptions struct {
	// IndentSize is the number of indent units per level (default 2).
	IndentSize uint32

	// IndentStyle selects spaces or tabs.
	IndentStyle IndentStyle

	// LineWidth is the soft limit driving compact-vs-multiline layout
	// decisions (default 80).
	LineWidth uint32

	// CompactObjects and CompactArrays allow single-line emission of
	// small flat containers whose estimated width fits under
	// LineWidth/2.
	CompactObjects bool
	CompactArrays  bool

	// ForceCompact and ForceMultiline override the heuristic entirely.
	ForceCompact   bool
	ForceMultiline bool

	// SortKeys emits object properties in lexicographic order of their
	// decoded key values.  Stable and idempotent.
	SortKeys bool

	// TrailingComma emits a trailing comma in multiline containers.
	// JSON5 output only.
	TrailingComma bool

	SpaceAfterColon bool
	SpaceAfterComma bool

	// QuoteStyle selects string delimiters.  QuoteSingle is only valid
	// for JSON5 output.
	QuoteStyle QuoteStyle
}

// DefaultFormatOptions returns the conventional pretty-printer settings:
// two-space indent, 80-column width, multiline containers, a space after
// each colon and comma, double quotes.
func DefaultFormatOptions() *FormatOptions {
	return &FormatOptions{
		IndentSize:      2,
		IndentStyle:     IndentSpace,
		LineWidth:       80,
		SpaceAfterColon: true,
		SpaceAfterComma: true,
		QuoteStyle:      QuoteDouble,
	}
}

// Default thresholds for LintOptions.
const (
	DefaultWarnDepth          = 20
	DefaultMaxNumberPrecision = 15
	DefaultMaxStringLength    = 10000
	DefaultMaxObjectKeys      = 1000
	DefaultMaxArrayElements   = 10000
)

// LintOptions carries the configurable thresholds of the lint rules.
// A nil *LintOptions means all defaults.
type LintOptions struct {
	// MaxDepth feeds max_depth_exceeded (default DefaultMaxDepth).
	MaxDepth int

	// WarnDepth feeds deep_nesting (default 20).
	WarnDepth int

	// MaxNumberPrecision is the number of decimal digits a number may
	// carry before large_number_precision fires (default 15).
	MaxNumberPrecision int

	// MaxStringLength, MaxObjectKeys and MaxArrayElements feed
	// large_structure.
	MaxStringLength  int
	MaxObjectKeys    int
	MaxArrayElements int
}

func (o *LintOptions) withDefaults() LintOptions {
	out := LintOptions{}
	if o != nil {
		out = *o
	}
	if out.MaxDepth == 0 {
		out.MaxDepth = DefaultMaxDepth
	}
	if out.WarnDepth == 0 {
		out.WarnDepth = DefaultWarnDepth
	}
	if out.MaxNumberPrecision == 0 {
		out.MaxNumberPrecision = DefaultMaxNumberPrecision
	}
	if out.MaxStringLength == 0 {
		out.MaxStringLength = DefaultMaxStringLength
	}
	if out.MaxObjectKeys == 0 {
		out.MaxObjectKeys = DefaultMaxObjectKeys
	}
	if out.MaxArrayElements == 0 {
		out.MaxArrayElements = DefaultMaxArrayElements
	}
	return out
}

// DefaultMaxSchemaDepth bounds schema recursion; deeper structure
// degrades to SchemaAny.
const DefaultMaxSchemaDepth = 20

// SchemaOptions configures ExtractSchema.  A nil *SchemaOptions means
// defaults.
type SchemaOptions struct {
	// InferArrayTypes produces a typed item schema when every element
	// of an array infers to an equal schema; otherwise items are any.
	InferArrayTypes bool

	// MaxSchemaDepth caps recursion (default 20); beyond it the schema
	// becomes any.
	MaxSchemaDepth int

	// MaxExamples is the number of example values retained per leaf
	// schema for documentation.  Zero retains none.
	MaxExamples int
}

func (o *SchemaOptions) maxDepth() int {
	if o == nil || o.MaxSchemaDepth == 0 {
		return DefaultMaxSchemaDepth
	}
	return o.MaxSchemaDepth
}

func (o *SchemaOptions) inferArrays() bool { return o != nil && o.InferArrayTypes }

func (o *SchemaOptions) maxExamples() int {
	if o == nil {
		return 0
	}
	return o.MaxExamples
}
