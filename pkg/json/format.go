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
	"fmt"
	"sort"
)

// containerEstimateWeight is the per-child constant used when a nested
// container appears inside a width estimate.
const containerEstimateWeight = 8

type formatter struct {
	buf  bytes.Buffer
	opts FormatOptions
	src  []byte
	unit []byte // one indent level
}

// Format renders the tree as UTF-8 text equivalent, under JSON value
// semantics, to the source it was parsed from.  A nil opts means
// DefaultFormatOptions.  Numbers are always re-emitted from their
// original text, never reformatted.
func Format(tree *Tree, opts *FormatOptions) ([]byte, error) {
	if opts == nil {
		opts = DefaultFormatOptions()
	}
	f := &formatter{opts: *opts, src: tree.Source}
	unit := byte(' ')
	if opts.IndentStyle == IndentTab {
		unit = '\t'
	}
	f.unit = bytes.Repeat([]byte{unit}, int(opts.IndentSize))

	root := tree.Root
	if root != nil && root.Kind == NodeRoot {
		root = root.Value
	}
	if root == nil {
		return nil, nil
	}
	multiline := f.writeValue(root, 0)
	if multiline {
		f.buf.WriteByte('\n')
	}
	return f.buf.Bytes(), nil
}

// FormatSource is the parse-then-format convenience.  Parse
// diagnostics do not stop formatting; error regions are re-emitted
// verbatim.
func FormatSource(source []byte, opts *FormatOptions, popts *ParseOptions) ([]byte, error) {
	tree, _, err := ParseSource(source, popts)
	if err != nil {
		return nil, err
	}
	return Format(tree, opts)
}

// writeValue emits one value and reports whether it was laid out over
// multiple lines.
func (f *formatter) writeValue(n *Node, depth int) bool {
	switch n.Kind {
	case NodeString:
		f.writeString(n)
	case NodeNumber:
		f.buf.Write(n.Raw)
	case NodeBoolean:
		if n.Bool {
			f.buf.WriteString("true")
		} else {
			f.buf.WriteString("false")
		}
	case NodeNull:
		f.buf.WriteString("null")
	case NodeObject:
		return f.writeContainer(n, depth, '{', '}')
	case NodeArray:
		return f.writeContainer(n, depth, '[', ']')
	case NodeInvalid:
		// Best effort: reproduce the covered source region.
		if text := f.spanText(n.Span); len(text) > 0 {
			f.buf.Write(text)
		} else {
			f.buf.WriteString("null")
		}
	case NodeProperty, NodeRoot:
		// Containers emit properties themselves; roots are unwrapped
		// by Format.
	}
	return false
}

func (f *formatter) spanText(s Span) []byte {
	if int(s.End) > len(f.src) || s.Start >= s.End {
		return nil
	}
	return f.src[s.Start:s.End]
}

func (f *formatter) writeContainer(n *Node, depth int, open, close byte) bool {
	kids := n.Kids
	if n.Kind == NodeObject && f.opts.SortKeys {
		kids = sortedProperties(kids)
	}
	if len(kids) == 0 {
		f.buf.WriteByte(open)
		f.buf.WriteByte(close)
		return false
	}

	if f.compact(n) {
		f.buf.WriteByte(open)
		for i, kid := range kids {
			if i > 0 {
				f.buf.WriteByte(',')
				if f.opts.SpaceAfterComma {
					f.buf.WriteByte(' ')
				}
			}
			f.writeChild(kid, depth)
		}
		f.buf.WriteByte(close)
		return false
	}

	f.buf.WriteByte(open)
	f.buf.WriteByte('\n')
	for i, kid := range kids {
		f.writeIndent(depth + 1)
		f.writeChild(kid, depth+1)
		if i < len(kids)-1 || f.opts.TrailingComma {
			f.buf.WriteByte(',')
		}
		f.buf.WriteByte('\n')
	}
	f.writeIndent(depth)
	f.buf.WriteByte(close)
	return true
}

// writeChild emits an element or property at the given depth.
func (f *formatter) writeChild(n *Node, depth int) {
	if n.Kind != NodeProperty {
		f.writeValue(n, depth)
		return
	}
	if n.Key != nil {
		if n.Key.Kind == NodeString {
			f.writeString(n.Key)
		} else if text := f.spanText(n.Key.Span); len(text) > 0 {
			f.buf.Write(text)
		}
	}
	f.buf.WriteByte(':')
	if f.opts.SpaceAfterColon {
		f.buf.WriteByte(' ')
	}
	if n.Value != nil {
		f.writeValue(n.Value, depth)
	} else {
		f.buf.WriteString("null")
	}
}

func (f *formatter) writeIndent(depth int) {
	for i := 0; i < depth; i++ {
		f.buf.Write(f.unit)
	}
}

// compact decides the layout of one container: forced settings win,
// then the per-shape compact flag must be on, then the estimated
// single-line width must fit in half the line width with no container
// children.
func (f *formatter) compact(n *Node) bool {
	if f.opts.ForceCompact {
		return true
	}
	if f.opts.ForceMultiline {
		return false
	}
	allowed := f.opts.CompactArrays
	if n.Kind == NodeObject {
		allowed = f.opts.CompactObjects
	}
	if !allowed {
		return false
	}
	est := 2
	for _, kid := range n.Kids {
		child := kid
		if kid.Kind == NodeProperty {
			child = kid.Value
		}
		if child != nil && (child.Kind == NodeObject || child.Kind == NodeArray) {
			return false
		}
		est += estimateNode(kid) + 2
	}
	return est <= int(f.opts.LineWidth)/2
}

// estimateNode approximates a node's single-line rendered width.
func estimateNode(n *Node) int {
	if n == nil {
		return 4
	}
	switch n.Kind {
	case NodeString:
		return len(n.Str) + 2
	case NodeNumber:
		return len(n.Raw)
	case NodeBoolean:
		if n.Bool {
			return 4
		}
		return 5
	case NodeNull:
		return 4
	case NodeProperty:
		return estimateNode(n.Key) + estimateNode(n.Value) + 2
	case NodeObject, NodeArray:
		return len(n.Kids)*containerEstimateWeight + 2
	case NodeInvalid:
		return n.Span.Len()
	}
	return 0
}

// sortedProperties returns the properties ordered by a stable bytewise
// comparison of their decoded key values.  Sorting is idempotent.
func sortedProperties(props []*Node) []*Node {
	out := make([]*Node, len(props))
	copy(out, props)
	sort.SliceStable(out, func(i, j int) bool {
		return bytes.Compare(sortKey(out[i]), sortKey(out[j])) < 0
	})
	return out
}

func sortKey(prop *Node) []byte {
	if prop.Kind == NodeProperty && prop.Key != nil && prop.Key.Kind == NodeString {
		return prop.Key.Str
	}
	return nil
}

// writeString re-escapes a decoded string value.  Characters that must
// be escaped get their short forms, other control characters get
// \u00XX, and non-ASCII UTF-8 passes through untouched.
func (f *formatter) writeString(n *Node) {
	quote := byte('"')
	switch f.opts.QuoteStyle {
	case QuoteSingle:
		quote = '\''
	case QuotePreserve:
		if int(n.Span.Start) < len(f.src) && f.src[n.Span.Start] == '\'' {
			quote = '\''
		}
	}
	f.buf.WriteByte(quote)
	for _, c := range n.Str {
		switch {
		case c == quote:
			f.buf.WriteByte('\\')
			f.buf.WriteByte(c)
		case c == '\\':
			f.buf.WriteString(`\\`)
		case c == '\b':
			f.buf.WriteString(`\b`)
		case c == '\f':
			f.buf.WriteString(`\f`)
		case c == '\n':
			f.buf.WriteString(`\n`)
		case c == '\r':
			f.buf.WriteString(`\r`)
		case c == '\t':
			f.buf.WriteString(`\t`)
		case c < 0x20:
			fmt.Fprintf(&f.buf, `\u%04x`, c)
		default:
			f.buf.WriteByte(c)
		}
	}
	f.buf.WriteByte(quote)
}
