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
	"fmt"
	"unicode/utf8"
)

// Rule ids.  The built-in rule list is fixed; callers choose which
// rules run by passing a RuleSet on each Lint call.  There is no
// mutable global registry.
const (
	RuleNoDuplicateKeys       = "no_duplicate_keys"
	RuleNoLeadingZeros        = "no_leading_zeros"
	RuleValidStringEncoding   = "valid_string_encoding"
	RuleInvalidEscapeSequence = "invalid_escape_sequence"
	RuleMaxDepthExceeded      = "max_depth_exceeded"
	RuleDeepNesting           = "deep_nesting"
	RuleLargeNumberPrecision  = "large_number_precision"
	RuleLargeStructure        = "large_structure"
	RuleInvalidKeyType        = "invalid_key_type"
)

// ruleSeverity carries the default severity of each rule.
var ruleSeverity = map[string]Severity{
	RuleNoDuplicateKeys:       SeverityError,
	RuleNoLeadingZeros:        SeverityWarning,
	RuleValidStringEncoding:   SeverityError,
	RuleInvalidEscapeSequence: SeverityError,
	RuleMaxDepthExceeded:      SeverityError,
	RuleDeepNesting:           SeverityWarning,
	RuleLargeNumberPrecision:  SeverityWarning,
	RuleLargeStructure:        SeverityWarning,
	RuleInvalidKeyType:        SeverityError,
}

// A RuleSet selects which lint rules run.
type RuleSet map[string]bool

// AllRules returns a RuleSet enabling every built-in rule.
func AllRules() RuleSet {
	rs := make(RuleSet, len(ruleSeverity))
	for id := range ruleSeverity {
		rs[id] = true
	}
	return rs
}

func (rs RuleSet) on(id string) bool { return rs[id] }

// linter holds one Lint invocation's state.
type linter struct {
	tree  *Tree
	rules RuleSet
	opts  LintOptions
	diags []Diagnostic
}

// Lint runs the enabled rules over the tree and returns the
// diagnostics in pre-order traversal order.  Lint never fails; an
// empty rule set yields an empty result.
func Lint(tree *Tree, rules RuleSet, opts *LintOptions) []Diagnostic {
	l := &linter{tree: tree, rules: rules, opts: opts.withDefaults()}
	if len(rules) == 0 || tree == nil {
		return nil
	}
	tree.Walk(func(n *Node, depth int) bool {
		l.check(n, depth)
		return true
	})
	return l.diags
}

func (l *linter) report(rule string, span Span, fix *Fix, format string, args ...interface{}) {
	l.diags = append(l.diags, Diagnostic{
		Rule:     rule,
		Message:  fmt.Sprintf(format, args...),
		Severity: ruleSeverity[rule],
		Span:     span,
		Fix:      fix,
	})
}

// check applies every enabled rule to one node.  All checks are O(1)
// except duplicate-key detection, which is amortized O(k) over an
// object of k keys.
func (l *linter) check(n *Node, depth int) {
	if l.rules.on(RuleMaxDepthExceeded) && depth > l.opts.MaxDepth {
		l.report(RuleMaxDepthExceeded, n.Span, nil,
			"nesting depth %d exceeds maximum %d", depth, l.opts.MaxDepth)
	}

	switch n.Kind {
	case NodeObject:
		if l.rules.on(RuleDeepNesting) && depth > l.opts.WarnDepth {
			l.report(RuleDeepNesting, n.Span, nil,
				"object nested %d levels deep (threshold %d)", depth, l.opts.WarnDepth)
		}
		if l.rules.on(RuleLargeStructure) && len(n.Kids) > l.opts.MaxObjectKeys {
			l.report(RuleLargeStructure, n.Span, nil,
				"object has %d keys (maximum %d)", len(n.Kids), l.opts.MaxObjectKeys)
		}
		if l.rules.on(RuleNoDuplicateKeys) {
			l.checkDuplicateKeys(n)
		}
		if l.rules.on(RuleInvalidKeyType) {
			for _, prop := range n.Kids {
				if prop.Kind == NodeProperty && prop.Key != nil && prop.Key.Kind != NodeString {
					l.report(RuleInvalidKeyType, prop.Key.Span, nil,
						"object key must be a string")
				}
			}
		}

	case NodeArray:
		if l.rules.on(RuleDeepNesting) && depth > l.opts.WarnDepth {
			l.report(RuleDeepNesting, n.Span, nil,
				"array nested %d levels deep (threshold %d)", depth, l.opts.WarnDepth)
		}
		if l.rules.on(RuleLargeStructure) && len(n.Kids) > l.opts.MaxArrayElements {
			l.report(RuleLargeStructure, n.Span, nil,
				"array has %d elements (maximum %d)", len(n.Kids), l.opts.MaxArrayElements)
		}

	case NodeString:
		if l.rules.on(RuleValidStringEncoding) && !utf8.Valid(n.Str) {
			l.report(RuleValidStringEncoding, n.Span, nil,
				"string is not valid UTF-8")
		}
		if l.rules.on(RuleInvalidEscapeSequence) {
			l.checkEscapes(n)
		}
		if l.rules.on(RuleLargeStructure) && len(n.Str) > l.opts.MaxStringLength {
			l.report(RuleLargeStructure, n.Span, nil,
				"string is %d bytes long (maximum %d)", len(n.Str), l.opts.MaxStringLength)
		}

	case NodeNumber:
		if l.rules.on(RuleNoLeadingZeros) && hasLeadingZero(n.Raw) {
			l.report(RuleNoLeadingZeros, n.Span, nil,
				"number %q has a leading zero", n.Raw)
		}
		if l.rules.on(RuleLargeNumberPrecision) {
			if d := decimalDigits(n.Raw); d > l.opts.MaxNumberPrecision {
				l.report(RuleLargeNumberPrecision, n.Span, nil,
					"number has %d decimal digits (maximum %d)", d, l.opts.MaxNumberPrecision)
			}
		}

	case NodeInvalid:
		// The parser rejects leading-zero numbers into error nodes; the
		// rule still fires on the covered text so disabling parser
		// diagnostics does not hide the problem.
		if l.rules.on(RuleNoLeadingZeros) {
			text := l.spanText(n.Span)
			if len(text) > 0 && (text[0] == '-' || isDigit(text[0])) && hasLeadingZero(text) {
				l.report(RuleNoLeadingZeros, n.Span, nil,
					"number %q has a leading zero", text)
			}
		}
	}
}

func (l *linter) spanText(s Span) []byte {
	src := l.tree.Source
	if int(s.End) > len(src) || s.Start > s.End {
		return nil
	}
	return src[s.Start:s.End]
}

// checkDuplicateKeys reports every property whose decoded key repeats
// an earlier one in the same object.  The second occurrence carries the
// diagnostic; the first is named in the fix description.
func (l *linter) checkDuplicateKeys(obj *Node) {
	var first map[string]*Node
	for i, prop := range obj.Kids {
		if prop.Kind != NodeProperty || prop.Key == nil || prop.Key.Kind != NodeString {
			continue
		}
		key := string(prop.Key.Str)
		if first == nil {
			first = make(map[string]*Node, len(obj.Kids))
		}
		orig, dup := first[key]
		if !dup {
			first[key] = prop
			continue
		}
		fix := &Fix{
			Description: fmt.Sprintf("remove duplicate property %q (first defined at %v)", key, orig.Span),
			Edits:       []TextEdit{{Span: removalSpan(obj, i), Replacement: ""}},
		}
		l.report(RuleNoDuplicateKeys, prop.Key.Span, fix,
			"duplicate object key %q", key)
	}
}

// removalSpan covers the i'th property plus the separator joining it to
// its preceding sibling.
func removalSpan(obj *Node, i int) Span {
	prop := obj.Kids[i]
	if i == 0 {
		return prop.Span
	}
	return Span{Start: obj.Kids[i-1].Span.End, End: prop.Span.End}
}

// checkEscapes rescans the raw text of a string node for unknown or
// incomplete backslash sequences.  The decoder already replaced them
// with U+FFFD; this rule locates them for the caller.
func (l *linter) checkEscapes(n *Node) {
	raw := l.spanText(n.Span)
	if len(raw) < 2 {
		return
	}
	content := raw[1 : len(raw)-1]
	base := n.Span.Start + 1
	i := 0
	for i < len(content) {
		if content[i] != '\\' {
			i++
			continue
		}
		if i+1 >= len(content) {
			l.report(RuleInvalidEscapeSequence,
				Span{Start: base + uint32(i), End: base + uint32(i) + 1}, nil,
				"incomplete escape sequence")
			return
		}
		switch e := content[i+1]; e {
		case '"', '\\', '/', '\'', 'b', 'f', 'n', 'r', 't':
			i += 2
		case 'u':
			_, size, ok := decodeUnicodeEscape(content[i:])
			if !ok {
				l.report(RuleInvalidEscapeSequence,
					Span{Start: base + uint32(i), End: base + uint32(i+size)}, nil,
					"invalid unicode escape %q", content[i:i+size])
			}
			i += size
		default:
			l.report(RuleInvalidEscapeSequence,
				Span{Start: base + uint32(i), End: base + uint32(i) + 2}, nil,
				`unknown escape \%c`, e)
			i += 2
		}
	}
}

// decimalDigits counts the digits of the fractional part of raw.
func decimalDigits(raw []byte) int {
	for i, c := range raw {
		if c != '.' {
			continue
		}
		n := 0
		for _, d := range raw[i+1:] {
			if !isDigit(d) {
				break
			}
			n++
		}
		return n
	}
	return 0
}
