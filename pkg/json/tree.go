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

// A NodeKind discriminates the syntax tree's tagged variants.  Every
// consumer (formatter, linter, analyzer) dispatches with a single
// switch on this tag.
type NodeKind uint8

const (
	NodeString NodeKind = iota
	NodeNumber
	NodeBoolean
	NodeNull
	NodeArray
	NodeObject
	NodeProperty
	NodeRoot
	NodeInvalid // an error node: unparseable input covered by Span
)

// String returns the lowercase variant name.
func (k NodeKind) String() string {
	switch k {
	case NodeString:
		return "string"
	case NodeNumber:
		return "number"
	case NodeBoolean:
		return "boolean"
	case NodeNull:
		return "null"
	case NodeArray:
		return "array"
	case NodeObject:
		return "object"
	case NodeProperty:
		return "property"
	case NodeRoot:
		return "root"
	case NodeInvalid:
		return "error"
	}
	return fmt.Sprintf("node(%d)", uint8(k))
}

// A Node is one vertex of the syntax tree.  All nodes of a parse live
// in the tree's arena; child slices are contiguous arena allocations,
// and Key/Value point into the same arena.  Which fields are meaningful
// depends on Kind:
//
//	NodeString    Str (decoded value; raw bytes via Span)
//	NodeNumber    Raw (verbatim text), F64, and I64 when HasI64
//	NodeBoolean   Bool
//	NodeNull      (span only)
//	NodeArray     Kids (value nodes)
//	NodeObject    Kids (property nodes)
//	NodeProperty  Key, Value
//	NodeRoot      Value
//	NodeInvalid   Msg, and Value when a partial parse exists
type Node struct {
	Kind NodeKind
	Span Span

	Str    []byte
	Raw    []byte
	F64    float64
	I64    int64
	HasI64 bool
	Bool   bool

	Kids  []*Node
	Key   *Node
	Value *Node

	Msg string
}

// A Tree owns the result of one parse.  All nodes live in the tree's
// arena and are released together when the tree is dropped; Source is
// borrowed from the caller and must outlive the tree.  The tree is
// immutable after Parse returns, so read-only traversals (format, lint,
// analyze) may run concurrently over it.
type Tree struct {
	Root   *Node
	Source []byte

	arena *arena
}

// Walk visits the value nodes of t in pre-order, passing the container
// nesting depth (the root value is at depth 0).  Property nodes are
// visited between their object and their key/value.  Returning false
// from fn prunes the subtree below n.
func (t *Tree) Walk(fn func(n *Node, depth int) bool) {
	if t.Root == nil {
		return
	}
	n := t.Root
	if n.Kind == NodeRoot {
		n = n.Value
	}
	walk(n, 0, fn)
}

func walk(n *Node, depth int, fn func(*Node, int) bool) {
	if n == nil || !fn(n, depth) {
		return
	}
	switch n.Kind {
	case NodeArray:
		for _, kid := range n.Kids {
			walk(kid, depth+1, fn)
		}
	case NodeObject:
		for _, prop := range n.Kids {
			walk(prop, depth+1, fn)
		}
	case NodeProperty:
		walk(n.Key, depth, fn)
		walk(n.Value, depth, fn)
	case NodeInvalid:
		walk(n.Value, depth, fn)
	}
}

// MaxDepth returns the deepest container nesting in t.
func (t *Tree) MaxDepth() int {
	max := 0
	t.Walk(func(n *Node, depth int) bool {
		if depth > max {
			max = depth
		}
		return true
	})
	return max
}
