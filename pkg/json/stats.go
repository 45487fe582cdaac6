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

import "math"

// Stats summarizes the shape of a tree.
type Stats struct {
	Strings  int
	Numbers  int
	Booleans int
	Nulls    int
	Objects  int
	Arrays   int

	// MaxDepth is the deepest container nesting observed.
	MaxDepth int

	// Keys is the total property count across all objects.
	Keys int

	// ByteSize is the length of the source the tree was parsed from.
	ByteSize int

	// Complexity is a single heuristic score:
	// 2*depth + 1.5*objects + 1.2*arrays + 0.5*keys + log(size).
	Complexity float64
}

// GenerateStatistics walks the tree once and returns its statistics.
// Property keys count toward Keys, not Strings.
func GenerateStatistics(tree *Tree) *Stats {
	s := &Stats{ByteSize: len(tree.Source)}
	root := tree.Root
	if root != nil && root.Kind == NodeRoot {
		root = root.Value
	}
	s.visit(root, 0)
	size := 0.0
	if s.ByteSize > 0 {
		size = math.Log(float64(s.ByteSize))
	}
	s.Complexity = 2*float64(s.MaxDepth) +
		1.5*float64(s.Objects) +
		1.2*float64(s.Arrays) +
		0.5*float64(s.Keys) +
		size
	return s
}

func (s *Stats) visit(n *Node, depth int) {
	if n == nil {
		return
	}
	if depth > s.MaxDepth {
		s.MaxDepth = depth
	}
	switch n.Kind {
	case NodeString:
		s.Strings++
	case NodeNumber:
		s.Numbers++
	case NodeBoolean:
		s.Booleans++
	case NodeNull:
		s.Nulls++
	case NodeObject:
		s.Objects++
		s.Keys += len(n.Kids)
		for _, prop := range n.Kids {
			if prop.Kind == NodeProperty {
				s.visit(prop.Value, depth+1)
			}
		}
	case NodeArray:
		s.Arrays++
		for _, kid := range n.Kids {
			s.visit(kid, depth+1)
		}
	case NodeInvalid:
		s.visit(n.Value, depth)
	}
}
