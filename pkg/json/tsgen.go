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
	"strconv"
	"strings"
)

// GenerateTypeScriptInterface projects the tree's inferred schema onto
// a named TypeScript interface.  Object-valued properties become
// nested interfaces named after their path; a non-object root becomes
// a type alias.  Array inference is always on for projection.
func GenerateTypeScriptInterface(tree *Tree, name string, opts *SchemaOptions) string {
	sopts := SchemaOptions{InferArrayTypes: true}
	if opts != nil {
		sopts = *opts
		sopts.InferArrayTypes = true
	}
	schema := ExtractSchema(tree, &sopts)

	g := &tsGenerator{}
	if name == "" {
		name = "Root"
	}
	name = PascalCase(name)
	if schema.Kind != SchemaObject {
		fmt.Fprintf(&g.buf, "type %s = %s;\n", name, g.typeOf(schema, name))
		g.flush()
		return g.buf.String()
	}
	g.queue = append(g.queue, namedSchema{name, schema})
	g.flush()
	return g.buf.String()
}

type namedSchema struct {
	name   string
	schema *Schema
}

type tsGenerator struct {
	buf   strings.Builder
	queue []namedSchema
}

// flush writes queued interfaces in discovery order; nested object
// schemas discovered while writing one interface append to the queue.
func (g *tsGenerator) flush() {
	for i := 0; i < len(g.queue); i++ {
		if i > 0 || g.buf.Len() > 0 {
			g.buf.WriteByte('\n')
		}
		g.writeInterface(g.queue[i])
	}
}

func (g *tsGenerator) writeInterface(ns namedSchema) {
	fmt.Fprintf(&g.buf, "interface %s {\n", ns.name)
	for _, key := range ns.schema.Order {
		prop := ns.schema.Properties[key]
		typ := g.typeOf(prop, ns.name+PascalCase(key))
		if prop != nil && prop.Nullable && prop.Kind != SchemaNull && prop.Kind != SchemaAny {
			typ += " | null"
		}
		fmt.Fprintf(&g.buf, "  %s: %s;\n", fieldName(key), typ)
	}
	g.buf.WriteString("}\n")
}

// typeOf returns the TypeScript type of s, queueing a nested interface
// under hint when s is an object.
func (g *tsGenerator) typeOf(s *Schema, hint string) string {
	if s == nil {
		return "any"
	}
	switch s.Kind {
	case SchemaString:
		return "string"
	case SchemaNumber:
		return "number"
	case SchemaBoolean:
		return "boolean"
	case SchemaNull:
		return "null"
	case SchemaObject:
		g.queue = append(g.queue, namedSchema{hint, s})
		return hint
	case SchemaArray:
		if s.Items == nil {
			return "any[]"
		}
		item := g.typeOf(s.Items, hint+"Item")
		if s.Items.Nullable {
			return "(" + item + " | null)[]"
		}
		if strings.ContainsAny(item, " |") {
			return "(" + item + ")[]"
		}
		return item + "[]"
	}
	return "any"
}

// fieldName quotes keys that are not valid TypeScript identifiers.
func fieldName(key string) string {
	if key == "" {
		return strconv.Quote(key)
	}
	for i := 0; i < len(key); i++ {
		c := key[i]
		ok := c == '_' || c == '$' ||
			(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') ||
			(i > 0 && c >= '0' && c <= '9')
		if !ok {
			return strconv.Quote(key)
		}
	}
	return key
}

// PascalCase converts a JSON key to an interface-name fragment.  Dashes,
// dots, underscores and spaces split words; anything else non-alphanumeric
// is dropped.  A leading digit is prefixed to stay a valid identifier.
func PascalCase(s string) string {
	t := make([]byte, 0, len(s))
	up := true
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '-' || c == '.' || c == '_' || c == ' ':
			up = true
		case c >= '0' && c <= '9':
			if len(t) == 0 {
				t = append(t, 'X')
			}
			t = append(t, c)
			up = true
		case (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z'):
			if up && c >= 'a' {
				c ^= ' '
			}
			t = append(t, c)
			up = false
		}
	}
	if len(t) == 0 {
		return "X"
	}
	return string(t)
}
