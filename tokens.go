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

package main

import (
	"fmt"
	"io"

	"github.com/ryanatkn/zz-sub002/pkg/json"
)

func init() {
	register(&formatter{
		name: "tokens",
		f:    doTokens,
		help: "display the raw token stream",
	})
}

func doTokens(w io.Writer, docs []*document) int {
	for _, doc := range docs {
		if len(docs) > 1 {
			fmt.Fprintf(w, "%s:\n", doc.name)
		}
		for _, tok := range doc.tokens {
			text := ""
			switch tok.Kind() {
			case json.KindEOF:
			default:
				text = fmt.Sprintf(" %q", tok.Text(doc.source))
			}
			fmt.Fprintf(w, "%v depth=%d%s\n", tok, tok.Depth(), text)
		}
	}
	return 0
}
