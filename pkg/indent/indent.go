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

// Package indent prefixes every line of its input with a fixed string.
// It is used by the command-line tool to nest report output.
package indent

import (
	"bytes"
	"io"
)

// String returns s with every line prefixed by prefix.
func String(prefix, s string) string {
	return string(Bytes([]byte(prefix), []byte(s)))
}

// Bytes returns b with every line prefixed by prefix.  A trailing
// newline does not produce a trailing prefixed empty line.
func Bytes(prefix, b []byte) []byte {
	if len(prefix) == 0 || len(b) == 0 {
		return b
	}
	out := make([]byte, 0, len(b)+len(prefix)*(1+bytes.Count(b, []byte{'\n'})))
	bol := true
	for _, c := range b {
		if bol {
			out = append(out, prefix...)
		}
		out = append(out, c)
		bol = c == '\n'
	}
	return out
}

// NewWriter returns a writer that prefixes every line written through
// it with prefix before passing it on to w.  Write counts report only
// consumed input bytes, never prefix bytes.
func NewWriter(w io.Writer, prefix string) io.Writer {
	if prefix == "" {
		return w
	}
	return &writer{w: w, prefix: []byte(prefix), bol: true}
}

type writer struct {
	w      io.Writer
	prefix []byte
	bol    bool
}

func (w *writer) Write(p []byte) (int, error) {
	total := 0
	for len(p) > 0 {
		if w.bol {
			if _, err := w.w.Write(w.prefix); err != nil {
				return total, err
			}
			w.bol = false
		}
		chunk := p
		if i := bytes.IndexByte(p, '\n'); i >= 0 {
			chunk = p[:i+1]
		}
		n, err := w.w.Write(chunk)
		total += n
		if err != nil {
			return total, err
		}
		if chunk[len(chunk)-1] == '\n' {
			w.bol = true
		}
		p = p[len(chunk):]
	}
	return total, nil
}
