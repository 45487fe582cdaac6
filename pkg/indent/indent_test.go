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

package indent

import (
	"bytes"
	"errors"
	"testing"
)

var tests = []struct {
	prefix, in, out string
}{
	{"", "", ""},
	{"--", "", ""},
	{"", "x\nx", "x\nx"},
	{"--", "x", "--x"},
	{"--", "\n", "--\n"},
	{"--", "\n\n", "--\n--\n"},
	{"--", "x\n", "--x\n"},
	{"--", "\nx", "--\n--x"},
	{"--", "two\nlines\n", "--two\n--lines\n"},
	{"--", "\nempty\nfirst\n", "--\n--empty\n--first\n"},
	{"--", "empty\nlast\n\n", "--empty\n--last\n--\n"},
	{"--", "empty\n\nmiddle\n", "--empty\n--\n--middle\n"},
}

func TestString(t *testing.T) {
	for x, tt := range tests {
		if out := String(tt.prefix, tt.in); out != tt.out {
			t.Errorf("#%d: String got %q, want %q", x, out, tt.out)
		}
		if out := string(Bytes([]byte(tt.prefix), []byte(tt.in))); out != tt.out {
			t.Errorf("#%d: Bytes got %q, want %q", x, out, tt.out)
		}
	}
}

func TestWriter(t *testing.T) {
	for x, tt := range tests {
		// Split the input at every power-of-two size to make sure line
		// state survives partial writes.
		for size := 1; size < 64; size <<= 1 {
			var b bytes.Buffer
			w := NewWriter(&b, tt.prefix)
			data := []byte(tt.in)
			for len(data) > 0 {
				n := size
				if n > len(data) {
					n = len(data)
				}
				wrote, err := w.Write(data[:n])
				if err != nil {
					t.Fatalf("#%d/%d: %v", x, size, err)
				}
				if wrote != n {
					t.Fatalf("#%d/%d: wrote %d bytes, want %d", x, size, wrote, n)
				}
				data = data[n:]
			}
			if out := b.String(); out != tt.out {
				t.Errorf("#%d/%d: got %q, want %q", x, size, out, tt.out)
			}
		}
	}
}

// limitWriter accepts at most n bytes and then fails.
type limitWriter struct {
	n int
}

func (l *limitWriter) Write(p []byte) (int, error) {
	if len(p) <= l.n {
		l.n -= len(p)
		return len(p), nil
	}
	n := l.n
	l.n = 0
	return n, errors.New("writer full")
}

func TestWriterReportsConsumedInput(t *testing.T) {
	// The reported count must reflect input bytes only, even when the
	// underlying writer fails partway through a prefix.
	for _, tt := range []struct {
		underlay int
		want     int
	}{
		{0, 0},
		{1, 0}, // inside the prefix
		{2, 0},
		{3, 1}, // t
		{4, 2}, // w
		{5, 3}, // o
		{6, 4}, // newline
		{7, 4}, // inside the second prefix
		{8, 4},
		{9, 5}, // l
	} {
		w := NewWriter(&limitWriter{n: tt.underlay}, "--")
		n, err := w.Write([]byte("two\nlines\n"))
		if err == nil {
			t.Errorf("underlay %d: got nil error", tt.underlay)
		}
		if n != tt.want {
			t.Errorf("underlay %d: got %d, want %d", tt.underlay, n, tt.want)
		}
	}
}
