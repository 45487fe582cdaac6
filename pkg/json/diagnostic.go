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

// A Severity ranks how serious a diagnostic is.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
	SeverityHint
)

// String returns the lowercase name of s.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	case SeverityHint:
		return "hint"
	}
	return fmt.Sprintf("severity(%d)", int(s))
}

// A TextEdit replaces the bytes covered by Span with Replacement.
type TextEdit struct {
	Span        Span
	Replacement string
}

// A Fix is a suggested repair attached to a diagnostic.
type Fix struct {
	Description string
	Edits       []TextEdit
}

// A Diagnostic is a structured message produced by parsing or linting.
// Diagnostics are returned, never raised; a caller wanting strict
// validation checks that the returned slice is empty.
type Diagnostic struct {
	// Rule is the lint rule id (e.g. "no_duplicate_keys") or, for
	// parser diagnostics, a snake_case id derived from the ErrorKind
	// (e.g. "unexpected_token"), reusing the lint rule id where one
	// exists.
	Rule     string
	Message  string
	Severity Severity
	Span     Span
	Fix      *Fix
}

// String returns d in the form "12:17: error: message [rule]".
func (d Diagnostic) String() string {
	return fmt.Sprintf("%v: %v: %s [%s]", d.Span, d.Severity, d.Message, d.Rule)
}
