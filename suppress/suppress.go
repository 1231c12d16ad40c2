// Copyright (C) 2017 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package suppress implements the `# robotcode: ignore` inline
// diagnostic-suppression pragma.
package suppress

import (
	"regexp"

	"github.com/robotcode-go/robotls/token"
)

var (
	commentPattern = regexp.MustCompile(`.*(?:^ *|\t+| {2,})#(?P<body>.*)$`)
	// Case-sensitive: "# robotcode: ignore" only, not
	// "# RobotCode: Ignore" or any other casing.
	ignoreBody = regexp.MustCompile(`\brobotcode\s*:\s*ignore\b`)
)

// Scanner decides whether a diagnostic's range is covered by a suppressing
// comment, against a fixed snapshot of source lines.
type Scanner struct {
	Lines []string
}

// New creates a Scanner over lines (zero-based, one entry per source
// line, no trailing newline).
func New(lines []string) *Scanner {
	return &Scanner{Lines: lines}
}

// Suppressed reports whether any line covered by r carries a
// `# robotcode: ignore` pragma.
func (s *Scanner) Suppressed(r token.Range) bool {
	start := int(r.Start.Line)
	end := int(r.End.Line)
	if end < start {
		end = start
	}
	for line := start; line <= end && line < len(s.Lines); line++ {
		if line < 0 {
			continue
		}
		if s.lineSuppresses(s.Lines[line]) {
			return true
		}
	}
	return false
}

func (s *Scanner) lineSuppresses(line string) bool {
	m := commentPattern.FindStringSubmatch(line)
	if m == nil {
		return false
	}
	body := m[len(m)-1]
	return ignoreBody.MatchString(body)
}
