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

package ast

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"

	"github.com/robotcode-go/robotls/token"
)

// cellSeparator splits a logical line of Robot Framework's plain-text
// tabular format into cells: two or more spaces, or one or more tabs.
var cellSeparator = regexp.MustCompile(`[ \t]{2,}|\t+`)

var sectionHeader = regexp.MustCompile(`(?i)^\*+\s*(settings?|test cases?|tasks?|keywords?)\s*\*+\s*$`)

type cell struct {
	value string
	// col is the zero-based rune column the cell's first character
	// starts at within its source line.
	col uint32
}

// ParseSource builds a File from the plain-text tabular Robot Framework
// syntax. It is a deliberately minimal stand-in for the real surface
// parser (see the package doc); it recovers from unrecognized lines by
// skipping them rather than aborting, so a single malformed line never
// prevents the rest of the suite from being analyzed.
func ParseSource(path, text string) (*File, []error) {
	p := &parser{path: path, lines: strings.Split(text, "\n")}
	return p.parse()
}

type section int

const (
	sectionNone section = iota
	sectionSettings
	sectionTestCases
	sectionKeywords
)

type parser struct {
	path  string
	lines []string
	errs  []error
}

func (p *parser) errorf(line int, format string, args ...interface{}) {
	p.errs = append(p.errs, errors.Errorf("%s:%d: "+format, append([]interface{}{p.path, line + 1}, args...)...))
}

func (p *parser) parse() (*File, []error) {
	f := &File{Path: p.path}
	sec := sectionNone

	var curTest *TestCase
	var curKeyword *Keyword

	// endBlock closes the test case or keyword under construction; before
	// is the line index the next block (or EOF) starts at, so the closed
	// block's range ends on the line above it.
	endBlock := func(before int) {
		if curTest != nil {
			curTest.NodeRange.End = endPos(p.lines, before-1)
			f.TestCases = append(f.TestCases, curTest)
			curTest = nil
		}
		if curKeyword != nil {
			curKeyword.NodeRange.End = endPos(p.lines, before-1)
			f.Keywords = append(f.Keywords, curKeyword)
			curKeyword = nil
		}
	}

	for i, line := range p.lines {
		trimmed := strings.TrimRight(line, "\r")
		if strings.TrimSpace(trimmed) == "" {
			continue
		}
		if strings.HasPrefix(strings.TrimSpace(trimmed), "#") {
			continue
		}
		if m := sectionHeader.FindStringSubmatch(trimmed); m != nil {
			endBlock(i)
			switch strings.ToLower(m[1]) {
			case "settings", "setting":
				sec = sectionSettings
			case "test cases", "test case", "tasks", "task":
				sec = sectionTestCases
			case "keywords", "keyword":
				sec = sectionKeywords
			default:
				sec = sectionNone
			}
			continue
		}

		indented := len(trimmed) > 0 && (trimmed[0] == ' ' || trimmed[0] == '\t')
		cells := trimTrailingComment(splitCells(trimmed))
		if len(cells) == 0 {
			continue
		}

		switch sec {
		case sectionSettings:
			p.parseSetting(f, i, cells)

		case sectionTestCases:
			if !indented {
				endBlock(i)
				curTest = &TestCase{
					Name:      cells[0].value,
					NameToken: cellToken(token.TESTCASE_NAME, cells[0], i),
					NodeRange: token.Range{Start: token.Position{Line: uint32(i)}},
				}
				if len(cells) > 1 {
					p.appendBody(&curTest.Body, i, cells[1:])
				}
				continue
			}
			if curTest == nil {
				p.errorf(i, "body line outside of any test case")
				continue
			}
			p.appendBody(&curTest.Body, i, cells)

		case sectionKeywords:
			if !indented {
				endBlock(i)
				curKeyword = &Keyword{
					Name:      cells[0].value,
					NameToken: cellToken(token.KEYWORD_NAME, cells[0], i),
					NodeRange: token.Range{Start: token.Position{Line: uint32(i)}},
				}
				if len(cells) > 1 {
					p.appendKeywordBody(curKeyword, i, cells[1:])
				}
				continue
			}
			if curKeyword == nil {
				p.errorf(i, "body line outside of any keyword")
				continue
			}
			p.appendKeywordBody(curKeyword, i, cells)

		default:
			// Lines before any recognized section are ignored, matching
			// the surface parser's error-recovery behaviour.
		}
	}
	endBlock(len(p.lines))

	f.NodeRange = token.Range{
		Start: token.Position{},
		End:   endPos(p.lines, len(p.lines)-1),
	}
	return f, p.errs
}

func (p *parser) parseSetting(f *File, line int, cells []cell) {
	if len(cells) == 0 {
		return
	}
	switch strings.ToLower(cells[0].value) {
	case "library":
		if len(cells) < 2 {
			p.errorf(line, "Library setting requires a name")
			return
		}
		imp := &LibraryImport{
			Name:      cells[1].value,
			NameToken: cellToken(token.NAME, cells[1], line),
			NodeRange: rangeOf(line, cells),
		}
		alias := ""
		for i := 2; i < len(cells); i++ {
			if strings.EqualFold(cells[i].value, "WITH NAME") && i+1 < len(cells) {
				alias = cells[i+1].value
				break
			}
			imp.Args = append(imp.Args, cells[i].value)
		}
		imp.Alias = alias
		f.Settings = append(f.Settings, imp)

	case "resource":
		if len(cells) < 2 {
			p.errorf(line, "Resource setting requires a path")
			return
		}
		f.Resources = append(f.Resources, &ResourceImport{
			Path:      cells[1].value,
			PathToken: cellToken(token.NAME, cells[1], line),
			NodeRange: rangeOf(line, cells),
		})

	case "test template":
		if len(cells) < 2 {
			p.errorf(line, "Test Template setting requires a keyword name")
			return
		}
		f.TestTemplate = &TestTemplate{
			Name:      cells[1].value,
			NameToken: cellToken(token.NAME, cells[1], line),
			NodeRange: rangeOf(line, cells),
		}
	}
}

// appendBody parses one test-case body line into a Node and appends it.
func (p *parser) appendBody(body *[]Node, line int, cells []cell) {
	if n := p.parseBodyLine(line, cells); n != nil {
		*body = append(*body, n)
	}
}

func (p *parser) appendKeywordBody(k *Keyword, line int, cells []cell) {
	if len(cells) > 0 && strings.EqualFold(cells[0].value, "[Arguments]") {
		specs := make([]string, 0, len(cells)-1)
		for _, c := range cells[1:] {
			specs = append(specs, c.value)
		}
		k.Arguments = &Arguments{Specs: specs, NodeRange: rangeOf(line, cells)}
		return
	}
	if n := p.parseBodyLine(line, cells); n != nil {
		k.Body = append(k.Body, n)
	}
}

func (p *parser) parseBodyLine(line int, cells []cell) Node {
	if len(cells) == 0 {
		return nil
	}
	first := cells[0].value
	switch strings.ToLower(first) {
	case "[setup]", "[teardown]":
		if len(cells) < 2 {
			return &Fixture{NodeRange: rangeOf(line, cells)}
		}
		return &Fixture{
			Name:      cells[1].value,
			NameToken: cellToken(token.NAME, cells[1], line),
			Arguments: tokensFrom(cells[2:], line),
			NodeRange: rangeOf(line, cells),
		}
	case "[template]":
		if len(cells) < 2 {
			return &Template{NodeRange: rangeOf(line, cells)}
		}
		return &Template{
			Name:      cells[1].value,
			NameToken: cellToken(token.NAME, cells[1], line),
			NodeRange: rangeOf(line, cells),
		}
	}

	// Keyword call: leading cells that look like assignments
	// (${x}, ${x}=, @{list}=) precede the keyword name.
	idx := 0
	var assigns []Assignment
	for idx < len(cells) {
		v := strings.TrimSuffix(cells[idx].value, "=")
		if token.IsVariable(v) {
			assigns = append(assigns, Assignment{Token: cellToken(token.ASSIGN, cells[idx], line)})
			idx++
			continue
		}
		break
	}
	call := &KeywordCall{Assign: assigns, NodeRange: rangeOf(line, cells)}
	if idx < len(cells) {
		call.Keyword = cells[idx].value
		call.KeywordToken = cellToken(token.KEYWORD, cells[idx], line)
		call.Arguments = tokensFrom(cells[idx+1:], line)
	}
	return call
}

func tokensFrom(cells []cell, line int) []token.Token {
	out := make([]token.Token, 0, len(cells))
	for _, c := range cells {
		out = append(out, cellToken(token.ARGUMENT, c, line))
	}
	return out
}

func cellToken(kind token.Kind, c cell, line int) token.Token {
	return token.Token{
		Kind:  kind,
		Value: c.value,
		Range: token.Range{Start: token.Position{Line: uint32(line), Character: c.col}},
	}
}

func rangeOf(line int, cells []cell) token.Range {
	start := token.Position{Line: uint32(line)}
	end := token.Position{Line: uint32(line)}
	if len(cells) > 0 {
		start.Character = cells[0].col
		last := cells[len(cells)-1]
		end.Character = last.col + uint32(utf8.RuneCountInString(last.value))
	}
	return token.Range{Start: start, End: end}
}

func endPos(lines []string, lastLine int) token.Position {
	if lastLine < 0 {
		return token.Position{}
	}
	if lastLine >= len(lines) {
		lastLine = len(lines) - 1
	}
	return token.Position{Line: uint32(lastLine), Character: uint32(utf8.RuneCountInString(lines[lastLine]))}
}

// trimTrailingComment drops a cell starting with "#" and every cell after
// it. Robot Framework treats a "#"-prefixed cell as a trailing comment,
// never as a keyword argument; the rule-suppression scanner (package
// suppress) still sees the original source line and finds the pragma
// there, independent of this trimming.
func trimTrailingComment(cells []cell) []cell {
	for i, c := range cells {
		if strings.HasPrefix(c.value, "#") {
			return cells[:i]
		}
	}
	return cells
}

// splitCells splits a raw source line into its tabular cells, recording
// each cell's rune column within the line.
func splitCells(line string) []cell {
	var cells []cell
	idxs := cellSeparator.FindAllStringIndex(line, -1)
	pos := 0
	runeCol := func(bytePos int) uint32 { return uint32(utf8.RuneCountInString(line[:bytePos])) }
	for _, m := range idxs {
		if m[0] > pos {
			cells = append(cells, cell{value: line[pos:m[0]], col: runeCol(pos)})
		} else if m[0] == pos && pos == 0 {
			// leading separator: marks an indented body line with an
			// empty first cell; skip it rather than emitting "".
		}
		pos = m[1]
	}
	if pos < len(line) {
		cells = append(cells, cell{value: line[pos:], col: runeCol(pos)})
	}
	for i := range cells {
		cells[i].value = strings.TrimRight(cells[i].value, " \t")
	}
	return cells
}
