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

// Package kwdoc describes the canonical, immutable model of a resolvable
// keyword produced by import resolution: KeywordDoc.
package kwdoc

import (
	"regexp"
	"strings"
)

// RunKeywordFamily classifies a BuiltIn keyword whose arguments are
// themselves keyword calls. Only BuiltIn keywords are ever classified as
// anything other than None.
type RunKeywordFamily int

const (
	// None is an ordinary keyword: none of its arguments are nested
	// keyword calls.
	None RunKeywordFamily = iota
	// RunKeyword is `Run Keyword`: arg 0 is the nested keyword name, the
	// rest are its arguments.
	RunKeyword
	// RunKeywords is `Run Keywords`: a `AND`-delimited sequence of
	// independent keyword calls.
	RunKeywords
	// RunKeywordIf is `Run Keyword If`/`Run Keyword Unless`: a
	// condition/keyword/ELSE IF/ELSE chain.
	RunKeywordIf
	// RunKeywordWithCondition is a family member that consumes a fixed
	// number of leading condition arguments before the nested keyword
	// name, e.g. `Run Keyword And Return If`.
	RunKeywordWithCondition
)

// ImportError describes one failure encountered while resolving the
// library or resource that would have provided a keyword.
type ImportError struct {
	Source  string
	LineNo  int
	Message string
}

// ArgSpec describes how a keyword's arguments are declared: positional
// names (with optional defaults), whether it accepts a variadic
// positional tail (`@{args}`), and whether it accepts free-form named
// arguments (`&{kwargs}`).
type ArgSpec struct {
	// Positional lists declared positional parameter names, in order.
	Positional []Param
	// VarPositional is the name of the `@{...}` catch-all, or "" if the
	// keyword doesn't declare one.
	VarPositional string
	// VarNamed is the name of the `&{...}` catch-all, or "" if the
	// keyword doesn't declare one.
	VarNamed string
}

// Param is one declared positional parameter.
type Param struct {
	Name         string
	HasDefault   bool
	EmbeddedOnly bool // true for a parameter bound only via an embedded-argument match
}

// KeywordDoc is the canonical descriptor of a resolvable keyword, produced
// once by import resolution and immutable thereafter. The same KeywordDoc
// value is shared across every Namespace that resolves to it.
type KeywordDoc struct {
	Name    string
	LibName string

	// Source is the path of the file the keyword is declared in, as it
	// was handed to the parser (relative when that path was relative),
	// or "" if it comes from a library with no backing source (a
	// built-in or pure-Python library with no available source map).
	Source string
	// LineNo is the zero-based declaration line, or -1 if unknown.
	LineNo int

	Arguments *ArgSpec

	IsDeprecated      bool
	DeprecatedMessage string

	IsErrorHandler      bool
	ErrorHandlerMessage string

	Errors []ImportError

	RunKeywordFamily RunKeywordFamily
	// CondArgCount is only meaningful when RunKeywordFamily ==
	// RunKeywordWithCondition: the number of leading arguments that are
	// conditions to evaluate, not keyword calls, before the nested
	// keyword name.
	CondArgCount uint8

	// ArgsToProcess records how many leading arguments of a run-keyword
	// family member are nested keyword syntax. Nothing in this module
	// reads it: the analyzer and the definition resolver walk every
	// argument of a run-keyword call regardless of its value.
	ArgsToProcess *uint32
}

var embeddedArgRe = regexp.MustCompile(`\$\{[^}]*\}`)

// EmbeddedPattern returns the compiled anchored regular expression used to
// match this KeywordDoc's name against call sites when Name contains
// `${...}` placeholders, and true if such a pattern exists. Each
// placeholder matches ".+?", non-greedy, anchored at both ends. The
// pattern is compiled per call: KeywordDocs are shared read-only across
// concurrent analysis passes, so the doc itself never mutates.
func (k *KeywordDoc) EmbeddedPattern() (*regexp.Regexp, bool) {
	matches := embeddedArgRe.FindAllStringIndex(k.Name, -1)
	if len(matches) == 0 {
		return nil, false
	}
	var b strings.Builder
	b.WriteString("(?is)^")
	pos := 0
	for _, m := range matches {
		b.WriteString(regexp.QuoteMeta(k.Name[pos:m[0]]))
		b.WriteString(`.+?`)
		pos = m[1]
	}
	b.WriteString(regexp.QuoteMeta(k.Name[pos:]))
	b.WriteString("$")
	return regexp.MustCompile(b.String()), true
}
