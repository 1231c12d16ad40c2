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

// Package ast defines the test-suite syntax tree the core analyzes, and a
// minimal builder that turns Robot Framework's tabular plain-text syntax
// into that tree.
//
// The real Robot Framework tokenizer and AST builder are an external
// collaborator of this core (see the language server's surface parser);
// this package is a deliberately small stand-in so the rest of the core
// has a concrete, testable tree to walk. It never participates in
// keyword resolution or diagnostic emission itself.
package ast

import "github.com/robotcode-go/robotls/token"

// Node is a tagged variant over every syntax element the core analyzes.
// Concrete types implement Node by exposing their children, their tokens,
// and their source range.
type Node interface {
	// Children returns this node's immediate child nodes, in document
	// order.
	Children() []Node
	// Tokens returns every token this node directly owns (not including
	// tokens owned by child nodes).
	Tokens() []token.Token
	// Range returns the source range this node covers. It always
	// contains every range returned by Tokens and every child's Range.
	Range() token.Range
}

// File is the root of one parsed .robot or .resource document.
type File struct {
	Path         string
	Settings     []*LibraryImport
	Resources    []*ResourceImport
	TestTemplate *TestTemplate // suite-level `Test Template` setting, if any
	TestCases    []*TestCase
	Keywords     []*Keyword
	NodeRange    token.Range
}

func (f *File) Children() []Node {
	out := make([]Node, 0, len(f.Settings)+len(f.Resources)+len(f.TestCases)+len(f.Keywords)+1)
	for _, s := range f.Settings {
		out = append(out, s)
	}
	for _, r := range f.Resources {
		out = append(out, r)
	}
	if f.TestTemplate != nil {
		out = append(out, f.TestTemplate)
	}
	for _, t := range f.TestCases {
		out = append(out, t)
	}
	for _, k := range f.Keywords {
		out = append(out, k)
	}
	return out
}
func (f *File) Tokens() []token.Token { return nil }
func (f *File) Range() token.Range    { return f.NodeRange }

// TestCase is one `*** Test Cases ***` entry.
type TestCase struct {
	Name      string
	NameToken token.Token
	Body      []Node // KeywordCall, Fixture, Template, TestTemplate children
	NodeRange token.Range
}

func (t *TestCase) Children() []Node      { return t.Body }
func (t *TestCase) Tokens() []token.Token { return []token.Token{t.NameToken} }
func (t *TestCase) Range() token.Range    { return t.NodeRange }

// Keyword is one `*** Keywords ***` entry.
type Keyword struct {
	Name      string
	NameToken token.Token
	Arguments *Arguments // nil if the keyword declares no Arguments section
	Body      []Node
	NodeRange token.Range
}

func (k *Keyword) Children() []Node {
	out := make([]Node, 0, len(k.Body)+1)
	if k.Arguments != nil {
		out = append(out, k.Arguments)
	}
	out = append(out, k.Body...)
	return out
}
func (k *Keyword) Tokens() []token.Token { return []token.Token{k.NameToken} }
func (k *Keyword) Range() token.Range    { return k.NodeRange }

// Arguments is a `[Arguments]` section attached to a Keyword.
type Arguments struct {
	Specs     []string // raw argument specifiers, e.g. "${x}", "${y}=1", "@{rest}"
	NodeRange token.Range
}

func (a *Arguments) Children() []Node      { return nil }
func (a *Arguments) Tokens() []token.Token { return nil }
func (a *Arguments) Range() token.Range    { return a.NodeRange }

// Assignment is one LHS variable of a KeywordCall, e.g. `${x}` in
// `${x}=    Get Value`.
type Assignment struct {
	Token token.Token
}

// KeywordCall is a single keyword invocation inside a TestCase or Keyword
// body.
type KeywordCall struct {
	Assign       []Assignment
	Keyword      string
	KeywordToken token.Token
	Arguments    []token.Token // ARGUMENT tokens, in call order
	NodeRange    token.Range
}

func (c *KeywordCall) Children() []Node { return nil }
func (c *KeywordCall) Tokens() []token.Token {
	out := make([]token.Token, 0, len(c.Assign)+1+len(c.Arguments))
	for _, a := range c.Assign {
		out = append(out, a.Token)
	}
	out = append(out, c.KeywordToken)
	out = append(out, c.Arguments...)
	return out
}
func (c *KeywordCall) Range() token.Range { return c.NodeRange }

// Fixture is a `[Setup]` or `[Teardown]` declaration.
type Fixture struct {
	Name      string
	NameToken token.Token
	Arguments []token.Token
	NodeRange token.Range
}

func (f *Fixture) Children() []Node { return nil }
func (f *Fixture) Tokens() []token.Token {
	return append([]token.Token{f.NameToken}, f.Arguments...)
}
func (f *Fixture) Range() token.Range { return f.NodeRange }

// Template is a `[Template]` declaration on a TestCase.
type Template struct {
	Name      string
	NameToken token.Token
	NodeRange token.Range
}

func (t *Template) Children() []Node      { return nil }
func (t *Template) Tokens() []token.Token { return []token.Token{t.NameToken} }
func (t *Template) Range() token.Range    { return t.NodeRange }

// TestTemplate is a suite-level `Test Template` setting, applying to every
// TestCase in the file that doesn't declare its own [Template].
type TestTemplate struct {
	Name      string
	NameToken token.Token
	NodeRange token.Range
}

func (t *TestTemplate) Children() []Node      { return nil }
func (t *TestTemplate) Tokens() []token.Token { return []token.Token{t.NameToken} }
func (t *TestTemplate) Range() token.Range    { return t.NodeRange }

// LibraryImport is a `Library` setting.
type LibraryImport struct {
	Name      string
	NameToken token.Token
	Args      []string
	Alias     string
	NodeRange token.Range
}

func (l *LibraryImport) Children() []Node      { return nil }
func (l *LibraryImport) Tokens() []token.Token { return []token.Token{l.NameToken} }
func (l *LibraryImport) Range() token.Range    { return l.NodeRange }

// ResourceImport is a `Resource` setting.
type ResourceImport struct {
	Path      string
	PathToken token.Token
	NodeRange token.Range
}

func (r *ResourceImport) Children() []Node      { return nil }
func (r *ResourceImport) Tokens() []token.Token { return []token.Token{r.PathToken} }
func (r *ResourceImport) Range() token.Range    { return r.NodeRange }
