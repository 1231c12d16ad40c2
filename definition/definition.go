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

// Package definition implements go-to-definition: given a source
// position, classify the innermost enclosing AST node and resolve it to
// one or more LocationLinks.
package definition

import (
	"github.com/robotcode-go/robotls/ast"
	"github.com/robotcode-go/robotls/finder"
	"github.com/robotcode-go/robotls/kwdoc"
	"github.com/robotcode-go/robotls/lsp"
	"github.com/robotcode-go/robotls/namespace"
	"github.com/robotcode-go/robotls/token"
)

// Find resolves the definition at position within root, using ns to look
// up keywords and imports. It returns nil if position doesn't fall on a
// resolvable token.
func Find(root ast.Node, position token.Position, ns *namespace.Namespace) []lsp.LocationLink {
	path := ast.InnermostAt(root, position)
	if len(path) == 0 {
		return nil
	}
	innermost := path[len(path)-1]

	switch n := innermost.(type) {
	case *ast.KeywordCall:
		if !onToken(n.KeywordToken, position) {
			return findInArguments(n.KeywordToken, n.Arguments, position, ns)
		}
		return keywordLink(n.Keyword, n.KeywordToken, ns)
	case *ast.Fixture:
		if !onToken(n.NameToken, position) {
			return findInArguments(n.NameToken, n.Arguments, position, ns)
		}
		return keywordLink(n.Name, n.NameToken, ns)
	case *ast.Template:
		if onToken(n.NameToken, position) {
			return keywordLink(n.Name, n.NameToken, ns)
		}
	case *ast.TestTemplate:
		if onToken(n.NameToken, position) {
			return keywordLink(n.Name, n.NameToken, ns)
		}
	case *ast.LibraryImport:
		if onToken(n.NameToken, position) {
			return libraryLink(n, ns)
		}
	case *ast.ResourceImport:
		if onToken(n.PathToken, position) {
			return resourceLink(n, ns)
		}
	}
	return nil
}

func onToken(t token.Token, position token.Position) bool {
	return token.RangeFromToken(t).Contains(position, true)
}

func keywordLink(name string, origin token.Token, ns *namespace.Namespace) []lsp.LocationLink {
	f := finder.New(ns)
	doc := f.FindKeyword(name)
	if doc == nil || doc.Source == "" {
		return nil
	}
	return []lsp.LocationLink{linkFor(origin, doc)}
}

func linkFor(origin token.Token, doc *kwdoc.KeywordDoc) lsp.LocationLink {
	originRange := lsp.FromRange(token.RangeFromToken(origin))
	declRange := lsp.Range{
		Start: lsp.Position{Line: uint32(maxInt(doc.LineNo, 0))},
		End:   lsp.Position{Line: uint32(maxInt(doc.LineNo, 0))},
	}
	return lsp.LocationLink{
		OriginSelectionRange: &originRange,
		TargetURI:            "file://" + doc.Source,
		TargetRange:          declRange,
		TargetSelectionRange: declRange,
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// findInArguments recurses through the run-keyword state machine when
// position falls on an argument token of a call resolving to a BuiltIn
// run-keyword family member, until the containing argument names a
// keyword the definition can resolve.
func findInArguments(kwToken token.Token, argTokens []token.Token, position token.Position, ns *namespace.Namespace) []lsp.LocationLink {
	f := finder.New(ns)
	doc := f.FindKeyword(kwToken.Value)
	if doc == nil || doc.RunKeywordFamily == kwdoc.None {
		return nil
	}
	return findInFamily(doc, argTokens, position, ns)
}

func findInFamily(doc *kwdoc.KeywordDoc, argTokens []token.Token, position token.Position, ns *namespace.Namespace) []lsp.LocationLink {
	switch doc.RunKeywordFamily {
	case kwdoc.RunKeyword:
		return findNested(argTokens, 0, position, ns)
	case kwdoc.RunKeywordWithCondition:
		return findNested(argTokens, int(doc.CondArgCount), position, ns)
	case kwdoc.RunKeywords:
		return findInRunKeywords(argTokens, position, ns)
	case kwdoc.RunKeywordIf:
		return findInRunKeywordIf(argTokens, position, ns)
	}
	return nil
}

func findNested(argTokens []token.Token, nameIdx int, position token.Position, ns *namespace.Namespace) []lsp.LocationLink {
	if nameIdx >= len(argTokens) {
		return nil
	}
	nameTok := argTokens[nameIdx]
	if onToken(nameTok, position) {
		return keywordLink(token.Unescape(nameTok.Value), nameTok, ns)
	}
	if nameIdx+1 >= len(argTokens) {
		return nil
	}
	return recurseIfMatches(nameTok, argTokens[nameIdx+1:], position, ns)
}

func recurseIfMatches(nameTok token.Token, rest []token.Token, position token.Position, ns *namespace.Namespace) []lsp.LocationLink {
	if !containsPosition(rest, position) {
		return nil
	}
	f := finder.New(ns)
	doc := f.FindKeyword(token.Unescape(nameTok.Value))
	if doc == nil || doc.RunKeywordFamily == kwdoc.None {
		return nil
	}
	return findInFamily(doc, rest, position, ns)
}

func findInRunKeywords(argTokens []token.Token, position token.Position, ns *namespace.Namespace) []lsp.LocationLink {
	start := 0
	for i := 0; i <= len(argTokens); i++ {
		if i < len(argTokens) && argTokens[i].Value != "AND" {
			continue
		}
		segment := argTokens[start:i]
		if len(segment) > 0 {
			if onToken(segment[0], position) {
				return keywordLink(token.Unescape(segment[0].Value), segment[0], ns)
			}
			if r := recurseIfMatches(segment[0], segment[1:], position, ns); r != nil {
				return r
			}
		}
		start = i + 1
	}
	return nil
}

func findInRunKeywordIf(argTokens []token.Token, position token.Position, ns *namespace.Namespace) []lsp.LocationLink {
	if len(argTokens) < 2 {
		return nil
	}
	pos := 1
	for {
		kwTok := argTokens[pos]
		end := pos + 1
		for end < len(argTokens) && argTokens[end].Value != "ELSE" && argTokens[end].Value != "ELSE IF" {
			end++
		}
		if onToken(kwTok, position) {
			return keywordLink(token.Unescape(kwTok.Value), kwTok, ns)
		}
		if r := recurseIfMatches(kwTok, argTokens[pos+1:end], position, ns); r != nil {
			return r
		}
		if end == len(argTokens) {
			return nil
		}
		if argTokens[end].Value == "ELSE" {
			elsePos := end + 1
			if elsePos >= len(argTokens) {
				return nil
			}
			elseTok := argTokens[elsePos]
			if onToken(elseTok, position) {
				return keywordLink(token.Unescape(elseTok.Value), elseTok, ns)
			}
			return recurseIfMatches(elseTok, argTokens[elsePos+1:], position, ns)
		}
		pos = end + 2
		if pos >= len(argTokens) {
			return nil
		}
	}
}

func containsPosition(tokens []token.Token, position token.Position) bool {
	for _, t := range tokens {
		if onToken(t, position) {
			return true
		}
	}
	return false
}

func libraryLink(imp *ast.LibraryImport, ns *namespace.Namespace) []lsp.LocationLink {
	var matches []*namespace.LibraryEntry
	for key, entry := range ns.Libraries {
		if key.Name == imp.Name {
			matches = append(matches, entry)
		}
	}
	if len(matches) != 1 || matches[0].PythonSource == "" {
		return nil
	}
	r := lsp.Range{}
	return []lsp.LocationLink{{
		OriginSelectionRange: refRange(token.RangeFromToken(imp.NameToken)),
		TargetURI:            "file://" + matches[0].PythonSource,
		TargetRange:          r,
		TargetSelectionRange: r,
	}}
}

func resourceLink(imp *ast.ResourceImport, ns *namespace.Namespace) []lsp.LocationLink {
	var matches []*namespace.ResourceEntry
	for key, entry := range ns.Resources {
		if key.Name == imp.Path {
			matches = append(matches, entry)
		}
	}
	if len(matches) != 1 {
		return nil
	}
	r := lsp.Range{}
	return []lsp.LocationLink{{
		OriginSelectionRange: refRange(token.RangeFromToken(imp.PathToken)),
		TargetURI:            "file://" + matches[0].Source,
		TargetRange:          r,
		TargetSelectionRange: r,
	}}
}

func refRange(r token.Range) *lsp.Range {
	wr := lsp.FromRange(r)
	return &wr
}
