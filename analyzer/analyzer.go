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

// Package analyzer walks a parsed test-suite tree and, at every keyword
// invocation, resolves the keyword, validates its arguments, and emits
// diagnostics. It also interprets BuiltIn's "run keyword" family as
// recursive keyword-call sequences.
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	pkgerrors "github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/robotcode-go/robotls/args"
	"github.com/robotcode-go/robotls/ast"
	"github.com/robotcode-go/robotls/finder"
	"github.com/robotcode-go/robotls/kwdoc"
	"github.com/robotcode-go/robotls/logx"
	"github.com/robotcode-go/robotls/lsp"
	"github.com/robotcode-go/robotls/namespace"
	"github.com/robotcode-go/robotls/suppress"
	"github.com/robotcode-go/robotls/token"
)

// slowAnalysisThreshold is the per-file walk duration above which
// AnalyzeWithLogger logs a warning. The core imposes no timeout of its
// own; this is purely an operational signal for whoever is driving the
// outer LSP request's own budget.
const slowAnalysisThreshold = 200 * time.Millisecond

// Analyzer walks one file's AST against one Namespace, accumulating
// diagnostics. A fresh Analyzer must be used for each Analyze call:
// diagnostics are append-only for the lifetime of one invocation, and
// concurrent invocations must each own their own Analyzer.
type Analyzer struct {
	ns      *namespace.Namespace
	finder  *finder.Finder
	suppr   *suppress.Scanner
	results []lsp.Diagnostic
	depth   int // number of enclosing TestCase/Keyword blocks
}

// Analyze runs the visitor over file using ns, returning diagnostics in
// source traversal order. It returns (nil, ctx.Err()) if ctx is cancelled
// before or during the walk, discarding any partial diagnostics. It never
// logs; callers that want the slow-analysis warning line use
// AnalyzeWithLogger instead.
func Analyze(ctx context.Context, file *ast.File, ns *namespace.Namespace) ([]lsp.Diagnostic, error) {
	return AnalyzeWithLogger(ctx, file, ns, logx.Nop())
}

// AnalyzeWithLogger is Analyze plus one operational log line: if the walk
// takes longer than slowAnalysisThreshold, it logs a Warn naming the file,
// the actual duration, and the threshold. This is the only thing the
// Analyzer ever logs through log; every keyword-resolution outcome is
// still reported as a Diagnostic, never as a log line.
func AnalyzeWithLogger(ctx context.Context, file *ast.File, ns *namespace.Namespace, log *logx.Logger) ([]lsp.Diagnostic, error) {
	start := time.Now()
	diags, err := analyze(ctx, file, ns)
	if err == nil {
		if elapsed := time.Since(start); elapsed > slowAnalysisThreshold {
			log.Warn("analysis took longer than expected",
				zap.String("file", ns.DocumentURI),
				zap.Duration("took", elapsed),
				zap.Duration("expected", slowAnalysisThreshold))
		}
	}
	return diags, err
}

func analyze(ctx context.Context, file *ast.File, ns *namespace.Namespace) ([]lsp.Diagnostic, error) {
	a := &Analyzer{
		ns:     ns,
		finder: finder.New(ns),
		suppr:  suppress.New(ns.DocumentLines),
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	importLines := make([]int, 0, len(ns.ImportErrors))
	for line := range ns.ImportErrors {
		importLines = append(importLines, line)
	}
	sort.Ints(importLines)
	for _, line := range importLines {
		for _, ie := range ns.ImportErrors[line] {
			a.appendAt(token.Range{Start: token.Position{Line: uint32(line)}, End: token.Position{Line: uint32(line)}},
				lsp.Error, "KeywordError", fmt.Sprintf("Error in library/resource import: %s", ie.Message))
		}
	}
	if tt := file.TestTemplate; tt != nil {
		a.analyzeCall(tt.Name, tt, tt.NameToken, nil, true, true)
	}
	for _, tc := range file.TestCases {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		a.visitTestCase(tc)
	}
	for _, kw := range file.Keywords {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		a.visitKeyword(kw)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return a.results, nil
}

func (a *Analyzer) appendAt(r token.Range, sev lsp.Severity, code, message string) {
	if a.suppr.Suppressed(r) {
		return
	}
	a.results = append(a.results, lsp.New(r, message, sev, code))
}

func (a *Analyzer) appendTagged(r token.Range, sev lsp.Severity, code, message string, tag lsp.Tag) {
	if a.suppr.Suppressed(r) {
		return
	}
	d := lsp.New(r, message, sev, code)
	d.Tags = []lsp.Tag{tag}
	a.results = append(a.results, d)
}

func (a *Analyzer) visitTestCase(tc *ast.TestCase) {
	if tc.Name == "" {
		a.appendAt(tokenRange(tc.NameToken), lsp.Error, "KeywordError", "Test case name cannot be empty.")
	}
	a.depth++
	defer func() { a.depth-- }()
	for _, n := range tc.Body {
		a.visitBodyNode(n)
	}
}

func (a *Analyzer) visitKeyword(kw *ast.Keyword) {
	if kw.Name == "" {
		a.appendAt(tokenRange(kw.NameToken), lsp.Error, "KeywordError", "Keyword name cannot be empty.")
	}
	if _, embedded := (&kwdoc.KeywordDoc{Name: kw.Name}).EmbeddedPattern(); embedded && kw.Arguments != nil && len(kw.Arguments.Specs) > 0 {
		a.appendAt(tokenRange(kw.NameToken), lsp.Error, "KeywordError", "Keyword cannot have both normal and embedded arguments.")
	}
	a.depth++
	defer func() { a.depth-- }()
	for _, n := range kw.Body {
		a.visitBodyNode(n)
	}
}

func (a *Analyzer) visitBodyNode(n ast.Node) {
	switch v := n.(type) {
	case *ast.KeywordCall:
		a.visitKeywordCall(v)
	case *ast.Fixture:
		a.analyzeCall(v.Name, v, v.NameToken, v.Arguments, false, true)
	case *ast.Template:
		a.analyzeCall(v.Name, v, v.NameToken, nil, true, true)
	case *ast.TestTemplate:
		a.analyzeCall(v.Name, v, v.NameToken, nil, true, true)
	}
}

func (a *Analyzer) visitKeywordCall(c *ast.KeywordCall) {
	if len(c.Assign) > 0 && c.Keyword == "" {
		assignTok := c.Assign[len(c.Assign)-1].Token
		a.appendAt(tokenRange(assignTok), lsp.Error, "KeywordError", "Keyword name cannot be empty.")
	} else {
		a.analyzeCall(c.Keyword, c, c.KeywordToken, c.Arguments, false, true)
	}
	if a.depth == 0 {
		a.appendTagged(c.Range(), lsp.Hint, "KeywordError", "Code is unreachable.", lsp.Unnecessary)
	}
}

// analyzeCall resolves name against the Finder, validates arguments
// unless skipArgValidation (set for Template/TestTemplate name
// declarations), and recurses through the run-keyword state machine when
// analyseNested and the resolved keyword belongs to a run-keyword family.
func (a *Analyzer) analyzeCall(name string, node ast.Node, kwToken token.Token, argTokens []token.Token, skipArgValidation, analyseNested bool) {
	if token.IsVariableToken(kwToken) {
		return
	}

	anchor := ast.RangeFromNodeOrToken(node, kwToken)

	doc := a.finder.FindKeyword(name)
	for _, d := range a.finder.Diagnostics {
		a.appendAt(anchor, lsp.Error, d.Code, d.Message)
	}
	a.finder.Reset()

	if doc == nil {
		return
	}

	if len(doc.Errors) > 0 {
		d := lsp.New(anchor, fmt.Sprintf("Keyword '%s' is not valid: resolved via an import with %d error(s).", name, len(doc.Errors)), lsp.Error, "KeywordError")
		for _, ie := range doc.Errors {
			d.RelatedInformation = append(d.RelatedInformation, lsp.RelatedInformation{
				Location: lsp.Location{URI: fileURI(ie.Source), Range: lsp.Range{}},
				Message:  ie.Message,
			})
		}
		if !a.suppr.Suppressed(anchor) {
			a.results = append(a.results, d)
		}
	}

	if doc.IsDeprecated {
		a.appendTagged(anchor, lsp.Hint, "", fmt.Sprintf("Keyword '%s' is deprecated. %s", name, doc.DeprecatedMessage), lsp.Deprecated)
	}

	if doc.IsErrorHandler {
		a.appendAt(anchor, lsp.Error, "KeywordError", fmt.Sprintf("Keyword '%s' is not supported: %s", name, doc.ErrorHandlerMessage))
	}

	if !skipArgValidation {
		values := make([]string, len(argTokens))
		for i, t := range argTokens {
			values[i] = t.Value
		}
		if err := resolveArgs(doc.Arguments, values); err != nil {
			var ae *args.Error
			code := "ArgumentError"
			if errors.As(err, &ae) {
				code = string(ae.Kind)
			}
			a.appendAt(argSpanRange(kwToken, argTokens), lsp.Error, code, err.Error())
		}
	}

	if analyseNested && doc.RunKeywordFamily != kwdoc.None {
		a.runNestedFamily(node, doc, argTokens)
	}
}

// resolveArgs wraps args.Resolve, recovering any panic raised while
// resolving and returning it as an ordinary error, so the caller reports
// it as one Error diagnostic instead of letting it propagate. Cancellation
// is not handled here: Analyze checks ctx between nodes.
func resolveArgs(spec *kwdoc.ArgSpec, values []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = pkgerrors.Errorf("internal error resolving arguments: %v", r)
		}
	}()
	return args.Resolve(spec, values, args.Options{ResolveNamed: true})
}

func (a *Analyzer) runNestedFamily(node ast.Node, doc *kwdoc.KeywordDoc, argTokens []token.Token) {
	switch doc.RunKeywordFamily {
	case kwdoc.RunKeyword:
		a.runKeyword(node, argTokens)
	case kwdoc.RunKeywordWithCondition:
		a.runKeywordWithCondition(node, argTokens, int(doc.CondArgCount))
	case kwdoc.RunKeywords:
		a.runKeywords(node, argTokens)
	case kwdoc.RunKeywordIf:
		a.runKeywordIf(node, argTokens)
	}
}

func (a *Analyzer) runKeyword(node ast.Node, argTokens []token.Token) {
	if len(argTokens) == 0 || token.IsVariableToken(argTokens[0]) {
		return
	}
	a.analyzeCall(token.Unescape(argTokens[0].Value), node, argTokens[0], argTokens[1:], false, true)
}

func (a *Analyzer) runKeywordWithCondition(node ast.Node, argTokens []token.Token, condArgCount int) {
	if len(argTokens) <= condArgCount || token.IsVariableToken(argTokens[condArgCount]) {
		return
	}
	a.analyzeCall(token.Unescape(argTokens[condArgCount].Value), node, argTokens[condArgCount], argTokens[condArgCount+1:], false, true)
}

func (a *Analyzer) runKeywords(node ast.Node, argTokens []token.Token) {
	hasAnd := false
	for _, t := range argTokens {
		if t.Value == "AND" {
			hasAnd = true
			break
		}
	}
	if !hasAnd {
		for _, t := range argTokens {
			if token.IsVariableToken(t) {
				continue
			}
			a.analyzeCall(token.Unescape(t.Value), node, t, nil, false, true)
		}
		return
	}

	start := 0
	for i := 0; i <= len(argTokens); i++ {
		if i < len(argTokens) && argTokens[i].Value != "AND" {
			continue
		}
		segment := argTokens[start:i]
		if len(segment) == 0 {
			a.appendAt(tokenRange(argTokens[start0(i, len(argTokens))]), lsp.Error, "KeywordError", "Keyword name cannot be empty.")
		} else if !token.IsVariableToken(segment[0]) {
			a.analyzeCall(token.Unescape(segment[0].Value), node, segment[0], segment[1:], false, true)
		}
		start = i + 1
	}
}

// start0 picks a token index to anchor a stray-AND diagnostic at, when
// the empty segment has no token of its own (a leading or doubled AND).
func start0(i, n int) int {
	if i < n {
		return i
	}
	if n == 0 {
		return 0
	}
	return n - 1
}

func (a *Analyzer) runKeywordIf(node ast.Node, argTokens []token.Token) {
	if len(argTokens) < 2 {
		return
	}
	pos := 1
	for {
		kwTok := argTokens[pos]
		end := pos + 1
		for end < len(argTokens) && argTokens[end].Value != "ELSE" && argTokens[end].Value != "ELSE IF" {
			end++
		}
		if !token.IsVariableToken(kwTok) {
			a.analyzeCall(token.Unescape(kwTok.Value), node, kwTok, argTokens[pos+1:end], false, true)
		}
		if end == len(argTokens) {
			return
		}
		if argTokens[end].Value == "ELSE" {
			elsePos := end + 1
			if elsePos >= len(argTokens) {
				return
			}
			elseTok := argTokens[elsePos]
			if !token.IsVariableToken(elseTok) {
				a.analyzeCall(token.Unescape(elseTok.Value), node, elseTok, argTokens[elsePos+1:], false, true)
			}
			return
		}
		// "ELSE IF": condition at end+1, keyword at end+2.
		pos = end + 2
		if pos >= len(argTokens) {
			return
		}
	}
}

func tokenRange(t token.Token) token.Range { return token.RangeFromToken(t) }

func argSpanRange(kwToken token.Token, argTokens []token.Token) token.Range {
	start := token.RangeFromToken(kwToken)
	if len(argTokens) == 0 {
		return start
	}
	end := token.RangeFromToken(argTokens[len(argTokens)-1])
	return token.Range{Start: start.Start, End: end.End}
}

func fileURI(path string) string {
	if path == "" {
		return ""
	}
	return "file://" + path
}
