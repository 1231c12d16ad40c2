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

package analyzer_test

import (
	"context"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robotcode-go/robotls/analyzer"
	"github.com/robotcode-go/robotls/ast"
	"github.com/robotcode-go/robotls/kwdoc"
	"github.com/robotcode-go/robotls/lsp"
	"github.com/robotcode-go/robotls/namespace"
	"github.com/robotcode-go/robotls/token"
)

func analyze(t *testing.T, source string) []lsp.Diagnostic {
	t.Helper()
	file, ns := buildFileAndNamespace(t, source)
	diags, err := analyzer.Analyze(context.Background(), file, ns)
	require.NoError(t, err)
	return diags
}

func buildFileAndNamespace(t *testing.T, source string) (*ast.File, *namespace.Namespace) {
	t.Helper()
	file, errs := ast.ParseSource("suite.robot", source)
	require.Empty(t, errs)
	libs := &namespace.BuiltinImporter{}
	ns := namespace.Build(file, libs, &namespace.FileResourceImporter{})
	ns.DocumentLines = splitLines(source)
	ns.Finish(libs)
	return file, ns
}

// cancelAfterContext reports ctx.Err() as nil for the first `after` calls
// and as context.Canceled afterwards, letting a test pin exactly which
// node-boundary check in Analyze observes the cancellation without
// relying on real wall-clock timing.
type cancelAfterContext struct {
	context.Context
	after int
	calls int
}

func (c *cancelAfterContext) Err() error {
	c.calls++
	if c.calls > c.after {
		return context.Canceled
	}
	return nil
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	lines = append(lines, s[start:])
	return lines
}

// An unknown keyword produces exactly one not-found diagnostic.
func TestUnknownKeyword(t *testing.T) {
	diags := analyze(t, "*** Test Cases ***\nTC\n    Unknown Kw    a    b\n")
	require.Len(t, diags, 1)
	assert.Equal(t, "KeywordError/not_found", diags[0].Code)
	assert.Equal(t, lsp.Error, diags[0].Severity)
	assert.Equal(t, "robotcode", diags[0].Source)
}

// Run Keyword If branches are resolved as nested keyword calls.
func TestRunKeywordIfNesting(t *testing.T) {
	diags := analyze(t, "*** Test Cases ***\nTC\n    Run Keyword If    ${x}    Log    hi    ELSE    Unknown Kw\n")
	require.Len(t, diags, 1)
	assert.Equal(t, "KeywordError/not_found", diags[0].Code)
}

// Run Keywords splits its argument list into calls on literal AND.
func TestRunKeywordsWithAnd(t *testing.T) {
	diags := analyze(t, "*** Test Cases ***\nTC\n    Run Keywords    Log    hi    AND    Unknown\n")
	require.Len(t, diags, 1)
	assert.Equal(t, "KeywordError/not_found", diags[0].Code)
}

// A deprecated keyword produces a Hint, never an Error.
func TestDeprecatedKeywordProducesHint(t *testing.T) {
	diags := analyze(t, "*** Test Cases ***\nTC\n    Set Global Variable    ${x}    1\n")
	require.NotEmpty(t, diags)
	var found bool
	for _, d := range diags {
		if d.Severity == lsp.Hint {
			found = true
			assert.Contains(t, d.Message, "Use 'VAR' syntax instead.")
			assert.Contains(t, d.Tags, lsp.Deprecated)
		} else {
			assert.NotEqual(t, lsp.Error, d.Severity, "unexpected error diagnostic: %s", d.Message)
		}
	}
	assert.True(t, found)
}

// The inline pragma suppresses diagnostics on its line.
func TestInlineSuppressionDropsDiagnostic(t *testing.T) {
	suppressed := analyze(t, "*** Test Cases ***\nTC\n    Unknown Kw    # robotcode: ignore\n")
	assert.Empty(t, suppressed)

	notSuppressed := analyze(t, "*** Test Cases ***\nTC\n    Unknown Kw\n")
	assert.NotEmpty(t, notSuppressed)
}

// An assignment with no keyword reports at the ASSIGN token.
func TestEmptyKeywordNameWithAssignment(t *testing.T) {
	diags := analyze(t, "*** Test Cases ***\nTC\n    ${x}=\n")
	require.Len(t, diags, 1)
	assert.Equal(t, lsp.Error, diags[0].Severity)
	assert.Equal(t, "Keyword name cannot be empty.", diags[0].Message)
}

func TestResolvableCallProducesNoDiagnostics(t *testing.T) {
	diags := analyze(t, "*** Test Cases ***\nTC\n    Log    hello\n")
	assert.Empty(t, diags)
}

// Diagnostics come back in non-decreasing source order within one
// visited node. Run Keywords produces one diagnostic per unresolved
// segment; "Zebra Kw" sits before "Aardvark Kw" in the source, so its
// diagnostic must come back first despite sorting after it alphabetically.
// go-cmp's structural diff (rather than testify's reflect-based Equal)
// is what makes the mismatch readable when this regresses: it points at
// the exact differing Range, not just "not equal".
func TestDiagnosticsAreSourceOrdered(t *testing.T) {
	diags := analyze(t, "*** Test Cases ***\nTC\n    Run Keywords    Zebra Kw    AND    Aardvark Kw\n")
	require.Len(t, diags, 2)

	want := []lsp.Diagnostic{diags[0], diags[1]}
	sorted := append([]lsp.Diagnostic(nil), diags...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Range.Start.Line != sorted[j].Range.Start.Line {
			return sorted[i].Range.Start.Line < sorted[j].Range.Start.Line
		}
		return sorted[i].Range.Start.Character < sorted[j].Range.Start.Character
	})
	if diff := cmp.Diff(want, sorted); diff != "" {
		t.Fatalf("diagnostics were not already in non-decreasing source order (-want +sorted):\n%s", diff)
	}
	assert.Less(t, diags[0].Range.Start.Character, diags[1].Range.Start.Character)
}

// Every diagnostic range lies within the analyzed file's
// range.
func TestDiagnosticRangesLieWithinFileRange(t *testing.T) {
	source := "*** Test Cases ***\nTC\n    Run Keywords    Unknown One    AND    Unknown Two\n    Unknown Three\n"
	file, ns := buildFileAndNamespace(t, source)
	diags, err := analyzer.Analyze(context.Background(), file, ns)
	require.NoError(t, err)
	require.NotEmpty(t, diags)

	fr := file.Range()
	for _, d := range diags {
		assert.True(t, fr.Contains(tokenPos(d.Range.Start), true),
			"diagnostic start %+v outside file range %+v", d.Range.Start, fr)
		assert.True(t, fr.Contains(tokenPos(d.Range.End), true),
			"diagnostic end %+v outside file range %+v", d.Range.End, fr)
	}
}

func tokenPos(p lsp.Position) token.Position {
	return token.Position{Line: p.Line, Character: p.Character}
}

// Suppression drops only the diagnostic whose range covers
// the pragma line; diagnostics on unmarked lines remain.
func TestSuppressionDropsOnlyCoveredDiagnostic(t *testing.T) {
	diags := analyze(t, "*** Test Cases ***\nTC\n    Unknown One    # robotcode: ignore\n    Unknown Two\n")
	require.Len(t, diags, 1)
	assert.Equal(t, uint32(3), diags[0].Range.Start.Line)
}

// Deeply nested Run Keyword chains must terminate and resolve cleanly: each
// nested call is handed a strictly shorter argument stream than its caller.
func TestNestedRunKeywordChainsResolve(t *testing.T) {
	diags := analyze(t, "*** Test Cases ***\nTC\n    Run Keyword    Run Keyword    Log    hi\n")
	assert.Empty(t, diags)
}

func TestRunKeywordWithConditionSkipsConditionArgs(t *testing.T) {
	diags := analyze(t, "*** Test Cases ***\nTC\n    Run Keyword And Return If    ${x}    Unknown Kw\n")
	require.Len(t, diags, 1)
	assert.Equal(t, "KeywordError/not_found", diags[0].Code)
}

func TestRunKeywordsStrayLeadingAnd(t *testing.T) {
	diags := analyze(t, "*** Test Cases ***\nTC\n    Run Keywords    AND    Log    hi\n")
	require.Len(t, diags, 1)
	assert.Equal(t, lsp.Error, diags[0].Severity)
	assert.Equal(t, "Keyword name cannot be empty.", diags[0].Message)
}

func TestSuiteLevelTestTemplateIsResolved(t *testing.T) {
	diags := analyze(t, "*** Settings ***\nTest Template    Unknown Kw\n")
	require.Len(t, diags, 1)
	assert.Equal(t, "KeywordError/not_found", diags[0].Code)
}

func TestArgumentBindingFailureUsesKindAsCode(t *testing.T) {
	diags := analyze(t, "*** Test Cases ***\nTC\n    Log\n")
	require.Len(t, diags, 1)
	assert.Equal(t, lsp.Error, diags[0].Severity)
	assert.Equal(t, "MissingArgumentError", diags[0].Code)
}

func TestKeywordWithBothNormalAndEmbeddedArguments(t *testing.T) {
	diags := analyze(t, ""+
		"*** Keywords ***\n"+
		"Add ${count} Items\n"+
		"    [Arguments]    ${count}\n"+
		"    Log    hi\n")
	require.Len(t, diags, 1)
	assert.Equal(t, "Keyword cannot have both normal and embedded arguments.", diags[0].Message)
	assert.Equal(t, lsp.Error, diags[0].Severity)
}

func TestErrorHandlerKeywordProducesError(t *testing.T) {
	file, errs := ast.ParseSource("suite.robot", "*** Test Cases ***\nTC\n    Broken Kw\n")
	require.Empty(t, errs)
	ns := &namespace.Namespace{
		DocumentURI: "suite.robot",
		LocalKeywords: []*kwdoc.KeywordDoc{{
			Name:                "Broken Kw",
			IsErrorHandler:      true,
			ErrorHandlerMessage: "Keyword definition is invalid.",
		}},
	}

	diags, err := analyzer.Analyze(context.Background(), file, ns)
	require.NoError(t, err)
	require.Len(t, diags, 1)
	assert.Equal(t, lsp.Error, diags[0].Severity)
	assert.Contains(t, diags[0].Message, "Keyword definition is invalid.")
}

func TestKeywordImportErrorsSurfaceAsRelatedInformation(t *testing.T) {
	file, errs := ast.ParseSource("suite.robot", "*** Test Cases ***\nTC\n    Imported Kw\n")
	require.Empty(t, errs)
	ns := &namespace.Namespace{
		DocumentURI: "suite.robot",
		LocalKeywords: []*kwdoc.KeywordDoc{{
			Name: "Imported Kw",
			Errors: []kwdoc.ImportError{
				{Source: "/libs/broken.resource", LineNo: 3, Message: "import exploded"},
			},
		}},
	}

	diags, err := analyzer.Analyze(context.Background(), file, ns)
	require.NoError(t, err)
	require.Len(t, diags, 1)
	assert.Equal(t, lsp.Error, diags[0].Severity)
	require.Len(t, diags[0].RelatedInformation, 1)
	assert.Equal(t, "import exploded", diags[0].RelatedInformation[0].Message)
	assert.Equal(t, "file:///libs/broken.resource", diags[0].RelatedInformation[0].Location.URI)
}

// Error taxonomy — Cancelled. A context already cancelled before Analyze
// runs must short-circuit the walk entirely: no diagnostics, just ctx.Err().
func TestAnalyzeReturnsCancelledBeforeWalk(t *testing.T) {
	file, ns := buildFileAndNamespace(t, "*** Test Cases ***\nTC1\n    Unknown Kw\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	diags, err := analyzer.Analyze(ctx, file, ns)
	assert.Nil(t, diags)
	assert.ErrorIs(t, err, context.Canceled)
}

// Error taxonomy — Cancelled, mid-walk. Analyze checks ctx.Err() between
// top-level test cases, so a context that only turns
// cancelled after the first test case's diagnostics are already collected
// must still discard them rather than returning a partial result.
func TestAnalyzeDiscardsPartialResultsOnMidWalkCancellation(t *testing.T) {
	file, ns := buildFileAndNamespace(t, "*** Test Cases ***\nTC1\n    Unknown Kw\nTC2\n    Unknown Kw\n")
	require.Len(t, file.TestCases, 2, "fixture must parse into two separate test cases to exercise the between-node check")

	ctx := &cancelAfterContext{Context: context.Background(), after: 2}

	diags, err := analyzer.Analyze(ctx, file, ns)
	assert.Nil(t, diags, "diagnostics from TC1, visited before cancellation fired, must be discarded")
	assert.ErrorIs(t, err, context.Canceled)
}
