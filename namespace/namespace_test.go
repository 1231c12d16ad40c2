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

package namespace_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robotcode-go/robotls/ast"
	"github.com/robotcode-go/robotls/kwdoc"
	"github.com/robotcode-go/robotls/namespace"
)

type stubLibraries map[string]*namespace.LibraryEntry

func (s stubLibraries) ImportLibrary(name string, libArgs []string, alias string) (*namespace.LibraryEntry, *kwdoc.ImportError) {
	if e, ok := s[name]; ok {
		return e, nil
	}
	return nil, &kwdoc.ImportError{Message: "unknown library " + name}
}

func TestBuildCollectsLocalKeywordsAndLibraries(t *testing.T) {
	file, errs := ast.ParseSource("suite.robot", ""+
		"*** Settings ***\n"+
		"Library    Collections\n"+
		"\n"+
		"*** Keywords ***\n"+
		"My Keyword\n"+
		"    Log    hi\n")
	require.Empty(t, errs)

	libs := stubLibraries{"Collections": {ImportName: "Collections"}}
	ns := namespace.Build(file, libs, &namespace.FileResourceImporter{})
	require.Len(t, ns.LocalKeywords, 1)
	assert.Equal(t, "My Keyword", ns.LocalKeywords[0].Name)
	assert.Len(t, ns.Libraries, 1)
}

func TestBuildRecordsImportErrorByLine(t *testing.T) {
	file, errs := ast.ParseSource("suite.robot", ""+
		"*** Settings ***\n"+
		"Library    Nonexistent\n")
	require.Empty(t, errs)

	ns := namespace.Build(file, stubLibraries{}, &namespace.FileResourceImporter{})
	assert.Empty(t, ns.Libraries)
	assert.NotEmpty(t, ns.ImportErrors)
}

func TestFinishAppendsImplicitBuiltin(t *testing.T) {
	file, errs := ast.ParseSource("suite.robot", "*** Test Cases ***\nTC\n    Log    hi\n")
	require.Empty(t, errs)

	libs := stubLibraries{namespace.BuiltinLibraryName: {ImportName: namespace.BuiltinLibraryName}}
	ns := namespace.Build(file, libs, &namespace.FileResourceImporter{})
	assert.Empty(t, ns.Libraries)

	ns.Finish(libs)
	assert.Len(t, ns.Libraries, 1)
}

func TestFinishSkipsExplicitBuiltin(t *testing.T) {
	file, errs := ast.ParseSource("suite.robot", ""+
		"*** Settings ***\n"+
		"Library    BuiltIn\n")
	require.Empty(t, errs)

	calls := 0
	libs := countingLibraries{stubLibraries{namespace.BuiltinLibraryName: {ImportName: namespace.BuiltinLibraryName}}, &calls}
	ns := namespace.Build(file, libs, &namespace.FileResourceImporter{})
	ns.Finish(libs)
	assert.Equal(t, 1, calls)
}

type countingLibraries struct {
	stubLibraries
	calls *int
}

func (c countingLibraries) ImportLibrary(name string, libArgs []string, alias string) (*namespace.LibraryEntry, *kwdoc.ImportError) {
	*c.calls++
	return c.stubLibraries.ImportLibrary(name, libArgs, alias)
}
