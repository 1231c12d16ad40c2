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

package finder_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robotcode-go/robotls/finder"
	"github.com/robotcode-go/robotls/kwdoc"
	"github.com/robotcode-go/robotls/namespace"
)

func TestFindKeywordExactMatchCaseInsensitive(t *testing.T) {
	ns := &namespace.Namespace{
		LocalKeywords: []*kwdoc.KeywordDoc{{Name: "My Keyword"}},
	}
	f := finder.New(ns)
	doc := f.FindKeyword("my keyword")
	require.NotNil(t, doc)
	assert.Equal(t, "My Keyword", doc.Name)
	assert.Empty(t, f.Diagnostics)
}

func TestFindKeywordNotFound(t *testing.T) {
	ns := &namespace.Namespace{}
	f := finder.New(ns)
	doc := f.FindKeyword("Missing")
	assert.Nil(t, doc)
	require.Len(t, f.Diagnostics, 1)
	assert.Equal(t, finder.CodeNotFound, f.Diagnostics[0].Code)
}

// namespaceWithLibraries builds a Namespace whose LibraryOrder matches the
// order keys are passed in, the way namespace.Build populates it, so
// hand-built test fixtures exercise the same declaration-order lookup
// path the finder uses against a real Namespace.
func namespaceWithLibraries(keys []namespace.ImportKey, entries []*namespace.LibraryEntry) *namespace.Namespace {
	ns := &namespace.Namespace{Libraries: map[namespace.ImportKey]*namespace.LibraryEntry{}}
	for i, k := range keys {
		ns.Libraries[k] = entries[i]
		ns.LibraryOrder = append(ns.LibraryOrder, k)
	}
	return ns
}

func namespaceWithResources(keys []namespace.ImportKey, entries []*namespace.ResourceEntry) *namespace.Namespace {
	ns := &namespace.Namespace{Resources: map[namespace.ImportKey]*namespace.ResourceEntry{}}
	for i, k := range keys {
		ns.Resources[k] = entries[i]
		ns.ResourceOrder = append(ns.ResourceOrder, k)
	}
	return ns
}

func TestFindKeywordLocalShadowsLibrary(t *testing.T) {
	ns := namespaceWithLibraries(
		[]namespace.ImportKey{{Name: "BuiltIn"}},
		[]*namespace.LibraryEntry{{ImportName: "BuiltIn", Keywords: []*kwdoc.KeywordDoc{{Name: "Log", LibName: "BuiltIn"}}}},
	)
	ns.LocalKeywords = []*kwdoc.KeywordDoc{{Name: "Log", Source: "suite.robot"}}
	f := finder.New(ns)
	doc := f.FindKeyword("Log")
	require.NotNil(t, doc)
	assert.Equal(t, "suite.robot", doc.Source)
}

func TestFindKeywordAmbiguousAcrossScopesKeepsFirst(t *testing.T) {
	ns := namespaceWithResources(
		[]namespace.ImportKey{{Name: "r1.resource"}, {Name: "r2.resource"}},
		[]*namespace.ResourceEntry{
			{Keywords: []*kwdoc.KeywordDoc{{Name: "Shared", Source: "r1.resource"}}},
			{Keywords: []*kwdoc.KeywordDoc{{Name: "Shared", Source: "r2.resource"}}},
		},
	)
	f := finder.New(ns)
	doc := f.FindKeyword("Shared")
	require.NotNil(t, doc)
	require.Len(t, f.Diagnostics, 1)
	assert.Equal(t, finder.CodeMultiple, f.Diagnostics[0].Code)
	assert.Equal(t, "r1.resource", doc.Source, "first-declared scope wins despite the ambiguity diagnostic")
}

func TestFindKeywordEmbeddedArgumentMatch(t *testing.T) {
	ns := &namespace.Namespace{
		LocalKeywords: []*kwdoc.KeywordDoc{{Name: "I click ${button}"}},
	}
	f := finder.New(ns)
	doc := f.FindKeyword("I click OK")
	require.NotNil(t, doc)
	assert.Equal(t, "I click ${button}", doc.Name)
}

func TestFindKeywordQualifiedRestrictsScope(t *testing.T) {
	ns := namespaceWithLibraries(
		[]namespace.ImportKey{{Name: "MyLib"}, {Name: "OtherLib"}},
		[]*namespace.LibraryEntry{
			{ImportName: "MyLib", Keywords: []*kwdoc.KeywordDoc{{Name: "Do Thing", LibName: "MyLib"}}},
			{ImportName: "OtherLib", Keywords: []*kwdoc.KeywordDoc{{Name: "Do Thing", LibName: "OtherLib"}}},
		},
	)
	f := finder.New(ns)
	doc := f.FindKeyword("MyLib.Do Thing")
	require.NotNil(t, doc)
	assert.Equal(t, "MyLib", doc.LibName)
	assert.Empty(t, f.Diagnostics)
}

// FindKeyword is idempotent on an immutable Namespace: repeated lookups
// return the same KeywordDoc identity, not a fresh copy.
func TestFindKeywordIsIdempotent(t *testing.T) {
	ns := &namespace.Namespace{
		LocalKeywords: []*kwdoc.KeywordDoc{{Name: "My Keyword"}},
	}
	f := finder.New(ns)
	first := f.FindKeyword("My Keyword")
	second := f.FindKeyword("My Keyword")
	require.NotNil(t, first)
	assert.Same(t, first, second)
}

func TestFindKeywordEmptyNameReturnsNil(t *testing.T) {
	f := finder.New(&namespace.Namespace{})
	assert.Nil(t, f.FindKeyword(""))
	assert.Empty(t, f.Diagnostics)
}

func TestResetClearsDiagnostics(t *testing.T) {
	ns := &namespace.Namespace{}
	f := finder.New(ns)
	f.FindKeyword("Missing")
	require.NotEmpty(t, f.Diagnostics)
	f.Reset()
	assert.Empty(t, f.Diagnostics)
}
