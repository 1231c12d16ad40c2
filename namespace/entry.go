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

// Package namespace aggregates the library imports, resource imports, and
// local keywords of one Robot Framework suite or resource document into a
// lookup-ready Namespace.
package namespace

import "github.com/robotcode-go/robotls/kwdoc"

// ImportKey identifies one import declaration. Two imports differing only
// in Alias are distinct entries, which is why Alias is part of the key
// rather than just decoration on the value.
type ImportKey struct {
	Name  string
	Args  string // arguments joined into one comparable string
	Alias string
}

// LibraryEntry is one resolved `Library` import.
type LibraryEntry struct {
	ImportName   string
	Args         []string
	Alias        string
	Keywords     []*kwdoc.KeywordDoc
	PythonSource string // "" if the library has no backing source file
}

// ResourceEntry is one resolved `Resource` import. Its Keywords list is
// already flattened: it includes keywords declared directly in the
// resource file and, recursively, every keyword exposed by resources that
// file itself imports.
type ResourceEntry struct {
	ImportName   string
	Alias        string
	Keywords     []*kwdoc.KeywordDoc
	PythonSource string // always "" for resources; kept for shape parity with LibraryEntry
	// Source is the cleaned path this entry was parsed from: the import
	// path joined onto the importing directory when it is relative, so it
	// is relative itself when the importer's Root is.
	Source string
}
