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

package namespace

import (
	"strings"

	"github.com/robotcode-go/robotls/ast"
	"github.com/robotcode-go/robotls/kwdoc"
)

// Namespace aggregates one document's resolved imports and local keywords
// into the shape KeywordFinder looks keywords up against.
type Namespace struct {
	DocumentURI   string
	DocumentLines []string

	Libraries map[ImportKey]*LibraryEntry
	Resources map[ImportKey]*ResourceEntry

	// LibraryOrder and ResourceOrder record the declaration order of the
	// Libraries/Resources map keys. Map iteration order is randomized in
	// Go, but keyword resolution depends on declaration order, so every
	// reader of these maps must walk them through these slices rather
	// than ranging over the maps directly.
	LibraryOrder  []ImportKey
	ResourceOrder []ImportKey

	LocalKeywords []*kwdoc.KeywordDoc

	// ImportErrors collects failures encountered resolving the document's
	// own Library/Resource settings, keyed by the statement's line number,
	// independent of whether any keyword from that import is ever called.
	ImportErrors map[int][]kwdoc.ImportError

	builtinImported bool
}

// Build resolves every Library and Resource setting in file, in
// declaration order, and collects file's own Keywords as local keywords.
// Call Finish once Build returns to implicitly import BuiltIn if the
// document didn't import it explicitly.
func Build(file *ast.File, libs LibraryImporter, resources ResourceImporter) *Namespace {
	ns := &Namespace{
		DocumentURI:  file.Path,
		Libraries:    map[ImportKey]*LibraryEntry{},
		Resources:    map[ImportKey]*ResourceEntry{},
		ImportErrors: map[int][]kwdoc.ImportError{},
	}

	for _, lib := range file.Settings {
		key := ImportKey{Name: lib.Name, Args: strings.Join(lib.Args, "\x00"), Alias: lib.Alias}
		entry, ierr := libs.ImportLibrary(lib.Name, lib.Args, lib.Alias)
		if ierr != nil {
			line := int(lib.NameToken.Range.Start.Line)
			ns.ImportErrors[line] = append(ns.ImportErrors[line], *ierr)
			continue
		}
		ns.Libraries[key] = entry
		ns.LibraryOrder = append(ns.LibraryOrder, key)
		if strings.EqualFold(lib.Name, BuiltinLibraryName) {
			ns.builtinImported = true
		}
	}

	for _, res := range file.Resources {
		key := ImportKey{Name: res.Path}
		entry, ierr := resources.ImportResource(res.Path)
		if ierr != nil {
			line := int(res.PathToken.Range.Start.Line)
			ns.ImportErrors[line] = append(ns.ImportErrors[line], *ierr)
			continue
		}
		ns.Resources[key] = entry
		ns.ResourceOrder = append(ns.ResourceOrder, key)
	}

	for _, kw := range file.Keywords {
		ns.LocalKeywords = append(ns.LocalKeywords, keywordDocFromAST(kw, file.Path))
	}

	return ns
}

// Finish appends an implicit BuiltIn library entry if the document didn't
// already import one explicitly, then returns ns for chaining. This
// enforces the "BuiltIn implicitly imported last" resolution-order rule at
// construction time rather than on every lookup.
func (ns *Namespace) Finish(libs LibraryImporter) *Namespace {
	if ns.builtinImported {
		return ns
	}
	entry, ierr := libs.ImportLibrary(BuiltinLibraryName, nil, "")
	if ierr != nil {
		return ns
	}
	key := ImportKey{Name: BuiltinLibraryName}
	ns.Libraries[key] = entry
	ns.LibraryOrder = append(ns.LibraryOrder, key)
	ns.builtinImported = true
	return ns
}
