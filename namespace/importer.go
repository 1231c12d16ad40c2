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
	"os"
	"path/filepath"
	"sync"

	"github.com/robotcode-go/robotls/ast"
	"github.com/robotcode-go/robotls/kwdoc"
)

// LibraryImporter resolves a `Library` setting to its keywords. Library
// documentation comes from outside this module; the core never inspects
// library source itself.
type LibraryImporter interface {
	ImportLibrary(name string, args []string, alias string) (*LibraryEntry, *kwdoc.ImportError)
}

// ResourceImporter resolves a `Resource` setting to its flattened
// keywords.
type ResourceImporter interface {
	ImportResource(path string) (*ResourceEntry, *kwdoc.ImportError)
}

// FileResourceImporter resolves Resource imports by parsing `.resource`
// files from disk relative to a workspace root, caching fully-resolved
// entries in an arena keyed by canonical path, with a per-traversal
// visited set breaking import cycles. The same FileResourceImporter
// should be shared across
// every document in one analysis pass so resources imported by more than
// one suite are parsed once.
type FileResourceImporter struct {
	Root string

	mu    sync.Mutex
	arena map[string]*ResourceEntry
}

// NewFileResourceImporter creates an importer rooted at root, used to
// resolve relative Resource paths that aren't already absolute.
func NewFileResourceImporter(root string) *FileResourceImporter {
	return &FileResourceImporter{Root: root, arena: map[string]*ResourceEntry{}}
}

// ImportResource implements ResourceImporter. It is safe for concurrent
// use: namespace construction for many documents may share one importer,
// and resolution holds the importer's lock for the duration of the
// import.
func (fi *FileResourceImporter) ImportResource(path string) (*ResourceEntry, *kwdoc.ImportError) {
	fi.mu.Lock()
	defer fi.mu.Unlock()
	return fi.resolve(path, fi.Root, map[string]bool{})
}

func (fi *FileResourceImporter) resolve(path, fromDir string, visiting map[string]bool) (*ResourceEntry, *kwdoc.ImportError) {
	if fi.arena == nil {
		fi.arena = map[string]*ResourceEntry{}
	}
	canon := path
	if !filepath.IsAbs(canon) {
		canon = filepath.Join(fromDir, canon)
	}
	canon = filepath.Clean(canon)

	if e, ok := fi.arena[canon]; ok {
		return e, nil
	}
	if visiting[canon] {
		// Cyclic re-entry: return the in-progress, still-empty entry
		// rather than recursing again. A later pass resolves through
		// the fully-built entry once the arena is populated.
		return &ResourceEntry{ImportName: path, Source: canon}, nil
	}
	visiting[canon] = true
	defer delete(visiting, canon)

	data, err := os.ReadFile(canon)
	if err != nil {
		return nil, &kwdoc.ImportError{Source: canon, LineNo: -1, Message: err.Error()}
	}

	file, parseErrs := ast.ParseSource(canon, string(data))
	entry := &ResourceEntry{ImportName: path, Source: canon}

	var inherited []kwdoc.ImportError
	for _, e := range parseErrs {
		inherited = append(inherited, kwdoc.ImportError{Source: canon, LineNo: -1, Message: e.Error()})
	}

	for _, kw := range file.Keywords {
		entry.Keywords = append(entry.Keywords, keywordDocFromAST(kw, canon))
	}

	nestedDir := filepath.Dir(canon)
	for _, imp := range file.Resources {
		nested, ierr := fi.resolve(imp.Path, nestedDir, visiting)
		if ierr != nil {
			inherited = append(inherited, *ierr)
			continue
		}
		for _, kw := range nested.Keywords {
			k := *kw
			entry.Keywords = append(entry.Keywords, &k)
		}
	}

	// Every keyword this entry exposes inherits the import's own
	// failures, so that calling any of them surfaces the failure on
	// first use rather than only once at the import statement.
	if len(inherited) > 0 {
		for _, kw := range entry.Keywords {
			kw.Errors = append(append([]kwdoc.ImportError{}, kw.Errors...), inherited...)
		}
	}

	fi.arena[canon] = entry
	return entry, nil
}

func keywordDocFromAST(kw *ast.Keyword, source string) *kwdoc.KeywordDoc {
	doc := &kwdoc.KeywordDoc{
		Name:    kw.Name,
		Source:  source,
		LineNo:  int(kw.NameToken.Range.Start.Line),
	}
	if kw.Arguments != nil {
		doc.Arguments = argSpecFromSpecs(kw.Arguments.Specs)
	}
	return doc
}
