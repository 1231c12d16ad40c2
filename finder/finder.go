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

// Package finder implements keyword lookup: resolving a (possibly
// library-qualified) name to a kwdoc.KeywordDoc across a Namespace's local
// keywords, imported resources, and imported libraries, with Robot
// Framework's shadowing precedence and embedded-argument matching.
package finder

import (
	"strings"

	"github.com/robotcode-go/robotls/kwdoc"
	"github.com/robotcode-go/robotls/namespace"
)

// Diagnostic is a lookup-scoped failure, anchored to a range by the caller
// once FindKeyword returns (the finder itself never sees token ranges).
type Diagnostic struct {
	Code    string
	Message string
}

const (
	CodeMultiple = "KeywordError/multiple"
	CodeNotFound = "KeywordError/not_found"
)

// Finder looks up keywords in one Namespace. Diagnostics accumulates
// across calls to FindKeyword until Reset is called; callers drain it
// after each lookup, matching the "diagnostics buffer reset per call"
// contract.
type Finder struct {
	NS *namespace.Namespace

	Diagnostics []Diagnostic
}

// New creates a Finder bound to ns.
func New(ns *namespace.Namespace) *Finder {
	return &Finder{NS: ns}
}

// Reset clears the accumulated diagnostics, readying the Finder for the
// next lookup.
func (f *Finder) Reset() {
	f.Diagnostics = nil
}

type scope struct {
	name string // "" for the unqualified/local scope
	docs []*kwdoc.KeywordDoc
}

// FindKeyword resolves name against f.NS, applying local → resource →
// library precedence (BuiltIn last), matching case-insensitively or, for
// names with no match, against embedded-argument patterns. It returns the
// first match found in scope order; any later match in a different scope
// is reported as an ambiguity but does not change the result.
func (f *Finder) FindKeyword(name string) *kwdoc.KeywordDoc {
	if name == "" {
		return nil
	}

	qualifier, unqualified, qualified := splitQualified(name)

	scopes := f.scopes()
	if qualified {
		scopes = filterScopes(scopes, qualifier)
		name = unqualified
	}

	var found *kwdoc.KeywordDoc
	for _, sc := range scopes {
		for _, doc := range sc.docs {
			if !matches(doc, name) {
				continue
			}
			if found == nil {
				found = doc
				continue
			}
			if doc != found {
				f.Diagnostics = append(f.Diagnostics, Diagnostic{
					Code:    CodeMultiple,
					Message: "Multiple keywords with name '" + name + "' found. Give the full name of the keyword to differentiate between them.",
				})
			}
		}
	}

	if found == nil {
		f.Diagnostics = append(f.Diagnostics, Diagnostic{
			Code:    CodeNotFound,
			Message: "No keyword with name '" + name + "' found.",
		})
	}
	return found
}

// scopes returns every lookup scope in resolution order:
// local keywords, then resources in declaration order, then libraries in
// declaration order (BuiltIn last, enforced by Namespace.Finish appending
// it to LibraryOrder only once every explicit import is in place).
func (f *Finder) scopes() []scope {
	var out []scope
	out = append(out, scope{name: "", docs: f.NS.LocalKeywords})
	for _, key := range f.NS.ResourceOrder {
		entry := f.NS.Resources[key]
		out = append(out, scope{name: resourceScopeName(key, entry.Alias), docs: entry.Keywords})
	}
	for _, key := range f.NS.LibraryOrder {
		entry := f.NS.Libraries[key]
		out = append(out, scope{name: libraryScopeName(key, entry.Alias), docs: entry.Keywords})
	}
	return out
}

func resourceScopeName(key namespace.ImportKey, alias string) string {
	if alias != "" {
		return alias
	}
	return baseName(key.Name)
}

func libraryScopeName(key namespace.ImportKey, alias string) string {
	if alias != "" {
		return alias
	}
	return key.Name
}

func baseName(path string) string {
	i := strings.LastIndexAny(path, "/\\")
	name := path[i+1:]
	if dot := strings.LastIndexByte(name, '.'); dot >= 0 {
		name = name[:dot]
	}
	return name
}

func filterScopes(scopes []scope, qualifier string) []scope {
	var out []scope
	for _, sc := range scopes {
		if sc.name != "" && strings.EqualFold(sc.name, qualifier) {
			out = append(out, sc)
		}
	}
	return out
}

// splitQualified splits a "LibName.Keyword" reference. A name is treated
// as qualified if it contains a '.' that is neither its first nor its last
// character, including a dot inside a variable reference; Robot Framework
// keyword names can themselves contain dots, so any split here is a
// best-effort heuristic on the first dot.
func splitQualified(name string) (qualifier, unqualified string, qualified bool) {
	i := strings.IndexByte(name, '.')
	if i <= 0 || i == len(name)-1 {
		return "", name, false
	}
	return name[:i], name[i+1:], true
}

func matches(doc *kwdoc.KeywordDoc, name string) bool {
	if strings.EqualFold(doc.Name, name) {
		return true
	}
	if pattern, ok := doc.EmbeddedPattern(); ok {
		return pattern.MatchString(name)
	}
	return false
}
