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

package ast

import (
	"fmt"

	"github.com/robotcode-go/robotls/token"
)

// Visit invokes visitor for all the children of the supplied node, in
// document order. Dispatch is a plain type switch over the tagged variant,
// never runtime name reflection, per the analyzer's "dispatch by node
// kind" design.
func Visit(node Node, visitor func(Node)) {
	switch n := node.(type) {
	case *File:
		for _, c := range n.Children() {
			visitor(c)
		}
	case *TestCase:
		for _, c := range n.Body {
			visitor(c)
		}
	case *Keyword:
		if n.Arguments != nil {
			visitor(n.Arguments)
		}
		for _, c := range n.Body {
			visitor(c)
		}
	case *Arguments, *KeywordCall, *Fixture, *Template, *TestTemplate,
		*LibraryImport, *ResourceImport:
		// Leaves for the purposes of traversal: their data lives in
		// fields, not child Nodes.
	default:
		panic(fmt.Errorf("ast: unsupported node type %T", n))
	}
}

// Walk performs a depth-first pre-order traversal of node, invoking visitor
// for node itself and then recursively for every descendant.
func Walk(node Node, visitor func(Node)) {
	visitor(node)
	Visit(node, func(c Node) { Walk(c, visitor) })
}

// InnermostAt returns every node on the path from root to the innermost
// node whose Range contains position, in outside-in order (root first,
// innermost last). It returns an empty slice if no node contains position.
func InnermostAt(root Node, position token.Position) []Node {
	if !root.Range().Contains(position, true) {
		return nil
	}
	path := []Node{root}
	Visit(root, func(c Node) {
		if sub := InnermostAt(c, position); len(sub) > 0 {
			path = append(path, sub...)
		}
	})
	return path
}
