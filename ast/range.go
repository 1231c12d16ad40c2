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

import "github.com/robotcode-go/robotls/token"

// RangeFromNode returns the range a node declares for itself.
func RangeFromNode(n Node) token.Range { return n.Range() }

// RangeFromNodeOrToken prefers the token's own range when t is non-zero,
// falling back to n's declared range otherwise. Diagnostics anchor to the
// narrowest range available so editors underline just the offending token,
// not its whole enclosing statement.
func RangeFromNodeOrToken(n Node, t token.Token) token.Range {
	if t.Value != "" || t.Range.Start != (token.Position{}) {
		return token.RangeFromToken(t)
	}
	return RangeFromNode(n)
}
