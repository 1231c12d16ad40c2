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

	"github.com/robotcode-go/robotls/kwdoc"
)

// argSpecFromSpecs turns a Keyword's raw `[Arguments]` specifiers
// (`${x}`, `${y}=1`, `@{rest}`, `&{kwargs}`) into a kwdoc.ArgSpec.
func argSpecFromSpecs(specs []string) *kwdoc.ArgSpec {
	spec := &kwdoc.ArgSpec{}
	for _, raw := range specs {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		switch raw[0] {
		case '@':
			spec.VarPositional = variableName(raw)
		case '&':
			spec.VarNamed = variableName(raw)
		default:
			name := raw
			hasDefault := false
			if eq := strings.IndexByte(raw, '='); eq >= 0 {
				name = raw[:eq]
				hasDefault = true
			}
			spec.Positional = append(spec.Positional, kwdoc.Param{
				Name:       variableName(name),
				HasDefault: hasDefault,
			})
		}
	}
	return spec
}

// variableName strips the `${`/`@{`/`&{`/`%{` ... `}` decoration from a
// variable reference, returning just the inner name.
func variableName(v string) string {
	v = strings.TrimSpace(v)
	if len(v) >= 3 && v[1] == '{' && strings.HasSuffix(v, "}") {
		return v[2 : len(v)-1]
	}
	return v
}
