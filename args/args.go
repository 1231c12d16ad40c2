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

// Package args validates a keyword call's argument-value list against a
// KeywordDoc's declared ArgSpec.
package args

import (
	"fmt"
	"strings"

	"github.com/robotcode-go/robotls/kwdoc"
)

// Options controls how far name/positional splitting of a call's argument
// list applies.
type Options struct {
	// ResolveVariablesUntil, if non-nil, is the index of the first
	// argument that may use `name=value` syntax as a named-argument
	// binding; arguments before that index are always positional.
	// Arguments at or after that index are free to use named-argument
	// syntax. This mirrors Robot
	// Framework's rule that named arguments can't be mixed positionally
	// before a variable-valued positional argument, because the name
	// can't be told apart from a literal value containing "=" once
	// variables are in play.
	ResolveVariablesUntil *int
	// ResolveNamed disables named-argument splitting entirely when
	// false (used for library keywords whose argument spec is unknown
	// in enough detail to support it safely).
	ResolveNamed bool
}

// Kind identifies the category of an argument-binding failure. It is used
// verbatim as the Diagnostic's code.
type Kind string

const (
	MissingArgument            Kind = "MissingArgumentError"
	UnknownNamedArgument       Kind = "UnknownArgumentError"
	DuplicateNamedArgument     Kind = "DuplicateArgumentError"
	TooManyPositionalArguments Kind = "TooManyPositionalArgumentsError"
)

// Error reports a single argument-binding failure. The argument resolver
// always fails with exactly one Error per call, never a collection: the
// first rule violated wins.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

// Resolve validates values (the raw ARGUMENT-token text of one keyword
// call, in call order) against spec, honouring opts. It returns nil if
// the call binds cleanly.
func Resolve(spec *kwdoc.ArgSpec, values []string, opts Options) error {
	if spec == nil {
		return nil
	}

	positional := make([]string, 0, len(values))
	named := map[string]string{}

	splitAt := 0
	if opts.ResolveVariablesUntil != nil && *opts.ResolveVariablesUntil > splitAt {
		splitAt = *opts.ResolveVariablesUntil
	}

	for i, v := range values {
		if opts.ResolveNamed && i >= splitAt {
			if name, val, ok := splitNamed(v, spec); ok {
				if _, dup := named[name]; dup {
					return &Error{Kind: DuplicateNamedArgument,
						Message: fmt.Sprintf("Named argument '%s' repeated.", name)}
				}
				named[name] = val
				continue
			}
		}
		positional = append(positional, v)
	}

	// Bind positional arguments against declared parameters.
	bound := map[string]bool{}
	for i, p := range spec.Positional {
		if i < len(positional) {
			bound[p.Name] = true
			continue
		}
		if _, ok := named[p.Name]; ok {
			bound[p.Name] = true
			continue
		}
		if !p.HasDefault {
			return &Error{Kind: MissingArgument,
				Message: fmt.Sprintf("Keyword missing required argument '%s'.", p.Name)}
		}
	}

	if len(positional) > len(spec.Positional) {
		if spec.VarPositional == "" {
			return &Error{Kind: TooManyPositionalArguments,
				Message: fmt.Sprintf("Keyword expected at most %d positional arguments, got %d.",
					len(spec.Positional), len(positional))}
		}
	}

	for name := range named {
		if bound[name] {
			continue
		}
		isDeclared := false
		for _, p := range spec.Positional {
			if p.Name == name {
				isDeclared = true
				break
			}
		}
		if !isDeclared && spec.VarNamed == "" {
			return &Error{Kind: UnknownNamedArgument,
				Message: fmt.Sprintf("Keyword does not accept named argument '%s'.", name)}
		}
	}

	return nil
}

// splitNamed splits a raw argument value of the form `name=value` into its
// name and value, returning ok=false if v doesn't look like a named
// argument for spec (the name must either be a declared parameter or spec
// must accept a `&{...}` catch-all).
func splitNamed(v string, spec *kwdoc.ArgSpec) (name, value string, ok bool) {
	eq := strings.IndexByte(v, '=')
	if eq <= 0 {
		return "", "", false
	}
	name, value = v[:eq], v[eq+1:]
	for _, p := range spec.Positional {
		if p.Name == name {
			return name, value, true
		}
	}
	if spec.VarNamed != "" {
		return name, value, true
	}
	return "", "", false
}
