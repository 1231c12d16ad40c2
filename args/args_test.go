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

package args_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robotcode-go/robotls/args"
	"github.com/robotcode-go/robotls/kwdoc"
)

func spec() *kwdoc.ArgSpec {
	return &kwdoc.ArgSpec{
		Positional: []kwdoc.Param{
			{Name: "first"},
			{Name: "second", HasDefault: true},
		},
	}
}

func TestResolveBindsPositional(t *testing.T) {
	err := args.Resolve(spec(), []string{"a", "b"}, args.Options{ResolveNamed: true})
	assert.NoError(t, err)
}

func TestResolveDefaultCoversMissingOptional(t *testing.T) {
	err := args.Resolve(spec(), []string{"a"}, args.Options{ResolveNamed: true})
	assert.NoError(t, err)
}

func TestResolveMissingRequired(t *testing.T) {
	err := args.Resolve(spec(), nil, args.Options{ResolveNamed: true})
	require.Error(t, err)
	var ae *args.Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, args.MissingArgument, ae.Kind)
}

func TestResolveTooManyPositional(t *testing.T) {
	err := args.Resolve(spec(), []string{"a", "b", "c"}, args.Options{ResolveNamed: true})
	require.Error(t, err)
	var ae *args.Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, args.TooManyPositionalArguments, ae.Kind)
}

func TestResolveNamedArgument(t *testing.T) {
	err := args.Resolve(spec(), []string{"a", "second=b"}, args.Options{ResolveNamed: true})
	assert.NoError(t, err)
}

func TestResolveUnknownNamedArgument(t *testing.T) {
	err := args.Resolve(spec(), []string{"a", "third=b"}, args.Options{ResolveNamed: true})
	require.Error(t, err)
	var ae *args.Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, args.UnknownNamedArgument, ae.Kind)
}

func TestResolveDuplicateNamedArgument(t *testing.T) {
	err := args.Resolve(spec(), []string{"second=a", "second=b"}, args.Options{ResolveNamed: true})
	require.Error(t, err)
	var ae *args.Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, args.DuplicateNamedArgument, ae.Kind)
}

func TestResolveNilSpecAlwaysSucceeds(t *testing.T) {
	assert.NoError(t, args.Resolve(nil, []string{"anything"}, args.Options{}))
}
