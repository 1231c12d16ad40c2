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

package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/robotcode-go/robotls/definition"
	"github.com/robotcode-go/robotls/namespace"
	"github.com/robotcode-go/robotls/token"
)

func newDefinitionCommand() *cobra.Command {
	var root string
	cmd := &cobra.Command{
		Use:   "definition <file:line:character>",
		Short: "Resolve the keyword or import definition at a source position.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDefinition(root, args[0])
		},
	}
	cmd.Flags().StringVar(&root, "root", ".", "workspace root used to resolve resource imports")
	return cmd
}

func runDefinition(root, locator string) error {
	path, pos, err := parseLocator(locator)
	if err != nil {
		return err
	}

	resourceImporter := namespace.NewFileResourceImporter(root)
	libImporter := &namespace.BuiltinImporter{}

	file, ns, _, err := suiteNamespace(path, resourceImporter, libImporter)
	if err != nil {
		return err
	}

	links := definition.Find(file, pos, ns)
	if len(links) == 0 {
		fmt.Println("no definition found")
		return nil
	}
	for _, l := range links {
		fmt.Printf("%s:%d:%d\n", l.TargetURI, l.TargetRange.Start.Line+1, l.TargetRange.Start.Character+1)
	}
	return nil
}

// parseLocator splits a `file:line:character` locator, where line and
// character are 1-based on input and converted to the zero-based
// token.Position the core uses internally.
func parseLocator(locator string) (string, token.Position, error) {
	idx := strings.LastIndexByte(locator, ':')
	if idx < 0 {
		return "", token.Position{}, errors.Errorf("invalid locator %q: expected file:line:character", locator)
	}
	charStr := locator[idx+1:]
	rest := locator[:idx]
	idx2 := strings.LastIndexByte(rest, ':')
	if idx2 < 0 {
		return "", token.Position{}, errors.Errorf("invalid locator %q: expected file:line:character", locator)
	}
	lineStr := rest[idx2+1:]
	path := rest[:idx2]

	line, err := strconv.Atoi(lineStr)
	if err != nil {
		return "", token.Position{}, errors.Wrapf(err, "invalid line in locator %q", locator)
	}
	character, err := strconv.Atoi(charStr)
	if err != nil {
		return "", token.Position{}, errors.Wrapf(err, "invalid character in locator %q", locator)
	}

	path = filepath.Clean(path)
	return path, token.Position{Line: uint32(line - 1), Character: uint32(character - 1)}, nil
}
