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
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/robotcode-go/robotls/ast"
	"github.com/robotcode-go/robotls/config"
	"github.com/robotcode-go/robotls/namespace"
)

// discoverSuites walks root collecting every non-ignored `.robot` file.
// `.resource` files are discovered on demand by the shared resource
// importer, not enumerated here.
func discoverSuites(root string, cfg *config.Config) ([]string, error) {
	var out []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if !strings.HasSuffix(path, ".robot") {
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr == nil && cfg.Ignored(rel) {
			return nil
		}
		out = append(out, path)
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "walking %s", root)
	}
	return out, nil
}

// suiteNamespace parses path and resolves its imports into a Namespace,
// sharing resourceImporter across every suite in one run so resources
// imported by more than one suite parse once. Returned parse errors are
// surface-parser recovery diagnostics (unrecognized lines), reported
// separately from the Namespace's own import failures.
func suiteNamespace(path string, resourceImporter *namespace.FileResourceImporter, libImporter namespace.LibraryImporter) (*ast.File, *namespace.Namespace, []error, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, nil, errors.Wrapf(err, "reading %s", path)
	}
	file, parseErrs := ast.ParseSource(path, string(data))
	ns := namespace.Build(file, libImporter, resourceImporter)
	ns.DocumentLines = strings.Split(string(data), "\n")
	ns.Finish(libImporter)
	return file, ns, parseErrs, nil
}
