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
	"context"
	"fmt"
	"runtime"
	"sort"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/robotcode-go/robotls/analyzer"
	"github.com/robotcode-go/robotls/config"
	"github.com/robotcode-go/robotls/lsp"
	"github.com/robotcode-go/robotls/namespace"
)

func newAnalyzeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <workspace-root>",
		Short: "Analyze every .robot suite under a workspace root and print diagnostics.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd.Context(), args[0])
		},
	}
	return cmd
}

type fileDiagnostic struct {
	file string
	d    lsp.Diagnostic
}

func runAnalyze(ctx context.Context, root string) error {
	log := newLogger()
	defer log.Sync()

	cfg, err := config.Load(root)
	if err != nil {
		return err
	}

	suites, err := discoverSuites(root, cfg)
	if err != nil {
		return err
	}

	resourceImporter := namespace.NewFileResourceImporter(root)
	libImporter := &namespace.BuiltinImporter{}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	results := make([][]fileDiagnostic, len(suites))
	for i, path := range suites {
		i, path := i, path
		g.Go(func() error {
			file, ns, parseErrs, err := suiteNamespace(path, resourceImporter, libImporter)
			if err != nil {
				return err
			}
			for _, pe := range parseErrs {
				log.Warn("parse recovery", zap.String("file", path), zap.Error(pe))
			}
			diags, err := analyzer.AnalyzeWithLogger(ctx, file, ns, log)
			if err != nil {
				return err
			}
			for _, d := range diags {
				results[i] = append(results[i], fileDiagnostic{file: path, d: d})
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var all []fileDiagnostic
	for _, r := range results {
		all = append(all, r...)
	}
	sort.Slice(all, func(i, j int) bool {
		a, b := all[i], all[j]
		if a.file != b.file {
			return a.file < b.file
		}
		if a.d.Range.Start.Line != b.d.Range.Start.Line {
			return a.d.Range.Start.Line < b.d.Range.Start.Line
		}
		return a.d.Range.Start.Character < b.d.Range.Start.Character
	})
	for _, fd := range all {
		fmt.Printf("%s:%d:%d: %s [%s] %s\n",
			fd.file, fd.d.Range.Start.Line+1, fd.d.Range.Start.Character+1,
			severityName(fd.d.Severity), fd.d.Code, fd.d.Message)
	}
	return nil
}

func severityName(s lsp.Severity) string {
	switch s {
	case lsp.Error:
		return "error"
	case lsp.Warning:
		return "warning"
	case lsp.Information:
		return "info"
	case lsp.Hint:
		return "hint"
	default:
		return "unknown"
	}
}
