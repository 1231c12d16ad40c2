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

// Command robotls exercises the semantic-analysis core against files on
// disk: it is a manual smoke-testing and CI driver, not a JSON-RPC
// language server.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/robotcode-go/robotls/logx"
)

var verbose bool

func main() {
	root := &cobra.Command{
		Use:   "robotls",
		Short: "Semantic analysis driver for Robot Framework suites.",
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	root.AddCommand(newAnalyzeCommand(), newDefinitionCommand())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger() *logx.Logger {
	return logx.New(verbose)
}
