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

// Package config loads the CLI's YAML configuration file
// (`.robotls.yaml`): analysis toggles and ignore-path globs, read once
// per invocation.
package config

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config is the on-disk shape of `.robotls.yaml`.
type Config struct {
	// CheckUnused is the check-unused toggle. It is loaded from the file,
	// but no component reads it: setting it adds no diagnostics for
	// unreferenced keywords or imports.
	CheckUnused bool `yaml:"checkUnused"`
	// Ignore lists glob patterns, relative to the workspace root,
	// excluded from analysis.
	Ignore []string `yaml:"ignore"`
}

// Default returns the configuration used when no `.robotls.yaml` is
// present.
func Default() *Config {
	return &Config{CheckUnused: false}
}

// Load reads `.robotls.yaml` from root, if present, returning Default()
// unmodified when the file doesn't exist.
func Load(root string) (*Config, error) {
	path := filepath.Join(root, ".robotls.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}
	return cfg, nil
}

// Ignored reports whether relPath matches one of c's ignore globs.
func (c *Config) Ignored(relPath string) bool {
	for _, pattern := range c.Ignore {
		if ok, _ := filepath.Match(pattern, relPath); ok {
			return true
		}
	}
	return false
}
