// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config defines worktree setup configurations and loads them from
// TOML or TypeScript files discovered across a repository.
package config

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🔀 TemplateMapping copies a source file to a distinct target path when
// the target doesn't exist.
type TemplateMapping struct {
	Source string `toml:"source" json:"source"`
	Target string `toml:"target" json:"target"`
}

// 📜 Config is one worktree setup configuration. Declared paths are
// relative to the directory containing the config file; a leading path
// separator makes them relative to the repository root instead.
type Config struct {
	// Description is a human-readable summary shown during selection.
	Description string `toml:"description" json:"description"`
	// Symlinks are paths to symlink from the main worktree.
	Symlinks []string `toml:"symlinks" json:"symlinks"`
	// Copy lists paths copied only if absent in the target.
	Copy []string `toml:"copy" json:"copy"`
	// Overwrite lists paths always copied over the target.
	Overwrite []string `toml:"overwrite" json:"overwrite"`
	// CopyGlob lists glob patterns expanded at plan time.
	CopyGlob []string `toml:"copyGlob" json:"copyGlob"`
	// CopyUnstaged copies changed and untracked files from the main worktree.
	CopyUnstaged bool `toml:"copyUnstaged" json:"copyUnstaged"`
	// Templates map source files to distinct target paths.
	Templates []TemplateMapping `toml:"templates" json:"templates"`
	// PostSetup commands run in the new worktree after setup.
	PostSetup []string `toml:"postSetup" json:"postSetup"`
}

// 📦 LoadedConfig is a parsed configuration tagged with where it came from.
// Created once per discovered file at startup, read-only afterward.
type LoadedConfig struct {
	Config Config
	// ConfigPath is the absolute path to the configuration file.
	ConfigPath string
	// ConfigDir is the directory containing the configuration file.
	ConfigDir string
	// RelativePath is the config path relative to the repository root.
	RelativePath string
}

// 📥 Load parses the configuration file at path, dispatching on extension,
// and tags it with its location relative to repoRoot.
func Load(ctx context.Context, path, repoRoot string) (LoadedConfig, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return LoadedConfig{}, errors.Errorf("resolving %s: %w", path, err)
	}

	var cfg Config
	switch {
	case strings.HasSuffix(abs, ".toml"):
		cfg, err = LoadTOML(ctx, abs)
	case strings.HasSuffix(abs, ".ts"):
		cfg, err = LoadScript(ctx, abs)
	default:
		return LoadedConfig{}, errors.Errorf("unsupported config format: %s", abs)
	}
	if err != nil {
		return LoadedConfig{}, err
	}

	rel, relErr := filepath.Rel(repoRoot, abs)
	if relErr != nil {
		rel = abs
	}

	zerolog.Ctx(ctx).Debug().Str("path", rel).Str("description", cfg.Description).Msg("loaded config")

	return LoadedConfig{
		Config:       cfg,
		ConfigPath:   abs,
		ConfigDir:    filepath.Dir(abs),
		RelativePath: rel,
	}, nil
}

// 🏷️ DisplayName returns a short human-readable name for a config, based
// on its containing directory.
func DisplayName(lc LoadedConfig) string {
	base := filepath.Base(lc.ConfigDir)
	if base != "." && base != ".." && base != string(filepath.Separator) {
		return base
	}
	return lc.RelativePath
}
