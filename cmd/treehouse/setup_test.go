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

package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walteh/treehouse/pkg/config"
	"github.com/walteh/treehouse/pkg/operation"
)

func TestResultVerb(t *testing.T) {
	tests := []struct {
		name   string
		result operation.Result
		opType operation.Type
		want   string
	}{
		{name: "created_symlink", result: operation.ResultCreated, opType: operation.TypeSymlink, want: "symlink"},
		{name: "created_copy", result: operation.ResultCreated, opType: operation.TypeCopy, want: "copied"},
		{name: "created_glob", result: operation.ResultCreated, opType: operation.TypeCopyGlob, want: "copied"},
		{name: "created_overwrite", result: operation.ResultCreated, opType: operation.TypeOverwrite, want: "copied"},
		{name: "created_unstaged", result: operation.ResultCreated, opType: operation.TypeUnstaged, want: "copied"},
		{name: "created_template", result: operation.ResultCreated, opType: operation.TypeTemplate, want: "created"},
		{name: "overwritten", result: operation.ResultOverwritten, opType: operation.TypeOverwrite, want: "overwritten"},
		{name: "exists", result: operation.ResultExists, opType: operation.TypeCopy, want: "exists"},
		{name: "skipped", result: operation.ResultSkipped, opType: operation.TypeCopy, want: "skipped"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resultVerb(tt.result, tt.opType), "verb should match")
		})
	}
}

func TestSelectConfigIndices_FlagPatterns(t *testing.T) {
	configs := []config.LoadedConfig{
		{ConfigPath: "/repo/worktree.config.toml", RelativePath: "worktree.config.toml"},
		{ConfigPath: "/repo/apps/backend/worktree.config.toml", RelativePath: "apps/backend/worktree.config.toml"},
		{ConfigPath: "/repo/apps/frontend/worktree.config.ts", RelativePath: "apps/frontend/worktree.config.ts"},
	}

	flags := &rootFlags{configs: []string{"backend"}}
	selected, err := selectConfigIndices(flags, configs)
	require.NoError(t, err, "selection should succeed")
	assert.Equal(t, []int{1}, selected, "pattern should match by substring of the relative path")

	flags = &rootFlags{configs: []string{"apps"}}
	selected, err = selectConfigIndices(flags, configs)
	require.NoError(t, err, "selection should succeed")
	assert.Equal(t, []int{1, 2}, selected, "a broad pattern matches every nested config")

	flags = &rootFlags{configs: []string{"nope"}}
	selected, err = selectConfigIndices(flags, configs)
	require.NoError(t, err, "selection should succeed")
	assert.Empty(t, selected, "an unmatched pattern selects nothing")

	flags = &rootFlags{nonInteractive: true}
	selected, err = selectConfigIndices(flags, configs)
	require.NoError(t, err, "selection should succeed")
	assert.Equal(t, []int{0, 1, 2}, selected, "non-interactive mode takes every config")
}

func TestResolveTargetPath(t *testing.T) {
	cwd := filepath.Join(string(filepath.Separator), "work")

	path, err := resolveTargetPath(&rootFlags{}, "../feature", cwd)
	require.NoError(t, err, "relative argument should resolve")
	assert.Equal(t, filepath.Join(string(filepath.Separator), "feature"), path, "path should resolve against the working directory")

	abs := filepath.Join(string(filepath.Separator), "tmp", "wt")
	path, err = resolveTargetPath(&rootFlags{}, abs, cwd)
	require.NoError(t, err, "absolute argument should resolve")
	assert.Equal(t, abs, path, "absolute paths pass through")

	_, err = resolveTargetPath(&rootFlags{nonInteractive: true}, "", cwd)
	require.Error(t, err, "missing argument in non-interactive mode should fail")
}
