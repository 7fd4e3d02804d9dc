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

package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 🧪 testContext returns a context carrying a test logger.
func testContext(t *testing.T) context.Context {
	t.Helper()
	logger := zerolog.New(zerolog.NewTestWriter(t))
	return logger.WithContext(context.Background())
}

func TestLoadTOML(t *testing.T) {
	tests := []struct {
		name        string
		config      string
		wantErr     bool
		errContains string
		check       func(t *testing.T, cfg Config)
	}{
		{
			name: "full_config",
			config: `
description = "Backend worktree setup"
symlinks = [".env", "secrets"]
copy = ["settings.json"]
overwrite = ["cache.db"]
copyGlob = ["*.local", "/shared/*.pem"]
copyUnstaged = true
postSetup = ["npm install"]

[[templates]]
source = ".env.example"
target = ".env.local"
`,
			check: func(t *testing.T, cfg Config) {
				assert.Equal(t, "Backend worktree setup", cfg.Description, "description should match")
				assert.Equal(t, []string{".env", "secrets"}, cfg.Symlinks, "symlinks should match")
				assert.Equal(t, []string{"settings.json"}, cfg.Copy, "copy should match")
				assert.Equal(t, []string{"cache.db"}, cfg.Overwrite, "overwrite should match")
				assert.Equal(t, []string{"*.local", "/shared/*.pem"}, cfg.CopyGlob, "copyGlob should match")
				assert.True(t, cfg.CopyUnstaged, "copyUnstaged should be true")
				require.Len(t, cfg.Templates, 1, "should have one template")
				assert.Equal(t, ".env.example", cfg.Templates[0].Source, "template source should match")
				assert.Equal(t, ".env.local", cfg.Templates[0].Target, "template target should match")
				assert.Equal(t, []string{"npm install"}, cfg.PostSetup, "postSetup should match")
			},
		},
		{
			name:   "empty_config",
			config: "",
			check: func(t *testing.T, cfg Config) {
				assert.Empty(t, cfg.Symlinks, "symlinks should default empty")
				assert.Empty(t, cfg.Copy, "copy should default empty")
				assert.False(t, cfg.CopyUnstaged, "copyUnstaged should default false")
			},
		},
		{
			name:        "malformed_toml",
			config:      "symlinks = [",
			wantErr:     true,
			errContains: "parsing",
		},
	}

	ctx := testContext(t)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			path := filepath.Join(tmpDir, "worktree.config.toml")
			require.NoError(t, os.WriteFile(path, []byte(tt.config), 0o644), "writing config file should succeed")

			cfg, err := LoadTOML(ctx, path)
			if tt.wantErr {
				require.Error(t, err, "LoadTOML should return error")
				assert.Contains(t, err.Error(), tt.errContains, "error should contain expected message")
				return
			}

			require.NoError(t, err, "LoadTOML should succeed")
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	ctx := testContext(t)

	t.Run("tags_location", func(t *testing.T) {
		tmpDir := t.TempDir()
		dir := filepath.Join(tmpDir, "apps", "x")
		path := filepath.Join(dir, "worktree.config.toml")
		require.NoError(t, os.MkdirAll(dir, 0o755), "creating config dir should succeed")
		require.NoError(t, os.WriteFile(path, []byte(`description = "x"`), 0o644), "writing config should succeed")

		lc, err := Load(ctx, path, tmpDir)
		require.NoError(t, err, "Load should succeed")
		assert.Equal(t, path, lc.ConfigPath, "config path should be absolute")
		assert.Equal(t, dir, lc.ConfigDir, "config dir should be the containing directory")
		assert.Equal(t, filepath.Join("apps", "x", "worktree.config.toml"), lc.RelativePath, "relative path should be repo-root-relative")
		assert.Equal(t, "x", lc.Config.Description, "parsed config should be carried")
	})

	t.Run("unsupported_extension", func(t *testing.T) {
		tmpDir := t.TempDir()
		path := filepath.Join(tmpDir, "worktree.config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("a: b"), 0o644), "writing config should succeed")

		_, err := Load(ctx, path, tmpDir)
		require.Error(t, err, "unknown extension should fail")
		assert.Contains(t, err.Error(), "unsupported config format", "error should name the problem")
	})
}

func TestDisplayName(t *testing.T) {
	lc := LoadedConfig{
		Config:       Config{Description: "Backend"},
		ConfigDir:    filepath.Join(string(filepath.Separator), "repo", "apps", "backend"),
		RelativePath: filepath.Join("apps", "backend", "worktree.config.toml"),
	}
	assert.Equal(t, "backend", DisplayName(lc), "display name should be the containing directory")
}
