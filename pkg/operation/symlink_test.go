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

package operation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSymlink(t *testing.T) {
	ctx := testContext(t)

	t.Run("creates_absolute_link", func(t *testing.T) {
		tmpDir := t.TempDir()
		source := filepath.Join(tmpDir, "src.txt")
		target := filepath.Join(tmpDir, "nested", "link")
		writeFile(t, source, "x")

		res, err := CreateSymlink(ctx, source, target)
		require.NoError(t, err, "CreateSymlink should succeed")
		assert.Equal(t, ResultCreated, res, "result should be created")

		linkTarget, err := os.Readlink(target)
		require.NoError(t, err, "target should be a symlink")
		assert.True(t, filepath.IsAbs(linkTarget), "link should point at an absolute path")
		assert.Equal(t, source, linkTarget, "link should point at the source")
	})

	t.Run("existing_symlink_untouched", func(t *testing.T) {
		tmpDir := t.TempDir()
		source := filepath.Join(tmpDir, "src.txt")
		target := filepath.Join(tmpDir, "link")
		writeFile(t, source, "x")
		require.NoError(t, os.Symlink("somewhere-else", target), "creating prior symlink should succeed")

		res, err := CreateSymlink(ctx, source, target)
		require.NoError(t, err, "CreateSymlink should succeed")
		assert.Equal(t, ResultExists, res, "an existing symlink is left alone")

		linkTarget, err := os.Readlink(target)
		require.NoError(t, err, "target should still be a symlink")
		assert.Equal(t, "somewhere-else", linkTarget, "prior link target must be preserved")
	})

	t.Run("dangling_symlink_counts_as_existing", func(t *testing.T) {
		tmpDir := t.TempDir()
		source := filepath.Join(tmpDir, "src.txt")
		target := filepath.Join(tmpDir, "link")
		writeFile(t, source, "x")
		require.NoError(t, os.Symlink(filepath.Join(tmpDir, "gone"), target), "creating dangling symlink should succeed")

		res, err := CreateSymlink(ctx, source, target)
		require.NoError(t, err, "CreateSymlink should succeed")
		assert.Equal(t, ResultExists, res, "a dangling symlink still blocks creation")
	})

	t.Run("missing_source_skips", func(t *testing.T) {
		tmpDir := t.TempDir()
		target := filepath.Join(tmpDir, "link")

		res, err := CreateSymlink(ctx, filepath.Join(tmpDir, "nope"), target)
		require.NoError(t, err, "missing source is a result, not an error")
		assert.Equal(t, ResultSkipped, res, "result should be skipped")
		assert.NoFileExists(t, target, "nothing should be created")
	})

	t.Run("replaces_regular_file", func(t *testing.T) {
		tmpDir := t.TempDir()
		source := filepath.Join(tmpDir, "src.txt")
		target := filepath.Join(tmpDir, "occupied")
		writeFile(t, source, "x")
		writeFile(t, target, "in the way")

		res, err := CreateSymlink(ctx, source, target)
		require.NoError(t, err, "CreateSymlink should succeed")
		assert.Equal(t, ResultCreated, res, "result should be created")

		linkTarget, err := os.Readlink(target)
		require.NoError(t, err, "occupying file should be replaced by a symlink")
		assert.Equal(t, source, linkTarget, "link should point at the source")
	})

	t.Run("replaces_directory", func(t *testing.T) {
		tmpDir := t.TempDir()
		source := filepath.Join(tmpDir, "srcdir")
		target := filepath.Join(tmpDir, "occupied")
		writeFile(t, filepath.Join(source, "f"), "x")
		writeFile(t, filepath.Join(target, "stale"), "y")

		res, err := CreateSymlink(ctx, source, target)
		require.NoError(t, err, "CreateSymlink should succeed")
		assert.Equal(t, ResultCreated, res, "result should be created")

		linkTarget, err := os.Readlink(target)
		require.NoError(t, err, "occupying directory should be replaced by a symlink")
		assert.Equal(t, source, linkTarget, "link should point at the source directory")
	})
}
