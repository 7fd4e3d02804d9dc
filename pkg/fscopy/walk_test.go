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

package fscopy

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 🧪 writeFile creates a file with parents, failing the test on error.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755), "creating parent dirs should succeed")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644), "writing file should succeed")
}

// 🧪 testContext returns a context carrying a test logger.
func testContext(t *testing.T) context.Context {
	t.Helper()
	logger := zerolog.New(zerolog.NewTestWriter(t))
	return logger.WithContext(context.Background())
}

func TestEnumerate(t *testing.T) {
	ctx := testContext(t)

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "a.txt"), "a")
	writeFile(t, filepath.Join(tmpDir, "sub", "b.txt"), "b")
	writeFile(t, filepath.Join(tmpDir, "sub", "deep", "c.txt"), "c")
	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "empty"), 0o755), "creating empty dir should succeed")
	require.NoError(t, os.Symlink(filepath.Join(tmpDir, "a.txt"), filepath.Join(tmpDir, "link.txt")), "creating symlink should succeed")

	entries, err := Enumerate(ctx, tmpDir)
	require.NoError(t, err, "Enumerate should succeed")

	paths := make([]string, 0, len(entries))
	symlinks := make(map[string]bool)
	for _, e := range entries {
		paths = append(paths, e.RelPath)
		symlinks[e.RelPath] = e.IsSymlink
	}
	sort.Strings(paths)

	want := []string{
		"a.txt",
		"link.txt",
		filepath.Join("sub", "b.txt"),
		filepath.Join("sub", "deep", "c.txt"),
	}
	assert.Equal(t, want, paths, "should list every file and symlink, no directories")
	assert.False(t, symlinks["a.txt"], "regular file should not be marked as symlink")
	assert.True(t, symlinks["link.txt"], "symlink should be marked")
}

func TestEnumerate_SymlinkedDirNotFollowed(t *testing.T) {
	ctx := testContext(t)

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "real", "inner.txt"), "x")
	require.NoError(t, os.Symlink(filepath.Join(tmpDir, "real"), filepath.Join(tmpDir, "alias")), "creating dir symlink should succeed")

	entries, err := Enumerate(ctx, tmpDir)
	require.NoError(t, err, "Enumerate should succeed")

	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		paths = append(paths, e.RelPath)
	}
	sort.Strings(paths)

	assert.Equal(t, []string{"alias", filepath.Join("real", "inner.txt")}, paths,
		"symlinked directory should appear as a single entry, not be traversed")
}

func TestEnumerate_NotADirectory(t *testing.T) {
	ctx := testContext(t)

	tmpDir := t.TempDir()
	file := filepath.Join(tmpDir, "plain.txt")
	writeFile(t, file, "x")

	_, err := Enumerate(ctx, file)
	require.Error(t, err, "enumerating a plain file should fail")
	assert.Contains(t, err.Error(), "not a directory", "error should name the problem")
}

func TestCount(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "tree", "a.txt"), "a")
	writeFile(t, filepath.Join(tmpDir, "tree", "sub", "b.txt"), "b")
	writeFile(t, filepath.Join(tmpDir, "tree", "sub", "c.txt"), "c")
	writeFile(t, filepath.Join(tmpDir, "single.txt"), "s")
	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "empty"), 0o755), "creating empty dir should succeed")
	require.NoError(t, os.Symlink(filepath.Join(tmpDir, "single.txt"), filepath.Join(tmpDir, "link")), "creating symlink should succeed")

	tests := []struct {
		name string
		path string
		want int64
	}{
		{name: "missing_path", path: filepath.Join(tmpDir, "nope"), want: 0},
		{name: "symlink", path: filepath.Join(tmpDir, "link"), want: 0},
		{name: "single_file", path: filepath.Join(tmpDir, "single.txt"), want: 1},
		{name: "empty_dir", path: filepath.Join(tmpDir, "empty"), want: 0},
		{name: "directory_tree", path: filepath.Join(tmpDir, "tree"), want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Count(tt.path), "count should match")
		})
	}
}

func TestCountWithProgress_FinalCallback(t *testing.T) {
	tmpDir := t.TempDir()
	for _, name := range []string{"a", "b", "c", "d"} {
		writeFile(t, filepath.Join(tmpDir, name+".txt"), name)
	}

	var last int64
	total := CountWithProgress(tmpDir, func(n int64) { last = n })

	assert.Equal(t, int64(4), total, "total should count all files")
	assert.Equal(t, total, last, "final callback should carry the total")
}
