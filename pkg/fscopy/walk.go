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
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// 📇 Entry is one file or symlink found under a source directory, carrying
// just enough information to recreate it at a target.
type Entry struct {
	RelPath   string // path relative to the enumerated root
	IsSymlink bool   // recreate as a symlink instead of copying content
}

// 🔍 Enumerate walks sourceDir and returns every file and symlink beneath
// it. Directories fan out onto their own goroutines; symlinks are never
// followed, so a symlinked directory is returned as a single symlink entry.
// Order is unspecified.
func Enumerate(ctx context.Context, sourceDir string) ([]Entry, error) {
	info, err := os.Lstat(sourceDir)
	if err != nil {
		return nil, errors.Errorf("reading %s: %w", sourceDir, err)
	}
	if !info.IsDir() {
		return nil, errors.Errorf("enumerating %s: not a directory", sourceDir)
	}

	var (
		mu      sync.Mutex
		entries []Entry
	)

	// Recursive fan-out must stay unbounded: a bounded group shared between
	// a parent walk and its children can deadlock once the limit is full of
	// parents waiting on children.
	g, gctx := errgroup.WithContext(ctx)

	var walk func(dir, rel string) error
	walk = func(dir, rel string) error {
		if err := gctx.Err(); err != nil {
			return err
		}
		dirents, err := os.ReadDir(dir)
		if err != nil {
			return errors.Errorf("reading directory %s: %w", dir, err)
		}
		for _, de := range dirents {
			name := de.Name()
			subRel := filepath.Join(rel, name)
			if de.IsDir() {
				sub := filepath.Join(dir, name)
				g.Go(func() error { return walk(sub, subRel) })
				continue
			}
			mu.Lock()
			entries = append(entries, Entry{
				RelPath:   subRel,
				IsSymlink: de.Type()&fs.ModeSymlink != 0,
			})
			mu.Unlock()
		}
		return nil
	}

	g.Go(func() error { return walk(sourceDir, "") })
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return entries, nil
}

// 🧮 Count returns the number of files and symlinks under path.
//
//   - missing path or a path that is itself a symlink: 0
//   - plain file: 1
//   - directory: recursive count of non-directory entries
func Count(path string) int64 {
	return CountWithProgress(path, nil)
}

// CountWithProgress counts like Count while invoking onCount every
// progressCadence entries and once more with the final total, to drive a
// scanning indicator during enumeration of large trees. Counting never
// fails: unreadable subtrees contribute nothing, since counts only size
// progress displays.
func CountWithProgress(path string, onCount func(int64)) int64 {
	fi, err := os.Lstat(path)
	if err != nil {
		return 0
	}
	if fi.Mode()&fs.ModeSymlink != 0 {
		return 0
	}
	if !fi.IsDir() {
		if onCount != nil {
			onCount(1)
		}
		return 1
	}

	var (
		count atomic.Int64
		wg    sync.WaitGroup
	)
	var walk func(dir string)
	walk = func(dir string) {
		defer wg.Done()
		dirents, err := os.ReadDir(dir)
		if err != nil {
			return
		}
		for _, de := range dirents {
			if de.IsDir() {
				wg.Add(1)
				go walk(filepath.Join(dir, de.Name()))
				continue
			}
			n := count.Add(1)
			if onCount != nil && n%progressCadence == 0 {
				onCount(n)
			}
		}
	}
	wg.Add(1)
	walk(path)
	wg.Wait()

	total := count.Load()
	if onCount != nil {
		onCount(total)
	}
	return total
}
