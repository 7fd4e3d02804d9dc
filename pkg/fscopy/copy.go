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
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// 📊 Result classifies the outcome of a transfer.
type Result int

const (
	// ResultCreated means content was written to the target.
	ResultCreated Result = iota
	// ResultExists means the target was already present and left untouched.
	ResultExists
	// ResultSourceNotFound means the source was absent and nothing happened.
	ResultSourceNotFound
)

// String returns a string representation of Result.
func (r Result) String() string {
	switch r {
	case ResultCreated:
		return "created"
	case ResultExists:
		return "exists"
	case ResultSourceNotFound:
		return "source not found"
	default:
		return "unknown"
	}
}

// 📄 CopyFile copies a single file, skipping when the target already
// exists. Progress is reported once before and once after the transfer.
func CopyFile(ctx context.Context, source, target string, onProgress ProgressFunc) (Result, error) {
	zerolog.Ctx(ctx).Debug().Str("source", source).Str("target", target).Msg("copying file")

	if !pathExists(source) {
		return ResultSourceNotFound, nil
	}
	if pathExists(target) {
		return ResultExists, nil
	}

	report(onProgress, Progress{FilesTotal: 1, FilesCopied: 0, CurrentFile: source})

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return 0, errors.Errorf("creating parent directory for %s: %w", target, err)
	}
	if err := cloneOrCopy(ctx, source, target); err != nil {
		return 0, err
	}

	report(onProgress, Progress{FilesTotal: 1, FilesCopied: 1, CurrentFile: source})
	return ResultCreated, nil
}

// ✍️ OverwriteFile copies a single file over the target regardless of
// whether it already exists. Callers wanting to distinguish "replaced" from
// "freshly created" check target existence before calling.
func OverwriteFile(ctx context.Context, source, target string, onProgress ProgressFunc) (Result, error) {
	zerolog.Ctx(ctx).Debug().Str("source", source).Str("target", target).Msg("overwriting file")

	if !pathExists(source) {
		return ResultSourceNotFound, nil
	}

	report(onProgress, Progress{FilesTotal: 1, FilesCopied: 0, CurrentFile: source})

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return 0, errors.Errorf("creating parent directory for %s: %w", target, err)
	}
	if err := cloneOrCopy(ctx, source, target); err != nil {
		return 0, err
	}

	report(onProgress, Progress{FilesTotal: 1, FilesCopied: 1, CurrentFile: source})
	return ResultCreated, nil
}

// 📁 CopyDirectory copies an entire tree, skipping when the target exists.
// Enumeration and the per-file transfers both run in parallel; every parent
// directory under target is created before any file copy starts. The first
// worker failure cancels the remaining work and propagates (files copied
// before the failure stay on disk). Returns the number of files copied.
func CopyDirectory(ctx context.Context, source, target string, onProgress ProgressFunc) (Result, int64, error) {
	zerolog.Ctx(ctx).Debug().Str("source", source).Str("target", target).Msg("copying directory")

	if !pathExists(source) {
		return ResultSourceNotFound, 0, nil
	}
	if pathExists(target) {
		return ResultExists, 0, nil
	}

	entries, err := Enumerate(ctx, source)
	if err != nil {
		return 0, 0, errors.Errorf("enumerating %s: %w", source, err)
	}
	total := int64(len(entries))
	zerolog.Ctx(ctx).Debug().Int64("files", total).Msg("enumerated source directory")

	if total == 0 {
		if err := os.MkdirAll(target, 0o755); err != nil {
			return 0, 0, errors.Errorf("creating directory %s: %w", target, err)
		}
		return ResultCreated, 0, nil
	}

	trk := newTracker(total)
	report(onProgress, trk.snapshot(""))

	// Parent-directory barrier: every containing directory exists before the
	// first file copy is scheduled.
	dirs := make(map[string]struct{})
	for _, e := range entries {
		dirs[filepath.Dir(filepath.Join(target, e.RelPath))] = struct{}{}
	}
	for dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, 0, errors.Errorf("creating directory %s: %w", dir, err)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for _, e := range entries {
		e := e
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			src := filepath.Join(source, e.RelPath)
			dst := filepath.Join(target, e.RelPath)

			if e.IsSymlink {
				if err := copySymlink(src, dst); err != nil {
					return err
				}
			} else if err := cloneOrCopy(gctx, src, dst); err != nil {
				return err
			}

			done := trk.increment()
			if done%progressCadence == 0 || done == total {
				report(onProgress, trk.snapshot(src))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, 0, err
	}

	report(onProgress, trk.snapshot(""))
	return ResultCreated, total, nil
}

// cloneOrCopy writes target from source, preferring a copy-on-write clone
// and falling back to a byte copy when the clone fails for any reason.
func cloneOrCopy(ctx context.Context, source, target string) error {
	if err := cloneFile(source, target); err == nil {
		zerolog.Ctx(ctx).Trace().Str("source", source).Str("target", target).Msg("reflinked")
		return nil
	}
	if err := copyFileContents(source, target); err != nil {
		return err
	}
	zerolog.Ctx(ctx).Trace().Str("source", source).Str("target", target).Msg("copied")
	return nil
}

// copyFileContents is the plain byte-for-byte fallback. The target is
// created or truncated with the source's permission bits.
func copyFileContents(source, target string) error {
	src, err := os.Open(source)
	if err != nil {
		return errors.Errorf("opening %s: %w", source, err)
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return errors.Errorf("reading metadata of %s: %w", source, err)
	}

	dst, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return errors.Errorf("creating %s: %w", target, err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return errors.Errorf("copying %s to %s: %w", source, target, err)
	}
	if err := dst.Close(); err != nil {
		return errors.Errorf("closing %s: %w", target, err)
	}
	// O_CREATE permissions pass through the umask, an explicit chmod does not.
	if err := os.Chmod(target, info.Mode().Perm()); err != nil {
		return errors.Errorf("setting mode of %s: %w", target, err)
	}
	return nil
}

// copySymlink recreates the symlink at src as dst, preserving the recorded
// link target verbatim (relative stays relative, absolute stays absolute).
func copySymlink(src, dst string) error {
	linkTarget, err := os.Readlink(src)
	if err != nil {
		return errors.Errorf("reading link %s: %w", src, err)
	}
	if err := os.Symlink(linkTarget, dst); err != nil {
		return errors.Errorf("creating symlink %s: %w", dst, err)
	}
	return nil
}

// pathExists reports whether path exists, following symlinks.
func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
