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
	"context"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/treehouse/pkg/config"
	"github.com/walteh/treehouse/pkg/fscopy"
)

// 📋 Plan enumerates every operation a configuration declares, with
// resolved paths, file counts, and skip decisions, without mutating
// anything. Operations come back in execution order: symlinks, explicit
// copies, overwrites, glob copies, templates. Declaration order is
// preserved within each kind. Unstaged-file operations are planned
// separately by PlanUnstaged, since they need a live git query the caller
// may want to sequence on its own.
func Plan(ctx context.Context, lc config.LoadedConfig, sourceRoot, targetRoot string) ([]PlannedOperation, error) {
	zerolog.Ctx(ctx).Debug().
		Str("config", lc.RelativePath).
		Str("source", sourceRoot).
		Str("target", targetRoot).
		Msg("planning operations")

	relDir := configRelativeDir(sourceRoot, lc.ConfigDir)
	var ops []PlannedOperation

	for _, raw := range lc.Config.Symlinks {
		source, label := resolvePath(sourceRoot, relDir, raw)
		target, _ := resolvePath(targetRoot, relDir, raw)

		willSkip, reason := false, ""
		switch {
		case !pathExists(source):
			willSkip, reason = true, SkipReasonNotFound
		case pathExists(target) || isSymlink(target):
			willSkip, reason = true, SkipReasonExists
		}

		ops = append(ops, PlannedOperation{
			DisplayPath: label,
			Type:        TypeSymlink,
			Source:      source,
			Target:      target,
			WillSkip:    willSkip,
			SkipReason:  reason,
		})
	}

	for _, raw := range lc.Config.Copy {
		source, label := resolvePath(sourceRoot, relDir, raw)
		target, _ := resolvePath(targetRoot, relDir, raw)
		ops = append(ops, planTransfer(TypeCopy, label, source, target, false))
	}

	for _, raw := range lc.Config.Overwrite {
		source, label := resolvePath(sourceRoot, relDir, raw)
		target, _ := resolvePath(targetRoot, relDir, raw)
		ops = append(ops, planTransfer(TypeOverwrite, label, source, target, true))
	}

	for _, pattern := range lc.Config.CopyGlob {
		globOps, err := planGlob(pattern, relDir, sourceRoot, targetRoot)
		if err != nil {
			return nil, err
		}
		ops = append(ops, globOps...)
	}

	for _, tmpl := range lc.Config.Templates {
		source, srcLabel := resolvePath(sourceRoot, relDir, tmpl.Source)
		target, tgtLabel := resolvePath(targetRoot, relDir, tmpl.Target)

		willSkip, reason := false, ""
		switch {
		case !pathExists(source):
			willSkip, reason = true, SkipReasonNotFound
		case pathExists(target):
			willSkip, reason = true, SkipReasonExists
		}

		ops = append(ops, PlannedOperation{
			DisplayPath: srcLabel + " -> " + tgtLabel,
			Type:        TypeTemplate,
			Source:      source,
			Target:      target,
			FileCount:   1,
			WillSkip:    willSkip,
			SkipReason:  reason,
		})
	}

	return ops, nil
}

// planTransfer plans one copy or overwrite declaration. Overwrites proceed
// over an existing target; an existing target only skips plain copies.
func planTransfer(t Type, label, source, target string, overwrite bool) PlannedOperation {
	op := PlannedOperation{
		DisplayPath: label,
		Type:        t,
		Source:      source,
		Target:      target,
	}
	switch {
	case !pathExists(source):
		op.WillSkip, op.SkipReason = true, SkipReasonNotFound
	case !overwrite && pathExists(target):
		op.WillSkip, op.SkipReason = true, SkipReasonExists
	default:
		op.IsDirectory = isDir(source)
		op.FileCount = fscopy.Count(source)
	}
	return op
}

// planGlob expands one glob pattern against the appropriate base directory
// and plans a single-file copy per match. Matches are sorted so expansion
// order is stable within a run. A malformed pattern is a plan-time error.
func planGlob(pattern, relDir, sourceRoot, targetRoot string) ([]PlannedOperation, error) {
	raw, rooted := splitRooted(pattern)

	searchDir, labelDir := filepath.Join(sourceRoot, relDir), relDir
	targetDir := filepath.Join(targetRoot, relDir)
	if rooted {
		searchDir, labelDir = sourceRoot, ""
		targetDir = targetRoot
	}

	matches, err := doublestar.Glob(os.DirFS(searchDir), path.Clean(filepath.ToSlash(raw)))
	if err != nil {
		return nil, errors.Errorf("expanding glob %q: %w", pattern, err)
	}
	sort.Strings(matches)

	var ops []PlannedOperation
	for _, m := range matches {
		rel := filepath.FromSlash(m)
		source := filepath.Join(searchDir, rel)
		target := filepath.Join(targetDir, rel)

		willSkip, reason := false, ""
		if pathExists(target) {
			willSkip, reason = true, SkipReasonExists
		}

		// Glob matches are planned as files: patterns are not expected to
		// match directories sensibly.
		ops = append(ops, PlannedOperation{
			DisplayPath: filepath.Join(labelDir, rel),
			Type:        TypeCopyGlob,
			Source:      source,
			Target:      target,
			FileCount:   1,
			WillSkip:    willSkip,
			SkipReason:  reason,
		})
	}
	return ops, nil
}

// 📋 PlanUnstaged plans one overwrite-style operation per changed or
// untracked file. The file list comes from the caller's git query,
// repo-root-relative. Files reported but no longer on disk are silently
// omitted.
func PlanUnstaged(files []string, sourceRoot, targetRoot string) []PlannedOperation {
	var ops []PlannedOperation
	for _, file := range files {
		source := filepath.Join(sourceRoot, file)
		if !pathExists(source) {
			continue
		}
		ops = append(ops, PlannedOperation{
			DisplayPath: file,
			Type:        TypeUnstaged,
			Source:      source,
			Target:      filepath.Join(targetRoot, file),
			FileCount:   1,
		})
	}
	return ops
}

// pathExists reports whether path exists, following symlinks.
func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// isSymlink reports whether path is itself a symlink.
func isSymlink(path string) bool {
	fi, err := os.Lstat(path)
	return err == nil && fi.Mode()&fs.ModeSymlink != 0
}

// isDir reports whether path is a directory, following symlinks.
func isDir(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}
