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

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/treehouse/pkg/config"
	"github.com/walteh/treehouse/pkg/git"
)

// 🚀 Apply plans and executes a whole configuration against a target
// worktree: the main pass first, then the unstaged-file pass when enabled
// by the options or the config. The first hard error aborts the remaining
// operations; not-found and already-exists conditions are results, not
// errors. Records come back bucketed by kind for reporting.
func Apply(ctx context.Context, lc config.LoadedConfig, sourceRoot, targetRoot string, opts Options) (ApplyResult, error) {
	zerolog.Ctx(ctx).Info().
		Str("config", lc.RelativePath).
		Str("target", targetRoot).
		Msg("applying config")

	var result ApplyResult

	ops, err := Plan(ctx, lc, sourceRoot, targetRoot)
	if err != nil {
		return result, errors.Errorf("planning %s: %w", lc.RelativePath, err)
	}

	for _, op := range ops {
		res, err := Execute(ctx, op, nil)
		if err != nil {
			return result, errors.Errorf("executing %s %s: %w", op.Type, op.DisplayPath, err)
		}
		rec := Record{Path: op.DisplayPath, Result: res}
		switch op.Type {
		case TypeSymlink:
			result.Symlinks = append(result.Symlinks, rec)
		case TypeCopy, TypeCopyGlob:
			result.Copies = append(result.Copies, rec)
		case TypeOverwrite:
			result.Overwrites = append(result.Overwrites, rec)
		case TypeTemplate:
			result.Templates = append(result.Templates, rec)
		}
	}

	copyUnstaged := lc.Config.CopyUnstaged
	if opts.CopyUnstaged != nil {
		copyUnstaged = *opts.CopyUnstaged
	}
	if copyUnstaged {
		zerolog.Ctx(ctx).Info().Msg("copying unstaged and untracked files")

		files, err := git.ChangedAndUntrackedFiles(ctx, sourceRoot)
		if err != nil {
			return result, errors.Errorf("listing changed files: %w", err)
		}
		for _, op := range PlanUnstaged(files, sourceRoot, targetRoot) {
			res, err := Execute(ctx, op, nil)
			if err != nil {
				return result, errors.Errorf("executing %s %s: %w", op.Type, op.DisplayPath, err)
			}
			result.Unstaged = append(result.Unstaged, Record{Path: op.DisplayPath, Result: res})
		}
	}

	return result, nil
}
