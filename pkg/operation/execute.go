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

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/treehouse/pkg/fscopy"
)

// 📞 ProgressFunc receives (filesCompleted, filesTotal) for directory
// operations, at a bounded cadence rather than once per file. It may be
// invoked from worker goroutines.
type ProgressFunc func(completed, total int64)

// 🏃 Execute performs one planned operation and returns its terminal
// classification. Operations the planner marked as skips return without
// touching the filesystem: ResultExists when the reason is "exists",
// ResultSkipped otherwise.
func Execute(ctx context.Context, op PlannedOperation, onProgress ProgressFunc) (Result, error) {
	if op.WillSkip {
		if op.SkipReason == SkipReasonExists {
			return ResultExists, nil
		}
		return ResultSkipped, nil
	}

	switch op.Type {
	case TypeSymlink:
		return CreateSymlink(ctx, op.Source, op.Target)

	case TypeCopy, TypeCopyGlob, TypeTemplate:
		if op.IsDirectory {
			return executeDirectoryCopy(ctx, op, onProgress)
		}
		res, err := fscopy.CopyFile(ctx, op.Source, op.Target, adaptProgress(onProgress))
		if err != nil {
			return 0, err
		}
		return fromCopyResult(res), nil

	case TypeOverwrite, TypeUnstaged:
		if op.IsDirectory {
			// Directory overwrites reuse the create-if-absent copy, so an
			// existing target directory reports Exists instead of being
			// replaced. Kept for compatibility with prior behavior.
			// TODO(dr.methodical): 🔄 true recursive overwrite (delete-then-copy)
			return executeDirectoryCopy(ctx, op, onProgress)
		}
		existed := pathExists(op.Target)
		res, err := fscopy.OverwriteFile(ctx, op.Source, op.Target, adaptProgress(onProgress))
		if err != nil {
			return 0, err
		}
		result := fromCopyResult(res)
		if result == ResultCreated && existed {
			result = ResultOverwritten
		}
		return result, nil

	default:
		return 0, errors.Errorf("unknown operation type %d", op.Type)
	}
}

// executeDirectoryCopy delegates to the parallel directory copy and forces
// a final (n, n) progress call on completion.
func executeDirectoryCopy(ctx context.Context, op PlannedOperation, onProgress ProgressFunc) (Result, error) {
	res, _, err := fscopy.CopyDirectory(ctx, op.Source, op.Target, adaptProgress(onProgress))
	if err != nil {
		return 0, err
	}
	if onProgress != nil {
		onProgress(op.FileCount, op.FileCount)
	}
	return fromCopyResult(res), nil
}

// adaptProgress bridges the engine's snapshot callback to the
// (completed, total) shape the caller sees.
func adaptProgress(onProgress ProgressFunc) fscopy.ProgressFunc {
	if onProgress == nil {
		return nil
	}
	return func(p fscopy.Progress) {
		onProgress(p.FilesCopied, p.FilesTotal)
	}
}

func fromCopyResult(r fscopy.Result) Result {
	switch r {
	case fscopy.ResultCreated:
		return ResultCreated
	case fscopy.ResultExists:
		return ResultExists
	default:
		return ResultSkipped
	}
}
