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
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🔗 CreateSymlink creates a symlink at target pointing at source's
// absolute path. A target that is already a symlink returns ResultExists;
// an absent source returns ResultSkipped. Any other file or directory
// occupying target is removed first.
//
// Unlike a directory copy, which recreates an original symlink's recorded
// link target verbatim, this always points the new link at the resolved
// source argument itself.
func CreateSymlink(ctx context.Context, source, target string) (Result, error) {
	log := zerolog.Ctx(ctx)
	log.Debug().Str("source", source).Str("target", target).Msg("creating symlink")

	if isSymlink(target) {
		log.Debug().Str("target", target).Msg("target is already a symlink")
		return ResultExists, nil
	}
	if !pathExists(source) {
		log.Debug().Str("source", source).Msg("symlink source does not exist")
		return ResultSkipped, nil
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return 0, errors.Errorf("creating parent directory for %s: %w", target, err)
	}
	if pathExists(target) {
		log.Debug().Str("target", target).Msg("removing existing path")
		if err := os.RemoveAll(target); err != nil {
			return 0, errors.Errorf("removing %s: %w", target, err)
		}
	}

	abs, err := filepath.Abs(source)
	if err != nil {
		return 0, errors.Errorf("resolving %s: %w", source, err)
	}
	if err := os.Symlink(abs, target); err != nil {
		return 0, errors.Errorf("creating symlink %s -> %s: %w", target, abs, err)
	}
	return ResultCreated, nil
}
