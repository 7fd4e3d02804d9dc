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

package git

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 📋 ChangedAndUntrackedFiles lists files with unstaged modifications or
// untracked content, repo-root-relative, sorted and deduplicated. A status
// query failure fails the whole call: the caller must not proceed with a
// partial list.
func ChangedAndUntrackedFiles(ctx context.Context, root string) ([]string, error) {
	out, err := run(ctx, root, "status", "--porcelain", "-uall", "--no-renames")
	if err != nil {
		return nil, errors.Errorf("reading repository status: %w", err)
	}

	seen := make(map[string]struct{})
	var files []string
	for _, line := range strings.Split(out, "\n") {
		// Porcelain v1: "XY path", X = index status, Y = worktree status.
		if len(line) < 4 {
			continue
		}
		switch line[1] {
		case 'M', 'D', 'T', 'R', 'A', '?':
		default:
			continue
		}
		path := line[3:]
		// Paths with special characters come back C-quoted.
		if strings.HasPrefix(path, `"`) {
			if unquoted, err := strconv.Unquote(path); err == nil {
				path = unquoted
			}
		}
		if _, dup := seen[path]; !dup {
			seen[path] = struct{}{}
			files = append(files, path)
		}
	}
	sort.Strings(files)

	zerolog.Ctx(ctx).Debug().Int("count", len(files)).Msg("found changed and untracked files")
	return files, nil
}
