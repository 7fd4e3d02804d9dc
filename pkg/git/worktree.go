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
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🌳 WorktreeInfo describes one worktree of a repository.
type WorktreeInfo struct {
	// Path is the filesystem path of the worktree.
	Path string
	// Branch is the checked-out branch, "" when detached.
	Branch string
	// Commit is the abbreviated HEAD commit.
	Commit string
	// IsMain marks the main worktree.
	IsMain bool
}

// ⚙️ CreateOptions controls worktree creation.
type CreateOptions struct {
	// Branch checks out an existing branch (or base for NewBranch).
	Branch string
	// NewBranch creates and checks out a new branch.
	NewBranch string
	// Detach creates the worktree with a detached HEAD.
	Detach bool
}

// 🌳 Worktrees lists every worktree of the repository, main first.
func Worktrees(ctx context.Context, root string) ([]WorktreeInfo, error) {
	out, err := run(ctx, root, "worktree", "list", "--porcelain")
	if err != nil {
		return nil, errors.Errorf("listing worktrees: %w", err)
	}

	var (
		worktrees []WorktreeInfo
		current   *WorktreeInfo
	)
	flush := func() {
		if current != nil {
			current.IsMain = len(worktrees) == 0
			worktrees = append(worktrees, *current)
			current = nil
		}
	}
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == "":
			flush()
		case strings.HasPrefix(line, "worktree "):
			flush()
			current = &WorktreeInfo{Path: strings.TrimPrefix(line, "worktree ")}
		case strings.HasPrefix(line, "HEAD ") && current != nil:
			sha := strings.TrimPrefix(line, "HEAD ")
			if len(sha) > 8 {
				sha = sha[:8]
			}
			current.Commit = sha
		case strings.HasPrefix(line, "branch ") && current != nil:
			current.Branch = strings.TrimPrefix(strings.TrimPrefix(line, "branch "), "refs/heads/")
		}
	}
	flush()

	zerolog.Ctx(ctx).Debug().Int("count", len(worktrees)).Msg("listed worktrees")
	return worktrees, nil
}

// 🌳 MainWorktree returns the repository's main worktree.
func MainWorktree(ctx context.Context, root string) (WorktreeInfo, error) {
	worktrees, err := Worktrees(ctx, root)
	if err != nil {
		return WorktreeInfo{}, err
	}
	if len(worktrees) == 0 {
		return WorktreeInfo{}, errors.New("no main worktree found")
	}
	return worktrees[0], nil
}

// 🏗️ CreateWorktree runs `git worktree add` for path with the given
// options. The parent directory is created first.
func CreateWorktree(ctx context.Context, root, path string, opts CreateOptions) error {
	zerolog.Ctx(ctx).Info().Str("path", path).Msg("creating worktree")

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Errorf("creating parent directory for %s: %w", path, err)
	}

	args := []string{"worktree", "add"}
	if opts.Detach {
		args = append(args, "--detach")
	}
	if opts.NewBranch != "" {
		args = append(args, "-b", opts.NewBranch)
	}
	args = append(args, path)
	if opts.Branch != "" {
		args = append(args, opts.Branch)
	}

	if _, err := run(ctx, root, args...); err != nil {
		return errors.Errorf("creating worktree at %s: %w", path, err)
	}
	return nil
}
