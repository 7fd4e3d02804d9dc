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

// Package git wraps the git CLI for the small surface the setup engine
// needs: repository discovery, worktree listing and creation, branch
// queries, and the changed/untracked file list.
package git

import (
	"bytes"
	"context"
	"os/exec"
	"slices"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// run executes git with args in dir and returns trimmed stdout. Failures
// carry git's stderr.
func run(ctx context.Context, dir string, args ...string) (string, error) {
	zerolog.Ctx(ctx).Debug().Str("dir", dir).Strs("args", args).Msg("running git")

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return "", errors.Errorf("git %s: %s", strings.Join(args, " "), msg)
	}
	return strings.TrimRight(stdout.String(), "\n"), nil
}

// 🔭 DiscoverRoot finds the repository root containing dir.
func DiscoverRoot(ctx context.Context, dir string) (string, error) {
	out, err := run(ctx, dir, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", errors.Errorf("discovering repository from %s: %w", dir, err)
	}
	return strings.TrimSpace(out), nil
}

// 🌿 CurrentBranch returns the checked-out branch name, or "" when HEAD is
// detached.
func CurrentBranch(ctx context.Context, root string) (string, error) {
	out, err := run(ctx, root, "branch", "--show-current")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// 🌿 LocalBranches lists local branch names.
func LocalBranches(ctx context.Context, root string) ([]string, error) {
	out, err := run(ctx, root, "for-each-ref", "--format=%(refname:short)", "refs/heads")
	if err != nil {
		return nil, err
	}
	var branches []string
	for _, line := range strings.Split(out, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			branches = append(branches, line)
		}
	}
	return branches, nil
}

// 🌿 DefaultBranch returns the first of main/master that exists locally,
// or "" when neither does.
func DefaultBranch(ctx context.Context, root string) (string, error) {
	branches, err := LocalBranches(ctx, root)
	if err != nil {
		return "", err
	}
	for _, candidate := range []string{"main", "master"} {
		if slices.Contains(branches, candidate) {
			return candidate, nil
		}
	}
	return "", nil
}
