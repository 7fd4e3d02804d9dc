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

package config

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// configNamePattern matches worktree.config.toml, worktree.config.ts, and
// variant names like worktree.backend.config.toml.
const configNamePattern = "worktree*.config.{toml,ts}"

// skippedDirs are never descended into during discovery.
var skippedDirs = map[string]struct{}{
	".git":         {},
	"node_modules": {},
	"target":       {},
}

// 🔭 Discover walks repoRoot in parallel and returns every configuration
// file path matching the worktree naming convention, sorted.
func Discover(ctx context.Context, repoRoot string) ([]string, error) {
	zerolog.Ctx(ctx).Debug().Str("root", repoRoot).Msg("discovering configs")

	var (
		mu    sync.Mutex
		found []string
	)
	g, gctx := errgroup.WithContext(ctx)

	var walk func(dir string) error
	walk = func(dir string) error {
		if err := gctx.Err(); err != nil {
			return err
		}
		dirents, err := os.ReadDir(dir)
		if err != nil {
			return errors.Errorf("reading directory %s: %w", dir, err)
		}
		for _, de := range dirents {
			name := de.Name()
			if de.IsDir() {
				if _, skip := skippedDirs[name]; skip {
					continue
				}
				sub := filepath.Join(dir, name)
				g.Go(func() error { return walk(sub) })
				continue
			}
			if matched, _ := doublestar.Match(configNamePattern, name); matched {
				mu.Lock()
				found = append(found, filepath.Join(dir, name))
				mu.Unlock()
			}
		}
		return nil
	}

	g.Go(func() error { return walk(repoRoot) })
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Strings(found)
	zerolog.Ctx(ctx).Debug().Int("count", len(found)).Msg("discovered configs")
	return found, nil
}
