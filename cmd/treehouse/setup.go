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

package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/treehouse/pkg/config"
	"github.com/walteh/treehouse/pkg/git"
	"github.com/walteh/treehouse/pkg/operation"
)

// runSetup is the whole application flow: discover repo and configs,
// select, create the worktree, plan, execute, post-setup.
func runSetup(ctx context.Context, flags *rootFlags, targetArg string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return errors.Errorf("getting working directory: %w", err)
	}
	repoRoot, err := git.DiscoverRoot(ctx, cwd)
	if err != nil {
		return err
	}

	printHeader("Worktree Setup")
	printRepoInfo(repoRoot)
	fmt.Println()

	configs, err := loadConfigs(ctx, repoRoot)
	if err != nil {
		return err
	}
	if configs == nil {
		return nil // nothing discovered, guidance already printed
	}

	printConfigList(configs)
	if flags.list {
		return nil
	}

	selected, err := selectConfigIndices(flags, configs)
	if err != nil {
		return err
	}
	if len(selected) == 0 {
		fmt.Println("No configs selected. Exiting.")
		return nil
	}

	targetPath, err := resolveTargetPath(flags, targetArg, cwd)
	if err != nil {
		return err
	}

	mainWorktree, err := git.MainWorktree(ctx, repoRoot)
	if err != nil {
		return err
	}
	if targetPath == mainWorktree.Path {
		return errors.New("cannot set up the main worktree, this tool is for secondary worktrees")
	}

	if !pathExists(targetPath) {
		if err := createWorktree(ctx, flags, repoRoot, targetPath); err != nil {
			return err
		}
	}
	if !pathExists(targetPath) {
		return errors.Errorf("target path does not exist: %s", targetPath)
	}

	fmt.Printf("\nSetting up worktree: %s\n", targetPath)
	fmt.Printf("Main worktree: %s\n\n", mainWorktree.Path)

	ops, err := planAll(ctx, flags, configs, selected, mainWorktree.Path, targetPath)
	if err != nil {
		return err
	}
	if err := executeAll(ctx, flags, ops); err != nil {
		return err
	}

	fmt.Println()

	if err := runPostSetup(ctx, flags, configs, selected, targetPath); err != nil {
		return err
	}

	printSuccess()
	return nil
}

// loadConfigs discovers and loads every config in the repository. Load
// failures are warnings; nil means none were discovered at all.
func loadConfigs(ctx context.Context, repoRoot string) ([]config.LoadedConfig, error) {
	paths, err := config.Discover(ctx, repoRoot)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		fmt.Println("No worktree.config.toml or worktree.config.ts files found.")
		fmt.Println("Create a worktree.config.toml file to define your setup configuration.")
		return nil, nil
	}

	var configs []config.LoadedConfig
	for _, path := range paths {
		lc, err := config.Load(ctx, path, repoRoot)
		if err != nil {
			printWarning(fmt.Sprintf("Failed to load %s: %v", path, err))
			continue
		}
		configs = append(configs, lc)
	}
	if len(configs) == 0 {
		return nil, errors.New("no valid configurations found")
	}
	return configs, nil
}

// selectConfigIndices picks which configs to apply: flag patterns first,
// all of them in non-interactive mode, an interactive multiselect otherwise.
func selectConfigIndices(flags *rootFlags, configs []config.LoadedConfig) ([]int, error) {
	if len(flags.configs) > 0 {
		var selected []int
		for i, lc := range configs {
			for _, pattern := range flags.configs {
				if strings.Contains(lc.RelativePath, pattern) || strings.Contains(lc.ConfigPath, pattern) {
					selected = append(selected, i)
					break
				}
			}
		}
		return selected, nil
	}
	if flags.nonInteractive {
		selected := make([]int, len(configs))
		for i := range configs {
			selected[i] = i
		}
		return selected, nil
	}
	return promptSelectConfigs(configs)
}

// resolveTargetPath turns the positional argument (or a prompt) into an
// absolute target path.
func resolveTargetPath(flags *rootFlags, targetArg, cwd string) (string, error) {
	path := targetArg
	if path == "" {
		if flags.nonInteractive {
			return "", errors.New("target path is required in non-interactive mode")
		}
		var err error
		path, err = promptWorktreePath()
		if err != nil {
			return "", err
		}
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(cwd, path)
	}
	return filepath.Clean(path), nil
}

// createWorktree creates the missing worktree, from flags in
// non-interactive mode and via prompts otherwise.
func createWorktree(ctx context.Context, flags *rootFlags, repoRoot, targetPath string) error {
	if flags.nonInteractive {
		// Without explicit branch flags git creates an auto-named branch.
		fmt.Printf("Creating worktree at %s...\n", targetPath)
		return git.CreateWorktree(ctx, repoRoot, targetPath, git.CreateOptions{
			Branch:    flags.branch,
			NewBranch: flags.newBranch,
		})
	}

	currentBranch, err := git.CurrentBranch(ctx, repoRoot)
	if err != nil {
		return err
	}
	branches, err := git.LocalBranches(ctx, repoRoot)
	if err != nil {
		return err
	}
	defaultBranch, err := git.DefaultBranch(ctx, repoRoot)
	if err != nil {
		return err
	}

	opts, err := promptWorktreeCreate(targetPath, currentBranch, branches, defaultBranch)
	if err != nil {
		return err
	}
	if opts == nil {
		return nil // declined, existence check below reports it
	}
	fmt.Printf("\nCreating worktree at %s...\n", targetPath)
	return git.CreateWorktree(ctx, repoRoot, targetPath, *opts)
}

// planAll plans every operation across the selected configs in order, then
// a single unstaged pass when enabled by flags or any selected config.
func planAll(ctx context.Context, flags *rootFlags, configs []config.LoadedConfig, selected []int, sourceRoot, targetRoot string) ([]operation.PlannedOperation, error) {
	var ops []operation.PlannedOperation
	for _, i := range selected {
		planned, err := operation.Plan(ctx, configs[i], sourceRoot, targetRoot)
		if err != nil {
			return nil, errors.Errorf("planning %s: %w", configs[i].RelativePath, err)
		}
		ops = append(ops, planned...)
	}

	copyUnstaged := false
	for _, i := range selected {
		copyUnstaged = copyUnstaged || configs[i].Config.CopyUnstaged
	}
	if override := flags.copyUnstagedOverride(); override != nil {
		copyUnstaged = *override
	}
	if copyUnstaged {
		files, err := git.ChangedAndUntrackedFiles(ctx, sourceRoot)
		if err != nil {
			return nil, errors.Errorf("listing changed files: %w", err)
		}
		ops = append(ops, operation.PlanUnstaged(files, sourceRoot, targetRoot)...)
	}
	return ops, nil
}

// executeAll runs every planned operation in order, with a progress bar
// for directory copies and a plain result line for everything else.
func executeAll(ctx context.Context, flags *rootFlags, ops []operation.PlannedOperation) error {
	for _, op := range ops {
		if op.WillSkip {
			reason := op.SkipReason
			if reason == "" {
				reason = "skipped"
			}
			printResult(op.DisplayPath, reason, false)
			continue
		}

		if op.IsDirectory && op.FileCount > 1 && flags.showProgress() {
			bar, err := startFileBar(op.DisplayPath, op.FileCount)
			if err != nil {
				return err
			}
			result, err := operation.Execute(ctx, op, func(completed, _ int64) {
				bar.set(completed)
			})
			bar.finish()
			if err != nil {
				return errors.Errorf("executing %s %s: %w", op.Type, op.DisplayPath, err)
			}
			printResultWithCount(op.DisplayPath, resultVerb(result, op.Type), op.FileCount)
			continue
		}

		result, err := operation.Execute(ctx, op, nil)
		if err != nil {
			return errors.Errorf("executing %s %s: %w", op.Type, op.DisplayPath, err)
		}
		printResult(op.DisplayPath, resultVerb(result, op.Type), true)
	}
	return nil
}

// runPostSetup runs the deduplicated post-setup commands of the selected
// configs inside the target worktree. Command failures are warnings, not
// errors.
func runPostSetup(ctx context.Context, flags *rootFlags, configs []config.LoadedConfig, selected []int, targetPath string) error {
	var commands []string
	for _, i := range selected {
		for _, cmd := range configs[i].Config.PostSetup {
			if !slices.Contains(commands, cmd) {
				commands = append(commands, cmd)
			}
		}
	}
	if len(commands) == 0 || flags.noInstall {
		return nil
	}

	if !flags.nonInteractive {
		run, err := promptRunInstall()
		if err != nil {
			return err
		}
		if !run {
			return nil
		}
	}

	fmt.Println("Running post-setup commands:")
	for _, command := range commands {
		printCommand(command)

		cmd := exec.CommandContext(ctx, "sh", "-c", command)
		cmd.Dir = targetPath
		cmd.Stdin = os.Stdin
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr

		if err := cmd.Run(); err != nil {
			printWarning(fmt.Sprintf("Command failed: %s", command))
		}
	}
	fmt.Println()
	return nil
}

// resultVerb picks the verb shown next to a finished operation.
func resultVerb(result operation.Result, opType operation.Type) string {
	switch result {
	case operation.ResultCreated:
		switch opType {
		case operation.TypeSymlink:
			return "symlink"
		case operation.TypeTemplate:
			return "created"
		default:
			return "copied"
		}
	case operation.ResultOverwritten:
		return "overwritten"
	case operation.ResultExists:
		return "exists"
	default:
		return "skipped"
	}
}

func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
