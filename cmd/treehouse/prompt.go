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
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/treehouse/pkg/config"
	"github.com/walteh/treehouse/pkg/git"
)

// promptSelectConfigs asks which configs to apply. A single config is
// selected without asking.
func promptSelectConfigs(configs []config.LoadedConfig) ([]int, error) {
	if len(configs) == 1 {
		return []int{0}, nil
	}

	options := make([]huh.Option[int], 0, len(configs))
	for i, lc := range configs {
		options = append(options, huh.NewOption(config.DisplayName(lc), i))
	}

	var selected []int
	err := huh.NewMultiSelect[int]().
		Title("Select configurations to apply").
		Options(options...).
		Value(&selected).
		Run()
	if err != nil {
		return nil, errors.Errorf("selecting configurations: %w", err)
	}
	return selected, nil
}

func promptWorktreePath() (string, error) {
	var path string
	err := huh.NewInput().
		Title("Worktree path").
		Placeholder("../my-feature").
		Value(&path).
		Run()
	if err != nil {
		return "", errors.Errorf("reading worktree path: %w", err)
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return "", errors.New("worktree path cannot be empty")
	}
	return path, nil
}

const (
	branchModeAuto     = "auto"
	branchModeNew      = "new"
	branchModeCurrent  = "current"
	branchModeExisting = "existing"
	branchModeDetach   = "detach"
)

// promptWorktreeCreate walks through creating a missing worktree. A nil
// result with a nil error means the user declined.
func promptWorktreeCreate(targetPath, currentBranch string, branches []string, defaultBranch string) (*git.CreateOptions, error) {
	create := true
	err := huh.NewConfirm().
		Title(fmt.Sprintf("Worktree %s does not exist. Create it?", targetPath)).
		Value(&create).
		Run()
	if err != nil {
		return nil, errors.Errorf("confirming worktree creation: %w", err)
	}
	if !create {
		return nil, nil
	}

	autoName := filepath.Base(targetPath)
	options := []huh.Option[string]{
		huh.NewOption(fmt.Sprintf("New branch named %q", autoName), branchModeAuto),
		huh.NewOption("New branch with a custom name", branchModeNew),
	}
	if currentBranch != "" {
		options = append(options, huh.NewOption(fmt.Sprintf("Check out current branch (%s)", currentBranch), branchModeCurrent))
	}
	if len(branches) > 0 {
		options = append(options, huh.NewOption("Check out an existing branch", branchModeExisting))
	}
	options = append(options, huh.NewOption("Detached HEAD", branchModeDetach))

	var mode string
	err = huh.NewSelect[string]().
		Title("Branch for the new worktree").
		Options(options...).
		Value(&mode).
		Run()
	if err != nil {
		return nil, errors.Errorf("selecting branch mode: %w", err)
	}

	switch mode {
	case branchModeAuto:
		base, err := promptBaseBranch(defaultBranch)
		if err != nil {
			return nil, err
		}
		return &git.CreateOptions{NewBranch: autoName, Branch: base}, nil
	case branchModeNew:
		var name string
		err := huh.NewInput().
			Title("Branch name").
			Value(&name).
			Run()
		if err != nil {
			return nil, errors.Errorf("reading branch name: %w", err)
		}
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, errors.New("branch name cannot be empty")
		}
		base, err := promptBaseBranch(defaultBranch)
		if err != nil {
			return nil, err
		}
		return &git.CreateOptions{NewBranch: name, Branch: base}, nil
	case branchModeCurrent:
		return &git.CreateOptions{Branch: currentBranch}, nil
	case branchModeExisting:
		options := make([]huh.Option[string], 0, len(branches))
		for _, branch := range branches {
			options = append(options, huh.NewOption(branch, branch))
		}
		var branch string
		err := huh.NewSelect[string]().
			Title("Branch to check out").
			Options(options...).
			Value(&branch).
			Run()
		if err != nil {
			return nil, errors.Errorf("selecting branch: %w", err)
		}
		return &git.CreateOptions{Branch: branch}, nil
	default:
		return &git.CreateOptions{Detach: true}, nil
	}
}

// promptBaseBranch asks where a new branch should start from. Empty means
// the current HEAD.
func promptBaseBranch(defaultBranch string) (string, error) {
	const (
		baseHead   = ""
		baseCustom = "\x00custom"
	)

	options := []huh.Option[string]{
		huh.NewOption("Current HEAD", baseHead),
	}
	if defaultBranch != "" {
		options = append(options, huh.NewOption(defaultBranch, defaultBranch))
	}
	options = append(options, huh.NewOption("Another branch or ref", baseCustom))

	var base string
	err := huh.NewSelect[string]().
		Title("Start the new branch from").
		Options(options...).
		Value(&base).
		Run()
	if err != nil {
		return "", errors.Errorf("selecting base branch: %w", err)
	}
	if base != baseCustom {
		return base, nil
	}

	var ref string
	err = huh.NewInput().
		Title("Base branch or ref").
		Value(&ref).
		Run()
	if err != nil {
		return "", errors.Errorf("reading base ref: %w", err)
	}
	return strings.TrimSpace(ref), nil
}

func promptRunInstall() (bool, error) {
	run := true
	err := huh.NewConfirm().
		Title("Run post-setup commands?").
		Value(&run).
		Run()
	if err != nil {
		return false, errors.Errorf("confirming post-setup: %w", err)
	}
	return run, nil
}
