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
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// rootFlags holds the root command's flag values.
type rootFlags struct {
	branch         string
	newBranch      string
	configs        []string
	noInstall      bool
	unstaged       bool
	noUnstaged     bool
	list           bool
	nonInteractive bool
	noProgress     bool
	debug          bool
}

// copyUnstagedOverride maps the --unstaged/--no-unstaged pair onto the
// config override: nil means use the config default.
func (f *rootFlags) copyUnstagedOverride() *bool {
	if f.noUnstaged {
		v := false
		return &v
	}
	if f.unstaged {
		v := true
		return &v
	}
	return nil
}

func (f *rootFlags) showProgress() bool {
	return !f.noProgress
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "treehouse [target-path]",
		Short: "Set up git worktrees with project-specific configurations",
		Long: `treehouse creates a new git worktree and applies the repository's
worktree configuration files to it: symlinking shared directories, copying
local files that git doesn't track, and running post-setup commands.

Configuration files are discovered by naming convention
(worktree.config.toml, worktree.*.config.ts, ...) anywhere in the repo.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(flags.debug)

			targetArg := ""
			if len(args) > 0 {
				targetArg = args[0]
			}
			return runSetup(cmd.Context(), flags, targetArg)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().StringVar(&flags.branch, "branch", "", "create the worktree from this existing branch")
	cmd.Flags().StringVar(&flags.newBranch, "new-branch", "", "create and check out a new branch")
	cmd.Flags().StringSliceVarP(&flags.configs, "config", "c", nil, "apply only configs whose path contains this pattern (repeatable)")
	cmd.Flags().BoolVar(&flags.noInstall, "no-install", false, "skip running post-setup commands")
	cmd.Flags().BoolVar(&flags.unstaged, "unstaged", false, "copy unstaged and untracked files from the main worktree")
	cmd.Flags().BoolVar(&flags.noUnstaged, "no-unstaged", false, "skip copying unstaged files (overrides config)")
	cmd.Flags().BoolVar(&flags.list, "list", false, "list discovered configs and exit")
	cmd.Flags().BoolVar(&flags.nonInteractive, "non-interactive", false, "run without prompts (requires target-path)")
	cmd.Flags().BoolVar(&flags.noProgress, "no-progress", false, "disable progress bars (useful in CI)")
	cmd.Flags().BoolVarP(&flags.debug, "debug", "d", false, "enable debug logging")

	return cmd
}

// setupLogging configures the global zerolog context logger.
func setupLogging(debug bool) {
	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log := zerolog.New(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
		w.Out = os.Stderr
	})).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &log
}
