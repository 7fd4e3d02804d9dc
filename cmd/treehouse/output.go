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
	"os"

	"github.com/fatih/color"

	"github.com/walteh/treehouse/pkg/config"
)

var (
	headerColor  = color.New(color.FgCyan, color.Bold)
	successColor = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed, color.Bold)
	faintColor   = color.New(color.Faint)
)

func printHeader(title string) {
	headerColor.Printf("🌳 %s\n", title)
}

func printRepoInfo(repoRoot string) {
	fmt.Printf("Repository: %s\n", repoRoot)
}

func printConfigList(configs []config.LoadedConfig) {
	fmt.Printf("Found %d configuration(s):\n", len(configs))
	for _, lc := range configs {
		fmt.Printf("  - %s\n", config.DisplayName(lc))
	}
	fmt.Println()
}

// printResult prints one finished operation as a fixed-width row so the
// verbs line up down the page.
func printResult(label, verb string, success bool) {
	if success {
		successColor.Print("✓ ")
	} else {
		faintColor.Print("• ")
	}
	fmt.Printf("%-40s ", label)
	faintColor.Println(verb)
}

func printResultWithCount(label, verb string, files int64) {
	successColor.Print("✓ ")
	fmt.Printf("%-40s ", label)
	faintColor.Printf("%s (%d files)\n", verb, files)
}

func printWarning(msg string) {
	warnColor.Printf("⚠️  %s\n", msg)
}

func printError(msg string) {
	errorColor.Fprintf(os.Stderr, "❌ %s\n", msg)
}

func printCommand(command string) {
	faintColor.Printf("  $ %s\n", command)
}

func printSuccess() {
	successColor.Println("✅ Worktree setup complete!")
}
