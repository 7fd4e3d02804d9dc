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
	"os"
	"path/filepath"
	"strings"
)

// splitRooted reports whether raw declares a repository-root-relative path
// (leading separator) and returns it with the leading separators stripped.
// Both "/" and the platform separator mark a path as root-relative.
func splitRooted(raw string) (string, bool) {
	if len(raw) > 0 && (raw[0] == '/' || raw[0] == os.PathSeparator) {
		return strings.TrimLeft(raw, "/"+string(os.PathSeparator)), true
	}
	return raw, false
}

// resolvePath resolves a config-declared path against one side's base tree.
//
// A leading separator makes rawPath relative to baseDir itself (repository
// root), with the stripped remainder as the display label. Otherwise the
// label is configRelDir joined with rawPath, and the absolute path is that
// label under baseDir. Applied with the same configRelDir to the source and
// target roots, a root-relative declaration in a nested config maps to the
// same relative location under both trees. Pure, no I/O.
func resolvePath(baseDir, configRelDir, rawPath string) (abs string, label string) {
	if rel, rooted := splitRooted(rawPath); rooted {
		label = filepath.Clean(filepath.FromSlash(rel))
		return filepath.Join(baseDir, rel), label
	}
	label = filepath.Join(configRelDir, rawPath)
	return filepath.Join(baseDir, label), label
}

// configRelativeDir is the config directory's path relative to the source
// root, or the directory itself when it lies outside the root.
func configRelativeDir(sourceRoot, configDir string) string {
	rel, err := filepath.Rel(sourceRoot, configDir)
	if err != nil {
		return configDir
	}
	return rel
}
