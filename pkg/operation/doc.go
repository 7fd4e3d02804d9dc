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

// Package operation plans and executes the filesystem work a worktree
// configuration declares.
//
// Plan turns a loaded config plus source and target roots into an ordered
// list of operations (symlinks, copies, overwrites, glob copies, templates)
// annotated with resolved paths, file counts, and skip decisions, without
// mutating anything. Execute performs a single planned operation and
// returns exactly one terminal classification: created, exists, skipped, or
// overwritten. Unstaged-file operations are planned in a separate pass from
// a caller-supplied git file list.
//
// Declared paths resolve against the directory containing the declaring
// config file, or against the repository root when prefixed with a path
// separator; the same rule applies symmetrically on the source and target
// sides.
package operation
