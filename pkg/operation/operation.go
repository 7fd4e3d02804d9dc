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

// 🏷️ Type identifies the kind of a planned operation.
type Type int

const (
	// TypeSymlink creates a symlink in the target worktree.
	TypeSymlink Type = iota
	// TypeCopy copies a file or directory, skipping when the target exists.
	TypeCopy
	// TypeOverwrite copies over the target even when it exists.
	TypeOverwrite
	// TypeCopyGlob copies a single glob-matched file.
	TypeCopyGlob
	// TypeTemplate copies a template source to a distinct target path.
	TypeTemplate
	// TypeUnstaged copies a changed or untracked file from the main worktree.
	TypeUnstaged
)

// String returns a string representation of Type.
func (t Type) String() string {
	switch t {
	case TypeSymlink:
		return "symlink"
	case TypeCopy, TypeCopyGlob:
		return "copy"
	case TypeOverwrite:
		return "overwrite"
	case TypeTemplate:
		return "template"
	case TypeUnstaged:
		return "unstaged"
	default:
		return "unknown"
	}
}

// 📊 Result is the terminal classification of one executed operation. The
// planner's skip flag is a pre-execution forecast; this is the ground truth
// after the attempt, and the two agree on a quiescent filesystem.
type Result int

const (
	// ResultCreated means a new file, directory tree, or symlink was created.
	ResultCreated Result = iota
	// ResultExists means the target was already present and left untouched.
	ResultExists
	// ResultSkipped means the source was absent and nothing happened.
	ResultSkipped
	// ResultOverwritten means the target existed and was replaced.
	ResultOverwritten
)

// String returns a string representation of Result.
func (r Result) String() string {
	switch r {
	case ResultCreated:
		return "created"
	case ResultExists:
		return "exists"
	case ResultSkipped:
		return "skipped"
	case ResultOverwritten:
		return "overwritten"
	default:
		return "unknown"
	}
}

// Skip reasons recorded by the planner.
const (
	SkipReasonNotFound = "not found"
	SkipReasonExists   = "exists"
)

// 📋 PlannedOperation is one unit of work emitted by the planner. It is
// never mutated after creation; the executor returns a separate Result.
type PlannedOperation struct {
	// DisplayPath is the human-readable label (relative path, or
	// "source -> target" for templates).
	DisplayPath string
	// Type of operation.
	Type Type
	// Source path (absolute).
	Source string
	// Target path (absolute).
	Target string
	// FileCount is 0 for symlinks, 1 for single files, N for directories.
	FileCount int64
	// IsDirectory marks directory-shaped operations.
	IsDirectory bool
	// WillSkip forecasts that execution will not mutate anything.
	WillSkip bool
	// SkipReason is SkipReasonNotFound or SkipReasonExists when WillSkip.
	SkipReason string
}

// ⚙️ Options overrides config settings when applying a configuration.
type Options struct {
	// CopyUnstaged overrides the config's copyUnstaged when non-nil.
	CopyUnstaged *bool
}

// 🧾 Record is one (path, result) pair for reporting.
type Record struct {
	Path   string
	Result Result
}

// 📦 ApplyResult aggregates the records of one applied configuration,
// bucketed by operation kind.
type ApplyResult struct {
	Symlinks   []Record
	Copies     []Record
	Overwrites []Record
	Unstaged   []Record
	Templates  []Record
}
