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

package fscopy

import "sync/atomic"

// progressCadence is how many completed files pass between progress
// callbacks during directory operations.
const progressCadence = 100

// 📊 Progress is a point-in-time snapshot of a copy operation.
type Progress struct {
	FilesTotal  int64  // total files in the operation
	FilesCopied int64  // files completed so far
	CurrentFile string // file most recently touched, if known
}

// Percentage returns completion as 0-100.
func (p Progress) Percentage() float64 {
	if p.FilesTotal == 0 {
		return 100.0
	}
	return float64(p.FilesCopied) / float64(p.FilesTotal) * 100.0
}

// 📞 ProgressFunc receives progress snapshots. During a directory copy it
// may be invoked from any worker goroutine, so implementations that touch
// shared display state must synchronize themselves.
type ProgressFunc func(Progress)

// report invokes fn if it is non-nil.
func report(fn ProgressFunc, p Progress) {
	if fn != nil {
		fn(p)
	}
}

// 🧮 tracker is the shared completion counter for a parallel copy. The
// counter is the only mutable state workers share.
type tracker struct {
	total  int64
	copied atomic.Int64
}

func newTracker(total int64) *tracker {
	return &tracker{total: total}
}

// increment records one completed file and returns the new count.
func (t *tracker) increment() int64 {
	return t.copied.Add(1)
}

func (t *tracker) snapshot(currentFile string) Progress {
	return Progress{
		FilesTotal:  t.total,
		FilesCopied: t.copied.Load(),
		CurrentFile: currentFile,
	}
}
