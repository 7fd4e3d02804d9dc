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
	"sync"

	"github.com/pterm/pterm"
	"gitlab.com/tozd/go/errors"
)

// fileBar renders a terminal progress bar for a directory copy. Progress
// callbacks arrive with absolute completed counts, pterm wants increments,
// so the bar tracks the last value it saw.
type fileBar struct {
	mu   sync.Mutex
	bar  *pterm.ProgressbarPrinter
	last int64
}

func startFileBar(title string, total int64) (*fileBar, error) {
	bar, err := pterm.DefaultProgressbar.
		WithTotal(int(total)).
		WithTitle(title).
		WithRemoveWhenDone(true).
		Start()
	if err != nil {
		return nil, errors.Errorf("starting progress bar: %w", err)
	}
	return &fileBar{bar: bar}, nil
}

// set advances the bar to an absolute completed count. Stale counts from
// concurrent callbacks are ignored.
func (b *fileBar) set(completed int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if completed <= b.last {
		return
	}
	b.bar.Add(int(completed - b.last))
	b.last = completed
}

func (b *fileBar) finish() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.bar.IsActive {
		_, _ = b.bar.Stop()
	}
}
