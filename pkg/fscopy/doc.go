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

// Package fscopy is the file transfer engine: single-file copy and
// overwrite, parallel directory copy with symlink preservation, parallel
// enumeration and file counting, and bounded-cadence progress reporting.
//
// Transfers prefer a copy-on-write clone where the filesystem supports one
// and fall back transparently to a byte copy. Directory copies are
// fail-fast: the first worker error cancels the batch and propagates, and
// files already written stay on disk.
package fscopy
