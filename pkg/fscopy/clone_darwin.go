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

import "golang.org/x/sys/unix"

// cloneFile clones source into target with clonefile(2), instant on APFS.
// clonefile refuses to replace an existing target, so the overwrite path
// lands in the byte-copy fallback instead.
func cloneFile(source, target string) error {
	return unix.Clonefile(source, target, unix.CLONE_NOFOLLOW)
}
