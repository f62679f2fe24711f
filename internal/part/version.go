// Copyright 2026 The Protobluff-Go Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package part

// Version records the journal length a part was last aligned against.
// Invalidation is sticky (spec.md §9's "Versioned invalidation" design
// note): once Invalid is set, nothing clears it short of recreating the
// part. A tagged struct is used instead of the source's top-bit-of-size_t
// encoding because Go has no reason to fight for that last bit.
type Version struct {
	v       int
	Invalid bool
}

// invalidVersion is the sentinel stored once a part's region has been
// overwritten or enclosed by a clear.
var invalidVersion = Version{Invalid: true}
