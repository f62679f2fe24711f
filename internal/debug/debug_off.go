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

//go:build !debug

package debug

// Enabled is false outside debug builds; all calls below compile away to
// nothing, so the ambient tracing/assertion machinery has zero cost when
// the debug tag isn't set.
const Enabled = false

// Log is a no-op outside debug builds.
func Log(string, string, ...any) {}

// Assert is a no-op outside debug builds.
func Assert(bool, string, ...any) {}

// Owner is a zero-cost no-op outside debug builds.
type Owner struct{}

// Check is a no-op outside debug builds.
func (*Owner) Check() {}
