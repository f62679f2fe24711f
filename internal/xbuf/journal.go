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

package xbuf

import "github.com/squidfunk/protobluff-go/internal/debug"

// Entry is one append-only journal record describing a byte-level edit to a
// buffer: the half-open region [Origin, Offset) changed size by Delta bytes
// (positive for insertion, negative for deletion).
type Entry struct {
	Origin, Offset int
	Delta          int
}

// Journal is the append-only log of edits to an owned [Buffer]. Its length
// at any instant is the buffer's current version; every live [part.Part]
// stores the version it was last aligned against and replays entries past
// that point on next access.
//
// A zero-copy buffer never produces entries with Delta != 0 (growing or
// shrinking such a buffer always fails before reaching this point), so it
// carries a nil *Journal instead of a shared empty sentinel: the two are
// observably identical, and nil is the more idiomatic spelling in Go.
type Journal struct {
	entries []Entry
}

// Len returns the current version: the number of entries logged so far.
func (j *Journal) Len() int {
	if j == nil {
		return 0
	}
	return len(j.entries)
}

// Since returns the entries logged at or after version v, in the order
// they were appended.
func (j *Journal) Since(v int) []Entry {
	if j == nil {
		return nil
	}
	debug.Assert(v <= len(j.entries), "journal version %d ahead of log length %d", v, len(j.entries))
	return j.entries[v:]
}

// log appends an edit record. Callers must never log a no-op edit
// (delta == 0); Buffer enforces this.
func (j *Journal) log(origin, offset, delta int) {
	debug.Assert(origin <= offset, "journal entry origin %d after offset %d", origin, offset)
	debug.Assert(delta != 0, "journal entry with zero delta")
	j.entries = append(j.entries, Entry{Origin: origin, Offset: offset, Delta: delta})
	debug.Log("journal.log", "(%d,%d,%+d) -> v%d", origin, offset, delta, len(j.entries))
}
