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

import "github.com/squidfunk/protobluff-go/internal/xbuf"

// align replays every journal entry appended since o/v was last observed,
// returning the updated Offset and whether the part must now be treated as
// invalid (spec.md §4.4). It is a pure function of its inputs so the four
// cases can be tested in isolation from Part's bookkeeping.
func align(entries []xbuf.Entry, o Offset) (Offset, bool) {
	invalid := false
	for _, e := range entries {
		switch {
		case e.Origin < o.Start && e.Offset < o.End:
			// Case 1: the edit lies wholly before this part. Shift the
			// payload span, then repin each header pointer that sat after
			// the edited region (using its pre-shift absolute position) by
			// the same delta.
			oldStart := o.Start
			o.Start += e.Delta
			o.End += e.Delta
			shiftDiff := func(d int) int {
				if oldStart+d > e.Offset {
					return d - e.Delta
				}
				return d
			}
			o.DiffOrigin = shiftDiff(o.DiffOrigin)
			o.DiffTag = shiftDiff(o.DiffTag)
			o.DiffLength = shiftDiff(o.DiffLength)

		case e.Origin >= o.Origin() && e.Offset <= o.End:
			// Case 2: the edit lies inside this part, either resizing its
			// payload or wholesale-clearing it (header included).
			if o.Origin()-(o.End+e.Delta) == 0 {
				origin := o.Origin()
				o = Offset{Start: origin, End: origin}
				invalid = true
			} else if e.Origin >= o.Start {
				o.End += e.Delta
			}

		case e.Origin <= o.Origin() && e.Origin == e.Offset+e.Delta:
			// Case 3: a clear elsewhere encloses this part's header and
			// payload entirely.
			origin := o.Origin()
			o = Offset{Start: origin, End: origin}
			invalid = true

		default:
			// Case 4: an ancestor resized around this part; nothing to do.
		}

		if invalid {
			break
		}
	}
	return o, invalid
}
