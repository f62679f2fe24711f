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

// Package part implements the versioned offset anchor every field, message,
// and cursor position is built from (spec.md §4.4, §4.5), and the cursor
// traversal engine that walks a message's fields in buffer order.
package part

// Offset identifies a slice of a buffer: the payload span [Start, End), plus
// three signed distances back from Start to the bytes that make up this
// part's header, used both to relocate the header when the payload resizes
// and to decide, during alignment, whether an edit elsewhere in the buffer
// falls before, inside, or around this part.
//
//   - DiffOrigin: distance from Start to the beginning of the tag+length
//     header (zero for the buffer's root part).
//   - DiffTag: distance from Start to the tag byte. Equal to DiffOrigin for
//     every part this package constructs; kept distinct because align's
//     formulas are defined per field, not per part as a whole.
//   - DiffLength: distance from Start to the length-prefix byte. Equal to
//     DiffTag when the part has no length prefix (scalar fields).
type Offset struct {
	Start, End                      int
	DiffOrigin, DiffTag, DiffLength int
}

// Origin returns the absolute position of this part's header.
func (o Offset) Origin() int { return o.Start + o.DiffOrigin }

// TagPos returns the absolute position of this part's tag byte.
func (o Offset) TagPos() int { return o.Start + o.DiffTag }

// LengthPos returns the absolute position of this part's length-prefix
// byte, which equals TagPos for a part with no length prefix.
func (o Offset) LengthPos() int { return o.Start + o.DiffLength }

// Size returns the payload length.
func (o Offset) Size() int { return o.End - o.Start }
