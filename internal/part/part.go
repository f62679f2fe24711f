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

import (
	"github.com/squidfunk/protobluff-go/errs"
	"github.com/squidfunk/protobluff-go/internal/varint"
	"github.com/squidfunk/protobluff-go/internal/xbuf"
)

// Part is the anchor every field, message, and cursor position is built
// from: a buffer, an offset into it, and the journal version that offset
// is valid as of.
type Part struct {
	Buf *xbuf.Buffer
	Off Offset
	ver Version
}

// Root returns a part spanning the whole of buf, with a zero header (the
// root message has no enclosing tag).
func Root(buf *xbuf.Buffer) *Part {
	return &Part{Buf: buf, Off: Offset{Start: 0, End: buf.Size()}, ver: Version{v: buf.Journal().Len()}}
}

// New returns a part over an explicit offset, as of the buffer's current
// journal version. Used by field/message construction once a cursor or a
// freshly written region has located the bytes in question.
func New(buf *xbuf.Buffer, off Offset) *Part {
	return &Part{Buf: buf, Off: off, ver: Version{v: buf.Journal().Len()}}
}

// Valid reports whether this part can still be read or written.
func (p *Part) Valid() bool {
	return p.Buf.Valid() && !p.ver.Invalid
}

// Aligned reports whether this part's offset already reflects the
// buffer's current journal version.
func (p *Part) Aligned() bool {
	return !p.ver.Invalid && p.ver.v == p.Buf.Journal().Len()
}

// Align replays journal entries since this part's stored version against
// its offset (spec.md §4.4). A part that becomes invalid during the
// replay stays invalid; Align itself does not fail merely because the
// replay concluded that way, only when the part was already unreachable.
func (p *Part) Align() error {
	if !p.Buf.Valid() {
		p.ver = invalidVersion
		return errs.ErrInvalid
	}
	if p.ver.Invalid {
		return errs.ErrInvalid
	}
	if p.Aligned() {
		return nil
	}
	j := p.Buf.Journal()
	entries := j.Since(p.ver.v)
	off, invalid := align(entries, p.Off)
	p.Off = off
	if invalid {
		p.ver = invalidVersion
		return nil
	}
	p.ver = Version{v: j.Len()}
	return nil
}

// ensureValid aligns the part and fails if it is (or became) invalid,
// the precondition every mutating operation in this package shares.
func (p *Part) ensureValid() error {
	if err := p.Align(); err != nil {
		return err
	}
	if p.ver.Invalid {
		return errs.ErrInvalid
	}
	return nil
}

// Write replaces the part's payload with data. For a length-delimited
// part, the length prefix is first rewritten with a freshly sized varint
// and the payload is then replaced by a second, separate buffer write;
// for a non-length-delimited (scalar) part, data replaces [Start, End)
// as-is.
//
// The part updates its own offset analytically rather than through
// Align, since the journal entries this call appends describe edits at
// this part's own position, not ones "elsewhere" for the general
// algorithm to interpret.
func (p *Part) Write(data []byte, lengthDelimited bool) error {
	if err := p.ensureValid(); err != nil {
		return err
	}

	if !lengthDelimited {
		if err := p.Buf.Write(p.Off.Start, p.Off.End, data); err != nil {
			return err
		}
		p.Off.End = p.Off.Start + len(data)
		p.ver = Version{v: p.Buf.Journal().Len()}
		return nil
	}

	tagPos := p.Off.TagPos()
	originPos := p.Off.Origin()
	lenPos := p.Off.LengthPos()
	oldPayloadStart := p.Off.Start

	hdr := make([]byte, varint.MaxVarintLen)
	n := varint.PackVarint(hdr, uint64(len(data)))

	// The header and the payload are written as two separate buffer edits,
	// each journaled on its own, even though they land back to back. A
	// change in the length varint's own byte width is an edit confined to
	// [lenPos, oldPayloadStart) and must be journaled as such so a part
	// nested in the payload aligns via the ordinary "edit lies wholly
	// before this part" case instead of being mistaken for an ancestor
	// resize it can ignore (spec.md §4.4, §4.5).
	if err := p.Buf.Write(lenPos, oldPayloadStart, hdr[:n:n]); err != nil {
		return err
	}

	newStart := lenPos + n
	if err := p.Buf.Write(newStart, newStart+(p.Off.End-oldPayloadStart), data); err != nil {
		return err
	}

	p.Off.Start = newStart
	p.Off.End = newStart + len(data)
	p.Off.DiffOrigin = originPos - newStart
	p.Off.DiffTag = tagPos - newStart
	p.Off.DiffLength = lenPos - newStart
	p.ver = Version{v: p.Buf.Journal().Len()}
	return nil
}

// Clear deletes the part's header and payload from the buffer and marks
// the part invalid.
func (p *Part) Clear() error {
	if err := p.ensureValid(); err != nil {
		return err
	}
	origin := p.Off.Origin()
	if err := p.Buf.Clear(origin, p.Off.End); err != nil {
		return err
	}
	p.Off = Offset{Start: origin, End: origin}
	p.ver = invalidVersion
	return nil
}
